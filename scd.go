package faftex

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
)

// stagedFile is one archive entry extracted into a private temporary
// directory. The directory belongs exclusively to the load call that
// created it and is removed exactly once via Close.
type stagedFile struct {
	// Path is the absolute path of the extracted file.
	Path string

	dir string
}

// Close removes the staging directory and its contents. Subsequent calls
// are no-ops.
func (s *stagedFile) Close() error {
	if s.dir == "" {
		return nil
	}
	dir := s.dir
	s.dir = ""
	return os.RemoveAll(dir)
}

// stageEntry extracts the single named entry from the zip container at
// archivePath into a fresh temporary directory. On any failure the
// directory is removed before the error returns.
func stageEntry(archivePath, entryName string) (*stagedFile, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenArchive, archivePath, err)
	}
	defer func() { _ = zr.Close() }()

	// SCD containers are plain Deflate zips; serve them with the faster
	// flate implementation.
	zr.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	var entry *zip.File
	for _, f := range zr.File {
		if f.Name == entryName {
			entry = f
			break
		}
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: %q in %q", ErrArchiveEntryMissing, entryName, archivePath)
	}

	dir, err := os.MkdirTemp("", "faftex-scd-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStageEntry, err)
	}

	dst := filepath.Join(dir, filepath.FromSlash(entryName))
	if err := extractEntry(entry, dst); err != nil {
		_ = os.RemoveAll(dir)
		return nil, fmt.Errorf("%w: %q: %v", ErrStageEntry, entryName, err)
	}

	return &stagedFile{Path: dst, dir: dir}, nil
}

func extractEntry(entry *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	src, err := entry.Open()
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
