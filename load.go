package faftex

import "log/slog"

// Result is the outcome of one load: the decoded raster plus the request
// identity echoed back for downstream consumers. FileName is the texture
// filename without extension, e.g. "UEB0301_Albedo".
type Result struct {
	Raster    *Raster
	RootPath  string
	UnitName  string
	FileName  string
	TargetDir string
}

// Loader resolves, stages and decodes unit textures.
type Loader struct {
	chain  *Chain
	logger *slog.Logger
}

// NewLoader returns a loader over the given chain. A nil chain uses
// DefaultChain; a nil logger uses slog.Default().
func NewLoader(chain *Chain, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if chain == nil {
		chain = DefaultChain(logger)
	}
	return &Loader{chain: chain, logger: logger}
}

// Load resolves src, stages the archive entry when the root is a
// container, decodes the texture through the chain and returns the result
// tuple. Any staging directory is removed before Load returns, on success
// and on every error path. No partial result is ever returned.
func (l *Loader) Load(src ImageSource) (*Result, error) {
	loc := Resolve(src)
	path := loc.Path

	if loc.Archived {
		staged, err := stageEntry(loc.Path, loc.Entry)
		if err != nil {
			return nil, err
		}
		defer func() {
			if cerr := staged.Close(); cerr != nil {
				l.logger.Warn("removing staging dir failed", "error", cerr)
			}
		}()
		path = staged.Path
		l.logger.Debug("staged archive entry", "archive", loc.Path, "entry", loc.Entry, "path", path)
	}

	l.logger.Debug("reading image", "path", path)

	raster, err := l.chain.Decode(path)
	if err != nil {
		return nil, err
	}

	return &Result{
		Raster:    raster,
		RootPath:  src.RootPath,
		UnitName:  src.UnitName,
		FileName:  src.UnitName + "_" + src.Kind.Suffix(),
		TargetDir: src.TargetDir,
	}, nil
}
