package faftex

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
	"github.com/woozymasta/bcn"
)

func rgba8Header(width, height, mipCount uint32, edds bool) *bcn.DDSHeader {
	flags := uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat | bcn.DDSFlagPitch)
	caps := uint32(bcn.DDSCapsTexture)
	if mipCount > 1 {
		flags |= bcn.DDSFlagMipmapCount
		caps |= bcn.DDSCapsComplex | bcn.DDSCapsMipmap
	}

	hdr := &bcn.DDSHeader{
		Size:              bcn.DDSHeaderSize,
		Flags:             flags,
		Height:            height,
		Width:             width,
		PitchOrLinearSize: width * 4,
		Depth:             1,
		MipMapCount:       mipCount,
		Caps:              caps,
	}
	if edds {
		hdr.Reserved1[1] = eddsMarker
	}
	hdr.PixelFormat = bcn.DDSPixelFormat{
		Size:        bcn.DDSPixelFormatSize,
		Flags:       bcn.DDSPFRGB | bcn.DDSPFAlphaPixels,
		RGBBitCount: 32,
		RBitMask:    0x000000ff,
		GBitMask:    0x0000ff00,
		BBitMask:    0x00ff0000,
		ABitMask:    0xff000000,
	}
	return hdr
}

func encodeDDS(t *testing.T, hdr *bcn.DDSHeader, body []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := bcn.WriteDDSMagic(&buf); err != nil {
		t.Fatalf("WriteDDSMagic: %v", err)
	}
	if err := bcn.WriteDDSHeader(&buf, hdr); err != nil {
		t.Fatalf("WriteDDSHeader: %v", err)
	}
	buf.Write(body)
	return buf.Bytes()
}

// rgbaGradient builds a w*h*4 RGBA payload with non-opaque alpha so the
// normalized raster stays 4-channel.
func rgbaGradient(w, h int) []byte {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = byte(i >> 6)
		pix[i+1] = byte(i >> 7)
		pix[i+2] = 0x33
		pix[i+3] = 0x80
	}
	return pix
}

func bgraFromRGBA(rgba []byte) []byte {
	out := make([]byte, len(rgba))
	for i := 0; i < len(rgba); i += 4 {
		out[i] = rgba[i+2]
		out[i+1] = rgba[i+1]
		out[i+2] = rgba[i]
		out[i+3] = rgba[i+3]
	}
	return out
}

func writeDDSFixture(t *testing.T, path string) []byte {
	t.Helper()

	rgba := rgbaGradient(16, 16)
	data := encodeDDS(t, rgba8Header(16, 16, 1, false), rgba)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return bgraFromRGBA(rgba)
}

func TestDDSDecodeLinear(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tex.dds")
	want := writeDDSFixture(t, path)

	raster, err := NewDDSDecoder().Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if raster.Width != 16 || raster.Height != 16 || raster.Channels != 4 {
		t.Fatalf("unexpected raster shape: %dx%d/%d", raster.Width, raster.Height, raster.Channels)
	}
	if !bytes.Equal(raster.Pix, want) {
		t.Fatalf("pixel mismatch")
	}
}

func TestDDSDecodeEDDSCopyBlocks(t *testing.T) {
	t.Parallel()

	// Two mips: bodies are stored smallest first, table in the same order.
	large := rgbaGradient(16, 16)
	small := rgbaGradient(8, 8)

	var body bytes.Buffer
	body.WriteString(blockMagicCOPY)
	_ = binary.Write(&body, binary.LittleEndian, int32(len(small)))
	body.WriteString(blockMagicCOPY)
	_ = binary.Write(&body, binary.LittleEndian, int32(len(large)))
	body.Write(small)
	body.Write(large)

	path := filepath.Join(t.TempDir(), "tex.edds")
	data := encodeDDS(t, rgba8Header(16, 16, 2, true), body.Bytes())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	raster, err := NewDDSDecoder().Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if raster.Width != 16 || raster.Height != 16 {
		t.Fatalf("decoded wrong mip: %dx%d", raster.Width, raster.Height)
	}
	if !bytes.Equal(raster.Pix, bgraFromRGBA(large)) {
		t.Fatalf("pixel mismatch on largest mip")
	}
}

func TestDDSDecodeEDDSLZ4Block(t *testing.T) {
	t.Parallel()

	rgba := rgbaGradient(16, 16)

	compressBuf := make([]byte, lz4.CompressBlockBound(len(rgba)))
	n, err := lz4.CompressBlockHC(rgba, compressBuf, 0, nil, nil)
	if err != nil {
		t.Fatalf("CompressBlockHC: %v", err)
	}
	if n == 0 {
		t.Fatalf("fixture payload did not compress")
	}

	var stream bytes.Buffer
	_ = binary.Write(&stream, binary.LittleEndian, uint32(len(rgba)))
	stream.WriteByte(byte(n))
	stream.WriteByte(byte(n >> 8))
	stream.WriteByte(byte(n >> 16))
	stream.WriteByte(0x80)
	stream.Write(compressBuf[:n])

	var body bytes.Buffer
	body.WriteString(blockMagicLZ4)
	_ = binary.Write(&body, binary.LittleEndian, int32(stream.Len()))
	body.Write(stream.Bytes())

	path := filepath.Join(t.TempDir(), "tex.edds")
	data := encodeDDS(t, rgba8Header(16, 16, 1, true), body.Bytes())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	raster, err := NewDDSDecoder().Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(raster.Pix, bgraFromRGBA(rgba)) {
		t.Fatalf("pixel mismatch after LZ4 inflate")
	}
}

func TestDDSDecodeErrors(t *testing.T) {
	t.Parallel()

	t.Run("not-applicable", func(t *testing.T) {
		t.Parallel()

		_, err := NewDDSDecoder().Decode("tex.png")
		if !errors.Is(err, ErrNotApplicable) {
			t.Fatalf("expected ErrNotApplicable, got %v", err)
		}
	})

	t.Run("bad-header", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.dds")
		if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := NewDDSDecoder().Decode(path)
		if !errors.Is(err, ErrDDSHeaderRead) {
			t.Fatalf("expected ErrDDSHeaderRead, got %v", err)
		}
	})

	t.Run("truncated-payload", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "short.dds")
		data := encodeDDS(t, rgba8Header(16, 16, 1, false), make([]byte, 16))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		_, err := NewDDSDecoder().Decode(path)
		if !errors.Is(err, ErrCorruptImage) {
			t.Fatalf("expected ErrCorruptImage, got %v", err)
		}
	})
}

func TestDecompressChunkStreamErrors(t *testing.T) {
	t.Parallel()

	t.Run("truncated-header", func(t *testing.T) {
		t.Parallel()

		var body bytes.Buffer
		_ = binary.Write(&body, binary.LittleEndian, uint32(1024))
		body.Write([]byte{1, 2})

		_, err := decompressChunkStream(body.Bytes(), 1024)
		if !errors.Is(err, ErrChunkStreamTruncated) {
			t.Fatalf("expected ErrChunkStreamTruncated, got %v", err)
		}
	})

	t.Run("chunk-size-overruns-body", func(t *testing.T) {
		t.Parallel()

		var body bytes.Buffer
		_ = binary.Write(&body, binary.LittleEndian, uint32(1024))
		body.Write([]byte{0xff, 0x00, 0x00, 0x80}) // declares 255 bytes
		body.Write([]byte{1, 2, 3})

		_, err := decompressChunkStream(body.Bytes(), 1024)
		if !errors.Is(err, ErrInvalidChunkSize) {
			t.Fatalf("expected ErrInvalidChunkSize, got %v", err)
		}
	})

	t.Run("unknown-flags", func(t *testing.T) {
		t.Parallel()

		var body bytes.Buffer
		_ = binary.Write(&body, binary.LittleEndian, uint32(1024))
		body.Write([]byte{1, 0, 0, 0x41})
		body.WriteByte(0)

		_, err := decompressChunkStream(body.Bytes(), 1024)
		if !errors.Is(err, ErrUnknownChunkFlags) {
			t.Fatalf("expected ErrUnknownChunkFlags, got %v", err)
		}
	})
}
