package faftex

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
	"github.com/woozymasta/bcn"
)

const (
	blockMagicCOPY = "COPY"
	blockMagicLZ4  = "LZ4 "

	// lz4ChunkSize is the Enfusion chunk size for LZ4 streams.
	lz4ChunkSize = 64 * 1024

	// eddsMarker is "ENF1" in Reserved1[1] of an Enfusion DDS header.
	eddsMarker = 0x31464e45
)

// ddsDecoder decodes DDS and EDDS textures natively: DDS headers and BCn
// payloads via bcn, Enfusion LZ4 chunk-stream blocks via lz4. Only the
// largest mip level is decoded.
type ddsDecoder struct{}

// NewDDSDecoder returns the native DDS/EDDS decoder.
func NewDDSDecoder() Decoder { return ddsDecoder{} }

func (ddsDecoder) Name() string { return "dds" }

func (ddsDecoder) Supports(ext string) bool { return ext == ".dds" || ext == ".edds" }

func (d ddsDecoder) Decode(path string) (*Raster, error) {
	if !d.Supports(fileExt(path)) {
		return nil, ErrNotApplicable
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	header, err := bcn.ReadDDSHeader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrDDSHeaderRead, path, err)
	}
	dx10, err := bcn.ReadDDSHeaderDX10(f, header)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrDDSHeaderRead, path, err)
	}

	format, desc := detectDDSFormat(header, dx10)
	width, height := int(header.Width), int(header.Height)
	expected := linearDataLength(format, width, height)
	if format == bcn.FormatUnknown || expected <= 0 {
		return nil, fmt.Errorf("%w: %q: %s", ErrUnknownDDSFormat, path, desc)
	}

	payload, err := readLargestMip(f, header, dx10, expected)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrCorruptImage, path, err)
	}

	img, err := bcn.DecodeImageWithOptions(payload, width, height, format, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrDecodeImage, path, err)
	}

	return rasterFromImage(img), nil
}

// readLargestMip reads the raw payload of the largest mip level. EDDS
// files (ENF1 marker) carry a block table with COPY/LZ4 bodies, smallest
// mip first; plain DDS stores the largest mip linearly after the header.
func readLargestMip(r io.ReadSeeker, header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10, expected int) ([]byte, error) {
	dataStart := int64(4 + bcn.DDSHeaderSize)
	if dx10 != nil {
		dataStart += 20
	}

	mipCount := uint32(1)
	if header.Caps&bcn.DDSCapsMipmap != 0 && header.MipMapCount > 0 {
		mipCount = header.MipMapCount
	}

	if header.Reserved1[1] == eddsMarker {
		return readBlockMip(r, dataStart, expected, mipCount)
	}

	if _, err := r.Seek(dataStart, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMipPayload, err)
	}
	payload := make([]byte, expected)
	if _, err := io.ReadFull(r, payload); err != nil {
		// Some EDDS files lack the ENF1 marker; a short linear read is the
		// usual symptom of compressed blocks.
		if blockPayload, berr := readBlockMip(r, dataStart, expected, mipCount); berr == nil {
			return blockPayload, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrMipPayload, err)
	}
	return payload, nil
}

// readBlockMip parses the EDDS block table, skips all bodies but the last
// (the largest mip) and inflates it.
func readBlockMip(r io.ReadSeeker, dataStart int64, expected int, mipCount uint32) ([]byte, error) {
	if _, err := r.Seek(dataStart, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockTableRead, err)
	}

	type blockEntry struct {
		magic string
		size  int32
	}
	table := make([]blockEntry, mipCount)
	for i := range table {
		var hdr [8]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBlockTableRead, i, err)
		}
		magic := string(hdr[:4])
		size := int32(binary.LittleEndian.Uint32(hdr[4:]))
		if magic != blockMagicCOPY && magic != blockMagicLZ4 {
			return nil, fmt.Errorf("%w: entry %d: magic %q", ErrBlockTableRead, i, magic)
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: entry %d: size %d", ErrBlockTableRead, i, size)
		}
		table[i] = blockEntry{magic: magic, size: size}
	}

	for i := 0; i < len(table)-1; i++ {
		if _, err := r.Seek(int64(table[i].size), io.SeekCurrent); err != nil {
			return nil, fmt.Errorf("%w: mip %d: %v", ErrBlockBodyRead, i, err)
		}
	}

	last := table[len(table)-1]
	body := make([]byte, last.size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockBodyRead, err)
	}

	if last.magic == blockMagicCOPY {
		if len(body) != expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrMipSizeMismatch, expected, len(body))
		}
		return body, nil
	}

	return decompressChunkStream(body, expected)
}

// decompressChunkStream inflates an Enfusion LZ4 chunk stream: chunks of a
// 3-byte compressed size plus a flag byte (0x80 marks the last chunk),
// decoded against a rolling 64KB dictionary. An optional leading uint32
// repeats the uncompressed size.
func decompressChunkStream(body []byte, expected int) ([]byte, error) {
	if len(body) >= 4 && int(binary.LittleEndian.Uint32(body[:4])) == expected {
		body = body[4:]
	}

	target := make([]byte, expected)
	outIdx := 0
	off := 0

	var dict []byte

	for {
		if len(body)-off < 4 {
			return nil, fmt.Errorf("%w: need 4 header bytes, have %d", ErrChunkStreamTruncated, len(body)-off)
		}
		cSize := int(body[off]) | int(body[off+1])<<8 | int(body[off+2])<<16
		flags := body[off+3]
		off += 4

		if flags&^0x80 != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownChunkFlags, flags)
		}
		if cSize <= 0 || cSize > len(body)-off {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, len(body)-off)
		}
		compressed := body[off : off+cSize]
		off += cSize

		remaining := expected - outIdx
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		want := lz4ChunkSize
		if want > remaining {
			want = remaining
		}

		n, err := lz4.UncompressBlockWithDict(compressed, target[outIdx:outIdx+want], dict)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		outIdx += n

		// The dictionary is the last 64KB of decoded output.
		start := outIdx - lz4ChunkSize
		if start < 0 {
			start = 0
		}
		dict = target[start:outIdx]

		if flags&0x80 != 0 {
			break
		}
	}

	if outIdx != expected {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, expected, outIdx)
	}

	return target, nil
}

// detectDDSFormat maps the header pixel format (or DX10 DXGI format) to a
// BCn decode format, plus a short description for diagnostics.
func detectDDSFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) (bcn.Format, string) {
	if dx10 != nil {
		desc := fmt.Sprintf("DXGI %d", dx10.DXGIFormat)
		switch dx10.DXGIFormat {
		case 71:
			return bcn.FormatDXT1, desc
		case 74:
			return bcn.FormatDXT3, desc
		case 77:
			return bcn.FormatDXT5, desc
		case 80:
			return bcn.FormatBC4, desc
		case 83:
			return bcn.FormatBC5, desc
		case 87:
			return bcn.FormatBGRA8, desc
		case 28:
			return bcn.FormatRGBA8, desc
		default:
			return bcn.FormatUnknown, desc
		}
	}

	pf := header.PixelFormat
	if pf.Flags&bcn.DDSPFFourCC != 0 {
		fourCC := string([]byte{
			byte(pf.FourCC), byte(pf.FourCC >> 8),
			byte(pf.FourCC >> 16), byte(pf.FourCC >> 24),
		})
		switch fourCC {
		case "DXT1":
			return bcn.FormatDXT1, fourCC
		case "DXT2", "DXT3":
			return bcn.FormatDXT3, fourCC
		case "DXT4", "DXT5":
			return bcn.FormatDXT5, fourCC
		case "ATI1", "BC4U", "BC4S":
			return bcn.FormatBC4, fourCC
		case "ATI2", "BC5U", "BC5S":
			return bcn.FormatBC5, fourCC
		default:
			return bcn.FormatUnknown, fourCC
		}
	}

	if pf.Flags&bcn.DDSPFRGB != 0 && pf.Flags&bcn.DDSPFAlphaPixels != 0 && pf.RGBBitCount == 32 {
		if pf.RBitMask == 0x000000ff && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x00ff0000 && pf.ABitMask == 0xff000000 {
			return bcn.FormatRGBA8, "RGBA8"
		}
		if pf.RBitMask == 0x00ff0000 && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x000000ff && pf.ABitMask == 0xff000000 {
			return bcn.FormatBGRA8, "BGRA8"
		}
	}

	if pf.Flags&bcn.DDSPFLuminance != 0 && pf.RGBBitCount == 8 {
		return bcn.FormatRGBA8, "LUMINANCE8"
	}

	return bcn.FormatUnknown, "UNKNOWN"
}

// linearDataLength returns the byte length of one full-size mip level for
// the format, or -1 when the format is not decodable.
func linearDataLength(format bcn.Format, width, height int) int {
	blocksW := (width + 3) / 4
	blocksH := (height + 3) / 4
	switch format {
	case bcn.FormatDXT1, bcn.FormatBC4:
		return blocksW * blocksH * 8
	case bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return blocksW * blocksH * 16
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return width * height * 4
	default:
		return -1
	}
}
