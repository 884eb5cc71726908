package faftex

import "errors"

var (
	// ErrNotApplicable indicates a decoder does not claim the file's extension.
	ErrNotApplicable = errors.New("format not applicable")
	// ErrCorruptImage indicates a claimed extension with unparseable bytes.
	ErrCorruptImage = errors.New("image may be corrupt")
	// ErrUnreadableImage indicates no decoder in the chain claimed the file.
	ErrUnreadableImage = errors.New("image cannot be read by any decoder")
	// ErrUnknownTextureKind indicates an unrecognized texture kind name.
	ErrUnknownTextureKind = errors.New("unknown texture kind")

	// ErrOpenArchive indicates the container could not be opened as a zip.
	ErrOpenArchive = errors.New("open archive failed")
	// ErrArchiveEntryMissing indicates the requested entry is absent from the container.
	ErrArchiveEntryMissing = errors.New("archive entry missing")
	// ErrStageEntry indicates extracting the entry to the staging dir failed.
	ErrStageEntry = errors.New("stage archive entry failed")

	// ErrTexconv indicates the external DDS-to-PNG conversion failed.
	ErrTexconv = errors.New("texconv conversion failed")

	// ErrOpenFile indicates a texture file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrDDSHeaderRead indicates a DDS header read failed.
	ErrDDSHeaderRead = errors.New("reading DDS header failed")
	// ErrUnknownDDSFormat indicates an unsupported DDS pixel format.
	ErrUnknownDDSFormat = errors.New("unknown DDS format")
	// ErrBlockTableRead indicates an EDDS block table read failed.
	ErrBlockTableRead = errors.New("reading block table failed")
	// ErrBlockBodyRead indicates an EDDS block body read failed.
	ErrBlockBodyRead = errors.New("reading block body failed")
	// ErrMipPayload indicates the largest mip payload could not be read.
	ErrMipPayload = errors.New("reading mip payload failed")
	// ErrMipSizeMismatch indicates a mip payload size mismatch.
	ErrMipSizeMismatch = errors.New("mip payload size mismatch")
	// ErrChunkStreamTruncated indicates an LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownChunkFlags indicates unknown LZ4 chunk flags.
	ErrUnknownChunkFlags = errors.New("unknown LZ4 chunk flags")
	// ErrInvalidChunkSize indicates an invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrLZ4Decode indicates LZ4 block decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrDecodeOverrun indicates decoded data overruns the target buffer.
	ErrDecodeOverrun = errors.New("decoded LZ4 overruns target buffer")
	// ErrDecodedSizeMismatch indicates an LZ4 decoded size mismatch.
	ErrDecodedSizeMismatch = errors.New("LZ4 decoded size mismatch")
	// ErrDecodeImage indicates BCn image decode failed.
	ErrDecodeImage = errors.New("decode image failed")
)
