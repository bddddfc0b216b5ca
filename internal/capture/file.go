// Package capture persists raw wire records to disk and replays them through
// the same transport interface a live session uses.
//
// A capture file opens with a fixed 32-byte header (magic, format version,
// schema version, dataset) followed by frames. Each frame is a uint32
// little-endian payload length, the raw record bytes, and a CRC-32C checksum
// over the payload. Records are stored exactly as they arrived, so a replayed
// session decodes byte-for-byte like the live one did.
package capture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"

	"marketwire/internal/schema"
)

const (
	formatVersion  uint16 = 1
	fileHeaderSize        = 32
	datasetWidth          = 24

	frameLenSize      = 4
	frameChecksumSize = 4

	// maxFrameLen caps a frame well above any legal wire record, which is
	// at most 255 length units of 4 bytes.
	maxFrameLen = 64 << 10
)

var (
	fileMagic = [4]byte{'M', 'W', 'C', '1'}
	crcTable  = crc32.MakeTable(crc32.Castagnoli)
)

var (
	ErrInvalidMagic       = errors.New("capture invalid magic")
	ErrUnsupportedFormat  = errors.New("capture unsupported format version")
	ErrChecksumMismatch   = errors.New("capture checksum mismatch")
	ErrFrameTooLarge      = errors.New("capture frame too large")
	ErrOversizeDataset    = errors.New("capture dataset name too long")
	ErrInvalidSchemaValue = errors.New("capture invalid schema version")
)

// FileHeader identifies what a capture file holds.
type FileHeader struct {
	SchemaVersion schema.Version
	Dataset       string
}

func encodeFileHeader(dst []byte, h FileHeader) error {
	_ = dst[fileHeaderSize-1]
	if len(h.Dataset) > datasetWidth {
		return ErrOversizeDataset
	}
	if h.SchemaVersion == schema.VersionUnknown {
		return ErrInvalidSchemaValue
	}
	copy(dst[0:4], fileMagic[:])
	binary.LittleEndian.PutUint16(dst[4:6], formatVersion)
	binary.LittleEndian.PutUint16(dst[6:8], uint16(h.SchemaVersion))
	for i := range dst[8 : 8+datasetWidth] {
		dst[8+i] = 0
	}
	copy(dst[8:8+datasetWidth], h.Dataset)
	return nil
}

func decodeFileHeader(src []byte) (FileHeader, error) {
	if len(src) < fileHeaderSize {
		return FileHeader{}, ErrInvalidMagic
	}
	if !bytes.Equal(src[0:4], fileMagic[:]) {
		return FileHeader{}, ErrInvalidMagic
	}
	if ver := binary.LittleEndian.Uint16(src[4:6]); ver != formatVersion {
		return FileHeader{}, ErrUnsupportedFormat
	}
	h := FileHeader{
		SchemaVersion: schema.Version(binary.LittleEndian.Uint16(src[6:8])),
	}
	name := src[8 : 8+datasetWidth]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	h.Dataset = string(name)
	return h, nil
}

func frameChecksum(payload []byte) uint32 {
	return crc32.Checksum(payload, crcTable)
}
