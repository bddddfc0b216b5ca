package exception

import "github.com/yanun0323/errors"

// Wire decode errors
var (
	// ErrTruncatedBuffer is returned when a field read would run past the
	// end of the record buffer. Decoding of that record aborts.
	ErrTruncatedBuffer = errors.New("wire: read past buffer bounds")

	// ErrLengthMismatch is returned when the header-declared record length
	// disagrees with the actual buffer length. No field is decoded.
	ErrLengthMismatch = errors.New("wire: declared length mismatches buffer length")

	ErrUnsupportedVersion = errors.New("wire: unsupported schema version")
	ErrUnsupportedType    = errors.New("wire: unsupported record type")

	// ErrOversizeField is returned by the reference encoder when a value
	// does not fit the field width the layout declares.
	ErrOversizeField = errors.New("wire: value exceeds field width")
)
