package capture

import (
	"bufio"
	"encoding/binary"
	"io"
)

// Reader decodes capture frames sequentially.
type Reader struct {
	r       *bufio.Reader
	header  FileHeader
	payload []byte
	scratch [frameLenSize + frameChecksumSize]byte
}

// NewReader wraps r and validates the file header before returning.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)

	var hdr [fileHeaderSize]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, ErrInvalidMagic
		}
		return nil, err
	}
	header, err := decodeFileHeader(hdr[:])
	if err != nil {
		return nil, err
	}

	return &Reader{r: br, header: header}, nil
}

// Header returns the capture file header.
func (r *Reader) Header() FileHeader { return r.header }

// Next returns the next raw record. The returned slice is only valid until
// the following call to Next. A clean end of file returns io.EOF; a file cut
// mid-frame returns io.ErrUnexpectedEOF.
func (r *Reader) Next() ([]byte, error) {
	n, err := io.ReadFull(r.r, r.scratch[0:frameLenSize])
	if err != nil {
		if err == io.EOF && n == 0 {
			return nil, io.EOF
		}
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	frameLen := binary.LittleEndian.Uint32(r.scratch[0:frameLenSize])
	if frameLen > maxFrameLen {
		return nil, ErrFrameTooLarge
	}

	if cap(r.payload) < int(frameLen) {
		r.payload = make([]byte, frameLen)
	}
	r.payload = r.payload[:frameLen]
	if frameLen > 0 {
		if _, err := io.ReadFull(r.r, r.payload); err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
	}

	if _, err := io.ReadFull(r.r, r.scratch[frameLenSize:]); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	expected := binary.LittleEndian.Uint32(r.scratch[frameLenSize:])
	if frameChecksum(r.payload) != expected {
		return nil, ErrChecksumMismatch
	}

	return r.payload, nil
}
