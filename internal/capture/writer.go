package capture

import (
	"bufio"
	"encoding/binary"
	"errors"
	"os"
)

var ErrWriterClosed = errors.New("capture writer closed")

const writerBufferSize = 256 << 10

// Writer appends raw wire records to a capture file. It is synchronous;
// callers feed it from the record loop they already own.
type Writer struct {
	file   *os.File
	buf    *bufio.Writer
	closed bool

	scratch [frameLenSize + frameChecksumSize]byte
}

// Create opens a new capture file at path. Creation is exclusive so a replay
// target is never silently overwritten.
func Create(path string, header FileHeader) (*Writer, error) {
	var hdr [fileHeaderSize]byte
	if err := encodeFileHeader(hdr[:], header); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}

	w := &Writer{
		file: file,
		buf:  bufio.NewWriterSize(file, writerBufferSize),
	}
	if _, err := w.buf.Write(hdr[:]); err != nil {
		_ = file.Close()
		return nil, err
	}
	return w, nil
}

// Append writes one raw record frame.
func (w *Writer) Append(raw []byte) error {
	if w.closed {
		return ErrWriterClosed
	}
	if len(raw) > maxFrameLen {
		return ErrFrameTooLarge
	}

	binary.LittleEndian.PutUint32(w.scratch[0:frameLenSize], uint32(len(raw)))
	if _, err := w.buf.Write(w.scratch[0:frameLenSize]); err != nil {
		return err
	}
	if _, err := w.buf.Write(raw); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(w.scratch[frameLenSize:], frameChecksum(raw))
	if _, err := w.buf.Write(w.scratch[frameLenSize:]); err != nil {
		return err
	}
	return nil
}

// Flush pushes buffered frames to the OS without syncing.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrWriterClosed
	}
	return w.buf.Flush()
}

// Close flushes, syncs and closes the file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	if err := w.file.Sync(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
