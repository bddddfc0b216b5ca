package capture

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"time"

	"marketwire/internal/layout"
	"marketwire/internal/native"
	"marketwire/internal/schema"
)

// Clock allows deterministic replay pacing in tests.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TransportConfig controls replay behavior.
type TransportConfig struct {
	Path string

	// Speed paces records by their event timestamps: 1 replays in real
	// time, 2 at double speed, 0 as fast as the reader can go.
	Speed float64
}

func (c TransportConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("invalid replay config: Path is empty")
	}
	if c.Speed < 0 {
		return fmt.Errorf("invalid replay config: Speed must be >= 0")
	}
	return nil
}

// Transport replays a capture file through the foreign-transport interface,
// so a replayed session runs through the exact client path a live one does.
type Transport struct {
	cfg    TransportConfig
	clock  Clock
	file   *os.File
	reader *Reader
	prevTs uint64
}

var _ native.Transport = (*Transport)(nil)

// NewTransport validates cfg and creates a replay transport. The file is not
// touched until Start.
func NewTransport(cfg TransportConfig) (*Transport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Transport{cfg: cfg, clock: realClock{}}, nil
}

// WithClock swaps the pacing clock.
func (t *Transport) WithClock(clock Clock) *Transport {
	if clock != nil {
		t.clock = clock
	}
	return t
}

// Start opens the capture file and derives session metadata from its header.
func (t *Transport) Start() (native.Metadata, error) {
	if err := t.open(); err != nil {
		return native.Metadata{}, err
	}

	hdr := t.reader.Header()
	meta := native.Metadata{
		Dataset: hdr.Dataset,
		Version: hdr.SchemaVersion,
	}
	switch hdr.SchemaVersion {
	case schema.V1:
		meta.SymbolWidth = layout.SymbolWidthV1
	case schema.V2:
		meta.SymbolWidth = layout.SymbolWidthV2
	}
	return meta, nil
}

// Subscribe accepts any subscription. A capture holds one recorded session;
// filtering happens upstream of the file, not on replay.
func (t *Transport) Subscribe(native.Subscription) error { return nil }

// NextRecord returns the next recorded frame, paced by event time when the
// config asks for it. The buffer is reused across calls.
func (t *Transport) NextRecord(ctx context.Context) ([]byte, error) {
	if t.reader == nil {
		return nil, fmt.Errorf("replay transport not started")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := t.reader.Next()
	if err != nil {
		return nil, err
	}
	if err := t.pace(ctx, raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Reconnect rewinds the replay to the first record.
func (t *Transport) Reconnect() error {
	if t.file == nil {
		return fmt.Errorf("replay transport not started")
	}
	if err := t.file.Close(); err != nil {
		return err
	}
	t.prevTs = 0
	return t.open()
}

// Close releases the underlying file.
func (t *Transport) Close() error {
	if t.file == nil {
		return nil
	}
	err := t.file.Close()
	t.file = nil
	t.reader = nil
	return err
}

func (t *Transport) open() error {
	file, err := os.Open(t.cfg.Path)
	if err != nil {
		return err
	}
	reader, err := NewReader(file)
	if err != nil {
		_ = file.Close()
		return err
	}
	t.file = file
	t.reader = reader
	return nil
}

func (t *Transport) pace(ctx context.Context, raw []byte) error {
	if t.cfg.Speed <= 0 || len(raw) < schema.HeaderSize {
		return nil
	}
	current := binary.LittleEndian.Uint64(raw[8:16])
	if current == 0 {
		return nil
	}
	if t.prevTs > 0 && current > t.prevTs {
		sleep := time.Duration(float64(current-t.prevTs) / t.cfg.Speed)
		if err := t.clock.Sleep(ctx, sleep); err != nil {
			return err
		}
	}
	t.prevTs = current
	return nil
}
