// Package native is the boundary to the unmanaged market-data client.
//
// Transport implementations bridge into code this module does not control:
// they may fail catastrophically (panic) instead of returning an error.
// Nothing above this package calls a Transport directly; every crossing
// goes through a Guard.
package native

import (
	"context"

	"marketwire/internal/schema"
)

// Metadata is the session description returned when a transport starts.
type Metadata struct {
	Dataset     string
	Version     schema.Version
	SymbolWidth int
	Symbols     []string
	StartNs     uint64
	EndNs       uint64
}

// Subscription describes one data feed request.
type Subscription struct {
	Dataset string
	Kind    schema.Kind
	Symbols []string

	// ReplayStartNs requests intraday replay from the given timestamp.
	// Zero means live-only.
	ReplayStartNs uint64
}

// Transport is the raw foreign client surface.
//
// NextRecord blocks until a record is available, the stream ends (io.EOF),
// or ctx is done. The returned buffer is only valid until the next call.
// Implementations are not assumed safe for concurrent invocation; the Guard
// serializes access.
type Transport interface {
	Start() (Metadata, error)
	Subscribe(sub Subscription) error
	NextRecord(ctx context.Context) ([]byte, error)
	Reconnect() error
	Close() error
}
