// Package client exposes the market-data client handle.
//
// A Handle owns exactly one foreign transport and the diagnostic sink it was
// constructed with. There is no path from application code to the transport
// that bypasses the guard, and no path that hands the application an
// undecoded buffer.
package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/yanun0323/logs"

	"marketwire/internal/bus"
	"marketwire/internal/codec"
	"marketwire/internal/layout"
	"marketwire/internal/native"
	"marketwire/internal/obs"
	"marketwire/internal/schema"
	"marketwire/internal/sink"
	"marketwire/pkg/exception"
)

const (
	maxSymbols       = 2048
	maxSymbolLen     = 64
	defaultQueueSize = 1024
)

// Config describes one client handle.
type Config struct {
	// Transport is the foreign client connection, supplied by the session
	// layer. Required.
	Transport native.Transport

	// Dataset is the dataset every subscription on this handle targets.
	Dataset string

	// Version pins the wire layout revision. Zero takes the revision from
	// the session metadata.
	Version schema.Version

	// Table overrides the layout tables. Nil selects the authored defaults.
	Table *layout.Table

	// Sink receives foreign diagnostics. Nil selects the default sink.
	Sink sink.Sink

	// Metrics is optional instrumentation shared with the caller.
	Metrics *obs.Metrics

	// QueueSize bounds the Stream delivery queue.
	QueueSize int
}

// Handle is one independent client instance. Handles share no state: a
// fault in one never affects another.
type Handle struct {
	cfg     Config
	guard   *native.Guard
	tr      native.Transport
	dec     *codec.Decoder
	snk     sink.Sink
	meta    native.Metadata
	version schema.Version
	metrics *obs.Metrics

	subMu sync.Mutex
	subs  []native.Subscription
}

// Open starts a session on the transport and returns a Healthy handle.
func Open(cfg Config) (*Handle, error) {
	if cfg.Transport == nil {
		return nil, exception.ErrNilTransport
	}
	if cfg.Dataset == "" {
		return nil, exception.ErrEmptyDataset
	}

	snk := sink.OrDefault(cfg.Sink)
	h := &Handle{
		cfg:     cfg,
		guard:   native.NewGuard(snk),
		tr:      cfg.Transport,
		dec:     codec.NewDecoder(cfg.Table),
		snk:     snk,
		metrics: cfg.Metrics,
	}

	var meta native.Metadata
	err := h.guard.Do(func() error {
		m, err := h.tr.Start()
		meta = m
		return err
	})
	if err != nil {
		h.Close()
		return nil, fmt.Errorf("start session: %w", err)
	}
	h.meta = meta

	h.version = cfg.Version
	if h.version == schema.VersionUnknown {
		h.version = meta.Version
	}
	if h.version == schema.VersionUnknown {
		h.Close()
		return nil, fmt.Errorf("%w: session metadata carries no schema version", exception.ErrUnsupportedVersion)
	}

	logs.Debugf("session started: dataset %s, schema version %d", cfg.Dataset, h.version)
	return h, nil
}

// State returns the handle lifecycle state.
func (h *Handle) State() native.State {
	return h.guard.State()
}

// Metadata returns the session metadata captured at Open.
func (h *Handle) Metadata() native.Metadata {
	return h.meta
}

// SchemaVersion returns the layout revision this handle decodes under.
func (h *Handle) SchemaVersion() schema.Version {
	return h.version
}

// Subscribe requests a data feed for the given symbols.
func (h *Handle) Subscribe(kind schema.Kind, symbols ...string) error {
	return h.subscribe(kind, 0, symbols)
}

// SubscribeWithReplay requests a feed with intraday replay from startNs.
func (h *Handle) SubscribeWithReplay(kind schema.Kind, startNs uint64, symbols ...string) error {
	return h.subscribe(kind, startNs, symbols)
}

func (h *Handle) subscribe(kind schema.Kind, startNs uint64, symbols []string) error {
	if kind == schema.KindUnknown {
		return exception.ErrUnknownDataKind
	}
	if err := validateSymbols(symbols); err != nil {
		return err
	}

	sub := native.Subscription{
		Dataset:       h.cfg.Dataset,
		Kind:          kind,
		Symbols:       append([]string(nil), symbols...),
		ReplayStartNs: startNs,
	}
	if err := h.guard.Do(func() error { return h.tr.Subscribe(sub) }); err != nil {
		return h.observeCallError(err)
	}

	h.subMu.Lock()
	h.subs = append(h.subs, sub)
	h.subMu.Unlock()
	return nil
}

func validateSymbols(symbols []string) error {
	if len(symbols) == 0 {
		return exception.ErrNoSymbols
	}
	if len(symbols) > maxSymbols {
		return exception.ErrTooManySymbols
	}
	for _, s := range symbols {
		if s == "" {
			return exception.ErrEmptySymbol
		}
		if len(s) > maxSymbolLen {
			return exception.ErrOversizeSymbol
		}
	}
	return nil
}

// NextRecord pulls and decodes one record. It returns io.EOF when the
// stream ends, ErrCancelled when ctx is done (the handle stays Healthy),
// ErrForeignCallFailure when a catastrophic failure was intercepted (the
// handle is Faulted), and ErrClientFaulted immediately on an already
// Faulted handle.
func (h *Handle) NextRecord(ctx context.Context) (schema.Record, error) {
	if err := ctx.Err(); err != nil {
		h.metrics.IncCancelled()
		return nil, fmt.Errorf("%w: %v", exception.ErrCancelled, err)
	}

	var raw []byte
	err := h.guard.Do(func() error {
		b, err := h.tr.NextRecord(ctx)
		raw = b
		return err
	})
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			h.metrics.IncCancelled()
			return nil, fmt.Errorf("%w: %v", exception.ErrCancelled, err)
		}
		return nil, h.observeCallError(err)
	}

	start := time.Now()
	rec, err := h.dec.Decode(raw, h.version)
	if err != nil {
		// Malformed buffers are returned to the caller and never retried;
		// a bad buffer does not fault the handle.
		h.metrics.IncDecodeError()
		return nil, err
	}
	h.metrics.ObserveDecode(rec.Header().RType, time.Since(start))
	return rec, nil
}

// NextRecordTimeout is NextRecord with a deadline.
func (h *Handle) NextRecordTimeout(timeout time.Duration) (schema.Record, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return h.NextRecord(ctx)
}

// Stream pulls records and hands them to handler in arrival order until the
// stream ends or ctx is done. A nil return means the stream ended cleanly.
func (h *Handle) Stream(ctx context.Context, handler func(schema.Record)) error {
	if handler == nil {
		return exception.ErrNilConsumer
	}

	queueSize := h.cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	q := bus.NewQueue(queueSize)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		q.Run(ctx, handler)
	}()

	var streamErr error
	for {
		rec, err := h.NextRecord(ctx)
		if err != nil {
			if err != io.EOF {
				streamErr = err
			}
			break
		}
		if err := q.Publish(ctx, rec); err != nil {
			if streamErr == nil && !errors.Is(err, context.Canceled) {
				streamErr = err
			}
			break
		}
	}

	q.Close()
	<-done
	return streamErr
}

// Reconnect re-establishes the foreign session. Only a Healthy handle may
// reconnect; a Faulted one stays Faulted.
func (h *Handle) Reconnect() error {
	if err := h.guard.Do(func() error { return h.tr.Reconnect() }); err != nil {
		return h.observeCallError(err)
	}
	return nil
}

// Resubscribe replays every subscription made on this handle, in order.
func (h *Handle) Resubscribe() error {
	h.subMu.Lock()
	subs := append([]native.Subscription(nil), h.subs...)
	h.subMu.Unlock()

	for _, sub := range subs {
		if err := h.guard.Do(func() error { return h.tr.Subscribe(sub) }); err != nil {
			return h.observeCallError(err)
		}
	}
	return nil
}

// Close disposes the handle. Safe to call repeatedly and from any state.
func (h *Handle) Close() {
	h.guard.Dispose(func() {
		if err := h.tr.Close(); err != nil {
			h.snk.Emit(sink.LevelWarning, "close transport: "+err.Error())
		}
	})
}

func (h *Handle) observeCallError(err error) error {
	switch {
	case errors.Is(err, exception.ErrForeignCallFailure):
		h.metrics.IncFault()
	case errors.Is(err, exception.ErrClientFaulted):
		h.metrics.IncFaultedCall()
	}
	return err
}
