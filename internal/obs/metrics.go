package obs

import (
	"sync/atomic"
	"time"

	"marketwire/internal/schema"
)

// Metrics collects lightweight counters and latency stats for one handle.
// All methods are nil-safe so instrumentation stays optional.
type Metrics struct {
	recordCounts [256]uint64 // indexed by record-type tag
	decodeErrors uint64
	faults       uint64
	faultedCalls uint64
	cancelled    uint64

	decodeLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	RecordCounts  map[schema.RType]uint64
	DecodeErrors  uint64
	Faults        uint64
	FaultedCalls  uint64
	Cancelled     uint64
	DecodeLatency LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// ObserveDecode counts a decoded record and tracks decode latency.
func (m *Metrics) ObserveDecode(rtype schema.RType, d time.Duration) {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.recordCounts[int(rtype)], 1)
	m.decodeLatency.Observe(d)
}

// IncDecodeError counts a rejected buffer.
func (m *Metrics) IncDecodeError() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.decodeErrors, 1)
}

// IncFault counts an intercepted catastrophic foreign failure.
func (m *Metrics) IncFault() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.faults, 1)
}

// IncFaultedCall counts a call rejected because the handle was already
// Faulted.
func (m *Metrics) IncFaultedCall() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.faultedCalls, 1)
}

// IncCancelled counts a cooperatively cancelled retrieval.
func (m *Metrics) IncCancelled() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.cancelled, 1)
}

// Snapshot returns a copy of the current metrics values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	recordCounts := make(map[schema.RType]uint64)
	for i := range m.recordCounts {
		if v := atomic.LoadUint64(&m.recordCounts[i]); v > 0 {
			recordCounts[schema.RType(i)] = v
		}
	}
	return Snapshot{
		RecordCounts:  recordCounts,
		DecodeErrors:  atomic.LoadUint64(&m.decodeErrors),
		Faults:        atomic.LoadUint64(&m.faults),
		FaultedCalls:  atomic.LoadUint64(&m.faultedCalls),
		Cancelled:     atomic.LoadUint64(&m.cancelled),
		DecodeLatency: m.decodeLatency.Snapshot(),
	}
}

// Observe records a duration sample.
func (l *LatencyStats) Observe(d time.Duration) {
	if d < 0 {
		return
	}
	nanos := uint64(d)
	atomic.AddUint64(&l.count, 1)
	atomic.AddUint64(&l.sum, nanos)

	for {
		min := atomic.LoadUint64(&l.min)
		if min != 0 && nanos >= min {
			break
		}
		if atomic.CompareAndSwapUint64(&l.min, min, nanos) {
			break
		}
	}

	for {
		max := atomic.LoadUint64(&l.max)
		if nanos <= max {
			break
		}
		if atomic.CompareAndSwapUint64(&l.max, max, nanos) {
			break
		}
	}
}

// Snapshot returns the aggregated latency stats.
func (l *LatencyStats) Snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&l.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&l.sum)
	min := atomic.LoadUint64(&l.min)
	max := atomic.LoadUint64(&l.max)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(min),
		Max:   time.Duration(max),
		Avg:   time.Duration(sum / count),
	}
}
