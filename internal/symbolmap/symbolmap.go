// Package symbolmap resolves instrument ids back to text symbols using the
// symbol-mapping records a session emits.
//
// Two shapes cover the two access patterns: PitMap keeps the latest mapping
// only (live sessions, where the newest mapping wins), TsMap keeps every
// mapping interval so historical records can be resolved at their own
// timestamp. Neither is safe for concurrent use; callers feed them from a
// single record loop.
package symbolmap

import (
	"sort"
	"time"

	"marketwire/internal/schema"
)

// PitMap is a point-in-time view: one symbol per instrument id, the most
// recently applied mapping wins.
type PitMap struct {
	symbols map[uint32]string
}

func NewPitMap() *PitMap {
	return &PitMap{symbols: make(map[uint32]string)}
}

// OnRecord applies rec if it is a symbol mapping and ignores everything
// else, so the caller can feed its whole record stream through unfiltered.
func (m *PitMap) OnRecord(rec schema.Record) {
	sm, ok := rec.(schema.SymbolMapping)
	if !ok {
		return
	}

	id := sm.Hdr.InstrumentID
	if sm.STypeOutSymbol == "" {
		delete(m.symbols, id)
		return
	}
	m.symbols[id] = sm.STypeOutSymbol
}

// Get returns the current symbol for id.
func (m *PitMap) Get(id uint32) (string, bool) {
	s, ok := m.symbols[id]
	return s, ok
}

func (m *PitMap) Len() int { return len(m.symbols) }

func (m *PitMap) IsEmpty() bool { return len(m.symbols) == 0 }

// interval is one mapping validity window. End is exclusive; zero End means
// open-ended.
type interval struct {
	start  uint64
	end    uint64
	symbol string
}

// TsMap is a time-sliced view: every mapping interval is retained and
// lookups carry the timestamp they want resolved.
type TsMap struct {
	insts map[uint32][]interval
	size  int
}

func NewTsMap() *TsMap {
	return &TsMap{insts: make(map[uint32][]interval)}
}

// OnRecord records the mapping interval carried by rec. Non-mapping records
// and mappings with an empty output symbol are ignored.
func (m *TsMap) OnRecord(rec schema.Record) {
	sm, ok := rec.(schema.SymbolMapping)
	if !ok || sm.STypeOutSymbol == "" {
		return
	}

	id := sm.Hdr.InstrumentID
	ivs := m.insts[id]
	ivs = append(ivs, interval{start: sm.StartTs, end: sm.EndTs, symbol: sm.STypeOutSymbol})
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].start < ivs[j].start })
	m.insts[id] = ivs
	m.size++
}

// FindNs resolves id at a nanosecond UNIX timestamp. Later-starting
// intervals shadow earlier ones when they overlap.
func (m *TsMap) FindNs(tsNs uint64, id uint32) (string, bool) {
	ivs := m.insts[id]
	for i := len(ivs) - 1; i >= 0; i-- {
		iv := ivs[i]
		if tsNs < iv.start {
			continue
		}
		if iv.end != 0 && tsNs >= iv.end {
			continue
		}
		return iv.symbol, true
	}
	return "", false
}

// Find resolves id at t. Dates resolve at midnight UTC, matching how mapping
// intervals are cut.
func (m *TsMap) Find(t time.Time, id uint32) (string, bool) {
	return m.FindNs(uint64(t.UnixNano()), id)
}

// Len counts retained intervals across all instruments.
func (m *TsMap) Len() int { return m.size }

func (m *TsMap) IsEmpty() bool { return m.size == 0 }
