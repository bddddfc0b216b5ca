package mdg

import (
	"testing"

	"marketwire/internal/schema"
)

func TestNewGeneratorValidation(t *testing.T) {
	if _, err := NewGenerator(Config{}); err == nil {
		t.Fatal("empty symbol list should be rejected")
	}
	if _, err := NewGenerator(Config{Symbols: []string{"ESZ3", ""}}); err == nil {
		t.Fatal("empty symbol should be rejected")
	}
}

func TestBootstrapCoversEverySymbol(t *testing.T) {
	g, err := NewGenerator(Config{Symbols: []string{"ESZ3", "NQZ3"}, StartNs: 100})
	if err != nil {
		t.Fatalf("new generator: %+v", err)
	}

	records := g.Bootstrap()
	if len(records) != 4 {
		t.Fatalf("record count mismatch! should be 4 but got %d", len(records))
	}

	def, ok := records[0].(schema.InstrumentDef)
	if !ok {
		t.Fatalf("record 0 should be a definition, got %T", records[0])
	}
	if def.RawSymbol != "ESZ3" || def.Hdr.InstrumentID != 1 {
		t.Fatalf("definition mismatch! got %s/%d", def.RawSymbol, def.Hdr.InstrumentID)
	}

	sm, ok := records[3].(schema.SymbolMapping)
	if !ok {
		t.Fatalf("record 3 should be a mapping, got %T", records[3])
	}
	if sm.STypeOutSymbol != "NQZ3" || sm.Hdr.InstrumentID != 2 {
		t.Fatalf("mapping mismatch! got %s/%d", sm.STypeOutSymbol, sm.Hdr.InstrumentID)
	}
	if sm.StartTs != 100 {
		t.Fatalf("mapping start mismatch! should be 100 but got %d", sm.StartTs)
	}
}

func TestNextRoundRobin(t *testing.T) {
	g, err := NewGenerator(Config{
		Symbols:    []string{"A", "B"},
		StartNs:    1000,
		IntervalNs: 10,
	})
	if err != nil {
		t.Fatalf("new generator: %+v", err)
	}

	first := g.Next().(schema.Trade)
	second := g.Next().(schema.Trade)
	third := g.Next().(schema.Trade)

	if first.Hdr.InstrumentID != 1 || second.Hdr.InstrumentID != 2 || third.Hdr.InstrumentID != 1 {
		t.Fatalf("round robin mismatch! got %d %d %d",
			first.Hdr.InstrumentID, second.Hdr.InstrumentID, third.Hdr.InstrumentID)
	}
	if first.Sequence != 1 || second.Sequence != 2 || third.Sequence != 3 {
		t.Fatalf("sequence mismatch! got %d %d %d",
			first.Sequence, second.Sequence, third.Sequence)
	}
	if first.Hdr.TsEvent != 1010 || second.Hdr.TsEvent != 1020 {
		t.Fatalf("event clock mismatch! got %d %d", first.Hdr.TsEvent, second.Hdr.TsEvent)
	}
	if second.Price <= first.Price {
		t.Fatalf("instrument prices should differ, got %v and %v", first.Price, second.Price)
	}
}
