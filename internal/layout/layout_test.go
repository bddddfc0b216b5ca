package layout

import (
	"strings"
	"testing"

	"marketwire/internal/schema"
)

func TestLayoutValidate(t *testing.T) {
	valid := Layout{
		Length: 32,
		Fields: []Field{
			{Name: "price", Offset: 16, Width: 8, Kind: KindInt},
			{Name: "size", Offset: 24, Width: 4, Kind: KindUint},
			{Name: "side", Offset: 28, Width: 1, Kind: KindEnum},
			{Name: "reserved", Offset: 29, Width: 3, Kind: KindReserved},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid layout rejected: %v", err)
	}

	testCases := []struct {
		desc    string
		mutate  func(*Layout)
		wantMsg string
	}{
		{
			"shorter than header",
			func(l *Layout) { l.Length = 8; l.Fields = nil },
			"smaller than header",
		},
		{
			"not a length-unit multiple",
			func(l *Layout) { l.Length = 33 },
			"not a multiple",
		},
		{
			"not addressable by length byte",
			func(l *Layout) {
				l.Length = 0x100 * schema.LengthUnit
			},
			"not addressable",
		},
		{
			"field in header region",
			func(l *Layout) { l.Fields[0].Offset = 8 },
			"overlaps the header",
		},
		{
			"field past the end",
			func(l *Layout) { l.Fields[1].Offset = 30 },
			"exceeds layout length",
		},
		{
			"overlapping fields",
			func(l *Layout) { l.Fields[1].Offset = 20 },
			"overlap",
		},
		{
			"odd numeric width",
			func(l *Layout) { l.Fields[1].Width = 3 },
			"width 3",
		},
		{
			"wide enum",
			func(l *Layout) { l.Fields[2].Width = 2; l.Fields[3].Offset = 30; l.Fields[3].Width = 2 },
			"enum field",
		},
		{
			"zero width",
			func(l *Layout) { l.Fields[0].Width = 0 },
			"width 0",
		},
		{
			"unnamed non-reserved field",
			func(l *Layout) { l.Fields[0].Name = "" },
			"unnamed field",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			l := Layout{Length: valid.Length, Fields: append([]Field(nil), valid.Fields...)}
			tc.mutate(&l)
			err := l.Validate()
			if err == nil {
				t.Fatal("invalid layout accepted")
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("error mismatch! should contain %q but got %q", tc.wantMsg, err)
			}
		})
	}
}

func TestTableRegisterRejectsDuplicates(t *testing.T) {
	table := NewTable()
	l := Layout{Length: 16}
	if err := table.Register(schema.V1, schema.RTypeTrade, l); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := table.Register(schema.V1, schema.RTypeTrade, l); err == nil {
		t.Fatal("duplicate register accepted")
	}
	if !table.HasVersion(schema.V1) {
		t.Fatal("registered version not reported")
	}
	if table.HasVersion(schema.V2) {
		t.Fatal("unregistered version reported")
	}
}

func TestDefaultTableLengths(t *testing.T) {
	table := Default()

	testCases := []struct {
		desc    string
		version schema.Version
		rtype   schema.RType
		length  int
	}{
		{"trade v1", schema.V1, schema.RTypeTrade, TradeLength},
		{"trade v2", schema.V2, schema.RTypeTrade, TradeLength},
		{"ohlcv 1s", schema.V2, schema.RTypeOhlcv1S, OhlcvLength},
		{"ohlcv 1d", schema.V1, schema.RTypeOhlcv1D, OhlcvLength},
		{"status", schema.V2, schema.RTypeStatus, StatusLength},
		{"error", schema.V1, schema.RTypeError, MessageLength},
		{"system", schema.V2, schema.RTypeSystem, MessageLength},
		{"symbol mapping v1", schema.V1, schema.RTypeSymbolMapping, SymbolMappingV1Length},
		{"symbol mapping v2", schema.V2, schema.RTypeSymbolMapping, SymbolMappingV2Length},
		{"instrument def v1", schema.V1, schema.RTypeInstrumentDef, InstrumentDefV1Length},
		{"instrument def v2", schema.V2, schema.RTypeInstrumentDef, InstrumentDefV2Length},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			l, ok := table.Lookup(tc.version, tc.rtype)
			if !ok {
				t.Fatal("layout missing")
			}
			if l.Length != tc.length {
				t.Fatalf("length mismatch! should be %d but got %d", tc.length, l.Length)
			}
			if err := l.Validate(); err != nil {
				t.Fatalf("registered layout invalid: %v", err)
			}
		})
	}
}

// The definition record grew between revisions because the fixed symbol
// width went from 22 to 71 bytes. Reading a v2 symbol with the v1 width is
// the historical truncation bug these widths guard against.
func TestDefaultTableSymbolWidths(t *testing.T) {
	table := Default()

	v1, _ := table.Lookup(schema.V1, schema.RTypeInstrumentDef)
	f, ok := v1.Field("raw_symbol")
	if !ok {
		t.Fatal("v1 raw_symbol missing")
	}
	if f.Width != SymbolWidthV1 {
		t.Fatalf("v1 symbol width mismatch! should be %d but got %d", SymbolWidthV1, f.Width)
	}

	v2, _ := table.Lookup(schema.V2, schema.RTypeInstrumentDef)
	f, ok = v2.Field("raw_symbol")
	if !ok {
		t.Fatal("v2 raw_symbol missing")
	}
	if f.Width != SymbolWidthV2 {
		t.Fatalf("v2 symbol width mismatch! should be %d but got %d", SymbolWidthV2, f.Width)
	}

	class, ok := v2.Field("instrument_class")
	if !ok {
		t.Fatal("v2 instrument_class missing")
	}
	if class.Width != 1 || class.Kind != KindEnum {
		t.Fatalf("instrument_class should be a 1-byte enum, got width %d kind %d", class.Width, class.Kind)
	}

	for _, version := range []schema.Version{schema.V1, schema.V2} {
		mapping, _ := table.Lookup(version, schema.RTypeSymbolMapping)
		for _, name := range []string{"stype_in_symbol", "stype_out_symbol"} {
			f, ok := mapping.Field(name)
			if !ok {
				t.Fatalf("v%d %s missing", version, name)
			}
			want := SymbolWidthV1
			if version == schema.V2 {
				want = SymbolWidthV2
			}
			if f.Width != want {
				t.Fatalf("v%d %s width mismatch! should be %d but got %d", version, name, want, f.Width)
			}
		}
	}
}
