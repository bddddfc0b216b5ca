package enum

import "testing"

func TestFromByteUnknownFallback(t *testing.T) {
	// Unmapped bytes are data, not errors: every enum folds them to Unknown.
	if got := SideFromByte('Z'); got != SideUnknown {
		t.Fatalf("side mismatch! should be %v but got %v", SideUnknown, got)
	}
	if got := ActionFromByte(0xFF); got != ActionUnknown {
		t.Fatalf("action mismatch! should be %v but got %v", ActionUnknown, got)
	}
	if got := InstrumentClassFromByte(0); got != InstrumentClassUnknown {
		t.Fatalf("class mismatch! should be %v but got %v", InstrumentClassUnknown, got)
	}
	if got := STypeFromByte('z'); got != STypeUnknown {
		t.Fatalf("stype mismatch! should be %v but got %v", STypeUnknown, got)
	}
}

func TestFromByteMapped(t *testing.T) {
	if got := SideFromByte('B'); got != SideBid {
		t.Fatalf("side mismatch! should be %v but got %v", SideBid, got)
	}
	if got := ActionFromByte('T'); got != ActionTrade {
		t.Fatalf("action mismatch! should be %v but got %v", ActionTrade, got)
	}
	if got := InstrumentClassFromByte('F'); got != InstrumentClassFuture {
		t.Fatalf("class mismatch! should be %v but got %v", InstrumentClassFuture, got)
	}
	if got := STypeFromByte('R'); got != STypeRawSymbol {
		t.Fatalf("stype mismatch! should be %v but got %v", STypeRawSymbol, got)
	}
}

func TestGeneratedStrings(t *testing.T) {
	testCases := []struct {
		got  string
		want string
	}{
		{InstrumentClassFuture.String(), "Future"},
		{SideAsk.String(), "Ask"},
		{ActionTrade.String(), "Trade"},
		{STypeRawSymbol.String(), "RawSymbol"},
		{InstrumentClassUnknown.String(), "Unknown"},
		{Side(0x7F).String(), "Unknown"},
	}
	for _, tc := range testCases {
		if tc.got != tc.want {
			t.Fatalf("string mismatch! should be %s but got %s", tc.want, tc.got)
		}
	}
}
