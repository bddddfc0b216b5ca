package codec

import (
	"encoding/binary"
	"errors"
	"reflect"
	"strings"
	"testing"

	"marketwire/internal/layout"
	"marketwire/internal/schema"
	"marketwire/internal/schema/enum"
	"marketwire/pkg/exception"
)

func header(rtype schema.RType, length int) schema.RecordHeader {
	return schema.RecordHeader{
		Length:       uint8(length / schema.LengthUnit),
		RType:        rtype,
		PublisherID:  42,
		InstrumentID: 5482,
		TsEvent:      1700000000000000001,
	}
}

func roundTrip(t *testing.T, rec schema.Record, version schema.Version) schema.Record {
	t.Helper()
	buf, err := NewEncoder(nil).Encode(rec, version)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := NewDecoder(nil).Decode(buf, version)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	return got
}

func TestTradeRoundTrip(t *testing.T) {
	rec := schema.Trade{
		Hdr:       header(schema.RTypeTrade, layout.TradeLength),
		Price:     schema.Price(5321_250000000),
		Size:      17,
		Action:    enum.ActionTrade,
		Side:      enum.SideAsk,
		Flags:     0x82,
		Depth:     3,
		TsRecv:    1700000000000000555,
		TsInDelta: -19000,
		Sequence:  991182,
	}

	for _, version := range []schema.Version{schema.V1, schema.V2} {
		got := roundTrip(t, rec, version)
		if !reflect.DeepEqual(got, rec) {
			t.Fatalf("v%d trade mismatch!\nwant %+v\ngot  %+v", version, rec, got)
		}
	}
}

func TestOhlcvRoundTrip(t *testing.T) {
	for _, rtype := range []schema.RType{
		schema.RTypeOhlcv1S, schema.RTypeOhlcv1M, schema.RTypeOhlcv1H, schema.RTypeOhlcv1D,
	} {
		rec := schema.Ohlcv{
			Hdr:    header(rtype, layout.OhlcvLength),
			Open:   schema.Price(4_000000000),
			High:   schema.Price(5_500000000),
			Low:    schema.Price(-1_250000000),
			Close:  schema.Price(4_750000000),
			Volume: 123456789,
		}
		got := roundTrip(t, rec, schema.V2)
		if !reflect.DeepEqual(got, rec) {
			t.Fatalf("ohlcv 0x%02X mismatch!\nwant %+v\ngot  %+v", uint8(rtype), rec, got)
		}
	}
}

func TestStatusRoundTrip(t *testing.T) {
	rec := schema.Status{
		Hdr:                   header(schema.RTypeStatus, layout.StatusLength),
		TsRecv:                1700000000000000009,
		Action:                enum.StatusActionHalt,
		Reason:                enum.StatusReasonVolatility,
		TradingEvent:          enum.TradingEventChangeState,
		IsTrading:             enum.TriStateNo,
		IsQuoting:             enum.TriStateYes,
		IsShortSellRestricted: enum.TriStateUnknown,
	}
	got := roundTrip(t, rec, schema.V1)
	if !reflect.DeepEqual(got, rec) {
		t.Fatalf("status mismatch!\nwant %+v\ngot  %+v", rec, got)
	}
}

func TestMessageRoundTrip(t *testing.T) {
	errRec := schema.ErrorMsg{
		Hdr: header(schema.RTypeError, layout.MessageLength),
		Err: "authentication failed",
	}
	if got := roundTrip(t, errRec, schema.V2); !reflect.DeepEqual(got, errRec) {
		t.Fatalf("error message mismatch! got %+v", got)
	}

	sysRec := schema.SystemMsg{
		Hdr: header(schema.RTypeSystem, layout.MessageLength),
		Msg: "Heartbeat",
	}
	if got := roundTrip(t, sysRec, schema.V1); !reflect.DeepEqual(got, sysRec) {
		t.Fatalf("system message mismatch! got %+v", got)
	}
}

func TestSymbolMappingRoundTrip(t *testing.T) {
	rec := schema.SymbolMapping{
		Hdr:            header(schema.RTypeSymbolMapping, layout.SymbolMappingV2Length),
		STypeIn:        enum.STypeRawSymbol,
		STypeInSymbol:  "ESZ3",
		STypeOut:       enum.STypeInstrumentID,
		STypeOutSymbol: "5482",
		StartTs:        1690000000000000000,
		EndTs:          1700000000000000000,
	}
	if got := roundTrip(t, rec, schema.V2); !reflect.DeepEqual(got, rec) {
		t.Fatalf("v2 mapping mismatch!\nwant %+v\ngot  %+v", rec, got)
	}

	// The v1 record has no symbology-type bytes; they stay Unknown through
	// a v1 round trip.
	v1 := rec
	v1.Hdr = header(schema.RTypeSymbolMapping, layout.SymbolMappingV1Length)
	v1.STypeIn = enum.STypeUnknown
	v1.STypeOut = enum.STypeUnknown
	if got := roundTrip(t, v1, schema.V1); !reflect.DeepEqual(got, v1) {
		t.Fatalf("v1 mapping mismatch!\nwant %+v\ngot  %+v", v1, got)
	}
}

func sampleInstrumentDef(version schema.Version) schema.InstrumentDef {
	length := layout.InstrumentDefV1Length
	symbol := strings.Repeat("S", layout.SymbolWidthV1)
	if version == schema.V2 {
		length = layout.InstrumentDefV2Length
		symbol = strings.Repeat("S", layout.SymbolWidthV2)
	}
	return schema.InstrumentDef{
		Hdr: header(schema.RTypeInstrumentDef, length),

		TsRecv:                  1700000000000000021,
		MinPriceIncrement:       schema.Price(250000000),
		DisplayFactor:           100,
		Expiration:              1734000000000000000,
		Activation:              1690000000000000000,
		HighLimitPrice:          schema.Price(6000_000000000),
		LowLimitPrice:           schema.Price(-6000_000000000),
		MaxPriceVariation:       schema.Price(400_000000000),
		UnitOfMeasureQty:        50,
		MinPriceIncrementAmount: 12500000,
		PriceRatio:              -3,
		StrikePrice:             schema.Price(4500_000000000),
		InstAttribValue:         -7,
		UnderlyingID:            17,
		RawInstrumentID:         5482,
		MarketDepthImplied:      2,
		MarketDepth:             10,
		MarketSegmentID:         68,
		MaxTradeVol:             30000,
		MinLotSize:              1,
		MinLotSizeBlock:         100,
		MinLotSizeRoundLot:      -1,
		MinTradeVol:             1,
		ContractMultiplier:      50,
		DecayQuantity:           0,
		OriginalContractSize:    50,
		ApplID:                  -12,
		MaturityYear:            2026,
		DecayStartDate:          0,
		ChannelID:               310,

		Currency:            "USD",
		SettlCurrency:       "USD",
		SecSubType:          "C",
		RawSymbol:           symbol,
		Group:               "ES",
		Exchange:            "XCME",
		Asset:               "ES",
		Cfi:                 "FFIXSX",
		SecurityType:        "FUT",
		UnitOfMeasure:       "Index",
		Underlying:          "ES",
		StrikePriceCurrency: "USD",

		InstrumentClass:        enum.InstrumentClassFuture,
		MatchAlgorithm:         enum.MatchAlgorithmFifo,
		MainFraction:           4,
		PriceDisplayFormat:     2,
		SettlPriceType:         1,
		SubFraction:            8,
		UnderlyingProduct:      17,
		UpdateAction:           enum.UpdateActionAdd,
		MaturityMonth:          12,
		MaturityDay:            15,
		MaturityWeek:           0,
		UserDefinedInstrument:  enum.TriStateNo,
		ContractMultiplierUnit: 1,
		FlowScheduleType:       -1,
		TickRule:               0,
	}
}

// Symbols at the exact field width prove the decoder reads the full declared
// region for each version rather than stopping at the narrower one.
func TestInstrumentDefRoundTrip(t *testing.T) {
	for _, version := range []schema.Version{schema.V1, schema.V2} {
		rec := sampleInstrumentDef(version)
		got := roundTrip(t, rec, version)
		if !reflect.DeepEqual(got, rec) {
			t.Fatalf("v%d definition mismatch!\nwant %+v\ngot  %+v", version, rec, got)
		}
	}
}

// A hand-built 520-byte definition buffer: class byte 'F' decodes as Future,
// the NUL-padded symbol decodes as its text, and zeroing the class byte
// flips only the class to Unknown.
func TestInstrumentDefClassAndSymbolBytes(t *testing.T) {
	lay, ok := layout.Default().Lookup(schema.V2, schema.RTypeInstrumentDef)
	if !ok {
		t.Fatal("v2 definition layout missing")
	}
	classField, ok := lay.Field("instrument_class")
	if !ok {
		t.Fatal("instrument_class field missing")
	}
	symbolField, ok := lay.Field("raw_symbol")
	if !ok {
		t.Fatal("raw_symbol field missing")
	}

	buf := make([]byte, layout.InstrumentDefV2Length)
	buf[0] = uint8(layout.InstrumentDefV2Length / schema.LengthUnit)
	buf[1] = uint8(schema.RTypeInstrumentDef)
	binary.LittleEndian.PutUint32(buf[4:8], 5482)
	buf[classField.Offset] = 'F'
	copy(buf[symbolField.Offset:symbolField.Offset+symbolField.Width], "ESZ3\x00")

	rec, err := NewDecoder(nil).Decode(buf, schema.V2)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	def, ok := rec.(schema.InstrumentDef)
	if !ok {
		t.Fatalf("record type mismatch! got %T", rec)
	}
	if def.InstrumentClass != enum.InstrumentClassFuture {
		t.Fatalf("class mismatch! should be Future but got %s", def.InstrumentClass)
	}
	if def.RawSymbol != "ESZ3" {
		t.Fatalf("symbol mismatch! should be ESZ3 but got %q", def.RawSymbol)
	}

	buf[classField.Offset] = 0
	rec, err = NewDecoder(nil).Decode(buf, schema.V2)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	zeroed := rec.(schema.InstrumentDef)
	if zeroed.InstrumentClass != enum.InstrumentClassUnknown {
		t.Fatalf("class mismatch! should be Unknown but got %s", zeroed.InstrumentClass)
	}
	zeroed.InstrumentClass = def.InstrumentClass
	if !reflect.DeepEqual(zeroed, def) {
		t.Fatal("zeroing the class byte changed another field")
	}
}

func TestDecodeUnknownEnumByteIsUnknown(t *testing.T) {
	rec := schema.Trade{
		Hdr:  header(schema.RTypeTrade, layout.TradeLength),
		Side: enum.SideBid,
	}
	buf, err := NewEncoder(nil).Encode(rec, schema.V2)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	lay, _ := layout.Default().Lookup(schema.V2, schema.RTypeTrade)
	side, _ := lay.Field("side")
	buf[side.Offset] = 'Z'

	got, err := NewDecoder(nil).Decode(buf, schema.V2)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got.(schema.Trade).Side != enum.SideUnknown {
		t.Fatalf("side mismatch! should be Unknown but got %s", got.(schema.Trade).Side)
	}
}

func TestDecodeLengthMismatch(t *testing.T) {
	buf, err := NewEncoder(nil).Encode(schema.Trade{
		Hdr: header(schema.RTypeTrade, layout.TradeLength),
	}, schema.V1)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	dec := NewDecoder(nil)
	if _, err := dec.Decode(buf[:len(buf)-1], schema.V1); !errors.Is(err, exception.ErrLengthMismatch) {
		t.Fatalf("short buffer should be ErrLengthMismatch but got %v", err)
	}

	grown := append(append([]byte(nil), buf...), 0, 0, 0, 0)
	if _, err := dec.Decode(grown, schema.V1); !errors.Is(err, exception.ErrLengthMismatch) {
		t.Fatalf("long buffer should be ErrLengthMismatch but got %v", err)
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	if _, err := NewDecoder(nil).Decode(make([]byte, schema.HeaderSize-1), schema.V1); !errors.Is(err, exception.ErrTruncatedBuffer) {
		t.Fatalf("should be ErrTruncatedBuffer but got %v", err)
	}
	if _, err := DecodeHeader(nil); !errors.Is(err, exception.ErrTruncatedBuffer) {
		t.Fatalf("nil buffer should be ErrTruncatedBuffer but got %v", err)
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	buf, err := NewEncoder(nil).Encode(schema.Trade{
		Hdr: header(schema.RTypeTrade, layout.TradeLength),
	}, schema.V2)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if _, err := NewDecoder(nil).Decode(buf, schema.Version(9)); !errors.Is(err, exception.ErrUnsupportedVersion) {
		t.Fatalf("should be ErrUnsupportedVersion but got %v", err)
	}
}

func TestDecodeUnsupportedType(t *testing.T) {
	buf := make([]byte, 24)
	buf[0] = 6 // 24 bytes in 4-byte units
	buf[1] = 0x7E
	if _, err := NewDecoder(nil).Decode(buf, schema.V2); !errors.Is(err, exception.ErrUnsupportedType) {
		t.Fatalf("should be ErrUnsupportedType but got %v", err)
	}
}

func TestDecodeHeaderFields(t *testing.T) {
	want := header(schema.RTypeTrade, layout.TradeLength)
	buf, err := NewEncoder(nil).Encode(schema.Trade{Hdr: want}, schema.V1)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("decode header failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("header mismatch!\nwant %+v\ngot  %+v", want, got)
	}
	if got.ByteLen() != layout.TradeLength {
		t.Fatalf("byte length mismatch! should be %d but got %d", layout.TradeLength, got.ByteLen())
	}
}
