package layout

import (
	"fmt"
	"sync"

	"marketwire/internal/schema"
)

// Record byte lengths per version, verified against the upstream layout
// reference. The instrument-definition record grew between revisions because
// the fixed symbol width went from 22 to 71 bytes.
const (
	TradeLength           = 48
	OhlcvLength           = 56
	StatusLength          = 32
	MessageLength         = 80
	SymbolMappingV1Length = 76
	SymbolMappingV2Length = 176
	InstrumentDefV1Length = 360
	InstrumentDefV2Length = 520

	// SymbolWidth is the fixed width of symbol text fields per version.
	SymbolWidthV1 = 22
	SymbolWidthV2 = 71
)

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the authored tables for every supported schema version.
func Default() *Table {
	defaultOnce.Do(func() {
		t := NewTable()
		for _, version := range []schema.Version{schema.V1, schema.V2} {
			mustRegister(t, version, schema.RTypeTrade, tradeLayout())
			for _, rtype := range []schema.RType{
				schema.RTypeOhlcv1S, schema.RTypeOhlcv1M, schema.RTypeOhlcv1H, schema.RTypeOhlcv1D,
			} {
				mustRegister(t, version, rtype, ohlcvLayout())
			}
			mustRegister(t, version, schema.RTypeStatus, statusLayout())
			mustRegister(t, version, schema.RTypeError, messageLayout("err"))
			mustRegister(t, version, schema.RTypeSystem, messageLayout("msg"))
		}
		mustRegister(t, schema.V1, schema.RTypeInstrumentDef,
			instrumentDefLayout(InstrumentDefV1Length, SymbolWidthV1, 7))
		mustRegister(t, schema.V2, schema.RTypeInstrumentDef,
			instrumentDefLayout(InstrumentDefV2Length, SymbolWidthV2, 11))
		mustRegister(t, schema.V1, schema.RTypeSymbolMapping, symbolMappingV1Layout())
		mustRegister(t, schema.V2, schema.RTypeSymbolMapping, symbolMappingV2Layout())
		defaultTable = t
	})
	return defaultTable
}

func mustRegister(t *Table, version schema.Version, rtype schema.RType, l Layout) {
	if err := t.Register(version, rtype, l); err != nil {
		panic(fmt.Sprintf("authored layout table is invalid: %v", err))
	}
}

// builder lays fields out back to back, starting after the record header.
type builder struct {
	fields []Field
	off    int
}

func newBuilder() *builder {
	return &builder{off: schema.HeaderSize}
}

func (b *builder) add(name string, width int, kind Kind) *builder {
	b.fields = append(b.fields, Field{Name: name, Offset: b.off, Width: width, Kind: kind})
	b.off += width
	return b
}

func (b *builder) i64(name string) *builder  { return b.add(name, 8, KindInt) }
func (b *builder) u64(name string) *builder  { return b.add(name, 8, KindUint) }
func (b *builder) i32(name string) *builder  { return b.add(name, 4, KindInt) }
func (b *builder) u32(name string) *builder  { return b.add(name, 4, KindUint) }
func (b *builder) i16(name string) *builder  { return b.add(name, 2, KindInt) }
func (b *builder) u16(name string) *builder  { return b.add(name, 2, KindUint) }
func (b *builder) i8(name string) *builder   { return b.add(name, 1, KindInt) }
func (b *builder) u8(name string) *builder   { return b.add(name, 1, KindUint) }
func (b *builder) enum(name string) *builder { return b.add(name, 1, KindEnum) }

func (b *builder) ascii(name string, width int) *builder {
	return b.add(name, width, KindASCII)
}

// fixed pads the remainder with an explicit reserved region and pins the
// layout to the given total length.
func (b *builder) fixed(total int) Layout {
	if rest := total - b.off; rest > 0 {
		b.fields = append(b.fields, Field{Name: "reserved", Offset: b.off, Width: rest, Kind: KindReserved})
	}
	return Layout{Length: total, Fields: b.fields}
}

func tradeLayout() Layout {
	return newBuilder().
		i64("price").
		u32("size").
		enum("action").
		enum("side").
		u8("flags").
		u8("depth").
		u64("ts_recv").
		i32("ts_in_delta").
		u32("sequence").
		fixed(TradeLength)
}

func ohlcvLayout() Layout {
	return newBuilder().
		i64("open").
		i64("high").
		i64("low").
		i64("close").
		u64("volume").
		fixed(OhlcvLength)
}

func statusLayout() Layout {
	return newBuilder().
		u64("ts_recv").
		enum("action").
		enum("reason").
		enum("trading_event").
		enum("is_trading").
		enum("is_quoting").
		enum("is_short_sell_restricted").
		fixed(StatusLength)
}

func messageLayout(name string) Layout {
	return newBuilder().
		ascii(name, 64).
		fixed(MessageLength)
}

func symbolMappingV1Layout() Layout {
	return newBuilder().
		ascii("stype_in_symbol", SymbolWidthV1).
		ascii("stype_out_symbol", SymbolWidthV1).
		u64("start_ts").
		u64("end_ts").
		fixed(SymbolMappingV1Length)
}

func symbolMappingV2Layout() Layout {
	return newBuilder().
		enum("stype_in").
		ascii("stype_in_symbol", SymbolWidthV2).
		enum("stype_out").
		ascii("stype_out_symbol", SymbolWidthV2).
		u64("start_ts").
		u64("end_ts").
		fixed(SymbolMappingV2Length)
}

func instrumentDefLayout(total, symbolWidth, assetWidth int) Layout {
	return newBuilder().
		u64("ts_recv").
		i64("min_price_increment").
		i64("display_factor").
		u64("expiration").
		u64("activation").
		i64("high_limit_price").
		i64("low_limit_price").
		i64("max_price_variation").
		i64("unit_of_measure_qty").
		i64("min_price_increment_amount").
		i64("price_ratio").
		i64("strike_price").
		i32("inst_attrib_value").
		u32("underlying_id").
		u32("raw_instrument_id").
		i32("market_depth_implied").
		i32("market_depth").
		u32("market_segment_id").
		u32("max_trade_vol").
		i32("min_lot_size").
		i32("min_lot_size_block").
		i32("min_lot_size_round_lot").
		u32("min_trade_vol").
		i32("contract_multiplier").
		i32("decay_quantity").
		i32("original_contract_size").
		i16("appl_id").
		u16("maturity_year").
		u16("decay_start_date").
		u16("channel_id").
		ascii("currency", 4).
		ascii("settl_currency", 4).
		ascii("secsubtype", 6).
		ascii("raw_symbol", symbolWidth).
		ascii("group", 21).
		ascii("exchange", 5).
		ascii("asset", assetWidth).
		ascii("cfi", 7).
		ascii("security_type", 7).
		ascii("unit_of_measure", 31).
		ascii("underlying", 21).
		ascii("strike_price_currency", 4).
		enum("instrument_class").
		enum("match_algorithm").
		u8("main_fraction").
		u8("price_display_format").
		u8("settl_price_type").
		u8("sub_fraction").
		u8("underlying_product").
		enum("security_update_action").
		u8("maturity_month").
		u8("maturity_day").
		u8("maturity_week").
		enum("user_defined_instrument").
		i8("contract_multiplier_unit").
		i8("flow_schedule_type").
		u8("tick_rule").
		fixed(total)
}
