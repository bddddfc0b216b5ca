// Package codec translates raw wire buffers into typed records and back.
//
// All reads are bounds-checked through Cursor, and all offsets and widths
// come from the layout tables. A decode either yields a fully populated
// record or an error; partially decoded records are never returned.
package codec

import (
	"fmt"

	"marketwire/internal/layout"
	"marketwire/internal/schema"
	"marketwire/internal/schema/enum"
	"marketwire/pkg/exception"
)

// Record header field positions. The header is not versioned; it is the one
// fixed region every revision shares.
const (
	hdrOffLength       = 0
	hdrOffRType        = 1
	hdrOffPublisherID  = 2
	hdrOffInstrumentID = 4
	hdrOffTsEvent      = 8
)

// Decoder turns wire buffers into typed records using a layout table.
// It is stateless beyond the table and safe for concurrent use.
type Decoder struct {
	table *layout.Table
}

// NewDecoder creates a decoder. A nil table selects the authored defaults.
func NewDecoder(table *layout.Table) *Decoder {
	if table == nil {
		table = layout.Default()
	}
	return &Decoder{table: table}
}

// DecodeHeader reads the common record header from the front of a buffer.
func DecodeHeader(buf []byte) (schema.RecordHeader, error) {
	cur := NewCursor(buf)
	r := &fieldReader{cur: cur}
	hdr := schema.RecordHeader{
		Length:       uint8(r.uintAt(hdrOffLength, 1)),
		RType:        schema.RType(r.uintAt(hdrOffRType, 1)),
		PublisherID:  uint16(r.uintAt(hdrOffPublisherID, 2)),
		InstrumentID: uint32(r.uintAt(hdrOffInstrumentID, 4)),
		TsEvent:      r.uintAt(hdrOffTsEvent, 8),
	}
	if r.err != nil {
		return schema.RecordHeader{}, r.err
	}
	return hdr, nil
}

// Decode translates one wire record encoded under the given schema version.
//
// The declared length is verified against the buffer before any field is
// read; a mismatched buffer is rejected even when individual fields would
// still be in bounds.
func (d *Decoder) Decode(buf []byte, version schema.Version) (schema.Record, error) {
	hdr, err := DecodeHeader(buf)
	if err != nil {
		return nil, err
	}
	if hdr.ByteLen() != len(buf) {
		return nil, fmt.Errorf("header declares %d bytes, buffer holds %d: %w",
			hdr.ByteLen(), len(buf), exception.ErrLengthMismatch)
	}
	if !d.table.HasVersion(version) {
		return nil, fmt.Errorf("schema version %d: %w", version, exception.ErrUnsupportedVersion)
	}
	lay, ok := d.table.Lookup(version, hdr.RType)
	if !ok {
		return nil, fmt.Errorf("record type 0x%02X under schema version %d: %w",
			uint8(hdr.RType), version, exception.ErrUnsupportedType)
	}

	cur := NewCursor(buf)
	switch hdr.RType {
	case schema.RTypeTrade:
		return decodeTrade(cur, lay, hdr)
	case schema.RTypeOhlcv1S, schema.RTypeOhlcv1M, schema.RTypeOhlcv1H, schema.RTypeOhlcv1D:
		return decodeOhlcv(cur, lay, hdr)
	case schema.RTypeInstrumentDef:
		return decodeInstrumentDef(cur, lay, hdr)
	case schema.RTypeSymbolMapping:
		return decodeSymbolMapping(cur, lay, hdr)
	case schema.RTypeStatus:
		return decodeStatus(cur, lay, hdr)
	case schema.RTypeError:
		return decodeErrorMsg(cur, lay, hdr)
	case schema.RTypeSystem:
		return decodeSystemMsg(cur, lay, hdr)
	default:
		return nil, fmt.Errorf("record type 0x%02X has no decoder: %w",
			uint8(hdr.RType), exception.ErrUnsupportedType)
	}
}

// fieldReader carries the first read error so assemblers stay flat.
type fieldReader struct {
	cur Cursor
	err error
}

func (r *fieldReader) uintAt(offset, width int) uint64 {
	if r.err != nil {
		return 0
	}
	v, err := r.cur.Uint(offset, width)
	r.err = err
	return v
}

func (r *fieldReader) uint(f layout.Field) uint64 {
	return r.uintAt(f.Offset, f.Width)
}

func (r *fieldReader) int(f layout.Field) int64 {
	if r.err != nil {
		return 0
	}
	v, err := r.cur.Int(f.Offset, f.Width)
	r.err = err
	return v
}

func (r *fieldReader) ascii(f layout.Field) string {
	if r.err != nil {
		return ""
	}
	v, err := r.cur.FixedASCII(f.Offset, f.Width)
	r.err = err
	return v
}

func (r *fieldReader) enumByte(f layout.Field) byte {
	if r.err != nil {
		return 0
	}
	v, err := r.cur.Byte(f.Offset)
	r.err = err
	return v
}

// unmappedField rejects table entries the assembler has no destination for.
// A typo in a field name must fail loudly, not drop the field.
func unmappedField(f layout.Field) error {
	if f.Kind == layout.KindReserved {
		return nil
	}
	return fmt.Errorf("layout field %q has no destination: %w", f.Name, exception.ErrInternal)
}

func decodeTrade(cur Cursor, lay layout.Layout, hdr schema.RecordHeader) (schema.Record, error) {
	rec := schema.Trade{Hdr: hdr}
	r := &fieldReader{cur: cur}
	for _, f := range lay.Fields {
		switch f.Name {
		case "price":
			rec.Price = schema.Price(r.int(f))
		case "size":
			rec.Size = uint32(r.uint(f))
		case "action":
			rec.Action = enum.ActionFromByte(r.enumByte(f))
		case "side":
			rec.Side = enum.SideFromByte(r.enumByte(f))
		case "flags":
			rec.Flags = uint8(r.uint(f))
		case "depth":
			rec.Depth = uint8(r.uint(f))
		case "ts_recv":
			rec.TsRecv = r.uint(f)
		case "ts_in_delta":
			rec.TsInDelta = int32(r.int(f))
		case "sequence":
			rec.Sequence = uint32(r.uint(f))
		default:
			if err := unmappedField(f); err != nil {
				return nil, err
			}
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	return rec, nil
}

func decodeOhlcv(cur Cursor, lay layout.Layout, hdr schema.RecordHeader) (schema.Record, error) {
	rec := schema.Ohlcv{Hdr: hdr}
	r := &fieldReader{cur: cur}
	for _, f := range lay.Fields {
		switch f.Name {
		case "open":
			rec.Open = schema.Price(r.int(f))
		case "high":
			rec.High = schema.Price(r.int(f))
		case "low":
			rec.Low = schema.Price(r.int(f))
		case "close":
			rec.Close = schema.Price(r.int(f))
		case "volume":
			rec.Volume = r.uint(f)
		default:
			if err := unmappedField(f); err != nil {
				return nil, err
			}
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	return rec, nil
}

func decodeInstrumentDef(cur Cursor, lay layout.Layout, hdr schema.RecordHeader) (schema.Record, error) {
	rec := schema.InstrumentDef{Hdr: hdr}
	r := &fieldReader{cur: cur}
	for _, f := range lay.Fields {
		switch f.Name {
		case "ts_recv":
			rec.TsRecv = r.uint(f)
		case "min_price_increment":
			rec.MinPriceIncrement = schema.Price(r.int(f))
		case "display_factor":
			rec.DisplayFactor = r.int(f)
		case "expiration":
			rec.Expiration = r.uint(f)
		case "activation":
			rec.Activation = r.uint(f)
		case "high_limit_price":
			rec.HighLimitPrice = schema.Price(r.int(f))
		case "low_limit_price":
			rec.LowLimitPrice = schema.Price(r.int(f))
		case "max_price_variation":
			rec.MaxPriceVariation = schema.Price(r.int(f))
		case "unit_of_measure_qty":
			rec.UnitOfMeasureQty = r.int(f)
		case "min_price_increment_amount":
			rec.MinPriceIncrementAmount = r.int(f)
		case "price_ratio":
			rec.PriceRatio = r.int(f)
		case "strike_price":
			rec.StrikePrice = schema.Price(r.int(f))
		case "inst_attrib_value":
			rec.InstAttribValue = int32(r.int(f))
		case "underlying_id":
			rec.UnderlyingID = uint32(r.uint(f))
		case "raw_instrument_id":
			rec.RawInstrumentID = uint32(r.uint(f))
		case "market_depth_implied":
			rec.MarketDepthImplied = int32(r.int(f))
		case "market_depth":
			rec.MarketDepth = int32(r.int(f))
		case "market_segment_id":
			rec.MarketSegmentID = uint32(r.uint(f))
		case "max_trade_vol":
			rec.MaxTradeVol = uint32(r.uint(f))
		case "min_lot_size":
			rec.MinLotSize = int32(r.int(f))
		case "min_lot_size_block":
			rec.MinLotSizeBlock = int32(r.int(f))
		case "min_lot_size_round_lot":
			rec.MinLotSizeRoundLot = int32(r.int(f))
		case "min_trade_vol":
			rec.MinTradeVol = uint32(r.uint(f))
		case "contract_multiplier":
			rec.ContractMultiplier = int32(r.int(f))
		case "decay_quantity":
			rec.DecayQuantity = int32(r.int(f))
		case "original_contract_size":
			rec.OriginalContractSize = int32(r.int(f))
		case "appl_id":
			rec.ApplID = int16(r.int(f))
		case "maturity_year":
			rec.MaturityYear = uint16(r.uint(f))
		case "decay_start_date":
			rec.DecayStartDate = uint16(r.uint(f))
		case "channel_id":
			rec.ChannelID = uint16(r.uint(f))
		case "currency":
			rec.Currency = r.ascii(f)
		case "settl_currency":
			rec.SettlCurrency = r.ascii(f)
		case "secsubtype":
			rec.SecSubType = r.ascii(f)
		case "raw_symbol":
			rec.RawSymbol = r.ascii(f)
		case "group":
			rec.Group = r.ascii(f)
		case "exchange":
			rec.Exchange = r.ascii(f)
		case "asset":
			rec.Asset = r.ascii(f)
		case "cfi":
			rec.Cfi = r.ascii(f)
		case "security_type":
			rec.SecurityType = r.ascii(f)
		case "unit_of_measure":
			rec.UnitOfMeasure = r.ascii(f)
		case "underlying":
			rec.Underlying = r.ascii(f)
		case "strike_price_currency":
			rec.StrikePriceCurrency = r.ascii(f)
		case "instrument_class":
			rec.InstrumentClass = enum.InstrumentClassFromByte(r.enumByte(f))
		case "match_algorithm":
			rec.MatchAlgorithm = enum.MatchAlgorithmFromByte(r.enumByte(f))
		case "main_fraction":
			rec.MainFraction = uint8(r.uint(f))
		case "price_display_format":
			rec.PriceDisplayFormat = uint8(r.uint(f))
		case "settl_price_type":
			rec.SettlPriceType = uint8(r.uint(f))
		case "sub_fraction":
			rec.SubFraction = uint8(r.uint(f))
		case "underlying_product":
			rec.UnderlyingProduct = uint8(r.uint(f))
		case "security_update_action":
			rec.UpdateAction = enum.UpdateActionFromByte(r.enumByte(f))
		case "maturity_month":
			rec.MaturityMonth = uint8(r.uint(f))
		case "maturity_day":
			rec.MaturityDay = uint8(r.uint(f))
		case "maturity_week":
			rec.MaturityWeek = uint8(r.uint(f))
		case "user_defined_instrument":
			rec.UserDefinedInstrument = enum.TriStateFromByte(r.enumByte(f))
		case "contract_multiplier_unit":
			rec.ContractMultiplierUnit = int8(r.int(f))
		case "flow_schedule_type":
			rec.FlowScheduleType = int8(r.int(f))
		case "tick_rule":
			rec.TickRule = uint8(r.uint(f))
		default:
			if err := unmappedField(f); err != nil {
				return nil, err
			}
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	return rec, nil
}

func decodeSymbolMapping(cur Cursor, lay layout.Layout, hdr schema.RecordHeader) (schema.Record, error) {
	rec := schema.SymbolMapping{Hdr: hdr}
	r := &fieldReader{cur: cur}
	for _, f := range lay.Fields {
		switch f.Name {
		case "stype_in":
			rec.STypeIn = enum.STypeFromByte(r.enumByte(f))
		case "stype_in_symbol":
			rec.STypeInSymbol = r.ascii(f)
		case "stype_out":
			rec.STypeOut = enum.STypeFromByte(r.enumByte(f))
		case "stype_out_symbol":
			rec.STypeOutSymbol = r.ascii(f)
		case "start_ts":
			rec.StartTs = r.uint(f)
		case "end_ts":
			rec.EndTs = r.uint(f)
		default:
			if err := unmappedField(f); err != nil {
				return nil, err
			}
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	return rec, nil
}

func decodeStatus(cur Cursor, lay layout.Layout, hdr schema.RecordHeader) (schema.Record, error) {
	rec := schema.Status{Hdr: hdr}
	r := &fieldReader{cur: cur}
	for _, f := range lay.Fields {
		switch f.Name {
		case "ts_recv":
			rec.TsRecv = r.uint(f)
		case "action":
			rec.Action = enum.StatusActionFromByte(r.enumByte(f))
		case "reason":
			rec.Reason = enum.StatusReasonFromByte(r.enumByte(f))
		case "trading_event":
			rec.TradingEvent = enum.TradingEventFromByte(r.enumByte(f))
		case "is_trading":
			rec.IsTrading = enum.TriStateFromByte(r.enumByte(f))
		case "is_quoting":
			rec.IsQuoting = enum.TriStateFromByte(r.enumByte(f))
		case "is_short_sell_restricted":
			rec.IsShortSellRestricted = enum.TriStateFromByte(r.enumByte(f))
		default:
			if err := unmappedField(f); err != nil {
				return nil, err
			}
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	return rec, nil
}

func decodeErrorMsg(cur Cursor, lay layout.Layout, hdr schema.RecordHeader) (schema.Record, error) {
	rec := schema.ErrorMsg{Hdr: hdr}
	r := &fieldReader{cur: cur}
	for _, f := range lay.Fields {
		switch f.Name {
		case "err":
			rec.Err = r.ascii(f)
		default:
			if err := unmappedField(f); err != nil {
				return nil, err
			}
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	return rec, nil
}

func decodeSystemMsg(cur Cursor, lay layout.Layout, hdr schema.RecordHeader) (schema.Record, error) {
	rec := schema.SystemMsg{Hdr: hdr}
	r := &fieldReader{cur: cur}
	for _, f := range lay.Fields {
		switch f.Name {
		case "msg":
			rec.Msg = r.ascii(f)
		default:
			if err := unmappedField(f); err != nil {
				return nil, err
			}
		}
		if r.err != nil {
			return nil, r.err
		}
	}
	return rec, nil
}
