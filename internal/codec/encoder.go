package codec

import (
	"fmt"

	"marketwire/internal/layout"
	"marketwire/internal/schema"
	"marketwire/pkg/exception"
)

// Encoder is the layout-driven reference encoder, symmetric with Decoder.
// The capture writer uses it, and the round-trip tests lean on it to verify
// the tables wholesale instead of trusting fields that happen to look right.
type Encoder struct {
	table *layout.Table
}

// NewEncoder creates an encoder. A nil table selects the authored defaults.
func NewEncoder(table *layout.Table) *Encoder {
	if table == nil {
		table = layout.Default()
	}
	return &Encoder{table: table}
}

// Encode serializes a record under the given schema version. The header
// length byte is derived from the layout, never from the input record.
func (e *Encoder) Encode(rec schema.Record, version schema.Version) ([]byte, error) {
	hdr := rec.Header()
	if !e.table.HasVersion(version) {
		return nil, fmt.Errorf("schema version %d: %w", version, exception.ErrUnsupportedVersion)
	}
	lay, ok := e.table.Lookup(version, hdr.RType)
	if !ok {
		return nil, fmt.Errorf("record type 0x%02X under schema version %d: %w",
			uint8(hdr.RType), version, exception.ErrUnsupportedType)
	}

	buf := make([]byte, lay.Length)
	buf[hdrOffLength] = uint8(lay.Length / schema.LengthUnit)
	buf[hdrOffRType] = uint8(hdr.RType)
	putUint(buf, hdrOffPublisherID, 2, uint64(hdr.PublisherID))
	putUint(buf, hdrOffInstrumentID, 4, uint64(hdr.InstrumentID))
	putUint(buf, hdrOffTsEvent, 8, hdr.TsEvent)

	w := &fieldWriter{buf: buf}
	var err error
	switch rec := rec.(type) {
	case schema.Trade:
		err = encodeTrade(w, lay, rec)
	case schema.Ohlcv:
		err = encodeOhlcv(w, lay, rec)
	case schema.InstrumentDef:
		err = encodeInstrumentDef(w, lay, rec)
	case schema.SymbolMapping:
		err = encodeSymbolMapping(w, lay, rec)
	case schema.Status:
		err = encodeStatus(w, lay, rec)
	case schema.ErrorMsg:
		err = encodeMessage(w, lay, "err", rec.Err)
	case schema.SystemMsg:
		err = encodeMessage(w, lay, "msg", rec.Msg)
	default:
		err = fmt.Errorf("record variant %T has no encoder: %w", rec, exception.ErrUnsupportedType)
	}
	if err != nil {
		return nil, err
	}
	if w.err != nil {
		return nil, w.err
	}
	return buf, nil
}

func putUint(buf []byte, offset, width int, v uint64) {
	for i := 0; i < width; i++ {
		buf[offset+i] = byte(v >> (8 * i))
	}
}

// fieldWriter mirrors fieldReader: it carries the first write error and
// range-checks every value against the width the layout declares.
type fieldWriter struct {
	buf []byte
	err error
}

func (w *fieldWriter) uint(f layout.Field, v uint64) {
	if w.err != nil {
		return
	}
	if f.Width < 8 && v>>(8*f.Width) != 0 {
		w.err = fmt.Errorf("field %q: value %d exceeds %d bytes: %w", f.Name, v, f.Width,
			exception.ErrOversizeField)
		return
	}
	putUint(w.buf, f.Offset, f.Width, v)
}

func (w *fieldWriter) int(f layout.Field, v int64) {
	if w.err != nil {
		return
	}
	if f.Width < 8 {
		limit := int64(1) << (8*f.Width - 1)
		if v >= limit || v < -limit {
			w.err = fmt.Errorf("field %q: value %d exceeds %d bytes: %w", f.Name, v, f.Width,
				exception.ErrOversizeField)
			return
		}
	}
	putUint(w.buf, f.Offset, f.Width, uint64(v))
}

func (w *fieldWriter) ascii(f layout.Field, s string) {
	if w.err != nil {
		return
	}
	if len(s) > f.Width {
		w.err = fmt.Errorf("field %q: %d-byte text exceeds width %d: %w", f.Name, len(s), f.Width,
			exception.ErrOversizeField)
		return
	}
	copy(w.buf[f.Offset:f.Offset+f.Width], s)
}

func (w *fieldWriter) enumByte(f layout.Field, b byte) {
	if w.err != nil {
		return
	}
	w.buf[f.Offset] = b
}

func encodeTrade(w *fieldWriter, lay layout.Layout, rec schema.Trade) error {
	for _, f := range lay.Fields {
		switch f.Name {
		case "price":
			w.int(f, int64(rec.Price))
		case "size":
			w.uint(f, uint64(rec.Size))
		case "action":
			w.enumByte(f, byte(rec.Action))
		case "side":
			w.enumByte(f, byte(rec.Side))
		case "flags":
			w.uint(f, uint64(rec.Flags))
		case "depth":
			w.uint(f, uint64(rec.Depth))
		case "ts_recv":
			w.uint(f, rec.TsRecv)
		case "ts_in_delta":
			w.int(f, int64(rec.TsInDelta))
		case "sequence":
			w.uint(f, uint64(rec.Sequence))
		default:
			if err := unmappedField(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeOhlcv(w *fieldWriter, lay layout.Layout, rec schema.Ohlcv) error {
	for _, f := range lay.Fields {
		switch f.Name {
		case "open":
			w.int(f, int64(rec.Open))
		case "high":
			w.int(f, int64(rec.High))
		case "low":
			w.int(f, int64(rec.Low))
		case "close":
			w.int(f, int64(rec.Close))
		case "volume":
			w.uint(f, rec.Volume)
		default:
			if err := unmappedField(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeInstrumentDef(w *fieldWriter, lay layout.Layout, rec schema.InstrumentDef) error {
	for _, f := range lay.Fields {
		switch f.Name {
		case "ts_recv":
			w.uint(f, rec.TsRecv)
		case "min_price_increment":
			w.int(f, int64(rec.MinPriceIncrement))
		case "display_factor":
			w.int(f, rec.DisplayFactor)
		case "expiration":
			w.uint(f, rec.Expiration)
		case "activation":
			w.uint(f, rec.Activation)
		case "high_limit_price":
			w.int(f, int64(rec.HighLimitPrice))
		case "low_limit_price":
			w.int(f, int64(rec.LowLimitPrice))
		case "max_price_variation":
			w.int(f, int64(rec.MaxPriceVariation))
		case "unit_of_measure_qty":
			w.int(f, rec.UnitOfMeasureQty)
		case "min_price_increment_amount":
			w.int(f, rec.MinPriceIncrementAmount)
		case "price_ratio":
			w.int(f, rec.PriceRatio)
		case "strike_price":
			w.int(f, int64(rec.StrikePrice))
		case "inst_attrib_value":
			w.int(f, int64(rec.InstAttribValue))
		case "underlying_id":
			w.uint(f, uint64(rec.UnderlyingID))
		case "raw_instrument_id":
			w.uint(f, uint64(rec.RawInstrumentID))
		case "market_depth_implied":
			w.int(f, int64(rec.MarketDepthImplied))
		case "market_depth":
			w.int(f, int64(rec.MarketDepth))
		case "market_segment_id":
			w.uint(f, uint64(rec.MarketSegmentID))
		case "max_trade_vol":
			w.uint(f, uint64(rec.MaxTradeVol))
		case "min_lot_size":
			w.int(f, int64(rec.MinLotSize))
		case "min_lot_size_block":
			w.int(f, int64(rec.MinLotSizeBlock))
		case "min_lot_size_round_lot":
			w.int(f, int64(rec.MinLotSizeRoundLot))
		case "min_trade_vol":
			w.uint(f, uint64(rec.MinTradeVol))
		case "contract_multiplier":
			w.int(f, int64(rec.ContractMultiplier))
		case "decay_quantity":
			w.int(f, int64(rec.DecayQuantity))
		case "original_contract_size":
			w.int(f, int64(rec.OriginalContractSize))
		case "appl_id":
			w.int(f, int64(rec.ApplID))
		case "maturity_year":
			w.uint(f, uint64(rec.MaturityYear))
		case "decay_start_date":
			w.uint(f, uint64(rec.DecayStartDate))
		case "channel_id":
			w.uint(f, uint64(rec.ChannelID))
		case "currency":
			w.ascii(f, rec.Currency)
		case "settl_currency":
			w.ascii(f, rec.SettlCurrency)
		case "secsubtype":
			w.ascii(f, rec.SecSubType)
		case "raw_symbol":
			w.ascii(f, rec.RawSymbol)
		case "group":
			w.ascii(f, rec.Group)
		case "exchange":
			w.ascii(f, rec.Exchange)
		case "asset":
			w.ascii(f, rec.Asset)
		case "cfi":
			w.ascii(f, rec.Cfi)
		case "security_type":
			w.ascii(f, rec.SecurityType)
		case "unit_of_measure":
			w.ascii(f, rec.UnitOfMeasure)
		case "underlying":
			w.ascii(f, rec.Underlying)
		case "strike_price_currency":
			w.ascii(f, rec.StrikePriceCurrency)
		case "instrument_class":
			w.enumByte(f, byte(rec.InstrumentClass))
		case "match_algorithm":
			w.enumByte(f, byte(rec.MatchAlgorithm))
		case "main_fraction":
			w.uint(f, uint64(rec.MainFraction))
		case "price_display_format":
			w.uint(f, uint64(rec.PriceDisplayFormat))
		case "settl_price_type":
			w.uint(f, uint64(rec.SettlPriceType))
		case "sub_fraction":
			w.uint(f, uint64(rec.SubFraction))
		case "underlying_product":
			w.uint(f, uint64(rec.UnderlyingProduct))
		case "security_update_action":
			w.enumByte(f, byte(rec.UpdateAction))
		case "maturity_month":
			w.uint(f, uint64(rec.MaturityMonth))
		case "maturity_day":
			w.uint(f, uint64(rec.MaturityDay))
		case "maturity_week":
			w.uint(f, uint64(rec.MaturityWeek))
		case "user_defined_instrument":
			w.enumByte(f, byte(rec.UserDefinedInstrument))
		case "contract_multiplier_unit":
			w.int(f, int64(rec.ContractMultiplierUnit))
		case "flow_schedule_type":
			w.int(f, int64(rec.FlowScheduleType))
		case "tick_rule":
			w.uint(f, uint64(rec.TickRule))
		default:
			if err := unmappedField(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeSymbolMapping(w *fieldWriter, lay layout.Layout, rec schema.SymbolMapping) error {
	for _, f := range lay.Fields {
		switch f.Name {
		case "stype_in":
			w.enumByte(f, byte(rec.STypeIn))
		case "stype_in_symbol":
			w.ascii(f, rec.STypeInSymbol)
		case "stype_out":
			w.enumByte(f, byte(rec.STypeOut))
		case "stype_out_symbol":
			w.ascii(f, rec.STypeOutSymbol)
		case "start_ts":
			w.uint(f, rec.StartTs)
		case "end_ts":
			w.uint(f, rec.EndTs)
		default:
			if err := unmappedField(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeStatus(w *fieldWriter, lay layout.Layout, rec schema.Status) error {
	for _, f := range lay.Fields {
		switch f.Name {
		case "ts_recv":
			w.uint(f, rec.TsRecv)
		case "action":
			w.enumByte(f, byte(rec.Action))
		case "reason":
			w.enumByte(f, byte(rec.Reason))
		case "trading_event":
			w.enumByte(f, byte(rec.TradingEvent))
		case "is_trading":
			w.enumByte(f, byte(rec.IsTrading))
		case "is_quoting":
			w.enumByte(f, byte(rec.IsQuoting))
		case "is_short_sell_restricted":
			w.enumByte(f, byte(rec.IsShortSellRestricted))
		default:
			if err := unmappedField(f); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeMessage(w *fieldWriter, lay layout.Layout, name, text string) error {
	for _, f := range lay.Fields {
		switch f.Name {
		case name:
			w.ascii(f, text)
		default:
			if err := unmappedField(f); err != nil {
				return err
			}
		}
	}
	return nil
}
