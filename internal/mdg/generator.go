// Package mdg creates synthetic wire records for demo captures and soak runs.
package mdg

import (
	"fmt"

	"marketwire/internal/schema"
	"marketwire/internal/schema/enum"
)

// Config describes the synthetic session.
type Config struct {
	Symbols []string

	// BasePrice is the first trade price; each instrument trades one tick
	// above the previous one so records stay tell-apart-able.
	BasePrice schema.Price

	BaseSize uint32

	// StartNs is the event timestamp of the first record.
	StartNs uint64

	// IntervalNs advances the event clock between trades, which is what
	// paced replay keys on.
	IntervalNs uint64
}

// Generator creates a deterministic synthetic record stream: one instrument
// definition and symbol mapping per symbol up front, then round-robin trades.
type Generator struct {
	cfg   Config
	nowNs uint64
	seq   uint32
	index int
}

// NewGenerator validates cfg and creates a generator.
func NewGenerator(cfg Config) (*Generator, error) {
	if len(cfg.Symbols) == 0 {
		return nil, fmt.Errorf("no symbols to generate")
	}
	for _, s := range cfg.Symbols {
		if s == "" {
			return nil, fmt.Errorf("empty symbol")
		}
	}
	if cfg.BaseSize == 0 {
		cfg.BaseSize = 1
	}
	if cfg.BasePrice == 0 {
		cfg.BasePrice = 100 * schema.PriceScale
	}
	return &Generator{cfg: cfg, nowNs: cfg.StartNs}, nil
}

// instrumentID numbers instruments from 1 in symbol order.
func (g *Generator) instrumentID(index int) uint32 {
	return uint32(index) + 1
}

// Bootstrap returns the session-start records: an instrument definition and
// a symbol mapping for every symbol.
func (g *Generator) Bootstrap() []schema.Record {
	records := make([]schema.Record, 0, 2*len(g.cfg.Symbols))
	for i, symbol := range g.cfg.Symbols {
		id := g.instrumentID(i)
		records = append(records, schema.InstrumentDef{
			Hdr: schema.RecordHeader{
				RType:        schema.RTypeInstrumentDef,
				InstrumentID: id,
				TsEvent:      g.nowNs,
			},
			TsRecv:            g.nowNs,
			RawSymbol:         symbol,
			Exchange:          "SIM",
			Asset:             symbol,
			Currency:          "USD",
			SecurityType:      "FUT",
			InstrumentClass:   enum.InstrumentClassFuture,
			MinPriceIncrement: schema.PriceScale / 4,
			MinLotSize:        1,
		})
		records = append(records, schema.SymbolMapping{
			Hdr: schema.RecordHeader{
				RType:        schema.RTypeSymbolMapping,
				InstrumentID: id,
				TsEvent:      g.nowNs,
			},
			STypeIn:        enum.STypeRawSymbol,
			STypeInSymbol:  symbol,
			STypeOut:       enum.STypeRawSymbol,
			STypeOutSymbol: symbol,
			StartTs:        g.nowNs,
		})
	}
	return records
}

// Next creates the next trade, round-robin across the symbols.
func (g *Generator) Next() schema.Record {
	index := g.index
	g.index = (g.index + 1) % len(g.cfg.Symbols)
	g.seq++
	g.nowNs += g.cfg.IntervalNs

	side := enum.SideBid
	if g.seq%2 == 0 {
		side = enum.SideAsk
	}
	return schema.Trade{
		Hdr: schema.RecordHeader{
			RType:        schema.RTypeTrade,
			InstrumentID: g.instrumentID(index),
			TsEvent:      g.nowNs,
		},
		Price:    g.cfg.BasePrice + schema.Price(index)*schema.PriceScale/4,
		Size:     g.cfg.BaseSize,
		Action:   enum.ActionTrade,
		Side:     side,
		TsRecv:   g.nowNs,
		Sequence: g.seq,
	}
}
