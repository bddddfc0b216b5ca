package schema

import "marketwire/internal/schema/enum"

// Record is the closed set of decoded wire records. The decoder produces
// exactly one variant per record-type tag; unrecognized tags are rejected,
// never silently skipped.
type Record interface {
	Header() RecordHeader
	isRecord()
}

// Trade is a single trade print.
type Trade struct {
	Hdr       RecordHeader
	Price     Price
	Size      uint32
	Action    enum.Action
	Side      enum.Side
	Flags     uint8
	Depth     uint8
	TsRecv    uint64
	TsInDelta int32
	Sequence  uint32
}

// Ohlcv is an aggregated bar. The bar interval is carried by the record
// type tag (RTypeOhlcv1S .. RTypeOhlcv1D).
type Ohlcv struct {
	Hdr    RecordHeader
	Open   Price
	High   Price
	Low    Price
	Close  Price
	Volume uint64
}

// InstrumentDef describes one instrument. Text field widths are
// version-dependent: V1 carries 22-byte symbols, V2 carries 71-byte symbols.
type InstrumentDef struct {
	Hdr RecordHeader

	TsRecv                  uint64
	MinPriceIncrement       Price
	DisplayFactor           int64
	Expiration              uint64
	Activation              uint64
	HighLimitPrice          Price
	LowLimitPrice           Price
	MaxPriceVariation       Price
	UnitOfMeasureQty        int64
	MinPriceIncrementAmount int64
	PriceRatio              int64
	StrikePrice             Price
	InstAttribValue         int32
	UnderlyingID            uint32
	RawInstrumentID         uint32
	MarketDepthImplied      int32
	MarketDepth             int32
	MarketSegmentID         uint32
	MaxTradeVol             uint32
	MinLotSize              int32
	MinLotSizeBlock         int32
	MinLotSizeRoundLot      int32
	MinTradeVol             uint32
	ContractMultiplier      int32
	DecayQuantity           int32
	OriginalContractSize    int32
	ApplID                  int16
	MaturityYear            uint16
	DecayStartDate          uint16
	ChannelID               uint16

	Currency            string
	SettlCurrency       string
	SecSubType          string
	RawSymbol           string
	Group               string
	Exchange            string
	Asset               string
	Cfi                 string
	SecurityType        string
	UnitOfMeasure       string
	Underlying          string
	StrikePriceCurrency string

	InstrumentClass        enum.InstrumentClass
	MatchAlgorithm         enum.MatchAlgorithm
	MainFraction           uint8
	PriceDisplayFormat     uint8
	SettlPriceType         uint8
	SubFraction            uint8
	UnderlyingProduct      uint8
	UpdateAction           enum.UpdateAction
	MaturityMonth          uint8
	MaturityDay            uint8
	MaturityWeek           uint8
	UserDefinedInstrument  enum.TriState
	ContractMultiplierUnit int8
	FlowScheduleType       int8
	TickRule               uint8
}

// SymbolMapping relates an input symbology identifier to an output one
// over a validity interval.
type SymbolMapping struct {
	Hdr            RecordHeader
	STypeIn        enum.SType // V2 only; STypeUnknown on V1
	STypeInSymbol  string
	STypeOut       enum.SType // V2 only; STypeUnknown on V1
	STypeOutSymbol string
	StartTs        uint64
	EndTs          uint64
}

// Status is a venue trading-status change.
type Status struct {
	Hdr                   RecordHeader
	TsRecv                uint64
	Action                enum.StatusAction
	Reason                enum.StatusReason
	TradingEvent          enum.TradingEvent
	IsTrading             enum.TriState
	IsQuoting             enum.TriState
	IsShortSellRestricted enum.TriState
}

// ErrorMsg is a gateway error message.
type ErrorMsg struct {
	Hdr RecordHeader
	Err string
}

// SystemMsg is a gateway system message, heartbeats included.
type SystemMsg struct {
	Hdr RecordHeader
	Msg string
}

func (r Trade) Header() RecordHeader         { return r.Hdr }
func (r Ohlcv) Header() RecordHeader         { return r.Hdr }
func (r InstrumentDef) Header() RecordHeader { return r.Hdr }
func (r SymbolMapping) Header() RecordHeader { return r.Hdr }
func (r Status) Header() RecordHeader        { return r.Hdr }
func (r ErrorMsg) Header() RecordHeader      { return r.Hdr }
func (r SystemMsg) Header() RecordHeader     { return r.Hdr }

func (Trade) isRecord()         {}
func (Ohlcv) isRecord()         {}
func (InstrumentDef) isRecord() {}
func (SymbolMapping) isRecord() {}
func (Status) isRecord()        {}
func (ErrorMsg) isRecord()      {}
func (SystemMsg) isRecord()     {}
