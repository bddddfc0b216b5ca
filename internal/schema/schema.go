package schema

// Version selects the wire layout revision a record was encoded under.
// A buffer encoded under one version must never be decoded under another
// version's table; the caller carries the version alongside the buffer.
type Version uint8

const (
	VersionUnknown Version = 0
	V1             Version = 1
	V2             Version = 2
)

// RType tags the concrete record variant inside a wire record header.
type RType uint8

const (
	RTypeTrade         RType = 0x00
	RTypeStatus        RType = 0x12
	RTypeInstrumentDef RType = 0x13
	RTypeError         RType = 0x15
	RTypeSymbolMapping RType = 0x16
	RTypeSystem        RType = 0x17
	RTypeOhlcv1S       RType = 0x20
	RTypeOhlcv1M       RType = 0x21
	RTypeOhlcv1H       RType = 0x22
	RTypeOhlcv1D       RType = 0x23
)

const (
	// HeaderSize is the fixed byte size of RecordHeader on the wire.
	HeaderSize = 16

	// LengthUnit is the multiplier for RecordHeader.Length. The header
	// stores the record length in 4-byte units.
	LengthUnit = 4
)

// RecordHeader is the common metadata at the start of every wire record.
type RecordHeader struct {
	Length       uint8 // record length in 4-byte units, header included
	RType        RType
	PublisherID  uint16
	InstrumentID uint32
	TsEvent      uint64 // event timestamp, ns since Unix epoch
}

// ByteLen returns the declared record length in bytes.
func (h RecordHeader) ByteLen() int {
	return int(h.Length) * LengthUnit
}
