package enum

// InstrumentClass is the product class of an instrument definition.
type InstrumentClass uint8

const (
	InstrumentClassUnknown      InstrumentClass = 0
	InstrumentClassBond         InstrumentClass = 'B'
	InstrumentClassCall         InstrumentClass = 'C'
	InstrumentClassFuture       InstrumentClass = 'F'
	InstrumentClassStock        InstrumentClass = 'K'
	InstrumentClassMixedSpread  InstrumentClass = 'M'
	InstrumentClassPut          InstrumentClass = 'P'
	InstrumentClassFutureSpread InstrumentClass = 'S'
	InstrumentClassOptionSpread InstrumentClass = 'T'
	InstrumentClassFxSpot       InstrumentClass = 'X'
)

// InstrumentClassFromByte maps a wire byte to an InstrumentClass,
// defaulting to InstrumentClassUnknown.
func InstrumentClassFromByte(b byte) InstrumentClass {
	switch InstrumentClass(b) {
	case InstrumentClassBond, InstrumentClassCall, InstrumentClassFuture,
		InstrumentClassStock, InstrumentClassMixedSpread, InstrumentClassPut,
		InstrumentClassFutureSpread, InstrumentClassOptionSpread, InstrumentClassFxSpot:
		return InstrumentClass(b)
	default:
		return InstrumentClassUnknown
	}
}
