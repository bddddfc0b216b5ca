package enum

// SType is the symbology an identifier in a symbol-mapping record uses.
type SType uint8

const (
	STypeUnknown      SType = 0
	STypeContinuous   SType = 'C'
	STypeInstrumentID SType = 'I'
	STypeParent       SType = 'P'
	STypeRawSymbol    SType = 'R'
)

// STypeFromByte maps a wire byte to an SType, defaulting to STypeUnknown.
func STypeFromByte(b byte) SType {
	switch SType(b) {
	case STypeContinuous, STypeInstrumentID, STypeParent, STypeRawSymbol:
		return SType(b)
	default:
		return STypeUnknown
	}
}
