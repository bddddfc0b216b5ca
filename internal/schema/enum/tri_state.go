package enum

// TriState is a yes/no flag whose wire byte may also be unpopulated.
type TriState uint8

const (
	TriStateUnknown TriState = 0
	TriStateNo      TriState = 'N'
	TriStateYes     TriState = 'Y'
)

// TriStateFromByte maps a wire byte to a TriState, defaulting to
// TriStateUnknown.
func TriStateFromByte(b byte) TriState {
	switch TriState(b) {
	case TriStateNo, TriStateYes:
		return TriState(b)
	default:
		return TriStateUnknown
	}
}
