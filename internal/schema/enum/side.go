package enum

// Side is the aggressing side of a trade or quote.
type Side uint8

const (
	SideUnknown Side = 0
	SideAsk     Side = 'A'
	SideBid     Side = 'B'
	SideNone    Side = 'N'
)

// SideFromByte maps a wire byte to a Side, defaulting to SideUnknown.
func SideFromByte(b byte) Side {
	switch Side(b) {
	case SideAsk, SideBid, SideNone:
		return Side(b)
	default:
		return SideUnknown
	}
}
