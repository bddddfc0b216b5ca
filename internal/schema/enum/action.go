package enum

// Action is the book event carried by a trade record.
type Action uint8

const (
	ActionUnknown Action = 0
	ActionAdd     Action = 'A'
	ActionCancel  Action = 'C'
	ActionFill    Action = 'F'
	ActionModify  Action = 'M'
	ActionClear   Action = 'R'
	ActionTrade   Action = 'T'
)

// ActionFromByte maps a wire byte to an Action, defaulting to ActionUnknown.
func ActionFromByte(b byte) Action {
	switch Action(b) {
	case ActionAdd, ActionCancel, ActionFill, ActionModify, ActionClear, ActionTrade:
		return Action(b)
	default:
		return ActionUnknown
	}
}
