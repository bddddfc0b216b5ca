package enum

// StatusAction is the venue action reported by a status record.
type StatusAction uint8

const (
	StatusActionUnknown StatusAction = 0
	StatusActionClose   StatusAction = 'C'
	StatusActionHalt    StatusAction = 'H'
	StatusActionPause   StatusAction = 'P'
	StatusActionResume  StatusAction = 'R'
	StatusActionTrading StatusAction = 'T'
)

// StatusActionFromByte maps a wire byte to a StatusAction, defaulting to
// StatusActionUnknown.
func StatusActionFromByte(b byte) StatusAction {
	switch StatusAction(b) {
	case StatusActionClose, StatusActionHalt, StatusActionPause,
		StatusActionResume, StatusActionTrading:
		return StatusAction(b)
	default:
		return StatusActionUnknown
	}
}

// StatusReason is the cause attached to a status action.
type StatusReason uint8

const (
	StatusReasonUnknown    StatusReason = 0
	StatusReasonNews       StatusReason = 'N'
	StatusReasonRegulatory StatusReason = 'R'
	StatusReasonScheduled  StatusReason = 'S'
	StatusReasonVolatility StatusReason = 'V'
)

// StatusReasonFromByte maps a wire byte to a StatusReason, defaulting to
// StatusReasonUnknown.
func StatusReasonFromByte(b byte) StatusReason {
	switch StatusReason(b) {
	case StatusReasonNews, StatusReasonRegulatory, StatusReasonScheduled,
		StatusReasonVolatility:
		return StatusReason(b)
	default:
		return StatusReasonUnknown
	}
}

// TradingEvent qualifies a status action with a session event.
type TradingEvent uint8

const (
	TradingEventUnknown     TradingEvent = 0
	TradingEventNoCancel    TradingEvent = 'C'
	TradingEventChangeState TradingEvent = 'G'
	TradingEventImpliedOff  TradingEvent = 'I'
	TradingEventImpliedOn   TradingEvent = 'O'
)

// TradingEventFromByte maps a wire byte to a TradingEvent, defaulting to
// TradingEventUnknown.
func TradingEventFromByte(b byte) TradingEvent {
	switch TradingEvent(b) {
	case TradingEventNoCancel, TradingEventChangeState,
		TradingEventImpliedOff, TradingEventImpliedOn:
		return TradingEvent(b)
	default:
		return TradingEventUnknown
	}
}
