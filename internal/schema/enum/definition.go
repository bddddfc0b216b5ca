package enum

// MatchAlgorithm is the venue matching algorithm for an instrument.
type MatchAlgorithm uint8

const (
	MatchAlgorithmUnknown      MatchAlgorithm = 0
	MatchAlgorithmProRata      MatchAlgorithm = 'C'
	MatchAlgorithmFifo         MatchAlgorithm = 'F'
	MatchAlgorithmConfigurable MatchAlgorithm = 'K'
	MatchAlgorithmTimeProRata  MatchAlgorithm = 'T'
)

// MatchAlgorithmFromByte maps a wire byte to a MatchAlgorithm, defaulting
// to MatchAlgorithmUnknown.
func MatchAlgorithmFromByte(b byte) MatchAlgorithm {
	switch MatchAlgorithm(b) {
	case MatchAlgorithmProRata, MatchAlgorithmFifo,
		MatchAlgorithmConfigurable, MatchAlgorithmTimeProRata:
		return MatchAlgorithm(b)
	default:
		return MatchAlgorithmUnknown
	}
}

// UpdateAction is the lifecycle action of an instrument definition.
type UpdateAction uint8

const (
	UpdateActionUnknown UpdateAction = 0
	UpdateActionAdd     UpdateAction = 'A'
	UpdateActionDelete  UpdateAction = 'D'
	UpdateActionModify  UpdateAction = 'M'
)

// UpdateActionFromByte maps a wire byte to an UpdateAction, defaulting to
// UpdateActionUnknown.
func UpdateActionFromByte(b byte) UpdateAction {
	switch UpdateAction(b) {
	case UpdateActionAdd, UpdateActionDelete, UpdateActionModify:
		return UpdateAction(b)
	default:
		return UpdateActionUnknown
	}
}
