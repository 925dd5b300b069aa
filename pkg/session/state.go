package session

// State is the lifecycle classification of a token.
type State int

const (
	StateUnknown State = iota
	StateValid
	StateExpired
	StateRevoked
	StateInvalid
)

func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateExpired:
		return "expired"
	case StateRevoked:
		return "revoked"
	case StateInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
