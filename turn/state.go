package turn

// State is the phase of the reply cycle currently running.
type State int32

const (
	Idle State = iota
	Composing
	AwaitingCompletion
	Parsing
	Appended
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case AwaitingCompletion:
		return "awaiting-completion"
	case Parsing:
		return "parsing"
	case Appended:
		return "appended"
	}
	return "unknown"
}
