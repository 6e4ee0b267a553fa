package turn

// TurnProvider exposes turn counters without tying callers to whoever keeps them.
type TurnProvider interface {
	GetCurrentTurn() int
	// GetMaxTurns returns 0 when the conversation is unbounded.
	GetMaxTurns() int
}
