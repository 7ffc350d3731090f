package order

type State string

const (
	StateReady     State = "ready"
	StatePending   State = "pending"
	StateCommitted State = "committed"
	StateFailed    State = "failed"
)

var transitions = map[State][]State{
	StateReady:   {StatePending},
	StatePending: {StateCommitted, StateFailed},
}

func (s State) String() string {
	return string(s)
}

func (s State) IsTerminal() bool {
	return s == StateCommitted || s == StateFailed
}

func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
