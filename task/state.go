package task

// State tracks a block through its lifecycle. Complete is terminal: a
// block is created at block start and discarded at block stop, never
// reused.
type State int

const (
	Idle State = iota
	Running
	Complete
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}
