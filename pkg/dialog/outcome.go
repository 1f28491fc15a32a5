package dialog

// State is a controller's position in the dialog state machine. A
// controller starts Active and moves to exactly one terminal state.
type State uint8

const (
	StateActive State = iota
	StateConfirmed
	StateCancelled
	StateTimedOut
	StateClosed
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateConfirmed:
		return "confirmed"
	case StateCancelled:
		return "cancelled"
	case StateTimedOut:
		return "timed out"
	case StateClosed:
		return "closed"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Outcome is a dialog's terminal result. Payload is the stdout text for a
// confirmed outcome; Button is the index of the activating button on
// message dialogs and zero everywhere else; Err carries the reason for
// StateErrored.
type Outcome struct {
	State   State
	Button  int
	Payload string
	Err     error
}

// Confirmed builds a confirmed outcome with the given payload.
func Confirmed(payload string) Outcome {
	return Outcome{State: StateConfirmed, Payload: payload}
}

// Cancelled builds a cancelled outcome.
func Cancelled() Outcome { return Outcome{State: StateCancelled} }

// Errored builds an errored outcome.
func Errored(err error) Outcome { return Outcome{State: StateErrored, Err: err} }

// ExitCode maps the outcome onto the stable process exit contract:
// confirmed 0, cancelled 1, timeout 5, window closed 255, error 100.
// Extra message buttons shift the confirmed code: the second button exits
// 1, the third 2, any further button 3.
func (o Outcome) ExitCode() int {
	switch o.State {
	case StateConfirmed:
		if o.Button > 3 {
			return 3
		}
		return o.Button
	case StateCancelled:
		return 1
	case StateTimedOut:
		return 5
	case StateClosed:
		return 255
	case StateErrored:
		return 100
	}
	return 0
}
