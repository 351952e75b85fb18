package controller

import (
	"fmt"

	"github.com/google/uuid"
)

type State int

const (
	Idle State = iota
	Converting
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Converting:
		return "converting"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Status is what the front-end shows. Reason is only set for Failed.
type Status struct {
	State  State
	Reason string
}

func (s Status) String() string {
	switch s.State {
	case Idle:
		return ""
	case Converting:
		return "Converting..."
	case Done:
		return "Done!"
	case Failed:
		return "An error has occurred:\n\n" + s.Reason
	default:
		return s.State.String()
	}
}

func failed(err error) Status {
	return Status{State: Failed, Reason: err.Error()}
}

// Result is delivered exactly once per accepted run.
type Result struct {
	RunID  uuid.UUID
	Status Status
	Pages  int
	Err    error
}
