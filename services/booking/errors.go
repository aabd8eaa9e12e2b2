package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalTransition covers actions fired from the wrong source status,
	// from a terminal status, or against a status that moved concurrently.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrActorNotAllowed means the actor's role (or identity, for patients)
	// does not permit the requested action.
	ErrActorNotAllowed = errors.New("actor not allowed")
	// ErrSlotMismatch means the requested slot belongs to a different
	// provider or date than the booking it was submitted with.
	ErrSlotMismatch = errors.New("slot does not match booking")
)

// TransitionError carries the context of a rejected transition.
type TransitionError struct {
	Action Action
	From   string
	Reason string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition: action %q from status %q (%s)", e.Action, e.From, e.Reason)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }
