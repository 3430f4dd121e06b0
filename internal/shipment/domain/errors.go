package domain

import (
	"errors"
	"fmt"
)

var (
	ErrShipmentNotFound = errors.New("shipment not found")

	// ErrInvalidState means the requested target state is outside 1..4.
	ErrInvalidState = errors.New("invalid states_id")

	// ErrStateAlreadyReached means the shipment already entered the target
	// state; re-entry is never allowed.
	ErrStateAlreadyReached = errors.New("state already exists for this shipment")

	// ErrSameCenter rejects shipments whose send and receive centers match.
	ErrSameCenter = errors.New("you can not send to same center")

	// ErrTruckNotAvailable covers a missing truck, a truck already committed
	// to a shipment, and a truck sitting at a different center.
	ErrTruckNotAvailable = errors.New("there are no truck with this id in this center")

	ErrPriorityNotFound = errors.New("there are no shipment priority with this id")
	ErrCenterNotFound   = errors.New("invalid center id provided")
)

// MissingPredecessorStateError reports the first gap found in the state
// sequence when a transition is attempted out of order.
type MissingPredecessorStateError struct {
	StateID int
}

func (e *MissingPredecessorStateError) Error() string {
	return fmt.Sprintf("previous state %d does not exist for this shipment", e.StateID)
}

// IsPreconditionError reports whether err is one of the transition or
// creation precondition failures (mapped to 400 at the transport layer).
func IsPreconditionError(err error) bool {
	var missing *MissingPredecessorStateError
	return errors.Is(err, ErrInvalidState) ||
		errors.Is(err, ErrStateAlreadyReached) ||
		errors.Is(err, ErrSameCenter) ||
		errors.Is(err, ErrTruckNotAvailable) ||
		errors.Is(err, ErrPriorityNotFound) ||
		errors.Is(err, ErrCenterNotFound) ||
		errors.As(err, &missing)
}
