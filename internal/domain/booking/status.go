package booking

import "github.com/BruksfildServices01/barbemnt/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var (
	ErrInvalidState = httperr.ErrBusiness("invalid_state")
	ErrTimeConflict = httperr.ErrBusiness("time_conflict")
)

// ===============================
// Transitions
// ===============================

func CanConfirm(current Status) error {
	if current != StatusPending {
		return ErrInvalidState
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return ErrInvalidState
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return ErrInvalidState
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

// Blocks reports whether a booking in this status occupies its slot.
func (s Status) Blocks() bool {
	return s != StatusCancelled
}
