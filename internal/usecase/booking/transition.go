package booking

import (
	"context"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	domain "github.com/BruksfildServices01/barbemnt/internal/domain/booking"
	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

var ErrBookingNotFound = httperr.ErrBusiness("booking_not_found")

// Action is a barber-driven status change.
type Action func(*models.Booking) error

var (
	Confirm  Action = domain.Confirm
	Cancel   Action = domain.Cancel
	Complete Action = domain.Complete
)

type TransitionBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewTransitionBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *TransitionBooking {
	return &TransitionBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	barberID uint,
	bookingID uint,
	action Action,
) (*models.Booking, error) {

	b, err := uc.repo.GetForBarber(ctx, bookingID, barberID)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	if err := action(b); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, b); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			TeamID: b.TeamID,
			UserID: &barberID,
			Action: audit.UpdateBooking,
		})
	}

	return b, nil
}
