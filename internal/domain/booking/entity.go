package booking

import (
	"time"

	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityInput struct {
	TeamID    uint
	BarberID  uint
	ServiceID uint
	Date      time.Time
}

// Interval is an occupied [Start, End) range on a barber's calendar.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(start, end time.Time) bool {
	return start.Before(i.End) && end.After(i.Start)
}

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusConfirmed)
	return nil
}

func Cancel(b *models.Booking) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCancelled)
	return nil
}

func Complete(b *models.Booking) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}
	b.Status = string(StatusCompleted)
	return nil
}
