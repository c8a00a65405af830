package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbemnt/internal/models"
)

type Repository interface {
	// -------- Team / catalog --------
	GetTeam(ctx context.Context, teamID uint) (*models.Team, error)

	GetActiveService(
		ctx context.Context,
		teamID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Barber --------
	IsTeamBarber(ctx context.Context, teamID, barberID uint) (bool, error)

	GetBarberProfile(ctx context.Context, barberID uint) (*models.BarberProfile, error)

	// -------- Calendar --------
	ListBusyIntervals(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]Interval, error)

	// CreateWithoutConflict locks the barber's overlapping bookings and
	// inserts b only when none of them blocks the slot.
	CreateWithoutConflict(
		ctx context.Context,
		b *models.Booking,
		end time.Time,
	) error

	// -------- State change --------
	GetForBarber(
		ctx context.Context,
		bookingID uint,
		barberID uint,
	) (*models.Booking, error)

	UpdateStatus(ctx context.Context, b *models.Booking) error

	// -------- Listing --------
	ListForBarber(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListForCustomer(ctx context.Context, customerID uint) ([]models.Booking, error)
}
