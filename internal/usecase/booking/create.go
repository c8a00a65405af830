package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	domain "github.com/BruksfildServices01/barbemnt/internal/domain/booking"
	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/models"
	"github.com/BruksfildServices01/barbemnt/internal/timezone"
)

var (
	ErrInvalidDateOrTime   = httperr.ErrBusiness("invalid_date_or_time")
	ErrInThePast           = httperr.ErrBusiness("in_the_past")
	ErrOutsideAvailability = httperr.ErrBusiness("outside_availability")
	ErrTeamNotFound        = httperr.ErrBusiness("team_not_found")
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	TeamID     uint
	CustomerID uint
	BarberID   uint
	ServiceID  uint

	Date  string
	Time  string
	Notes string

	IPAddress string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	team, err := uc.repo.GetTeam(ctx, in.TeamID)
	if err != nil {
		return nil, ErrTeamNotFound
	}

	// date and time are read in the shop's timezone
	start, err := timezone.ParseDateTime(team.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, ErrInvalidDateOrTime
	}
	if !start.After(uc.now()) {
		return nil, ErrInThePast
	}

	svc, err := uc.repo.GetActiveService(ctx, in.TeamID, in.ServiceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	ok, err := uc.repo.IsTeamBarber(ctx, in.TeamID, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBarberNotFound
	}

	schedule, err := scheduleFor(ctx, uc.repo, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !schedule.Covers(start, end) {
		return nil, ErrOutsideAvailability
	}

	b := &models.Booking{
		TeamID:          in.TeamID,
		CustomerID:      in.CustomerID,
		BarberID:        in.BarberID,
		ServiceID:       svc.ID,
		AppointmentDate: start,
		Status:          string(domain.InitialStatus()),
		Notes:           strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.CreateWithoutConflict(ctx, b, end); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			TeamID:    in.TeamID,
			UserID:    &in.CustomerID,
			Action:    audit.CreateBooking,
			IPAddress: in.IPAddress,
		})
	}

	return b, nil
}
