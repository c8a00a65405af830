package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbemnt/internal/domain/booking"
	"github.com/BruksfildServices01/barbemnt/internal/dto"
	"github.com/BruksfildServices01/barbemnt/internal/timezone"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// ForBarberDay lists one calendar day of the barber's bookings in the team timezone.
func (uc *ListBookings) ForBarberDay(
	ctx context.Context,
	teamID uint,
	barberID uint,
	date string,
) ([]dto.BookingListDTO, error) {

	team, err := uc.repo.GetTeam(ctx, teamID)
	if err != nil {
		return nil, ErrTeamNotFound
	}

	day, err := timezone.ParseDate(team.Timezone, date)
	if err != nil {
		return nil, ErrInvalidDateOrTime
	}
	start, end := timezone.DayBounds(day)

	bookings, err := uc.repo.ListForBarber(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(team.Timezone)
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		startsAt := b.AppointmentDate.In(loc)
		out = append(out, dto.BookingListDTO{
			ID:           b.ID,
			StartTime:    startsAt,
			EndTime:      startsAt.Add(time.Duration(b.Service.DurationMinutes) * time.Minute),
			Status:       b.Status,
			CustomerName: b.Customer.Name,
			ServiceName:  b.Service.Name,
			Notes:        b.Notes,
		})
	}
	return out, nil
}

func (uc *ListBookings) ForCustomer(
	ctx context.Context,
	customerID uint,
) ([]dto.CustomerBookingDTO, error) {

	bookings, err := uc.repo.ListForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CustomerBookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.CustomerBookingDTO{
			ID:          b.ID,
			TeamID:      b.TeamID,
			StartTime:   b.AppointmentDate,
			Status:      b.Status,
			BarberName:  b.Barber.Name,
			ServiceName: b.Service.Name,
			Price:       b.Service.Price,
		})
	}
	return out, nil
}
