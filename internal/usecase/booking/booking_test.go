package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbemnt/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbemnt/internal/domain/booking"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

// stubRepo is an in-memory domain.Repository for a single team.
type stubRepo struct {
	team     models.Team
	services map[uint]models.Service
	barbers  map[uint]bool
	profiles map[uint]*models.BarberProfile
	busy     []domain.Interval
	created  []*models.Booking
	stored   map[uint]*models.Booking
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		team:     models.Team{ID: 1, Timezone: "UTC"},
		services: map[uint]models.Service{10: {ID: 10, TeamID: 1, Name: "Fade", DurationMinutes: 60, IsActive: true}},
		barbers:  map[uint]bool{5: true},
		profiles: map[uint]*models.BarberProfile{},
		stored:   map[uint]*models.Booking{},
	}
}

func (s *stubRepo) GetTeam(_ context.Context, id uint) (*models.Team, error) {
	if id != s.team.ID {
		return nil, gorm.ErrRecordNotFound
	}
	return &s.team, nil
}

func (s *stubRepo) GetActiveService(_ context.Context, teamID, id uint) (*models.Service, error) {
	svc, ok := s.services[id]
	if !ok || svc.TeamID != teamID || !svc.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return &svc, nil
}

func (s *stubRepo) IsTeamBarber(_ context.Context, _ uint, barberID uint) (bool, error) {
	return s.barbers[barberID], nil
}

func (s *stubRepo) GetBarberProfile(_ context.Context, barberID uint) (*models.BarberProfile, error) {
	return s.profiles[barberID], nil
}

func (s *stubRepo) ListBusyIntervals(_ context.Context, _ uint, start, end time.Time) ([]domain.Interval, error) {
	var out []domain.Interval
	for _, iv := range s.busy {
		if iv.Overlaps(start, end) {
			out = append(out, iv)
		}
	}
	return out, nil
}

func (s *stubRepo) CreateWithoutConflict(_ context.Context, b *models.Booking, end time.Time) error {
	for _, iv := range s.busy {
		if iv.Overlaps(b.AppointmentDate, end) {
			return domain.ErrTimeConflict
		}
	}
	b.ID = uint(len(s.created) + 1)
	s.created = append(s.created, b)
	s.busy = append(s.busy, domain.Interval{Start: b.AppointmentDate, End: end})
	return nil
}

func (s *stubRepo) GetForBarber(_ context.Context, id, barberID uint) (*models.Booking, error) {
	b, ok := s.stored[id]
	if !ok || b.BarberID != barberID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, b *models.Booking) error {
	s.stored[b.ID].Status = b.Status
	return nil
}

func (s *stubRepo) ListForBarber(context.Context, uint, time.Time, time.Time) ([]models.Booking, error) {
	return nil, nil
}

func (s *stubRepo) ListForCustomer(context.Context, uint) ([]models.Booking, error) {
	return nil, nil
}

var _ domain.Repository = (*stubRepo)(nil)

// Monday 2026-10-19
var monday = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// ------------------------------------------------------------------
// availability
// ------------------------------------------------------------------

func TestGetAvailability_DefaultScheduleHourlySlots(t *testing.T) {
	repo := newStubRepo()
	uc := NewGetAvailability(repo)
	uc.now = fixedNow(monday.Add(-24 * time.Hour))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TeamID: 1, BarberID: 5, ServiceID: 10, Date: monday,
	})
	require.NoError(t, err)
	require.Len(t, slots, 8)
	assert.Equal(t, domain.Slot{Start: "09:00", End: "10:00"}, slots[0])
	assert.Equal(t, domain.Slot{Start: "16:00", End: "17:00"}, slots[7])
}

func TestGetAvailability_SkipsBusyAndPastSlots(t *testing.T) {
	repo := newStubRepo()
	repo.busy = []domain.Interval{
		{Start: monday.Add(10*time.Hour + 30*time.Minute), End: monday.Add(11*time.Hour + 30*time.Minute)},
	}
	uc := NewGetAvailability(repo)
	uc.now = fixedNow(monday.Add(9*time.Hour + 15*time.Minute))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TeamID: 1, BarberID: 5, ServiceID: 10, Date: monday,
	})
	require.NoError(t, err)

	var starts []string
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	// 09:00 already started, 10:00 and 11:00 overlap the busy interval
	assert.Equal(t, []string{"12:00", "13:00", "14:00", "15:00", "16:00"}, starts)
}

func TestGetAvailability_ClosedDay(t *testing.T) {
	repo := newStubRepo()
	uc := NewGetAvailability(repo)
	uc.now = fixedNow(monday.Add(-24 * time.Hour))

	saturday := monday.AddDate(0, 0, 5)
	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TeamID: 1, BarberID: 5, ServiceID: 10, Date: saturday,
	})
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailability_UsesStoredProfile(t *testing.T) {
	repo := newStubRepo()
	custom := availability.Default()
	custom.Monday = availability.Day{IsOpen: true, Start: "14:00", End: "16:00"}
	repo.profiles[5] = &models.BarberProfile{UserID: 5, Availability: custom}

	uc := NewGetAvailability(repo)
	uc.now = fixedNow(monday.Add(-24 * time.Hour))

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		TeamID: 1, BarberID: 5, ServiceID: 10, Date: monday,
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Slot{{Start: "14:00", End: "15:00"}, {Start: "15:00", End: "16:00"}}, slots)
}

func TestGetAvailability_UnknownServiceOrBarber(t *testing.T) {
	uc := NewGetAvailability(newStubRepo())

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{TeamID: 1, BarberID: 5, ServiceID: 99, Date: monday})
	assert.True(t, errors.Is(err, ErrServiceNotFound))

	_, err = uc.Execute(context.Background(), domain.AvailabilityInput{TeamID: 1, BarberID: 99, ServiceID: 10, Date: monday})
	assert.True(t, errors.Is(err, ErrBarberNotFound))
}

// ------------------------------------------------------------------
// create
// ------------------------------------------------------------------

func newCreate(repo *stubRepo) *CreateBooking {
	uc := NewCreateBooking(repo, nil)
	uc.now = fixedNow(monday.Add(-24 * time.Hour))
	return uc
}

func TestCreateBooking_Success(t *testing.T) {
	repo := newStubRepo()

	b, err := newCreate(repo).Execute(context.Background(), CreateBookingInput{
		TeamID: 1, CustomerID: 3, BarberID: 5, ServiceID: 10,
		Date: "2026-10-19", Time: "10:00", Notes: "  skin fade  ",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, monday.Add(10*time.Hour), b.AppointmentDate)
	assert.Equal(t, "skin fade", b.Notes)
	assert.Len(t, repo.created, 1)
}

func TestCreateBooking_Rejections(t *testing.T) {
	cases := []struct {
		name string
		in   CreateBookingInput
		want error
	}{
		{"bad time", CreateBookingInput{TeamID: 1, BarberID: 5, ServiceID: 10, Date: "2026-10-19", Time: "10h"}, ErrInvalidDateOrTime},
		{"past", CreateBookingInput{TeamID: 1, BarberID: 5, ServiceID: 10, Date: "2026-10-17", Time: "10:00"}, ErrInThePast},
		{"unknown service", CreateBookingInput{TeamID: 1, BarberID: 5, ServiceID: 11, Date: "2026-10-19", Time: "10:00"}, ErrServiceNotFound},
		{"not a team barber", CreateBookingInput{TeamID: 1, BarberID: 6, ServiceID: 10, Date: "2026-10-19", Time: "10:00"}, ErrBarberNotFound},
		{"runs past closing", CreateBookingInput{TeamID: 1, BarberID: 5, ServiceID: 10, Date: "2026-10-19", Time: "16:30"}, ErrOutsideAvailability},
		{"closed day", CreateBookingInput{TeamID: 1, BarberID: 5, ServiceID: 10, Date: "2026-10-24", Time: "11:00"}, ErrOutsideAvailability},
		{"unknown team", CreateBookingInput{TeamID: 2, BarberID: 5, ServiceID: 10, Date: "2026-10-19", Time: "10:00"}, ErrTeamNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newCreate(newStubRepo()).Execute(context.Background(), tc.in)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestCreateBooking_Conflict(t *testing.T) {
	repo := newStubRepo()
	uc := newCreate(repo)

	in := CreateBookingInput{TeamID: 1, CustomerID: 3, BarberID: 5, ServiceID: 10, Date: "2026-10-19", Time: "10:00"}
	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	in.Time = "10:30"
	_, err = uc.Execute(context.Background(), in)
	assert.True(t, errors.Is(err, domain.ErrTimeConflict))
}

// ------------------------------------------------------------------
// transitions
// ------------------------------------------------------------------

func TestTransitionBooking(t *testing.T) {
	repo := newStubRepo()
	repo.stored[1] = &models.Booking{ID: 1, TeamID: 1, BarberID: 5, Status: string(domain.StatusPending)}
	uc := NewTransitionBooking(repo, nil)

	b, err := uc.Execute(context.Background(), 5, 1, Confirm)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	assert.Equal(t, string(domain.StatusConfirmed), repo.stored[1].Status)

	_, err = uc.Execute(context.Background(), 5, 1, Confirm)
	assert.True(t, errors.Is(err, domain.ErrInvalidState))

	_, err = uc.Execute(context.Background(), 6, 1, Cancel)
	assert.True(t, errors.Is(err, ErrBookingNotFound))

	b, err = uc.Execute(context.Background(), 5, 1, Complete)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), b.Status)
}
