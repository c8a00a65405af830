package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barbemnt/internal/domain/booking"
	"github.com/BruksfildServices01/barbemnt/internal/models"
	"github.com/BruksfildServices01/barbemnt/internal/testutil/testdb"
)

func TestBookingGormRepository_ConflictDetection(t *testing.T) {
	db := testdb.New(t)
	ctx := context.Background()

	barber := models.User{Email: "barber@shop.test", PasswordHash: "x", Role: "barber"}
	customer := models.User{Email: "c@shop.test", PasswordHash: "x", Role: "user"}
	require.NoError(t, db.Create(&barber).Error)
	require.NoError(t, db.Create(&customer).Error)

	team := models.Team{Name: "Cuts", Timezone: "UTC"}
	require.NoError(t, db.Create(&team).Error)
	require.NoError(t, db.Create(&models.TeamMember{UserID: barber.ID, TeamID: team.ID, Role: "barber", JoinedAt: time.Now()}).Error)

	svc := models.Service{TeamID: team.ID, Name: "Fade", DurationMinutes: 45, Price: 3000, IsActive: true}
	require.NoError(t, db.Create(&svc).Error)

	repo := NewBookingGormRepository(db)
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	first := &models.Booking{TeamID: team.ID, CustomerID: customer.ID, BarberID: barber.ID, ServiceID: svc.ID, AppointmentDate: start, Status: "pending"}
	require.NoError(t, repo.CreateWithoutConflict(ctx, first, start.Add(45*time.Minute)))

	overlap := &models.Booking{TeamID: team.ID, CustomerID: customer.ID, BarberID: barber.ID, ServiceID: svc.ID, AppointmentDate: start.Add(30 * time.Minute), Status: "pending"}
	err := repo.CreateWithoutConflict(ctx, overlap, start.Add(75*time.Minute))
	assert.True(t, errors.Is(err, domain.ErrTimeConflict))

	adjacent := &models.Booking{TeamID: team.ID, CustomerID: customer.ID, BarberID: barber.ID, ServiceID: svc.ID, AppointmentDate: start.Add(45 * time.Minute), Status: "pending"}
	require.NoError(t, repo.CreateWithoutConflict(ctx, adjacent, start.Add(90*time.Minute)))

	busy, err := repo.ListBusyIntervals(ctx, barber.ID, start, start.Add(8*time.Hour))
	require.NoError(t, err)
	require.Len(t, busy, 2)
	assert.True(t, busy[0].End.Equal(start.Add(45*time.Minute)))

	// cancelled bookings free the slot
	first.Status = string(domain.StatusCancelled)
	require.NoError(t, repo.UpdateStatus(ctx, first))

	retry := &models.Booking{TeamID: team.ID, CustomerID: customer.ID, BarberID: barber.ID, ServiceID: svc.ID, AppointmentDate: start, Status: "pending"}
	require.NoError(t, repo.CreateWithoutConflict(ctx, retry, start.Add(45*time.Minute)))

	ok, err := repo.IsTeamBarber(ctx, team.ID, barber.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsTeamBarber(ctx, team.ID, customer.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	profile, err := repo.GetBarberProfile(ctx, barber.ID)
	require.NoError(t, err)
	assert.Nil(t, profile)

	listed, err := repo.ListForBarber(ctx, barber.ID, start.Add(-time.Hour), start.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "Fade", listed[0].Service.Name)

	mine, err := repo.ListForCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}
