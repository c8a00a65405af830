package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbemnt/internal/domain/booking"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

// bookings never span more than a day, so this bounds the overlap scan
const lookback = 24 * time.Hour

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Team / catalog
// --------------------------------------------------

func (r *BookingGormRepository) GetTeam(ctx context.Context, teamID uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).First(&team, teamID).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *BookingGormRepository) GetActiveService(
	ctx context.Context,
	teamID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND team_id = ? AND is_active = ?", serviceID, teamID, true).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Barber
// --------------------------------------------------

func (r *BookingGormRepository) IsTeamBarber(ctx context.Context, teamID, barberID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, barberID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetBarberProfile returns nil when the barber never saved a profile.
func (r *BookingGormRepository) GetBarberProfile(ctx context.Context, barberID uint) (*models.BarberProfile, error) {
	var profile models.BarberProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", barberID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *BookingGormRepository) ListBusyIntervals(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]domain.Interval, error) {

	bookings, err := r.activeAround(r.db.WithContext(ctx), barberID, start, end, false)
	if err != nil {
		return nil, err
	}
	return overlapping(bookings, start, end), nil
}

func (r *BookingGormRepository) CreateWithoutConflict(
	ctx context.Context,
	b *models.Booking,
	end time.Time,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// serialize bookings per barber; row locks on bookings alone
		// cannot stop two concurrent inserts into an empty slot
		var barber models.User
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&barber, b.BarberID).Error; err != nil {
			return err
		}

		existing, err := r.activeAround(tx, b.BarberID, b.AppointmentDate, end, true)
		if err != nil {
			return err
		}
		if len(overlapping(existing, b.AppointmentDate, end)) > 0 {
			return domain.ErrTimeConflict
		}

		b.AppointmentDate = b.AppointmentDate.UTC()
		return tx.Omit(clause.Associations).Create(b).Error
	})
}

func (r *BookingGormRepository) activeAround(
	db *gorm.DB,
	barberID uint,
	start time.Time,
	end time.Time,
	lock bool,
) ([]models.Booking, error) {

	q := db.Preload("Service").
		Where(
			"barber_id = ? AND status <> ? AND appointment_date >= ? AND appointment_date < ?",
			barberID,
			string(domain.StatusCancelled),
			start.Add(-lookback).UTC(),
			end.UTC(),
		)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: clause.CurrentTable}})
	}

	var bookings []models.Booking
	if err := q.Order("appointment_date ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func overlapping(bookings []models.Booking, start, end time.Time) []domain.Interval {
	out := make([]domain.Interval, 0, len(bookings))
	for _, b := range bookings {
		iv := domain.Interval{
			Start: b.AppointmentDate,
			End:   b.AppointmentDate.Add(time.Duration(b.Service.DurationMinutes) * time.Minute),
		}
		if iv.Overlaps(start, end) {
			out = append(out, iv)
		}
	}
	return out
}

// --------------------------------------------------
// State change
// --------------------------------------------------

func (r *BookingGormRepository) GetForBarber(
	ctx context.Context,
	bookingID uint,
	barberID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barber_id = ?", bookingID, barberID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateStatus(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Update("status", b.Status).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListForBarber(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"barber_id = ? AND appointment_date >= ? AND appointment_date < ?",
			barberID, start.UTC(), end.UTC(),
		).
		Order("appointment_date ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListForCustomer(ctx context.Context, customerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("customer_id = ?", customerID).
		Order("appointment_date DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
