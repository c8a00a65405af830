package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barbemnt/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbemnt/internal/domain/booking"
	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

var (
	ErrServiceNotFound = httperr.ErrBusiness("service_not_found")
	ErrBarberNotFound  = httperr.ErrBusiness("barber_not_found")
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

// Execute lists the free slots of in.Date. in.Date must already carry the
// team's location.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.Slot, error) {

	svc, err := uc.repo.GetActiveService(ctx, in.TeamID, in.ServiceID)
	if err != nil {
		return nil, ErrServiceNotFound
	}

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

	dayStart, dayEnd, open := schedule.Window(in.Date)
	if !open {
		return []domain.Slot{}, nil
	}

	busy, err := uc.repo.ListBusyIntervals(ctx, in.BarberID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	return freeSlots(dayStart, dayEnd, svc, busy, uc.now()), nil
}

func scheduleFor(ctx context.Context, repo domain.Repository, barberID uint) (availability.WeeklyAvailability, error) {
	profile, err := repo.GetBarberProfile(ctx, barberID)
	if err != nil {
		return availability.WeeklyAvailability{}, err
	}
	if profile == nil || profile.Availability.IsZero() {
		return availability.Default(), nil
	}
	return profile.Availability, nil
}

// freeSlots walks the window in service-sized steps and keeps slots that
// start in the future and do not overlap a busy interval.
func freeSlots(
	dayStart, dayEnd time.Time,
	svc *models.Service,
	busy []domain.Interval,
	now time.Time,
) []domain.Slot {

	slotDuration := time.Duration(svc.DurationMinutes) * time.Minute
	slots := []domain.Slot{}
	if slotDuration <= 0 {
		return slots
	}

	idx := 0
	for cur := dayStart; !cur.Add(slotDuration).After(dayEnd); cur = cur.Add(slotDuration) {
		slotStart := cur
		slotEnd := cur.Add(slotDuration)

		if !slotStart.After(now) {
			continue
		}

		// busy is sorted; skip intervals that ended before this slot
		for idx < len(busy) && !busy[idx].End.After(slotStart) {
			idx++
		}

		conflict := false
		for j := idx; j < len(busy) && busy[j].Start.Before(slotEnd); j++ {
			if busy[j].Overlaps(slotStart, slotEnd) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.Slot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots
}
