package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbemnt/internal/audit"
	"github.com/BruksfildServices01/barbemnt/internal/domain/availability"
	"github.com/BruksfildServices01/barbemnt/internal/httperr"
	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	"github.com/BruksfildServices01/barbemnt/internal/models"
)

// BarberHandler serves the caller's own barber profile and weekly schedule.
type BarberHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBarberHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *BarberHandler {
	return &BarberHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type DayRequest struct {
	IsOpen bool   `json:"is_open"`
	Start  string `json:"start" binding:"required,hhmm"`
	End    string `json:"end" binding:"required,hhmm"`
}

type AvailabilityRequest struct {
	Monday    DayRequest `json:"monday"`
	Tuesday   DayRequest `json:"tuesday"`
	Wednesday DayRequest `json:"wednesday"`
	Thursday  DayRequest `json:"thursday"`
	Friday    DayRequest `json:"friday"`
	Saturday  DayRequest `json:"saturday"`
	Sunday    DayRequest `json:"sunday"`
}

func (r AvailabilityRequest) weekly() availability.WeeklyAvailability {
	day := func(d DayRequest) availability.Day {
		return availability.Day{IsOpen: d.IsOpen, Start: d.Start, End: d.End}
	}
	return availability.WeeklyAvailability{
		Monday:    day(r.Monday),
		Tuesday:   day(r.Tuesday),
		Wednesday: day(r.Wednesday),
		Thursday:  day(r.Thursday),
		Friday:    day(r.Friday),
		Saturday:  day(r.Saturday),
		Sunday:    day(r.Sunday),
	}
}

type ProfileRequest struct {
	Bio             string   `json:"bio" binding:"max=1000"`
	Specialties     []string `json:"specialties" binding:"max=20,dive,max=50"`
	InstagramHandle string   `json:"instagram_handle" binding:"max=255"`
}

type ProfileScheduleRequest struct {
	ProfileRequest
	Availability AvailabilityRequest `json:"availability"`
}

// --------- Handlers ---------

// GetProfile creates the profile with the default schedule on first access.
func (h *BarberHandler) GetProfile(c *gin.Context) {
	profile, err := h.loadOrCreate(c.Request.Context(), callerID(c))
	if err != nil {
		httperr.Internal(c, "failed_to_load_profile", "Could not load the profile.")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *BarberHandler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	h.save(c, func(p *models.BarberProfile) error {
		applyProfile(p, req)
		return nil
	}, "")
}

func (h *BarberHandler) UpdateAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	h.save(c, func(p *models.BarberProfile) error {
		return applyAvailability(p, req)
	}, audit.UpdateBarberHours)
}

func (h *BarberHandler) UpdateProfileSchedule(c *gin.Context) {
	var req ProfileScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	h.save(c, func(p *models.BarberProfile) error {
		applyProfile(p, req.ProfileRequest)
		return applyAvailability(p, req.Availability)
	}, audit.UpdateBarberHours)
}

// --------- Helpers ---------

func applyProfile(p *models.BarberProfile, req ProfileRequest) {
	p.Bio = strings.TrimSpace(req.Bio)
	p.InstagramHandle = strings.TrimPrefix(strings.TrimSpace(req.InstagramHandle), "@")

	specialties := make([]string, 0, len(req.Specialties))
	for _, s := range req.Specialties {
		if s = strings.TrimSpace(s); s != "" {
			specialties = append(specialties, s)
		}
	}
	p.Specialties = specialties
}

func applyAvailability(p *models.BarberProfile, req AvailabilityRequest) error {
	weekly := req.weekly()
	if err := weekly.Validate(); err != nil {
		return err
	}
	p.Availability = weekly
	return nil
}

func (h *BarberHandler) save(c *gin.Context, apply func(*models.BarberProfile) error, action audit.ActivityType) {
	ctx := c.Request.Context()
	userID := callerID(c)

	profile, err := h.loadOrCreate(ctx, userID)
	if err != nil {
		httperr.Internal(c, "failed_to_load_profile", "Could not load the profile.")
		return
	}

	if err := apply(profile); err != nil {
		httperr.BadRequest(c, "invalid_availability", err.Error())
		return
	}

	if err := h.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error; err != nil {
		httperr.Internal(c, "failed_to_save_profile", "Could not save the profile.")
		return
	}

	if action != "" && h.audit != nil {
		h.audit.Dispatch(audit.Event{
			TeamID:    middleware.TeamIDFrom(c),
			UserID:    &userID,
			Action:    action,
			IPAddress: c.ClientIP(),
		})
	}

	c.JSON(http.StatusOK, profile)
}

func (h *BarberHandler) loadOrCreate(ctx context.Context, userID uint) (*models.BarberProfile, error) {
	var profile models.BarberProfile
	err := h.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		if profile.Availability.IsZero() {
			profile.Availability = availability.Default()
		}
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = models.BarberProfile{
		UserID:       userID,
		Specialties:  []string{},
		Availability: availability.Default(),
	}
	if err := h.db.WithContext(ctx).Omit(clause.Associations).Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
