package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbemnt/internal/middleware"
	ucBooking "github.com/BruksfildServices01/barbemnt/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create     *ucBooking.CreateBooking
	transition *ucBooking.TransitionBooking
	list       *ucBooking.ListBookings
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	transition *ucBooking.TransitionBooking,
	list *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		create:     create,
		transition: transition,
		list:       list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	TeamID    uint   `json:"team_id" binding:"required"`
	BarberID  uint   `json:"barber_id" binding:"required"`
	ServiceID uint   `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required,hhmm"`
	Notes     string `json:"notes" binding:"max=500"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		TeamID:     req.TeamID,
		CustomerID: callerID(c),
		BarberID:   req.BarberID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		Notes:      req.Notes,
		IPAddress:  c.ClientIP(),
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) Mine(c *gin.Context) {
	bookings, err := h.list.ForCustomer(c.Request.Context(), callerID(c))
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ======================================================
// BARBER
// ======================================================

func (h *BookingHandler) BarberDay(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		invalidDate(c)
		return
	}

	bookings, err := h.list.ForBarberDay(
		c.Request.Context(),
		middleware.TeamIDFrom(c),
		callerID(c),
		date,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "bookings": bookings})
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.apply(c, ucBooking.Confirm)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.apply(c, ucBooking.Cancel)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.apply(c, ucBooking.Complete)
}

func (h *BookingHandler) apply(c *gin.Context, action ucBooking.Action) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	b, err := h.transition.Execute(c.Request.Context(), callerID(c), id, action)
	if err != nil {
		writeBusinessError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func invalidDate(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_code": "missing_date",
		"message":    "The date query parameter is required (YYYY-MM-DD).",
	})
}
