package dto

import "time"

type BookingListDTO struct {
	ID           uint      `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	ServiceName  string    `json:"service_name"`
	Notes        string    `json:"notes"`
}

type CustomerBookingDTO struct {
	ID          uint      `json:"id"`
	TeamID      uint      `json:"team_id"`
	StartTime   time.Time `json:"start_time"`
	Status      string    `json:"status"`
	BarberName  string    `json:"barber_name"`
	ServiceName string    `json:"service_name"`
	Price       int       `json:"price"`
}
