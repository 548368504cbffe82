// Package api contains the request and response types of the public HTTP
// surface. Field tags carry both the JSON names and the validation rules.
package api

import (
	"time"

	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

// Seat identifies a single seat coordinate within a showtime's layout.
type Seat struct {
	Row int `json:"row" validate:"gte=0"`
	Col int `json:"col" validate:"gte=0"`
}

type CreateShowtimeRequest struct {
	MovieId  int             `json:"movieId" validate:"required,gt=0"`
	StartsAt time.Time       `json:"startsAt" validate:"required,future"`
	EndsAt   time.Time       `json:"endsAt" validate:"required,gtfield=StartsAt"`
	Screen   string          `json:"screen" validate:"required,max=32"`
	Price    decimal.Decimal `json:"price" validate:"required"`
	SeatRows int             `json:"seatRows" validate:"required,gt=0,lte=100"`
	SeatCols int             `json:"seatCols" validate:"required,gt=0,lte=100"`
}

type ShowtimeResponse struct {
	Id         int             `json:"id"`
	MovieId    int             `json:"movieId"`
	MovieTitle string          `json:"movieTitle,omitempty"`
	StartsAt   time.Time       `json:"startsAt"`
	EndsAt     time.Time       `json:"endsAt"`
	Screen     string          `json:"screen"`
	Price      decimal.Decimal `json:"price"`
	SeatRows   int             `json:"seatRows"`
	SeatCols   int             `json:"seatCols"`
	TotalSeats int             `json:"totalSeats"`
}

type SeatStatus string

const (
	SeatStatusAvailable SeatStatus = "available"
	SeatStatusLocked    SeatStatus = "locked"
	SeatStatusBooked    SeatStatus = "booked"
)

type SeatMapEntry struct {
	Row    int        `json:"row"`
	Col    int        `json:"col"`
	Status SeatStatus `json:"status"`
}

type SeatMapResponse struct {
	ShowtimeId int            `json:"showtimeId"`
	SeatRows   int            `json:"seatRows"`
	SeatCols   int            `json:"seatCols"`
	Seats      []SeatMapEntry `json:"seats"`
}

type LockSeatRequest struct {
	Row int `json:"row" validate:"gte=0"`
	Col int `json:"col" validate:"gte=0"`
}

type LockSeatResponse struct {
	Locked    bool      `json:"locked"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CreateBookingRequest struct {
	Seats []Seat `json:"seats" validate:"required,min=1,max=10,dive"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

type BookingResponse struct {
	Id          string          `json:"id"`
	ShowtimeId  int             `json:"showtimeId"`
	Seats       []Seat          `json:"seats"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	ReceiptUrl  string          `json:"receiptUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CheckoutParams carries everything the client needs to hand the payment
// gateway, including the integrity hash bound to the booking id.
type CheckoutParams struct {
	MerchantId string `json:"merchantId"`
	OrderId    string `json:"orderId"`
	Amount     string `json:"amount"`
	Currency   string `json:"currency"`
	Hash       string `json:"hash"`
}

type CreateBookingResponse struct {
	Booking  BookingResponse `json:"booking"`
	Checkout CheckoutParams  `json:"checkout"`
}
