package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

// A booking starts out pending and moves to exactly one of the two terminal
// states: completed when the gateway confirms the payment, released when the
// payment fails or the booking goes stale and its seats are returned to
// availability. There is no way back to pending.
const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusReleased  BookingStatus = "released"
)

// Booking is a user's purchase record for one or more seats on a showtime.
// Its id doubles as the correlation token shared with the payment gateway.
// The seat list is fixed at creation and never mutated afterwards.
type Booking struct {
	ID          string
	ShowtimeID  int
	UserID      string
	Seats       []Seat
	TotalAmount decimal.Decimal
	Currency    string
	Status      BookingStatus
	Email       string
	PaymentRef  string
	ReceiptURL  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetById(ctx context.Context, id string) (*Booking, error)

	// Complete transitions a pending booking to completed, recording the
	// gateway's payment reference. It returns false when the booking was
	// not pending, which makes gateway retries harmless.
	Complete(ctx context.Context, id string, paymentRef string) (bool, error)

	// Release transitions a pending booking to released. Returns false when
	// the booking was not pending.
	Release(ctx context.Context, id string) (bool, error)

	SetReceiptURL(ctx context.Context, id string, url string) error

	// ListStalePending returns pending bookings created before the cutoff,
	// oldest first, for the reconciliation sweep.
	ListStalePending(ctx context.Context, cutoff time.Time, limit int) ([]Booking, error)
}
