package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Showtime is a single screening of a movie. It owns the booked-seat set
// exclusively; held (locked) seats live in the seat locker and are keyed by
// the showtime id.
type Showtime struct {
	ID        int
	MovieID   int
	StartsAt  time.Time
	EndsAt    time.Time
	Screen    string
	Price     decimal.Decimal
	SeatRows  int
	SeatCols  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Showtime) TotalSeats() int {
	return s.SeatRows * s.SeatCols
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetById(ctx context.Context, id int) (*Showtime, error)

	// BookSeat commits a coordinate to the booked set. Booking a seat that
	// is already booked is a no-op.
	BookSeat(ctx context.Context, showtimeID int, seat Seat) error

	// UnbookSeat removes a coordinate from the booked set, returning false
	// when it was not booked.
	UnbookSeat(ctx context.Context, showtimeID int, seat Seat) (bool, error)

	BookedSeats(ctx context.Context, showtimeID int) ([]Seat, error)
	IsBooked(ctx context.Context, showtimeID int, seat Seat) (bool, error)
}
