package domain

import (
	"context"
	"fmt"
	"time"
)

// Seat is a single seat coordinate within a showtime's layout.
type Seat struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (s Seat) String() string {
	return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
}

// In reports whether the coordinate lies within a rows x cols layout.
func (s Seat) In(rows, cols int) bool {
	return s.Row >= 0 && s.Row < rows && s.Col >= 0 && s.Col < cols
}

// SeatLocker grants and releases time-bounded exclusive holds on individual
// seats. A hold expires on its own after its TTL unless it is released or
// consumed by a booking first; whichever happens first wins and the others
// become no-ops.
type SeatLocker interface {
	// Lock acquires a hold on the seat for the given user. It returns false
	// without an error when the seat is already held, by anyone.
	Lock(ctx context.Context, showtimeID int, userID string, seat Seat, ttl time.Duration) (bool, error)

	// Unlock releases a hold. It returns false when no hold exists for
	// exactly this user and coordinate, which also covers holds that have
	// already expired or been consumed.
	Unlock(ctx context.Context, showtimeID int, userID string, seat Seat) (bool, error)

	// Holder returns the user holding the seat, or "" when it is free.
	Holder(ctx context.Context, showtimeID int, seat Seat) (string, error)

	// LockedSeats returns the coordinates currently held for the showtime,
	// dropping any entries whose holds have expired in the meantime.
	LockedSeats(ctx context.Context, showtimeID int) ([]Seat, error)
}
