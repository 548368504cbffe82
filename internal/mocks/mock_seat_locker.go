package mocks

import (
	"context"
	"time"

	"github.com/silverscreenhq/silverscreen-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockSeatLocker struct {
	mock.Mock
	domain.SeatLocker
}

func (m *MockSeatLocker) Lock(ctx context.Context, showtimeID int, userID string, seat domain.Seat, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, showtimeID, userID, seat, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeatLocker) Unlock(ctx context.Context, showtimeID int, userID string, seat domain.Seat) (bool, error) {
	args := m.Called(ctx, showtimeID, userID, seat)
	return args.Bool(0), args.Error(1)
}

func (m *MockSeatLocker) Holder(ctx context.Context, showtimeID int, seat domain.Seat) (string, error) {
	args := m.Called(ctx, showtimeID, seat)
	return args.String(0), args.Error(1)
}

func (m *MockSeatLocker) LockedSeats(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}
