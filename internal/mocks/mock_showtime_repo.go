package mocks

import (
	"context"

	"github.com/silverscreenhq/silverscreen-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockShowtimeRepo struct {
	mock.Mock
	domain.ShowtimeRepository
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime) error {
	args := m.Called(ctx, showtime)
	return args.Error(0)
}

func (m *MockShowtimeRepo) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeRepo) BookSeat(ctx context.Context, showtimeID int, seat domain.Seat) error {
	args := m.Called(ctx, showtimeID, seat)
	return args.Error(0)
}

func (m *MockShowtimeRepo) UnbookSeat(ctx context.Context, showtimeID int, seat domain.Seat) (bool, error) {
	args := m.Called(ctx, showtimeID, seat)
	return args.Bool(0), args.Error(1)
}

func (m *MockShowtimeRepo) BookedSeats(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	args := m.Called(ctx, showtimeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockShowtimeRepo) IsBooked(ctx context.Context, showtimeID int, seat domain.Seat) (bool, error) {
	args := m.Called(ctx, showtimeID, seat)
	return args.Bool(0), args.Error(1)
}
