package mocks

import (
	"context"

	"github.com/silverscreenhq/silverscreen-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockMovieRepo struct {
	mock.Mock
	domain.MovieRepository
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}
