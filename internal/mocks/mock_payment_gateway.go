package mocks

import (
	"github.com/silverscreenhq/silverscreen-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPaymentGateway struct {
	mock.Mock
	domain.PaymentGateway
}

func (m *MockPaymentGateway) Checkout(booking *domain.Booking) (*domain.Checkout, error) {
	args := m.Called(booking)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkout), args.Error(1)
}

func (m *MockPaymentGateway) VerifyNotification(n domain.Notification) bool {
	args := m.Called(n)
	return args.Bool(0)
}
