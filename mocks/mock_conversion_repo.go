package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"picdesc/internal/domain"
)

// MockConversionRepo is a mock implementation of port.ConversionRepository.
type MockConversionRepo struct {
	mock.Mock
}

func (m *MockConversionRepo) Create(ctx context.Context, conv *domain.Conversion) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Conversion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

func (m *MockConversionRepo) List(ctx context.Context, offset, limit int) ([]domain.Conversion, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Conversion), args.Int(1), args.Error(2)
}

func (m *MockConversionRepo) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
