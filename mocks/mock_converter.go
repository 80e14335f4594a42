package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"picdesc/internal/domain"
)

// MockConverter is a mock implementation of service.Converter.
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) Convert(ctx context.Context, source string) (*domain.Document, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
