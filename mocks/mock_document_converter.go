package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"picdesc/internal/port"
)

// MockDocumentConverter is a mock implementation of port.DocumentConverter.
type MockDocumentConverter struct {
	mock.Mock
}

func (m *MockDocumentConverter) Convert(ctx context.Context, req port.ConvertRequest) (*port.ConvertResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ConvertResult), args.Error(1)
}

func (m *MockDocumentConverter) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
