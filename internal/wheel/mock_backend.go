package wheel

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

// MockBackend is a mock implementation of the Backend interface
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) GetWheelConfig(ctx context.Context) (*domain.WheelConfig, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WheelConfig), args.Error(1)
}

func (m *MockBackend) Spin(ctx context.Context, req domain.SpinRequest) (*domain.SpinOutcome, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SpinOutcome), args.Error(1)
}

func (m *MockBackend) CreateExternalInvoice(ctx context.Context) (*domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockBackend) GetHistory(ctx context.Context, page, pageSize int) (*domain.HistoryPage, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HistoryPage), args.Error(1)
}
