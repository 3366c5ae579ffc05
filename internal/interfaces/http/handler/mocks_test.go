package handler

import (
	"context"
	"time"

	"github.com/dukkan/backoffice/internal/domain/integration"
	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository implements trade.OrderRepository for testing
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindPage(ctx context.Context, query trade.OrderQuery) (*shared.Paginated[trade.Order], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[trade.Order]), args.Error(1)
}

func (m *MockOrderRepository) FindInRange(ctx context.Context, start, end time.Time) ([]trade.Order, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindActiveByPhoneSuffix(ctx context.Context, suffix string) (*trade.Order, error) {
	args := m.Called(ctx, suffix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) CreateWithStockDeduction(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteWithStockCompensation(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockWebhookSourceRepository implements integration.WebhookSourceRepository for testing
type MockWebhookSourceRepository struct {
	mock.Mock
}

func (m *MockWebhookSourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*integration.WebhookSource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.WebhookSource), args.Error(1)
}

func (m *MockWebhookSourceRepository) FindByCode(ctx context.Context, code string) (*integration.WebhookSource, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.WebhookSource), args.Error(1)
}

func (m *MockWebhookSourceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]integration.WebhookSource, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.WebhookSource), args.Error(1)
}

func (m *MockWebhookSourceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWebhookSourceRepository) Save(ctx context.Context, source *integration.WebhookSource) error {
	args := m.Called(ctx, source)
	return args.Error(0)
}

func (m *MockWebhookSourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
