package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func makeOrder(t *testing.T, phone string) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder("Ali", "Yılmaz", phone, "Lamba", 1)
	require.NoError(t, err)
	require.NoError(t, order.SetStatus(trade.OrderStatusConfirmed))
	return order
}

func TestReturnsService_ProcessBatch(t *testing.T) {
	t.Run("matches by trailing digits regardless of prefix", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewReturnsService(orderRepo, zap.NewNop())

		order := makeOrder(t, "5551234567")
		orderRepo.On("FindActiveByPhoneSuffix", mock.Anything, "5551234567").Return(order, nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		cost := 35.0
		result, err := service.ProcessBatch(context.Background(), []ReturnRecord{
			{Phone: "05551234567", Cost: &cost},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Processed)
		assert.Equal(t, 0, result.NotFound)
		assert.True(t, order.IsReturned())
		require.NotNil(t, order.ReturnCost)
		assert.True(t, decimal.NewFromFloat(35).Equal(*order.ReturnCost))
	})

	t.Run("cost derived from component difference", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewReturnsService(orderRepo, zap.NewNop())

		order := makeOrder(t, "5551234567")
		orderRepo.On("FindActiveByPhoneSuffix", mock.Anything, "5551234567").Return(order, nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		_, err := service.ProcessBatch(context.Background(), []ReturnRecord{
			{Phone: "+905551234567", Charged: 50, Refunded: 12.5},
		})

		require.NoError(t, err)
		require.NotNil(t, order.ReturnCost)
		assert.True(t, decimal.NewFromFloat(37.5).Equal(*order.ReturnCost))
	})

	t.Run("misses tallied, batch continues", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewReturnsService(orderRepo, zap.NewNop())

		order := makeOrder(t, "5551234567")
		orderRepo.On("FindActiveByPhoneSuffix", mock.Anything, "5551234567").Return(order, nil)
		orderRepo.On("FindActiveByPhoneSuffix", mock.Anything, "5559876543").Return(nil, shared.ErrNotFound)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		result, err := service.ProcessBatch(context.Background(), []ReturnRecord{
			{Phone: "5559876543"},
			{Phone: "5551234567"},
			{Phone: "123"}, // too short to match anything
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Processed)
		assert.Equal(t, 2, result.NotFound)
		// tally always accounts for the whole batch
		assert.Equal(t, 3, result.Processed+result.NotFound)
	})

	t.Run("datastore failure on one record does not abort the batch", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewReturnsService(orderRepo, zap.NewNop())

		order := makeOrder(t, "5551234567")
		orderRepo.On("FindActiveByPhoneSuffix", mock.Anything, "5559876543").Return(nil, errors.New("connection reset"))
		orderRepo.On("FindActiveByPhoneSuffix", mock.Anything, "5551234567").Return(order, nil)
		orderRepo.On("Save", mock.Anything, order).Return(nil)

		result, err := service.ProcessBatch(context.Background(), []ReturnRecord{
			{Phone: "5559876543"},
			{Phone: "5551234567"},
		})

		require.NoError(t, err)
		assert.Equal(t, 1, result.Processed)
		assert.Equal(t, 1, result.NotFound)
	})

	t.Run("fully implausible batch fails fast before any write", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewReturnsService(orderRepo, zap.NewNop())

		_, err := service.ProcessBatch(context.Background(), []ReturnRecord{
			{Phone: "123"},
			{Phone: "yok"},
			{Phone: ""},
		})

		assert.ErrorIs(t, err, ErrNoPlausiblePhones)
		orderRepo.AssertNotCalled(t, "FindActiveByPhoneSuffix")
		orderRepo.AssertNotCalled(t, "Save")
	})

	t.Run("empty batch fails fast", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		service := NewReturnsService(orderRepo, zap.NewNop())

		_, err := service.ProcessBatch(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoPlausiblePhones)
	})
}
