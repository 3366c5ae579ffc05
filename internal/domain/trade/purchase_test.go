package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPurchase(t *testing.T) {
	supplierID := uuid.New()
	productID := uuid.New()

	t.Run("total computed from amount, unit price and shipping", func(t *testing.T) {
		purchase, err := NewPurchase(supplierID, productID, 40,
			decimal.NewFromFloat(12.5), decimal.NewFromInt(150), time.Now())
		require.NoError(t, err)
		assert.Equal(t, PurchaseStatusInTransit, purchase.Status)
		// 40 * 12.5 + 150 = 650
		assert.True(t, decimal.NewFromInt(650).Equal(purchase.TotalPrice))
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		_, err := NewPurchase(supplierID, productID, 0, decimal.NewFromInt(10), decimal.Zero, time.Now())
		assert.ErrorIs(t, err, ErrInvalidPurchaseAmount)
	})

	t.Run("negative prices rejected", func(t *testing.T) {
		_, err := NewPurchase(supplierID, productID, 1, decimal.NewFromInt(-1), decimal.Zero, time.Now())
		assert.Error(t, err)
	})

	t.Run("zero date defaults to now", func(t *testing.T) {
		purchase, err := NewPurchase(supplierID, productID, 1, decimal.NewFromInt(1), decimal.Zero, time.Time{})
		require.NoError(t, err)
		assert.False(t, purchase.Date.IsZero())
	})
}

func TestPurchaseReceive(t *testing.T) {
	purchase, err := NewPurchase(uuid.New(), uuid.New(), 10, decimal.NewFromInt(5), decimal.Zero, time.Now())
	require.NoError(t, err)

	require.NoError(t, purchase.Receive())
	assert.True(t, purchase.IsReceived())
	assert.Equal(t, PurchaseStatusReceived, purchase.Status)

	// receiving twice must not double-count stock
	assert.ErrorIs(t, purchase.Receive(), ErrPurchaseReceived)
}
