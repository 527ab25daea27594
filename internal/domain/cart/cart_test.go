package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddItem(t *testing.T) {
	c := NewCart(uuid.New())
	productID := uuid.New()

	t.Run("add new line", func(t *testing.T) {
		require.NoError(t, c.AddItem(productID, 2))
		require.Len(t, c.Items, 1)
		assert.Equal(t, int64(2), c.Items[0].Quantity)
	})

	t.Run("adding same product merges quantity", func(t *testing.T) {
		require.NoError(t, c.AddItem(productID, 3))
		require.Len(t, c.Items, 1)
		assert.Equal(t, int64(5), c.Items[0].Quantity)
	})

	t.Run("different product gets its own line", func(t *testing.T) {
		require.NoError(t, c.AddItem(uuid.New(), 1))
		assert.Len(t, c.Items, 2)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		assert.Error(t, c.AddItem(uuid.New(), 0))
		assert.Error(t, c.AddItem(uuid.New(), -1))
	})
}

func TestCartUpdateQuantity(t *testing.T) {
	c := NewCart(uuid.New())
	productID := uuid.New()
	require.NoError(t, c.AddItem(productID, 2))

	t.Run("set quantity", func(t *testing.T) {
		require.NoError(t, c.UpdateQuantity(productID, 7))
		assert.Equal(t, int64(7), c.Items[0].Quantity)
	})

	t.Run("zero removes the line", func(t *testing.T) {
		require.NoError(t, c.UpdateQuantity(productID, 0))
		assert.True(t, c.IsEmpty())
	})

	t.Run("unknown product", func(t *testing.T) {
		assert.Error(t, c.UpdateQuantity(uuid.New(), 1))
	})
}

func TestCartRemoveAndClear(t *testing.T) {
	c := NewCart(uuid.New())
	p1, p2 := uuid.New(), uuid.New()
	require.NoError(t, c.AddItem(p1, 1))
	require.NoError(t, c.AddItem(p2, 2))

	require.NoError(t, c.RemoveItem(p1))
	assert.Len(t, c.Items, 1)
	assert.Error(t, c.RemoveItem(p1), "already removed")

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestCartTotals(t *testing.T) {
	c := NewCart(uuid.New())
	p1, p2 := uuid.New(), uuid.New()
	require.NoError(t, c.AddItem(p1, 2))
	require.NoError(t, c.AddItem(p2, 1))

	assert.Equal(t, int64(3), c.TotalQuantity())

	prices := map[uuid.UUID]decimal.Decimal{
		p1: decimal.NewFromInt(45000),
		p2: decimal.NewFromInt(88000),
	}
	subtotal, err := c.Subtotal(func(id uuid.UUID) (decimal.Decimal, bool) {
		p, ok := prices[id]
		return p, ok
	})
	require.NoError(t, err)
	assert.True(t, subtotal.Equal(decimal.NewFromInt(178000)))

	_, err = c.Subtotal(func(id uuid.UUID) (decimal.Decimal, bool) {
		return decimal.Zero, false
	})
	assert.Error(t, err, "missing product fails the computation")
}
