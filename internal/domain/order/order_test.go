package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshots() []ItemSnapshot {
	return []ItemSnapshot{
		{ProductID: uuid.New(), ProductName: "Aceh Gayo 250g", UnitPrice: decimal.NewFromInt(95000), Quantity: 2},
		{ProductID: uuid.New(), ProductName: "House Blend 250g", UnitPrice: decimal.NewFromInt(65000), Quantity: 1},
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("totals computed from lines", func(t *testing.T) {
		o, err := NewOrder(uuid.New(), 1, uuid.New(), "JNE", decimal.NewFromInt(15000), snapshots())
		require.NoError(t, err)
		assert.Equal(t, StatusProcessed, o.Status)
		assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(255000)))
		assert.True(t, o.Total.Equal(decimal.NewFromInt(270000)))
		require.Len(t, o.Items, 2)
		assert.True(t, o.Items[0].LineTotal.Equal(decimal.NewFromInt(190000)))
	})

	t.Run("empty items rejected", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), 1, uuid.New(), "JNE", decimal.Zero, nil)
		assert.Error(t, err)
	})

	t.Run("non-positive order number rejected", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), 0, uuid.New(), "JNE", decimal.Zero, snapshots())
		assert.Error(t, err)
	})

	t.Run("non-positive quantity rejected", func(t *testing.T) {
		bad := []ItemSnapshot{{ProductID: uuid.New(), ProductName: "X", UnitPrice: decimal.NewFromInt(100), Quantity: 0}}
		_, err := NewOrder(uuid.New(), 1, uuid.New(), "JNE", decimal.Zero, bad)
		assert.Error(t, err)
	})
}

func TestOrderStateMachine(t *testing.T) {
	newOrder := func(t *testing.T) *Order {
		o, err := NewOrder(uuid.New(), 1, uuid.New(), "TIKI", decimal.NewFromInt(15000), snapshots())
		require.NoError(t, err)
		return o
	}

	t.Run("happy path processed to completed", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Ship())
		assert.Equal(t, StatusShipped, o.Status)
		require.NoError(t, o.Complete())
		assert.Equal(t, StatusCompleted, o.Status)
	})

	t.Run("cancel from processed", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel())
		assert.Equal(t, StatusCanceled, o.Status)
	})

	t.Run("cancel from shipped", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Ship())
		require.NoError(t, o.Cancel())
		assert.Equal(t, StatusCanceled, o.Status)
	})

	t.Run("cannot complete before shipping", func(t *testing.T) {
		o := newOrder(t)
		assert.Error(t, o.Complete())
	})

	t.Run("terminal states are closed", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.Cancel())
		assert.Error(t, o.Ship())
		assert.Error(t, o.Complete())
		assert.Error(t, o.Cancel())

		done := newOrder(t)
		require.NoError(t, done.Ship())
		require.NoError(t, done.Complete())
		assert.Error(t, done.Cancel())
		assert.True(t, done.Status.IsTerminal())
	})
}

func TestPaymentLifecycle(t *testing.T) {
	newPayment := func(t *testing.T) *Payment {
		p, err := NewPayment(uuid.New(), PaymentMethodBankTransfer, decimal.NewFromInt(270000))
		require.NoError(t, err)
		return p
	}

	t.Run("starts pending", func(t *testing.T) {
		p := newPayment(t)
		assert.Equal(t, PaymentStatusPending, p.Status)
	})

	t.Run("invalid method rejected", func(t *testing.T) {
		_, err := NewPayment(uuid.New(), "BARTER", decimal.NewFromInt(100))
		assert.Error(t, err)
	})

	t.Run("confirm", func(t *testing.T) {
		p := newPayment(t)
		require.NoError(t, p.Confirm("TRX-20260829-001"))
		assert.Equal(t, PaymentStatusSuccess, p.Status)
		assert.Equal(t, "TRX-20260829-001", p.Reference)
		assert.Error(t, p.Confirm("again"), "already confirmed")
	})

	t.Run("reject then reset", func(t *testing.T) {
		p := newPayment(t)
		require.NoError(t, p.Reject())
		assert.Equal(t, PaymentStatusFailed, p.Status)

		require.NoError(t, p.Reset())
		assert.Equal(t, PaymentStatusPending, p.Status)
		assert.Empty(t, p.Reference)
	})

	t.Run("reset only from failed", func(t *testing.T) {
		p := newPayment(t)
		assert.Error(t, p.Reset())

		require.NoError(t, p.Confirm("ref"))
		assert.Error(t, p.Reset())
	})
}
