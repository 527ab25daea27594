package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromInt(45000), IDR)
		require.NoError(t, err)
		assert.Equal(t, IDR, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(45000)))
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(100), "")
		assert.Error(t, err)
	})
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyIDRFromInt(12000)
	b := NewMoneyIDRFromInt(3000)

	t.Run("add", func(t *testing.T) {
		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Equals(NewMoneyIDRFromInt(15000)))
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, diff.Equals(NewMoneyIDRFromInt(9000)))
	})

	t.Run("multiply by int", func(t *testing.T) {
		assert.True(t, b.MultiplyByInt(2).Equals(NewMoneyIDRFromInt(6000)))
	})

	t.Run("currency mismatch", func(t *testing.T) {
		usd, _ := NewMoney(decimal.NewFromInt(10), USD)
		_, err := a.Add(usd)
		assert.Error(t, err)
	})
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyIDRFromInt(5000)
	big := NewMoneyIDRFromInt(25000)

	lt, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, lt)

	gte, err := big.GreaterThanOrEqual(small)
	require.NoError(t, err)
	assert.True(t, gte)

	assert.True(t, ZeroIDR().IsZero())
	assert.False(t, big.IsNegative())
	assert.True(t, big.IsPositive())
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyIDRFromInt(18000)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"18000","currency":"IDR"}`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyString(t *testing.T) {
	m := NewMoneyIDRFromInt(12000)
	assert.Equal(t, "12000 IDR", m.String())
}
