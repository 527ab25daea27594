package shipping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCost(t *testing.T) {
	cases := []struct {
		name      string
		code      string
		itemCount int64
		want      int64
	}{
		{"JNE single item is base rate", "JNE", 1, 12000},
		{"JNE three items", "JNE", 3, 18000},
		{"TIKI single item", "TIKI", 1, 15000},
		{"TIKI five items", "TIKI", 5, 25000},
		{"SICEPAT two items", "SICEPAT", 2, 13000},
		{"POS four items", "POS", 4, 20500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Cost(tc.code, tc.itemCount)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.NewFromInt(tc.want)),
				"got %s, want %d", got, tc.want)
		})
	}

	t.Run("unknown courier", func(t *testing.T) {
		_, err := Cost("GOSEND", 1)
		assert.ErrorIs(t, err, ErrUnknownCourier)
	})

	t.Run("zero items", func(t *testing.T) {
		_, err := Cost("JNE", 0)
		assert.Error(t, err)
	})
}

func TestLookup(t *testing.T) {
	c, err := Lookup("SICEPAT")
	require.NoError(t, err)
	assert.Equal(t, "SiCepat Halu", c.Name)

	_, err = Lookup("")
	assert.ErrorIs(t, err, ErrUnknownCourier)
}

func TestCouriersListing(t *testing.T) {
	list := Couriers()
	require.Len(t, list, 4)
	assert.Equal(t, "JNE", list[0].Code)
	assert.Equal(t, "POS", list[3].Code)
	assert.True(t, IsSupported("TIKI"))
	assert.False(t, IsSupported("tiki"), "codes are case sensitive")
}
