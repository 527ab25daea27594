package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/kopitoko/backend/internal/application/catalog"
)

func sampleResponse() appcatalog.ProductResponse {
	return appcatalog.ProductResponse{
		ID:     uuid.New(),
		Code:   "KOPI-GAYO-250",
		Name:   "Aceh Gayo 250g",
		Price:  decimal.NewFromInt(95000),
		Stock:  40,
		Status: "ACTIVE",
	}
}

func TestMemoryProductCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set then get", func(t *testing.T) {
		c := NewMemoryProductCache(time.Minute)
		resp := sampleResponse()
		c.SetProduct(ctx, resp)

		got, ok := c.GetProduct(ctx, resp.ID)
		require.True(t, ok)
		assert.Equal(t, resp.Code, got.Code)
	})

	t.Run("miss for unknown id", func(t *testing.T) {
		c := NewMemoryProductCache(time.Minute)
		_, ok := c.GetProduct(ctx, uuid.New())
		assert.False(t, ok)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		c := NewMemoryProductCache(-time.Second)
		resp := sampleResponse()
		c.SetProduct(ctx, resp)

		_, ok := c.GetProduct(ctx, resp.ID)
		assert.False(t, ok)
	})

	t.Run("invalidate removes entry", func(t *testing.T) {
		c := NewMemoryProductCache(time.Minute)
		resp := sampleResponse()
		c.SetProduct(ctx, resp)
		c.Invalidate(ctx, resp.ID)

		_, ok := c.GetProduct(ctx, resp.ID)
		assert.False(t, ok)
	})
}
