package cache

import (
	"context"
	"testing"
	"time"

	"go-creamery-pos/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, time.Minute, 10*time.Second), mr
}

func TestMenuRoundTripAndInvalidate(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, ok := c.GetMenu(ctx)
	assert.False(t, ok)

	items := []model.MenuItem{{
		ID:           uuid.New(),
		ProductName:  "Vanilla",
		SellingPrice: decimal.RequireFromString("5.00"),
		Unit:         "scoop",
		CurrentStock: decimal.NewFromInt(15),
	}}
	c.SetMenu(ctx, items)

	got, ok := c.GetMenu(ctx)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Vanilla", got[0].ProductName)
	assert.True(t, items[0].SellingPrice.Equal(got[0].SellingPrice))

	c.InvalidateMenu(ctx)
	_, ok = c.GetMenu(ctx)
	assert.False(t, ok)

	c.SetMenu(ctx, items)
	mr.FastForward(2 * time.Minute)
	_, ok = c.GetMenu(ctx)
	assert.False(t, ok, "menu must expire")
}

func TestOrderStatusExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	id := uuid.New()

	c.SetOrderStatus(ctx, id, model.OrderConfirmed)
	status, ok := c.GetOrderStatus(ctx, id)
	require.True(t, ok)
	assert.Equal(t, model.OrderConfirmed, status)

	mr.FastForward(11 * time.Second)
	_, ok = c.GetOrderStatus(ctx, id)
	assert.False(t, ok)

	c.SetOrderStatus(ctx, id, model.OrderPending)
	c.InvalidateOrderStatus(ctx, id)
	_, ok = c.GetOrderStatus(ctx, id)
	assert.False(t, ok)
}

func TestNilClientAlwaysMisses(t *testing.T) {
	c := New(nil, time.Minute, time.Second)
	ctx := context.Background()
	c.SetMenu(ctx, nil)
	_, ok := c.GetMenu(ctx)
	assert.False(t, ok)
	_, ok = c.GetOrderStatus(ctx, uuid.New())
	assert.False(t, ok)
}
