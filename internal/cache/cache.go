// Package cache keeps short-lived read models in redis: the public menu and
// table order statuses polled by customers.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"go-creamery-pos/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	menuKey        = "creamery:menu"
	orderKeyPrefix = "creamery:order-status:"
)

// Cache is safe to use with a nil client; every call then misses.
type Cache struct {
	rdb      *redis.Client
	menuTTL  time.Duration
	orderTTL time.Duration
}

func New(rdb *redis.Client, menuTTL, orderTTL time.Duration) *Cache {
	return &Cache{rdb: rdb, menuTTL: menuTTL, orderTTL: orderTTL}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *Cache) GetMenu(ctx context.Context) ([]model.MenuItem, bool) {
	if !c.enabled() {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, menuKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache: get menu: %v", err)
		}
		return nil, false
	}
	var items []model.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *Cache) SetMenu(ctx context.Context, items []model.MenuItem) {
	if !c.enabled() {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, menuKey, raw, c.menuTTL).Err(); err != nil {
		log.Printf("cache: set menu: %v", err)
	}
}

func (c *Cache) InvalidateMenu(ctx context.Context) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Del(ctx, menuKey).Err(); err != nil {
		log.Printf("cache: invalidate menu: %v", err)
	}
}

func (c *Cache) GetOrderStatus(ctx context.Context, orderID uuid.UUID) (model.OrderStatus, bool) {
	if !c.enabled() {
		return "", false
	}
	status, err := c.rdb.Get(ctx, orderKeyPrefix+orderID.String()).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache: get order status: %v", err)
		}
		return "", false
	}
	return model.OrderStatus(status), true
}

func (c *Cache) SetOrderStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Set(ctx, orderKeyPrefix+orderID.String(), string(status), c.orderTTL).Err(); err != nil {
		log.Printf("cache: set order status: %v", err)
	}
}

func (c *Cache) InvalidateOrderStatus(ctx context.Context, orderID uuid.UUID) {
	if !c.enabled() {
		return
	}
	if err := c.rdb.Del(ctx, orderKeyPrefix+orderID.String()).Err(); err != nil {
		log.Printf("cache: invalidate order status: %v", err)
	}
}
