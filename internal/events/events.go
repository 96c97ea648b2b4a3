// Package events publishes domain notifications to the websocket hub and,
// when configured, to redis pub/sub channels.
package events

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"go-creamery-pos/internal/ws"

	"github.com/redis/go-redis/v9"
)

// Event types
const (
	TypeStock = "stock_update"
	TypeOrder = "order_update"
	TypeSale  = "sale_update"
)

const ChannelPrefix = "creamery:events:"

type Event struct {
	Type    string      `json:"type"`
	Action  string      `json:"action"`
	Data    interface{} `json:"data,omitempty"`
	UserID  string      `json:"user_id,omitempty"`
	Message string      `json:"message,omitempty"`
	At      time.Time   `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Event)
}

// Bus delivers events to the hub and to redis channels
// creamery:events:<type> and creamery:events:all.
type Bus struct {
	hub *ws.Hub
	rdb *redis.Client
}

// NewBus accepts a nil hub or a nil client to skip that destination.
func NewBus(hub *ws.Hub, rdb *redis.Client) *Bus {
	return &Bus{hub: hub, rdb: rdb}
}

func (b *Bus) Publish(ctx context.Context, evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	msg, err := json.Marshal(evt)
	if err != nil {
		log.Printf("events: marshal %s/%s: %v", evt.Type, evt.Action, err)
		return
	}

	if b.hub != nil {
		go b.hub.Send(msg)
	}
	if b.rdb == nil {
		return
	}
	// Delivery must not depend on the request that triggered it.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	for _, channel := range []string{ChannelPrefix + evt.Type, ChannelPrefix + "all"} {
		if err := b.rdb.Publish(pubCtx, channel, msg).Err(); err != nil {
			log.Printf("events: publish %s: %v", channel, err)
		}
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
