package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// NotificationDedup provides idempotency checks for order notifications,
// backed by Redis. Key format: notified:pedido:<id>
type NotificationDedup struct {
	client *redis.Client
}

// NewNotificationDedup creates a NotificationDedup wrapping the given client.
func NewNotificationDedup(client *redis.Client) *NotificationDedup {
	return &NotificationDedup{client: client}
}

// IsNotified reports whether a notification for this pedido already went out.
func (d *NotificationDedup) IsNotified(ctx context.Context, pedidoID uint) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(pedidoID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// MarkNotified records that this pedido has been notified (expires after dedupTTL).
func (d *NotificationDedup) MarkNotified(ctx context.Context, pedidoID uint) error {
	return d.client.Set(ctx, d.key(pedidoID), "1", dedupTTL).Err()
}

func (d *NotificationDedup) key(pedidoID uint) string {
	return fmt.Sprintf("notified:pedido:%d", pedidoID)
}
