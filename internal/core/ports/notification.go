package ports

import "context"

// OrderNotification is a WhatsApp message queued when an order is created.
type OrderNotification struct {
	PedidoID    uint
	ClientID    *uint
	ClienteNome string
	ProductName string
	Quantidade  int
}

// Notifier enqueues order notifications for asynchronous delivery.
type Notifier interface {
	Enqueue(n OrderNotification)
}

// NotificationProcessor delivers a single order notification.
type NotificationProcessor interface {
	Process(ctx context.Context, n OrderNotification) error
}

// NotificationDedup marks orders as notified so a replayed or retried
// enqueue never produces a second message.
type NotificationDedup interface {
	IsNotified(ctx context.Context, pedidoID uint) (bool, error)
	MarkNotified(ctx context.Context, pedidoID uint) error
}
