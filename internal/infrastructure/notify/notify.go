// Package notify delivers order notifications over WhatsApp. The actual
// provider integration sits behind the Sender interface; LogSender is the
// stand-in used until a provider account is wired up.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jbinformatica/pedidos-api/internal/metrics"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

// Sender delivers a rendered message for an order.
type Sender interface {
	Send(ctx context.Context, n ports.OrderNotification) error
}

// LogSender writes the message to the log instead of a provider.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, n ports.OrderNotification) error {
	s.log.Info().
		Uint("pedido_id", n.PedidoID).
		Str("cliente", n.ClienteNome).
		Str("produto", n.ProductName).
		Int("quantidade", n.Quantidade).
		Msg("whatsapp notification")
	return nil
}

// Service implements ports.NotificationProcessor with at-most-once delivery
// per pedido, enforced through the dedup store.
type Service struct {
	sender Sender
	dedup  ports.NotificationDedup
	log    zerolog.Logger
}

func NewService(sender Sender, dedup ports.NotificationDedup, log zerolog.Logger) *Service {
	return &Service{sender: sender, dedup: dedup, log: log}
}

func (s *Service) Process(ctx context.Context, n ports.OrderNotification) error {
	notified, err := s.dedup.IsNotified(ctx, n.PedidoID)
	if err != nil {
		metrics.NotificationsErrorsTotal.Inc()
		return fmt.Errorf("notify: %w", err)
	}
	if notified {
		metrics.NotificationsDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Uint("pedido_id", n.PedidoID).Msg("notification already sent")
		return nil
	}
	metrics.NotificationsDedupTotal.WithLabelValues("miss").Inc()

	if err := s.sender.Send(ctx, n); err != nil {
		metrics.NotificationsErrorsTotal.Inc()
		return fmt.Errorf("notify: send: %w", err)
	}
	if err := s.dedup.MarkNotified(ctx, n.PedidoID); err != nil {
		return fmt.Errorf("notify: mark: %w", err)
	}

	metrics.NotificationsSentTotal.Inc()
	return nil
}
