package mail

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/raskraski/storefront/internal/infra/queue"
)

// BreakerSender stops dialing SMTP for a while after repeated failures, so a
// dead mail server does not stall the order consumer on every message.
type BreakerSender struct {
	next queue.OrderNotifier
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerSender(next queue.OrderNotifier, logger *slog.Logger) *BreakerSender {
	settings := gobreaker.Settings{
		Name:        "smtp",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &BreakerSender{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

func (s *BreakerSender) SendOrderConfirmation(ctx context.Context, payload queue.OrderPlacedPayload) error {
	_, err := s.cb.Execute(func() (struct{}, error) {
		return struct{}{}, s.next.SendOrderConfirmation(ctx, payload)
	})
	return err
}

func (s *BreakerSender) State() gobreaker.State {
	return s.cb.State()
}
