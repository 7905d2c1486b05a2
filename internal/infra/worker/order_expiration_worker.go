package worker

import (
	"context"
	"log/slog"
	"time"
)

// OrderExpirer moves stale PENDING orders to EXPIRED and returns their ids.
type OrderExpirer interface {
	ExpirePending(ctx context.Context, olderThan time.Time) ([]string, error)
}

type OrderExpirationWorker struct {
	orders           OrderExpirer
	logger           *slog.Logger
	expirationWindow time.Duration
	tickInterval     time.Duration
	now              func() time.Time
}

func NewOrderExpirationWorker(orders OrderExpirer, logger *slog.Logger) *OrderExpirationWorker {
	return &OrderExpirationWorker{
		orders:           orders,
		logger:           logger,
		expirationWindow: 48 * time.Hour,
		tickInterval:     time.Minute,
		now:              time.Now,
	}
}

// Start blocks until ctx is cancelled, running one sweep immediately and then
// one per tick.
func (w *OrderExpirationWorker) Start(ctx context.Context) {
	w.logger.Info("order expiration worker started",
		slog.Duration("window", w.expirationWindow),
		slog.Duration("interval", w.tickInterval),
	)

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("order expiration worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OrderExpirationWorker) sweep(ctx context.Context) int {
	cutoff := w.now().Add(-w.expirationWindow)

	ids, err := w.orders.ExpirePending(ctx, cutoff)
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to expire pending orders", slog.Any("error", err))
		return 0
	}

	for _, id := range ids {
		w.logger.InfoContext(ctx, "order expired", slog.String("order_id", id))
	}
	if len(ids) > 0 {
		w.logger.InfoContext(ctx, "pending orders expired", slog.Int("count", len(ids)))
	}
	return len(ids)
}
