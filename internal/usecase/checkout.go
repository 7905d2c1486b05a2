package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/raskraski/storefront/internal/cart"
	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/infra/queue"
)

type CheckoutUseCase struct {
	Orders OrderRepositoryInterface
	Queue  QueueProducerInterface
	Logger *slog.Logger
}

func NewCheckoutUseCase(orders OrderRepositoryInterface, producer QueueProducerInterface, logger *slog.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{
		Orders: orders,
		Queue:  producer,
		Logger: logger,
	}
}

// Execute turns the session cart into a PENDING order and announces it on the
// queue. The cart is cleared only after both steps succeed.
func (uc *CheckoutUseCase) Execute(ctx context.Context, input CheckoutInput, c *cart.Cart) (*CheckoutOutput, error) {
	if errs := ValidateCheckoutInput(input); len(errs) > 0 {
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: joinValidationErrors(errs),
		}
	}

	if c.IsEmpty() {
		return nil, &DomainError{
			Code:    CodeEmptyCart,
			Message: ErrEmptyCart.Error(),
			Err:     ErrEmptyCart,
		}
	}

	lines := c.Items()
	items := make([]entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, entity.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			UnitPrice: line.Product.UnitPrice(),
			Quantity:  line.Quantity,
		})
	}

	order := entity.NewOrder(
		input.SessionID,
		strings.TrimSpace(input.Name),
		strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Phone),
		items,
	)

	txn := NewTransaction(uc.Logger)

	txn.AddOperation("create_order", func(ctx context.Context) error {
		return uc.Orders.Create(ctx, order)
	})
	txn.AddCompensation("delete_order", func(ctx context.Context) error {
		return uc.Orders.Delete(ctx, order.ID)
	})

	txn.AddOperation("publish_order_placed", func(ctx context.Context) error {
		return uc.Queue.PublishOrderPlaced(ctx, queue.NewOrderPlacedPayload(order))
	})

	if err := txn.Execute(ctx); err != nil {
		uc.Logger.ErrorContext(ctx, "checkout failed",
			slog.String("order_id", order.ID),
			slog.Any("error", err),
		)
		return nil, &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to place order",
			Err:     err,
		}
	}

	c.Clear(ctx)

	uc.Logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.String("total", order.Total.StringFixed(2)),
		slog.Int("lines", len(order.Items)),
	)

	totalItems := 0
	for _, it := range order.Items {
		totalItems += it.Quantity
	}

	return &CheckoutOutput{
		OrderID:    order.ID,
		Status:     order.Status,
		Total:      order.Total,
		TotalItems: totalItems,
		Items:      order.Items,
	}, nil
}
