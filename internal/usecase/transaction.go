package usecase

import (
	"context"
	"fmt"
	"log/slog"
)

// Transaction runs a list of operations in order. When one fails, the
// compensations registered for the operations that already succeeded run in
// reverse order. Compensation i undoes operation i; operations that need no
// undo are registered after the ones that do.
type Transaction struct {
	operations    []Operation
	compensations []Compensation
	logger        *slog.Logger
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction(logger *slog.Logger) *Transaction {
	if logger == nil {
		logger = slog.Default()
	}
	return &Transaction{logger: logger}
}

func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, fn})
}

func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	t.compensations = append(t.compensations, Compensation{name, fn})
}

func (t *Transaction) Execute(ctx context.Context) error {
	for i, op := range t.operations {
		if err := op.Fn(ctx); err != nil {
			t.rollback(ctx, i)
			return fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, i)
		}
	}
	return nil
}

func (t *Transaction) rollback(ctx context.Context, failedAtIndex int) {
	// The request context may already be cancelled; compensations still need to run.
	ctx = context.WithoutCancel(ctx)

	for i := failedAtIndex - 1; i >= 0; i-- {
		if i >= len(t.compensations) {
			continue
		}
		comp := t.compensations[i]
		if err := comp.Fn(ctx); err != nil {
			t.logger.ErrorContext(ctx, "compensation failed, data may be inconsistent",
				slog.String("compensation", comp.Name),
				slog.Any("error", err),
			)
		}
	}
}
