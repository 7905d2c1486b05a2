package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/slug"
)

// DefaultSlugMaxAttempts bounds the existence checks made for one slug.
const DefaultSlugMaxAttempts = 50

type ResolveSlugInput struct {
	Slug       string
	Collection entity.Collection
	ExcludeID  string
}

// ResolveSlugUseCase finds a free slug in a collection by appending -1, -2, ...
// to the candidate. It makes one round trip per attempt and holds no lock, so
// two writers racing on the same title can both get the same answer; the
// unique index on the table catches that at insert time.
type ResolveSlugUseCase struct {
	Checker     SlugExistenceChecker
	MaxAttempts int
	Logger      *slog.Logger
}

func NewResolveSlugUseCase(checker SlugExistenceChecker, maxAttempts int, logger *slog.Logger) *ResolveSlugUseCase {
	if maxAttempts <= 0 {
		maxAttempts = DefaultSlugMaxAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResolveSlugUseCase{
		Checker:     checker,
		MaxAttempts: maxAttempts,
		Logger:      logger,
	}
}

func (uc *ResolveSlugUseCase) Execute(ctx context.Context, input ResolveSlugInput) (string, error) {
	if !input.Collection.Valid() {
		return "", &DomainError{
			Code:    CodeValidation,
			Message: fmt.Sprintf("unknown collection %q", input.Collection),
			Err:     ErrUnknownCollection,
		}
	}
	if input.Slug == "" {
		return "", validationError(ErrEmptySlug)
	}
	if !slug.Valid(input.Slug) || len(input.Slug) > slug.DefaultMaxLength {
		return "", validationError(ErrMalformedSlug)
	}

	candidate := input.Slug
	for counter := 1; counter <= uc.MaxAttempts; counter++ {
		if err := ctx.Err(); err != nil {
			return "", uniquenessCheckFailed(err)
		}

		exists, err := uc.Checker.ExistsWithSlug(ctx, input.Collection, candidate, input.ExcludeID)
		if err != nil {
			uc.Logger.ErrorContext(ctx, "slug existence check failed",
				slog.String("collection", input.Collection.String()),
				slog.String("slug", candidate),
				slog.Any("error", err),
			)
			return "", uniquenessCheckFailed(err)
		}
		if !exists {
			return candidate, nil
		}

		candidate = withSuffix(input.Slug, counter)
	}

	uc.Logger.WarnContext(ctx, "slug attempts exhausted",
		slog.String("collection", input.Collection.String()),
		slog.String("slug", input.Slug),
		slog.Int("attempts", uc.MaxAttempts),
	)
	return "", &DomainError{
		Code:    CodeSlugRetriesExhausted,
		Message: fmt.Sprintf("no free slug for %q after %d attempts", input.Slug, uc.MaxAttempts),
		Err:     ErrSlugRetriesExhausted,
	}
}

// Allocate normalizes explicit, or title when explicit is empty, and resolves
// the result within collection.
func (uc *ResolveSlugUseCase) Allocate(ctx context.Context, collection entity.Collection, explicit, title, excludeID string) (string, error) {
	source := explicit
	if source == "" {
		source = title
	}

	normalized := slug.Make(source, slug.DefaultMaxLength)
	if normalized == "" {
		return "", validationError(ErrEmptySlug)
	}

	return uc.Execute(ctx, ResolveSlugInput{
		Slug:       normalized,
		Collection: collection,
		ExcludeID:  excludeID,
	})
}

// withSuffix appends -n to base, shortening base first so the result stays
// within slug.DefaultMaxLength.
func withSuffix(base string, n int) string {
	suffix := fmt.Sprintf("-%d", n)
	if keep := slug.DefaultMaxLength - len(suffix); len(base) > keep {
		base = strings.TrimRight(base[:keep], "-")
	}
	return base + suffix
}

func uniquenessCheckFailed(cause error) *TechnicalError {
	return &TechnicalError{
		Code:    CodeUniquenessCheckFailed,
		Message: ErrUniquenessCheckFailed.Error(),
		Err:     fmt.Errorf("%w: %w", ErrUniquenessCheckFailed, cause),
	}
}
