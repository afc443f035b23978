package build

import (
	"context"

	"github.com/pcforge/builder-backend/internal/entity"
)

// LLMClient is the opaque completion provider: prompt in, raw text out.
// Structured output is a convention of the prompt, never enforced here.
type LLMClient interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// CatalogAPI fetches the live component list for one category from the
// external parts catalog.
type CatalogAPI interface {
	FetchCategory(ctx context.Context, category entity.Category) ([]entity.ComponentRecord, error)
}
