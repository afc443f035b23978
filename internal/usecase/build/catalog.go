package build

import (
	"context"
	"errors"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/pcforge/builder-backend/internal/repository"
	"go.uber.org/zap"
)

// Fetcher produces candidate lists per category. Ordinary categories come
// from the external catalog API and every fetched record is written through
// to the component cache. The storage category is resolved from a curated
// allow-list against the cache instead, because the catalog's storage listings
// are unreliable.
//
// A failing upstream yields an empty candidate list, never an error: the
// assembler treats an empty list as an unresolvable category and moves on.
type Fetcher struct {
	api          CatalogAPI
	components   repository.ComponentRepository
	storageLiens []string
	logger       *zap.Logger
}

func NewFetcher(
	api CatalogAPI,
	components repository.ComponentRepository,
	storageLiens []string,
	logger *zap.Logger,
) *Fetcher {
	return &Fetcher{
		api:          api,
		components:   components,
		storageLiens: storageLiens,
		logger:       logger,
	}
}

// FetchCategory returns the candidate components for a category. The returned
// slice may be empty; it is never nil on success.
func (f *Fetcher) FetchCategory(ctx context.Context, category entity.Category) []entity.ComponentRecord {
	if category == entity.CategoryStorage {
		return f.fetchStorage(ctx)
	}

	records, err := f.api.FetchCategory(ctx, category)
	if err != nil {
		ctxzap.Warn(ctx, "catalog fetch failed, continuing with empty candidate list",
			zap.String("category", string(category)),
			zap.Error(err),
		)
		return []entity.ComponentRecord{}
	}

	for _, record := range records {
		if err := f.components.Put(ctx, record); err != nil {
			ctxzap.Warn(ctx, "component cache write failed",
				zap.String("lien", record.Lien),
				zap.Error(err),
			)
		}
	}

	return records
}

// fetchStorage resolves the curated storage liens from the component cache.
// Unknown liens are skipped.
func (f *Fetcher) fetchStorage(ctx context.Context) []entity.ComponentRecord {
	records := make([]entity.ComponentRecord, 0, len(f.storageLiens))
	for _, lien := range f.storageLiens {
		record, err := f.components.Get(ctx, lien)
		if err != nil {
			if !errors.Is(err, entity.ErrComponentNotFound) {
				ctxzap.Warn(ctx, "component cache read failed", zap.String("lien", lien), zap.Error(err))
			}
			continue
		}
		records = append(records, *record)
	}

	ctxzap.Info(ctx, "storage candidates resolved from cache",
		zap.Int("requested", len(f.storageLiens)),
		zap.Int("resolved", len(records)),
	)

	return records
}
