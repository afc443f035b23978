package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
	"github.com/pcforge/builder-backend/internal/config"
	"github.com/pcforge/builder-backend/internal/entity"
)

const componentsCollection = "Components"

// ComponentRepository is the catalog cache: component records keyed by lien.
// A miss is signalled with entity.ErrComponentNotFound, never invented.
type ComponentRepository interface {
	Get(ctx context.Context, lien string) (*entity.ComponentRecord, error)
	Put(ctx context.Context, record entity.ComponentRecord) error
}

var _ ComponentRepository = &ComponentDocStore{}

// ComponentDocStore persists component records in the document store and
// fronts them with an in-process TTL cache. The persistent layer is
// authoritative; the memory layer only saves round trips within one process.
type ComponentDocStore struct {
	store *DocumentStore
	mem   *gocache.Cache
}

func NewComponentDocStore(store *DocumentStore, cfg config.CacheConfig) *ComponentDocStore {
	return &ComponentDocStore{
		store: store,
		mem:   gocache.New(cfg.TTL, cfg.CleanupInterval),
	}
}

func (r *ComponentDocStore) Get(ctx context.Context, lien string) (*entity.ComponentRecord, error) {
	if cached, ok := r.mem.Get(lien); ok {
		record := cached.(entity.ComponentRecord)
		return &record, nil
	}

	doc, err := r.store.Get(ctx, componentsCollection, lien)
	if err != nil {
		if errors.Is(err, ErrDocumentNotFound) {
			return nil, entity.ErrComponentNotFound
		}
		return nil, fmt.Errorf("get component: %w", err)
	}

	var record entity.ComponentRecord
	if err := json.Unmarshal(doc, &record); err != nil {
		return nil, fmt.Errorf("decode component %s: %w", lien, err)
	}

	r.mem.SetDefault(lien, record)
	return &record, nil
}

func (r *ComponentDocStore) Put(ctx context.Context, record entity.ComponentRecord) error {
	if record.Lien == "" {
		return fmt.Errorf("put component: %w: lien", entity.ErrMissingField)
	}

	if err := r.store.Set(ctx, componentsCollection, record.Lien, record); err != nil {
		return fmt.Errorf("put component: %w", err)
	}

	r.mem.SetDefault(record.Lien, record)
	return nil
}
