package build

import (
	"context"
	"errors"
	"testing"

	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubCatalogAPI serves canned per-category lists and records the categories
// requested.
type stubCatalogAPI struct {
	lists   map[entity.Category][]entity.ComponentRecord
	err     error
	fetched []entity.Category
}

func (s *stubCatalogAPI) FetchCategory(ctx context.Context, category entity.Category) ([]entity.ComponentRecord, error) {
	s.fetched = append(s.fetched, category)
	if s.err != nil {
		return nil, s.err
	}
	return s.lists[category], nil
}

// memComponents is an in-memory ComponentRepository.
type memComponents struct {
	records map[string]entity.ComponentRecord
}

func newMemComponents() *memComponents {
	return &memComponents{records: make(map[string]entity.ComponentRecord)}
}

func (m *memComponents) Get(ctx context.Context, lien string) (*entity.ComponentRecord, error) {
	rec, ok := m.records[lien]
	if !ok {
		return nil, entity.ErrComponentNotFound
	}
	return &rec, nil
}

func (m *memComponents) Put(ctx context.Context, record entity.ComponentRecord) error {
	m.records[record.Lien] = record
	return nil
}

func TestFetchCategoryWritesThroughToCache(t *testing.T) {
	api := &stubCatalogAPI{lists: map[entity.Category][]entity.ComponentRecord{
		entity.CategoryGPU: {record("rtx-4060", 520), record("rtx-4070", 840)},
	}}
	cache := newMemComponents()
	fetcher := NewFetcher(api, cache, nil, zap.NewNop())

	got := fetcher.FetchCategory(context.Background(), entity.CategoryGPU)

	require.Len(t, got, 2)
	assert.Len(t, cache.records, 2)
	assert.Equal(t, 520.0, cache.records["rtx-4060"].Price)
}

func TestFetchCategoryUpstreamFailureYieldsEmptyList(t *testing.T) {
	api := &stubCatalogAPI{err: errors.New("catalog down")}
	fetcher := NewFetcher(api, newMemComponents(), nil, zap.NewNop())

	got := fetcher.FetchCategory(context.Background(), entity.CategoryGPU)

	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFetchStorageResolvesAllowListSkippingMisses(t *testing.T) {
	cache := newMemComponents()
	cache.Put(context.Background(), entity.ComponentRecord{Lien: "samsung-980-nvme-m2-1tb", Price: 89, CategoryTag: "DISQUE-NVME"})
	cache.Put(context.Background(), entity.ComponentRecord{Lien: "kingston-nv2-nvme-m2-500gb", Price: 42, CategoryTag: "DISQUE-NVME"})

	api := &stubCatalogAPI{}
	fetcher := NewFetcher(api, cache, []string{
		"samsung-980-nvme-m2-1tb",
		"unknown-drive",
		"kingston-nv2-nvme-m2-500gb",
	}, zap.NewNop())

	got := fetcher.FetchCategory(context.Background(), entity.CategoryStorage)

	require.Len(t, got, 2)
	assert.Equal(t, "samsung-980-nvme-m2-1tb", got[0].Lien)
	assert.Equal(t, "kingston-nv2-nvme-m2-500gb", got[1].Lien)
	assert.Empty(t, api.fetched, "storage never hits the external catalog")
}
