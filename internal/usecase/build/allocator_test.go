package build

import (
	"testing"

	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFractions = map[entity.Category]entity.BudgetFraction{
	entity.CategoryCPU:         {Min: 0.1517, Max: 0.3209},
	entity.CategoryMotherboard: {Min: 0.08, Max: 0.15},
	entity.CategoryGPU:         {Min: 0.15, Max: 0.32},
	entity.CategoryRAM:         {Min: 0.05, Max: 0.15},
	entity.CategoryStorage:     {Min: 0.03, Max: 0.25},
	entity.CategoryPSU:         {Min: 0.03, Max: 0.15},
	entity.CategoryCase:        {Min: 0.03, Max: 0.10},
	entity.CategoryCooling:     {Min: 0.05, Max: 0.12},
}

func record(lien string, price float64) entity.ComponentRecord {
	return entity.ComponentRecord{Lien: lien, Title: lien, Price: price, CategoryTag: "GEN"}
}

func TestPriceRangeScalesWithBudget(t *testing.T) {
	allocator := NewAllocator(testFractions)

	r := allocator.PriceRange(entity.CategoryCPU, 3000)
	assert.InDelta(t, 455.1, r.Min, 0.001)
	assert.InDelta(t, 962.7, r.Max, 0.001)

	double := allocator.PriceRange(entity.CategoryCPU, 6000)
	assert.InDelta(t, r.Min*2, double.Min, 0.001)
	assert.InDelta(t, r.Max*2, double.Max, 0.001)

	assert.LessOrEqual(t, r.Min, r.Max)
}

func TestAllocateFiltersByRange(t *testing.T) {
	allocator := NewAllocator(testFractions)

	candidates := []entity.ComponentRecord{
		record("too-cheap", 100),
		record("in-range-low", 460),
		record("in-range-high", 950),
		record("too-expensive", 1500),
	}

	_, filtered := allocator.Allocate(entity.CategoryCPU, 3000, candidates)

	require.Len(t, filtered, 2)
	assert.Equal(t, "in-range-low", filtered[0].Lien)
	assert.Equal(t, "in-range-high", filtered[1].Lien)
}

func TestAllocateDropsPlaceholderListings(t *testing.T) {
	allocator := NewAllocator(testFractions)

	// Case at budget 100 has range [3, 10]; prices below 10 are placeholders.
	candidates := []entity.ComponentRecord{
		record("placeholder", 5),
		record("real", 10),
	}

	_, filtered := allocator.Allocate(entity.CategoryCase, 100, candidates)

	require.Len(t, filtered, 1)
	assert.Equal(t, "real", filtered[0].Lien)
}

func TestAllocateCapsAtFiveKeepingCatalogOrder(t *testing.T) {
	allocator := NewAllocator(testFractions)

	candidates := make([]entity.ComponentRecord, 0, 8)
	for _, lien := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		candidates = append(candidates, record(lien, 500))
	}

	_, filtered := allocator.Allocate(entity.CategoryCPU, 3000, candidates)

	require.Len(t, filtered, 5)
	for i, lien := range []string{"a", "b", "c", "d", "e"} {
		assert.Equal(t, lien, filtered[i].Lien)
	}
}

func TestAllocateStorageTagsBypassPriceFilter(t *testing.T) {
	allocator := NewAllocator(testFractions)

	candidates := []entity.ComponentRecord{
		{Lien: "cheap-nvme", Price: 4, CategoryTag: "DISQUE-NVME"},
		{Lien: "pricey-ssd", Price: 9999, CategoryTag: "DISQUE-SSD"},
		record("out-of-range", 9999),
	}

	_, filtered := allocator.Allocate(entity.CategoryStorage, 3000, candidates)

	require.Len(t, filtered, 2)
	assert.Equal(t, "cheap-nvme", filtered[0].Lien)
	assert.Equal(t, "pricey-ssd", filtered[1].Lien)
}

func TestAllocateEmptyResult(t *testing.T) {
	allocator := NewAllocator(testFractions)

	_, filtered := allocator.Allocate(entity.CategoryGPU, 3000, []entity.ComponentRecord{
		record("way-off", 5),
	})

	assert.Empty(t, filtered)
}
