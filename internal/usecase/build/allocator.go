package build

import (
	"github.com/pcforge/builder-backend/internal/entity"
)

const (
	// minComponentPrice filters out accessories and placeholder listings.
	minComponentPrice = 10.0
	// maxCandidates caps the list handed to the selection prompt.
	maxCandidates = 5
)

// Allocator derives per-category price windows from the total budget and
// filters candidate lists down to what the prompt should see.
type Allocator struct {
	fractions map[entity.Category]entity.BudgetFraction
}

func NewAllocator(fractions map[entity.Category]entity.BudgetFraction) *Allocator {
	return &Allocator{fractions: fractions}
}

// PriceRange returns the admissible window for a category at the given budget.
func (a *Allocator) PriceRange(category entity.Category, totalBudget float64) entity.PriceRange {
	fraction := a.fractions[category]
	return entity.PriceRange{
		Min: totalBudget * fraction.Min,
		Max: totalBudget * fraction.Max,
	}
}

// Allocate computes the price range for the category and filters candidates
// against it. Storage-tagged candidates are curated upstream and bypass the
// price filter. Catalog order is preserved and the result is capped to the
// first qualifying candidates.
func (a *Allocator) Allocate(
	category entity.Category,
	totalBudget float64,
	candidates []entity.ComponentRecord,
) (entity.PriceRange, []entity.ComponentRecord) {
	priceRange := a.PriceRange(category, totalBudget)

	filtered := make([]entity.ComponentRecord, 0, maxCandidates)
	for _, candidate := range candidates {
		if !a.qualifies(candidate, priceRange) {
			continue
		}
		filtered = append(filtered, candidate)
		if len(filtered) == maxCandidates {
			break
		}
	}

	return priceRange, filtered
}

func (a *Allocator) qualifies(candidate entity.ComponentRecord, priceRange entity.PriceRange) bool {
	if entity.IsStorageTag(candidate.CategoryTag) {
		return true
	}
	return candidate.Price >= minComponentPrice &&
		candidate.Price >= priceRange.Min &&
		candidate.Price <= priceRange.Max
}
