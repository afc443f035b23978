package entity

import "fmt"

// Category identifies a hardware component taxonomy bucket. Internal logic
// branches only on Category values; the upstream catalog labels stay behind
// CatalogLabel.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryMotherboard Category = "motherboard"
	CategoryGPU         Category = "gpu"
	CategoryRAM         Category = "ram"
	CategoryStorage     Category = "storage"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
	CategoryCooling     Category = "cooling"
)

// AllCategories lists every category in build order: the CPU+motherboard pair
// first, then GPU, then the remaining categories in the fixed selection order.
var AllCategories = []Category{
	CategoryCPU,
	CategoryMotherboard,
	CategoryGPU,
	CategoryRAM,
	CategoryStorage,
	CategoryPSU,
	CategoryCase,
	CategoryCooling,
}

// RemainingCategories is the fixed order of the last pipeline stage.
var RemainingCategories = []Category{
	CategoryRAM,
	CategoryStorage,
	CategoryPSU,
	CategoryCase,
	CategoryCooling,
}

// catalogLabels translates categories to the labels the external parts
// catalog uses. This table is the only place the raw labels live.
var catalogLabels = map[Category]string{
	CategoryCPU:         "PROCESSEUR",
	CategoryMotherboard: "CARTE MÈRE",
	CategoryGPU:         "CARTE GRAPHIQUE",
	CategoryRAM:         "BARETTE MÉMOIRE",
	CategoryStorage:     "STORAGE",
	CategoryPSU:         "ALIMENTATION",
	CategoryCase:        "BOITIER",
	CategoryCooling:     "REFROIDISSEMENT",
}

// CatalogLabel returns the external catalog label for the category.
func (c Category) CatalogLabel() string {
	return catalogLabels[c]
}

func (c Category) Validate() error {
	if _, ok := catalogLabels[c]; !ok {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, string(c))
	}
	return nil
}

// storageTags are the catalog tags of curated storage parts. Candidates
// carrying one of these tags are exempt from price filtering.
var storageTags = map[string]struct{}{
	"DISQUE-SSD":  {},
	"DISQUE-NVME": {},
	"STORAGE":     {},
}

// IsStorageTag reports whether tag marks a storage-like catalog entry.
func IsStorageTag(tag string) bool {
	_, ok := storageTags[tag]
	return ok
}
