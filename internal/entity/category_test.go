package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCatalogLabels(t *testing.T) {
	want := map[Category]string{
		CategoryCPU:         "PROCESSEUR",
		CategoryMotherboard: "CARTE MÈRE",
		CategoryGPU:         "CARTE GRAPHIQUE",
		CategoryRAM:         "BARETTE MÉMOIRE",
		CategoryStorage:     "STORAGE",
		CategoryPSU:         "ALIMENTATION",
		CategoryCase:        "BOITIER",
		CategoryCooling:     "REFROIDISSEMENT",
	}

	for cat, label := range want {
		assert.Equal(t, label, cat.CatalogLabel())
	}
}

func TestAllCategoriesOrder(t *testing.T) {
	require.Len(t, AllCategories, 8)
	assert.Equal(t, CategoryCPU, AllCategories[0])
	assert.Equal(t, CategoryMotherboard, AllCategories[1])
	assert.Equal(t, CategoryGPU, AllCategories[2])
	assert.Equal(t, append([]Category{CategoryCPU, CategoryMotherboard, CategoryGPU}, RemainingCategories...), AllCategories)
}

func TestCategoryValidate(t *testing.T) {
	for _, cat := range AllCategories {
		assert.NoError(t, cat.Validate())
	}
	assert.ErrorIs(t, Category("soundcard").Validate(), ErrInvalidInput)
}

func TestIsStorageTag(t *testing.T) {
	assert.True(t, IsStorageTag("DISQUE-SSD"))
	assert.True(t, IsStorageTag("DISQUE-NVME"))
	assert.True(t, IsStorageTag("STORAGE"))
	assert.False(t, IsStorageTag("PROCESSEUR"))
	assert.False(t, IsStorageTag(""))
}

func TestComputeTotalPriceSkipsUnresolved(t *testing.T) {
	b := Build{Components: map[Category]*ComponentRecord{
		CategoryCPU: {Lien: "cpu", Price: 480},
		CategoryGPU: nil,
		CategoryRAM: {Lien: "ram", Price: 160},
	}}

	b.ComputeTotalPrice()

	assert.Equal(t, 640.0, b.TotalPrice)
}
