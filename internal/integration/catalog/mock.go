package catalog

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/entity"
	"go.uber.org/zap"
)

// MockConnector is a canned catalog for local development and tests.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// mockCatalog holds a handful of plausible parts per category with a price
// spread wide enough to exercise the budget filter.
var mockCatalog = map[entity.Category][]entity.ComponentRecord{
	entity.CategoryCPU: {
		{Lien: "intel-core-i5-13400f", Title: "Intel Core i5-13400F", Price: 559, Stock: 12, CategoryTag: "PROCESSEUR"},
		{Lien: "amd-ryzen-5-7600", Title: "AMD Ryzen 5 7600", Price: 649, Stock: 7, CategoryTag: "PROCESSEUR"},
		{Lien: "intel-core-i7-13700k", Title: "Intel Core i7-13700K", Price: 899, Stock: 3, CategoryTag: "PROCESSEUR"},
		{Lien: "amd-ryzen-7-7800x3d", Title: "AMD Ryzen 7 7800X3D", Price: 1250, Stock: 5, CategoryTag: "PROCESSEUR"},
		{Lien: "intel-core-i3-12100f", Title: "Intel Core i3-12100F", Price: 320, Stock: 20, CategoryTag: "PROCESSEUR"},
	},
	entity.CategoryMotherboard: {
		{Lien: "msi-pro-b760m-p", Title: "MSI PRO B760M-P", Price: 329, Stock: 9, CategoryTag: "CARTE-MERE"},
		{Lien: "asus-prime-b650m-a", Title: "ASUS PRIME B650M-A", Price: 459, Stock: 6, CategoryTag: "CARTE-MERE"},
		{Lien: "gigabyte-z790-ud", Title: "Gigabyte Z790 UD", Price: 689, Stock: 4, CategoryTag: "CARTE-MERE"},
	},
	entity.CategoryGPU: {
		{Lien: "msi-rtx-4060-ventus-2x", Title: "MSI RTX 4060 VENTUS 2X", Price: 999, Stock: 8, CategoryTag: "CARTE-GRAPHIQUE"},
		{Lien: "asus-dual-rtx-4070-super", Title: "ASUS Dual RTX 4070 SUPER", Price: 1899, Stock: 2, CategoryTag: "CARTE-GRAPHIQUE"},
		{Lien: "gigabyte-rx-7600-gaming-oc", Title: "Gigabyte RX 7600 GAMING OC", Price: 879, Stock: 10, CategoryTag: "CARTE-GRAPHIQUE"},
	},
	entity.CategoryRAM: {
		{Lien: "corsair-vengeance-16gb-ddr5", Title: "Corsair Vengeance 16GB DDR5", Price: 219, Stock: 25, CategoryTag: "BARETTE-MEMOIRE"},
		{Lien: "kingston-fury-beast-32gb", Title: "Kingston Fury Beast 32GB", Price: 379, Stock: 14, CategoryTag: "BARETTE-MEMOIRE"},
	},
	entity.CategoryStorage: {
		{Lien: "msi-spatium-m371-nvme-m2-500gb", Title: "MSI SPATIUM M371 NVMe M.2 500GB", Price: 129, Stock: 30, CategoryTag: "DISQUE-NVME"},
		{Lien: "samsung-980-nvme-m2-1tb", Title: "Samsung 980 NVMe M.2 1TB", Price: 269, Stock: 18, CategoryTag: "DISQUE-NVME"},
		{Lien: "kingston-nv2-nvme-m2-500gb", Title: "Kingston NV2 NVMe M.2 500GB", Price: 115, Stock: 22, CategoryTag: "DISQUE-NVME"},
		{Lien: "wd-blue-sn570-nvme-m2-1tb", Title: "WD Blue SN570 NVMe M.2 1TB", Price: 249, Stock: 11, CategoryTag: "DISQUE-NVME"},
	},
	entity.CategoryPSU: {
		{Lien: "corsair-cv650-650w", Title: "Corsair CV650 650W", Price: 239, Stock: 16, CategoryTag: "ALIMENTATION"},
		{Lien: "msi-mag-a750gl-750w", Title: "MSI MAG A750GL 750W", Price: 359, Stock: 8, CategoryTag: "ALIMENTATION"},
	},
	entity.CategoryCase: {
		{Lien: "msi-mag-forge-100m", Title: "MSI MAG FORGE 100M", Price: 189, Stock: 12, CategoryTag: "BOITIER"},
		{Lien: "nzxt-h5-flow", Title: "NZXT H5 Flow", Price: 339, Stock: 6, CategoryTag: "BOITIER"},
	},
	entity.CategoryCooling: {
		{Lien: "deepcool-ak400", Title: "DeepCool AK400", Price: 109, Stock: 19, CategoryTag: "REFROIDISSEMENT"},
		{Lien: "msi-mag-coreliquid-240r", Title: "MSI MAG CORELIQUID 240R", Price: 389, Stock: 5, CategoryTag: "REFROIDISSEMENT"},
	},
}

// FetchCategory returns the canned component list for a category.
func (m *MockConnector) FetchCategory(ctx context.Context, category entity.Category) ([]entity.ComponentRecord, error) {
	ctxzap.Info(ctx, "[MOCK] fetching components from catalog", zap.String("category", string(category)))

	records, ok := mockCatalog[category]
	if !ok {
		return nil, fmt.Errorf("mock catalog has no category %q", category)
	}

	// Copy so callers can't mutate the canned data.
	out := make([]entity.ComponentRecord, len(records))
	copy(out, records)
	return out, nil
}
