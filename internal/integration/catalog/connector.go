package catalog

import (
	"context"
	"net/http"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/pcforge/builder-backend/internal/config"
	"github.com/pcforge/builder-backend/internal/entity"
	"github.com/pcforge/builder-backend/internal/integration/common"
	"github.com/pcforge/builder-backend/pkg/httpclient"
	"go.uber.org/zap"
)

// Connector talks to the external parts-catalog API.
type Connector struct {
	config    config.CatalogConnectorConfig
	connector *httpclient.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.CatalogConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// searchRequest is the catalog's pagination-search body. The category label
// travels as the filter title.
type searchRequest struct {
	FilsCateg categoryFilter `json:"filscateg"`
}

type categoryFilter struct {
	Titre string `json:"titre"`
}

// rawComponent is one item as the catalog returns it. nFilsCategs is the
// category path; its first element is the normalized category tag.
type rawComponent struct {
	TitleFr     string   `json:"title_fr"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Lien        string   `json:"lien"`
	NFilsCategs []string `json:"nFilsCategs"`
}

// FetchCategory returns the catalog's current component list for a category.
func (c *Connector) FetchCategory(ctx context.Context, category entity.Category) ([]entity.ComponentRecord, error) {
	label := category.CatalogLabel()

	ctxzap.Info(ctx, "fetching components from catalog", zap.String("category", string(category)))

	req := searchRequest{FilsCateg: categoryFilter{Titre: label}}

	var items []rawComponent
	err := retry.Do(
		func() error {
			items = items[:0]
			return c.connector.DoRequest(ctx, http.MethodPost, c.config.SearchEndpoint, req, &items)
		},
		append(c.config.Retry.ToRetryOptions(), retry.Context(ctx))...,
	)
	if err != nil {
		return nil, err
	}

	records := make([]entity.ComponentRecord, 0, len(items))
	for _, item := range items {
		if item.Lien == "" {
			continue
		}
		record := entity.ComponentRecord{
			Lien:  item.Lien,
			Title: item.TitleFr,
			Price: item.Price,
			Stock: item.Stock,
		}
		if len(item.NFilsCategs) > 0 {
			record.CategoryTag = item.NFilsCategs[0]
		}
		records = append(records, record)
	}

	ctxzap.Info(ctx, "components fetched", zap.String("category", string(category)), zap.Int("count", len(records)))

	return records, nil
}
