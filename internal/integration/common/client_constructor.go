package common

import (
	"github.com/pcforge/builder-backend/internal/config"
	"github.com/pcforge/builder-backend/pkg/httpclient"
	"go.uber.org/zap"
)

func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *httpclient.Connector {
	connCfg := &httpclient.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	return httpclient.NewConnector(
		connCfg,
		httpclient.WithRequestTimeout(cfg.RequestTimeout),
		httpclient.WithConnTimeout(cfg.ConnTimeout),
		httpclient.WithKeepAlive(cfg.KeepAlive),
		httpclient.WithIdleConnTimeout(cfg.IdleConnTimeout),
		httpclient.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		httpclient.WithRequestLogging(),
		httpclient.WithAuthToken(cfg.Token),
	)
}
