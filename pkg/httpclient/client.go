package httpclient

import (
	"net"
	"net/http"
	"time"
)

type TransportFunc func(http.RoundTripper) http.RoundTripper

type Option func(*clientConfig)

type clientConfig struct {
	connTimeout           time.Duration
	requestTimeout        time.Duration
	keepAlive             time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	idleConnTimeout       time.Duration
	maxIdleConns          int
	maxIdleConnsPerHost   int
	transports            []TransportFunc
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		connTimeout:           30 * time.Second,
		requestTimeout:        30 * time.Second,
		keepAlive:             90 * time.Second,
		tlsHandshakeTimeout:   10 * time.Second,
		responseHeaderTimeout: 10 * time.Second,
		idleConnTimeout:       90 * time.Second,
		maxIdleConns:          100,
		maxIdleConnsPerHost:   10,
	}
}

func WithConnTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.connTimeout = timeout }
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.requestTimeout = timeout }
}

func WithKeepAlive(keepAlive time.Duration) Option {
	return func(c *clientConfig) { c.keepAlive = keepAlive }
}

func WithResponseHeaderTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.responseHeaderTimeout = timeout }
}

func WithIdleConnTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) { c.idleConnTimeout = timeout }
}

func WithTransport(transport TransportFunc) Option {
	return func(c *clientConfig) { c.transports = append(c.transports, transport) }
}

func newClient(opts ...Option) *http.Client {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := net.Dialer{
		Timeout:   cfg.connTimeout,
		KeepAlive: cfg.keepAlive,
	}

	var transport http.RoundTripper = &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          cfg.maxIdleConns,
		MaxIdleConnsPerHost:   cfg.maxIdleConnsPerHost,
		TLSHandshakeTimeout:   cfg.tlsHandshakeTimeout,
		ResponseHeaderTimeout: cfg.responseHeaderTimeout,
		IdleConnTimeout:       cfg.idleConnTimeout,
	}

	for _, wrap := range cfg.transports {
		transport = wrap(transport)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: transport,
	}
}
