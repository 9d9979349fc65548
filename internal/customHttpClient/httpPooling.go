package customHttpClient

import (
	"net/http"

	"github.com/zacharyjolliff15/ScholarAI/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// GetPooledClient hands the model-provider SDKs a shared connection pool so
// back-to-back embedding batches reuse connections.
func GetPooledClient() *http.Client {
	return &http.Client{Transport: customTransport}
}
