package customHttpClient

import (
	"net/http"
	"sync"

	"bookrag/internal/config"
)

var once sync.Once
var pooled *http.Client

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// PooledClient is shared by the OpenAI embedding and generation clients so
// repeated calls reuse connections instead of paying the handshake each time.
func PooledClient() *http.Client {
	once.Do(func() {
		pooled = &http.Client{Transport: customTransport}
	})
	return pooled
}
