package config

import (
	"strings"
	"time"
)

type Backend struct {
	URL        string        `env:"BACKEND_URL, default=http://localhost:5000/api"`
	UploadsURL string        `env:"UPLOADS_URL, default=/uploads"`
	Timeout    time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

var _ BackendConfig = Backend{}

// GetBackendURL returns the REST API base URL without a trailing slash
func (b Backend) GetBackendURL() string {
	return strings.TrimRight(b.URL, "/")
}

// GetUploadsURL is prefixed to stored image paths when rendering them
func (b Backend) GetUploadsURL() string {
	return strings.TrimRight(b.UploadsURL, "/")
}

func (b Backend) GetBackendTimeout() time.Duration {
	return b.Timeout
}
