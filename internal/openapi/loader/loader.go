// Package loader fetches OpenAPI documents from disk, an fs.FS or HTTP.
package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// Options configure a Loader.
type Options struct {
	FileSystem        fs.FS
	HTTPClient        *http.Client
	AllowHTTPFallback bool
	RequestTimeout    time.Duration
}

// Loader resolves a location to raw document bytes. Locations starting with
// http:// or https:// are fetched over HTTP; others are read from the
// configured fs.FS, or from disk when none is set.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// New constructs a Loader from options.
func New(options Options) *Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load returns the document stored at location.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi loader: location is required")
	}

	switch {
	case isURL(location):
		if !l.allowHTTP {
			return nil, errors.New("openapi loader: http support disabled")
		}
		return loadHTTP(ctx, l.http, location, l.timeout)
	case l.fs != nil:
		return loadFromFS(ctx, l.fs, location)
	default:
		return loadFile(ctx, location)
	}
}

func isURL(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
