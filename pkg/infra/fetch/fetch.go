package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

type client struct {
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// New creates an image fetcher. Redirects are followed by the default
// client policy; error statuses never raise, they come back in the result.
func New(opts ...Option) interfaces.ImageFetcher {
	c := &client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs a single GET of the given URL.
func (c *client) Fetch(ctx context.Context, url string) (*model.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build fetch request", goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "fetch request failed", goerr.V("url", url))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read fetch response", goerr.V("url", url))
	}

	return &model.FetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
