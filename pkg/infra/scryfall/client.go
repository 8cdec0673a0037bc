package scryfall

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/scrysheet/scrysheet/pkg/domain/interfaces"
	"github.com/scrysheet/scrysheet/pkg/domain/model"
)

// DefaultBaseURL is the public card search API endpoint.
const DefaultBaseURL = "https://api.scryfall.com"

type client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// New creates a card search API client.
func New(opts ...Option) interfaces.CardSearcher {
	c := &client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// searchPage is one page of the paginated search response.
type searchPage struct {
	Data       []model.Card `json:"data"`
	HasMore    bool         `json:"has_more"`
	TotalCards int          `json:"total_cards"`
}

// SearchCards fetches successive result pages, concatenating their card
// arrays. The first page is always fetched; afterwards the loop follows
// has_more until the accumulated count exceeds limit. Any malformed page
// aborts the whole call, no partial results are returned.
func (c *client) SearchCards(ctx context.Context, query, order, direction, unique string, limit int) ([]model.Card, error) {
	params := map[string]string{
		"q":      query,
		"order":  order,
		"dir":    direction,
		"unique": unique,
	}

	page, err := c.fetchPage(ctx, params, 1)
	if err != nil {
		return nil, err
	}
	cards := page.Data

	for num := 2; page.HasMore; num++ {
		if page, err = c.fetchPage(ctx, params, num); err != nil {
			return nil, err
		}
		cards = append(cards, page.Data...)
		if len(cards) > limit {
			break
		}
	}

	return cards, nil
}

// fetchPage issues one GET against /cards/search with the page number
// appended to the base parameters.
func (c *client) fetchPage(ctx context.Context, params map[string]string, page int) (*searchPage, error) {
	values := url.Values{}
	for key, value := range params {
		values.Set(key, value)
	}
	values.Set("page", strconv.Itoa(page))

	reqURL := c.baseURL + "/cards/search?" + values.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build search request", goerr.V("url", reqURL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "search request failed", goerr.V("page", page))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read search response", goerr.V("page", page))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected status from card search",
			goerr.V("status", resp.StatusCode),
			goerr.V("page", page),
		)
	}

	var result searchPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, goerr.Wrap(err, "failed to parse search page", goerr.V("page", page))
	}
	if result.Data == nil {
		return nil, goerr.New("no results from source: search page has no data array", goerr.V("page", page))
	}

	return &result, nil
}
