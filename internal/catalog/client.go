package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	cataloghttp "github.com/justchokingaround/anisearch/internal/catalog/http"
	"github.com/justchokingaround/anisearch/internal/config"
)

// Catalog is the read-only view of the remote anime catalog
type Catalog interface {
	Search(ctx context.Context, query string, page int) (*SearchResponse, error)
	GetByID(ctx context.Context, id int) (*Anime, error)
}

// Client talks to the Jikan REST API
type Client struct {
	baseURL    string
	httpClient *cataloghttp.Client
	limiter    *rate.Limiter
	cache      *DetailCache
	timeout    time.Duration
	logger     *slog.Logger
}

var _ Catalog = (*Client)(nil)

// NewClient creates a catalog client from the API section of cfg
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if cfg == nil {
		cfg = &config.Config{
			API: config.APIConfig{
				BaseURL:           config.DefaultBaseURL,
				Timeout:           10 * time.Second,
				RequestsPerSecond: 3,
				Burst:             3,
			},
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	httpConfig := cataloghttp.DefaultClientConfig()
	if cfg.API.Timeout > 0 {
		httpConfig.Timeout = cfg.API.Timeout
	}
	if cfg.API.MaxRetries != 0 {
		httpConfig.MaxRetries = cfg.API.MaxRetries
	}
	httpConfig.Debug = cfg.Advanced.Debug
	httpConfig.Logger = logger
	httpClient := cataloghttp.NewClient(httpConfig)

	limit := rate.Inf
	if cfg.API.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.API.RequestsPerSecond)
	}
	burst := cfg.API.Burst
	if burst < 1 {
		burst = 1
	}

	logger.Debug("catalog client ready",
		"base_url", cfg.API.BaseURL,
		"timeout", httpClient.GetTimeout(),
		"max_retries", httpClient.GetMaxRetries(),
	)

	return &Client{
		baseURL:    strings.TrimRight(cfg.API.BaseURL, "/"),
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		cache:      NewDetailCache(),
		timeout:    httpClient.GetTimeout(),
		logger:     logger,
	}
}

// Search fetches one page of results for query
func (c *Client) Search(ctx context.Context, query string, page int) (*SearchResponse, error) {
	if page < 1 {
		page = 1
	}
	params := map[string]string{
		"q":     query,
		"page":  strconv.Itoa(page),
		"limit": strconv.Itoa(config.PageSize),
		"sfw":   "true",
	}

	var response SearchResponse
	if err := c.get(ctx, "/anime", params, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetByID fetches a single record. Results are cached for the client's lifetime.
func (c *Client) GetByID(ctx context.Context, id int) (*Anime, error) {
	if cached, ok := c.cache.Get(id); ok {
		c.logger.Debug("detail cache hit", "id", id)
		return cached, nil
	}

	var response DetailResponse
	if err := c.get(ctx, "/anime/"+strconv.Itoa(id), nil, &response); err != nil {
		return nil, err
	}

	c.cache.Set(id, &response.Data)
	c.logger.Debug("detail cached", "id", id, "cache_size", c.cache.Len())
	return &response.Data, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params map[string]string, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return c.classify(ctx, err)
	}

	resp, err := c.httpClient.Get(ctx, c.baseURL+endpoint, params)
	if err != nil {
		return c.classify(ctx, err)
	}

	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return &NetworkError{
			StatusCode: resp.StatusCode(),
			Message:    "received a malformed response from the catalog",
			Err:        err,
		}
	}

	return nil
}

// classify maps transport failures onto the catalog error taxonomy
func (c *Client) classify(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ErrCanceled
	}

	var statusErr *cataloghttp.StatusError
	if errors.As(err, &statusErr) {
		return &NetworkError{
			StatusCode: statusErr.Code,
			Message:    statusMessage(statusErr),
			Err:        err,
		}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &NetworkError{
			Message: fmt.Sprintf("the catalog did not respond within %s", c.timeout),
			Err:     errors.Join(errTimeout, err),
		}
	}

	return &NetworkError{
		Message: "could not reach the catalog, check your connection",
		Err:     err,
	}
}

func statusMessage(e *cataloghttp.StatusError) string {
	var body errorBody
	if err := json.Unmarshal(e.Body, &body); err == nil {
		if body.Message != "" {
			return fmt.Sprintf("catalog error (%d): %s", e.Code, body.Message)
		}
		if body.Error != "" {
			return fmt.Sprintf("catalog error (%d): %s", e.Code, body.Error)
		}
	}

	switch e.Code {
	case 404:
		return "catalog error (404): not found"
	case 429:
		return "catalog error (429): too many requests, slow down"
	default:
		return fmt.Sprintf("catalog error: HTTP %d", e.Code)
	}
}
