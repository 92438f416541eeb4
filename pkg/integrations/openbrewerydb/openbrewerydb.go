package openbrewerydb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"brewfinder.dev/BrewFinder/configs"
	"brewfinder.dev/BrewFinder/pkg/model"
)

const DirectoryName = "open_brewery_db"

const defaultTimeout = 10 * time.Second

// ErrUpstream covers any failed directory call. The caller gets it as-is;
// there are no retries.
var ErrUpstream = errors.New("brewery directory request failed")

type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(conf configs.Upstream, logger *zap.Logger) *Client {
	timeout := time.Duration(conf.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(conf.BaseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SearchBreweries queries the directory by city. An empty city short-circuits
// to an empty result without touching the network.
func (c *Client) SearchBreweries(ctx context.Context, city string, page int, perPage int) ([]model.Brewery, error) {
	if strings.TrimSpace(city) == "" {
		return []model.Brewery{}, nil
	}

	if page < 1 {
		page = 1
	}

	query := url.Values{}
	query.Set("by_city", city)
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	requestURL := fmt.Sprintf("%s/breweries?%s", c.baseURL, query.Encode())

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("brewery directory unreachable", zap.String("city", city), zap.Error(err))

		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		c.logger.Warn("brewery directory returned error", zap.String("city", city), zap.Int("status", response.StatusCode))

		return nil, fmt.Errorf("%w: unexpected status %d", ErrUpstream, response.StatusCode)
	}

	var breweries []model.Brewery
	if err := json.NewDecoder(response.Body).Decode(&breweries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return breweries, nil
}
