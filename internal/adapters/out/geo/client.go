// Package geo resolves delivery streets to grid locations via the
// geocoding service's HTTP API.
package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultTimeout = 2 * time.Second

// Client is an HTTP client for the geocoding service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a geocoding client for the given base URL.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}, nil
}

type locationResponse struct {
	X kernel.Coordinate `json:"x"`
	Y kernel.Coordinate `json:"y"`
}

// GetLocation resolves a street name to a grid location.
func (c *Client) GetLocation(ctx context.Context, street string) (kernel.Location, error) {
	if street == "" {
		return kernel.Location{}, errs.NewValueIsRequiredError("street")
	}

	endpoint := fmt.Sprintf("%s/geo/location?street=%s", c.baseURL, url.QueryEscape(street))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.Location{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return kernel.Location{}, fmt.Errorf("geo service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return kernel.Location{}, errs.NewObjectNotFoundError("street", street)
	}
	if resp.StatusCode != http.StatusOK {
		return kernel.Location{}, fmt.Errorf("geo service responded with status %d", resp.StatusCode)
	}

	var body locationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return kernel.Location{}, fmt.Errorf("geo service response: %w", err)
	}

	return kernel.NewLocation(body.X, body.Y)
}
