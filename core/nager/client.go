package nager

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client defines the interface for the external holiday source.
type Client interface {
	// ListCountries fetches every country the source supports.
	ListCountries(ctx context.Context) ([]Country, error)
	// ListHolidays fetches the public holidays of one country for one year.
	ListHolidays(ctx context.Context, year int, countryCode string) ([]Holiday, error)
}

// NewClient creates a Nager.Date API client based on the configuration.
func NewClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://date.nager.at/api/v3"
	}

	return &httpClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
}

func (c *httpClient) ListCountries(ctx context.Context) ([]Country, error) {
	var countries []Country
	if err := c.getJSON(ctx, "/AvailableCountries", &countries); err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}
	return countries, nil
}

func (c *httpClient) ListHolidays(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
	path := fmt.Sprintf("/PublicHolidays/%d/%s", year, countryCode)
	var holidays []Holiday
	if err := c.getJSON(ctx, path, &holidays); err != nil {
		return nil, fmt.Errorf("list holidays %s/%d: %w", countryCode, year, err)
	}
	return holidays, nil
}

// getJSON performs a GET and decodes the body. Any non-2xx status or
// transport failure is an error so the retry wrapper can act on it.
func (c *httpClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
