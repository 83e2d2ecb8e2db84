package fortuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fortuna-data-service/internal/domain"
	"fortuna-data-service/internal/providers"
	"fortuna-data-service/internal/timeutil"
)

// Config controls how the client reaches the Fortuna backend.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches fortunes, the user profile, and chakra images from the
// Fortuna backend and maps them to domain models. It owns its own request
// timeout and never retries; failed fetches surface as the typed errors
// in the providers package.
type Client struct {
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// FetchFortune retrieves the fortune for the key's date and variant.
func (c *Client) FetchFortune(ctx context.Context, key domain.FortuneKey, token string) (domain.Fortune, error) {
	if _, err := timeutil.ParseDate(key.Date); err != nil {
		return domain.Fortune{}, &providers.TransportError{Provider: ProviderName, Err: fmt.Errorf("invalid date %q", key.Date)}
	}
	if !key.Variant.Valid() {
		return domain.Fortune{}, &providers.TransportError{Provider: ProviderName, Err: fmt.Errorf("invalid variant %q", key.Variant)}
	}

	endpoint := fmt.Sprintf("%s/fortunes/%s", c.baseURL, key.Variant)
	body, err := c.get(ctx, endpoint, key.Date, token)
	if err != nil {
		return domain.Fortune{}, err
	}

	var payload fortuneResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Fortune{}, &providers.MalformedResponseError{Provider: ProviderName, Err: err}
	}
	if payload.Status != statusSuccess {
		return domain.Fortune{}, &providers.MalformedResponseError{
			Provider: ProviderName,
			Err:      fmt.Errorf("unexpected envelope status %q: %s", payload.Status, payload.Message),
		}
	}
	if payload.Data == nil {
		return domain.Fortune{}, &providers.NotFoundError{Provider: ProviderName, Date: key.Date}
	}

	return mapFortune(*payload.Data)
}

// FetchProfile retrieves the user's stored birth saju.
func (c *Client) FetchProfile(ctx context.Context, token string) (domain.Profile, error) {
	body, err := c.get(ctx, c.baseURL+"/user/profile", "", token)
	if err != nil {
		return domain.Profile{}, err
	}

	var payload profileResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Profile{}, &providers.MalformedResponseError{Provider: ProviderName, Err: err}
	}
	if payload.Status != statusSuccess || payload.Data == nil {
		return domain.Profile{}, &providers.MalformedResponseError{
			Provider: ProviderName,
			Err:      fmt.Errorf("unexpected envelope status %q: %s", payload.Status, payload.Message),
		}
	}

	return mapProfile(*payload.Data)
}

// FetchImages retrieves the chakra images uploaded for a date.
func (c *Client) FetchImages(ctx context.Context, date string, token string) ([]domain.ImageRef, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, &providers.TransportError{Provider: ProviderName, Err: fmt.Errorf("invalid date %q", date)}
	}

	body, err := c.get(ctx, c.baseURL+"/images", date, token)
	if err != nil {
		return nil, err
	}

	var payload imagesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &providers.MalformedResponseError{Provider: ProviderName, Err: err}
	}
	if payload.Status != statusSuccess || payload.Data == nil {
		return nil, &providers.MalformedResponseError{
			Provider: ProviderName,
			Err:      fmt.Errorf("unexpected envelope status %q: %s", payload.Status, payload.Message),
		}
	}

	refs := make([]domain.ImageRef, 0, len(payload.Data.Images))
	for _, img := range payload.Data.Images {
		refs = append(refs, domain.ImageRef{ID: img.ID, URL: img.URL, CapturedAt: img.CapturedAt})
	}
	return refs, nil
}

func (c *Client) get(ctx context.Context, endpoint, date, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &providers.TransportError{Provider: ProviderName, Err: err}
	}
	if date != "" {
		q := req.URL.Query()
		q.Set("date", date)
		req.URL.RawQuery = q.Encode()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.TransportError{Provider: ProviderName, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &providers.UnauthorizedError{Provider: ProviderName, Message: readMessage(resp.Body)}
	case resp.StatusCode == http.StatusNotFound:
		return nil, &providers.NotFoundError{Provider: ProviderName, Date: date}
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &providers.TransportError{
			Provider: ProviderName,
			Err:      fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &providers.TransportError{Provider: ProviderName, Err: err}
	}
	return body, nil
}

func readMessage(r io.Reader) string {
	var env envelope
	if err := json.NewDecoder(io.LimitReader(r, 512)).Decode(&env); err != nil {
		return ""
	}
	return env.Message
}
