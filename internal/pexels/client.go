package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/irisfoto/iris/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Iris/1.0"
)

// Client implements domain.PhotoSource against the Pexels REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Pexels API client.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
}

// SetAPIKey updates the credential sent in the Authorization header.
func (c *Client) SetAPIKey(apiKey string) {
	c.apiKey = apiKey
}

// doRequest performs an authenticated GET and returns the raw body. Failures
// are classified here, once, into domain faults; callers never see transport
// internals.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("pexels request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("pexels request failed", "error", err)
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.NetworkError{Kind: domain.NetworkTransport, Message: "Network error: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("pexels request error", "status", resp.StatusCode)
		return nil, statusError(resp.StatusCode)
	}

	return body, nil
}

// classifyTransportError maps a failed round trip onto the network fault
// taxonomy: no connectivity, timeout, or generic transport error.
func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.NetworkError{Kind: domain.NetworkTimeout, Message: "Request timed out"}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &domain.NetworkError{Kind: domain.NetworkNoConnection, Message: "No internet connection"}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &domain.NetworkError{Kind: domain.NetworkNoConnection, Message: "No internet connection"}
	}
	return &domain.NetworkError{Kind: domain.NetworkTransport, Message: "Network error: " + err.Error()}
}

// statusError maps a non-2xx response onto the API fault taxonomy.
func statusError(code int) error {
	var message string
	switch {
	case code == http.StatusUnauthorized:
		message = "Unauthorized: Invalid API key"
	case code == http.StatusForbidden:
		message = "Forbidden: Access denied"
	case code == http.StatusNotFound:
		message = "Not found"
	case code == http.StatusTooManyRequests:
		message = "Too many requests: Rate limit exceeded"
	case code >= 500 && code <= 599:
		message = "Server error: Please try again later"
	default:
		message = fmt.Sprintf("HTTP error %d", code)
	}
	return &domain.APIError{StatusCode: code, Message: message}
}

// decodeError wraps a payload that could not be decoded into the expected
// shape.
func decodeError(err error) error {
	return &domain.APIError{Message: "Failed to parse response: " + err.Error()}
}

// FeaturedCollections returns one page of featured collections.
func (c *Client) FeaturedCollections(ctx context.Context, page, perPage int) ([]domain.FeaturedCollection, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	body, err := c.doRequest(ctx, "/collections/featured", query)
	if err != nil {
		return nil, err
	}

	var resp CollectionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("collection response parse error", "error", err, "bodyLen", len(body))
		return nil, decodeError(err)
	}

	return MapCollections(resp.Collections), nil
}

// CuratedPhotos returns one page of the curated photo feed.
func (c *Client) CuratedPhotos(ctx context.Context, page, perPage int) ([]domain.CuratedImage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	body, err := c.doRequest(ctx, "/curated", query)
	if err != nil {
		return nil, err
	}

	var resp PhotoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("photo response parse error", "error", err, "bodyLen", len(body))
		return nil, decodeError(err)
	}

	return MapPhotos(resp.Photos), nil
}

// SearchPhotos returns one page of search results for query. Zero-value
// options are omitted from the request.
func (c *Client) SearchPhotos(ctx context.Context, searchQuery string, page, perPage int, opts domain.SearchOptions) ([]domain.CuratedImage, error) {
	query := url.Values{}
	query.Set("query", searchQuery)
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))
	if opts.Orientation != "" {
		query.Set("orientation", opts.Orientation)
	}
	if opts.Size != "" {
		query.Set("size", opts.Size)
	}
	if opts.Color != "" {
		query.Set("color", opts.Color)
	}

	body, err := c.doRequest(ctx, "/search", query)
	if err != nil {
		return nil, err
	}

	var resp PhotoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("search response parse error", "error", err, "bodyLen", len(body))
		return nil, decodeError(err)
	}

	return MapPhotos(resp.Photos), nil
}

// Photo looks up a single photo by id.
func (c *Client) Photo(ctx context.Context, id string) (*domain.CuratedImage, error) {
	body, err := c.doRequest(ctx, "/photos/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var photo Photo
	if err := json.Unmarshal(body, &photo); err != nil {
		c.logger.Error("photo parse error", "error", err, "bodyLen", len(body))
		return nil, decodeError(err)
	}

	image := MapPhoto(photo)
	return &image, nil
}
