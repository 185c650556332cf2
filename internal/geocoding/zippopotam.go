package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ZippopotamBaseURL is the public Zippopotam.us endpoint for US postal codes.
const ZippopotamBaseURL = "https://api.zippopotam.us/us"

// ZippopotamClient implements PostalLookup using the free Zippopotam.us API.
type ZippopotamClient struct {
	client    HTTPClient    // HTTP client for making requests
	baseURL   string        // Base URL for the country-scoped API
	log       *slog.Logger  // Logger for logging operations
	limiter   *rate.Limiter // Client side rate limit for the public service
	userAgent string
}

// zippopotamResponse represents the JSON response from Zippopotam.us.
type zippopotamResponse struct {
	PostCode string `json:"post code"`
	Places   []struct {
		PlaceName string `json:"place name"`
		State     string `json:"state abbreviation"`
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"places"`
}

// ErrZippopotamInvalidCoords is returned when the API answers with unparsable coordinates.
var ErrZippopotamInvalidCoords = errors.New("zippopotam API returned invalid coordinates")

// NewZippopotamClient creates a Zippopotam.us lookup client limited to rateLimit requests per second.
// An empty baseURL selects ZippopotamBaseURL.
func NewZippopotamClient(baseURL string, rateLimit int, log *slog.Logger) *ZippopotamClient {
	const timeout = 10

	if rateLimit <= 0 {
		rateLimit = 1
		log.Warn("Rate limit for Zippopotam API not set, set a default value", "value", rateLimit)
	}

	return NewZippopotamClientWithClient(
		&http.Client{Timeout: timeout * time.Second},
		baseURL,
		rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log,
	)
}

// NewZippopotamClientWithClient creates a client with a custom HTTP client and limiter.
// Useful for testing with mocked HTTP clients.
func NewZippopotamClientWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *ZippopotamClient {
	if baseURL == "" {
		baseURL = ZippopotamBaseURL
	}

	return &ZippopotamClient{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		log:       log,
		limiter:   limiter,
		userAgent: "LoadMatch-Geo-Service/1.0 (https://github.com/UnknownOlympus/loadmatch)",
	}
}

// LookupPostalCode fetches the coordinates, city and state of a five digit US postal code.
func (zc *ZippopotamClient) LookupPostalCode(ctx context.Context, code string) (*PostalRecord, error) {
	if err := zc.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL := zc.baseURL + "/" + url.PathEscape(code)
	zc.log.DebugContext(ctx, "Zippopotam request URL", "url", reqURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", zc.userAgent)

	resp, err := zc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute postal lookup request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, ErrPostalCodeNotFound
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		body, _ := io.ReadAll(resp.Body)
		zc.log.WarnContext(ctx, "Zippopotam API throttled the request", "status", resp.StatusCode)
		return nil, fmt.Errorf("zippopotam API returned status %d: %s", resp.StatusCode, string(body))
	default:
		if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode < http.StatusInternalServerError {
			zc.log.WarnContext(ctx, "Zippopotam API rejected postal code", "status", resp.StatusCode, "postal_code", code)
			return nil, fmt.Errorf("%w: zippopotam API returned status %d", ErrPostalCodeNotFound, resp.StatusCode)
		}

		body, _ := io.ReadAll(resp.Body)
		zc.log.ErrorContext(ctx, "Zippopotam API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("zippopotam API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	zc.log.DebugContext(ctx, "Zippopotam raw response", "body", string(body))

	var result zippopotamResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode zippopotam response: %w", err)
	}

	if len(result.Places) == 0 {
		return nil, ErrPostalCodeNotFound
	}

	place := result.Places[0]

	lat, err := strconv.ParseFloat(strings.TrimSpace(place.Latitude), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrZippopotamInvalidCoords, place.Latitude)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(place.Longitude), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrZippopotamInvalidCoords, place.Longitude)
	}

	return &PostalRecord{
		Latitude:  lat,
		Longitude: lon,
		City:      place.PlaceName,
		State:     strings.ToUpper(place.State),
	}, nil
}
