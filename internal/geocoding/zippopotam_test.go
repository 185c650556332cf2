package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UnknownOlympus/loadmatch/internal/geocoding"
	"github.com/UnknownOlympus/loadmatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, body string) func(*http.Request) (*http.Response, error) {
	return func(_ *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewBufferString(body)),
		}, nil
	}
}

func TestZippopotamClient_LookupPostalCode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	limiter := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful lookup", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "GET", req.Method)
				assert.Equal(t, geocoding.ZippopotamBaseURL+"/85001", req.URL.String())
				assert.Equal(t, "application/json", req.Header.Get("Accept"))
				assert.Equal(
					t,
					"LoadMatch-Geo-Service/1.0 (https://github.com/UnknownOlympus/loadmatch)",
					req.Header.Get("User-Agent"),
				)

				responseBody := `{"post code": "85001", "country": "United States", "places": [` +
					`{"place name": "Phoenix", "longitude": "-112.0740", "state": "Arizona",` +
					` "state abbreviation": "AZ", "latitude": "33.4484"}]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := geocoding.NewZippopotamClientWithClient(mockClient, "", limiter, logger)
		record, err := client.LookupPostalCode(ctx, "85001")

		require.NoError(t, err)
		require.NotNil(t, record)
		assert.InEpsilon(t, 33.4484, record.Latitude, 0.0001)
		assert.InEpsilon(t, -112.0740, record.Longitude, 0.0001)
		assert.Equal(t, "Phoenix", record.City)
		assert.Equal(t, "AZ", record.State)
	})

	t.Run("unknown postal code", func(t *testing.T) {
		client := geocoding.NewZippopotamClientWithClient(
			&mockHTTPClient{doFunc: respond(http.StatusNotFound, `{}`)}, "", limiter, logger,
		)
		record, err := client.LookupPostalCode(ctx, "00000")

		require.Nil(t, record)
		require.ErrorIs(t, err, geocoding.ErrPostalCodeNotFound)
	})

	t.Run("empty places list", func(t *testing.T) {
		client := geocoding.NewZippopotamClientWithClient(
			&mockHTTPClient{doFunc: respond(http.StatusOK, `{"post code": "00000", "places": []}`)},
			"", limiter, logger,
		)
		record, err := client.LookupPostalCode(ctx, "00000")

		require.Nil(t, record)
		require.ErrorIs(t, err, geocoding.ErrPostalCodeNotFound)
	})

	t.Run("server error", func(t *testing.T) {
		client := geocoding.NewZippopotamClientWithClient(
			&mockHTTPClient{doFunc: respond(http.StatusBadGateway, `upstream down`)}, "", limiter, logger,
		)
		record, err := client.LookupPostalCode(ctx, "85001")

		require.Nil(t, record)
		require.Error(t, err)
		require.NotErrorIs(t, err, geocoding.ErrPostalCodeNotFound)
		assert.Contains(t, err.Error(), "zippopotam API returned status 502")
	})

	for _, status := range []int{http.StatusBadRequest, http.StatusForbidden, http.StatusGone} {
		t.Run("client error "+http.StatusText(status)+" is not retryable", func(t *testing.T) {
			client := geocoding.NewZippopotamClientWithClient(
				&mockHTTPClient{doFunc: respond(status, `rejected`)}, "", limiter, logger,
			)
			record, err := client.LookupPostalCode(ctx, "85001")

			require.Nil(t, record)
			require.ErrorIs(t, err, geocoding.ErrPostalCodeNotFound)
		})
	}

	for _, status := range []int{http.StatusTooManyRequests, http.StatusRequestTimeout} {
		t.Run("throttling "+http.StatusText(status)+" stays retryable", func(t *testing.T) {
			client := geocoding.NewZippopotamClientWithClient(
				&mockHTTPClient{doFunc: respond(status, `slow down`)}, "", limiter, logger,
			)
			record, err := client.LookupPostalCode(ctx, "85001")

			require.Nil(t, record)
			require.Error(t, err)
			require.NotErrorIs(t, err, geocoding.ErrPostalCodeNotFound)
		})
	}

	t.Run("transport error", func(t *testing.T) {
		client := geocoding.NewZippopotamClientWithClient(
			&mockHTTPClient{doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			}},
			"", limiter, logger,
		)
		record, err := client.LookupPostalCode(ctx, "85001")

		require.Nil(t, record)
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "failed to execute postal lookup request")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		client := geocoding.NewZippopotamClientWithClient(
			&mockHTTPClient{doFunc: respond(http.StatusOK, `invalid json`)}, "", limiter, logger,
		)
		record, err := client.LookupPostalCode(ctx, "85001")

		require.Nil(t, record)
		assert.Contains(t, err.Error(), "failed to decode zippopotam response")
	})

	t.Run("invalid latitude in response", func(t *testing.T) {
		client := geocoding.NewZippopotamClientWithClient(
			&mockHTTPClient{doFunc: respond(http.StatusOK,
				`{"places": [{"place name": "X", "state abbreviation": "AZ", "latitude": "north", "longitude": "-112"}]}`,
			)},
			"", limiter, logger,
		)
		record, err := client.LookupPostalCode(ctx, "85001")

		require.Nil(t, record)
		require.ErrorIs(t, err, geocoding.ErrZippopotamInvalidCoords)
		assert.Contains(t, err.Error(), "invalid latitude")
	})

	t.Run("invalid longitude in response", func(t *testing.T) {
		client := geocoding.NewZippopotamClientWithClient(
			&mockHTTPClient{doFunc: respond(http.StatusOK,
				`{"places": [{"place name": "X", "state abbreviation": "AZ", "latitude": "33", "longitude": ""}]}`,
			)},
			"", limiter, logger,
		)
		record, err := client.LookupPostalCode(ctx, "85001")

		require.Nil(t, record)
		require.ErrorIs(t, err, geocoding.ErrZippopotamInvalidCoords)
		assert.Contains(t, err.Error(), "invalid longitude")
	})

	t.Run("cancelled context stops at the limiter", func(t *testing.T) {
		cctx, cancel := context.WithCancel(t.Context())
		cancel()

		blocking := rate.NewLimiter(rate.Limit(1), 1)
		blocking.Allow()

		client := geocoding.NewZippopotamClientWithClient(
			&mockHTTPClient{doFunc: respond(http.StatusOK, `{}`)}, "", blocking, logger,
		)
		_, err := client.LookupPostalCode(cctx, "85001")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limit exceeded")
	})
}

func TestZippopotamClient_AgainstTestServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/us/90210" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"post code": "90210", "places": [{"place name": "Beverly Hills",` +
			` "longitude": "-118.4065", "state abbreviation": "CA", "latitude": "34.0901"}]}`))
	}))
	defer srv.Close()

	client := geocoding.NewZippopotamClient(srv.URL+"/us/", 100, slog.Default())

	record, err := client.LookupPostalCode(t.Context(), "90210")
	require.NoError(t, err)
	assert.Equal(t, "Beverly Hills", record.City)
	assert.Equal(t, "CA", record.State)

	_, err = client.LookupPostalCode(t.Context(), "99999")
	require.True(t, errors.Is(err, geocoding.ErrPostalCodeNotFound))
}

func TestGeocoder_PermanentLookupRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := geocoding.NewZippopotamClient(srv.URL, 100, slog.Default())
	geocoder, _ := newGeocoder(client)

	t.Run("falls back to the state center", func(t *testing.T) {
		coord, err := geocoder.Geocode(t.Context(), models.LocationQuery{PostalCode: "85001", State: "AZ"})

		require.NoError(t, err)
		assert.Equal(t, models.PrecisionStateCentroid, coord.Precision())
	})

	t.Run("without a state the code is unresolved", func(t *testing.T) {
		_, err := geocoder.Geocode(t.Context(), models.LocationQuery{PostalCode: "85001"})

		require.ErrorIs(t, err, geocoding.ErrLocationUnresolved)
		require.NotErrorIs(t, err, geocoding.ErrLookupUnavailable)
	})
}
