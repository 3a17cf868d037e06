package stations_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/Houeta/transit-insights/internal/models"
	"github.com/Houeta/transit-insights/internal/stations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestOverpassSource_Nearby(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	center := models.Coordinates{Latitude: 41.652251, Longitude: -4.724532}

	t.Run("successful search", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, "GET", req.Method)
				assert.Contains(t, req.URL.String(), "overpass-api.de")
				assert.Contains(t, req.URL.Query().Get("data"), `"highway"="bus_stop"`)
				assert.Contains(t, req.URL.Query().Get("data"), "around:10000")
				assert.Equal(
					t,
					"Transit-Insights/1.0 (https://github.com/Houeta/transit-insights)",
					req.Header.Get("User-Agent"),
				)

				responseBody := `{"elements":[
					{"type":"node","id":42,"lat":41.6531,"lon":-4.7262,"tags":{"name":"Fuente Dorada","highway":"bus_stop"}},
					{"type":"node","id":43,"lat":41.6498,"lon":-4.7301,"tags":{"highway":"bus_stop"}}
				]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		source := stations.NewOverpassSourceWithClient(mockClient, logger)
		found, err := source.Nearby(ctx, center, 10000)

		require.NoError(t, err)
		require.Len(t, found, 2)

		assert.Equal(t, "Fuente Dorada", found[0].Name)
		assert.Equal(t, "node/42", found[0].PlaceID)
		assert.InEpsilon(t, 41.6531, found[0].Coordinates.Latitude, 1e-9)
		assert.InEpsilon(t, -4.7262, found[0].Coordinates.Longitude, 1e-9)

		assert.Equal(t, "Unknown", found[1].Name)
		assert.Equal(t, "node/43", found[1].PlaceID)
		assert.Nil(t, found[1].Address)
	})

	t.Run("empty element list yields empty slice", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"elements":[]}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		source := stations.NewOverpassSourceWithClient(mockClient, logger)
		found, err := source.Nearby(ctx, center, 10000)

		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `rate limited`
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		source := stations.NewOverpassSourceWithClient(mockClient, logger)
		found, err := source.Nearby(ctx, center, 10000)

		require.Error(t, err)
		require.Nil(t, found)
		assert.Contains(t, err.Error(), "overpass API returned status 429")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `not json`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		source := stations.NewOverpassSourceWithClient(mockClient, logger)
		found, err := source.Nearby(ctx, center, 10000)

		require.Error(t, err)
		require.Nil(t, found)
		assert.ErrorIs(t, err, stations.ErrOverpassDecode)
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		source := stations.NewOverpassSourceWithClient(mockClient, logger)
		found, err := source.Nearby(ctx, center, 10000)

		require.ErrorIs(t, err, assert.AnError)
		require.Nil(t, found)
	})
}
