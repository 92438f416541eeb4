package openbrewerydb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"brewfinder.dev/BrewFinder/configs"
	"brewfinder.dev/BrewFinder/pkg/integrations/openbrewerydb"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*openbrewerydb.Client, *httptest.Server) {
	t.Helper()

	upstream := httptest.NewServer(handler)
	t.Cleanup(upstream.Close)

	client := openbrewerydb.NewClient(configs.Upstream{BaseURL: upstream.URL, TimeoutSeconds: 2}, zaptest.NewLogger(t))

	return client, upstream
}

func TestSearchBreweries_DecodesRecords(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"b1","name":"Acme Brewing","brewery_type":"micro","city":"Cincinnati","state":"Ohio","website_url":"https://acme.example"},
			{"id":"b2","name":"Zymurgy Works"}
		]`))
	})

	results, err := client.SearchBreweries(context.Background(), "Cincinnati", 2, 20)
	require.NoError(t, err)

	assert.Equal(t, "/breweries", gotPath)
	assert.Equal(t, []string{"Cincinnati"}, gotQuery["by_city"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"20"}, gotQuery["per_page"])

	require.Len(t, results, 2)
	assert.Equal(t, "b1", results[0].ID)
	assert.Equal(t, "Acme Brewing", results[0].Name)
	assert.Equal(t, "micro", *results[0].BreweryType)
	assert.Equal(t, "https://acme.example", *results[0].WebsiteURL)
	assert.Equal(t, "b2", results[1].ID)
	assert.Nil(t, results[1].City)
}

func TestSearchBreweries_EmptyCityShortCircuits(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		_, _ = w.Write([]byte(`[]`))
	})

	results, err := client.SearchBreweries(context.Background(), "   ", 1, 10)
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Zero(t, calls)
}

func TestSearchBreweries_ClampsPageFloor(t *testing.T) {
	var gotPage string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := client.SearchBreweries(context.Background(), "Cincinnati", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "1", gotPage)
}

func TestSearchBreweries_UpstreamErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	results, err := client.SearchBreweries(context.Background(), "Cincinnati", 1, 10)

	assert.Nil(t, results)
	require.ErrorIs(t, err, openbrewerydb.ErrUpstream)
	assert.ErrorContains(t, err, "502")
}

func TestSearchBreweries_UpstreamBadPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"`))
	})

	_, err := client.SearchBreweries(context.Background(), "Cincinnati", 1, 10)

	require.ErrorIs(t, err, openbrewerydb.ErrUpstream)
}

func TestSearchBreweries_UpstreamUnreachable(t *testing.T) {
	client, upstream := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	upstream.Close()

	_, err := client.SearchBreweries(context.Background(), "Cincinnati", 1, 10)

	require.ErrorIs(t, err, openbrewerydb.ErrUpstream)
}
