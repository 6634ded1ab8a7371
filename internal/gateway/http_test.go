package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/query"
)

func TestHTTPGateway_FetchRecords(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.Header.Get("Authorization"))
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"createddate":"2025-03-01T08:31:00.000Z","item_id":206,"name":"Xanax","price":830000,"average_price":829500,"quantity":3},
			{"createddate":"2025-03-01T08:30:00.000Z","item_id":206,"name":"Xanax","price":829000,"average_price":829400}
		]`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "", time.Minute)
	preds := []query.Predicate{
		{Field: "createddate", Operator: query.OpGte, Value: "2025-03-01T00:00:00.000Z"},
		{Field: "name", Operator: query.OpEq, Value: "Xanax"},
	}
	records, err := g.FetchRecords(context.Background(), query.EndpointItemMarket15m, preds)
	require.NoError(t, err)

	assert.Equal(t, "endpoint=item_market_15m&createddate=gte.2025-03-01T00:00:00.000Z&name=eq.Xanax", gotQuery)
	require.Len(t, records, 2)
	assert.Equal(t, int64(206), records[0].ItemID)
	assert.Equal(t, 3.0, records[0].Qty())
	assert.Equal(t, 1.0, records[1].Qty())
	assert.Equal(t, 8, records[1].CreatedDate.Hour())
}

func TestHTTPGateway_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "", time.Minute)
	_, err := g.FetchBestItems(context.Background())
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusTooManyRequests, netErr.StatusCode)
	assert.Equal(t, query.EndpointBestItemsToBuy, netErr.Endpoint)
}

func TestHTTPGateway_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "", time.Minute)
	_, err := g.FetchDayTrades(context.Background(), nil)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, query.EndpointItemMarketDayTrade, parseErr.Endpoint)
}

func TestHTTPGateway_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	g := NewHTTPGateway(srv.URL, "", 50*time.Millisecond)
	_, err := g.FetchRecords(context.Background(), query.EndpointItemMarket, nil)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestHTTPGateway_ItemNames(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"name":"Xanax"},{"name":"Donator Pack"},{"name":"Xanax"}]`))
	}))
	defer srv.Close()

	g := NewHTTPGateway(srv.URL, "", 0)
	names, err := g.FetchItemNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "endpoint=unique_item_market_name&select=name", gotQuery)
	assert.Equal(t, []string{"Xanax", "Donator Pack", "Xanax"}, names)
	assert.Equal(t, 30*time.Minute, g.Timeout)
}

func TestRequestURL_NoParams(t *testing.T) {
	g := &HTTPGateway{BaseURL: "https://example.test/exec"}
	assert.Equal(t, "https://example.test/exec?endpoint=best_items_to_buy", g.RequestURL(query.EndpointBestItemsToBuy, ""))
}

func TestNewDemoGateway(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	gw := NewDemoGateway(now)

	recs, err := gw.FetchRecords(context.Background(), query.EndpointItemMarket15m, nil)
	require.NoError(t, err)
	require.Len(t, recs, 96)
	assert.Equal(t, now, recs[95].CreatedDate)

	trades, err := gw.FetchDayTrades(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, trades, 120)
	assert.Equal(t, "2025-03-14", trades[119].Date)
	for _, tr := range trades {
		assert.GreaterOrEqual(t, tr.High, tr.Open)
		assert.LessOrEqual(t, tr.Low, tr.Close)
	}
	assert.Equal(t, 1, gw.Calls(query.EndpointItemMarket15m))
}
