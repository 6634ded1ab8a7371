package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"MarketLens/internal/common"
	"MarketLens/internal/model"
	"MarketLens/internal/query"
)

// HTTPGateway implements Gateway against the script endpoint of the market API.
type HTTPGateway struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
}

// NewHTTPGateway creates a gateway with optional proxy support. A zero
// timeout uses the default of 30 minutes.
func NewHTTPGateway(baseURL, proxyURL string, timeout time.Duration) *HTTPGateway {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = common.DefaultRequestTimeout
	}
	return &HTTPGateway{
		BaseURL: baseURL,
		Timeout: timeout,
		Client:  &http.Client{Transport: transport},
	}
}

func (g *HTTPGateway) Name() string { return "http" }

// FetchRecords loads the market series of one endpoint.
func (g *HTTPGateway) FetchRecords(ctx context.Context, endpoint string, preds []query.Predicate) ([]model.MarketRecord, error) {
	var records []model.MarketRecord
	if err := g.getJSON(ctx, endpoint, query.Encode(preds), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// FetchDayTrades loads per-day OHLC rows from the daily-trade endpoint.
func (g *HTTPGateway) FetchDayTrades(ctx context.Context, preds []query.Predicate) ([]model.DayTrade, error) {
	var trades []model.DayTrade
	if err := g.getJSON(ctx, query.EndpointItemMarketDayTrade, query.Encode(preds), &trades); err != nil {
		return nil, err
	}
	return trades, nil
}

// FetchItemNames returns the names listed by the unique-name endpoint, in
// response order and possibly with duplicates.
func (g *HTTPGateway) FetchItemNames(ctx context.Context) ([]string, error) {
	var rows []model.ItemName
	if err := g.getJSON(ctx, query.EndpointUniqueItemName, "select=name", &rows); err != nil {
		return nil, err
	}
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	return names, nil
}

// FetchBestItems loads the buy recommendations.
func (g *HTTPGateway) FetchBestItems(ctx context.Context) ([]model.BestItem, error) {
	var items []model.BestItem
	if err := g.getJSON(ctx, query.EndpointBestItemsToBuy, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// RequestURL builds {base}?endpoint={endpoint}[&{params}].
func (g *HTTPGateway) RequestURL(endpoint, params string) string {
	u := g.BaseURL + "?endpoint=" + endpoint
	if params != "" {
		u += "&" + params
	}
	return u
}

func (g *HTTPGateway) getJSON(ctx context.Context, endpoint, params string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, g.Timeout)
	defer cancel()

	u := g.RequestURL(endpoint, params)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Message: "build request", Err: err}
	}

	start := time.Now()
	resp, err := g.Client.Do(req)
	if err != nil {
		msg := "request failed"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = fmt.Sprintf("request aborted after %v", g.Timeout)
		}
		return &NetworkError{Endpoint: endpoint, Message: msg, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, StatusCode: resp.StatusCode, Message: "read body", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return &NetworkError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("network response was not ok: status %d, body: %s", resp.StatusCode, snippet),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &ParseError{Endpoint: endpoint, Err: err}
	}

	log.Debug().
		Str("endpoint", endpoint).
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(body)).
		Msg("Fetched endpoint")
	return nil
}
