package gateway

import (
	"context"

	"MarketLens/internal/model"
	"MarketLens/internal/query"
)

// Gateway defines the remote market data API.
type Gateway interface {
	FetchRecords(ctx context.Context, endpoint string, preds []query.Predicate) ([]model.MarketRecord, error)
	FetchDayTrades(ctx context.Context, preds []query.Predicate) ([]model.DayTrade, error)
	FetchItemNames(ctx context.Context) ([]string, error)
	FetchBestItems(ctx context.Context) ([]model.BestItem, error)
	Name() string
}
