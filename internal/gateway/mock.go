package gateway

import (
	"context"
	"sync"
	"time"

	"MarketLens/internal/model"
	"MarketLens/internal/query"
)

// MockGateway returns controllable fixed data for development and testing.
type MockGateway struct {
	Records   []model.MarketRecord
	DayTrades []model.DayTrade
	Names     []string
	BestItems []model.BestItem
	Err       error

	// RecordsFunc, when set, overrides Records and Err for FetchRecords.
	RecordsFunc func(ctx context.Context, endpoint string, preds []query.Predicate) ([]model.MarketRecord, error)
	// DayTradesFunc, when set, overrides DayTrades and Err for FetchDayTrades.
	DayTradesFunc func(ctx context.Context, preds []query.Predicate) ([]model.DayTrade, error)

	mu    sync.Mutex
	calls map[string]int
	last  map[string][]query.Predicate
}

func (m *MockGateway) Name() string { return "mock" }

func (m *MockGateway) record(endpoint string, preds []query.Predicate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
		m.last = make(map[string][]query.Predicate)
	}
	m.calls[endpoint]++
	m.last[endpoint] = preds
}

// Calls returns how many requests hit endpoint.
func (m *MockGateway) Calls(endpoint string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[endpoint]
}

// TotalCalls returns the number of requests across all endpoints.
func (m *MockGateway) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// LastPredicates returns the predicates of the latest request to endpoint.
func (m *MockGateway) LastPredicates(endpoint string) []query.Predicate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last[endpoint]
}

func (m *MockGateway) FetchRecords(ctx context.Context, endpoint string, preds []query.Predicate) ([]model.MarketRecord, error) {
	m.record(endpoint, preds)
	if m.RecordsFunc != nil {
		return m.RecordsFunc(ctx, endpoint, preds)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	out := make([]model.MarketRecord, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

func (m *MockGateway) FetchDayTrades(ctx context.Context, preds []query.Predicate) ([]model.DayTrade, error) {
	m.record(query.EndpointItemMarketDayTrade, preds)
	if m.DayTradesFunc != nil {
		return m.DayTradesFunc(ctx, preds)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.DayTrades, nil
}

func (m *MockGateway) FetchItemNames(_ context.Context) ([]string, error) {
	m.record(query.EndpointUniqueItemName, nil)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Names, nil
}

func (m *MockGateway) FetchBestItems(_ context.Context) ([]model.BestItem, error) {
	m.record(query.EndpointBestItemsToBuy, nil)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.BestItems, nil
}

// GenerateRecords builds count records one minute apart ending at end,
// oscillating around basePrice.
func GenerateRecords(name string, itemID int64, basePrice float64, count int, end time.Time) []model.MarketRecord {
	records := make([]model.MarketRecord, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i%7-3)*0.002)
		qty := float64(1 + i%5)
		records[i] = model.MarketRecord{
			CreatedDate:  end.Add(-time.Duration(count-1-i) * time.Minute),
			ItemID:       itemID,
			Name:         name,
			Price:        p,
			AveragePrice: basePrice,
			Quantity:     &qty,
		}
	}
	return records
}

// GenerateDayTrades builds count daily OHLC rows ending on the date of end.
func GenerateDayTrades(basePrice float64, count int, end time.Time) []model.DayTrade {
	trades := make([]model.DayTrade, count)
	for i := 0; i < count; i++ {
		day := end.AddDate(0, 0, -(count - 1 - i))
		open := basePrice * (1 + float64(i%9-4)*0.003)
		closing := basePrice * (1 + float64((i+3)%9-4)*0.003)
		trades[i] = model.DayTrade{
			Date:  day.UTC().Format("2006-01-02"),
			Open:  open,
			High:  max(open, closing) * 1.004,
			Low:   min(open, closing) * 0.996,
			Close: closing,
		}
	}
	return trades
}

// NewDemoGateway returns a MockGateway preloaded with a day of sample data
// for a couple of items, used when no remote source is configured.
func NewDemoGateway(now time.Time) *MockGateway {
	return &MockGateway{
		Records:   GenerateRecords("Xanax", 206, 830000, 96, now),
		DayTrades: GenerateDayTrades(830000, 120, now),
		Names:     []string{"Xanax", "Ecstasy", "Box of Tissues", "Feathery Hotel Coupon", "Xanax"},
		BestItems: []model.BestItem{
			{Name: "Xanax", ItemID: 206, AvgActualPriceLastWeek: 830000, Margin: 12450, MarginPercent: 1.5},
			{Name: "Feathery Hotel Coupon", ItemID: 367, AvgActualPriceLastWeek: 11200000, Margin: 224000, MarginPercent: 2},
		},
	}
}
