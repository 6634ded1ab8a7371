package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEndpointFor(t *testing.T) {
	tests := []struct {
		tf   model.Timeframe
		want string
	}{
		{model.Timeframe1m, EndpointItemMarket},
		{model.Timeframe5m, EndpointItemMarket5m},
		{model.Timeframe15m, EndpointItemMarket15m},
		{model.Timeframe30m, EndpointItemMarket30m},
		{model.Timeframe1h, EndpointItemMarket1h},
		{model.TimeframeDay, EndpointItemMarketDay},
		{"", EndpointItemMarketDay},
		{"4h", EndpointItemMarketDay},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EndpointFor(tt.tf), "timeframe %q", tt.tf)
	}
}

func TestBuild_MissingItem(t *testing.T) {
	_, preds, err := Build(model.Filter{Timeframe: model.Timeframe15m}, fixedNow)
	require.ErrorIs(t, err, ErrMissingItem)
	assert.Nil(t, preds)
}

func TestBuild_DayIgnoresTimeOfDay(t *testing.T) {
	f := model.Filter{
		StartDate: date(2025, 3, 1),
		EndDate:   date(2025, 3, 2),
		StartTime: "08:30",
		EndTime:   "17:45",
		ItemName:  "Xanax",
		Timeframe: model.TimeframeDay,
	}
	endpoint, preds, err := Build(f, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, EndpointItemMarketDay, endpoint)
	require.Len(t, preds, 3)
	assert.Equal(t, Predicate{"createddate", OpGte, "2025-03-01T00:00:00.000Z"}, preds[0])
	assert.Equal(t, Predicate{"createddate", OpLte, "2025-03-02T23:59:59.999Z"}, preds[1])
	assert.Equal(t, Predicate{"name", OpEq, "Xanax"}, preds[2])
}

func TestBuild_IntradayTimeOverrides(t *testing.T) {
	f := model.Filter{
		StartDate: date(2025, 3, 1),
		EndDate:   date(2025, 3, 1),
		StartTime: "08:30",
		EndTime:   "17:45",
		ItemID:    206,
		Timeframe: model.Timeframe5m,
	}
	endpoint, preds, err := Build(f, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, EndpointItemMarket5m, endpoint)
	require.Len(t, preds, 3)
	assert.Equal(t, "2025-03-01T08:30:00.000Z", preds[0].Value)
	assert.Equal(t, "2025-03-01T17:45:59.999Z", preds[1].Value)
	assert.Equal(t, Predicate{"item_id", OpEq, "206"}, preds[2])
}

func TestBuild_IntradayWithoutTimes(t *testing.T) {
	f := model.Filter{ItemName: "Xanax", ItemID: 206, Timeframe: model.Timeframe1h}
	_, preds, err := Build(f, fixedNow)
	require.NoError(t, err)

	require.Len(t, preds, 4)
	assert.Equal(t, "2025-03-14T00:00:00.000Z", preds[0].Value)
	assert.Equal(t, "2025-03-14T23:59:59.999Z", preds[1].Value)
	assert.Equal(t, "name", preds[2].Field)
	assert.Equal(t, "item_id", preds[3].Field)
}

func TestBuild_InvalidTime(t *testing.T) {
	f := model.Filter{ItemName: "Xanax", Timeframe: model.Timeframe15m, StartTime: "8h"}
	_, _, err := Build(f, fixedNow)
	assert.Error(t, err)
}

func TestItemPredicates_TrimsName(t *testing.T) {
	preds := ItemPredicates(model.Filter{ItemName: "  Feathery Hotel Coupon "})
	require.Len(t, preds, 1)
	assert.Equal(t, "Feathery Hotel Coupon", preds[0].Value)
}

func TestEncode(t *testing.T) {
	preds := []Predicate{
		{"createddate", OpGte, "2025-03-01T00:00:00.000Z"},
		{"name", OpEq, "Feathery Hotel Coupon"},
		{"item_id", OpEq, "367"},
	}
	got := Encode(preds)
	assert.Equal(t,
		"createddate=gte.2025-03-01T00:00:00.000Z&name=eq.Feathery%20Hotel%20Coupon&item_id=eq.367",
		got)
}

func TestEncodeURI_NonASCII(t *testing.T) {
	assert.Equal(t, "name=eq.Caf%C3%A9%25", EncodeURI("name=eq.Café%"))
}
