package chart

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketLens/internal/model"
)

func rec(ts string, price, avg float64) model.MarketRecord {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return model.MarketRecord{CreatedDate: t, ItemID: 7, Name: "Xanax", Price: price, AveragePrice: avg}
}

func sample() []model.MarketRecord {
	return []model.MarketRecord{
		rec("2025-03-02T10:00:00Z", 12, 11),
		rec("2025-03-01T09:05:00Z", 10, 9),
		rec("2025-03-03T23:59:00Z", 14, 13),
	}
}

func TestBuildDataset_SortsCopyAscending(t *testing.T) {
	src := sample()
	before := append([]model.MarketRecord(nil), src...)

	ds := BuildDataset(src, model.ChartLine, DefaultTheme)
	require.NotNil(t, ds)

	assert.Equal(t, before, src, "source records must not be reordered")
	assert.Equal(t, []string{"3/1 9:05", "3/2 10:00", "3/3 23:59"}, ds.Data.Labels)
	require.Len(t, ds.Data.Datasets, 2)
	assert.Equal(t, "Xanax Price ($)", ds.Data.Datasets[SeriesPrice].Label)
	assert.Equal(t, "Xanax Average Price ($)", ds.Data.Datasets[SeriesAverage].Label)

	prices := ds.Data.Datasets[SeriesPrice].Data
	assert.Equal(t, []float64{10, 12, 14}, []float64{prices[0].Y, prices[1].Y, prices[2].Y})
	assert.Zero(t, prices[0].Z)
	assert.True(t, ds.Data.Datasets[SeriesPrice].Fill)
}

func TestBuildDataset_RawQuantity(t *testing.T) {
	zero, three := 0.0, 3.0
	src := sample()
	src[1].Quantity = &zero
	src[2].Quantity = &three

	ds := BuildDataset(src, model.ChartScatter, DefaultTheme)
	require.NotNil(t, ds)
	prices := ds.Data.Datasets[SeriesPrice].Data
	assert.Equal(t, []float64{0, 0, 3}, []float64{prices[0].Z, prices[1].Z, prices[2].Z})

	rows := BuildTable(src)
	assert.Equal(t, []string{"3", "1", "1"}, []string{rows[0].Quantity, rows[1].Quantity, rows[2].Quantity})
}

func TestBuildDataset_Idempotent(t *testing.T) {
	src := sample()
	a, err := json.Marshal(BuildDataset(src, model.ChartBar, DefaultTheme))
	require.NoError(t, err)
	b, err := json.Marshal(BuildDataset(src, model.ChartBar, DefaultTheme))
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestBuildDataset_ScatterHasNoLabels(t *testing.T) {
	ds := BuildDataset(sample(), model.ChartScatter, DefaultTheme)
	require.NotNil(t, ds)
	assert.Empty(t, ds.Data.Labels)
	assert.False(t, ds.Data.Datasets[SeriesPrice].ShowLine)

	raw, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"labels":[]`)
	assert.Contains(t, string(raw), `"type":"time"`)
}

func TestBuildDataset_Empty(t *testing.T) {
	assert.Nil(t, BuildDataset(nil, model.ChartLine, DefaultTheme))
	assert.Nil(t, BuildDataset(sample(), model.ChartCandlestick, DefaultTheme))
}

func TestBuildDataset_UnnamedItem(t *testing.T) {
	r := rec("2025-03-01T00:00:00Z", 1, 1)
	r.Name = ""
	ds := BuildDataset([]model.MarketRecord{r}, model.ChartLine, DefaultTheme)
	require.NotNil(t, ds)
	assert.Equal(t, "Item Price ($)", ds.Data.Datasets[SeriesPrice].Label)
}

func TestPointAt(t *testing.T) {
	ds := BuildDataset(sample(), model.ChartLine, DefaultTheme)

	p, ok := PointAt(ds, SeriesPrice, 2)
	require.True(t, ok)
	assert.Equal(t, 14.0, p)

	p, ok = PointAt(ds, SeriesAverage, 0)
	require.True(t, ok)
	assert.Equal(t, 10.0, p, "average series clicks resolve to the price")

	_, ok = PointAt(ds, SeriesPrice, 3)
	assert.False(t, ok)
	_, ok = PointAt(nil, SeriesPrice, 0)
	assert.False(t, ok)
}

func TestBuildTable_Descending(t *testing.T) {
	src := sample()
	q := 3.5
	src[0].Quantity = &q

	rows := BuildTable(src)
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-03-03 23:59", rows[0].Time)
	assert.Equal(t, "2025-03-02 10:00", rows[1].Time)
	assert.Equal(t, "2025-03-01 09:05", rows[2].Time)
	assert.Equal(t, "$12.00", rows[1].Price)
	assert.Equal(t, "$11.00", rows[1].AveragePrice)
	assert.Equal(t, "3.5", rows[1].Quantity)
	assert.Equal(t, "1", rows[0].Quantity)
	assert.Equal(t, int64(7), rows[0].ItemID)

	// chart and table views do not disturb each other
	ds := BuildDataset(src, model.ChartLine, DefaultTheme)
	assert.Equal(t, "3/1 9:05", ds.Data.Labels[0])
	assert.Equal(t, "2025-03-03 23:59", BuildTable(src)[0].Time)
}

func TestBuildCandlestick_ZoomWindow(t *testing.T) {
	trades := make([]model.DayTrade, 80)
	for i := range trades {
		trades[i] = model.DayTrade{Date: "2025-01-01", Open: 1, High: 2, Low: 0.5, Close: 1.5}
	}
	c := BuildCandlestick(trades, DefaultTheme)
	require.NotNil(t, c)
	assert.Equal(t, 30, c.ZoomStart)
	assert.Equal(t, 79, c.ZoomEnd)
	assert.Len(t, c.DataProvider, 80)

	c = BuildCandlestick(trades[:10], DefaultTheme)
	assert.Equal(t, 0, c.ZoomStart)
	assert.Equal(t, 9, c.ZoomEnd)

	assert.Nil(t, BuildCandlestick(nil, DefaultTheme))
}
