package chart

import (
	"fmt"
	"slices"
	"time"

	"github.com/samber/lo"

	"MarketLens/internal/model"
)

// Point is one (timestamp, value, quantity) sample of a series.
type Point struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
	Z float64   `json:"z"`
}

// Series is a Chart.js dataset.
type Series struct {
	Label                string  `json:"label"`
	Data                 []Point `json:"data"`
	BackgroundColor      string  `json:"backgroundColor"`
	BorderColor          string  `json:"borderColor"`
	BorderWidth          int     `json:"borderWidth"`
	PointBackgroundColor string  `json:"pointBackgroundColor"`
	PointBorderColor     string  `json:"pointBorderColor"`
	PointRadius          int     `json:"pointRadius"`
	PointHoverRadius     int     `json:"pointHoverRadius"`
	Tension              float64 `json:"tension"`
	Fill                 bool    `json:"fill"`
	ShowLine             bool    `json:"showLine"`
}

// Data is the data block of a Chart.js configuration.
type Data struct {
	Labels   []string `json:"labels"`
	Datasets []Series `json:"datasets"`
}

// Dataset is a complete Chart.js configuration for the price chart. It is
// rebuilt on every render and never shares storage with the source records.
type Dataset struct {
	Type    model.ChartType `json:"type"`
	Data    Data            `json:"data"`
	Options map[string]any  `json:"options"`
}

// Series indexes within Dataset.Data.Datasets.
const (
	SeriesPrice   = 0
	SeriesAverage = 1
)

// SortAscending returns a copy of records ordered oldest first.
func SortAscending(records []model.MarketRecord) []model.MarketRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b model.MarketRecord) int {
		return a.CreatedDate.Compare(b.CreatedDate)
	})
	return out
}

// SortDescending returns a copy of records ordered newest first.
func SortDescending(records []model.MarketRecord) []model.MarketRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b model.MarketRecord) int {
		return b.CreatedDate.Compare(a.CreatedDate)
	})
	return out
}

// BuildDataset builds the line, bar or scatter configuration for records.
// It returns nil when there is nothing to draw or the chart type is drawn
// by the candlestick path.
func BuildDataset(records []model.MarketRecord, chartType model.ChartType, theme Theme) *Dataset {
	if len(records) == 0 || chartType == model.ChartCandlestick {
		return nil
	}
	if !chartType.Valid() {
		chartType = model.ChartLine
	}

	sorted := SortAscending(records)
	scatter := chartType == model.ChartScatter

	labels := []string{}
	if !scatter {
		labels = lo.Map(sorted, func(r model.MarketRecord, _ int) string {
			return AxisLabel(r.CreatedDate)
		})
	}

	name := sorted[0].Name
	if name == "" {
		name = "Item"
	}

	price := newSeries(chartType, theme, name+" Price ($)", theme.PriceColor)
	price.Data = lo.Map(sorted, func(r model.MarketRecord, _ int) Point {
		return Point{X: r.CreatedDate.UTC(), Y: r.Price, Z: rawQuantity(r)}
	})
	avg := newSeries(chartType, theme, name+" Average Price ($)", theme.AverageColor)
	avg.Data = lo.Map(sorted, func(r model.MarketRecord, _ int) Point {
		return Point{X: r.CreatedDate.UTC(), Y: r.AveragePrice, Z: rawQuantity(r)}
	})

	return &Dataset{
		Type:    chartType,
		Data:    Data{Labels: labels, Datasets: []Series{price, avg}},
		Options: theme.options(scatter),
	}
}

func newSeries(chartType model.ChartType, theme Theme, label, color string) Series {
	s := Series{
		Label:                label,
		BackgroundColor:      theme.FillColor,
		BorderColor:          color,
		BorderWidth:          2,
		PointBackgroundColor: theme.PointFill,
		PointBorderColor:     color,
		PointRadius:          4,
		PointHoverRadius:     6,
		ShowLine:             true,
	}
	switch chartType {
	case model.ChartLine:
		s.Tension = 0.1
		s.Fill = true
	case model.ChartBar:
		s.BackgroundColor = theme.BarFillColor
	case model.ChartScatter:
		s.BorderWidth = 1
		s.PointRadius = 5
		s.ShowLine = false
	}
	return s
}

// AxisLabel formats a timestamp as the compact M/D H:MM category label (UTC).
func AxisLabel(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%d/%d %d:%02d", int(t.Month()), t.Day(), t.Hour(), t.Minute())
}

// PointAt returns the price of the sample at index of the chart view. Clicks
// on the average series resolve to the instantaneous price at the same index.
func PointAt(ds *Dataset, series, index int) (float64, bool) {
	if ds == nil || series < 0 || series >= len(ds.Data.Datasets) {
		return 0, false
	}
	pts := ds.Data.Datasets[SeriesPrice].Data
	if index < 0 || index >= len(pts) {
		return 0, false
	}
	return pts[index].Y, true
}

// rawQuantity is the quantity as reported, zero when the source omitted it.
func rawQuantity(r model.MarketRecord) float64 {
	if r.Quantity == nil {
		return 0
	}
	return *r.Quantity
}
