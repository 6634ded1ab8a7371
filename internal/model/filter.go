package model

import "time"

// Timeframe selects the granularity of the market series.
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	TimeframeDay Timeframe = "day"
)

// Valid reports whether t is one of the known timeframes.
func (t Timeframe) Valid() bool {
	return t == TimeframeDay || t.Intraday()
}

// Intraday reports whether the timeframe honours time-of-day bounds.
func (t Timeframe) Intraday() bool {
	switch t {
	case Timeframe1m, Timeframe5m, Timeframe15m, Timeframe30m, Timeframe1h:
		return true
	}
	return false
}

// ChartType selects how the series is drawn.
type ChartType string

const (
	ChartLine        ChartType = "line"
	ChartBar         ChartType = "bar"
	ChartScatter     ChartType = "scatter"
	ChartCandlestick ChartType = "candlestick"
)

// Valid reports whether c is one of the known chart types.
func (c ChartType) Valid() bool {
	switch c {
	case ChartLine, ChartBar, ChartScatter, ChartCandlestick:
		return true
	}
	return false
}

// Filter is the user's current query intent.
type Filter struct {
	StartDate time.Time `json:"start_date"` // zero means today
	EndDate   time.Time `json:"end_date"`   // zero means today
	StartTime string    `json:"start_time"` // "HH:MM", optional
	EndTime   string    `json:"end_time"`   // "HH:MM", optional
	ItemName  string    `json:"item_name"`
	ItemID    int64     `json:"item_id"` // 0 means unset
	Timeframe Timeframe `json:"timeframe"`
	ChartType ChartType `json:"chart_type"`
}

// HasItem reports whether the filter names an item, which a fetch requires.
func (f Filter) HasItem() bool {
	return f.ItemName != "" || f.ItemID != 0
}
