package model

import "time"

// MarketRecord is a single time-stamped market observation for an item.
type MarketRecord struct {
	CreatedDate  time.Time `json:"createddate"`
	ItemID       int64     `json:"item_id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	AveragePrice float64   `json:"average_price"`
	Quantity     *float64  `json:"quantity,omitempty"`
}

// Qty returns the quantity shown in the table: 1 when the source omitted it
// or reported zero.
func (r MarketRecord) Qty() float64 {
	if r.Quantity == nil || *r.Quantity == 0 {
		return 1
	}
	return *r.Quantity
}

// DayTrade is one per-day OHLC row of the daily-trade endpoint.
type DayTrade struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Open  float64 `json:"open"`
	High  float64 `json:"high"`
	Low   float64 `json:"low"`
	Close float64 `json:"close"`
}

// BestItem is a buy recommendation returned by the best-items endpoint.
type BestItem struct {
	Name                   string  `json:"name"`
	ItemID                 int64   `json:"item_id"`
	AvgActualPriceLastWeek float64 `json:"avg_actual_price_last_week"`
	Margin                 float64 `json:"margin"`
	MarginPercent          float64 `json:"margin_percent"`
}

// ItemName is a row of the unique item name endpoint.
type ItemName struct {
	Name string `json:"name"`
}
