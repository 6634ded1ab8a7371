package dashboard

import (
	"time"

	"MarketLens/internal/calculator"
	"MarketLens/internal/chart"
	"MarketLens/internal/model"
	"MarketLens/internal/notifier"
)

// StatusKind classifies the status line.
type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusLoading StatusKind = "loading"
	StatusInfo    StatusKind = "info"
	StatusError   StatusKind = "error"
)

// Status is the message shown in place of, or above, the chart.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}

// FilterView is the filter as the form displays it.
type FilterView struct {
	StartDate      string          `json:"start_date"`
	EndDate        string          `json:"end_date"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
	ItemName       string          `json:"item_name"`
	ItemID         int64           `json:"item_id,omitempty"`
	Timeframe      model.Timeframe `json:"timeframe"`
	ChartType      model.ChartType `json:"chart_type"`
	ShowTimePicker bool            `json:"show_time_picker"`
}

// BestItemsView is the state of the recommendations panel.
type BestItemsView struct {
	Open    bool                   `json:"open"`
	Loading bool                   `json:"loading"`
	Rows    []notifier.BestItemRow `json:"rows"`
	Message string                 `json:"message,omitempty"`
}

// Snapshot is an immutable copy of the dashboard state handed to readers
// outside the controller loop.
type Snapshot struct {
	Filter       FilterView         `json:"filter"`
	Status       Status             `json:"status"`
	RecordCount  int                `json:"record_count"`
	Chart        *chart.Dataset     `json:"chart"`
	Candlestick  *chart.Candlestick `json:"candlestick"`
	Table        []chart.Row        `json:"table"`
	TableVisible bool               `json:"table_visible"`
	AutoRefresh  bool               `json:"auto_refresh"`
	Calculator   calculator.Result  `json:"calculator"`
	BestItems    BestItemsView      `json:"best_items"`
	Generation   uint64             `json:"generation"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

func (c *Controller) snapshot() Snapshot {
	rows := make([]notifier.BestItemRow, len(c.best.rows))
	copy(rows, c.best.rows)
	table := make([]chart.Row, len(c.table))
	copy(table, c.table)

	return Snapshot{
		Filter: FilterView{
			StartDate:      formatDate(c.filter.StartDate),
			EndDate:        formatDate(c.filter.EndDate),
			StartTime:      c.filter.StartTime,
			EndTime:        c.filter.EndTime,
			ItemName:       c.filter.ItemName,
			ItemID:         c.filter.ItemID,
			Timeframe:      c.filter.Timeframe,
			ChartType:      c.filter.ChartType,
			ShowTimePicker: c.filter.Timeframe.Intraday(),
		},
		Status:       c.status,
		RecordCount:  len(c.records),
		Chart:        c.dataset,
		Candlestick:  c.candle,
		Table:        table,
		TableVisible: c.tableVisible,
		AutoRefresh:  c.refresher != nil && c.refresher.IsActive(),
		Calculator:   c.calc.Result(),
		BestItems: BestItemsView{
			Open:    c.best.open,
			Loading: c.best.loading,
			Rows:    rows,
			Message: c.best.message,
		},
		Generation: c.gen,
		UpdatedAt:  c.now(),
	}
}
