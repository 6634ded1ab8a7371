package dashboard

import (
	"fmt"
	"strings"
	"time"

	"MarketLens/internal/model"
)

// EventKind names a user or internal transition of the dashboard.
type EventKind string

const (
	EventSetFilter         EventKind = "set_filter"
	EventApply             EventKind = "apply"
	EventSelectTimeframe   EventKind = "select_timeframe"
	EventSelectChart       EventKind = "select_chart"
	EventNavigateDays      EventKind = "navigate_days"
	EventResetFilters      EventKind = "reset_filters"
	EventToggleTable       EventKind = "toggle_table"
	EventToggleAutoRefresh EventKind = "toggle_auto_refresh"
	EventChartClick        EventKind = "chart_click"
	EventCalcSetBuy        EventKind = "calc_set_buy"
	EventCalcSetFee        EventKind = "calc_set_fee"
	EventCalcSetTarget     EventKind = "calc_set_target"
	EventCalcReset         EventKind = "calc_reset"
	EventToggleBestItems   EventKind = "toggle_best_items"
	EventSelectBestItem    EventKind = "select_best_item"

	eventRefresh         EventKind = "refresh"
	eventRecordsLoaded   EventKind = "records_loaded"
	eventCandlesLoaded   EventKind = "candles_loaded"
	eventBestItemsLoaded EventKind = "best_items_loaded"
)

// Event is a single input to the controller loop. Only the fields relevant
// to Kind are read.
type Event struct {
	Kind      EventKind       `json:"kind"`
	Filter    *FilterInput    `json:"filter,omitempty"`
	Timeframe model.Timeframe `json:"timeframe,omitempty"`
	ChartType model.ChartType `json:"chart_type,omitempty"`
	Days      int             `json:"days,omitempty"`
	Series    int             `json:"series,omitempty"`
	Index     int             `json:"index,omitempty"`
	Value     float64         `json:"value,omitempty"`
	ItemName  string          `json:"item_name,omitempty"`
	ItemID    int64           `json:"item_id,omitempty"`

	records *recordsResult
	candles *candlesResult
	best    *bestItemsResult
}

// FilterInput is the form representation of a filter: dates are
// "YYYY-MM-DD" and times "HH:MM", empty meaning unset.
type FilterInput struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	ItemName  string `json:"item_name"`
	ItemID    int64  `json:"item_id"`
}

const dateLayout = "2006-01-02"

// apply overlays the form fields on base, keeping its timeframe and chart type.
func (in FilterInput) apply(base model.Filter) (model.Filter, error) {
	f := base
	var err error
	if f.StartDate, err = parseDate(in.StartDate); err != nil {
		return base, fmt.Errorf("start date: %w", err)
	}
	if f.EndDate, err = parseDate(in.EndDate); err != nil {
		return base, fmt.Errorf("end date: %w", err)
	}
	f.StartTime = strings.TrimSpace(in.StartTime)
	f.EndTime = strings.TrimSpace(in.EndTime)
	f.ItemName = in.ItemName
	f.ItemID = in.ItemID
	return f, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
