package notifier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"MarketLens/internal/model"
)

// Status lines shown above the chart.
const (
	StatusLoading           = "Loading market data..."
	StatusNoData            = "No data found with current filters."
	StatusNoCandlestick     = "No data available for candlestick chart"
	StatusBestItemsEmpty    = "No profitable items found"
	StatusBestItemsFailed   = "Error loading items. Please try again."
	statusLoadErrorPrefix   = "Error loading data: "
	statusCandleErrorPrefix = "Error loading candlestick data: "
)

// FormatLoadError renders a failed pipeline run for the status line.
func FormatLoadError(err error) string {
	return statusLoadErrorPrefix + err.Error()
}

// FormatCandlestickError renders a failed daily-trade fetch.
func FormatCandlestickError(err error) string {
	return statusCandleErrorPrefix + err.Error()
}

// FormatRubles renders an amount as ₽ with thousands separators and cents.
func FormatRubles(v float64) string {
	return "₽" + humanize.FormatFloat("#,###.##", v)
}

// FormatMarginPercent renders a margin percent with an explicit plus sign.
func FormatMarginPercent(v float64) string {
	return "+" + strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// BestItemRow is a display-ready best-items panel entry.
type BestItemRow struct {
	Name          string `json:"name"`
	ItemID        int64  `json:"item_id"`
	AvgPrice      string `json:"avg_price"`
	Margin        string `json:"margin"`
	MarginPercent string `json:"margin_percent"`
}

// FormatBestItems converts recommendations into panel rows.
func FormatBestItems(items []model.BestItem) []BestItemRow {
	rows := make([]BestItemRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, BestItemRow{
			Name:          it.Name,
			ItemID:        it.ItemID,
			AvgPrice:      FormatRubles(it.AvgActualPriceLastWeek),
			Margin:        FormatRubles(it.Margin),
			MarginPercent: FormatMarginPercent(it.MarginPercent),
		})
	}
	return rows
}

// FormatPriceHit formats the notification for a record whose average price
// reached its instantaneous price.
func FormatPriceHit(r model.MarketRecord) string {
	var b strings.Builder
	b.WriteString("price hit")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf(": %s (#%d)", r.Name, r.ItemID))
	}
	b.WriteString(fmt.Sprintf(" average %.2f >= price %.2f at %s",
		r.AveragePrice, r.Price, r.CreatedDate.UTC().Format("2006-01-02 15:04")))
	return b.String()
}
