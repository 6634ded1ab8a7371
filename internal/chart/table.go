package chart

import (
	"fmt"
	"strconv"

	"github.com/samber/lo"

	"MarketLens/internal/model"
)

// Row is one line of the data table.
type Row struct {
	Time         string `json:"time"`
	ItemID       int64  `json:"item_id"`
	Name         string `json:"name"`
	AveragePrice string `json:"average_price"`
	Price        string `json:"price"`
	Quantity     string `json:"quantity"`
}

// BuildTable renders records newest first.
func BuildTable(records []model.MarketRecord) []Row {
	return lo.Map(SortDescending(records), func(r model.MarketRecord, _ int) Row {
		return Row{
			Time:         r.CreatedDate.UTC().Format("2006-01-02 15:04"),
			ItemID:       r.ItemID,
			Name:         r.Name,
			AveragePrice: fmt.Sprintf("$%.2f", r.AveragePrice),
			Price:        fmt.Sprintf("$%.2f", r.Price),
			Quantity:     strconv.FormatFloat(r.Qty(), 'f', -1, 64),
		}
	})
}
