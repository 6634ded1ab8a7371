package chart

import (
	"MarketLens/internal/common"
	"MarketLens/internal/model"
)

// Candlestick is an amCharts serial chart configuration over daily trades.
type Candlestick struct {
	Type           string           `json:"type"`
	Theme          string           `json:"theme"`
	DataDateFormat string           `json:"dataDateFormat"`
	CategoryField  string           `json:"categoryField"`
	DataProvider   []model.DayTrade `json:"dataProvider"`
	Graph          CandleGraph      `json:"graph"`
	ZoomStart      int              `json:"zoomStart"`
	ZoomEnd        int              `json:"zoomEnd"`
}

// CandleGraph binds the OHLC fields of the data provider.
type CandleGraph struct {
	OpenField       string `json:"openField"`
	HighField       string `json:"highField"`
	LowField        string `json:"lowField"`
	CloseField      string `json:"closeField"`
	ValueField      string `json:"valueField"`
	LineColor       string `json:"lineColor"`
	FillColors      string `json:"fillColors"`
	NegativeColor   string `json:"negativeLineColor"`
	NegativeFill    string `json:"negativeFillColors"`
	BalloonText     string `json:"balloonText"`
	FillAlphas      int    `json:"fillAlphas"`
	ScrollbarAccent string `json:"scrollbarColor"`
}

// BuildCandlestick wraps trades in a candlestick view zoomed to the most
// recent window. It returns nil for an empty series.
func BuildCandlestick(trades []model.DayTrade, theme Theme) *Candlestick {
	n := len(trades)
	if n == 0 {
		return nil
	}
	data := make([]model.DayTrade, n)
	copy(data, trades)

	return &Candlestick{
		Type:           "serial",
		Theme:          "light",
		DataDateFormat: "YYYY-MM-DD",
		CategoryField:  "date",
		DataProvider:   data,
		Graph: CandleGraph{
			OpenField:       "open",
			HighField:       "high",
			LowField:        "low",
			CloseField:      "close",
			ValueField:      "close",
			LineColor:       theme.CandleUp,
			FillColors:      theme.CandleUp,
			NegativeColor:   theme.CandleDown,
			NegativeFill:    theme.CandleDown,
			BalloonText:     "Open:<b>[[open]]</b><br>Low:<b>[[low]]</b><br>High:<b>[[high]]</b><br>Close:<b>[[close]]</b><br>",
			FillAlphas:      1,
			ScrollbarAccent: theme.ScrollbarAccent,
		},
		ZoomStart: max(0, n-common.CandlestickWindow),
		ZoomEnd:   n - 1,
	}
}
