package chart

// Theme holds the fixed colours of the price chart.
type Theme struct {
	PriceColor      string
	AverageColor    string
	FillColor       string
	BarFillColor    string
	PointFill       string
	TextColor       string
	GridColor       string
	TooltipBG       string
	TooltipTitle    string
	TooltipBorder   string
	CandleUp        string
	CandleDown      string
	ScrollbarAccent string
}

// DefaultTheme is the dark dashboard palette.
var DefaultTheme = Theme{
	PriceColor:      "rgba(255, 126, 95, 1)",
	AverageColor:    "rgba(0, 0, 255, 1)",
	FillColor:       "rgba(255, 126, 95, 0.2)",
	BarFillColor:    "rgba(255, 126, 95, 0.7)",
	PointFill:       "rgba(255, 255, 255, 1)",
	TextColor:       "#f0f0f0",
	GridColor:       "rgba(255, 255, 255, 0.1)",
	TooltipBG:       "rgba(30, 30, 50, 0.95)",
	TooltipTitle:    "#ff7e5f",
	TooltipBorder:   "rgba(255, 126, 95, 0.8)",
	CandleUp:        "#7f8da9",
	CandleDown:      "#db4c3c",
	ScrollbarAccent: "#ff7e5f",
}

// options returns the Chart.js options block for the given chart type.
func (t Theme) options(scatter bool) map[string]any {
	xScale := map[string]any{
		"type": "category",
		"grid": map[string]any{"color": t.GridColor, "drawOnChartArea": true},
		"ticks": map[string]any{
			"color": t.TextColor, "maxRotation": 45, "minRotation": 45,
			"autoSkip": true, "maxTicksLimit": 10,
		},
		"title": map[string]any{"display": false, "text": "Date", "color": t.TextColor},
	}
	if scatter {
		xScale["type"] = "time"
		xScale["time"] = map[string]any{
			"unit":           "day",
			"tooltipFormat":  "MMM d, yyyy HH:mm",
			"displayFormats": map[string]any{"hour": "HH:mm"},
		}
		xScale["grid"] = map[string]any{"color": t.GridColor, "drawOnChartArea": false}
		xScale["title"] = map[string]any{"display": true, "text": "Date", "color": t.TextColor}
	}

	return map[string]any{
		"responsive":          true,
		"maintainAspectRatio": false,
		"animation":           map[string]any{"duration": 800},
		"plugins": map[string]any{
			"legend": map[string]any{
				"labels": map[string]any{
					"color":   t.TextColor,
					"font":    map[string]any{"weight": "bold"},
					"padding": 20,
				},
			},
			"tooltip": map[string]any{
				"backgroundColor": t.TooltipBG,
				"titleColor":      t.TooltipTitle,
				"bodyColor":       t.TextColor,
				"borderColor":     t.TooltipBorder,
				"borderWidth":     1,
				"padding":         12,
			},
			"zoom": map[string]any{
				"pan": map[string]any{"enabled": true, "mode": "xy", "threshold": 5},
				"zoom": map[string]any{
					"wheel": map[string]any{"enabled": true, "speed": 0.1},
					"pinch": map[string]any{"enabled": true},
					"mode":  "xy",
				},
				"limits": map[string]any{
					"y": map[string]any{"min": 0, "max": "original", "minRange": 10},
				},
			},
		},
		"scales": map[string]any{
			"x": xScale,
			"y": map[string]any{
				"beginAtZero": false,
				"grid":        map[string]any{"color": t.GridColor},
				"ticks":       map[string]any{"color": t.TextColor},
				"title": map[string]any{
					"display": true, "text": "Price ($)", "color": t.TextColor,
					"font": map[string]any{"weight": "bold"},
				},
			},
		},
		"interaction": map[string]any{"intersect": false, "mode": "nearest"},
	}
}
