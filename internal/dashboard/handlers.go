package dashboard

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"MarketLens/internal/chart"
	"MarketLens/internal/model"
)

var (
	ErrInvalidTimeframe = errors.New("invalid timeframe")
	ErrInvalidChartType = errors.New("invalid chart type")
	ErrNoDataPoint      = errors.New("no data point at index")
	ErrMissingFilter    = errors.New("filter is required")
	ErrMissingItem      = errors.New("item name or id is required")
)

func (c *Controller) onSetFilter(ev Event) error {
	if ev.Filter == nil {
		return ErrMissingFilter
	}
	f, err := ev.Filter.apply(c.filter)
	if err != nil {
		return err
	}
	c.filter = f
	return nil
}

func (c *Controller) onApply(ev Event) error {
	if ev.Filter != nil {
		if err := c.onSetFilter(ev); err != nil {
			return err
		}
	}
	return c.startFetch(originUser)
}

func (c *Controller) onRefresh(Event) error {
	return c.startFetch(originRefresh)
}

func (c *Controller) onSelectTimeframe(ev Event) error {
	if !ev.Timeframe.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimeframe, ev.Timeframe)
	}
	c.filter.Timeframe = ev.Timeframe
	return c.startFetch(originUser)
}

func (c *Controller) onSelectChart(ev Event) error {
	if !ev.ChartType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidChartType, ev.ChartType)
	}
	c.filter.ChartType = ev.ChartType
	if ev.ChartType == model.ChartCandlestick {
		c.dataset = nil
		c.startCandles()
		return nil
	}
	// invalidates any day-trade fetch still in flight
	c.candleGen++
	c.candle = nil
	if len(c.records) > 0 {
		c.dataset = chart.BuildDataset(c.records, c.filter.ChartType, c.theme)
	}
	return nil
}

// onNavigateDays shifts the date range by whole multiples of its own length.
func (c *Controller) onNavigateDays(ev Event) error {
	if ev.Days == 0 {
		return nil
	}
	today := c.today()
	start, end := c.filter.StartDate, c.filter.EndDate
	if start.IsZero() {
		start = today
	}
	if end.IsZero() {
		end = today
	}

	span := int(end.Sub(start)/(24*time.Hour)) + 1
	shift := ev.Days * span
	newStart := start.AddDate(0, 0, shift)
	newEnd := end.AddDate(0, 0, shift)
	if span == 1 {
		newEnd = newStart
	}
	c.filter.StartDate, c.filter.EndDate = newStart, newEnd

	log.Debug().
		Str("start", formatDate(newStart)).
		Str("end", formatDate(newEnd)).
		Int("span", span).
		Msg("navigate days")
	return c.startFetch(originUser)
}

func (c *Controller) onResetFilters(Event) error {
	today := c.today()
	c.filter = model.Filter{
		StartDate: today,
		EndDate:   today,
		Timeframe: model.TimeframeDay,
		ChartType: c.filter.ChartType,
	}
	err := c.startFetch(originUser)
	if c.refresher != nil && c.refresher.IsActive() {
		c.refresher.Disable()
	}
	return err
}

func (c *Controller) onToggleTable(Event) error {
	c.tableVisible = !c.tableVisible
	return nil
}

func (c *Controller) onToggleAutoRefresh(Event) error {
	if c.refresher == nil {
		return errors.New("auto-refresh is not configured")
	}
	if c.refresher.IsActive() {
		c.refresher.Disable()
		return nil
	}
	return c.refresher.Enable()
}

func (c *Controller) onChartClick(ev Event) error {
	price, ok := chart.PointAt(c.dataset, ev.Series, ev.Index)
	if !ok {
		return fmt.Errorf("%w: series %d index %d", ErrNoDataPoint, ev.Series, ev.Index)
	}
	c.calc.ApplyClick(price)
	return nil
}

func (c *Controller) onCalcSetBuy(ev Event) error {
	return c.calc.SetBuyPrice(ev.Value)
}

func (c *Controller) onCalcSetFee(ev Event) error {
	return c.calc.SetFeePercent(ev.Value)
}

func (c *Controller) onCalcSetTarget(ev Event) error {
	return c.calc.SetTargetPrice(ev.Value)
}

func (c *Controller) onCalcReset(Event) error {
	c.calc.Reset()
	return nil
}

func (c *Controller) onToggleBestItems(Event) error {
	c.best.open = !c.best.open
	if c.best.open {
		c.startBestItems()
	}
	return nil
}

func (c *Controller) onSelectBestItem(ev Event) error {
	name := strings.TrimSpace(ev.ItemName)
	if name == "" && ev.ItemID == 0 {
		return ErrMissingItem
	}
	c.filter.ItemName = name
	c.filter.ItemID = ev.ItemID
	c.best.open = false
	return c.startFetch(originUser)
}
