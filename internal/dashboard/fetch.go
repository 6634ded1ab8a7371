package dashboard

import (
	"errors"
	"slices"

	"github.com/rs/zerolog/log"

	"MarketLens/internal/chart"
	"MarketLens/internal/common"
	"MarketLens/internal/model"
	"MarketLens/internal/notifier"
	"MarketLens/internal/query"
)

type fetchOrigin int

const (
	originUser fetchOrigin = iota
	originRefresh
)

type recordsResult struct {
	gen     uint64
	origin  fetchOrigin
	records []model.MarketRecord
	err     error
}

type candlesResult struct {
	gen    uint64
	trades []model.DayTrade
	err    error
}

type bestItemsResult struct {
	gen   uint64
	items []model.BestItem
	err   error
}

// startFetch issues a market-data request for the current filter. A filter
// without an item is a silent no-op.
func (c *Controller) startFetch(origin fetchOrigin) error {
	endpoint, preds, err := query.Build(c.filter, c.now())
	if errors.Is(err, query.ErrMissingItem) {
		return nil
	}
	if err != nil {
		log.Error().Err(err).
			Str("error_code", common.ErrCodeInvalidFilter.String()).
			Str("error_message", common.ErrMsgInvalidFilter.String()).
			Msg("build query")
		c.status = Status{Kind: StatusError, Message: notifier.FormatLoadError(err)}
		return err
	}

	c.gen++
	gen := c.gen
	c.status = Status{Kind: StatusLoading, Message: notifier.StatusLoading}

	ctx := c.context()
	go func() {
		records, err := c.gw.FetchRecords(ctx, endpoint, preds)
		c.post(Event{Kind: eventRecordsLoaded, records: &recordsResult{
			gen: gen, origin: origin, records: records, err: err,
		}})
	}()
	log.Debug().Uint64("generation", gen).Str("endpoint", endpoint).Msg("fetch started")
	return nil
}

func (c *Controller) onRecordsLoaded(ev Event) error {
	res := ev.records
	if res == nil {
		return nil
	}
	if res.gen != c.gen {
		log.Debug().
			Str("error_code", common.ErrCodeStaleFetchDiscard.String()).
			Uint64("generation", res.gen).
			Uint64("latest", c.gen).
			Msg(common.ErrMsgStaleFetchDiscard.String())
		return nil
	}

	if res.err != nil {
		log.Error().Err(res.err).
			Str("error_code", common.ErrCodeFetchFailed.String()).
			Str("error_message", common.ErrMsgFetchFailed.String()).
			Msg("fetch market data")
		c.status = Status{Kind: StatusError, Message: notifier.FormatLoadError(res.err)}
		return nil
	}

	c.records = res.records
	if res.origin == originRefresh && len(c.records) > 0 {
		go notifier.CheckPriceCrossing(c.context(), c.notifier, slices.Clone(c.records[:1]))
	}

	if len(c.records) == 0 {
		c.status = Status{Kind: StatusInfo, Message: notifier.StatusNoData}
		c.dataset = nil
		c.table = nil
		c.candle = nil
		return nil
	}

	c.status = Status{}
	c.render()
	if c.filter.ChartType == model.ChartCandlestick {
		c.startCandles()
	}
	log.Info().Int("records", len(c.records)).Uint64("generation", res.gen).Msg("market data loaded")
	return nil
}

// render rebuilds the chart and table views from the current records.
func (c *Controller) render() {
	c.dataset = chart.BuildDataset(c.records, c.filter.ChartType, c.theme)
	c.table = chart.BuildTable(c.records)
}

// startCandles requests the daily OHLC series for the current item.
func (c *Controller) startCandles() {
	if len(c.records) == 0 {
		c.status = Status{Kind: StatusInfo, Message: notifier.StatusNoCandlestick}
		c.candle = nil
		return
	}
	preds := query.ItemPredicates(c.filter)
	if len(preds) == 0 {
		return
	}

	c.candleGen++
	gen := c.candleGen
	ctx := c.context()
	go func() {
		trades, err := c.gw.FetchDayTrades(ctx, preds)
		c.post(Event{Kind: eventCandlesLoaded, candles: &candlesResult{gen: gen, trades: trades, err: err}})
	}()
}

func (c *Controller) onCandlesLoaded(ev Event) error {
	res := ev.candles
	if res == nil || res.gen != c.candleGen || c.filter.ChartType != model.ChartCandlestick {
		return nil
	}
	if res.err != nil {
		log.Error().Err(res.err).
			Str("error_code", common.ErrCodeCandlestickFailed.String()).
			Str("error_message", common.ErrMsgCandlestickFailed.String()).
			Msg("fetch day trades")
		c.status = Status{Kind: StatusError, Message: notifier.FormatCandlestickError(res.err)}
		return nil
	}
	c.candle = chart.BuildCandlestick(res.trades, c.theme)
	if c.candle == nil {
		c.status = Status{Kind: StatusInfo, Message: notifier.StatusNoCandlestick}
	}
	return nil
}

func (c *Controller) startBestItems() {
	c.best.gen++
	gen := c.best.gen
	c.best.loading = true
	c.best.message = ""

	ctx := c.context()
	go func() {
		items, err := c.gw.FetchBestItems(ctx)
		c.post(Event{Kind: eventBestItemsLoaded, best: &bestItemsResult{gen: gen, items: items, err: err}})
	}()
}

func (c *Controller) onBestItemsLoaded(ev Event) error {
	res := ev.best
	if res == nil || res.gen != c.best.gen {
		return nil
	}
	c.best.loading = false
	if res.err != nil {
		log.Error().Err(res.err).
			Str("error_code", common.ErrCodeBestItemsFailed.String()).
			Str("error_message", common.ErrMsgBestItemsFailed.String()).
			Msg("fetch best items")
		c.best.rows = nil
		c.best.message = notifier.StatusBestItemsFailed
		return nil
	}
	c.best.rows = notifier.FormatBestItems(res.items)
	if len(c.best.rows) == 0 {
		c.best.message = notifier.StatusBestItemsEmpty
	}
	return nil
}
