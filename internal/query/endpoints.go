package query

import "MarketLens/internal/model"

// Remote endpoint identifiers.
const (
	EndpointItemMarket         = "item_market"
	EndpointItemMarket5m       = "item_market_5m"
	EndpointItemMarket15m      = "item_market_15m"
	EndpointItemMarket30m      = "item_market_30m"
	EndpointItemMarket1h       = "item_market_1h"
	EndpointItemMarketDay      = "item_market_day"
	EndpointItemMarketDayTrade = "item_market_day_trade"
	EndpointUniqueItemName     = "unique_item_market_name"
	EndpointBestItemsToBuy     = "best_items_to_buy"
)

var timeframeEndpoints = map[model.Timeframe]string{
	model.Timeframe1m:  EndpointItemMarket,
	model.Timeframe5m:  EndpointItemMarket5m,
	model.Timeframe15m: EndpointItemMarket15m,
	model.Timeframe30m: EndpointItemMarket30m,
	model.Timeframe1h:  EndpointItemMarket1h,
	model.TimeframeDay: EndpointItemMarketDay,
}

// EndpointFor maps a timeframe to its series endpoint. Unknown or empty
// timeframes fall back to the daily endpoint.
func EndpointFor(tf model.Timeframe) string {
	if ep, ok := timeframeEndpoints[tf]; ok {
		return ep
	}
	return EndpointItemMarketDay
}
