package common

import "time"

const (
	DefaultConfigPath     = "configs/config.yaml"
	DefaultListenAddr     = ":8080"
	DefaultRefreshSpec    = "@every 1m"
	DefaultRequestTimeout = 30 * time.Minute
	DefaultFeePercent     = 5.0

	// CandlestickWindow is how many trailing points the candlestick chart shows initially.
	CandlestickWindow = 50

	SubscriberBufferSize = 16
	EventQueueSize       = 64
)
