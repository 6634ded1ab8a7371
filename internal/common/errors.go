package common

type ErrorCode string
type ErrorMessage string

const (
	ErrCodeConfigLoadFailed  ErrorCode = "CONFIG_LOAD_FAILED"
	ErrCodeFetchFailed       ErrorCode = "FETCH_FAILED"
	ErrCodeCandlestickFailed ErrorCode = "CANDLESTICK_FETCH_FAILED"
	ErrCodeItemNamesFailed   ErrorCode = "ITEM_NAMES_FETCH_FAILED"
	ErrCodeBestItemsFailed   ErrorCode = "BEST_ITEMS_FETCH_FAILED"
	ErrCodeInvalidFilter     ErrorCode = "INVALID_FILTER"
	ErrCodeSchedulerFailed   ErrorCode = "SCHEDULER_FAILED"
	ErrCodeWebsocketFailed   ErrorCode = "WEBSOCKET_FAILED"
	ErrCodeSubscriberDropped ErrorCode = "SUBSCRIBER_DROPPED"
	ErrCodeHTTPServeFailed   ErrorCode = "HTTP_SERVE_FAILED"
	ErrCodeStaleFetchDiscard ErrorCode = "STALE_FETCH_DISCARDED"
)

const (
	ErrMsgConfigLoadFailed  ErrorMessage = "Failed to load configuration"
	ErrMsgFetchFailed       ErrorMessage = "Failed to fetch market data"
	ErrMsgCandlestickFailed ErrorMessage = "Failed to fetch candlestick data"
	ErrMsgItemNamesFailed   ErrorMessage = "Failed to load item names"
	ErrMsgBestItemsFailed   ErrorMessage = "Failed to load best items"
	ErrMsgInvalidFilter     ErrorMessage = "Filter could not be turned into a query"
	ErrMsgSchedulerFailed   ErrorMessage = "Failed to register auto-refresh job"
	ErrMsgWebsocketFailed   ErrorMessage = "Websocket connection failed"
	ErrMsgSubscriberDropped ErrorMessage = "Subscriber channel is full, snapshot dropped"
	ErrMsgHTTPServeFailed   ErrorMessage = "Failed to serve HTTP"
	ErrMsgStaleFetchDiscard ErrorMessage = "A newer fetch was issued, result discarded"
)

func (e ErrorCode) String() string {
	return string(e)
}

func (m ErrorMessage) String() string {
	return string(m)
}
