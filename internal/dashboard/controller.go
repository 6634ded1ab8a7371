package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"MarketLens/internal/calculator"
	"MarketLens/internal/chart"
	"MarketLens/internal/common"
	"MarketLens/internal/gateway"
	"MarketLens/internal/model"
	"MarketLens/internal/notifier"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
	ErrNotRunning   = errors.New("controller is not running")
)

// Refresher is the auto-refresh timer the controller switches on and off.
type Refresher interface {
	Enable() error
	Disable()
	IsActive() bool
}

// Options configures a Controller.
type Options struct {
	Notifier notifier.Notifier
	Theme    *chart.Theme
	// Now supplies the clock; defaults to time.Now.
	Now func() time.Time
	// OpenBestItems opens the recommendations panel when Run starts.
	OpenBestItems bool
}

type handler func(c *Controller, ev Event) error

type request struct {
	ev   Event
	done chan error
}

type bestItemsState struct {
	open    bool
	loading bool
	rows    []notifier.BestItemRow
	message string
	gen     uint64
}

// Controller owns every piece of mutable dashboard state. All mutation
// happens on the goroutine running Run; other goroutines talk to it through
// Dispatch and read it through State and Subscribe.
type Controller struct {
	gw        gateway.Gateway
	notifier  notifier.Notifier
	refresher Refresher
	theme     chart.Theme
	now       func() time.Time
	openBest  bool

	events   chan request
	handlers map[EventKind]handler
	internal map[EventKind]handler
	runCtx   context.Context

	// loop-owned state
	filter       model.Filter
	records      []model.MarketRecord
	dataset      *chart.Dataset
	table        []chart.Row
	candle       *chart.Candlestick
	status       Status
	tableVisible bool
	calc         *calculator.Calculator
	best         bestItemsState
	gen          uint64
	candleGen    uint64

	mu      sync.RWMutex
	latest  Snapshot
	running bool
	subs    map[int]chan Snapshot
	nextSub int

	names      singleflight.Group
	namesMu    sync.Mutex
	namesCache []string
}

// New creates a controller over gw. The filter starts on today's date with
// the 15m timeframe and a line chart.
func New(gw gateway.Gateway, opts Options) *Controller {
	c := &Controller{
		gw:       gw,
		notifier: opts.Notifier,
		theme:    chart.DefaultTheme,
		now:      opts.Now,
		openBest: opts.OpenBestItems,
		events:   make(chan request, common.EventQueueSize),
		calc:     calculator.New(),
		subs:     make(map[int]chan Snapshot),
		runCtx:   context.Background(),
	}
	if opts.Theme != nil {
		c.theme = *opts.Theme
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.notifier == nil {
		c.notifier = notifier.NewLogNotifier()
	}

	today := c.today()
	c.filter = model.Filter{
		StartDate: today,
		EndDate:   today,
		Timeframe: model.Timeframe15m,
		ChartType: model.ChartLine,
	}

	c.handlers = map[EventKind]handler{
		EventSetFilter:         (*Controller).onSetFilter,
		EventApply:             (*Controller).onApply,
		EventSelectTimeframe:   (*Controller).onSelectTimeframe,
		EventSelectChart:       (*Controller).onSelectChart,
		EventNavigateDays:      (*Controller).onNavigateDays,
		EventResetFilters:      (*Controller).onResetFilters,
		EventToggleTable:       (*Controller).onToggleTable,
		EventToggleAutoRefresh: (*Controller).onToggleAutoRefresh,
		EventChartClick:        (*Controller).onChartClick,
		EventCalcSetBuy:        (*Controller).onCalcSetBuy,
		EventCalcSetFee:        (*Controller).onCalcSetFee,
		EventCalcSetTarget:     (*Controller).onCalcSetTarget,
		EventCalcReset:         (*Controller).onCalcReset,
		EventToggleBestItems:   (*Controller).onToggleBestItems,
		EventSelectBestItem:    (*Controller).onSelectBestItem,
	}
	c.internal = map[EventKind]handler{
		eventRefresh:         (*Controller).onRefresh,
		eventRecordsLoaded:   (*Controller).onRecordsLoaded,
		eventCandlesLoaded:   (*Controller).onCandlesLoaded,
		eventBestItemsLoaded: (*Controller).onBestItemsLoaded,
	}
	c.latest = c.snapshot()
	return c
}

// AttachRefresher wires the auto-refresh timer. It must be called before Run.
func (c *Controller) AttachRefresher(r Refresher) {
	c.refresher = r
}

// Refresh asks the loop to re-run the fetch pipeline. It is the auto-refresh
// job and does not wait for the fetch.
func (c *Controller) Refresh() {
	c.post(Event{Kind: eventRefresh})
}

// Run consumes events until ctx is cancelled.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	c.runCtx = ctx
	c.running = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.running = false
		c.mu.Unlock()
	}()

	log.Info().Str("gateway", c.gw.Name()).Msg("dashboard controller started")
	if c.openBest {
		c.best.open = true
		c.startBestItems()
	}
	c.publish()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("dashboard controller stopped")
			return nil
		case req := <-c.events:
			err := c.handle(req.ev, req.done != nil)
			c.publish()
			if req.done != nil {
				req.done <- err
			}
		}
	}
}

// Dispatch sends a user event to the loop and waits for its handler to
// finish. Fetches started by the handler complete asynchronously.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	if _, ok := c.handlers[ev.Kind]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	if !c.Running() {
		return ErrNotRunning
	}

	req := request{ev: ev, done: make(chan error, 1)}
	select {
	case c.events <- req:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Running reports whether the event loop is accepting events.
func (c *Controller) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// State returns the most recently published snapshot.
func (c *Controller) State() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// Subscribe returns a channel receiving a snapshot after every handled
// event, and a function that cancels the subscription. Snapshots are
// dropped for a subscriber that falls behind.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, common.SubscriberBufferSize)
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	c.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
}

func (c *Controller) handle(ev Event, external bool) error {
	h, ok := c.handlers[ev.Kind]
	if !ok && !external {
		h, ok = c.internal[ev.Kind]
	}
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Kind)
	}
	log.Debug().Str("event", string(ev.Kind)).Msg("handle event")
	return h(c, ev)
}

// post enqueues an internal event without waiting for it to be handled.
// Events posted while the loop is stopped are dropped.
func (c *Controller) post(ev Event) {
	c.mu.RLock()
	ctx, running := c.runCtx, c.running
	c.mu.RUnlock()
	if !running {
		log.Debug().Str("event", string(ev.Kind)).Msg("controller stopped, event dropped")
		return
	}
	select {
	case c.events <- request{ev: ev}:
	case <-ctx.Done():
	}
}

// context returns the context of the running loop, which bounds fetches.
func (c *Controller) context() context.Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.runCtx
}

func (c *Controller) publish() {
	snap := c.snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest = snap
	for id, ch := range c.subs {
		select {
		case ch <- snap:
		default:
			log.Warn().
				Str("error_code", common.ErrCodeSubscriberDropped.String()).
				Str("error_message", common.ErrMsgSubscriberDropped.String()).
				Int("subscriber", id).
				Msg("snapshot dropped")
		}
	}
}

func (c *Controller) today() time.Time {
	y, m, d := c.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
