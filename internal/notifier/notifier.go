package notifier

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"MarketLens/internal/model"
)

// Notifier delivers a short alert text.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes alerts to the process log.
type LogNotifier struct {
	mu   sync.Mutex
	sent []string
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// Notify logs the alert at info level.
func (l *LogNotifier) Notify(_ context.Context, text string) error {
	l.mu.Lock()
	l.sent = append(l.sent, text)
	l.mu.Unlock()
	log.Info().Str("alert", text).Msg("notification")
	return nil
}

// Sent returns every alert delivered so far.
func (l *LogNotifier) Sent() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.sent))
	copy(out, l.sent)
	return out
}

// CheckPriceCrossing inspects the first record of a fetch and notifies when
// its average price has reached the instantaneous price. It reports whether
// a notification was attempted.
func CheckPriceCrossing(ctx context.Context, n Notifier, records []model.MarketRecord) bool {
	if n == nil || len(records) == 0 {
		return false
	}
	first := records[0]
	if first.AveragePrice < first.Price {
		return false
	}
	if err := n.Notify(ctx, FormatPriceHit(first)); err != nil {
		log.Warn().Err(err).Msg("price hit notification failed")
	}
	return true
}
