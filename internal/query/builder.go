package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"MarketLens/internal/model"
)

// Operator is one of the comparison operators understood by the remote API.
type Operator string

const (
	OpEq  Operator = "eq"
	OpGte Operator = "gte"
	OpLte Operator = "lte"
)

// ErrMissingItem is returned when a filter names neither an item name nor an id.
var ErrMissingItem = errors.New("filter requires an item name or item id")

// isoMillis matches the remote API's timestamp format (UTC, millisecond precision).
const isoMillis = "2006-01-02T15:04:05.000Z"

// Predicate is a single field=operator.value filter term.
type Predicate struct {
	Field    string
	Operator Operator
	Value    string
}

func (p Predicate) String() string {
	return p.Field + "=" + string(p.Operator) + "." + p.Value
}

// Build resolves the endpoint and predicate list for a filter. now supplies
// the date used for empty start/end dates.
func Build(f model.Filter, now time.Time) (string, []Predicate, error) {
	if !f.HasItem() {
		return "", nil, ErrMissingItem
	}

	start, end, err := Range(f, now)
	if err != nil {
		return "", nil, err
	}

	preds := []Predicate{
		{Field: "createddate", Operator: OpGte, Value: start.Format(isoMillis)},
		{Field: "createddate", Operator: OpLte, Value: end.Format(isoMillis)},
	}
	preds = append(preds, ItemPredicates(f)...)

	return EndpointFor(f.Timeframe), preds, nil
}

// ItemPredicates returns only the item name / item id terms of a filter.
func ItemPredicates(f model.Filter) []Predicate {
	var preds []Predicate
	if name := strings.TrimSpace(f.ItemName); name != "" {
		preds = append(preds, Predicate{Field: "name", Operator: OpEq, Value: name})
	}
	if f.ItemID != 0 {
		preds = append(preds, Predicate{Field: "item_id", Operator: OpEq, Value: strconv.FormatInt(f.ItemID, 10)})
	}
	return preds
}

// Range returns the UTC bounds of the filter's date range after applying
// the time-of-day rules of its timeframe.
func Range(f model.Filter, now time.Time) (time.Time, time.Time, error) {
	startDay := dayOf(f.StartDate, now)
	endDay := dayOf(f.EndDate, now)

	start := startDay
	end := endDay.Add(24*time.Hour - time.Millisecond)

	if !f.Timeframe.Intraday() {
		return start, end, nil
	}

	if f.StartTime != "" {
		h, m, err := parseClock(f.StartTime)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start time: %w", err)
		}
		start = startDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}
	if f.EndTime != "" {
		h, m, err := parseClock(f.EndTime)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end time: %w", err)
		}
		end = endDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
			59*time.Second + 999*time.Millisecond)
	}
	return start, end, nil
}

// dayOf truncates d (or now when d is zero) to UTC midnight of its calendar date.
func dayOf(d, now time.Time) time.Time {
	if d.IsZero() {
		d = now
	}
	y, mo, day := d.Date()
	return time.Date(y, mo, day, 0, 0, 0, 0, time.UTC)
}

// parseClock reads the hour and minute of an "HH:MM" or "HH:MM:SS" value.
func parseClock(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid time of day %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h, m, nil
}
