package dashboard

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"MarketLens/internal/common"
)

// Suggestion is an autocomplete entry. Head is the leading part of the name
// as long as the typed query, rendered highlighted; Tail is the remainder.
type Suggestion struct {
	Name string `json:"name"`
	Head string `json:"head"`
	Tail string `json:"tail"`
}

// ItemNames returns the de-duplicated list of known item names. The list is
// fetched once; concurrent first calls share a single request.
func (c *Controller) ItemNames(ctx context.Context) ([]string, error) {
	c.namesMu.Lock()
	cached := c.namesCache
	c.namesMu.Unlock()
	if cached != nil {
		return cached, nil
	}

	v, err, _ := c.names.Do("names", func() (any, error) {
		names, err := c.gw.FetchItemNames(ctx)
		if err != nil {
			return nil, err
		}
		uniq := lo.Uniq(lo.Filter(names, func(n string, _ int) bool {
			return strings.TrimSpace(n) != ""
		}))
		c.namesMu.Lock()
		c.namesCache = uniq
		c.namesMu.Unlock()
		log.Info().Int("names", len(uniq)).Msg("item names loaded")
		return uniq, nil
	})
	if err != nil {
		log.Error().Err(err).
			Str("error_code", common.ErrCodeItemNamesFailed.String()).
			Str("error_message", common.ErrMsgItemNamesFailed.String()).
			Msg("load item names")
		return nil, err
	}
	return v.([]string), nil
}

// Suggest returns the names containing q, case-insensitively. An empty
// query yields no suggestions.
func (c *Controller) Suggest(ctx context.Context, q string) ([]Suggestion, error) {
	if q == "" {
		return nil, nil
	}
	names, err := c.ItemNames(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(q)
	n := len([]rune(q))
	matches := lo.Filter(names, func(name string, _ int) bool {
		return strings.Contains(strings.ToLower(name), needle)
	})
	return lo.Map(matches, func(name string, _ int) Suggestion {
		r := []rune(name)
		cut := min(n, len(r))
		return Suggestion{Name: name, Head: string(r[:cut]), Tail: string(r[cut:])}
	}), nil
}
