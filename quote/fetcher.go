package quote

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Default courtesy settings for public quote pages.
const (
	DefaultTimeout = 10 * time.Second
	DefaultDelay   = time.Second
)

// Result is the outcome of a Fetch.
type Result struct {
	Quotes      map[string]Quote // by identifier
	Unavailable []string         // identifiers without a price, sorted
	Err         error            // joined per identifier errors, nil when all succeeded
}

// Fetcher queries identifiers strictly one at a time, waiting between lookups.
type Fetcher struct {
	source  Source
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewFetcher returns a Fetcher spacing lookups on source by delay.
// A zero or negative delay disables the wait.
func NewFetcher(source Source, delay time.Duration, log zerolog.Logger) *Fetcher {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay)
	}
	return &Fetcher{
		source:  source,
		limiter: rate.NewLimiter(limit, 1),
		log:     log.With().Str("component", "quote").Logger(),
	}
}

// Fetch looks up every distinct identifier of ids, in order.
//
// A failed lookup never stops the others. The returned error is only set
// when ctx is done: the identifiers not yet queried are then reported as
// unavailable.
func (f *Fetcher) Fetch(ctx context.Context, ids []string) (Result, error) {
	res := Result{Quotes: make(map[string]Quote)}
	done := make(map[string]bool)

	for i, id := range ids {
		if done[id] {
			continue
		}
		done[id] = true

		if err := f.limiter.Wait(ctx); err != nil {
			for _, rest := range ids[i:] {
				if _, ok := res.Quotes[rest]; !ok && !slices.Contains(res.Unavailable, rest) {
					res.Unavailable = append(res.Unavailable, rest)
				}
			}
			slices.Sort(res.Unavailable)
			return res, fmt.Errorf("quote lookups interrupted: %w", err)
		}

		q, err := f.source.Quote(ctx, id)
		if err != nil {
			f.log.Warn().Str("id", id).Err(err).Msg("price unavailable")
			res.Unavailable = append(res.Unavailable, id)
			res.Err = errors.Join(res.Err, fmt.Errorf("%s: %w", id, err))
			continue
		}
		f.log.Info().Str("id", id).Float64("price", q.Price).Str("as_of", q.AsOf).Str("source", q.Source).Msg("price found")
		res.Quotes[id] = q
	}
	slices.Sort(res.Unavailable)
	return res, nil
}
