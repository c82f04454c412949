// Package quote fetches best-effort unit prices for fund identifiers from public web pages.
//
// A Source knows one provider. A Chain tries several sources in order, and a
// Fetcher queries a list of identifiers one at a time with a courtesy delay
// between lookups. Failures are never fatal: an identifier without a price is
// reported as unavailable and the caller keeps the previous price.
package quote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"
)

// Unknown is the as-of marker of a quote whose date is not known.
const Unknown = "?"

// ErrNotFound is returned by a source when the page has no recognizable price.
var ErrNotFound = errors.New("price not found")

// ErrUnavailable is returned when no source could provide a price.
var ErrUnavailable = errors.New("price unavailable")

// Quote is the price of one identifier, as reported by a source.
type Quote struct {
	ID     string
	Price  float64
	AsOf   string // date reported by the page, the source name, or Unknown
	Source string
}

// Source fetches the latest price of an identifier.
type Source interface {
	Name() string
	Quote(ctx context.Context, id string) (Quote, error)
}

// Source kinds of a Spec.
const (
	KindRegex    = "regex"
	KindJSONPath = "jsonpath"
)

// Spec describes a configurable source.
//
// For KindRegex, Price and Date are regular expressions whose first group is
// extracted from the page. For KindJSONPath they are jsonpath expressions
// evaluated on the JSON response. Date is optional for both.
// URL contains a "{id}" placeholder.
type Spec struct {
	Name  string `toml:"name"`
	Kind  string `toml:"kind"`
	URL   string `toml:"url"`
	Price string `toml:"price"`
	Date  string `toml:"date"`
}

// DefaultSpecs returns the public sources used for Spanish registered funds:
// quefondos first, then finect.
func DefaultSpecs() []Spec {
	return []Spec{
		{
			Name:  "quefondos",
			Kind:  KindRegex,
			URL:   "https://www.quefondos.com/es/fondos/ficha/index.html?isin={id}",
			Price: `Valor liquidativo:\s*([\d,.]+)\s*EUR`,
			Date:  `Fecha:\s*(\d{2}/\d{2}/\d{4})`,
		},
		{
			Name:  "finect",
			Kind:  KindRegex,
			URL:   "https://www.finect.com/fondos-inversion/{id}",
			Price: `"nav"\s*:\s*([\d.]+)`,
		},
	}
}

// Validate checks that the spec can build a source.
func (s Spec) Validate() error {
	if s.Name == "" {
		return errors.New("quote source without a name")
	}
	if s.URL == "" {
		return fmt.Errorf("quote source %q: url is required", s.Name)
	}
	if s.Price == "" {
		return fmt.Errorf("quote source %q: price expression is required", s.Name)
	}
	switch s.Kind {
	case KindRegex:
		if _, err := regexp.Compile(s.Price); err != nil {
			return fmt.Errorf("quote source %q: invalid price pattern: %w", s.Name, err)
		}
		if s.Date != "" {
			if _, err := regexp.Compile(s.Date); err != nil {
				return fmt.Errorf("quote source %q: invalid date pattern: %w", s.Name, err)
			}
		}
	case KindJSONPath:
	default:
		return fmt.Errorf("quote source %q: unknown kind %q", s.Name, s.Kind)
	}
	return nil
}

// New builds the source described by spec.
func New(spec Spec, client *http.Client, userAgent string) (Source, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	g := getter{client: client, userAgent: userAgent}
	switch spec.Kind {
	case KindJSONPath:
		return &JSONPathSource{name: spec.Name, url: spec.URL, pricePath: spec.Price, datePath: spec.Date, get: g}, nil
	default:
		src := &RegexSource{name: spec.Name, url: spec.URL, price: regexp.MustCompile(spec.Price), get: g}
		if spec.Date != "" {
			src.date = regexp.MustCompile(spec.Date)
		}
		return src, nil
	}
}

// Chain tries its sources in order and returns the first price found.
// Each attempt is bounded by Timeout when it is positive.
type Chain struct {
	Sources []Source
	Timeout time.Duration
}

// Name implements Source.
func (c Chain) Name() string { return "chain" }

// Quote implements Source. Any failure of a source falls through to the next one.
// When all fail, the error wraps ErrUnavailable and every source's error.
func (c Chain) Quote(ctx context.Context, id string) (Quote, error) {
	errs := ErrUnavailable
	for _, src := range c.Sources {
		q, err := c.attempt(ctx, src, id)
		if err == nil {
			return q, nil
		}
		errs = errors.Join(errs, fmt.Errorf("%s: %w", src.Name(), err))
		if ctx.Err() != nil {
			break
		}
	}
	return Quote{ID: id, AsOf: Unknown}, errs
}

func (c Chain) attempt(ctx context.Context, src Source, id string) (Quote, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	q, err := src.Quote(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	if q.Price <= 0 {
		return Quote{}, fmt.Errorf("non positive price %v: %w", q.Price, ErrNotFound)
	}
	return q, nil
}
