package quote

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// RegexSource scrapes a price out of an HTML page.
type RegexSource struct {
	name  string
	url   string // with a {id} placeholder
	price *regexp.Regexp
	date  *regexp.Regexp // optional
	get   getter
}

// Name implements Source.
func (s *RegexSource) Name() string { return s.name }

// Quote implements Source.
//
// The as-of marker is the first group of the date pattern, Unknown when the
// pattern does not match, and the source name when there is no date pattern.
func (s *RegexSource) Quote(ctx context.Context, id string) (Quote, error) {
	page, err := s.get.get(ctx, expand(s.url, id), "text/html")
	if err != nil {
		return Quote{}, err
	}
	m := s.price.FindSubmatch(page)
	if len(m) < 2 {
		return Quote{}, fmt.Errorf("%s page for %s: %w", s.name, id, ErrNotFound)
	}
	price, err := parsePrice(string(m[1]))
	if err != nil {
		return Quote{}, fmt.Errorf("%s page for %s: %w", s.name, id, err)
	}

	asOf := s.name
	if s.date != nil {
		asOf = Unknown
		if d := s.date.FindSubmatch(page); len(d) >= 2 {
			asOf = string(d[1])
		}
	}
	return Quote{ID: id, Price: price, AsOf: asOf, Source: s.name}, nil
}

// expand substitutes the identifier in a url template.
func expand(template, id string) string {
	return strings.ReplaceAll(template, "{id}", url.QueryEscape(id))
}

// parsePrice reads a decimal price written with either a comma or a period.
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		// "1.234,56": the period groups thousands.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return v, nil
}
