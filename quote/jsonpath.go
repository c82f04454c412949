package quote

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// JSONPathSource reads a price from a JSON endpoint.
//
// Example, a tradegate like endpoint:
//
//	url   = "https://www.tradegate.de/refresh.php?isin={id}"
//	price = "$.last"
type JSONPathSource struct {
	name      string
	url       string
	pricePath string
	datePath  string // optional
	get       getter
}

// Name implements Source.
func (s *JSONPathSource) Name() string { return s.name }

// Quote implements Source.
func (s *JSONPathSource) Quote(ctx context.Context, id string) (Quote, error) {
	data, err := s.get.get(ctx, expand(s.url, id), "application/json")
	if err != nil {
		return Quote{}, err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return Quote{}, fmt.Errorf("%s response for %s is not json: %w", s.name, id, err)
	}

	jval, err := lookup(s.pricePath, jobj)
	if err != nil {
		return Quote{}, fmt.Errorf("%s response for %s: %q: %w", s.name, id, s.pricePath, ErrNotFound)
	}
	var price float64
	switch v := jval.(type) {
	case float64:
		price = v
	case string:
		// this kind of API sometimes returns the value as a string
		if price, err = parsePrice(v); err != nil {
			return Quote{}, fmt.Errorf("%s response for %s: %w", s.name, id, err)
		}
	default:
		return Quote{}, fmt.Errorf("%s response for %s: %q is %T: %w", s.name, id, s.pricePath, jval, ErrNotFound)
	}

	asOf := s.name
	if s.datePath != "" {
		asOf = Unknown
		if d, err := lookup(s.datePath, jobj); err == nil {
			if str, ok := d.(string); ok && str != "" {
				asOf = str
			}
		}
	}
	return Quote{ID: id, Price: price, AsOf: asOf, Source: s.name}, nil
}

// lookup evaluates path on v. jsonpath is never clear about whether it returns a
// list of one answer or a single answer: the first element of a list is kept.
func lookup(path string, v any) (any, error) {
	jval, err := jsonpath.Get(path, v)
	if err != nil {
		return nil, err
	}
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return nil, ErrNotFound
		}
		jval = jlist[0]
	}
	if jval == nil {
		return nil, ErrNotFound
	}
	return jval, nil
}
