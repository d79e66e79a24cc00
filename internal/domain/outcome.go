package domain

// Freshness tags an Outcome with where its items came from.
type Freshness int

const (
	// Fresh means the items came from a live API response.
	Fresh Freshness = iota
	// Stale means the network fetch failed but TTL-valid cached items were
	// found; Items holds the cached batch and Err the classified fault.
	Stale
	// Unavailable means the fetch failed and no usable cache exists; Items
	// is empty and Err carries the classified fault.
	Unavailable
)

// String returns a human-readable representation of the freshness tag.
func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	case Unavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Outcome is the result of one reconciled fetch: live data, cached data
// standing in for a failed fetch, or a classified failure. The cached payload
// travels with the outcome so callers never need a second read.
type Outcome[T any] struct {
	Items  []T
	Source Freshness
	Err    error // nil iff Source == Fresh
}

// HasItems reports whether the outcome carries usable content.
func (o Outcome[T]) HasItems() bool { return len(o.Items) > 0 }

// Failed reports whether the fetch itself failed, regardless of whether
// cached items were substituted.
func (o Outcome[T]) Failed() bool { return o.Source != Fresh }

// FreshOutcome wraps a live result.
func FreshOutcome[T any](items []T) Outcome[T] {
	return Outcome[T]{Items: items, Source: Fresh}
}

// StaleOutcome wraps a cached batch standing in for a failed fetch.
func StaleOutcome[T any](items []T, err error) Outcome[T] {
	return Outcome[T]{Items: items, Source: Stale, Err: err}
}

// UnavailableOutcome wraps a failure with no usable cache.
func UnavailableOutcome[T any](err error) Outcome[T] {
	return Outcome[T]{Source: Unavailable, Err: err}
}
