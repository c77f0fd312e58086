// Package timeseries provides an append-ordered, time-sorted sequence of
// (instant, value) pairs with binary-search "value as of instant" lookups.
// The generic Series is instantiated for balances, flags and parameters.
package timeseries

import (
	"fmt"
	"sort"
	"time"
)

// Entry is a single timeseries datapoint.
type Entry[T any] struct {
	At    time.Time
	Value T
}

// Series is a read-only sequence of entries in non-decreasing At order.
// Insertion order is assumed chronological; entries are never re-sorted, so
// ties between equal instants resolve to the last appended entry. Instants
// must be timezone-qualified absolute instants (UTC).
type Series[T any] struct {
	entries []Entry[T]
}

// New builds a Series from chronologically ordered entries.
func New[T any](entries ...Entry[T]) Series[T] {
	return Series[T]{entries: entries}
}

// Append returns a new Series extended with the given datapoint. The receiver
// is unchanged. Callers must append in chronological order.
func (s Series[T]) Append(at time.Time, value T) Series[T] {
	extended := make([]Entry[T], len(s.entries), len(s.entries)+1)
	copy(extended, s.entries)
	return Series[T]{entries: append(extended, Entry[T]{At: at, Value: value})}
}

// At returns the value of the latest entry with At <= at (inclusive) or
// At < at (exclusive). The second return is false when no entry qualifies.
func (s Series[T]) At(at time.Time, inclusive bool) (T, bool) {
	// sort.Search finds the first entry past the instant, so index-1 is the
	// last qualifying entry; equal instants keep append order.
	var idx int
	if inclusive {
		idx = sort.Search(len(s.entries), func(i int) bool {
			return s.entries[i].At.After(at)
		})
	} else {
		idx = sort.Search(len(s.entries), func(i int) bool {
			return !s.entries[i].At.Before(at)
		})
	}
	if idx == 0 {
		var zero T
		return zero, false
	}
	return s.entries[idx-1].Value, true
}

// Before returns the value of the latest entry strictly before the instant.
func (s Series[T]) Before(at time.Time) (T, bool) {
	return s.At(at, false)
}

// Latest returns the value of the last entry, or false if the series is empty.
func (s Series[T]) Latest() (T, bool) {
	if len(s.entries) == 0 {
		var zero T
		return zero, false
	}
	return s.entries[len(s.entries)-1].Value, true
}

// All returns the full ordered sequence. The returned slice is shared with
// the series and must not be modified.
func (s Series[T]) All() []Entry[T] {
	return s.entries
}

// Len returns the number of entries.
func (s Series[T]) Len() int {
	return len(s.entries)
}

// NoValueError reports a query against a series that has no entry at or
// before the requested instant and no empty-default. Returning a sentinel
// value instead would misrepresent "unconfigured" as "zero".
type NoValueError struct {
	At time.Time
}

func (e *NoValueError) Error() string {
	if e.At.IsZero() {
		return "timeseries: no values provided"
	}
	return fmt.Sprintf("timeseries: no values provided as of %s", e.At.Format(time.RFC3339Nano))
}
