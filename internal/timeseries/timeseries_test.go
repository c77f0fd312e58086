package timeseries_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"PostingLedger/internal/balance"
	"PostingLedger/internal/timeseries"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(offset time.Duration) time.Time { return t0.Add(offset) }

// ============================================================================
// Test: Series lookups
// ============================================================================

func TestSeries_AtInclusive(t *testing.T) {
	s := timeseries.New(
		timeseries.Entry[string]{At: at(0), Value: "a"},
		timeseries.Entry[string]{At: at(time.Hour), Value: "b"},
		timeseries.Entry[string]{At: at(2 * time.Hour), Value: "c"},
	)

	cases := []struct {
		query time.Time
		want  string
	}{
		{at(0), "a"},
		{at(30 * time.Minute), "a"},
		{at(time.Hour), "b"},
		{at(3 * time.Hour), "c"},
	}
	for _, c := range cases {
		got, ok := s.At(c.query, true)
		if !ok {
			t.Fatalf("At(%s): no value", c.query)
		}
		if got != c.want {
			t.Errorf("At(%s): got %q, want %q", c.query, got, c.want)
		}
	}
}

func TestSeries_AtExclusiveSkipsEqualInstant(t *testing.T) {
	s := timeseries.New(
		timeseries.Entry[int]{At: at(0), Value: 1},
		timeseries.Entry[int]{At: at(time.Hour), Value: 2},
	)

	got, ok := s.At(at(time.Hour), false)
	if !ok {
		t.Fatal("no value strictly before the second entry")
	}
	if got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestSeries_BeforeFirstEntry(t *testing.T) {
	s := timeseries.New(timeseries.Entry[int]{At: at(0), Value: 1})

	if _, ok := s.At(at(-time.Second), true); ok {
		t.Error("query before first entry should report no value")
	}
	if _, ok := s.Before(at(0)); ok {
		t.Error("Before(first entry instant) should report no value")
	}
}

func TestSeries_EqualInstantsResolveToLastAppended(t *testing.T) {
	s := timeseries.New(
		timeseries.Entry[int]{At: at(0), Value: 1},
		timeseries.Entry[int]{At: at(0), Value: 2},
		timeseries.Entry[int]{At: at(0), Value: 3},
	)

	got, ok := s.At(at(0), true)
	if !ok {
		t.Fatal("no value")
	}
	if got != 3 {
		t.Errorf("got %d, want last appended 3", got)
	}
}

func TestSeries_AppendDoesNotMutateReceiver(t *testing.T) {
	s := timeseries.New(timeseries.Entry[int]{At: at(0), Value: 1})
	extended := s.Append(at(time.Hour), 2)

	if s.Len() != 1 {
		t.Errorf("receiver length changed: got %d, want 1", s.Len())
	}
	if extended.Len() != 2 {
		t.Errorf("extended length: got %d, want 2", extended.Len())
	}
}

// ============================================================================
// Test: empty-series defaults
// ============================================================================

func TestBalanceTimeseries_EmptyDefaultsToZero(t *testing.T) {
	var ts timeseries.BalanceTimeseries

	if got := ts.At(at(0)); !got.IsZero() {
		t.Errorf("At on empty: got %s, want zero", got)
	}
	if got := ts.Latest(); !got.IsZero() {
		t.Errorf("Latest on empty: got %s, want zero", got)
	}
}

func TestFlagTimeseries_EmptyDefaultsToFalse(t *testing.T) {
	var ts timeseries.FlagTimeseries

	if ts.At(at(0)) || ts.Latest() {
		t.Error("empty flag series should read false")
	}
}

func TestParameterTimeseries_EmptyFailsWithNoValueError(t *testing.T) {
	var ts timeseries.ParameterTimeseries

	_, err := ts.At(at(0))
	var noValue *timeseries.NoValueError
	if !errors.As(err, &noValue) {
		t.Fatalf("got %v, want *NoValueError", err)
	}
	if !noValue.At.Equal(at(0)) {
		t.Errorf("error instant: got %s, want %s", noValue.At, at(0))
	}
}

func TestParameterTimeseries_LookupKinds(t *testing.T) {
	ts := timeseries.NewParameterTimeseries(
		timeseries.Entry[timeseries.ParamValue]{At: at(0), Value: timeseries.DecimalParam(decimal.RequireFromString("0.05"))},
		timeseries.Entry[timeseries.ParamValue]{At: at(time.Hour), Value: timeseries.StringParam("tier2")},
	)

	v, err := ts.At(at(30 * time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	rate, ok := v.Decimal()
	if !ok {
		t.Fatal("expected a decimal parameter")
	}
	if !rate.Equal(decimal.RequireFromString("0.05")) {
		t.Errorf("got %s, want 0.05", rate)
	}

	v, err = ts.Latest()
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := v.Str(); !ok || s != "tier2" {
		t.Errorf("got %q (%v), want tier2", s, ok)
	}
}

// ============================================================================
// Test: balance series lookup
// ============================================================================

func TestBalanceTimeseries_AtAndBefore(t *testing.T) {
	b1 := balance.Zero().Adjust(balance.TsideLiability, decimal.NewFromInt(10), decimal.Zero)
	b2 := b1.Adjust(balance.TsideLiability, decimal.NewFromInt(5), decimal.Zero)
	ts := timeseries.NewBalanceTimeseries(
		timeseries.Entry[balance.Balance]{At: at(0), Value: b1},
		timeseries.Entry[balance.Balance]{At: at(time.Hour), Value: b2},
	)

	if got := ts.At(at(time.Hour)); !got.Equal(b2) {
		t.Errorf("At: got %s, want %s", got, b2)
	}
	if got := ts.Before(at(time.Hour)); !got.Equal(b1) {
		t.Errorf("Before: got %s, want %s", got, b1)
	}
}
