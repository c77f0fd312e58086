package timeseries

import (
	"time"

	"PostingLedger/internal/balance"
)

// BalanceTimeseries is a series of Balance values for one coordinate. An
// empty series behaves as a permanently zero Balance.
type BalanceTimeseries struct {
	series Series[balance.Balance]
}

func NewBalanceTimeseries(entries ...Entry[balance.Balance]) BalanceTimeseries {
	return BalanceTimeseries{series: New(entries...)}
}

// At returns the Balance as of the instant, inclusive of entries at the
// instant itself.
func (ts BalanceTimeseries) At(at time.Time) balance.Balance {
	v, ok := ts.series.At(at, true)
	if !ok {
		return balance.Zero()
	}
	return v
}

// Before returns the Balance as of just before the instant.
func (ts BalanceTimeseries) Before(at time.Time) balance.Balance {
	v, ok := ts.series.Before(at)
	if !ok {
		return balance.Zero()
	}
	return v
}

// Latest returns the most recent Balance, or the zero Balance if empty.
func (ts BalanceTimeseries) Latest() balance.Balance {
	v, ok := ts.series.Latest()
	if !ok {
		return balance.Zero()
	}
	return v
}

func (ts BalanceTimeseries) All() []Entry[balance.Balance] {
	return ts.series.All()
}

// FlagTimeseries is a series of flag activations. A flag that was never
// raised reads as permanently false.
type FlagTimeseries struct {
	series Series[bool]
}

func NewFlagTimeseries(entries ...Entry[bool]) FlagTimeseries {
	return FlagTimeseries{series: New(entries...)}
}

func (ts FlagTimeseries) At(at time.Time) bool {
	v, ok := ts.series.At(at, true)
	return ok && v
}

func (ts FlagTimeseries) Before(at time.Time) bool {
	v, ok := ts.series.Before(at)
	return ok && v
}

func (ts FlagTimeseries) Latest() bool {
	v, ok := ts.series.Latest()
	return ok && v
}

func (ts FlagTimeseries) All() []Entry[bool] {
	return ts.series.All()
}

// ParameterTimeseries is a series of parameter values. It has no empty
// default: a query that finds no entry fails with *NoValueError, and the
// caller decides the fallback.
type ParameterTimeseries struct {
	series Series[ParamValue]
}

func NewParameterTimeseries(entries ...Entry[ParamValue]) ParameterTimeseries {
	return ParameterTimeseries{series: New(entries...)}
}

func (ts ParameterTimeseries) At(at time.Time) (ParamValue, error) {
	v, ok := ts.series.At(at, true)
	if !ok {
		return ParamValue{}, &NoValueError{At: at}
	}
	return v, nil
}

func (ts ParameterTimeseries) Before(at time.Time) (ParamValue, error) {
	v, ok := ts.series.Before(at)
	if !ok {
		return ParamValue{}, &NoValueError{At: at}
	}
	return v, nil
}

func (ts ParameterTimeseries) Latest() (ParamValue, error) {
	v, ok := ts.series.Latest()
	if !ok {
		return ParamValue{}, &NoValueError{}
	}
	return v, nil
}

func (ts ParameterTimeseries) All() []Entry[ParamValue] {
	return ts.series.All()
}
