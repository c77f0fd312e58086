// Package query is the read surface over host-supplied balance feeds: pure
// helpers that fold balance maps and balance timeseries into the aggregates
// per-product formulas consume. Nothing here mutates its inputs.
package query

import (
	"time"

	"github.com/shopspring/decimal"

	"PostingLedger/internal/balance"
	"PostingLedger/internal/timeseries"
)

// SumNet sums the net balances at the given addresses for one asset,
// denomination and phase. Addresses without an entry contribute zero.
func SumNet(balances balance.Map, addresses []string, asset, denomination string, phase balance.Phase) decimal.Decimal {
	total := decimal.Zero
	for _, address := range addresses {
		coord := balance.Coordinate{
			AccountAddress: address,
			Asset:          asset,
			Denomination:   denomination,
			Phase:          phase,
		}
		total = total.Add(balances.Get(coord).Net)
	}
	return total
}

// AtCoordinate returns the balance at a coordinate, zero when absent.
func AtCoordinate(balances balance.Map, coord balance.Coordinate) balance.Balance {
	return balances.Get(coord)
}

// AvailableBalance is the spendable position at the default address: the
// committed net plus the net of outgoing reservations (which is negative on a
// liability ledger, so pending outflows reduce availability).
func AvailableBalance(balances balance.Map, denomination string) decimal.Decimal {
	committed := balances.Get(balance.NewCoordinate(denomination, balance.PhaseCommitted))
	pendingOut := balances.Get(balance.NewCoordinate(denomination, balance.PhasePendingOut))
	return committed.Net.Add(pendingOut.Net)
}

// CurrentNetBalance is the committed net plus incoming reservations: the
// position assuming all pending inbound funds settle.
func CurrentNetBalance(balances balance.Map, denomination string) decimal.Decimal {
	committed := balances.Get(balance.NewCoordinate(denomination, balance.PhaseCommitted))
	pendingIn := balances.Get(balance.NewCoordinate(denomination, balance.PhasePendingIn))
	return committed.Net.Add(pendingIn.Net)
}

// CurrentCreditBalance is the gross credit across committed and incoming
// pending phases at the default address.
func CurrentCreditBalance(balances balance.Map, denomination string) decimal.Decimal {
	committed := balances.Get(balance.NewCoordinate(denomination, balance.PhaseCommitted))
	pendingIn := balances.Get(balance.NewCoordinate(denomination, balance.PhasePendingIn))
	return committed.Credit.Add(pendingIn.Credit)
}

// CurrentDebitBalance is the gross debit across committed and outgoing
// pending phases at the default address.
func CurrentDebitBalance(balances balance.Map, denomination string) decimal.Decimal {
	committed := balances.Get(balance.NewCoordinate(denomination, balance.PhaseCommitted))
	pendingOut := balances.Get(balance.NewCoordinate(denomination, balance.PhasePendingOut))
	return committed.Debit.Add(pendingOut.Debit)
}

// MapAt snapshots a per-coordinate timeseries feed into the balance map as of
// the instant (inclusive). Coordinates with no qualifying entry resolve to
// the zero balance and are omitted.
func MapAt(feed map[balance.Coordinate]timeseries.BalanceTimeseries, at time.Time) balance.Map {
	snapshot := make(balance.Map, len(feed))
	for coord, series := range feed {
		b := series.At(at)
		if b.IsZero() {
			continue
		}
		snapshot[coord] = b
	}
	return snapshot
}

// LatestAvailableBalance computes the available balance from the newest entry
// of each phase series in a timeseries feed.
func LatestAvailableBalance(feed map[balance.Coordinate]timeseries.BalanceTimeseries, denomination string) decimal.Decimal {
	committed := feed[balance.NewCoordinate(denomination, balance.PhaseCommitted)].Latest()
	pendingOut := feed[balance.NewCoordinate(denomination, balance.PhasePendingOut)].Latest()
	return committed.Net.Add(pendingOut.Net)
}
