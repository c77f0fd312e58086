package query_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"PostingLedger/internal/balance"
	"PostingLedger/internal/query"
	"PostingLedger/internal/timeseries"
)

var asOf = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func liability(credit, debit string) balance.Balance {
	return balance.Zero().Adjust(balance.TsideLiability, dec(credit), dec(debit))
}

func snapshot() balance.Map {
	return balance.Map{
		balance.NewCoordinate("GBP", balance.PhaseCommitted):  liability("100", "20"),
		balance.NewCoordinate("GBP", balance.PhasePendingIn):  liability("30", "0"),
		balance.NewCoordinate("GBP", balance.PhasePendingOut): liability("0", "15"),
	}
}

// ============================================================================
// Test: snapshot aggregates
// ============================================================================

func TestAvailableBalance(t *testing.T) {
	// Committed 80 net, pending out -15.
	if got, want := query.AvailableBalance(snapshot(), "GBP"), dec("65"); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCurrentNetBalance(t *testing.T) {
	// Committed 80 net, pending in +30.
	if got, want := query.CurrentNetBalance(snapshot(), "GBP"), dec("110"); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestCurrentCreditAndDebitBalances(t *testing.T) {
	if got, want := query.CurrentCreditBalance(snapshot(), "GBP"), dec("130"); !got.Equal(want) {
		t.Errorf("credit: got %s, want %s", got, want)
	}
	if got, want := query.CurrentDebitBalance(snapshot(), "GBP"), dec("35"); !got.Equal(want) {
		t.Errorf("debit: got %s, want %s", got, want)
	}
}

func TestAggregates_EmptySnapshotIsZero(t *testing.T) {
	empty := balance.Map{}
	if !query.AvailableBalance(empty, "GBP").IsZero() {
		t.Error("available balance of empty snapshot should be zero")
	}
	if !query.CurrentNetBalance(empty, "GBP").IsZero() {
		t.Error("current net balance of empty snapshot should be zero")
	}
}

func TestSumNet_AcrossAddresses(t *testing.T) {
	reserved := balance.Coordinate{
		AccountAddress: "RESERVED",
		Asset:          balance.DefaultAsset,
		Denomination:   "GBP",
		Phase:          balance.PhaseCommitted,
	}
	balances := snapshot().Set(reserved, liability("5", "0"))

	got := query.SumNet(balances, []string{balance.DefaultAddress, "RESERVED", "MISSING"},
		balance.DefaultAsset, "GBP", balance.PhaseCommitted)
	if want := dec("85"); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}

// ============================================================================
// Test: timeseries feeds
// ============================================================================

func feed() map[balance.Coordinate]timeseries.BalanceTimeseries {
	committed := balance.NewCoordinate("GBP", balance.PhaseCommitted)
	pendingOut := balance.NewCoordinate("GBP", balance.PhasePendingOut)
	return map[balance.Coordinate]timeseries.BalanceTimeseries{
		committed: timeseries.NewBalanceTimeseries(
			timeseries.Entry[balance.Balance]{At: asOf.Add(-time.Hour), Value: liability("50", "0")},
			timeseries.Entry[balance.Balance]{At: asOf.Add(time.Hour), Value: liability("70", "0")},
		),
		pendingOut: timeseries.NewBalanceTimeseries(
			timeseries.Entry[balance.Balance]{At: asOf.Add(-time.Hour), Value: liability("0", "10")},
		),
	}
}

func TestMapAt_SnapshotsEachCoordinate(t *testing.T) {
	m := query.MapAt(feed(), asOf)

	committed := m.Get(balance.NewCoordinate("GBP", balance.PhaseCommitted))
	if !committed.Net.Equal(dec("50")) {
		t.Errorf("committed net: got %s, want 50", committed.Net)
	}
	pendingOut := m.Get(balance.NewCoordinate("GBP", balance.PhasePendingOut))
	if !pendingOut.Net.Equal(dec("-10")) {
		t.Errorf("pending out net: got %s, want -10", pendingOut.Net)
	}
}

func TestLatestAvailableBalance(t *testing.T) {
	// Latest committed 70, latest pending out -10.
	if got, want := query.LatestAvailableBalance(feed(), "GBP"), dec("60"); !got.Equal(want) {
		t.Errorf("got %s, want %s", got, want)
	}
}
