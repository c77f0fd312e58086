package balance_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"PostingLedger/internal/balance"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ============================================================================
// Test: Balance
// ============================================================================

func TestBalance_NetSign(t *testing.T) {
	liability := balance.Zero().Adjust(balance.TsideLiability, dec("10"), dec("4"))
	if got, want := liability.Net, dec("6"); !got.Equal(want) {
		t.Errorf("liability net: got %s, want %s", got, want)
	}

	asset := balance.Zero().Adjust(balance.TsideAsset, dec("10"), dec("4"))
	if got, want := asset.Net, dec("-6"); !got.Equal(want) {
		t.Errorf("asset net: got %s, want %s", got, want)
	}
}

func TestBalance_AddComponentWise(t *testing.T) {
	a := balance.Zero().Adjust(balance.TsideLiability, dec("5"), dec("2"))
	b := balance.Zero().Adjust(balance.TsideLiability, dec("1"), dec("7"))

	sum := a.Add(b)
	if !sum.Credit.Equal(dec("6")) || !sum.Debit.Equal(dec("9")) || !sum.Net.Equal(dec("-3")) {
		t.Errorf("got credit=%s debit=%s net=%s, want 6/9/-3", sum.Credit, sum.Debit, sum.Net)
	}
}

func TestBalance_AddCommutativeAssociative(t *testing.T) {
	a := balance.Zero().Adjust(balance.TsideLiability, dec("1.25"), dec("0"))
	b := balance.Zero().Adjust(balance.TsideLiability, dec("0"), dec("3.5"))
	c := balance.Zero().Adjust(balance.TsideLiability, dec("10"), dec("10"))

	if !a.Add(b).Equal(b.Add(a)) {
		t.Error("a+b != b+a")
	}
	if !a.Add(b).Add(c).Equal(a.Add(b.Add(c))) {
		t.Error("(a+b)+c != a+(b+c)")
	}
}

func TestBalance_ZeroIsAddIdentity(t *testing.T) {
	a := balance.Zero().Adjust(balance.TsideAsset, dec("2.5"), dec("9"))
	if !a.Add(balance.Zero()).Equal(a) {
		t.Error("a + zero != a")
	}
}

// ============================================================================
// Test: Phase
// ============================================================================

func TestPhase_String(t *testing.T) {
	cases := []struct {
		phase balance.Phase
		want  string
	}{
		{balance.PhaseCommitted, "POSTING_PHASE_COMMITTED"},
		{balance.PhasePendingIn, "POSTING_PHASE_PENDING_INCOMING"},
		{balance.PhasePendingOut, "POSTING_PHASE_PENDING_OUTGOING"},
	}
	for _, c := range cases {
		if got := c.phase.String(); got != c.want {
			t.Errorf("got %q, want %q", got, c.want)
		}
	}
}

func TestValidatePhase_RejectsUnknown(t *testing.T) {
	if err := balance.ValidatePhase(balance.Phase(42)); err == nil {
		t.Error("unknown phase should be rejected")
	}
}

// ============================================================================
// Test: Map
// ============================================================================

func TestMap_GetAbsentIsZero(t *testing.T) {
	m := balance.Map{}
	got := m.Get(balance.NewCoordinate("GBP", balance.PhaseCommitted))
	if !got.IsZero() {
		t.Errorf("absent coordinate: got %s, want zero", got)
	}
	if len(m) != 0 {
		t.Error("Get must not vivify entries")
	}
}

func TestMap_MergeSumsPerCoordinate(t *testing.T) {
	coord := balance.NewCoordinate("GBP", balance.PhaseCommitted)
	other := balance.NewCoordinate("GBP", balance.PhasePendingIn)

	a := balance.Map{coord: balance.Zero().Adjust(balance.TsideLiability, dec("10"), dec("0"))}
	b := balance.Map{
		coord: balance.Zero().Adjust(balance.TsideLiability, dec("0"), dec("4")),
		other: balance.Zero().Adjust(balance.TsideLiability, dec("1"), dec("0")),
	}

	merged := a.Merge(b)
	if got, want := merged.Get(coord).Net, dec("6"); !got.Equal(want) {
		t.Errorf("merged net: got %s, want %s", got, want)
	}
	if got, want := merged.Get(other).Net, dec("1"); !got.Equal(want) {
		t.Errorf("merged pending net: got %s, want %s", got, want)
	}
	// Inputs untouched.
	if got := a.Get(coord).Net; !got.Equal(dec("10")) {
		t.Errorf("merge mutated input: got %s", got)
	}
}

func TestMap_EqualTreatsAbsentAsZero(t *testing.T) {
	coord := balance.NewCoordinate("GBP", balance.PhaseCommitted)
	a := balance.Map{coord: balance.Zero()}
	b := balance.Map{}
	if !a.Equal(b) {
		t.Error("map with explicit zero should equal empty map")
	}
}

func TestCoordinate_Defaults(t *testing.T) {
	coord := balance.NewCoordinate("GBP", balance.PhasePendingOut)
	if coord.AccountAddress != "DEFAULT" {
		t.Errorf("got address %q, want DEFAULT", coord.AccountAddress)
	}
	if coord.Asset != "COMMERCIAL_BANK_MONEY" {
		t.Errorf("got asset %q, want COMMERCIAL_BANK_MONEY", coord.Asset)
	}
}
