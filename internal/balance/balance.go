// Package balance holds the immutable balance value types: the per-coordinate
// credit/debit/net triple, the coordinate key, and the default-zero balance map.
package balance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tside is the ledger side of the account the balances belong to.
// It determines the sign convention of the net amount.
type Tside uint8

const (
	TsideLiability Tside = iota
	TsideAsset
)

func (t Tside) String() string {
	switch t {
	case TsideLiability:
		return "LIABILITY"
	case TsideAsset:
		return "ASSET"
	default:
		return "UNKNOWN"
	}
}

// NetSign returns the multiplier applied to (credit - debit) for this side.
func (t Tside) NetSign() decimal.Decimal {
	if t == TsideAsset {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// Phase is the settlement phase of a balance bucket.
type Phase uint8

const (
	PhaseCommitted Phase = iota
	PhasePendingIn
	PhasePendingOut
)

func (p Phase) String() string {
	switch p {
	case PhaseCommitted:
		return "POSTING_PHASE_COMMITTED"
	case PhasePendingIn:
		return "POSTING_PHASE_PENDING_INCOMING"
	case PhasePendingOut:
		return "POSTING_PHASE_PENDING_OUTGOING"
	default:
		return "POSTING_PHASE_UNKNOWN"
	}
}

// ValidatePhase rejects values outside the closed phase enum. Ordering values
// are checked at the model boundary before entering any computation.
func ValidatePhase(p Phase) error {
	switch p {
	case PhaseCommitted, PhasePendingIn, PhasePendingOut:
		return nil
	}
	return fmt.Errorf("unknown balance phase: %d", p)
}

// Pending reports whether the phase is one of the two pending phases.
func (p Phase) Pending() bool {
	return p == PhasePendingIn || p == PhasePendingOut
}

// Balance is the credit, debit and net amount of a single balance bucket.
// Balances are immutable values; all operations return new Balances.
type Balance struct {
	Credit decimal.Decimal
	Debit  decimal.Decimal
	Net    decimal.Decimal
}

// Zero returns the identity Balance (all amounts zero).
func Zero() Balance {
	return Balance{}
}

// Add returns the component-wise sum of b and other. Addition is associative
// and commutative, with Zero() as the identity element.
func (b Balance) Add(other Balance) Balance {
	return Balance{
		Credit: b.Credit.Add(other.Credit),
		Debit:  b.Debit.Add(other.Debit),
		Net:    b.Net.Add(other.Net),
	}
}

// Adjust returns a copy of b with the given incremental credit and debit
// applied and the net recomputed for the given side: (credit - debit) for
// LIABILITY, (debit - credit) for ASSET. The net is never settable directly.
func (b Balance) Adjust(tside Tside, credit, debit decimal.Decimal) Balance {
	next := Balance{
		Credit: b.Credit.Add(credit),
		Debit:  b.Debit.Add(debit),
	}
	next.Net = next.Credit.Sub(next.Debit).Mul(tside.NetSign())
	return next
}

// Equal reports amount equality ignoring decimal exponent representation.
func (b Balance) Equal(other Balance) bool {
	return b.Credit.Equal(other.Credit) &&
		b.Debit.Equal(other.Debit) &&
		b.Net.Equal(other.Net)
}

// IsZero reports whether all three amounts are zero.
func (b Balance) IsZero() bool {
	return b.Credit.IsZero() && b.Debit.IsZero() && b.Net.IsZero()
}

func (b Balance) String() string {
	return fmt.Sprintf("Balance(credit=%s, debit=%s, net=%s)", b.Credit, b.Debit, b.Net)
}
