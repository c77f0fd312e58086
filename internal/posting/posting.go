// Package posting defines the posting instruction variants of the ledger:
// authorisations and their adjustments, settlements, releases, transfers and
// multi-leg custom instructions. Every variant derives the double-entry
// committed postings it would apply, and from those the balance deltas per
// account. Structural invariants are checked at construction, never at use.
package posting

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"PostingLedger/internal/balance"
)

// Posting is a single committed double-entry leg: a signed movement against
// one balance coordinate of one account. Amount is always positive; direction
// is carried by Credit.
type Posting struct {
	AccountID      string
	AccountAddress string
	Asset          string
	Denomination   string
	Phase          balance.Phase
	Credit         bool
	Amount         decimal.Decimal
}

func (p Posting) validate() error {
	if p.AccountID == "" {
		return &InvalidInstructionError{Reason: "posting account_id must be populated"}
	}
	if p.AccountAddress == "" {
		return &InvalidInstructionError{Reason: "posting account_address must be populated"}
	}
	if p.Asset == "" {
		return &InvalidInstructionError{Reason: "posting asset must be populated"}
	}
	if p.Denomination == "" {
		return &InvalidInstructionError{Reason: "posting denomination must be populated"}
	}
	if err := balance.ValidatePhase(p.Phase); err != nil {
		return &InvalidInstructionError{Reason: err.Error()}
	}
	if !p.Amount.IsPositive() {
		return &InvalidInstructionError{
			Reason: fmt.Sprintf("posting amount must be positive, got %s", p.Amount),
		}
	}
	return nil
}

// signed returns the leg amount with credit positive and debit negative.
func (p Posting) signed() decimal.Decimal {
	if p.Credit {
		return p.Amount
	}
	return p.Amount.Neg()
}

// deriveBalances folds the legs touching accountID into a balance map,
// recomputing each net for the given ledger side.
func deriveBalances(legs []Posting, accountID string, tside balance.Tside) balance.Map {
	out := make(balance.Map)
	for _, leg := range legs {
		if leg.AccountID != accountID {
			continue
		}
		coord := balance.Coordinate{
			AccountAddress: leg.AccountAddress,
			Asset:          leg.Asset,
			Denomination:   leg.Denomination,
			Phase:          leg.Phase,
		}
		credit, debit := decimal.Zero, decimal.Zero
		if leg.Credit {
			credit = leg.Amount
		} else {
			debit = leg.Amount
		}
		out[coord] = out.Get(coord).Adjust(tside, credit, debit)
	}
	return out
}

// validateDenomination rejects denominations that are not known currency
// codes. Custom instruction legs are exempt; they may post non-cash assets.
func validateDenomination(denomination string) error {
	if money.GetCurrency(denomination) == nil {
		return &InvalidInstructionError{
			Reason: fmt.Sprintf("unknown denomination %q", denomination),
		}
	}
	return nil
}
