package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"PostingLedger/internal/posting"
)

// direction returns +1 for inbound chains and -1 for outbound chains, read
// from the first committed leg on the chain's account. Inbound money credits
// the account on a liability ledger.
func (ct *ClientTransaction) direction() decimal.Decimal {
	for _, leg := range ct.instructions[0].CommittedPostings() {
		if leg.AccountID != ct.accountID {
			continue
		}
		if leg.Credit {
			return decimal.NewFromInt(1)
		}
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// Effects folds the chain's instructions with value datetime at or before
// (inclusive) or strictly before (exclusive) the instant into its cumulative
// effects. Custom-only chains have no well-defined effects and report false.
func (ct *ClientTransaction) Effects(at time.Time, inclusive bool) (Effects, bool) {
	if ct.IsCustomOnly() {
		return Effects{}, false
	}

	sign := ct.direction()
	var effects Effects
	for _, instr := range ct.instructions {
		vd := instr.ValueDatetime()
		if inclusive {
			if vd.After(at) {
				break
			}
		} else if !vd.Before(at) {
			break
		}
		effects = applyEffects(effects, instr, sign)
	}
	return effects, true
}

// LatestEffects returns the chain's effects after all instructions.
func (ct *ClientTransaction) LatestEffects() (Effects, bool) {
	if ct.IsCustomOnly() {
		return Effects{}, false
	}
	sign := ct.direction()
	var effects Effects
	for _, instr := range ct.instructions {
		effects = applyEffects(effects, instr, sign)
	}
	return effects, true
}

// EffectsFold returns cumulative effects after each instruction, aligned with
// Instructions(). False for custom-only chains.
func (ct *ClientTransaction) EffectsFold() ([]Effects, bool) {
	if ct.IsCustomOnly() {
		return nil, false
	}
	sign := ct.direction()
	fold := make([]Effects, len(ct.instructions))
	var running Effects
	for i, instr := range ct.instructions {
		running = applyEffects(running, instr, sign)
		fold[i] = running
	}
	return fold, true
}

func applyEffects(e Effects, instr posting.Instruction, sign decimal.Decimal) Effects {
	switch v := instr.(type) {
	case *posting.InboundAuthorisation:
		e.Authorised = e.Authorised.Add(sign.Mul(v.Amount))
		e.Unsettled = e.Unsettled.Add(sign.Mul(v.Amount))
	case *posting.OutboundAuthorisation:
		e.Authorised = e.Authorised.Add(sign.Mul(v.Amount))
		e.Unsettled = e.Unsettled.Add(sign.Mul(v.Amount))
	case *posting.AuthorisationAdjustment:
		// Amount is a signed delta to the reservation.
		e.Authorised = e.Authorised.Add(sign.Mul(v.Amount))
		e.Unsettled = e.Unsettled.Add(sign.Mul(v.Amount))
	case *posting.Settlement:
		e.Settled = e.Settled.Add(sign.Mul(v.Amount))
		released := decimal.Min(v.Amount, v.UnsettledAmount)
		if v.Final {
			released = v.UnsettledAmount
		}
		e.Unsettled = e.Unsettled.Sub(sign.Mul(released))
	case *posting.Release:
		// The recorded amount only drives the balance legs; effects treat a
		// release as extinguishing the whole reservation.
		e.Unsettled = decimal.Zero
	case *posting.InboundHardSettlement:
		e.Settled = e.Settled.Add(sign.Mul(v.Amount))
	case *posting.OutboundHardSettlement:
		e.Settled = e.Settled.Add(sign.Mul(v.Amount))
	case *posting.Transfer:
		e.Settled = e.Settled.Add(sign.Mul(v.Amount))
	}
	return e
}

// OutstandingAuthorisedAmount is the unsigned reservation remaining as of the
// instant (inclusive): authorised amounts plus adjustment deltas, less settled
// amounts, zeroed entirely by a release. Over-settlement can drive it
// negative; callers decide whether that is meaningful.
func (ct *ClientTransaction) OutstandingAuthorisedAmount(asOf time.Time) decimal.Decimal {
	outstanding := decimal.Zero
	for _, instr := range ct.instructions {
		if instr.ValueDatetime().After(asOf) {
			break
		}
		switch v := instr.(type) {
		case *posting.InboundAuthorisation:
			outstanding = outstanding.Add(v.Amount)
		case *posting.OutboundAuthorisation:
			outstanding = outstanding.Add(v.Amount)
		case *posting.AuthorisationAdjustment:
			outstanding = outstanding.Add(v.Amount)
		case *posting.Settlement:
			outstanding = outstanding.Sub(v.Amount)
		case *posting.Release:
			outstanding = decimal.Zero
		}
	}
	return outstanding
}
