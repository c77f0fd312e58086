package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"PostingLedger/internal/balance"
)

// SettlementParams realises some or all of a reservation as a committed
// movement. UnsettledAmount is the chain's reserved-but-unsettled amount
// immediately before this settlement; it bounds how much of the pending
// phase is consumed and, when Final, how much is released.
type SettlementParams struct {
	ClientTransactionID string
	TargetAccountID     string
	InternalAccountID   string
	Denomination        string
	Amount              decimal.Decimal
	UnsettledAmount     decimal.Decimal
	Final               bool
	PendingPhase        balance.Phase
	ValueDatetime       time.Time
	InstructionDetails  map[string]string
}

// Settlement commits Amount against the chain's pending reservation. A
// settlement may be partial, final, or exceed the reservation
// (over-settlement).
type Settlement struct {
	base
	TargetAccountID   string
	InternalAccountID string
	Amount            decimal.Decimal
	UnsettledAmount   decimal.Decimal
	Final             bool
	PendingPhase      balance.Phase
}

func NewSettlement(p SettlementParams) (*Settlement, error) {
	b := &base{
		clientTransactionID: p.ClientTransactionID,
		denomination:        p.Denomination,
		instructionDetails:  p.InstructionDetails,
		valueDatetime:       p.ValueDatetime,
	}
	if err := b.validateCommon(TypeSettlement); err != nil {
		return nil, err
	}
	if p.TargetAccountID == "" || p.InternalAccountID == "" {
		return nil, &InvalidInstructionError{
			Reason: "Settlement requires target and internal account ids",
		}
	}
	if err := validateDenomination(p.Denomination); err != nil {
		return nil, err
	}
	if !p.Amount.IsPositive() {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("Settlement amount must be positive, got %s", p.Amount),
		}
	}
	if p.UnsettledAmount.IsNegative() {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("Settlement unsettled amount must not be negative, got %s", p.UnsettledAmount),
		}
	}
	if !p.PendingPhase.Pending() {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("Settlement pending phase must be PENDING_IN or PENDING_OUT, got %s", p.PendingPhase),
		}
	}

	// The pending phase gives back at most what is still reserved. A final
	// settlement releases the whole remainder even when settling less.
	released := decimal.Min(p.Amount, p.UnsettledAmount)
	if p.Final {
		released = p.UnsettledAmount
	}

	inbound := p.PendingPhase == balance.PhasePendingIn
	legs := commitLegs(p.TargetAccountID, p.InternalAccountID, p.Denomination, p.Amount, inbound)
	if released.IsPositive() {
		// Reverse the reservation: the pending leg direction flips relative
		// to the original authorisation.
		legs = append(legs, pendingLegs(p.TargetAccountID, p.InternalAccountID, p.Denomination, p.PendingPhase, released, !inbound)...)
	}
	b.committed = legs

	return &Settlement{
		base:              *b,
		TargetAccountID:   p.TargetAccountID,
		InternalAccountID: p.InternalAccountID,
		Amount:            p.Amount,
		UnsettledAmount:   p.UnsettledAmount,
		Final:             p.Final,
		PendingPhase:      p.PendingPhase,
	}, nil
}

func (s *Settlement) Type() Type { return TypeSettlement }

// ReleaseParams cancels the remaining unsettled portion of a reservation.
// Amount is the chain's outstanding unsettled amount at release time.
type ReleaseParams struct {
	ClientTransactionID string
	TargetAccountID     string
	InternalAccountID   string
	Denomination        string
	Amount              decimal.Decimal
	PendingPhase        balance.Phase
	ValueDatetime       time.Time
	InstructionDetails  map[string]string
}

// Release returns the remaining reservation to the pending phase with no
// committed movement.
type Release struct {
	base
	TargetAccountID   string
	InternalAccountID string
	Amount            decimal.Decimal
	PendingPhase      balance.Phase
}

func NewRelease(p ReleaseParams) (*Release, error) {
	b := &base{
		clientTransactionID: p.ClientTransactionID,
		denomination:        p.Denomination,
		instructionDetails:  p.InstructionDetails,
		valueDatetime:       p.ValueDatetime,
	}
	if err := b.validateCommon(TypeRelease); err != nil {
		return nil, err
	}
	if p.TargetAccountID == "" || p.InternalAccountID == "" {
		return nil, &InvalidInstructionError{
			Reason: "Release requires target and internal account ids",
		}
	}
	if err := validateDenomination(p.Denomination); err != nil {
		return nil, err
	}
	if p.Amount.IsNegative() {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("Release amount must not be negative, got %s", p.Amount),
		}
	}
	if !p.PendingPhase.Pending() {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("Release pending phase must be PENDING_IN or PENDING_OUT, got %s", p.PendingPhase),
		}
	}

	inbound := p.PendingPhase == balance.PhasePendingIn
	if p.Amount.IsPositive() {
		b.committed = pendingLegs(p.TargetAccountID, p.InternalAccountID, p.Denomination, p.PendingPhase, p.Amount, !inbound)
	}

	return &Release{
		base:              *b,
		TargetAccountID:   p.TargetAccountID,
		InternalAccountID: p.InternalAccountID,
		Amount:            p.Amount,
		PendingPhase:      p.PendingPhase,
	}, nil
}

func (r *Release) Type() Type { return TypeRelease }

// commitLegs builds the balanced pair of committed-phase legs for a realised
// movement. Inbound money credits the target account.
func commitLegs(targetID, internalID, denomination string, amount decimal.Decimal, inbound bool) []Posting {
	return []Posting{
		{
			AccountID:      targetID,
			AccountAddress: balance.DefaultAddress,
			Asset:          balance.DefaultAsset,
			Denomination:   denomination,
			Phase:          balance.PhaseCommitted,
			Credit:         inbound,
			Amount:         amount,
		},
		{
			AccountID:      internalID,
			AccountAddress: balance.DefaultAddress,
			Asset:          balance.DefaultAsset,
			Denomination:   denomination,
			Phase:          balance.PhaseCommitted,
			Credit:         !inbound,
			Amount:         amount,
		},
	}
}
