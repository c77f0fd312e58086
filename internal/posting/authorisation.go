package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"PostingLedger/internal/balance"
)

// AuthorisationParams constructs an inbound or outbound authorisation: a
// reservation of funds against a target account pending settlement or
// release.
type AuthorisationParams struct {
	ClientTransactionID string
	TargetAccountID     string
	InternalAccountID   string
	Denomination        string
	Amount              decimal.Decimal
	ValueDatetime       time.Time
	InstructionDetails  map[string]string
}

func (p AuthorisationParams) validate(typ Type) (*base, error) {
	b := &base{
		clientTransactionID: p.ClientTransactionID,
		denomination:        p.Denomination,
		instructionDetails:  p.InstructionDetails,
		valueDatetime:       p.ValueDatetime,
	}
	if err := b.validateCommon(typ); err != nil {
		return nil, err
	}
	if p.TargetAccountID == "" || p.InternalAccountID == "" {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("%s requires target and internal account ids", typ),
		}
	}
	if err := validateDenomination(p.Denomination); err != nil {
		return nil, err
	}
	if !p.Amount.IsPositive() {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("%s amount must be positive, got %s", typ, p.Amount),
		}
	}
	return b, nil
}

// InboundAuthorisation reserves an incoming amount in the PENDING_IN phase.
type InboundAuthorisation struct {
	base
	TargetAccountID   string
	InternalAccountID string
	Amount            decimal.Decimal
}

func NewInboundAuthorisation(p AuthorisationParams) (*InboundAuthorisation, error) {
	b, err := p.validate(TypeInboundAuthorisation)
	if err != nil {
		return nil, err
	}
	b.committed = pendingLegs(p.TargetAccountID, p.InternalAccountID, p.Denomination, balance.PhasePendingIn, p.Amount, true)
	return &InboundAuthorisation{
		base:              *b,
		TargetAccountID:   p.TargetAccountID,
		InternalAccountID: p.InternalAccountID,
		Amount:            p.Amount,
	}, nil
}

func (i *InboundAuthorisation) Type() Type { return TypeInboundAuthorisation }

// OutboundAuthorisation reserves an outgoing amount in the PENDING_OUT phase.
type OutboundAuthorisation struct {
	base
	TargetAccountID   string
	InternalAccountID string
	Amount            decimal.Decimal
}

func NewOutboundAuthorisation(p AuthorisationParams) (*OutboundAuthorisation, error) {
	b, err := p.validate(TypeOutboundAuthorisation)
	if err != nil {
		return nil, err
	}
	b.committed = pendingLegs(p.TargetAccountID, p.InternalAccountID, p.Denomination, balance.PhasePendingOut, p.Amount, false)
	return &OutboundAuthorisation{
		base:              *b,
		TargetAccountID:   p.TargetAccountID,
		InternalAccountID: p.InternalAccountID,
		Amount:            p.Amount,
	}, nil
}

func (o *OutboundAuthorisation) Type() Type { return TypeOutboundAuthorisation }

// AuthorisationAdjustmentParams modifies the outstanding reserved amount of
// an existing authorisation chain by a signed delta. The pending phase names
// the chain direction so the delta derivation stays self-contained.
type AuthorisationAdjustmentParams struct {
	ClientTransactionID string
	TargetAccountID     string
	InternalAccountID   string
	Denomination        string
	Amount              decimal.Decimal
	PendingPhase        balance.Phase
	ValueDatetime       time.Time
	InstructionDetails  map[string]string
}

// AuthorisationAdjustment changes a reservation by Amount; a negative amount
// decreases it.
type AuthorisationAdjustment struct {
	base
	TargetAccountID   string
	InternalAccountID string
	Amount            decimal.Decimal
	PendingPhase      balance.Phase
}

func NewAuthorisationAdjustment(p AuthorisationAdjustmentParams) (*AuthorisationAdjustment, error) {
	b := &base{
		clientTransactionID: p.ClientTransactionID,
		denomination:        p.Denomination,
		instructionDetails:  p.InstructionDetails,
		valueDatetime:       p.ValueDatetime,
	}
	if err := b.validateCommon(TypeAuthorisationAdjustment); err != nil {
		return nil, err
	}
	if p.TargetAccountID == "" || p.InternalAccountID == "" {
		return nil, &InvalidInstructionError{
			Reason: "AuthorisationAdjustment requires target and internal account ids",
		}
	}
	if err := validateDenomination(p.Denomination); err != nil {
		return nil, err
	}
	if p.Amount.IsZero() {
		return nil, &InvalidInstructionError{
			Reason: "AuthorisationAdjustment amount must be non-zero",
		}
	}
	if !p.PendingPhase.Pending() {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("AuthorisationAdjustment pending phase must be PENDING_IN or PENDING_OUT, got %s", p.PendingPhase),
		}
	}

	// An increase posts in the same direction as the original authorisation;
	// a decrease posts the reverse.
	inbound := p.PendingPhase == balance.PhasePendingIn
	credit := inbound
	amount := p.Amount
	if amount.IsNegative() {
		amount = amount.Abs()
		credit = !credit
	}
	b.committed = pendingLegs(p.TargetAccountID, p.InternalAccountID, p.Denomination, p.PendingPhase, amount, credit)

	return &AuthorisationAdjustment{
		base:              *b,
		TargetAccountID:   p.TargetAccountID,
		InternalAccountID: p.InternalAccountID,
		Amount:            p.Amount,
		PendingPhase:      p.PendingPhase,
	}, nil
}

func (a *AuthorisationAdjustment) Type() Type { return TypeAuthorisationAdjustment }

// pendingLegs builds the balanced pair of legs for a pending-phase movement:
// the target account leg plus the mirroring internal account leg.
func pendingLegs(targetID, internalID, denomination string, phase balance.Phase, amount decimal.Decimal, credit bool) []Posting {
	return []Posting{
		{
			AccountID:      targetID,
			AccountAddress: balance.DefaultAddress,
			Asset:          balance.DefaultAsset,
			Denomination:   denomination,
			Phase:          phase,
			Credit:         credit,
			Amount:         amount,
		},
		{
			AccountID:      internalID,
			AccountAddress: balance.DefaultAddress,
			Asset:          balance.DefaultAsset,
			Denomination:   denomination,
			Phase:          phase,
			Credit:         !credit,
			Amount:         amount,
		},
	}
}
