package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HardSettlementParams constructs an immediate committed movement with no
// prior reservation. A client transaction id is optional; hard settlements
// never chain, and an id is synthesised at indexing time when absent.
type HardSettlementParams struct {
	ClientTransactionID string
	TargetAccountID     string
	InternalAccountID   string
	Denomination        string
	Amount              decimal.Decimal
	ValueDatetime       time.Time
	InstructionDetails  map[string]string
}

func (p HardSettlementParams) validate(typ Type) (*base, error) {
	b := &base{
		clientTransactionID: p.ClientTransactionID,
		denomination:        p.Denomination,
		instructionDetails:  p.InstructionDetails,
		valueDatetime:       p.ValueDatetime,
	}
	if b.valueDatetime.IsZero() {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("%s requires a value_datetime", typ),
		}
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

// InboundHardSettlement moves funds into the target account immediately.
type InboundHardSettlement struct {
	base
	TargetAccountID   string
	InternalAccountID string
	Amount            decimal.Decimal
}

func NewInboundHardSettlement(p HardSettlementParams) (*InboundHardSettlement, error) {
	b, err := p.validate(TypeInboundHardSettlement)
	if err != nil {
		return nil, err
	}
	b.committed = commitLegs(p.TargetAccountID, p.InternalAccountID, p.Denomination, p.Amount, true)
	return &InboundHardSettlement{
		base:              *b,
		TargetAccountID:   p.TargetAccountID,
		InternalAccountID: p.InternalAccountID,
		Amount:            p.Amount,
	}, nil
}

func (i *InboundHardSettlement) Type() Type { return TypeInboundHardSettlement }

// OutboundHardSettlement moves funds out of the target account immediately.
type OutboundHardSettlement struct {
	base
	TargetAccountID   string
	InternalAccountID string
	Amount            decimal.Decimal
}

func NewOutboundHardSettlement(p HardSettlementParams) (*OutboundHardSettlement, error) {
	b, err := p.validate(TypeOutboundHardSettlement)
	if err != nil {
		return nil, err
	}
	b.committed = commitLegs(p.TargetAccountID, p.InternalAccountID, p.Denomination, p.Amount, false)
	return &OutboundHardSettlement{
		base:              *b,
		TargetAccountID:   p.TargetAccountID,
		InternalAccountID: p.InternalAccountID,
		Amount:            p.Amount,
	}, nil
}

func (o *OutboundHardSettlement) Type() Type { return TypeOutboundHardSettlement }
