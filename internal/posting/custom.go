package posting

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomInstructionParams constructs a multi-leg instruction from explicit
// postings. The legs must net to zero per denomination across all accounts;
// within that constraint they may touch any address, asset or phase.
type CustomInstructionParams struct {
	ClientTransactionID string
	Postings            []Posting
	ValueDatetime       time.Time
	InstructionDetails  map[string]string
}

// CustomInstruction is a standalone balanced set of postings. Its net ledger
// impact is itself; it never extends an authorisation chain.
type CustomInstruction struct {
	base
	Postings []Posting
}

func NewCustomInstruction(p CustomInstructionParams) (*CustomInstruction, error) {
	if p.ValueDatetime.IsZero() {
		return nil, &InvalidInstructionError{Reason: "CustomInstruction requires a value_datetime"}
	}
	if len(p.Postings) == 0 {
		return nil, &InvalidInstructionError{Reason: "CustomInstruction requires at least one posting"}
	}
	for _, leg := range p.Postings {
		if err := leg.validate(); err != nil {
			return nil, err
		}
	}
	if err := validateZeroNetSum(p.Postings); err != nil {
		return nil, err
	}

	legs := make([]Posting, len(p.Postings))
	copy(legs, p.Postings)

	return &CustomInstruction{
		base: base{
			clientTransactionID: p.ClientTransactionID,
			denomination:        legs[0].Denomination,
			instructionDetails:  p.InstructionDetails,
			valueDatetime:       p.ValueDatetime,
			committed:           legs,
		},
		Postings: legs,
	}, nil
}

func (c *CustomInstruction) Type() Type { return TypeCustomInstruction }

// validateZeroNetSum checks the double-entry invariant: per denomination,
// credits and debits cancel exactly.
func validateZeroNetSum(legs []Posting) error {
	nets := make(map[string]decimal.Decimal)
	for _, leg := range legs {
		nets[leg.Denomination] = nets[leg.Denomination].Add(leg.signed())
	}
	for denomination, net := range nets {
		if !net.IsZero() {
			return &UnbalancedInstructionError{Denomination: denomination, Net: net}
		}
	}
	return nil
}
