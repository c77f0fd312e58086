package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransferParams constructs a single hard movement between two named
// accounts. Transfers never chain.
type TransferParams struct {
	ClientTransactionID string
	DebtorAccountID     string
	CreditorAccountID   string
	Denomination        string
	Amount              decimal.Decimal
	ValueDatetime       time.Time
	InstructionDetails  map[string]string
}

// Transfer debits the debtor account and credits the creditor account in the
// committed phase.
type Transfer struct {
	base
	DebtorAccountID   string
	CreditorAccountID string
	Amount            decimal.Decimal
}

func NewTransfer(p TransferParams) (*Transfer, error) {
	b := &base{
		clientTransactionID: p.ClientTransactionID,
		denomination:        p.Denomination,
		instructionDetails:  p.InstructionDetails,
		valueDatetime:       p.ValueDatetime,
	}
	if b.valueDatetime.IsZero() {
		return nil, &InvalidInstructionError{Reason: "Transfer requires a value_datetime"}
	}
	if p.DebtorAccountID == "" || p.CreditorAccountID == "" {
		return nil, &InvalidInstructionError{Reason: "Transfer requires debtor and creditor account ids"}
	}
	if p.DebtorAccountID == p.CreditorAccountID {
		return nil, &InvalidInstructionError{Reason: "Transfer debtor and creditor accounts must differ"}
	}
	if err := validateDenomination(p.Denomination); err != nil {
		return nil, err
	}
	if !p.Amount.IsPositive() {
		return nil, &InvalidInstructionError{
			Reason: fmt.Sprintf("Transfer amount must be positive, got %s", p.Amount),
		}
	}
	b.committed = commitLegs(p.CreditorAccountID, p.DebtorAccountID, p.Denomination, p.Amount, true)

	return &Transfer{
		base:              *b,
		DebtorAccountID:   p.DebtorAccountID,
		CreditorAccountID: p.CreditorAccountID,
		Amount:            p.Amount,
	}, nil
}

func (t *Transfer) Type() Type { return TypeTransfer }
