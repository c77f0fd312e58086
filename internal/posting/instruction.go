package posting

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"PostingLedger/internal/balance"
)

// Type discriminates the closed set of posting instruction variants.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeInboundAuthorisation
	TypeOutboundAuthorisation
	TypeAuthorisationAdjustment
	TypeSettlement
	TypeRelease
	TypeInboundHardSettlement
	TypeOutboundHardSettlement
	TypeTransfer
	TypeCustomInstruction
)

func (t Type) String() string {
	switch t {
	case TypeInboundAuthorisation:
		return "InboundAuthorisation"
	case TypeOutboundAuthorisation:
		return "OutboundAuthorisation"
	case TypeAuthorisationAdjustment:
		return "AuthorisationAdjustment"
	case TypeSettlement:
		return "Settlement"
	case TypeRelease:
		return "Release"
	case TypeInboundHardSettlement:
		return "InboundHardSettlement"
	case TypeOutboundHardSettlement:
		return "OutboundHardSettlement"
	case TypeTransfer:
		return "Transfer"
	case TypeCustomInstruction:
		return "CustomInstruction"
	default:
		return "Unknown"
	}
}

// Primary reports whether the type may open an authorisation chain that
// later secondary instructions extend.
func (t Type) Primary() bool {
	return t == TypeInboundAuthorisation || t == TypeOutboundAuthorisation
}

// Secondary reports whether the type may only extend an existing
// authorisation chain.
func (t Type) Secondary() bool {
	return t == TypeAuthorisationAdjustment || t == TypeSettlement || t == TypeRelease
}

// Instruction is one atomic record of intended ledger movement. Every variant
// carries a denomination, free-form instruction details, a value datetime and
// the identifier of the client transaction it belongs to.
type Instruction interface {
	Type() Type
	ClientTransactionID() string
	Denomination() string
	InstructionDetails() map[string]string
	ValueDatetime() time.Time

	// CommittedPostings returns the derived double-entry legs. The slice is
	// shared with the instruction and must not be modified.
	CommittedPostings() []Posting

	// Balances returns the balance deltas the instruction applies to the
	// given account, with nets computed for the given ledger side.
	Balances(accountID string, tside balance.Tside) balance.Map

	// ID returns the instruction id, empty until assigned.
	ID() string

	// AssignOutput sets host-assigned output attributes. Ids already set are
	// kept.
	AssignOutput(id, batchID string)
}

// InvalidInstructionError is a structural invariant violation detected while
// constructing an instruction: a missing chain field, a non-positive amount,
// or a value outside a closed enum.
type InvalidInstructionError struct {
	Reason string
}

func (e *InvalidInstructionError) Error() string {
	return "invalid posting instruction: " + e.Reason
}

// UnbalancedInstructionError reports custom instruction legs that do not net
// to zero in every posted denomination.
type UnbalancedInstructionError struct {
	Denomination string
	Net          decimal.Decimal
}

func (e *UnbalancedInstructionError) Error() string {
	return fmt.Sprintf(
		"custom instruction postings do not net to zero for denomination %s: net %s",
		e.Denomination, e.Net,
	)
}

// base carries the fields common to every instruction variant.
type base struct {
	id                  string
	batchID             string
	clientTransactionID string
	denomination        string
	instructionDetails  map[string]string
	valueDatetime       time.Time
	committed           []Posting
}

func (b *base) ClientTransactionID() string { return b.clientTransactionID }

func (b *base) Denomination() string { return b.denomination }

func (b *base) InstructionDetails() map[string]string { return b.instructionDetails }

func (b *base) ValueDatetime() time.Time { return b.valueDatetime }

func (b *base) CommittedPostings() []Posting { return b.committed }

func (b *base) ID() string { return b.id }

func (b *base) BatchID() string { return b.batchID }

func (b *base) AssignOutput(id, batchID string) {
	if b.id == "" {
		b.id = id
	}
	if b.batchID == "" {
		b.batchID = batchID
	}
}

func (b *base) Balances(accountID string, tside balance.Tside) balance.Map {
	return deriveBalances(b.committed, accountID, tside)
}

func (b *base) validateCommon(typ Type) error {
	if b.clientTransactionID == "" {
		return &InvalidInstructionError{
			Reason: fmt.Sprintf("%s requires a client_transaction_id", typ),
		}
	}
	if b.valueDatetime.IsZero() {
		return &InvalidInstructionError{
			Reason: fmt.Sprintf("%s requires a value_datetime", typ),
		}
	}
	return nil
}
