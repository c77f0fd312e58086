// Package transaction aggregates posting instructions that share a client
// transaction id into a single logical transaction, and answers point-in-time
// questions about the chain: its balances, its effects, its outstanding
// authorised amount and whether it has been released or completed.
package transaction

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"PostingLedger/internal/balance"
	"PostingLedger/internal/posting"
	"PostingLedger/internal/timeseries"
)

// ChainError is a chain-sequencing violation detected while aggregating
// instructions into a client transaction.
type ChainError struct {
	ClientTransactionID string
	Reason              string
}

func (e *ChainError) Error() string {
	if e.ClientTransactionID == "" {
		return "client transaction: " + e.Reason
	}
	return fmt.Sprintf("client transaction %s: %s", e.ClientTransactionID, e.Reason)
}

// Effects is the cumulative financial effect a client transaction has had on
// its account, always on a liability basis: inbound chains are positive,
// outbound chains negative. Authorised tracks adjustments but not settlements
// or releases; Unsettled is what remains reserved.
type Effects struct {
	Authorised decimal.Decimal
	Settled    decimal.Decimal
	Unsettled  decimal.Decimal
}

// Impact is the net of settled and unsettled effects: the total movement the
// chain represents for windowed netting purposes.
func (e Effects) Impact() decimal.Decimal {
	return e.Settled.Add(e.Unsettled)
}

// ClientTransaction is the ordered chain of posting instructions sharing one
// client transaction id on one account. It is immutable: extending the chain
// returns a new value.
type ClientTransaction struct {
	id           string
	accountID    string
	instructions []posting.Instruction

	// Cumulative liability-basis balance snapshots, one entry per
	// instruction, queried by binary search.
	snapshots timeseries.Series[balance.Map]
}

// New aggregates instructions, in arrival order, into a client transaction.
// Chain-sequencing rules are enforced up front: a chain cannot open with a
// secondary instruction, only authorisation chains may be extended, nothing
// follows a release or final settlement, and instructions cannot backdate.
func New(id, accountID string, instructions []posting.Instruction) (*ClientTransaction, error) {
	if id == "" {
		return nil, &ChainError{ClientTransactionID: id, Reason: "client_transaction_id must be populated"}
	}
	if accountID == "" {
		return nil, &ChainError{ClientTransactionID: id, Reason: "account_id must be populated"}
	}
	if len(instructions) == 0 {
		return nil, &ChainError{ClientTransactionID: id, Reason: "at least one posting instruction is required"}
	}

	ct := &ClientTransaction{id: id, accountID: accountID}
	for i, instr := range instructions {
		if err := ct.appendInstruction(instr); err != nil {
			return nil, fmt.Errorf("posting instruction %d: %w", i, err)
		}
	}
	return ct, nil
}

// WithInstruction returns a new client transaction extended by one
// instruction. The receiver is unchanged.
func (ct *ClientTransaction) WithInstruction(instr posting.Instruction) (*ClientTransaction, error) {
	extended := &ClientTransaction{
		id:           ct.id,
		accountID:    ct.accountID,
		instructions: ct.instructions,
		snapshots:    ct.snapshots,
	}
	if err := extended.appendInstruction(instr); err != nil {
		return nil, err
	}
	return extended, nil
}

func (ct *ClientTransaction) appendInstruction(instr posting.Instruction) error {
	typ := instr.Type()
	at := instr.ValueDatetime()
	if at.IsZero() {
		return &ChainError{ClientTransactionID: ct.id, Reason: "value_datetime must be set"}
	}
	// A release of an already-consumed reservation legitimately carries no
	// legs; everything else must touch the account.
	if len(instr.CommittedPostings()) > 0 && !touchesAccount(instr, ct.accountID) {
		return &ChainError{
			ClientTransactionID: ct.id,
			Reason:              fmt.Sprintf("no committed postings for account %s", ct.accountID),
		}
	}

	if len(ct.instructions) == 0 {
		if typ.Secondary() {
			return &ChainError{
				ClientTransactionID: ct.id,
				Reason:              fmt.Sprintf("a client transaction cannot start with %s", typ),
			}
		}
	} else {
		if err := ct.validateSecondary(typ, at); err != nil {
			return err
		}
		// Custom legs may span denominations; chained variants may not.
		if typ != posting.TypeCustomInstruction && instr.Denomination() != ct.Denomination() {
			return &ChainError{
				ClientTransactionID: ct.id,
				Reason: fmt.Sprintf("denomination %s does not match chain denomination %s",
					instr.Denomination(), ct.Denomination()),
			}
		}
	}

	prev := balance.Map{}
	if latest, ok := ct.snapshots.Latest(); ok {
		prev = latest
	}
	delta := instr.Balances(ct.accountID, balance.TsideLiability)

	extended := make([]posting.Instruction, len(ct.instructions), len(ct.instructions)+1)
	copy(extended, ct.instructions)
	ct.instructions = append(extended, instr)
	ct.snapshots = ct.snapshots.Append(at, prev.Merge(delta))
	return nil
}

func (ct *ClientTransaction) validateSecondary(typ posting.Type, at time.Time) error {
	last := ct.instructions[len(ct.instructions)-1]
	if at.Before(last.ValueDatetime()) {
		return &ChainError{ClientTransactionID: ct.id, Reason: "backdating is not supported"}
	}
	if ct.Released() || ct.Completed() {
		return &ChainError{ClientTransactionID: ct.id, Reason: "chain has already been finalised"}
	}

	first := ct.instructions[0].Type()
	switch {
	case typ == posting.TypeCustomInstruction:
		if first != posting.TypeCustomInstruction {
			return &ChainError{
				ClientTransactionID: ct.id,
				Reason:              "cannot add CustomInstruction to a non-custom chain",
			}
		}
	case typ.Secondary():
		if !first.Primary() {
			return &ChainError{
				ClientTransactionID: ct.id,
				Reason: fmt.Sprintf(
					"cannot add %s to a chain that did not start with an authorisation", typ),
			}
		}
	default:
		return &ChainError{
			ClientTransactionID: ct.id,
			Reason:              fmt.Sprintf("cannot add %s to an existing chain", typ),
		}
	}
	return nil
}

func touchesAccount(instr posting.Instruction, accountID string) bool {
	for _, leg := range instr.CommittedPostings() {
		if leg.AccountID == accountID {
			return true
		}
	}
	return false
}

// ID returns the client transaction id.
func (ct *ClientTransaction) ID() string { return ct.id }

// AccountID returns the account the chain belongs to.
func (ct *ClientTransaction) AccountID() string { return ct.accountID }

// Instructions returns the ordered instruction chain. The slice is shared
// and must not be modified.
func (ct *ClientTransaction) Instructions() []posting.Instruction {
	return ct.instructions
}

// Denomination returns the chain's denomination, taken from its first
// instruction.
func (ct *ClientTransaction) Denomination() string {
	return ct.instructions[0].Denomination()
}

// StartDatetime returns the value datetime of the first instruction.
func (ct *ClientTransaction) StartDatetime() time.Time {
	return ct.instructions[0].ValueDatetime()
}

// IsCustomOnly reports whether the chain consists of custom instructions,
// i.e. is not really an authorisation chain.
func (ct *ClientTransaction) IsCustomOnly() bool {
	return ct.instructions[0].Type() == posting.TypeCustomInstruction
}

// Released reports whether any instruction in the chain is a Release.
func (ct *ClientTransaction) Released() bool {
	return ct.ReleasedAt(time.Time{})
}

// ReleasedAt reports whether a Release occurred strictly before the instant.
// A zero instant means "ever".
func (ct *ClientTransaction) ReleasedAt(at time.Time) bool {
	for _, instr := range ct.instructions {
		if instr.Type() != posting.TypeRelease {
			continue
		}
		if at.IsZero() || instr.ValueDatetime().Before(at) {
			return true
		}
	}
	return false
}

// Completed reports whether a final settlement has closed the chain.
func (ct *ClientTransaction) Completed() bool {
	for _, instr := range ct.instructions {
		if s, ok := instr.(*posting.Settlement); ok && s.Final {
			return true
		}
	}
	return false
}

// Balances returns the chain's cumulative balance deltas for the account as
// of the instant, with nets computed for the given ledger side. The
// exclusive form answers "state strictly before".
func (ct *ClientTransaction) Balances(at time.Time, inclusive bool, tside balance.Tside) balance.Map {
	snapshot, ok := ct.snapshots.At(at, inclusive)
	if !ok {
		return balance.Map{}
	}
	if tside == balance.TsideLiability {
		return snapshot
	}
	out := make(balance.Map, len(snapshot))
	for coord, b := range snapshot {
		out[coord] = balance.Zero().Adjust(tside, b.Credit, b.Debit)
	}
	return out
}

// LatestBalances returns the chain's cumulative balance deltas after all
// instructions.
func (ct *ClientTransaction) LatestBalances(tside balance.Tside) balance.Map {
	entries := ct.snapshots.All()
	if len(entries) == 0 {
		return balance.Map{}
	}
	return ct.Balances(entries[len(entries)-1].At, true, tside)
}
