// Package netting computes, for an arbitrary cutoff instant, how much of each
// client transaction chain's effect counts as a debit or credit in the window
// starting at the cutoff. The correctness rule: a settlement at or after the
// cutoff contributes only the portion not already implied by a pre-cutoff
// authorisation; over-settlement counts, finalising a pre-cutoff reservation
// does not.
package netting

import (
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"PostingLedger/internal/observability"
	"PostingLedger/internal/posting"
	"PostingLedger/internal/transaction"
)

// Engine evaluates windowed netting over caller-supplied client transaction
// collections. It owns no state and never mutates its inputs; the same inputs
// may be re-evaluated with different cutoffs.
type Engine struct {
	log     zerolog.Logger
	metrics *observability.Metrics
}

// NewEngine builds an engine. metrics may be nil.
func NewEngine(log zerolog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{log: log, metrics: metrics}
}

// SumClientTransactions returns the aggregate (credited, debited) amounts, as
// non-negative decimals, that the transactions contribute to the window
// starting at cutoff (inclusive) in the given denomination. Per chain the
// window impact is the total settled-plus-unsettled effect less the effect
// accrued strictly before the cutoff; custom-only chains contribute zero.
func (e *Engine) SumClientTransactions(
	cutoff time.Time,
	txns map[string]*transaction.ClientTransaction,
	denomination string,
) (credited, debited decimal.Decimal) {
	defer e.observe("sum_client_transactions", time.Now())

	for _, ct := range txns {
		if ct.Denomination() != denomination {
			continue
		}
		latest, ok := ct.LatestEffects()
		if !ok {
			continue
		}
		before, _ := ct.Effects(cutoff, false)
		window := latest.Impact().Sub(before.Impact())

		switch {
		case window.IsPositive():
			credited = credited.Add(window)
		case window.IsNegative():
			debited = debited.Add(window.Neg())
		}
	}

	e.log.Debug().
		Time("cutoff", cutoff).
		Str("denomination", denomination).
		Str("credited", credited.String()).
		Str("debited", debited.String()).
		Msg("summed client transactions")
	return credited, debited
}

// FilterClientTransactions returns the transactions, keyed by client
// transaction id, that use the denomination, are not released, are not listed
// in ignore, and whose opening instruction's details map key to value.
// Custom-only chains are never matched; classification rides on the
// instruction that opened the chain.
func (e *Engine) FilterClientTransactions(
	txns map[string]*transaction.ClientTransaction,
	denomination, key, value string,
	ignore map[string]bool,
) map[string]*transaction.ClientTransaction {
	defer e.observe("filter_client_transactions", time.Now())

	matched := make(map[string]*transaction.ClientTransaction)
	for id, ct := range txns {
		if ignore[id] || ct.Released() || ct.IsCustomOnly() || ct.Denomination() != denomination {
			continue
		}
		if ct.Instructions()[0].InstructionDetails()[key] == value {
			matched[id] = ct
		}
	}
	return matched
}

// FilterClientTransactionsByType applies FilterClientTransactions once per
// value. The result always has exactly one entry per supplied value, mapping
// to an empty subset when nothing matches.
func (e *Engine) FilterClientTransactionsByType(
	txns map[string]*transaction.ClientTransaction,
	denomination, key string,
	values []string,
	ignore map[string]bool,
) map[string]map[string]*transaction.ClientTransaction {
	byValue := make(map[string]map[string]*transaction.ClientTransaction, len(values))
	for _, value := range values {
		byValue[value] = e.FilterClientTransactions(txns, denomination, key, value, ignore)
	}
	return byValue
}

// SumDebitsByKey returns the windowed debit total over the transactions that
// match the instruction-details key/value pair.
func (e *Engine) SumDebitsByKey(
	cutoff time.Time,
	txns map[string]*transaction.ClientTransaction,
	denomination, key, value string,
	ignore map[string]bool,
) decimal.Decimal {
	matched := e.FilterClientTransactions(txns, denomination, key, value, ignore)
	_, debited := e.SumClientTransactions(cutoff, matched, denomination)
	return debited
}

// SumDebitsByType returns the windowed debit total per classification value,
// with exactly one entry per supplied value.
func (e *Engine) SumDebitsByType(
	cutoff time.Time,
	txns map[string]*transaction.ClientTransaction,
	denomination, key string,
	values []string,
	ignore map[string]bool,
) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal, len(values))
	for value, matched := range e.FilterClientTransactionsByType(txns, denomination, key, values, ignore) {
		_, debited := e.SumClientTransactions(cutoff, matched, denomination)
		totals[value] = debited
	}
	return totals
}

// ExtractDebitsByKey returns the literal posting instructions whose arrival
// decreased a matching chain's running impact within the window, ordered by
// value datetime with ties broken by chain id then chain order.
func (e *Engine) ExtractDebitsByKey(
	cutoff time.Time,
	txns map[string]*transaction.ClientTransaction,
	denomination, key, value string,
	ignore map[string]bool,
) []posting.Instruction {
	defer e.observe("extract_debits", time.Now())

	matched := e.FilterClientTransactions(txns, denomination, key, value, ignore)

	ids := make([]string, 0, len(matched))
	for id := range matched {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var debits []posting.Instruction
	for _, id := range ids {
		debits = append(debits, chainWindowDebits(matched[id], cutoff)...)
	}
	sort.SliceStable(debits, func(i, j int) bool {
		return debits[i].ValueDatetime().Before(debits[j].ValueDatetime())
	})

	if e.metrics != nil {
		e.metrics.DebitsExtracted.Add(float64(len(debits)))
	}
	return debits
}

// ExtractDebitsByType extracts windowed debit instructions per classification
// value, with exactly one entry per supplied value.
func (e *Engine) ExtractDebitsByType(
	cutoff time.Time,
	txns map[string]*transaction.ClientTransaction,
	denomination, key string,
	values []string,
	ignore map[string]bool,
) map[string][]posting.Instruction {
	extracted := make(map[string][]posting.Instruction, len(values))
	for _, value := range values {
		extracted[value] = e.ExtractDebitsByKey(cutoff, txns, denomination, key, value, ignore)
	}
	return extracted
}

// chainWindowDebits walks one chain's cumulative effects fold and picks the
// instructions at or after the cutoff whose impact delta is negative.
func chainWindowDebits(ct *transaction.ClientTransaction, cutoff time.Time) []posting.Instruction {
	fold, ok := ct.EffectsFold()
	if !ok {
		return nil
	}

	var debits []posting.Instruction
	prior := decimal.Zero
	for i, instr := range ct.Instructions() {
		impact := fold[i].Impact()
		delta := impact.Sub(prior)
		prior = impact

		if instr.ValueDatetime().Before(cutoff) {
			continue
		}
		if delta.IsNegative() {
			debits = append(debits, instr)
		}
	}
	return debits
}

func (e *Engine) observe(operation string, start time.Time) {
	if e.metrics == nil {
		return
	}
	e.metrics.NettingComputations.WithLabelValues(operation).Inc()
	e.metrics.NettingDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
