package transaction

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"PostingLedger/internal/observability"
	"PostingLedger/internal/posting"
)

// Indexer groups accepted posting instruction batches into client
// transactions. It carries the batch-level observability; the grouping itself
// is pure.
type Indexer struct {
	log     zerolog.Logger
	metrics *observability.Metrics
}

// NewIndexer builds an indexer. metrics may be nil.
func NewIndexer(log zerolog.Logger, metrics *observability.Metrics) *Indexer {
	return &Indexer{log: log, metrics: metrics}
}

// BuildIndex groups an account's accepted posting instructions, in arrival
// order, into client transactions keyed by client transaction id. Instructions
// without a client transaction id (hard settlements, transfers, customs) are
// given a generated one so they still form single-instruction chains. Output
// attributes are assigned as a side effect: every instruction gets an id and
// all instructions in the call share one batch id.
func (ix *Indexer) BuildIndex(accountID string, instructions []posting.Instruction) (map[string]*ClientTransaction, error) {
	batchID := uuid.NewString()
	index := make(map[string]*ClientTransaction)

	for i, instr := range instructions {
		instr.AssignOutput(uuid.NewString(), batchID)

		ctid := instr.ClientTransactionID()
		if ctid == "" {
			if instr.Type().Secondary() {
				ix.countChainError(instr)
				return nil, &ChainError{
					Reason: fmt.Sprintf("%s requires a client_transaction_id", instr.Type()),
				}
			}
			ctid = uuid.NewString()
		}

		existing, ok := index[ctid]
		if !ok {
			ct, err := New(ctid, accountID, []posting.Instruction{instr})
			if err != nil {
				ix.countChainError(instr)
				return nil, fmt.Errorf("posting instruction %d: %w", i, err)
			}
			index[ctid] = ct
		} else {
			extended, err := existing.WithInstruction(instr)
			if err != nil {
				ix.countChainError(instr)
				return nil, fmt.Errorf("posting instruction %d: %w", i, err)
			}
			index[ctid] = extended
		}

		if ix.metrics != nil {
			ix.metrics.InstructionsIndexed.WithLabelValues(instr.Type().String()).Inc()
		}
	}

	if ix.metrics != nil {
		ix.metrics.ChainsIndexed.Add(float64(len(index)))
		for _, ct := range index {
			ix.metrics.ChainLength.Observe(float64(len(ct.instructions)))
		}
	}
	ix.log.Debug().
		Str("account_id", accountID).
		Str("batch_id", batchID).
		Int("instructions", len(instructions)).
		Int("chains", len(index)).
		Msg("indexed posting instruction batch")
	return index, nil
}

func (ix *Indexer) countChainError(instr posting.Instruction) {
	if ix.metrics != nil {
		ix.metrics.ChainErrors.WithLabelValues(instr.Type().String()).Inc()
	}
}

// BuildIndex groups instructions without batch-level observability.
func BuildIndex(accountID string, instructions []posting.Instruction) (map[string]*ClientTransaction, error) {
	return NewIndexer(zerolog.Nop(), nil).BuildIndex(accountID, instructions)
}
