package blockassembly

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/model"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/settings"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/ulogger"
)

// CandidateInfo is the ephemeral ranking record for one mempool candidate.
// It is discarded after selection.
type CandidateInfo struct {
	TxID   string
	WTxID  string
	Fee    uint64
	Weight uint64
}

// NewCandidateInfo derives the ranking record for a transaction. A candidate
// with a negative fee, a missing prevout snapshot or zero weight is rejected.
func NewCandidateInfo(tx *model.Transaction) (*CandidateInfo, error) {
	fee, err := tx.Fee()
	if err != nil {
		return nil, fmt.Errorf("error computing fee: %w", err)
	}

	weight := tx.Weight()
	if weight == 0 {
		return nil, fmt.Errorf("transaction has zero weight")
	}

	return &CandidateInfo{
		TxID:   tx.TxID(),
		WTxID:  tx.WTxID(),
		Fee:    fee,
		Weight: weight,
	}, nil
}

// Selection is the outcome of greedy packing: accepted txids and wtxids in
// block order (coinbase not included) plus the fee and weight totals.
type Selection struct {
	TxIDs  []string
	WTxIDs []string
	Fees   uint64
	Weight uint64
}

// Select ranks candidates by fee density descending, ties broken by input
// order, then greedily accepts each candidate that still fits under
// maxWeight. Candidates that do not fit are skipped, not deferred. This is a
// linear greedy approximation of the knapsack problem and is deterministic
// for a fixed input order.
func Select(infos []*CandidateInfo, maxWeight uint64) *Selection {
	ranked := make([]*CandidateInfo, len(infos))
	copy(ranked, infos)

	// fee/weight ratios compared via 128-bit cross-products to stay in
	// exact integer math
	sort.SliceStable(ranked, func(i, j int) bool {
		hi1, lo1 := bits.Mul64(ranked[i].Fee, ranked[j].Weight)
		hi2, lo2 := bits.Mul64(ranked[j].Fee, ranked[i].Weight)

		return hi1 > hi2 || (hi1 == hi2 && lo1 > lo2)
	})

	selection := &Selection{
		TxIDs:  make([]string, 0, len(ranked)),
		WTxIDs: make([]string, 0, len(ranked)),
	}

	remaining := maxWeight

	for _, info := range ranked {
		if info.Weight > remaining {
			continue
		}

		remaining -= info.Weight
		selection.TxIDs = append(selection.TxIDs, info.TxID)
		selection.WTxIDs = append(selection.WTxIDs, info.WTxID)
		selection.Fees += info.Fee
		selection.Weight += info.Weight
	}

	return selection
}

// BlockAssembler turns a candidate pool into the ordered transaction set and
// coinbase for one block.
type BlockAssembler struct {
	logger   ulogger.Logger
	settings *settings.Settings
}

func New(logger ulogger.Logger, tSettings *settings.Settings) *BlockAssembler {
	initPrometheusMetrics()

	return &BlockAssembler{
		logger:   logger,
		settings: tSettings,
	}
}

// SelectCandidates builds ranking records for the pool, dropping invalid
// candidates, and packs the rest under the configured weight budget. An
// empty pool yields an empty selection, which is not an error.
func (ba *BlockAssembler) SelectCandidates(txs []*model.Transaction) *Selection {
	infos := make([]*CandidateInfo, 0, len(txs))

	for _, tx := range txs {
		info, err := NewCandidateInfo(tx)
		if err != nil {
			ba.logger.Warnf("[BlockAssembler] rejecting candidate: %v", err)
			prometheusCandidatesRejected.Inc()

			continue
		}

		infos = append(infos, info)
	}

	selection := Select(infos, ba.settings.Block.MaxWeight)

	ba.logger.Infof("[BlockAssembler] selected %d of %d candidates, %d sat fees, %d weight",
		len(selection.TxIDs), len(txs), selection.Fees, selection.Weight)
	prometheusTransactionsSelected.Add(float64(len(selection.TxIDs)))

	return selection
}
