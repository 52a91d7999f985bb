package miner

import (
	"context"
	"fmt"
	"time"

	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/model"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/services/blockassembly"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/services/miner/cpuminer"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/settings"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/ulogger"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/util"
)

// TxSource supplies the candidate pool for one block-construction run. The
// transactions are expected to be structurally valid with resolved prevout
// values; the miner performs no script or signature validation.
type TxSource interface {
	Load(ctx context.Context) ([]*model.Transaction, error)
}

// Miner owns the block-construction pipeline: candidate selection, witness
// commitment, coinbase, merkle root, nonce search. It is the single writer
// of the header's merkle root and nonce fields.
type Miner struct {
	logger    ulogger.Logger
	settings  *settings.Settings
	source    TxSource
	assembler *blockassembly.BlockAssembler
}

func NewMiner(logger ulogger.Logger, tSettings *settings.Settings, source TxSource) *Miner {
	initPrometheusMetrics()

	return &Miner{
		logger:    logger,
		settings:  tSettings,
		source:    source,
		assembler: blockassembly.New(logger, tSettings),
	}
}

// MineBlock runs the pipeline once and returns the solved block artifacts.
// A nonce-space exhaustion is returned as cpuminer.ErrNonceExhausted so the
// caller can adjust the timestamp and retry.
func (m *Miner) MineBlock(ctx context.Context) (*model.MiningSolution, error) {
	start := time.Now()

	txs, err := m.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading candidate transactions: %w", err)
	}

	selection := m.assembler.SelectCandidates(txs)

	coinbase, err := m.assembler.BuildCoinbase(selection.Fees, selection.WTxIDs)
	if err != nil {
		return nil, fmt.Errorf("error building coinbase: %w", err)
	}

	txids := make([]string, 0, len(selection.TxIDs)+1)
	txids = append(txids, coinbase.TxID())
	txids = append(txids, selection.TxIDs...)

	merkleRoot, err := util.BuildMerkleRoot(txids)
	if err != nil {
		return nil, fmt.Errorf("error building merkle root: %w", err)
	}

	header := m.buildBlockHeader()
	header.HashMerkleRoot = merkleRoot

	nonce, blockHash, err := cpuminer.Search(ctx, header, m.settings.Block.Target, cpuminer.Options{
		Workers:    m.settings.Miner.Workers,
		StartNonce: m.settings.Miner.InitialNonce,
	})
	if err != nil {
		return nil, fmt.Errorf("error searching for nonce: %w", err)
	}

	m.logger.Infof("[Miner] mined block %s: %d txs, %d sat fees, nonce %d, took %s",
		blockHash.String(), len(txids), selection.Fees, nonce, time.Since(start))
	prometheusBlockMined.Observe(time.Since(start).Seconds())

	return &model.MiningSolution{
		Header:   header,
		Coinbase: coinbase,
		TxIDs:    txids,
		Fees:     selection.Fees,
		Nonce:    nonce,
	}, nil
}

// buildBlockHeader assembles the header from the run configuration. The
// merkle root is filled in by the pipeline and the nonce by the search.
func (m *Miner) buildBlockHeader() *model.BlockHeader {
	return &model.BlockHeader{
		Version:       m.settings.Block.Version,
		HashPrevBlock: m.settings.Block.HashPrevBlock,
		Timestamp:     m.settings.Block.Timestamp,
		Bits:          m.settings.Block.Bits,
		Nonce:         m.settings.Miner.InitialNonce,
	}
}
