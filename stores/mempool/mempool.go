package mempool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/model"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/settings"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/ulogger"
)

// Store reads candidate transactions from a directory of JSON files, one
// file per transaction. Candidates are independent units of work: a file
// that cannot be parsed is logged and skipped, never fatal.
type Store struct {
	logger ulogger.Logger
	dir    string
}

func NewStore(logger ulogger.Logger, tSettings *settings.Settings) *Store {
	return &Store{
		logger: logger,
		dir:    tSettings.MempoolDir,
	}
}

// Load parses every *.json file in the mempool directory, in sorted filename
// order so the candidate ordering is deterministic.
func (s *Store) Load(ctx context.Context) ([]*model.Transaction, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("error reading mempool directory %s: %w", s.dir, err)
	}

	txs := make([]*model.Transaction, 0, len(entries))

	for _, entry := range entries {
		if err = ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())

		b, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warnf("[Mempool] skipping %s: %v", entry.Name(), err)
			continue
		}

		tx, err := model.NewTransactionFromJSON(b)
		if err != nil {
			s.logger.Warnf("[Mempool] skipping malformed candidate %s: %v", entry.Name(), err)
			continue
		}

		txs = append(txs, tx)
	}

	s.logger.Infof("[Mempool] loaded %d candidate transactions from %s", len(txs), s.dir)

	return txs, nil
}
