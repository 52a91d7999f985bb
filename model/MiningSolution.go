package model

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// MiningSolution is the fully formed result of one block-construction run,
// handed to the I/O layer for persistence.
type MiningSolution struct {
	Header   *BlockHeader
	Coinbase *Transaction

	// TxIDs in block order, coinbase first, display byte order.
	TxIDs []string

	Fees  uint64
	Nonce uint32
}

// WriteTo writes the report format: the 80-byte header as hex, the
// witness-inclusive coinbase encoding as hex, then one txid per line.
func (ms *MiningSolution) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder

	sb.WriteString(hex.EncodeToString(ms.Header.Bytes()))
	sb.WriteString("\n")

	sb.WriteString(hex.EncodeToString(ms.Coinbase.Serialize()))
	sb.WriteString("\n")

	for _, txid := range ms.TxIDs {
		sb.WriteString(txid)
		sb.WriteString("\n")
	}

	n, err := io.WriteString(w, sb.String())
	if err != nil {
		return int64(n), fmt.Errorf("error writing mining solution: %w", err)
	}

	return int64(n), nil
}
