package model

import (
	"encoding/hex"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrNegativeFee is returned by Fee when a transaction's outputs spend more
// than its inputs provide. Such a candidate must never enter a block.
var ErrNegativeFee = fmt.Errorf("transaction outputs exceed input value")

// Prevout is the snapshot of the output an input spends. The value is the
// only field the fee computation needs; everything else is display metadata.
type Prevout struct {
	ScriptPubKey        string `json:"scriptpubkey"`
	ScriptPubKeyAsm     string `json:"scriptpubkey_asm,omitempty"`
	ScriptPubKeyType    string `json:"scriptpubkey_type,omitempty"`
	ScriptPubKeyAddress string `json:"scriptpubkey_address,omitempty"`
	Value               uint64 `json:"value"`
}

// Output has the same wire shape as a prevout snapshot.
type Output = Prevout

type Input struct {
	// TxID of the referenced transaction, hex in display order.
	TxID string `json:"txid"`

	// Vout is the index of the referenced output.
	Vout uint32 `json:"vout"`

	// Prevout carries the resolved output being spent. The core trusts this
	// snapshot and never re-fetches it.
	Prevout *Prevout `json:"prevout,omitempty"`

	ScriptSig    string `json:"scriptsig"`
	ScriptSigAsm string `json:"scriptsig_asm,omitempty"`

	// Witness is the ordered stack of witness items, hex encoded. Empty for
	// non-segwit inputs.
	Witness []string `json:"witness,omitempty"`

	IsCoinbase bool   `json:"is_coinbase"`
	Sequence   uint32 `json:"sequence"`
}

type Transaction struct {
	Version  uint32    `json:"version"`
	Locktime uint32    `json:"locktime"`
	Inputs   []*Input  `json:"vin"`
	Outputs  []*Output `json:"vout"`
}

// NewTransactionFromJSON decodes a mempool candidate. All hex fields are
// validated here so that serialization is total afterwards.
func NewTransactionFromJSON(b []byte) (*Transaction, error) {
	tx := &Transaction{}
	if err := json.Unmarshal(b, tx); err != nil {
		return nil, fmt.Errorf("error decoding transaction json: %w", err)
	}

	if len(tx.Inputs) == 0 {
		return nil, fmt.Errorf("transaction has no inputs")
	}

	if len(tx.Outputs) == 0 {
		return nil, fmt.Errorf("transaction has no outputs")
	}

	for i, in := range tx.Inputs {
		if err := validateHex(in.TxID, 64); err != nil {
			return nil, fmt.Errorf("input %d txid: %w", i, err)
		}

		if err := validateHex(in.ScriptSig, -1); err != nil {
			return nil, fmt.Errorf("input %d scriptsig: %w", i, err)
		}

		for j, item := range in.Witness {
			if err := validateHex(item, -1); err != nil {
				return nil, fmt.Errorf("input %d witness item %d: %w", i, j, err)
			}
		}
	}

	for i, out := range tx.Outputs {
		if err := validateHex(out.ScriptPubKey, -1); err != nil {
			return nil, fmt.Errorf("output %d scriptpubkey: %w", i, err)
		}
	}

	return tx, nil
}

// IsSegwit reports whether any input carries witness data.
func (tx *Transaction) IsSegwit() bool {
	for _, in := range tx.Inputs {
		if len(in.Witness) > 0 {
			return true
		}
	}

	return false
}

// Fee returns the transaction fee in satoshis. Every input must carry a
// prevout snapshot; a negative fee returns ErrNegativeFee.
func (tx *Transaction) Fee() (uint64, error) {
	var in, out uint64

	for _, input := range tx.Inputs {
		if input.Prevout == nil {
			return 0, fmt.Errorf("input %s:%d has no prevout snapshot", input.TxID, input.Vout)
		}

		in += input.Prevout.Value
	}

	for _, output := range tx.Outputs {
		out += output.Value
	}

	if out > in {
		return 0, ErrNegativeFee
	}

	return in - out, nil
}

// Weight returns the transaction weight: 4 weight units per base byte plus
// 1 per witness byte.
func (tx *Transaction) Weight() uint64 {
	base := uint64(len(tx.SerializeBase()))
	total := uint64(len(tx.Serialize()))

	return base*3 + total
}

func validateHex(s string, wantLen int) error {
	if wantLen >= 0 && len(s) != wantLen {
		return fmt.Errorf("expected %d hex characters, got %d", wantLen, len(s))
	}

	if _, err := hex.DecodeString(s); err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}

	return nil
}
