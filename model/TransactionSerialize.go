package model

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/util"
	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/ordishs/go-utils"
)

// SerializeBase returns the legacy wire encoding, without marker, flag or
// witness data. This is the preimage of the transaction id.
func (tx *Transaction) SerializeBase() []byte {
	return tx.serialize(false)
}

// Serialize returns the witness-inclusive wire encoding. For a non-segwit
// transaction this is byte-identical to SerializeBase.
func (tx *Transaction) Serialize() []byte {
	return tx.serialize(tx.IsSegwit())
}

func (tx *Transaction) serialize(withWitness bool) []byte {
	buf := make([]byte, 0, 256)
	buf = appendUint32(buf, tx.Version)

	if withWitness {
		buf = append(buf, 0x00, 0x01)
	}

	buf = util.AppendVarint(buf, uint64(len(tx.Inputs)))

	for _, in := range tx.Inputs {
		prevTxID, _ := hex.DecodeString(in.TxID) // validated on construction
		buf = append(buf, utils.ReverseSlice(prevTxID)...)
		buf = appendUint32(buf, in.Vout)

		scriptSig, _ := hex.DecodeString(in.ScriptSig)
		buf = util.AppendVarint(buf, uint64(len(scriptSig)))
		buf = append(buf, scriptSig...)
		buf = appendUint32(buf, in.Sequence)
	}

	buf = util.AppendVarint(buf, uint64(len(tx.Outputs)))

	for _, out := range tx.Outputs {
		buf = appendUint64(buf, out.Value)

		scriptPubKey, _ := hex.DecodeString(out.ScriptPubKey)
		buf = util.AppendVarint(buf, uint64(len(scriptPubKey)))
		buf = append(buf, scriptPubKey...)
	}

	if withWitness {
		// every input emits a witness stack count, including non-segwit ones
		for _, in := range tx.Inputs {
			buf = util.AppendVarint(buf, uint64(len(in.Witness)))

			for _, item := range in.Witness {
				w, _ := hex.DecodeString(item)
				buf = util.AppendVarint(buf, uint64(len(w)))
				buf = append(buf, w...)
			}
		}
	}

	return appendUint32(buf, tx.Locktime)
}

// TxIDChainHash returns the double-SHA256 of the base encoding, internal order.
func (tx *Transaction) TxIDChainHash() *chainhash.Hash {
	hash := chainhash.DoubleHashH(tx.SerializeBase())
	return &hash
}

// TxID returns the transaction id in display order.
func (tx *Transaction) TxID() string {
	return tx.TxIDChainHash().String()
}

// WTxIDChainHash returns the double-SHA256 of the witness-inclusive encoding,
// internal order.
func (tx *Transaction) WTxIDChainHash() *chainhash.Hash {
	hash := chainhash.DoubleHashH(tx.Serialize())
	return &hash
}

// WTxID returns the witness transaction id in display order.
func (tx *Transaction) WTxID() string {
	return tx.WTxIDChainHash().String()
}

func appendUint32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)

	return append(b, tmp[:]...)
}

func appendUint64(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)

	return append(b, tmp[:]...)
}
