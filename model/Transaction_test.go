package model

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The coinbase transaction of the genesis block, the best-known wire vector
// there is.
const (
	genesisScriptSig    = "04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73"
	genesisScriptPubKey = "4104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac"
	genesisTxID         = "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
)

func genesisCoinbase() *Transaction {
	return &Transaction{
		Version:  1,
		Locktime: 0,
		Inputs: []*Input{{
			TxID:       strings.Repeat("00", 32),
			Vout:       0xffffffff,
			ScriptSig:  genesisScriptSig,
			IsCoinbase: true,
			Sequence:   0xffffffff,
		}},
		Outputs: []*Output{{
			ScriptPubKey: genesisScriptPubKey,
			Value:        5_000_000_000,
		}},
	}
}

func TestSerializeBaseGenesis(t *testing.T) {
	expected := "01000000" +
		"01" + strings.Repeat("00", 32) + "ffffffff" +
		"4d" + genesisScriptSig + "ffffffff" +
		"01" + "00f2052a01000000" +
		"43" + genesisScriptPubKey +
		"00000000"

	tx := genesisCoinbase()

	assert.Equal(t, expected, hex.EncodeToString(tx.SerializeBase()))
	assert.Equal(t, genesisTxID, tx.TxID())
}

func TestSerializeNonSegwitMatchesBase(t *testing.T) {
	tx := genesisCoinbase()

	assert.False(t, tx.IsSegwit())
	assert.Equal(t, tx.SerializeBase(), tx.Serialize())
	assert.Equal(t, tx.TxID(), tx.WTxID())
	assert.Equal(t, uint64(len(tx.SerializeBase()))*4, tx.Weight())
}

func segwitTx() *Transaction {
	return &Transaction{
		Version:  2,
		Locktime: 0,
		Inputs: []*Input{
			{
				TxID:      strings.Repeat("11", 32),
				Vout:      1,
				Prevout:   &Prevout{ScriptPubKey: "0014" + strings.Repeat("22", 20), Value: 100_000},
				ScriptSig: "",
				Witness:   []string{strings.Repeat("33", 71), strings.Repeat("44", 33)},
				Sequence:  0xffffffff,
			},
			{
				TxID:      strings.Repeat("55", 32),
				Vout:      0,
				Prevout:   &Prevout{ScriptPubKey: "76a914" + strings.Repeat("66", 20) + "88ac", Value: 50_000},
				ScriptSig: "6a",
				Sequence:  0xfffffffe,
			},
		},
		Outputs: []*Output{
			{ScriptPubKey: "0014" + strings.Repeat("77", 20), Value: 120_000},
		},
	}
}

func TestSerializeSegwit(t *testing.T) {
	tx := segwitTx()
	require.True(t, tx.IsSegwit())

	base := tx.SerializeBase()
	full := tx.Serialize()

	t.Run("marker and flag follow the version", func(t *testing.T) {
		assert.Equal(t, base[:4], full[:4])
		assert.Equal(t, byte(0x00), full[4])
		assert.Equal(t, byte(0x01), full[5])
	})

	t.Run("witness stack layout", func(t *testing.T) {
		// marker+flag, then per input: stack count varint, item varints
		witnessSize := 2 + (1 + (1 + 71) + (1 + 33)) + 1
		assert.Equal(t, len(base)+witnessSize, len(full))

		// the non-witness input still emits an empty stack count
		assert.Equal(t, byte(0x00), full[len(full)-5])
	})

	t.Run("txid differs from wtxid", func(t *testing.T) {
		assert.NotEqual(t, tx.TxID(), tx.WTxID())
	})

	t.Run("weight is four per base byte plus one per witness byte", func(t *testing.T) {
		assert.Equal(t, uint64(len(base))*4+uint64(len(full)-len(base)), tx.Weight())
	})

	t.Run("serialization is stable", func(t *testing.T) {
		assert.Equal(t, full, tx.Serialize())
		assert.Equal(t, base, tx.SerializeBase())
	})
}

func TestFee(t *testing.T) {
	t.Run("fee is inputs minus outputs", func(t *testing.T) {
		fee, err := segwitTx().Fee()
		require.NoError(t, err)
		assert.Equal(t, uint64(30_000), fee)
	})

	t.Run("negative fee is rejected", func(t *testing.T) {
		tx := segwitTx()
		tx.Outputs[0].Value = 200_000

		_, err := tx.Fee()
		require.ErrorIs(t, err, ErrNegativeFee)
	})

	t.Run("missing prevout snapshot is an error", func(t *testing.T) {
		tx := segwitTx()
		tx.Inputs[0].Prevout = nil

		_, err := tx.Fee()
		require.Error(t, err)
	})
}

func TestNewTransactionFromJSON(t *testing.T) {
	validJSON := `{
		"version": 2,
		"locktime": 0,
		"vin": [{
			"txid": "` + strings.Repeat("ab", 32) + `",
			"vout": 3,
			"prevout": {
				"scriptpubkey": "76a914` + strings.Repeat("cd", 20) + `88ac",
				"scriptpubkey_type": "p2pkh",
				"value": 25000
			},
			"scriptsig": "6a",
			"witness": ["deadbeef"],
			"is_coinbase": false,
			"sequence": 4294967295
		}],
		"vout": [{
			"scriptpubkey": "6a",
			"value": 20000
		}]
	}`

	t.Run("valid candidate", func(t *testing.T) {
		tx, err := NewTransactionFromJSON([]byte(validJSON))
		require.NoError(t, err)

		assert.Equal(t, uint32(2), tx.Version)
		require.Len(t, tx.Inputs, 1)
		assert.Equal(t, uint32(3), tx.Inputs[0].Vout)
		assert.Equal(t, uint64(25000), tx.Inputs[0].Prevout.Value)
		assert.True(t, tx.IsSegwit())

		fee, err := tx.Fee()
		require.NoError(t, err)
		assert.Equal(t, uint64(5000), fee)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := NewTransactionFromJSON([]byte("{"))
		require.Error(t, err)
	})

	t.Run("no inputs", func(t *testing.T) {
		_, err := NewTransactionFromJSON([]byte(`{"version":1,"locktime":0,"vin":[],"vout":[{"scriptpubkey":"6a","value":1}]}`))
		require.Error(t, err)
	})

	t.Run("bad txid hex", func(t *testing.T) {
		bad := strings.Replace(validJSON, strings.Repeat("ab", 32), "zz", 1)
		_, err := NewTransactionFromJSON([]byte(bad))
		require.Error(t, err)
	})
}
