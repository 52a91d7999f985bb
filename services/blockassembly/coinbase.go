package blockassembly

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/model"
	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/util"
	"github.com/libsv/go-p2p/chaincfg/chainhash"
)

const (
	// CoinbasePlaceholder stands in for the coinbase wtxid at index 0 of the
	// witness merkle tree. The coinbase witness id is defined to be zero.
	CoinbasePlaceholder = "0000000000000000000000000000000000000000000000000000000000000000"

	extranonceLength = 12
)

// witnessCommitmentHeader is OP_RETURN OP_PUSH36 followed by the BIP141
// commitment magic.
var witnessCommitmentHeader = []byte{0x6a, 0x24, 0xaa, 0x21, 0xa9, 0xed}

// witnessReservedValue is the 32-zero-byte value carried in the coinbase
// input witness and appended to the witness root before hashing.
var witnessReservedValue = make([]byte, 32)

// WitnessCommitment computes the commitment digest for the block's witness
// data: the merkle root over the coinbase placeholder followed by the
// selected wtxids, double-hashed together with the reserved value.
func WitnessCommitment(wtxids []string) ([]byte, error) {
	ids := make([]string, 0, len(wtxids)+1)
	ids = append(ids, CoinbasePlaceholder)
	ids = append(ids, wtxids...)

	root, err := util.BuildMerkleRoot(ids)
	if err != nil {
		return nil, fmt.Errorf("error building witness merkle root: %w", err)
	}

	preimage := make([]byte, 0, chainhash.HashSize*2)
	preimage = append(preimage, root.CloneBytes()...)
	preimage = append(preimage, witnessReservedValue...)

	return chainhash.DoubleHashB(preimage), nil
}

// BuildCoinbase constructs the reward-claiming transaction: one coinbase
// input carrying the reserved witness value, the payout output for subsidy
// plus fees, and the zero-value witness-commitment output. The witness makes
// the transaction segwit, so its two encodings differ.
func (ba *BlockAssembler) BuildCoinbase(fees uint64, wtxids []string) (*model.Transaction, error) {
	commitment, err := WitnessCommitment(wtxids)
	if err != nil {
		return nil, err
	}

	scriptSig := coinbaseScriptSig(ba.settings.Block.Height, ba.settings.Coinbase.ArbitraryText)

	commitmentScript := make([]byte, 0, len(witnessCommitmentHeader)+len(commitment))
	commitmentScript = append(commitmentScript, witnessCommitmentHeader...)
	commitmentScript = append(commitmentScript, commitment...)

	return &model.Transaction{
		Version:  2,
		Locktime: 0,
		Inputs: []*model.Input{{
			TxID:       CoinbasePlaceholder,
			Vout:       0xffffffff,
			ScriptSig:  hex.EncodeToString(scriptSig),
			Witness:    []string{hex.EncodeToString(witnessReservedValue)},
			IsCoinbase: true,
			Sequence:   0xffffffff,
		}},
		Outputs: []*model.Output{
			{
				ScriptPubKey: hex.EncodeToString(ba.settings.Coinbase.PayoutScript),
				Value:        ba.settings.Block.Subsidy + fees,
			},
			{
				ScriptPubKey: hex.EncodeToString(commitmentScript),
				Value:        0,
			},
		},
	}, nil
}

// coinbaseScriptSig assembles the scriptSig from its parts: the serialized
// block height push, the arbitrary text, and the extranonce bytes.
func coinbaseScriptSig(height uint32, arbitraryText string) []byte {
	heightBytes := make([]byte, 0, 4)
	for v := height; v > 0; v >>= 8 {
		heightBytes = append(heightBytes, byte(v))
	}

	script := make([]byte, 0, 1+len(heightBytes)+len(arbitraryText)+extranonceLength)
	script = append(script, byte(len(heightBytes)))
	script = append(script, heightBytes...)
	script = append(script, []byte(arbitraryText)...)

	extranonce := make([]byte, extranonceLength)
	_, _ = rand.Read(extranonce)

	return append(script, extranonce...)
}
