package util

import (
	"fmt"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
)

// MerkleNode is one node of the binary hash tree built over a block's
// transaction ids. Leaves have nil children.
type MerkleNode struct {
	Hash  chainhash.Hash
	Left  *MerkleNode
	Right *MerkleNode
}

// BuildMerkleTree builds the merkle tree over an ordered, non-empty list of
// display-order hex txids and returns its root node. Each leaf holds the
// byte-reversed (internal order) id. When a level has an odd number of nodes
// the last node is paired with itself, at every level of the tree.
func BuildMerkleTree(txids []string) (*MerkleNode, error) {
	if len(txids) == 0 {
		return nil, fmt.Errorf("merkle tree needs at least one txid")
	}

	level := make([]*MerkleNode, 0, len(txids))

	for _, txid := range txids {
		hash, err := chainhash.NewHashFromStr(txid)
		if err != nil {
			return nil, fmt.Errorf("invalid txid %q: %w", txid, err)
		}

		level = append(level, &MerkleNode{Hash: *hash})
	}

	for len(level) > 1 {
		next := make([]*MerkleNode, 0, (len(level)+1)/2)

		for i := 0; i < len(level); i += 2 {
			right := level[i] // odd level, the last node pairs with itself
			if i+1 < len(level) {
				right = level[i+1]
			}

			next = append(next, newMerkleParent(level[i], right))
		}

		level = next
	}

	return level[0], nil
}

// BuildMerkleRoot returns the root digest of the merkle tree over txids, in
// internal byte order.
func BuildMerkleRoot(txids []string) (*chainhash.Hash, error) {
	root, err := BuildMerkleTree(txids)
	if err != nil {
		return nil, err
	}

	hash := root.Hash

	return &hash, nil
}

func newMerkleParent(left, right *MerkleNode) *MerkleNode {
	combined := make([]byte, 0, chainhash.HashSize*2)
	combined = append(combined, left.Hash[:]...)
	combined = append(combined, right.Hash[:]...)

	return &MerkleNode{
		Hash:  chainhash.DoubleHashH(combined),
		Left:  left,
		Right: right,
	}
}
