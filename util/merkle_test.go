package util

import (
	"testing"

	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var merkleTestIDs = []string{
	"b2d725550ba419ef7452626f75faa8538bca695ab9284127b2210368455137d1",
	"9f0a5462ca027f74b8c8e872331da1a55520197ff8734b604505c93cc7dfb968",
	"c12d4c884f68728bbb119836bb07116d737752e5e775eb8a1338b572fd6489df",
}

func leaf(t *testing.T, txid string) *chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(txid)
	require.NoError(t, err)

	return hash
}

func parent(left, right *chainhash.Hash) *chainhash.Hash {
	combined := append(left.CloneBytes(), right.CloneBytes()...)
	hash := chainhash.DoubleHashH(combined)

	return &hash
}

func TestBuildMerkleRoot(t *testing.T) {
	t.Run("empty sequence is an error", func(t *testing.T) {
		_, err := BuildMerkleRoot(nil)
		require.Error(t, err)
	})

	t.Run("invalid txid is an error", func(t *testing.T) {
		_, err := BuildMerkleRoot([]string{"not-hex"})
		require.Error(t, err)
	})

	t.Run("single leaf is the reversed leaf digest", func(t *testing.T) {
		root, err := BuildMerkleRoot(merkleTestIDs[:1])
		require.NoError(t, err)

		assert.Equal(t, leaf(t, merkleTestIDs[0]), root)
		assert.Equal(t, merkleTestIDs[0], root.String())
	})

	t.Run("two leaves", func(t *testing.T) {
		root, err := BuildMerkleRoot(merkleTestIDs[:2])
		require.NoError(t, err)

		expected := parent(leaf(t, merkleTestIDs[0]), leaf(t, merkleTestIDs[1]))
		assert.Equal(t, expected, root)
	})

	t.Run("odd level duplicates the last leaf", func(t *testing.T) {
		root, err := BuildMerkleRoot(merkleTestIDs)
		require.NoError(t, err)

		l0, l1, l2 := leaf(t, merkleTestIDs[0]), leaf(t, merkleTestIDs[1]), leaf(t, merkleTestIDs[2])
		expected := parent(parent(l0, l1), parent(l2, l2))
		assert.Equal(t, expected, root)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		first, err := BuildMerkleRoot(merkleTestIDs)
		require.NoError(t, err)

		second, err := BuildMerkleRoot(merkleTestIDs)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestBuildMerkleTreeShape(t *testing.T) {
	root, err := BuildMerkleTree(merkleTestIDs)
	require.NoError(t, err)

	require.NotNil(t, root.Left)
	require.NotNil(t, root.Right)

	// the duplicated node pairs with itself
	assert.Equal(t, root.Right.Left, root.Right.Right)

	// leaves have no children
	assert.Nil(t, root.Left.Left.Left)
	assert.Nil(t, root.Left.Left.Right)
}
