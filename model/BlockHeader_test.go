package model

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const block1Header = "0000002006226e46111a0b59caaf126043eb5bbf28c34f3a5e332a1fc7b2b73cf188910f1633819a69afbd7ce1f1a01c3b786fcbb023274f3b15172b24feadd4c80e6c6a8b491267ffff7f2004000000"

func TestNewBlockHeaderFromString(t *testing.T) {
	header, err := NewBlockHeaderFromString(block1Header)
	require.NoError(t, err)

	assert.Equal(t, uint32(0x20000000), header.Version)
	assert.Equal(t, "0f9188f13cb7b2c71f2a335e3a4fc328bf5beb436012afca590b1a11466e2206", header.HashPrevBlock.String())
	assert.Equal(t, "6a6c0ec8d4adfe242b17153b4f2723b0cb6f783b1ca0f1e17cbdaf699a813316", header.HashMerkleRoot.String())
	assert.Equal(t, uint32(1729251723), header.Timestamp)
	assert.Equal(t, uint32(0x207fffff), header.Bits)
	assert.Equal(t, uint32(4), header.Nonce)

	assert.Equal(t, "4c74e0128fef1a01469380c05b215afaf4cfe51183461f4a7996a84295b6925a", header.String())
}

func TestBlockHeaderBytesRoundTrip(t *testing.T) {
	header, err := NewBlockHeaderFromString(block1Header)
	require.NoError(t, err)

	headerBytes := header.Bytes()
	require.Len(t, headerBytes, 80)

	decoded, err := NewBlockHeaderFromBytes(headerBytes)
	require.NoError(t, err)
	assert.Equal(t, header, decoded)
}

func TestNewBlockHeaderFromBytesErrors(t *testing.T) {
	_, err := NewBlockHeaderFromBytes(make([]byte, 79))
	require.Error(t, err)

	_, err = NewBlockHeaderFromBytes(make([]byte, 81))
	require.Error(t, err)

	_, err = NewBlockHeaderFromString("zz")
	require.Error(t, err)
}

func TestHasMetTarget(t *testing.T) {
	header, err := NewBlockHeaderFromString(block1Header)
	require.NoError(t, err)

	t.Run("any hash beats the max target", func(t *testing.T) {
		target := bytes.Repeat([]byte{0xff}, 32)

		ok, hash := header.HasMetTarget(target)
		assert.True(t, ok)
		assert.Equal(t, header.Hash(), hash)
	})

	t.Run("no hash beats the zero target", func(t *testing.T) {
		target := make([]byte, 32)

		ok, hash := header.HasMetTarget(target)
		assert.False(t, ok)
		assert.Equal(t, header.Hash(), hash)
	})

	t.Run("comparison is strict", func(t *testing.T) {
		// target equal to the hash itself must not qualify
		hash := header.Hash()
		target := make([]byte, 32)

		for i, b := range hash.CloneBytes() {
			target[31-i] = b
		}

		ok, _ := header.HasMetTarget(target)
		assert.False(t, ok)
	})
}
