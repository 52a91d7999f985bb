package settings

import (
	"encoding/hex"

	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"github.com/ordishs/gocore"
)

func getString(key, defaultValue string) string {
	value, found := gocore.Config().Get(key)
	if !found {
		return defaultValue
	}

	return value
}

func getInt(key string, defaultValue int) int {
	value, found := gocore.Config().GetInt(key)
	if !found {
		return defaultValue
	}

	return value
}

func getUint64(key string, defaultValue uint64) uint64 {
	value, found := gocore.Config().GetInt(key)
	if !found {
		return defaultValue
	}

	valueUint64, err := safeconversion.IntToUint64(value)
	if err != nil {
		panic(err)
	}

	return valueUint64
}

func getBytes(key, defaultValue string) []byte {
	value, err := hex.DecodeString(getString(key, defaultValue))
	if err != nil {
		panic(err)
	}

	return value
}

func getHash(key, defaultValue string) *chainhash.Hash {
	value, err := chainhash.NewHashFromStr(getString(key, defaultValue))
	if err != nil {
		panic(err)
	}

	return value
}
