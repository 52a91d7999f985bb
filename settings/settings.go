package settings

import (
	"runtime"
	"time"

	safeconversion "github.com/bsv-blockchain/go-safe-conversion"
	"github.com/libsv/go-p2p/chaincfg/chainhash"
)

type BlockSettings struct {
	// Version of the block header.
	Version uint32

	// MaxWeight is the block capacity budget in weight units.
	MaxWeight uint64

	// Subsidy is the base block reward in satoshis, before fees.
	Subsidy uint64

	// Target is the 32-byte difficulty target the header hash must be
	// strictly below, big-endian (display) byte order.
	Target []byte

	// Bits is the compact encoding of the target carried in the header.
	Bits uint32

	HashPrevBlock *chainhash.Hash
	Height        uint32
	Timestamp     uint32
}

type CoinbaseSettings struct {
	ArbitraryText string
	PayoutScript  []byte
}

type MinerSettings struct {
	Workers      int
	InitialNonce uint32
}

type Settings struct {
	ClientName string
	MempoolDir string
	OutputFile string
	Block      BlockSettings
	Coinbase   CoinbaseSettings
	Miner      MinerSettings
}

func NewSettings() *Settings {
	timestamp := getInt("block_time", 0)
	if timestamp == 0 {
		timestamp = int(time.Now().Unix())
	}

	timestampUint32, err := safeconversion.IntToUint32(timestamp)
	if err != nil {
		panic(err)
	}

	heightUint32, err := safeconversion.IntToUint32(getInt("block_height", 840000))
	if err != nil {
		panic(err)
	}

	return &Settings{
		ClientName: getString("clientName", "blockminer"),
		MempoolDir: getString("mempool_dir", "mempool"),
		OutputFile: getString("output_file", "output.txt"),
		Block: BlockSettings{
			Version:       0x20000000,
			MaxWeight:     getUint64("block_max_weight", 4_000_000),
			Subsidy:       getUint64("block_subsidy", 625_000_000),
			Target:        getBytes("block_target", "0000ffff00000000000000000000000000000000000000000000000000000000"),
			Bits:          0x1f00ffff,
			HashPrevBlock: getHash("block_prev_hash", "0000000000000000000000000000000000000000000000000000000000000000"),
			Height:        heightUint32,
			Timestamp:     timestampUint32,
		},
		Coinbase: CoinbaseSettings{
			ArbitraryText: getString("coinbase_arbitrary_text", "/blockminer/"),
			PayoutScript:  getBytes("coinbase_payout_script", "76a914edf10a7fac6b32e24daa5305c723f3de58db1bc888ac"),
		},
		Miner: MinerSettings{
			Workers:      getInt("miner_workers", runtime.NumCPU()),
			InitialNonce: 0,
		},
	}
}
