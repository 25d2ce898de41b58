package ens

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
)

const (
	CoinBTC  uint64 = 0
	CoinLTC  uint64 = 2
	CoinDOGE uint64 = 3
	CoinETH  uint64 = 60
	CoinETC  uint64 = 61
	CoinSOL  uint64 = 501

	// evmCoinFlag marks coin types derived from an EVM chain id (ENSIP-11).
	evmCoinFlag uint64 = 0x80000000
)

type Coin struct {
	ID     uint64
	Name   string
	format func(b []byte) (string, error)
}

// Format renders raw record bytes in the coin's native address format.
func (c Coin) Format(b []byte) (string, error) {
	if c.format == nil {
		return hexutil.Encode(b), nil
	}
	return c.format(b)
}

var ltcParams = func() chaincfg.Params {
	p := chaincfg.MainNetParams
	p.Name = "litecoin"
	p.PubKeyHashAddrID = 0x30
	p.ScriptHashAddrID = 0x32
	p.Bech32HRPSegwit = "ltc"
	return p
}()

var dogeParams = func() chaincfg.Params {
	p := chaincfg.MainNetParams
	p.Name = "dogecoin"
	p.PubKeyHashAddrID = 0x1e
	p.ScriptHashAddrID = 0x16
	p.Bech32HRPSegwit = ""
	return p
}()

var coins = []Coin{
	{ID: CoinBTC, Name: "BTC", format: scriptFormatter(&chaincfg.MainNetParams)},
	{ID: CoinLTC, Name: "LTC", format: scriptFormatter(&ltcParams)},
	{ID: CoinDOGE, Name: "DOGE", format: scriptFormatter(&dogeParams)},
	{ID: CoinETH, Name: "ETH", format: formatEVM},
	{ID: CoinETC, Name: "ETC", format: formatEVM},
	{ID: CoinSOL, Name: "SOL", format: formatSOL},
}

// evm chains with a well known coin name
var evmCoinNames = map[uint64]string{
	10:    "OP",
	56:    "BSC",
	137:   "MATIC",
	8453:  "BASE",
	42161: "ARB1",
	42:    "LYX",
}

// EVMCoinType is the coin type of an EVM chain.
func EVMCoinType(chainID uint64) uint64 {
	return evmCoinFlag | chainID
}

func CoinByID(id uint64) (Coin, bool) {
	for _, c := range coins {
		if c.ID == id {
			return c, true
		}
	}
	if id&evmCoinFlag != 0 {
		chainID := id &^ evmCoinFlag
		name, ok := evmCoinNames[chainID]
		if !ok {
			name = fmt.Sprintf("evm-%d", chainID)
		}
		return Coin{ID: id, Name: name, format: formatEVM}, true
	}
	return Coin{}, false
}

func CoinByName(name string) (Coin, bool) {
	upper := strings.ToUpper(name)
	for _, c := range coins {
		if c.Name == upper {
			return c, true
		}
	}
	for chainID, n := range evmCoinNames {
		if n == upper {
			return CoinByID(EVMCoinType(chainID))
		}
	}
	if strings.HasPrefix(strings.ToLower(name), "evm-") {
		if chainID, err := strconv.ParseUint(name[4:], 10, 32); err == nil {
			return CoinByID(EVMCoinType(chainID))
		}
	}
	return Coin{}, false
}

// ParseCoin accepts a coin name (ETH, btc, OP, evm-10) or a numeric coin
// type. Empty means ETH. Unknown numeric types are allowed and format as
// hex; unknown names are an error.
func ParseCoin(s string) (Coin, error) {
	if s == "" {
		c, _ := CoinByID(CoinETH)
		return c, nil
	}
	if id, err := strconv.ParseUint(s, 10, 64); err == nil {
		if c, ok := CoinByID(id); ok {
			return c, nil
		}
		return Coin{ID: id, Name: s}, nil
	}
	if c, ok := CoinByName(s); ok {
		return c, nil
	}
	return Coin{}, fmt.Errorf("%w: %q", ErrCoinNotFound, s)
}

func formatEVM(b []byte) (string, error) {
	if len(b) != common.AddressLength {
		return "", fmt.Errorf("evm address must be %d bytes, got %d", common.AddressLength, len(b))
	}
	return common.BytesToAddress(b).Hex(), nil
}

func formatSOL(b []byte) (string, error) {
	if len(b) != 32 {
		return "", fmt.Errorf("solana address must be 32 bytes, got %d", len(b))
	}
	return base58.Encode(b), nil
}

// scriptFormatter decodes a scriptPubKey into the chain's address format.
func scriptFormatter(params *chaincfg.Params) func([]byte) (string, error) {
	return func(b []byte) (string, error) {
		_, addrs, _, err := txscript.ExtractPkScriptAddrs(b, params)
		if err != nil {
			return "", fmt.Errorf("decoding %s script: %w", params.Name, err)
		}
		if len(addrs) != 1 {
			return "", fmt.Errorf("%s script has %d addresses", params.Name, len(addrs))
		}
		return addrs[0].EncodeAddress(), nil
	}
}
