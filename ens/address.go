package ens

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

type GetAddressRecordParams struct {
	Name string
	// Coin is a coin name or a numeric coin type, ETH when empty.
	Coin string
	// BypassFormat returns the raw record as hex.
	BypassFormat bool
	Strict       bool
}

type AddressRecord struct {
	ID    uint64 `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// GetAddressRecord reads the address record of a coin. ETH uses the
// legacy addr(bytes32), other coins addr(bytes32,uint256).
var GetAddressRecord = NewFunction[GetAddressRecordParams, *AddressRecord](
	"getAddressRecord", encodeGetAddressRecord, decodeGetAddressRecord,
)

func encodeGetAddressRecord(n networks.Network, p GetAddressRecordParams) (Call, error) {
	coin, err := ParseCoin(p.Coin)
	if err != nil {
		return Call{}, err
	}
	node := Namehash(p.Name)
	var inner []byte
	if coin.ID == CoinETH {
		inner, err = jcommon.GetLegacyResolverABI().Pack("addr", node)
	} else {
		inner, err = jcommon.GetResolverABI().Pack("addr", node, new(big.Int).SetUint64(coin.ID))
	}
	if err != nil {
		return Call{}, fmt.Errorf("packing addr: %w", err)
	}
	return resolveCall(n, p.Name, inner)
}

func decodeGetAddressRecord(_ networks.Network, data []byte, callErr error, p GetAddressRecordParams) (*AddressRecord, error) {
	if callErr != nil {
		return lenient[*AddressRecord](callErr, p.Strict)
	}
	coin, err := ParseCoin(p.Coin)
	if err != nil {
		return nil, err
	}
	inner, _, err := unwrapResolve(data)
	if err != nil {
		return nil, err
	}
	if len(inner) == 0 {
		return nil, nil
	}

	var raw []byte
	if coin.ID == CoinETH {
		out, err := jcommon.GetLegacyResolverABI().Unpack("addr", inner)
		if err != nil {
			return nil, fmt.Errorf("decoding addr: %w", err)
		}
		addr := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
		raw = addr.Bytes()
	} else {
		out, err := jcommon.GetResolverABI().Unpack("addr", inner)
		if err != nil {
			return nil, fmt.Errorf("decoding addr: %w", err)
		}
		raw = *abi.ConvertType(out[0], new([]byte)).(*[]byte)
	}
	if len(raw) == 0 || bytes.Equal(raw, common.Address{}.Bytes()) {
		return nil, nil
	}

	value := hexutil.Encode(raw)
	if !p.BypassFormat {
		if value, err = coin.Format(raw); err != nil {
			return nil, err
		}
	}
	return &AddressRecord{ID: coin.ID, Name: coin.Name, Value: value}, nil
}
