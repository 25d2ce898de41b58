package ens

import (
	"bytes"
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	jcommon "github.com/tranvictor/ensreader/common"
)

// MaxCCIPRedirects bounds nested offchain lookups for one call.
const MaxCCIPRedirects = 4

// OffchainLookupSelector is the selector of
// OffchainLookup(address,string[],bytes,bytes4,bytes).
var OffchainLookupSelector = []byte{0x55, 0x6f, 0x18, 0x30}

// Gateway answers an offchain lookup: it fetches the response for
// callData from one of urls.
type Gateway interface {
	Fetch(ctx context.Context, sender common.Address, urls []string, callData []byte) ([]byte, error)
}

type OffchainLookup struct {
	Sender           common.Address
	URLs             []string
	CallData         []byte
	CallbackFunction [4]byte
	ExtraData        []byte
}

func IsOffchainLookup(revertData []byte) bool {
	return len(revertData) >= 4 && bytes.Equal(revertData[:4], OffchainLookupSelector)
}

func ParseOffchainLookup(revertData []byte) (*OffchainLookup, error) {
	if !IsOffchainLookup(revertData) {
		return nil, fmt.Errorf("revert data is not an offchain lookup")
	}
	lookupErr := jcommon.GetUniversalResolverABI().Errors["OffchainLookup"]
	values, err := lookupErr.Inputs.Unpack(revertData[4:])
	if err != nil {
		return nil, fmt.Errorf("decoding offchain lookup: %w", err)
	}
	return &OffchainLookup{
		Sender:           *abi.ConvertType(values[0], new(common.Address)).(*common.Address),
		URLs:             *abi.ConvertType(values[1], new([]string)).(*[]string),
		CallData:         *abi.ConvertType(values[2], new([]byte)).(*[]byte),
		CallbackFunction: *abi.ConvertType(values[3], new([4]byte)).(*[4]byte),
		ExtraData:        *abi.ConvertType(values[4], new([]byte)).(*[]byte),
	}, nil
}

var callbackArgs = func() abi.Arguments {
	bytesTy, err := abi.NewType("bytes", "", nil)
	if err != nil {
		panic(err)
	}
	return abi.Arguments{{Type: bytesTy}, {Type: bytesTy}}
}()

// Callback is the calldata to send back to Sender once the gateway
// answered: callbackFunction ++ abi.encode(response, extraData).
func (l *OffchainLookup) Callback(response []byte) ([]byte, error) {
	packed, err := callbackArgs.Pack(response, l.ExtraData)
	if err != nil {
		return nil, fmt.Errorf("packing offchain lookup callback: %w", err)
	}
	return append(l.CallbackFunction[:], packed...), nil
}

// EncodeOffchainLookup builds OffchainLookup revert data. Gateways and
// tests use it to produce what a resolver would revert with.
func EncodeOffchainLookup(l OffchainLookup) ([]byte, error) {
	lookupErr := jcommon.GetUniversalResolverABI().Errors["OffchainLookup"]
	packed, err := lookupErr.Inputs.Pack(l.Sender, l.URLs, l.CallData, l.CallbackFunction, l.ExtraData)
	if err != nil {
		return nil, err
	}
	return append(append([]byte{}, OffchainLookupSelector...), packed...), nil
}
