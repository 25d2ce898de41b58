package ens

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

type multicallCall struct {
	Target   common.Address
	CallData []byte
}

type MulticallParams struct {
	Calls []Call
}

// Multicall runs calls through Multicall3 tryAggregate with
// requireSuccess=false, so a reverting call only fails its own entry. It
// refuses to encode an empty list so that one is never executed.
var Multicall = NewFunction[MulticallParams, []CallResult](
	"multicall",
	func(n networks.Network, p MulticallParams) (Call, error) {
		if len(p.Calls) == 0 {
			return Call{}, ErrEmptyBatch
		}
		return EncodeMulticall(n, p.Calls)
	},
	func(_ networks.Network, data []byte, callErr error, p MulticallParams) ([]CallResult, error) {
		if callErr != nil {
			return nil, callErr
		}
		results, err := DecodeMulticall(data)
		if err != nil {
			return nil, err
		}
		if len(results) != len(p.Calls) {
			return nil, fmt.Errorf("multicall returned %d results for %d calls", len(results), len(p.Calls))
		}
		return results, nil
	},
)

// EncodeMulticall packs calls into one tryAggregate call on the network's
// multicall3 contract. An empty list encodes but must not be executed.
func EncodeMulticall(n networks.Network, calls []Call) (Call, error) {
	target, err := n.GetContractAddress(networks.ContractMulticall3)
	if err != nil {
		return Call{}, err
	}
	args := make([]multicallCall, len(calls))
	for i, c := range calls {
		args[i] = multicallCall{Target: c.To, CallData: c.Data}
	}
	data, err := jcommon.GetMultiCallABI().Pack("tryAggregate", false, args)
	if err != nil {
		return Call{}, fmt.Errorf("packing tryAggregate: %w", err)
	}
	return Call{To: target, Data: data}, nil
}

// DecodeMulticall unpacks the tryAggregate answer, keeping order.
func DecodeMulticall(data []byte) ([]CallResult, error) {
	out, err := jcommon.GetMultiCallABI().Unpack("tryAggregate", data)
	if err != nil {
		return nil, fmt.Errorf("decoding tryAggregate result: %w", err)
	}
	results := *abi.ConvertType(out[0], new([]CallResult)).(*[]CallResult)
	return results, nil
}

func encodeBlockTimestamp(n networks.Network) (Call, error) {
	target, err := n.GetContractAddress(networks.ContractMulticall3)
	if err != nil {
		return Call{}, err
	}
	data, err := jcommon.GetMultiCallABI().Pack("getCurrentBlockTimestamp")
	if err != nil {
		return Call{}, err
	}
	return Call{To: target, Data: data}, nil
}

func decodeBlockTimestamp(data []byte) (*big.Int, error) {
	out, err := jcommon.GetMultiCallABI().Unpack("getCurrentBlockTimestamp", data)
	if err != nil {
		return nil, fmt.Errorf("decoding block timestamp: %w", err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
