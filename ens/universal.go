package ens

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

// resolveCall wraps an inner resolver call into
// resolve(bytes dnsName, bytes data) on the universal resolver.
func resolveCall(n networks.Network, name string, inner []byte) (Call, error) {
	target, err := n.GetContractAddress(networks.ContractUniversalResolver)
	if err != nil {
		return Call{}, err
	}
	dnsName, err := DNSEncode(name)
	if err != nil {
		return Call{}, err
	}
	data, err := jcommon.GetUniversalResolverABI().Pack("resolve", dnsName, inner)
	if err != nil {
		return Call{}, fmt.Errorf("packing resolve: %w", err)
	}
	return Call{To: target, Data: data}, nil
}

// unwrapResolve returns the inner result of a resolve() answer and the
// resolver that produced it.
func unwrapResolve(data []byte) ([]byte, common.Address, error) {
	out, err := jcommon.GetUniversalResolverABI().Unpack("resolve", data)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("decoding resolve result: %w", err)
	}
	inner := *abi.ConvertType(out[0], new([]byte)).(*[]byte)
	resolver := *abi.ConvertType(out[1], new(common.Address)).(*common.Address)
	return inner, resolver, nil
}
