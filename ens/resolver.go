package ens

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

type GetResolverParams struct {
	Name   string
	Strict bool
}

// GetResolver finds the resolver responsible for a name, walking up to
// wildcard resolvers of parent names.
var GetResolver = NewFunction[GetResolverParams, *common.Address](
	"getResolver",
	func(n networks.Network, p GetResolverParams) (Call, error) {
		target, err := n.GetContractAddress(networks.ContractUniversalResolver)
		if err != nil {
			return Call{}, err
		}
		dnsName, err := DNSEncode(p.Name)
		if err != nil {
			return Call{}, err
		}
		data, err := jcommon.GetUniversalResolverABI().Pack("findResolver", dnsName)
		if err != nil {
			return Call{}, fmt.Errorf("packing findResolver: %w", err)
		}
		return Call{To: target, Data: data}, nil
	},
	func(_ networks.Network, data []byte, callErr error, p GetResolverParams) (*common.Address, error) {
		if callErr != nil {
			return lenient[*common.Address](callErr, p.Strict)
		}
		out, err := jcommon.GetUniversalResolverABI().Unpack("findResolver", data)
		if err != nil {
			return nil, fmt.Errorf("decoding findResolver: %w", err)
		}
		addr := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
		if jcommon.IsZeroAddress(addr) {
			return nil, nil
		}
		return &addr, nil
	},
)
