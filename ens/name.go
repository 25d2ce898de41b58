package ens

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

type GetNameParams struct {
	Address common.Address
	// AllowMismatch keeps names whose forward resolution doesn't point
	// back to Address.
	AllowMismatch bool
	Strict        bool
}

type NameResult struct {
	Name                   string         `json:"name" yaml:"name"`
	Match                  bool           `json:"match" yaml:"match"`
	ReverseResolverAddress common.Address `json:"reverseResolverAddress" yaml:"reverseResolverAddress"`
	ResolverAddress        common.Address `json:"resolverAddress" yaml:"resolverAddress"`
}

// ReverseName is <lower case hex address>.addr.reverse.
func ReverseName(addr common.Address) string {
	return strings.ToLower(addr.Hex()[2:]) + ".addr.reverse"
}

// GetName reads the primary name of an address through the universal
// resolver's reverse(). Call failures and invalid names yield nil unless
// Strict; malformed return data is always an error.
var GetName = NewFunction[GetNameParams, *NameResult]("getName", encodeGetName, decodeGetName)

func encodeGetName(n networks.Network, p GetNameParams) (Call, error) {
	target, err := n.GetContractAddress(networks.ContractUniversalResolver)
	if err != nil {
		return Call{}, err
	}
	dnsName, err := DNSEncode(ReverseName(p.Address))
	if err != nil {
		return Call{}, err
	}
	data, err := jcommon.GetUniversalResolverABI().Pack("reverse", dnsName)
	if err != nil {
		return Call{}, fmt.Errorf("packing reverse: %w", err)
	}
	return Call{To: target, Data: data}, nil
}

func decodeGetName(_ networks.Network, data []byte, callErr error, p GetNameParams) (*NameResult, error) {
	if callErr != nil {
		return lenient[*NameResult](callErr, p.Strict)
	}
	result, err := decodeReverse(data, p)
	if errors.Is(err, ErrInvalidName) {
		return lenient[*NameResult](err, p.Strict)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func decodeReverse(data []byte, p GetNameParams) (*NameResult, error) {
	out, err := jcommon.GetUniversalResolverABI().Unpack("reverse", data)
	if err != nil {
		return nil, fmt.Errorf("decoding reverse: %w", err)
	}
	name := *abi.ConvertType(out[0], new(string)).(*string)
	resolved := *abi.ConvertType(out[1], new(common.Address)).(*common.Address)
	if name == "" {
		return nil, nil
	}
	match := resolved == p.Address
	if !match && !p.AllowMismatch {
		return nil, nil
	}
	normalised, err := Normalise(name)
	if err != nil {
		return nil, err
	}
	return &NameResult{
		Name:                   normalised,
		Match:                  match,
		ReverseResolverAddress: *abi.ConvertType(out[2], new(common.Address)).(*common.Address),
		ResolverAddress:        *abi.ConvertType(out[3], new(common.Address)).(*common.Address),
	}, nil
}
