package ens

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

type GetTextRecordParams struct {
	Name   string
	Key    string
	Strict bool
}

var GetTextRecord = NewFunction[GetTextRecordParams, *string](
	"getTextRecord",
	func(n networks.Network, p GetTextRecordParams) (Call, error) {
		inner, err := jcommon.GetResolverABI().Pack("text", Namehash(p.Name), p.Key)
		if err != nil {
			return Call{}, fmt.Errorf("packing text: %w", err)
		}
		return resolveCall(n, p.Name, inner)
	},
	func(_ networks.Network, data []byte, callErr error, p GetTextRecordParams) (*string, error) {
		if callErr != nil {
			return lenient[*string](callErr, p.Strict)
		}
		inner, _, err := unwrapResolve(data)
		if err != nil {
			return nil, err
		}
		if len(inner) == 0 {
			return nil, nil
		}
		out, err := jcommon.GetResolverABI().Unpack("text", inner)
		if err != nil {
			return nil, fmt.Errorf("decoding text: %w", err)
		}
		value := *abi.ConvertType(out[0], new(string)).(*string)
		if value == "" {
			return nil, nil
		}
		return &value, nil
	},
)
