package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var Sepolia Network = NewSepolia()

func NewSepolia() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "sepolia",
		ChainID:           11155111,
		NativeTokenSymbol: "ETH",
		BlockTime:         12,
		NodeVariableName:  "ETHEREUM_SEPOLIA_NODE",
		DefaultNodes: map[string]string{
			"sepolia-publicnode": "https://ethereum-sepolia-rpc.publicnode.com",
		},
		ManagedTLD:           "eth",
		RegistrarOwnerMethod: RegistrarOwnerOf,
		Contracts: map[string]common.Address{
			ContractRegistry:          common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
			ContractRegistrar:         common.HexToAddress("0x57f1887a8BF19b14fC0dF6Fd9B2acc9Af147eA85"),
			ContractNameWrapper:       common.HexToAddress("0x0635513f179D50A207757E05759CbD106d7dFcE8"),
			ContractUniversalResolver: common.HexToAddress("0xc8Af999e38273D658BE1b921b88A9Ddf005769cC"),
			ContractPublicResolver:    common.HexToAddress("0x8FADE66B79cC9f707aB26799354482EB93a5B7dD"),
			ContractMulticall3:        common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		},
	})
}
