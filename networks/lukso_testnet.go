package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

// LuksoTestnet issues .lyx names through an LSP8 registrar and has no
// name wrapper.
var LuksoTestnet Network = NewLuksoTestnet()

func NewLuksoTestnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "lukso-testnet",
		AlternativeNames:  []string{"lukso"},
		ChainID:           4201,
		NativeTokenSymbol: "LYXt",
		BlockTime:         12,
		NodeVariableName:  "LUKSO_TESTNET_NODE",
		DefaultNodes: map[string]string{
			"lukso-testnet": "https://rpc.testnet.lukso.network",
		},
		ManagedTLD:           "lyx",
		RegistrarOwnerMethod: RegistrarTokenOwnerOf,
		Contracts: map[string]common.Address{
			ContractRegistry:          common.HexToAddress("0x648497a80c0499BEb5e18965Ba45c9A8B809EB4e"),
			ContractRegistrar:         common.HexToAddress("0x1c295D9F10d6Ca6FFBF5c71Edc03ef4dFB06a3B9"),
			ContractUniversalResolver: common.HexToAddress("0x81FDA4082c54871a525Cca24947fbeEbB036EaCE"),
			ContractPublicResolver:    common.HexToAddress("0x40Ff65b86376A9912Ef5Ec7fecfAEbec5C2F2AB7"),
			ContractMulticall3:        common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		},
	})
}
