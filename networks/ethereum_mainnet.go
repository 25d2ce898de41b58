package networks

import (
	"github.com/ethereum/go-ethereum/common"
)

var EthereumMainnet Network = NewEthereumMainnet()

func NewEthereumMainnet() *GenericNetwork {
	return NewGenericNetwork(GenericNetworkConfig{
		Name:              "mainnet",
		AlternativeNames:  []string{"ethereum"},
		ChainID:           1,
		NativeTokenSymbol: "ETH",
		BlockTime:         12,
		NodeVariableName:  "ETHEREUM_MAINNET_NODE",
		DefaultNodes: map[string]string{
			"mainnet-publicnode": "https://ethereum-rpc.publicnode.com",
			"mainnet-llamarpc":   "https://eth.llamarpc.com",
		},
		ManagedTLD:           "eth",
		RegistrarOwnerMethod: RegistrarOwnerOf,
		Contracts: map[string]common.Address{
			ContractRegistry:          common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"),
			ContractRegistrar:         common.HexToAddress("0x57f1887a8BF19b14fC0dF6Fd9B2acc9Af147eA85"),
			ContractNameWrapper:       common.HexToAddress("0xD4416b13d2b3a9aBae7AcD5D6C2BbDBE25686401"),
			ContractUniversalResolver: common.HexToAddress("0xce01f8eee7E479C928F8919abD53E553a36CeF67"),
			ContractPublicResolver:    common.HexToAddress("0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63"),
			ContractMulticall3:        common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11"),
		},
	})
}
