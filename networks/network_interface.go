package networks

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Names of the contracts a network can configure.
const (
	ContractRegistry          = "registry"
	ContractRegistrar         = "registrar"
	ContractNameWrapper       = "nameWrapper"
	ContractUniversalResolver = "universalResolver"
	ContractMulticall3        = "multicall3"
	ContractPublicResolver    = "publicResolver"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetBlockTime() time.Duration

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	// GetManagedTLD is the top level domain whose second level names are
	// issued by the registrar, "eth" on Ethereum.
	GetManagedTLD() string
	// GetRegistrarOwnerMethod is the registrar's token owner getter,
	// ownerOf for ERC-721 registrars and tokenOwnerOf for LSP8 ones.
	GetRegistrarOwnerMethod() string
	GetContractAddress(name string) (common.Address, error)
	GetContracts() map[string]common.Address

	MarshalJSON() ([]byte, error)
}
