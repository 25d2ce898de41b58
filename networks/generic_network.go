package networks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

var ErrContractNotFound = fmt.Errorf("contract not configured")

const (
	RegistrarOwnerOf      = "ownerOf"
	RegistrarTokenOwnerOf = "tokenOwnerOf"
)

type GenericNetworkConfig struct {
	Name                 string                    `json:"name"                   toml:"name"`
	AlternativeNames     []string                  `json:"alternative_names"      toml:"alternative_names"`
	ChainID              uint64                    `json:"chain_id"               toml:"chain_id"`
	NativeTokenSymbol    string                    `json:"native_token_symbol"    toml:"native_token_symbol"`
	BlockTime            uint64                    `json:"block_time"             toml:"block_time"`
	NodeVariableName     string                    `json:"node_variable_name"     toml:"node_variable_name"`
	DefaultNodes         map[string]string         `json:"default_nodes"          toml:"default_nodes"`
	ManagedTLD           string                    `json:"managed_tld"            toml:"managed_tld"`
	RegistrarOwnerMethod string                    `json:"registrar_owner_method" toml:"registrar_owner_method"`
	Contracts            map[string]common.Address `json:"contracts"              toml:"-"`
	// TOML has no text unmarshaler hook for map values, so addresses are
	// read as strings there and converted in NewNetworkFromTOML.
	ContractsTOML map[string]string `json:"-" toml:"contracts"`
}

// GenericNetwork is a network fully described by its config. Built-in
// networks and the ones loaded from ~/.ensreader/networks/ share it.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	if config.ManagedTLD == "" {
		config.ManagedTLD = "eth"
	}
	if config.RegistrarOwnerMethod == "" {
		config.RegistrarOwnerMethod = RegistrarOwnerOf
	}
	if config.Contracts == nil {
		config.Contracts = map[string]common.Address{}
	}
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) Validate() error {
	if gn.config.Name == "" {
		return fmt.Errorf("network name is empty")
	}
	if gn.config.ChainID == 0 {
		return fmt.Errorf("network '%s' has no chain id", gn.config.Name)
	}
	switch gn.config.RegistrarOwnerMethod {
	case RegistrarOwnerOf, RegistrarTokenOwnerOf:
	default:
		return fmt.Errorf(
			"network '%s': unsupported registrar owner method '%s'",
			gn.config.Name, gn.config.RegistrarOwnerMethod,
		)
	}
	for _, required := range []string{ContractRegistry, ContractMulticall3} {
		if _, err := gn.GetContractAddress(required); err != nil {
			return fmt.Errorf("network '%s': %w", gn.config.Name, err)
		}
	}
	return nil
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) GetManagedTLD() string {
	return gn.config.ManagedTLD
}

func (gn *GenericNetwork) GetRegistrarOwnerMethod() string {
	return gn.config.RegistrarOwnerMethod
}

func (gn *GenericNetwork) GetContractAddress(name string) (common.Address, error) {
	addr, found := gn.config.Contracts[name]
	if !found || addr == (common.Address{}) {
		return common.Address{}, fmt.Errorf(
			"%s on network %s: %w", name, gn.config.Name, ErrContractNotFound,
		)
	}
	return addr, nil
}

func (gn *GenericNetwork) GetContracts() map[string]common.Address {
	res := make(map[string]common.Address, len(gn.config.Contracts))
	for k, v := range gn.config.Contracts {
		res[k] = v
	}
	return res
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(gn.config, "", "  ")
}
