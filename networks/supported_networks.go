package networks

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	Sepolia,
	LuksoTestnet,
}

var globalSupportedNetworks = newSupportedNetworks(CustomNetworksDir())
var ErrNetworkNotFound = fmt.Errorf("network not found")

type networks struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	seen := map[string]bool{}
	res := []string{}
	for name := range n.networks {
		if !seen[name] {
			seen[name] = true
			res = append(res, name)
		}
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	res, found := n.networks[name]
	if !found {
		suggestions := n.suggest(name)
		if len(suggestions) > 0 {
			return nil, fmt.Errorf(
				"network name '%s' (did you mean %s?): %w",
				name, strings.Join(suggestions, ", "), ErrNetworkNotFound,
			)
		}
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) suggest(input string) []string {
	source := n.getSupportedNetworkNames()
	matches := fuzzy.Find(input, source)
	res := []string{}
	for i := 0; i < len(matches) && i < 3; i++ {
		res = append(res, matches[i].Str)
	}
	return res
}

func (n *networks) add(network Network, override bool) error {
	names := append([]string{network.GetName()}, network.GetAlternativeNames()...)
	for _, name := range names {
		if existing, found := n.networks[name]; found && !override &&
			existing.GetName() != network.GetName() {
			return fmt.Errorf("network with name or alternative name of '%s' already exists", name)
		}
	}
	for _, name := range names {
		n.networks[name] = network
	}
	n.networksByID[network.GetChainID()] = network
	return nil
}

func newSupportedNetworks(customDir string) *networks {
	result := networks{
		map[string]Network{},
		map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if err := result.add(n, false); err != nil {
			panic(err)
		}
	}

	if customDir == "" {
		return &result
	}
	customNetworks, err := loadCustomNetworks(customDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: Failed to load custom networks: %s. Ignore and continue with built-in networks.\n", err)
		return &result
	}
	for _, n := range customNetworks {
		// custom networks take precedence over the built-in ones
		_ = result.add(n, true)
	}
	return &result
}

// CustomNetworksDir is ~/.ensreader/networks, or empty when the home
// directory can't be determined.
func CustomNetworksDir() string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return filepath.Join(usr.HomeDir, ".ensreader", "networks")
}

func loadCustomNetworks(dir string) ([]Network, error) {
	jsonFiles, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}
	tomlFiles, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob toml files in %s: %w", dir, err)
	}

	networks := []Network{}
	for _, file := range append(jsonFiles, tomlFiles...) {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}

		var network Network
		if strings.HasSuffix(file, ".toml") {
			network, err = NewNetworkFromTOML(content)
		} else {
			network, err = NewNetworkFromJSON(content)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to parse network from file %s: %s. Ignore and continue with other custom networks.\n", file, err)
			continue
		}
		networks = append(networks, network)
	}
	return networks, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	if err := json.Unmarshal(content, &networkConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	network := NewGenericNetwork(networkConfig)
	if err := network.Validate(); err != nil {
		return nil, err
	}
	return network, nil
}

func NewNetworkFromTOML(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	if _, err := toml.Decode(string(content), &networkConfig); err != nil {
		return nil, fmt.Errorf("failed to decode network config: %w", err)
	}
	networkConfig.Contracts = map[string]common.Address{}
	for name, hex := range networkConfig.ContractsTOML {
		if !common.IsHexAddress(hex) {
			return nil, fmt.Errorf("contract %s: invalid address '%s'", name, hex)
		}
		networkConfig.Contracts[name] = common.HexToAddress(hex)
	}
	networkConfig.ContractsTOML = nil
	network := NewGenericNetwork(networkConfig)
	if err := network.Validate(); err != nil {
		return nil, err
	}
	return network, nil
}

func GetSupportedNetworks() []Network {
	seen := map[string]bool{}
	res := []Network{}
	for _, n := range globalSupportedNetworks.networks {
		if seen[n.GetName()] {
			continue
		}
		seen[n.GetName()] = true
		res = append(res, n)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].GetChainID() < res[j].GetChainID() })
	return res
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}

// AddNetwork registers the network for this process and stores it as
// <dir>/<name>.json so later runs pick it up.
func AddNetwork(network Network, dir string, force bool) error {
	if err := globalSupportedNetworks.add(network, force); err != nil {
		return err
	}
	if dir == "" {
		return fmt.Errorf("no directory to store custom networks")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	content, err := network.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal network: %w", err)
	}

	err = os.WriteFile(filepath.Join(dir, fmt.Sprintf("%s.json", network.GetName())), content, 0644)
	if err != nil {
		return fmt.Errorf("failed to write the new network to file: %w", err)
	}
	return nil
}
