package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/ensreader/networks"
	"github.com/tranvictor/ensreader/util/reader"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

// loadNetworkConfig reads an inline json object or a .json/.toml file.
func loadNetworkConfig(config string) (networks.Network, error) {
	config = strings.TrimSpace(config)
	if config == "" {
		return nil, fmt.Errorf("--config is required")
	}
	if strings.HasPrefix(config, "{") && strings.HasSuffix(config, "}") {
		n, err := networks.NewNetworkFromJSON([]byte(config))
		if err != nil {
			return nil, fmt.Errorf("the provided json is not valid: %w", err)
		}
		return n, nil
	}
	content, err := os.ReadFile(config)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the provided config file: %w", err)
	}
	if strings.HasSuffix(config, ".toml") {
		return networks.NewNetworkFromTOML(content)
	}
	return networks.NewNetworkFromJSON(content)
}

type networkView struct {
	Name      string            `json:"name" yaml:"name"`
	ChainID   uint64            `json:"chainId" yaml:"chainId"`
	TLD       string            `json:"managedTld" yaml:"managedTld"`
	Nodes     map[string]string `json:"nodes" yaml:"nodes"`
	Contracts map[string]string `json:"contracts" yaml:"contracts"`
}

func runNetworkList(a *app) error {
	views := []networkView{}
	for _, n := range networks.GetSupportedNetworks() {
		v := networkView{
			Name:      n.GetName(),
			ChainID:   n.GetChainID(),
			TLD:       n.GetManagedTLD(),
			Nodes:     reader.GetNodes(n, ""),
			Contracts: map[string]string{},
		}
		for name, addr := range n.GetContracts() {
			v.Contracts[name] = addr.Hex()
		}
		views = append(views, v)
	}
	return a.render(views, func() {
		for i, v := range views {
			a.ui.Info("%d. Name: %s, Chain ID: %d, TLD: .%s", i+1, v.Name, v.ChainID, v.TLD)
			u := a.ui.Indent()
			u.Info("RPC nodes:")
			for _, key := range sortedKeys(v.Nodes) {
				u.Info("- %s: %s", key, v.Nodes[key])
			}
			u.Info("Contracts:")
			rows := [][2]string{}
			for _, key := range sortedKeys(v.Contracts) {
				rows = append(rows, [2]string{key, v.Contracts[key]})
			}
			u.Indent().KeyValue(rows)
		}
		a.ui.Info("")
		a.ui.Info("To add more networks: ensreader network add --config <file.json|file.toml|json>")
		a.ui.Info("To delete a network, delete its file in %s.", networks.CustomNetworksDir())
	})
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runNetworkAdd(a *app, config, dir string, force bool) error {
	n, err := loadNetworkConfig(config)
	if err != nil {
		return err
	}
	for _, name := range append([]string{n.GetName()}, n.GetAlternativeNames()...) {
		if _, err := networks.GetNetwork(name); err == nil {
			if !force {
				return fmt.Errorf("network with name %s already exists, use --force to replace it", name)
			}
			a.ui.Warn("Network with name %s already exists. It will be replaced.", name)
		}
	}
	if err := networks.AddNetwork(n, dir, force); err != nil {
		return fmt.Errorf("failed to add the new network: %w", err)
	}
	a.ui.Success("Network %s with chain ID %d added and saved to %s.", n.GetName(), n.GetChainID(), dir)
	return nil
}

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--config takes a json or toml file path OR an inline json object. Json looks like:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 1,
		"native_token_symbol": "ETH",
		"block_time": 12,
		"node_variable_name": "MY_NETWORK_NODE",
		"default_nodes": {
			"node_name_1": "node_url_1"
		},
		"managed_tld": "eth",
		"registrar_owner_method": "ownerOf",
		"contracts": {
			"registry": "0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e",
			"registrar": "0x57f1887a8BF19b14fC0dF6Fd9B2acc9Af147eA85",
			"nameWrapper": "0xD4416b13d2b3a9aBae7AcD5D6C2BbDBE25686401",
			"universalResolver": "0xce01f8eee7E479C928F8919abD53E553a36CeF67",
			"publicResolver": "0x231b0Ee14048e9dCcD1d247744d114a4EB5E8E63",
			"multicall3": "0xcA11bde05977b3631167028862bE2a173976CA11"
		}
	}
registry and multicall3 are required.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newOfflineApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runNetworkAdd(a, NetworkConfig, networks.CustomNetworksDir(), NetworkForce)
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newOfflineApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runNetworkList(a)
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the networks ensreader reads from",
}

func init() {
	addNetworkCmd.Flags().StringVarP(&NetworkConfig, "config", "c", "", "path to a json or toml network config, or an inline json config")
	addNetworkCmd.Flags().BoolVarP(&NetworkForce, "force", "f", false, "replace the network if it already exists")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
