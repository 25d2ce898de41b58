// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/ensreader/config"
	"github.com/tranvictor/ensreader/networks"
	"github.com/tranvictor/ensreader/util/reader"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ensreader",
	Short: "Read ENS names, owners and records from the command line",
	Long: fmt.Sprintf(`ensreader resolves ENS-like names against Ethereum compatible chains.

It reads:
	1. ownership of a name across the registry, the registrar and the name wrapper
	2. address, text and ABI records through the universal resolver
	3. expiry, resolver and primary (reverse) names

Several lookups can be sent as one multicall round trip (see owner --batch and profile).

By default ensreader supports mainnet, sepolia and lukso-testnet. You can point a
network to your own node by setting its env var:
	1. For mainnet: %s
	2. For sepolia: %s
	3. For lukso-testnet: %s
or by passing --node. More networks can be added with "ensreader network add".`,
		networks.EthereumMainnet.GetNodeVariableName(),
		networks.Sepolia.GetNodeVariableName(),
		networks.LuksoTestnet.GetNodeVariableName(),
	),
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func preRun(cmd *cobra.Command, args []string) error {
	if err := config.ValidateOutput(config.Output); err != nil {
		return err
	}
	return networks.SetNetwork(config.NetworkString)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&config.NetworkString, "network", "k", "mainnet", "network to read from, see `ensreader network list`")
	pf.StringVar(&config.Node, "node", "", "RPC url to use instead of the network's default nodes")
	pf.Int64Var(&config.Block, "block", 0, "read at this block number instead of the latest one")
	pf.BoolVar(&config.Strict, "strict", false, "fail on record lookup errors instead of reporting no record")
	pf.StringVarP(&config.Output, "output", "o", config.OutputText, "output format: text, json or yaml")
	pf.BoolVarP(&config.Verbose, "verbose", "v", false, "log debug information to stderr")
	pf.BoolVar(&config.NoColor, "no-color", false, "disable colored output")
	pf.BoolVar(&config.Gateway, "gateway", true, "follow offchain lookups (EIP-3668) through their HTTP gateways")
	pf.DurationVar(&config.Timeout, "timeout", reader.TIMEOUT, "timeout of a single node or gateway request")
}
