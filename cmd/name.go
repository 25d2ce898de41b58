package cmd

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/tranvictor/ensreader/ens"
)

var NameAllowMismatch bool

type nameView struct {
	Address common.Address  `json:"address" yaml:"address"`
	Result  *ens.NameResult `json:"result" yaml:"result"`
}

func runName(ctx context.Context, a *app, address string, allowMismatch bool) error {
	if !common.IsHexAddress(address) {
		return fmt.Errorf("'%s' is not an address", address)
	}
	addr := common.HexToAddress(address)
	stop := a.spin("reading primary name of " + addr.Hex())
	res, err := ens.GetName.Call(ctx, a.client, ens.GetNameParams{
		Address:       addr,
		AllowMismatch: allowMismatch,
		Strict:        a.strict,
	})
	stop()
	if err != nil {
		return err
	}
	return a.render(nameView{Address: addr, Result: res}, func() {
		if res == nil {
			a.ui.Warn("%s has no primary name", addr.Hex())
			return
		}
		a.ui.Info("%s", res.Name)
		if !res.Match {
			a.ui.Warn("%s does not resolve back to %s", res.Name, addr.Hex())
		}
	})
}

var nameCmd = &cobra.Command{
	Use:   "name <address>",
	Short: "Show the primary name of an address",
	Long: `Reads <address>.addr.reverse through the universal resolver. Names that don't
resolve back to the address are hidden unless --allow-mismatch is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runName(commandContext(cmd.Context()), a, args[0], NameAllowMismatch)
	},
}

func init() {
	nameCmd.Flags().BoolVar(&NameAllowMismatch, "allow-mismatch", false, "show names that don't resolve back to the address")
	rootCmd.AddCommand(nameCmd)
}
