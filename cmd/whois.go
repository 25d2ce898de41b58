package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/ui"
	"github.com/tranvictor/ensreader/util/addrbook"
)

func runWhois(ctx context.Context, a *app, resolver addrbook.AddressResolver, text string) error {
	addresses := jcommon.ScanForAddresses(text)
	if len(addresses) == 0 {
		return fmt.Errorf("couldn't find any addresses in the params")
	}
	results := make([]jcommon.Address, len(addresses))
	funcs := make([]func() error, len(addresses))
	for i, address := range addresses {
		funcs[i] = func() error {
			res, err := resolver.Resolve(ctx, address)
			if err != nil {
				return fmt.Errorf("%s: %w", address, err)
			}
			results[i] = res
			return nil
		}
	}
	stop := a.spin(fmt.Sprintf("looking up %d address(es)", len(addresses)))
	err, _ := jcommon.RunParallel(funcs...)
	stop()
	if err != nil {
		return err
	}
	return a.render(results, func() {
		for _, r := range results {
			a.ui.Info("%s: %s", r.Address, a.ui.Style(ui.StyledName(r)))
		}
	})
}

var whoisCmd = &cobra.Command{
	Use:   "whois <text>",
	Short: "Show the primary names of all addresses found in the params",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runWhois(commandContext(cmd.Context()), a, addrbook.NewENS(a.client, a.strict), strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(whoisCmd)
}
