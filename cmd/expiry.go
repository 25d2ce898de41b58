package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tranvictor/ensreader/ens"
	"github.com/tranvictor/ensreader/ui"
)

var ExpiryContract string

type expiryView struct {
	Name   string      `json:"name" yaml:"name"`
	Expiry *ens.Expiry `json:"expiry" yaml:"expiry"`
}

func expirySeverity(s ens.ExpiryStatus) ui.Severity {
	switch s {
	case ens.ExpiryActive:
		return ui.SeveritySuccess
	case ens.ExpiryGracePeriod:
		return ui.SeverityWarn
	}
	return ui.SeverityError
}

func runExpiry(ctx context.Context, a *app, name string, contract ens.OwnerContract) error {
	name, err := ens.Normalise(name)
	if err != nil {
		return err
	}
	stop := a.spin("reading expiry of " + name)
	expiry, err := ens.GetExpiry.Call(ctx, a.client, ens.GetExpiryParams{Name: name, Contract: contract})
	stop()
	if err != nil {
		return err
	}
	return a.render(expiryView{Name: name, Expiry: expiry}, func() {
		if expiry == nil {
			a.ui.Warn("%s has no expiry", name)
			return
		}
		a.ui.KeyValue([][2]string{
			{"name", name},
			{"expiry", expiry.Expiry.Format("2006-01-02 15:04:05 MST")},
			{"grace period", fmt.Sprintf("%.0f days", expiry.GracePeriod.Hours()/24)},
			{"status", a.ui.Style(ui.StyledText{Text: string(expiry.Status), Severity: expirySeverity(expiry.Status)})},
		})
	})
}

var expiryCmd = &cobra.Command{
	Use:   "expiry <name>",
	Short: "Show when a name expires",
	Long: `The registrar keeps expiries of second level names of the network's managed TLD.
Wrapped names carry their own expiry, read it with --contract nameWrapper.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runExpiry(commandContext(cmd.Context()), a, args[0], ens.OwnerContract(ExpiryContract))
	},
}

func init() {
	expiryCmd.Flags().StringVarP(&ExpiryContract, "contract", "c", string(ens.ContractRegistrar), "registrar or nameWrapper")
	rootCmd.AddCommand(expiryCmd)
}
