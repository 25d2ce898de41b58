package cmd

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/ens"
	"github.com/tranvictor/ensreader/ui"
)

var (
	OwnerContract string
	OwnerBatch    bool
)

type ownerView struct {
	Name       string          `json:"name" yaml:"name"`
	Level      string          `json:"level,omitempty" yaml:"level,omitempty"`
	Owner      *common.Address `json:"owner" yaml:"owner"`
	Registrant *common.Address `json:"registrant,omitempty" yaml:"registrant,omitempty"`
}

func newOwnerView(name string, o ens.Ownership) ownerView {
	v := ownerView{Name: name}
	if o == nil {
		return v
	}
	v.Level = string(o.Level())
	switch o := o.(type) {
	case ens.RegistrarOnlyOwnership:
		v.Registrant = &o.Registrant
	case ens.UnwrappedEth2ldOwnership:
		v.Owner = &o.Owner
		v.Registrant = o.Registrant
	case ens.WrappedOwnership:
		v.Owner = &o.Owner
	case ens.RegistryOwnership:
		v.Owner = &o.Owner
	}
	return v
}

func addressCell(u ui.UI, addr *common.Address) string {
	if addr == nil {
		return u.Style(ui.StyledText{Text: "-", Severity: ui.SeverityWarn})
	}
	return u.Style(ui.StyledText{Text: addr.Hex(), Severity: ui.SeveritySuccess})
}

func runOwner(ctx context.Context, a *app, names []string, contract ens.OwnerContract, batch bool) error {
	names, err := normaliseNames(names)
	if err != nil {
		return err
	}
	params := make([]ens.GetOwnerParams, len(names))
	for i, name := range names {
		params[i] = ens.GetOwnerParams{Name: name, Contract: contract}
	}

	stop := a.spin(fmt.Sprintf("reading owners of %d name(s)", len(names)))
	var results []ens.Ownership
	if batch {
		results, err = batchOwners(ctx, a, params)
	} else {
		results, err = parallelOwners(ctx, a, params)
	}
	stop()
	if err != nil {
		return err
	}

	views := make([]ownerView, len(names))
	for i := range names {
		views[i] = newOwnerView(names[i], results[i])
	}
	return a.render(views, func() {
		rows := make([][]string, len(views))
		for i, v := range views {
			level := v.Level
			if level == "" {
				level = a.ui.Style(ui.StyledText{Text: "unowned", Severity: ui.SeverityError})
			}
			rows[i] = []string{v.Name, level, addressCell(a.ui, v.Owner), addressCell(a.ui, v.Registrant)}
		}
		a.ui.Table([]string{"name", "level", "owner", "registrant"}, rows)
	})
}

func batchOwners(ctx context.Context, a *app, params []ens.GetOwnerParams) ([]ens.Ownership, error) {
	calls := make([]ens.BatchCall, len(params))
	for i, p := range params {
		calls[i] = ens.GetOwner.Batch(p)
	}
	raw, err := a.client.Batch(ctx, calls...)
	if err != nil {
		return nil, err
	}
	results := make([]ens.Ownership, len(raw))
	for i := range raw {
		if results[i], err = ens.BatchResult[ens.Ownership](raw, i); err != nil {
			return nil, err
		}
	}
	return results, nil
}

func parallelOwners(ctx context.Context, a *app, params []ens.GetOwnerParams) ([]ens.Ownership, error) {
	results := make([]ens.Ownership, len(params))
	funcs := make([]func() error, len(params))
	for i := range params {
		funcs[i] = func() error {
			o, err := ens.GetOwner.Call(ctx, a.client, params[i])
			if err != nil {
				return fmt.Errorf("%s: %w", params[i].Name, err)
			}
			results[i] = o
			return nil
		}
	}
	if err, _ := jcommon.RunParallel(funcs...); err != nil {
		return nil, err
	}
	return results, nil
}

var ownerCmd = &cobra.Command{
	Use:   "owner <name>...",
	Short: "Show who owns one or more names",
	Long: `Reads the registry, the name wrapper and, for second level names of the
network's managed TLD, the registrar, then reports the controlling layer.
--contract pins the lookup to one of registry, registrar or nameWrapper.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contract := ens.OwnerContract(OwnerContract)
		if contract != "" && !contract.Valid() {
			return fmt.Errorf("%w: %s", ens.ErrInvalidContractType, OwnerContract)
		}
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runOwner(commandContext(cmd.Context()), a, args, contract, OwnerBatch)
	},
}

func init() {
	ownerCmd.Flags().StringVarP(&OwnerContract, "contract", "c", "", "only read this contract: registry, registrar or nameWrapper")
	ownerCmd.Flags().BoolVarP(&OwnerBatch, "batch", "b", false, "resolve all names in a single multicall round trip")
	rootCmd.AddCommand(ownerCmd)
}
