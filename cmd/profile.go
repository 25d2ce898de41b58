package cmd

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/tranvictor/ensreader/ens"
)

var (
	ProfileTexts []string
	ProfileCoins []string
)

var defaultProfileTexts = []string{"avatar", "description", "url", "email", "com.twitter", "com.github"}

type profileView struct {
	Name      string               `json:"name" yaml:"name"`
	Owner     ownerView            `json:"owner" yaml:"owner"`
	Resolver  *common.Address      `json:"resolver" yaml:"resolver"`
	Addresses []*ens.AddressRecord `json:"addresses" yaml:"addresses"`
	Texts     map[string]string    `json:"texts" yaml:"texts"`
}

// runProfile reads owner, resolver, address and text records of a name in
// a single aggregate call.
func runProfile(ctx context.Context, a *app, name string, texts, coins []string) error {
	name, err := ens.Normalise(name)
	if err != nil {
		return err
	}
	calls := []ens.BatchCall{
		ens.GetOwner.Batch(ens.GetOwnerParams{Name: name}),
		ens.GetResolver.Batch(ens.GetResolverParams{Name: name, Strict: a.strict}),
	}
	for _, coin := range coins {
		calls = append(calls, ens.GetAddressRecord.Batch(ens.GetAddressRecordParams{
			Name:   name,
			Coin:   coin,
			Strict: a.strict,
		}))
	}
	for _, key := range texts {
		calls = append(calls, ens.GetTextRecord.Batch(ens.GetTextRecordParams{
			Name:   name,
			Key:    key,
			Strict: a.strict,
		}))
	}

	stop := a.spin("reading profile of " + name)
	results, err := a.client.Batch(ctx, calls...)
	stop()
	if err != nil {
		return err
	}

	view := profileView{Name: name, Texts: map[string]string{}}
	owner, err := ens.BatchResult[ens.Ownership](results, 0)
	if err != nil {
		return err
	}
	view.Owner = newOwnerView(name, owner)
	if view.Resolver, err = ens.BatchResult[*common.Address](results, 1); err != nil {
		return err
	}
	offset := 2
	for i := range coins {
		rec, err := ens.BatchResult[*ens.AddressRecord](results, offset+i)
		if err != nil {
			return err
		}
		if rec != nil {
			view.Addresses = append(view.Addresses, rec)
		}
	}
	offset += len(coins)
	for i, key := range texts {
		value, err := ens.BatchResult[*string](results, offset+i)
		if err != nil {
			return err
		}
		if value != nil {
			view.Texts[key] = *value
		}
	}

	return a.render(view, func() {
		a.ui.Section(name)
		level := view.Owner.Level
		if level == "" {
			level = "unowned"
		}
		a.ui.KeyValue([][2]string{
			{"owner", addressCell(a.ui, view.Owner.Owner)},
			{"registrant", addressCell(a.ui, view.Owner.Registrant)},
			{"level", level},
			{"resolver", addressCell(a.ui, view.Resolver)},
		})
		if len(view.Addresses) > 0 {
			a.ui.Info("addresses:")
			rows := make([][2]string, len(view.Addresses))
			for i, rec := range view.Addresses {
				rows[i] = [2]string{rec.Name, rec.Value}
			}
			a.ui.Indent().KeyValue(rows)
		}
		if len(view.Texts) > 0 {
			a.ui.Info("texts:")
			rows := [][2]string{}
			for _, key := range texts {
				if v, ok := view.Texts[key]; ok {
					rows = append(rows, [2]string{key, v})
				}
			}
			a.ui.Indent().KeyValue(rows)
		}
		if len(view.Addresses) == 0 && len(view.Texts) == 0 {
			a.ui.Warn("no records found")
		}
	})
}

var profileCmd = &cobra.Command{
	Use:   "profile <name>",
	Short: "Show owner, resolver, addresses and text records of a name in one round trip",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runProfile(commandContext(cmd.Context()), a, args[0], ProfileTexts, ProfileCoins)
	},
}

func init() {
	profileCmd.Flags().StringSliceVar(&ProfileTexts, "texts", defaultProfileTexts, "text record keys to read")
	profileCmd.Flags().StringSliceVar(&ProfileCoins, "coins", []string{"ETH", "BTC"}, "coins to read address records for")
	rootCmd.AddCommand(profileCmd)
}
