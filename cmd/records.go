package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/tranvictor/ensreader/ens"
)

var (
	AddrCoin        string
	AddrRaw         bool
	AbiContentTypes uint64
)

type addrView struct {
	Name   string             `json:"name" yaml:"name"`
	Record *ens.AddressRecord `json:"record" yaml:"record"`
}

func runAddr(ctx context.Context, a *app, name, coin string, raw bool) error {
	name, err := ens.Normalise(name)
	if err != nil {
		return err
	}
	stop := a.spin("reading address record of " + name)
	rec, err := ens.GetAddressRecord.Call(ctx, a.client, ens.GetAddressRecordParams{
		Name:         name,
		Coin:         coin,
		BypassFormat: raw,
		Strict:       a.strict,
	})
	stop()
	if err != nil {
		return err
	}
	return a.render(addrView{Name: name, Record: rec}, func() {
		if rec == nil {
			label := coin
			if label == "" {
				label = "ETH"
			}
			a.ui.Warn("%s has no %s address", name, label)
			return
		}
		a.ui.KeyValue([][2]string{
			{"name", name},
			{"coin", fmt.Sprintf("%s (%d)", rec.Name, rec.ID)},
			{"address", rec.Value},
		})
	})
}

type textView struct {
	Name  string  `json:"name" yaml:"name"`
	Key   string  `json:"key" yaml:"key"`
	Value *string `json:"value" yaml:"value"`
}

func runText(ctx context.Context, a *app, name, key string) error {
	name, err := ens.Normalise(name)
	if err != nil {
		return err
	}
	stop := a.spin("reading text record of " + name)
	value, err := ens.GetTextRecord.Call(ctx, a.client, ens.GetTextRecordParams{
		Name:   name,
		Key:    key,
		Strict: a.strict,
	})
	stop()
	if err != nil {
		return err
	}
	return a.render(textView{Name: name, Key: key, Value: value}, func() {
		if value == nil {
			a.ui.Warn("%s has no %s record", name, key)
			return
		}
		a.ui.Info("%s", *value)
	})
}

type abiView struct {
	Name   string         `json:"name" yaml:"name"`
	Record *ens.AbiRecord `json:"record" yaml:"record"`
}

func runAbi(ctx context.Context, a *app, name string, contentTypes uint64) error {
	name, err := ens.Normalise(name)
	if err != nil {
		return err
	}
	stop := a.spin("reading ABI record of " + name)
	rec, err := ens.GetAbiRecord.Call(ctx, a.client, ens.GetAbiRecordParams{
		Name:                  name,
		SupportedContentTypes: contentTypes,
		Strict:                a.strict,
	})
	stop()
	if err != nil {
		return err
	}
	return a.render(abiView{Name: name, Record: rec}, func() {
		if rec == nil {
			a.ui.Warn("%s has no ABI record", name)
			return
		}
		a.ui.KeyValue([][2]string{
			{"content type", fmt.Sprintf("%d", rec.ContentType)},
			{"decoded", fmt.Sprintf("%t", rec.Decoded)},
		})
		if s, ok := rec.ABI.(string); ok {
			a.ui.Info("%s", s)
			return
		}
		body, err := json.MarshalIndent(rec.ABI, "", "  ")
		if err != nil {
			a.ui.Error("couldn't print the ABI: %s", err)
			return
		}
		a.ui.Info("%s", body)
	})
}

type resolverView struct {
	Name     string          `json:"name" yaml:"name"`
	Resolver *common.Address `json:"resolver" yaml:"resolver"`
}

func runResolver(ctx context.Context, a *app, name string) error {
	name, err := ens.Normalise(name)
	if err != nil {
		return err
	}
	stop := a.spin("finding resolver of " + name)
	resolver, err := ens.GetResolver.Call(ctx, a.client, ens.GetResolverParams{Name: name, Strict: a.strict})
	stop()
	if err != nil {
		return err
	}
	return a.render(resolverView{Name: name, Resolver: resolver}, func() {
		if resolver == nil {
			a.ui.Warn("%s has no resolver", name)
			return
		}
		a.ui.Info("%s", resolver.Hex())
	})
}

var addrCmd = &cobra.Command{
	Use:   "addr <name>",
	Short: "Show the address record of a name",
	Long: `Coins are given by name (ETH, BTC, LTC, DOGE, ETC, SOL, OP, BASE, ARB1, ...),
by evm-<chain id> or by their numeric coin type. ETH is the default.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runAddr(commandContext(cmd.Context()), a, args[0], AddrCoin, AddrRaw)
	},
}

var textCmd = &cobra.Command{
	Use:   "text <name> <key>",
	Short: "Show a text record of a name, e.g. avatar, url or com.twitter",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runText(commandContext(cmd.Context()), a, args[0], args[1])
	},
}

var abiCmd = &cobra.Command{
	Use:   "abi <name>",
	Short: "Show the ABI record of a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runAbi(commandContext(cmd.Context()), a, args[0], AbiContentTypes)
	},
}

var resolverCmd = &cobra.Command{
	Use:   "resolver <name>",
	Short: "Show the resolver responsible for a name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runResolver(commandContext(cmd.Context()), a, args[0])
	},
}

func init() {
	addrCmd.Flags().StringVarP(&AddrCoin, "coin", "c", "", "coin name or coin type")
	addrCmd.Flags().BoolVar(&AddrRaw, "raw", false, "print the record bytes as hex instead of the coin's address format")
	abiCmd.Flags().Uint64Var(&AbiContentTypes, "content-types", ens.AllAbiContentTypes, "bitmask of accepted content types: 1 json, 2 zlib json, 4 cbor, 8 uri")

	rootCmd.AddCommand(addrCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(abiCmd)
	rootCmd.AddCommand(resolverCmd)
}
