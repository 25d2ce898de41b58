package cmd

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/tranvictor/ensreader/ens"
	"github.com/tranvictor/ensreader/networks"
)

const secondsPerYear = 365 * 24 * 60 * 60

var (
	CommitOwner    string
	CommitDuration string
	CommitResolver string
	CommitAddress  string
	CommitReverse  bool
	CommitPlatform string
	CommitCampaign uint64
)

// parseRegistrationDuration accepts seconds, Ny, Nd or a Go duration.
func parseRegistrationDuration(s string) (*big.Int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return nil, fmt.Errorf("duration is empty")
	}
	if secs, err := strconv.ParseUint(s, 10, 64); err == nil {
		return new(big.Int).SetUint64(secs), nil
	}
	for suffix, unit := range map[string]uint64{"y": secondsPerYear, "d": 24 * 60 * 60} {
		if n, ok := strings.CutSuffix(s, suffix); ok {
			v, err := strconv.ParseUint(n, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid duration '%s'", s)
			}
			return new(big.Int).Mul(new(big.Int).SetUint64(v), new(big.Int).SetUint64(unit)), nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return nil, fmt.Errorf("invalid duration '%s'", s)
	}
	return big.NewInt(int64(d / time.Second)), nil
}

func parseOptionalAddress(flag, s string) (common.Address, error) {
	if s == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("--%s: '%s' is not an address", flag, s)
	}
	return common.HexToAddress(s), nil
}

type commitmentView struct {
	Name            string         `json:"name" yaml:"name"`
	Owner           common.Address `json:"owner" yaml:"owner"`
	Duration        *big.Int       `json:"duration" yaml:"duration"`
	Resolver        common.Address `json:"resolver" yaml:"resolver"`
	ResolvedAddress common.Address `json:"resolvedAddress" yaml:"resolvedAddress"`
	ReverseRecord   bool           `json:"reverseRecord" yaml:"reverseRecord"`
	Secret          common.Hash    `json:"secret" yaml:"secret"`
	Commitment      common.Hash    `json:"commitment" yaml:"commitment"`
}

type commitmentOptions struct {
	owner, duration, resolver, address string
	reverse                            bool
	secret                             ens.SecretOptions
}

func buildCommitment(n networks.Network, label string, o commitmentOptions) (*commitmentView, error) {
	label, err := ens.Normalise(label)
	if err != nil {
		return nil, err
	}
	labels := ens.SplitLabels(label)
	if len(labels) == 2 && labels[1] == n.GetManagedTLD() {
		label = labels[0]
	} else if len(labels) != 1 {
		return nil, fmt.Errorf("%w: commitments are made for a single label or a .%s second level name, got %q",
			ens.ErrUnsupportedNameType, n.GetManagedTLD(), label)
	}
	if o.owner == "" {
		return nil, fmt.Errorf("--owner is required")
	}
	owner, err := parseOptionalAddress("owner", o.owner)
	if err != nil {
		return nil, err
	}
	duration, err := parseRegistrationDuration(o.duration)
	if err != nil {
		return nil, err
	}
	resolver, err := parseOptionalAddress("resolver", o.resolver)
	if err != nil {
		return nil, err
	}
	if o.resolver == "" {
		if public, err := n.GetContractAddress(networks.ContractPublicResolver); err == nil {
			resolver = public
		}
	}
	resolved, err := parseOptionalAddress("address", o.address)
	if err != nil {
		return nil, err
	}
	if resolver == (common.Address{}) && (o.reverse || resolved != (common.Address{})) {
		return nil, fmt.Errorf("setting an address or a reverse record needs a resolver")
	}
	secret, err := ens.RandomSecret(randomSource, o.secret)
	if err != nil {
		return nil, err
	}
	params := ens.RegistrationParams{
		Name:            label,
		Owner:           owner,
		Duration:        duration,
		Secret:          secret,
		Resolver:        resolver,
		ResolvedAddress: resolved,
		ReverseRecord:   o.reverse,
	}
	return &commitmentView{
		Name:            label + "." + n.GetManagedTLD(),
		Owner:           owner,
		Duration:        duration,
		Resolver:        resolver,
		ResolvedAddress: resolved,
		ReverseRecord:   o.reverse,
		Secret:          secret,
		Commitment:      ens.MakeCommitment(params),
	}, nil
}

func runCommitment(a *app, label string, o commitmentOptions) error {
	view, err := buildCommitment(a.network, label, o)
	if err != nil {
		return err
	}
	return a.render(view, func() {
		a.ui.KeyValue([][2]string{
			{"name", view.Name},
			{"owner", view.Owner.Hex()},
			{"duration", fmt.Sprintf("%s seconds", view.Duration)},
			{"resolver", view.Resolver.Hex()},
			{"address", view.ResolvedAddress.Hex()},
			{"reverse record", strconv.FormatBool(view.ReverseRecord)},
		})
		a.ui.Critical("secret:     %s", view.Secret.Hex())
		a.ui.Critical("commitment: %s", view.Commitment.Hex())
		a.ui.Warn("keep the secret, registering the name needs it after the commitment is mined")
	})
}

var commitmentCmd = &cobra.Command{
	Use:   "commitment <label>",
	Short: "Generate a registration secret and its commitment hash",
	Long: `Draws a fresh random secret and computes the commitment the registrar controller
expects for a name registration. Nothing is sent to the chain.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newOfflineApp()
		if err != nil {
			return err
		}
		defer a.close()
		return runCommitment(a, args[0], commitmentOptions{
			owner:    CommitOwner,
			duration: CommitDuration,
			resolver: CommitResolver,
			address:  CommitAddress,
			reverse:  CommitReverse,
			secret: ens.SecretOptions{
				PlatformDomain: CommitPlatform,
				Campaign:       CommitCampaign,
			},
		})
	},
}

func init() {
	f := commitmentCmd.Flags()
	f.StringVar(&CommitOwner, "owner", "", "address that will own the name")
	f.StringVar(&CommitDuration, "duration", "1y", "registration length: seconds, Ny, Nd or a Go duration")
	f.StringVar(&CommitResolver, "resolver", "", "resolver address, the network's public resolver by default")
	f.StringVar(&CommitAddress, "address", "", "address the name will resolve to")
	f.BoolVar(&CommitReverse, "reverse", false, "set the name as the owner's primary name")
	f.StringVar(&CommitPlatform, "platform", "", "platform domain branded into the secret")
	f.Uint64Var(&CommitCampaign, "campaign", 0, "campaign reference branded into the secret")
	rootCmd.AddCommand(commitmentCmd)
}
