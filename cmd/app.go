package cmd

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/tranvictor/ensreader/config"
	"github.com/tranvictor/ensreader/ens"
	"github.com/tranvictor/ensreader/networks"
	"github.com/tranvictor/ensreader/ui"
	"github.com/tranvictor/ensreader/util/gateway"
	"github.com/tranvictor/ensreader/util/reader"
)

// Swapped in tests.
var (
	newUI = func() ui.UI {
		return ui.NewTerminalUI(!config.NoColor)
	}
	newCaller = func(n networks.Network, logger *zap.Logger) (ens.Caller, error) {
		return reader.NewEthReader(n, config.Node, config.Timeout, logger)
	}
	randomSource io.Reader = rand.Reader
	now                    = time.Now
)

// app is what a command needs to run: where to write and who to ask.
type app struct {
	ui      ui.UI
	logger  *zap.Logger
	network networks.Network
	client  *ens.Client
	output  string
	strict  bool
}

// newOfflineApp is for commands that never touch a node.
func newOfflineApp() (*app, error) {
	logger, err := config.NewLogger(config.Verbose)
	if err != nil {
		return nil, fmt.Errorf("couldn't build logger: %w", err)
	}
	return &app{
		ui:      newUI(),
		logger:  logger,
		network: networks.CurrentNetwork(),
		output:  config.Output,
		strict:  config.Strict,
	}, nil
}

func newApp() (*app, error) {
	a, err := newOfflineApp()
	if err != nil {
		return nil, err
	}
	caller, err := newCaller(a.network, a.logger)
	if err != nil {
		return nil, err
	}
	opts := []ens.Option{ens.WithLogger(a.logger)}
	if config.Gateway {
		opts = append(opts, ens.WithGateway(gateway.NewHTTPGateway(config.Timeout, a.logger)))
	}
	if config.Block > 0 {
		opts = append(opts, ens.WithBlockNumber(big.NewInt(config.Block)))
	}
	a.client = ens.NewClient(caller, a.network, opts...)
	a.logger.Debug("client ready",
		zap.String("network", a.network.GetName()),
		zap.Uint64("chainID", a.network.GetChainID()),
	)
	return a, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// render writes v as json or yaml, or calls text for the text output.
func (a *app) render(v any, text func()) error {
	switch a.output {
	case config.OutputJSON:
		enc := json.NewEncoder(a.ui.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.OutputYAML:
		enc := yaml.NewEncoder(a.ui.Writer())
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text()
		return nil
	}
}

// spin shows a spinner in text mode only.
func (a *app) spin(msg string) func() {
	if a.output != config.OutputText {
		return func() {}
	}
	return a.ui.Spinner(msg)
}

func normaliseNames(names []string) ([]string, error) {
	out := make([]string, len(names))
	for i, name := range names {
		n, err := ens.Normalise(name)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func commandContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
