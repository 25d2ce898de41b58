package ens

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/tranvictor/ensreader/networks"
)

// Client executes calls against one network. It holds no per call state
// and is safe for concurrent use.
type Client struct {
	caller  Caller
	network networks.Network
	gateway Gateway
	block   *big.Int
	logger  *zap.Logger
}

type Option func(*Client)

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithGateway enables offchain lookups (EIP-3668).
func WithGateway(g Gateway) Option {
	return func(c *Client) {
		c.gateway = g
	}
}

// WithBlockNumber pins every call to a block. nil means latest.
func WithBlockNumber(block *big.Int) Option {
	return func(c *Client) {
		c.block = block
	}
}

func NewClient(caller Caller, network networks.Network, opts ...Option) *Client {
	c := &Client{
		caller:  caller,
		network: network,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Network() networks.Network {
	return c.network
}

// Execute runs one call. Reverts carrying an OffchainLookup for the called
// contract are followed through the gateway when one is configured. Any
// other error is returned as the caller produced it.
func (c *Client) Execute(ctx context.Context, call Call) ([]byte, error) {
	return c.execute(ctx, call, 0)
}

func (c *Client) execute(ctx context.Context, call Call, depth int) ([]byte, error) {
	c.logger.Debug("eth_call",
		zap.String("network", c.network.GetName()),
		zap.String("to", call.To.Hex()),
		zap.Int("bytes", len(call.Data)),
		zap.Int("depth", depth),
	)
	data, err := c.caller.CallContract(ctx, call.Msg(), c.block)
	if err == nil {
		return data, nil
	}
	revert, ok := RevertData(err)
	if !ok || c.gateway == nil || !IsOffchainLookup(revert) {
		return nil, err
	}
	return c.followLookup(ctx, call.To, revert, depth)
}

func (c *Client) followLookup(ctx context.Context, to common.Address, revert []byte, depth int) ([]byte, error) {
	lookup, err := ParseOffchainLookup(revert)
	if err != nil {
		return nil, err
	}
	if lookup.Sender != to {
		return nil, fmt.Errorf("offchain lookup sender %s does not match %s", lookup.Sender.Hex(), to.Hex())
	}
	if depth >= MaxCCIPRedirects {
		return nil, ErrCCIPRedirects
	}
	c.logger.Debug("offchain lookup",
		zap.String("sender", lookup.Sender.Hex()),
		zap.Strings("urls", lookup.URLs),
		zap.Int("depth", depth),
	)
	response, err := c.gateway.Fetch(ctx, lookup.Sender, lookup.URLs, lookup.CallData)
	if err != nil {
		return nil, fmt.Errorf("offchain lookup: %w", err)
	}
	callback, err := lookup.Callback(response)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, Call{To: lookup.Sender, Data: callback}, depth+1)
}

// Batch answers every call with one aggregated round trip and returns the
// decoded results in order. A call that failed on chain reaches its own
// decode as a *RevertError, so one failure doesn't fail its siblings. An
// error from the aggregate call itself, or from any decode, fails the
// whole batch.
func (c *Client) Batch(ctx context.Context, calls ...BatchCall) ([]any, error) {
	if len(calls) == 0 {
		return nil, ErrEmptyBatch
	}
	encoded := make([]Call, len(calls))
	for i, bc := range calls {
		call, err := bc.Encode(c.network)
		if err != nil {
			return nil, fmt.Errorf("batch call %d (%s): %w", i, bc.Name, err)
		}
		encoded[i] = call
	}
	c.logger.Debug("batch", zap.Int("calls", len(calls)))

	results, err := Multicall.Call(ctx, c, MulticallParams{Calls: encoded})
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}

	out := make([]any, len(calls))
	for i, res := range results {
		data, callErr := res.ReturnData, error(nil)
		if !res.Success {
			data, callErr = c.recoverFailed(ctx, encoded[i], res.ReturnData)
		}
		v, err := calls[i].Decode(c.network, data, callErr)
		if err != nil {
			return nil, fmt.Errorf("batch call %d (%s): %w", i, calls[i].Name, err)
		}
		out[i] = v
	}
	return out, nil
}

// recoverFailed turns a failed batch entry into the error its decode
// sees, unless it is an offchain lookup the gateway can answer.
func (c *Client) recoverFailed(ctx context.Context, call Call, revert []byte) ([]byte, error) {
	if c.gateway == nil || !IsOffchainLookup(revert) {
		return nil, &RevertError{Data: revert}
	}
	return c.followLookup(ctx, call.To, revert, 0)
}
