package reader

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"go.uber.org/zap"

	"github.com/tranvictor/ensreader/networks"
)

// EthReader sends every read to all of its nodes and returns the first
// successful answer. It fails only when every node failed.
type EthReader struct {
	nodes  map[string]EthereumNode
	logger *zap.Logger
}

func NewEthReaderGeneric(nodes map[string]string, timeout time.Duration, logger *zap.Logger) *EthReader {
	ns := map[string]EthereumNode{}
	for name, c := range nodes {
		ns[name] = NewOneNodeReader(name, c, timeout)
	}
	return NewEthReaderWithNodes(ns, logger)
}

func NewEthReaderWithNodes(nodes map[string]EthereumNode, logger *zap.Logger) *EthReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EthReader{nodes: nodes, logger: logger}
}

// NewEthReader reads from the network's default nodes, its node
// environment variable and customNode, when set.
func NewEthReader(n networks.Network, customNode string, timeout time.Duration, logger *zap.Logger) (*EthReader, error) {
	nodes := GetNodes(n, customNode)
	if len(nodes) == 0 {
		return nil, fmt.Errorf("network %s has no nodes configured", n.GetName())
	}
	return NewEthReaderGeneric(nodes, timeout, logger), nil
}

// GetNodes is the node set of a network. A --node flag replaces the
// defaults; the network's node env variable is added next to them.
func GetNodes(n networks.Network, customNode string) map[string]string {
	customNode = strings.TrimSpace(customNode)
	if customNode != "" {
		return map[string]string{"custom-node": customNode}
	}
	nodes := map[string]string{}
	for name, url := range n.GetDefaultNodes() {
		nodes[name] = url
	}
	if n.GetNodeVariableName() != "" {
		if envNode := strings.TrimSpace(os.Getenv(n.GetNodeVariableName())); envNode != "" {
			nodes["env-node"] = envNode
		}
	}
	return nodes
}

func (er *EthReader) NodeNames() []string {
	names := make([]string, 0, len(er.nodes))
	for name := range er.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func wrapError(e error, name string) error {
	if e == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", name, e)
}

type readResult[T any] struct {
	Value T
	Node  string
	Error error
}

// fanOut runs read on every node concurrently and returns the first
// success. The remaining calls are cancelled once one node answered.
func fanOut[T any](ctx context.Context, er *EthReader, op string, read func(ctx context.Context, n EthereumNode) (T, error)) (T, error) {
	var zero T
	if len(er.nodes) == 0 {
		return zero, fmt.Errorf("%s: no nodes configured", op)
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	resCh := make(chan readResult[T], len(er.nodes))
	for i := range er.nodes {
		n := er.nodes[i]
		go func() {
			v, err := read(ctx, n)
			resCh <- readResult[T]{
				Value: v,
				Node:  n.NodeName(),
				Error: wrapError(err, n.NodeName()),
			}
		}()
	}
	errs := []error{}
	for i := 0; i < len(er.nodes); i++ {
		result := <-resCh
		if result.Error == nil {
			er.logger.Debug("node answered", zap.String("op", op), zap.String("node", result.Node))
			return result.Value, nil
		}
		errs = append(errs, result.Error)
	}
	return zero, fmt.Errorf("couldn't read from any nodes: %w", errors.Join(errs...))
}

// CallContract makes EthReader an ens.Caller. Revert data of the nodes
// stays reachable through errors.As.
func (er *EthReader) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	return fanOut(ctx, er, "eth_call", func(ctx context.Context, n EthereumNode) ([]byte, error) {
		return n.CallContract(ctx, msg, blockNumber)
	})
}

func (er *EthReader) ChainID(ctx context.Context) (*big.Int, error) {
	return fanOut(ctx, er, "eth_chainId", func(ctx context.Context, n EthereumNode) (*big.Int, error) {
		return n.ChainID(ctx)
	})
}

func (er *EthReader) CurrentBlock(ctx context.Context) (uint64, error) {
	return fanOut(ctx, er, "eth_blockNumber", func(ctx context.Context, n EthereumNode) (uint64, error) {
		return n.CurrentBlock(ctx)
	})
}
