package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
)

// EthereumNode is one RPC endpoint. EthReader fans calls out to several.
type EthereumNode interface {
	NodeName() string
	NodeURL() string
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	ChainID(ctx context.Context) (*big.Int, error)
	CurrentBlock(ctx context.Context) (uint64, error)
}
