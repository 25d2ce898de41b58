package ens

import (
	"context"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// Call is one read-only contract call: a target and its calldata.
type Call struct {
	To   common.Address
	Data []byte
}

func (c Call) Msg() ethereum.CallMsg {
	to := c.To
	return ethereum.CallMsg{To: &to, Data: c.Data}
}

// CallResult is one entry of a tryAggregate answer. A failed entry
// carries the revert payload, not a value.
type CallResult struct {
	Success    bool   `json:"success"`
	ReturnData []byte `json:"returnData"`
}

// Caller executes eth_call. *ethclient.Client and reader.EthReader
// satisfy it.
type Caller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}
