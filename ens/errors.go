package ens

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	ErrInvalidContractType = errors.New("invalid contract type")
	ErrUnsupportedNameType = errors.New("unsupported name type")
	ErrEmptyBatch          = errors.New("batch has no calls")
	ErrCoinNotFound        = errors.New("coin not found")
	ErrCampaignTooLarge    = errors.New("campaign reference is larger than 0xffffffff")
	ErrInvalidName         = errors.New("invalid name")
	ErrAbiTooLarge         = errors.New("abi record too large")
	ErrCCIPRedirects       = fmt.Errorf("too many offchain lookup redirects (max %d)", MaxCCIPRedirects)
)

// RevertError is a call that executed and reverted. Data is the raw
// revert payload, possibly empty.
type RevertError struct {
	Data []byte
}

func (e *RevertError) Error() string {
	if len(e.Data) == 0 {
		return "execution reverted"
	}
	return fmt.Sprintf("execution reverted: %s", hexutil.Encode(e.Data))
}

// ErrorData makes RevertError satisfy rpc.DataError, same as the errors
// returned by go-ethereum's RPC client.
func (e *RevertError) ErrorData() interface{} {
	return hexutil.Encode(e.Data)
}

var _ rpc.DataError = (*RevertError)(nil)

// RevertData extracts revert bytes from an execution error. It knows
// RevertError and any rpc.DataError carrying hex encoded data.
func RevertData(err error) ([]byte, bool) {
	var revert *RevertError
	if errors.As(err, &revert) {
		return revert.Data, true
	}
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil, false
	}
	switch data := dataErr.ErrorData().(type) {
	case string:
		b, err := hexutil.Decode(data)
		if err != nil {
			return nil, false
		}
		return b, true
	case []byte:
		return data, true
	default:
		return nil, false
	}
}
