package ens

import (
	"context"
	"fmt"

	"github.com/tranvictor/ensreader/networks"
)

// EncodeFunc builds the call for params. It must not do I/O.
type EncodeFunc[P any] func(n networks.Network, params P) (Call, error)

// DecodeFunc turns the return data of the call, or the error its
// execution produced, into a result. A zero R means there was no data.
type DecodeFunc[P, R any] func(n networks.Network, data []byte, callErr error, params P) (R, error)

// Function is one read operation usable three ways: Call executes it,
// Encode/Decode expose the two halves, Batch folds it into Client.Batch.
type Function[P, R any] struct {
	name   string
	encode EncodeFunc[P]
	decode DecodeFunc[P, R]
}

func NewFunction[P, R any](name string, encode EncodeFunc[P], decode DecodeFunc[P, R]) *Function[P, R] {
	return &Function[P, R]{name: name, encode: encode, decode: decode}
}

func (f *Function[P, R]) Name() string {
	return f.name
}

func (f *Function[P, R]) Encode(n networks.Network, params P) (Call, error) {
	return f.encode(n, params)
}

func (f *Function[P, R]) Decode(n networks.Network, data []byte, callErr error, params P) (R, error) {
	return f.decode(n, data, callErr, params)
}

// Call encodes, executes through the client and decodes. Execution errors
// are handed to decode, which applies the operation's own policy.
func (f *Function[P, R]) Call(ctx context.Context, c *Client, params P) (R, error) {
	var zero R
	call, err := f.encode(c.Network(), params)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", f.name, err)
	}
	data, callErr := c.Execute(ctx, call)
	return f.decode(c.Network(), data, callErr, params)
}

// Batch curries params into a BatchCall for Client.Batch.
func (f *Function[P, R]) Batch(params P) BatchCall {
	return BatchCall{
		Name: f.name,
		Args: params,
		Encode: func(n networks.Network) (Call, error) {
			return f.encode(n, params)
		},
		Decode: func(n networks.Network, data []byte, callErr error) (any, error) {
			return f.decode(n, data, callErr, params)
		},
	}
}

// BatchCall is a Function with its params bound, ready to join a batch.
type BatchCall struct {
	Name   string
	Args   any
	Encode func(n networks.Network) (Call, error)
	Decode func(n networks.Network, data []byte, callErr error) (any, error)
}

// BatchResult returns results[i] as R. A nil entry yields the zero R.
func BatchResult[R any](results []any, i int) (R, error) {
	var zero R
	if i < 0 || i >= len(results) {
		return zero, fmt.Errorf("batch result %d out of range (%d results)", i, len(results))
	}
	if results[i] == nil {
		return zero, nil
	}
	v, ok := results[i].(R)
	if !ok {
		return zero, fmt.Errorf("batch result %d is %T, not %T", i, results[i], zero)
	}
	return v, nil
}

// lenient applies the strict/lenient policy of record lookups to an
// execution error.
func lenient[R any](callErr error, strict bool) (R, error) {
	var zero R
	if strict {
		return zero, callErr
	}
	return zero, nil
}
