// Package addrbook maps raw hex addresses to human-readable names.
//
// [ENS] reads primary names through the universal resolver and [Map] is
// a fixed table for tests.
package addrbook

import (
	"context"

	jcommon "github.com/tranvictor/ensreader/common"
)

// AddressResolver maps a hex address to a jcommon.Address. Desc is
// "unknown" when the address has no name.
type AddressResolver interface {
	Resolve(ctx context.Context, addr string) (jcommon.Address, error)
}
