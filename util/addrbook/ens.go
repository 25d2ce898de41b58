package addrbook

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/ens"
)

// ENS resolves the verified primary name of an address.
type ENS struct {
	Client *ens.Client
	Strict bool
}

func NewENS(client *ens.Client, strict bool) *ENS {
	return &ENS{Client: client, Strict: strict}
}

func (r *ENS) Resolve(ctx context.Context, addr string) (jcommon.Address, error) {
	if !common.IsHexAddress(addr) {
		return jcommon.Address{}, fmt.Errorf("'%s' is not an address", addr)
	}
	address := common.HexToAddress(addr)
	res, err := ens.GetName.Call(ctx, r.Client, ens.GetNameParams{
		Address: address,
		Strict:  r.Strict,
	})
	if err != nil {
		return jcommon.Address{}, err
	}
	if res == nil {
		return jcommon.Address{Address: address.Hex(), Desc: jcommon.UnknownDesc}, nil
	}
	return jcommon.Address{Address: address.Hex(), Desc: res.Name}, nil
}
