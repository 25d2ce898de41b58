package addrbook

import (
	"context"
	"strings"

	jcommon "github.com/tranvictor/ensreader/common"
)

// Map resolves lower-cased addresses from a fixed table.
//
//	r := addrbook.Map{
//	    "0xd8da6bf26964af9d7eed9e03e53415d37aa96045": "vitalik.eth",
//	}
type Map map[string]string

func (m Map) Resolve(_ context.Context, addr string) (jcommon.Address, error) {
	if desc, ok := m[strings.ToLower(addr)]; ok {
		return jcommon.Address{Address: addr, Desc: desc}, nil
	}
	return jcommon.Address{Address: addr, Desc: jcommon.UnknownDesc}, nil
}
