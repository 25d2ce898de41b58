package ens

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SplitLabels splits a name on dots, left to right. The empty name has
// no labels.
func SplitLabels(name string) []string {
	if name == "" {
		return nil
	}
	return strings.Split(name, ".")
}

// Labelhash is keccak256 of the label. A label already written as an
// encoded labelhash, [<64 hex chars>], is decoded instead of hashed.
func Labelhash(label string) common.Hash {
	if h, ok := decodeLabelhash(label); ok {
		return h
	}
	return crypto.Keccak256Hash([]byte(label))
}

// Namehash implements the recursive ENS node hash. The empty name is the
// zero node.
func Namehash(name string) common.Hash {
	var node common.Hash
	labels := SplitLabels(name)
	for i := len(labels) - 1; i >= 0; i-- {
		lh := Labelhash(labels[i])
		node = crypto.Keccak256Hash(node[:], lh[:])
	}
	return node
}

// EncodeLabelhash renders a hash as [<hex>], the form used for labels
// whose plain text is unknown or too long for DNS encoding.
func EncodeLabelhash(h common.Hash) string {
	return fmt.Sprintf("[%s]", hex.EncodeToString(h[:]))
}

func isEncodedLabelhash(label string) bool {
	_, ok := decodeLabelhash(label)
	return ok
}

func decodeLabelhash(label string) (common.Hash, bool) {
	if len(label) != 66 || label[0] != '[' || label[65] != ']' {
		return common.Hash{}, false
	}
	b, err := hex.DecodeString(label[1:65])
	if err != nil {
		return common.Hash{}, false
	}
	return common.BytesToHash(b), true
}
