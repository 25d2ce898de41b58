package common

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	multicallABI         = mustParseABI(multicallabi)
	registryABI          = mustParseABI(registryabi)
	registrarABI         = mustParseABI(registrarabi)
	nameWrapperABI       = mustParseABI(namewrapperabi)
	universalResolverABI = mustParseABI(universalresolverabi)
	resolverABI          = mustParseABI(resolverabi)
	legacyResolverABI    = mustParseABI(legacyresolverabi)
)

func mustParseABI(def string) *abi.ABI {
	result, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return &result
}

// GetMultiCallABI returns the Multicall3 subset used for batching:
// tryAggregate and getCurrentBlockTimestamp.
func GetMultiCallABI() *abi.ABI {
	return multicallABI
}

func GetRegistryABI() *abi.ABI {
	return registryABI
}

// GetRegistrarABI covers both the ERC-721 (ownerOf) and the LSP8
// (tokenOwnerOf) flavours of the base registrar.
func GetRegistrarABI() *abi.ABI {
	return registrarABI
}

func GetNameWrapperABI() *abi.ABI {
	return nameWrapperABI
}

func GetUniversalResolverABI() *abi.ABI {
	return universalResolverABI
}

func GetResolverABI() *abi.ABI {
	return resolverABI
}

// GetLegacyResolverABI returns the pre-multicoin addr(bytes32) interface.
func GetLegacyResolverABI() *abi.ABI {
	return legacyResolverABI
}

func HexToAddress(hex string) common.Address {
	return common.HexToAddress(hex)
}

func HexToAddresses(hexes []string) []common.Address {
	result := []common.Address{}
	for _, h := range hexes {
		result = append(result, common.HexToAddress(h))
	}
	return result
}

func HexToHash(hex string) common.Hash {
	return common.HexToHash(hex)
}

// IsZeroAddress is true for the zero address, which the registry
// contracts return for names nobody holds.
func IsZeroAddress(addr common.Address) bool {
	return addr == (common.Address{})
}

// ShortAddress renders 0x1234...abcd for compact table output.
func ShortAddress(addr common.Address) string {
	hex := addr.Hex()
	return hex[:6] + "..." + hex[len(hex)-4:]
}

var addressPattern = regexp.MustCompile("0x[0-9a-fA-F]{40}([^0-9a-fA-F]|$)")

// ScanForAddresses finds every hex address in free text, in order.
func ScanForAddresses(para string) []string {
	result := addressPattern.FindAllString(para, -1)
	if result == nil {
		return []string{}
	}
	for i := 0; i < len(result); i++ {
		result[i] = result[i][0:42]
	}
	return result
}
