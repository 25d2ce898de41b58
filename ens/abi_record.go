package ens

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zlib"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

// ABI record content types (ENSIP-4).
const (
	AbiContentTypeJSON uint64 = 1
	AbiContentTypeZlib uint64 = 2
	AbiContentTypeCBOR uint64 = 4
	AbiContentTypeURI  uint64 = 8

	AllAbiContentTypes = AbiContentTypeJSON | AbiContentTypeZlib | AbiContentTypeCBOR | AbiContentTypeURI
)

type GetAbiRecordParams struct {
	Name string
	// SupportedContentTypes is a bitmask of acceptable encodings, all of
	// them when zero.
	SupportedContentTypes uint64
	Strict                bool
}

// AbiRecord is a decoded ABI record. Decoded is false for URI records and
// unknown content types, where ABI holds the raw string.
type AbiRecord struct {
	ContentType uint64 `json:"contentType" yaml:"contentType"`
	Decoded     bool   `json:"decoded" yaml:"decoded"`
	ABI         any    `json:"abi" yaml:"abi"`
}

var cborDecMode = func() cbor.DecMode {
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}()

var GetAbiRecord = NewFunction[GetAbiRecordParams, *AbiRecord](
	"getAbiRecord",
	func(n networks.Network, p GetAbiRecordParams) (Call, error) {
		types := p.SupportedContentTypes
		if types == 0 {
			types = AllAbiContentTypes
		}
		inner, err := jcommon.GetResolverABI().Pack("ABI", Namehash(p.Name), new(big.Int).SetUint64(types))
		if err != nil {
			return Call{}, fmt.Errorf("packing ABI: %w", err)
		}
		return resolveCall(n, p.Name, inner)
	},
	func(_ networks.Network, data []byte, callErr error, p GetAbiRecordParams) (*AbiRecord, error) {
		if callErr != nil {
			return lenient[*AbiRecord](callErr, p.Strict)
		}
		inner, _, err := unwrapResolve(data)
		if err != nil {
			return nil, err
		}
		if len(inner) == 0 {
			return nil, nil
		}
		out, err := jcommon.GetResolverABI().Unpack("ABI", inner)
		if err != nil {
			return nil, fmt.Errorf("decoding ABI: %w", err)
		}
		contentType := *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
		encoded := *abi.ConvertType(out[1], new([]byte)).(*[]byte)
		if contentType.Sign() == 0 || !contentType.IsUint64() {
			return nil, nil
		}
		return DecodeAbiRecord(contentType.Uint64(), encoded)
	},
)

// MaxInflatedAbiSize caps the inflated size of a zlib ABI record.
const MaxInflatedAbiSize = 4 << 20

// DecodeAbiRecord decodes the payload of an ABI record by content type.
func DecodeAbiRecord(contentType uint64, encoded []byte) (*AbiRecord, error) {
	record := &AbiRecord{ContentType: contentType}
	switch contentType {
	case AbiContentTypeJSON:
		if err := json.Unmarshal(encoded, &record.ABI); err != nil {
			return nil, fmt.Errorf("decoding json abi: %w", err)
		}
		record.Decoded = true
	case AbiContentTypeZlib:
		r, err := zlib.NewReader(bytes.NewReader(encoded))
		if err != nil {
			return nil, fmt.Errorf("opening zlib abi: %w", err)
		}
		defer r.Close()
		inflated, err := io.ReadAll(io.LimitReader(r, MaxInflatedAbiSize+1))
		if err != nil {
			return nil, fmt.Errorf("inflating zlib abi: %w", err)
		}
		if len(inflated) > MaxInflatedAbiSize {
			return nil, fmt.Errorf("%w: zlib abi inflates past %d bytes", ErrAbiTooLarge, MaxInflatedAbiSize)
		}
		if err := json.Unmarshal(inflated, &record.ABI); err != nil {
			return nil, fmt.Errorf("decoding zlib abi: %w", err)
		}
		record.Decoded = true
	case AbiContentTypeCBOR:
		if err := cborDecMode.Unmarshal(encoded, &record.ABI); err != nil {
			return nil, fmt.Errorf("decoding cbor abi: %w", err)
		}
		record.Decoded = true
	default:
		record.ABI = string(encoded)
	}
	return record, nil
}
