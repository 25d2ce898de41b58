package ens

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

type ExpiryStatus string

const (
	ExpiryActive      ExpiryStatus = "active"
	ExpiryGracePeriod ExpiryStatus = "gracePeriod"
	ExpiryExpired     ExpiryStatus = "expired"
)

// MaxExpirySeconds (9999-12-31T23:59:59Z) is the latest expiry turned into
// a time.Time; later values, like the MaxUint64 the name wrapper stores for
// names that never expire, are clamped to it. Expiry.Value stays exact.
const MaxExpirySeconds int64 = 253402300799

// maxGraceSeconds keeps a grace period inside time.Duration.
const maxGraceSeconds = int64(math.MaxInt64 / int64(time.Second))

func clampSeconds(v *big.Int, limit int64) int64 {
	if !v.IsInt64() || v.Int64() > limit {
		return limit
	}
	return v.Int64()
}

type GetExpiryParams struct {
	Name string
	// Contract is ContractRegistrar (default) or ContractNameWrapper.
	Contract OwnerContract
}

type Expiry struct {
	Expiry      time.Time     `json:"expiry" yaml:"expiry"`
	Value       *big.Int      `json:"value" yaml:"value"`
	GracePeriod time.Duration `json:"gracePeriod" yaml:"gracePeriod"`
	Status      ExpiryStatus  `json:"status" yaml:"status"`
}

// GetExpiry reads the expiry of a name together with the current block
// timestamp, so the status is computed against chain time. Execution
// errors are always returned.
var GetExpiry = NewFunction[GetExpiryParams, *Expiry]("getExpiry", encodeGetExpiry, decodeGetExpiry)

func expiryContract(p GetExpiryParams) (OwnerContract, error) {
	switch p.Contract {
	case "", ContractRegistrar:
		return ContractRegistrar, nil
	case ContractNameWrapper:
		return ContractNameWrapper, nil
	}
	return "", fmt.Errorf("%w: %q has no expiry", ErrInvalidContractType, p.Contract)
}

func encodeGetExpiry(n networks.Network, p GetExpiryParams) (Call, error) {
	contract, err := expiryContract(p)
	if err != nil {
		return Call{}, err
	}
	timestamp, err := encodeBlockTimestamp(n)
	if err != nil {
		return Call{}, err
	}
	calls := []Call{timestamp}

	if contract == ContractNameWrapper {
		target, err := n.GetContractAddress(networks.ContractNameWrapper)
		if err != nil {
			return Call{}, err
		}
		data, err := jcommon.GetNameWrapperABI().Pack("getData", new(big.Int).SetBytes(Namehash(p.Name).Bytes()))
		if err != nil {
			return Call{}, fmt.Errorf("packing getData: %w", err)
		}
		calls = append(calls, Call{To: target, Data: data})
		return EncodeMulticall(n, calls)
	}

	labels := SplitLabels(p.Name)
	if !IsManagedTLD2LD(labels, n.GetManagedTLD()) {
		return Call{}, fmt.Errorf(
			"%w: only %s second level names have a registrar expiry, got %q",
			ErrUnsupportedNameType, n.GetManagedTLD(), p.Name,
		)
	}
	target, err := n.GetContractAddress(networks.ContractRegistrar)
	if err != nil {
		return Call{}, err
	}
	registrar := jcommon.GetRegistrarABI()
	expires, err := registrar.Pack("nameExpires", new(big.Int).SetBytes(Labelhash(labels[0]).Bytes()))
	if err != nil {
		return Call{}, fmt.Errorf("packing nameExpires: %w", err)
	}
	grace, err := registrar.Pack("GRACE_PERIOD")
	if err != nil {
		return Call{}, fmt.Errorf("packing GRACE_PERIOD: %w", err)
	}
	calls = append(calls, Call{To: target, Data: expires}, Call{To: target, Data: grace})
	return EncodeMulticall(n, calls)
}

func decodeGetExpiry(_ networks.Network, data []byte, callErr error, p GetExpiryParams) (*Expiry, error) {
	if callErr != nil {
		return nil, callErr
	}
	contract, err := expiryContract(p)
	if err != nil {
		return nil, err
	}
	results, err := DecodeMulticall(data)
	if err != nil {
		return nil, err
	}
	want := 3
	if contract == ContractNameWrapper {
		want = 2
	}
	if len(results) != want {
		return nil, fmt.Errorf("expiry lookup got %d results for %d calls", len(results), want)
	}
	for _, res := range results {
		if !res.Success {
			return nil, &RevertError{Data: res.ReturnData}
		}
	}

	now, err := decodeBlockTimestamp(results[0].ReturnData)
	if err != nil {
		return nil, err
	}

	var expiry, grace *big.Int
	if contract == ContractNameWrapper {
		out, err := jcommon.GetNameWrapperABI().Unpack("getData", results[1].ReturnData)
		if err != nil {
			return nil, fmt.Errorf("decoding getData: %w", err)
		}
		expiry = new(big.Int).SetUint64(*abi.ConvertType(out[2], new(uint64)).(*uint64))
		grace = big.NewInt(0)
	} else {
		registrar := jcommon.GetRegistrarABI()
		out, err := registrar.Unpack("nameExpires", results[1].ReturnData)
		if err != nil {
			return nil, fmt.Errorf("decoding nameExpires: %w", err)
		}
		expiry = *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
		out, err = registrar.Unpack("GRACE_PERIOD", results[2].ReturnData)
		if err != nil {
			return nil, fmt.Errorf("decoding GRACE_PERIOD: %w", err)
		}
		grace = *abi.ConvertType(out[0], new(*big.Int)).(**big.Int)
	}

	if expiry.Sign() == 0 {
		return nil, nil
	}
	return &Expiry{
		Expiry:      time.Unix(clampSeconds(expiry, MaxExpirySeconds), 0).UTC(),
		Value:       expiry,
		GracePeriod: time.Duration(clampSeconds(grace, maxGraceSeconds)) * time.Second,
		Status:      ExpiryStatusAt(now, expiry, grace),
	}, nil
}

// ExpiryStatusAt is the status of an expiry at chain time now.
func ExpiryStatusAt(now, expiry, grace *big.Int) ExpiryStatus {
	if now.Cmp(new(big.Int).Add(expiry, grace)) > 0 {
		return ExpiryExpired
	}
	if now.Cmp(expiry) > 0 {
		return ExpiryGracePeriod
	}
	return ExpiryActive
}
