package ens

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

type GetOwnerParams struct {
	Name string
	// Contract pins the lookup to one contract. Empty reconciles all of
	// them.
	Contract OwnerContract
}

// GetOwner resolves who owns a name. Unpinned lookups always ask the
// registry, the name wrapper when the network has one, and the registrar
// for second level names of the managed TLD, all in one aggregated call.
// Execution errors are always returned.
var GetOwner = NewFunction[GetOwnerParams, Ownership]("getOwner", encodeGetOwner, decodeGetOwner)

// ownerPlan lists the contracts an owner lookup queries, in call order.
// Encode and decode both derive it from the params alone.
func ownerPlan(n networks.Network, p GetOwnerParams) ([]OwnerContract, error) {
	if p.Contract != "" {
		if !p.Contract.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidContractType, p.Contract)
		}
		return []OwnerContract{p.Contract}, nil
	}
	labels := SplitLabels(p.Name)
	if len(labels) <= 1 {
		return []OwnerContract{ContractRegistry}, nil
	}
	plan := []OwnerContract{ContractRegistry}
	if _, err := n.GetContractAddress(networks.ContractNameWrapper); err == nil {
		plan = append(plan, ContractNameWrapper)
	}
	if IsManagedTLD2LD(labels, n.GetManagedTLD()) {
		plan = append(plan, ContractRegistrar)
	}
	return plan, nil
}

func ownerCall(n networks.Network, contract OwnerContract, name string) (Call, error) {
	var (
		target common.Address
		data   []byte
		err    error
	)
	switch contract {
	case ContractRegistry:
		target, err = n.GetContractAddress(networks.ContractRegistry)
		if err != nil {
			return Call{}, err
		}
		data, err = jcommon.GetRegistryABI().Pack("owner", Namehash(name))
	case ContractRegistrar:
		target, err = n.GetContractAddress(networks.ContractRegistrar)
		if err != nil {
			return Call{}, err
		}
		labels := SplitLabels(name)
		if len(labels) == 0 {
			return Call{}, fmt.Errorf("%w: registrar lookup of the root", ErrUnsupportedNameType)
		}
		tokenID := new(big.Int).SetBytes(Labelhash(labels[0]).Bytes())
		data, err = jcommon.GetRegistrarABI().Pack(n.GetRegistrarOwnerMethod(), tokenID)
	case ContractNameWrapper:
		target, err = n.GetContractAddress(networks.ContractNameWrapper)
		if err != nil {
			return Call{}, err
		}
		tokenID := new(big.Int).SetBytes(Namehash(name).Bytes())
		data, err = jcommon.GetNameWrapperABI().Pack("ownerOf", tokenID)
	default:
		return Call{}, fmt.Errorf("%w: %q", ErrInvalidContractType, contract)
	}
	if err != nil {
		return Call{}, fmt.Errorf("packing %s owner call: %w", contract, err)
	}
	return Call{To: target, Data: data}, nil
}

func encodeGetOwner(n networks.Network, p GetOwnerParams) (Call, error) {
	plan, err := ownerPlan(n, p)
	if err != nil {
		return Call{}, err
	}
	calls := make([]Call, len(plan))
	for i, contract := range plan {
		if calls[i], err = ownerCall(n, contract, p.Name); err != nil {
			return Call{}, err
		}
	}
	return EncodeMulticall(n, calls)
}

// ownerValue decodes one owner entry. nil means no owner: the call failed,
// returned nothing, returned a 36 byte error payload, or returned the zero
// address.
func ownerValue(n networks.Network, contract OwnerContract, res CallResult) (*common.Address, error) {
	if !res.Success || len(res.ReturnData) == 0 || len(res.ReturnData) == 36 {
		return nil, nil
	}
	var (
		out []interface{}
		err error
	)
	switch contract {
	case ContractRegistry:
		out, err = jcommon.GetRegistryABI().Unpack("owner", res.ReturnData)
	case ContractRegistrar:
		out, err = jcommon.GetRegistrarABI().Unpack(n.GetRegistrarOwnerMethod(), res.ReturnData)
	case ContractNameWrapper:
		out, err = jcommon.GetNameWrapperABI().Unpack("ownerOf", res.ReturnData)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s owner: %w", contract, err)
	}
	addr := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	if jcommon.IsZeroAddress(addr) {
		return nil, nil
	}
	return &addr, nil
}

func decodeGetOwner(n networks.Network, data []byte, callErr error, p GetOwnerParams) (Ownership, error) {
	if callErr != nil {
		return nil, callErr
	}
	plan, err := ownerPlan(n, p)
	if err != nil {
		return nil, err
	}
	results, err := DecodeMulticall(data)
	if err != nil {
		return nil, err
	}
	if len(results) != len(plan) {
		return nil, fmt.Errorf("owner lookup got %d results for %d calls", len(results), len(plan))
	}
	owners := map[OwnerContract]*common.Address{}
	for i, contract := range plan {
		if owners[contract], err = ownerValue(n, contract, results[i]); err != nil {
			return nil, err
		}
	}

	labels := SplitLabels(p.Name)
	if p.Contract != "" || len(labels) <= 1 {
		return pinnedOwnership(plan[0], owners[plan[0]]), nil
	}
	wrapperAddr, wrapperErr := n.GetContractAddress(networks.ContractNameWrapper)
	hasWrapper := wrapperErr == nil
	return reconcileOwnership(
		labels,
		n.GetManagedTLD(),
		owners[ContractRegistry],
		owners[ContractRegistrar],
		owners[ContractNameWrapper],
		wrapperAddr,
		hasWrapper,
	), nil
}

func pinnedOwnership(contract OwnerContract, value *common.Address) Ownership {
	if value == nil {
		return nil
	}
	switch contract {
	case ContractRegistrar:
		return RegistrarOnlyOwnership{Registrant: *value}
	case ContractNameWrapper:
		return WrappedOwnership{Owner: *value}
	default:
		return RegistryOwnership{Owner: *value}
	}
}

// reconcileOwnership applies the precedence table; the first matching rule
// wins. nil owners are absent or the zero address.
func reconcileOwnership(
	labels []string,
	tld string,
	registry, registrar, wrapper *common.Address,
	wrapperAddr common.Address,
	hasWrapper bool,
) Ownership {
	heldByWrapper := func(owner *common.Address) bool {
		return hasWrapper && owner != nil && *owner == wrapperAddr
	}

	if labels[len(labels)-1] == tld {
		if heldByWrapper(registrar) {
			if wrapper != nil {
				return WrappedOwnership{Owner: *wrapper}
			}
			return nil
		}
		if registrar != nil {
			var owner common.Address
			if registry != nil {
				owner = *registry
			}
			registrant := *registrar
			return UnwrappedEth2ldOwnership{Registrant: &registrant, Owner: owner}
		}
		if registry != nil {
			if len(labels) == 2 {
				return UnwrappedEth2ldOwnership{Registrant: nil, Owner: *registry}
			}
			if heldByWrapper(registry) && wrapper != nil {
				return WrappedOwnership{Owner: *wrapper}
			}
			return RegistryOwnership{Owner: *registry}
		}
		return nil
	}

	if heldByWrapper(registry) && wrapper != nil {
		return WrappedOwnership{Owner: *wrapper}
	}
	if registry != nil {
		return RegistryOwnership{Owner: *registry}
	}
	return nil
}
