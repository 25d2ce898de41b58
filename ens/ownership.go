package ens

import (
	"github.com/ethereum/go-ethereum/common"
)

type OwnershipLevel string

const (
	LevelRegistry    OwnershipLevel = "registry"
	LevelRegistrar   OwnershipLevel = "registrar"
	LevelNameWrapper OwnershipLevel = "nameWrapper"
)

// OwnerContract pins an owner lookup to one contract.
type OwnerContract string

const (
	ContractRegistry    OwnerContract = "registry"
	ContractRegistrar   OwnerContract = "registrar"
	ContractNameWrapper OwnerContract = "nameWrapper"
)

func (c OwnerContract) Valid() bool {
	switch c {
	case ContractRegistry, ContractRegistrar, ContractNameWrapper:
		return true
	}
	return false
}

// Ownership is the answer of GetOwner. It is one of RegistrarOnlyOwnership,
// WrappedOwnership, UnwrappedEth2ldOwnership or RegistryOwnership; a nil
// Ownership means nobody owns the name.
type Ownership interface {
	Level() OwnershipLevel
	isOwnership()
}

// RegistrarOnlyOwnership is the answer of a lookup pinned to the registrar.
type RegistrarOnlyOwnership struct {
	Registrant common.Address `json:"registrant" yaml:"registrant"`
}

type WrappedOwnership struct {
	Owner common.Address `json:"owner" yaml:"owner"`
}

// UnwrappedEth2ldOwnership is a second level name of the managed TLD held
// directly in the registrar. Registrant is nil once the registration
// expired while the registry still records an owner.
type UnwrappedEth2ldOwnership struct {
	Registrant *common.Address `json:"registrant" yaml:"registrant"`
	Owner      common.Address  `json:"owner" yaml:"owner"`
}

type RegistryOwnership struct {
	Owner common.Address `json:"owner" yaml:"owner"`
}

func (RegistrarOnlyOwnership) Level() OwnershipLevel   { return LevelRegistrar }
func (WrappedOwnership) Level() OwnershipLevel         { return LevelNameWrapper }
func (UnwrappedEth2ldOwnership) Level() OwnershipLevel { return LevelRegistrar }
func (RegistryOwnership) Level() OwnershipLevel        { return LevelRegistry }

func (RegistrarOnlyOwnership) isOwnership()   {}
func (WrappedOwnership) isOwnership()         {}
func (UnwrappedEth2ldOwnership) isOwnership() {}
func (RegistryOwnership) isOwnership()        {}

// OwnerOf returns the controlling address of an answer: the owner, or the
// registrant for registrar only answers.
func OwnerOf(o Ownership) (common.Address, bool) {
	switch v := o.(type) {
	case RegistrarOnlyOwnership:
		return v.Registrant, true
	case WrappedOwnership:
		return v.Owner, true
	case UnwrappedEth2ldOwnership:
		return v.Owner, true
	case RegistryOwnership:
		return v.Owner, true
	}
	return common.Address{}, false
}
