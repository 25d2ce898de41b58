package ens

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

var (
	registryAddr  = common.HexToAddress("0x1000000000000000000000000000000000000001")
	registrarAddr = common.HexToAddress("0x1000000000000000000000000000000000000002")
	wrapperAddr   = common.HexToAddress("0x1000000000000000000000000000000000000003")
	urAddr        = common.HexToAddress("0x1000000000000000000000000000000000000004")
	multicallAddr = common.HexToAddress("0x1000000000000000000000000000000000000005")
	resolverAddr  = common.HexToAddress("0x1000000000000000000000000000000000000006")

	alice = common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	bob   = common.HexToAddress("0xBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB")
	carol = common.HexToAddress("0xCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC")

	// what an ERC-721 registrar reverts with for unknown tokens
	erc721Revert = append([]byte{0x08, 0xc3, 0x79, 0xa0}, make([]byte, 96)...)

	errTransport = errors.New("dial tcp: connection refused")
)

func testNetwork() networks.Network {
	return networks.NewGenericNetwork(networks.GenericNetworkConfig{
		Name:       "testnet",
		ChainID:    1337,
		ManagedTLD: "eth",
		Contracts: map[string]common.Address{
			networks.ContractRegistry:          registryAddr,
			networks.ContractRegistrar:         registrarAddr,
			networks.ContractNameWrapper:       wrapperAddr,
			networks.ContractUniversalResolver: urAddr,
			networks.ContractMulticall3:        multicallAddr,
		},
	})
}

// lsp8Network has no wrapper and an LSP8 registrar, like LUKSO.
func lsp8Network() networks.Network {
	return networks.NewGenericNetwork(networks.GenericNetworkConfig{
		Name:                 "lsp8net",
		ChainID:              4201,
		ManagedTLD:           "lyx",
		RegistrarOwnerMethod: networks.RegistrarTokenOwnerOf,
		Contracts: map[string]common.Address{
			networks.ContractRegistry:          registryAddr,
			networks.ContractRegistrar:         registrarAddr,
			networks.ContractUniversalResolver: urAddr,
			networks.ContractMulticall3:        multicallAddr,
		},
	})
}

type handler func(data []byte) ([]byte, error)

type methodFunc func(args []interface{}) ([]interface{}, error)

// contractHandler dispatches calldata by selector over one or more ABIs.
func contractHandler(abis []*abi.ABI, methods map[string]methodFunc) handler {
	return func(data []byte) ([]byte, error) {
		if len(data) < 4 {
			return nil, &RevertError{}
		}
		for _, a := range abis {
			m, err := a.MethodById(data[:4])
			if err != nil {
				continue
			}
			fn, ok := methods[m.Sig]
			if !ok {
				fn, ok = methods[m.Name]
			}
			if !ok {
				return nil, &RevertError{}
			}
			args, err := m.Inputs.Unpack(data[4:])
			if err != nil {
				return nil, &RevertError{}
			}
			out, err := fn(args)
			if err != nil {
				return nil, err
			}
			return m.Outputs.Pack(out...)
		}
		return nil, &RevertError{}
	}
}

type abiEntry struct {
	contentType uint64
	data        []byte
}

type reverseEntry struct {
	name     string
	resolved common.Address
}

// fakeChain answers eth_calls from in-memory state. tryAggregate runs the
// sub calls in process, so direct and batched calls see the same state.
type fakeChain struct {
	mu    sync.Mutex
	calls int

	now         *big.Int
	gracePeriod *big.Int

	registryOwners  map[common.Hash]common.Address
	registrarOwners map[common.Hash]common.Address // by labelhash
	wrapperOwners   map[common.Hash]common.Address
	expiries        map[common.Hash]*big.Int // registrar, by labelhash
	wrapperExpiries map[common.Hash]uint64

	resolvers map[string]common.Address
	addrs     map[common.Hash]map[uint64][]byte
	texts     map[common.Hash]map[string]string
	abis      map[common.Hash]abiEntry
	primary   map[common.Address]reverseEntry
	// names the universal resolver reverts on
	urReverts map[string][]byte

	// transportErr fails every top level call
	transportErr error

	contracts map[common.Address]handler
}

func newFakeChain() *fakeChain {
	f := &fakeChain{
		now:             big.NewInt(1_700_000_000),
		gracePeriod:     big.NewInt(90 * 24 * 3600),
		registryOwners:  map[common.Hash]common.Address{},
		registrarOwners: map[common.Hash]common.Address{},
		wrapperOwners:   map[common.Hash]common.Address{},
		expiries:        map[common.Hash]*big.Int{},
		wrapperExpiries: map[common.Hash]uint64{},
		resolvers:       map[string]common.Address{},
		addrs:           map[common.Hash]map[uint64][]byte{},
		texts:           map[common.Hash]map[string]string{},
		abis:            map[common.Hash]abiEntry{},
		primary:         map[common.Address]reverseEntry{},
		urReverts:       map[string][]byte{},
	}
	f.contracts = map[common.Address]handler{
		multicallAddr: f.multicall(),
		registryAddr:  f.registry(),
		registrarAddr: f.registrar(),
		wrapperAddr:   f.wrapper(),
		urAddr:        f.universalResolver(),
	}
	return f
}

func (f *fakeChain) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.transportErr != nil {
		return nil, f.transportErr
	}
	return f.call(*msg.To, msg.Data)
}

func (f *fakeChain) roundTrips() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeChain) call(to common.Address, data []byte) ([]byte, error) {
	h, ok := f.contracts[to]
	if !ok {
		// no code at the address
		return nil, nil
	}
	return h(data)
}

func (f *fakeChain) multicall() handler {
	return contractHandler([]*abi.ABI{jcommon.GetMultiCallABI()}, map[string]methodFunc{
		"tryAggregate": func(args []interface{}) ([]interface{}, error) {
			calls := *abi.ConvertType(args[1], new([]multicallCall)).(*[]multicallCall)
			results := make([]CallResult, len(calls))
			for i, c := range calls {
				ret, err := f.call(c.Target, c.CallData)
				if err != nil {
					revert, _ := RevertData(err)
					results[i] = CallResult{Success: false, ReturnData: revert}
					continue
				}
				results[i] = CallResult{Success: true, ReturnData: ret}
			}
			return []interface{}{results}, nil
		},
		"getCurrentBlockTimestamp": func([]interface{}) ([]interface{}, error) {
			return []interface{}{f.now}, nil
		},
	})
}

func (f *fakeChain) registry() handler {
	return contractHandler([]*abi.ABI{jcommon.GetRegistryABI()}, map[string]methodFunc{
		"owner": func(args []interface{}) ([]interface{}, error) {
			node := common.Hash(args[0].([32]byte))
			return []interface{}{f.registryOwners[node]}, nil
		},
	})
}

func (f *fakeChain) registrar() handler {
	ownerOf := func(args []interface{}) ([]interface{}, error) {
		id := common.BigToHash(args[0].(*big.Int))
		owner, ok := f.registrarOwners[id]
		if !ok {
			return nil, &RevertError{Data: erc721Revert}
		}
		return []interface{}{owner}, nil
	}
	return contractHandler([]*abi.ABI{jcommon.GetRegistrarABI()}, map[string]methodFunc{
		"ownerOf":      ownerOf,
		"tokenOwnerOf": ownerOf,
		"nameExpires": func(args []interface{}) ([]interface{}, error) {
			id := common.BigToHash(args[0].(*big.Int))
			expiry, ok := f.expiries[id]
			if !ok {
				expiry = big.NewInt(0)
			}
			return []interface{}{expiry}, nil
		},
		"GRACE_PERIOD": func([]interface{}) ([]interface{}, error) {
			return []interface{}{f.gracePeriod}, nil
		},
	})
}

func (f *fakeChain) wrapper() handler {
	return contractHandler([]*abi.ABI{jcommon.GetNameWrapperABI()}, map[string]methodFunc{
		"ownerOf": func(args []interface{}) ([]interface{}, error) {
			node := common.BigToHash(args[0].(*big.Int))
			return []interface{}{f.wrapperOwners[node]}, nil
		},
		"getData": func(args []interface{}) ([]interface{}, error) {
			node := common.BigToHash(args[0].(*big.Int))
			return []interface{}{f.wrapperOwners[node], uint32(0), f.wrapperExpiries[node]}, nil
		},
	})
}

func (f *fakeChain) universalResolver() handler {
	ur := jcommon.GetUniversalResolverABI()
	notFound := ur.Errors["ResolverNotFound"].ID.Bytes()[:4]
	return contractHandler([]*abi.ABI{ur}, map[string]methodFunc{
		"resolve": func(args []interface{}) ([]interface{}, error) {
			name, err := decodeDNSName(args[0].([]byte))
			if err != nil {
				return nil, &RevertError{}
			}
			if revert, ok := f.urReverts[name]; ok {
				return nil, &RevertError{Data: revert}
			}
			resolver, ok := f.resolvers[name]
			if !ok {
				return nil, &RevertError{Data: notFound}
			}
			inner, err := f.resolve(Namehash(name), args[1].([]byte))
			if err != nil {
				return nil, err
			}
			return []interface{}{inner, resolver}, nil
		},
		"reverse": func(args []interface{}) ([]interface{}, error) {
			name, err := decodeDNSName(args[0].([]byte))
			if err != nil {
				return nil, &RevertError{}
			}
			for addr, entry := range f.primary {
				if ReverseName(addr) == name {
					return []interface{}{entry.name, entry.resolved, resolverAddr, resolverAddr}, nil
				}
			}
			return []interface{}{"", common.Address{}, common.Address{}, common.Address{}}, nil
		},
		"findResolver": func(args []interface{}) ([]interface{}, error) {
			name, err := decodeDNSName(args[0].([]byte))
			if err != nil {
				return nil, &RevertError{}
			}
			return []interface{}{f.resolvers[name], [32]byte(Namehash(name)), big.NewInt(0)}, nil
		},
	})
}

// resolve answers an inner resolver call for node.
func (f *fakeChain) resolve(node common.Hash, data []byte) ([]byte, error) {
	h := contractHandler(
		[]*abi.ABI{jcommon.GetLegacyResolverABI(), jcommon.GetResolverABI()},
		map[string]methodFunc{
			"addr(bytes32)": func([]interface{}) ([]interface{}, error) {
				return []interface{}{common.BytesToAddress(f.addrs[node][CoinETH])}, nil
			},
			"addr(bytes32,uint256)": func(args []interface{}) ([]interface{}, error) {
				coin := args[1].(*big.Int).Uint64()
				return []interface{}{f.addrs[node][coin]}, nil
			},
			"text": func(args []interface{}) ([]interface{}, error) {
				return []interface{}{f.texts[node][args[1].(string)]}, nil
			},
			"ABI": func(args []interface{}) ([]interface{}, error) {
				requested := args[1].(*big.Int).Uint64()
				entry, ok := f.abis[node]
				if !ok || entry.contentType&requested == 0 {
					return []interface{}{big.NewInt(0), []byte{}}, nil
				}
				return []interface{}{new(big.Int).SetUint64(entry.contentType), entry.data}, nil
			},
		},
	)
	return h(data)
}

func decodeDNSName(b []byte) (string, error) {
	labels := []string{}
	for i := 0; i < len(b); {
		l := int(b[i])
		if l == 0 {
			return strings.Join(labels, "."), nil
		}
		if i+1+l > len(b) {
			return "", fmt.Errorf("truncated dns name")
		}
		labels = append(labels, string(b[i+1:i+1+l]))
		i += 1 + l
	}
	return "", fmt.Errorf("unterminated dns name")
}

func (f *fakeChain) setRegistryOwner(name string, owner common.Address) {
	f.registryOwners[Namehash(name)] = owner
}

func (f *fakeChain) setRegistrarOwner(label string, owner common.Address) {
	f.registrarOwners[Labelhash(label)] = owner
}

func (f *fakeChain) setWrapperOwner(name string, owner common.Address) {
	f.wrapperOwners[Namehash(name)] = owner
}

func (f *fakeChain) setAddr(name string, coin uint64, value []byte) {
	node := Namehash(name)
	if f.addrs[node] == nil {
		f.addrs[node] = map[uint64][]byte{}
	}
	f.addrs[node][coin] = value
	f.resolvers[name] = resolverAddr
}

func (f *fakeChain) setText(name, key, value string) {
	node := Namehash(name)
	if f.texts[node] == nil {
		f.texts[node] = map[string]string{}
	}
	f.texts[node][key] = value
	f.resolvers[name] = resolverAddr
}
