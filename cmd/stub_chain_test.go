package cmd

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/ens"
	"github.com/tranvictor/ensreader/networks"
	"github.com/tranvictor/ensreader/ui"
)

var (
	alice        = common.HexToAddress("0xAAaAaAaaAaAaAaaAaAAAAAAAAaaaAaAaAaaAaaAa")
	bob          = common.HexToAddress("0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB")
	resolverAddr = common.HexToAddress("0x0000000000000000000000000000000000000006")
)

// stubChain answers calls from a table keyed by target and calldata and
// runs multicall3 in process. Unknown calls revert without data.
type stubChain struct {
	t       *testing.T
	n       networks.Network
	mu      sync.Mutex
	answers map[string][]byte
	now     *big.Int
	calls   int
}

func newStubChain(t *testing.T) *stubChain {
	return &stubChain{
		t:       t,
		n:       networks.EthereumMainnet,
		answers: map[string][]byte{},
		now:     big.NewInt(1_700_000_000),
	}
}

func callKey(to common.Address, data []byte) string {
	return to.Hex() + hexutil.Encode(data)
}

func (s *stubChain) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.call(*msg.To, msg.Data)
}

func (s *stubChain) roundTrips() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *stubChain) contract(name string) common.Address {
	addr, err := s.n.GetContractAddress(name)
	require.NoError(s.t, err)
	return addr
}

func (s *stubChain) call(to common.Address, data []byte) ([]byte, error) {
	if to == s.contract(networks.ContractMulticall3) {
		return s.multicall(data)
	}
	s.mu.Lock()
	out, ok := s.answers[callKey(to, data)]
	s.mu.Unlock()
	if !ok {
		return nil, &ens.RevertError{}
	}
	return out, nil
}

func (s *stubChain) multicall(data []byte) ([]byte, error) {
	method, err := jcommon.GetMultiCallABI().MethodById(data[:4])
	require.NoError(s.t, err)
	switch method.Name {
	case "getCurrentBlockTimestamp":
		return method.Outputs.Pack(s.now)
	case "tryAggregate":
		args, err := method.Inputs.Unpack(data[4:])
		require.NoError(s.t, err)
		calls := *abi.ConvertType(args[1], new([]struct {
			Target   common.Address
			CallData []byte
		})).(*[]struct {
			Target   common.Address
			CallData []byte
		})
		results := make([]ens.CallResult, len(calls))
		for i, c := range calls {
			ret, err := s.call(c.Target, c.CallData)
			if err != nil {
				revert, _ := ens.RevertData(err)
				results[i] = ens.CallResult{Success: false, ReturnData: revert}
				continue
			}
			results[i] = ens.CallResult{Success: true, ReturnData: ret}
		}
		return method.Outputs.Pack(results)
	}
	s.t.Fatalf("unexpected multicall method %s", method.Name)
	return nil, nil
}

func (s *stubChain) set(to common.Address, data, out []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[callKey(to, data)] = out
}

func (s *stubChain) pack(a *abi.ABI, method string, args ...any) []byte {
	data, err := a.Pack(method, args...)
	require.NoError(s.t, err)
	return data
}

func (s *stubChain) outputs(a *abi.ABI, method string, values ...any) []byte {
	out, err := a.Methods[method].Outputs.Pack(values...)
	require.NoError(s.t, err)
	return out
}

func tokenID(h common.Hash) *big.Int {
	return new(big.Int).SetBytes(h.Bytes())
}

func (s *stubChain) setRegistryOwner(name string, owner common.Address) {
	registry := jcommon.GetRegistryABI()
	s.set(s.contract(networks.ContractRegistry),
		s.pack(registry, "owner", ens.Namehash(name)),
		s.outputs(registry, "owner", owner))
}

func (s *stubChain) setRegistrarOwner(label string, owner common.Address) {
	registrar := jcommon.GetRegistrarABI()
	method := s.n.GetRegistrarOwnerMethod()
	s.set(s.contract(networks.ContractRegistrar),
		s.pack(registrar, method, tokenID(ens.Labelhash(label))),
		s.outputs(registrar, method, owner))
}

func (s *stubChain) setExpiry(label string, expiry, grace int64) {
	registrar := jcommon.GetRegistrarABI()
	target := s.contract(networks.ContractRegistrar)
	s.set(target,
		s.pack(registrar, "nameExpires", tokenID(ens.Labelhash(label))),
		s.outputs(registrar, "nameExpires", big.NewInt(expiry)))
	s.set(target,
		s.pack(registrar, "GRACE_PERIOD"),
		s.outputs(registrar, "GRACE_PERIOD", big.NewInt(grace)))
}

func (s *stubChain) resolveAnswer(inner []byte) []byte {
	return s.outputs(jcommon.GetUniversalResolverABI(), "resolve", inner, resolverAddr)
}

func (s *stubChain) setAddr(name string, addr common.Address) {
	call, err := ens.GetAddressRecord.Encode(s.n, ens.GetAddressRecordParams{Name: name})
	require.NoError(s.t, err)
	s.set(call.To, call.Data, s.resolveAnswer(s.outputs(jcommon.GetLegacyResolverABI(), "addr", addr)))
}

func (s *stubChain) setText(name, key, value string) {
	call, err := ens.GetTextRecord.Encode(s.n, ens.GetTextRecordParams{Name: name, Key: key})
	require.NoError(s.t, err)
	s.set(call.To, call.Data, s.resolveAnswer(s.outputs(jcommon.GetResolverABI(), "text", value)))
}

func (s *stubChain) setResolver(name string, resolver common.Address) {
	call, err := ens.GetResolver.Encode(s.n, ens.GetResolverParams{Name: name})
	require.NoError(s.t, err)
	s.set(call.To, call.Data, s.outputs(jcommon.GetUniversalResolverABI(), "findResolver",
		resolver, [32]byte{}, big.NewInt(0)))
}

func (s *stubChain) setPrimary(addr common.Address, name string, resolved common.Address) {
	call, err := ens.GetName.Encode(s.n, ens.GetNameParams{Address: addr})
	require.NoError(s.t, err)
	s.set(call.To, call.Data, s.outputs(jcommon.GetUniversalResolverABI(), "reverse",
		name, resolved, resolverAddr, resolverAddr))
}

func testApp(s *stubChain, output string) (*app, *ui.RecordingUI) {
	rec := ui.NewRecordingUI()
	return &app{
		ui:      rec,
		logger:  zap.NewNop(),
		network: s.n,
		client:  ens.NewClient(s, s.n),
		output:  output,
	}, rec
}
