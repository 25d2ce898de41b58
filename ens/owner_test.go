package ens

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jcommon "github.com/tranvictor/ensreader/common"
	"github.com/tranvictor/ensreader/networks"
)

func ownerWorld() *fakeChain {
	f := newFakeChain()
	f.setRegistryOwner("eth", registrarAddr)

	f.setRegistryOwner("alice.eth", alice)
	f.setRegistrarOwner("alice", alice)

	// registration lapsed, registry record kept
	f.setRegistryOwner("expired.eth", alice)

	f.setRegistrarOwner("wrapped", wrapperAddr)
	f.setRegistryOwner("wrapped.eth", wrapperAddr)
	f.setWrapperOwner("wrapped.eth", carol)

	// held by the wrapper, wrapper owner cleared
	f.setRegistrarOwner("burnt", wrapperAddr)
	f.setRegistryOwner("burnt.eth", wrapperAddr)

	f.setRegistryOwner("sub.alice.eth", wrapperAddr)
	f.setWrapperOwner("sub.alice.eth", carol)
	f.setRegistryOwner("plain.alice.eth", bob)

	f.setRegistryOwner("alice.crypto", alice)
	f.setRegistryOwner("wrapped.crypto", wrapperAddr)
	f.setWrapperOwner("wrapped.crypto", carol)
	return f
}

func addrPtr(a common.Address) *common.Address {
	return &a
}

var ownerCases = []struct {
	desc   string
	params GetOwnerParams
	want   Ownership
}{
	{"registered 2ld", GetOwnerParams{Name: "alice.eth"}, UnwrappedEth2ldOwnership{Registrant: addrPtr(alice), Owner: alice}},
	{"expired 2ld", GetOwnerParams{Name: "expired.eth"}, UnwrappedEth2ldOwnership{Registrant: nil, Owner: alice}},
	{"unregistered 2ld", GetOwnerParams{Name: "bob.eth"}, nil},
	{"wrapped 2ld", GetOwnerParams{Name: "wrapped.eth"}, WrappedOwnership{Owner: carol}},
	{"wrapped 2ld without wrapper owner", GetOwnerParams{Name: "burnt.eth"}, nil},
	{"wrapped subname", GetOwnerParams{Name: "sub.alice.eth"}, WrappedOwnership{Owner: carol}},
	{"registry subname", GetOwnerParams{Name: "plain.alice.eth"}, RegistryOwnership{Owner: bob}},
	{"missing subname", GetOwnerParams{Name: "nobody.alice.eth"}, nil},
	{"other tld", GetOwnerParams{Name: "alice.crypto"}, RegistryOwnership{Owner: alice}},
	{"other tld wrapped", GetOwnerParams{Name: "wrapped.crypto"}, WrappedOwnership{Owner: carol}},
	{"other tld missing", GetOwnerParams{Name: "nobody.crypto"}, nil},
	{"single label", GetOwnerParams{Name: "eth"}, RegistryOwnership{Owner: registrarAddr}},
	{"pinned registry empty", GetOwnerParams{Name: "bob.eth", Contract: ContractRegistry}, nil},
	{"pinned registry", GetOwnerParams{Name: "alice.eth", Contract: ContractRegistry}, RegistryOwnership{Owner: alice}},
	{"pinned registrar", GetOwnerParams{Name: "alice.eth", Contract: ContractRegistrar}, RegistrarOnlyOwnership{Registrant: alice}},
	{"pinned registrar reverted", GetOwnerParams{Name: "bob.eth", Contract: ContractRegistrar}, nil},
	{"pinned wrapper", GetOwnerParams{Name: "wrapped.eth", Contract: ContractNameWrapper}, WrappedOwnership{Owner: carol}},
	{"pinned wrapper empty", GetOwnerParams{Name: "alice.eth", Contract: ContractNameWrapper}, nil},
}

func TestGetOwnerPrecedence(t *testing.T) {
	f := ownerWorld()
	client := NewClient(f, testNetwork())

	for _, c := range ownerCases {
		t.Run(c.desc, func(t *testing.T) {
			got, err := GetOwner.Call(context.Background(), client, c.params)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestGetOwnerBatchMatchesDirect(t *testing.T) {
	f := ownerWorld()
	client := NewClient(f, testNetwork())

	calls := make([]BatchCall, len(ownerCases))
	for i, c := range ownerCases {
		calls[i] = GetOwner.Batch(c.params)
	}
	results, err := client.Batch(context.Background(), calls...)
	require.NoError(t, err)
	require.Len(t, results, len(ownerCases))
	assert.Equal(t, 1, f.roundTrips())

	for i, c := range ownerCases {
		got, err := BatchResult[Ownership](results, i)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, c.desc)
	}
}

func TestGetOwnerManualPair(t *testing.T) {
	f := ownerWorld()
	n := testNetwork()
	client := NewClient(f, n)
	params := GetOwnerParams{Name: "alice.eth"}

	call, err := GetOwner.Encode(n, params)
	require.NoError(t, err)
	assert.Equal(t, multicallAddr, call.To)

	data, callErr := client.Execute(context.Background(), call)
	got, err := GetOwner.Decode(n, data, callErr, params)
	require.NoError(t, err)
	assert.Equal(t, UnwrappedEth2ldOwnership{Registrant: addrPtr(alice), Owner: alice}, got)
}

func TestGetOwnerPlan(t *testing.T) {
	n := testNetwork()
	plan, err := ownerPlan(n, GetOwnerParams{Name: "alice.eth"})
	require.NoError(t, err)
	assert.Equal(t, []OwnerContract{ContractRegistry, ContractNameWrapper, ContractRegistrar}, plan)

	plan, err = ownerPlan(n, GetOwnerParams{Name: "sub.alice.eth"})
	require.NoError(t, err)
	assert.Equal(t, []OwnerContract{ContractRegistry, ContractNameWrapper}, plan)

	plan, err = ownerPlan(lsp8Network(), GetOwnerParams{Name: "alice.lyx"})
	require.NoError(t, err)
	assert.Equal(t, []OwnerContract{ContractRegistry, ContractRegistrar}, plan)

	_, err = ownerPlan(n, GetOwnerParams{Name: "alice.eth", Contract: "resolver"})
	assert.ErrorIs(t, err, ErrInvalidContractType)
}

func TestGetOwnerLSP8Registrar(t *testing.T) {
	f := newFakeChain()
	f.setRegistryOwner("alice.lyx", alice)
	f.setRegistrarOwner("alice", bob)
	n := lsp8Network()
	client := NewClient(f, n)

	call, err := ownerCall(n, ContractRegistrar, "alice.lyx")
	require.NoError(t, err)
	assert.Equal(t, jcommon.GetRegistrarABI().Methods["tokenOwnerOf"].ID, call.Data[:4])

	got, err := GetOwner.Call(context.Background(), client, GetOwnerParams{Name: "alice.lyx"})
	require.NoError(t, err)
	assert.Equal(t, UnwrappedEth2ldOwnership{Registrant: addrPtr(bob), Owner: alice}, got)

	// .eth is not managed here: no registrar, no expired 2ld answer
	f.setRegistryOwner("alice.eth", alice)
	got, err = GetOwner.Call(context.Background(), client, GetOwnerParams{Name: "alice.eth"})
	require.NoError(t, err)
	assert.Equal(t, RegistryOwnership{Owner: alice}, got)

	_, err = GetOwner.Call(context.Background(), client, GetOwnerParams{Name: "alice.lyx", Contract: ContractNameWrapper})
	assert.ErrorIs(t, err, networks.ErrContractNotFound)
}

func TestGetOwnerErrors(t *testing.T) {
	f := ownerWorld()
	n := testNetwork()
	client := NewClient(f, n)

	_, err := GetOwner.Call(context.Background(), client, GetOwnerParams{Name: "alice.eth", Contract: "resolver"})
	assert.ErrorIs(t, err, ErrInvalidContractType)
	assert.Zero(t, f.roundTrips())

	f.transportErr = errTransport
	_, err = GetOwner.Call(context.Background(), client, GetOwnerParams{Name: "alice.eth"})
	assert.ErrorIs(t, err, errTransport)

	_, err = GetOwner.Decode(n, []byte{1, 2, 3}, nil, GetOwnerParams{Name: "alice.eth"})
	assert.Error(t, err)
}

func TestOwnerValueAbsence(t *testing.T) {
	n := testNetwork()
	for _, res := range []CallResult{
		{Success: false, ReturnData: common.LeftPadBytes(alice.Bytes(), 32)},
		{Success: true},
		{Success: true, ReturnData: make([]byte, 36)},
		{Success: true, ReturnData: make([]byte, 32)},
	} {
		v, err := ownerValue(n, ContractRegistry, res)
		require.NoError(t, err)
		assert.Nil(t, v)
	}

	v, err := ownerValue(n, ContractRegistry, CallResult{Success: true, ReturnData: common.LeftPadBytes(alice.Bytes(), 32)})
	require.NoError(t, err)
	assert.Equal(t, alice, *v)
}

func TestOwnerOf(t *testing.T) {
	addr, ok := OwnerOf(RegistrarOnlyOwnership{Registrant: bob})
	assert.True(t, ok)
	assert.Equal(t, bob, addr)
	assert.Equal(t, LevelRegistrar, UnwrappedEth2ldOwnership{}.Level())
	assert.Equal(t, LevelNameWrapper, WrappedOwnership{}.Level())

	_, ok = OwnerOf(nil)
	assert.False(t, ok)
}
