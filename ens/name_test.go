package ens

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetName(t *testing.T) {
	f := newFakeChain()
	f.primary[alice] = reverseEntry{name: "Alice.eth", resolved: alice}
	f.primary[bob] = reverseEntry{name: "alice.eth", resolved: alice}
	f.primary[carol] = reverseEntry{name: "bad..eth", resolved: carol}
	client := NewClient(f, testNetwork())
	ctx := context.Background()

	got, err := GetName.Call(ctx, client, GetNameParams{Address: alice})
	require.NoError(t, err)
	assert.Equal(t, &NameResult{
		Name:                   "alice.eth",
		Match:                  true,
		ReverseResolverAddress: resolverAddr,
		ResolverAddress:        resolverAddr,
	}, got)

	mismatch, err := GetName.Call(ctx, client, GetNameParams{Address: bob})
	require.NoError(t, err)
	assert.Nil(t, mismatch)

	allowed, err := GetName.Call(ctx, client, GetNameParams{Address: bob, AllowMismatch: true})
	require.NoError(t, err)
	require.NotNil(t, allowed)
	assert.False(t, allowed.Match)
	assert.Equal(t, "alice.eth", allowed.Name)

	invalid, err := GetName.Call(ctx, client, GetNameParams{Address: carol})
	require.NoError(t, err)
	assert.Nil(t, invalid)
	_, err = GetName.Call(ctx, client, GetNameParams{Address: carol, Strict: true})
	assert.ErrorIs(t, err, ErrInvalidName)

	none, err := GetName.Call(ctx, client, GetNameParams{Address: resolverAddr, Strict: true})
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGetNameMalformedData(t *testing.T) {
	for _, strict := range []bool{false, true} {
		_, err := GetName.Decode(testNetwork(), []byte{0x01, 0x02}, nil, GetNameParams{Address: alice, Strict: strict})
		assert.Error(t, err, "strict=%v", strict)
	}
}

func TestReverseName(t *testing.T) {
	assert.Equal(t,
		"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa.addr.reverse",
		ReverseName(alice),
	)
}
