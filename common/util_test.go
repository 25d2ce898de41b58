package common

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParallelJoinsErrors(t *testing.T) {
	var ran atomic.Int32
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	err, failed := RunParallel(
		func() error { ran.Add(1); return errA },
		func() error { ran.Add(1); return nil },
		func() error { ran.Add(1); return errB },
	)
	require.Error(t, err)
	assert.Equal(t, 2, failed)
	assert.Equal(t, int32(3), ran.Load())
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestRunParallelNoErrors(t *testing.T) {
	err, failed := RunParallel(func() error { return nil })
	assert.NoError(t, err)
	assert.Zero(t, failed)
}

func TestABIsParse(t *testing.T) {
	_, ok := GetMultiCallABI().Methods["tryAggregate"]
	assert.True(t, ok)
	_, ok = GetRegistrarABI().Methods["tokenOwnerOf"]
	assert.True(t, ok)
	_, ok = GetUniversalResolverABI().Errors["OffchainLookup"]
	assert.True(t, ok)
	assert.Len(t, GetLegacyResolverABI().Methods["addr"].Inputs, 1)
	assert.Len(t, GetResolverABI().Methods["addr"].Inputs, 2)
}

func TestShortAddress(t *testing.T) {
	addr := HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")
	assert.Equal(t, "0x0000...2e1e", ShortAddress(addr))
	assert.True(t, IsZeroAddress(HexToAddress("0x0")))
}

func TestScanForAddresses(t *testing.T) {
	text := "sent from 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045, to 0x00000000000000000000000000000000000000a1 and 0x123"
	assert.Equal(t, []string{
		"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		"0x00000000000000000000000000000000000000a1",
	}, ScanForAddresses(text))
	assert.Empty(t, ScanForAddresses("0x00000000000000000000000000000000000000a1ff"))
}
