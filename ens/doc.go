// Package ens resolves ownership and records of names in an ENS style
// naming system.
//
// Every read is a Function: a pure encode step that turns typed params
// into a Call against a network's contracts, and a decode step that turns
// the raw return data (or the execution error) back into a typed result.
// A Function can be called directly through a Client, split into its
// encode and decode halves, or handed to Client.Batch together with other
// Functions so that all of them are answered by one Multicall3
// tryAggregate round trip.
//
// Ownership is reconciled from the registry, the registrar and the name
// wrapper (see GetOwner). Records are read through the universal resolver,
// following EIP-3668 offchain lookups when the Client has a Gateway.
package ens
