package ens

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
)

type SecretOptions struct {
	// PlatformDomain, when set, brands the first 4 bytes of the secret
	// with the domain's namehash.
	PlatformDomain string
	// Campaign, when non zero, is written big endian into bytes 4..8.
	Campaign uint64
}

// RandomSecret draws a registration secret from r, crypto/rand.Reader in
// production.
func RandomSecret(r io.Reader, opts SecretOptions) (common.Hash, error) {
	var secret common.Hash
	if _, err := io.ReadFull(r, secret[:]); err != nil {
		return common.Hash{}, fmt.Errorf("reading random secret: %w", err)
	}
	if opts.PlatformDomain != "" {
		node := Namehash(opts.PlatformDomain)
		copy(secret[0:4], node[0:4])
	}
	if opts.Campaign != 0 {
		if opts.Campaign > 0xffffffff {
			return common.Hash{}, fmt.Errorf("%w: %d", ErrCampaignTooLarge, opts.Campaign)
		}
		binary.BigEndian.PutUint32(secret[4:8], uint32(opts.Campaign))
	}
	return secret, nil
}

type RegistrationParams struct {
	// Name is the name to register; only its first label is committed.
	Name            string
	Owner           common.Address
	Duration        *big.Int
	Secret          common.Hash
	Resolver        common.Address
	ResolvedAddress common.Address
	ReverseRecord   bool
}

// MakeCommitment is keccak256 of the packed
// (labelhash, owner, duration, resolver, resolvedAddress, secret, reverseRecord).
func MakeCommitment(p RegistrationParams) common.Hash {
	labels := SplitLabels(p.Name)
	label := ""
	if len(labels) > 0 {
		label = labels[0]
	}
	duration := p.Duration
	if duration == nil {
		duration = new(big.Int)
	}
	reverse := byte(0)
	if p.ReverseRecord {
		reverse = 1
	}
	labelhash := Labelhash(label)
	return crypto.Keccak256Hash(
		labelhash[:],
		p.Owner.Bytes(),
		math.U256Bytes(new(big.Int).Set(duration)),
		p.Resolver.Bytes(),
		p.ResolvedAddress.Bytes(),
		p.Secret[:],
		[]byte{reverse},
	)
}
