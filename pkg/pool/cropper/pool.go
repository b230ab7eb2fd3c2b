// Package cropper supports the Cropper token-swap fork. Swaps route through
// a global state account and pay an admin fee into the admin's ATA for the
// input mint.
package cropper

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// AmmState is the Cropper pool account.
type AmmState struct {
	Version        uint8
	IsInitialized  bool
	Nonce          uint8
	AmmID          solana.PublicKey
	DexProgramID   solana.PublicKey
	MarketID       solana.PublicKey
	TokenProgramID solana.PublicKey
	TokenA         solana.PublicKey
	TokenB         solana.PublicKey
	PoolMint       solana.PublicKey
	TokenAMint     solana.PublicKey
	TokenBMint     solana.PublicKey
}

func (s *AmmState) Decode(data []byte) error {
	if len(data) < AmmStateSize {
		return fmt.Errorf("%w: cropper pool account is %d bytes, need %d",
			pkg.ErrMalformedAccount, len(data), AmmStateSize)
	}
	dec := layout.NewDecoder(data)
	s.Version = dec.ReadUint8()
	s.IsInitialized = dec.ReadBool()
	s.Nonce = dec.ReadUint8()
	s.AmmID = dec.ReadPublicKey()
	s.DexProgramID = dec.ReadPublicKey()
	s.MarketID = dec.ReadPublicKey()
	s.TokenProgramID = dec.ReadPublicKey()
	s.TokenA = dec.ReadPublicKey()
	s.TokenB = dec.ReadPublicKey()
	s.PoolMint = dec.ReadPublicKey()
	s.TokenAMint = dec.ReadPublicKey()
	s.TokenBMint = dec.ReadPublicKey()
	return dec.Err()
}

func (s *AmmState) Encode() []byte {
	enc := layout.NewEncoder()
	enc.WriteUint8(s.Version)
	enc.WriteBool(s.IsInitialized)
	enc.WriteUint8(s.Nonce)
	enc.WritePublicKey(s.AmmID)
	enc.WritePublicKey(s.DexProgramID)
	enc.WritePublicKey(s.MarketID)
	enc.WritePublicKey(s.TokenProgramID)
	enc.WritePublicKey(s.TokenA)
	enc.WritePublicKey(s.TokenB)
	enc.WritePublicKey(s.PoolMint)
	enc.WritePublicKey(s.TokenAMint)
	enc.WritePublicKey(s.TokenBMint)
	return enc.Bytes()
}

// Authority derives the swap authority PDA seeded by the pool's amm id.
func (s *AmmState) Authority() (solana.PublicKey, error) {
	authority, _, err := solana.FindProgramAddress(
		[][]byte{s.AmmID.Bytes()},
		CROPPER_PROGRAM_ID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: cropper authority: %s", pkg.ErrAuthorityDerivationFailed, err)
	}
	return authority, nil
}
