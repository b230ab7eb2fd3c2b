// Package crema supports the Crema swap program. Only the account prefix up
// to the positions key is decoded; the swap instruction needs the ticks
// account but none of the price state.
package crema

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// TokenSwapAccount is the routing-relevant prefix of the Crema pool account.
type TokenSwapAccount struct {
	Version        uint8
	TokenSwapKey   solana.PublicKey
	AccountType    uint8
	IsInitialized  bool
	Nonce          uint8
	TokenProgramID solana.PublicKey
	Manager        solana.PublicKey
	ManagerTokenA  solana.PublicKey
	ManagerTokenB  solana.PublicKey
	SwapTokenA     solana.PublicKey
	SwapTokenB     solana.PublicKey
	TokenAMint     solana.PublicKey
	TokenBMint     solana.PublicKey
	TicksKey       solana.PublicKey
	PositionsKey   solana.PublicKey
}

func (s *TokenSwapAccount) Decode(data []byte) error {
	if len(data) < TokenSwapAccountPrefixSize {
		return fmt.Errorf("%w: crema pool account is %d bytes, need %d",
			pkg.ErrMalformedAccount, len(data), TokenSwapAccountPrefixSize)
	}
	dec := layout.NewDecoder(data)
	s.Version = dec.ReadUint8()
	s.TokenSwapKey = dec.ReadPublicKey()
	s.AccountType = dec.ReadUint8()
	s.IsInitialized = dec.ReadBool()
	s.Nonce = dec.ReadUint8()
	s.TokenProgramID = dec.ReadPublicKey()
	s.Manager = dec.ReadPublicKey()
	s.ManagerTokenA = dec.ReadPublicKey()
	s.ManagerTokenB = dec.ReadPublicKey()
	s.SwapTokenA = dec.ReadPublicKey()
	s.SwapTokenB = dec.ReadPublicKey()
	s.TokenAMint = dec.ReadPublicKey()
	s.TokenBMint = dec.ReadPublicKey()
	s.TicksKey = dec.ReadPublicKey()
	s.PositionsKey = dec.ReadPublicKey()
	return dec.Err()
}

func (s *TokenSwapAccount) Encode() []byte {
	enc := layout.NewEncoder()
	enc.WriteUint8(s.Version)
	enc.WritePublicKey(s.TokenSwapKey)
	enc.WriteUint8(s.AccountType)
	enc.WriteBool(s.IsInitialized)
	enc.WriteUint8(s.Nonce)
	enc.WritePublicKey(s.TokenProgramID)
	enc.WritePublicKey(s.Manager)
	enc.WritePublicKey(s.ManagerTokenA)
	enc.WritePublicKey(s.ManagerTokenB)
	enc.WritePublicKey(s.SwapTokenA)
	enc.WritePublicKey(s.SwapTokenB)
	enc.WritePublicKey(s.TokenAMint)
	enc.WritePublicKey(s.TokenBMint)
	enc.WritePublicKey(s.TicksKey)
	enc.WritePublicKey(s.PositionsKey)
	return enc.Bytes()
}
