// Package orcav1 supports the Orca v1 token-swap program (the SPL token-swap
// layout with Orca's deployment).
package orcav1

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// TokenSwapState is the SPL token-swap pool account as deployed by Orca v1.
type TokenSwapState struct {
	Version        uint8
	IsInitialized  bool
	BumpSeed       uint8
	TokenProgramID solana.PublicKey
	TokenAccountA  solana.PublicKey
	TokenAccountB  solana.PublicKey
	TokenPool      solana.PublicKey
	MintA          solana.PublicKey
	MintB          solana.PublicKey
	FeeAccount     solana.PublicKey

	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	OwnerTradeFeeNumerator      uint64
	OwnerTradeFeeDenominator    uint64
	OwnerWithdrawFeeNumerator   uint64
	OwnerWithdrawFeeDenominator uint64
	HostFeeNumerator            uint64
	HostFeeDenominator          uint64

	CurveType       uint8
	CurveParameters [32]byte
}

func (s *TokenSwapState) Decode(data []byte) error {
	if len(data) < TokenSwapStateSize {
		return fmt.Errorf("%w: orca pool account is %d bytes, need %d",
			pkg.ErrMalformedAccount, len(data), TokenSwapStateSize)
	}
	dec := layout.NewDecoder(data)
	s.Version = dec.ReadUint8()
	s.IsInitialized = dec.ReadBool()
	s.BumpSeed = dec.ReadUint8()
	s.TokenProgramID = dec.ReadPublicKey()
	s.TokenAccountA = dec.ReadPublicKey()
	s.TokenAccountB = dec.ReadPublicKey()
	s.TokenPool = dec.ReadPublicKey()
	s.MintA = dec.ReadPublicKey()
	s.MintB = dec.ReadPublicKey()
	s.FeeAccount = dec.ReadPublicKey()
	s.TradeFeeNumerator = dec.ReadUint64()
	s.TradeFeeDenominator = dec.ReadUint64()
	s.OwnerTradeFeeNumerator = dec.ReadUint64()
	s.OwnerTradeFeeDenominator = dec.ReadUint64()
	s.OwnerWithdrawFeeNumerator = dec.ReadUint64()
	s.OwnerWithdrawFeeDenominator = dec.ReadUint64()
	s.HostFeeNumerator = dec.ReadUint64()
	s.HostFeeDenominator = dec.ReadUint64()
	s.CurveType = dec.ReadUint8()
	copy(s.CurveParameters[:], dec.ReadBytes(32))
	return dec.Err()
}

func (s *TokenSwapState) Encode() []byte {
	enc := layout.NewEncoder()
	enc.WriteUint8(s.Version)
	enc.WriteBool(s.IsInitialized)
	enc.WriteUint8(s.BumpSeed)
	enc.WritePublicKey(s.TokenProgramID)
	enc.WritePublicKey(s.TokenAccountA)
	enc.WritePublicKey(s.TokenAccountB)
	enc.WritePublicKey(s.TokenPool)
	enc.WritePublicKey(s.MintA)
	enc.WritePublicKey(s.MintB)
	enc.WritePublicKey(s.FeeAccount)
	enc.WriteUint64(s.TradeFeeNumerator)
	enc.WriteUint64(s.TradeFeeDenominator)
	enc.WriteUint64(s.OwnerTradeFeeNumerator)
	enc.WriteUint64(s.OwnerTradeFeeDenominator)
	enc.WriteUint64(s.OwnerWithdrawFeeNumerator)
	enc.WriteUint64(s.OwnerWithdrawFeeDenominator)
	enc.WriteUint64(s.HostFeeNumerator)
	enc.WriteUint64(s.HostFeeDenominator)
	enc.WriteUint8(s.CurveType)
	enc.WriteBytes(s.CurveParameters[:])
	return enc.Bytes()
}

// Authority derives the swap authority PDA seeded by the pool address.
func Authority(poolAddress solana.PublicKey) (solana.PublicKey, error) {
	authority, _, err := solana.FindProgramAddress(
		[][]byte{poolAddress.Bytes()},
		ORCA_SWAP_PROGRAM_ID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: orca authority: %s", pkg.ErrAuthorityDerivationFailed, err)
	}
	return authority, nil
}
