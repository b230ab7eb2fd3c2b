// Package saros supports the Saros swap program, a Coin98 fork of the SPL
// token-swap program whose payload carries a trailing marker byte.
package saros

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// TokenSwapState is the Saros pool account.
type TokenSwapState struct {
	Version       uint8
	IsInitialized bool
	Nonce         uint8

	TokenProgramID solana.PublicKey
	Token0Account  solana.PublicKey
	Token1Account  solana.PublicKey
	LpTokenMint    solana.PublicKey
	Token0Mint     solana.PublicKey
	Token1Mint     solana.PublicKey
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
		return fmt.Errorf("%w: saros pool account is %d bytes, need %d",
			pkg.ErrMalformedAccount, len(data), TokenSwapStateSize)
	}
	dec := layout.NewDecoder(data)
	s.Version = dec.ReadUint8()
	s.IsInitialized = dec.ReadBool()
	s.Nonce = dec.ReadUint8()
	s.TokenProgramID = dec.ReadPublicKey()
	s.Token0Account = dec.ReadPublicKey()
	s.Token1Account = dec.ReadPublicKey()
	s.LpTokenMint = dec.ReadPublicKey()
	s.Token0Mint = dec.ReadPublicKey()
	s.Token1Mint = dec.ReadPublicKey()
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
	enc.WriteUint8(s.Nonce)
	enc.WritePublicKey(s.TokenProgramID)
	enc.WritePublicKey(s.Token0Account)
	enc.WritePublicKey(s.Token1Account)
	enc.WritePublicKey(s.LpTokenMint)
	enc.WritePublicKey(s.Token0Mint)
	enc.WritePublicKey(s.Token1Mint)
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

// Authority derives the pool authority PDA seeded by the pool address.
func Authority(poolAddress solana.PublicKey) (solana.PublicKey, error) {
	authority, _, err := solana.FindProgramAddress(
		[][]byte{poolAddress.Bytes()},
		SAROS_SWAP_PROGRAM_ID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: saros authority: %s", pkg.ErrAuthorityDerivationFailed, err)
	}
	return authority, nil
}
