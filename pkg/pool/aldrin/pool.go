// Package aldrin supports the Aldrin pools program. The swap is an Anchor
// instruction taking a side byte: Bid buys the base token with quote, Ask
// sells base for quote.
package aldrin

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// Fees carried inside the pool account.
type Fees struct {
	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	OwnerTradeFeeNumerator      uint64
	OwnerTradeFeeDenominator    uint64
	OwnerWithdrawFeeNumerator   uint64
	OwnerWithdrawFeeDenominator uint64
}

// PoolState is the Aldrin v2 pool account. The leading 8 bytes are the
// Anchor account discriminator, which varies per deployment and is skipped
// rather than checked.
type PoolState struct {
	LpTokenFreezeVault  solana.PublicKey
	PoolMint            solana.PublicKey
	BaseTokenVault      solana.PublicKey
	BaseTokenMint       solana.PublicKey
	QuoteTokenVault     solana.PublicKey
	QuoteTokenMint      solana.PublicKey
	PoolSigner          solana.PublicKey
	PoolSignerNonce     uint8
	Authority           solana.PublicKey
	InitializerAccount  solana.PublicKey
	FeeBaseAccount      solana.PublicKey
	FeeQuoteAccount     solana.PublicKey
	FeePoolTokenAccount solana.PublicKey
	Fees                Fees
	CurveType           uint8
	Curve               solana.PublicKey
}

func (s *PoolState) Decode(data []byte) error {
	if len(data) < PoolStateV2Size {
		return fmt.Errorf("%w: aldrin pool account is %d bytes, need %d",
			pkg.ErrMalformedAccount, len(data), PoolStateV2Size)
	}
	dec := layout.NewDecoder(data)
	dec.Skip(8) // anchor discriminator
	s.LpTokenFreezeVault = dec.ReadPublicKey()
	s.PoolMint = dec.ReadPublicKey()
	s.BaseTokenVault = dec.ReadPublicKey()
	s.BaseTokenMint = dec.ReadPublicKey()
	s.QuoteTokenVault = dec.ReadPublicKey()
	s.QuoteTokenMint = dec.ReadPublicKey()
	s.PoolSigner = dec.ReadPublicKey()
	s.PoolSignerNonce = dec.ReadUint8()
	s.Authority = dec.ReadPublicKey()
	s.InitializerAccount = dec.ReadPublicKey()
	s.FeeBaseAccount = dec.ReadPublicKey()
	s.FeeQuoteAccount = dec.ReadPublicKey()
	s.FeePoolTokenAccount = dec.ReadPublicKey()
	s.Fees.TradeFeeNumerator = dec.ReadUint64()
	s.Fees.TradeFeeDenominator = dec.ReadUint64()
	s.Fees.OwnerTradeFeeNumerator = dec.ReadUint64()
	s.Fees.OwnerTradeFeeDenominator = dec.ReadUint64()
	s.Fees.OwnerWithdrawFeeNumerator = dec.ReadUint64()
	s.Fees.OwnerWithdrawFeeDenominator = dec.ReadUint64()
	s.CurveType = dec.ReadUint8()
	s.Curve = dec.ReadPublicKey()
	return dec.Err()
}

func (s *PoolState) Encode() []byte {
	enc := layout.NewEncoder()
	enc.Pad(8)
	enc.WritePublicKey(s.LpTokenFreezeVault)
	enc.WritePublicKey(s.PoolMint)
	enc.WritePublicKey(s.BaseTokenVault)
	enc.WritePublicKey(s.BaseTokenMint)
	enc.WritePublicKey(s.QuoteTokenVault)
	enc.WritePublicKey(s.QuoteTokenMint)
	enc.WritePublicKey(s.PoolSigner)
	enc.WriteUint8(s.PoolSignerNonce)
	enc.WritePublicKey(s.Authority)
	enc.WritePublicKey(s.InitializerAccount)
	enc.WritePublicKey(s.FeeBaseAccount)
	enc.WritePublicKey(s.FeeQuoteAccount)
	enc.WritePublicKey(s.FeePoolTokenAccount)
	enc.WriteUint64(s.Fees.TradeFeeNumerator)
	enc.WriteUint64(s.Fees.TradeFeeDenominator)
	enc.WriteUint64(s.Fees.OwnerTradeFeeNumerator)
	enc.WriteUint64(s.Fees.OwnerTradeFeeDenominator)
	enc.WriteUint64(s.Fees.OwnerWithdrawFeeNumerator)
	enc.WriteUint64(s.Fees.OwnerWithdrawFeeDenominator)
	enc.WriteUint8(s.CurveType)
	enc.WritePublicKey(s.Curve)
	return enc.Bytes()
}
