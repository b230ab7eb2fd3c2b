// Package raydium supports the Raydium AMM v4 program. A swap touches both
// the pool account and its Serum market, so routing decodes the pair and
// recovers the market's vault-signer authority by nonce search.
package raydium

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// LiquidityStateV4 is the Raydium AMM v4 pool account.
type LiquidityStateV4 struct {
	Status                 uint64
	Nonce                  uint64
	MaxOrder               uint64
	Depth                  uint64
	BaseDecimal            uint64
	QuoteDecimal           uint64
	State                  uint64
	ResetFlag              uint64
	MinSize                uint64
	VolMaxCutRatio         uint64
	AmountWaveRatio        uint64
	BaseLotSize            uint64
	QuoteLotSize           uint64
	MinPriceMultiplier     uint64
	MaxPriceMultiplier     uint64
	SystemDecimalValue     uint64
	MinSeparateNumerator   uint64
	MinSeparateDenominator uint64
	TradeFeeNumerator      uint64
	TradeFeeDenominator    uint64
	PnlNumerator           uint64
	PnlDenominator         uint64
	SwapFeeNumerator       uint64
	SwapFeeDenominator     uint64
	BaseNeedTakePnl        uint64
	QuoteNeedTakePnl       uint64
	QuoteTotalPnl          uint64
	BaseTotalPnl           uint64

	QuoteTotalDeposited uint128.Uint128
	BaseTotalDeposited  uint128.Uint128
	SwapBaseInAmount    uint128.Uint128
	SwapQuoteOutAmount  uint128.Uint128
	SwapBase2QuoteFee   uint64
	SwapQuoteInAmount   uint128.Uint128
	SwapBaseOutAmount   uint128.Uint128
	SwapQuote2BaseFee   uint64

	BaseVault       solana.PublicKey
	QuoteVault      solana.PublicKey
	BaseMint        solana.PublicKey
	QuoteMint       solana.PublicKey
	LpMint          solana.PublicKey
	OpenOrders      solana.PublicKey
	MarketID        solana.PublicKey
	MarketProgramID solana.PublicKey
	TargetOrders    solana.PublicKey
	WithdrawQueue   solana.PublicKey
	LpVault         solana.PublicKey
	Owner           solana.PublicKey

	LpReserve uint64
}

func (s *LiquidityStateV4) Decode(data []byte) error {
	if len(data) < LiquidityStateV4Size {
		return fmt.Errorf("%w: raydium pool account is %d bytes, need %d",
			pkg.ErrMalformedAccount, len(data), LiquidityStateV4Size)
	}
	dec := layout.NewDecoder(data)
	for _, dst := range []*uint64{
		&s.Status, &s.Nonce, &s.MaxOrder, &s.Depth,
		&s.BaseDecimal, &s.QuoteDecimal, &s.State, &s.ResetFlag,
		&s.MinSize, &s.VolMaxCutRatio, &s.AmountWaveRatio,
		&s.BaseLotSize, &s.QuoteLotSize,
		&s.MinPriceMultiplier, &s.MaxPriceMultiplier, &s.SystemDecimalValue,
		&s.MinSeparateNumerator, &s.MinSeparateDenominator,
		&s.TradeFeeNumerator, &s.TradeFeeDenominator,
		&s.PnlNumerator, &s.PnlDenominator,
		&s.SwapFeeNumerator, &s.SwapFeeDenominator,
		&s.BaseNeedTakePnl, &s.QuoteNeedTakePnl,
		&s.QuoteTotalPnl, &s.BaseTotalPnl,
	} {
		*dst = dec.ReadUint64()
	}
	s.QuoteTotalDeposited = dec.ReadUint128()
	s.BaseTotalDeposited = dec.ReadUint128()
	s.SwapBaseInAmount = dec.ReadUint128()
	s.SwapQuoteOutAmount = dec.ReadUint128()
	s.SwapBase2QuoteFee = dec.ReadUint64()
	s.SwapQuoteInAmount = dec.ReadUint128()
	s.SwapBaseOutAmount = dec.ReadUint128()
	s.SwapQuote2BaseFee = dec.ReadUint64()
	s.BaseVault = dec.ReadPublicKey()
	s.QuoteVault = dec.ReadPublicKey()
	s.BaseMint = dec.ReadPublicKey()
	s.QuoteMint = dec.ReadPublicKey()
	s.LpMint = dec.ReadPublicKey()
	s.OpenOrders = dec.ReadPublicKey()
	s.MarketID = dec.ReadPublicKey()
	s.MarketProgramID = dec.ReadPublicKey()
	s.TargetOrders = dec.ReadPublicKey()
	s.WithdrawQueue = dec.ReadPublicKey()
	s.LpVault = dec.ReadPublicKey()
	s.Owner = dec.ReadPublicKey()
	s.LpReserve = dec.ReadUint64()
	return dec.Err()
}

func (s *LiquidityStateV4) Encode() []byte {
	enc := layout.NewEncoder()
	for _, v := range []uint64{
		s.Status, s.Nonce, s.MaxOrder, s.Depth,
		s.BaseDecimal, s.QuoteDecimal, s.State, s.ResetFlag,
		s.MinSize, s.VolMaxCutRatio, s.AmountWaveRatio,
		s.BaseLotSize, s.QuoteLotSize,
		s.MinPriceMultiplier, s.MaxPriceMultiplier, s.SystemDecimalValue,
		s.MinSeparateNumerator, s.MinSeparateDenominator,
		s.TradeFeeNumerator, s.TradeFeeDenominator,
		s.PnlNumerator, s.PnlDenominator,
		s.SwapFeeNumerator, s.SwapFeeDenominator,
		s.BaseNeedTakePnl, s.QuoteNeedTakePnl,
		s.QuoteTotalPnl, s.BaseTotalPnl,
	} {
		enc.WriteUint64(v)
	}
	enc.WriteUint128(s.QuoteTotalDeposited)
	enc.WriteUint128(s.BaseTotalDeposited)
	enc.WriteUint128(s.SwapBaseInAmount)
	enc.WriteUint128(s.SwapQuoteOutAmount)
	enc.WriteUint64(s.SwapBase2QuoteFee)
	enc.WriteUint128(s.SwapQuoteInAmount)
	enc.WriteUint128(s.SwapBaseOutAmount)
	enc.WriteUint64(s.SwapQuote2BaseFee)
	enc.WritePublicKey(s.BaseVault)
	enc.WritePublicKey(s.QuoteVault)
	enc.WritePublicKey(s.BaseMint)
	enc.WritePublicKey(s.QuoteMint)
	enc.WritePublicKey(s.LpMint)
	enc.WritePublicKey(s.OpenOrders)
	enc.WritePublicKey(s.MarketID)
	enc.WritePublicKey(s.MarketProgramID)
	enc.WritePublicKey(s.TargetOrders)
	enc.WritePublicKey(s.WithdrawQueue)
	enc.WritePublicKey(s.LpVault)
	enc.WritePublicKey(s.Owner)
	enc.WriteUint64(s.LpReserve)
	return enc.Bytes()
}

// PoolAuthority derives the shared amm authority PDA.
func PoolAuthority() (solana.PublicKey, error) {
	authority, _, err := solana.FindProgramAddress(
		[][]byte{AmmAuthoritySeed},
		RAYDIUM_AMM_PROGRAM_ID,
	)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("%w: raydium amm authority: %s", pkg.ErrAuthorityDerivationFailed, err)
	}
	return authority, nil
}
