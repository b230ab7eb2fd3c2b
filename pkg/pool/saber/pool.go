// Package saber supports the Saber StableSwap program: decoding the swap
// state account, quoting through the shared invariant solver and building the
// program's swap instruction.
package saber

import (
	"fmt"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
	"github.com/dexcore-labs/solswap/pkg/stable"
)

// StableSwapState is the Saber pool account.
type StableSwapState struct {
	IsInitialized       bool
	IsPaused            bool
	Nonce               uint8
	InitialAmpFactor    uint64
	TargetAmpFactor     uint64
	StartRampTs         int64
	StopRampTs          int64
	FutureAdminDeadline int64
	FutureAdminAccount  solana.PublicKey
	AdminAccount        solana.PublicKey
	TokenAccountA       solana.PublicKey
	TokenAccountB       solana.PublicKey
	TokenPool           solana.PublicKey
	MintA               solana.PublicKey
	MintB               solana.PublicKey
	AdminFeeAccountA    solana.PublicKey
	AdminFeeAccountB    solana.PublicKey

	AdminTradeFeeNumerator      uint64
	AdminTradeFeeDenominator    uint64
	AdminWithdrawFeeNumerator   uint64
	AdminWithdrawFeeDenominator uint64
	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	WithdrawFeeNumerator        uint64
	WithdrawFeeDenominator      uint64
}

// Decode parses the raw pool account.
func (s *StableSwapState) Decode(data []byte) error {
	if len(data) < StableSwapStateSize {
		return fmt.Errorf("%w: saber pool account is %d bytes, need %d",
			pkg.ErrMalformedAccount, len(data), StableSwapStateSize)
	}
	dec := layout.NewDecoder(data)
	s.IsInitialized = dec.ReadBool()
	s.IsPaused = dec.ReadBool()
	s.Nonce = dec.ReadUint8()
	s.InitialAmpFactor = dec.ReadUint64()
	s.TargetAmpFactor = dec.ReadUint64()
	s.StartRampTs = dec.ReadInt64()
	s.StopRampTs = dec.ReadInt64()
	s.FutureAdminDeadline = dec.ReadInt64()
	s.FutureAdminAccount = dec.ReadPublicKey()
	s.AdminAccount = dec.ReadPublicKey()
	s.TokenAccountA = dec.ReadPublicKey()
	s.TokenAccountB = dec.ReadPublicKey()
	s.TokenPool = dec.ReadPublicKey()
	s.MintA = dec.ReadPublicKey()
	s.MintB = dec.ReadPublicKey()
	s.AdminFeeAccountA = dec.ReadPublicKey()
	s.AdminFeeAccountB = dec.ReadPublicKey()
	s.AdminTradeFeeNumerator = dec.ReadUint64()
	s.AdminTradeFeeDenominator = dec.ReadUint64()
	s.AdminWithdrawFeeNumerator = dec.ReadUint64()
	s.AdminWithdrawFeeDenominator = dec.ReadUint64()
	s.TradeFeeNumerator = dec.ReadUint64()
	s.TradeFeeDenominator = dec.ReadUint64()
	s.WithdrawFeeNumerator = dec.ReadUint64()
	s.WithdrawFeeDenominator = dec.ReadUint64()
	return dec.Err()
}

// Encode is the mirror of Decode, used for fixtures.
func (s *StableSwapState) Encode() []byte {
	enc := layout.NewEncoder()
	enc.WriteBool(s.IsInitialized)
	enc.WriteBool(s.IsPaused)
	enc.WriteUint8(s.Nonce)
	enc.WriteUint64(s.InitialAmpFactor)
	enc.WriteUint64(s.TargetAmpFactor)
	enc.WriteInt64(s.StartRampTs)
	enc.WriteInt64(s.StopRampTs)
	enc.WriteInt64(s.FutureAdminDeadline)
	enc.WritePublicKey(s.FutureAdminAccount)
	enc.WritePublicKey(s.AdminAccount)
	enc.WritePublicKey(s.TokenAccountA)
	enc.WritePublicKey(s.TokenAccountB)
	enc.WritePublicKey(s.TokenPool)
	enc.WritePublicKey(s.MintA)
	enc.WritePublicKey(s.MintB)
	enc.WritePublicKey(s.AdminFeeAccountA)
	enc.WritePublicKey(s.AdminFeeAccountB)
	enc.WriteUint64(s.AdminTradeFeeNumerator)
	enc.WriteUint64(s.AdminTradeFeeDenominator)
	enc.WriteUint64(s.AdminWithdrawFeeNumerator)
	enc.WriteUint64(s.AdminWithdrawFeeDenominator)
	enc.WriteUint64(s.TradeFeeNumerator)
	enc.WriteUint64(s.TradeFeeDenominator)
	enc.WriteUint64(s.WithdrawFeeNumerator)
	enc.WriteUint64(s.WithdrawFeeDenominator)
	return enc.Bytes()
}

// AmpFactor returns the amplification coefficient at now, interpolating
// linearly between the initial and target values during a ramp.
func (s *StableSwapState) AmpFactor(now int64) cosmath.Int {
	initial := cosmath.NewIntFromUint64(s.InitialAmpFactor)
	target := cosmath.NewIntFromUint64(s.TargetAmpFactor)
	if now >= s.StopRampTs {
		return target
	}
	if now <= s.StartRampTs {
		return initial
	}
	elapsed := cosmath.NewInt(now - s.StartRampTs)
	window := cosmath.NewInt(s.StopRampTs - s.StartRampTs)
	return initial.Add(target.Sub(initial).Mul(elapsed).Quo(window))
}

// Quote computes the output amount for amountIn moving the pool from
// fromIndex to toIndex over the given vault balances, net of the trade fee.
func (s *StableSwapState) Quote(amountIn cosmath.Int, balances []cosmath.Int, fromIndex, toIndex int, now int64) (cosmath.Int, error) {
	if amountIn.IsZero() {
		return cosmath.ZeroInt(), nil
	}
	amp := s.AmpFactor(now)
	d, err := stable.ComputeD(amp, balances)
	if err != nil {
		return cosmath.ZeroInt(), fmt.Errorf("saber quote: %w", err)
	}

	post := make([]cosmath.Int, len(balances))
	copy(post, balances)
	post[fromIndex] = post[fromIndex].Add(amountIn)
	y, err := stable.ComputeY(amp, post, toIndex, d)
	if err != nil {
		return cosmath.ZeroInt(), fmt.Errorf("saber quote: %w", err)
	}

	beforeFee := balances[toIndex].Sub(y)
	fee := beforeFee.
		Mul(cosmath.NewIntFromUint64(s.TradeFeeNumerator)).
		Quo(cosmath.NewIntFromUint64(s.TradeFeeDenominator))
	return beforeFee.Sub(fee), nil
}
