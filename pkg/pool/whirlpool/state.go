package whirlpool

import (
	"fmt"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	pkg "github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// RewardInfo is one of the three reward slots carried by a whirlpool account.
type RewardInfo struct {
	Mint                  solana.PublicKey
	Vault                 solana.PublicKey
	Authority             solana.PublicKey
	EmissionsPerSecondX64 uint128.Uint128
	GrowthGlobalX64       uint128.Uint128
}

// WhirlpoolState mirrors the on-chain whirlpool account.
type WhirlpoolState struct {
	WhirlpoolsConfig solana.PublicKey
	WhirlpoolBump    uint8
	TickSpacing      uint16
	TickSpacingSeed  [2]uint8
	FeeRate          uint16
	ProtocolFeeRate  uint16
	Liquidity        uint128.Uint128
	SqrtPrice        uint128.Uint128
	TickCurrentIndex int32
	ProtocolFeeOwedA uint64
	ProtocolFeeOwedB uint64
	TokenMintA       solana.PublicKey
	TokenVaultA      solana.PublicKey
	FeeGrowthGlobalA uint128.Uint128
	TokenMintB       solana.PublicKey
	TokenVaultB      solana.PublicKey
	FeeGrowthGlobalB uint128.Uint128
	RewardLastUpdatedTimestamp uint64
	RewardInfos                [3]RewardInfo
}

// DecodeWhirlpoolState parses a raw whirlpool account.
func DecodeWhirlpoolState(data []byte) (*WhirlpoolState, error) {
	if len(data) != WhirlpoolAccountSize {
		return nil, fmt.Errorf("%w: whirlpool account is %d bytes, want %d",
			pkg.ErrMalformedAccount, len(data), WhirlpoolAccountSize)
	}
	body, err := layout.StripAccountDiscriminator("Whirlpool", data)
	if err != nil {
		return nil, err
	}

	d := layout.NewDecoder(body)
	s := &WhirlpoolState{}
	s.WhirlpoolsConfig = d.ReadPublicKey()
	s.WhirlpoolBump = d.ReadUint8()
	s.TickSpacing = d.ReadUint16()
	s.TickSpacingSeed[0] = d.ReadUint8()
	s.TickSpacingSeed[1] = d.ReadUint8()
	s.FeeRate = d.ReadUint16()
	s.ProtocolFeeRate = d.ReadUint16()
	s.Liquidity = d.ReadUint128()
	s.SqrtPrice = d.ReadUint128()
	s.TickCurrentIndex = d.ReadInt32()
	s.ProtocolFeeOwedA = d.ReadUint64()
	s.ProtocolFeeOwedB = d.ReadUint64()
	s.TokenMintA = d.ReadPublicKey()
	s.TokenVaultA = d.ReadPublicKey()
	s.FeeGrowthGlobalA = d.ReadUint128()
	s.TokenMintB = d.ReadPublicKey()
	s.TokenVaultB = d.ReadPublicKey()
	s.FeeGrowthGlobalB = d.ReadUint128()
	s.RewardLastUpdatedTimestamp = d.ReadUint64()
	for i := range s.RewardInfos {
		s.RewardInfos[i].Mint = d.ReadPublicKey()
		s.RewardInfos[i].Vault = d.ReadPublicKey()
		s.RewardInfos[i].Authority = d.ReadPublicKey()
		s.RewardInfos[i].EmissionsPerSecondX64 = d.ReadUint128()
		s.RewardInfos[i].GrowthGlobalX64 = d.ReadUint128()
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode serializes the state back into account bytes, discriminator included.
func (s *WhirlpoolState) Encode() []byte {
	e := layout.NewEncoder()
	e.WriteBytes(layout.AccountDiscriminator("Whirlpool"))
	e.WritePublicKey(s.WhirlpoolsConfig)
	e.WriteUint8(s.WhirlpoolBump)
	e.WriteUint16(s.TickSpacing)
	e.WriteUint8(s.TickSpacingSeed[0])
	e.WriteUint8(s.TickSpacingSeed[1])
	e.WriteUint16(s.FeeRate)
	e.WriteUint16(s.ProtocolFeeRate)
	e.WriteUint128(s.Liquidity)
	e.WriteUint128(s.SqrtPrice)
	e.WriteInt32(s.TickCurrentIndex)
	e.WriteUint64(s.ProtocolFeeOwedA)
	e.WriteUint64(s.ProtocolFeeOwedB)
	e.WritePublicKey(s.TokenMintA)
	e.WritePublicKey(s.TokenVaultA)
	e.WriteUint128(s.FeeGrowthGlobalA)
	e.WritePublicKey(s.TokenMintB)
	e.WritePublicKey(s.TokenVaultB)
	e.WriteUint128(s.FeeGrowthGlobalB)
	e.WriteUint64(s.RewardLastUpdatedTimestamp)
	for i := range s.RewardInfos {
		e.WritePublicKey(s.RewardInfos[i].Mint)
		e.WritePublicKey(s.RewardInfos[i].Vault)
		e.WritePublicKey(s.RewardInfos[i].Authority)
		e.WriteUint128(s.RewardInfos[i].EmissionsPerSecondX64)
		e.WriteUint128(s.RewardInfos[i].GrowthGlobalX64)
	}
	return e.Bytes()
}

// Tick is one initializable tick inside a tick array.
type Tick struct {
	Initialized          bool
	LiquidityNet         cosmath.Int
	LiquidityGross       uint128.Uint128
	FeeGrowthOutsideA    uint128.Uint128
	FeeGrowthOutsideB    uint128.Uint128
	RewardGrowthsOutside [3]uint128.Uint128
}

// TickArrayState mirrors the on-chain tick array account.
type TickArrayState struct {
	StartTickIndex int32
	Ticks          [TickArraySize]Tick
	Whirlpool      solana.PublicKey
}

// DecodeTickArrayState parses a raw tick array account.
func DecodeTickArrayState(data []byte) (*TickArrayState, error) {
	if len(data) != TickArrayAccountSize {
		return nil, fmt.Errorf("%w: tick array account is %d bytes, want %d",
			pkg.ErrMalformedAccount, len(data), TickArrayAccountSize)
	}
	body, err := layout.StripAccountDiscriminator("TickArray", data)
	if err != nil {
		return nil, err
	}

	d := layout.NewDecoder(body)
	s := &TickArrayState{}
	s.StartTickIndex = d.ReadInt32()
	for i := range s.Ticks {
		s.Ticks[i].Initialized = d.ReadBool()
		s.Ticks[i].LiquidityNet = d.ReadInt128()
		s.Ticks[i].LiquidityGross = d.ReadUint128()
		s.Ticks[i].FeeGrowthOutsideA = d.ReadUint128()
		s.Ticks[i].FeeGrowthOutsideB = d.ReadUint128()
		for j := range s.Ticks[i].RewardGrowthsOutside {
			s.Ticks[i].RewardGrowthsOutside[j] = d.ReadUint128()
		}
	}
	s.Whirlpool = d.ReadPublicKey()
	if err := d.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode serializes the tick array back into account bytes.
func (s *TickArrayState) Encode() []byte {
	e := layout.NewEncoder()
	e.WriteBytes(layout.AccountDiscriminator("TickArray"))
	e.WriteInt32(s.StartTickIndex)
	for i := range s.Ticks {
		e.WriteBool(s.Ticks[i].Initialized)
		e.WriteInt128(s.Ticks[i].LiquidityNet)
		e.WriteUint128(s.Ticks[i].LiquidityGross)
		e.WriteUint128(s.Ticks[i].FeeGrowthOutsideA)
		e.WriteUint128(s.Ticks[i].FeeGrowthOutsideB)
		for j := range s.Ticks[i].RewardGrowthsOutside {
			e.WriteUint128(s.Ticks[i].RewardGrowthsOutside[j])
		}
	}
	e.WritePublicKey(s.Whirlpool)
	return e.Bytes()
}
