package layout

import (
	"errors"
	"math/big"
	"testing"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"

	"github.com/dexcore-labs/solswap/pkg"
)

func TestDecoderRoundTrip(t *testing.T) {
	key := solana.MustPublicKeyFromBase58("So11111111111111111111111111111111111111112")

	enc := NewEncoder()
	enc.WriteUint8(7)
	enc.WriteBool(true)
	enc.WriteUint16(513)
	enc.WriteUint32(1 << 20)
	enc.WriteInt32(-443636)
	enc.WriteUint64(1_000_000_000)
	enc.WriteInt64(-42)
	enc.WriteUint128(uint128.From64(123456789).Lsh(64))
	enc.WriteInt128(cosmath.NewInt(-987654321))
	enc.WritePublicKey(key)
	enc.Pad(3)

	dec := NewDecoder(enc.Bytes())
	assert.Equal(t, uint8(7), dec.ReadUint8())
	assert.True(t, dec.ReadBool())
	assert.Equal(t, uint16(513), dec.ReadUint16())
	assert.Equal(t, uint32(1<<20), dec.ReadUint32())
	assert.Equal(t, int32(-443636), dec.ReadInt32())
	assert.Equal(t, uint64(1_000_000_000), dec.ReadUint64())
	assert.Equal(t, int64(-42), dec.ReadInt64())
	assert.Equal(t, uint128.From64(123456789).Lsh(64), dec.ReadUint128())
	assert.True(t, dec.ReadInt128().Equal(cosmath.NewInt(-987654321)))
	assert.Equal(t, key, dec.ReadPublicKey())
	dec.Skip(3)
	require.NoError(t, dec.Err())
	assert.Equal(t, 0, dec.Remaining())
}

func TestDecoderShortBuffer(t *testing.T) {
	dec := NewDecoder([]byte{1, 2, 3})
	_ = dec.ReadUint64()
	err := dec.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrMalformedAccount))

	// error sticks across later reads
	_ = dec.ReadUint8()
	assert.True(t, errors.Is(dec.Err(), pkg.ErrMalformedAccount))
}

func TestInt128Extremes(t *testing.T) {
	for _, v := range []cosmath.Int{
		cosmath.ZeroInt(),
		cosmath.NewInt(1),
		cosmath.NewInt(-1),
		cosmath.NewIntFromBigInt(new(big.Int).Lsh(big.NewInt(1), 126)),
		cosmath.NewIntFromBigInt(new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 126))),
	} {
		enc := NewEncoder()
		enc.WriteInt128(v)
		dec := NewDecoder(enc.Bytes())
		got := dec.ReadInt128()
		require.NoError(t, dec.Err())
		assert.True(t, got.Equal(v), "want %s got %s", v, got)
	}
}

func TestDiscriminators(t *testing.T) {
	acc := AccountDiscriminator("Whirlpool")
	inst := InstructionDiscriminator("swap")
	assert.Len(t, acc, 8)
	assert.Len(t, inst, 8)
	assert.NotEqual(t, acc, inst)
	// deterministic
	assert.Equal(t, acc, AccountDiscriminator("Whirlpool"))

	data := append(AccountDiscriminator("TickArray"), 0xAA, 0xBB)
	payload, err := StripAccountDiscriminator("TickArray", data)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, payload)

	_, err = StripAccountDiscriminator("Whirlpool", data)
	assert.True(t, errors.Is(err, pkg.ErrMalformedAccount))

	_, err = StripAccountDiscriminator("Whirlpool", []byte{1, 2})
	assert.True(t, errors.Is(err, pkg.ErrMalformedAccount))
}
