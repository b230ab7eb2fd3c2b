// Package layout implements the bounds-checked cursor used to decode raw
// Solana account data, plus the mirror encoder used to build fixtures, and
// the Anchor discriminator helpers shared by the anchor-based protocols.
package layout

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"

	"github.com/dexcore-labs/solswap/pkg"
)

// Decoder walks raw account bytes sequentially. Every read is bounds-checked;
// a short buffer surfaces as pkg.ErrMalformedAccount with the offending
// offset, and the error sticks so callers can check once after a field run.
type Decoder struct {
	data []byte
	off  int
	err  error
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Err returns the first read failure, if any.
func (d *Decoder) Err() error { return d.err }

// Offset returns the current cursor position.
func (d *Decoder) Offset() int { return d.off }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.data) - d.off }

func (d *Decoder) take(n int) []byte {
	if d.err != nil {
		return nil
	}
	if d.off+n > len(d.data) {
		d.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			pkg.ErrMalformedAccount, n, d.off, len(d.data)-d.off)
		return nil
	}
	b := d.data[d.off : d.off+n]
	d.off += n
	return b
}

func (d *Decoder) ReadUint8() uint8 {
	b := d.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (d *Decoder) ReadBool() bool {
	return d.ReadUint8() != 0
}

func (d *Decoder) ReadUint16() uint16 {
	b := d.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (d *Decoder) ReadUint32() uint32 {
	b := d.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (d *Decoder) ReadInt32() int32 {
	return int32(d.ReadUint32())
}

func (d *Decoder) ReadUint64() uint64 {
	b := d.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (d *Decoder) ReadInt64() int64 {
	return int64(d.ReadUint64())
}

func (d *Decoder) ReadUint128() uint128.Uint128 {
	b := d.take(16)
	if b == nil {
		return uint128.Zero
	}
	return uint128.FromBytes(b)
}

// ReadInt128 reads a little-endian two's-complement i128.
func (d *Decoder) ReadInt128() cosmath.Int {
	b := d.take(16)
	if b == nil {
		return cosmath.ZeroInt()
	}
	be := make([]byte, 16)
	for i := range b {
		be[15-i] = b[i]
	}
	v := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	return cosmath.NewIntFromBigInt(v)
}

func (d *Decoder) ReadPublicKey() solana.PublicKey {
	b := d.take(32)
	if b == nil {
		return solana.PublicKey{}
	}
	return solana.PublicKeyFromBytes(b)
}

// ReadBytes copies n raw bytes (padding blobs, seeds).
func (d *Decoder) ReadBytes(n int) []byte {
	b := d.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Skip advances over n bytes without copying.
func (d *Decoder) Skip(n int) {
	d.take(n)
}

// Encoder is the mirror of Decoder. It is used by tests to build account
// fixtures with the exact on-chain layouts.
type Encoder struct {
	buf bytes.Buffer
}

func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

func (e *Encoder) WriteUint8(v uint8) { e.buf.WriteByte(v) }

func (e *Encoder) WriteBool(v bool) {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

func (e *Encoder) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) WriteInt32(v int32) { e.WriteUint32(uint32(v)) }

func (e *Encoder) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) WriteInt64(v int64) { e.WriteUint64(uint64(v)) }

func (e *Encoder) WriteUint128(v uint128.Uint128) {
	var b [16]byte
	v.PutBytes(b[:])
	e.buf.Write(b[:])
}

// WriteInt128 writes a little-endian two's-complement i128.
func (e *Encoder) WriteInt128(v cosmath.Int) {
	bi := new(big.Int).Set(v.BigInt())
	if bi.Sign() < 0 {
		bi.Add(bi, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	be := bi.FillBytes(make([]byte, 16))
	le := make([]byte, 16)
	for i := range be {
		le[15-i] = be[i]
	}
	e.buf.Write(le)
}

func (e *Encoder) WritePublicKey(k solana.PublicKey) {
	e.buf.Write(k.Bytes())
}

func (e *Encoder) WriteBytes(b []byte) {
	e.buf.Write(b)
}

func (e *Encoder) Pad(n int) {
	e.buf.Write(make([]byte, n))
}

// AccountDiscriminator returns sha256("account:"+name)[0:8], the Anchor
// account tag.
func AccountDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("account:" + name))
	return sum[:8]
}

// InstructionDiscriminator returns sha256("global:"+name)[0:8], the Anchor
// instruction tag.
func InstructionDiscriminator(name string) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return sum[:8]
}

// StripAccountDiscriminator validates the 8-byte Anchor prefix for name and
// returns the payload that follows it.
func StripAccountDiscriminator(name string, data []byte) ([]byte, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("%w: %s account shorter than discriminator", pkg.ErrMalformedAccount, name)
	}
	if !bytes.Equal(data[:8], AccountDiscriminator(name)) {
		return nil, fmt.Errorf("%w: bad %s discriminator", pkg.ErrMalformedAccount, name)
	}
	return data[8:], nil
}
