package raydium

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/layout"
)

// MarketStateV3 is the Serum market account backing a Raydium v4 pool.
type MarketStateV3 struct {
	AccountFlags [8]byte

	OwnAddress       solana.PublicKey
	VaultSignerNonce uint64

	BaseMint  solana.PublicKey
	QuoteMint solana.PublicKey

	BaseVault         solana.PublicKey
	BaseDepositsTotal uint64
	BaseFeesAccrued   uint64

	QuoteVault         solana.PublicKey
	QuoteDepositsTotal uint64
	QuoteFeesAccrued   uint64

	QuoteDustThreshold uint64

	RequestQueue solana.PublicKey
	EventQueue   solana.PublicKey

	Bids solana.PublicKey
	Asks solana.PublicKey

	BaseLotSize  uint64
	QuoteLotSize uint64

	FeeRateBps uint64

	ReferrerRebatesAccrued uint64
}

func (m *MarketStateV3) Decode(data []byte) error {
	if len(data) < MarketStateV3Size {
		return fmt.Errorf("%w: serum market account is %d bytes, need %d",
			pkg.ErrMalformedAccount, len(data), MarketStateV3Size)
	}
	dec := layout.NewDecoder(data)
	dec.Skip(5) // "serum" prefix
	copy(m.AccountFlags[:], dec.ReadBytes(8))
	m.OwnAddress = dec.ReadPublicKey()
	m.VaultSignerNonce = dec.ReadUint64()
	m.BaseMint = dec.ReadPublicKey()
	m.QuoteMint = dec.ReadPublicKey()
	m.BaseVault = dec.ReadPublicKey()
	m.BaseDepositsTotal = dec.ReadUint64()
	m.BaseFeesAccrued = dec.ReadUint64()
	m.QuoteVault = dec.ReadPublicKey()
	m.QuoteDepositsTotal = dec.ReadUint64()
	m.QuoteFeesAccrued = dec.ReadUint64()
	m.QuoteDustThreshold = dec.ReadUint64()
	m.RequestQueue = dec.ReadPublicKey()
	m.EventQueue = dec.ReadPublicKey()
	m.Bids = dec.ReadPublicKey()
	m.Asks = dec.ReadPublicKey()
	m.BaseLotSize = dec.ReadUint64()
	m.QuoteLotSize = dec.ReadUint64()
	m.FeeRateBps = dec.ReadUint64()
	m.ReferrerRebatesAccrued = dec.ReadUint64()
	dec.Skip(7) // "padding" suffix
	return dec.Err()
}

func (m *MarketStateV3) Encode() []byte {
	enc := layout.NewEncoder()
	enc.WriteBytes([]byte("serum"))
	enc.WriteBytes(m.AccountFlags[:])
	enc.WritePublicKey(m.OwnAddress)
	enc.WriteUint64(m.VaultSignerNonce)
	enc.WritePublicKey(m.BaseMint)
	enc.WritePublicKey(m.QuoteMint)
	enc.WritePublicKey(m.BaseVault)
	enc.WriteUint64(m.BaseDepositsTotal)
	enc.WriteUint64(m.BaseFeesAccrued)
	enc.WritePublicKey(m.QuoteVault)
	enc.WriteUint64(m.QuoteDepositsTotal)
	enc.WriteUint64(m.QuoteFeesAccrued)
	enc.WriteUint64(m.QuoteDustThreshold)
	enc.WritePublicKey(m.RequestQueue)
	enc.WritePublicKey(m.EventQueue)
	enc.WritePublicKey(m.Bids)
	enc.WritePublicKey(m.Asks)
	enc.WriteUint64(m.BaseLotSize)
	enc.WriteUint64(m.QuoteLotSize)
	enc.WriteUint64(m.FeeRateBps)
	enc.WriteUint64(m.ReferrerRebatesAccrued)
	enc.Pad(7)
	return enc.Bytes()
}

// MarketAuthority recovers the market's vault-signer address by searching
// nonces below maxMarketAuthorityNonce, the same way the DEX derives it.
func MarketAuthority(marketID, marketProgramID solana.PublicKey) (solana.PublicKey, uint8, error) {
	for nonce := uint8(0); nonce < maxMarketAuthorityNonce; nonce++ {
		seeds := [][]byte{
			marketID.Bytes(),
			{nonce},
			make([]byte, 7),
		}
		authority, err := solana.CreateProgramAddress(seeds, marketProgramID)
		if err != nil {
			continue
		}
		return authority, nonce, nil
	}
	return solana.PublicKey{}, 0, fmt.Errorf("%w: no vault signer nonce below %d for market %s",
		pkg.ErrAuthorityDerivationFailed, maxMarketAuthorityNonce, marketID)
}
