package pkg

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"
)

// Protocol identifies an AMM protocol supported by the aggregator. The set is
// closed: dispatch happens over an exhaustive switch and any value outside the
// enum fails with ErrUnsupportedProtocol.
type Protocol uint8

const (
	ProtocolSaber Protocol = iota
	ProtocolMercurial
	ProtocolCropper
	ProtocolOrca
	ProtocolSaros
	ProtocolAldrin
	ProtocolCrema
	ProtocolRaydium
	ProtocolWhirlpool

	protocolSentinel // keep last
)

func (p Protocol) String() string {
	switch p {
	case ProtocolSaber:
		return "saber"
	case ProtocolMercurial:
		return "mercurial"
	case ProtocolCropper:
		return "cropper"
	case ProtocolOrca:
		return "orca"
	case ProtocolSaros:
		return "saros"
	case ProtocolAldrin:
		return "aldrin"
	case ProtocolCrema:
		return "crema"
	case ProtocolRaydium:
		return "raydium"
	case ProtocolWhirlpool:
		return "orca_whirlpool"
	}
	return fmt.Sprintf("protocol(%d)", uint8(p))
}

// ParseProtocol maps an external tag to the enum.
func ParseProtocol(s string) (Protocol, error) {
	for p := Protocol(0); p < protocolSentinel; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedProtocol, s)
}

// Valid reports whether p is inside the closed enum.
func (p Protocol) Valid() bool {
	return p < protocolSentinel
}

// SwapHop describes one pool traversal of a route. All fields are required;
// Validate rejects zero keys and zero amounts before any instruction is built.
type SwapHop struct {
	Protocol        Protocol
	PoolAddress     solana.PublicKey
	PoolAuthority   solana.PublicKey
	PoolSource      solana.PublicKey // pool vault receiving the input token
	PoolDestination solana.PublicKey // pool vault paying the output token
	SourceMint      solana.PublicKey
	DestinationMint solana.PublicKey
	AmountIn        math.Int
	AmountOutMin    math.Int
}

func (h SwapHop) Validate() error {
	if !h.Protocol.Valid() {
		return fmt.Errorf("%w: %d", ErrUnsupportedProtocol, uint8(h.Protocol))
	}
	for _, k := range []struct {
		name string
		key  solana.PublicKey
	}{
		{"pool address", h.PoolAddress},
		{"pool source", h.PoolSource},
		{"pool destination", h.PoolDestination},
		{"source mint", h.SourceMint},
		{"destination mint", h.DestinationMint},
	} {
		if k.key.IsZero() {
			return fmt.Errorf("swap hop: %s is unset", k.name)
		}
	}
	if h.AmountIn.IsNil() || !h.AmountIn.IsPositive() {
		return fmt.Errorf("%w: amount in", ErrZeroAmount)
	}
	if h.AmountOutMin.IsNil() || h.AmountOutMin.IsNegative() {
		return fmt.Errorf("swap hop: minimum amount out is unset")
	}
	return nil
}

// AccountFetcher loads raw account data. Implementations return
// ErrAccountNotFound (wrapped) when the account does not exist.
type AccountFetcher interface {
	FetchAccount(ctx context.Context, address solana.PublicKey) ([]byte, error)
}

// InstructionBuilder turns a validated hop into the protocol's swap
// instruction. userSource and userDestination are the caller's token accounts
// for the hop's source and destination mints.
type InstructionBuilder interface {
	Protocol() Protocol
	BuildSwapInstruction(
		ctx context.Context,
		fetcher AccountFetcher,
		hop SwapHop,
		userAuthority solana.PublicKey,
		userSource solana.PublicKey,
		userDestination solana.PublicKey,
	) (solana.Instruction, error)
}
