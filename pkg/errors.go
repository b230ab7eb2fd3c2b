package pkg

import "errors"

// Sentinel errors for route assembly and pool decoding. Callers classify
// failures with errors.Is; every wrapping site carries the pool or account
// context via fmt.Errorf("...: %w", err).
var (
	// ErrMalformedAccount indicates raw account data that is too short or
	// carries a wrong discriminator for the expected layout.
	ErrMalformedAccount = errors.New("malformed account data")

	// ErrAccountNotFound indicates a fetch for an account that does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrOutOfBounds indicates a simulation that left the representable price
	// or tick-array range.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrSlippageViolation indicates a quote below the caller's threshold.
	ErrSlippageViolation = errors.New("slippage tolerance exceeded")

	// ErrAuthorityDerivationFailed indicates that no valid program address
	// could be derived for a pool or market authority.
	ErrAuthorityDerivationFailed = errors.New("authority derivation failed")

	// ErrUnsupportedProtocol indicates a protocol tag outside the closed set.
	ErrUnsupportedProtocol = errors.New("unsupported protocol")

	// ErrZeroAmount indicates a swap request for zero tokens.
	ErrZeroAmount = errors.New("zero swap amount")
)
