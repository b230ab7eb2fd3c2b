package sol

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/dexcore-labs/solswap/pkg"
)

// TokenAccounts resolves and manages the user's SPL token accounts. It never
// sends transactions itself: creation instructions are returned to the caller
// so route assembly can batch them into the swap transaction.
type TokenAccounts struct {
	fetcher pkg.AccountFetcher
}

func NewTokenAccounts(fetcher pkg.AccountFetcher) *TokenAccounts {
	return &TokenAccounts{fetcher: fetcher}
}

// ResolveOrCreate returns the owner's associated token account for mint. When
// the account does not exist on chain, the returned instructions create it
// (funded by owner) and must precede any instruction that uses the account.
func (t *TokenAccounts) ResolveOrCreate(ctx context.Context, owner, mint solana.PublicKey) (solana.PublicKey, []solana.Instruction, error) {
	return t.ResolveOrCreateFor(ctx, owner, owner, mint)
}

// ResolveOrCreateFor is ResolveOrCreate with a separate fee payer, used when
// the account owner cannot sign (e.g. the fee treasury's token account).
func (t *TokenAccounts) ResolveOrCreateFor(ctx context.Context, payer, owner, mint solana.PublicKey) (solana.PublicKey, []solana.Instruction, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("find associated token address: %w", err)
	}

	_, err = t.fetcher.FetchAccount(ctx, ata)
	if err == nil {
		return ata, nil, nil
	}
	if !errors.Is(err, pkg.ErrAccountNotFound) {
		return solana.PublicKey{}, nil, err
	}

	createInst, err := associatedtokenaccount.NewCreateInstruction(
		payer,
		owner,
		mint,
	).ValidateAndBuild()
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("build create ATA instruction: %w", err)
	}
	return ata, []solana.Instruction{createInst}, nil
}

// CloseAccount builds the instruction returning the account's lamports to
// owner. Used to unwrap native SOL after a swap.
func (t *TokenAccounts) CloseAccount(owner, account solana.PublicKey) (solana.Instruction, error) {
	inst, err := token.NewCloseAccountInstruction(
		account,
		owner,
		owner,
		[]solana.PublicKey{},
	).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("build close account instruction: %w", err)
	}
	return inst, nil
}

// Transfer builds an SPL token transfer between two accounts owned by owner.
func (t *TokenAccounts) Transfer(owner, source, destination solana.PublicKey, amount uint64) (solana.Instruction, error) {
	inst, err := token.NewTransferInstruction(
		amount,
		source,
		destination,
		owner,
		[]solana.PublicKey{},
	).ValidateAndBuild()
	if err != nil {
		return nil, fmt.Errorf("build transfer instruction: %w", err)
	}
	return inst, nil
}
