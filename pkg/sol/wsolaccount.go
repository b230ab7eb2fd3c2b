package sol

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
)

// WrapSOL returns instructions funding the owner's wrapped-SOL account with
// amount lamports. The create instruction is included only when the account
// does not exist yet; SyncNative keeps the token balance in step with the
// lamport balance.
func (t *TokenAccounts) WrapSOL(ctx context.Context, owner solana.PublicKey, amount uint64) (solana.PublicKey, []solana.Instruction, error) {
	wsolAccount, createInsts, err := t.ResolveOrCreate(ctx, owner, WSOL)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	insts := createInsts

	transferInst, err := system.NewTransferInstruction(
		amount,
		owner,
		wsolAccount,
	).ValidateAndBuild()
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("build lamport transfer instruction: %w", err)
	}
	insts = append(insts, transferInst)

	syncNativeInst, err := token.NewSyncNativeInstruction(
		wsolAccount,
	).ValidateAndBuild()
	if err != nil {
		return solana.PublicKey{}, nil, fmt.Errorf("build sync native instruction: %w", err)
	}
	insts = append(insts, syncNativeInst)

	return wsolAccount, insts, nil
}

// UnwrapSOL returns the instruction closing the owner's wrapped-SOL account,
// releasing its lamports back to the owner.
func (t *TokenAccounts) UnwrapSOL(owner solana.PublicKey) (solana.Instruction, error) {
	wsolAccount, _, err := solana.FindAssociatedTokenAddress(owner, WSOL)
	if err != nil {
		return nil, fmt.Errorf("find wrapped SOL account: %w", err)
	}
	return t.CloseAccount(owner, wsolAccount)
}
