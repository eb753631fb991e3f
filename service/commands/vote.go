package commands

import (
	"context"
	"fmt"

	"github.com/brojonat/solterm/service/history"
	solanasvc "github.com/brojonat/solterm/service/solana"
	"github.com/brojonat/solterm/service/solana/program"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// createVote funds and initializes a vote account with the operator identity
// as node, authorized voter, and authorized withdrawer.
func (e *Executor) createVote(ctx context.Context) (Outcome, error) {
	text, err := e.in.Text("Commission % (empty for 0)", "")
	if err != nil {
		return OutcomeContinue, fmt.Errorf("read commission: %w", err)
	}
	commission, err := solanasvc.ParseCommission(text)
	if err != nil {
		return OutcomeContinue, err
	}

	rent, err := e.sess.RPC().MinimumRentExemption(ctx, program.VoteAccountSize)
	if err != nil {
		return OutcomeContinue, err
	}

	voteKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return OutcomeContinue, fmt.Errorf("generate vote account keypair: %w", err)
	}
	voteAccount := voteKey.PublicKey()

	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(
			rent,
			program.VoteAccountSize,
			solana.VoteProgramID,
			e.sess.Pubkey(),
			voteAccount,
		).Build(),
		program.VoteInitializeAccount(
			voteAccount,
			e.sess.Pubkey(),
			e.sess.Pubkey(),
			e.sess.Pubkey(),
			uint8(commission),
		),
	}

	_, err = e.submit(ctx, KindCreateVote,
		instructions,
		[]solana.PrivateKey{e.sess.Signer(), voteKey},
		history.Submission{
			Lamports: rent,
			Account:  voteAccount.String(),
		},
	)
	if err != nil {
		return OutcomeContinue, err
	}

	cyan.Fprintf(e.out, "vote account %s (commission %d%%)\n", voteAccount, commission)
	return OutcomeContinue, nil
}
