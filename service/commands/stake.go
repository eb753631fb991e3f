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

// createStake funds and initializes a brand-new stake account. The account
// keypair is generated here, signs the creating transaction once, and is
// never needed again: the operator identity holds both stake authorities.
func (e *Executor) createStake(ctx context.Context) (Outcome, error) {
	text, err := e.in.Text("Amount to stake (SOL)", "")
	if err != nil {
		return OutcomeContinue, fmt.Errorf("read amount: %w", err)
	}
	amount, err := solanasvc.ParseAmount(text)
	if err != nil {
		return OutcomeContinue, err
	}

	rent, err := e.sess.RPC().MinimumRentExemption(ctx, program.StakeAccountSize)
	if err != nil {
		return OutcomeContinue, err
	}

	stakeKey, err := solana.NewRandomPrivateKey()
	if err != nil {
		return OutcomeContinue, fmt.Errorf("generate stake account keypair: %w", err)
	}
	stakeAccount := stakeKey.PublicKey()

	lamports := rent + amount.Lamports()
	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(
			lamports,
			program.StakeAccountSize,
			solana.StakeProgramID,
			e.sess.Pubkey(),
			stakeAccount,
		).Build(),
		program.StakeInitialize(stakeAccount, e.sess.Pubkey(), e.sess.Pubkey()),
	}

	_, err = e.submit(ctx, KindCreateStake,
		instructions,
		[]solana.PrivateKey{e.sess.Signer(), stakeKey},
		history.Submission{
			Lamports: lamports,
			Account:  stakeAccount.String(),
		},
	)
	if err != nil {
		return OutcomeContinue, err
	}

	cyan.Fprintf(e.out, "stake account %s\n", stakeAccount)
	return OutcomeContinue, nil
}

func (e *Executor) delegateStake(ctx context.Context) (Outcome, error) {
	stakeAccount, err := e.promptPubkey("Stake account", false)
	if err != nil {
		return OutcomeContinue, err
	}
	voteAccount, err := e.promptPubkey("Validator vote account", false)
	if err != nil {
		return OutcomeContinue, err
	}

	ix := program.StakeDelegate(stakeAccount, voteAccount, e.sess.Pubkey())
	_, err = e.submit(ctx, KindDelegateStake,
		[]solana.Instruction{ix},
		[]solana.PrivateKey{e.sess.Signer()},
		history.Submission{
			Account:   stakeAccount.String(),
			Recipient: voteAccount.String(),
		},
	)
	return OutcomeContinue, err
}

func (e *Executor) deactivateStake(ctx context.Context) (Outcome, error) {
	stakeAccount, err := e.promptPubkey("Stake account", false)
	if err != nil {
		return OutcomeContinue, err
	}

	ix := program.StakeDeactivate(stakeAccount, e.sess.Pubkey())
	_, err = e.submit(ctx, KindDeactivateStake,
		[]solana.Instruction{ix},
		[]solana.PrivateKey{e.sess.Signer()},
		history.Submission{Account: stakeAccount.String()},
	)
	return OutcomeContinue, err
}

func (e *Executor) withdrawStake(ctx context.Context) (Outcome, error) {
	stakeAccount, err := e.promptPubkey("Stake account", false)
	if err != nil {
		return OutcomeContinue, err
	}
	recipient, err := e.promptPubkey("Recipient (empty for your own)", true)
	if err != nil {
		return OutcomeContinue, err
	}

	text, err := e.in.Text("Amount to withdraw (SOL)", "")
	if err != nil {
		return OutcomeContinue, fmt.Errorf("read amount: %w", err)
	}
	amount, err := solanasvc.ParseAmount(text)
	if err != nil {
		return OutcomeContinue, err
	}

	ix := program.StakeWithdraw(stakeAccount, recipient, e.sess.Pubkey(), amount.Lamports())
	_, err = e.submit(ctx, KindWithdrawStake,
		[]solana.Instruction{ix},
		[]solana.PrivateKey{e.sess.Signer()},
		history.Submission{
			Lamports:  amount.Lamports(),
			Account:   stakeAccount.String(),
			Recipient: recipient.String(),
		},
	)
	return OutcomeContinue, err
}
