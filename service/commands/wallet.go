package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/brojonat/solterm/service/history"
	solanasvc "github.com/brojonat/solterm/service/solana"
	"github.com/fatih/color"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

var (
	green  = color.New(color.FgGreen)
	cyan   = color.New(color.FgCyan)
	yellow = color.New(color.FgYellow)
)

func (e *Executor) balance(ctx context.Context) (Outcome, error) {
	account, err := e.promptPubkey("Account (empty for your own)", true)
	if err != nil {
		return OutcomeContinue, err
	}

	lamports, err := e.sess.RPC().Balance(ctx, account)
	if err != nil {
		return OutcomeContinue, err
	}

	cyan.Fprintf(e.out, "%s\n", account)
	fmt.Fprintf(e.out, "  %.9f SOL (%d lamports)\n", solanasvc.LamportsToSol(lamports), lamports)
	return OutcomeContinue, nil
}

func (e *Executor) transfer(ctx context.Context) (Outcome, error) {
	recipient, err := e.promptPubkey("Recipient", false)
	if err != nil {
		return OutcomeContinue, err
	}

	text, err := e.in.Text("Amount (SOL)", "")
	if err != nil {
		return OutcomeContinue, fmt.Errorf("read amount: %w", err)
	}
	amount, err := solanasvc.ParseAmount(text)
	if err != nil {
		return OutcomeContinue, err
	}

	ix := system.NewTransferInstruction(
		amount.Lamports(),
		e.sess.Pubkey(),
		recipient,
	).Build()

	_, err = e.submit(ctx, KindTransfer,
		[]solana.Instruction{ix},
		[]solana.PrivateKey{e.sess.Signer()},
		history.Submission{
			Lamports:  amount.Lamports(),
			Recipient: recipient.String(),
		},
	)
	return OutcomeContinue, err
}

func (e *Executor) airdrop(ctx context.Context) (Outcome, error) {
	if e.mainnet() {
		return OutcomeContinue, fmt.Errorf("airdrops are only available on devnet and testnet")
	}

	text, err := e.in.Text("Amount (SOL)", "1")
	if err != nil {
		return OutcomeContinue, fmt.Errorf("read amount: %w", err)
	}
	amount, err := solanasvc.ParseAmount(text)
	if err != nil {
		return OutcomeContinue, err
	}

	sig, err := e.sess.RPC().Airdrop(ctx, e.sess.Pubkey(), amount.Lamports())
	if err != nil {
		return OutcomeContinue, err
	}

	if e.store != nil {
		if err := e.store.Record(history.Submission{
			Signature: sig.String(),
			Kind:      KindAirdrop.String(),
			Lamports:  amount.Lamports(),
			Recipient: e.sess.Pubkey().String(),
		}); err != nil {
			e.logger.WarnContext(ctx, "failed to record airdrop", "error", err)
		}
	}

	e.printSuccess("airdrop confirmed %s", sig)
	return OutcomeContinue, nil
}

func (e *Executor) history(ctx context.Context) (Outcome, error) {
	if e.store == nil {
		yellow.Fprintln(e.out, "history is disabled")
		return OutcomeContinue, nil
	}

	subs, err := e.store.List(10)
	if err != nil {
		return OutcomeContinue, err
	}
	if len(subs) == 0 {
		fmt.Fprintln(e.out, "no submissions yet")
		return OutcomeContinue, nil
	}

	for _, sub := range subs {
		fmt.Fprintf(e.out, "%s  %-16s  %12.9f SOL  %s\n",
			sub.Time.Local().Format(time.DateTime),
			sub.Kind,
			solanasvc.LamportsToSol(sub.Lamports),
			sub.Signature,
		)
	}
	return OutcomeContinue, nil
}
