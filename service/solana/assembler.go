package solana

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// BuildSignSubmit turns a list of instructions into a confirmed transaction:
// it fetches a fresh blockhash, builds the unsigned transaction with the
// given fee payer, signs it with every provided signer, submits it, and
// waits for the node to confirm it.
//
// Any step failing aborts the whole call and returns the underlying error;
// there is no partial-success state and no automatic retry. A retry must
// start over from the blockhash fetch, since blockhashes expire.
func (c *Client) BuildSignSubmit(
	ctx context.Context,
	instructions []solana.Instruction,
	payer solana.PublicKey,
	signers []solana.PrivateKey,
) (solana.Signature, error) {
	start := time.Now()
	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	c.record("GetLatestBlockhash", err, time.Since(start))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		instructions,
		recent.Value.Blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("build transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		for i := range signers {
			if signers[i].PublicKey().Equals(key) {
				return &signers[i]
			}
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("sign transaction: %w", err)
	}

	start = time.Now()
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentFinalized,
	})
	c.record("SendTransaction", err, time.Since(start))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}

	c.logger.InfoContext(ctx, "transaction submitted",
		"signature", sig.String(),
		"instructions", len(instructions),
		"payer", payer.String(),
	)

	if err := c.awaitConfirmation(ctx, sig); err != nil {
		return solana.Signature{}, err
	}
	return sig, nil
}
