package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/brojonat/solterm/service/config"
	"github.com/brojonat/solterm/service/history"
	"github.com/brojonat/solterm/service/metrics"
	"github.com/brojonat/solterm/service/session"
	"github.com/gagliardetto/solana-go"
)

// Input prompts the operator for a single line of text. Commands use it for
// whatever domain-specific input they need; a fake implementation drives the
// tests.
type Input interface {
	Text(label, defaultValue string) (string, error)
}

// Executor runs commands against the shared session. It borrows the session
// and never mutates it.
type Executor struct {
	sess    *session.Session
	store   *history.Store // may be nil when history is disabled
	metrics *metrics.Metrics
	in      Input
	out     io.Writer
	logger  *slog.Logger
	network string
}

// NewExecutor wires an executor. store and m may be nil.
func NewExecutor(
	sess *session.Session,
	store *history.Store,
	m *metrics.Metrics,
	in Input,
	out io.Writer,
	logger *slog.Logger,
	network string,
) *Executor {
	return &Executor{
		sess:    sess,
		store:   store,
		metrics: m,
		in:      in,
		out:     out,
		logger:  logger,
		network: network,
	}
}

// Execute dispatches on the command kind. Every branch produces exactly one
// Outcome or an error; errors are recoverable at the loop boundary.
func (e *Executor) Execute(ctx context.Context, cmd Command) (Outcome, error) {
	switch cmd.Kind {
	case KindBalance:
		return e.balance(ctx)
	case KindTransfer:
		return e.transfer(ctx)
	case KindAirdrop:
		return e.airdrop(ctx)
	case KindCreateStake:
		return e.createStake(ctx)
	case KindDelegateStake:
		return e.delegateStake(ctx)
	case KindDeactivateStake:
		return e.deactivateStake(ctx)
	case KindWithdrawStake:
		return e.withdrawStake(ctx)
	case KindCreateVote:
		return e.createVote(ctx)
	case KindHistory:
		return e.history(ctx)
	case KindBack:
		return OutcomeGoBack, nil
	case KindExit:
		return OutcomeExit, nil
	default:
		return OutcomeContinue, fmt.Errorf("unknown command kind %d", cmd.Kind)
	}
}

// promptPubkey prompts for a base58 public key. When allowEmpty is true an
// empty response yields the operator's own identity.
func (e *Executor) promptPubkey(label string, allowEmpty bool) (solana.PublicKey, error) {
	text, err := e.in.Text(label, "")
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		if allowEmpty {
			return e.sess.Pubkey(), nil
		}
		return solana.PublicKey{}, fmt.Errorf("%s cannot be empty", strings.ToLower(label))
	}
	key, err := solana.PublicKeyFromBase58(trimmed)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s %q: %w", strings.ToLower(label), trimmed, err)
	}
	return key, nil
}

// submit runs the instructions through the assembler, records metrics and
// history, and reports the confirmed signature to the operator.
func (e *Executor) submit(
	ctx context.Context,
	kind Kind,
	instructions []solana.Instruction,
	signers []solana.PrivateKey,
	rec history.Submission,
) (solana.Signature, error) {
	start := time.Now()
	sig, err := e.sess.RPC().BuildSignSubmit(ctx, instructions, e.sess.Pubkey(), signers)
	if e.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		e.metrics.RecordSubmission(kind.String(), status, time.Since(start))
	}
	if err != nil {
		return solana.Signature{}, err
	}
	if e.metrics != nil {
		e.metrics.RecordLamportsSubmitted(kind.String(), rec.Lamports)
	}

	rec.Signature = sig.String()
	rec.Kind = kind.String()
	if e.store != nil {
		if err := e.store.Record(rec); err != nil {
			// History is best effort; the transaction already landed.
			e.logger.WarnContext(ctx, "failed to record submission",
				"signature", sig.String(),
				"error", err,
			)
		}
	}

	e.printSuccess("confirmed %s", sig)
	return sig, nil
}

func (e *Executor) mainnet() bool {
	return e.network == config.NetworkMainnet
}

func (e *Executor) printSuccess(format string, args ...interface{}) {
	green.Fprintf(e.out, "✓ "+format+"\n", args...)
}
