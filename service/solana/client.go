package solana

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brojonat/solterm/service/metrics"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPCClient is an interface for the Solana RPC operations we need.
// This allows us to mock the RPC layer in tests without hitting real Solana nodes.
type RPCClient interface {
	GetLatestBlockhash(
		ctx context.Context,
		commitment rpc.CommitmentType,
	) (*rpc.GetLatestBlockhashResult, error)

	SendTransactionWithOpts(
		ctx context.Context,
		tx *solana.Transaction,
		opts rpc.TransactionOpts,
	) (solana.Signature, error)

	GetSignatureStatuses(
		ctx context.Context,
		searchTransactionHistory bool,
		sigs ...solana.Signature,
	) (*rpc.GetSignatureStatusesResult, error)

	GetBalance(
		ctx context.Context,
		account solana.PublicKey,
		commitment rpc.CommitmentType,
	) (*rpc.GetBalanceResult, error)

	RequestAirdrop(
		ctx context.Context,
		account solana.PublicKey,
		lamports uint64,
		commitment rpc.CommitmentType,
	) (solana.Signature, error)

	GetMinimumBalanceForRentExemption(
		ctx context.Context,
		dataSize uint64,
		commitment rpc.CommitmentType,
	) (uint64, error)
}

const (
	// defaultConfirmInterval is how often we ask the node for a signature
	// status while waiting for a submitted transaction to land.
	defaultConfirmInterval = 2 * time.Second

	// defaultConfirmLimit bounds the wait to roughly a blockhash lifetime;
	// past that the transaction can no longer be accepted anyway.
	defaultConfirmLimit = 45
)

// Client provides the node-facing operations for the interactive session.
// It wraps the RPC client with domain-specific operations.
type Client struct {
	rpc      RPCClient
	logger   *slog.Logger
	metrics  *metrics.Metrics
	endpoint string // RPC endpoint identifier for metrics (e.g., "mainnet", "devnet", rpc host)

	confirmInterval time.Duration
	confirmLimit    int
}

// NewClient creates a new Solana client.
// The endpoint parameter is used for metrics labeling (e.g., "mainnet", "devnet", or RPC hostname).
// If metrics is nil, no metrics will be recorded.
func NewClient(rpcClient RPCClient, endpoint string, m *metrics.Metrics, logger *slog.Logger) *Client {
	return &Client{
		rpc:             rpcClient,
		logger:          logger,
		metrics:         m,
		endpoint:        endpoint,
		confirmInterval: defaultConfirmInterval,
		confirmLimit:    defaultConfirmLimit,
	}
}

// WithConfirmPolicy overrides the confirmation polling cadence. Call it right
// after construction, before the client is shared.
func (c *Client) WithConfirmPolicy(interval time.Duration, limit int) *Client {
	c.confirmInterval = interval
	c.confirmLimit = limit
	return c
}

// Balance returns the lamport balance of the given account at finalized
// commitment.
func (c *Client) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	start := time.Now()
	out, err := c.rpc.GetBalance(ctx, account, rpc.CommitmentFinalized)
	c.record("GetBalance", err, time.Since(start))
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to get balance",
			"account", account.String(),
			"error", err,
		)
		return 0, fmt.Errorf("get balance for %s: %w", account, err)
	}
	return out.Value, nil
}

// Airdrop requests lamports from the faucet and waits for the grant to be
// confirmed. Only devnet/testnet nodes honor this.
func (c *Client) Airdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error) {
	start := time.Now()
	sig, err := c.rpc.RequestAirdrop(ctx, account, lamports, rpc.CommitmentFinalized)
	c.record("RequestAirdrop", err, time.Since(start))
	if err != nil {
		return solana.Signature{}, fmt.Errorf("request airdrop: %w", err)
	}

	c.logger.InfoContext(ctx, "airdrop requested",
		"account", account.String(),
		"lamports", lamports,
		"signature", sig.String(),
	)

	if err := c.awaitConfirmation(ctx, sig); err != nil {
		return solana.Signature{}, err
	}
	return sig, nil
}

// MinimumRentExemption returns the lamports a new account of the given size
// must hold to be rent exempt.
func (c *Client) MinimumRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	start := time.Now()
	lamports, err := c.rpc.GetMinimumBalanceForRentExemption(ctx, dataSize, rpc.CommitmentFinalized)
	c.record("GetMinimumBalanceForRentExemption", err, time.Since(start))
	if err != nil {
		return 0, fmt.Errorf("get rent exemption for %d bytes: %w", dataSize, err)
	}
	return lamports, nil
}

// awaitConfirmation polls signature statuses until the signature reaches
// confirmed or finalized commitment, the node reports an execution error, or
// the poll budget is exhausted. There is no internal retry of the submission;
// callers rebuild the transaction with a fresh blockhash instead.
func (c *Client) awaitConfirmation(ctx context.Context, sig solana.Signature) error {
	for attempt := 0; attempt < c.confirmLimit; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.confirmInterval):
		}

		if c.metrics != nil {
			c.metrics.RecordConfirmationPoll(c.endpoint)
		}

		start := time.Now()
		out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
		c.record("GetSignatureStatuses", err, time.Since(start))
		if err != nil {
			return fmt.Errorf("get signature status: %w", err)
		}
		if len(out.Value) == 0 || out.Value[0] == nil {
			// Not yet visible to the node; keep polling.
			continue
		}

		status := out.Value[0]
		if status.Err != nil {
			return fmt.Errorf("transaction %s failed on chain: %v", sig, status.Err)
		}
		switch status.ConfirmationStatus {
		case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
			c.logger.DebugContext(ctx, "transaction confirmed",
				"signature", sig.String(),
				"status", string(status.ConfirmationStatus),
				"slot", status.Slot,
			)
			return nil
		}
	}

	return fmt.Errorf("transaction %s not confirmed after %d polls", sig, c.confirmLimit)
}

// record emits the RPC call metric shared by every node round trip.
func (c *Client) record(method string, err error, duration time.Duration) {
	if c.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	c.metrics.RecordRPCCall(method, status, c.endpoint, duration.Seconds())
}
