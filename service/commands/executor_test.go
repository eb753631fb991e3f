package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/brojonat/solterm/service/config"
	"github.com/brojonat/solterm/service/session"
	solanasvc "github.com/brojonat/solterm/service/solana"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRPCClient implements solanasvc.RPCClient with canned responses.
type mockRPCClient struct {
	blockhashErr  error
	sendCalls     int
	lastTx        *solana.Transaction
	balance       uint64
	rentExemption uint64
}

var testSig = solana.MustSignatureFromBase58("5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7")

func (m *mockRPCClient) GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error) {
	if m.blockhashErr != nil {
		return nil, m.blockhashErr
	}
	return &rpc.GetLatestBlockhashResult{
		Value: &rpc.LatestBlockhashResult{},
	}, nil
}

func (m *mockRPCClient) SendTransactionWithOpts(ctx context.Context, tx *solana.Transaction, opts rpc.TransactionOpts) (solana.Signature, error) {
	m.sendCalls++
	m.lastTx = tx
	return testSig, nil
}

func (m *mockRPCClient) GetSignatureStatuses(ctx context.Context, searchHistory bool, sigs ...solana.Signature) (*rpc.GetSignatureStatusesResult, error) {
	return &rpc.GetSignatureStatusesResult{
		Value: []*rpc.SignatureStatusesResult{
			{ConfirmationStatus: rpc.ConfirmationStatusFinalized},
		},
	}, nil
}

func (m *mockRPCClient) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	return &rpc.GetBalanceResult{Value: m.balance}, nil
}

func (m *mockRPCClient) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64, commitment rpc.CommitmentType) (solana.Signature, error) {
	return testSig, nil
}

func (m *mockRPCClient) GetMinimumBalanceForRentExemption(ctx context.Context, dataSize uint64, commitment rpc.CommitmentType) (uint64, error) {
	return m.rentExemption, nil
}

// fakeInput replays scripted responses to the executor's prompts.
type fakeInput struct {
	responses []string
	next      int
}

func (f *fakeInput) Text(label, defaultValue string) (string, error) {
	if f.next >= len(f.responses) {
		return "", errors.New("no more scripted input")
	}
	response := f.responses[f.next]
	f.next++
	if response == "" {
		return defaultValue, nil
	}
	return response, nil
}

func newTestExecutor(t *testing.T, mock *mockRPCClient, network string, responses ...string) (*Executor, *bytes.Buffer) {
	t.Helper()

	signer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := solanasvc.NewClient(mock, "test", nil, logger).
		WithConfirmPolicy(time.Millisecond, 5)
	sess := session.New(client, signer)

	var out bytes.Buffer
	in := &fakeInput{responses: responses}
	return NewExecutor(sess, nil, nil, in, &out, logger, network), &out
}

func TestExecute_BackAndExit(t *testing.T) {
	executor, _ := newTestExecutor(t, &mockRPCClient{}, config.NetworkDevnet)

	outcome, err := executor.Execute(context.Background(), Command{Kind: KindBack})
	require.NoError(t, err)
	assert.Equal(t, OutcomeGoBack, outcome)

	outcome, err = executor.Execute(context.Background(), Command{Kind: KindExit})
	require.NoError(t, err)
	assert.Equal(t, OutcomeExit, outcome)
}

func TestExecute_Balance_OwnAccount(t *testing.T) {
	mock := &mockRPCClient{balance: 3_000_000_000}
	// Empty response at the account prompt means "my own account".
	executor, out := newTestExecutor(t, mock, config.NetworkDevnet, " ")

	outcome, err := executor.Execute(context.Background(), Command{Kind: KindBalance})
	require.NoError(t, err)
	assert.Equal(t, OutcomeContinue, outcome)
	assert.Contains(t, out.String(), "3.000000000 SOL")
}

func TestExecute_Transfer(t *testing.T) {
	mock := &mockRPCClient{}
	recipient, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	executor, out := newTestExecutor(t, mock, config.NetworkDevnet,
		recipient.PublicKey().String(),
		"1.5",
	)

	outcome, err := executor.Execute(context.Background(), Command{Kind: KindTransfer})
	require.NoError(t, err)
	assert.Equal(t, OutcomeContinue, outcome)
	assert.Equal(t, 1, mock.sendCalls)
	assert.Contains(t, out.String(), testSig.String())

	require.NotNil(t, mock.lastTx)
	assert.NoError(t, mock.lastTx.VerifySignatures())
}

func TestExecute_Transfer_InvalidRecipient(t *testing.T) {
	mock := &mockRPCClient{}
	executor, _ := newTestExecutor(t, mock, config.NetworkDevnet, "not-a-pubkey")

	_, err := executor.Execute(context.Background(), Command{Kind: KindTransfer})
	require.Error(t, err)
	assert.Equal(t, 0, mock.sendCalls)
}

func TestExecute_Transfer_EmptyAmount(t *testing.T) {
	mock := &mockRPCClient{}
	recipient, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	executor, _ := newTestExecutor(t, mock, config.NetworkDevnet,
		recipient.PublicKey().String(),
		"   ",
	)

	_, err = executor.Execute(context.Background(), Command{Kind: KindTransfer})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
	assert.Equal(t, 0, mock.sendCalls)
}

func TestExecute_Airdrop_MainnetRefused(t *testing.T) {
	mock := &mockRPCClient{}
	executor, _ := newTestExecutor(t, mock, config.NetworkMainnet)

	_, err := executor.Execute(context.Background(), Command{Kind: KindAirdrop})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "devnet")
}

func TestExecute_CreateStake(t *testing.T) {
	mock := &mockRPCClient{rentExemption: 2_282_880}
	executor, out := newTestExecutor(t, mock, config.NetworkDevnet, "2")

	outcome, err := executor.Execute(context.Background(), Command{Kind: KindCreateStake})
	require.NoError(t, err)
	assert.Equal(t, OutcomeContinue, outcome)
	assert.Equal(t, 1, mock.sendCalls)
	assert.Contains(t, out.String(), "stake account")

	// Both the fee payer and the new stake account keypair signed.
	require.NotNil(t, mock.lastTx)
	assert.Len(t, mock.lastTx.Signatures, 2)
	assert.NoError(t, mock.lastTx.VerifySignatures())
}

func TestExecute_CreateVote_BadCommission(t *testing.T) {
	mock := &mockRPCClient{}
	executor, _ := newTestExecutor(t, mock, config.NetworkDevnet, "101")

	_, err := executor.Execute(context.Background(), Command{Kind: KindCreateVote})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commission")
	assert.Equal(t, 0, mock.sendCalls)
}

func TestExecute_DelegateStake(t *testing.T) {
	mock := &mockRPCClient{}
	stakeAccount, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	voteAccount, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	executor, _ := newTestExecutor(t, mock, config.NetworkDevnet,
		stakeAccount.PublicKey().String(),
		voteAccount.PublicKey().String(),
	)

	outcome, err := executor.Execute(context.Background(), Command{Kind: KindDelegateStake})
	require.NoError(t, err)
	assert.Equal(t, OutcomeContinue, outcome)
	assert.Equal(t, 1, mock.sendCalls)
}
