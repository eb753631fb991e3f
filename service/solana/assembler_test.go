package solana

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTransferInstruction(t *testing.T, signer solana.PrivateKey) solana.Instruction {
	t.Helper()
	recipient, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return system.NewTransferInstruction(
		1_000_000,
		signer.PublicKey(),
		recipient.PublicKey(),
	).Build()
}

func TestBuildSignSubmit_Success(t *testing.T) {
	signer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	wantSig := solana.MustSignatureFromBase58("5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7")
	mock := &mockRPCClient{
		sendSig: wantSig,
		status:  confirmedStatus(),
	}
	client := newTestClient(mock)

	sig, err := client.BuildSignSubmit(
		context.Background(),
		[]solana.Instruction{testTransferInstruction(t, signer)},
		signer.PublicKey(),
		[]solana.PrivateKey{signer},
	)
	require.NoError(t, err)
	assert.Equal(t, wantSig, sig)

	// The submitted transaction carries the fee payer's signature.
	require.NotNil(t, mock.lastTx)
	require.Len(t, mock.lastTx.Signatures, 1)
	assert.NoError(t, mock.lastTx.VerifySignatures())
}

func TestBuildSignSubmit_BlockhashFetchFails(t *testing.T) {
	signer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	mock := &mockRPCClient{blockhashErr: errors.New("connection refused")}
	client := newTestClient(mock)

	_, err = client.BuildSignSubmit(
		context.Background(),
		[]solana.Instruction{testTransferInstruction(t, signer)},
		signer.PublicKey(),
		[]solana.PrivateKey{signer},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	// Nothing was submitted: the failure aborts before the network write.
	assert.Equal(t, 0, mock.sendCalls)
}

func TestBuildSignSubmit_MissingSigner(t *testing.T) {
	signer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	other, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	mock := &mockRPCClient{status: confirmedStatus()}
	client := newTestClient(mock)

	// The fee payer's key is not among the provided signers.
	_, err = client.BuildSignSubmit(
		context.Background(),
		[]solana.Instruction{testTransferInstruction(t, signer)},
		signer.PublicKey(),
		[]solana.PrivateKey{other},
	)
	require.Error(t, err)
	assert.Equal(t, 0, mock.sendCalls)
}

func TestBuildSignSubmit_SendFails(t *testing.T) {
	signer, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	mock := &mockRPCClient{sendErr: errors.New("blockhash not found")}
	client := newTestClient(mock)

	_, err = client.BuildSignSubmit(
		context.Background(),
		[]solana.Instruction{testTransferInstruction(t, signer)},
		signer.PublicKey(),
		[]solana.PrivateKey{signer},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blockhash not found")
	assert.Equal(t, 1, mock.sendCalls)
}
