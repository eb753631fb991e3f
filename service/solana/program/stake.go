// Package program assembles instructions for the native stake and vote
// programs. The layouts are the programs' bincode wire format: a little-endian
// uint32 variant tag followed by the variant's fields.
package program

import (
	"bytes"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// StakeAccountSize is the serialized size of a stake account's state.
const StakeAccountSize = 200

// StakeConfigID is the stake config sysvar-like account consumed by
// DelegateStake.
var StakeConfigID = solana.MustPublicKeyFromBase58("StakeConfig11111111111111111111111111111111")

// Stake program instruction tags.
const (
	stakeInitialize uint32 = 0
	stakeDelegate   uint32 = 2
	stakeWithdraw   uint32 = 4
	stakeDeactivate uint32 = 5
)

// StakeInitialize initializes a freshly created stake account with the given
// stake and withdraw authorities and no lockup. The account must already be
// funded and owned by the stake program (system CreateAccount does both).
func StakeInitialize(stakeAccount, staker, withdrawer solana.PublicKey) solana.Instruction {
	var buf bytes.Buffer
	writeUint32(&buf, stakeInitialize)
	// Authorized { staker, withdrawer }
	buf.Write(staker.Bytes())
	buf.Write(withdrawer.Bytes())
	// Lockup { unix_timestamp: 0, epoch: 0, custodian: none }
	writeUint64(&buf, 0)
	writeUint64(&buf, 0)
	buf.Write(solana.PublicKey{}.Bytes())

	return solana.NewInstruction(
		solana.StakeProgramID,
		solana.AccountMetaSlice{
			solana.Meta(stakeAccount).WRITE(),
			solana.Meta(solana.SysVarRentPubkey),
		},
		buf.Bytes(),
	)
}

// StakeDelegate delegates an initialized stake account to a validator's vote
// account. The stake authority must sign.
func StakeDelegate(stakeAccount, voteAccount, stakeAuthority solana.PublicKey) solana.Instruction {
	var buf bytes.Buffer
	writeUint32(&buf, stakeDelegate)

	return solana.NewInstruction(
		solana.StakeProgramID,
		solana.AccountMetaSlice{
			solana.Meta(stakeAccount).WRITE(),
			solana.Meta(voteAccount),
			solana.Meta(solana.SysVarClockPubkey),
			solana.Meta(solana.SysVarStakeHistoryPubkey),
			solana.Meta(StakeConfigID),
			solana.Meta(stakeAuthority).SIGNER(),
		},
		buf.Bytes(),
	)
}

// StakeDeactivate begins undelegating a stake account. The stake cools down
// over the following epochs before it can be withdrawn.
func StakeDeactivate(stakeAccount, stakeAuthority solana.PublicKey) solana.Instruction {
	var buf bytes.Buffer
	writeUint32(&buf, stakeDeactivate)

	return solana.NewInstruction(
		solana.StakeProgramID,
		solana.AccountMetaSlice{
			solana.Meta(stakeAccount).WRITE(),
			solana.Meta(solana.SysVarClockPubkey),
			solana.Meta(stakeAuthority).SIGNER(),
		},
		buf.Bytes(),
	)
}

// StakeWithdraw moves lamports out of a deactivated stake account to the
// recipient. The withdraw authority must sign.
func StakeWithdraw(stakeAccount, recipient, withdrawAuthority solana.PublicKey, lamports uint64) solana.Instruction {
	var buf bytes.Buffer
	writeUint32(&buf, stakeWithdraw)
	writeUint64(&buf, lamports)

	return solana.NewInstruction(
		solana.StakeProgramID,
		solana.AccountMetaSlice{
			solana.Meta(stakeAccount).WRITE(),
			solana.Meta(recipient).WRITE(),
			solana.Meta(solana.SysVarClockPubkey),
			solana.Meta(solana.SysVarStakeHistoryPubkey),
			solana.Meta(withdrawAuthority).SIGNER(),
		},
		buf.Bytes(),
	)
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}
