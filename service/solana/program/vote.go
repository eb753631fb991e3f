package program

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
)

// VoteAccountSize is the serialized size of a vote account's state.
const VoteAccountSize = 3762

const voteInitializeAccount uint32 = 0

// VoteInitializeAccount initializes a freshly created vote account. The node
// identity must sign alongside the transaction's fee payer. Commission is the
// percentage of rewards the validator keeps, 0-100.
func VoteInitializeAccount(voteAccount, nodeIdentity, authorizedVoter, authorizedWithdrawer solana.PublicKey, commission uint8) solana.Instruction {
	var buf bytes.Buffer
	writeUint32(&buf, voteInitializeAccount)
	// VoteInit { node_pubkey, authorized_voter, authorized_withdrawer, commission }
	buf.Write(nodeIdentity.Bytes())
	buf.Write(authorizedVoter.Bytes())
	buf.Write(authorizedWithdrawer.Bytes())
	buf.WriteByte(commission)

	return solana.NewInstruction(
		solana.VoteProgramID,
		solana.AccountMetaSlice{
			solana.Meta(voteAccount).WRITE(),
			solana.Meta(solana.SysVarRentPubkey),
			solana.Meta(solana.SysVarClockPubkey),
			solana.Meta(nodeIdentity).SIGNER(),
		},
		buf.Bytes(),
	)
}
