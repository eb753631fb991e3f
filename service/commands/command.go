// Package commands implements the interactive units of work the operator can
// run against a session, and the dispatch loop that drives them.
package commands

// Outcome tells the dispatch loop what to do after a command finishes.
// Every command invocation produces exactly one Outcome.
type Outcome int

const (
	// OutcomeContinue keeps the loop at the current menu.
	OutcomeContinue Outcome = iota
	// OutcomeGoBack unwinds one menu level.
	OutcomeGoBack
	// OutcomeExit terminates the interactive session.
	OutcomeExit
)

// Kind enumerates every command the menus can produce. The set is closed so
// the executor's switch covers every outcome path.
type Kind int

const (
	KindBalance Kind = iota
	KindTransfer
	KindAirdrop
	KindCreateStake
	KindDelegateStake
	KindDeactivateStake
	KindWithdrawStake
	KindCreateVote
	KindHistory
	KindBack
	KindExit
)

var kindNames = map[Kind]string{
	KindBalance:         "balance",
	KindTransfer:        "transfer",
	KindAirdrop:         "airdrop",
	KindCreateStake:     "create-stake",
	KindDelegateStake:   "delegate-stake",
	KindDeactivateStake: "deactivate-stake",
	KindWithdrawStake:   "withdraw-stake",
	KindCreateVote:      "create-vote",
	KindHistory:         "history",
	KindBack:            "back",
	KindExit:            "exit",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is one operator-selected unit of interactive work.
type Command struct {
	Kind Kind
}
