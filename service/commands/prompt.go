package commands

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

type menuEntry struct {
	label   string
	kind    Kind
	submenu *menu
}

type menu struct {
	title   string
	entries []menuEntry
}

var validatorMenu = &menu{
	title: "Validator",
	entries: []menuEntry{
		{label: "Create vote account", kind: KindCreateVote},
		{label: "Back", kind: KindBack},
	},
}

var stakingMenu = &menu{
	title: "Staking",
	entries: []menuEntry{
		{label: "Create stake account", kind: KindCreateStake},
		{label: "Delegate stake", kind: KindDelegateStake},
		{label: "Deactivate stake", kind: KindDeactivateStake},
		{label: "Withdraw stake", kind: KindWithdrawStake},
		{label: "Back", kind: KindBack},
	},
}

var walletMenu = &menu{
	title: "Wallet",
	entries: []menuEntry{
		{label: "Check balance", kind: KindBalance},
		{label: "Transfer SOL", kind: KindTransfer},
		{label: "Request airdrop", kind: KindAirdrop},
		{label: "Back", kind: KindBack},
	},
}

var mainMenu = &menu{
	title: "solterm",
	entries: []menuEntry{
		{label: "Wallet", submenu: walletMenu},
		{label: "Staking", submenu: stakingMenu},
		{label: "Validator", submenu: validatorMenu},
		{label: "History", kind: KindHistory},
		{label: "Exit", kind: KindExit},
	},
}

// MenuPrompter walks the menu tree with promptui selections. It owns the menu
// stack: submenu selections descend without consuming a loop iteration, and
// Ascend pops one level (driven by the loop on a GoBack outcome).
type MenuPrompter struct {
	stack []*menu
}

// NewMenuPrompter starts at the main menu.
func NewMenuPrompter() *MenuPrompter {
	return &MenuPrompter{stack: []*menu{mainMenu}}
}

// Next prompts until the operator picks a runnable command. Ctrl-C at the top
// menu is treated as choosing Exit; Ctrl-C inside a submenu pops back up.
func (p *MenuPrompter) Next() (Command, error) {
	for {
		current := p.stack[len(p.stack)-1]

		labels := make([]string, len(current.entries))
		for i, entry := range current.entries {
			labels[i] = entry.label
		}

		sel := promptui.Select{
			Label:        current.title,
			Items:        labels,
			Size:         len(labels),
			HideSelected: true,
		}
		idx, _, err := sel.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) {
				if len(p.stack) == 1 {
					return Command{Kind: KindExit}, nil
				}
				p.Ascend()
				continue
			}
			return Command{}, fmt.Errorf("menu selection: %w", err)
		}

		entry := current.entries[idx]
		if entry.submenu != nil {
			p.stack = append(p.stack, entry.submenu)
			continue
		}
		return Command{Kind: entry.kind}, nil
	}
}

// Ascend pops one menu level; at the top it is a no-op.
func (p *MenuPrompter) Ascend() {
	if len(p.stack) > 1 {
		p.stack = p.stack[:len(p.stack)-1]
	}
}

// PromptInput reads command input with promptui.
type PromptInput struct{}

func (PromptInput) Text(label, defaultValue string) (string, error) {
	prompt := promptui.Prompt{
		Label:   label,
		Default: defaultValue,
	}
	return prompt.Run()
}
