package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedPrompter returns a fixed command sequence and counts prompts.
type scriptedPrompter struct {
	commands []Command
	prompts  int
	ascends  int
	err      error
}

func (p *scriptedPrompter) Next() (Command, error) {
	if p.err != nil {
		return Command{}, p.err
	}
	if p.prompts >= len(p.commands) {
		// Running past the script means the loop failed to terminate.
		return Command{}, errors.New("script exhausted")
	}
	cmd := p.commands[p.prompts]
	p.prompts++
	return cmd, nil
}

func (p *scriptedPrompter) Ascend() { p.ascends++ }

// outcomeExecutor maps each command kind to a fixed outcome or error.
type outcomeExecutor struct {
	outcomes map[Kind]Outcome
	errs     map[Kind]error
	executed []Kind
}

func (e *outcomeExecutor) Execute(ctx context.Context, cmd Command) (Outcome, error) {
	e.executed = append(e.executed, cmd.Kind)
	if err, ok := e.errs[cmd.Kind]; ok {
		return OutcomeContinue, err
	}
	return e.outcomes[cmd.Kind], nil
}

func newTestLoop(p Prompter, e CommandExecutor) *Loop {
	return &Loop{
		Prompter: p,
		Executor: e,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		ErrOut:   io.Discard,
	}
}

func TestLoop_OutcomeSequence(t *testing.T) {
	// Continue, Continue, GoBack, Exit: exactly four prompts, one ascend.
	prompter := &scriptedPrompter{
		commands: []Command{
			{Kind: KindBalance},
			{Kind: KindBalance},
			{Kind: KindBack},
			{Kind: KindExit},
		},
	}
	executor := &outcomeExecutor{
		outcomes: map[Kind]Outcome{
			KindBalance: OutcomeContinue,
			KindBack:    OutcomeGoBack,
			KindExit:    OutcomeExit,
		},
	}

	err := newTestLoop(prompter, executor).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, prompter.prompts)
	assert.Equal(t, 1, prompter.ascends)
	assert.Len(t, executor.executed, 4)
}

func TestLoop_NeverExitsWithoutExit(t *testing.T) {
	// Without an Exit the loop only stops when the prompter fails; the
	// scripted prompter fails once its script runs out, proving the loop
	// made it through every non-Exit outcome.
	prompter := &scriptedPrompter{
		commands: []Command{
			{Kind: KindBalance},
			{Kind: KindBack},
			{Kind: KindBalance},
		},
	}
	executor := &outcomeExecutor{
		outcomes: map[Kind]Outcome{
			KindBalance: OutcomeContinue,
			KindBack:    OutcomeGoBack,
		},
	}

	err := newTestLoop(prompter, executor).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, 3, prompter.prompts)
}

func TestLoop_CommandErrorContinues(t *testing.T) {
	// A failed command is reported and the loop re-prompts rather than
	// ending the session.
	prompter := &scriptedPrompter{
		commands: []Command{
			{Kind: KindTransfer},
			{Kind: KindExit},
		},
	}
	executor := &outcomeExecutor{
		outcomes: map[Kind]Outcome{KindExit: OutcomeExit},
		errs:     map[Kind]error{KindTransfer: errors.New("node unavailable")},
	}

	err := newTestLoop(prompter, executor).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, prompter.prompts)
}

func TestLoop_PrompterErrorIsFatal(t *testing.T) {
	prompter := &scriptedPrompter{err: errors.New("input stream closed")}
	executor := &outcomeExecutor{}

	err := newTestLoop(prompter, executor).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input stream closed")
	assert.Empty(t, executor.executed)
}
