package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
)

// Prompter is the menu-owning collaborator. Next blocks until the operator
// selects a runnable command; menu nesting (descending into submenus) is
// handled inside Next, so every returned Command corresponds to one loop
// iteration. Ascend pops one menu level.
type Prompter interface {
	Next() (Command, error)
	Ascend()
}

// CommandExecutor runs one command to completion against the session.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd Command) (Outcome, error)
}

// Loop is the top-level dispatch state machine: prompt, execute, interpret,
// repeat. One command runs to completion before the next prompt appears.
type Loop struct {
	Prompter Prompter
	Executor CommandExecutor
	Logger   *slog.Logger
	ErrOut   io.Writer
}

// Run drives the loop until the operator exits or the prompting collaborator
// fails (e.g. the input stream closes).
//
// Command execution failures do not end the session: validation, network,
// and signing errors are reported to the operator and the loop re-prompts at
// the same menu. Only prompter failures terminate the loop with an error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		cmd, err := l.Prompter.Next()
		if err != nil {
			return fmt.Errorf("prompt for command: %w", err)
		}

		outcome, err := l.Executor.Execute(ctx, cmd)
		if err != nil {
			l.Logger.ErrorContext(ctx, "command failed",
				"command", cmd.Kind.String(),
				"error", err,
			)
			color.New(color.FgRed).Fprintf(l.ErrOut, "✗ %s failed: %v\n", cmd.Kind, err)
			continue
		}

		switch outcome {
		case OutcomeContinue:
		case OutcomeGoBack:
			l.Prompter.Ascend()
		case OutcomeExit:
			return nil
		}
	}
}
