package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/brojonat/solterm/service/commands"
	"github.com/brojonat/solterm/service/config"
	"github.com/brojonat/solterm/service/history"
	"github.com/brojonat/solterm/service/metrics"
	"github.com/brojonat/solterm/service/session"
	solanasvc "github.com/brojonat/solterm/service/solana"
	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
)

// loadConfig resolves configuration in precedence order: flags over
// environment over the config file over defaults. An explicitly passed
// --config that does not exist is fatal; a missing file at the default path
// just means defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, config.ErrConfigPathDoesNotExist) {
			cfg = config.DefaultConfig()
		} else {
			return nil, err
		}
	}

	if v := c.String("rpc-url"); v != "" {
		cfg.RPC.URL = v
	}
	if v := c.String("network"); v != "" {
		cfg.RPC.Network = v
	}
	if v := c.String("keypair"); v != "" {
		cfg.Keypair.Path = v
	}
	if v := c.String("history-path"); v != "" {
		cfg.History.Path = v
	}
	if v := c.String("metrics-addr"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := c.String("log-level"); v != "" {
		cfg.Log.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	}))
}

// newSession builds the process-scoped session: RPC client, metrics, and the
// operator's signing identity. Failures here are fatal at startup.
func newSession(cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*session.Session, error) {
	signer, err := session.LoadSigner(cfg.Keypair.Path)
	if err != nil {
		return nil, err
	}

	rpcClient := solanasvc.NewRPCClient(cfg.RPC.URL)
	client := solanasvc.NewClient(rpcClient, cfg.EndpointLabel(), m, logger)
	return session.New(client, signer), nil
}

// runSession is the default action: the interactive menu loop.
func runSession(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log.Level)
	m := metrics.NewMetrics(nil)
	if cfg.Metrics.Addr != "" {
		metrics.Serve(cfg.Metrics.Addr)
		logger.Info("serving metrics", "addr", cfg.Metrics.Addr)
	}

	sess, err := newSession(cfg, m, logger)
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	color.New(color.FgCyan, color.Bold).Printf("⚡ solterm — %s via %s\n", cfg.RPC.Network, cfg.RPC.URL)
	color.New(color.Faint).Printf("operator %s\n\n", sess.Pubkey())

	executor := commands.NewExecutor(sess, store, m, commands.PromptInput{}, os.Stdout, logger, cfg.RPC.Network)
	loop := &commands.Loop{
		Prompter: commands.NewMenuPrompter(),
		Executor: executor,
		Logger:   logger,
		ErrOut:   os.Stderr,
	}
	return loop.Run(c.Context)
}

func printSignature(sig fmt.Stringer) {
	color.New(color.FgGreen).Printf("✓ confirmed %s\n", sig)
}

// recordSubmission appends to the local history store, best effort. The
// transaction already landed; a history failure is only worth a warning.
func recordSubmission(cfg *config.Config, logger *slog.Logger, sub history.Submission) {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("failed to open history", "error", err)
		return
	}
	defer store.Close()

	if err := store.Record(sub); err != nil {
		logger.Warn("failed to record submission", "error", err)
	}
}
