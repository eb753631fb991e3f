package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	// Version information (set via ldflags during build)
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	app := &cli.App{
		Name:  "solterm",
		Usage: "Interactive Solana account operations terminal",
		Description: `An interactive terminal for driving Solana account operations: balance
checks, SOL transfers, airdrops, stake account lifecycle, and vote account
creation. Run with no arguments for the menu-driven session, or use the
subcommands for scripting.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		// Default action: the interactive session.
		Action: runSession,
		Commands: []*cli.Command{
			balanceCommand(),
			transferCommand(),
			airdropCommand(),
			historyCommand(),
		},
		// Global flags available to all commands
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				EnvVars: []string{"SOLTERM_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "rpc-url",
				Usage:   "Solana RPC endpoint URL",
				EnvVars: []string{"SOLTERM_RPC_URL"},
			},
			&cli.StringFlag{
				Name:    "network",
				Usage:   "Cluster name (mainnet-beta, devnet, testnet)",
				EnvVars: []string{"SOLTERM_NETWORK"},
			},
			&cli.StringFlag{
				Name:    "keypair",
				Aliases: []string{"k"},
				Usage:   "Path to the operator keypair file",
				EnvVars: []string{"SOLTERM_KEYPAIR_PATH"},
			},
			&cli.StringFlag{
				Name:    "history-path",
				Usage:   "Path to the local submission history database",
				EnvVars: []string{"SOLTERM_HISTORY_PATH"},
			},
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "Expose Prometheus metrics on this address for the session",
				EnvVars: []string{"SOLTERM_METRICS_ADDR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"SOLTERM_LOG_LEVEL"},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
