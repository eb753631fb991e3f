package main

import (
	"encoding/json"
	"fmt"

	"github.com/brojonat/solterm/service/config"
	"github.com/brojonat/solterm/service/history"
	"github.com/brojonat/solterm/service/metrics"
	"github.com/brojonat/solterm/service/session"
	solanasvc "github.com/brojonat/solterm/service/solana"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/urfave/cli/v2"
)

func balanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "balance",
		Usage:     "Print the SOL balance of an account",
		ArgsUsage: "[ADDRESS]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log.Level)

			var account solana.PublicKey
			if c.NArg() > 0 {
				account, err = solana.PublicKeyFromBase58(c.Args().Get(0))
				if err != nil {
					return fmt.Errorf("invalid address %q: %w", c.Args().Get(0), err)
				}
			} else {
				signer, err := session.LoadSigner(cfg.Keypair.Path)
				if err != nil {
					return err
				}
				account = signer.PublicKey()
			}

			client := solanasvc.NewClient(solanasvc.NewRPCClient(cfg.RPC.URL), cfg.EndpointLabel(), nil, logger)
			lamports, err := client.Balance(c.Context, account)
			if err != nil {
				return err
			}

			if c.Bool("json") {
				data, _ := json.Marshal(map[string]interface{}{
					"address":  account.String(),
					"lamports": lamports,
					"sol":      solanasvc.LamportsToSol(lamports),
				})
				fmt.Println(string(data))
			} else {
				fmt.Printf("%s: %.9f SOL (%d lamports)\n", account, solanasvc.LamportsToSol(lamports), lamports)
			}
			return nil
		},
	}
}

func transferCommand() *cli.Command {
	return &cli.Command{
		Name:      "transfer",
		Usage:     "Transfer SOL to a recipient",
		ArgsUsage: "RECIPIENT AMOUNT_SOL",
		Action: func(c *cli.Context) error {
			if c.NArg() < 2 {
				return fmt.Errorf("recipient and amount are required")
			}

			recipient, err := solana.PublicKeyFromBase58(c.Args().Get(0))
			if err != nil {
				return fmt.Errorf("invalid recipient %q: %w", c.Args().Get(0), err)
			}
			amount, err := solanasvc.ParseAmount(c.Args().Get(1))
			if err != nil {
				return err
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log.Level)
			m := metrics.NewMetrics(nil)

			sess, err := newSession(cfg, m, logger)
			if err != nil {
				return err
			}

			ix := system.NewTransferInstruction(amount.Lamports(), sess.Pubkey(), recipient).Build()
			sig, err := sess.RPC().BuildSignSubmit(
				c.Context,
				[]solana.Instruction{ix},
				sess.Pubkey(),
				[]solana.PrivateKey{sess.Signer()},
			)
			if err != nil {
				return err
			}

			recordSubmission(cfg, logger, history.Submission{
				Signature: sig.String(),
				Kind:      "transfer",
				Lamports:  amount.Lamports(),
				Recipient: recipient.String(),
			})

			printSignature(sig)
			return nil
		},
	}
}

func airdropCommand() *cli.Command {
	return &cli.Command{
		Name:      "airdrop",
		Usage:     "Request an airdrop to the operator account (devnet/testnet only)",
		ArgsUsage: "[AMOUNT_SOL]",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if cfg.RPC.Network == config.NetworkMainnet {
				return fmt.Errorf("airdrops are only available on devnet and testnet")
			}

			text := "1"
			if c.NArg() > 0 {
				text = c.Args().Get(0)
			}
			amount, err := solanasvc.ParseAmount(text)
			if err != nil {
				return err
			}

			logger := newLogger(cfg.Log.Level)
			sess, err := newSession(cfg, metrics.NewMetrics(nil), logger)
			if err != nil {
				return err
			}

			sig, err := sess.RPC().Airdrop(c.Context, sess.Pubkey(), amount.Lamports())
			if err != nil {
				return err
			}

			recordSubmission(cfg, logger, history.Submission{
				Signature: sig.String(),
				Kind:      "airdrop",
				Lamports:  amount.Lamports(),
				Recipient: sess.Pubkey().String(),
			})

			printSignature(sig)
			return nil
		},
	}
}
