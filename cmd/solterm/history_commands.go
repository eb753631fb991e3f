package main

import (
	"encoding/json"
	"fmt"

	"github.com/brojonat/solterm/service/history"
	solanasvc "github.com/brojonat/solterm/service/solana"
	"github.com/itchyny/gojq"
	"github.com/urfave/cli/v2"
)

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List past transaction submissions from the local history",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   20,
				Usage:   "Maximum number of submissions to show (0 for all)",
			},
			&cli.StringSliceFlag{
				Name:  "jq",
				Usage: "jq filter applied to each submission; only truthy results are shown (repeatable)",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON lines",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			jqFilters := c.StringSlice("jq")
			compiledJQFilters := make([]*gojq.Code, len(jqFilters))
			for i, filter := range jqFilters {
				query, err := gojq.Parse(filter)
				if err != nil {
					return fmt.Errorf("failed to parse jq filter %q: %w", filter, err)
				}
				compiledJQFilters[i], err = gojq.Compile(query)
				if err != nil {
					return fmt.Errorf("failed to compile jq filter %q: %w", filter, err)
				}
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			subs, err := store.List(c.Int("limit"))
			if err != nil {
				return err
			}

			for _, sub := range subs {
				if len(compiledJQFilters) > 0 {
					keep, err := matchesFilters(sub, compiledJQFilters)
					if err != nil {
						return err
					}
					if !keep {
						continue
					}
				}

				if c.Bool("json") {
					data, _ := json.Marshal(sub)
					fmt.Println(string(data))
				} else {
					fmt.Printf("%s  %-16s  %12.9f SOL  %s\n",
						sub.Time.Local().Format("2006-01-02 15:04:05"),
						sub.Kind,
						solanasvc.LamportsToSol(sub.Lamports),
						sub.Signature,
					)
				}
			}
			return nil
		},
	}
}

// matchesFilters reports whether every jq filter evaluates to a truthy value
// for the submission.
func matchesFilters(sub history.Submission, filters []*gojq.Code) (bool, error) {
	// gojq operates on generic JSON values, so round-trip the struct.
	data, err := json.Marshal(sub)
	if err != nil {
		return false, fmt.Errorf("marshal submission: %w", err)
	}
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return false, fmt.Errorf("unmarshal submission: %w", err)
	}

	for _, code := range filters {
		iter := code.Run(value)
		v, ok := iter.Next()
		if !ok {
			return false, nil
		}
		if err, isErr := v.(error); isErr {
			return false, fmt.Errorf("jq filter: %w", err)
		}
		if !isTruthy(v) {
			return false, nil
		}
	}
	return true, nil
}

// isTruthy follows jq semantics: false and null are falsy, everything else
// is truthy.
func isTruthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	default:
		return true
	}
}
