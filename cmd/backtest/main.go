package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/art-trader/internal/version"
	"github.com/urfave/cli/v3"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:    "backtest",
		Usage:   "Backtest a daily strategy against hourly price history",
		Version: version.Version,
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a backtest and print the daily balance rows",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the backtest configuration `FILE` (YAML)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Parquet file or CSV file/glob with the price history",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level (debug, info, warn, error)",
						Value: "warn",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   fmt.Sprintf("Output format (%s, %s)", formatTable, formatYAML),
						Value:   formatTable,
					},
				},
				Action: runAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the backtest configuration",
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
