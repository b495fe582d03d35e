package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	enginev1 "github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

const (
	schemaName       = "backtest-engine-v1-config.json"
	sampleConfigName = "backtest-engine-v1-config.yaml"
)

// sampleConfig is a runnable configuration for one EURUSD month.
func sampleConfig() enginev1.BacktestEngineV1Config {
	config := enginev1.EmptyConfig()
	config.InitialBalance = 10000
	config.StartDate = calendar.NewDate(2024, 1, 2)
	config.EndDate = calendar.NewDate(2024, 2, 1)
	config.Symbols = []types.Symbol{
		{Ticker: "EURUSD", CurrencyProfit: "USD", ContractSize: 100000},
	}
	config.Strategy.Volume = 0.1

	return config
}

// generate writes the config schema to dir and a sample config next to it
// unless one already exists. It returns the paths it wrote.
func generate(dir string) ([]string, error) {
	config := enginev1.EmptyConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	schemaPath := filepath.Join(dir, schemaName)
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return nil, err
	}

	written := []string{schemaPath}

	samplePath := filepath.Join(dir, sampleConfigName)
	if _, err := os.Stat(samplePath); err == nil {
		return written, nil
	}

	yamlBytes, err := yaml.Marshal(sampleConfig())
	if err != nil {
		return nil, err
	}

	yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
	if err := os.WriteFile(samplePath, yamlBytes, 0o644); err != nil {
		return nil, err
	}

	return append(written, samplePath), nil
}

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Write the backtest config schema and a sample config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dir",
				Usage: "Output directory",
				Value: "./config",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			written, err := generate(cmd.String("dir"))
			if err != nil {
				return err
			}

			for _, path := range written {
				log.Printf("Generated %s", path)
			}

			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatalf("Failed to generate config files: %v", err)
	}
}
