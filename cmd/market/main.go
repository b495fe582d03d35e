package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/art-trader/internal/logger"
	"github.com/rxtech-lab/art-trader/pkg/marketdata"
	"github.com/rxtech-lab/art-trader/pkg/marketdata/provider"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// progressScale turns fractional provider progress into progress bar steps.
const progressScale = 1000

func downloadAction(ctx context.Context, cmd *cli.Command) error {
	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"), "stderr")
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	params, err := buildDownloadParams(cmd.String("ticker"), cmd.String("start"), cmd.String("end"), cmd.String("timespan"))
	if err != nil {
		return err
	}

	bar := progressbar.NewOptions(progressScale,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Downloading "+params.Ticker),
		progressbar.OptionClearOnFinish(),
	)

	onProgress := func(current float64, total float64, _ string) {
		if total <= 0 {
			return
		}

		_ = bar.Set(min(int(current/total*progressScale), progressScale))
	}

	client, err := marketdata.NewClient(marketdata.ClientConfig{
		ProviderType:  provider.ProviderType(cmd.String("provider")),
		DataPath:      cmd.String("data"),
		PolygonApiKey: os.Getenv("POLYGON_API_KEY"),
	}, onProgress, log)
	if err != nil {
		return err
	}

	path, err := client.Download(ctx, params)
	if err != nil {
		return err
	}

	_ = bar.Finish()

	log.Info("Download completed", zap.String("path", path))
	fmt.Println(path)

	return nil
}

// buildDownloadParams parses the date flags as UTC days. An empty end means today.
func buildDownloadParams(ticker, start, end, timespan string) (marketdata.DownloadParams, error) {
	startDate, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return marketdata.DownloadParams{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}

	endDate := time.Now().UTC().Truncate(24 * time.Hour)
	if end != "" {
		endDate, err = time.Parse(time.DateOnly, end)
		if err != nil {
			return marketdata.DownloadParams{}, fmt.Errorf("invalid end date %q: %w", end, err)
		}
	}

	ts, err := marketdata.ParseTimespan(timespan)
	if err != nil {
		return marketdata.DownloadParams{}, err
	}

	return marketdata.DownloadParams{
		Ticker:    ticker,
		StartDate: startDate,
		EndDate:   endDate,
		Timespan:  ts,
	}, nil
}

func main() {
	// POLYGON_API_KEY may come from .env
	_ = godotenv.Load()

	cmd := &cli.Command{
		Name:  "market",
		Usage: "Download historical market data",
		Commands: []*cli.Command{
			{
				Name:  "download",
				Usage: "Download bars into a parquet file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "ticker",
						Aliases:  []string{"t"},
						Usage:    "Ticker symbol, e.g. C:EURUSD or BTCUSDT",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "start",
						Aliases:  []string{"s"},
						Usage:    "Start date in `YYYY-MM-DD` format",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "end",
						Aliases: []string{"e"},
						Usage:   "End date in `YYYY-MM-DD` format. Defaults to today.",
					},
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage:   fmt.Sprintf("Data provider to use (%s, %s)", provider.ProviderPolygon, provider.ProviderBinance),
						Value:   string(provider.ProviderPolygon),
					},
					&cli.StringFlag{
						Name:  "timespan",
						Usage: "Bar size, e.g. 1m, 15m, 1h, 1d",
						Value: string(marketdata.TimespanOneHour),
					},
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Path to the data output directory",
						Value:   "data",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level (debug, info, warn, error)",
						Value: "warn",
					},
				},
				Action: downloadAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
