package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine"
	enginev1 "github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/logger"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

func runAction(ctx context.Context, cmd *cli.Command) error {
	format := cmd.String("format")
	if format != formatTable && format != formatYAML {
		return fmt.Errorf("unsupported format %q", format)
	}

	log, err := logger.NewLoggerWithLevel(cmd.String("log-level"), "stderr")
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	raw, err := os.ReadFile(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	config, err := enginev1.ParseConfig(string(raw))
	if err != nil {
		return err
	}

	location, err := config.Location()
	if err != nil {
		return err
	}

	ds, err := openDataSource(cmd.String("data"), location, log)
	if err != nil {
		return err
	}
	defer ds.Close()

	backtest := enginev1.NewBacktestEngineV1WithLogger(log)
	if err := backtest.Initialize(string(raw)); err != nil {
		return err
	}

	if err := backtest.SetDataSource(ds); err != nil {
		return err
	}

	rows, err := backtest.Run(ctx, progressCallbacks())
	if err != nil {
		// rows produced before the failure are still worth printing
		if len(rows) > 0 {
			_ = render(os.Stdout, format, rows, types.NewBacktestSummary(rows))
		}

		return err
	}

	return render(os.Stdout, format, rows, types.NewBacktestSummary(rows))
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	schema, err := enginev1.NewBacktestEngineV1().GetConfigSchema()
	if err != nil {
		return err
	}

	fmt.Println(schema)

	return nil
}

// openDataSource opens parquet files with DuckDB and everything else as CSV.
func openDataSource(path string, location *time.Location, log *logger.Logger) (datasource.DataSource, error) {
	var ds datasource.DataSource

	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		duck, err := datasource.NewDataSource(":memory:", log)
		if err != nil {
			return nil, err
		}

		ds = duck
	} else {
		ds = datasource.NewCSVDataSource(location, log)
	}

	if err := ds.Initialize(path); err != nil {
		ds.Close()

		return nil, err
	}

	return datasource.NewCachedDataSource(ds), nil
}

// progressCallbacks advances a progress bar on stderr once per simulated day.
func progressCallbacks() engine.LifecycleCallbacks {
	var bar *progressbar.ProgressBar

	onStart := engine.OnBacktestStartCallback(func(_ string, totalDays int, totalSymbols int) error {
		bar = progressbar.NewOptions(totalDays,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription(fmt.Sprintf("Backtesting %d symbols", totalSymbols)),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		return nil
	})

	onDayEnd := engine.OnDayEndCallback(func(_ types.BacktestResult) error {
		if bar == nil {
			return nil
		}

		return bar.Add(1)
	})

	onEnd := engine.OnBacktestEndCallback(func(_ error) {
		if bar != nil {
			_ = bar.Finish()
		}
	})

	return engine.LifecycleCallbacks{
		OnBacktestStart: &onStart,
		OnDayEnd:        &onDayEnd,
		OnBacktestEnd:   &onEnd,
	}
}
