// Package marketdata downloads price history from a provider into a parquet
// file the DuckDB datasource can read.
package marketdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/art-trader/internal/logger"
	"github.com/rxtech-lab/art-trader/pkg/errors"
	"github.com/rxtech-lab/art-trader/pkg/marketdata/provider"
	"github.com/rxtech-lab/art-trader/pkg/marketdata/writer"
	"go.uber.org/zap"
)

// ClientConfig holds the configuration for the market data client.
type ClientConfig struct {
	ProviderType  provider.ProviderType `validate:"required,oneof=polygon binance"`
	DataPath      string                `validate:"required"`
	PolygonApiKey string                `validate:"required_if=ProviderType polygon"`
}

// DownloadParams holds the parameters for a market data download request.
type DownloadParams struct {
	Ticker    string    `validate:"required"`
	StartDate time.Time `validate:"required"`
	EndDate   time.Time `validate:"required,gtfield=StartDate"`
	Timespan  Timespan  `validate:"required"`
}

// OutputFileName returns TICKER_START_END_MULTIPLIER_TIMESPAN.parquet.
func (p DownloadParams) OutputFileName() string {
	return fmt.Sprintf("%s_%s_%s_%d_%s.parquet",
		p.Ticker,
		p.StartDate.Format(time.DateOnly),
		p.EndDate.Format(time.DateOnly),
		p.Timespan.Multiplier(),
		p.Timespan.Timespan())
}

// Client downloads bars from a provider and stores them as parquet.
type Client struct {
	provider   provider.Provider
	config     ClientConfig
	validate   *validator.Validate
	onProgress provider.OnDownloadProgress
	log        *logger.Logger
}

// NewClient creates a new market data client with the given configuration.
func NewClient(config ClientConfig, onProgress provider.OnDownloadProgress, log *logger.Logger) (*Client, error) {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProvider, "invalid client configuration", err)
	}

	var providerConfig any
	if config.ProviderType == provider.ProviderPolygon {
		providerConfig = config.PolygonApiKey
	}

	marketProvider, err := provider.NewMarketDataProvider(config.ProviderType, providerConfig)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Client{
		provider:   marketProvider,
		config:     config,
		validate:   validate,
		onProgress: onProgress,
		log:        log,
	}, nil
}

// Download fetches the requested bars and returns the path of the parquet file.
// The context can be used to cancel the download.
func (c *Client) Download(ctx context.Context, params DownloadParams) (string, error) {
	if err := c.validate.Struct(params); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "invalid download parameters", err)
	}

	if _, err := ParseTimespan(string(params.Timespan)); err != nil {
		return "", err
	}

	marketWriter, err := c.setupWriter(params)
	if err != nil {
		return "", err
	}

	defer func() {
		if err := marketWriter.Close(); err != nil {
			c.log.Warn("Failed to close writer", zap.Error(err))
		}
	}()

	c.provider.ConfigWriter(marketWriter)

	c.log.Info("Downloading market data",
		zap.String("provider", string(c.config.ProviderType)),
		zap.String("ticker", params.Ticker),
		zap.Time("start", params.StartDate),
		zap.Time("end", params.EndDate),
		zap.String("timespan", string(params.Timespan)),
	)

	path, err := c.provider.Download(
		ctx,
		params.Ticker,
		params.StartDate,
		params.EndDate,
		params.Timespan.Multiplier(),
		params.Timespan.Timespan(),
		c.onProgress,
	)
	if err != nil {
		return "", err
	}

	return path, nil
}

// setupWriter creates the parquet writer under the data path. The provider
// initializes it.
func (c *Client) setupWriter(params DownloadParams) (writer.MarketDataWriter, error) {
	if err := os.MkdirAll(c.config.DataPath, 0o755); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to create data path %s", c.config.DataPath)
	}

	outputPath := filepath.Join(c.config.DataPath, params.OutputFileName())

	return writer.NewDuckDBWriter(outputPath, c.log), nil
}
