// Package writer persists downloaded price bars in a format the backtest data sources can read.
package writer

import (
	"github.com/rxtech-lab/art-trader/internal/types"
)

// MarketDataWriter defines the interface for writing market data to a destination.
type MarketDataWriter interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single bar. Bars violating low <= open, close <= high are rejected.
	Write(data types.MarketData) error
	// Finalize completes the writing process and returns the path of the written file.
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
