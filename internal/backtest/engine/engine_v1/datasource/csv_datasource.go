package datasource

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rxtech-lab/art-trader/internal/logger"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
	"go.uber.org/zap"
)

var csvTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

type csvBar struct {
	Time   string  `csv:"time"`
	Symbol string  `csv:"symbol"`
	Open   float64 `csv:"open"`
	High   float64 `csv:"high"`
	Low    float64 `csv:"low"`
	Close  float64 `csv:"close"`
	Volume float64 `csv:"volume"`
}

// CSVDataSource loads bars from CSV files into memory.
//
// Files need a header with time, open, high, low and close columns. A symbol
// and volume column are optional; without a symbol column the file name
// (without extension) is used as the symbol. Times without an offset are
// read in the data source location.
type CSVDataSource struct {
	*MemoryDataSource
	location *time.Location
	logger   *logger.Logger
}

func NewCSVDataSource(location *time.Location, logger *logger.Logger) *CSVDataSource {
	if location == nil {
		location = time.UTC
	}

	return &CSVDataSource{
		MemoryDataSource: NewMemoryDataSource(),
		location:         location,
		logger:           logger,
	}
}

// Initialize implements DataSource. path is a CSV file or a glob pattern.
func (c *CSVDataSource) Initialize(path string) error {
	files, err := filepath.Glob(path)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid csv path %s", path)
	}

	if len(files) == 0 {
		return errors.Newf(errors.ErrCodeDataSourceUnavailable, "no csv files match %s", path)
	}

	for _, file := range files {
		bars, err := c.readFile(file)
		if err != nil {
			return err
		}

		c.Add(bars...)
		c.logger.Debug("Loaded csv file", zap.String("path", file), zap.Int("bars", len(bars)))
	}

	return nil
}

func (c *CSVDataSource) readFile(path string) ([]types.MarketData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to open %s", path)
	}
	defer file.Close()

	var rows []*csvBar
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to parse %s", path)
	}

	defaultSymbol := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	bars := make([]types.MarketData, 0, len(rows))

	for i, row := range rows {
		at, err := c.parseTime(row.Time)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "%s: row %d", path, i+1)
		}

		symbol := row.Symbol
		if symbol == "" {
			symbol = defaultSymbol
		}

		bars = append(bars, types.MarketData{
			Id:     "",
			Symbol: symbol,
			Time:   at,
			Open:   row.Open,
			High:   row.High,
			Low:    row.Low,
			Close:  row.Close,
			Volume: row.Volume,
		})
	}

	return bars, nil
}

func (c *CSVDataSource) parseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	for _, layout := range csvTimeLayouts {
		if at, err := time.ParseInLocation(layout, value, c.location); err == nil {
			return at, nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeInvalidParameter, "unrecognized time %q", value)
}
