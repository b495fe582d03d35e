package writer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/art-trader/internal/logger"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func (suite *DuckDBWriterTestSuite) bar(symbol string, t time.Time, price float64) types.MarketData {
	return types.MarketData{
		Symbol: symbol,
		Time:   t,
		Open:   price,
		High:   price + 1,
		Low:    price - 1,
		Close:  price + 0.5,
		Volume: 1000,
	}
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "test.parquet")
	writer := NewDuckDBWriter(outputPath, nil)

	duckWriter, ok := writer.(*DuckDBWriter)
	suite.Require().True(ok)
	suite.Equal(outputPath, duckWriter.GetOutputPath())
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "no_init.parquet"), nil)

	err := writer.Write(suite.bar("AAPL", time.Now(), 150))
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWriteFailed))
}

func (suite *DuckDBWriterTestSuite) TestFinalizeWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "no_init.parquet"), nil)

	_, err := writer.Finalize()
	suite.True(errors.HasCode(err, errors.ErrCodeMarketDataWriteFailed))
	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestRejectsInvalidBar() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "invalid.parquet"), nil)
	suite.Require().NoError(writer.Initialize())
	defer writer.Close()

	bar := suite.bar("AAPL", time.Now(), 150)
	bar.High = 140

	err := writer.Write(bar)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))
}

func (suite *DuckDBWriterTestSuite) TestParquetIsReadableByDataSource() {
	outputPath := filepath.Join(suite.tempDir, "EURUSD.parquet")
	writer := NewDuckDBWriter(outputPath, logger.NewNopLogger())
	suite.Require().NoError(writer.Initialize())

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	// written out of order on purpose
	for hour := 23; hour >= 0; hour-- {
		suite.Require().NoError(writer.Write(suite.bar("EURUSD", start.Add(time.Duration(hour)*time.Hour), 100+float64(hour))))
	}

	suite.Require().NoError(writer.Write(suite.bar("USDJPY", start, 140)))

	path, err := writer.Finalize()
	suite.Require().NoError(err)
	suite.Equal(outputPath, path)
	suite.NoError(writer.Close())

	_, err = os.Stat(outputPath)
	suite.Require().NoError(err)

	ds, err := datasource.NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	defer ds.Close()

	suite.Require().NoError(ds.Initialize(outputPath))

	symbols, err := ds.GetAllSymbols()
	suite.NoError(err)
	suite.ElementsMatch([]string{"EURUSD", "USDJPY"}, symbols)

	bars, err := ds.GetBars("EURUSD", datasource.Interval1h, start, start.Add(24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(bars, 24)
	suite.True(bars[0].Time.Equal(start))
	suite.Equal(100.0, bars[0].Open)
	suite.Equal(123.5, bars[23].Close)

	daily, err := ds.GetBars("EURUSD", datasource.Interval1d, start, start.Add(24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(daily, 1)
	suite.Equal(100.0, daily[0].Open)
	suite.Equal(124.0, daily[0].High)
	suite.Equal(99.0, daily[0].Low)
	suite.Equal(123.5, daily[0].Close)
}

func (suite *DuckDBWriterTestSuite) TestCloseWithoutFinalizeRollsBack() {
	outputPath := filepath.Join(suite.tempDir, "rollback.parquet")
	writer := NewDuckDBWriter(outputPath, nil)
	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(suite.bar("AAPL", time.Now(), 150)))

	suite.NoError(writer.Close())

	_, err := os.Stat(outputPath)
	suite.True(os.IsNotExist(err))
}
