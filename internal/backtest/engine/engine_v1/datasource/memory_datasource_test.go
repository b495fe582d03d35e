package datasource

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MemoryDataSourceTestSuite struct {
	suite.Suite
	dataSource *MemoryDataSource
}

func TestMemoryDataSourceSuite(t *testing.T) {
	suite.Run(t, new(MemoryDataSourceTestSuite))
}

func (suite *MemoryDataSourceTestSuite) SetupTest() {
	bars := fixtureBars()
	// insertion order must not matter
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}

	suite.dataSource = NewMemoryDataSource(bars...)
}

func (suite *MemoryDataSourceTestSuite) TestGetBarsAggregatesIntoHours() {
	bars, err := suite.dataSource.GetBars("EURUSD", Interval1h, fixtureStart, fixtureStart.Add(24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(bars, 24)

	suite.Equal(fixtureStart, bars[0].Time)
	suite.InDelta(1.100, bars[0].Open, 1e-9)
	suite.InDelta(1.103, bars[0].High, 1e-9)
	suite.InDelta(1.098, bars[0].Low, 1e-9)
	suite.InDelta(1.102, bars[0].Close, 1e-9)
	suite.InDelta(20, bars[0].Volume, 1e-9)

	for i := 1; i < len(bars); i++ {
		suite.True(bars[i-1].Time.Before(bars[i].Time))
	}
}

func (suite *MemoryDataSourceTestSuite) TestGetBarsMatchesNativeInterval() {
	bars, err := suite.dataSource.GetBars("EURUSD", Interval30m, fixtureStart, fixtureStart.Add(time.Hour))
	suite.Require().NoError(err)
	suite.Len(bars, 2)
}

func (suite *MemoryDataSourceTestSuite) TestGetBarsEndIsExclusive() {
	bars, err := suite.dataSource.GetBars("USDJPY", Interval1h, fixtureStart.Add(time.Hour), fixtureStart.Add(3*time.Hour))
	suite.Require().NoError(err)
	suite.Len(bars, 2)
}

func (suite *MemoryDataSourceTestSuite) TestGetBarsOutsideData() {
	bars, err := suite.dataSource.GetBars("USDJPY", Interval1h, fixtureStart.Add(-48*time.Hour), fixtureStart)
	suite.NoError(err)
	suite.Empty(bars)

	bars, err = suite.dataSource.GetBars("GBPUSD", Interval1h, fixtureStart, fixtureStart.Add(time.Hour))
	suite.NoError(err)
	suite.Empty(bars)
}

func (suite *MemoryDataSourceTestSuite) TestGetBarsUnsupportedInterval() {
	_, err := suite.dataSource.GetBars("EURUSD", Interval("1y"), fixtureStart, fixtureStart.Add(time.Hour))
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedInterval))
}

func (suite *MemoryDataSourceTestSuite) TestExistsAndSymbols() {
	exists, err := suite.dataSource.Exists("EURUSD")
	suite.NoError(err)
	suite.True(exists)

	exists, err = suite.dataSource.Exists("USDEUR")
	suite.NoError(err)
	suite.False(exists)

	symbols, err := suite.dataSource.GetAllSymbols()
	suite.NoError(err)
	suite.Equal([]string{"EURUSD", "USDJPY"}, symbols)
}

func (suite *MemoryDataSourceTestSuite) TestCount() {
	count, err := suite.dataSource.Count(optional.None[time.Time](), optional.None[time.Time]())
	suite.NoError(err)
	suite.Equal(120, count)

	count, err = suite.dataSource.Count(optional.Some(fixtureStart), optional.Some(fixtureStart.Add(time.Hour)))
	suite.NoError(err)
	suite.Equal(3, count)
}

func (suite *MemoryDataSourceTestSuite) TestInitialize() {
	suite.NoError(suite.dataSource.Initialize(""))
	suite.True(errors.HasCode(suite.dataSource.Initialize("bars.parquet"), errors.ErrCodeInvalidParameter))
}

func (suite *MemoryDataSourceTestSuite) TestClose() {
	suite.NoError(suite.dataSource.Close())

	symbols, err := suite.dataSource.GetAllSymbols()
	suite.NoError(err)
	suite.Empty(symbols)
}

func (suite *MemoryDataSourceTestSuite) TestAddKeepsOrder() {
	ds := NewMemoryDataSource()
	ds.Add(types.MarketData{Symbol: "X", Time: fixtureStart.Add(2 * time.Hour), Open: 3, High: 3, Low: 3, Close: 3})
	ds.Add(types.MarketData{Symbol: "X", Time: fixtureStart, Open: 1, High: 1, Low: 1, Close: 1})

	bars, err := ds.GetBars("X", Interval1h, fixtureStart, fixtureStart.Add(24*time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(bars, 2)
	suite.Equal(1.0, bars[0].Open)
	suite.Equal(3.0, bars[1].Open)
}
