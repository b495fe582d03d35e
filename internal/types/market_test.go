package types

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/art-trader/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func (suite *MarketTestSuite) TestValidate() {
	at := time.Date(2023, 6, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		bar     MarketData
		wantErr bool
	}{
		{"valid bar", MarketData{Symbol: "EURUSD", Time: at, Open: 1.1, High: 1.2, Low: 1.0, Close: 1.15}, false},
		{"flat bar", MarketData{Symbol: "EURUSD", Time: at, Open: 1.1, High: 1.1, Low: 1.1, Close: 1.1}, false},
		{"low above high", MarketData{Symbol: "EURUSD", Time: at, Open: 1.1, High: 1.0, Low: 1.2, Close: 1.1}, true},
		{"open below low", MarketData{Symbol: "EURUSD", Time: at, Open: 0.9, High: 1.2, Low: 1.0, Close: 1.1}, true},
		{"close above high", MarketData{Symbol: "EURUSD", Time: at, Open: 1.1, High: 1.2, Low: 1.0, Close: 1.3}, true},
		{"nan close", MarketData{Symbol: "EURUSD", Time: at, Open: 1.1, High: 1.2, Low: 1.0, Close: math.NaN()}, true},
		{"nan open", MarketData{Symbol: "EURUSD", Time: at, Open: math.NaN(), High: 1.2, Low: 1.0, Close: 1.1}, true},
		{"infinite high", MarketData{Symbol: "EURUSD", Time: at, Open: 1.1, High: math.Inf(1), Low: 1.0, Close: 1.1}, true},
		{"infinite low", MarketData{Symbol: "EURUSD", Time: at, Open: 1.1, High: 1.2, Low: math.Inf(-1), Close: 1.1}, true},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := tc.bar.Validate()
			if tc.wantErr {
				suite.Error(err)
				suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))
			} else {
				suite.NoError(err)
			}
		})
	}
}

func (suite *MarketTestSuite) TestBracketsIsStrict() {
	bar := MarketData{Open: 100, High: 110, Low: 90, Close: 105}

	suite.True(bar.Brackets(100))
	suite.False(bar.Brackets(90))
	suite.False(bar.Brackets(110))
	suite.False(bar.Brackets(120))
}
