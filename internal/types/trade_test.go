package types

import (
	"testing"

	"github.com/rxtech-lab/art-trader/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type TradeTestSuite struct {
	suite.Suite
}

func TestTradeSuite(t *testing.T) {
	suite.Run(t, new(TradeTestSuite))
}

func (suite *TradeTestSuite) TestValidate() {
	long := Trade{Ticker: "EURUSD", Direction: DirectionLong, EntryPrice: 100, TakeProfit: 120, StopLoss: 80, Volume: 1}
	short := Trade{Ticker: "EURUSD", Direction: DirectionShort, EntryPrice: 100, TakeProfit: 80, StopLoss: 120, Volume: 1}

	withTP := func(t Trade, tp float64) Trade { t.TakeProfit = tp; return t }
	withSL := func(t Trade, sl float64) Trade { t.StopLoss = sl; return t }

	tests := []struct {
		name     string
		trade    Trade
		wantCode errors.ErrorCode
	}{
		{"valid long", long, 0},
		{"valid short", short, 0},
		{"long with take profit below entry", withTP(long, 90), errors.ErrCodeInvalidTakeProfit},
		{"long with take profit at entry", withTP(long, 100), errors.ErrCodeInvalidTakeProfit},
		{"long with stop loss above entry", withSL(long, 110), errors.ErrCodeInvalidStopLoss},
		{"short with take profit above entry", withTP(short, 110), errors.ErrCodeInvalidTakeProfit},
		{"short with stop loss below entry", withSL(short, 90), errors.ErrCodeInvalidStopLoss},
		{"missing ticker", Trade{Direction: DirectionLong, EntryPrice: 100, TakeProfit: 120, StopLoss: 80, Volume: 1}, errors.ErrCodeInvalidTrade},
		{"unknown direction", Trade{Ticker: "EURUSD", Direction: "SIDEWAYS", EntryPrice: 100, TakeProfit: 120, StopLoss: 80, Volume: 1}, errors.ErrCodeInvalidTrade},
		{"zero volume", Trade{Ticker: "EURUSD", Direction: DirectionLong, EntryPrice: 100, TakeProfit: 120, StopLoss: 80}, errors.ErrCodeInvalidTrade},
		{"negative entry", Trade{Ticker: "EURUSD", Direction: DirectionLong, EntryPrice: -1, TakeProfit: 120, StopLoss: 80, Volume: 1}, errors.ErrCodeInvalidTrade},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			err := tc.trade.Validate()
			if tc.wantCode == 0 {
				suite.NoError(err)
				return
			}

			suite.Error(err)
			suite.Equal(tc.wantCode, errors.GetCode(err))
		})
	}
}

func (suite *TradeTestSuite) TestDirectionMultiplier() {
	suite.Equal(1.0, DirectionLong.Multiplier())
	suite.Equal(-1.0, DirectionShort.Multiplier())
}

func (suite *TradeTestSuite) TestNewSymbol() {
	symbol, err := NewSymbol("EURUSD", "USD", 100000)
	suite.NoError(err)
	suite.Equal("EURUSD", symbol.Ticker)

	_, err = NewSymbol("", "USD", 100000)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSymbol))

	_, err = NewSymbol("EURUSD", "DOLLARS", 100000)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSymbol))

	_, err = NewSymbol("EURUSD", "USD", 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidSymbol))
}
