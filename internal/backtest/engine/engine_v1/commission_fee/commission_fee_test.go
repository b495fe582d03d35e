package commission_fee

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type CommissionFeeTestSuite struct {
	suite.Suite
}

func TestCommissionFeeSuite(t *testing.T) {
	suite.Run(t, new(CommissionFeeTestSuite))
}

func (suite *CommissionFeeTestSuite) TestZeroCommissionFee() {
	fee := NewZeroCommissionFee()

	tests := []struct {
		name   string
		volume float64
	}{
		{"zero volume", 0},
		{"one lot", 1},
		{"large volume", 10000},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(0.0, fee.Calculate(tc.volume))
		})
	}
}

func (suite *CommissionFeeTestSuite) TestInteractiveBrokerCommissionFee() {
	fee := NewInteractiveBrokerCommissionFee()

	tests := []struct {
		name     string
		volume   float64
		expected float64
	}{
		{"zero volume", 0, 1.0},
		{"small volume - min fee", 10, 1.0},
		{"volume at threshold", 200, 1.0},
		{"large volume", 1000, 5.0},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, fee.Calculate(tc.volume))
		})
	}
}

func (suite *CommissionFeeTestSuite) TestPerLotCommissionFee() {
	fee := NewPerLotCommissionFee(7)

	suite.Equal(0.0, fee.Calculate(0))
	suite.Equal(7.0, fee.Calculate(1))
	suite.InDelta(0.7, fee.Calculate(0.1), 1e-12)
	suite.Equal(17.5, fee.Calculate(2.5))
}

func (suite *CommissionFeeTestSuite) TestGetCommissionFeeHandler() {
	suite.IsType(&ZeroCommissionFee{}, GetCommissionFeeHandler(BrokerZero, 0))
	suite.IsType(&InteractiveBrokerCommissionFee{}, GetCommissionFeeHandler(BrokerInteractiveBroker, 0))
	suite.IsType(&ZeroCommissionFee{}, GetCommissionFeeHandler(Broker("unknown"), 0))

	perLot := GetCommissionFeeHandler(BrokerPerLot, 3)
	suite.IsType(&PerLotCommissionFee{}, perLot)
	suite.Equal(6.0, perLot.Calculate(2))
}
