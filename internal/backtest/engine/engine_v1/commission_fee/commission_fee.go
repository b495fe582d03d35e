// Package commission_fee holds the transaction fee models a simulated trade is charged with.
package commission_fee

// CommissionFee returns the fee, in settlement currency, charged for one
// round-trip trade of the given volume.
type CommissionFee interface {
	Calculate(volume float64) float64
}

type Broker string

const (
	BrokerInteractiveBroker Broker = "interactive_broker"
	BrokerZero              Broker = "zero_commission"
	BrokerPerLot            Broker = "per_lot"
)

var AllBrokers = []any{
	BrokerInteractiveBroker,
	BrokerZero,
	BrokerPerLot,
}

// GetCommissionFeeHandler returns the fee model of broker. feePerLot is only
// used by BrokerPerLot. Unknown brokers are charged nothing.
func GetCommissionFeeHandler(broker Broker, feePerLot float64) CommissionFee {
	switch broker {
	case BrokerInteractiveBroker:
		return NewInteractiveBrokerCommissionFee()
	case BrokerPerLot:
		return NewPerLotCommissionFee(feePerLot)
	case BrokerZero:
		return NewZeroCommissionFee()
	default:
		return NewZeroCommissionFee()
	}
}
