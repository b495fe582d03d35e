package commission_fee

// InteractiveBrokerCommissionFee charges 0.005 per unit of volume with a minimum of 1.
type InteractiveBrokerCommissionFee struct {
}

func NewInteractiveBrokerCommissionFee() CommissionFee {
	return &InteractiveBrokerCommissionFee{}
}

func (c *InteractiveBrokerCommissionFee) Calculate(volume float64) float64 {
	fee := 0.005 * volume
	if fee < 1.0 {
		return 1.0
	}

	return fee
}
