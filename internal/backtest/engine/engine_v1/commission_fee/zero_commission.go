package commission_fee

// ZeroCommissionFee charges nothing. It is the default fee model.
type ZeroCommissionFee struct{}

func NewZeroCommissionFee() CommissionFee {
	return &ZeroCommissionFee{}
}

func (c *ZeroCommissionFee) Calculate(volume float64) float64 {
	return 0.0
}
