package commission_fee

import "math"

// PerLotCommissionFee charges a fixed amount per lot traded, as forex brokers do.
type PerLotCommissionFee struct {
	FeePerLot float64
}

func NewPerLotCommissionFee(feePerLot float64) CommissionFee {
	return &PerLotCommissionFee{FeePerLot: feePerLot}
}

func (c *PerLotCommissionFee) Calculate(volume float64) float64 {
	return c.FeePerLot * math.Abs(volume)
}
