package types

import (
	"math"
	"time"

	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// MarketData is one OHLC bar of a price series.
type MarketData struct {
	Id     string    `csv:"id" json:"id"`
	Symbol string    `csv:"symbol" json:"symbol"`
	Time   time.Time `csv:"time" json:"time"`
	Open   float64   `csv:"open" json:"open"`
	High   float64   `csv:"high" json:"high"`
	Low    float64   `csv:"low" json:"low"`
	Close  float64   `csv:"close" json:"close"`
	Volume float64   `csv:"volume" json:"volume"`
}

// Validate checks that all prices are finite and low <= open, close <= high.
func (m MarketData) Validate() error {
	for _, price := range []float64{m.Open, m.High, m.Low, m.Close} {
		if math.IsNaN(price) || math.IsInf(price, 0) {
			return errors.Newf(errors.ErrCodeInvalidBar, "bar %s at %s has non-finite price %v",
				m.Symbol, m.Time.Format(time.RFC3339), price)
		}
	}

	if m.Low > m.High {
		return errors.Newf(errors.ErrCodeInvalidBar, "bar %s at %s has low %v above high %v",
			m.Symbol, m.Time.Format(time.RFC3339), m.Low, m.High)
	}

	for _, price := range []float64{m.Open, m.Close} {
		if price < m.Low || price > m.High {
			return errors.Newf(errors.ErrCodeInvalidBar, "bar %s at %s has price %v outside [%v, %v]",
				m.Symbol, m.Time.Format(time.RFC3339), price, m.Low, m.High)
		}
	}

	return nil
}

// Brackets reports whether price lies strictly between the bar's low and high.
func (m MarketData) Brackets(price float64) bool {
	return m.Low < price && price < m.High
}
