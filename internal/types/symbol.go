package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// Symbol identifies a tradable instrument.
type Symbol struct {
	// Ticker is the unique identifier used to query the price series, e.g. EURUSD.
	Ticker string `yaml:"ticker" json:"ticker" validate:"required"`
	// CurrencyProfit is the currency P&L on this instrument is denominated in.
	CurrencyProfit string `yaml:"currency_profit" json:"currency_profit" validate:"required,len=3,alpha"`
	// ContractSize converts one unit of price movement into CurrencyProfit.
	ContractSize float64 `yaml:"contract_size" json:"contract_size" validate:"gt=0"`
}

func NewSymbol(ticker, currencyProfit string, contractSize float64) (Symbol, error) {
	symbol := Symbol{Ticker: ticker, CurrencyProfit: currencyProfit, ContractSize: contractSize}
	if err := symbol.Validate(); err != nil {
		return Symbol{}, err
	}

	return symbol, nil
}

func (s Symbol) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidSymbol, err, "invalid symbol %q", s.Ticker)
	}

	return nil
}
