package types

import (
	"math"

	"github.com/rxtech-lab/art-trader/pkg/errors"
)

// Account holds the balance a backtest settles profit into.
type Account interface {
	Balance() float64
	// SetBalance rejects a negative or non-finite balance and keeps the previous value.
	SetBalance(balance float64) error
	Currency() string
}

type BacktestAccount struct {
	balance  float64
	currency string
}

func NewBacktestAccount(initialBalance float64, currency string) (*BacktestAccount, error) {
	account := &BacktestAccount{currency: currency}
	if err := account.SetBalance(initialBalance); err != nil {
		return nil, err
	}

	return account, nil
}

func (a *BacktestAccount) Balance() float64 {
	return a.balance
}

func (a *BacktestAccount) SetBalance(balance float64) error {
	if math.IsNaN(balance) || math.IsInf(balance, 0) {
		return errors.Newf(errors.ErrCodeInvalidBalance, "balance must be a finite number: %v", balance)
	}

	if balance < 0 {
		return errors.Newf(errors.ErrCodeNegativeBalance, "balance cannot be negative: %v", balance)
	}

	a.balance = balance

	return nil
}

func (a *BacktestAccount) Currency() string {
	return a.currency
}

// AddProfit adds profit (which may be negative) to the account balance.
func AddProfit(account Account, profit float64) error {
	return account.SetBalance(account.Balance() + profit)
}
