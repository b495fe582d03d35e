package mocks

//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/datasource DataSource
//go:generate mockgen -destination=./mock_rate_resolver.go -package=mocks github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/exchange RateResolver
//go:generate mockgen -destination=./mock_commission_fee.go -package=mocks github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/commission_fee CommissionFee
//go:generate mockgen -destination=./mock_strategy.go -package=mocks github.com/rxtech-lab/art-trader/internal/strategy Strategy
//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/art-trader/pkg/marketdata/provider Provider
