package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/types"
)

// DataGenerator generates hourly price bars for testing the backtest engine.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how bars are generated.
type GeneratorConfig struct {
	// Symbol is the ticker of the generated bars (e.g., "EURUSD")
	Symbol string
	// Start is the first market day with bars.
	Start calendar.Date
	// End is the first market day without bars.
	End calendar.Date
	// Location is the timezone the day boundaries are taken in.
	Location *time.Location
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.001 = 0.1% per bar)
	Volatility float64
	// Trend is the drift per bar
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
}

// DefaultConfig returns a sensible default configuration: two weeks of EURUSD.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:       "EURUSD",
		Start:        calendar.NewDate(2023, 1, 2),
		End:          calendar.NewDate(2023, 1, 16),
		Location:     time.UTC,
		InitialPrice: 1.07,
		Volatility:   0.001,
		Trend:        0.0,
		VolumeBase:   1000,
	}
}

// Generate creates 24 hourly bars for each market day in [Start, End).
// Prices follow a geometric Brownian motion carried over from one day to the next.
func (g *DataGenerator) Generate(config GeneratorConfig) []types.MarketData {
	loc := config.Location
	if loc == nil {
		loc = time.UTC
	}

	var data []types.MarketData

	currentPrice := config.InitialPrice

	for day := range calendar.DateRange(config.Start, config.End) {
		dayStart := day.Time(loc)

		for hour := 0; hour < 24; hour++ {
			open := currentPrice

			// Box-Muller transform for a standard normal sample
			u1 := 1 - g.rng.Float64()
			u2 := g.rng.Float64()
			z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

			close := open * (1 + config.Volatility*z + config.Trend)
			if close <= 0 {
				close = open * 0.99
			}

			high := math.Max(open, close) + math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
			low := math.Min(open, close) - math.Abs(g.rng.Float64()*config.Volatility*open*0.5)
			if low <= 0 {
				low = math.Min(open, close) * 0.99
			}

			data = append(data, types.MarketData{
				Id:     "",
				Symbol: config.Symbol,
				Time:   dayStart.Add(time.Duration(hour) * time.Hour),
				Open:   roundToDecimals(open, 5),
				High:   roundToDecimals(high, 5),
				Low:    roundToDecimals(low, 5),
				Close:  roundToDecimals(close, 5),
				Volume: roundToDecimals(config.VolumeBase*(0.5+g.rng.Float64()), 2),
			})

			currentPrice = close
		}
	}

	return data
}

// FlatBars returns one bar per hour of day in loc with every price equal to price.
func FlatBars(symbol string, day calendar.Date, loc *time.Location, price float64) []types.MarketData {
	dayStart := day.Time(loc)
	bars := make([]types.MarketData, 0, 24)

	for hour := 0; hour < 24; hour++ {
		bars = append(bars, types.MarketData{
			Symbol: symbol,
			Time:   dayStart.Add(time.Duration(hour) * time.Hour),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
		})
	}

	return bars
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
