package mocks

import (
	"testing"
	"time"

	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42)
	config := DefaultConfig()

	data := gen.Generate(config)

	// 2023-01-02 to 2023-01-16 holds ten market days
	require.Len(t, data, 10*24)

	for i := 1; i < len(data); i++ {
		assert.True(t, data[i].Time.After(data[i-1].Time), "not chronological at %d", i)
	}

	for i, d := range data {
		assert.Equal(t, config.Symbol, d.Symbol)
		assert.NoError(t, d.Validate(), "bar %d", i)
		assert.Positive(t, d.Low)

		day, err := calendar.DateOf(d.Time.Truncate(24 * time.Hour))
		require.NoError(t, err)
		assert.True(t, calendar.IsMarketDay(day), "bar on %s", day)
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	first := NewDataGenerator(7).Generate(DefaultConfig())
	second := NewDataGenerator(7).Generate(DefaultConfig())
	other := NewDataGenerator(8).Generate(DefaultConfig())

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestDataGenerator_Location(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	config := DefaultConfig()
	config.Location = loc
	config.End = config.Start.AddDays(1)

	data := NewDataGenerator(1).Generate(config)
	require.Len(t, data, 24)
	assert.True(t, data[0].Time.Equal(time.Date(2023, 1, 1, 22, 0, 0, 0, time.UTC)))
}

func TestFlatBars(t *testing.T) {
	bars := FlatBars("USDJPY", calendar.NewDate(2023, 1, 2), time.UTC, 130)

	require.Len(t, bars, 24)
	assert.Equal(t, 130.0, bars[23].Close)
	assert.Equal(t, time.Date(2023, 1, 2, 23, 0, 0, 0, time.UTC), bars[23].Time)
}
