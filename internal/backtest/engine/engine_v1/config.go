package engine

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/art-trader/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/art-trader/internal/calendar"
	"github.com/rxtech-lab/art-trader/internal/strategy"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/internal/version"
	"github.com/rxtech-lab/art-trader/pkg/errors"
	"gopkg.in/yaml.v3"
)

type BacktestEngineV1Config struct {
	Version        optional.Option[string] `yaml:"-" json:"version" jsonschema:"title=Version,description=Engine version the configuration was written for"`
	InitialBalance float64                 `yaml:"initial_balance" json:"initial_balance" jsonschema:"title=Initial Balance,description=Starting balance of the account,minimum=0" validate:"gte=0"`
	Currency       string                  `yaml:"currency" json:"currency" jsonschema:"title=Currency,description=Settlement currency of the account,example=USD" validate:"required,len=3,alpha"`
	StartDate      calendar.Date           `yaml:"start_date" json:"start_date" jsonschema:"title=Start Date,description=First date of the backtest (inclusive)"`
	EndDate        calendar.Date           `yaml:"end_date" json:"end_date" jsonschema:"title=End Date,description=Last date of the backtest (exclusive)"`
	Timezone       string                  `yaml:"timezone" json:"timezone" jsonschema:"title=Timezone,description=IANA timezone of the price series,default=UTC"`
	Broker         commission_fee.Broker   `yaml:"broker" json:"broker" jsonschema:"title=Broker,description=The broker to use for commission calculations"`
	FeePerLot      float64                 `yaml:"fee_per_lot" json:"fee_per_lot" jsonschema:"title=Fee Per Lot,description=Fee charged per lot by the per_lot broker,minimum=0" validate:"gte=0"`
	FxTickerSuffix string                  `yaml:"fx_ticker_suffix" json:"fx_ticker_suffix" jsonschema:"title=FX Ticker Suffix,description=Suffix of currency pair tickers used for exchange rates"`
	Parallel       bool                    `yaml:"parallel" json:"parallel" jsonschema:"title=Parallel,description=Simulate the symbols of a day concurrently"`
	Symbols        []types.Symbol          `yaml:"symbols" json:"symbols" jsonschema:"title=Symbols,description=Instruments to backtest" validate:"required,min=1,dive"`
	Strategy       strategy.StrategyConfig `yaml:"strategy" json:"strategy" jsonschema:"title=Strategy,description=Strategy used when none is loaded into the engine"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config
func (c *BacktestEngineV1Config) UnmarshalYAML(value *yaml.Node) error {
	type Plain BacktestEngineV1Config

	type Config struct {
		Plain   `yaml:",inline"`
		Version *string `yaml:"version"`
	}

	config := Config{Plain: Plain(EmptyConfig())}
	if err := value.Decode(&config); err != nil {
		return err
	}

	*c = BacktestEngineV1Config(config.Plain)

	c.Version = optional.None[string]()
	if config.Version != nil {
		c.Version = optional.Some(*config.Version)
	}

	return nil
}

// ParseConfig parses and validates a YAML configuration document.
func ParseConfig(data string) (BacktestEngineV1Config, error) {
	var config BacktestEngineV1Config
	if err := yaml.Unmarshal([]byte(data), &config); err != nil {
		return BacktestEngineV1Config{}, errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse config", err)
	}

	if err := config.Validate(); err != nil {
		return BacktestEngineV1Config{}, err
	}

	return config, nil
}

// Validate checks the field constraints, the date range and the config version.
func (c BacktestEngineV1Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid config", err)
	}

	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return errors.New(errors.ErrCodeBacktestConfigError, "start_date and end_date are required")
	}

	if c.StartDate.After(c.EndDate) {
		return errors.Newf(errors.ErrCodeBacktestConfigError, "start_date %s is after end_date %s", c.StartDate, c.EndDate)
	}

	switch c.Broker {
	case commission_fee.BrokerInteractiveBroker, commission_fee.BrokerZero, commission_fee.BrokerPerLot:
	default:
		return errors.Newf(errors.ErrCodeBacktestConfigError, "unsupported broker: %s", c.Broker)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Version.IsSome() {
		if err := version.CheckVersionCompatibility(version.Version, c.Version.Unwrap()); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestConfigError, "config is not compatible with this engine", err)
		}
	}

	return nil
}

// Location returns the timezone market days start in.
func (c BacktestEngineV1Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeBacktestConfigError, err, "unknown timezone %q", c.Timezone)
	}

	return loc, nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			switch t {
			case reflect.TypeOf(optional.Option[string]{}):
				return &jsonschema.Schema{
					Type: "string",
				}
			case reflect.TypeOf(calendar.Date{}):
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date",
				}
			case reflect.TypeOf(commission_fee.Broker("")):
				return &jsonschema.Schema{
					Type: "string",
					Enum: commission_fee.AllBrokers,
				}
			}

			return nil
		},
	}

	// Generate schema from BacktestEngineV1Config struct
	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

// EmptyConfig returns a BacktestEngineV1Config with default values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		Version:        optional.None[string](),
		InitialBalance: 0,
		Currency:       "USD",
		Timezone:       "UTC",
		Broker:         commission_fee.BrokerZero,
		FeePerLot:      0,
		FxTickerSuffix: "",
		Parallel:       false,
		Symbols:        nil,
		Strategy:       strategy.DefaultStrategyConfig(),
	}
}
