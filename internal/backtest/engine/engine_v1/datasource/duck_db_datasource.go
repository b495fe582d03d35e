package datasource

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/art-trader/internal/logger"
	"github.com/rxtech-lab/art-trader/internal/types"
	"github.com/rxtech-lab/art-trader/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBDataSource serves bars from parquet files through a DuckDB view.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a new DuckDB data source instance with the specified database path.
// The path parameter specifies the DuckDB database file location, usually ":memory:".
// This is distinct from Initialize() which loads market data into the database.
func NewDataSource(path string, logger *logger.Logger) (*DuckDBDataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open duckdb", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource. path is a parquet file or glob.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("Initializing DuckDB data source", zap.String("path", path))

	_, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to drop existing view", err)
	}

	// Squirrel doesn't support CREATE VIEW
	query := fmt.Sprintf(`
		CREATE VIEW market_data AS
		SELECT time, symbol, open, high, low, close, volume FROM read_parquet('%s');
	`, strings.ReplaceAll(path, "'", "''"))

	_, err = d.db.Exec(query)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load parquet data from %s", path)
	}

	return nil
}

// GetBars implements DataSource.
func (d *DuckDBDataSource) GetBars(symbol string, interval Interval, start time.Time, end time.Time) ([]types.MarketData, error) {
	minutes, err := getIntervalMinutes(interval)
	if err != nil {
		return nil, err
	}

	query, args, err := d.buildGetBarsQuery(symbol, minutes, start, end)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	stmt, err := d.db.Prepare(query)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to prepare query", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query(args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query bars for %s", symbol)
	}
	defer rows.Close()

	result := make([]types.MarketData, 0, 64)

	for rows.Next() {
		var (
			timestamp                      time.Time
			open, high, low, close, volume float64
			symbolResult                   string
		)

		err := rows.Scan(&timestamp, &symbolResult, &open, &high, &low, &close, &volume)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan row", err)
		}

		result = append(result, types.MarketData{
			Id:     "",
			Symbol: symbolResult,
			Time:   timestamp,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating rows", err)
	}

	return result, nil
}

// Exists implements DataSource.
func (d *DuckDBDataSource) Exists(symbol string) (bool, error) {
	query, args, err := d.sq.
		Select("1").
		From("market_data").
		Where(squirrel.Eq{"symbol": symbol}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var one int

	err = d.db.QueryRow(query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to look up symbol %s", symbol)
	}

	return true, nil
}

// GetAllSymbols implements DataSource.
func (d *DuckDBDataSource) GetAllSymbols() ([]string, error) {
	rows, err := d.db.Query("SELECT DISTINCT symbol FROM market_data ORDER BY symbol")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to get symbols", err)
	}
	defer rows.Close()

	var symbols []string

	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan symbol", err)
		}

		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating symbols", err)
	}

	return symbols, nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	builder := d.sq.Select("COUNT(*)").From("market_data")

	if start.IsSome() {
		builder = builder.Where(squirrel.GtOrEq{"time": start.Unwrap()})
	}

	if end.IsSome() {
		builder = builder.Where(squirrel.Lt{"time": end.Unwrap()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to count bars", err)
	}

	return count, nil
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	if d.db != nil {
		return d.db.Close()
	}

	return nil
}

// buildGetBarsQuery groups the stored bars into buckets of the given width aligned on start.
func (d *DuckDBDataSource) buildGetBarsQuery(symbol string, minutes int, start time.Time, end time.Time) (string, []any, error) {
	bucket := fmt.Sprintf("time_bucket(INTERVAL '%d minutes', time, ?::TIMESTAMP)", minutes)

	return d.sq.
		Select().
		Column(squirrel.Expr(bucket+" AS bucket_time", start.UTC())).
		Columns(
			"symbol",
			"arg_min(open, time) AS open",
			"MAX(high) AS high",
			"MIN(low) AS low",
			"arg_max(close, time) AS close",
			"SUM(volume) AS volume",
		).
		From("market_data").
		Where(squirrel.And{
			squirrel.Eq{"symbol": symbol},
			squirrel.GtOrEq{"time": start.UTC()},
			squirrel.Lt{"time": end.UTC()},
		}).
		GroupBy("bucket_time", "symbol").
		OrderBy("bucket_time ASC").
		ToSql()
}
