package replay

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/candle-bot/internal/types"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
)

// Batch is every candle sharing one date.
type Batch struct {
	Date    int64
	Candles []types.Candle
}

// Source reads historical candles from a CSV or parquet file through DuckDB.
// The file must have the columns pair, date (unix seconds), high, low, open,
// close and volume.
type Source struct {
	db *sql.DB
	sq squirrel.StatementBuilderType
}

// OpenSource creates a source over the file at path.
func OpenSource(path string) (*Source, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeReplayDataPathError, err, "cannot read candle data %s", path)
	}

	reader := "read_csv_auto(%s, header = true)"
	if strings.EqualFold(filepath.Ext(path), ".parquet") {
		reader = "read_parquet(%s)"
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to open DuckDB connection", err)
	}

	// squirrel has no CREATE VIEW support
	_, err = db.Exec(fmt.Sprintf("CREATE VIEW candles AS SELECT * FROM "+reader, quoteLiteral(path)))
	if err != nil {
		db.Close()

		return nil, errors.Wrapf(errors.ErrCodeReplayDataPathError, err, "failed to load candle data %s", path)
	}

	return &Source{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Count returns the number of distinct dates, which is the number of turns
// a replay of the source takes.
func (s *Source) Count() (int, error) {
	query, args, err := s.sq.Select("COUNT(DISTINCT date)").From("candles").ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to build count query", err)
	}

	var count int
	if err := s.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to count candle dates", err)
	}

	return count, nil
}

// Pairs returns the instruments present in the source, sorted.
func (s *Source) Pairs() ([]string, error) {
	query, args, err := s.sq.Select("DISTINCT pair").From("candles").OrderBy("pair").ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to build pairs query", err)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to query pairs", err)
	}
	defer rows.Close()

	var pairs []string

	for rows.Next() {
		var pair string
		if err := rows.Scan(&pair); err != nil {
			return nil, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to scan pair", err)
		}

		pairs = append(pairs, pair)
	}

	return pairs, rows.Err()
}

// Batches yields the candles grouped by date in ascending order.
func (s *Source) Batches() func(yield func(Batch, error) bool) {
	return func(yield func(Batch, error) bool) {
		query, args, err := s.sq.
			Select(
				"CAST(pair AS VARCHAR)",
				"CAST(date AS BIGINT)",
				"CAST(high AS DOUBLE)",
				"CAST(low AS DOUBLE)",
				"CAST(open AS DOUBLE)",
				"CAST(close AS DOUBLE)",
				"CAST(volume AS DOUBLE)",
			).
			From("candles").
			OrderBy("date ASC", "pair ASC").
			ToSql()
		if err != nil {
			yield(Batch{}, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to build candle query", err))

			return
		}

		rows, err := s.db.Query(query, args...)
		if err != nil {
			yield(Batch{}, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to query candles", err))

			return
		}
		defer rows.Close()

		var batch Batch

		for rows.Next() {
			var c types.Candle
			if err := rows.Scan(&c.Pair, &c.Date, &c.High, &c.Low, &c.Open, &c.Close, &c.Volume); err != nil {
				yield(Batch{}, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to scan candle", err))

				return
			}

			if len(batch.Candles) > 0 && c.Date != batch.Date {
				if !yield(batch, nil) {
					return
				}

				batch = Batch{}
			}

			batch.Date = c.Date
			batch.Candles = append(batch.Candles, c)
		}

		if err := rows.Err(); err != nil {
			yield(Batch{}, errors.Wrap(errors.ErrCodeReplayQueryFailed, "failed to read candles", err))

			return
		}

		if len(batch.Candles) > 0 {
			yield(batch, nil)
		}
	}
}

// Close releases the database.
func (s *Source) Close() error {
	return s.db.Close()
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
