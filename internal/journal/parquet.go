package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/candle-bot/pkg/errors"
)

// ParquetJournal keeps decisions in an in-memory DuckDB table and exports
// them to a parquet file on Flush and Close.
type ParquetJournal struct {
	db         *sql.DB
	sq         squirrel.StatementBuilderType
	outputPath string
	now        func() time.Time
}

var _ Journal = (*ParquetJournal)(nil)

// NewParquetJournal opens a journal writing to outputPath. Decisions already
// stored in outputPath are loaded so an interrupted match can be resumed.
func NewParquetJournal(outputPath string) (*ParquetJournal, error) {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeJournalInitFailed, "failed to create journal directory", err)
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeJournalInitFailed, "failed to open DuckDB connection", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS decisions (
			id TEXT,
			turn_date TIMESTAMP,
			policy TEXT,
			pair TEXT,
			action TEXT,
			quantity DOUBLE,
			price DOUBLE,
			reason TEXT,
			recorded_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeJournalInitFailed, "failed to create decisions table", err)
	}

	if _, err := os.Stat(outputPath); err == nil {
		_, err = db.Exec(fmt.Sprintf(`INSERT INTO decisions SELECT * FROM read_parquet(%s)`, quoteLiteral(outputPath)))
		if err != nil {
			db.Close()

			return nil, errors.Wrapf(errors.ErrCodeJournalInitFailed, err, "failed to load existing journal %s", outputPath)
		}
	}

	return &ParquetJournal{
		db:         db,
		sq:         squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		outputPath: outputPath,
		now:        time.Now,
	}, nil
}

// Record inserts one decision.
func (j *ParquetJournal) Record(entry Entry) error {
	if j.db == nil {
		return errors.New(errors.ErrCodeJournalWriteFailed, "journal is closed")
	}

	d := entry.Decision

	query, args, err := j.sq.Insert("decisions").
		Columns("id", "turn_date", "policy", "pair", "action", "quantity", "price", "reason", "recorded_at").
		Values(uuid.NewString(), entry.TurnDate.UTC(), d.Policy, d.Pair, string(d.Action), d.Quantity, d.Price, d.Reason, j.now().UTC()).
		ToSql()
	if err != nil {
		return errors.Wrap(errors.ErrCodeJournalWriteFailed, "failed to build insert", err)
	}

	if _, err := j.db.Exec(query, args...); err != nil {
		return errors.Wrap(errors.ErrCodeJournalWriteFailed, "failed to insert decision", err)
	}

	return nil
}

// Flush exports the table to the parquet file.
func (j *ParquetJournal) Flush() error {
	if j.db == nil {
		return errors.New(errors.ErrCodeJournalExportFailed, "journal is closed")
	}

	_, err := j.db.Exec(fmt.Sprintf(`
		COPY (SELECT * FROM decisions ORDER BY turn_date ASC, recorded_at ASC)
		TO %s (FORMAT PARQUET)
	`, quoteLiteral(j.outputPath)))
	if err != nil {
		return errors.Wrap(errors.ErrCodeJournalExportFailed, "failed to export journal to parquet", err)
	}

	return nil
}

// Count returns the number of decisions with the given action, or all
// decisions when action is empty.
func (j *ParquetJournal) Count(action string) (int, error) {
	if j.db == nil {
		return 0, errors.New(errors.ErrCodeJournalWriteFailed, "journal is closed")
	}

	builder := j.sq.Select("COUNT(*)").From("decisions")
	if action != "" {
		builder = builder.Where(squirrel.Eq{"action": action})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeJournalWriteFailed, "failed to build count query", err)
	}

	var count int
	if err := j.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeJournalWriteFailed, "failed to count decisions", err)
	}

	return count, nil
}

// OutputPath returns the parquet file path.
func (j *ParquetJournal) OutputPath() string {
	return j.outputPath
}

// Close exports the journal and releases the database.
func (j *ParquetJournal) Close() error {
	if j.db == nil {
		return nil
	}

	flushErr := j.Flush()

	if err := j.db.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeJournalExportFailed, "failed to close database", err)
	}

	j.db = nil

	return flushErr
}

// quoteLiteral renders s as a SQL string literal.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
