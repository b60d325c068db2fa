package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // driver: duckdb
	_ "modernc.org/sqlite"             // driver: sqlite

	"meister/internal/question"
)

// SQLStore serves questions seeded into a sqlite or DuckDB database.
type SQLStore struct {
	db     *sql.DB
	driver Driver
}

// OpenSQL opens a database and ensures the schema exists.
func OpenSQL(ctx context.Context, driver Driver, dsn string) (*SQLStore, error) {
	switch driver {
	case DriverSQLite:
		if dsn == "" {
			dsn = "file:meister.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverDuckDB:
		// An empty DSN opens an in-memory database.
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
	db, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLStore{db: db, driver: driver}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, statement := range schemaStatements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Driver returns the backend name.
func (s *SQLStore) Driver() Driver { return s.driver }

// Close releases the database handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Seed replaces the stored bank with catalog.
func (s *SQLStore) Seed(ctx context.Context, catalog question.Catalog) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for _, table := range []string{"question_tags", "questions", "tags"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for i, tag := range catalog.Tags {
		if _, err = tx.ExecContext(ctx, `INSERT INTO tags (position, name) VALUES (?, ?)`, i, tag); err != nil {
			return fmt.Errorf("insert tag %q: %w", tag, err)
		}
	}
	for i, q := range catalog.Questions {
		var body []byte
		if body, err = json.Marshal(q.Record()); err != nil {
			return fmt.Errorf("encode question %s: %w", q.ID, err)
		}
		if _, err = tx.ExecContext(ctx, `INSERT INTO questions (id, position, body) VALUES (?, ?, ?)`, q.ID, i, string(body)); err != nil {
			return fmt.Errorf("insert question %s: %w", q.ID, err)
		}
		for _, tag := range q.Tags {
			if _, err = tx.ExecContext(ctx, `INSERT INTO question_tags (question_id, tag) VALUES (?, ?)`, q.ID, tag); err != nil {
				return fmt.Errorf("insert tag %q for %s: %w", tag, q.ID, err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// FetchQuestions returns the questions carrying every tag, in bank order.
func (s *SQLStore) FetchQuestions(ctx context.Context, tags []string, page int) ([]question.Question, error) {
	tags = question.NormalizeTags(tags)
	query, args := fetchQuery(tags)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var records []question.BankRecord
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var record question.BankRecord
		if err := json.Unmarshal([]byte(body), &record); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	if len(records) == 0 {
		return []question.Question{}, nil
	}
	vocabulary, err := s.Tags(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := question.NormalizeBank(question.Bank{Version: 1, Tags: vocabulary, Questions: records})
	if err != nil {
		return nil, fmt.Errorf("stored bank: %w", err)
	}
	return catalog.Questions, nil
}

func fetchQuery(tags []string) (string, []any) {
	if len(tags) == 0 {
		return `SELECT body FROM questions ORDER BY position`, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(tags)), ", ")
	args := make([]any, 0, len(tags)+1)
	for _, tag := range tags {
		args = append(args, tag)
	}
	args = append(args, len(tags))
	query := `SELECT q.body FROM questions q
WHERE q.id IN (
  SELECT question_id FROM question_tags
  WHERE tag IN (` + placeholders + `)
  GROUP BY question_id
  HAVING COUNT(DISTINCT tag) = ?
)
ORDER BY q.position`
	return query, args
}

// Tags returns the stored vocabulary in bank order.
func (s *SQLStore) Tags(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM tags ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()
	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read tags: %w", err)
	}
	return tags, nil
}
