package store

// schemaStatements create the question tables, one statement each.
// Tables carry no key constraints: DuckDB rejects deleting and reinserting
// a key inside one transaction, which Seed does.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS questions (
  id TEXT NOT NULL,
  position INTEGER NOT NULL,
  body TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS question_tags (
  question_id TEXT NOT NULL,
  tag TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS tags (
  position INTEGER NOT NULL,
  name TEXT NOT NULL
)`,
}
