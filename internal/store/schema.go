// ABOUTME: SQLite database schema for chunk storage
// ABOUTME: One chunks table plus a meta table for generation tracking
package store

// Schema contains all SQL statements for database initialization
const Schema = `
-- Chunks table (text + embedding vector, keyed by chunk id)
CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Meta table (schema version, active embedding-model generation)
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
