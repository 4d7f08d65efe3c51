package sqlitestore

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	id               INTEGER PRIMARY KEY,
	kind             TEXT NOT NULL,
	title            TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'NEW',
	description      TEXT NOT NULL DEFAULT '',
	epic_id          INTEGER,
	duration_minutes INTEGER NOT NULL DEFAULT 0,
	start_time       TEXT
);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_items_kind ON items(kind);
CREATE INDEX IF NOT EXISTS idx_items_epic_id ON items(epic_id);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
