package db

func (db *DB) initSchema() error {
	schema := `
	-- Status definitions (authoritative lifecycle per status)
	CREATE TABLE IF NOT EXISTS session_statuses (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lifecycle TEXT NOT NULL CHECK(lifecycle IN ('active', 'completed', 'cancelled')),
		sort_order INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_session_statuses_name ON session_statuses(name);

	-- Leads (clients)
	CREATE TABLE IF NOT EXISTS leads (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		status TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_leads_name ON leads(name);

	-- Projects
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		lead_id TEXT,
		status TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_projects_lead_id ON projects(lead_id);

	-- Sessions; lead and project are soft references so partial exports import
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		time TEXT,
		status TEXT,
		lead_id TEXT,
		project_id TEXT,
		location TEXT,
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_date ON sessions(date);
	CREATE INDEX IF NOT EXISTS idx_sessions_lead_id ON sessions(lead_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_project_id ON sessions(project_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);

	-- Message templates
	CREATE TABLE IF NOT EXISTS message_templates (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		channel TEXT,
		subject TEXT,
		body TEXT NOT NULL
	);

	-- Import log table
	CREATE TABLE IF NOT EXISTS import_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_path TEXT NOT NULL,
		file_hash TEXT NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		records_imported INTEGER,
		sessions_imported INTEGER,
		status TEXT CHECK(status IN ('success', 'partial', 'failed')),
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_import_log_file_hash ON import_log(file_hash);

	-- Full-text search over session notes and locations
	CREATE VIRTUAL TABLE IF NOT EXISTS sessions_fts USING fts5(
		notes,
		location,
		content=sessions,
		content_rowid=rowid,
		tokenize='porter unicode61'
	);

	-- Triggers to keep FTS in sync
	CREATE TRIGGER IF NOT EXISTS sessions_ai AFTER INSERT ON sessions BEGIN
		INSERT INTO sessions_fts(rowid, notes, location) VALUES (new.rowid, new.notes, new.location);
	END;

	CREATE TRIGGER IF NOT EXISTS sessions_ad AFTER DELETE ON sessions BEGIN
		INSERT INTO sessions_fts(sessions_fts, rowid, notes, location) VALUES ('delete', old.rowid, old.notes, old.location);
	END;

	CREATE TRIGGER IF NOT EXISTS sessions_au AFTER UPDATE ON sessions BEGIN
		INSERT INTO sessions_fts(sessions_fts, rowid, notes, location) VALUES ('delete', old.rowid, old.notes, old.location);
		INSERT INTO sessions_fts(rowid, notes, location) VALUES (new.rowid, new.notes, new.location);
	END;
	`

	_, err := db.conn.Exec(schema)
	return err
}
