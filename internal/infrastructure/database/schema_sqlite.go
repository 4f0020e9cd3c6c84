package database

// sqliteDialect is the CRM schema in SQLite form. Timestamps are stored as
// UTC RFC 3339 text; booleans as 0/1 integers.
var sqliteDialect = dialect{
	tables: []string{
		`CREATE TABLE IF NOT EXISTS roles (
			role_id INTEGER PRIMARY KEY AUTOINCREMENT,
			role_name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			user_id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			role_id INTEGER NOT NULL,
			manager_id INTEGER,
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (role_id) REFERENCES roles(role_id),
			FOREIGN KEY (manager_id) REFERENCES users(user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS contacts (
			contact_id INTEGER PRIMARY KEY AUTOINCREMENT,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT,
			phone TEXT,
			company TEXT,
			assigned_to INTEGER,
			notes TEXT,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (assigned_to) REFERENCES users(user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS task_status (
			status_id INTEGER PRIMARY KEY AUTOINCREMENT,
			status_name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		)`,

		`CREATE TABLE IF NOT EXISTS tasks (
			task_id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			description TEXT,
			assigned_to INTEGER NOT NULL,
			assigned_by INTEGER NOT NULL,
			due_date TEXT NOT NULL,
			status_id INTEGER NOT NULL,
			priority TEXT NOT NULL DEFAULT 'medium'
				CHECK (priority IN ('low', 'medium', 'high')),
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (assigned_to) REFERENCES users(user_id),
			FOREIGN KEY (assigned_by) REFERENCES users(user_id),
			FOREIGN KEY (status_id) REFERENCES task_status(status_id)
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			token_hash TEXT NOT NULL UNIQUE,
			expires_at TEXT NOT NULL,
			revoked INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now')),
			FOREIGN KEY (user_id) REFERENCES users(user_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_contacts_assigned_to ON contacts(assigned_to)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_assigned_to ON tasks(assigned_to)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_assigned_by ON tasks(assigned_by)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id)`,
	},

	seeds: []string{
		`INSERT OR IGNORE INTO roles (role_name, description) VALUES
			('admin', 'System administrator with full access'),
			('manager', 'Team manager with reporting and task assignment capabilities'),
			('employee', 'Regular employee with basic access')`,

		`INSERT OR IGNORE INTO task_status (status_name, description) VALUES
			('not_started', 'Task has not been started'),
			('in_progress', 'Task is currently being worked on'),
			('completed', 'Task has been completed'),
			('on_hold', 'Task is temporarily on hold')`,
	},
}
