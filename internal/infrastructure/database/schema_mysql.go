package database

// mysqlDialect is the CRM schema in MySQL form (8.0.13+ for expression
// defaults). Timestamps are stored as UTC RFC 3339 text so rows read the
// same on either engine; due dates use the native DATE type.
var mysqlDialect = dialect{
	tables: []string{
		`CREATE TABLE IF NOT EXISTS roles (
			role_id INT PRIMARY KEY AUTO_INCREMENT,
			role_name VARCHAR(50) NOT NULL UNIQUE,
			description TEXT,
			created_at VARCHAR(35) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ')),
			updated_at VARCHAR(35) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ'))
		)`,

		`CREATE TABLE IF NOT EXISTS users (
			user_id INT PRIMARY KEY AUTO_INCREMENT,
			username VARCHAR(50) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			email VARCHAR(100) NOT NULL UNIQUE,
			role_id INT NOT NULL,
			manager_id INT,
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			created_at VARCHAR(35) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ')),
			updated_at VARCHAR(35) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ')),
			FOREIGN KEY (role_id) REFERENCES roles(role_id),
			FOREIGN KEY (manager_id) REFERENCES users(user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS contacts (
			contact_id INT PRIMARY KEY AUTO_INCREMENT,
			first_name VARCHAR(50) NOT NULL,
			last_name VARCHAR(50) NOT NULL,
			email VARCHAR(100),
			phone VARCHAR(20),
			company VARCHAR(100),
			assigned_to INT,
			notes TEXT,
			created_at VARCHAR(35) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ')),
			updated_at VARCHAR(35) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ')),
			FOREIGN KEY (assigned_to) REFERENCES users(user_id)
		)`,

		`CREATE TABLE IF NOT EXISTS task_status (
			status_id INT PRIMARY KEY AUTO_INCREMENT,
			status_name VARCHAR(50) NOT NULL UNIQUE,
			description TEXT,
			created_at VARCHAR(35) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ'))
		)`,

		`CREATE TABLE IF NOT EXISTS tasks (
			task_id INT PRIMARY KEY AUTO_INCREMENT,
			title VARCHAR(100) NOT NULL,
			description TEXT,
			assigned_to INT NOT NULL,
			assigned_by INT NOT NULL,
			due_date DATE NOT NULL,
			status_id INT NOT NULL,
			priority ENUM('low', 'medium', 'high') NOT NULL DEFAULT 'medium',
			created_at VARCHAR(35) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ')),
			updated_at VARCHAR(35) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ')),
			FOREIGN KEY (assigned_to) REFERENCES users(user_id),
			FOREIGN KEY (assigned_by) REFERENCES users(user_id),
			FOREIGN KEY (status_id) REFERENCES task_status(status_id)
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			session_id VARCHAR(40) PRIMARY KEY,
			user_id INT NOT NULL,
			token_hash VARCHAR(64) NOT NULL UNIQUE,
			expires_at VARCHAR(24) NOT NULL,
			revoked TINYINT(1) NOT NULL DEFAULT 0,
			created_at VARCHAR(24) NOT NULL
				DEFAULT (DATE_FORMAT(UTC_TIMESTAMP(), '%Y-%m-%dT%H:%i:%sZ')),
			FOREIGN KEY (user_id) REFERENCES users(user_id)
		)`,
	},

	seeds: []string{
		`INSERT IGNORE INTO roles (role_name, description) VALUES
			('admin', 'System administrator with full access'),
			('manager', 'Team manager with reporting and task assignment capabilities'),
			('employee', 'Regular employee with basic access')`,

		`INSERT IGNORE INTO task_status (status_name, description) VALUES
			('not_started', 'Task has not been started'),
			('in_progress', 'Task is currently being worked on'),
			('completed', 'Task has been completed'),
			('on_hold', 'Task is temporarily on hold')`,
	},
}
