package database

import (
	"database/sql"
	stdlog "log"

	"github.com/username/gainledger/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	if logger.L != nil {
		logger.L.Info("Checking database migrations", "databasePath", databasePath)
	} else {
		stdlog.Println("Checking database migrations for:", databasePath)
	}
	migrateTransactionsTable()

	// Quantity, unit_price and fee are stored as decimal strings so values
	// survive the round trip exactly; REAL columns would reintroduce the
	// float drift the engine avoids.
	createTableStatement := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		auth_provider TEXT DEFAULT 'local',
		is_email_verified BOOLEAN DEFAULT FALSE,
		email_verification_token TEXT,
		email_verification_token_expires_at TIMESTAMP,
		password_reset_token TEXT,
		password_reset_token_expires_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		token TEXT NOT NULL,
		refresh_token TEXT NOT NULL,
		user_agent TEXT,
		client_ip TEXT,
		is_blocked BOOLEAN DEFAULT FALSE,
		expires_at TIMESTAMP,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		asset_id TEXT NOT NULL,
		asset_name TEXT,
		kind TEXT NOT NULL,
		quantity TEXT NOT NULL,
		unit_price TEXT NOT NULL,
		fee TEXT NOT NULL DEFAULT '0',
		timestamp TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'COMPLETED',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id)
	);
	CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions(user_id, timestamp);
	`

	_, err = DB.Exec(createTableStatement)
	if err != nil {
		if logger.L != nil {
			logger.L.Error("failed to create tables", "error", err)
		}
		stdlog.Fatalf("failed to create tables: %v", err)
	}
	if logger.L != nil {
		logger.L.Info("Database tables ensured/created.")
	} else {
		stdlog.Println("Database tables ensured/created.")
	}
}

func migrateTransactionsTable() {
	var tableName string
	err := DB.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='transactions'").Scan(&tableName)
	if err != nil {
		if err == sql.ErrNoRows {
			return // table will be created with the full schema
		}
		if logger.L != nil {
			logger.L.Error("Error checking for 'transactions' table", "error", err)
		} else {
			stdlog.Printf("Error checking for 'transactions' table: %v", err)
		}
		return
	}

	rows, err := DB.Query("PRAGMA table_info(transactions)")
	if err != nil {
		if logger.L != nil {
			logger.L.Error("Error querying table schema for 'transactions'", "error", err)
		} else {
			stdlog.Printf("Error querying table schema for 'transactions': %v", err)
		}
		return
	}
	defer rows.Close()

	columnExists := make(map[string]bool)
	for rows.Next() {
		var cid, pk int
		var name, dataType string
		var notnullVal int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &dataType, &notnullVal, &dfltValue, &pk); err != nil {
			if logger.L != nil {
				logger.L.Error("Error scanning column info for 'transactions'", "error", err)
			}
			return
		}
		columnExists[name] = true
	}
	if err = rows.Err(); err != nil {
		if logger.L != nil {
			logger.L.Error("Error iterating over column info for 'transactions'", "error", err)
		}
		return
	}

	if _, ok := columnExists["asset_name"]; !ok {
		if _, err := DB.Exec("ALTER TABLE transactions ADD COLUMN asset_name TEXT"); err != nil {
			logger.L.Error("Error adding 'asset_name' column to 'transactions' table", "error", err)
		} else {
			logger.L.Info("Added 'asset_name' column to 'transactions' table")
		}
	}
	if _, ok := columnExists["status"]; !ok {
		if _, err := DB.Exec("ALTER TABLE transactions ADD COLUMN status TEXT NOT NULL DEFAULT 'COMPLETED'"); err != nil {
			logger.L.Error("Error adding 'status' column to 'transactions' table", "error", err)
		} else {
			logger.L.Info("Added 'status' column to 'transactions' table")
		}
	}
	if _, ok := columnExists["fee"]; !ok {
		if _, err := DB.Exec("ALTER TABLE transactions ADD COLUMN fee TEXT NOT NULL DEFAULT '0'"); err != nil {
			logger.L.Error("Error adding 'fee' column to 'transactions' table", "error", err)
		} else {
			logger.L.Info("Added 'fee' column to 'transactions' table")
		}
	}
}
