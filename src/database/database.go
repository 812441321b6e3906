package database

import (
	"database/sql"
	stdlog "log"
	"time"

	"github.com/username/stonefolio/src/logger"
	_ "modernc.org/sqlite"
)

var DB *sql.DB

// InitDB opens the sqlite audit store and creates the invocation table. The
// audit log is operational state only; datasets and aggregation results are
// never persisted.
func InitDB(databasePath string) {
	db, err := sql.Open("sqlite", databasePath)
	if err != nil {
		stdlog.Fatalf("failed to open database at %s: %v", databasePath, err)
	}

	DB = db

	createTableStatement := `
	CREATE TABLE IF NOT EXISTS tool_invocations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool TEXT NOT NULL,
		account_code TEXT,
		duration_ms INTEGER NOT NULL,
		success BOOLEAN NOT NULL,
		error_kind TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_tool_invocations_tool ON tool_invocations(tool);
	`
	if _, err := DB.Exec(createTableStatement); err != nil {
		stdlog.Fatalf("failed to create tool_invocations table: %v", err)
	}

	if logger.L != nil {
		logger.L.Info("Audit database initialized", "databasePath", databasePath)
	}
}

// RecordInvocation writes one audit row. Best-effort: failures are logged and
// never surface to the caller.
func RecordInvocation(tool, accountCode string, duration time.Duration, success bool, errorKind string) {
	if DB == nil {
		return
	}
	_, err := DB.Exec(
		`INSERT INTO tool_invocations (tool, account_code, duration_ms, success, error_kind) VALUES (?, ?, ?, ?, ?)`,
		tool, accountCode, duration.Milliseconds(), success, errorKind,
	)
	if err != nil && logger.L != nil {
		logger.L.Warn("Failed to record tool invocation", "tool", tool, "error", err)
	}
}
