// Package database handles ledger database connections and schema inspection.
//
// It wraps GORM and configures a connection pool for one of three drivers:
// MySQL (production default), PostgreSQL (through pgx) and SQLite (local runs
// and tests). The handle returned by Connect is opened once at process start,
// injected into every feature, and closed at shutdown with Close.
//
// # Connect
//
// Connect builds the DSN from Config, applies connection and I/O timeouts,
// tunes the pool and pings the server with a bounded context. SQLite is pinned
// to a single connection so in-memory databases survive and writers serialise.
//
// # Schema Inspection
//
// GetTableColumns returns the live columns of a table for each supported
// dialect. The audit feature compares them against the ledger models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//	defer database.Close(db)
//
//	columns, err := database.GetTableColumns(db, "borrow_records")
package database
