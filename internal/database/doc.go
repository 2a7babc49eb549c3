// Package database provides SQLite-based storage for klotto.
//
// This package implements the DrawDB, which stores:
//   - Official Lotto 6/45 draw results, one row per round
//   - First prize amounts, winner counts, and total sales per round
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
//
// The draw table keeps one column per ball number rather than a packed
// encoding so the file stays queryable with plain sqlite3 tooling.
package database
