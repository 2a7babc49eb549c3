package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/twbeatles/klotto-generator/internal/model"
)

// dbFileName is the SQLite file name inside the database directory.
const dbFileName = "lotto_history.db"

// busyTimeout is how long a connection waits on another process's
// write lock before giving up with SQLITE_BUSY.
const busyTimeout = 5 * time.Second

// DrawDB provides SQLite-based storage for official draw results.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file holding every round
// rather than per-year files. The full history is under two thousand
// rows, so one file keeps queries and backups trivial.
type DrawDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures DrawDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a DrawDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*DrawDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	// Check if we should create the database or require it to exist
	if !opts.CreateIfNotExists {
		// Check if database file exists
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (run a sync first to create it)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		// Ensure directory exists
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Build connection string
	// We use modernc.org/sqlite which uses a different connection string format.
	// When CreateIfNotExists is false, we use mode=rw to prevent creating new files.
	// When CreateIfNotExists is true, we use mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	// SQLite doesn't benefit from multiple connections for writes,
	// but multiple readers can improve performance
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ddb := &DrawDB{
		db:     db,
		dbPath: dbPath,
	}

	// Enable WAL mode if requested
	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Wait instead of failing with SQLITE_BUSY when another process
	// holds the write lock.
	busyPragma := fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeout.Milliseconds())
	if _, err := db.ExecContext(context.Background(), busyPragma); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Create tables
	if err := ddb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return ddb, nil
}

// Close closes the database connection.
func (ddb *DrawDB) Close() error {
	return ddb.db.Close()
}

// Path returns the path of the underlying SQLite file.
func (ddb *DrawDB) Path() string {
	return ddb.dbPath
}

// createTables creates the database schema if it doesn't exist.
// The column layout matches the files written by earlier versions of
// this tool, so existing databases keep working without migration.
func (ddb *DrawDB) createTables() error {
	schema := `
	-- One row per official draw round
	CREATE TABLE IF NOT EXISTS draws (
		draw_no INTEGER PRIMARY KEY,
		date TEXT NOT NULL,
		num1 INTEGER NOT NULL,
		num2 INTEGER NOT NULL,
		num3 INTEGER NOT NULL,
		num4 INTEGER NOT NULL,
		num5 INTEGER NOT NULL,
		num6 INTEGER NOT NULL,
		bonus INTEGER NOT NULL,
		prize_amount INTEGER DEFAULT 0,
		winners_count INTEGER DEFAULT 0,
		total_sales INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_draws_date ON draws(date);
	`

	_, err := ddb.db.ExecContext(context.Background(), schema)
	return err
}

// UpsertDraw inserts or updates a draw by its round number.
// Uses UPSERT so re-syncing a round refreshes prize data that Dhlottery
// publishes after the drawing.
func (ddb *DrawDB) UpsertDraw(ctx context.Context, draw *model.Draw) error {
	if err := draw.Validate(); err != nil {
		return fmt.Errorf("refusing to store invalid draw: %w", err)
	}

	query := `
	INSERT INTO draws (draw_no, date, num1, num2, num3, num4, num5, num6, bonus, prize_amount, winners_count, total_sales)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(draw_no) DO UPDATE SET
		date = excluded.date,
		num1 = excluded.num1,
		num2 = excluded.num2,
		num3 = excluded.num3,
		num4 = excluded.num4,
		num5 = excluded.num5,
		num6 = excluded.num6,
		bonus = excluded.bonus,
		prize_amount = excluded.prize_amount,
		winners_count = excluded.winners_count,
		total_sales = excluded.total_sales
	`

	_, err := ddb.db.ExecContext(ctx, query,
		draw.DrawNo,
		draw.Date,
		draw.Numbers[0],
		draw.Numbers[1],
		draw.Numbers[2],
		draw.Numbers[3],
		draw.Numbers[4],
		draw.Numbers[5],
		draw.Bonus,
		draw.FirstPrizeAmount,
		draw.FirstPrizeWinners,
		draw.TotalSales,
	)
	if err != nil {
		return fmt.Errorf("failed to store draw %d: %w", draw.DrawNo, err)
	}

	return nil
}

// drawColumns is the column list shared by every draw SELECT.
const drawColumns = "draw_no, date, num1, num2, num3, num4, num5, num6, bonus, prize_amount, winners_count, total_sales"

// rowScanner abstracts sql.Row and sql.Rows for scanDraw.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDraw reads one draws row into a model.Draw.
func scanDraw(s rowScanner) (*model.Draw, error) {
	var draw model.Draw
	nums := make([]int, model.NumbersPerSet)

	err := s.Scan(
		&draw.DrawNo,
		&draw.Date,
		&nums[0], &nums[1], &nums[2], &nums[3], &nums[4], &nums[5],
		&draw.Bonus,
		&draw.FirstPrizeAmount,
		&draw.FirstPrizeWinners,
		&draw.TotalSales,
	)
	if err != nil {
		return nil, err
	}

	draw.Numbers = nums
	return &draw, nil
}

// GetDraw retrieves a draw by its round number.
// Returns nil if the round is not stored.
func (ddb *DrawDB) GetDraw(ctx context.Context, drawNo int) (*model.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE draw_no = ?`

	draw, err := scanDraw(ddb.db.QueryRowContext(ctx, query, drawNo))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draw %d: %w", drawNo, err)
	}

	return draw, nil
}

// LatestDraw retrieves the newest stored draw.
// Returns nil if the database is empty.
func (ddb *DrawDB) LatestDraw(ctx context.Context) (*model.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws ORDER BY draw_no DESC LIMIT 1`

	draw, err := scanDraw(ddb.db.QueryRowContext(ctx, query))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest draw: %w", err)
	}

	return draw, nil
}

// LastDrawNo returns the newest stored round number, or zero when the
// database is empty.
func (ddb *DrawDB) LastDrawNo(ctx context.Context) (int, error) {
	var lastNo int
	err := ddb.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(draw_no), 0) FROM draws`).Scan(&lastNo)
	if err != nil {
		return 0, fmt.Errorf("failed to get last draw number: %w", err)
	}
	return lastNo, nil
}

// CountDraws returns how many draws are stored.
func (ddb *DrawDB) CountDraws(ctx context.Context) (int, error) {
	var count int
	err := ddb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM draws`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return count, nil
}

// AllDraws retrieves every stored draw, newest round first.
// Rows that fail validation (hand-edited files, partial writes) are
// skipped rather than failing the whole load.
func (ddb *DrawDB) AllDraws(ctx context.Context) ([]model.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws ORDER BY draw_no DESC`

	rows, err := ddb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query draws: %w", err)
	}
	defer rows.Close()

	var draws []model.Draw
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		if err := draw.Validate(); err != nil {
			continue // Skip malformed rows
		}
		draws = append(draws, *draw)
	}

	return draws, rows.Err()
}

// RecentDraws retrieves the newest limit draws, newest round first.
func (ddb *DrawDB) RecentDraws(ctx context.Context, limit int) ([]model.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws ORDER BY draw_no DESC LIMIT ?`

	rows, err := ddb.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent draws: %w", err)
	}
	defer rows.Close()

	var draws []model.Draw
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		if err := draw.Validate(); err != nil {
			continue // Skip malformed rows
		}
		draws = append(draws, *draw)
	}

	return draws, rows.Err()
}

// DrawRange retrieves the draws with rounds in [from, to], oldest first.
// Exports use the ascending order so files read chronologically.
func (ddb *DrawDB) DrawRange(ctx context.Context, from, to int) ([]model.Draw, error) {
	query := `SELECT ` + drawColumns + ` FROM draws WHERE draw_no BETWEEN ? AND ? ORDER BY draw_no ASC`

	rows, err := ddb.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw range: %w", err)
	}
	defer rows.Close()

	var draws []model.Draw
	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw: %w", err)
		}
		if err := draw.Validate(); err != nil {
			continue // Skip malformed rows
		}
		draws = append(draws, *draw)
	}

	return draws, rows.Err()
}

// MissingDraws returns the round numbers absent between round 1 and the
// newest stored round. An unbroken store returns an empty slice.
func (ddb *DrawDB) MissingDraws(ctx context.Context) ([]int, error) {
	rows, err := ddb.db.QueryContext(ctx, `SELECT draw_no FROM draws ORDER BY draw_no ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query draw numbers: %w", err)
	}
	defer rows.Close()

	missing := make([]int, 0)
	next := 1
	for rows.Next() {
		var drawNo int
		if err := rows.Scan(&drawNo); err != nil {
			return nil, fmt.Errorf("failed to scan draw number: %w", err)
		}
		for ; next < drawNo; next++ {
			missing = append(missing, next)
		}
		next = drawNo + 1
	}

	return missing, rows.Err()
}

// AuditRows walks every stored row and reports how many fail draw
// validation. Invalid rows come from hand-edited files or partial
// writes; the verify command surfaces them so users can re-sync.
func (ddb *DrawDB) AuditRows(ctx context.Context) (total, invalid int, err error) {
	rows, err := ddb.db.QueryContext(ctx, `SELECT `+drawColumns+` FROM draws ORDER BY draw_no ASC`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to query draws for audit: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		draw, err := scanDraw(rows)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to scan draw: %w", err)
		}
		total++
		if err := draw.Validate(); err != nil {
			invalid++
		}
	}

	return total, invalid, rows.Err()
}
