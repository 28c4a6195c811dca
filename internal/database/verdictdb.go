package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/factcheck/internal/document"
	"github.com/nao1215/factcheck/internal/model"
)

// FileName is the name of the database file inside the data directory.
const FileName = "factcheck.db"

// VerdictDB provides SQLite-based storage for check reports and the
// documents they were computed from.
type VerdictDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures VerdictDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a VerdictDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is
// returned and nothing is created.
func Open(dbDir string, opts Options) (*VerdictDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	vdb := &VerdictDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := vdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return vdb, nil
}

// Close closes the database connection.
func (vdb *VerdictDB) Close() error {
	return vdb.db.Close()
}

// Path returns the path of the database file.
func (vdb *VerdictDB) Path() string {
	return vdb.dbPath
}

func (vdb *VerdictDB) createTables() error {
	schema := `
	-- Documents are stored once per content fingerprint
	CREATE TABLE IF NOT EXISTS documents (
		fingerprint TEXT PRIMARY KEY,
		website_name TEXT NOT NULL,
		document_json TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_website ON documents(website_name);

	-- Check reports store complete check results as JSON
	CREATE TABLE IF NOT EXISTS check_reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		website_name TEXT NOT NULL,
		fingerprint TEXT,
		verdict TEXT NOT NULL,
		statistics_total INTEGER DEFAULT 0,
		statistics_matched INTEGER DEFAULT 0,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_reports_website ON check_reports(website_name);
	CREATE INDEX IF NOT EXISTS idx_reports_fingerprint ON check_reports(fingerprint);
	`

	_, err := vdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveDocument stores info under its fingerprint and returns the
// fingerprint. Saving the same content twice is a no-op.
func (vdb *VerdictDB) SaveDocument(ctx context.Context, info *model.Information) (string, error) {
	fingerprint, err := document.Fingerprint(info)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint document: %w", err)
	}

	docJSON, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}

	query := `
	INSERT INTO documents (fingerprint, website_name, document_json)
	VALUES (?, ?, ?)
	ON CONFLICT(fingerprint) DO NOTHING
	`
	if _, err := vdb.db.ExecContext(ctx, query, fingerprint, info.WebsiteName, string(docJSON)); err != nil {
		return "", fmt.Errorf("failed to save document: %w", err)
	}
	return fingerprint, nil
}

// GetDocument retrieves a stored document by fingerprint.
// Returns nil, nil if no document has that fingerprint.
func (vdb *VerdictDB) GetDocument(ctx context.Context, fingerprint string) (*model.Information, error) {
	var docJSON string
	err := vdb.db.QueryRowContext(ctx,
		`SELECT document_json FROM documents WHERE fingerprint = ?`,
		fingerprint,
	).Scan(&docJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	var info model.Information
	if err := json.Unmarshal([]byte(docJSON), &info); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return &info, nil
}

// SaveCheckReport stores a check report. fingerprint identifies the checked
// document and may be empty. It returns the ID of the stored report.
func (vdb *VerdictDB) SaveCheckReport(ctx context.Context, report *model.CheckReport, fingerprint string) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	matched := 0
	for _, stat := range report.Statistics {
		if stat.Matched {
			matched++
		}
	}

	query := `
	INSERT INTO check_reports (website_name, fingerprint, verdict, statistics_total, statistics_matched, report_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := vdb.db.ExecContext(ctx, query,
		report.WebsiteName,
		sql.NullString{String: fingerprint, Valid: fingerprint != ""},
		report.Verdict.String(),
		len(report.Statistics),
		matched,
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save check report: %w", err)
	}
	return result.LastInsertId()
}

// GetLatestCheckReport retrieves the most recent check report for a website.
// Returns nil, nil if the website was never checked.
func (vdb *VerdictDB) GetLatestCheckReport(ctx context.Context, website string) (*model.CheckReport, error) {
	query := `
	SELECT report_json FROM check_reports
	WHERE website_name = ?
	ORDER BY id DESC
	LIMIT 1
	`

	var reportJSON string
	err := vdb.db.QueryRowContext(ctx, query, website).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check report: %w", err)
	}
	return decodeReport(reportJSON)
}

// GetCheckReportByID retrieves a check report by its database ID.
// Returns nil, nil if there is no such report.
func (vdb *VerdictDB) GetCheckReportByID(ctx context.Context, id int64) (*model.CheckReport, error) {
	var reportJSON string
	err := vdb.db.QueryRowContext(ctx,
		`SELECT report_json FROM check_reports WHERE id = ?`,
		id,
	).Scan(&reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get check report: %w", err)
	}
	return decodeReport(reportJSON)
}

// ListCheckedWebsites returns the names of all checked websites, sorted.
func (vdb *VerdictDB) ListCheckedWebsites(ctx context.Context) ([]string, error) {
	rows, err := vdb.db.QueryContext(ctx, `
	SELECT DISTINCT website_name FROM check_reports
	ORDER BY website_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list websites: %w", err)
	}
	defer rows.Close()

	var websites []string
	for rows.Next() {
		var website string
		if err := rows.Scan(&website); err != nil {
			return nil, fmt.Errorf("failed to scan website: %w", err)
		}
		websites = append(websites, website)
	}
	return websites, rows.Err()
}

// CheckReportMetadata summarizes a stored check report without loading it.
type CheckReportMetadata struct {
	ID                int64
	WebsiteName       string
	Fingerprint       string
	Verdict           model.Verdict
	StatisticsTotal   int
	StatisticsMatched int
	Timestamp         time.Time
}

// GetCheckHistoryWithMetadata retrieves report metadata for a website,
// newest first.
func (vdb *VerdictDB) GetCheckHistoryWithMetadata(ctx context.Context, website string) ([]CheckReportMetadata, error) {
	query := `
	SELECT id, website_name, fingerprint, verdict, statistics_total, statistics_matched, timestamp
	FROM check_reports
	WHERE website_name = ?
	ORDER BY id DESC
	`

	rows, err := vdb.db.QueryContext(ctx, query, website)
	if err != nil {
		return nil, fmt.Errorf("failed to get check history: %w", err)
	}
	defer rows.Close()

	var results []CheckReportMetadata
	for rows.Next() {
		meta, err := scanMetadata(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, meta)
	}
	return results, rows.Err()
}

// GetCheckReportMetadata retrieves the metadata of one stored report.
// Returns nil, nil if there is no such report.
func (vdb *VerdictDB) GetCheckReportMetadata(ctx context.Context, id int64) (*CheckReportMetadata, error) {
	row := vdb.db.QueryRowContext(ctx, `
	SELECT id, website_name, fingerprint, verdict, statistics_total, statistics_matched, timestamp
	FROM check_reports
	WHERE id = ?
	`, id)

	meta, err := scanMetadata(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMetadata(row rowScanner) (CheckReportMetadata, error) {
	var meta CheckReportMetadata
	var fingerprint sql.NullString
	var verdict, timestamp string

	if err := row.Scan(
		&meta.ID,
		&meta.WebsiteName,
		&fingerprint,
		&verdict,
		&meta.StatisticsTotal,
		&meta.StatisticsMatched,
		&timestamp,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return meta, err
		}
		return meta, fmt.Errorf("failed to scan metadata: %w", err)
	}

	meta.Fingerprint = fingerprint.String
	if v, err := model.ParseVerdict(verdict); err == nil {
		meta.Verdict = v
	}
	meta.Timestamp = parseTimestamp(timestamp)
	return meta, nil
}

func decodeReport(reportJSON string) (*model.CheckReport, error) {
	var report model.CheckReport
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	if report.ErrorMessage != "" {
		report.Error = errors.New(report.ErrorMessage)
		if report.Verdict == model.VerdictNoRelevantSources {
			report.Error = model.ErrNoRelevantSources
		}
	}
	return &report, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// More specific formats come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999",
}

// parseTimestamp parses a SQLite timestamp, returning the zero time when no
// known format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
