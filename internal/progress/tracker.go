// Package progress records per-report import runs in the CTD database so a
// populate run can be inspected and partially-imported reports detected.
package progress

import (
	"database/sql"
	"fmt"
	"time"
)

// State represents the state of a report import
type State string

const (
	StateDownloading State = "downloading"
	StateImporting   State = "importing"
	StateCompleted   State = "completed"
	StateFailed      State = "failed"
)

// Import represents one import run of a single CTD report
type Import struct {
	ID           int64      `json:"id"`
	Report       string     `json:"report"`
	FileName     string     `json:"file_name"`
	FileSize     int64      `json:"file_size"`
	Records      int64      `json:"records"`
	Skipped      int64      `json:"skipped"`
	State        State      `json:"state"`
	StartedAt    time.Time  `json:"started_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
}

// Statistics summarizes a completed or running populate
type Statistics struct {
	Reports          int           `json:"reports"`
	Completed        int           `json:"completed"`
	Failed           int           `json:"failed"`
	Records          int64         `json:"records"`
	Duration         time.Duration `json:"duration"`
	RecordsPerSecond float64       `json:"records_per_second"`
}

// Tracker manages import progress records inside the CTD database
type Tracker struct {
	db *sql.DB
}

// NewTracker creates a progress tracker and its backing table
func NewTracker(db *sql.DB) (*Tracker, error) {
	t := &Tracker{db: db}
	if err := t.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create progress tables: %w", err)
	}
	return t, nil
}

func (t *Tracker) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS import_progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			report TEXT UNIQUE NOT NULL,
			file_name TEXT NOT NULL,
			file_size INTEGER DEFAULT 0,
			records INTEGER DEFAULT 0,
			skipped INTEGER DEFAULT 0,
			state TEXT DEFAULT 'downloading',
			started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			completed_at TIMESTAMP,
			error_message TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_import_progress_report ON import_progress(report)`,
	}

	for _, query := range queries {
		if _, err := t.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Start records the beginning of an import run for a report, replacing any
// earlier run for the same report.
func (t *Tracker) Start(report, fileName string, fileSize int64) error {
	query := `INSERT INTO import_progress
			  (report, file_name, file_size, records, skipped, state, started_at, updated_at, completed_at, error_message)
			  VALUES (?, ?, ?, 0, 0, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP, NULL, '')
			  ON CONFLICT(report) DO UPDATE SET
				  file_name = excluded.file_name,
				  file_size = excluded.file_size,
				  records = 0, skipped = 0, state = excluded.state,
				  started_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP,
				  completed_at = NULL, error_message = ''`

	_, err := t.db.Exec(query, report, fileName, fileSize, StateImporting)
	return err
}

// Update records the running record count for a report import
func (t *Tracker) Update(report string, records, skipped int64) error {
	query := `UPDATE import_progress
			  SET records = ?, skipped = ?, updated_at = CURRENT_TIMESTAMP
			  WHERE report = ?`

	_, err := t.db.Exec(query, records, skipped, report)
	return err
}

// Complete marks a report import as finished
func (t *Tracker) Complete(report string, records, skipped int64) error {
	query := `UPDATE import_progress
			  SET records = ?, skipped = ?, state = ?,
			      completed_at = CURRENT_TIMESTAMP, updated_at = CURRENT_TIMESTAMP
			  WHERE report = ?`

	_, err := t.db.Exec(query, records, skipped, StateCompleted, report)
	return err
}

// Fail marks a report import as failed
func (t *Tracker) Fail(report, errorMsg string) error {
	query := `UPDATE import_progress
			  SET state = ?, error_message = ?, updated_at = CURRENT_TIMESTAMP
			  WHERE report = ?`

	_, err := t.db.Exec(query, StateFailed, errorMsg, report)
	return err
}

// Get retrieves the import record for a report, or nil when the report has
// never been imported.
func (t *Tracker) Get(report string) (*Import, error) {
	var imp Import
	query := `SELECT id, report, file_name, file_size, records, skipped, state,
			  started_at, updated_at, completed_at, error_message
			  FROM import_progress WHERE report = ?`

	var completedAt sql.NullTime
	var errorMessage sql.NullString
	err := t.db.QueryRow(query, report).Scan(
		&imp.ID, &imp.Report, &imp.FileName, &imp.FileSize, &imp.Records,
		&imp.Skipped, &imp.State, &imp.StartedAt, &imp.UpdatedAt,
		&completedAt, &errorMessage,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		imp.CompletedAt = &completedAt.Time
	}
	imp.ErrorMessage = errorMessage.String

	return &imp, nil
}

// List returns all import records ordered by report name
func (t *Tracker) List() ([]*Import, error) {
	query := `SELECT id, report, file_name, file_size, records, skipped, state,
			  started_at, updated_at, completed_at, error_message
			  FROM import_progress ORDER BY report`

	rows, err := t.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var imports []*Import
	for rows.Next() {
		var imp Import
		var completedAt sql.NullTime
		var errorMessage sql.NullString
		if err := rows.Scan(
			&imp.ID, &imp.Report, &imp.FileName, &imp.FileSize, &imp.Records,
			&imp.Skipped, &imp.State, &imp.StartedAt, &imp.UpdatedAt,
			&completedAt, &errorMessage,
		); err != nil {
			return nil, err
		}
		if completedAt.Valid {
			imp.CompletedAt = &completedAt.Time
		}
		imp.ErrorMessage = errorMessage.String
		imports = append(imports, &imp)
	}

	return imports, rows.Err()
}

// GetStatistics aggregates the import records into populate-level statistics
func (t *Tracker) GetStatistics() (*Statistics, error) {
	imports, err := t.List()
	if err != nil {
		return nil, err
	}

	var stats Statistics
	var earliest, latest time.Time
	for _, imp := range imports {
		stats.Reports++
		stats.Records += imp.Records
		switch imp.State {
		case StateCompleted:
			stats.Completed++
		case StateFailed:
			stats.Failed++
		}
		if earliest.IsZero() || imp.StartedAt.Before(earliest) {
			earliest = imp.StartedAt
		}
		if imp.UpdatedAt.After(latest) {
			latest = imp.UpdatedAt
		}
	}

	if !earliest.IsZero() {
		stats.Duration = latest.Sub(earliest)
	}
	if stats.Duration.Seconds() > 0 {
		stats.RecordsPerSecond = float64(stats.Records) / stats.Duration.Seconds()
	}

	return &stats, nil
}

// Clear removes all import records. Called when the database is dropped.
func (t *Tracker) Clear() error {
	_, err := t.db.Exec(`DELETE FROM import_progress`)
	return err
}
