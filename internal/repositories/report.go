package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/shared"
)

// ReportRepository persists analysis reports and their tag rows.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository with the given database connection
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a report and its tag rows in one transaction, filling in
// the report's ID, sequence, and creation time.
func (r *ReportRepository) Create(report *models.Report) error {
	sequence, err := NextSequence(r.db, "reports")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	report.ID = shared.GenerateID()
	report.Sequence = sequence
	report.CreatedAt = time.Now().UTC()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO reports (id, sequence, channel_title, video_count, tag_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, report.ID, report.Sequence, report.ChannelTitle, report.VideoCount, report.TagCount, report.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	for position, tag := range report.Tags {
		videoIDs, err := json.Marshal(tag.VideoIDs)
		if err != nil {
			return fmt.Errorf("failed to encode video IDs: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO report_tags (id, report_id, tag, count, position, video_ids)
			VALUES (?, ?, ?, ?, ?, ?)
		`, shared.GenerateID(), report.ID, tag.Tag, tag.Count, position, string(videoIDs))
		if err != nil {
			return fmt.Errorf("failed to insert report tag: %w", err)
		}
	}

	return tx.Commit()
}

// Get retrieves a report with its tag rows in aggregation order.
func (r *ReportRepository) Get(id string) (*models.Report, error) {
	row := r.db.QueryRow(`
		SELECT id, sequence, channel_title, video_count, tag_count, created_at
		FROM reports
		WHERE id = ?
	`, id)

	report, err := scanReport(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report not found: %s", id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(`
		SELECT tag, count, video_ids
		FROM report_tags
		WHERE report_id = ?
		ORDER BY position ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query report tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			tag      models.TagCount
			videoIDs string
		)
		if err := rows.Scan(&tag.Tag, &tag.Count, &videoIDs); err != nil {
			return nil, fmt.Errorf("failed to scan report tag: %w", err)
		}
		if err := json.Unmarshal([]byte(videoIDs), &tag.VideoIDs); err != nil {
			return nil, fmt.Errorf("failed to decode video IDs: %w", err)
		}
		report.Tags = append(report.Tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return report, nil
}

// GetBySequence retrieves a report by its human-readable sequence number.
func (r *ReportRepository) GetBySequence(sequence int64) (*models.Report, error) {
	var id string
	err := r.db.QueryRow("SELECT id FROM reports WHERE sequence = ?", sequence).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("report not found: #%d", sequence)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up report: %w", err)
	}
	return r.Get(id)
}

// List retrieves report summaries (without tag rows), newest first.
func (r *ReportRepository) List() ([]*models.Report, error) {
	rows, err := r.db.Query(`
		SELECT id, sequence, channel_title, video_count, tag_count, created_at
		FROM reports
		ORDER BY sequence DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		report, err := scanReport(rows.Scan)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return reports, nil
}

// Delete removes a report and its tag rows.
func (r *ReportRepository) Delete(id string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Cascade deletes are not guaranteed without foreign_keys pragma
	if _, err := tx.Exec("DELETE FROM report_tags WHERE report_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete report tags: %w", err)
	}

	result, err := tx.Exec("DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("report not found: %s", id)
	}

	return tx.Commit()
}

// scanReport scans the shared report columns from a row or rows scan function.
func scanReport(scan func(dest ...any) error) (*models.Report, error) {
	var report models.Report
	err := scan(&report.ID, &report.Sequence, &report.ChannelTitle, &report.VideoCount, &report.TagCount, &report.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan report: %w", err)
	}
	return &report, nil
}
