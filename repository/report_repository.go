package repository

import (
	"context"

	"factcheck-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository handles database operations for exported reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create records an exported report file
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (id, format, record_count, storage_path)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	return r.db.QueryRow(
		ctx, query,
		report.ID,
		report.Format,
		report.RecordCount,
		report.StoragePath,
	).Scan(&report.CreatedAt)
}

// GetByID retrieves a report by ID
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report := &models.Report{}
	query := `
		SELECT id, format, record_count, storage_path, created_at
		FROM reports
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.Format,
		&report.RecordCount,
		&report.StoragePath,
		&report.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return report, nil
}
