package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"factcheck-backend/models"
	"factcheck-backend/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	defaultExportLimit = 500
	maxExportLimit     = 5000
)

// ReportStore is the persistence interface for export metadata
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
}

// ExportService writes claim-history report files to storage
type ExportService struct {
	store   ClaimStore
	reports ReportStore
	files   storage.Storage
	logger  *zap.Logger
}

// ExportServiceOption is a functional option for ExportService
type ExportServiceOption func(*ExportService)

// WithExportClaimStore sets the claim store
func WithExportClaimStore(store ClaimStore) ExportServiceOption {
	return func(s *ExportService) {
		s.store = store
	}
}

// WithReportStore sets the report metadata store
func WithReportStore(reports ReportStore) ExportServiceOption {
	return func(s *ExportService) {
		s.reports = reports
	}
}

// WithReportStorage sets the report file storage backend
func WithReportStorage(files storage.Storage) ExportServiceOption {
	return func(s *ExportService) {
		s.files = files
	}
}

// WithExportLogger sets the logger
func WithExportLogger(logger *zap.Logger) ExportServiceOption {
	return func(s *ExportService) {
		s.logger = logger
	}
}

// NewExportService creates a new export service
func NewExportService(opts ...ExportServiceOption) *ExportService {
	s := &ExportService{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExportRequest represents a request to export claim history
type ExportRequest struct {
	Format models.ReportFormat
	Limit  int
}

// ExportResult represents a completed export
type ExportResult struct {
	Report *models.Report
}

// Export serializes the most recent processed claims into a report file,
// stores it, and records the report metadata.
func (s *ExportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if s.store == nil {
		return nil, errors.New("claim store not set")
	}
	if s.reports == nil {
		return nil, errors.New("report store not set")
	}
	if s.files == nil {
		return nil, errors.New("report storage not set")
	}

	format := req.Format
	if format == "" {
		format = models.ReportFormatJSON
	}
	if format != models.ReportFormatJSON && format != models.ReportFormatCSV {
		return nil, fmt.Errorf("%w: %s", ErrBadFormat, req.Format)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultExportLimit
	}
	if limit > maxExportLimit {
		limit = maxExportLimit
	}

	claims, err := s.store.List(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var body bytes.Buffer
	switch format {
	case models.ReportFormatCSV:
		err = writeCSV(&body, claims)
	default:
		err = writeJSON(&body, claims)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %w", err)
	}

	report := &models.Report{
		ID:          uuid.New(),
		Format:      format,
		RecordCount: len(claims),
	}

	path, err := s.files.Put(ctx, report.ID, format, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to store report file: %w", err)
	}
	report.StoragePath = path

	if err := s.reports.Create(ctx, report); err != nil {
		// Orphaned file, not worth failing the request over
		if cleanupErr := s.files.Delete(ctx, path); cleanupErr != nil {
			s.logger.Warn("failed to clean up report file",
				zap.String("path", path),
				zap.Error(cleanupErr))
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("report exported",
		zap.String("report_id", report.ID.String()),
		zap.String("format", string(format)),
		zap.Int("records", report.RecordCount))

	return &ExportResult{Report: report}, nil
}

// OpenReport retrieves export metadata and opens the stored report file
// for reading. The caller owns the returned reader.
func (s *ExportService) OpenReport(ctx context.Context, id uuid.UUID) (*models.Report, io.ReadCloser, error) {
	if s.files == nil {
		return nil, nil, errors.New("report storage not set")
	}

	report, err := s.GetReport(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.files.Get(ctx, report.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open report file: %w", err)
	}

	return report, reader, nil
}

// GetReport retrieves export metadata by ID
func (s *ExportService) GetReport(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if s.reports == nil {
		return nil, errors.New("report store not set")
	}

	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return report, nil
}

func writeJSON(buf *bytes.Buffer, claims []*models.Claim) error {
	enc := json.NewEncoder(buf)
	enc.SetIndent("", "  ")
	return enc.Encode(claims)
}

func writeCSV(buf *bytes.Buffer, claims []*models.Claim) error {
	w := csv.NewWriter(buf)

	header := []string{"id", "claim", "status", "verdict", "confidence_score", "explanation", "sources", "timestamp"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, c := range claims {
		row := []string{
			strconv.FormatInt(c.ID, 10),
			c.Claim,
			string(c.Status),
			string(c.Verdict),
			strconv.FormatFloat(c.ConfidenceScore, 'f', 2, 64),
			c.Explanation,
			strings.Join(c.Sources, "; "),
			c.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
