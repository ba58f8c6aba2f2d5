package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportFormat represents the serialization format of an exported report
type ReportFormat string

const (
	ReportFormatJSON ReportFormat = "json"
	ReportFormatCSV  ReportFormat = "csv"
)

// Report represents an exported claim-history report file
type Report struct {
	ID          uuid.UUID    `json:"id"`
	Format      ReportFormat `json:"format"`
	RecordCount int          `json:"record_count"`
	StoragePath string       `json:"storage_path"`
	CreatedAt   time.Time    `json:"created_at"`
}
