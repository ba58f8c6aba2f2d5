package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"factcheck-backend/models"

	"github.com/google/uuid"
)

// Storage is the backend for exported report files
type Storage interface {
	// Put stores a report file and returns the storage path
	Put(ctx context.Context, reportID uuid.UUID, format models.ReportFormat, data io.Reader) (string, error)

	// Get retrieves a report file by storage path
	Get(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes a report file by storage path
	Delete(ctx context.Context, storagePath string) error
}

// BackendType represents the storage backend type
type BackendType string

const (
	BackendLocal BackendType = "local"
	BackendS3    BackendType = "s3"
)

// Config holds configuration for report storage
type Config struct {
	Type         BackendType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// New creates a storage instance based on configuration
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case BackendLocal:
		return NewLocalStorage(cfg.LocalPath)
	case BackendS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewFromEnv creates a storage instance from environment variables
func NewFromEnv() (Storage, error) {
	backendType := os.Getenv("STORAGE_TYPE")
	if backendType == "" {
		backendType = "local" // Default to local for development
	}

	switch BackendType(backendType) {
	case BackendLocal:
		localPath := os.Getenv("STORAGE_LOCAL_PATH")
		if localPath == "" {
			localPath = "./storage/reports"
		}
		return NewLocalStorage(localPath)

	case BackendS3:
		cfg := Config{
			Type:         BackendS3,
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     os.Getenv("AWS_REGION"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1" // Default region
		}
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Storage(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", backendType)
	}
}

// storagePath generates a unique storage path for a report file.
// Reports are partitioned by month so listings stay manageable.
func storagePath(reportID uuid.UUID, format models.ReportFormat) string {
	now := time.Now().UTC()
	return fmt.Sprintf("reports/%04d/%02d/%s.%s", now.Year(), now.Month(), reportID, format)
}

// contentType returns the MIME type for a report format
func contentType(format models.ReportFormat) string {
	switch format {
	case models.ReportFormatCSV:
		return "text/csv"
	default:
		return "application/json"
	}
}
