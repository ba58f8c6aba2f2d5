package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"factcheck-backend/models"
	"factcheck-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReportStore struct {
	reports map[uuid.UUID]*models.Report
}

func (s *stubReportStore) Create(ctx context.Context, report *models.Report) error {
	report.CreatedAt = time.Now().UTC()
	s.reports[report.ID] = report
	return nil
}

func (s *stubReportStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report, ok := s.reports[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return report, nil
}

type stubFileStore struct {
	files map[string][]byte
}

func (s *stubFileStore) Put(ctx context.Context, reportID uuid.UUID, format models.ReportFormat, data io.Reader) (string, error) {
	body, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	path := "reports/" + reportID.String() + "." + string(format)
	s.files[path] = body
	return path, nil
}

func (s *stubFileStore) Get(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	body, ok := s.files[storagePath]
	if !ok {
		return nil, errors.New("not found")
	}
	return io.NopCloser(strings.NewReader(string(body))), nil
}

func (s *stubFileStore) Delete(ctx context.Context, storagePath string) error {
	delete(s.files, storagePath)
	return nil
}

func newExportRouter(store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	exports := service.NewExportService(
		service.WithExportClaimStore(store),
		service.WithReportStore(&stubReportStore{reports: make(map[uuid.UUID]*models.Report)}),
		service.WithReportStorage(&stubFileStore{files: make(map[string][]byte)}),
	)
	handler := NewExportHandler(exports)

	r := gin.New()
	r.POST("/export", handler.Export)
	r.GET("/export/:id", handler.GetExport)
	r.GET("/export/:id/file", handler.DownloadExport)
	return r
}

func seedStubStore(store *stubStore, n int) {
	for i := 0; i < n; i++ {
		claim, _ := store.CreatePending(context.Background(), "A settled claim about something", nil)
		claim.Status = models.ClaimStatusCompleted
		claim.Verdict = models.VerdictTrue
	}
}

func TestExportEndpoint(t *testing.T) {
	store := &stubStore{}
	seedStubStore(store, 2)
	r := newExportRouter(store)

	w := doRequest(r, http.MethodPost, "/export", `{"format": "json"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var report models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, models.ReportFormatJSON, report.Format)
	assert.Equal(t, 2, report.RecordCount)
	assert.NotEmpty(t, report.StoragePath)
}

func TestExportEndpointBadFormat(t *testing.T) {
	r := newExportRouter(&stubStore{})

	w := doRequest(r, http.MethodPost, "/export", `{"format": "xml"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestDownloadExportEndpoint(t *testing.T) {
	store := &stubStore{}
	seedStubStore(store, 1)
	r := newExportRouter(store)

	w := doRequest(r, http.MethodPost, "/export", `{"format": "csv"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var report models.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))

	dl := doRequest(r, http.MethodGet, "/export/"+report.ID.String()+"/file", "")
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "text/csv", dl.Header().Get("Content-Type"))
	assert.Contains(t, dl.Header().Get("Content-Disposition"), report.ID.String())
	assert.Contains(t, dl.Body.String(), "A settled claim about something")
}

func TestDownloadExportMissing(t *testing.T) {
	r := newExportRouter(&stubStore{})

	w := doRequest(r, http.MethodGet, "/export/"+uuid.NewString()+"/file", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadExportBadID(t *testing.T) {
	r := newExportRouter(&stubStore{})

	w := doRequest(r, http.MethodGet, "/export/not-a-uuid/file", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
