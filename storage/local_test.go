package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"factcheck-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	id := uuid.New()
	path, err := store.Put(context.Background(), id, models.ReportFormatJSON, strings.NewReader(`[{"id": 1}]`))
	require.NoError(t, err)

	assert.Contains(t, path, id.String())
	assert.True(t, strings.HasSuffix(path, ".json"))

	reader, err := store.Get(context.Background(), path)
	require.NoError(t, err)
	defer reader.Close()

	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, `[{"id": 1}]`, string(body))
}

func TestLocalStorageDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path, err := store.Put(context.Background(), uuid.New(), models.ReportFormatCSV, strings.NewReader("id,claim\n"))
	require.NoError(t, err)

	require.NoError(t, store.Delete(context.Background(), path))

	_, err = store.Get(context.Background(), path)
	require.Error(t, err)

	// Deleting a missing file is not an error
	assert.NoError(t, store.Delete(context.Background(), path))
}

func TestLocalStorageGetMissing(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "reports/2026/01/nope.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
