package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"factcheck-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaAnalyze(t *testing.T) {
	var gotReq ollamaRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(ollamaResponse{
			Model:    "llama2",
			Response: `{"verdict": "True", "confidence_score": 88, "explanation": "Checks out."}`,
			Done:     true,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{
		BaseURL:     server.URL,
		Model:       "llama2",
		MaxTokens:   800,
		Temperature: 0.2,
	})
	require.NoError(t, err)

	analysis, err := provider.Analyze(context.Background(), AnalyzeRequest{
		Claim: "The Eiffel Tower is in Paris",
	})
	require.NoError(t, err)

	assert.Equal(t, models.VerdictTrue, analysis.Verdict)
	assert.Equal(t, 88.0, analysis.ConfidenceScore)
	assert.Equal(t, "llama2", analysis.Model)

	assert.Equal(t, "llama2", gotReq.Model)
	assert.False(t, gotReq.Stream)
	assert.Contains(t, gotReq.Prompt, "The Eiffel Tower is in Paris")
	assert.Equal(t, 800, gotReq.Options.NumPredict)
}

func TestOllamaAnalyzeRetriesOnServerError(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ollamaError{Error: "model is loading"})
			return
		}
		json.NewEncoder(w).Encode(ollamaResponse{
			Model:    "llama2",
			Response: `{"verdict": "False", "confidence_score": 90, "explanation": "Nope."}`,
			Done:     true,
		})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama2"})
	require.NoError(t, err)

	analysis, err := provider.Analyze(context.Background(), AnalyzeRequest{Claim: "test claim here"})
	require.NoError(t, err)

	assert.Equal(t, 2, attempts)
	assert.Equal(t, models.VerdictFalse, analysis.Verdict)
}

func TestOllamaAnalyzePersistentFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ollamaError{Error: "out of memory"})
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama2"})
	require.NoError(t, err)

	_, err = provider.Analyze(context.Background(), AnalyzeRequest{Claim: "test claim here"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of memory")
}

func TestOllamaAnalyzeRequiresModel(t *testing.T) {
	provider, err := NewOllamaProvider(Config{BaseURL: "http://localhost:11434"})
	require.NoError(t, err)

	_, err = provider.Analyze(context.Background(), AnalyzeRequest{Claim: "test claim here"})
	require.Error(t, err)
}

func TestOllamaIsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models": []}`))
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL})
	require.NoError(t, err)

	assert.True(t, provider.IsAvailable(context.Background()))

	server.Close()
	assert.False(t, provider.IsAvailable(context.Background()))
}

func TestOllamaAnalyzeRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	provider, err := NewOllamaProvider(Config{BaseURL: server.URL, Model: "llama2"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = provider.Analyze(ctx, AnalyzeRequest{Claim: "test claim here"})
	require.Error(t, err)
}
