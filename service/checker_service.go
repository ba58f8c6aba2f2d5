package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"factcheck-backend/llm"
	"factcheck-backend/models"
	"factcheck-backend/preprocess"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	minClaimLength = 10
	maxClaimLength = 500

	defaultHistoryLimit = 50
	maxHistoryLimit     = 200
	defaultSearchLimit  = 20
	maxSearchLimit      = 100

	preprocessTimeout = 10 * time.Second
	probeTimeout      = 3 * time.Second

	statsCacheKey = "stats"
	statsCacheTTL = 30 * time.Second
)

// ClaimStore is the persistence interface the checker depends on
type ClaimStore interface {
	CreatePending(ctx context.Context, claimText string, sessionID *string) (*models.Claim, error)
	Complete(ctx context.Context, id int64, verdict models.Verdict, confidence float64, explanation string, sources models.StringList, processingTimeMs int) error
	Fail(ctx context.Context, id int64, explanation string, processingTimeMs int) error
	GetByID(ctx context.Context, id int64) (*models.Claim, error)
	List(ctx context.Context, limit, offset int) ([]*models.Claim, error)
	Search(ctx context.Context, query string, limit int) ([]*models.Claim, error)
	Stats(ctx context.Context) (*models.Stats, error)
	Ping(ctx context.Context) error
}

// Preprocessor analyzes claim text ahead of reasoning
type Preprocessor interface {
	Preprocess(ctx context.Context, claim string) (*preprocess.ProcessedClaim, error)
	Check(ctx context.Context) error
}

// CheckerService orchestrates the fact-checking pipeline: validate,
// persist, preprocess, reason, store the verdict.
type CheckerService struct {
	store      ClaimStore
	pre        Preprocessor
	provider   llm.Provider
	logger     *zap.Logger
	statsTTL   time.Duration
	statsCache *gocache.Cache
}

// CheckerServiceOption is a functional option for CheckerService
type CheckerServiceOption func(*CheckerService)

// WithClaimStore sets the claim store
func WithClaimStore(store ClaimStore) CheckerServiceOption {
	return func(s *CheckerService) {
		s.store = store
	}
}

// WithPreprocessor sets the claim preprocessor
func WithPreprocessor(pre Preprocessor) CheckerServiceOption {
	return func(s *CheckerService) {
		s.pre = pre
	}
}

// WithProvider sets the reasoning provider
func WithProvider(provider llm.Provider) CheckerServiceOption {
	return func(s *CheckerService) {
		s.provider = provider
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) CheckerServiceOption {
	return func(s *CheckerService) {
		s.logger = logger
	}
}

// WithStatsTTL overrides the default stats cache TTL
func WithStatsTTL(ttl time.Duration) CheckerServiceOption {
	return func(s *CheckerService) {
		s.statsTTL = ttl
		s.statsCache = gocache.New(ttl, time.Minute)
	}
}

// NewCheckerService creates a new checker service
func NewCheckerService(opts ...CheckerServiceOption) *CheckerService {
	s := &CheckerService{
		logger:     zap.NewNop(),
		statsTTL:   statsCacheTTL,
		statsCache: gocache.New(statsCacheTTL, time.Minute),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CheckFactRequest represents a request to fact-check a claim
type CheckFactRequest struct {
	Claim     string
	SessionID *string
}

// CheckFactResult represents the result of fact-checking a claim
type CheckFactResult struct {
	Claim *models.Claim
}

// CheckFact runs the full pipeline for a single claim. Validation failures
// return before anything is stored. Pipeline failures after the pending
// insert mark the record failed and still surface the error.
func (s *CheckerService) CheckFact(ctx context.Context, req CheckFactRequest) (*CheckFactResult, error) {
	if s.store == nil {
		return nil, errors.New("claim store not set")
	}
	if s.pre == nil {
		return nil, errors.New("preprocessor not set")
	}
	if s.provider == nil {
		return nil, errors.New("reasoning provider not set")
	}

	text := strings.TrimSpace(req.Claim)
	length := utf8.RuneCountInString(text)
	if length < minClaimLength {
		return nil, ErrClaimTooShort
	}
	if length > maxClaimLength {
		return nil, ErrClaimTooLong
	}

	start := time.Now()

	record, err := s.store.CreatePending(ctx, text, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("claim accepted",
		zap.Int64("claim_id", record.ID),
		zap.Int("length", length))

	preCtx, cancel := context.WithTimeout(ctx, preprocessTimeout)
	processed, err := s.pre.Preprocess(preCtx, text)
	cancel()
	if err != nil {
		s.failClaim(ctx, record, start, fmt.Sprintf("Preprocessing failed: %v", err))
		return nil, fmt.Errorf("%w: %v", ErrPreprocessFailed, err)
	}

	vctx := preprocess.BuildContext(processed)

	analysis, err := s.provider.Analyze(ctx, llm.AnalyzeRequest{
		Claim:   text,
		Context: vctx,
	})
	if err != nil {
		s.failClaim(ctx, record, start, fmt.Sprintf("Analysis failed: %v", err))
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	elapsed := int(time.Since(start).Milliseconds())
	explanation := formatExplanation(analysis)
	sources := models.StringList(analysis.SourcesNeeded)

	if err := s.store.Complete(ctx, record.ID, analysis.Verdict, analysis.ConfidenceScore, explanation, sources, elapsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	record.Status = models.ClaimStatusCompleted
	record.Verdict = analysis.Verdict
	record.ConfidenceScore = analysis.ConfidenceScore
	record.Explanation = explanation
	record.Sources = sources
	record.ProcessingTimeMs = &elapsed

	s.statsCache.Delete(statsCacheKey)

	s.logger.Info("claim checked",
		zap.Int64("claim_id", record.ID),
		zap.String("verdict", string(record.Verdict)),
		zap.Float64("confidence", record.ConfidenceScore),
		zap.Int("processing_time_ms", elapsed))

	return &CheckFactResult{Claim: record}, nil
}

// failClaim marks a pending record failed. Best effort: a store error here
// is logged but not surfaced, since the caller already has a pipeline
// error to report.
func (s *CheckerService) failClaim(ctx context.Context, record *models.Claim, start time.Time, explanation string) {
	elapsed := int(time.Since(start).Milliseconds())
	if err := s.store.Fail(ctx, record.ID, explanation, elapsed); err != nil {
		s.logger.Error("failed to mark claim failed",
			zap.Int64("claim_id", record.ID),
			zap.Error(err))
		return
	}
	record.Status = models.ClaimStatusFailed
	record.Verdict = models.VerdictUnverified
	record.ConfidenceScore = 0
	record.Explanation = explanation
	record.ProcessingTimeMs = &elapsed
	s.statsCache.Delete(statsCacheKey)
}

// formatExplanation flattens the structured analysis into the explanation
// text stored with the record.
func formatExplanation(analysis *llm.Analysis) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(analysis.Explanation))

	if len(analysis.KeyEvidence) > 0 {
		b.WriteString("\n\nKey evidence:")
		for _, item := range analysis.KeyEvidence {
			b.WriteString("\n- ")
			b.WriteString(item)
		}
	}
	if len(analysis.Caveats) > 0 {
		b.WriteString("\n\nCaveats:")
		for _, item := range analysis.Caveats {
			b.WriteString("\n- ")
			b.WriteString(item)
		}
	}

	return b.String()
}

// HistoryRequest represents a request for recent claims
type HistoryRequest struct {
	Limit  int
	Offset int
}

// HistoryResult represents a page of recent claims
type HistoryResult struct {
	Entries []models.HistoryEntry
	Limit   int
	Offset  int
}

// History returns processed claims newest-first with truncated explanations
func (s *CheckerService) History(ctx context.Context, req HistoryRequest) (*HistoryResult, error) {
	if s.store == nil {
		return nil, errors.New("claim store not set")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	claims, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	entries := make([]models.HistoryEntry, 0, len(claims))
	for _, claim := range claims {
		entries = append(entries, claim.HistoryView())
	}

	return &HistoryResult{Entries: entries, Limit: limit, Offset: offset}, nil
}

// SearchRequest represents a substring search over stored claims
type SearchRequest struct {
	Query string
	Limit int
}

// SearchResult represents matching claims newest-first
type SearchResult struct {
	Entries []models.HistoryEntry
	Query   string
}

// Search returns processed claims whose text contains the query
func (s *CheckerService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if s.store == nil {
		return nil, errors.New("claim store not set")
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	claims, err := s.store.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	entries := make([]models.HistoryEntry, 0, len(claims))
	for _, claim := range claims {
		entries = append(entries, claim.HistoryView())
	}

	return &SearchResult{Entries: entries, Query: query}, nil
}

// Stats returns aggregate statistics, cached briefly to keep the endpoint
// cheap under polling. The cache is invalidated whenever a claim finishes.
func (s *CheckerService) Stats(ctx context.Context) (*models.Stats, error) {
	if s.store == nil {
		return nil, errors.New("claim store not set")
	}

	if cached, ok := s.statsCache.Get(statsCacheKey); ok {
		return cached.(*models.Stats), nil
	}

	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	s.statsCache.Set(statsCacheKey, stats, s.statsTTL)
	return stats, nil
}

// Service health values
const (
	ServiceHealthy     = "healthy"
	ServiceUnavailable = "unavailable"
)

// Health service keys: database, pathway (preprocessing collaborator),
// llama (reasoning collaborator)
const (
	ServiceDatabase = "database"
	ServicePathway  = "pathway"
	ServiceLlama    = "llama"
)

// HealthResult reports overall and per-service status
type HealthResult struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health probes each collaborator with a short timeout. The database is
// load-bearing: if it is down the service is unhealthy. A missing
// preprocessor or reasoning provider only degrades the service.
func (s *CheckerService) Health(ctx context.Context) *HealthResult {
	result := &HealthResult{
		Status:    "healthy",
		Services:  make(map[string]string),
		Timestamp: time.Now().UTC(),
	}

	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	result.Services[ServiceDatabase] = ServiceHealthy
	if s.store == nil || s.store.Ping(probeCtx) != nil {
		result.Services[ServiceDatabase] = ServiceUnavailable
		result.Status = "unhealthy"
	}

	result.Services[ServicePathway] = ServiceHealthy
	if s.pre == nil || s.pre.Check(probeCtx) != nil {
		result.Services[ServicePathway] = ServiceUnavailable
		if result.Status == "healthy" {
			result.Status = "degraded"
		}
	}

	result.Services[ServiceLlama] = ServiceHealthy
	if s.provider == nil || !s.provider.IsAvailable(probeCtx) {
		result.Services[ServiceLlama] = ServiceUnavailable
		if result.Status == "healthy" {
			result.Status = "degraded"
		}
	}

	return result
}
