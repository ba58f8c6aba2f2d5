package repository

import (
	"context"
	"fmt"
	"strings"

	"factcheck-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ClaimRepository handles database operations for claims
type ClaimRepository struct {
	db *pgxpool.Pool
}

// NewClaimRepository creates a new claim repository
func NewClaimRepository(db *pgxpool.Pool) *ClaimRepository {
	return &ClaimRepository{db: db}
}

// CreatePending inserts a new claim record in the pending state
func (r *ClaimRepository) CreatePending(ctx context.Context, claimText string, sessionID *string) (*models.Claim, error) {
	claim := &models.Claim{
		Claim:     claimText,
		Status:    models.ClaimStatusPending,
		Verdict:   models.VerdictUnverified,
		SessionID: sessionID,
	}

	query := `
		INSERT INTO claims (claim, status, verdict, confidence_score, explanation, session_id)
		VALUES ($1, $2, $3, 0, '', $4)
		RETURNING id, timestamp`

	err := r.db.QueryRow(
		ctx, query,
		claim.Claim,
		claim.Status,
		claim.Verdict,
		claim.SessionID,
	).Scan(&claim.ID, &claim.Timestamp)

	if err != nil {
		return nil, err
	}

	return claim, nil
}

// Complete updates a pending claim with its fact-check result
func (r *ClaimRepository) Complete(ctx context.Context, id int64, verdict models.Verdict, confidence float64, explanation string, sources models.StringList, processingTimeMs int) error {
	query := `
		UPDATE claims SET
			status = $2,
			verdict = $3,
			confidence_score = $4,
			explanation = $5,
			sources = $6,
			processing_time_ms = $7
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.ClaimStatusCompleted, verdict, confidence, explanation, sources, processingTimeMs)
	return err
}

// Fail marks a pending claim as failed with an error explanation.
// The verdict is forced to Unverified with zero confidence.
func (r *ClaimRepository) Fail(ctx context.Context, id int64, explanation string, processingTimeMs int) error {
	query := `
		UPDATE claims SET
			status = $2,
			verdict = $3,
			confidence_score = 0,
			explanation = $4,
			processing_time_ms = $5
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.ClaimStatusFailed, models.VerdictUnverified, explanation, processingTimeMs)
	return err
}

const claimColumns = `id, claim, status, verdict, confidence_score, explanation, sources, session_id, processing_time_ms, timestamp`

func scanClaim(row interface{ Scan(...any) error }) (*models.Claim, error) {
	claim := &models.Claim{}
	err := row.Scan(
		&claim.ID,
		&claim.Claim,
		&claim.Status,
		&claim.Verdict,
		&claim.ConfidenceScore,
		&claim.Explanation,
		&claim.Sources,
		&claim.SessionID,
		&claim.ProcessingTimeMs,
		&claim.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return claim, nil
}

// GetByID retrieves a claim by ID
func (r *ClaimRepository) GetByID(ctx context.Context, id int64) (*models.Claim, error) {
	query := fmt.Sprintf(`SELECT %s FROM claims WHERE id = $1`, claimColumns)
	return scanClaim(r.db.QueryRow(ctx, query, id))
}

// List retrieves processed claims ordered newest-first
func (r *ClaimRepository) List(ctx context.Context, limit, offset int) ([]*models.Claim, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM claims
		WHERE status <> $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2 OFFSET $3`, claimColumns)

	rows, err := r.db.Query(ctx, query, models.ClaimStatusPending, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, claim)
	}

	return claims, rows.Err()
}

// likeEscaper neutralizes LIKE metacharacters so user input matches
// literally instead of acting as a pattern
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Search retrieves processed claims whose text contains the query,
// case-insensitively, ordered newest-first
func (r *ClaimRepository) Search(ctx context.Context, query string, limit int) ([]*models.Claim, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM claims
		WHERE status <> $1 AND claim ILIKE '%%' || $2 || '%%'
		ORDER BY timestamp DESC, id DESC
		LIMIT $3`, claimColumns)

	rows, err := r.db.Query(ctx, sql, models.ClaimStatusPending, escapeLike(query), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []*models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		claims = append(claims, claim)
	}

	return claims, rows.Err()
}

// Stats computes aggregate statistics over all processed claims
func (r *ClaimRepository) Stats(ctx context.Context) (*models.Stats, error) {
	stats := &models.Stats{Verdicts: make(map[models.Verdict]int)}

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE verdict = 'True'),
			COUNT(*) FILTER (WHERE verdict = 'False'),
			COALESCE(AVG(confidence_score), 0),
			AVG(processing_time_ms),
			COUNT(*) FILTER (WHERE timestamp >= NOW() - INTERVAL '24 hours')
		FROM claims
		WHERE status <> $1`

	err := r.db.QueryRow(ctx, query, models.ClaimStatusPending).Scan(
		&stats.TotalClaims,
		&stats.TrueClaims,
		&stats.FalseClaims,
		&stats.AverageConfidence,
		&stats.AverageProcessingTimeMs,
		&stats.RecentClaims24h,
	)
	if err != nil {
		return nil, err
	}

	breakdown := `
		SELECT verdict, COUNT(*)
		FROM claims
		WHERE status <> $1
		GROUP BY verdict`

	rows, err := r.db.Query(ctx, breakdown, models.ClaimStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var verdict models.Verdict
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return nil, err
		}
		stats.Verdicts[verdict] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	stats.Finalize()
	return stats, nil
}

// Ping checks database connectivity
func (r *ClaimRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
