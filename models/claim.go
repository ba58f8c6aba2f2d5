package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"
)

// ClaimStatus represents the lifecycle state of a claim record
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "pending"
	ClaimStatusCompleted ClaimStatus = "completed"
	ClaimStatusFailed    ClaimStatus = "failed"
)

// Verdict represents the categorical outcome of a fact-check.
// The value set is open: the canonical contract is True/False/Unverified,
// but the reasoning model may produce additional values (e.g. Partially_True)
// which are preserved as-is after normalization.
type Verdict string

const (
	VerdictTrue          Verdict = "True"
	VerdictFalse         Verdict = "False"
	VerdictUnverified    Verdict = "Unverified"
	VerdictPartiallyTrue Verdict = "Partially_True"
)

// NormalizeVerdict maps free-form model output to a standard verdict value.
// Unknown values collapse to Unverified.
func NormalizeVerdict(raw string) Verdict {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "correct", "accurate", "yes", "confirmed", "factually correct":
		return VerdictTrue
	case "false", "incorrect", "inaccurate", "no", "wrong", "scientifically incorrect":
		return VerdictFalse
	case "partially true", "partially_true", "partly true", "mixed", "partial":
		return VerdictPartiallyTrue
	default:
		return VerdictUnverified
	}
}

// Conclusive reports whether the verdict counts toward the success rate.
// Only True and False are conclusive; everything else is treated as
// unverified for aggregation purposes.
func (v Verdict) Conclusive() bool {
	return v == VerdictTrue || v == VerdictFalse
}

// StringList represents a JSONB array of strings
type StringList []string

// Value implements driver.Valuer for JSONB
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		*l = nil
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// Claim represents a fact-checked claim record
type Claim struct {
	ID               int64       `json:"id"`
	Claim            string      `json:"claim"`
	Status           ClaimStatus `json:"status"`
	Verdict          Verdict     `json:"verdict"`
	ConfidenceScore  float64     `json:"confidence_score"`
	Explanation      string      `json:"explanation"`
	Sources          StringList  `json:"sources,omitempty"`
	SessionID        *string     `json:"session_id,omitempty"`
	ProcessingTimeMs *int        `json:"processing_time_ms,omitempty"`
	Timestamp        time.Time   `json:"timestamp"`
}

// HistoryEntry is the trimmed view of a claim returned by the history and
// search endpoints. The explanation is truncated for list display.
type HistoryEntry struct {
	ID              int64     `json:"id"`
	Claim           string    `json:"claim"`
	Verdict         Verdict   `json:"verdict"`
	ConfidenceScore float64   `json:"confidence_score"`
	Explanation     string    `json:"explanation"`
	Timestamp       time.Time `json:"timestamp"`
}

const historyExplanationLimit = 200

// HistoryView converts a claim to its list representation. The explanation
// is truncated by character count, never mid-rune.
func (c *Claim) HistoryView() HistoryEntry {
	explanation := c.Explanation
	if utf8.RuneCountInString(explanation) > historyExplanationLimit {
		explanation = string([]rune(explanation)[:historyExplanationLimit]) + "..."
	}
	return HistoryEntry{
		ID:              c.ID,
		Claim:           c.Claim,
		Verdict:         c.Verdict,
		ConfidenceScore: c.ConfidenceScore,
		Explanation:     explanation,
		Timestamp:       c.Timestamp,
	}
}
