package models

import "math"

// Stats represents aggregate fact-checking statistics derived from the
// claim table. Nothing here is persisted; it is computed on read.
type Stats struct {
	TotalClaims             int             `json:"total_claims"`
	TrueClaims              int             `json:"true_claims"`
	FalseClaims             int             `json:"false_claims"`
	UnverifiedClaims        int             `json:"unverified_claims"`
	Verdicts                map[Verdict]int `json:"verdicts"`
	AverageConfidence       float64         `json:"average_confidence"`
	AverageProcessingTimeMs *float64        `json:"average_processing_time_ms"`
	RecentClaims24h         int             `json:"recent_claims_24h"`
	SuccessRate             float64         `json:"success_rate"`
}

// SuccessRate computes the fraction of conclusive verdicts as a percentage
// rounded to one decimal place. Returns 0 for an empty table.
func SuccessRate(total, conclusive int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(conclusive)/float64(total)*1000) / 10
}

// Finalize fills the derived fields from the raw counts. UnverifiedClaims
// absorbs every non-conclusive verdict so that
// true + false + unverified == total always holds.
func (s *Stats) Finalize() {
	s.UnverifiedClaims = s.TotalClaims - s.TrueClaims - s.FalseClaims
	s.SuccessRate = SuccessRate(s.TotalClaims, s.TrueClaims+s.FalseClaims)
	s.AverageConfidence = math.Round(s.AverageConfidence*100) / 100
	if s.AverageProcessingTimeMs != nil {
		rounded := math.Round(*s.AverageProcessingTimeMs*100) / 100
		s.AverageProcessingTimeMs = &rounded
	}
}
