package llm

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"factcheck-backend/models"
)

type rawAnalysis struct {
	Verdict         string   `json:"verdict"`
	ConfidenceScore float64  `json:"confidence_score"`
	Explanation     string   `json:"explanation"`
	KeyEvidence     []string `json:"key_evidence"`
	SourcesNeeded   []string `json:"sources_needed"`
	ReasoningSteps  []string `json:"reasoning_steps"`
	Caveats         []string `json:"caveats"`
}

var confidenceRe = regexp.MustCompile(`(?i)confidence:\s*(\d+(?:\.\d+)?)%?`)

// ParseAnalysis extracts a structured analysis from raw model output.
// Models are instructed to answer in JSON; when they don't, a text
// heuristic recovers a verdict and confidence so a malformed response
// never fails the pipeline.
func ParseAnalysis(raw string) *Analysis {
	trimmed := strings.TrimSpace(raw)

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		var parsed rawAnalysis
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &parsed); err == nil {
			explanation := parsed.Explanation
			if explanation == "" {
				explanation = "No explanation provided"
			}
			return &Analysis{
				Verdict:         models.NormalizeVerdict(parsed.Verdict),
				ConfidenceScore: clampConfidence(parsed.ConfidenceScore),
				Explanation:     explanation,
				KeyEvidence:     parsed.KeyEvidence,
				SourcesNeeded:   parsed.SourcesNeeded,
				ReasoningSteps:  parsed.ReasoningSteps,
				Caveats:         parsed.Caveats,
				Raw:             raw,
			}
		}
	}

	return parseTextAnalysis(raw)
}

// parseTextAnalysis is the fallback parser for non-JSON responses
func parseTextAnalysis(raw string) *Analysis {
	lower := strings.ToLower(raw)

	verdict := models.VerdictUnverified
	confidence := 50.0

	switch {
	case strings.Contains(lower, "verdict: true"):
		verdict = models.VerdictTrue
	case strings.Contains(lower, "verdict: false"):
		verdict = models.VerdictFalse
	case strings.Contains(lower, "verdict: partially true"):
		verdict = models.VerdictPartiallyTrue
	}

	if m := confidenceRe.FindStringSubmatch(lower); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			confidence = clampConfidence(v)
		}
	}

	if verdict == models.VerdictUnverified {
		if containsAny(lower, "scientifically incorrect", "contradicts", "false", "incorrect", "wrong") {
			verdict = models.VerdictFalse
			confidence = max(confidence, 80.0)
		} else if containsAny(lower, "correct", "accurate", "confirmed", "true", "factually correct") {
			verdict = models.VerdictTrue
			confidence = max(confidence, 80.0)
		}
	}

	explanation := raw
	if utf8.RuneCountInString(explanation) > 500 {
		explanation = string([]rune(explanation)[:500]) + "..."
	}

	return &Analysis{
		Verdict:         verdict,
		ConfidenceScore: confidence,
		Explanation:     explanation,
		SourcesNeeded:   []string{"authoritative sources"},
		ReasoningSteps:  []string{"Analyzed claim text"},
		Caveats:         []string{"Response could not be fully parsed"},
		Raw:             raw,
	}
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func containsAny(s string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}
