package preprocess

import (
	"context"
	"regexp"
	"strings"
	"time"
)

// ProcessedClaim holds the structured output of linguistic preprocessing
type ProcessedClaim struct {
	OriginalClaim   string              `json:"original_claim"`
	NormalizedClaim string              `json:"normalized_claim"`
	Entities        map[string][]string `json:"entities"`
	ClaimType       string              `json:"claim_type"`
	KeyTerms        []string            `json:"key_terms"`
	Structure       ClaimStructure      `json:"structure"`
	SearchQueries   []string            `json:"search_queries"`
	Timestamp       time.Time           `json:"timestamp"`
}

// ClaimStructure describes the grammatical and logical shape of a claim
type ClaimStructure struct {
	IsQuestion      bool    `json:"is_question"`
	IsComparative   bool    `json:"is_comparative"`
	HasNegation     bool    `json:"has_negation"`
	HasQuantifier   bool    `json:"has_quantifier"`
	SentenceLength  int     `json:"sentence_length"`
	ComplexityScore float64 `json:"complexity_score"`
}

// Processor performs linguistic structuring of raw claim text: entity
// extraction, claim-type classification and search-query generation.
// It is stateless and safe for concurrent use.
type Processor struct {
	entityPatterns map[string]*regexp.Regexp
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	quoteRe      = regexp.MustCompile("[“”‘’`]")
	dashRe       = regexp.MustCompile("[–—]")
	wordRe       = regexp.MustCompile(`\b[a-zA-Z]+\b`)
	digitRe      = regexp.MustCompile(`\b\d+`)
)

var stopWords = map[string]struct{}{
	"the": {}, "is": {}, "are": {}, "was": {}, "were": {}, "a": {}, "an": {},
	"and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "of": {}, "with": {}, "by": {}, "that": {}, "this": {},
	"than": {}, "more": {}, "less": {}, "taller": {}, "shorter": {},
}

// NewProcessor creates a new claim processor
func NewProcessor() *Processor {
	return &Processor{
		entityPatterns: map[string]*regexp.Regexp{
			"numbers":      regexp.MustCompile(`\b\d+(?:\.\d+)?\b`),
			"dates":        regexp.MustCompile(`\b\d{4}[-/]\d{1,2}[-/]\d{1,2}\b|\b\d{1,2}[-/]\d{1,2}[-/]\d{4}\b`),
			"places":       regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`),
			"measurements": regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:meters?|feet|km|miles?|kg|pounds?|celsius|fahrenheit)\b`),
		},
	}
}

// Preprocess structures a raw claim for downstream reasoning
func (p *Processor) Preprocess(ctx context.Context, claim string) (*ProcessedClaim, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	processed := &ProcessedClaim{
		OriginalClaim:   strings.TrimSpace(claim),
		NormalizedClaim: normalizeText(claim),
		Entities:        p.extractEntities(claim),
		ClaimType:       classifyClaimType(claim),
		KeyTerms:        extractKeyTerms(claim),
		Structure:       analyzeStructure(claim),
		Timestamp:       time.Now().UTC(),
	}
	processed.SearchQueries = p.generateSearchQueries(claim, processed)

	return processed, nil
}

// Check verifies the processor produces usable output on a sample claim.
// Used by the health endpoint.
func (p *Processor) Check(ctx context.Context) error {
	processed, err := p.Preprocess(ctx, "This is a test claim for service verification.")
	if err != nil {
		return err
	}
	if processed.ClaimType == "" || processed.NormalizedClaim == "" {
		return ErrPreprocessorUnusable
	}
	return nil
}

func normalizeText(text string) string {
	text = whitespaceRe.ReplaceAllString(strings.TrimSpace(text), " ")
	text = quoteRe.ReplaceAllString(text, `"`)
	text = dashRe.ReplaceAllString(text, "-")
	return text
}

func (p *Processor) extractEntities(claim string) map[string][]string {
	entities := make(map[string][]string, len(p.entityPatterns))
	for entityType, pattern := range p.entityPatterns {
		matches := pattern.FindAllString(claim, -1)
		entities[entityType] = dedupe(matches)
	}
	return entities
}

func classifyClaimType(claim string) string {
	lower := strings.ToLower(claim)

	switch {
	case containsAny(lower, "taller", "shorter", "bigger", "smaller", "meters", "feet", "height"):
		return "measurement"
	case containsAny(lower, "when", "year", "date", "happened", "occurred"):
		return "temporal"
	case containsAny(lower, "where", "located", "city", "country", "place"):
		return "geographical"
	case containsAny(lower, "who", "person", "people", "president", "ceo"):
		return "biographical"
	case containsAny(lower, "what", "is", "definition", "means"):
		return "definitional"
	case containsAny(lower, "more", "less", "than", "compared", "versus"):
		return "comparative"
	default:
		return "general"
	}
}

func extractKeyTerms(claim string) []string {
	words := wordRe.FindAllString(strings.ToLower(claim), -1)
	var terms []string
	for _, word := range words {
		if _, stop := stopWords[word]; stop || len(word) <= 2 {
			continue
		}
		terms = append(terms, word)
	}
	return dedupe(terms)
}

func analyzeStructure(claim string) ClaimStructure {
	lower := strings.ToLower(claim)
	return ClaimStructure{
		IsQuestion:      strings.HasSuffix(strings.TrimSpace(claim), "?"),
		IsComparative:   containsAny(lower, "than", "compared", "versus", "more", "less"),
		HasNegation:     containsAny(lower, "not", "never", "no", "n't", "false"),
		HasQuantifier:   digitRe.MatchString(claim),
		SentenceLength:  len(strings.Fields(claim)),
		ComplexityScore: complexityScore(claim),
	}
}

func complexityScore(claim string) float64 {
	score := 0.0

	wordCount := float64(len(strings.Fields(claim)))
	score += min(wordCount/10, 1.0)

	lower := strings.ToLower(claim)
	for _, word := range []string{"that", "which", "who", "where", "when", "because", "since", "although"} {
		if strings.Contains(lower, word) {
			score += 0.2
		}
	}

	// Numbers and measurements are harder to verify
	score += float64(len(digitRe.FindAllString(claim, -1))) * 0.3

	return min(score, 5.0)
}

func (p *Processor) generateSearchQueries(claim string, processed *ProcessedClaim) []string {
	queries := []string{strings.TrimSpace(claim)}

	if places := processed.Entities["places"]; len(places) > 0 {
		for _, place := range places[:min(len(places), 2)] {
			queries = append(queries, place+" facts information")
		}
	}

	if numbers := processed.Entities["numbers"]; len(numbers) > 0 {
		terms := processed.KeyTerms[:min(len(processed.KeyTerms), 3)]
		for _, number := range numbers[:min(len(numbers), 2)] {
			queries = append(queries, number+" "+strings.Join(terms, " "))
		}
	}

	if len(processed.KeyTerms) >= 3 {
		queries = append(queries, strings.Join(processed.KeyTerms[:min(len(processed.KeyTerms), 5)], " "))
	}

	if len(queries) > 5 {
		queries = queries[:5]
	}
	return queries
}

func containsAny(s string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var unique []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
