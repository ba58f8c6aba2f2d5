package preprocess

import "errors"

// ErrPreprocessorUnusable is returned by Check when the processor produces
// empty output for a known-good sample claim.
var ErrPreprocessorUnusable = errors.New("preprocessor produced unusable output")

// VerificationContext is the structured input handed to the reasoning
// collaborator: the processed claim plus a verification strategy and the
// factors that should shape the model's confidence.
type VerificationContext struct {
	ClaimAnalysis     *ProcessedClaim `json:"claim_analysis"`
	Strategy          string          `json:"verification_strategy"`
	ConfidenceFactors []string        `json:"confidence_factors"`
	PotentialIssues   []string        `json:"potential_issues"`
}

var strategies = map[string]string{
	"measurement":  "Compare against authoritative measurement databases",
	"temporal":     "Verify dates against historical records",
	"geographical": "Cross-reference with geographical databases",
	"biographical": "Verify against biographical sources",
	"definitional": "Check against authoritative definitions",
	"comparative":  "Gather data for both subjects and compare",
	"general":      "Multi-source verification with credible sources",
}

// BuildContext assembles the verification context for a processed claim
func BuildContext(processed *ProcessedClaim) *VerificationContext {
	strategy, ok := strategies[processed.ClaimType]
	if !ok {
		strategy = strategies["general"]
	}

	return &VerificationContext{
		ClaimAnalysis:     processed,
		Strategy:          strategy,
		ConfidenceFactors: confidenceFactors(processed),
		PotentialIssues:   potentialIssues(processed),
	}
}

func confidenceFactors(processed *ProcessedClaim) []string {
	var factors []string

	if processed.Structure.HasQuantifier {
		factors = append(factors, "Contains specific numbers - verifiable")
	}
	if processed.Structure.IsComparative {
		factors = append(factors, "Comparative claim - requires multiple data points")
	}
	if processed.Structure.ComplexityScore > 3 {
		factors = append(factors, "High complexity - may be difficult to verify")
	}
	if len(processed.Entities["places"]) > 0 {
		factors = append(factors, "Contains geographical references - verifiable")
	}
	if len(processed.Entities["dates"]) > 0 {
		factors = append(factors, "Contains dates - historically verifiable")
	}

	return factors
}

func potentialIssues(processed *ProcessedClaim) []string {
	var issues []string

	if processed.Structure.IsQuestion {
		issues = append(issues, "Claim is phrased as a question")
	}
	if processed.Structure.HasNegation {
		issues = append(issues, "Contains negation - verify the positive statement")
	}
	if len(processed.KeyTerms) < 2 {
		issues = append(issues, "Very few key terms - may be too vague")
	}
	if processed.Structure.ComplexityScore > 4 {
		issues = append(issues, "High complexity - break down into sub-claims")
	}

	return issues
}
