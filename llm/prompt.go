package llm

import (
	"encoding/json"
	"fmt"

	"factcheck-backend/preprocess"
)

const systemInstruction = "You are an expert fact-checker. You analyze claims for factual accuracy and respond only in the requested JSON format."

// BuildPrompt constructs the fact-checking prompt from a claim and its
// verification context. The response format is embedded in the prompt so
// that every provider can share the same parser.
func BuildPrompt(claim string, vctx *preprocess.VerificationContext) string {
	var claimType, strategy string
	entitiesJSON := []byte("{}")
	structureJSON := []byte("{}")

	if vctx != nil {
		strategy = vctx.Strategy
		if vctx.ClaimAnalysis != nil {
			claimType = vctx.ClaimAnalysis.ClaimType
			if b, err := json.MarshalIndent(vctx.ClaimAnalysis.Entities, "", "  "); err == nil {
				entitiesJSON = b
			}
			if b, err := json.MarshalIndent(vctx.ClaimAnalysis.Structure, "", "  "); err == nil {
				structureJSON = b
			}
		}
	}
	if claimType == "" {
		claimType = "general"
	}

	return fmt.Sprintf(`You are an expert fact-checker. Analyze the following claim and provide a structured response.

CLAIM TO ANALYZE: %q

CLAIM ANALYSIS:
- Type: %s
- Key entities: %s
- Structure: %s
- Verification strategy: %s

INSTRUCTIONS:
1. Analyze the claim for factual accuracy
2. Consider the specific type of claim and verification strategy
3. Provide your assessment in the following JSON format:

{
    "verdict": "True" | "False" | "Unverified",
    "confidence_score": <number between 0-100>,
    "explanation": "<detailed explanation of your reasoning>",
    "key_evidence": ["<evidence point 1>", "<evidence point 2>", ...],
    "sources_needed": ["<type of source 1>", "<type of source 2>", ...],
    "reasoning_steps": ["<step 1>", "<step 2>", ...],
    "caveats": ["<caveat 1>", "<caveat 2>", ...]
}

IMPORTANT GUIDELINES:
- Use "True" only if you're confident the claim is factually correct
- Use "False" only if you're confident the claim is factually incorrect
- Use "Unverified" if you cannot determine accuracy with confidence
- Confidence score should reflect your certainty (0-100)
- Provide specific, detailed explanations
- Be honest about limitations in your knowledge
- Consider the date sensitivity of information

Please analyze the claim now:`, claim, claimType, entitiesJSON, structureJSON, strategy)
}
