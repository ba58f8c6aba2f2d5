package models

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVerdict(t *testing.T) {
	tests := []struct {
		raw  string
		want Verdict
	}{
		{"True", VerdictTrue},
		{"  CONFIRMED ", VerdictTrue},
		{"factually correct", VerdictTrue},
		{"False", VerdictFalse},
		{"scientifically incorrect", VerdictFalse},
		{"wrong", VerdictFalse},
		{"partially true", VerdictPartiallyTrue},
		{"mixed", VerdictPartiallyTrue},
		{"Unverified", VerdictUnverified},
		{"", VerdictUnverified},
		{"maybe", VerdictUnverified},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeVerdict(tt.raw), "raw: %q", tt.raw)
	}
}

func TestVerdictConclusive(t *testing.T) {
	assert.True(t, VerdictTrue.Conclusive())
	assert.True(t, VerdictFalse.Conclusive())
	assert.False(t, VerdictUnverified.Conclusive())
	assert.False(t, VerdictPartiallyTrue.Conclusive())
}

func TestHistoryViewTruncatesExplanation(t *testing.T) {
	claim := &Claim{
		ID:          7,
		Claim:       "test claim",
		Verdict:     VerdictTrue,
		Explanation: strings.Repeat("x", 250),
	}

	entry := claim.HistoryView()

	assert.Equal(t, int64(7), entry.ID)
	assert.Len(t, entry.Explanation, 203)
	assert.True(t, strings.HasSuffix(entry.Explanation, "..."))
}

func TestHistoryViewTruncatesOnRuneBoundary(t *testing.T) {
	claim := &Claim{Explanation: strings.Repeat("é", 250)}

	entry := claim.HistoryView()

	assert.True(t, utf8.ValidString(entry.Explanation))
	assert.Equal(t, 203, utf8.RuneCountInString(entry.Explanation))
	assert.True(t, strings.HasSuffix(entry.Explanation, "..."))
}

func TestHistoryViewKeepsMultibyteUnderLimit(t *testing.T) {
	short := strings.Repeat("é", 150) // 300 bytes, 150 characters
	claim := &Claim{Explanation: short}
	assert.Equal(t, short, claim.HistoryView().Explanation)
}

func TestHistoryViewKeepsShortExplanation(t *testing.T) {
	claim := &Claim{Explanation: "short and sweet"}
	assert.Equal(t, "short and sweet", claim.HistoryView().Explanation)
}
