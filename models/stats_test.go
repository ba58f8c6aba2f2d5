package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessRate(t *testing.T) {
	assert.Equal(t, 0.0, SuccessRate(0, 0))
	assert.Equal(t, 100.0, SuccessRate(4, 4))
	assert.Equal(t, 50.0, SuccessRate(4, 2))
	assert.Equal(t, 33.3, SuccessRate(3, 1))
	assert.Equal(t, 66.7, SuccessRate(3, 2))
}

func TestStatsFinalize(t *testing.T) {
	avgTime := 123.456
	stats := &Stats{
		TotalClaims:             10,
		TrueClaims:              4,
		FalseClaims:             3,
		AverageConfidence:       81.237,
		AverageProcessingTimeMs: &avgTime,
	}

	stats.Finalize()

	assert.Equal(t, 3, stats.UnverifiedClaims)
	assert.Equal(t, 10, stats.TrueClaims+stats.FalseClaims+stats.UnverifiedClaims)
	assert.Equal(t, 70.0, stats.SuccessRate)
	assert.Equal(t, 81.24, stats.AverageConfidence)
	assert.Equal(t, 123.46, *stats.AverageProcessingTimeMs)
}

func TestStatsFinalizeEmpty(t *testing.T) {
	stats := &Stats{}
	stats.Finalize()

	assert.Equal(t, 0, stats.UnverifiedClaims)
	assert.Equal(t, 0.0, stats.SuccessRate)
	assert.Nil(t, stats.AverageProcessingTimeMs)
}
