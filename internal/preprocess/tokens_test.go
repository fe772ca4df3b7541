package preprocess_test

import (
	"testing"

	"bid-leveler/internal/preprocess"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, preprocess.EstimateTokens(""))
	assert.Equal(t, 1, preprocess.EstimateTokens("abcd"))
	assert.Equal(t, 2, preprocess.EstimateTokens("abcde"))
	assert.Equal(t, 1, preprocess.EstimateTokens("éééé"))
}

func TestReductionPercent(t *testing.T) {
	assert.Equal(t, 0.0, preprocess.ReductionPercent(0, 0))
	assert.Equal(t, 0.0, preprocess.ReductionPercent(0, 5))
	assert.Equal(t, 66.7, preprocess.ReductionPercent(3, 1))
	assert.Equal(t, -20.0, preprocess.ReductionPercent(100, 120))
	assert.Equal(t, 100.0, preprocess.ReductionPercent(10, 0))
}

func TestSplitBudget(t *testing.T) {
	assert.Equal(t, 4000, preprocess.SplitBudget(12000, 3))
	assert.Equal(t, 12000, preprocess.SplitBudget(12000, 0))
}
