package embed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarityIdenticalVectors(t *testing.T) {
	v := []float32{1, 2, 3}
	assert.InDelta(t, 1.0, CosineSimilarity(v, v), 1e-9)
}

func TestCosineSimilarityOrthogonalVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0, 1}
	assert.InDelta(t, 0.0, CosineSimilarity(a, b), 1e-9)
}

func TestCosineSimilarityOppositeVectors(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{-1, 0}
	assert.InDelta(t, -1.0, CosineSimilarity(a, b), 1e-9)
}

func TestCosineSimilarityMismatchedLengthIsZero(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1, 2}, []float32{1}))
}

func TestCosineSimilarityZeroMagnitudeIsZero(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestNewWithEmptyProviderReturnsNilEmbedder(t *testing.T) {
	e, err := New(Config{Provider: ""})
	assert.NoError(t, err)
	assert.Nil(t, e)

	e, err = New(Config{Provider: "none"})
	assert.NoError(t, err)
	assert.Nil(t, e)
}

func TestNewWithUnsupportedProviderErrors(t *testing.T) {
	_, err := New(Config{Provider: "bogus"})
	assert.Error(t, err)
}

func TestNewWithGeminiRequiresAPIKey(t *testing.T) {
	_, err := New(Config{Provider: "gemini"})
	assert.Error(t, err)
}
