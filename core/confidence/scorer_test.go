package confidence

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

func sources(n int) []model.Source {
	result := make([]model.Source, 0, n)
	for i := 0; i < n; i++ {
		result = append(result, model.Source{Rank: i + 1, Filename: "doc.txt", ChunkIndex: i})
	}
	return result
}

// 25 words, no negative phrases
const detailedAnswer = "The report covers revenue growth across all four quarters and attributes " +
	"most of the increase to the new subscription tier introduced early in the fiscal year."

func TestScorer(t *testing.T) {
	scorer := NewScorer()

	t.Run("Zero sources scores 0.0 low", func(t *testing.T) {
		c := scorer.Score(nil, "anything")

		assert.Equal(t, 0.0, c.Score)
		assert.Equal(t, model.ConfidenceLow, c.Level)
		assert.Equal(t, "no sources found", c.Reason)
		assert.Equal(t, 0, c.NumSources)
	})

	t.Run("Negative finding scores 0.3 low regardless of source count", func(t *testing.T) {
		c := scorer.Score(sources(5), "I cannot find this information in the provided documents")

		assert.Equal(t, 0.3, c.Score)
		assert.Equal(t, model.ConfidenceLow, c.Level)
		assert.Equal(t, 5, c.NumSources)
	})

	t.Run("Negative finding match is case-insensitive", func(t *testing.T) {
		c := scorer.Score(sources(3), "This is NOT IN THE supplied context.")

		assert.Equal(t, 0.3, c.Score)
		assert.Equal(t, model.ConfidenceLow, c.Level)
	})

	t.Run("Three sources with detailed answer scores 0.9 high", func(t *testing.T) {
		assert.Greater(t, len(strings.Fields(detailedAnswer)), 20)

		c := scorer.Score(sources(3), detailedAnswer)

		assert.Equal(t, 0.9, c.Score)
		assert.Equal(t, model.ConfidenceHigh, c.Level)
		assert.Equal(t, 3, c.NumSources)
	})

	t.Run("Three sources with a short answer falls through to 0.7 medium", func(t *testing.T) {
		c := scorer.Score(sources(3), "Yes.")

		assert.Equal(t, 0.7, c.Score)
		assert.Equal(t, model.ConfidenceMedium, c.Level)
	})

	t.Run("Two sources scores 0.7 medium even when detailed", func(t *testing.T) {
		c := scorer.Score(sources(2), detailedAnswer)

		assert.Equal(t, 0.7, c.Score)
		assert.Equal(t, model.ConfidenceMedium, c.Level)
	})

	t.Run("Single source scores 0.5 medium", func(t *testing.T) {
		c := scorer.Score(sources(1), "short")

		assert.Equal(t, 0.5, c.Score)
		assert.Equal(t, model.ConfidenceMedium, c.Level)
		assert.Equal(t, "single source", c.Reason)
		assert.Equal(t, 1, c.NumSources)
	})

	t.Run("Earlier rules shadow later ones", func(t *testing.T) {
		// A detailed answer over many sources would score high, but a
		// negative phrase takes priority.
		c := scorer.Score(sources(4), detailedAnswer+" However, the totals are not in the appendix.")

		assert.Equal(t, 0.3, c.Score)
		assert.Equal(t, model.ConfidenceLow, c.Level)
	})

	t.Run("Exactly 21 words crosses the detail threshold", func(t *testing.T) {
		answer := strings.Repeat("word ", 21)

		c := scorer.Score(sources(3), answer)

		assert.Equal(t, 0.9, c.Score)
		assert.Equal(t, model.ConfidenceHigh, c.Level)
	})
}
