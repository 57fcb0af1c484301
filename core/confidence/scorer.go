package confidence

import (
	"fmt"
	"strings"

	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

// negativePhrases are answer fragments indicating the model could not
// ground the answer in the retrieved sources.
var negativePhrases = []string{"cannot find", "not in the"}

// rule is one scoring heuristic. Rules are evaluated in priority order and
// the first match wins, so a later rule is unreachable whenever an earlier
// one applies.
type rule struct {
	name    string
	matches func(sources []model.Source, answer string) bool
	score   func(sources []model.Source, answer string) model.Confidence
}

// Scorer rates answer trustworthiness from the retrieved sources and the
// answer text. The result is a heuristic, not a calibrated probability.
type Scorer struct {
	rules []rule
}

// NewScorer creates a scorer with the default rule set.
func NewScorer() *Scorer {
	return &Scorer{rules: defaultRules()}
}

// Score evaluates the rules in order and returns the first match. The
// final rule always matches, so a result is always produced.
func (s *Scorer) Score(sources []model.Source, answer string) model.Confidence {
	for _, r := range s.rules {
		if r.matches(sources, answer) {
			c := r.score(sources, answer)
			c.NumSources = len(sources)
			return c
		}
	}
	// Unreachable: defaultRules ends with a catch-all.
	return model.Confidence{Level: model.ConfidenceLow, NumSources: len(sources)}
}

func defaultRules() []rule {
	return []rule{
		{
			name: "no sources",
			matches: func(sources []model.Source, answer string) bool {
				return len(sources) == 0
			},
			score: func(sources []model.Source, answer string) model.Confidence {
				return model.Confidence{Score: 0.0, Level: model.ConfidenceLow, Reason: "no sources found"}
			},
		},
		{
			name: "negative finding",
			matches: func(sources []model.Source, answer string) bool {
				lowered := strings.ToLower(answer)
				for _, phrase := range negativePhrases {
					if strings.Contains(lowered, phrase) {
						return true
					}
				}
				return false
			},
			score: func(sources []model.Source, answer string) model.Confidence {
				return model.Confidence{Score: 0.3, Level: model.ConfidenceLow, Reason: "answer indicates information not found"}
			},
		},
		{
			name: "multiple sources, detailed answer",
			matches: func(sources []model.Source, answer string) bool {
				return len(sources) >= 3 && len(strings.Fields(answer)) > 20
			},
			score: func(sources []model.Source, answer string) model.Confidence {
				return model.Confidence{
					Score:  0.9,
					Level:  model.ConfidenceHigh,
					Reason: fmt.Sprintf("multiple sources (%d) with detailed answer", len(sources)),
				}
			},
		},
		{
			name: "moderate sources",
			matches: func(sources []model.Source, answer string) bool {
				return len(sources) >= 2
			},
			score: func(sources []model.Source, answer string) model.Confidence {
				return model.Confidence{
					Score:  0.7,
					Level:  model.ConfidenceMedium,
					Reason: fmt.Sprintf("moderate sources (%d)", len(sources)),
				}
			},
		},
		{
			name: "single source",
			matches: func(sources []model.Source, answer string) bool {
				return true
			},
			score: func(sources []model.Source, answer string) model.Confidence {
				return model.Confidence{Score: 0.5, Level: model.ConfidenceMedium, Reason: "single source"}
			},
		},
	}
}
