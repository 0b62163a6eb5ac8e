// Package recommend scores vouchers against a buyer's purchase-history
// text. Scoring is a weighted keyword and category affinity model kept
// deliberately small; no external service is involved.
package recommend

import (
	"sort"
	"strings"
)

type Scorer struct {
	categoryWeight float64
	keywordWeight  float64
	freshnessBoost float64
}

type Candidate struct {
	ID          string
	Title       string
	Description string
	Category    string
	IsNew       bool
}

type Recommendation struct {
	ID    string  `json:"id"`
	Score float64 `json:"score"`
}

func NewScorer() *Scorer {
	return &Scorer{
		categoryWeight: 2.0,
		keywordWeight:  1.0,
		freshnessBoost: 0.5,
	}
}

// Rank scores every candidate against the history text and returns the top
// limit recommendations, best first. Candidates that score zero are
// dropped.
func (s *Scorer) Rank(history string, candidates []Candidate, limit int) []Recommendation {
	terms := tokenize(history)
	if len(terms) == 0 {
		return nil
	}

	var ranked []Recommendation
	for _, c := range candidates {
		score := s.score(terms, c)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, Recommendation{ID: c.ID, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func (s *Scorer) score(terms map[string]int, c Candidate) float64 {
	score := 0.0

	for term, count := range terms {
		if strings.Contains(strings.ToLower(c.Category), term) {
			score += s.categoryWeight * float64(count)
		}
		if strings.Contains(strings.ToLower(c.Title), term) ||
			strings.Contains(strings.ToLower(c.Description), term) {
			score += s.keywordWeight * float64(count)
		}
	}

	if score > 0 && c.IsNew {
		score += s.freshnessBoost
	}

	return score
}

// tokenize lowercases the history text and counts terms longer than two
// characters, so filler words like "a" and "of" carry no weight.
func tokenize(text string) map[string]int {
	terms := make(map[string]int)
	for _, field := range strings.Fields(strings.ToLower(text)) {
		term := strings.Trim(field, ".,;:!?\"'()")
		if len(term) < 3 {
			continue
		}
		terms[term]++
	}
	return terms
}
