// Package score implements the heuristic relevance scorer: a pure,
// deterministic function from (text, profile, task) to a value in [0,1].
// Matching is case-insensitive substring containment, not tokenized, so
// "budget" matches inside "budgetary".
package score

import (
	"strings"

	"github.com/dgallion1/docdigest/internal/persona"
)

// Weights of the three score terms.
const (
	keywordWeight  = 0.4
	taskWeight     = 0.3
	priorityWeight = 0.3
)

// minTaskWordLen filters filler words out of the task description; only words
// longer than this count.
const minTaskWordLen = 3

// Score rates how useful text is to the given persona and task. The result
// is in [0,1] and depends only on the inputs.
func Score(text string, p persona.Profile, task string) float64 {
	textLower := strings.ToLower(text)

	keywordHits := 0
	for _, kw := range p.Keywords {
		if strings.Contains(textLower, strings.ToLower(kw)) {
			keywordHits++
		}
	}

	taskWords := TaskWords(task)
	taskHits := 0
	for _, w := range taskWords {
		if strings.Contains(textLower, w) {
			taskHits++
		}
	}

	// Each priority match counts double.
	priorityHits := 0
	for _, pr := range p.Priorities {
		if strings.Contains(textLower, strings.ToLower(pr)) {
			priorityHits += 2
		}
	}

	normalized := float64(keywordHits)/float64(max(len(p.Keywords), 1))*keywordWeight +
		float64(taskHits)/float64(max(len(taskWords), 1))*taskWeight +
		float64(priorityHits)/float64(max(2*len(p.Priorities), 1))*priorityWeight

	return min(normalized, 1.0)
}

// TaskWords returns the deduplicated, lowercased words of a task description
// longer than three characters, in first-occurrence order.
func TaskWords(task string) []string {
	var words []string
	seen := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(task)) {
		if len(w) <= minTaskWordLen || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}
