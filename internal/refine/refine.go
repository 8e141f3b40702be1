// Package refine condenses top-ranked sections into short persona-focused
// analyses: a refined paragraph of the highest-scoring sentences plus a
// bounded set of key concepts.
package refine

import (
	"sort"
	"strings"

	"github.com/dgallion1/docdigest/internal/document"
	"github.com/dgallion1/docdigest/internal/persona"
	"github.com/dgallion1/docdigest/internal/score"
)

const (
	// TopSections is how many of a document's highest-ranked sections get a
	// subsection analysis.
	TopSections = 10

	// minSentenceRelevance is the per-sentence inclusion threshold for the
	// refined text.
	minSentenceRelevance = 0.1

	// maxSentences caps the refined text length.
	maxSentences = 5

	// maxConcepts caps the key-concept set.
	maxConcepts = 10

	// fallbackChars is the raw-truncation length used when no sentence
	// clears the relevance threshold.
	fallbackChars = 500
)

// Analyze produces subsection analyses for the top-ranked sections of one
// document. Sections must already be sorted by rank; only the first
// TopSections are analyzed.
func Analyze(sections []document.ScoredSection, p persona.Profile, task string) []document.SubsectionAnalysis {
	n := min(len(sections), TopSections)
	analyses := make([]document.SubsectionAnalysis, 0, n)
	for _, sec := range sections[:n] {
		analyses = append(analyses, document.SubsectionAnalysis{
			Document:       sec.Document,
			RefinedText:    RefineText(sec.Content, p, task),
			PageNumber:     sec.PageNumber,
			RelevanceScore: sec.RelevanceScore,
			KeyConcepts:    KeyConcepts(sec.Content, p),
		})
	}
	return analyses
}

// RefineText condenses content to its most persona-relevant sentences:
// sentences (split on '.') scoring above the threshold, stable-sorted
// descending by score, top five joined with ". " and a trailing period.
// If no sentence qualifies, the first 500 characters of the content are
// returned as-is, so the result is never empty for non-empty content.
func RefineText(content string, p persona.Profile, task string) string {
	type scored struct {
		sentence string
		score    float64
	}

	var candidates []scored
	for _, sentence := range strings.Split(content, ".") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if s := score.Score(sentence, p, task); s > minSentenceRelevance {
			candidates = append(candidates, scored{sentence: sentence, score: s})
		}
	}

	if len(candidates) == 0 {
		return truncateRunes(content, fallbackChars)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	n := min(len(candidates), maxSentences)
	sentences := make([]string, n)
	for i := 0; i < n; i++ {
		sentences[i] = candidates[i].sentence
	}
	return strings.Join(sentences, ". ") + "."
}

// KeyConcepts collects the profile keywords and priorities present in the
// content plus up to two three-word phrases from each of its first three
// sentences, deduplicated and capped at ten entries.
func KeyConcepts(content string, p persona.Profile) []string {
	contentLower := strings.ToLower(content)

	var concepts []string
	seen := make(map[string]bool)
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			concepts = append(concepts, c)
		}
	}

	for _, kw := range p.Keywords {
		if strings.Contains(contentLower, strings.ToLower(kw)) {
			add(kw)
		}
	}
	for _, pr := range p.Priorities {
		if strings.Contains(contentLower, strings.ToLower(pr)) {
			add(pr)
		}
	}

	sentences := strings.Split(content, ".")
	for i := 0; i < len(sentences) && i < 3; i++ {
		words := strings.Fields(strings.TrimSpace(sentences[i]))
		if len(words) <= 3 {
			continue
		}
		for j := 0; j < 2 && j+3 <= len(words); j++ {
			add(strings.Join(words[j:j+3], " "))
		}
	}

	if len(concepts) > maxConcepts {
		concepts = concepts[:maxConcepts]
	}
	return concepts
}

func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
