// Package rank applies the relevance scorer to sections, filters weak
// matches, and assigns dense importance ranks: provisionally per document,
// then globally across a whole run.
package rank

import (
	"sort"

	"github.com/dgallion1/docdigest/internal/document"
	"github.com/dgallion1/docdigest/internal/persona"
	"github.com/dgallion1/docdigest/internal/score"
)

// MinRelevance is the retention threshold. Sections scoring at or below it
// are dropped before ranking.
const MinRelevance = 0.05

// ScoreSections scores every section of one document against the profile and
// task, keeps those scoring above MinRelevance, sorts them descending by
// score (stable, so ties keep document reading order), and assigns
// provisional ranks. The provisional ranks are replaced by RankGlobal before
// any output is produced.
func ScoreSections(docName string, sections []document.Section, p persona.Profile, task string) []document.ScoredSection {
	var retained []document.ScoredSection
	for _, sec := range sections {
		s := score.Score(sec.Content, p, task)
		if s > MinRelevance {
			retained = append(retained, document.ScoredSection{
				Section:        sec,
				Document:       docName,
				RelevanceScore: s,
			})
		}
	}

	sortByScore(retained)
	for i := range retained {
		retained[i].ImportanceRank = i + 1
	}
	return retained
}

// RankGlobal is the synchronization barrier of a multi-document run: it takes
// the concatenation of every document's retained sections (documents in
// discovery order, sections in per-document rank order), re-sorts the full
// set descending by score, and reassigns a single dense importance_rank 1..N.
// The sort is stable, so score ties preserve the input sequence regardless of
// how per-document results were produced.
func RankGlobal(sections []document.ScoredSection) []document.ScoredSection {
	ranked := make([]document.ScoredSection, len(sections))
	copy(ranked, sections)
	sortByScore(ranked)
	for i := range ranked {
		ranked[i].ImportanceRank = i + 1
	}
	return ranked
}

func sortByScore(sections []document.ScoredSection) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].RelevanceScore > sections[j].RelevanceScore
	})
}
