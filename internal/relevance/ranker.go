package relevance

import "sort"

// Rank orders scored units descending by score, deduplicates them by exact
// text equality and truncates to the top k. The sort is stable: equal scores
// keep the order in which units were produced, so earlier sources rank
// first. Units with a zero or negative score are dropped; an empty
// result means nothing in the corpus matched.
func Rank(units []ScoredUnit, k int) []ScoredUnit {
	matched := make([]ScoredUnit, 0, len(units))
	for _, u := range units {
		if u.Score > 0 {
			matched = append(matched, u)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	seen := make(map[string]bool, len(matched))
	ranked := make([]ScoredUnit, 0, k)
	for _, u := range matched {
		if seen[u.Text] {
			continue
		}
		seen[u.Text] = true
		ranked = append(ranked, u)
		if len(ranked) == k {
			break
		}
	}
	return ranked
}
