package matching

// Reconcile merges the generative report with the heuristic matcher's
// result into the final report. The merged matched list is the union of
// both (model order first, then heuristic additions), the missing list is
// recomputed as the requirements not matched by name, and skills implied
// one hop from a matched skill are promoted out of the missing list with
// a bounded score boost.
//
// The returned report's MatchedSkills and MissingSkills partition the
// requirement names: every requirement appears in exactly one list.
func Reconcile(aiReport *Report, heuristicMatched []string, reqs []Requirement, graph *Graph) *Report {
	matched := make([]string, 0, len(aiReport.MatchedSkills)+len(heuristicMatched))
	matchedSet := make(map[string]bool)
	for _, s := range aiReport.MatchedSkills {
		if !matchedSet[s] {
			matched = append(matched, s)
			matchedSet[s] = true
		}
	}
	for _, s := range heuristicMatched {
		if !matchedSet[s] {
			matched = append(matched, s)
			matchedSet[s] = true
		}
	}

	missing := []string{}
	missingSet := make(map[string]bool)
	for _, req := range reqs {
		if !matchedSet[req.Name] {
			missing = append(missing, req.Name)
			missingSet[req.Name] = true
		}
	}

	// One promotion hop: a missing skill implied by any already-matched
	// skill counts as matched. Implications of promoted skills are not
	// chased.
	promoted := []string{}
	promotedSet := make(map[string]bool)
	for _, s := range matched {
		for _, implied := range graph.Implied(s) {
			if missingSet[implied] && !promotedSet[implied] {
				promoted = append(promoted, implied)
				promotedSet[implied] = true
			}
		}
	}

	score := aiReport.MatchScore
	suggestions := append([]string{}, aiReport.Suggestions...)

	if len(promoted) > 0 {
		remaining := make([]string, 0, len(missing))
		for _, s := range missing {
			if !promotedSet[s] {
				remaining = append(remaining, s)
			}
		}
		missing = remaining
		for _, s := range promoted {
			matched = append(matched, s)
			matchedSet[s] = true
		}

		if score < 80 {
			boost := 5 * len(promoted)
			if boost > 20 {
				boost = 20
			}
			score += boost
			if score > 95 {
				score = 95
			}
			suggestions = append(suggestions, impliedSkillsSuggestion(matched, promoted))
		}
	}

	return &Report{
		ExtractedSkills: aiReport.ExtractedSkills,
		SkillMatches:    aiReport.SkillMatches,
		MatchScore:      clampScore(score),
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Suggestions:     suggestions,
	}
}
