package matching

import "strings"

// MatchSkills partitions a job's weighted requirements into matched and
// missing sets against a candidate's skill list. It is fully deterministic
// and serves both as the fallback when the generative analyzer is
// unavailable and as a cross-check merged into its result.
//
// Every resume skill is normalized into an insertion-ordered mapping of
// normalized form to original label (last write wins on collisions). A job
// skill matches when its normalized form equals a resume form, is a
// substring of one (or vice versa), or shares at least one whitespace token
// with one; the first satisfying resume entry in insertion order wins.
// Outputs carry the original job-skill names and preserve requirement
// input order.
func MatchSkills(resumeSkills []string, jobSkills []Requirement) (matched, missing []string) {
	order := make([]string, 0, len(resumeSkills))
	byForm := make(map[string]string, len(resumeSkills))
	for _, skill := range resumeSkills {
		form := Normalize(skill)
		if _, seen := byForm[form]; !seen {
			order = append(order, form)
		}
		byForm[form] = skill
	}

	matched = []string{}
	missing = []string{}
	for _, jobSkill := range jobSkills {
		form := Normalize(jobSkill.Name)

		if _, ok := byForm[form]; ok {
			matched = append(matched, jobSkill.Name)
			continue
		}

		found := false
		for _, resumeForm := range order {
			if strings.Contains(resumeForm, form) ||
				strings.Contains(form, resumeForm) ||
				tokensOverlap(form, resumeForm) {
				found = true
				break
			}
		}

		if found {
			matched = append(matched, jobSkill.Name)
		} else {
			missing = append(missing, jobSkill.Name)
		}
	}
	return matched, missing
}

// tokensOverlap reports whether the whitespace-split token sets of two
// normalized forms intersect.
func tokensOverlap(a, b string) bool {
	aTokens := strings.Fields(a)
	if len(aTokens) == 0 {
		return false
	}
	bTokens := make(map[string]bool)
	for _, t := range strings.Fields(b) {
		bTokens[t] = true
	}
	for _, t := range aTokens {
		if bTokens[t] {
			return true
		}
	}
	return false
}
