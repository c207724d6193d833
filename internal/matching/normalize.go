// Package matching implements the resume-to-job skill matching subsystem:
// skill normalization, the static skill relationship graph, a deterministic
// heuristic matcher, the generative match analyzer, and the reconciler that
// merges both results into a single match report.
package matching

import (
	"regexp"
	"strings"
)

// normalizationRule rewrites a common skill-name variant to its canonical
// short form. Rules are applied in table order and each rule replaces only
// the first occurrence of its pattern, so earlier rewrites can affect
// later pattern matches.
type normalizationRule struct {
	pattern     string
	replacement string
}

var normalizationRules = []normalizationRule{
	{"react.js", "react"},
	{"reactjs", "react"},
	{"node.js", "node"},
	{"nodejs", "node"},
	{"express.js", "express"},
	{"expressjs", "express"},
	{"vue.js", "vue"},
	{"vuejs", "vue"},
	{"angular.js", "angular"},
	{"angularjs", "angular"},
	{"mongodb", "mongo"},
	{"postgresql", "postgres"},
	{"html5", "html"},
	{"css3", "css"},
	{"rest api", "rest"},
	{"restful api", "rest"},
	{"machine learning", "ml"},
	{"artificial intelligence", "ai"},
	{"version control", "git"},
	{"source control", "git"},
}

var (
	// strippedTokens are generic qualifiers that carry no identity:
	// "React framework" and "React" name the same skill.
	strippedTokens = regexp.MustCompile(`\b(framework|library|js|lang|language)\b`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes a skill label into the form used for all
// equality and containment comparisons. It lower-cases and trims the
// label, applies the variant rewrite table, strips standalone qualifier
// tokens, and collapses whitespace. Empty input normalizes to "".
//
// Normalize is pure and idempotent: Normalize(Normalize(x)) == Normalize(x).
func Normalize(label string) string {
	if label == "" {
		return ""
	}

	normalized := strings.ToLower(strings.TrimSpace(label))

	for _, rule := range normalizationRules {
		if strings.Contains(normalized, rule.pattern) {
			normalized = strings.Replace(normalized, rule.pattern, rule.replacement, 1)
		}
	}

	normalized = strippedTokens.ReplaceAllString(normalized, "")
	normalized = whitespaceRun.ReplaceAllString(normalized, " ")

	return strings.TrimSpace(normalized)
}
