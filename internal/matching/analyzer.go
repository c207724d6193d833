package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/job-portal/internal/llm"
	"github.com/jonathan/job-portal/internal/prompts"
	"github.com/jonathan/job-portal/internal/schemas"
)

const (
	// Prompt excerpts keep token usage bounded. The resume carries most of
	// the signal so it gets the larger share.
	maxResumeExcerpt = 3000
	maxJobExcerpt    = 1000

	// titleScoreFloor is the minimum score for a resume whose text shows
	// relevant role experience even when few required skills are listed.
	titleScoreFloor = 40

	// fallbackScoreFloor and fallbackScoreCap bound the deterministic
	// score: any match earns at least the floor, and the capped score
	// leaves headroom below 100 that only the generative path can reach.
	fallbackScoreFloor = 30
	fallbackScoreCap   = 95
)

// roleKeywords are title and role words that indicate relevant experience
// regardless of how the skills section is written.
var roleKeywords = []string{
	"react", "frontend", "front-end", "front end",
	"developer", "engineer", "flutter", "mobile",
}

// Analyzer produces a match report for a resume against a job's weighted
// requirements. The primary path asks the generative model for a full
// analysis; when the model call or its response fails, a deterministic
// local analysis takes over so a report is always produced.
type Analyzer struct {
	client llm.Client
	graph  *Graph
	logger *zap.Logger
}

// NewAnalyzer builds an Analyzer. A nil graph uses the default tables, a
// nil logger discards log output, and a nil client routes every analysis
// through the deterministic fallback.
func NewAnalyzer(client llm.Client, graph *Graph, logger *zap.Logger) *Analyzer {
	if graph == nil {
		graph = DefaultGraph()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{client: client, graph: graph, logger: logger}
}

// Analyze runs the generative analysis of a resume against the job's
// requirements. It returns the report, the locally extracted seed skills
// (vocabulary hits plus one implication hop), and the error that forced
// the fallback path, if any. A non-nil error still comes with a usable
// report: the deterministic fallback result. Callers use the error only
// to decide whether reconciliation against the heuristic matcher applies.
func (a *Analyzer) Analyze(ctx context.Context, resumeText, jobDescription string, reqs []Requirement) (*Report, []string, error) {
	resumeText = strings.Join(strings.Fields(resumeText), " ")

	extracted := ExtractSkills(resumeText, a.graph)
	seed := append(append([]string{}, extracted...), a.graph.ImpliedAbsent(extracted)...)

	if a.client == nil {
		serr := &ServiceError{Message: "generative analysis unavailable", Cause: errors.New("no model client configured")}
		return a.fallbackReport(serr, seed, reqs), seed, serr
	}

	prompt, err := buildAnalysisPrompt(resumeText, jobDescription, reqs, seed)
	if err != nil {
		serr := &ServiceError{Message: "building analysis prompt", Cause: err}
		return a.fallbackReport(serr, seed, reqs), seed, serr
	}

	raw, err := a.client.GenerateJSON(ctx, prompt)
	if err != nil {
		serr := &ServiceError{Message: "generative analysis request failed", Cause: err}
		a.logger.Warn("model request failed", zap.Error(err))
		return a.fallbackReport(serr, seed, reqs), seed, serr
	}

	report, perr := parseAnalysisResponse(raw)
	if perr != nil {
		a.logger.Warn("model response rejected", zap.Error(perr))
		return a.fallbackReport(perr, seed, reqs), seed, perr
	}

	report.MatchScore = clampScore(report.MatchScore)
	if report.MatchScore < titleScoreFloor && hasRelevantRole(resumeText) {
		report.MatchScore = titleScoreFloor
		report.Suggestions = append(report.Suggestions, titleFloorSuggestion())
	}

	return report, seed, nil
}

// buildAnalysisPrompt renders the match analysis prompt template with the
// truncated resume and job texts, the formatted requirement list, and the
// locally extracted skills.
func buildAnalysisPrompt(resumeText, jobDescription string, reqs []Requirement, seed []string) (string, error) {
	template, err := prompts.Get("analyzer.json", "match_analysis")
	if err != nil {
		return "", err
	}

	return prompts.Format(template, map[string]string{
		"ResumeText":      excerpt(resumeText, maxResumeExcerpt),
		"JobDescription":  excerpt(jobDescription, maxJobExcerpt),
		"RequiredSkills":  formatRequirements(reqs),
		"ExtractedSkills": strings.Join(seed, ", "),
	}), nil
}

// formatRequirements renders the weighted requirement list as one bullet
// line per skill.
func formatRequirements(reqs []Requirement) string {
	lines := make([]string, 0, len(reqs))
	for _, req := range reqs {
		lines = append(lines, fmt.Sprintf("- %s (Importance: %d%%)", req.Name, req.Importance))
	}
	return strings.Join(lines, "\n")
}

// excerpt truncates a string to at most max runes.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// hasRelevantRole reports whether the resume text mentions any of the
// role keywords, case-insensitively.
func hasRelevantRole(resumeText string) bool {
	lower := strings.ToLower(resumeText)
	for _, keyword := range roleKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// modelResponse mirrors the JSON contract the prompt demands from the
// model. Scores arrive as JSON numbers and may carry a fractional part.
type modelResponse struct {
	ExtractedSkills []string          `json:"extracted_skills"`
	SkillMatches    []modelSkillMatch `json:"skill_matches"`
	MatchScore      float64           `json:"match_score"`
	MatchedSkills   []string          `json:"matched_skills"`
	MissingSkills   []string          `json:"missing_skills"`
	Suggestions     []string          `json:"suggestions"`
}

type modelSkillMatch struct {
	JobSkill   string  `json:"job_skill"`
	Present    bool    `json:"present"`
	Importance float64 `json:"importance"`
	Evidence   string  `json:"evidence"`
}

// parseAnalysisResponse validates the raw model output against the match
// response schema and decodes it into a Report. Any failure is returned
// as a *ResponseParseError so the caller falls back to local analysis.
func parseAnalysisResponse(raw string) (*Report, error) {
	clean := llm.CleanJSONBlock(raw)

	if err := schemas.ValidateMatchResponse(clean); err != nil {
		return nil, &ResponseParseError{Message: "model response failed schema validation", Cause: err}
	}

	var resp modelResponse
	if err := json.Unmarshal([]byte(clean), &resp); err != nil {
		return nil, &ResponseParseError{Message: "decoding model response", Cause: err}
	}

	// ExtractedSkills stays nil when the field is absent: downstream the
	// local seed substitutes only for an omitted field, never for an
	// explicit empty list.
	report := &Report{
		ExtractedSkills: resp.ExtractedSkills,
		SkillMatches:    make([]SkillMatch, 0, len(resp.SkillMatches)),
		MatchScore:      int(math.Round(resp.MatchScore)),
		MatchedSkills:   emptyIfNil(resp.MatchedSkills),
		MissingSkills:   emptyIfNil(resp.MissingSkills),
		Suggestions:     emptyIfNil(resp.Suggestions),
	}
	for _, sm := range resp.SkillMatches {
		report.SkillMatches = append(report.SkillMatches, SkillMatch{
			JobSkill:   sm.JobSkill,
			Present:    sm.Present,
			Importance: int(math.Round(sm.Importance)),
			Evidence:   sm.Evidence,
		})
	}
	return report, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// fallbackReport builds the deterministic local report used when the
// generative path fails. The seed skills are expanded by one further
// implication hop, matched against the requirements with a looser
// comparison than the heuristic matcher, and scored proportionally.
func (a *Analyzer) fallbackReport(cause error, seed []string, reqs []Requirement) *Report {
	implied := a.graph.ImpliedAbsent(seed)
	all := append(append([]string{}, seed...), implied...)

	matched, missing := a.fallbackMatch(all, reqs)

	score := 0
	if len(reqs) > 0 {
		score = len(matched) * 100 / len(reqs)
		if score > fallbackScoreCap {
			score = fallbackScoreCap
		}
	}
	if len(matched) > 0 && score < fallbackScoreFloor {
		score = fallbackScoreFloor
	}

	return &Report{
		ExtractedSkills: all,
		SkillMatches:    []SkillMatch{},
		MatchScore:      score,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Suggestions:     fallbackSuggestions(cause, seed, implied),
	}
}

// fallbackMatch compares requirement names against the extracted skill
// list. A requirement matches on exact membership, case-insensitive
// equality, equality after stripping dots and spaces, substring
// containment either way, or through its stack alias group: a job skill
// counts when its alias or any sibling component was extracted.
func (a *Analyzer) fallbackMatch(extracted []string, reqs []Requirement) (matched, missing []string) {
	have := make(map[string]bool, len(extracted))
	for _, s := range extracted {
		have[s] = true
	}

	matched = []string{}
	missing = []string{}
	for _, req := range reqs {
		name := req.Name
		found := have[name]

		if !found {
			lower := strings.ToLower(name)
			for _, skill := range extracted {
				sl := strings.ToLower(skill)
				if lower == sl || stripSeparators(lower) == stripSeparators(sl) ||
					strings.Contains(sl, lower) || strings.Contains(lower, sl) {
					found = true
					break
				}
			}
		}

		if !found {
			if alias, components, ok := a.graph.AliasGroupFor(name); ok {
				if have[alias] {
					found = true
				} else {
					for _, component := range components {
						if have[component] {
							found = true
							break
						}
					}
				}
			}
		}

		if found {
			matched = append(matched, name)
		} else {
			missing = append(missing, name)
		}
	}
	return matched, missing
}

// stripSeparators removes dots and spaces so "Node.js" and "nodejs"
// compare equal.
func stripSeparators(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, " ", "")
}
