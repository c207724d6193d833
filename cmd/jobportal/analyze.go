package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-portal/internal/extraction"
	"github.com/jonathan/job-portal/internal/llm"
	"github.com/jonathan/job-portal/internal/logger"
	"github.com/jonathan/job-portal/internal/matching"
)

var (
	analyzeResume string
	analyzeJob    string
	analyzeSkills string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long: `Run the matching pipeline once, outside the server, and print the
match report as JSON. Skills are given as name:importance pairs, for
example "React:90,Node.js:70". Without GEMINI_API_KEY the deterministic
fallback analysis runs.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeResume, "resume", "", "Path to the resume file (PDF, DOCX or plain text)")
	analyzeCmd.Flags().StringVar(&analyzeJob, "job", "", "Path to a text file with the job description")
	analyzeCmd.Flags().StringVar(&analyzeSkills, "skills", "", "Comma-separated name:importance pairs")
	_ = analyzeCmd.MarkFlagRequired("resume")
	_ = analyzeCmd.MarkFlagRequired("skills")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	reqs, err := parseSkillFlags(analyzeSkills)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(analyzeResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	jobDescription := ""
	if analyzeJob != "" {
		jobText, err := os.ReadFile(analyzeJob)
		if err != nil {
			return fmt.Errorf("failed to read job description: %w", err)
		}
		jobDescription = string(jobText)
	}

	log, err := logger.New(os.Getenv("DEBUG") == "true")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var client llm.Client
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		llmConfig := llm.DefaultConfig()
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			llmConfig = llmConfig.WithModel(model)
		}
		client, err = llm.NewClient(cmd.Context(), llmConfig, apiKey)
		if err != nil {
			return fmt.Errorf("failed to create model client: %w", err)
		}
		defer func() { _ = client.Close() }()
	}

	service := matching.NewService(client, nil, log)
	report, err := service.Process(context.Background(), matching.Document{
		MIME: mimeFromPath(analyzeResume),
		Data: data,
	}, reqs, jobDescription)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// parseSkillFlags turns "React:90,Node.js:70" into weighted
// requirements. A pair without a weight defaults to 50.
func parseSkillFlags(raw string) ([]matching.Requirement, error) {
	reqs := []matching.Requirement{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}

		name := pair
		importance := 50
		if idx := strings.LastIndex(pair, ":"); idx >= 0 {
			parsed, err := strconv.Atoi(strings.TrimSpace(pair[idx+1:]))
			if err != nil {
				return nil, fmt.Errorf("invalid skill weight in %q", pair)
			}
			name = strings.TrimSpace(pair[:idx])
			importance = parsed
		}
		if name == "" {
			return nil, fmt.Errorf("empty skill name in %q", raw)
		}
		reqs = append(reqs, matching.Requirement{Name: name, Importance: importance})
	}
	if len(reqs) == 0 {
		return nil, fmt.Errorf("at least one skill is required")
	}
	return reqs, nil
}

// mimeFromPath maps a file extension to the extractor's MIME types.
func mimeFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extraction.MIMEPDF
	case ".docx":
		return extraction.MIMEDOCX
	default:
		return extraction.MIMEText
	}
}
