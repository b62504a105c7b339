package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var matchJSON bool

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score the stored resume against the stored job description",
	RunE:  runMatch,
}

var atsCmd = &cobra.Command{
	Use:   "ats",
	Short: "Suggest ATS optimisations for the stored resume",
	RunE:  runATS,
}

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Generate a tailored cover letter",
	RunE:  runCoverLetter,
}

func init() {
	matchCmd.Flags().BoolVar(&matchJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(atsCmd)
	rootCmd.AddCommand(coverLetterCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	if matchService == nil {
		return errors.New("match service not configured")
	}

	report, err := matchService.Match(cmd.Context())
	if err != nil {
		return fmt.Errorf("match analysis failed: %w", err)
	}

	if matchJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Match score: %d/100 (embedding similarity %.1f)\n\n",
		report.MatchScore, report.SimilarityScore)
	if len(report.RelevantExperiences) > 0 {
		cmd.Printf("Relevant experience:\n")
		for _, e := range report.RelevantExperiences {
			cmd.Printf("  - %s\n", e)
		}
	}
	if len(report.RelevantSkills) > 0 {
		cmd.Printf("Matching skills: %s\n", strings.Join(report.RelevantSkills, ", "))
	}
	if len(report.MissingSkills) > 0 {
		cmd.Printf("Missing skills:  %s\n", strings.Join(report.MissingSkills, ", "))
	}
	cmd.Println()
	cmd.Println(report.Summary)
	cmd.Println(report.Recommendation)
	return nil
}

func runATS(cmd *cobra.Command, _ []string) error {
	if matchService == nil {
		return errors.New("match service not configured")
	}

	report, err := matchService.ATSOptimize(cmd.Context())
	if err != nil {
		return fmt.Errorf("ats analysis failed: %w", err)
	}

	cmd.Printf("ATS score: %d/100\n\n", report.ATSScore)
	printList(cmd, "Missing keywords", report.MissingKeywords)
	printList(cmd, "Formatting issues", report.FormattingIssues)
	printList(cmd, "Section improvements", report.SectionImprovements)
	printList(cmd, "Rewrite suggestions", report.RewriteSuggestions)
	if report.Summary != "" {
		cmd.Println(report.Summary)
	}
	return nil
}

func runCoverLetter(cmd *cobra.Command, _ []string) error {
	if matchService == nil {
		return errors.New("match service not configured")
	}

	letter, err := matchService.GenerateCoverLetter(cmd.Context())
	if err != nil {
		return fmt.Errorf("cover letter generation failed: %w", err)
	}

	cmd.Println(letter.Content)
	cmd.Printf("\n(%d words)\n", letter.WordCount)
	return nil
}

func printList(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("%s:\n", title)
	for _, item := range items {
		cmd.Printf("  - %s\n", item)
	}
	cmd.Println()
}
