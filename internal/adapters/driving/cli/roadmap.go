package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var roadmapJSON bool

var roadmapCmd = &cobra.Command{
	Use:   "roadmap [query]",
	Short: "Generate a career learning roadmap",
	Long: `Generates a week-by-week learning roadmap for the career detected in
the query, grounded in scraped learning-path content. The first run
for a career scrapes sources and builds a vector index; later runs
reuse the persisted index.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoadmap,
}

func init() {
	roadmapCmd.Flags().BoolVar(&roadmapJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, args []string) error {
	if roadmapService == nil {
		return errors.New("roadmap service not configured")
	}

	query := strings.Join(args, " ")
	result, err := roadmapService.GenerateRoadmap(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("roadmap generation failed: %w", err)
	}

	if roadmapJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal roadmap: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Career: %s (grounded on %d sources)\n\n", result.Career, result.SourcesUsed)
	cmd.Println(result.Content)
	return nil
}

var tipsCmd = &cobra.Command{
	Use:   "tips [career]",
	Short: "Quick actionable tips for a career",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if roadmapService == nil {
			return errors.New("roadmap service not configured")
		}

		tips, err := roadmapService.QuickTips(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return fmt.Errorf("tips generation failed: %w", err)
		}
		for i, tip := range tips {
			cmd.Printf("  %d. %s\n", i+1, tip)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tipsCmd)
}
