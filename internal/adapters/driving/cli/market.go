package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/domain"
)

var (
	marketLocation string
	marketLevel    string
	marketJSON     bool
)

var marketCmd = &cobra.Command{
	Use:   "market [role]",
	Short: "Analyze the job market for a role",
	Long: `Scrapes live job postings for a role, computes salary and skill
statistics, compares demand against the previous run and produces
AI-generated market insights.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMarket,
}

func init() {
	marketCmd.Flags().StringVarP(&marketLocation, "location", "l", "", "filter postings by location")
	marketCmd.Flags().StringVar(&marketLevel, "level", "entry", "experience level (entry, mid, senior)")
	marketCmd.Flags().BoolVar(&marketJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(marketCmd)
}

func runMarket(cmd *cobra.Command, args []string) error {
	if marketService == nil {
		return errors.New("market service not configured")
	}

	role := strings.Join(args, " ")
	report, err := marketService.AnalyzeMarket(cmd.Context(), role, marketLocation, marketLevel)
	if err != nil {
		return fmt.Errorf("market analysis failed: %w", err)
	}

	if marketJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printMarketReport(cmd, report)
	return nil
}

func printMarketReport(cmd *cobra.Command, r *domain.MarketReport) {
	cmd.Printf("Market analysis: %s (%d postings analyzed)\n\n", r.Role, r.TotalJobsAnalyzed)

	cmd.Println("Summary:")
	cmd.Printf("  Salary:  %s\n", r.MarketSummary.AvgSalary)
	cmd.Printf("  Demand:  %s\n", r.MarketSummary.DemandLevel)
	cmd.Printf("  Growth:  %s\n", r.MarketSummary.GrowthTrend)
	cmd.Printf("  Cities:  %s\n", strings.Join(r.MarketSummary.TopCities, ", "))
	cmd.Println()

	cmd.Printf("Trend: %s (%s)\n\n", r.Trend.Description, r.Trend.Sentiment)

	if len(r.SkillInsights.Emerging) > 0 {
		cmd.Printf("Emerging skills: %s\n", strings.Join(r.SkillInsights.Emerging, ", "))
	}
	if len(r.SkillInsights.Declining) > 0 {
		cmd.Printf("Declining skills: %s\n", strings.Join(r.SkillInsights.Declining, ", "))
	}
	if r.SkillInsights.Reasoning != "" {
		cmd.Printf("  %s\n", r.SkillInsights.Reasoning)
	}
	cmd.Println()

	cmd.Println("Recommendations:")
	cmd.Printf("  Focus on: %s\n", strings.Join(r.Recommendations.FocusSkills, ", "))
	cmd.Printf("  Outlook:  %s\n", r.Recommendations.MarketOutlook)
	cmd.Printf("  %s\n", r.Recommendations.Advice)

	if len(r.LiveJobs) > 0 {
		cmd.Println()
		cmd.Println("Open positions:")
		for i, job := range r.LiveJobs {
			cmd.Printf("  [%d] %s at %s (%s)\n", i+1, job.Title, job.Company, job.Location)
			cmd.Printf("      %s | %s\n", job.Salary, job.ApplyLink)
		}
	}
}
