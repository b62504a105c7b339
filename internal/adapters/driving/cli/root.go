// Package cli implements the command line driving adapter.
// Commands call into the core services through their driving ports;
// wiring is injected from main so tests can substitute mocks.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/core/ports/driving"
	"github.com/codexankiiit31/Student-Career-Analyser-Agent/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verboseFlag bool
	configFlag  string
)

// Services bundles the driving-side dependencies the commands use.
type Services struct {
	Roadmap   driving.RoadmapService
	Market    driving.MarketService
	Match     driving.MatchService
	Retriever driving.Retriever
}

var (
	roadmapService driving.RoadmapService
	marketService  driving.MarketService
	matchService   driving.MatchService
	retriever      driving.Retriever

	// builder constructs the service graph on first use. Injected from
	// main; nil in tests, which set the service vars directly.
	builder func(configPath string) (Services, error)
)

var rootCmd = &cobra.Command{
	Use:   "careeragent",
	Short: "AI career assistant: roadmaps, market analysis and resume matching",
	Long: `careeragent is a career assistance toolkit. It generates learning
roadmaps grounded in scraped web content, analyzes the live job market
for a role, and scores resumes against job descriptions.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)

		// Skip wiring for commands that need no services.
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}
		return ensureServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file")
}

// SetBuilder injects the service construction function. Called from
// main before Execute.
func SetBuilder(b func(configPath string) (Services, error)) {
	builder = b
}

// Configure injects already-built services directly. Used by tests.
func Configure(s Services) {
	roadmapService = s.Roadmap
	marketService = s.Market
	matchService = s.Match
	retriever = s.Retriever
}

// ensureServices wires the service graph once.
func ensureServices() error {
	if roadmapService != nil || marketService != nil || matchService != nil || retriever != nil {
		return nil
	}
	if builder == nil {
		return errors.New("services not configured")
	}
	s, err := builder(configFlag)
	if err != nil {
		return err
	}
	Configure(s)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
