package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var syncForce bool

var syncCmd = &cobra.Command{
	Use:   "sync [career]",
	Short: "Build or refresh the vector index for a career",
	Long: `Prepares the retrieval index for a career ahead of time, so the first
roadmap request does not pay the scrape-and-build cost. With --force,
any existing index is discarded and rebuilt from stored documents.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVarP(&syncForce, "force", "f", false, "rebuild even if an index exists")
	rootCmd.AddCommand(syncCmd)
}

// rebuilder is implemented by retrievers that can discard and rebuild
// a topic's index.
type rebuilder interface {
	Rebuild(ctx context.Context, topic string) error
}

func runSync(cmd *cobra.Command, args []string) error {
	if retriever == nil {
		return errors.New("retriever not configured")
	}

	career := strings.Join(args, " ")
	ctx := cmd.Context()

	if syncForce {
		r, ok := retriever.(rebuilder)
		if !ok {
			return errors.New("configured retriever does not support forced rebuilds")
		}
		cmd.Printf("Rebuilding index for %q...\n", career)
		if err := r.Rebuild(ctx, career); err != nil {
			return fmt.Errorf("rebuild failed: %w", err)
		}
	} else {
		cmd.Printf("Preparing index for %q...\n", career)
		if err := retriever.EnsureReady(ctx, career); err != nil {
			return fmt.Errorf("index build failed: %w", err)
		}
	}

	cmd.Println("Index ready.")
	return nil
}
