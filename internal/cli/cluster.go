package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/biaslab/internal/narrative"
	"github.com/ppiankov/biaslab/internal/store"
	"github.com/spf13/cobra"
)

var (
	clusterWindow    int
	clusterThreshold float64
	clusterTimeout   time.Duration
	clusterNoStore   bool
)

// clusterCmd represents the cluster command
var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Group recently analyzed articles into narrative clusters",
	Long: `Cluster reads the most recent analyzed articles and greedily groups
them into labeled narratives by title-token overlap. Clustering is
order-sensitive first-fit: each article joins the first existing
cluster similar enough, otherwise starts a new one.

Example:
  biaslab cluster
  biaslab cluster --window 100 --threshold 0.4`,
	Args: cobra.NoArgs,
	RunE: runCluster,
}

func init() {
	rootCmd.AddCommand(clusterCmd)

	clusterCmd.Flags().IntVar(&clusterWindow, "window", 50, "number of most recent articles to cluster (5-200)")
	clusterCmd.Flags().Float64Var(&clusterThreshold, "threshold", 0.35, "Jaccard similarity threshold (0.1-0.9)")
	clusterCmd.Flags().DurationVar(&clusterTimeout, "timeout", 30*time.Second, "clustering timeout")
	clusterCmd.Flags().BoolVar(&clusterNoStore, "no-store", false, "do not persist narratives")
	clusterCmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "SQLite database path")
}

func runCluster(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), clusterTimeout)
	defer cancel()

	db, err := store.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	window := narrative.ClampWindow(clusterWindow)
	articles, err := db.RecentArticles(ctx, window)
	if err != nil {
		return err
	}
	if len(articles) == 0 {
		fmt.Fprintln(os.Stderr, "No articles to cluster")
		return nil
	}

	clusterer := narrative.NewClusterer(clusterThreshold)
	clusters := clusterer.Cluster(articles)

	if !clusterNoStore {
		if err := db.SaveNarratives(ctx, clusters); err != nil {
			return fmt.Errorf("persist narratives: %w", err)
		}
	}

	fmt.Fprintf(os.Stderr, "Clustered %d articles into %d narratives\n", len(articles), len(clusters))
	for _, c := range clusters {
		fmt.Printf("%s  (%d articles)\n", c.Label, len(c.ArticleIDs))
		if verbose {
			fmt.Printf("    ids: %v\n", c.ArticleIDs)
		}
	}
	return nil
}
