package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ppiankov/biaslab/internal/pipeline"
	"github.com/ppiankov/biaslab/internal/store"
	"github.com/ppiankov/biaslab/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchFull    bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple article URLs from a file in parallel",
	Long: `Batch analyzes multiple URLs concurrently:
- Read URLs from input file (one per line, # for comments)
- Analyze URLs in parallel with configurable worker count
- Persist every report and write individual JSON files

Example:
  biaslab batch urls.txt
  biaslab batch urls.txt --concurrency 8 --output-dir ./reports
  biaslab batch urls.txt --full --timeout 10m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./biaslab-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&batchFull, "full", false, "include claims + primary sources (slower)")
	batchCmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist reports")
	batchCmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "SQLite database path")
	batchCmd.Flags().StringVar(&userAgent, "ua", "BiasLab/0.1 (+https://github.com/ppiankov/biaslab)", "HTTP User-Agent")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	batchCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	batchCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	urls, err := worker.ReadURLFile(args[0])
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", args[0])
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := buildConfig()
	analyzer, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Analyzing %d URLs with %d workers\n", len(urls), concurrency)

	processor := worker.NewBatchProcessor(analyzer, concurrency, batchFull)
	results := processor.ProcessURLs(ctx, urls)

	var db *store.Store
	if !noStore {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return err
		}
		db, err = store.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
	}

	failed := 0
	for i, res := range results {
		if res.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.URL, res.Error)
			continue
		}

		if db != nil {
			if _, err := db.SaveReport(ctx, res.Report); err != nil {
				fmt.Fprintf(os.Stderr, "✗ store %s: %v\n", res.URL, err)
			}
		}

		data, err := json.MarshalIndent(res.Report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ marshal %s: %v\n", res.URL, err)
			continue
		}
		path := filepath.Join(outputDir, fmt.Sprintf("report-%03d.json", i+1))
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ write %s: %v\n", path, err)
			continue
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ %s → %s (index %d)\n", res.URL, path, res.Report.Overall.Value)
		}
	}

	fmt.Fprintf(os.Stderr, "Done: %d analyzed, %d failed\n", len(results)-failed, failed)
	return nil
}
