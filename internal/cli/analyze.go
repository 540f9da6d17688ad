package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/biaslab/internal/model"
	"github.com/ppiankov/biaslab/internal/pipeline"
	"github.com/ppiankov/biaslab/internal/store"
	"github.com/spf13/cobra"
)

var (
	analyzeText    string
	analyzeTitle   string
	analyzeOutlet  string
	analyzeFull    bool
	analyzeTimeout time.Duration
	outJSON        string
	userAgent      string
	maxBytes       int64
	noCache        bool
	noRobots       bool
	insecureTLS    bool
	noStore        bool
	dbPath         string
	httpProxy      string
	httpsProxy     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze one article for bias signals",
	Long: `Analyze fetches an article (or takes raw text), scores it on the five
bias dimensions, extracts supporting highlights, writes a neutral
summary and derives the overall bias index.

With --full, atomic claims are extracted and enriched with likely
primary sources under a strict time budget.

Example:
  biaslab analyze https://example.com/story
  biaslab analyze https://example.com/story --full --json report.json
  biaslab analyze --text "Critics say the policy is shocking." --title "Op-ed"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "analyze raw text instead of fetching a URL")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "article title")
	analyzeCmd.Flags().StringVar(&analyzeOutlet, "outlet", "", "publishing outlet")
	analyzeCmd.Flags().BoolVar(&analyzeFull, "full", false, "include claims + primary sources (slower)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write report JSON to path (default: stdout)")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "BiasLab/0.1 (+https://github.com/ppiankov/biaslab)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	analyzeCmd.Flags().BoolVar(&noStore, "no-store", false, "do not persist the report")
	analyzeCmd.Flags().StringVar(&dbPath, "db", defaultDBPath(), "SQLite database path")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// buildConfig assembles the runtime configuration from flags and
// environment. API keys come from the environment only.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	cfg.LLM.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.LLM.AnthropicKey = os.Getenv("ANTHROPIC_API_KEY")
	cfg.Sourcing.TavilyKey = os.Getenv("TAVILY_API_KEY")
	return cfg
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	var url string
	if len(args) == 1 {
		url = args[0]
	}
	if url == "" && analyzeText == "" {
		return fmt.Errorf("provide a url argument or --text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg := buildConfig()
	analyzer, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	report, err := analyzer.Analyze(ctx, model.AnalysisRequest{
		Title:  analyzeTitle,
		Outlet: analyzeOutlet,
		URL:    url,
		Text:   analyzeText,
		Full:   analyzeFull,
	})
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if !noStore {
		id, err := persistReport(ctx, dbPath, report)
		if err != nil {
			return fmt.Errorf("persist report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Stored article %d\n", id)
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Bias index: %d/100 (%s)\n", report.Overall.Value, report.Overall.Band)
		fmt.Fprintf(os.Stderr, "✓ Highlights: %d\n", len(report.Highlights))
		if analyzeFull {
			fmt.Fprintf(os.Stderr, "✓ Claims: %d\n", len(report.Claims))
		}
	}

	return writeReport(report, outJSON)
}

func persistReport(ctx context.Context, path string, report *model.AnalysisReport) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	db, err := store.NewStore(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = db.Close() }()
	return db.SaveReport(ctx, report)
}

func writeReport(report *model.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
