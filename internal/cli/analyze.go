package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/infolens/infolens/internal/model"
	"github.com/infolens/infolens/internal/pipeline"
)

var (
	analyzeText string
	outJSON     string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	noRobots    bool
	insecureTLS bool
	httpProxy   string
	httpsProxy  string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze a URL or raw text and print the forensic report",
	Long: `Analyze runs the full forensic pipeline over one piece of content:
- Extract factual claims and named entities
- Cross-verify each claim against knowledge-base and web-search evidence
- Infer the origin/primary publisher
- Synthesize a dissemination graph
- Compute a weighted credibility score

Example:
  infolens analyze https://example.com/article
  infolens analyze --text "NASA confirmed the Artemis II launch window in 2026."
  infolens analyze https://example.com/article --json report.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "analyze raw text instead of a URL")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write the JSON report to this path (default: stdout)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "InfoLens/1.0 (contact@infolens.io)", "HTTP User-Agent")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable evidence caching")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")
	analyzeCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	analyzeCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	url := ""
	if len(args) > 0 {
		url = args[0]
	}
	if url == "" && analyzeText == "" {
		return fmt.Errorf("provide a URL argument or --text")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg := configFromFlags()

	p := pipeline.New(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", inputLabel(url, analyzeText))
	}

	report, err := p.Analyze(ctx, url, analyzeText)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if err := writeReport(report, outJSON); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\nCredibility: %.0f%%\n", report.CredibilityScore*100)
	fmt.Fprintf(os.Stderr, "%s\n", report.ForensicNotes)
	return nil
}

// configFromFlags builds the configuration shared by analyze and batch
func configFromFlags() *model.Config {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.HTTP.RespectRobots = !noRobots
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	return cfg
}

func writeReport(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", path)
	}
	return nil
}

func inputLabel(url, text string) string {
	if url != "" {
		return url
	}
	if len(text) > 60 {
		return text[:60] + "..."
	}
	return text
}
