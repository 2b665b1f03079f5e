package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/infolens/infolens/internal/pipeline"
	"github.com/infolens/infolens/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple URLs from a file in parallel",
	Long: `Batch analyzes multiple URLs concurrently:
- Read URLs from the input file (one per line, # comments allowed)
- Run the full forensic pipeline for each with a bounded worker pool
- Write one JSON report per URL into the output directory

Example:
  infolens batch urls.txt
  infolens batch urls.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./infolens-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	batchCmd.Flags().DurationVar(&timeout, "analyze-timeout", 2*time.Minute, "timeout for individual analyses")
	batchCmd.Flags().StringVar(&userAgent, "ua", "InfoLens/1.0 (contact@infolens.io)", "HTTP User-Agent")
	batchCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable evidence caching")
	batchCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := configFromFlags()
	cfg.Concurrency.BatchWorkers = concurrency

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input file:  %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:     %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:  %s\n\n", outputDir)

	p := pipeline.New(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}

	succeeded := 0
	for _, result := range results {
		if result.Error != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Error)
			continue
		}

		path := filepath.Join(outputDir, reportFileName(result.URL))
		data, err := json.MarshalIndent(result.Report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: marshal report: %v\n", result.URL, err)
			continue
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write report: %v\n", result.URL, err)
			continue
		}

		succeeded++
		fmt.Fprintf(os.Stderr, "✓ %s (%.0f%%) -> %s\n", result.URL, result.Report.CredibilityScore*100, path)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d/%d succeeded\n", succeeded, len(results))
	return nil
}

// reportFileName derives a stable filename from the URL
func reportFileName(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "report-" + hex.EncodeToString(hash[:8]) + ".json"
}
