package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/pipeline"
	"github.com/ppiankov/veracity/internal/worker"
)

var (
	concurrency      int
	outputDir        string
	batchTimeout     time.Duration
	statementTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Fact-check multiple statements from a file in parallel",
	Long: `Batch reads statements from a file (one per line, # comments and
blank lines skipped) and checks them concurrently. Each statement gets
its own JSON and Markdown report in the output directory.

Example:
  veracity batch statements.txt
  veracity batch statements.txt --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./veracity-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&statementTimeout, "statement-timeout", 90*time.Second, "timeout per statement")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable provider response cache")
	batchCmd.Flags().StringVar(&fixturePath, "fixtures", "", "JSON file of search hits replacing live providers")
}

// checkJob checks one statement from the batch file
type checkJob struct {
	index     int
	statement string
	engine    *pipeline.Engine
	timeout   time.Duration
}

// checkResult carries one statement's outcome back to the collector
type checkResult struct {
	index     int
	statement string
	result    *model.AggregateResult
	err       error
}

// GetError returns the job error, if any
func (r checkResult) GetError() error {
	return r.err
}

// Execute runs the check under the per-statement timeout
func (j checkJob) Execute(ctx context.Context) worker.Result {
	jobCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	result, err := j.engine.CheckText(jobCtx, j.statement)
	return checkResult{index: j.index, statement: j.statement, result: result, err: err}
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	engine, err := buildEngine(cfg, fixturePath, logger)
	if err != nil {
		return err
	}

	statements, err := readStatements(file)
	if err != nil {
		return err
	}
	if len(statements) == 0 {
		return fmt.Errorf("no statements found in %s", file)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Checking %d statements with %d workers\n", len(statements), concurrency)

	pool := worker.NewPool(concurrency)
	pool.Start()

	done := make(chan struct{})
	timer := time.AfterFunc(batchTimeout, func() {
		pool.Shutdown()
		close(done)
	})
	defer timer.Stop()

	for i, statement := range statements {
		pool.Submit(checkJob{
			index:     i,
			statement: statement,
			engine:    engine,
			timeout:   statementTimeout,
		})
	}
	results := pool.Wait()

	select {
	case <-done:
		fmt.Fprintf(os.Stderr, "Batch timeout after %v; partial results only\n", batchTimeout)
	default:
	}

	ordered := make([]checkResult, 0, len(results))
	for _, r := range results {
		ordered = append(ordered, r.(checkResult))
	}
	sort.Slice(ordered, func(a, b int) bool { return ordered[a].index < ordered[b].index })

	renderer := pipeline.NewRenderer(5)
	successCount := 0
	for _, r := range ordered {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %q: %v\n", truncateStatement(r.statement), r.err)
			continue
		}
		successCount++

		base := filepath.Join(outputDir, fmt.Sprintf("statement-%03d", r.index+1))
		if err := renderer.RenderJSON(r.result, base+".json"); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL writing %s.json: %v\n", base, err)
			continue
		}
		if err := renderer.RenderMarkdown(r.result, base+".md"); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL writing %s.md: %v\n", base, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "OK   [%s] %q\n", r.result.Verdict, truncateStatement(r.statement))
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d/%d succeeded, reports in %s\n", successCount, len(statements), outputDir)
	return nil
}

// readStatements loads non-empty, non-comment lines from the input file
func readStatements(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var statements []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		statements = append(statements, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return statements, nil
}

func truncateStatement(s string) string {
	if len(s) <= 60 {
		return s
	}
	return s[:57] + "..."
}
