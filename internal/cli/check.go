package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/pipeline"
)

var (
	outJSON       string
	outMD         string
	checkTimeout  time.Duration
	noCache       bool
	singleClaim   bool
	fetchPages    bool
	fixturePath   string
	assistEnabled bool
	assistBackend string
	assistModel   string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <statement>",
	Short: "Fact-check a statement against public evidence",
	Long: `Check extracts claims from the statement, gathers supporting and
opposing evidence, and reports a verdict per claim plus an aggregate.

Example:
  veracity check "The Eiffel Tower is 330 meters tall."
  veracity check "US GDP grew 3.2% in 2023" --json result.json --md report.md
  veracity check "..." --assist --assist-provider openai
  veracity check "..." --fixtures testdata/hits.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (- for stdout)")
	checkCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (- for stdout)")
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 2*time.Minute, "overall check timeout")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable provider response cache")
	checkCmd.Flags().BoolVar(&singleClaim, "single-claim", false, "check the whole input as one claim")
	checkCmd.Flags().BoolVar(&fetchPages, "fetch-pages", false, "fetch result pages for publish dates (slower)")
	checkCmd.Flags().StringVar(&fixturePath, "fixtures", "", "JSON file of search hits replacing live providers")

	checkCmd.Flags().BoolVar(&assistEnabled, "assist", false, "enable AI-assisted query refinement and explanations")
	checkCmd.Flags().StringVar(&assistBackend, "assist-provider", "openai", "assist provider (openai, anthropic, ollama)")
	checkCmd.Flags().StringVar(&assistModel, "assist-model", "", "assist model name")
}

func runCheck(cmd *cobra.Command, args []string) error {
	statement := strings.Join(args, " ")
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg.Cache.Enabled = cfg.Cache.Enabled && !noCache
	cfg.Pipeline.MultiClaim = cfg.Pipeline.MultiClaim && !singleClaim
	cfg.Enrichment.FetchPages = cfg.Enrichment.FetchPages || fetchPages

	if assistEnabled {
		if err := configureAssist(cfg); err != nil {
			return err
		}
	}

	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	engine, err := buildEngine(cfg, fixturePath, logger)
	if err != nil {
		return err
	}

	result, err := engine.CheckText(ctx, statement)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	renderer := pipeline.NewRenderer(5)
	if outJSON != "" {
		if err := renderer.RenderJSON(result, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(result, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
	}
	if outJSON == "" && outMD == "" {
		renderer.RenderSummary(result)
	}
	return nil
}

// configureAssist fills assist settings from flags and environment
func configureAssist(cfg *model.Config) error {
	cfg.Assist.Provider = assistBackend
	if assistModel != "" {
		cfg.Assist.Model = assistModel
	}

	switch assistBackend {
	case "openai":
		cfg.Assist.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Assist.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic":
		cfg.Assist.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Assist.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Assist.BaseURL = baseURL
		}
	default:
		return fmt.Errorf("unknown assist provider: %s", assistBackend)
	}
	return nil
}
