package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/credence/internal/model"
	"github.com/ppiankov/credence/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	analyzeFile    string
	analyzeURL     string
	analyzeTimeout time.Duration
	outJSON        string
	noCache        bool
	llmProvider    string
	llmModel       string
	verifyWorkers  int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze a piece of text and print its trust assessment",
	Long: `Analyze runs the full trust pipeline over a piece of text:
- Extract factual claims
- Verify each claim against public evidence sources
- Score sentiment and emotional charge
- Assess the credibility of the originating source
- Aggregate everything into an explainable trust score

The text is given as an argument or read from a file with --file.

Example:
  credence analyze "The Eiffel Tower is in Berlin."
  credence analyze --file article.txt --url https://example.com/article
  credence analyze "Some claim." --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "read the text to analyze from a file")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "origin URL of the text (enables source credibility checks)")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 3*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write the full JSON report to this path")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the evidence query cache")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	analyzeCmd.Flags().IntVar(&verifyWorkers, "workers", 4, "concurrent claim verification workers")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := analyzeInput(args)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if cmd.Flags().Changed("workers") {
		cfg.Concurrency.VerifyWorkers = verifyWorkers
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
	cfg.LoadCredentialsFromEnv()

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return err
	}

	result, err := p.Analyze(ctx, model.AnalysisRequest{Text: text, URL: analyzeURL})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if outJSON != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		if err := os.WriteFile(outJSON, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", outJSON)
	}

	printResult(result)
	return nil
}

func analyzeInput(args []string) (string, error) {
	if analyzeFile != "" {
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}
	return "", fmt.Errorf("provide the text as an argument or with --file")
}

func printResult(result *model.AnalysisResponse) {
	fmt.Printf("Trust score: %.2f\n", result.TrustScore)
	fmt.Printf("Summary:     %s\n", result.Summary)

	if len(result.Breakdown.ClaimExtraction) > 0 {
		fmt.Println("\nClaims:")
		for _, c := range result.Breakdown.ClaimExtraction {
			fmt.Printf("  [%s] %s\n", c.Status, c.Claim)
			if c.Reason != "" {
				fmt.Printf("      %s\n", c.Reason)
			}
		}
	}

	fmt.Printf("\nSentiment: %s (compound %.2f)\n", result.Breakdown.SentimentAnalysis.Tone, result.Breakdown.SentimentAnalysis.Score)
	fmt.Printf("Source:    %.2f - %s\n", result.Breakdown.SourceAnalysis.CredibilityScore, result.Breakdown.SourceAnalysis.PotentialBias)

	if len(result.Flags) > 0 {
		fmt.Println("\nFlags:")
		for _, f := range result.Flags {
			fmt.Printf("  - %s\n", f)
		}
	}
}
