package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-pagefit/internal/config"
	"github.com/jonathan/resume-pagefit/internal/db"
	"github.com/jonathan/resume-pagefit/internal/llm"
	"github.com/jonathan/resume-pagefit/internal/observability"
	"github.com/jonathan/resume-pagefit/internal/parsing"
	"github.com/jonathan/resume-pagefit/internal/pipeline"
	"github.com/jonathan/resume-pagefit/internal/rewriting"
	"github.com/jonathan/resume-pagefit/internal/sections"
	"github.com/jonathan/resume-pagefit/internal/skills"
	"github.com/jonathan/resume-pagefit/internal/validation"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Fill resume sections with keyword-targeted bullets and fit to one page",
	Long: `Generates bullets for the target keywords, writes them into the resume's
experience, project and education sections, categorizes the keywords into the
skills section, and shrinks bullet counts until the document prints on one page.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runTailor,
}

var (
	tailorConfigPath     string
	tailorInput          string
	tailorOutput         string
	tailorReport         string
	tailorKeywords       string
	tailorKeywordsFile   string
	tailorContext        string
	tailorWordLimit      int
	tailorFullTailor     bool
	tailorStaticSkills   bool
	tailorAPIKey         string
	tailorDatabaseURL    string
	tailorMeasureTimeout int
)

func init() {
	tailorCmd.Flags().StringVar(&tailorConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	tailorCmd.Flags().StringVarP(&tailorInput, "input", "i", "", "Path to resume HTML file")
	tailorCmd.Flags().StringVarP(&tailorOutput, "output", "o", "", "Path to write the fitted HTML (defaults to stdout)")
	tailorCmd.Flags().StringVar(&tailorReport, "report", "", "Path to write the JSON fit report (optional)")
	tailorCmd.Flags().StringVarP(&tailorKeywords, "keywords", "k", "", "Comma-separated target keywords")
	tailorCmd.Flags().StringVar(&tailorKeywordsFile, "keywords-file", "", "File with target keywords, one per line or comma-separated")
	tailorCmd.Flags().StringVarP(&tailorContext, "context", "c", "", "Role context for generation, e.g. \"Senior Backend Engineer\"")
	tailorCmd.Flags().IntVar(&tailorWordLimit, "word-limit", config.DefaultWordLimit, "Maximum words per generated bullet")
	tailorCmd.Flags().BoolVar(&tailorFullTailor, "full-tailor", false, "Rewrite existing bullets toward the keywords before filling")
	tailorCmd.Flags().BoolVar(&tailorStaticSkills, "static-skills", false, "Categorize skills with the built-in table instead of the LLM")
	tailorCmd.Flags().IntVar(&tailorMeasureTimeout, "measure-timeout", config.DefaultMeasureTimeoutSeconds, "Seconds allowed per page measurement")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	tailorCmd.Flags().StringVar(&tailorAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run persistence
	tailorCmd.Flags().StringVar(&tailorDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := resolveTailorConfig(cmd)
	if err != nil {
		return err
	}

	markup, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	keywords, err := collectKeywords(cfg)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn("failed to close LLM client", zap.Error(closeErr))
		}
	}()

	var categorizer skills.Categorizer = skills.NewGeminiCategorizer(client, logger)
	if tailorStaticSkills {
		categorizer = skills.StaticCategorizer{}
	}

	opts := pipeline.Options{
		Markup:      string(markup),
		Keywords:    keywords,
		Context:     cfg.Context,
		WordLimit:   cfg.WordLimit,
		FullTailor:  cfg.FullTailor,
		Source:      cfg.Input,
		Generator:   rewriting.NewGeminiGenerator(client, logger),
		Measurer:    validation.NewChromeMeasurer(cfg.MeasureTimeout(), logger),
		Categorizer: categorizer,
		Logger:      logger,
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		opts.Store = database
	}

	printer := observability.NewPrinter(os.Stderr)
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
			if anchors, ok := event.Content.(sections.Anchors); ok {
				printer.PrintAnchors(anchors)
			}
		}
	}

	result, err := pipeline.Tailor(ctx, opts)
	if err != nil {
		return err
	}

	if err := writeOutput(cfg.Output, result.Markup); err != nil {
		return err
	}
	if cfg.Report != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal fit report: %w", err)
		}
		if err := os.WriteFile(cfg.Report, data, 0644); err != nil {
			return fmt.Errorf("failed to write fit report: %w", err)
		}
	}

	if cfg.Verbose {
		printer.PrintCategories(result.Categories)
		printer.PrintFitReport(result.Report)
	}
	if result.Report != nil && result.Report.Warning != "" {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: %s\n", result.Report.Warning)
	}
	return nil
}

// resolveTailorConfig layers flags over the config file and fills defaults
func resolveTailorConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if tailorConfigPath != "" {
		loaded, err := config.LoadConfig(tailorConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Only override if the flag was explicitly set
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = tailorInput
	}
	if flags.Changed("output") {
		cfg.Output = tailorOutput
	}
	if flags.Changed("report") {
		cfg.Report = tailorReport
	}
	if flags.Changed("keywords") {
		cfg.Keywords = parsing.ParseKeywords(tailorKeywords)
	}
	if flags.Changed("keywords-file") {
		cfg.KeywordsFile = tailorKeywordsFile
	}
	if flags.Changed("context") {
		cfg.Context = tailorContext
	}
	if flags.Changed("word-limit") {
		cfg.WordLimit = tailorWordLimit
	}
	if flags.Changed("full-tailor") {
		cfg.FullTailor = tailorFullTailor
	}
	if flags.Changed("measure-timeout") {
		cfg.MeasureTimeoutSeconds = tailorMeasureTimeout
	}
	if flags.Changed("api-key") {
		cfg.APIKey = tailorAPIKey
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = tailorDatabaseURL
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}

	cfg = cfg.MergeWithDefaults(config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	})

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if cfg.Input == "" {
		return cfg, fmt.Errorf("--input is required (via flag or config)")
	}
	if cfg.APIKey == "" {
		return cfg, fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}
	return cfg, nil
}

// collectKeywords merges inline and file keywords, keeping an empty list non-nil
func collectKeywords(cfg config.Config) ([]string, error) {
	var fromFile []string
	if cfg.KeywordsFile != "" {
		var err error
		fromFile, err = parsing.ReadKeywordsFile(cfg.KeywordsFile)
		if err != nil {
			return nil, err
		}
	}
	keywords := parsing.MergeKeywords(cfg.Keywords, fromFile)
	if keywords == nil {
		keywords = []string{}
	}
	return keywords, nil
}

func writeOutput(path, markup string) error {
	if path == "" {
		_, err := fmt.Fprintln(os.Stdout, markup)
		return err
	}
	if err := os.WriteFile(path, []byte(markup), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
