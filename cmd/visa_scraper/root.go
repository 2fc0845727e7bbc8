package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/visa-scraper/internal/config"
	"github.com/jonathan/visa-scraper/internal/countries"
	"github.com/jonathan/visa-scraper/internal/extraction"
	"github.com/jonathan/visa-scraper/internal/fetch"
	"github.com/jonathan/visa-scraper/internal/llm"
	"github.com/jonathan/visa-scraper/internal/logging"
	"github.com/jonathan/visa-scraper/internal/observability"
	"github.com/jonathan/visa-scraper/internal/pipeline"
	"github.com/jonathan/visa-scraper/internal/pipeline/steps"
	"github.com/jonathan/visa-scraper/internal/types"
)

// globalOptions holds the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	registry   string
	apiKey     string
	model      string
	useBrowser bool
	delay      time.Duration
	userAgent  string
	verbose    bool

	// resolved in PersistentPreRunE
	cfg config.Config
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "visa_scraper",
		Short: "Digital nomad visa scraper",
		Long: `Retrieves digital nomad visa information from official government pages, extracts
structured fields with Gemini (falling back to keyword/regex extraction), merges the results
per country and writes visa_data.json plus a Sanity import script.

Configuration can be loaded from a JSON file using --config. Command-line flags override config file values.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			logging.Init(cmd.ErrOrStderr(), cfg.Verbose)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVar(&opts.registry, "registry", "", "Path to a country registry JSON file (defaults to the built-in list)")
	flags.StringVar(&opts.apiKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	flags.StringVar(&opts.model, "model", "", "Gemini model used for extraction")
	flags.BoolVar(&opts.useBrowser, "use-browser", false, "Re-render thin pages in headless Chrome (requires Chrome)")
	flags.DurationVar(&opts.delay, "delay", pipeline.DefaultDelay, "Pause between countries")
	flags.StringVar(&opts.userAgent, "user-agent", "", "User agent sent to government sites")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(
		newAllCommand(opts),
		newCountryCommand(opts),
		newListCommand(opts),
	)
	return rootCmd
}

// resolveConfig merges the config file, explicitly set flags, the environment and defaults.
// Command-line flags take priority over the config file.
func resolveConfig(cmd *cobra.Command, opts *globalOptions) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("registry") {
		cfg.Registry = opts.registry
	}
	if flags.Changed("api-key") {
		cfg.APIKey = opts.apiKey
	}
	if flags.Changed("model") {
		cfg.Model = opts.model
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = opts.useBrowser
	}
	if flags.Changed("delay") {
		cfg.Delay = opts.delay.String()
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = opts.userAgent
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	defaults := config.Config{
		APIKey:    os.Getenv("GEMINI_API_KEY"),
		OutDir:    ".",
		Delay:     pipeline.DefaultDelay.String(),
		UserAgent: fetch.DefaultUserAgent,
	}
	return cfg.MergeWithDefaults(defaults), nil
}

// loadRegistry returns the configured registry or the built-in one.
func loadRegistry(cfg config.Config) (*countries.Registry, error) {
	if cfg.Registry == "" {
		return countries.Default(), nil
	}
	return countries.Load(cfg.Registry)
}

// newExtractor builds the structured extractor with manual fallback, or the manual
// extractor alone when no API key is configured. The returned closer releases the client.
func newExtractor(ctx context.Context, cfg config.Config) (extraction.Extractor, func(), error) {
	if cfg.APIKey == "" {
		logging.Warn("no API key configured (GEMINI_API_KEY or --api-key), using manual extraction only")
		return extraction.Manual{}, func() {}, nil
	}

	llmConfig := llm.DefaultConfig()
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierLite, cfg.Model)
	}
	client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	extractor := extraction.WithFallback(extraction.NewStructured(client), extraction.Manual{})
	return extractor, func() { _ = client.Close() }, nil
}

// newFetcher builds the HTTP fetcher, with browser rendering when enabled.
func newFetcher(cfg config.Config) fetch.Fetcher {
	fetcherConfig := &fetch.HTTPFetcherConfig{
		Options: &fetch.Options{
			Timeout:   fetch.DefaultTimeout,
			UserAgent: cfg.UserAgent,
			Transport: logging.Transport(http.DefaultTransport),
		},
	}
	if cfg.UseBrowser {
		fetcherConfig.Renderer = &fetch.ChromeRenderer{Timeout: fetch.DefaultBrowserTimeout}
	}
	return fetch.NewHTTPFetcher(fetcherConfig)
}

// newDriver wires registry, fetcher and extractor into a pipeline driver.
func newDriver(ctx context.Context, cfg config.Config, printer *observability.Printer) (*pipeline.Driver, func(), error) {
	registry, err := loadRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}

	extractor, closeExtractor, err := newExtractor(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	driver := &pipeline.Driver{
		Registry:  registry,
		Fetcher:   newFetcher(cfg),
		Extractor: extractor,
		UserAgent: cfg.UserAgent,
		Delay:     cfg.DelayDuration(),
	}
	if cfg.Verbose {
		driver.OnProgress = func(event pipeline.ProgressEvent) {
			logging.Debug(event.Message, "step", event.Step, "category", event.Category, "country", event.Country)
			if raw, ok := event.Content.(*types.RawExtraction); ok && event.Step == steps.ExtractPage {
				printer.PrintExtraction(raw)
			}
		}
	}
	return driver, closeExtractor, nil
}
