package cmd

import (
	"context"
	"log"
	"strings"

	"jobscout/internal/ai"
	"jobscout/internal/ai/gemini"
	logfields "jobscout/internal/logger"
	"jobscout/internal/scraper"
	"jobscout/internal/secrets"
	"jobscout/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "jobscout"
)

type Config struct {
	Store  string        `mapstructure:"store"`
	Scrape *ScrapeConfig `mapstructure:"scrape"`
	AI     *AIConfig     `mapstructure:"ai"`
	Serve  *ServeConfig  `mapstructure:"serve"`
}

type ScrapeConfig struct {
	BaseURL  string   `mapstructure:"base-url"`
	Platform string   `mapstructure:"platform"`
	Queries  []string `mapstructure:"queries"`
	Limit    int      `mapstructure:"limit"`
	Every    int      `mapstructure:"every"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobscout is a job-search assistant: it scrapes postings, matches them against your profile and answers questions about them",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)

		// An explicitly given config file must parse.
		if err := viper.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		return
	}

	viper.AddConfigPath(".")
	viper.SetConfigName(app + ".yaml")

	// Every command works without a config file; flags and env cover the rest.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}

func openStore(config *Config, logger *zap.Logger) *store.Store {
	return store.New(config.Store, logger)
}

func newScrapeClient(config *Config, logger *zap.Logger) *scraper.Client {
	baseURL := ""
	platform := ""
	if config.Scrape != nil {
		baseURL = config.Scrape.BaseURL
		platform = config.Scrape.Platform
	}
	return scraper.NewClient(baseURL, platform, logger)
}

// buildAI assembles the classifier and responder. Without a usable Gemini
// configuration the keyword fallback classifies alone and the responder is
// nil.
func buildAI(ctx context.Context, config *AIConfig, logger *zap.Logger) (ai.Classifier, ai.Responder) {
	if config == nil || !config.Enabled {
		logger.Debug("ai disabled, using keyword classification")
		return ai.NewFallbackClassifier(), nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.Provider))
	if provider != "" && provider != "gemini" {
		logger.Warn("unsupported ai provider, using keyword classification", zap.String("provider", config.Provider))
		return ai.NewFallbackClassifier(), nil
	}

	geminiCfg := config.Gemini
	if geminiCfg == nil {
		geminiCfg = &GeminiConfig{APIKeyFile: viper.GetString("ai.gemini.api-key-file")}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: geminiCfg.APIKeyFile,
	})
	if err != nil {
		logger.Warn("gemini api key unavailable, using keyword classification",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
		return ai.NewFallbackClassifier(), nil
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model)
	if err != nil {
		logger.Warn("gemini unavailable, using keyword classification", zap.Error(err))
		return ai.NewFallbackClassifier(), nil
	}

	aiLogger := logfields.WithCommonFields(logger, "gemini", generator.Model())

	return gemini.NewClassifier(generator, aiLogger), gemini.NewResponder(generator, aiLogger)
}
