package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"jobscout/internal/logger"
	"jobscout/internal/scraper"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch job postings into the local store",
	Run: func(cmd *cobra.Command, _ []string) {
		scrape(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringSliceP("query", "q", nil, "search query, repeatable")
	scrapeCmd.Flags().IntP("limit", "l", 100, "maximum postings per query")
	scrapeCmd.Flags().Int("every", 0, "keep running and scrape every N hours")

	viper.BindPFlag("scrape.queries", scrapeCmd.Flags().Lookup("query"))
	viper.BindPFlag("scrape.limit", scrapeCmd.Flags().Lookup("limit"))
	viper.BindPFlag("scrape.every", scrapeCmd.Flags().Lookup("every"))
}

func scrape(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	queries := viper.GetStringSlice("scrape.queries")
	if len(queries) == 0 {
		logger.Fatal("at least one query is required", zap.String("hint", "pass --query or set scrape.queries in the config file"))
	}

	limit := viper.GetInt("scrape.limit")
	every := viper.GetInt("scrape.every")

	st := openStore(config, logger)
	client := newScrapeClient(config, logger)

	if every > 0 {
		scheduler := scraper.NewScheduler(client, st, queries, limit, every, logger)
		if err := scheduler.Start(ctx); err != nil {
			logger.Fatal("starting scheduler", zap.Error(err))
		}
		defer scheduler.Stop()

		<-ctx.Done()
		logger.Info("exiting", zap.String("reason", "signal received"))
		return
	}

	for _, query := range queries {
		postings, err := client.Fetch(ctx, query, limit)
		if err != nil {
			logger.Error("scrape failed", zap.String("query", query), zap.Error(err))
			continue
		}

		if _, err := st.Add(postings); err != nil {
			logger.Fatal("storing postings", zap.Error(err))
		}
	}
}
