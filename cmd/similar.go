package cmd

import (
	"fmt"
	"log"

	"jobscout/internal/logger"
	"jobscout/internal/match"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var similarCmd = &cobra.Command{
	Use:   "similar <job-id>",
	Short: "Find stored postings similar to the given one",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		similar(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().IntP("limit", "l", match.DefaultLimit, "maximum results")
	similarCmd.Flags().Bool("coarse", false, "use skill-overlap ranking instead of similarity scoring")
}

func similar(cmd *cobra.Command, jobID string) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	jobs, err := openStore(config, logger).Load()
	if err != nil {
		logger.Fatal("loading postings", zap.Error(err))
	}

	ref := jobs.FindByID(jobID)
	if ref == nil {
		logger.Fatal("job not found", zap.String("job_id", jobID))
	}

	limit, _ := cmd.Flags().GetInt("limit")
	coarse, _ := cmd.Flags().GetBool("coarse")

	engine := match.NewEngine(logger)

	var results []match.MatchResult
	if coarse {
		results = engine.SimilarByOverlap(jobID, jobs, limit)
	} else {
		results = engine.SimilarJobs(jobID, jobs, match.Options{Limit: limit})
	}

	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no similar postings found"))
		return
	}

	fmt.Printf("Jobs similar to %s at %s:\n\n", ref.Title, ref.Company)
	printResults(results)
}
