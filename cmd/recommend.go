package cmd

import (
	"fmt"
	"log"
	"strings"

	"jobscout/internal/job"
	"jobscout/internal/logger"
	"jobscout/internal/match"
	"jobscout/internal/resume"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const PromptBack = "back"

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Rank stored postings against a resume or profile text",
	Run: func(cmd *cobra.Command, _ []string) {
		recommend(cmd)
	},
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringP("resume", "r", "", "path to a resume file (.txt, .md, .pdf, .docx)")
	recommendCmd.Flags().StringP("text", "t", "", "inline profile text instead of a resume file")
	recommendCmd.Flags().Float64("min-score", match.DefaultMinScore, "minimum match score")
	recommendCmd.Flags().IntP("limit", "l", match.DefaultLimit, "maximum recommendations")
	recommendCmd.Flags().BoolP("interactive", "i", false, "drill down into similar jobs interactively")
}

func recommend(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	text, err := profileText(cmd)
	if err != nil {
		logger.Fatal("loading profile text", zap.Error(err))
	}

	profile := match.ExtractProfile(text)
	logger.Debug("extracted profile",
		zap.Strings("skills", profile.Skills),
		zap.Strings("locations", profile.PreferredLocations),
	)

	jobs, err := openStore(config, logger).Load()
	if err != nil {
		logger.Fatal("loading postings", zap.Error(err))
	}
	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings in store, run scrape first"))
		return
	}

	minScore, _ := cmd.Flags().GetFloat64("min-score")
	limit, _ := cmd.Flags().GetInt("limit")

	engine := match.NewEngine(logger)
	results := engine.Recommend(profile, jobs, match.Options{MinScore: minScore, Limit: limit})

	if len(results) == 0 {
		logger.Info("exiting", zap.String("reason", "no postings above the score threshold"))
		return
	}

	printProfile(profile)
	printResults(results)

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if err := drillDown(engine, results, jobs); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func profileText(cmd *cobra.Command) (string, error) {
	resumeFile, _ := cmd.Flags().GetString("resume")
	if resumeFile != "" {
		return resume.Load(resumeFile)
	}

	text, _ := cmd.Flags().GetString("text")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("either --resume or --text is required")
	}

	return text, nil
}

func printProfile(profile match.Profile) {
	fmt.Printf("Skills: %s\n", strings.Join(profile.Skills, ", "))
	if profile.ExperienceYears != nil {
		fmt.Printf("Experience: %g years\n", *profile.ExperienceYears)
	}
	if len(profile.PreferredLocations) > 0 {
		fmt.Printf("Locations: %s\n", strings.Join(profile.PreferredLocations, ", "))
	}
	fmt.Println()
}

func printResults(results []match.MatchResult) {
	for i, result := range results {
		fmt.Printf("%2d. [%.2f] %s at %s (%s)\n", i+1, result.Score, result.Job.Title, result.Job.Company, result.Job.Location)
		fmt.Printf("    %s\n", result.Rationale)
	}
	fmt.Println()
}

// drillDown lets the user pick a recommendation and see jobs similar to it.
func drillDown(engine *match.Engine, results []match.MatchResult, jobs *job.Jobs) error {
	for {
		items := make([]string, 0, len(results)+1)
		for _, result := range results {
			items = append(items, fmt.Sprintf("%s  %s / %s / %.2f",
				result.Job.ID, result.Job.Title, result.Job.Company, result.Score))
		}

		prompt := promptui.Select{
			Label: "Choose a job to see similar postings",
			Items: append(items, PromptBack),
		}

		_, selected, err := prompt.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		jobID := strings.Split(selected, " ")[0]
		similar := engine.SimilarByOverlap(jobID, jobs, 5)
		if len(similar) == 0 {
			fmt.Println("No similar postings found.")
			continue
		}

		for i, result := range similar {
			fmt.Printf("%2d. %s at %s (%s)\n    %s\n",
				i+1, result.Job.Title, result.Job.Company, result.Job.Location, result.Rationale)
		}
		fmt.Println()
	}
}
