package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"jobscout/internal/chat"
	"jobscout/internal/logger"
	"jobscout/internal/match"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant interactively",
	Run: func(cmd *cobra.Command, _ []string) {
		runChat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	classifier, responder := buildAI(ctx, config.AI, logger)
	st := openStore(config, logger)

	agent := chat.NewAgent(classifier, responder, st, match.NewEngine(logger), chat.NewSessionStore(0), logger)

	fmt.Println("Ask me about jobs. Type 'exit' to quit.")

	sessionID := ""
	for {
		prompt := promptui.Prompt{Label: "you"}
		message, err := prompt.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			logger.Fatal("reading input", zap.Error(err))
		}

		message = strings.TrimSpace(message)
		if message == "" {
			continue
		}
		if message == "exit" || message == "quit" {
			return
		}

		resp := agent.HandleMessage(ctx, sessionID, message)
		sessionID = resp.SessionID

		fmt.Printf("\n%s\n\n", resp.Reply)
		if viper.GetBool("debug") {
			fmt.Printf("(intent: %s, confidence: %.2f)\n\n", resp.Intent, resp.Confidence)
		}
	}
}
