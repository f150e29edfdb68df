package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"jobscout/internal/api"
	"jobscout/internal/chat"
	"jobscout/internal/logger"
	"jobscout/internal/match"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultAddr = ":8000"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the assistant over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default :8000)")
	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
}

func serve(_ *cobra.Command) {
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

	addr := viper.GetString("serve.addr")
	if addr == "" && config.Serve != nil {
		addr = config.Serve.Addr
	}
	if addr == "" {
		addr = defaultAddr
	}

	classifier, responder := buildAI(ctx, config.AI, logger)
	st := openStore(config, logger)
	engine := match.NewEngine(logger)

	agent := chat.NewAgent(classifier, responder, st, engine, chat.NewSessionStore(0), logger)
	server := api.NewServer(agent, st, engine, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down", zap.String("reason", "signal received"))
		if err := server.Shutdown(); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("starting the http api", zap.String("addr", addr), zap.String("version", version))

	if err := server.Listen(addr); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
