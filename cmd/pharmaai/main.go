package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Murari1104/pharmaAi/internal/api"
	"github.com/Murari1104/pharmaAi/internal/assistant"
	"github.com/Murari1104/pharmaAi/internal/config"
	"github.com/Murari1104/pharmaAi/internal/llm"
	"github.com/Murari1104/pharmaAi/internal/metrics"
	"github.com/Murari1104/pharmaAi/internal/profile"
	"github.com/Murari1104/pharmaAi/internal/reminders"
	"github.com/Murari1104/pharmaAi/internal/schedule"
	"github.com/Murari1104/pharmaAi/internal/store"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
	dataDir    = flag.String("data", "", "Path to data directory")
	version    = "dev"
)

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Pharma AI", zap.String("version", version))

	if err := config.LoadEnvFiles(); err != nil {
		logger.Warn("Failed to load .env files", zap.Error(err))
	}

	cfg, err := config.Load(*configPath, *dataDir)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	st, err := store.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize store", zap.Error(err))
	}

	m := metrics.Default()

	provider, err := cfg.DefaultProvider()
	if err != nil {
		logger.Fatal("Failed to get LLM provider", zap.Error(err))
	}
	llmClient := llm.NewClient(provider)
	chat := assistant.New(llmClient, st, cfg.Assistant, m, logger)

	sched := schedule.NewStore()
	if cfg.Schedule.SeedDemo {
		schedule.SeedDemo(sched, time.Now())
		logger.Info("Seeded demo schedule", zap.Int("entries", sched.EntryCount()))
	}
	timeline := schedule.NewTimeline(sched, time.Now, logger)

	prof := profile.NewService(st, logger)
	if err := prof.SeedDefault(); err != nil {
		logger.Warn("Failed to seed default profile", zap.Error(err))
	}

	var runner *reminders.Runner
	if cfg.Reminders.Enabled {
		runner = reminders.NewRunner(reminders.Config{
			CheckInterval: cfg.Reminders.CheckInterval,
			LeadTime:      cfg.Reminders.LeadTime,
		}, sched, m, logger)
		if err := runner.Start(); err != nil {
			logger.Warn("Failed to start reminder runner", zap.Error(err))
		}
	}

	server := api.New(cfg, st, chat, timeline, prof, m, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Server stopped", zap.Error(err))
		}
	}()
	logger.Info("API server listening",
		zap.String("address", cfg.Server.Address),
		zap.Int("port", cfg.Server.Port),
	)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down")
	if runner != nil {
		runner.Stop()
	}
	if err := server.Shutdown(); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
}
