package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/akeef891/Finance-Clarity/internal/alerts"
	"github.com/akeef891/Finance-Clarity/internal/config"
	"github.com/akeef891/Finance-Clarity/internal/database"
	"github.com/akeef891/Finance-Clarity/internal/engine"
	"github.com/akeef891/Finance-Clarity/internal/goals"
	"github.com/akeef891/Finance-Clarity/internal/handlers"
	"github.com/akeef891/Finance-Clarity/internal/llm"
	"github.com/akeef891/Finance-Clarity/internal/snapshot"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	repo := database.NewRepository(db)

	builder := snapshot.NewBuilder(repo, log)
	planner := goals.NewPlanner(repo)
	planner.BehindRatio = cfg.BehindScheduleRatio

	var provider engine.TextProvider
	if cfg.AIEnabled && cfg.AIEndpoint != "" {
		provider = llm.NewClient(cfg.AIEndpoint, cfg.AITimeout, cfg.AIMinReplyLen)
		log.WithField("endpoint", cfg.AIEndpoint).Info("external text provider enabled")
	}

	eng := engine.New(cfg, log, repo, builder, planner, provider)

	h, err := handlers.New(repo, eng, builder, planner, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize handlers")
	}

	scanner := alerts.NewScanner(builder, repo, log)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every "+cfg.AlertScanInterval.String(), scanner.Run); err != nil {
		log.WithError(err).Fatal("failed to schedule alert scan")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// First scan shortly after start so fresh sessions see current alerts.
	go func() {
		time.Sleep(10 * time.Second)
		scanner.Run()
	}()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Post("/api/chat", h.Chat)
	r.Get("/api/chat/history", h.ChatHistory)
	r.Delete("/api/chat/history", h.ClearChatHistory)
	r.Get("/api/chat/suggestions", h.Suggestions)

	r.Post("/api/records", h.CreateRecord)
	r.Get("/api/records", h.ListRecords)

	r.Get("/api/snapshot", h.GetSnapshot)
	r.Post("/api/goals", h.CreateGoal)
	r.Get("/api/goals", h.ListGoals)

	log.WithField("port", cfg.ServerPort).Info("server starting")
	if err := http.ListenAndServe(":"+cfg.ServerPort, r); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
