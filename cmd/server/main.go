package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/pixelsprint/adforge/pkg/clients"
	"github.com/pixelsprint/adforge/pkg/config"
	"github.com/pixelsprint/adforge/pkg/copywriter"
	"github.com/pixelsprint/adforge/pkg/intel"
	"github.com/pixelsprint/adforge/pkg/media"
	"github.com/pixelsprint/adforge/pkg/server"
	"github.com/pixelsprint/adforge/pkg/tasks"
	"github.com/pixelsprint/adforge/pkg/translate"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	// Initialize Service & Handler. Each downstream client is optional:
	// a missing key disables its endpoints instead of blocking startup.
	svc := server.NewService(server.NewStore())
	svc.Aggregator = &intel.Aggregator{Concurrency: cfg.ResearchWorkers, Logger: slog.Default()}

	if linkup, err := clients.NewLinkup(); err != nil {
		slog.Warn("Research disabled", "error", err)
	} else {
		svc.Answer = linkup.Answer
	}

	if llm, err := clients.GoogleAi(clients.ModelType(cfg.FastModel)); err != nil {
		slog.Warn("Copywriter disabled", "error", err)
	} else {
		svc.Copy = copywriter.New(llm)
	}

	if freepik, err := clients.NewFreepik(); err != nil {
		slog.Warn("Media pipeline disabled", "error", err)
	} else {
		pipeline := media.NewPipeline(freepik)
		pipeline.ImagePolicy = tasks.Policy{Interval: cfg.ImagePollInterval, MaxAttempts: cfg.ImagePollAttempts}
		pipeline.VideoPolicy = tasks.Policy{Interval: cfg.VideoPollInterval, MaxAttempts: cfg.VideoPollAttempts}
		svc.Media = pipeline
	}

	var deepl translate.Translator
	if d, err := clients.NewDeepL(); err != nil {
		slog.Warn("DeepL unavailable, translations will use Gemini only", "error", err)
	} else {
		deepl = d
	}
	if translator, err := translate.NewService(context.Background(), deepl); err != nil {
		slog.Warn("Translation disabled", "error", err)
	} else {
		svc.Translate = translator
	}

	if twitter, err := clients.NewTwitter(); err != nil {
		slog.Warn("Publishing disabled", "error", err)
	} else {
		svc.Publish = twitter
	}

	handler := server.NewHandler(svc)

	// Web Server Setup
	r := gin.Default()

	// CORS Setup
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Allow all for dev
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	handler.RegisterRoutes(r)

	fmt.Printf("Server starting on port %s\n", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
