package main // Entry point package

import (
	"context"
	"log"
	"regexp"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/itstudent003/yoyebot/internal/concert"
	"github.com/itstudent003/yoyebot/internal/config"
	"github.com/itstudent003/yoyebot/internal/database"
	"github.com/itstudent003/yoyebot/internal/handler"
	"github.com/itstudent003/yoyebot/internal/line"
	"github.com/itstudent003/yoyebot/internal/middleware"
	"github.com/itstudent003/yoyebot/internal/repository"
	"github.com/itstudent003/yoyebot/internal/router"
	queue_publisher "github.com/itstudent003/yoyebot/internal/service"
	"github.com/itstudent003/yoyebot/internal/sheets"
	"github.com/itstudent003/yoyebot/internal/slip"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}

	// Redis carries the slip idempotency records; without it duplicate
	// slips could be accepted twice, so startup fails hard.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Fatal("redis unavailable: the slip idempotency store requires it")
	}

	ctx := context.Background()
	sheetsClient, err := sheets.NewClient(ctx, cfg.ServiceAccountJSON)
	if err != nil {
		log.Fatalf("sheets: %v", err)
	}

	receiver, err := regexp.Compile(cfg.ReceiverPattern)
	if err != nil {
		log.Fatalf("invalid SLIP_RECEIVER_PATTERN: %v", err)
	}

	lineClient := line.NewClient(cfg.LineAccessToken)

	resolver := &concert.Resolver{
		Sheets:        sheetsClient,
		MasterSheetID: cfg.MasterSheetID,
		MasterTab:     cfg.MasterSheetTab,
	}
	matcher := &concert.Matcher{Sheets: sheetsClient, Resolver: resolver}
	stopper := &concert.StopService{
		Sheets:     sheetsClient,
		Resolver:   resolver,
		GroupID:    cfg.LineGroupID,
		Notify:     lineClient.Push,
		LogSheetID: cfg.LogSheetID,
		LogTab:     cfg.LogSheetTab,
		Publish:    queue_publisher.PublishQueueStopped,
	}
	verifier := &slip.Verifier{
		Client:   slip.NewClient(cfg.ThunderAPIURL, cfg.ThunderAPIKey),
		Store:    repository.NewSlipStore(rdb),
		Receiver: receiver,
		Publish:  queue_publisher.PublishSlipAccepted,
	}

	wh := &handler.WebhookHandler{
		Line:    lineClient,
		Matcher: matcher,
		Stopper: stopper,
		Slips:   verifier,
		Users:   repository.NewUserRepo(db),
	}
	ph := &handler.PushHandler{Line: lineClient}

	e := echo.New()
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	router.RegisterRoutes(e, wh, ph, cfg.JWTSecret, rateLimit)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
