package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"studyzen/backend/internal/api/handler"
	"studyzen/backend/internal/chathub"
	"studyzen/backend/internal/config"
	"studyzen/backend/internal/localization"
	"studyzen/backend/internal/models"
	"studyzen/backend/internal/report"
	"studyzen/backend/internal/storage"
	"studyzen/backend/internal/telegram"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.ChatRoom{},
		&models.ChatHistory{},
		&models.Report{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func chatMessages(cfg *config.Config) chathub.Messages {
	loc, err := localization.NewLocalizer(cfg.LocalesPath)
	if err != nil {
		log.Printf("Warning: locales unavailable (%v), using built-in texts", err)
		return chathub.DefaultMessages()
	}
	return chathub.Messages{
		Waiting: loc.GetString(cfg.DefaultLang, "chat.waiting"),
		Skipped: loc.GetString(cfg.DefaultLang, "chat.skipped"),
	}
}

func main() {
	log.Println("Starting StudyZen chat backend...")

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	hub := chathub.NewHub(s, chatMessages(cfg))
	go hub.Run(context.Background())

	var alerts report.Alerter
	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChat != 0 {
		notifier, err := telegram.NewNotifier(cfg.TelegramBotToken, cfg.TelegramAdminChat)
		if err != nil {
			log.Printf("Warning: telegram alerts disabled: %v", err)
		} else {
			alerts = notifier
		}
	}
	reports := report.NewService(s, alerts)

	r := gin.Default()
	h := handler.NewHandler(hub, reports, s, cfg.JWTSecret)

	r.GET("/anonid", h.GetAnonID)
	r.GET("/ws", h.ServeWebSocket)
	r.POST("/report", h.FileReport)
	r.GET("/stats/online", h.OnlineStats)

	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
