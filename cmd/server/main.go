package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"sadaka/internal/auth"
	"sadaka/internal/config"
	"sadaka/internal/database"
	"sadaka/internal/handler"
	"sadaka/internal/hub"
	"sadaka/internal/service"
	"sadaka/internal/store"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  .env file not found, using default values: %v", err)
	}

	cfg := config.Load()

	if cfg.AdminPassword == "" {
		log.Println("⚠️  ADMIN_PASSWORD not set: every write request will be rejected")
	}

	// Storage: MySQL when configured, otherwise an in-memory fallback for
	// local development.
	var st store.Store
	if cfg.DBName == "" {
		log.Println("⚠️  DB_NAME not set, using in-memory store (data will not survive restarts)")
		st = store.NewMemory()
	} else {
		db, err := database.Init(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		defer db.Close()
		st = store.NewMySQL(db)
	}

	guard := auth.NewSecret(cfg.AdminPassword)
	liveHub := hub.New()
	mutations := service.NewMutation(st, guard, liveHub)
	queries := service.NewQuery(st)

	h := handler.New(cfg, liveHub, mutations, queries)
	router := h.SetupRouter()

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS", "PUT"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Length"},
		MaxAge:           300,
		AllowCredentials: true,
	})

	httpHandler := c.Handler(router)

	fmt.Println("========================================")
	fmt.Println("  Sadaka Donation API Server")
	fmt.Println("========================================")
	fmt.Printf("  Environment: %s\n", cfg.Env)
	fmt.Printf("  Server: http://localhost:%s\n", cfg.ServerPort)
	fmt.Printf("  WebSocket: ws://localhost:%s/ws\n", cfg.ServerPort)
	if cfg.DBName != "" {
		fmt.Printf("  Database: %s@%s:%s/%s\n", cfg.DBUser, cfg.DBHost, cfg.DBPort, cfg.DBName)
	} else {
		fmt.Println("  Database: in-memory")
	}
	fmt.Printf("  Allowed Origins: %v\n", cfg.AllowedOrigins)
	fmt.Println("========================================")
	log.Println("🚀 Server started successfully")
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, httpHandler))
}
