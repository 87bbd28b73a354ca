package main

import (
	"context"
	"log"
	"net/http"

	"finote-server/src/api"
	"finote-server/src/assistant"
	"finote-server/src/auth"
	"finote-server/src/chat"
	"finote-server/src/config"
	"finote-server/src/db"
	sqldb "finote-server/src/db/sql"
)

func main() {
	cfg := config.Load()

	// Connect to database
	pool, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}

	db.InitCache()

	aiClient := assistant.NewClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.AITimeout)
	chatService := chat.NewService(
		sqldb.ConversationStore{Pool: pool},
		sqldb.TransactionReader{Pool: pool},
		aiClient,
	)

	verifier := auth.JWTVerifier{Secret: []byte(cfg.JWTSecret)}

	// Router
	router := api.NewRouter(pool, chatService, verifier, cfg)

	log.Println("API server running on port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal(err)
	}
}
