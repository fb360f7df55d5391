package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizdeck/internal/attempts"
	"quizdeck/internal/config"
	"quizdeck/internal/database"
	"quizdeck/internal/handlers"
	"quizdeck/internal/store/mongostore"
	"quizdeck/internal/utility"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.MongoURI, cfg.DatabaseName)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to create indexes: %v", err)
	}

	userStore := mongostore.NewUserStore(db)
	quizStore := mongostore.NewQuizStore(db)
	attemptStore := mongostore.NewAttemptStore(db)

	tracker := attempts.NewTracker(quizStore, attemptStore, userStore)
	tokens := utility.NewTokenMaker(cfg.JWTSecret, cfg.TokenExpiry)
	h := handlers.NewHandlers(userStore, quizStore, attemptStore, tracker, tokens)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.NewRouter(h, cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		fmt.Printf("Server is running on http://localhost:%s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := database.Disconnect(context.Background(), db); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
}
