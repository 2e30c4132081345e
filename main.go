package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cluesbot/cmd"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real environment variables win
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to load .env: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}
