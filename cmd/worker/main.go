package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"advisor-chat-be/internal/constant"
	"advisor-chat-be/internal/pkg/logger"
	"advisor-chat-be/pkg/events"
	pktNats "advisor-chat-be/pkg/nats"

	"github.com/joho/godotenv"
)

// Lead event worker: consumes LEAD_CAPTURED events off the NATS bus and
// writes them to an audit log for CRM handoff. Runs separately from the API
// so a slow downstream never blocks lead capture.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		log.Fatal("Error: NATS_URL is not set")
	}

	sub, err := pktNats.NewSubscriber(natsURL)
	if err != nil {
		log.Fatalf("Error: Failed to connect to NATS: %v", err)
	}
	defer sub.Close()

	leadLogger := logger.NewIsolatedLogger("logs/leads.log")
	defer leadLogger.Sync()

	handler := func(ctx context.Context, event events.Event) error {
		leadLogger.Info("lead-worker", "lead captured", event.Payload())
		return nil
	}

	if err := sub.Subscribe(constant.SubjectLeadCaptured, constant.DurableLeadCRMSync, handler); err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	ingestHandler := func(ctx context.Context, event events.Event) error {
		leadLogger.Info("lead-worker", "document ingested", event.Payload())
		return nil
	}
	if err := sub.Subscribe(constant.SubjectDocumentIngested, "document-audit", ingestHandler); err != nil {
		log.Fatalf("Error: Failed to subscribe: %v", err)
	}

	log.Println("✅ Lead worker is running, waiting for events...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down lead worker...")
}
