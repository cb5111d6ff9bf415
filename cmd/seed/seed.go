package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nexusai/router-api/internal/store/model"
	"github.com/nexusai/router-api/internal/store/sqlite"
)

// Seeds the local database with a sample conversation and a few dispatch
// records so the analytics endpoints have something to show.
func main() {
	repo, err := sqlite.NewSQLiteStorage("nexusai.db")
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	ctx := context.Background()

	conv := &model.Conversation{
		ID:        uuid.NewString(),
		Title:     "Sample conversation",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := repo.Conversations().Create(ctx, conv); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created conversation: %s\n", conv.ID)

	turns := []struct {
		role, content, modelID, providerID string
	}{
		{"user", "What is a sliding window rate limiter?", "", ""},
		{"assistant", "A sliding window rate limiter counts events in a trailing time window...", "llama-3.1-8b-instant", "groq"},
		{"user", "Show me an implementation sketch.", "", ""},
		{"assistant", "Keep a timestamp log per client, prune entries older than the window...", "llama-3.1-70b-versatile", "groq"},
	}
	for i, turn := range turns {
		msg := &model.Message{
			ID:             uuid.NewString(),
			ConversationID: conv.ID,
			Role:           turn.role,
			Content:        turn.content,
			CreatedAt:      time.Now().Add(time.Duration(i) * time.Second),
		}
		if turn.modelID != "" {
			msg.ModelUsed = sql.NullString{String: turn.modelID, Valid: true}
			msg.ProviderUsed = sql.NullString{String: turn.providerID, Valid: true}
		}
		if err := repo.Messages().Append(ctx, msg); err != nil {
			log.Fatal(err)
		}
	}

	for i := 0; i < 10; i++ {
		rec := &model.RequestLog{
			ID:               uuid.NewString(),
			ConversationID:   sql.NullString{String: conv.ID, Valid: true},
			ProviderID:       "groq",
			ModelID:          "llama-3.1-8b-instant",
			RequestedModelID: "llama-3.1-8b-instant",
			PromptTokens:     20 + i,
			CompletionTokens: 40 + i,
			TotalTokens:      60 + 2*i,
			LatencyMS:        int64(200 + 10*i),
			StatusCode:       200,
			CreatedAt:        time.Now().Add(-time.Duration(i) * time.Hour),
		}
		if err := repo.Requests().Log(ctx, rec); err != nil {
			log.Fatal(err)
		}
	}

	fmt.Println("Successfully seeded database!")
}
