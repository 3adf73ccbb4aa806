package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"

	httpadapter "github.com/ojeda-dev/ayun-chat/internal/adapters/http"
	"github.com/ojeda-dev/ayun-chat/internal/adapters/llm"
	"github.com/ojeda-dev/ayun-chat/internal/adapters/search"
	firestorestore "github.com/ojeda-dev/ayun-chat/internal/adapters/storage/firestore"
	memstore "github.com/ojeda-dev/ayun-chat/internal/adapters/storage/memory"
	"github.com/ojeda-dev/ayun-chat/internal/app/chat"
	"github.com/ojeda-dev/ayun-chat/internal/app/conversation"
	"github.com/ojeda-dev/ayun-chat/internal/app/profile"
	"github.com/ojeda-dev/ayun-chat/internal/app/prompt"
	"github.com/ojeda-dev/ayun-chat/internal/config"
	"github.com/ojeda-dev/ayun-chat/internal/domain"
	"github.com/ojeda-dev/ayun-chat/internal/observability"
)

func main() {
	ctx := context.Background()

	// .env is optional, env vars win either way.
	_ = godotenv.Load()

	cfg := config.Load()
	observability.SetLevel(cfg.LogLevel)

	// A template missing its placeholders would silently emit braces at
	// request time, so refuse to start instead.
	if err := prompt.Validate(); err != nil {
		log.Fatalf("prompt templates invalid: %v", err)
	}

	// LLM capability: mock or Vertex AI (Gemini)
	var (
		llmClient domain.LLMClient
		err       error
	)

	if cfg.UseMockLLM {
		log.Println("[LLM] Using MOCK LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Println("[LLM] Using Vertex AI (Gemini) client")
		llmClient, err = llm.NewGeminiClient(ctx, llm.GeminiConfig{
			ProjectID:   cfg.GCPProjectID,
			Location:    cfg.GCPLocation,
			ModelName:   cfg.ModelName,
			CallTimeout: cfg.CallTimeout,
		})
		if err != nil {
			log.Fatalf("error initializing Gemini LLM client: %v", err)
		}
	}

	// Search capability: mock or SerpAPI
	var searchClient domain.SearchClient

	if cfg.UseMockSearch {
		log.Println("[SEARCH] Using MOCK search client")
		searchClient = search.NewMockSearch()
	} else {
		log.Printf("[SEARCH] Using SerpAPI search client (engine=%s)", cfg.SearchEngine)
		searchClient = search.NewClient(search.Config{
			APIKey:            cfg.SerpAPIKey,
			Engine:            cfg.SearchEngine,
			BaseURL:           cfg.SearchBaseURL,
			RequestsPerSecond: cfg.SearchRPS,
			Burst:             cfg.SearchBurst,
			CallTimeout:       cfg.CallTimeout,
		})
	}

	// Storage: Firestore or Memory
	var conversationStore domain.ConversationStore
	var messageStore domain.MessageStore
	var profileStore domain.ProfileStore

	switch cfg.StorageBackend {
	case "firestore":
		log.Printf("[STORE] Using Firestore storage (project=%s)", cfg.GCPProjectID)
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			log.Fatalf("error initializing Firestore store: %v", err)
		}

		// 1 store, implements 3 interfaces
		conversationStore = fsStore
		messageStore = fsStore
		profileStore = fsStore

	default:
		log.Println("[STORE] Using in-memory storage")
		conversationStore = memstore.NewConversationStore()
		messageStore = memstore.NewMessageStore()
		profileStore = memstore.NewProfileStore()
	}

	// Pipeline + services
	pipeline := chat.NewPipeline(llmClient, searchClient)
	convSvc := conversation.NewService(pipeline, conversationStore, messageStore)
	profileSvc := profile.NewService(profileStore)

	// HTTP server
	handler := httpadapter.NewServer(pipeline, convSvc, profileSvc)

	port := ":" + cfg.Port
	log.Println("Ayun API listening on port:", port)
	if err := http.ListenAndServe(port, handler); err != nil {
		log.Fatal(err)
	}
}
