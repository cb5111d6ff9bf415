// Package chat orchestrates a single chat turn: guardrail screening, model
// selection, optional retrieval augmentation, dispatch through the provider
// router, and persistence of the conversation and analytics trail.
package chat

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nexusai/router-api/internal/analytics"
	"github.com/nexusai/router-api/internal/guardrails"
	"github.com/nexusai/router-api/internal/rag"
	"github.com/nexusai/router-api/internal/router"
	"github.com/nexusai/router-api/internal/selection"
	"github.com/nexusai/router-api/internal/store"
	"github.com/nexusai/router-api/internal/store/model"
	"github.com/nexusai/router-api/pkg/api"
)

const systemPrompt = "You are a helpful AI assistant. Provide clear, accurate, and well-formatted responses."

// Request is the inbound chat payload.
type Request struct {
	Message        string  `json:"message" binding:"required_without=Image"`
	Image          string  `json:"image,omitempty"`
	Model          string  `json:"model,omitempty"`
	AutoSelect     bool    `json:"auto_select,omitempty"`
	UseRAG         bool    `json:"use_rag,omitempty"`
	UseLoRA        bool    `json:"use_lora,omitempty"`
	LoRAAdapterID  string  `json:"lora_adapter_id,omitempty"`
	ConversationID string  `json:"conversation_id,omitempty"`
	Temperature    float64 `json:"temperature,omitempty"`
	MaxTokens      int     `json:"max_tokens,omitempty"`
}

// Response is the outbound chat payload. Blocked responses carry the
// guardrail verdict instead of model output.
type Response struct {
	Response        string    `json:"response"`
	ModelUsed       string    `json:"model_used,omitempty"`
	ProviderUsed    string    `json:"provider_used,omitempty"`
	ConversationID  string    `json:"conversation_id,omitempty"`
	Usage           api.Usage `json:"usage"`
	Blocked         bool      `json:"blocked,omitempty"`
	BlockReason     string    `json:"block_reason,omitempty"`
	BlockCategory   string    `json:"block_category,omitempty"`
	ComplexityScore int       `json:"complexity_score,omitempty"`
	RAGChunksUsed   int       `json:"rag_chunks_used,omitempty"`
	ResponseTimeMS  int64     `json:"response_time_ms"`
}

// Dispatcher is the slice of the provider router this service needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *api.CompletionRequest) (*api.CompletionResult, error)
	ListModels(ctx context.Context) []api.Model
}

type Service struct {
	logger    *zap.Logger
	router    Dispatcher
	repo      store.Repository
	retriever rag.Retriever
	ingestor  analytics.Ingestor
}

func NewService(logger *zap.Logger, rt Dispatcher, repo store.Repository, retriever rag.Retriever, ing analytics.Ingestor) *Service {
	return &Service{
		logger:    logger,
		router:    rt,
		repo:      repo,
		retriever: retriever,
		ingestor:  ing,
	}
}

// Chat runs one full turn. Guardrail blocks return a non-error Response
// with the verdict; dispatch failures propagate so the handler can map
// them onto the error taxonomy.
func (s *Service) Chat(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	if verdict := guardrails.Screen(req.Message); verdict.Blocked {
		s.logger.Warn("message blocked by guardrails",
			zap.String("category", verdict.Category))
		return &Response{
			Blocked:        true,
			BlockReason:    verdict.Reason,
			BlockCategory:  verdict.Category,
			ResponseTimeMS: time.Since(start).Milliseconds(),
		}, nil
	}

	// Adapter-based fine-tuning is accepted but not served here.
	if req.UseLoRA {
		s.logger.Info("lora adapter requested but not supported, continuing with base model",
			zap.String("adapter_id", req.LoRAAdapterID))
	}

	available := s.router.ListModels(ctx)
	complexity := selection.Complexity(req.Message)

	preferred := ""
	if req.Model != "" && !req.AutoSelect {
		preferred = req.Model
	}
	modelID := selection.BestModel(req.Message, req.Image != "", preferred, available)

	system := systemPrompt
	ragChunks := 0
	if req.UseRAG {
		block, chunks, err := rag.Augment(ctx, s.retriever, req.Message)
		if err != nil {
			s.logger.Warn("retrieval failed, continuing without context", zap.Error(err))
		} else if block != "" {
			system += block
			ragChunks = len(chunks)
		}
	}

	conv, history, err := s.loadConversation(ctx, req.ConversationID)
	if err != nil {
		return nil, err
	}

	messages := []api.ChatMessage{{Role: api.RoleSystem, Content: system}}
	for _, m := range history {
		messages = append(messages, api.ChatMessage{Role: api.Role(m.Role), Content: m.Content})
	}
	messages = append(messages, api.ChatMessage{Role: api.RoleUser, Content: req.Message})

	result, dispatchErr := s.router.Dispatch(ctx, &api.CompletionRequest{
		Model:       modelID,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})

	latency := time.Since(start).Milliseconds()
	s.record(conv, modelID, result, dispatchErr, latency, complexity, ragChunks > 0)

	if dispatchErr != nil {
		return nil, dispatchErr
	}

	if err := s.persistTurn(ctx, conv, req.Message, result); err != nil {
		// The completion already happened; a storage hiccup should not
		// turn it into a user-facing failure.
		s.logger.Error("failed to persist conversation turn", zap.Error(err))
	}

	return &Response{
		Response:        result.Content,
		ModelUsed:       result.ModelUsed,
		ProviderUsed:    result.ProviderUsed,
		ConversationID:  conv.ID,
		Usage:           result.Usage,
		ComplexityScore: complexity,
		RAGChunksUsed:   ragChunks,
		ResponseTimeMS:  latency,
	}, nil
}

func (s *Service) loadConversation(ctx context.Context, id string) (*model.Conversation, []model.Message, error) {
	if id == "" {
		conv := &model.Conversation{
			ID:        uuid.NewString(),
			Title:     "New conversation",
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := s.repo.Conversations().Create(ctx, conv); err != nil {
			return nil, nil, err
		}
		return conv, nil, nil
	}

	conv, err := s.repo.Conversations().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	history, err := s.repo.Messages().ListByConversation(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return conv, history, nil
}

func (s *Service) persistTurn(ctx context.Context, conv *model.Conversation, userMessage string, result *api.CompletionResult) error {
	return s.repo.WithTx(ctx, func(repo store.Repository) error {
		now := time.Now()
		if err := repo.Messages().Append(ctx, &model.Message{
			ID:             uuid.NewString(),
			ConversationID: conv.ID,
			Role:           string(api.RoleUser),
			Content:        userMessage,
			CreatedAt:      now,
		}); err != nil {
			return err
		}
		if err := repo.Messages().Append(ctx, &model.Message{
			ID:             uuid.NewString(),
			ConversationID: conv.ID,
			Role:           string(api.RoleAssistant),
			Content:        result.Content,
			ModelUsed:      sql.NullString{String: result.ModelUsed, Valid: true},
			ProviderUsed:   sql.NullString{String: result.ProviderUsed, Valid: true},
			CreatedAt:      now.Add(time.Millisecond),
		}); err != nil {
			return err
		}
		return repo.Conversations().Touch(ctx, conv.ID)
	})
}

func (s *Service) record(conv *model.Conversation, requestedModel string, result *api.CompletionResult, dispatchErr error, latency int64, complexity int, usedRAG bool) {
	if s.ingestor == nil {
		return
	}
	log := &model.RequestLog{
		ID:               uuid.NewString(),
		RequestedModelID: requestedModel,
		LatencyMS:        latency,
		UsedRAG:          usedRAG,
		ComplexityScore:  sql.NullInt64{Int64: int64(complexity), Valid: true},
		CreatedAt:        time.Now(),
	}
	if conv != nil {
		log.ConversationID = sql.NullString{String: conv.ID, Valid: true}
	}
	if dispatchErr != nil {
		log.StatusCode = statusFor(dispatchErr)
		log.ErrorKind = KindOf(dispatchErr)
		log.ModelID = requestedModel
	} else {
		log.StatusCode = 200
		log.ModelID = result.ModelUsed
		log.ProviderID = result.ProviderUsed
		log.PromptTokens = result.Usage.PromptTokens
		log.CompletionTokens = result.Usage.CompletionTokens
		log.TotalTokens = result.Usage.TotalTokens
	}
	s.ingestor.Log(log)
}

func statusFor(err error) int {
	switch KindOf(err) {
	case "model_not_found":
		return 404
	case "rate_limited":
		return 429
	case "unsupported_model":
		return 400
	default:
		return 502
	}
}

// KindOf maps a dispatch error onto its taxonomy name.
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, router.ErrModelNotFound):
		return "model_not_found"
	case errors.Is(err, router.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, router.ErrUnsupportedModel):
		return "unsupported_model"
	default:
		return "provider_error"
	}
}
