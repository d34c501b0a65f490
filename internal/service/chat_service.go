package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sales-crm-be/internal/dto"
	"sales-crm-be/internal/pkg/logger"
	"sales-crm-be/internal/repository/memory"
	crmstore "sales-crm-be/internal/store"
	"sales-crm-be/pkg/dashboard"
	"sales-crm-be/pkg/llm"
	"sales-crm-be/pkg/store"

	"github.com/google/uuid"
)

// maxHistoryMessages bounds the conversation window sent to the model.
const maxHistoryMessages = 20

const chatSystemPrompt = `You are a sales assistant embedded in a CRM dashboard.
Answer questions about the pipeline using ONLY the snapshot below. Be concise.
If the snapshot does not contain the answer, say so instead of guessing.

%s`

type IChatService interface {
	CreateSession(ctx context.Context) *dto.CreateSessionResponse
	GetHistory(ctx context.Context, sessionID string) ([]dto.ChatMessageResponse, error)
	SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

type chatService struct {
	sessions *memory.SessionRepository
	crm      *crmstore.Store
	provider llm.LLMProvider
	log      logger.ILogger
}

func NewChatService(
	sessions *memory.SessionRepository,
	crm *crmstore.Store,
	provider llm.LLMProvider,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions: sessions,
		crm:      crm,
		provider: provider,
		log:      log,
	}
}

func (s *chatService) CreateSession(ctx context.Context) *dto.CreateSessionResponse {
	session := &store.ChatSession{
		ID:        uuid.NewString(),
		Messages:  []store.ChatMessage{},
		CreatedAt: time.Now(),
	}
	s.sessions.Save(session)
	s.log.Info("ChatService", "Chat session created", map[string]interface{}{
		"session_id": session.ID,
	})
	return &dto.CreateSessionResponse{SessionId: session.ID}
}

func (s *chatService) GetHistory(ctx context.Context, sessionID string) ([]dto.ChatMessageResponse, error) {
	session, found := s.sessions.Get(sessionID)
	if !found {
		return nil, &crmstore.NotFoundError{Resource: "chat_session", Query:sessionID}
	}

	history := make([]dto.ChatMessageResponse, 0, len(session.Messages))
	for _, msg := range session.Messages {
		history = append(history, dto.ChatMessageResponse{
			Role:      msg.Role,
			Content:   msg.Content,
			CreatedAt: msg.CreatedAt,
		})
	}
	return history, nil
}

// SendChat appends the user turn, asks the model with a fresh CRM snapshot as
// system context, and stores the reply in the session.
func (s *chatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	session, found := s.sessions.Get(req.SessionId)
	if !found {
		return nil, &crmstore.NotFoundError{Resource: "chat_session", Query:req.SessionId}
	}

	session.Messages = append(session.Messages, store.ChatMessage{
		Role:      store.RoleUser,
		Content:   req.Message,
		CreatedAt: time.Now(),
	})

	messages := []llm.Message{
		{Role: "system", Content: fmt.Sprintf(chatSystemPrompt, s.buildPipelineContext())},
	}
	for _, msg := range trimHistory(session.Messages) {
		messages = append(messages, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	reply, err := s.provider.Chat(ctx, messages, llm.WithTemperature(0.3))
	if err != nil {
		s.log.Error("ChatService", "LLM chat failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	session.Messages = append(session.Messages, store.ChatMessage{
		Role:      store.RoleAssistant,
		Content:   reply,
		CreatedAt: time.Now(),
	})
	s.sessions.Save(session)

	return &dto.SendChatResponse{SessionId: session.ID, Reply: reply}, nil
}

// buildPipelineContext renders the live CRM state as plain text for the model.
func (s *chatService) buildPipelineContext() string {
	accounts := s.crm.Accounts()
	stats := dashboard.ComputeStats(accounts)

	var b strings.Builder
	fmt.Fprintf(&b, "PIPELINE: %d accounts (%d active), total value $%.0f, weighted $%.2f, avg likelihood %.1f%%\n\n",
		stats.TotalAccounts, stats.ActiveAccounts, stats.TotalPipelineValue,
		stats.WeightedPipelineValue, stats.AvgLikelihood)

	b.WriteString("ACCOUNTS:\n")
	for _, acc := range accounts {
		fmt.Fprintf(&b, "- %s (%s, %s): stage=%s value=$%.0f likelihood=%d%%",
			acc.Company, acc.Contact.Name, acc.Contact.Role,
			acc.Stage, acc.DealValue, acc.Likelihood)
		if len(acc.Tags) > 0 {
			fmt.Fprintf(&b, " tags=[%s]", strings.Join(acc.Tags, ","))
		}
		if acc.NextFollowUp != nil {
			fmt.Fprintf(&b, " follow_up=%s", acc.NextFollowUp.Format("2006-01-02"))
		}
		if n := len(acc.Notes); n > 0 {
			fmt.Fprintf(&b, " latest_note=%q", acc.Notes[n-1])
		}
		b.WriteString("\n")
	}
	return b.String()
}

func trimHistory(messages []store.ChatMessage) []store.ChatMessage {
	if len(messages) <= maxHistoryMessages {
		return messages
	}
	return messages[len(messages)-maxHistoryMessages:]
}
