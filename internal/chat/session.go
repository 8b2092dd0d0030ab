package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bhai/internal/llm"
	"bhai/internal/models"
	"bhai/internal/storage"
)

// Completer produces the next assistant reply for a role-tagged history.
type Completer interface {
	Complete(ctx context.Context, history []llm.Message, userContext string) (string, error)
}

const (
	contextSummaryCap  = 2
	contextSummaryLen  = 200
	contextIntroHeader = "Context about the user's recent assessments (newest first):"
)

// Session maintains the ordered message log of one conversation. The user
// message is appended and persisted before the completion call, and stays in
// place when that call fails.
type Session struct {
	store     *storage.Store
	completer Completer
	log       *zap.Logger
	now       func() time.Time

	userID string
	conv   models.Conversation
}

// NewSession resumes the conversation with the given id when it exists in
// storage, otherwise starts a fresh one.
func NewSession(ctx context.Context, store *storage.Store, completer Completer, log *zap.Logger, userID, conversationID string) *Session {
	s := &Session{
		store:     store,
		completer: completer,
		log:       log,
		now:       time.Now,
		userID:    userID,
	}
	if conversationID != "" {
		if conv, ok := store.ConversationByID(ctx, conversationID); ok {
			s.conv = conv
			return s
		}
	}
	s.conv = s.newConversation()
	return s
}

func (s *Session) newConversation() models.Conversation {
	now := s.now()
	return models.Conversation{
		ID:        uuid.NewString(),
		UserID:    s.userID,
		Messages:  []models.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Session) Conversation() models.Conversation { return s.conv }

func (s *Session) Messages() []models.Message {
	return append([]models.Message{}, s.conv.Messages...)
}

// SendMessage appends the user's message, persists, and asks the completer
// for a reply. Empty or whitespace-only input is a no-op. On completion
// failure the user message is kept and the error is returned; no assistant
// message is appended and no retry happens here.
func (s *Session) SendMessage(ctx context.Context, text string) (*models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	userMsg := models.Message{
		ID:        uuid.NewString(),
		Content:   text,
		Sender:    models.SenderUser,
		Timestamp: s.now(),
	}
	s.appendAndPersist(ctx, userMsg)

	history := make([]llm.Message, 0, len(s.conv.Messages))
	for _, m := range s.conv.Messages {
		role := "assistant"
		if m.Sender == models.SenderUser {
			role = "user"
		}
		history = append(history, llm.Message{Role: role, Content: m.Content})
	}

	reply, err := s.completer.Complete(ctx, history, s.assessmentContext(ctx))
	if err != nil {
		s.log.Error("chat completion failed",
			zap.String("conversation_id", s.conv.ID),
			zap.String("user_id", s.userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("get assistant reply: %w", err)
	}

	assistantMsg := models.Message{
		ID:        uuid.NewString(),
		Content:   reply,
		Sender:    models.SenderAssistant,
		Timestamp: s.now(),
	}
	s.appendAndPersist(ctx, assistantMsg)
	return &assistantMsg, nil
}

// ClearConversation starts a brand-new empty conversation. The previous one
// stays in storage under its old identifier.
func (s *Session) ClearConversation(ctx context.Context) {
	s.conv = s.newConversation()
	s.store.SaveConversation(ctx, s.conv)
}

func (s *Session) appendAndPersist(ctx context.Context, msg models.Message) {
	s.conv.Messages = append(s.conv.Messages, msg)
	// UpdatedAt must strictly increase across appends even under a coarse
	// clock.
	t := s.now()
	if !t.After(s.conv.UpdatedAt) {
		t = s.conv.UpdatedAt.Add(time.Nanosecond)
	}
	s.conv.UpdatedAt = t
	s.store.SaveConversation(ctx, s.conv)
}

// assessmentContext summarizes the user's newest assessments (at most two,
// newest first) for the completion prompt.
func (s *Session) assessmentContext(ctx context.Context) string {
	assessments := s.store.AssessmentsForUser(ctx, s.userID)
	if len(assessments) == 0 {
		return ""
	}
	sort.SliceStable(assessments, func(i, j int) bool {
		return assessments[i].CreatedAt.After(assessments[j].CreatedAt)
	})
	if len(assessments) > contextSummaryCap {
		assessments = assessments[:contextSummaryCap]
	}

	var b strings.Builder
	b.WriteString(contextIntroHeader)
	for _, a := range assessments {
		summary := []rune(a.Result)
		if len(summary) > contextSummaryLen {
			summary = summary[:contextSummaryLen]
		}
		b.WriteString(fmt.Sprintf("\n- [%s, %s] %s", a.Type, a.CreatedAt.Format("2006-01-02"), string(summary)))
	}
	return b.String()
}
