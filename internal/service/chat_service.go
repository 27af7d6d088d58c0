package service

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/ai/router"
	"ai-tutor-be/pkg/rag/session"
	"ai-tutor-be/pkg/store"
)

var (
	ErrEmptyChat       = errors.New("chat message is empty")
	ErrSessionNotFound = errors.New("session not found")
)

type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error)
	ResetSession(ctx context.Context, sessionId string) error
}

// turnLocks serialises turns of the same session. Sessions hash onto a fixed
// set of mutexes so the table never grows.
type turnLocks [64]sync.Mutex

func (l *turnLocks) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &l[h.Sum32()%uint32(len(l))]
	mu.Lock()
	return mu.Unlock
}

type chatService struct {
	sessions *session.Manager
	router   *router.Router
	log      logger.ILogger
	locks    turnLocks
}

func NewChatService(sessions *session.Manager, r *router.Router, log logger.ILogger) IChatService {
	return &chatService{
		sessions: sessions,
		router:   r,
		log:      log,
	}
}

// SendChat runs one turn: load the session, route the text, record the
// exchange and persist the new state.
func (s *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	text := strings.TrimSpace(request.Chat)
	if text == "" {
		return nil, ErrEmptyChat
	}

	id := request.SessionId
	if id == "" {
		id = session.NewID()
	}
	defer s.locks.lock(id)()

	current, err := s.sessions.LoadOrCreate(ctx, id)
	if err != nil {
		return nil, err
	}

	res, next := s.router.Execute(ctx, current, text)
	s.sessions.Record(&next, text, res.Reply)

	if err := s.sessions.Save(ctx, next); err != nil {
		return nil, err
	}

	s.log.Info("CHAT", "Turn completed", map[string]interface{}{
		"session": next.ID,
		"mode":    string(res.Mode),
		"pending": next.PendingConfirmation,
	})

	out := &dto.SendChatResponse{
		SessionId: next.ID,
		Reply:     res.Reply,
		Mode:      string(res.Mode),
		Intent:    res.Intent.String(),
		Pending:   next.PendingConfirmation,
		Sources:   res.Sources,
	}
	if res.Match != nil {
		score := res.Match.Score
		out.Score = &score
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out, nil
}

func (s *chatService) GetSession(ctx context.Context, sessionId string) (*dto.GetSessionResponse, error) {
	current, err := s.sessions.Find(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrSessionNotFound
	}
	return toSessionResponse(*current), nil
}

func (s *chatService) ResetSession(ctx context.Context, sessionId string) error {
	defer s.locks.lock(sessionId)()
	return s.sessions.Reset(ctx, sessionId)
}

func toSessionResponse(sess store.Session) *dto.GetSessionResponse {
	history := make([]dto.ChatMessageResponse, 0, len(sess.History))
	for _, m := range sess.History {
		history = append(history, dto.ChatMessageResponse{Role: m.Role, Chat: m.Content, CreatedAt: m.At})
	}
	return &dto.GetSessionResponse{
		SessionId:   sess.ID,
		Pending:     sess.PendingConfirmation,
		LastMode:    sess.LastMode,
		LastSources: sess.LastSources,
		History:     history,
	}
}
