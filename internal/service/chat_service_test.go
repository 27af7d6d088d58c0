package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/internal/repository/memory"
	"ai-tutor-be/pkg/ai/router"
	"ai-tutor-be/pkg/rag/corpus"
	"ai-tutor-be/pkg/rag/intent"
	"ai-tutor-be/pkg/rag/matcher"
	"ai-tutor-be/pkg/rag/session"
	"ai-tutor-be/pkg/store"
	"ai-tutor-be/pkg/tools/calculator"
)

func newTestChatService(t *testing.T) (IChatService, *session.Manager) {
	t.Helper()
	idx, err := corpus.Build([]corpus.RawSection{
		{Source: "cours/ia.md", Text: "# Intelligence Artificielle\nL'IA désigne des systèmes qui imitent des fonctions cognitives."},
	})
	require.NoError(t, err)

	log := logger.NewNopLogger()
	r := router.NewRouter(
		intent.NewClassifier(),
		matcher.New(matcher.DefaultConfig(), idx),
		router.Handlers{Calculator: calculator.New()},
		router.Config{HandlerTimeout: time.Second},
		log,
	)
	sessions := session.NewManager(memory.NewSessionRepository(time.Hour), 0)
	return NewChatService(sessions, r, log), sessions
}

func TestChatService_SendChat(t *testing.T) {
	ctx := context.Background()
	svc, sessions := newTestChatService(t)

	first, err := svc.SendChat(ctx, &dto.SendChatRequest{Chat: "qu'est-ce que l'IA ?"})
	require.NoError(t, err)
	require.NotEmpty(t, first.SessionId)
	assert.Equal(t, string(router.ModeRAG), first.Mode)
	assert.Equal(t, []string{"cours/ia.md"}, first.Sources)
	assert.Contains(t, first.Reply, "fonctions cognitives")
	require.NotNil(t, first.Score)

	miss, err := svc.SendChat(ctx, &dto.SendChatRequest{SessionId: first.SessionId, Chat: "askjdhaskjdh random nonsense"})
	require.NoError(t, err)
	assert.Equal(t, string(router.ModeOffer), miss.Mode)
	assert.Equal(t, store.PendingWebSearchConsent, miss.Pending)

	stored, err := sessions.Find(ctx, first.SessionId)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "askjdhaskjdh random nonsense", stored.LastEscalationQuery)
	assert.Len(t, stored.History, 4)
	assert.Equal(t, store.RoleUser, stored.History[0].Role)

	calc, err := svc.SendChat(ctx, &dto.SendChatRequest{SessionId: first.SessionId, Chat: "calcule 2+3*4"})
	require.NoError(t, err)
	assert.Equal(t, string(router.ModeCalc), calc.Mode)
	assert.Equal(t, store.PendingNone, calc.Pending)
}

func TestChatService_MissingHandlerIsReportedNotReturned(t *testing.T) {
	svc, _ := newTestChatService(t)

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Chat: "quelle météo à Lyon ?"})
	require.NoError(t, err)
	assert.Equal(t, string(router.ModeError), res.Mode)
	assert.NotEmpty(t, res.Error)
}

func TestChatService_EmptyChat(t *testing.T) {
	svc, _ := newTestChatService(t)

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Chat: "   "})
	assert.ErrorIs(t, err, ErrEmptyChat)
}

func TestChatService_GetAndResetSession(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestChatService(t)

	_, err := svc.GetSession(ctx, "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	res, err := svc.SendChat(ctx, &dto.SendChatRequest{SessionId: "s1", Chat: "calcule 1+1"})
	require.NoError(t, err)
	assert.Equal(t, "s1", res.SessionId)

	got, err := svc.GetSession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.History, 2)
	assert.Equal(t, "calcule 1+1", got.History[0].Chat)
	assert.Equal(t, string(router.ModeCalc), got.LastMode)

	require.NoError(t, svc.ResetSession(ctx, "s1"))
	_, err = svc.GetSession(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
