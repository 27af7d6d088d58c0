package router

import (
	"context"
	"errors"
	"fmt"

	"ai-tutor-be/pkg/rag/matcher"
	"ai-tutor-be/pkg/store"
	"ai-tutor-be/pkg/tools/calculator"
	"ai-tutor-be/pkg/tools/todo"
	"ai-tutor-be/pkg/tools/weather"
	"ai-tutor-be/pkg/tools/websearch"
)

// Retriever answers questions from the internal documents
type Retriever interface {
	Answer(query string) matcher.MatchResult
}

type Calculator interface {
	Calculate(text string) (calculator.Result, error)
}

type WeatherService interface {
	GetWeather(ctx context.Context, cityFreeText string) (weather.Report, error)
}

type WebSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]websearch.Result, error)
}

type TodoService interface {
	Apply(ctx context.Context, command string) (todo.View, error)
}

// Smalltalker replies to greetings and chit-chat, usually through an LLM
type Smalltalker interface {
	Chat(ctx context.Context, history []store.Message, text string) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Handlers groups the external collaborators. A nil handler makes the
// matching intent fail with ErrHandlerUnavailable.
type Handlers struct {
	Calculator Calculator
	Weather    WeatherService
	WebSearch  WebSearcher
	Todo       TodoService
	Smalltalk  Smalltalker
	Mailer     Mailer
}

var ErrHandlerUnavailable = errors.New("handler not configured")

// HandlerError wraps the failure of an external handler, timeouts included.
type HandlerError struct {
	Tool string
	Err  error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Tool, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
