package router

import (
	"context"
	"time"

	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/rag/intent"
	"ai-tutor-be/pkg/rag/matcher"
	"ai-tutor-be/pkg/rag/response"
	"ai-tutor-be/pkg/rag/state"
	"ai-tutor-be/pkg/store"
)

// Mode tells the caller which path produced the reply
type Mode string

const (
	ModeRAG       Mode = "rag"
	ModeOffer     Mode = "web-offer" // retrieval miss, waiting for consent
	ModeDeclined  Mode = "declined"  // web search refused, back to the documents
	ModeWeb       Mode = "web"
	ModeCalc      Mode = "calc"
	ModeWeather   Mode = "weather"
	ModeTodo      Mode = "todo"
	ModeSmalltalk Mode = "smalltalk"
	ModeEmail     Mode = "email"
	ModeError     Mode = "error"
)

type Config struct {
	HandlerTimeout time.Duration
	WebMaxResults  int
	MaxAnswerChars int
}

func DefaultConfig() Config {
	return Config{
		HandlerTimeout: 20 * time.Second,
		WebMaxResults:  5,
		MaxAnswerChars: response.DefaultMaxAnswerChars,
	}
}

// ExecuteResult is the outcome of one turn
type ExecuteResult struct {
	Reply   string
	Mode    Mode
	Intent  intent.Intent
	Outcome state.Outcome
	Sources []string
	// Match is set for retrieval turns
	Match *matcher.MatchResult
	// Err is the handler or mail failure behind an error reply
	Err error
}

// Router runs one conversation turn: classify, dispatch, move the state
// machine. It never blocks except inside handlers, each of which runs under
// its own timeout.
type Router struct {
	classifier *intent.Classifier
	retriever  Retriever
	handlers   Handlers
	states     *state.Manager
	cfg        Config
	logger     logger.ILogger
}

func NewRouter(
	classifier *intent.Classifier,
	retriever Retriever,
	handlers Handlers,
	cfg Config,
	logger logger.ILogger,
) *Router {
	if cfg.WebMaxResults <= 0 {
		cfg.WebMaxResults = DefaultConfig().WebMaxResults
	}
	if cfg.MaxAnswerChars <= 0 {
		cfg.MaxAnswerChars = response.DefaultMaxAnswerChars
	}
	return &Router{
		classifier: classifier,
		retriever:  retriever,
		handlers:   handlers,
		states:     state.NewManager(logger),
		cfg:        cfg,
		logger:     logger,
	}
}

// Execute handles text against session and returns the reply with the
// session as it stands after the turn. The input session is not modified.
func (r *Router) Execute(ctx context.Context, session store.Session, text string) (*ExecuteResult, store.Session) {
	next := session.Clone()
	if next.PendingConfirmation == "" {
		next.PendingConfirmation = store.PendingNone
	}

	in := r.classifier.Classify(text, next)
	r.logger.Debug("ROUTER", "Intent classified", map[string]interface{}{
		"session": next.ID,
		"intent":  in.String(),
		"rule":    in.Rule,
		"pending": next.PendingConfirmation,
	})

	res := r.dispatch(ctx, next, in)
	res.Intent = in

	var escalation string
	if res.Outcome == state.OutcomeMiss {
		escalation = in.Payload
	}
	r.states.Apply(&next, in.Kind, res.Outcome, escalation)

	if res.Outcome == state.OutcomeAnswered && recordsAnswer(res.Mode) {
		r.states.RecordAnswer(&next, res.Reply, string(res.Mode), res.Sources)
	}

	if res.Err != nil {
		r.logger.Warn("ROUTER", "Turn failed", map[string]interface{}{
			"session": next.ID,
			"intent":  in.String(),
			"error":   res.Err,
		})
	}
	return res, next
}

// recordsAnswer is false for the replies that carry no content worth
// e-mailing: the web offer, the consent refusal and mail receipts.
func recordsAnswer(mode Mode) bool {
	switch mode {
	case ModeOffer, ModeDeclined, ModeEmail, ModeError:
		return false
	}
	return true
}

func (r *Router) dispatch(ctx context.Context, s store.Session, in intent.Intent) *ExecuteResult {
	switch in.Kind {
	case intent.KindConfirmation:
		return r.confirm(ctx, s, in)
	case intent.KindEmailCommand:
		return r.email(ctx, s, in)
	case intent.KindCalc:
		return r.calculate(in)
	case intent.KindWebSearch:
		return r.webSearch(ctx, in.Payload, false)
	case intent.KindWeather:
		return r.weather(ctx, in)
	case intent.KindTodo:
		return r.todo(ctx, in)
	case intent.KindSmalltalk:
		return r.smalltalk(ctx, s, in)
	default:
		return r.retrieve(in)
	}
}

func (r *Router) confirm(ctx context.Context, s store.Session, in intent.Intent) *ExecuteResult {
	if !in.Affirmative || s.LastEscalationQuery == "" {
		return &ExecuteResult{Reply: response.StayInternal, Mode: ModeDeclined, Outcome: state.OutcomeAnswered}
	}
	return r.webSearch(ctx, s.LastEscalationQuery, true)
}

func (r *Router) email(ctx context.Context, s store.Session, in intent.Intent) *ExecuteResult {
	if s.LastAnswer == "" {
		return &ExecuteResult{Reply: response.NoPreviousAnswer, Mode: ModeEmail, Outcome: state.OutcomeAnswered}
	}
	if r.handlers.Mailer == nil {
		return r.failure(response.ToolMailer, ErrHandlerUnavailable)
	}

	ctx, cancel := r.handlerContext(ctx)
	defer cancel()

	if err := r.handlers.Mailer.Send(ctx, in.Address, response.EmailSubject, s.LastAnswer); err != nil {
		// mail errors are shown as they are
		return &ExecuteResult{Reply: err.Error(), Mode: ModeError, Outcome: state.OutcomeFailed, Err: err}
	}
	r.logger.Info("ROUTER", "Last answer mailed", map[string]interface{}{"session": s.ID, "to": in.Address})
	return &ExecuteResult{Reply: response.EmailSent, Mode: ModeEmail, Outcome: state.OutcomeAnswered}
}

func (r *Router) calculate(in intent.Intent) *ExecuteResult {
	if r.handlers.Calculator == nil {
		return r.failure(response.ToolCalculator, ErrHandlerUnavailable)
	}
	res, err := r.handlers.Calculator.Calculate(in.Payload)
	if err != nil {
		return r.failure(response.ToolCalculator, err)
	}
	return &ExecuteResult{
		Reply:   response.Calculation(res.Expression, res.Formatted()),
		Mode:    ModeCalc,
		Outcome: state.OutcomeAnswered,
	}
}

func (r *Router) webSearch(ctx context.Context, query string, consented bool) *ExecuteResult {
	if r.handlers.WebSearch == nil {
		return r.failure(response.ToolWebSearch, ErrHandlerUnavailable)
	}

	ctx, cancel := r.handlerContext(ctx)
	defer cancel()

	results, err := r.handlers.WebSearch.Search(ctx, query, r.cfg.WebMaxResults)
	if err != nil {
		return r.failure(response.ToolWebSearch, err)
	}

	reply := response.ExplicitWebSearch(results)
	if consented {
		reply = response.ConsentedWebSearch(results)
	}
	sources := make([]string, 0, len(results))
	for _, res := range results {
		if res.URL != "" {
			sources = append(sources, res.URL)
		}
	}
	return &ExecuteResult{Reply: reply, Mode: ModeWeb, Outcome: state.OutcomeAnswered, Sources: sources}
}

func (r *Router) weather(ctx context.Context, in intent.Intent) *ExecuteResult {
	if r.handlers.Weather == nil {
		return r.failure(response.ToolWeather, ErrHandlerUnavailable)
	}

	ctx, cancel := r.handlerContext(ctx)
	defer cancel()

	report, err := r.handlers.Weather.GetWeather(ctx, in.Payload)
	if err != nil {
		return r.failure(response.ToolWeather, err)
	}
	return &ExecuteResult{Reply: response.Weather(report), Mode: ModeWeather, Outcome: state.OutcomeAnswered}
}

func (r *Router) todo(ctx context.Context, in intent.Intent) *ExecuteResult {
	if r.handlers.Todo == nil {
		return r.failure(response.ToolTodo, ErrHandlerUnavailable)
	}

	ctx, cancel := r.handlerContext(ctx)
	defer cancel()

	view, err := r.handlers.Todo.Apply(ctx, in.Payload)
	if err != nil {
		return r.failure(response.ToolTodo, err)
	}
	return &ExecuteResult{Reply: response.Todo(view.Markdown()), Mode: ModeTodo, Outcome: state.OutcomeAnswered}
}

func (r *Router) smalltalk(ctx context.Context, s store.Session, in intent.Intent) *ExecuteResult {
	if r.handlers.Smalltalk == nil {
		return r.failure(response.ToolSmalltalk, ErrHandlerUnavailable)
	}

	ctx, cancel := r.handlerContext(ctx)
	defer cancel()

	reply, err := r.handlers.Smalltalk.Chat(ctx, s.History, in.Payload)
	if err != nil {
		return r.failure(response.ToolSmalltalk, err)
	}
	return &ExecuteResult{Reply: reply, Mode: ModeSmalltalk, Outcome: state.OutcomeAnswered}
}

func (r *Router) retrieve(in intent.Intent) *ExecuteResult {
	match := r.retriever.Answer(in.Payload)
	if !match.Matched {
		r.logger.Info("ROUTER", "No trustworthy section, offering web search", map[string]interface{}{
			"query": in.Payload,
			"score": match.Score,
		})
		return &ExecuteResult{Reply: response.WebSearchOffer, Mode: ModeOffer, Outcome: state.OutcomeMiss, Match: &match}
	}

	r.logger.Info("ROUTER", "Answered from internal documents", map[string]interface{}{
		"source": match.Section.Source,
		"title":  match.Section.Title,
		"reason": string(match.Reason),
		"score":  match.Score,
	})
	return &ExecuteResult{
		Reply:   response.Answer(match.Section, r.cfg.MaxAnswerChars),
		Mode:    ModeRAG,
		Outcome: state.OutcomeAnswered,
		Sources: []string{match.Section.Source},
		Match:   &match,
	}
}

func (r *Router) failure(tool string, err error) *ExecuteResult {
	herr := &HandlerError{Tool: tool, Err: err}
	return &ExecuteResult{
		Reply:   response.HandlerFailure(tool, err),
		Mode:    ModeError,
		Outcome: state.OutcomeFailed,
		Err:     herr,
	}
}

func (r *Router) handlerContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.HandlerTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.cfg.HandlerTimeout)
}
