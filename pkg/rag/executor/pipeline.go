package executor

import (
	"context"
	"errors"
	"time"

	"ai-ragchat-be/internal/pkg/logger"
	"ai-ragchat-be/pkg/events"
	"ai-ragchat-be/pkg/llm"
	"ai-ragchat-be/pkg/rag"
	"ai-ragchat-be/pkg/rag/history"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const module = "PIPELINE"

var ErrEmptySession = errors.New("session id is required")

// Rephraser produces the standalone query for a turn.
type Rephraser interface {
	Rephrase(ctx context.Context, history []rag.Message, input string) (string, error)
}

// ContextRetriever turns a query into formatted prompt context.
type ContextRetriever interface {
	Retrieve(ctx context.Context, query string) (string, error)
}

// Synthesizer writes the final answer.
type Synthesizer interface {
	Synthesize(ctx context.Context, history []rag.Message, question, docs string) (string, error)
}

// ExecutionResult contains the result of pipeline execution
type ExecutionResult struct {
	Reply    string
	Question string
	Context  string
	// HistoryLen is the length of the session log after this turn.
	HistoryLen int
}

// Pipeline runs rephrase, retrieval and synthesis for one session turn and
// records the turn in history only when all three succeed.
type Pipeline struct {
	history     history.Store
	locks       *history.Locker
	window      history.Window
	rephraser   Rephraser
	retriever   ContextRetriever
	synthesizer Synthesizer

	publisher    events.Publisher
	logger       logger.ILogger
	tracer       trace.Tracer
	stageTimeout time.Duration
}

type Option func(*Pipeline)

func WithLogger(l logger.ILogger) Option {
	return func(p *Pipeline) { p.logger = l }
}

func WithWindow(w history.Window) Option {
	return func(p *Pipeline) { p.window = w }
}

// WithStageTimeout bounds each collaborator call. Zero leaves it to ctx.
func WithStageTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.stageTimeout = d }
}

func WithPublisher(pub events.Publisher) Option {
	return func(p *Pipeline) { p.publisher = pub }
}

// WithLocker shares a lock table between pipelines over the same store.
func WithLocker(l *history.Locker) Option {
	return func(p *Pipeline) { p.locks = l }
}

func NewPipeline(
	store history.Store,
	rephraser Rephraser,
	retriever ContextRetriever,
	synthesizer Synthesizer,
	opts ...Option,
) *Pipeline {
	p := &Pipeline{
		history:     store,
		locks:       history.NewLocker(),
		window:      history.Unbounded,
		rephraser:   rephraser,
		retriever:   retriever,
		synthesizer: synthesizer,
		logger:      logger.NewNop(),
		tracer:      otel.Tracer("ai-ragchat-be/pkg/rag/executor"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one turn and returns the answer.
func (p *Pipeline) Run(ctx context.Context, sessionID, input string) (string, error) {
	res, err := p.Execute(ctx, sessionID, input)
	if err != nil {
		return "", err
	}
	return res.Reply, nil
}

// Execute runs the complete turn. Errors from any stage or the store are
// returned unchanged and leave the session log as it was.
func (p *Pipeline) Execute(ctx context.Context, sessionID, input string) (*ExecutionResult, error) {
	if sessionID == "" {
		return nil, ErrEmptySession
	}
	started := time.Now()

	ctx, span := p.tracer.Start(ctx, "pipeline.execute", trace.WithAttributes(
		attribute.String("session.id", sessionID),
	))
	defer span.End()

	ctx = llm.WithSessionID(ctx, sessionID)

	unlock, err := p.locks.Lock(ctx, sessionID)
	if err != nil {
		return nil, p.fail(span, sessionID, "lock", err)
	}
	defer unlock()

	sessionLog, err := p.history.GetOrCreate(ctx, sessionID)
	if err != nil {
		return nil, p.fail(span, sessionID, "history", err)
	}
	promptHistory := p.window.Apply(sessionLog)

	state := rag.State{Input: input}

	state.Question, err = p.stage(ctx, "rephrase", func(ctx context.Context) (string, error) {
		return p.rephraser.Rephrase(ctx, promptHistory, state.Input)
	})
	if err != nil {
		return nil, p.fail(span, sessionID, "rephrase", err)
	}
	p.logger.Debug(module, "Question rephrased", map[string]interface{}{
		"session_id": sessionID,
		"input":      state.Input,
		"question":   state.Question,
	})

	state.Context, err = p.stage(ctx, "retrieve", func(ctx context.Context) (string, error) {
		return p.retriever.Retrieve(ctx, state.Question)
	})
	if err != nil {
		return nil, p.fail(span, sessionID, "retrieve", err)
	}

	answer, err := p.stage(ctx, "synthesize", func(ctx context.Context) (string, error) {
		return p.synthesizer.Synthesize(ctx, promptHistory, state.Question, state.Context)
	})
	if err != nil {
		return nil, p.fail(span, sessionID, "synthesize", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, p.fail(span, sessionID, "append", err)
	}
	if err := p.history.Append(ctx, sessionID, rag.UserMessage(state.Input), rag.AssistantMessage(answer)); err != nil {
		return nil, p.fail(span, sessionID, "append", err)
	}

	historyLen := len(sessionLog) + 2
	elapsed := time.Since(started)
	p.logger.Info(module, "Turn completed", map[string]interface{}{
		"session_id":  sessionID,
		"history_len": historyLen,
		"context_len": len(state.Context),
		"elapsed_ms":  elapsed.Milliseconds(),
	})
	p.publish(ctx, events.TurnCompleted(sessionID, state.Question, historyLen, elapsed))

	return &ExecutionResult{
		Reply:      answer,
		Question:   state.Question,
		Context:    state.Context,
		HistoryLen: historyLen,
	}, nil
}

func (p *Pipeline) stage(ctx context.Context, name string, fn func(context.Context) (string, error)) (string, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline."+name)
	defer span.End()

	if p.stageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.stageTimeout)
		defer cancel()
	}

	out, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return out, nil
}

func (p *Pipeline) fail(span trace.Span, sessionID, step string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, step)
	p.logger.Error(module, "Turn aborted", map[string]interface{}{
		"session_id": sessionID,
		"step":       step,
		"error":      err,
	})
	return err
}

// publish is best effort; the turn is already recorded.
func (p *Pipeline) publish(ctx context.Context, event events.Event) {
	if p.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.publisher.Publish(pubCtx, event); err != nil {
		p.logger.Warn(module, "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}
}
