package agent

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Preetham2702/ClauseBot/internal/llm"
)

// State of a session between and during requests.
type State string

const (
	StateIdle              State = "idle"
	StateAwaitingInference State = "awaiting_inference"
)

// Session owns one conversation and drives the single inference call per
// turn. Requests on one session are serialized: a call arriving while
// another is awaiting inference waits for it to complete, so history always
// reflects strict wall-clock request order.
type Session struct {
	id      string
	backend llm.Backend
	store   *Conversation
	cfg     PromptConfig
	timeout time.Duration
	log     *slog.Logger
	now     func() time.Time

	mu    sync.Mutex
	state atomic.Value // State

	lastActive atomic.Int64 // unix nanos, for TTL eviction
}

func NewSession(id string, backend llm.Backend, cfg PromptConfig, timeout time.Duration, log *slog.Logger) *Session {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	s := &Session{
		id:      id,
		backend: backend,
		store:   NewConversation(),
		cfg:     cfg,
		timeout: timeout,
		log:     log,
		now:     time.Now,
	}
	s.state.Store(StateIdle)
	s.touch()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// State reports the current state. Any inference completion, including a
// late one after the caller gave up, restores Idle.
func (s *Session) State() State {
	return s.state.Load().(State)
}

// History returns a copy of the conversation in insertion order.
func (s *Session) History() []Turn {
	return s.store.History()
}

// Ask answers a question grounded in the supplied lease text (optional).
// On backend failure nothing is appended: a failed inference never leaves a
// partial turn in history.
func (s *Session) Ask(ctx context.Context, question, documentText string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", &InvalidInputError{Reason: "question must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	prompt := BuildAskPrompt(question, documentText, s.store.History(), s.cfg)

	raw, err := s.infer(ctx, prompt)
	if err != nil {
		s.log.Error("inference failed", "session_id", s.id, "error", err)
		return "", &BackendUnavailableError{Err: err}
	}

	answer := ParseFreeform(raw)

	now := s.now()
	s.store.Append(Turn{Role: RoleUser, Content: question, CreatedAt: now})
	s.store.Append(Turn{Role: RoleAssistant, Content: answer, CreatedAt: now})

	return answer, nil
}

// Analyze produces the four-section breakdown of documentText. It neither
// reads nor writes conversation history. An unparseable response is
// returned as a degraded result with ParseFailed set, not as an error.
func (s *Session) Analyze(ctx context.Context, documentText string) (AnalysisResult, error) {
	if strings.TrimSpace(documentText) == "" {
		return AnalysisResult{}, &InvalidInputError{Reason: "document text must not be empty"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	prompt := BuildAnalysisPrompt(documentText, s.cfg)

	raw, err := s.infer(ctx, prompt)
	if err != nil {
		s.log.Error("inference failed", "session_id", s.id, "error", err)
		return AnalysisResult{}, &BackendUnavailableError{Err: err}
	}

	result := ParseAnalysis(raw)
	if result.ParseFailed {
		s.log.Warn("analysis response not parseable", "session_id", s.id)
	}
	return result, nil
}

func (s *Session) infer(ctx context.Context, prompt []llm.Message) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.state.Store(StateAwaitingInference)
	defer s.state.Store(StateIdle)

	return s.backend.Complete(ctx, prompt)
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive is the time of the most recent request on this session.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}
