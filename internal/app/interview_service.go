package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mock-interview-service/internal/bank"
	"mock-interview-service/internal/domain"
)

// DefaultQuestionCount is used when the start request omits the count.
const DefaultQuestionCount = 5

// SessionStore abstracts how live sessions are tracked (in-memory, Redis
// liveness, etc).
type SessionStore interface {
	Put(session *Session)
	Get(id string) (*Session, bool)
	Delete(id string)
}

// BankRepository loads question banks (from cache/backing store).
type BankRepository interface {
	GetBank(ctx context.Context, role string) (domain.Bank, error)
}

// StartRequest is the session setup input.
type StartRequest struct {
	Role          string      `json:"role"`
	QuestionCount int         `json:"questionCount"`
	Mode          domain.Mode `json:"mode"`
	// MediaAvailable reports whether the client obtained a camera/mic
	// stream; without it the session degrades to text mode.
	MediaAvailable bool `json:"mediaAvailable"`
	// CaptureAvailable reports whether the client offers speech
	// recognition.
	CaptureAvailable bool `json:"captureAvailable"`
}

// InterviewService owns session lifecycle: it builds scripts from the bank,
// creates sessions and tears them down.
type InterviewService struct {
	store    SessionStore
	banks    BankRepository
	selector *bank.Selector
	tick     time.Duration
	log      zerolog.Logger
}

func NewInterviewService(store SessionStore, banks BankRepository, selector *bank.Selector, log zerolog.Logger) *InterviewService {
	return NewInterviewServiceWithTick(store, banks, selector, log, time.Second)
}

// NewInterviewServiceWithTick is test-only: a short tick interval lets timer
// tests run in milliseconds.
func NewInterviewServiceWithTick(store SessionStore, banks BankRepository, selector *bank.Selector, log zerolog.Logger, tick time.Duration) *InterviewService {
	return &InterviewService{
		store:    store,
		banks:    banks,
		selector: selector,
		tick:     tick,
		log:      log.With().Str("component", "interview_service").Logger(),
	}
}

// StartSession builds the script and registers a new session. Unknown roles
// fall back to the default bank; a missing camera degrades the mode to text.
func (s *InterviewService) StartSession(ctx context.Context, req StartRequest) (*Session, error) {
	count := req.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}
	mode := req.Mode
	switch mode {
	case domain.ModeText, domain.ModeVoice, domain.ModeHybrid:
	default:
		mode = domain.ModeText
	}
	if !req.MediaAvailable {
		mode = domain.ModeText
	}
	captureAvailable := req.CaptureAvailable && mode != domain.ModeText

	roleBank, err := s.banks.GetBank(ctx, req.Role)
	if errors.Is(err, domain.ErrBankNotFound) {
		roleBank, err = s.banks.GetBank(ctx, bank.DefaultRole)
	}
	if err != nil {
		return nil, err
	}

	behavioral, err := s.banks.GetBank(ctx, bank.BehavioralRole)
	if err != nil && !errors.Is(err, domain.ErrBankNotFound) {
		return nil, err
	}

	script := s.selector.Select(roleBank.Questions, behavioral.Questions, count)
	session := newSession(uuid.NewString(), mode, req.Role, script, req.MediaAvailable, captureAvailable, s.tick)
	s.store.Put(session)

	s.log.Info().
		Str("session", session.ID()).
		Str("role", req.Role).
		Int("questions", len(script)).
		Str("mode", string(mode)).
		Msg("session started")
	return session, nil
}

// GetSession looks up a live session by ID.
func (s *InterviewService) GetSession(id string) (*Session, error) {
	session, ok := s.store.Get(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// EndSession cancels all session resources and drops it from the store.
// Restarting is starting a fresh session, never reusing an old one.
func (s *InterviewService) EndSession(id string) {
	session, ok := s.store.Get(id)
	if !ok {
		return
	}
	session.End()
	s.store.Delete(id)
	s.log.Info().Str("session", id).Msg("session ended")
}
