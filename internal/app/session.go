package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"mock-interview-service/internal/domain"
	"mock-interview-service/internal/evaluate"
	"mock-interview-service/internal/summary"
)

// State names the phases of one interview session.
type State string

const (
	StateSetup             State = "setup"
	StateInQuestion        State = "in_question"
	StateShowingEvaluation State = "showing_evaluation"
	StateSummary           State = "summary"
	StateEnded             State = "ended"
)

// QuestionSeconds is the flat per-question time limit. Deliberately not
// configurable per question.
const QuestionSeconds = 120

const answerPreviewLen = 100

// Session is the single mutable aggregate for one interview. All mutation
// goes through its transition methods under the lock; the countdown and the
// transport only ever call back into those methods.
//
// While a question is open, currentIndex == len(results); submission appends
// exactly one record, and the first trigger (submit, skip or expiry) wins.
type Session struct {
	id               string
	role             string
	mode             domain.Mode
	script           domain.InterviewScript
	mediaAvailable   bool
	captureAvailable bool
	tickInterval     time.Duration

	mu            sync.Mutex
	state         State
	idx           int
	results       []domain.AnswerRecord
	answer        string
	submitted     bool
	captureActive bool
	remaining     int
	countdown     *Countdown
	utterance     int
	summary       domain.SessionSummary
	subscribers   map[chan Event]struct{}
}

func newSession(id string, mode domain.Mode, role string, script domain.InterviewScript, mediaAvailable, captureAvailable bool, tickInterval time.Duration) *Session {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	return &Session{
		id:               id,
		role:             role,
		mode:             mode,
		script:           script,
		mediaAvailable:   mediaAvailable,
		captureAvailable: captureAvailable,
		tickInterval:     tickInterval,
		state:            StateSetup,
		subscribers:      make(map[chan Event]struct{}),
	}
}

func (s *Session) ID() string   { return s.id }
func (s *Session) Role() string { return s.role }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentIndex returns the zero-based index of the question in play.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.idx
}

// Results returns a copy of the answer records accumulated so far.
func (s *Session) Results() []domain.AnswerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AnswerRecord, len(s.results))
	copy(out, s.results)
	return out
}

// Subscribe returns a channel receiving session events. The caller must
// invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 32)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Begin moves the session out of setup into its first question: announces
// the session, starts the first countdown and asks the synthesizer to read
// the question aloud.
func (s *Session) Begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSetup {
		return fmt.Errorf("session %s already started", s.id)
	}
	s.broadcastLocked(Event{Type: EventSession, Payload: SessionPayload{
		ID:               s.id,
		Role:             s.role,
		Mode:             s.mode,
		Questions:        len(s.script),
		MediaAvailable:   s.mediaAvailable,
		CaptureAvailable: s.captureAvailable,
	}})
	if !s.mediaAvailable {
		s.broadcastLocked(Event{Type: EventNotice, Payload: NoticePayload{Message: "Camera unavailable. Continuing in text mode."}})
	}
	s.enterQuestionLocked()
	return nil
}

// Submit records the current answer. A non-empty text overrides the buffer,
// so the client's final textarea state is authoritative on manual submit.
func (s *Session) Submit(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(text) != "" {
		s.answer = text
	}
	return s.submitLocked()
}

// Skip records the skip sentinel as the answer.
func (s *Session) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInQuestion && !s.submitted {
		s.answer = domain.SentinelSkipped
	}
	return s.submitLocked()
}

// Next advances past the evaluation screen: either into the next question
// or, after the last one, into the summary.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateSummary, StateEnded:
		return domain.ErrSessionFinished
	case StateShowingEvaluation:
	default:
		return domain.ErrNotAwaitingNext
	}
	if s.idx < len(s.script)-1 {
		s.idx++
		s.enterQuestionLocked()
		return nil
	}
	return s.finishLocked()
}

// Replay re-reads the current question aloud.
func (s *Session) Replay() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInQuestion {
		return domain.ErrNotAwaitingNext
	}
	s.speakLocked(s.script[s.idx].Text)
	return nil
}

// SetDraft replaces the typed answer buffer and refreshes the live
// word-count / engagement indicator.
func (s *Session) SetDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInQuestion || s.submitted {
		return nil
	}
	s.answer = text
	s.progressLocked()
	return nil
}

// AppendTranscript commits one recognized speech fragment. Interim
// fragments are discarded; final ones append in arrival order.
func (s *Session) AppendTranscript(text string, final bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !final || !s.captureActive || s.state != StateInQuestion || s.submitted {
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if s.answer != "" {
		s.answer += " "
	}
	s.answer += text
	s.progressLocked()
	return nil
}

// SetCapture toggles speech-to-text capture. Toggling off keeps the text
// already appended.
func (s *Session) SetCapture(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.captureAvailable {
		return domain.ErrCaptureUnavailable
	}
	if s.state != StateInQuestion {
		return domain.ErrNotAwaitingNext
	}
	s.captureActive = on
	s.broadcastLocked(Event{Type: EventCapture, Payload: CapturePayload{Active: on}})
	return nil
}

// SpeechStarted and SpeechEnded relay the synthesizer notifications that
// drive the speaking/listening indicator.
func (s *Session) SpeechStarted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcastLocked(Event{Type: EventIndicator, Payload: IndicatorPayload{Speaking: true}})
}

func (s *Session) SpeechEnded() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcastLocked(Event{Type: EventIndicator, Payload: IndicatorPayload{Speaking: false}})
}

// Report renders the plain-text export. Available once the summary has been
// reached.
func (s *Session) Report() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSummary {
		return "", domain.ErrNoResults
	}
	return summary.Report(s.summary, s.results), nil
}

// Summary returns the aggregated scorecard after the last evaluation.
func (s *Session) Summary() (domain.SessionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSummary {
		return domain.SessionSummary{}, domain.ErrNoResults
	}
	return s.summary, nil
}

// End tears the session down: countdown canceled, utterance canceled,
// capture stopped. Partial state is discarded, never persisted.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateEnded {
		return
	}
	if s.countdown != nil {
		s.countdown.Cancel()
	}
	s.captureActive = false
	s.broadcastLocked(Event{Type: EventSpeech, Payload: SpeechPayload{Action: SpeechCancel}})
	s.state = StateEnded
	s.broadcastLocked(Event{Type: EventEnded})
}

func (s *Session) enterQuestionLocked() {
	s.state = StateInQuestion
	s.submitted = false
	s.answer = ""
	s.captureActive = false
	s.remaining = QuestionSeconds

	q := s.script[s.idx]
	s.broadcastLocked(Event{Type: EventQuestion, Payload: QuestionPayload{
		Index:       s.idx,
		Total:       len(s.script),
		Text:        q.Text,
		Category:    q.Category,
		Difficulty:  q.Difficulty,
		KeywordHint: fmt.Sprintf("Focus on keywords like: %s. Structure your answer clearly.", strings.Join(q.Keywords, ", ")),
		STARMethod:  q.STARMethod,
		Seconds:     QuestionSeconds,
	}})
	s.speakLocked(q.Text)

	cd := NewCountdown(s.tickInterval)
	s.countdown = cd
	cd.Start(QuestionSeconds,
		func(remaining int) { s.handleTick(cd, remaining) },
		func() { s.handleExpire(cd) },
	)
}

// submitLocked is the single choke point for manual submit, skip and timer
// expiry. First trigger wins; anything after is a no-op.
func (s *Session) submitLocked() error {
	switch s.state {
	case StateSummary, StateEnded:
		return domain.ErrSessionFinished
	case StateInQuestion:
	default:
		return domain.ErrAlreadySubmitted
	}
	if s.submitted {
		return domain.ErrAlreadySubmitted
	}
	s.submitted = true
	s.countdown.Cancel()
	s.captureActive = false

	answer := strings.TrimSpace(s.answer)
	if answer == "" {
		answer = domain.SentinelNoAnswer
	}
	q := s.script[s.idx]
	result := evaluate.Evaluate(q, answer)
	s.results = append(s.results, domain.AnswerRecord{
		Question:   q,
		AnswerText: answer,
		Evaluation: result,
	})
	s.state = StateShowingEvaluation

	s.broadcastLocked(Event{Type: EventEvaluation, Payload: EvaluationPayload{
		Index:         s.idx,
		QuestionText:  q.Text,
		AnswerPreview: preview(answer),
		Result:        result,
		STARMethod:    q.STARMethod,
		Last:          s.idx == len(s.script)-1,
	}})
	s.speakLocked(fmt.Sprintf("You scored %d. %s", result.Overall, result.Feedback[0]))
	return nil
}

func (s *Session) finishLocked() error {
	sum, err := summary.Summarize(s.role, s.results)
	if err != nil {
		return err
	}
	s.summary = sum
	s.state = StateSummary
	s.broadcastLocked(Event{Type: EventSummary, Payload: sum})
	s.speakLocked("Congratulations! Interview complete.")
	return nil
}

func (s *Session) handleTick(cd *Countdown, remaining int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cd != s.countdown || s.state != StateInQuestion || s.submitted {
		return
	}
	s.remaining = remaining
	s.broadcastLocked(Event{Type: EventTick, Payload: TickPayload{Remaining: remaining}})
}

func (s *Session) handleExpire(cd *Countdown) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cd != s.countdown || s.state != StateInQuestion || s.submitted {
		return
	}
	s.broadcastLocked(Event{Type: EventNotice, Payload: NoticePayload{Message: "Time's up! Auto-submitting..."}})
	_ = s.submitLocked()
}

// speakLocked issues a playback command. A new utterance supersedes the
// previous one on the client, so at most one is ever active.
func (s *Session) speakLocked(text string) {
	s.utterance++
	s.broadcastLocked(Event{Type: EventSpeech, Payload: SpeechPayload{
		Action:      SpeechPlay,
		UtteranceID: s.utterance,
		Text:        text,
	}})
}

func (s *Session) progressLocked() {
	wc := len(strings.Fields(s.answer))
	s.broadcastLocked(Event{Type: EventProgress, Payload: ProgressPayload{
		WordCount:  wc,
		Engagement: evaluate.Engagement(wc),
	}})
}

func (s *Session) broadcastLocked(ev Event) {
	for ch := range s.subscribers {
		select {
		case ch <- ev:
		default:
			// Drop the oldest event rather than block the state machine on
			// a slow subscriber.
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}

func preview(answer string) string {
	if len(answer) > answerPreviewLen {
		return answer[:answerPreviewLen] + "..."
	}
	return answer
}
