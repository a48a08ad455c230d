package app

import "mock-interview-service/internal/domain"

// Event is one notification fanned out to session subscribers. The WS
// transport forwards events to the client verbatim.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Event types emitted by a Session.
const (
	EventSession    = "session"
	EventQuestion   = "question"
	EventTick       = "tick"
	EventProgress   = "progress"
	EventSpeech     = "speech"
	EventIndicator  = "indicator"
	EventCapture    = "capture"
	EventNotice     = "notice"
	EventEvaluation = "evaluation"
	EventSummary    = "summary"
	EventEnded      = "ended"
)

// Speech command actions.
const (
	SpeechPlay   = "play"
	SpeechCancel = "cancel"
)

// SessionPayload announces a freshly started session.
type SessionPayload struct {
	ID               string      `json:"id"`
	Role             string      `json:"role"`
	Mode             domain.Mode `json:"mode"`
	Questions        int         `json:"questions"`
	MediaAvailable   bool        `json:"mediaAvailable"`
	CaptureAvailable bool        `json:"captureAvailable"`
}

// QuestionPayload is the per-question render contract.
type QuestionPayload struct {
	Index       int               `json:"index"`
	Total       int               `json:"total"`
	Text        string            `json:"text"`
	Category    domain.Category   `json:"category"`
	Difficulty  domain.Difficulty `json:"difficulty"`
	KeywordHint string            `json:"keywordHint"`
	STARMethod  bool              `json:"starMethod"`
	Seconds     int               `json:"seconds"`
}

// TickPayload carries the remaining seconds for the current question.
type TickPayload struct {
	Remaining int `json:"remaining"`
}

// ProgressPayload is the live word-count / engagement indicator.
type ProgressPayload struct {
	WordCount  int `json:"wordCount"`
	Engagement int `json:"engagement"`
}

// SpeechPayload is a playback command for the client's synthesizer. A play
// command supersedes any in-flight utterance (last request wins).
type SpeechPayload struct {
	Action      string `json:"action"`
	UtteranceID int    `json:"utteranceId,omitempty"`
	Text        string `json:"text,omitempty"`
}

// IndicatorPayload flips the interviewer avatar between speaking and
// listening.
type IndicatorPayload struct {
	Speaking bool `json:"speaking"`
}

// CapturePayload reports the speech-capture toggle state.
type CapturePayload struct {
	Active bool `json:"active"`
}

// NoticePayload is a one-line user-facing notice (toast).
type NoticePayload struct {
	Message string `json:"message"`
}

// EvaluationPayload is the post-answer render contract.
type EvaluationPayload struct {
	Index         int                     `json:"index"`
	QuestionText  string                  `json:"questionText"`
	AnswerPreview string                  `json:"answerPreview"`
	Result        domain.EvaluationResult `json:"result"`
	STARMethod    bool                    `json:"starMethod"`
	Last          bool                    `json:"last"`
}
