package domain

import "errors"

var (
	// ErrSessionNotFound is returned when a session ID has no live session.
	ErrSessionNotFound = errors.New("interview session not found")
	// ErrSessionFinished is returned for inputs arriving after the summary.
	ErrSessionFinished = errors.New("interview session already finished")
	// ErrAlreadySubmitted guards the submit/expiry race; the second trigger
	// for the same question is a no-op surfaced with this error.
	ErrAlreadySubmitted = errors.New("answer already submitted for this question")
	// ErrNotAwaitingNext is returned when advancing outside ShowingEvaluation.
	ErrNotAwaitingNext = errors.New("session is not awaiting the next question")
	// ErrBankNotFound indicates no question bank exists for a role.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrNoResults is returned when summarizing before any answer was recorded.
	ErrNoResults = errors.New("no answer records to summarize")
	// ErrCaptureUnavailable is returned when toggling speech capture without
	// the capability negotiated at setup.
	ErrCaptureUnavailable = errors.New("speech capture unavailable")
)
