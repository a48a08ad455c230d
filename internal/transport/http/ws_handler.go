package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"mock-interview-service/internal/app"
	"mock-interview-service/internal/domain"
)

// WSHandler runs one interview session per WebSocket connection. The client
// sends user events (start, draft, transcript, submit, ...) and receives the
// session's event stream plus direct replies (report, error).
type WSHandler struct {
	service  *app.InterviewService
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewWSHandler(service *app.InterviewService, log zerolog.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: log.With().Str("component", "ws").Logger(),
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type submitPayload struct {
	AnswerText string `json:"answerText"`
}

type draftPayload struct {
	Text string `json:"text"`
}

type transcriptPayload struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

type capturePayload struct {
	On bool `json:"on"`
}

type reportPayload struct {
	Text string `json:"text"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and drives one session for the lifetime of
// the connection. Closing the socket ends the session: timer, utterance and
// capture are all canceled and the partial state is discarded.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("ws upgrade failed")
		return
	}
	defer conn.Close()

	// The first message must be "start".
	var first inboundMessage
	if err := conn.ReadJSON(&first); err != nil {
		return
	}
	if first.Type != "start" {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "expected start message"}})
		return
	}
	var req app.StartRequest
	if err := json.Unmarshal(first.Payload, &req); err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: "invalid start payload"}})
		return
	}

	session, err := h.service.StartSession(r.Context(), req)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer h.service.EndSession(session.ID())

	events, cancel := session.Subscribe()
	defer cancel()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	eventsDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug().Err(err).Msg("ws write error")
				return
			}
		}
	}()

	go func() {
		defer close(eventsDone)
		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				select {
				case send <- outboundMessage[any]{Type: ev.Type, Payload: ev.Payload}:
				case <-closeSignals:
					return
				}
			case <-closeSignals:
				return
			}
		}
	}()

	if err := session.Begin(); err != nil {
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if done := h.dispatch(session, inbound, send); done {
			break
		}
	}

	close(closeSignals)
	<-eventsDone
	close(send)
	<-writerDone
}

// dispatch routes one inbound message to the session. It returns true when
// the client asked to end the session.
func (h *WSHandler) dispatch(session *app.Session, inbound inboundMessage, send chan<- outboundMessage[any]) bool {
	var err error
	switch inbound.Type {
	case "submit":
		var p submitPayload
		if jsonErr := json.Unmarshal(inbound.Payload, &p); jsonErr != nil && len(inbound.Payload) > 0 {
			err = jsonErr
			break
		}
		err = session.Submit(p.AnswerText)
	case "skip":
		err = session.Skip()
	case "next":
		err = session.Next()
	case "replay":
		err = session.Replay()
	case "draft":
		var p draftPayload
		if err = json.Unmarshal(inbound.Payload, &p); err == nil {
			err = session.SetDraft(p.Text)
		}
	case "transcript":
		var p transcriptPayload
		if err = json.Unmarshal(inbound.Payload, &p); err == nil {
			err = session.AppendTranscript(p.Text, p.Final)
		}
	case "capture":
		var p capturePayload
		if err = json.Unmarshal(inbound.Payload, &p); err == nil {
			err = session.SetCapture(p.On)
		}
	case "speechStarted":
		session.SpeechStarted()
	case "speechEnded":
		session.SpeechEnded()
	case "report":
		var text string
		if text, err = session.Report(); err == nil {
			send <- outboundMessage[any]{Type: "report", Payload: reportPayload{Text: text}}
		}
	case "end":
		return true
	default:
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type"}}
		return false
	}

	switch {
	case err == nil:
	case errors.Is(err, domain.ErrAlreadySubmitted):
		// Second trigger of the submit/expiry race, by contract a no-op.
	case errors.Is(err, domain.ErrCaptureUnavailable):
		send <- outboundMessage[any]{Type: app.EventNotice, Payload: app.NoticePayload{Message: "Voice input not supported in this browser."}}
	default:
		send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Message: err.Error()}}
	}
	return false
}
