package http

import (
	"encoding/json"
	"log"
	"net/http"

	"vocab-quiz/internal/app"
	"vocab-quiz/internal/chapter"
	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/quiz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WSHandler serves one quiz session per websocket connection.
type WSHandler struct {
	service  *app.QuizService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type textPayload struct {
	Text string `json:"text"`
}

type restartPayload struct {
	Chapter string `json:"chapter"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type statePayload struct {
	SessionID string        `json:"sessionId"`
	Chapters  []string      `json:"chapters"`
	State     quiz.Snapshot `json:"state"`
}

type outcomePayload struct {
	Result           string        `json:"result"`
	Pronunciation    string        `json:"pronunciation,omitempty"`
	PronunciationURL string        `json:"pronunciationUrl,omitempty"`
	CorrectWord      string        `json:"correctWord,omitempty"`
	State            quiz.Snapshot `json:"state"`
}

type answerPayload struct {
	quiz.RevealedAnswer
	PronunciationURL string `json:"pronunciationUrl"`
}

type vocabularyPayload struct {
	Chapter string             `json:"chapter"`
	Entries []domain.WordEntry `json:"entries"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// conn owns the websocket connection and the quiz session served over it.
// Only the read loop touches either.
type conn struct {
	id      string
	ws      *websocket.Conn
	session *quiz.Session
}

// ServeWS upgrades HTTP requests to websockets and drives a quiz session from client messages.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	chapterID := r.URL.Query().Get("chapter")
	if chapterID == "" {
		chapterID = chapter.Default
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer ws.Close()

	c := &conn{id: uuid.NewString(), ws: ws}

	session, err := h.service.StartSession(r.Context(), chapterID)
	if err != nil {
		log.Printf("ws %s: start session: %v", c.id, err)
		c.sendError(err)
		return
	}
	c.session = session
	log.Printf("ws %s: session started on %s (%d words)", c.id, chapterID, session.Len())
	if !c.sendState(h.service) {
		return
	}

	for {
		var inbound inboundMessage
		if err := ws.ReadJSON(&inbound); err != nil {
			break
		}
		if !h.dispatch(r, c, inbound) {
			break
		}
	}
	log.Printf("ws %s: closed at %d/%d", c.id, c.session.Position(), c.session.Len())
}

// dispatch handles one client message. It returns false once the connection is unusable.
func (h *WSHandler) dispatch(r *http.Request, c *conn, inbound inboundMessage) bool {
	switch inbound.Type {
	case "prompt":
		return c.sendState(h.service)
	case "answer":
		var payload textPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return c.send("error", errorPayload{Message: "invalid answer payload"})
		}
		return h.answer(c, payload.Text)
	case "submit":
		// The primary action depends on phase: answer while awaiting, move on once answered or revealed.
		switch c.session.Phase() {
		case quiz.Answered, quiz.Revealed:
			return h.advance(c)
		default:
			var payload textPayload
			if len(inbound.Payload) > 0 {
				if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
					return c.send("error", errorPayload{Message: "invalid submit payload"})
				}
			}
			return h.answer(c, payload.Text)
		}
	case "reveal":
		answer, err := c.session.Reveal()
		if err != nil {
			return c.sendError(err)
		}
		return c.send("answer", answerPayload{
			RevealedAnswer:   answer,
			PronunciationURL: h.service.PronunciationURL(domain.WordEntry{Word: answer.Word, Pronunciation: answer.Pronunciation}),
		})
	case "advance":
		return h.advance(c)
	case "skip":
		if err := c.session.Skip(); err != nil {
			return c.sendError(err)
		}
		return c.sendState(h.service)
	case "restart":
		var payload restartPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				return c.send("error", errorPayload{Message: "invalid restart payload"})
			}
		}
		if payload.Chapter == "" {
			payload.Chapter = c.session.Chapter()
		}
		if err := h.service.SwitchChapter(r.Context(), c.session, payload.Chapter); err != nil {
			log.Printf("ws %s: switch to %s: %v", c.id, payload.Chapter, err)
			return c.sendError(err)
		}
		return c.sendState(h.service)
	case "vocabulary":
		var payload restartPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				return c.send("error", errorPayload{Message: "invalid vocabulary payload"})
			}
		}
		if payload.Chapter == "" {
			payload.Chapter = c.session.Chapter()
		}
		bank, err := h.service.Vocabulary(r.Context(), payload.Chapter)
		if err != nil {
			return c.sendError(err)
		}
		return c.send("vocabulary", vocabularyPayload{Chapter: bank.Chapter, Entries: bank.Entries})
	default:
		return c.send("error", errorPayload{Message: "unsupported message type"})
	}
}

func (h *WSHandler) answer(c *conn, text string) bool {
	outcome, err := c.session.SubmitAnswer(text)
	if err != nil {
		return c.sendError(err)
	}
	payload := outcomePayload{
		Result:        outcome.Kind.String(),
		Pronunciation: outcome.Pronunciation,
		CorrectWord:   outcome.CorrectWord,
		State:         c.session.Snapshot(),
	}
	if outcome.Kind == quiz.Correct {
		if entry, err := c.session.Current(); err == nil {
			payload.PronunciationURL = h.service.PronunciationURL(entry)
		}
	}
	return c.send("outcome", payload)
}

func (h *WSHandler) advance(c *conn) bool {
	if err := c.session.Advance(); err != nil {
		return c.sendError(err)
	}
	return c.sendState(h.service)
}

func (c *conn) sendState(service *app.QuizService) bool {
	return c.send("state", statePayload{
		SessionID: c.id,
		Chapters:  service.Chapters(),
		State:     c.session.Snapshot(),
	})
}

func (c *conn) sendError(err error) bool {
	return c.send("error", errorPayload{Message: err.Error()})
}

func (c *conn) send(typ string, payload any) bool {
	if err := c.ws.WriteJSON(outboundMessage{Type: typ, Payload: payload}); err != nil {
		log.Printf("ws %s: write error: %v", c.id, err)
		return false
	}
	return true
}
