package chatbot

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// MaxQuestionLength bounds the accepted question size in bytes.
const MaxQuestionLength = 1000

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming message format for both HTTP and WebSocket.
type chatRequest struct {
	SessionID string `json:"session_id"` // empty for new sessions
	Content   string `json:"content"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type      string   `json:"type"` // "welcome", "response" or "error"
	SessionID string   `json:"session_id,omitempty"`
	Content   string   `json:"content"`
	Category  Category `json:"category,omitempty"`
}

type statsResponse struct {
	TotalSessions int              `json:"total_sessions"`
	Categories    map[Category]int `json:"categories"`
}

// RegisterRoutes mounts the chat endpoints on the given router.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/chat", handleAsk(svc))
	r.Get("/api/chat/welcome", handleWelcome(svc))
	r.Get("/ws/chat", handleWebSocket(svc))
	if svc.Store() != nil {
		r.Get("/api/chat/stats", handleStats(svc.Store()))
		r.Get("/api/chat/sessions/{id}", handleTranscript(svc.Store()))
	}
}

func validate(req chatRequest) string {
	content := strings.TrimSpace(req.Content)
	switch {
	case content == "":
		return "content is required"
	case len(content) > MaxQuestionLength:
		return "content is too long"
	}
	return ""
}

func handleAsk(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<10)).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if msg := validate(req); msg != "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
			return
		}
		writeJSON(w, http.StatusOK, svc.Ask(r.Context(), req.SessionID, TransportHTTP, req.Content))
	}
}

func handleWelcome(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"welcome": svc.Bot().Welcome()})
	}
}

func handleWebSocket(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("chatbot: websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		sendResponse(conn, chatResponse{Type: "welcome", Content: svc.Bot().Welcome()})

		sessionID := ""
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("chatbot: websocket read: %v", err)
				}
				return
			}

			var req chatRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendError(conn, sessionID, "invalid message format")
				continue
			}
			if msg := validate(req); msg != "" {
				sendError(conn, sessionID, msg)
				continue
			}
			if req.SessionID != "" {
				sessionID = req.SessionID
			}

			ex := svc.Ask(r.Context(), sessionID, TransportWebSocket, req.Content)
			sessionID = ex.SessionID
			sendResponse(conn, chatResponse{
				Type:      "response",
				SessionID: ex.SessionID,
				Content:   ex.Reply,
				Category:  ex.Category,
			})
		}
	}
}

func handleStats(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		total, err := store.CountSessions(ctx)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		counts, err := store.CategoryCounts(ctx)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, statsResponse{TotalSessions: total, Categories: counts})
	}
}

func handleTranscript(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := store.GetSession(r.Context(), id); err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		msgs, err := store.Messages(r.Context(), id)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if msgs == nil {
			msgs = []Message{}
		}
		writeJSON(w, http.StatusOK, msgs)
	}
}

func sendResponse(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chatbot: websocket write: %v", err)
	}
}

func sendError(conn *websocket.Conn, sessionID, message string) {
	resp := chatResponse{
		Type:      "error",
		SessionID: sessionID,
		Content:   message,
	}
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("chatbot: websocket write error: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
