// internal/server/handlers.go
package server

import (
	"encoding/json"
	"net/http"

	"salamatbot/internal/dispatch"
	"salamatbot/internal/models"
)

type chatRequest struct {
	Action    string `json:"action,omitempty"` // chat | new_session | change_category | get_info
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message,omitempty"`
	Category  string `json:"category,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return
	}

	switch req.Action {
	case "", "chat":
		s.chat(w, r, req)
	case "new_session":
		s.newSession(w, r, req)
	case "change_category":
		s.changeCategory(w, r, req)
	case "get_info":
		s.getInfo(w, req)
	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown action: " + req.Action})
	}
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request, req chatRequest) {
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "message is required"})
		return
	}

	result, err := s.dispatcher.Chat(r.Context(), dispatch.Request{
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		s.logger.WithError(err).Error("chat dispatch failed", nil)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// newSession drops any existing session and starts over, optionally pinned to
// a category the client picked from the menu.
func (s *Server) newSession(w http.ResponseWriter, r *http.Request, req chatRequest) {
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "message is required"})
		return
	}

	if req.SessionID != "" {
		if err := s.dispatcher.EndSession(r.Context(), req.SessionID); err != nil {
			s.logger.WithError(err).Warn("session cleanup failed", map[string]interface{}{
				"sessionId": req.SessionID,
			})
		}
	}

	dreq := dispatch.Request{Message: req.Message}
	if req.Category != "" {
		intent, ok := models.ParseIntent(req.Category)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown category: " + req.Category})
			return
		}
		dreq.ForceCategory = intent
	}

	result, err := s.dispatcher.Chat(r.Context(), dreq)
	if err != nil {
		s.logger.WithError(err).Error("new session dispatch failed", nil)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// changeCategory abandons the current session and routes the message to an
// explicitly chosen category.
func (s *Server) changeCategory(w http.ResponseWriter, r *http.Request, req chatRequest) {
	if req.Category == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "category is required"})
		return
	}
	intent, ok := models.ParseIntent(req.Category)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown category: " + req.Category})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "message is required"})
		return
	}

	if req.SessionID != "" {
		if err := s.dispatcher.EndSession(r.Context(), req.SessionID); err != nil {
			s.logger.WithError(err).Warn("session cleanup failed", map[string]interface{}{
				"sessionId": req.SessionID,
			})
		}
	}

	result, err := s.dispatcher.Chat(r.Context(), dispatch.Request{
		Message:       req.Message,
		ForceCategory: intent,
	})
	if err != nil {
		s.logger.WithError(err).Error("category change dispatch failed", nil)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) getInfo(w http.ResponseWriter, req chatRequest) {
	infos := s.dispatcher.CategoryInfos()

	if req.Category != "" {
		intent, ok := models.ParseIntent(req.Category)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "unknown category: " + req.Category})
			return
		}
		info, registered := infos[intent]
		if !registered {
			writeJSON(w, http.StatusNotFound, errorBody{Error: "category not available"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"category": intent, "info": info})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": infos})
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	infos := s.dispatcher.CategoryInfos()

	type entry struct {
		Intent      models.Intent       `json:"intent"`
		DisplayName string              `json:"displayName"`
		Info        models.CategoryInfo `json:"info"`
	}

	// Stable declaration order, not map order.
	out := make([]entry, 0, len(infos))
	for _, intent := range models.Intents() {
		if info, ok := infos[intent]; ok {
			out = append(out, entry{Intent: intent, DisplayName: intent.DisplayName(), Info: info})
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": out})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
