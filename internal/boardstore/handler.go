package boardstore

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/sc2ctl/jeopardy/internal/models"
)

// Coordinator is what the board HTTP surface needs from the game engine.
// Calls are fire-and-forget; the engine serializes them with every other
// input.
type Coordinator interface {
	SelectBoard(boardID string)
	StartBoardGeneration()
	RevealCategory(index int, category models.Category)
	AudioComplete(audioID string)
	PlayAudio(url, audioID string)
}

// Handler exposes the board collaborator surface: listing boards, loading
// one into the game, and the generation/reveal and audio callbacks used by
// the external board generator and narrator.
type Handler struct {
	store *Store
	game  Coordinator
}

func NewHandler(store *Store, game Coordinator) *Handler {
	return &Handler{store: store, game: game}
}

// RegisterRoutes registers the board HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/boards", h.handleListBoards)
	mux.HandleFunc("/api/load-board", h.handleLoadBoard)
	mux.HandleFunc("/api/board/start-generation", h.handleStartGeneration)
	mux.HandleFunc("/api/board/reveal-category", h.handleRevealCategory)
	mux.HandleFunc("/api/board/audio-complete", h.handleAudioComplete)
	mux.HandleFunc("/api/board/play-audio", h.handlePlayAudio)
}

func (h *Handler) handleListBoards(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	boards, err := h.store.List()
	if err != nil {
		log.Error().Err(err).Msg("failed to list boards")
		http.Error(w, "Failed to list boards", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"boards": boards})
}

func (h *Handler) handleLoadBoard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Board string `json:"board"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if req.Board == "" {
		http.Error(w, "Board name is required", http.StatusBadRequest)
		return
	}

	// Validate existence up front so the caller gets a 404 instead of a
	// broadcast error frame.
	if _, err := h.store.Load(req.Board); err != nil {
		log.Error().Err(err).Str("board", req.Board).Msg("failed to load board")
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	h.game.SelectBoard(req.Board)
	writeJSON(w, map[string]any{"status": "success"})
}

func (h *Handler) handleStartGeneration(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.game.StartBoardGeneration()
	writeJSON(w, map[string]any{"status": "success", "message": "Board generation started"})
}

func (h *Handler) handleRevealCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index    *int            `json:"index"`
		Category models.Category `json:"category"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if req.Index == nil || req.Category.Name == "" {
		http.Error(w, "Index and category are required", http.StatusBadRequest)
		return
	}
	if *req.Index < 0 || *req.Index >= models.BoardCategories {
		http.Error(w, "Index out of range", http.StatusBadRequest)
		return
	}

	h.game.RevealCategory(*req.Index, req.Category)
	writeJSON(w, map[string]any{"status": "success"})
}

func (h *Handler) handleAudioComplete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AudioID string `json:"audio_id"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if req.AudioID == "" {
		http.Error(w, "audio_id is required", http.StatusBadRequest)
		return
	}

	h.game.AudioComplete(req.AudioID)
	writeJSON(w, map[string]any{"status": "success", "audio_id": req.AudioID})
}

func (h *Handler) handlePlayAudio(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AudioURL string `json:"audio_url"`
		AudioID  string `json:"audio_id"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if req.AudioURL == "" {
		http.Error(w, "audio_url is required", http.StatusBadRequest)
		return
	}

	h.game.PlayAudio(req.AudioURL, req.AudioID)
	writeJSON(w, map[string]any{"status": "success", "audio_id": req.AudioID})
}

func decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
