package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"agilegame/internal/game"
)

// GameHandler serves the facilitator's JSON actions.
type GameHandler struct {
	store *game.Store
	log   zerolog.Logger
}

func NewGameHandler(store *game.Store, log zerolog.Logger) *GameHandler {
	return &GameHandler{store: store, log: log}
}

func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Post("/set_players", h.setPlayers)
	r.Post("/set_plan", h.setPlan)
	r.Post("/start_iteration", h.startIteration)
	r.Post("/stop_iteration", h.stopIteration)
	r.Post("/submit_defects", h.submitDefects)
	r.Get("/get_current_count", h.currentCount)
	r.Get("/get_final_results", h.finalResults)
	r.Post("/reset_system", h.resetSystem)
}

func (h *GameHandler) setPlayers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Players int `json:"players"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h.store.SetPlayers(req.Players)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *GameHandler) setPlan(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Plan int `json:"plan"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	h.store.SetPlan(req.Plan)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *GameHandler) startIteration(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Start(); err != nil {
		if errors.Is(err, game.ErrAlreadyCounting) {
			writeError(w, http.StatusBadRequest, "Already counting")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *GameHandler) stopIteration(w http.ResponseWriter, r *http.Request) {
	final := h.store.Stop()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"final_count": final,
	})
}

func (h *GameHandler) submitDefects(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Defects    int `json:"defects"`
		InProgress int `json:"in_progress"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	sub, err := h.store.Submit(req.Defects, req.InProgress)
	if err != nil {
		h.log.Error().Err(err).Int("iteration", sub.Result.Iteration).Msg("submit defects")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"iteration_data":    sub.Result,
		"current_iteration": sub.CurrentIteration,
	})
}

func (h *GameHandler) currentCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"count": h.store.Count()})
}

func (h *GameHandler) finalResults(w http.ResponseWriter, r *http.Request) {
	st := h.store.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"iterations_data":   st.IterationsData,
		"number_of_players": st.NumberOfPlayers,
	})
}

func (h *GameHandler) resetSystem(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
