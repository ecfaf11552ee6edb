package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fortunesim/fortune-simulator-backend/internal/apperrors"
	"github.com/fortunesim/fortune-simulator-backend/internal/api/request"
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
	"github.com/fortunesim/fortune-simulator-backend/internal/service"
	"github.com/fortunesim/fortune-simulator-backend/internal/validation"
)

// GameHandler handles game session HTTP requests
type GameHandler struct {
	gameService *service.GameService
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService *service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// NewGame starts a new session
//
// Endpoint: POST /api/game
func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	var req request.NewGame
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validation.ValidateNewGame(req); err != nil {
		respondValidationError(w, err)
		return
	}

	state, err := h.gameService.NewGame(req.Name, req.Age, req.Wealth)
	if err != nil {
		respondGameError(w, "failed to start game", err)
		return
	}

	respondJSON(w, http.StatusCreated, state)
}

// Presets lists the built-in starting-wealth options
//
// Endpoint: GET /api/game/presets
func (h *GameHandler) Presets(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, model.StartingWealthPresets)
}

// GetGame returns the current state of a session
//
// Endpoint: GET /api/game/{uuid}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	state, err := h.gameService.Get(chi.URLParam(r, "uuid"))
	if err != nil {
		respondGameError(w, "failed to get game", err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// Actions lists the actions currently available to the player
//
// Endpoint: GET /api/game/{uuid}/actions
func (h *GameHandler) Actions(w http.ResponseWriter, r *http.Request) {
	available, err := h.gameService.AvailableActions(chi.URLParam(r, "uuid"))
	if err != nil {
		respondGameError(w, "failed to list actions", err)
		return
	}

	respondJSON(w, http.StatusOK, available)
}

// PerformAction executes one catalog action
//
// Endpoint: POST /api/game/{uuid}/action
func (h *GameHandler) PerformAction(w http.ResponseWriter, r *http.Request) {
	var req request.PerformAction
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validation.ValidatePerformAction(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, state, err := h.gameService.PerformAction(chi.URLParam(r, "uuid"), req.ActionID, req.Params)
	if err != nil {
		respondGameError(w, "failed to perform action", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"result": result,
		"state":  state,
	})
}

// TriggerEvent generates the next random event for the session
//
// Endpoint: POST /api/game/{uuid}/event
func (h *GameHandler) TriggerEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.gameService.TriggerEvent(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		respondGameError(w, "failed to trigger event", err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// ResolveChoice applies one choice of the pending event
//
// Endpoint: POST /api/game/{uuid}/choice
func (h *GameHandler) ResolveChoice(w http.ResponseWriter, r *http.Request) {
	var req request.ResolveChoice
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	choice, state, err := h.gameService.ResolveChoice(chi.URLParam(r, "uuid"), req.ChoiceIndex)
	if err != nil {
		respondGameError(w, "failed to resolve choice", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"choice": choice,
		"state":  state,
	})
}

// NextYear advances the session into the next year
//
// Endpoint: POST /api/game/{uuid}/year
func (h *GameHandler) NextYear(w http.ResponseWriter, r *http.Request) {
	state, err := h.gameService.NextYear(chi.URLParam(r, "uuid"))
	if err != nil {
		respondGameError(w, "failed to advance year", err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

// Evaluation returns the life score and its tier
//
// Endpoint: GET /api/game/{uuid}/evaluation
func (h *GameHandler) Evaluation(w http.ResponseWriter, r *http.Request) {
	evaluation, err := h.gameService.Evaluation(chi.URLParam(r, "uuid"))
	if err != nil {
		respondGameError(w, "failed to evaluate", err)
		return
	}

	respondJSON(w, http.StatusOK, evaluation)
}

// BuyHolding opens a position
//
// Endpoint: POST /api/game/{uuid}/holdings
func (h *GameHandler) BuyHolding(w http.ResponseWriter, r *http.Request) {
	var req request.BuyHolding
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validation.ValidateBuyHolding(req); err != nil {
		respondValidationError(w, err)
		return
	}

	holding, err := h.gameService.BuyHolding(chi.URLParam(r, "uuid"), req.Type, req.Name, req.Amount, req.Price)
	if err != nil {
		respondGameError(w, "failed to buy holding", err)
		return
	}

	respondJSON(w, http.StatusCreated, holding)
}

// SellHolding sells part or all of a position
//
// Endpoint: POST /api/game/{uuid}/holdings/{holdingId}/sell
func (h *GameHandler) SellHolding(w http.ResponseWriter, r *http.Request) {
	holdingID, err := strconv.Atoi(chi.URLParam(r, "holdingId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid holding id"})
		return
	}

	var req request.SellHolding
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validation.ValidateSellHolding(req); err != nil {
		respondValidationError(w, err)
		return
	}

	result, err := h.gameService.SellHolding(chi.URLParam(r, "uuid"), holdingID, req.Ratio)
	if err != nil {
		respondGameError(w, "failed to sell holding", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// AddToHolding grows an existing position
//
// Endpoint: POST /api/game/{uuid}/holdings/{holdingId}/add
func (h *GameHandler) AddToHolding(w http.ResponseWriter, r *http.Request) {
	holdingID, err := strconv.Atoi(chi.URLParam(r, "holdingId"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid holding id"})
		return
	}

	var req request.AddHolding
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validation.ValidateAddHolding(req); err != nil {
		respondValidationError(w, err)
		return
	}

	holding, err := h.gameService.AddToHolding(chi.URLParam(r, "uuid"), holdingID, req.Amount)
	if err != nil {
		respondGameError(w, "failed to add to holding", err)
		return
	}

	respondJSON(w, http.StatusOK, holding)
}

// TakeLoan takes out a loan
//
// Endpoint: POST /api/game/{uuid}/loan
func (h *GameHandler) TakeLoan(w http.ResponseWriter, r *http.Request) {
	var req request.TakeLoan
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validation.ValidateTakeLoan(req); err != nil {
		respondValidationError(w, err)
		return
	}

	loan, err := h.gameService.TakeLoan(chi.URLParam(r, "uuid"), req.Type, req.Amount, req.Years)
	if err != nil {
		respondGameError(w, "failed to take loan", err)
		return
	}

	respondJSON(w, http.StatusCreated, loan)
}

// Study trains one skill field
//
// Endpoint: POST /api/game/{uuid}/study
func (h *GameHandler) Study(w http.ResponseWriter, r *http.Request) {
	var req request.Study
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validation.ValidateStudy(req); err != nil {
		respondValidationError(w, err)
		return
	}

	gain, err := h.gameService.StudySkill(chi.URLParam(r, "uuid"), req.Field, req.Hours)
	if err != nil {
		respondGameError(w, "failed to study", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int{"gain": gain})
}

// Save snapshots the session
//
// Endpoint: POST /api/game/{uuid}/save
func (h *GameHandler) Save(w http.ResponseWriter, r *http.Request) {
	saveID, err := h.gameService.Save(chi.URLParam(r, "uuid"))
	if err != nil {
		respondGameError(w, "failed to save game", err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"saveId": saveID})
}

// Saves lists the session's snapshots
//
// Endpoint: GET /api/game/{uuid}/saves
func (h *GameHandler) Saves(w http.ResponseWriter, r *http.Request) {
	saves, err := h.gameService.Saves(chi.URLParam(r, "uuid"))
	if err != nil {
		respondGameError(w, "failed to list saves", err)
		return
	}

	respondJSON(w, http.StatusOK, saves)
}

// Load restores a snapshot into a fresh session
//
// Endpoint: POST /api/game/load/{uuid}
func (h *GameHandler) Load(w http.ResponseWriter, r *http.Request) {
	state, err := h.gameService.Load(chi.URLParam(r, "uuid"))
	if err != nil {
		respondGameError(w, "failed to load game", err)
		return
	}

	respondJSON(w, http.StatusCreated, state)
}

// Export returns the session as an encrypted token
//
// Endpoint: GET /api/game/{uuid}/export
func (h *GameHandler) Export(w http.ResponseWriter, r *http.Request) {
	token, err := h.gameService.Export(chi.URLParam(r, "uuid"))
	if err != nil {
		respondGameError(w, "failed to export game", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Import restores a session from an export token
//
// Endpoint: POST /api/game/import
func (h *GameHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req request.Import
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := validation.ValidateImport(req); err != nil {
		respondValidationError(w, err)
		return
	}

	state, err := h.gameService.Import(req.Token)
	if err != nil {
		respondGameError(w, "failed to import game", err)
		return
	}

	respondJSON(w, http.StatusCreated, state)
}

// respondValidationError sends a 400 with the per-field messages.
func respondValidationError(w http.ResponseWriter, err error) {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": vErr.Fields,
		})
		return
	}
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// respondGameError maps the service sentinels to HTTP statuses.
func respondGameError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrSessionNotFound),
		errors.Is(err, apperrors.ErrSaveNotFound),
		errors.Is(err, apperrors.ErrHoldingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnknownAction),
		errors.Is(err, apperrors.ErrUnknownLoanType),
		errors.Is(err, apperrors.ErrUnknownSkillField),
		errors.Is(err, apperrors.ErrUnknownAssetType),
		errors.Is(err, apperrors.ErrNegativeAmount),
		errors.Is(err, apperrors.ErrInvalidChoice):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrActionUnavailable),
		errors.Is(err, apperrors.ErrInsufficientCash),
		errors.Is(err, apperrors.ErrEventPending),
		errors.Is(err, apperrors.ErrNoPendingEvent),
		errors.Is(err, apperrors.ErrGameOver):
		status = http.StatusConflict
	}

	respondJSON(w, status, map[string]string{
		"error":  message,
		"detail": err.Error(),
	})
}
