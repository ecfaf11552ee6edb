package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/fortunesim/fortune-simulator-backend/internal/actions"
	"github.com/fortunesim/fortune-simulator-backend/internal/apperrors"
	"github.com/fortunesim/fortune-simulator-backend/internal/engine"
	"github.com/fortunesim/fortune-simulator-backend/internal/generator"
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
	"github.com/fortunesim/fortune-simulator-backend/internal/store"
)

// eventTriggerChance is the probability that a time-consuming action is
// followed by a random event.
const eventTriggerChance = 0.35

// session is one live game. All player mutation happens under mu; the
// engine is single-threaded per session by construction.
type session struct {
	id     string
	mu     sync.Mutex
	player *model.Player
	engine *engine.Engine

	// eventTriggered is set when the last action rolled an event;
	// pendingEvent holds a generated event awaiting a choice.
	eventTriggered bool
	pendingEvent   *model.EventDescriptor

	// dirty marks unsaved progress for the autosave sweep.
	dirty bool
}

// GameService owns the live game sessions and orchestrates the engine,
// the event generator, and the snapshot store.
type GameService struct {
	mu       sync.RWMutex
	sessions map[string]*session

	saves     *store.SaveRepository
	generator *generator.Client
	exporter  *store.Exporter
}

// NewGameService creates a new GameService. The exporter may be nil,
// which disables export/import.
func NewGameService(saves *store.SaveRepository, gen *generator.Client, exporter *store.Exporter) *GameService {
	return &GameService{
		sessions:  map[string]*session{},
		saves:     saves,
		generator: gen,
		exporter:  exporter,
	}
}

// GameState is the session view returned to the API layer.
type GameState struct {
	SessionID      string                 `json:"sessionId"`
	Player         *model.Player          `json:"player"`
	Stage          model.LifeStage        `json:"stage"`
	LifeScore      int                    `json:"lifeScore"`
	EventTriggered bool                   `json:"eventTriggered"`
	PendingEvent   *model.EventDescriptor `json:"pendingEvent,omitempty"`
	GameOver       bool                   `json:"gameOver"`
}

// NewGame starts a session. The starting age is clamped to [18, 60];
// startingWealth is taken as given so custom presets work.
func (s *GameService) NewGame(name string, startingAge int, startingWealth float64) (GameState, error) {
	if startingAge < 18 {
		startingAge = 18
	}
	if startingAge > 60 {
		startingAge = 60
	}
	if startingWealth < 0 {
		return GameState{}, apperrors.ErrNegativeAmount
	}

	eng := engine.New(nil)
	player := eng.NewPlayer(startingAge, startingWealth)
	if name != "" {
		player.Name = name
	}

	sess := &session{
		id:     uuid.New().String(),
		player: player,
		engine: eng,
		dirty:  true,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.stateLocked(sess), nil
}

// Get returns the current state of a session.
func (s *GameService) Get(sessionID string) (GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return GameState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.stateLocked(sess), nil
}

// AvailableActions lists the catalog actions the player can currently take.
func (s *GameService) AvailableActions(sessionID string) ([]actions.Action, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return actions.Available(sess.player), nil
}

// PerformAction runs one catalog action. Time is spent before the
// executor runs, so month-end expenses land even when the action itself
// fails its roll. A time-consuming action has an eventTriggerChance
// probability of flagging a random event.
func (s *GameService) PerformAction(sessionID, actionID string, params actions.Params) (actions.Result, GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return actions.Result{}, GameState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.player.IsAlive {
		return actions.Result{}, GameState{}, apperrors.ErrGameOver
	}
	if sess.pendingEvent != nil {
		return actions.Result{}, GameState{}, apperrors.ErrEventPending
	}

	action := actions.ByID(actionID)
	if action == nil {
		return actions.Result{}, GameState{}, apperrors.ErrUnknownAction
	}
	if err := checkAvailable(action, sess.player); err != nil {
		return actions.Result{}, GameState{}, err
	}

	if action.TimeMonths > 0 {
		sess.engine.SpendTime(sess.player, action.TimeMonths)
	}

	result, err := actions.Execute(sess.engine, sess.player, actionID, params)
	if err != nil {
		return actions.Result{}, GameState{}, err
	}

	sess.eventTriggered = action.TimeMonths > 0 && sess.engine.Roll() < eventTriggerChance
	sess.dirty = true

	return result, s.stateLocked(sess), nil
}

// checkAvailable mirrors the catalog availability filter but reports
// which requirement blocked the action.
func checkAvailable(a *actions.Action, p *model.Player) error {
	if a.TimeMonths > p.RemainingMonths() {
		return apperrors.ErrActionUnavailable
	}
	if a.Condition != nil && !a.Condition(p) {
		return apperrors.ErrActionUnavailable
	}
	if a.MinCash > 0 && p.Stats.Cash < a.MinCash {
		return apperrors.ErrInsufficientCash
	}
	if a.Cost > 0 && p.Stats.Cash < a.Cost {
		return apperrors.ErrInsufficientCash
	}
	return nil
}

// TriggerEvent asks the generator for the session's next event and
// parks it as the pending event. The generator call happens against a
// snapshot copy outside the session lock, so a slow or cancelled call
// never holds up or mutates the session.
func (s *GameService) TriggerEvent(ctx context.Context, sessionID string) (*model.EventDescriptor, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	if !sess.player.IsAlive {
		sess.mu.Unlock()
		return nil, apperrors.ErrGameOver
	}
	if sess.pendingEvent != nil {
		event := sess.pendingEvent
		sess.mu.Unlock()
		return event, nil
	}
	snapshot, err := clonePlayer(sess.player)
	sess.mu.Unlock()
	if err != nil {
		return nil, err
	}

	event := s.generator.Generate(ctx, snapshot)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.pendingEvent = event
	sess.eventTriggered = false
	return event, nil
}

// ResolveChoice applies one choice of the pending event: spend the
// event's time, run its side action, apply its effect deltas, and log it.
func (s *GameService) ResolveChoice(sessionID string, choiceIndex int) (model.EventChoice, GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return model.EventChoice{}, GameState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.pendingEvent == nil {
		return model.EventChoice{}, GameState{}, apperrors.ErrNoPendingEvent
	}
	if choiceIndex < 0 || choiceIndex >= len(sess.pendingEvent.Choices) {
		return model.EventChoice{}, GameState{}, apperrors.ErrInvalidChoice
	}

	event := sess.pendingEvent
	choice := event.Choices[choiceIndex]

	months := event.TimeMonths
	if months < 1 {
		months = 1
	}
	sess.engine.SpendTime(sess.player, months)

	s.processEventAction(sess, &choice)
	sess.engine.ApplyEffect(sess.player, choice.Effect)
	sess.engine.LogEvent(sess.player, event.Title, choice.Text)

	sess.pendingEvent = nil
	sess.dirty = true

	return choice, s.stateLocked(sess), nil
}

// processEventAction runs the side action attached to an event choice.
// Costs travel in the choice's effect mapping, so the milestone helpers
// here record state without debiting cash, with one exception: an
// investment buy debits cash itself, so a negative cash effect is
// zeroed first to avoid charging twice.
func (s *GameService) processEventAction(sess *session, choice *model.EventChoice) {
	eng, p := sess.engine, sess.player

	switch choice.Action {
	case model.ChoiceActionMarry:
		spouseIncome := float64(int(p.Stats.Income*0.3 + eng.Roll()*50000))
		eng.Marry(p, 0, spouseIncome)

	case model.ChoiceActionBaby:
		eng.HaveBaby(p, 0)

	case model.ChoiceActionBuyHouse:
		price := 1000000.0
		if choice.Loan != nil {
			price = choice.Loan.Amount / 0.7
		}
		eng.AddHouse(p, "House", price)
		if choice.Loan != nil {
			eng.TakeLoan(p, choice.Loan.Type, choice.Loan.Amount, choice.Loan.Years)
		}

	case model.ChoiceActionBuyCar:
		price := 200000.0
		if cash, ok := choice.Effect["cash"]; ok {
			if v, isNum := asNumber(cash); isNum && v != 0 {
				if v < 0 {
					v = -v
				}
				price = v
			}
		}
		eng.AddCar(p, "Car", price)

	case model.ChoiceActionBuyInvestment:
		if choice.Investment == nil {
			return
		}
		if cash, ok := choice.Effect["cash"]; ok {
			if v, isNum := asNumber(cash); isNum && v < 0 {
				choice.Effect["cash"] = 0.0
			}
		}
		eng.Buy(p, choice.Investment.Type, choice.Investment.Name, choice.Investment.Amount, 0)
	}
}

// NextYear closes out the year: age advances, yearly repricing runs,
// expired loans are purged, and terminal conditions are checked.
func (s *GameService) NextYear(sessionID string) (GameState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return GameState{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.player.IsAlive {
		return GameState{}, apperrors.ErrGameOver
	}
	if sess.pendingEvent != nil {
		return GameState{}, apperrors.ErrEventPending
	}

	sess.engine.NextYear(sess.player)
	sess.dirty = true

	return s.stateLocked(sess), nil
}

// Evaluation computes the life score and its tier for a session.
func (s *GameService) Evaluation(sessionID string) (engine.LifeEvaluation, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return engine.LifeEvaluation{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.engine.Evaluate(sess.player), nil
}

// BuyHolding opens a position directly, outside the action catalog.
func (s *GameService) BuyHolding(sessionID, assetType, name string, amount, price float64) (*model.Holding, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if !model.ValidAssetType(assetType) {
		return nil, apperrors.ErrUnknownAssetType
	}
	if amount <= 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.player.IsAlive {
		return nil, apperrors.ErrGameOver
	}

	h := sess.engine.Buy(sess.player, assetType, name, amount, price)
	if h == nil {
		return nil, apperrors.ErrInsufficientCash
	}
	sess.dirty = true
	return h, nil
}

// SellHolding sells a fraction of a position. A ratio of 1 or more
// closes it.
func (s *GameService) SellHolding(sessionID string, holdingID int, ratio float64) (*engine.SellResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if ratio <= 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	result := sess.engine.Sell(sess.player, holdingID, ratio)
	if result == nil {
		return nil, apperrors.ErrHoldingNotFound
	}
	sess.dirty = true
	return result, nil
}

// AddToHolding grows an existing position, averaging its cost basis.
func (s *GameService) AddToHolding(sessionID string, holdingID int, amount float64) (*model.Holding, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	h := sess.player.HoldingByID(holdingID)
	if h == nil {
		return nil, apperrors.ErrHoldingNotFound
	}
	if !sess.engine.AddToPosition(sess.player, holdingID, amount) {
		return nil, apperrors.ErrInsufficientCash
	}
	sess.dirty = true
	return h, nil
}

// TakeLoan adds a loan of the given product type and credits the principal.
func (s *GameService) TakeLoan(sessionID, loanType string, amount float64, years int) (*model.Loan, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if amount <= 0 || years <= 0 {
		return nil, apperrors.ErrNegativeAmount
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	loan := sess.engine.TakeLoan(sess.player, loanType, amount, years)
	if loan == nil {
		return nil, apperrors.ErrUnknownLoanType
	}
	sess.dirty = true
	return loan, nil
}

// StudySkill trains a skill field directly for the given hours.
func (s *GameService) StudySkill(sessionID, field string, hours float64) (int, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return 0, err
	}
	if hours <= 0 {
		return 0, apperrors.ErrNegativeAmount
	}
	if !model.KnownSkillField(field) {
		return 0, apperrors.ErrUnknownSkillField
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	gain := sess.engine.Study(sess.player, field, hours)
	sess.dirty = true
	return gain, nil
}

// Save snapshots the session to the store and returns the save id.
func (s *GameService) Save(sessionID string) (string, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	id, err := s.saves.Save(sess.id, sess.player)
	if err != nil {
		return "", fmt.Errorf("failed to save session: %w", err)
	}
	sess.dirty = false
	return id, nil
}

// Saves lists the stored snapshots for a session, newest first.
func (s *GameService) Saves(sessionID string) ([]store.SaveMeta, error) {
	return s.saves.List(sessionID)
}

// Load restores a snapshot into a fresh session and returns its state.
func (s *GameService) Load(saveID string) (GameState, error) {
	player, err := s.saves.Load(saveID)
	if err != nil {
		return GameState{}, err
	}
	return s.adopt(player), nil
}

// Export wraps the session's snapshot in an encrypted token.
func (s *GameService) Export(sessionID string) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("export is not configured")
	}

	sess, err := s.session(sessionID)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.exporter.Export(sess.player)
}

// Import verifies an export token and starts a fresh session from it.
func (s *GameService) Import(token string) (GameState, error) {
	if s.exporter == nil {
		return GameState{}, fmt.Errorf("import is not configured")
	}

	player, err := s.exporter.Import(token)
	if err != nil {
		return GameState{}, err
	}
	return s.adopt(player), nil
}

// AutosaveAll snapshots every session with unsaved progress and reports
// how many were written. Failures are collected, not fatal per session.
func (s *GameService) AutosaveAll() (int, error) {
	s.mu.RLock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.RUnlock()

	saved := 0
	var firstErr error
	for _, sess := range sessions {
		sess.mu.Lock()
		if !sess.dirty {
			sess.mu.Unlock()
			continue
		}
		_, err := s.saves.Save(sess.id, sess.player)
		if err == nil {
			sess.dirty = false
			saved++
		} else if firstErr == nil {
			firstErr = fmt.Errorf("failed to autosave session %s: %w", sess.id, err)
		}
		sess.mu.Unlock()
	}
	return saved, firstErr
}

// adopt registers a restored player as a new live session.
func (s *GameService) adopt(player *model.Player) GameState {
	sess := &session{
		id:     uuid.New().String(),
		player: player,
		engine: engine.New(nil),
		dirty:  true,
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.stateLocked(sess)
}

// session looks up a live session by id.
func (s *GameService) session(sessionID string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return sess, nil
}

// stateLocked builds the API view. Callers hold the session lock.
func (s *GameService) stateLocked(sess *session) GameState {
	return GameState{
		SessionID:      sess.id,
		Player:         sess.player,
		Stage:          model.StageForAge(sess.player.Age),
		LifeScore:      sess.engine.LifeScore(sess.player),
		EventTriggered: sess.eventTriggered,
		PendingEvent:   sess.pendingEvent,
		GameOver:       !sess.player.IsAlive,
	}
}

// clonePlayer deep-copies a player through its snapshot encoding.
func clonePlayer(p *model.Player) (*model.Player, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to clone player: %w", err)
	}
	return store.DecodeSnapshot(data)
}

// asNumber reads a JSON-decoded numeric value.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
