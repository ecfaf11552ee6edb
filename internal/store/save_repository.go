// Package store persists game snapshots. A snapshot is the full player
// state serialized as JSON, keyed by a generated row id and the owning
// session id.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fortunesim/fortune-simulator-backend/internal/apperrors"
	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// SaveRepository provides data access methods for the game_save table.
type SaveRepository struct {
	db *sql.DB
}

// NewSaveRepository creates a new SaveRepository with the provided database connection.
func NewSaveRepository(db *sql.DB) *SaveRepository {
	return &SaveRepository{db: db}
}

// SaveMeta describes a stored snapshot without its payload.
type SaveMeta struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Wealth    float64   `json:"wealth"`
	CreatedAt time.Time `json:"createdAt"`
}

// Save stores a snapshot of the player for the given session and
// returns the new save id.
func (s *SaveRepository) Save(sessionID string, p *model.Player) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal player snapshot: %w", err)
	}

	id := uuid.New().String()
	query := `
          INSERT INTO game_save (id, session_id, player_name, player_age, player_wealth, data, created_at)
          VALUES (?, ?, ?, ?, ?, ?, ?)
      `
	_, err = s.db.Exec(query, id, sessionID, p.Name, p.Age, p.Stats.Wealth, string(data), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to insert game save: %w", err)
	}

	return id, nil
}

// Load retrieves a snapshot by save id and unmarshals it into a player.
func (s *SaveRepository) Load(saveID string) (*model.Player, error) {
	query := `
          SELECT data
          FROM game_save
          WHERE id = ?
      `
	var data string

	err := s.db.QueryRow(query, saveID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query game save: %w", err)
	}

	return DecodeSnapshot([]byte(data))
}

// LoadLatest retrieves the most recent snapshot for a session.
func (s *SaveRepository) LoadLatest(sessionID string) (*model.Player, error) {
	query := `
          SELECT data
          FROM game_save
          WHERE session_id = ?
          ORDER BY created_at DESC
          LIMIT 1
      `
	var data string

	err := s.db.QueryRow(query, sessionID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest game save: %w", err)
	}

	return DecodeSnapshot([]byte(data))
}

// List retrieves snapshot metadata for a session, newest first.
func (s *SaveRepository) List(sessionID string) ([]SaveMeta, error) {
	query := `
          SELECT id, session_id, player_name, player_age, player_wealth, created_at
          FROM game_save
          WHERE session_id = ?
          ORDER BY created_at DESC
      `
	rows, err := s.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game_save table: %w", err)
	}
	defer rows.Close()

	saves := []SaveMeta{}

	for rows.Next() {
		var m SaveMeta

		err := rows.Scan(
			&m.ID,
			&m.SessionID,
			&m.Name,
			&m.Age,
			&m.Wealth,
			&m.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game_save table results: %w", err)
		}

		saves = append(saves, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game_save table: %w", err)
	}

	return saves, nil
}

// Delete removes a snapshot by save id.
func (s *SaveRepository) Delete(saveID string) error {
	result, err := s.db.Exec("DELETE FROM game_save WHERE id = ?", saveID)
	if err != nil {
		return fmt.Errorf("failed to delete game save: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrSaveNotFound
	}

	return nil
}

// DecodeSnapshot unmarshals a snapshot payload and restores the derived
// holding fields that are not part of the serialized state.
func DecodeSnapshot(data []byte) (*model.Player, error) {
	var p model.Player
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player snapshot: %w", err)
	}
	if p.Skills == nil {
		p.Skills = map[string]int{}
	}
	for _, h := range p.Holdings {
		h.RefreshDerived()
	}
	return &p, nil
}
