package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/effortwise/gearbox/internal/effort"
	"github.com/effortwise/gearbox/pkg/models"
)

// Load returns the persisted controller state, or a fresh default state
// when none has been saved yet. It satisfies the effort.Store contract:
// a nil error always comes with a non-nil state.
func (db *DB) Load() (*models.ControllerState, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var blob string
	row := db.conn.QueryRow("SELECT state FROM effort_state WHERE id = 1")
	if err := row.Scan(&blob); err != nil {
		if err == sql.ErrNoRows {
			return models.NewControllerState(), nil
		}
		return nil, fmt.Errorf("load effort state: %w", err)
	}

	state := models.NewControllerState()
	if err := json.Unmarshal([]byte(blob), state); err != nil {
		return nil, fmt.Errorf("decode effort state: %w", err)
	}
	if state.NodeStates == nil {
		state.NodeStates = make(map[models.Role]models.EffortProfile)
	}
	return state, nil
}

// Save persists the controller state as a single JSON blob,
// read-modify-write, replacing any previous snapshot.
func (db *DB) Save(state *models.ControllerState) error {
	blob, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode effort state: %w", err)
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	_, err = db.conn.Exec(`
		INSERT INTO effort_state (id, task_id, state, updated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET task_id = excluded.task_id,
			state = excluded.state, updated_at = excluded.updated_at
	`, state.TaskID, string(blob), formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("save effort state: %w", err)
	}
	return nil
}

// EventRecord is one journaled controller event.
type EventRecord struct {
	ID        int64          `json:"id"`
	TaskID    string         `json:"task_id,omitempty"`
	Type      string         `json:"type"`
	Role      string         `json:"role,omitempty"`
	Message   string         `json:"message,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// AppendEvent journals one controller event. Errors are returned for
// the caller to log; the journal is best-effort telemetry and must not
// gate controller operations.
func (db *DB) AppendEvent(e effort.Event) error {
	details := "{}"
	if e.Details != nil {
		encoded, err := json.Marshal(e.Details)
		if err == nil {
			details = string(encoded)
		}
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT INTO effort_events (task_id, event_type, role, message, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.TaskID, string(e.Type), string(e.Role), e.Message, details, formatTime(e.Timestamp))
	if err != nil {
		return fmt.Errorf("append effort event: %w", err)
	}
	return nil
}

// ListEvents returns the most recent journaled events, newest first.
// A taskID filters to one task; limit <= 0 means no limit.
func (db *DB) ListEvents(taskID string, limit int) ([]EventRecord, error) {
	query := "SELECT id, task_id, event_type, role, message, details, created_at FROM effort_events"
	args := []any{}
	if taskID != "" {
		query += " WHERE task_id = ?"
		args = append(args, taskID)
	}
	query += " ORDER BY id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list effort events: %w", err)
	}
	defer rows.Close()

	var records []EventRecord
	for rows.Next() {
		var rec EventRecord
		var details, createdAt string
		if err := rows.Scan(&rec.ID, &rec.TaskID, &rec.Type, &rec.Role, &rec.Message, &details, &createdAt); err != nil {
			return nil, fmt.Errorf("scan effort event: %w", err)
		}
		if details != "" && details != "{}" {
			_ = json.Unmarshal([]byte(details), &rec.Details)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			rec.CreatedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear wipes the persisted controller state. The event journal is kept;
// it is an audit trail, not working state.
func (db *DB) Clear() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, err := db.conn.Exec("DELETE FROM effort_state WHERE id = 1"); err != nil {
		return fmt.Errorf("clear effort state: %w", err)
	}
	return nil
}
