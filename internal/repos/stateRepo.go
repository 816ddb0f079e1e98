package repos

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"

	"github.com/wrenholt/autolight/internal/models"
)

const initSchema = `
  CREATE TABLE IF NOT EXISTS light_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    r_pin INTEGER,
    g_pin INTEGER,
    b_pin INTEGER,
    r INTEGER,
    g INTEGER,
    b INTEGER,
    schedules TEXT
  );
`

// StateRepo persists the simulated device's light state, standing in for
// the firmware's config file on flash. There is exactly one row.
type StateRepo struct {
	logger *log.Logger
	db     *sql.DB
}

func NewStateRepo(logger *log.Logger, dbFile string) (*StateRepo, error) {
	db, err := sql.Open("sqlite3", dbFile)
	if err != nil {
		return nil, fmt.Errorf("error opening state db: %w", err)
	}

	if _, err := db.Exec(initSchema); err != nil {
		return nil, fmt.Errorf("error initialising state db: %w", err)
	}

	return &StateRepo{logger: logger, db: db}, nil
}

// Load reads the persisted light state. The second return value is false
// when nothing has been persisted yet (first boot).
func (r *StateRepo) Load() (models.LightState, bool, error) {
	var (
		state         models.LightState
		schedulesJSON string
	)

	row := r.db.QueryRow(`
    SELECT r_pin, g_pin, b_pin, r, g, b, schedules
    FROM light_state
    WHERE id = 1
  `)
	err := row.Scan(
		&state.Pins.RPin, &state.Pins.GPin, &state.Pins.BPin,
		&state.Color.R, &state.Color.G, &state.Color.B,
		&schedulesJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return state, false, nil
		}
		return state, false, fmt.Errorf("error reading light state: %w", err)
	}

	if err := json.Unmarshal([]byte(schedulesJSON), &state.Schedules); err != nil {
		return state, false, fmt.Errorf("error parsing persisted schedules: %w", err)
	}

	return state, true, nil
}

// Save replaces the persisted light state wholesale.
func (r *StateRepo) Save(state models.LightState) error {
	schedulesJSON, err := json.Marshal(state.Schedules)
	if err != nil {
		return fmt.Errorf("error encoding schedules: %w", err)
	}

	_, err = r.db.Exec(`
    INSERT INTO light_state (id, r_pin, g_pin, b_pin, r, g, b, schedules)
    VALUES (1, $1, $2, $3, $4, $5, $6, $7)
    ON CONFLICT (id) DO UPDATE SET
      r_pin = $1, g_pin = $2, b_pin = $3,
      r = $4, g = $5, b = $6,
      schedules = $7
  `,
		state.Pins.RPin, state.Pins.GPin, state.Pins.BPin,
		state.Color.R, state.Color.G, state.Color.B,
		string(schedulesJSON),
	)
	if err != nil {
		return fmt.Errorf("error saving light state: %w", err)
	}

	r.logger.Debug("persisted light state", "schedules", len(state.Schedules))
	return nil
}

func (r *StateRepo) Close() error {
	return r.db.Close()
}
