package artifacts

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Session records one analysis run against an output directory, so later
// question runs can tell what produced the data they are reading.
type Session struct {
	RunID   string    `json:"run_id"`
	LogPath string    `json:"log_path"`
	Model   string    `json:"model"`
	Status  string    `json:"status"`
	Started time.Time `json:"started"`
}

func sessionPath(dir string) string {
	return filepath.Join(dir, "session.json")
}

// NewSession creates a running session with a fresh run ID.
func NewSession(logPath, model string) *Session {
	return &Session{
		RunID:   uuid.NewString(),
		LogPath: logPath,
		Model:   model,
		Status:  StatusRunning,
		Started: time.Now().UTC(),
	}
}

// LoadSession reads the session recorded in an output directory.
// Returns nil with no error if none has been recorded.
func LoadSession(dir string) (*Session, error) {
	data, err := os.ReadFile(sessionPath(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Save writes the session to the output directory.
func (s *Session) Save(dir string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(sessionPath(dir), data, 0644)
}
