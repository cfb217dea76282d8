package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"botcircuit/internal/config"
	"botcircuit/internal/economy"
)

// CurrentVersion is the save format version written by this build. Loads
// reject versions below 1 and tolerate any version up to this one.
const CurrentVersion = 1

// Envelope is the serialized profile: the economy state plus bot summaries.
type Envelope struct {
	Version int                  `json:"version"`
	SavedAt time.Time            `json:"saved_at"`
	Economy economy.EconomyState `json:"economy"`
	Bots    []config.Summary     `json:"bots"`
}

// Store owns the save file's on-disk lifecycle.
type Store struct {
	path   string
	codec  *Codec
	logger *log.Logger
}

// NewStore creates a store writing to the given path.
func NewStore(path string, codec *Codec, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{path: path, codec: codec, logger: logger}
}

// Path returns the main save file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) backupPath() string {
	return s.path + ".bak"
}

// Save encodes and writes the envelope. The write is retried up to three
// times; exhaustion returns the last error but must never crash the host.
func (s *Store) Save(env Envelope) error {
	if env.Version == 0 {
		env.Version = CurrentVersion
	}
	env.SavedAt = time.Now()

	plaintext, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("save: marshal: %w", err)
	}
	blob, err := s.codec.Encode(plaintext)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		if lastErr = s.writeAtomic(blob); lastErr == nil {
			return nil
		}
		s.logger.Warn("save attempt failed", "attempt", attempt, "error", lastErr)
	}
	return fmt.Errorf("save: all %d attempts failed: %w", saveAttempts, lastErr)
}

// writeAtomic writes the blob to a temp file, verifies it landed non-empty,
// backs up the existing file, then renames the temp into place.
func (s *Store) writeAtomic(blob string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(blob), 0o600); err != nil {
		return err
	}
	info, err := os.Stat(tmp)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		os.Remove(tmp)
		return fmt.Errorf("save: temp file empty after write")
	}

	if existing, err := os.ReadFile(s.path); err == nil && len(existing) > 0 {
		// Only a decodable file may displace the backup: promoting a
		// corrupt main would destroy the last good copy.
		if _, decErr := s.codec.Decode(string(existing)); decErr != nil {
			s.logger.Warn("existing save corrupt, keeping previous backup", "error", decErr)
		} else if err := os.WriteFile(s.backupPath(), existing, 0o600); err != nil {
			s.logger.Warn("could not write backup", "error", err)
		}
	}

	return os.Rename(tmp, s.path)
}

// Load reads the profile, falling back from the main file to the backup to
// defaults. When even the backup is unusable, the defaults are persisted
// immediately so a later crash does not repeat the recovery.
func (s *Store) Load() Envelope {
	env, err := s.loadFile(s.path)
	if err == nil {
		return env
	}
	s.logger.Warn("save file unusable, trying backup", "path", s.path, "error", err)

	env, err = s.loadFile(s.backupPath())
	if err == nil {
		return env
	}
	s.logger.Warn("backup unusable, starting from defaults", "error", err)

	env = Envelope{
		Version: CurrentVersion,
		Economy: economy.DefaultState(time.Now()),
	}
	if err := s.Save(env); err != nil {
		s.logger.Error("could not persist defaults", "error", err)
	}
	return env
}

// loadFile decodes one file and validates the result.
func (s *Store) loadFile(path string) (Envelope, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return Envelope{}, err
	}

	plaintext, err := s.codec.Decode(string(blob))
	if err != nil {
		return Envelope{}, err
	}

	var env Envelope
	if err := json.Unmarshal(plaintext, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: json: %v", ErrEncoding, err)
	}

	if env.Version < 1 || env.Version > CurrentVersion {
		return Envelope{}, fmt.Errorf("%w: %d", ErrVersion, env.Version)
	}
	if err := env.Economy.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return env, nil
}

const saveAttempts = 3
