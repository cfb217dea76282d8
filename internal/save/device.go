package save

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DeviceID returns the stable per-install identifier used to key the save
// cipher, generating and persisting one on first use. A missing or empty
// identity file is replaced, never an existing one.
func DeviceID(dir string) (string, error) {
	path := filepath.Join(dir, "device_id")
	if b, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(b)); id != "" {
			return id, nil
		}
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", err
	}
	return id, nil
}
