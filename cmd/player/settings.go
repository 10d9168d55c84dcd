package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// fileSettings persists the only configuration the playback core needs:
// the device identity and the last-known server address.
type fileSettings struct {
	mu   sync.Mutex
	path string
	data settingsData
}

type settingsData struct {
	DeviceID      string `json:"device_id"`
	ServerAddress string `json:"server_address"`
}

func loadSettings(path, serverOverride string) (*fileSettings, error) {
	s := &fileSettings{path: path}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("settings file %q is corrupt: %w", path, err)
		}
	case os.IsNotExist(err):
		// first boot
	default:
		return nil, err
	}

	if s.data.DeviceID == "" {
		s.data.DeviceID = uuid.NewString()
		log.Info().Str("device_id", s.data.DeviceID).Msg("generated device identity")
	}
	if serverOverride != "" {
		s.data.ServerAddress = serverOverride
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *fileSettings) DeviceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.DeviceID
}

func (s *fileSettings) ServerAddress() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.ServerAddress
}

func (s *fileSettings) SetServerAddress(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.ServerAddress = addr
	return s.save()
}

func (s *fileSettings) save() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
