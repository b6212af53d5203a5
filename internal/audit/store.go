package audit

import (
	"encoding/json"
	"os"
	"sync"
)

// GuildConfig is the per-guild local-log setting.
type GuildConfig struct {
	Enabled   bool   `json:"enabled"`
	ChannelID string `json:"channel_id"`
}

// Store is a flat key-value file mapping guild id to its local-log config.
// The file is read fully into memory at startup and rewritten wholesale on
// every toggle.
type Store struct {
	path string

	mu sync.Mutex
	m  map[string]GuildConfig
}

// OpenStore loads the config file at path, treating a missing file as an
// empty configuration.
func OpenStore(path string) (*Store, error) {
	s := &Store{path: path, m: make(map[string]GuildConfig)}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &s.m); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Get(guildID string) (GuildConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg, ok := s.m[guildID]
	return cfg, ok
}

// Set updates one guild's config and rewrites the whole file.
func (s *Store) Set(guildID string, cfg GuildConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[guildID] = cfg
	data, err := json.MarshalIndent(s.m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
