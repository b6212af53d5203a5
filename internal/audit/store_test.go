package audit

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreMissingFileIsEmpty(t *testing.T) {
	s, err := OpenStore(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	_, ok := s.Get("g1")
	assert.False(t, ok)
}

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := OpenStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("g1", GuildConfig{Enabled: true, ChannelID: "c1"}))
	require.NoError(t, s.Set("g2", GuildConfig{Enabled: false}))

	// A fresh Store sees everything the first one wrote.
	reopened, err := OpenStore(path)
	require.NoError(t, err)

	cfg, ok := reopened.Get("g1")
	require.True(t, ok)
	assert.Equal(t, GuildConfig{Enabled: true, ChannelID: "c1"}, cfg)

	cfg, ok = reopened.Get("g2")
	require.True(t, ok)
	assert.False(t, cfg.Enabled)
}

func TestStoreSetOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := OpenStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("g1", GuildConfig{Enabled: true, ChannelID: "c1"}))
	require.NoError(t, s.Set("g1", GuildConfig{Enabled: false}))

	cfg, _ := s.Get("g1")
	assert.Equal(t, GuildConfig{Enabled: false}, cfg)
}

func TestMultiSinkFansOut(t *testing.T) {
	var a, b recorder
	MultiSink{&a, &b}.Record(Entry{Action: "x"})
	assert.Len(t, a.entries, 1)
	assert.Len(t, b.entries, 1)
}

type recorder struct{ entries []Entry }

func (r *recorder) Record(e Entry) { r.entries = append(r.entries, e) }
