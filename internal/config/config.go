// Package config loads bot configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Token   string `env:"DISCORD_TOKEN,required"`
	GuildID string `env:"GUILD_ID"` // empty registers commands globally
	Debug   bool   `env:"DEBUG" envDefault:"false"`

	// Central audit hub: a guild the bot mirrors every audit entry into,
	// one channel per origin guild under a dedicated category.
	CentralGuildID    string `env:"CENTRAL_GUILD_ID"`
	CentralLogsRoleID string `env:"CENTRAL_LOGS_ROLE_ID"`

	AuditStatePath   string `env:"AUDIT_STATE_PATH" envDefault:"audit_state.json"`
	AuditArchivePath string `env:"AUDIT_ARCHIVE_PATH" envDefault:"audit.db"`

	StaffRoleIDs []string `env:"STAFF_ROLE_IDS" envSeparator:","`
	MusicRoleIDs []string `env:"MUSIC_ROLE_IDS" envSeparator:","`

	// Role granted when a recruitment candidature is approved.
	RecruitRoleID string `env:"RECRUIT_ROLE_ID"`

	// Voice channel to fall back to when the caller is not in a call.
	MusicChannelID string `env:"MUSIC_CHANNEL_ID"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
