package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/audit"
)

const localLogChannelName = "📜logs-lzim"

// cmdAuditLog toggles the per-guild local log channel. The setting is the
// one piece of state that survives restarts, in the flat JSON store.
func (b *Bot) cmdAuditLog(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		respondDenied(s, i, "Administrators only.")
		return
	}
	enable := optionMap(i)["enabled"].BoolValue()
	deferEphemeral(s, i)

	if !enable {
		if cfg, ok := b.store.Get(i.GuildID); ok && cfg.ChannelID != "" {
			if _, err := s.ChannelDelete(cfg.ChannelID); err != nil {
				log.Warn().Err(err).Str("channel", cfg.ChannelID).Msg("log channel delete failed")
			}
		}
		if err := b.store.Set(i.GuildID, audit.GuildConfig{Enabled: false}); err != nil {
			log.Error().Err(err).Msg("audit store write failed")
			followUp(s, i, "❌ Could not save the setting.")
			return
		}
		followUp(s, i, "✅ Local audit logs **disabled** and the channel removed.")
		return
	}

	chID, err := b.findOrCreateLogChannel(s, i.GuildID)
	if err != nil {
		log.Error().Err(err).Str("guild", i.GuildID).Msg("log channel create failed")
		followUp(s, i, "❌ Could not provision the log channel.")
		return
	}
	if err := b.store.Set(i.GuildID, audit.GuildConfig{Enabled: true, ChannelID: chID}); err != nil {
		log.Error().Err(err).Msg("audit store write failed")
		followUp(s, i, "❌ Could not save the setting.")
		return
	}
	followUp(s, i, "✅ Local audit logs **enabled**: <#"+chID+">")
}

// findOrCreateLogChannel provisions the admin-only log channel, reusing an
// existing one by name.
func (b *Bot) findOrCreateLogChannel(s *discordgo.Session, guildID string) (string, error) {
	channels, err := s.GuildChannels(guildID)
	if err != nil {
		return "", err
	}
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildText && c.Name == localLogChannelName {
			return c.ID, nil
		}
	}
	ch, err := s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:  localLogChannelName,
		Type:  discordgo.ChannelTypeGuildText,
		Topic: "Audit log channel — visible to administrators only",
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: guildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
		},
	})
	if err != nil {
		return "", err
	}
	return ch.ID, nil
}
