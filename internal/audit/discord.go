package audit

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

const hubCategoryName = "logs-lzim-bot"

// DiscordSink posts audit embeds to the central hub guild (one channel per
// origin guild under a dedicated category) and, when the guild opted in, to
// its local log channel.
type DiscordSink struct {
	s              *discordgo.Session
	store          *Store
	centralGuildID string
	centralRoleID  string

	mu          sync.Mutex
	hubChannels map[string]string // origin guild id -> hub channel id
}

func NewDiscordSink(s *discordgo.Session, store *Store, centralGuildID, centralRoleID string) *DiscordSink {
	return &DiscordSink{
		s:              s,
		store:          store,
		centralGuildID: centralGuildID,
		centralRoleID:  centralRoleID,
		hubChannels:    make(map[string]string),
	}
}

func (d *DiscordSink) Record(e Entry) {
	embed := buildEmbed(e)
	d.sendCentral(e, embed)
	d.sendLocal(e, embed)
}

func buildEmbed(e Entry) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Actor", Value: fmt.Sprintf("<@%s> (`%s`)", e.ActorID, e.ActorID), Inline: true},
	}
	if e.TargetID != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Target", Value: fmt.Sprintf("<@%s> (`%s`)", e.TargetID, e.TargetID), Inline: true,
		})
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name: "Guild", Value: fmt.Sprintf("`%s`", e.GuildID), Inline: true,
	})
	if e.Details != "" {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "Details", Value: e.Details,
		})
	}
	return &discordgo.MessageEmbed{
		Title:     "📋 " + e.Action,
		Color:     0x3498db,
		Fields:    fields,
		Timestamp: e.At.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

func (d *DiscordSink) sendLocal(e Entry, embed *discordgo.MessageEmbed) {
	cfg, ok := d.store.Get(e.GuildID)
	if !ok || !cfg.Enabled || cfg.ChannelID == "" {
		return
	}
	if _, err := d.s.ChannelMessageSendEmbed(cfg.ChannelID, embed); err != nil {
		log.Warn().Err(err).Str("guild", e.GuildID).Msg("local audit send failed")
	}
}

func (d *DiscordSink) sendCentral(e Entry, embed *discordgo.MessageEmbed) {
	if d.centralGuildID == "" {
		return
	}
	chID, err := d.hubChannel(e.GuildID)
	if err != nil {
		log.Warn().Err(err).Str("guild", e.GuildID).Msg("central audit channel unavailable")
		return
	}
	if _, err := d.s.ChannelMessageSendEmbed(chID, embed); err != nil {
		log.Warn().Err(err).Str("guild", e.GuildID).Msg("central audit send failed")
	}
}

// hubChannel finds or provisions the central channel for an origin guild.
func (d *DiscordSink) hubChannel(guildID string) (string, error) {
	d.mu.Lock()
	if id, ok := d.hubChannels[guildID]; ok {
		d.mu.Unlock()
		return id, nil
	}
	d.mu.Unlock()

	catID, err := d.hubCategory()
	if err != nil {
		return "", err
	}

	name := hubChannelName(guildID)
	channels, err := d.s.GuildChannels(d.centralGuildID)
	if err != nil {
		return "", err
	}
	var chID string
	for _, c := range channels {
		if c.ParentID == catID && c.Name == name {
			chID = c.ID
			break
		}
	}
	if chID == "" {
		ch, err := d.s.GuildChannelCreateComplex(d.centralGuildID, discordgo.GuildChannelCreateData{
			Name:     name,
			Type:     discordgo.ChannelTypeGuildText,
			ParentID: catID,
			Topic:    "Audit log for guild " + guildID,
		})
		if err != nil {
			return "", err
		}
		chID = ch.ID
	}

	d.mu.Lock()
	d.hubChannels[guildID] = chID
	d.mu.Unlock()
	return chID, nil
}

func (d *DiscordSink) hubCategory() (string, error) {
	channels, err := d.s.GuildChannels(d.centralGuildID)
	if err != nil {
		return "", err
	}
	for _, c := range channels {
		if c.Type == discordgo.ChannelTypeGuildCategory && c.Name == hubCategoryName {
			return c.ID, nil
		}
	}
	overwrites := []*discordgo.PermissionOverwrite{
		{ID: d.centralGuildID, Type: discordgo.PermissionOverwriteTypeRole, Deny: discordgo.PermissionViewChannel},
	}
	if d.centralRoleID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    d.centralRoleID,
			Type:  discordgo.PermissionOverwriteTypeRole,
			Allow: discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory,
			Deny:  discordgo.PermissionSendMessages,
		})
	}
	cat, err := d.s.GuildChannelCreateComplex(d.centralGuildID, discordgo.GuildChannelCreateData{
		Name:                 hubCategoryName,
		Type:                 discordgo.ChannelTypeGuildCategory,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return "", err
	}
	return cat.ID, nil
}

func hubChannelName(guildID string) string {
	return "logs-" + strings.ToLower(guildID)
}
