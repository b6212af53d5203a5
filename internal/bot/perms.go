package bot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

var channelMentionRe = regexp.MustCompile(`<#(\d+)>`)

// permPreset is one named permission layout for a channel: what @everyone
// gets and what the admin roles plus the bot keep.
type permPreset struct {
	everyoneAllow int64
	everyoneDeny  int64
}

var permPresets = map[string]permPreset{
	// Members can read and browse history but not write.
	"readonly": {
		everyoneAllow: discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory,
		everyoneDeny:  discordgo.PermissionSendMessages,
	},
	// Members get the channel back in full.
	"unlock": {
		everyoneAllow: discordgo.PermissionViewChannel | discordgo.PermissionReadMessageHistory | discordgo.PermissionSendMessages,
	},
	// Members cannot see the channel at all.
	"private": {
		everyoneDeny: discordgo.PermissionViewChannel,
	},
}

const staffChannelPerms = discordgo.PermissionViewChannel |
	discordgo.PermissionReadMessageHistory |
	discordgo.PermissionSendMessages |
	discordgo.PermissionManageMessages

// cmdChatPerms rewrites the permission overwrites of every mentioned channel
// to one of the presets. Channels come in as a single string of mentions so
// a batch can cover more than Discord's option limit would allow.
func (b *Bot) cmdChatPerms(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		respondDenied(s, i, "Administrators only.")
		return
	}
	opts := optionMap(i)
	preset, ok := permPresets[opts["preset"].StringValue()]
	if !ok {
		respondErr(s, i, "Unknown preset.")
		return
	}
	matches := channelMentionRe.FindAllStringSubmatch(opts["channels"].StringValue(), -1)
	if len(matches) == 0 {
		respondErr(s, i, "Mention at least one channel, e.g. `#general #rules`.")
		return
	}

	deferEphemeral(s, i)
	adminRoles := adminRoleIDs(s, i.GuildID)

	applied, failed := 0, 0
	var failedNames []string
	for _, m := range matches {
		channelID := m[1]
		if err := b.applyPreset(s, i.GuildID, channelID, preset, adminRoles); err != nil {
			log.Warn().Err(err).Str("channel", channelID).Msg("preset apply failed")
			failed++
			failedNames = append(failedNames, "<#"+channelID+">")
			continue
		}
		applied++
	}

	summary := fmt.Sprintf("✅ Updated **%d** channel(s) to `%s`.", applied, opts["preset"].StringValue())
	if failed > 0 {
		summary += fmt.Sprintf("\n⚠️ Failed on %d: %s", failed, strings.Join(failedNames, ", "))
	}
	followUp(s, i, summary)
	b.record(i.GuildID, "Channel permissions updated", interactionUserID(i), "",
		fmt.Sprintf("Preset: %s\nUpdated: %d\nFailed: %d", opts["preset"].StringValue(), applied, failed))
}

func (b *Bot) applyPreset(s *discordgo.Session, guildID, channelID string, preset permPreset, adminRoles []string) error {
	// @everyone shares the guild id.
	if err := s.ChannelPermissionSet(channelID, guildID,
		discordgo.PermissionOverwriteTypeRole, preset.everyoneAllow, preset.everyoneDeny); err != nil {
		return err
	}
	for _, roleID := range adminRoles {
		if err := s.ChannelPermissionSet(channelID, roleID,
			discordgo.PermissionOverwriteTypeRole, staffChannelPerms, 0); err != nil {
			return err
		}
	}
	if s.State != nil && s.State.User != nil {
		if err := s.ChannelPermissionSet(channelID, s.State.User.ID,
			discordgo.PermissionOverwriteTypeMember, staffChannelPerms, 0); err != nil {
			return err
		}
	}
	return nil
}

// adminRoleIDs lists every role carrying Administrator, so presets never
// lock the people who manage the server out of their own channels.
func adminRoleIDs(s *discordgo.Session, guildID string) []string {
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		log.Warn().Err(err).Str("guild", guildID).Msg("role listing failed")
		return nil
	}
	var ids []string
	for _, r := range roles {
		if r.Permissions&discordgo.PermissionAdministrator != 0 {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
