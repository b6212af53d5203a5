package bot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/capability"
	"github.com/JKZIMgamer/lzim-bot/internal/duration"
	"github.com/JKZIMgamer/lzim-bot/internal/session"
)

const (
	minGiveawaySeconds = 10
	maxGiveawaySeconds = 14 * 24 * 3600
)

func (b *Bot) cmdGiveaway(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !b.caps.Has(i.Member, capability.Staff) && !hasPermission(i, discordgo.PermissionManageMessages) {
		respondDenied(s, i, "You need staff or **Manage Messages** to run giveaways.")
		return
	}

	opts := optionMap(i)
	prize := opts["prize"].StringValue()
	durStr := opts["duration"].StringValue()
	winners := 1
	if o, ok := opts["winners"]; ok && int(o.IntValue()) > 0 {
		winners = int(o.IntValue())
	}
	channelID := i.ChannelID
	if o, ok := opts["channel"]; ok {
		channelID = o.ChannelValue(nil).ID
	}

	secs, err := duration.Parse(durStr)
	if err != nil {
		respondErr(s, i, "Invalid duration. Examples: `10m`, `2h`, `1d30m`.")
		return
	}
	if secs < minGiveawaySeconds {
		respondErr(s, i, "Duration too short — at least **10s**.")
		return
	}
	if secs > maxGiveawaySeconds {
		respondErr(s, i, "Duration too long — at most **14 days**.")
		return
	}

	hostID := interactionUserID(i)
	embed := &discordgo.MessageEmbed{
		Title: "🎉 GIVEAWAY!",
		Description: fmt.Sprintf(
			"**Prize:** %s\n**Winners:** %d\n**Host:** <@%s>\n\nClick **Enter** to join.\n⏳ Ends in: **%s**",
			prize, winners, hostID, durStr),
		Color:  0xf1c40f,
		Footer: &discordgo.MessageEmbedFooter{Text: "Good luck!"},
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Enter",
				Emoji:    &discordgo.ComponentEmoji{Name: "🎟️"},
				Style:    discordgo.PrimaryButton,
				CustomID: giveawayJoinID,
			},
		}},
	}

	respondEphemeral(s, i, fmt.Sprintf("✅ Giveaway panel posted in <#%s>.", channelID))
	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embed:      embed,
		Components: components,
	})
	if err != nil {
		log.Error().Err(err).Msg("giveaway post failed")
		followUp(s, i, "❌ Could not post the giveaway panel.")
		return
	}

	ga := session.NewGiveaway(prize, hostID, winners)
	ga.GuildID, ga.ChannelID, ga.MessageID = i.GuildID, channelID, msg.ID
	b.giveaways.Put(msg.ID, ga)

	b.record(i.GuildID, "Giveaway created", hostID, "",
		fmt.Sprintf("Prize: %s\nDuration: %s\nWinners: %d", prize, durStr, winners))

	b.sched.Schedule(time.Duration(secs)*time.Second, func() {
		b.finalizeGiveaway(s, ga)
	})
}

func (b *Bot) finalizeGiveaway(s *discordgo.Session, ga *session.Giveaway) {
	winners, err := ga.Finalize(func(userID string) bool {
		return memberPresent(s, ga.GuildID, userID)
	})
	if err != nil {
		log.Warn().Err(err).Str("message", ga.MessageID).Msg("giveaway already finalized")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🎉 Giveaway ended!",
		Description: fmt.Sprintf("**Prize:** %s\n**Winner(s):** %s", ga.Prize, mentionList(winners)),
		Color:       0x57f287,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Host: " + ga.HostID},
	}
	if _, err := s.ChannelMessageSendEmbed(ga.ChannelID, embed); err != nil {
		log.Error().Err(err).Str("message", ga.MessageID).Msg("giveaway result post failed")
	}

	b.record(ga.GuildID, "Giveaway ended", ga.HostID, "",
		fmt.Sprintf("Prize: %s\nWinners: %s", ga.Prize, strings.Join(winners, ", ")))
}

func (b *Bot) handleGiveawayJoin(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ga, ok := b.giveaways.Get(i.Message.ID)
	if !ok {
		respondNotFound(s, i, "giveaway")
		return
	}

	// Join is recorded before any platform call; see session.Giveaway.
	switch err := ga.Join(interactionUserID(i)); {
	case errors.Is(err, session.ErrAlreadyJoined):
		respondEphemeral(s, i, "✅ You're already in!")
	case errors.Is(err, session.ErrClosed):
		respondEphemeral(s, i, "⏳ This giveaway has ended.")
	case err != nil:
		respondErr(s, i, "Could not enter you.")
	default:
		respondEphemeral(s, i, "🎟️ You entered the giveaway!")
	}
}

func (b *Bot) cmdReroll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		respondDenied(s, i, "Administrators only.")
		return
	}
	opts := optionMap(i)
	link := opts["message_link"].StringValue()
	count := 1
	if o, ok := opts["winners"]; ok && int(o.IntValue()) > 0 {
		count = int(o.IntValue())
	}

	messageID, channelID, ok := parseMessageLink(link)
	if !ok {
		respondErr(s, i, "That doesn't look like a message link.")
		return
	}

	ga, found := b.giveaways.Get(messageID)
	if !found || !ga.Finalized() {
		respondNotFound(s, i, "giveaway")
		return
	}

	// Presence is checked against the guild the giveaway ran in, not the
	// guild the command came from.
	winners, err := ga.Reroll(count, func(userID string) bool {
		return memberPresent(s, ga.GuildID, userID)
	})
	if errors.Is(err, session.ErrNoParticipants) {
		respondEphemeral(s, i, "⚠️ No participants left to draw from.")
		return
	}
	if err != nil {
		respondErr(s, i, "Reroll failed.")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🔁 Giveaway reroll",
		Description: fmt.Sprintf("**Prize:** %s\n**New winner(s):** %s", ga.Prize, mentionList(winners)),
		Color:       0xe67e22,
	}
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		log.Error().Err(err).Msg("reroll post failed")
		respondErr(s, i, "Could not post the reroll result.")
		return
	}
	respondEphemeral(s, i, "✅ Reroll done.")

	b.record(i.GuildID, "Giveaway reroll", interactionUserID(i), "",
		fmt.Sprintf("Prize: %s\nNew winners: %s", ga.Prize, strings.Join(winners, ", ")))
}

func mentionList(ids []string) string {
	if len(ids) == 0 {
		return "—"
	}
	mentions := make([]string, len(ids))
	for i, id := range ids {
		mentions[i] = "<@" + id + ">"
	}
	return strings.Join(mentions, ", ")
}

// parseMessageLink extracts the channel and message ids from a
// https://discord.com/channels/<guild>/<channel>/<message> link.
func parseMessageLink(link string) (messageID, channelID string, ok bool) {
	parts := strings.Split(strings.TrimSpace(link), "/")
	if len(parts) < 2 {
		return "", "", false
	}
	messageID = parts[len(parts)-1]
	channelID = parts[len(parts)-2]
	if messageID == "" || channelID == "" {
		return "", "", false
	}
	for _, id := range []string{messageID, channelID} {
		for _, ch := range id {
			if ch < '0' || ch > '9' {
				return "", "", false
			}
		}
	}
	return messageID, channelID, true
}
