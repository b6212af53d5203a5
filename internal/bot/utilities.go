package bot

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/calc"
	"github.com/JKZIMgamer/lzim-bot/internal/duration"
)

func (b *Bot) cmdRemind(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	secs, err := duration.Parse(opts["in"].StringValue())
	if err != nil {
		respondErr(s, i, "Invalid delay. Use something like `10m`, `1h` or `2h30m`.")
		return
	}
	if secs < 5 {
		respondErr(s, i, "The minimum delay is **5 seconds**.")
		return
	}
	text := opts["text"].StringValue()
	userID := interactionUserID(i)
	channelID := i.ChannelID

	b.sched.Schedule(time.Duration(secs)*time.Second, func() {
		msg := fmt.Sprintf("⏰ <@%s> reminder: %s", userID, text)
		if _, err := s.ChannelMessageSend(channelID, msg); err != nil {
			log.Warn().Err(err).Str("channel", channelID).Msg("reminder delivery failed")
		}
	})

	respondEphemeral(s, i, fmt.Sprintf("✅ Reminder set for **%s**.", opts["in"].StringValue()))
}

func (b *Bot) cmdSuggest(s *discordgo.Session, i *discordgo.InteractionCreate) {
	text := optionMap(i)["text"].StringValue()
	embed := &discordgo.MessageEmbed{
		Title:       "💡 Suggestion",
		Description: text,
		Color:       0xf1c40f,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Suggested by " + interactionUserID(i)},
	}
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
	if err != nil {
		log.Warn().Err(err).Msg("suggestion post failed")
	}
}

func (b *Bot) cmdLuck(s *discordgo.Session, i *discordgo.InteractionCreate) {
	n := rand.Intn(100) + 1
	respond(s, i, fmt.Sprintf("🍀 <@%s> rolled **%d**/100!", interactionUserID(i), n))
}

func (b *Bot) cmdCalc(s *discordgo.Session, i *discordgo.InteractionCreate) {
	expr := optionMap(i)["expression"].StringValue()
	result, err := calc.Eval(expr)
	if err != nil {
		respondErr(s, i, "Invalid expression. Use numbers, `+ - * /` and parentheses.")
		return
	}
	respond(s, i, fmt.Sprintf("🧮 `%s` = **%s**", expr, strconv.FormatFloat(result, 'f', -1, 64)))
}

// cmdNow shows the current time together with the platform timestamp
// markups, so people can copy the one they want into their own messages.
func (b *Bot) cmdNow(s *discordgo.Session, i *discordgo.InteractionCreate) {
	unix := time.Now().Unix()
	embed := &discordgo.MessageEmbed{
		Title: "🕐 Current time",
		Description: fmt.Sprintf(
			"**Full:** <t:%[1]d:F>\n**Date:** <t:%[1]d:D>\n**Time:** <t:%[1]d:T>\n**Relative:** <t:%[1]d:R>\n\nMarkup: `<t:%[1]d:F>`",
			unix),
		Color: 0x5865f2,
	}
	respondEmbed(s, i, embed)
}

func (b *Bot) cmdAvatar(s *discordgo.Session, i *discordgo.InteractionCreate) {
	user := resolveUserOption(i, "member")
	embed := &discordgo.MessageEmbed{
		Title: "🖼️ Avatar of " + user.Username,
		Color: 0x5865f2,
		Image: &discordgo.MessageEmbedImage{URL: user.AvatarURL("1024")},
	}
	respondEmbed(s, i, embed)
}

// cmdBanner needs a REST fetch; banners are not part of the member payload.
func (b *Bot) cmdBanner(s *discordgo.Session, i *discordgo.InteractionCreate) {
	target := resolveUserOption(i, "member")
	deferEphemeral(s, i)
	user, err := s.User(target.ID)
	if err != nil {
		log.Warn().Err(err).Str("target", target.ID).Msg("user fetch failed")
		followUp(s, i, "❌ Could not fetch that user.")
		return
	}
	if user.Banner == "" {
		followUp(s, i, fmt.Sprintf("ℹ️ **%s** has no banner set.", user.Username))
		return
	}
	embed := &discordgo.MessageEmbed{
		Title: "🎨 Banner of " + user.Username,
		Color: 0x5865f2,
		Image: &discordgo.MessageEmbedImage{URL: user.BannerURL("1024")},
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}); err != nil {
		log.Warn().Err(err).Msg("followup failed")
	}
}

func (b *Bot) cmdServerIcon(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guild, err := s.Guild(i.GuildID)
	if err != nil || guild.Icon == "" {
		respondEphemeral(s, i, "ℹ️ This server has no icon.")
		return
	}
	embed := &discordgo.MessageEmbed{
		Title: "🏞️ Icon of " + guild.Name,
		Color: 0x5865f2,
		Image: &discordgo.MessageEmbedImage{URL: guild.IconURL("1024")},
	}
	respondEmbed(s, i, embed)
}

// resolveUserOption returns the chosen user option, defaulting to the
// caller when the option was left out. The resolved map is preferred so
// avatar hashes come along without a REST fetch.
func resolveUserOption(i *discordgo.InteractionCreate, name string) *discordgo.User {
	if o, ok := optionMap(i)[name]; ok {
		if id, ok := o.Value.(string); ok {
			if res := i.ApplicationCommandData().Resolved; res != nil {
				if u, found := res.Users[id]; found {
					return u
				}
			}
		}
		return o.UserValue(nil)
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func respondEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
	if err != nil {
		log.Warn().Err(err).Msg("interaction respond failed")
	}
}
