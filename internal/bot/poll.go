package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/JKZIMgamer/lzim-bot/internal/duration"
	"github.com/JKZIMgamer/lzim-bot/internal/session"
)

const minPollSeconds = 10

func (b *Bot) cmdPoll(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := optionMap(i)
	question := opts["question"].StringValue()
	rawOptions := opts["options"].StringValue()
	durStr := "2m"
	if o, ok := opts["duration"]; ok {
		durStr = o.StringValue()
	}

	var labels []string
	for _, part := range strings.Split(rawOptions, ";") {
		if p := strings.TrimSpace(part); p != "" {
			labels = append(labels, p)
		}
	}
	if len(labels) < 2 || len(labels) > 5 {
		respondErr(s, i, "Provide 2 to 5 options separated by `;`.")
		return
	}

	secs, err := duration.Parse(durStr)
	if err != nil {
		respondErr(s, i, "Invalid duration. Examples: `2m`, `30s`, `1h`.")
		return
	}
	if secs < minPollSeconds {
		secs = minPollSeconds
	}

	embed := &discordgo.MessageEmbed{
		Title:       "📊 Poll",
		Description: fmt.Sprintf("**%s**\n\nClick a button to vote!\n⏳ Ends in **%s**", question, durStr),
		Color:       0x5865f2,
		Footer:      &discordgo.MessageEmbedFooter{Text: "Started by " + interactionUserID(i)},
	}

	row := discordgo.ActionsRow{}
	for idx, label := range labels {
		if len(label) > 80 {
			label = label[:80]
		}
		row.Components = append(row.Components, discordgo.Button{
			Label:    label,
			Style:    discordgo.PrimaryButton,
			CustomID: pollVotePrefix + strconv.Itoa(idx),
		})
	}

	respondEphemeral(s, i, "✅ Poll created.")
	msg, err := s.ChannelMessageSendComplex(i.ChannelID, &discordgo.MessageSend{
		Embed:      embed,
		Components: []discordgo.MessageComponent{row},
	})
	if err != nil {
		log.Error().Err(err).Msg("poll post failed")
		followUp(s, i, "❌ Could not post the poll.")
		return
	}

	poll := session.NewPoll(question, labels)
	b.polls.Put(msg.ID, poll)

	guildID, channelID, actorID := i.GuildID, i.ChannelID, interactionUserID(i)
	b.sched.Schedule(time.Duration(secs)*time.Second, func() {
		b.closePoll(s, guildID, channelID, msg.ID, actorID)
	})
}

func (b *Bot) closePoll(s *discordgo.Session, guildID, channelID, messageID, actorID string) {
	poll, ok := b.polls.Get(messageID)
	if !ok {
		return
	}
	results, total := poll.Close()
	b.polls.Remove(messageID)

	lines := make([]string, 0, len(results))
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("**%s** — %d vote(s) (%d%%)", r.Option, r.Votes, r.Percent))
	}
	desc := "No votes recorded."
	if total > 0 {
		desc = strings.Join(lines, "\n")
	}
	_, err := s.ChannelMessageSendEmbed(channelID, &discordgo.MessageEmbed{
		Title:       "✅ Poll closed",
		Description: desc,
		Color:       0x57f287,
	})
	if err != nil {
		log.Error().Err(err).Str("message", messageID).Msg("poll result post failed")
	}

	b.record(guildID, "Poll closed", actorID, "",
		fmt.Sprintf("Question: %s\nTotal votes: %d", poll.Question, total))
}

func (b *Bot) handlePollVote(s *discordgo.Session, i *discordgo.InteractionCreate) {
	idx, err := strconv.Atoi(strings.TrimPrefix(i.MessageComponentData().CustomID, pollVotePrefix))
	if err != nil {
		respondErr(s, i, "Malformed vote button.")
		return
	}
	poll, ok := b.polls.Get(i.Message.ID)
	if !ok {
		respondNotFound(s, i, "poll")
		return
	}

	// The vote is recorded before any platform call so a second activation
	// from the same user can never slip past the duplicate check.
	switch err := poll.CastVote(interactionUserID(i), idx); {
	case errors.Is(err, session.ErrDuplicateVote):
		respondEphemeral(s, i, "✅ You already voted!")
	case errors.Is(err, session.ErrClosed):
		respondEphemeral(s, i, "⏳ This poll has ended.")
	case err != nil:
		respondErr(s, i, "Could not record your vote.")
	default:
		respondEphemeral(s, i, "🗳️ Vote counted!")
	}
}
