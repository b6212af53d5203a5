package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

func (b *Bot) cmdRecruitPanel(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !isAdmin(i) {
		respondDenied(s, i, "Administrators only.")
		return
	}
	opts := optionMap(i)
	destination := opts["destination"].ChannelValue(nil)
	panelChannelID := i.ChannelID
	if o, ok := opts["panel"]; ok {
		panelChannelID = o.ChannelValue(nil).ID
	}

	b.formDests.Put(i.GuildID, destination.ID)

	embed := &discordgo.MessageEmbed{
		Title: "📜 Staff recruitment",
		Description: "Click **📖 Start application** to apply for the team.\n" +
			"Answer carefully — your application is reviewed by the administrators.",
		Color: 0x3498db,
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "📖 Start application", Style: discordgo.PrimaryButton, CustomID: formStartID},
		}},
	}
	if _, err := s.ChannelMessageSendComplex(panelChannelID, &discordgo.MessageSend{
		Embed:      embed,
		Components: components,
	}); err != nil {
		log.Error().Err(err).Msg("recruit panel post failed")
		respondErr(s, i, "Could not publish the panel.")
		return
	}
	respondEphemeral(s, i, fmt.Sprintf(
		"✅ Panel published in <#%s>. Candidatures go to <#%s>.", panelChannelID, destination.ID))
	b.record(i.GuildID, "Recruitment panel published", interactionUserID(i), "",
		fmt.Sprintf("Panel: <#%s>\nDestination: <#%s>", panelChannelID, destination.ID))
}

func (b *Bot) handleFormStart(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if _, ok := b.formDests.Get(i.GuildID); !ok {
		respondEphemeral(s, i, "⚠️ No review channel configured. Ask an admin to run **/recruitpanel**.")
		return
	}
	// Modals carry at most five inputs, so the application is trimmed to
	// the questions the reviewers actually read.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: formModalID,
			Title:    "Staff application",
			Components: []discordgo.MessageComponent{
				textInputRow("name", "Your name/nickname", discordgo.TextInputShort, true, 100),
				textInputRow("age", "Your age", discordgo.TextInputShort, true, 3),
				textInputRow("availability", "When are you usually online?", discordgo.TextInputShort, true, 100),
				textInputRow("motivation", "Why do you want to join the team?", discordgo.TextInputParagraph, true, 800),
				textInputRow("experience", "Previous staff/moderation experience", discordgo.TextInputParagraph, false, 800),
			},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("form modal failed")
	}
}

func textInputRow(id, label string, style discordgo.TextInputStyle, required bool, maxLen int) discordgo.MessageComponent {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:  id,
			Label:     label,
			Style:     style,
			Required:  required,
			MaxLength: maxLen,
		},
	}}
}

func (b *Bot) handleFormSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	destID, ok := b.formDests.Get(i.GuildID)
	if !ok {
		respondEphemeral(s, i, "⚠️ No review channel configured. Ask an admin to run **/recruitpanel**.")
		return
	}
	applicantID := interactionUserID(i)
	deferEphemeral(s, i)

	field := func(id, name string) *discordgo.MessageEmbedField {
		v := modalValue(i, id)
		if v == "" {
			v = "—"
		}
		if len(v) > 1024 {
			v = v[:1024]
		}
		return &discordgo.MessageEmbedField{Name: name, Value: v, Inline: false}
	}
	embed := &discordgo.MessageEmbed{
		Title: "📥 New staff application",
		Color: 0x3498db,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👤 Applicant", Value: fmt.Sprintf("<@%s> (`%s`)", applicantID, applicantID)},
			field("name", "🪪 Name"),
			field("age", "🎂 Age"),
			field("availability", "🕐 Availability"),
			field("motivation", "🧭 Motivation"),
			field("experience", "💼 Experience"),
		},
	}
	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{Label: "✅ Approve", Style: discordgo.SuccessButton, CustomID: formApproveID},
			discordgo.Button{Label: "❌ Reject", Style: discordgo.DangerButton, CustomID: formRejectID},
		}},
	}
	msg, err := s.ChannelMessageSendComplex(destID, &discordgo.MessageSend{
		Embed:      embed,
		Components: components,
	})
	if err != nil {
		log.Error().Err(err).Msg("candidature post failed")
		followUp(s, i, "❌ Could not submit your application. Ping an administrator.")
		return
	}
	b.candidatures.Put(msg.ID, candidature{GuildID: i.GuildID, UserID: applicantID})

	followUp(s, i, "✅ Application submitted! You'll get the result by DM.")
	b.record(i.GuildID, "Staff application submitted", applicantID, "", "Message: "+msg.ID)
}

func (b *Bot) handleFormDecision(s *discordgo.Session, i *discordgo.InteractionCreate, approved bool) {
	if !isAdmin(i) {
		respondDenied(s, i, "Only administrators decide applications.")
		return
	}
	cand, ok := b.candidatures.Get(i.Message.ID)
	if !ok {
		respondNotFound(s, i, "application")
		return
	}
	if cand.GuildID != i.GuildID {
		respondErr(s, i, "This application belongs to another server.")
		return
	}
	actorID := interactionUserID(i)
	deferEphemeral(s, i)

	var dm *discordgo.MessageEmbed
	if approved {
		dm = &discordgo.MessageEmbed{
			Title:       "✨ Application result — approved!",
			Description: "Congratulations! Your staff application was **approved**. The team will contact you shortly.",
			Color:       0x57f287,
		}
	} else {
		dm = &discordgo.MessageEmbed{
			Title:       "Application result — rejected",
			Description: "Your staff application was **rejected** for now. Thanks for your interest — you may try again later.",
			Color:       0xed4245,
		}
	}
	if ch, err := s.UserChannelCreate(cand.UserID); err == nil {
		if _, err := s.ChannelMessageSendEmbed(ch.ID, dm); err != nil {
			log.Warn().Err(err).Str("user", cand.UserID).Msg("decision DM failed")
		}
	}

	if approved && b.cfg.RecruitRoleID != "" {
		if err := s.GuildMemberRoleAdd(i.GuildID, cand.UserID, b.cfg.RecruitRoleID); err != nil {
			log.Warn().Err(err).Str("user", cand.UserID).Msg("recruit role grant failed")
		}
	}

	// Mark the decision on the candidature embed and drop the buttons.
	if len(i.Message.Embeds) > 0 {
		decided := i.Message.Embeds[0]
		verdict := fmt.Sprintf("Approved by <@%s>", actorID)
		decided.Color = 0x57f287
		if !approved {
			verdict = fmt.Sprintf("Rejected by <@%s>", actorID)
			decided.Color = 0xed4245
		}
		decided.Fields = append(decided.Fields, &discordgo.MessageEmbedField{Name: "Decision", Value: verdict})
		embeds := []*discordgo.MessageEmbed{decided}
		empty := []discordgo.MessageComponent{}
		if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			ID:         i.Message.ID,
			Channel:    i.ChannelID,
			Embeds:     &embeds,
			Components: &empty,
		}); err != nil {
			log.Warn().Err(err).Msg("candidature embed edit failed")
		}
	}

	action := "Staff application rejected"
	if approved {
		action = "Staff application approved"
	}
	followUp(s, i, "✅ Decision recorded.")
	b.record(i.GuildID, action, actorID, cand.UserID, "Message: "+i.Message.ID)
}
