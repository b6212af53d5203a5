package bot

import "github.com/bwmarrin/discordgo"

func adminOnly(cmd *discordgo.ApplicationCommand) *discordgo.ApplicationCommand {
	perm := int64(discordgo.PermissionAdministrator)
	dm := false
	cmd.DefaultMemberPermissions = &perm
	cmd.DMPermission = &dm
	return cmd
}

// Commands returns the full slash-command set for bulk registration.
func (b *Bot) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "poll",
			Description: "Create a button poll (2-5 options)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "question", Description: "The question to ask", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "options", Description: "Semicolon-separated options, e.g. A;B;C", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "duration", Description: "How long the poll runs (e.g. 2m, 1h30m)", Required: false},
			},
		},
		{
			Name:        "giveaway",
			Description: "Start a giveaway with an entry button",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "prize", Description: "What is being given away", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "duration", Description: "Duration (e.g. 10m, 2h, 1d30m)", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "winners", Description: "Number of winners (default 1)", Required: false},
				{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Channel to post in (default: here)", Required: false},
			},
		},
		adminOnly(&discordgo.ApplicationCommand{
			Name:        "reroll",
			Description: "Redraw winners for a finished giveaway",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "message_link", Description: "Link to the giveaway message", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "winners", Description: "Number of new winners (default 1)", Required: false},
			},
		}),
		{
			Name:        "ticketpanel",
			Description: "Publish the open-ticket panel",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Channel to post in (default: here)", Required: false},
			},
		},
		adminOnly(&discordgo.ApplicationCommand{
			Name:        "auditlog",
			Description: "Enable or disable the local audit-log channel",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "enabled", Description: "true to enable local logs", Required: true},
			},
		}),
		{
			Name:        "kick",
			Description: "Kick a member",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Who to kick", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason", Required: false},
			},
		},
		{
			Name:        "ban",
			Description: "Ban a user by mention or id",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "user", Description: "Mention or numeric id", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason", Required: false},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "delete_hours", Description: "Delete recent messages (0-24h)", Required: false},
			},
		},
		{
			Name:        "unban",
			Description: "Unban a user by id",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "user_id", Description: "Numeric user id", Required: true},
			},
		},
		{
			Name:        "timeout",
			Description: "Time a member out",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Target", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "minutes", Description: "Duration in minutes (1-40320)", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "reason", Description: "Reason", Required: false},
			},
		},
		{
			Name:        "untimeout",
			Description: "Remove a member's timeout",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Target", Required: true},
			},
		},
		{
			Name:        "clear",
			Description: "Bulk-delete recent messages in this channel",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "count", Description: "How many messages (1-200)", Required: true},
			},
		},
		{Name: "lockchannel", Description: "Stop members from posting in this channel"},
		{Name: "unlockchannel", Description: "Allow members to post in this channel again"},
		{
			Name:        "slowmode",
			Description: "Set this channel's slowmode (0 disables)",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "seconds", Description: "0-21600", Required: true},
			},
		},
		{
			Name:        "announce",
			Description: "Post an announcement embed",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "Announcement title", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "message", Description: "Announcement body", Required: true},
				{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Channel to post in (default: here)", Required: false},
			},
		},
		adminOnly(&discordgo.ApplicationCommand{
			Name:        "recruitpanel",
			Description: "Publish the staff-recruitment panel and set the review channel",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionChannel, Name: "destination", Description: "Channel that receives candidatures", Required: true},
				{Type: discordgo.ApplicationCommandOptionChannel, Name: "panel", Description: "Channel for the panel (default: here)", Required: false},
			},
		}),
		adminOnly(&discordgo.ApplicationCommand{
			Name:        "setupvips",
			Description: "Create or refresh the VIP role set and channels",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionBoolean, Name: "channels", Description: "Also provision the VIP channels", Required: false},
			},
		}),
		adminOnly(&discordgo.ApplicationCommand{
			Name:        "organizeroles",
			Description: "Reorder roles below the bot by moderation permissions",
		}),
		{
			Name:        "remind",
			Description: "Get pinged after a delay",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "in", Description: "When (e.g. 10m, 1h, 2h30m)", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "text", Description: "Reminder text", Required: true},
			},
		},
		{
			Name:        "suggest",
			Description: "Post a formatted suggestion",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "text", Description: "Your suggestion", Required: true},
			},
		},
		{Name: "luck", Description: "A random number from 1 to 100"},
		{
			Name:        "play",
			Description: "Play a track in voice chat",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "query", Description: "YouTube link", Required: true},
			},
		},
		{Name: "skip", Description: "Skip the current track"},
		{Name: "stopmusic", Description: "Stop playback and leave voice"},
		{Name: "pause", Description: "Pause the current track"},
		{Name: "resume", Description: "Resume a paused track"},
		{Name: "leave", Description: "Disconnect from the voice channel"},
		adminOnly(&discordgo.ApplicationCommand{
			Name:        "adminpanel",
			Description: "Publish the staff moderation panel",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "Channel to post in (default: here)", Required: false},
			},
		}),
		adminOnly(&discordgo.ApplicationCommand{
			Name:        "chatperms",
			Description: "Apply a permission preset to a batch of channels",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type: discordgo.ApplicationCommandOptionString, Name: "preset",
					Description: "Permission layout to apply", Required: true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Read-only", Value: "readonly"},
						{Name: "Unlock", Value: "unlock"},
						{Name: "Private", Value: "private"},
					},
				},
				{Type: discordgo.ApplicationCommandOptionString, Name: "channels", Description: "Channel mentions, e.g. #general #rules", Required: true},
			},
		}),
		{
			Name:        "clearuser",
			Description: "Delete one member's messages from the recent history",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Whose messages to delete", Required: true},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "count", Description: "Messages to search through (1-200)", Required: true},
			},
		},
		adminOnly(&discordgo.ApplicationCommand{
			Name:        "say",
			Description: "Send a message as the bot, here or as DMs",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "message", Description: "What to send", Required: true},
				{Type: discordgo.ApplicationCommandOptionString, Name: "user_ids", Description: "Comma-separated ids to DM instead", Required: false},
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "times", Description: "Repetitions (1-5)", Required: false},
			},
		}),
		{
			Name:        "calc",
			Description: "Evaluate an arithmetic expression",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionString, Name: "expression", Description: "e.g. (2+3)*4", Required: true},
			},
		},
		{Name: "now", Description: "Show the current time and timestamp markups"},
		{
			Name:        "avatar",
			Description: "Show a member's avatar",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Whose avatar (default: you)", Required: false},
			},
		},
		{
			Name:        "banner",
			Description: "Show a member's profile banner",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionUser, Name: "member", Description: "Whose banner (default: you)", Required: false},
			},
		},
		{Name: "servericon", Description: "Show this server's icon"},
	}
}
