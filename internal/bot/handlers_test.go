package bot

import (
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JKZIMgamer/lzim-bot/internal/audit"
	"github.com/JKZIMgamer/lzim-bot/internal/capability"
	"github.com/JKZIMgamer/lzim-bot/internal/config"
	"github.com/JKZIMgamer/lzim-bot/internal/sched"
	"github.com/JKZIMgamer/lzim-bot/internal/session"
)

// recordingTransport answers every REST call with an empty object and keeps
// the request lines, so handler tests can assert which endpoints were hit
// without a gateway.
type recordingTransport struct {
	mu   sync.Mutex
	hits []string
}

func (rt *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rt.mu.Lock()
	rt.hits = append(rt.hits, req.Method+" "+req.URL.Path)
	rt.mu.Unlock()
	return &http.Response{
		StatusCode: http.StatusOK,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader("{}")),
	}, nil
}

func (rt *recordingTransport) requests() []string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return append([]string(nil), rt.hits...)
}

func newRecordedSession(t *testing.T) (*discordgo.Session, *recordingTransport) {
	t.Helper()
	s, err := discordgo.New("Bot test")
	require.NoError(t, err)
	rt := &recordingTransport{}
	s.Client = &http.Client{Transport: rt}
	return s, rt
}

func newTestBot() *Bot {
	return New(&config.Config{}, capability.NewRoleMap([]string{"staff-role"}, nil),
		audit.NullSink{}, nil, sched.NewManual())
}

func commandInteraction(name, guildID string, m *discordgo.Member, opts []*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:    discordgo.InteractionApplicationCommand,
		GuildID: guildID,
		Member:  m,
		Data:    discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
	}}
}

func modalInteraction(customID, guildID, channelID string, m *discordgo.Member, fieldID, value string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Type:      discordgo.InteractionModalSubmit,
		GuildID:   guildID,
		ChannelID: channelID,
		Member:    m,
		Data: discordgo.ModalSubmitInteractionData{
			CustomID: customID,
			Components: []discordgo.MessageComponent{
				&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: fieldID, Value: value},
				}},
			},
		},
	}}
}

// A reroll issued from one guild must verify presence against the guild the
// giveaway actually ran in.
func TestRerollChecksPresenceInHomeGuild(t *testing.T) {
	b := newTestBot()
	s, rt := newRecordedSession(t)

	ga := session.NewGiveaway("Nitro", "host", 1)
	ga.GuildID, ga.ChannelID, ga.MessageID = "900", "222", "333"
	require.NoError(t, ga.Join("1001"))
	require.NoError(t, ga.Join("1002"))
	_, err := ga.Finalize(func(string) bool { return true })
	require.NoError(t, err)
	b.giveaways.Put("333", ga)

	admin := &discordgo.Member{
		User:        &discordgo.User{ID: "42"},
		Permissions: discordgo.PermissionAdministrator,
	}
	i := commandInteraction("reroll", "777", admin, []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "message_link", Type: discordgo.ApplicationCommandOptionString,
			Value: "https://discord.com/channels/900/222/333"},
	})
	b.cmdReroll(s, i)

	var fetches []string
	for _, hit := range rt.requests() {
		if strings.Contains(hit, "/members/") {
			fetches = append(fetches, hit)
		}
	}
	require.NotEmpty(t, fetches, "presence must be verified before drawing")
	for _, hit := range fetches {
		assert.Contains(t, hit, "/guilds/900/")
		assert.NotContains(t, hit, "/guilds/777/")
	}
}

// The add-user modal submit must enforce the staff capability itself; the
// button that opened the modal is not a sufficient gate.
func TestTicketAddUserSubmitRequiresStaff(t *testing.T) {
	b := newTestBot()
	s, rt := newRecordedSession(t)
	b.tickets.Put("555", session.NewTicket("t1", "owner", "555"))

	outsider := &discordgo.Member{User: &discordgo.User{ID: "99"}, Roles: []string{"member-role"}}
	b.handleTicketAddUserSubmit(s, modalInteraction(ticketAddUserModalID, "900", "555", outsider, "user_id", "1234"))
	for _, hit := range rt.requests() {
		assert.NotContains(t, hit, "/permissions/", "non-staff submit must not touch overwrites")
	}

	staff := &discordgo.Member{User: &discordgo.User{ID: "7"}, Roles: []string{"staff-role"}}
	b.handleTicketAddUserSubmit(s, modalInteraction(ticketAddUserModalID, "900", "555", staff, "user_id", "1234"))
	applied := false
	for _, hit := range rt.requests() {
		if strings.Contains(hit, "/channels/555/permissions/1234") {
			applied = true
		}
	}
	assert.True(t, applied, "staff submit should apply the overwrite")
}

// Admin-panel modal submits repeat the staff check; a forged submit from a
// plain member must not reach the ban endpoint.
func TestAdminBanSubmitRequiresStaff(t *testing.T) {
	b := newTestBot()
	s, rt := newRecordedSession(t)

	outsider := &discordgo.Member{User: &discordgo.User{ID: "99"}, Roles: []string{"member-role"}}
	b.handleAdminBanSubmit(s, modalInteraction(adminBanModalID, "900", "555", outsider, "user_id", "1234"))
	for _, hit := range rt.requests() {
		assert.NotContains(t, hit, "/bans/")
	}

	staff := &discordgo.Member{User: &discordgo.User{ID: "7"}, Roles: []string{"staff-role"}}
	b.handleAdminBanSubmit(s, modalInteraction(adminBanModalID, "900", "555", staff, "user_id", "1234"))
	banned := false
	for _, hit := range rt.requests() {
		if strings.Contains(hit, "/guilds/900/bans/1234") {
			banned = true
		}
	}
	assert.True(t, banned)
}

func TestChatPermsParsesChannelMentions(t *testing.T) {
	b := newTestBot()
	s, rt := newRecordedSession(t)

	admin := &discordgo.Member{
		User:        &discordgo.User{ID: "42"},
		Permissions: discordgo.PermissionAdministrator,
	}
	i := commandInteraction("chatperms", "900", admin, []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "preset", Type: discordgo.ApplicationCommandOptionString, Value: "readonly"},
		{Name: "channels", Type: discordgo.ApplicationCommandOptionString, Value: "please update <#111> and <#222>"},
	})
	b.cmdChatPerms(s, i)

	for _, id := range []string{"111", "222"} {
		touched := false
		for _, hit := range rt.requests() {
			if strings.Contains(hit, "/channels/"+id+"/permissions/") {
				touched = true
			}
		}
		assert.True(t, touched, "channel %s should get an overwrite", id)
	}
}
