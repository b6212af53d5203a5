package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketClaimOverwrites(t *testing.T) {
	tk := NewTicket("id", "owner", "chan")
	assert.Empty(t, tk.ClaimedBy())

	tk.Claim("staff1")
	assert.Equal(t, "staff1", tk.ClaimedBy())

	// Last writer wins, no unclaim.
	tk.Claim("staff2")
	assert.Equal(t, "staff2", tk.ClaimedBy())
}

func TestTicketLockToggles(t *testing.T) {
	tk := NewTicket("id", "owner", "chan")
	assert.False(t, tk.Locked())

	assert.True(t, tk.ToggleLock())
	assert.True(t, tk.Locked())

	assert.False(t, tk.ToggleLock())
	assert.False(t, tk.Locked())
}

func TestTicketCloseRemovesFromRegistry(t *testing.T) {
	reg := NewRegistry[*Ticket]()
	tk := NewTicket("id", "owner", "chan")
	reg.Put(tk.ChannelID, tk)

	_, ok := reg.Get("chan")
	assert.True(t, ok)

	reg.Remove("chan")
	_, ok = reg.Get("chan")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())
}
