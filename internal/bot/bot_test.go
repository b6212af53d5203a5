package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMessageLink(t *testing.T) {
	id, ch, ok := parseMessageLink("https://discord.com/channels/111/222/333")
	assert.True(t, ok)
	assert.Equal(t, "333", id)
	assert.Equal(t, "222", ch)

	_, _, ok = parseMessageLink("not a link")
	assert.False(t, ok)

	_, _, ok = parseMessageLink("https://discord.com/channels/111/abc/def")
	assert.False(t, ok)

	_, _, ok = parseMessageLink("")
	assert.False(t, ok)
}

func TestMentionList(t *testing.T) {
	assert.Equal(t, "—", mentionList(nil))
	assert.Equal(t, "<@1>", mentionList([]string{"1"}))
	assert.Equal(t, "<@1>, <@2>", mentionList([]string{"1", "2"}))
}

func TestModerationWeight(t *testing.T) {
	assert.Equal(t, 0, moderationWeight(0))
	two := int64(0)
	for _, bit := range moderationPermissionBits[:2] {
		two |= bit
	}
	assert.Equal(t, 2, moderationWeight(two))
}
