package mapper

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ex-mtbot/pkg/botapi"
)

func TestChatFromChannelFull(t *testing.T) {
	t.Parallel()

	channel := &tg.Channel{
		ID:         321,
		AccessHash: 99,
		Title:      "Ops",
		Megagroup:  true,
		JoinToSend: true,
		Usernames: []tg.Username{
			{Username: "ops_old"},
			{Username: "ops_alt", Active: true},
			{Username: "ops", Active: true, Editable: true},
		},
	}
	channel.SetDefaultBannedRights(tg.ChatBannedRights{SendPlain: true, SendPhotos: true})

	full := &tg.ChannelFull{ID: 321, About: "on call", SlowmodeSeconds: 30, PinnedMsgID: 8}

	projected := ChatFromChannelFull(full, channel)
	chat := projected.Chat
	assert.Equal(t, int64(-1000000000321), chat.ID)
	assert.Equal(t, botapi.ChatTypeSupergroup, chat.Type)
	assert.Equal(t, "ops", chat.Username)
	assert.Equal(t, []string{"ops", "ops_alt"}, chat.ActiveUsernames)
	assert.Equal(t, "on call", chat.Description)
	assert.Equal(t, 30, chat.SlowModeDelay)
	assert.True(t, chat.JoinToSendMessages)
	assert.Equal(t, 8, projected.PinnedMessageID)
	assert.Nil(t, chat.LinkedChatID, "zero linked chat must be absent")

	require.NotNil(t, chat.Permissions)
	assert.False(t, chat.Permissions.CanSendMessages)
	assert.False(t, chat.Permissions.CanSendPhotos)
	assert.True(t, chat.Permissions.CanSendVideos)
	assert.True(t, chat.Permissions.CanInviteUsers)

	full.LinkedChatID = 654
	linked := ChatFromChannelFull(full, channel).Chat
	require.NotNil(t, linked.LinkedChatID)
	assert.Equal(t, int64(-1000000000654), *linked.LinkedChatID)
}

func TestActiveUsernamesKeepPrimaryFirst(t *testing.T) {
	t.Parallel()

	user := &tg.User{
		ID:       7,
		Username: "ada",
		Usernames: []tg.Username{
			{Username: "countess", Active: true},
			{Username: "ADA", Active: true, Editable: true},
			{Username: "lovelace"},
		},
	}

	assert.Equal(t, []string{"ada", "countess"}, userUsernames(user))
	assert.Equal(t, "ada", User(user).Username)
}

func TestChatFromPeerFallbacks(t *testing.T) {
	t.Parallel()

	collector := NewCollector(1)

	assert.Equal(t, botapi.Chat{ID: 5, Type: botapi.ChatTypePrivate}, ChatFromPeer(&tg.PeerUser{UserID: 5}, collector))
	assert.Equal(t, botapi.Chat{ID: -5, Type: botapi.ChatTypeGroup}, ChatFromPeer(&tg.PeerChat{ChatID: 5}, collector))
	assert.Equal(t, int64(-1000000000005), ChatFromPeer(&tg.PeerChannel{ChannelID: 5}, collector).ID)
	assert.Equal(t, "News", ChatFromPeer(&tg.PeerChannel{ChannelID: 555}, testCollector()).Title)
}
