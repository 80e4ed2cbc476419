package mapper

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ex-mtbot/pkg/botapi"
)

func testCollector() *Collector {
	return NewCollector(42).Add(
		[]tg.UserClass{
			&tg.User{ID: 42, Bot: true, FirstName: "Relay", Username: "relay_bot", AccessHash: 4242},
			&tg.User{ID: 7, FirstName: "Ada", LastName: "Lovelace", Username: "ada", AccessHash: 77},
		},
		[]tg.ChatClass{
			&tg.Channel{ID: 555, Title: "News", Broadcast: true, AccessHash: 5555},
			&tg.Channel{ID: 666, Title: "Forum", Megagroup: true, Forum: true, AccessHash: 6666},
			&tg.Chat{ID: 123, Title: "Friends"},
		},
	)
}

func TestIsBanned(t *testing.T) {
	t.Parallel()

	kicked := &tg.ChannelParticipantBanned{Peer: &tg.PeerUser{UserID: 7}, BannedRights: tg.ChatBannedRights{ViewMessages: true}}
	restricted := &tg.ChannelParticipantBanned{Peer: &tg.PeerUser{UserID: 7}, BannedRights: tg.ChatBannedRights{SendPlain: true}}

	assert.True(t, IsBanned(kicked))
	assert.False(t, IsBanned(restricted))
	assert.False(t, IsBanned(&tg.ChannelParticipant{UserID: 7}))
	assert.False(t, IsBanned(&tg.ChannelParticipantLeft{Peer: &tg.PeerUser{UserID: 7}}))
}

func TestChannelMember(t *testing.T) {
	t.Parallel()

	collector := testCollector()

	tests := []struct {
		name        string
		participant tg.ChannelParticipantClass
		status      botapi.ChatMemberStatus
		check       func(t *testing.T, member botapi.ChatMember)
	}{
		{
			name:        "creator",
			participant: &tg.ChannelParticipantCreator{UserID: 7, Rank: "owner", AdminRights: tg.ChatAdminRights{AddAdmins: true}},
			status:      botapi.ChatMemberStatusCreator,
			check: func(t *testing.T, member botapi.ChatMember) {
				require.NotNil(t, member.Rights)
				assert.True(t, member.Rights.CanPromoteMembers)
				assert.Equal(t, "owner", member.CustomTitle)
				assert.True(t, member.IsAdministrator())
			},
		},
		{
			name:        "kicked forever",
			participant: &tg.ChannelParticipantBanned{Peer: &tg.PeerUser{UserID: 7}, BannedRights: tg.ChatBannedRights{ViewMessages: true, UntilDate: foreverDate}},
			status:      botapi.ChatMemberStatusKicked,
			check: func(t *testing.T, member botapi.ChatMember) {
				assert.Zero(t, member.UntilDate)
				assert.True(t, member.HasLeft())
			},
		},
		{
			name: "restricted member",
			participant: &tg.ChannelParticipantBanned{
				Peer:         &tg.PeerUser{UserID: 7},
				BannedRights: tg.ChatBannedRights{SendPlain: true, UntilDate: 1_800_000_000},
			},
			status: botapi.ChatMemberStatusRestricted,
			check: func(t *testing.T, member botapi.ChatMember) {
				require.NotNil(t, member.Permissions)
				assert.True(t, member.IsMember)
				assert.False(t, member.Permissions.CanSendMessages)
				assert.True(t, member.Permissions.CanSendPhotos)
				assert.EqualValues(t, 1_800_000_000, member.UntilDate)
			},
		},
		{
			name:        "left",
			participant: &tg.ChannelParticipantLeft{Peer: &tg.PeerUser{UserID: 7}},
			status:      botapi.ChatMemberStatusLeft,
		},
		{
			name:        "member",
			participant: &tg.ChannelParticipant{UserID: 7},
			status:      botapi.ChatMemberStatusMember,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			member := ChannelMember(testCase.participant, collector)
			assert.Equal(t, testCase.status, member.Status)
			assert.Equal(t, int64(7), member.User.ID)
			assert.Equal(t, "Ada", member.User.FirstName)
			if testCase.check != nil {
				testCase.check(t, member)
			}
		})
	}
}

func TestChannelMemberUpdated(t *testing.T) {
	t.Parallel()

	collector := testCollector()
	update := &tg.UpdateChannelParticipant{
		ChannelID: 666,
		Date:      1_700_000_000,
		ActorID:   7,
		UserID:    42,
	}
	update.SetNewParticipant(&tg.ChannelParticipantAdmin{UserID: 42, AdminRights: tg.ChatAdminRights{DeleteMessages: true}})

	projected, ok := Update(update, collector)
	require.True(t, ok)
	require.NotNil(t, projected.MyChatMember)
	assert.Nil(t, projected.ChatMember)

	changed := projected.MyChatMember
	assert.Equal(t, int64(-1000000000666), changed.Chat.ID)
	assert.Equal(t, botapi.ChatTypeSupergroup, changed.Chat.Type)
	assert.Equal(t, botapi.ChatMemberStatusLeft, changed.OldChatMember.Status)
	assert.Equal(t, botapi.ChatMemberStatusAdministrator, changed.NewChatMember.Status)
	assert.True(t, changed.NewChatMember.Rights.CanDeleteMessages)
}

func TestPrivateMemberUpdated(t *testing.T) {
	t.Parallel()

	collector := testCollector()
	changed := PrivateMemberUpdated(&tg.UpdateBotStopped{UserID: 7, Date: 10, Stopped: true}, collector)

	assert.Equal(t, botapi.ChatMemberStatusMember, changed.OldChatMember.Status)
	assert.Equal(t, botapi.ChatMemberStatusKicked, changed.NewChatMember.Status)
	assert.Equal(t, int64(42), changed.NewChatMember.User.ID)
	assert.Equal(t, botapi.ChatTypePrivate, changed.Chat.Type)
}

func TestInviteLink(t *testing.T) {
	t.Parallel()

	exported := &tg.ChatInviteExported{Link: "https://t.me/+abc", AdminID: 42, Title: "promo", RequestNeeded: true}
	exported.SetUsageLimit(10)
	exported.SetExpireDate(1_900_000_000)

	link := InviteLink(exported, testCollector())
	require.NotNil(t, link)
	assert.Equal(t, "https://t.me/+abc", link.InviteLink)
	assert.Equal(t, "relay_bot", link.Creator.Username)
	assert.Equal(t, 10, link.MemberLimit)
	assert.EqualValues(t, 1_900_000_000, link.ExpireDate)
	assert.True(t, link.CreatesJoinRequest)

	assert.Nil(t, InviteLink(&tg.ChatInvitePublicJoinRequests{}, testCollector()))
}
