package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ex-mtbot/pkg/botapi"
)

func TestToBannedRights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		permissions botapi.ChatPermissions
		independent bool
		banned      []BannedRights
		allowed     []BannedRights
	}{
		{
			name:        "everything granted",
			permissions: botapi.AllPermissions(),
			allowed:     []BannedRights{BanSendPlain, BanSendMedia, BanSendPhotos, banOtherMessages, BanEmbedLinks},
		},
		{
			name:   "nothing granted",
			banned: []BannedRights{BanSendPlain, BanSendMedia, banAllMedia, BanChangeInfo, BanInviteUsers, BanPinMessages},
		},
		{
			name:        "other messages imply sending messages",
			permissions: botapi.ChatPermissions{CanSendOtherMessages: true},
			banned:      []BannedRights{BanSendPhotos, BanSendPolls, BanEmbedLinks},
			allowed:     []BannedRights{BanSendPlain, BanSendStickers, BanSendGifs, BanSendGames, BanSendInline},
		},
		{
			name:        "web page previews imply sending messages",
			permissions: botapi.ChatPermissions{CanAddWebPagePreviews: true},
			allowed:     []BannedRights{BanSendPlain, BanEmbedLinks},
			banned:      []BannedRights{BanSendDocs},
		},
		{
			name:        "denied messages deny media",
			permissions: botapi.ChatPermissions{CanSendPhotos: true, CanSendPolls: true, CanSendAudios: true},
			banned:      []BannedRights{BanSendPlain, BanSendPhotos, BanSendPolls, BanSendAudios, BanSendMedia},
		},
		{
			name: "denied messages with every other send right",
			permissions: botapi.ChatPermissions{
				CanSendAudios:         true,
				CanSendDocuments:      true,
				CanSendPhotos:         true,
				CanSendVideos:         true,
				CanSendVideoNotes:     true,
				CanSendVoiceNotes:     true,
				CanSendPolls:          true,
				CanSendOtherMessages:  true,
				CanAddWebPagePreviews: true,
			},
			banned: []BannedRights{
				BanSendAudios, BanSendDocs, BanSendPhotos, BanSendVideos,
				BanSendRounds, BanSendVoices, BanSendPolls, BanSendMedia,
			},
			allowed: []BannedRights{BanSendPlain, banOtherMessages, BanEmbedLinks},
		},
		{
			name:        "independent permissions keep media",
			permissions: botapi.ChatPermissions{CanSendPhotos: true, CanSendPolls: true},
			independent: true,
			banned:      []BannedRights{BanSendPlain, BanSendVideos},
			allowed:     []BannedRights{BanSendPhotos, BanSendPolls, BanSendMedia},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			rights := ToBannedRights(testCase.permissions, testCase.independent)
			for _, flag := range testCase.banned {
				assert.True(t, rights.Has(flag), "flag %b should be banned in %b", flag, rights)
			}
			for _, flag := range testCase.allowed {
				assert.Zero(t, rights&flag, "flag %b should be allowed in %b", flag, rights)
			}
			assert.False(t, rights.Has(BanViewMessages))
		})
	}
}

func TestPermissionsFromBannedRights(t *testing.T) {
	t.Parallel()

	assert.Equal(t, botapi.AllPermissions(), PermissionsFromBannedRights(0))
	assert.Equal(t, botapi.ChatPermissions{}, PermissionsFromBannedRights(ToBannedRights(botapi.ChatPermissions{}, false)))

	legacy := PermissionsFromBannedRights(BanSendMessages)
	assert.False(t, legacy.CanSendMessages)
	assert.True(t, legacy.CanSendPhotos)

	partial := PermissionsFromBannedRights(BanSendStickers)
	assert.False(t, partial.CanSendOtherMessages)
}

func TestBannedRightsNativeRoundTrip(t *testing.T) {
	t.Parallel()

	rights := ToBannedRights(botapi.ChatPermissions{CanSendMessages: true, CanSendPolls: true}, true)
	native := rights.Native(1_700_000_000)

	require.Equal(t, 1_700_000_000, native.UntilDate)
	assert.True(t, native.SendPhotos)
	assert.False(t, native.SendPlain)
	assert.False(t, native.SendPolls)
	assert.Equal(t, rights, BannedRightsFromNative(native))
}

func TestAdminRightsRoundTrip(t *testing.T) {
	t.Parallel()

	rights := botapi.ChatAdministratorRights{
		IsAnonymous:         true,
		CanManageChat:       true,
		CanDeleteMessages:   true,
		CanManageVideoChats: true,
		CanRestrictMembers:  true,
		CanPinMessages:      true,
		CanManageTopics:     true,
		CanEditStories:      true,
	}

	flags := ToAdminRights(rights)
	assert.Equal(t, rights, AdministratorRightsFromAdminRights(flags))

	native := flags.Native()
	assert.True(t, native.Anonymous)
	assert.True(t, native.Other)
	assert.True(t, native.BanUsers)
	assert.False(t, native.AddAdmins)
	assert.Equal(t, flags, AdminRightsFromNative(native))
}
