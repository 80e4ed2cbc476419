package mapper

import (
	"github.com/gotd/td/tg"

	"ex-mtbot/pkg/botapi"
)

// BannedRights is the chatBannedRights flag set. Bit positions match the
// native flag numbers.
type BannedRights uint32

// Banned right bits.
const (
	BanViewMessages BannedRights = 1 << 0
	BanSendMessages BannedRights = 1 << 1
	BanSendMedia    BannedRights = 1 << 2
	BanSendStickers BannedRights = 1 << 3
	BanSendGifs     BannedRights = 1 << 4
	BanSendGames    BannedRights = 1 << 5
	BanSendInline   BannedRights = 1 << 6
	BanEmbedLinks   BannedRights = 1 << 7
	BanSendPolls    BannedRights = 1 << 8
	BanChangeInfo   BannedRights = 1 << 10
	BanInviteUsers  BannedRights = 1 << 15
	BanPinMessages  BannedRights = 1 << 17
	BanManageTopics BannedRights = 1 << 18
	BanSendPhotos   BannedRights = 1 << 19
	BanSendVideos   BannedRights = 1 << 20
	BanSendRounds   BannedRights = 1 << 21
	BanSendAudios   BannedRights = 1 << 22
	BanSendVoices   BannedRights = 1 << 23
	BanSendDocs     BannedRights = 1 << 24
	BanSendPlain    BannedRights = 1 << 25
)

// banOtherMessages covers stickers, GIFs, games and inline bots.
const banOtherMessages = BanSendStickers | BanSendGifs | BanSendGames | BanSendInline

// banAllMedia is every granular media right. SendMedia is set when all of
// them are banned.
const banAllMedia = BanSendPhotos | BanSendVideos | BanSendRounds | BanSendAudios |
	BanSendVoices | BanSendDocs | BanSendPolls | banOtherMessages | BanEmbedLinks

// Has reports whether every bit of flag is set.
func (r BannedRights) Has(flag BannedRights) bool {
	return r&flag == flag
}

// ToBannedRights encodes permissions as banned rights.
//
// Without independent permissions the legacy implications apply first: a
// denied can_send_messages denies the media and poll rights, then granting
// other messages or web page previews grants can_send_messages.
func ToBannedRights(permissions botapi.ChatPermissions, independent bool) BannedRights {
	if !independent {
		permissions = applyLegacyImplications(permissions)
	}

	var rights BannedRights
	ban := func(allowed bool, flag BannedRights) {
		if !allowed {
			rights |= flag
		}
	}
	ban(permissions.CanSendMessages, BanSendPlain)
	ban(permissions.CanSendAudios, BanSendAudios)
	ban(permissions.CanSendDocuments, BanSendDocs)
	ban(permissions.CanSendPhotos, BanSendPhotos)
	ban(permissions.CanSendVideos, BanSendVideos)
	ban(permissions.CanSendVideoNotes, BanSendRounds)
	ban(permissions.CanSendVoiceNotes, BanSendVoices)
	ban(permissions.CanSendPolls, BanSendPolls)
	ban(permissions.CanSendOtherMessages, banOtherMessages)
	ban(permissions.CanAddWebPagePreviews, BanEmbedLinks)
	ban(permissions.CanChangeInfo, BanChangeInfo)
	ban(permissions.CanInviteUsers, BanInviteUsers)
	ban(permissions.CanPinMessages, BanPinMessages)
	ban(permissions.CanManageTopics, BanManageTopics)
	if rights.Has(banAllMedia) {
		rights |= BanSendMedia
	}

	return rights
}

func applyLegacyImplications(permissions botapi.ChatPermissions) botapi.ChatPermissions {
	if !permissions.CanSendMessages {
		permissions.CanSendAudios = false
		permissions.CanSendDocuments = false
		permissions.CanSendPhotos = false
		permissions.CanSendVideos = false
		permissions.CanSendVideoNotes = false
		permissions.CanSendVoiceNotes = false
		permissions.CanSendPolls = false
	}
	if permissions.CanSendOtherMessages || permissions.CanAddWebPagePreviews {
		permissions.CanSendMessages = true
	}

	return permissions
}

// PermissionsFromBannedRights decodes banned rights; every right is granted
// unless its bit is set.
func PermissionsFromBannedRights(rights BannedRights) botapi.ChatPermissions {
	return botapi.ChatPermissions{
		CanSendMessages:       !rights.Has(BanSendPlain) && !rights.Has(BanSendMessages),
		CanSendAudios:         !rights.Has(BanSendAudios),
		CanSendDocuments:      !rights.Has(BanSendDocs),
		CanSendPhotos:         !rights.Has(BanSendPhotos),
		CanSendVideos:         !rights.Has(BanSendVideos),
		CanSendVideoNotes:     !rights.Has(BanSendRounds),
		CanSendVoiceNotes:     !rights.Has(BanSendVoices),
		CanSendPolls:          !rights.Has(BanSendPolls),
		CanSendOtherMessages:  rights&banOtherMessages == 0,
		CanAddWebPagePreviews: !rights.Has(BanEmbedLinks),
		CanChangeInfo:         !rights.Has(BanChangeInfo),
		CanInviteUsers:        !rights.Has(BanInviteUsers),
		CanPinMessages:        !rights.Has(BanPinMessages),
		CanManageTopics:       !rights.Has(BanManageTopics),
	}
}

func bannedFields(native *tg.ChatBannedRights) []struct {
	flag  BannedRights
	field *bool
} {
	return []struct {
		flag  BannedRights
		field *bool
	}{
		{BanViewMessages, &native.ViewMessages},
		{BanSendMessages, &native.SendMessages},
		{BanSendMedia, &native.SendMedia},
		{BanSendStickers, &native.SendStickers},
		{BanSendGifs, &native.SendGifs},
		{BanSendGames, &native.SendGames},
		{BanSendInline, &native.SendInline},
		{BanEmbedLinks, &native.EmbedLinks},
		{BanSendPolls, &native.SendPolls},
		{BanChangeInfo, &native.ChangeInfo},
		{BanInviteUsers, &native.InviteUsers},
		{BanPinMessages, &native.PinMessages},
		{BanManageTopics, &native.ManageTopics},
		{BanSendPhotos, &native.SendPhotos},
		{BanSendVideos, &native.SendVideos},
		{BanSendRounds, &native.SendRoundvideos},
		{BanSendAudios, &native.SendAudios},
		{BanSendVoices, &native.SendVoices},
		{BanSendDocs, &native.SendDocs},
		{BanSendPlain, &native.SendPlain},
	}
}

// Native returns the native banned rights valid until untilDate.
func (r BannedRights) Native(untilDate int64) tg.ChatBannedRights {
	native := tg.ChatBannedRights{UntilDate: int(untilDate)}
	for _, entry := range bannedFields(&native) {
		*entry.field = r.Has(entry.flag)
	}

	return native
}

// BannedRightsFromNative decodes native banned rights.
func BannedRightsFromNative(native tg.ChatBannedRights) BannedRights {
	var rights BannedRights
	for _, entry := range bannedFields(&native) {
		if *entry.field {
			rights |= entry.flag
		}
	}

	return rights
}

// AdminRights is the chatAdminRights flag set. Bit positions match the
// native flag numbers.
type AdminRights uint32

// Administrator right bits.
const (
	AdminChangeInfo     AdminRights = 1 << 0
	AdminPostMessages   AdminRights = 1 << 1
	AdminEditMessages   AdminRights = 1 << 2
	AdminDeleteMessages AdminRights = 1 << 3
	AdminBanUsers       AdminRights = 1 << 4
	AdminInviteUsers    AdminRights = 1 << 5
	AdminPinMessages    AdminRights = 1 << 7
	AdminAddAdmins      AdminRights = 1 << 9
	AdminAnonymous      AdminRights = 1 << 10
	AdminManageCall     AdminRights = 1 << 11
	AdminOther          AdminRights = 1 << 12
	AdminManageTopics   AdminRights = 1 << 13
	AdminPostStories    AdminRights = 1 << 14
	AdminEditStories    AdminRights = 1 << 15
	AdminDeleteStories  AdminRights = 1 << 16
)

// Has reports whether every bit of flag is set.
func (r AdminRights) Has(flag AdminRights) bool {
	return r&flag == flag
}

// ToAdminRights encodes administrator rights 1:1.
func ToAdminRights(rights botapi.ChatAdministratorRights) AdminRights {
	var flags AdminRights
	grant := func(allowed bool, flag AdminRights) {
		if allowed {
			flags |= flag
		}
	}
	grant(rights.CanChangeInfo, AdminChangeInfo)
	grant(rights.CanPostMessages, AdminPostMessages)
	grant(rights.CanEditMessages, AdminEditMessages)
	grant(rights.CanDeleteMessages, AdminDeleteMessages)
	grant(rights.CanRestrictMembers, AdminBanUsers)
	grant(rights.CanInviteUsers, AdminInviteUsers)
	grant(rights.CanPinMessages, AdminPinMessages)
	grant(rights.CanPromoteMembers, AdminAddAdmins)
	grant(rights.IsAnonymous, AdminAnonymous)
	grant(rights.CanManageVideoChats, AdminManageCall)
	grant(rights.CanManageChat, AdminOther)
	grant(rights.CanManageTopics, AdminManageTopics)
	grant(rights.CanPostStories, AdminPostStories)
	grant(rights.CanEditStories, AdminEditStories)
	grant(rights.CanDeleteStories, AdminDeleteStories)

	return flags
}

// AdministratorRightsFromAdminRights decodes administrator rights 1:1.
func AdministratorRightsFromAdminRights(flags AdminRights) botapi.ChatAdministratorRights {
	return botapi.ChatAdministratorRights{
		IsAnonymous:         flags.Has(AdminAnonymous),
		CanManageChat:       flags.Has(AdminOther),
		CanDeleteMessages:   flags.Has(AdminDeleteMessages),
		CanManageVideoChats: flags.Has(AdminManageCall),
		CanRestrictMembers:  flags.Has(AdminBanUsers),
		CanPromoteMembers:   flags.Has(AdminAddAdmins),
		CanChangeInfo:       flags.Has(AdminChangeInfo),
		CanInviteUsers:      flags.Has(AdminInviteUsers),
		CanPostMessages:     flags.Has(AdminPostMessages),
		CanEditMessages:     flags.Has(AdminEditMessages),
		CanPinMessages:      flags.Has(AdminPinMessages),
		CanPostStories:      flags.Has(AdminPostStories),
		CanEditStories:      flags.Has(AdminEditStories),
		CanDeleteStories:    flags.Has(AdminDeleteStories),
		CanManageTopics:     flags.Has(AdminManageTopics),
	}
}

func adminFields(native *tg.ChatAdminRights) []struct {
	flag  AdminRights
	field *bool
} {
	return []struct {
		flag  AdminRights
		field *bool
	}{
		{AdminChangeInfo, &native.ChangeInfo},
		{AdminPostMessages, &native.PostMessages},
		{AdminEditMessages, &native.EditMessages},
		{AdminDeleteMessages, &native.DeleteMessages},
		{AdminBanUsers, &native.BanUsers},
		{AdminInviteUsers, &native.InviteUsers},
		{AdminPinMessages, &native.PinMessages},
		{AdminAddAdmins, &native.AddAdmins},
		{AdminAnonymous, &native.Anonymous},
		{AdminManageCall, &native.ManageCall},
		{AdminOther, &native.Other},
		{AdminManageTopics, &native.ManageTopics},
		{AdminPostStories, &native.PostStories},
		{AdminEditStories, &native.EditStories},
		{AdminDeleteStories, &native.DeleteStories},
	}
}

// Native returns the native administrator rights.
func (r AdminRights) Native() tg.ChatAdminRights {
	var native tg.ChatAdminRights
	for _, entry := range adminFields(&native) {
		*entry.field = r.Has(entry.flag)
	}

	return native
}

// AdminRightsFromNative decodes native administrator rights.
func AdminRightsFromNative(native tg.ChatAdminRights) AdminRights {
	var flags AdminRights
	for _, entry := range adminFields(&native) {
		if *entry.field {
			flags |= entry.flag
		}
	}

	return flags
}
