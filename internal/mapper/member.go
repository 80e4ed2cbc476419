package mapper

import (
	"math"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// foreverDate is the until_date sentinel used for permanent restrictions.
const foreverDate = math.MaxInt32

// basicGroupAdminRights are the rights every basic group administrator holds.
var basicGroupAdminRights = botapi.ChatAdministratorRights{
	CanManageChat:       true,
	CanDeleteMessages:   true,
	CanManageVideoChats: true,
	CanRestrictMembers:  true,
	CanChangeInfo:       true,
	CanInviteUsers:      true,
	CanPinMessages:      true,
}

// IsBanned reports whether a participant is removed from the chat and may
// not rejoin. Restricted members are not banned.
func IsBanned(participant tg.ChannelParticipantClass) bool {
	banned, ok := participant.(*tg.ChannelParticipantBanned)
	if !ok {
		return false
	}

	return banned.BannedRights.ViewMessages
}

// ChannelMember projects a supergroup or channel participant.
func ChannelMember(participant tg.ChannelParticipantClass, collector *Collector) botapi.ChatMember {
	switch typed := participant.(type) {
	case *tg.ChannelParticipantCreator:
		rights := AdministratorRightsFromAdminRights(AdminRightsFromNative(typed.AdminRights))
		return botapi.ChatMember{
			Status:      botapi.ChatMemberStatusCreator,
			User:        *UserByID(collector, typed.UserID),
			CustomTitle: typed.Rank,
			Rights:      &rights,
		}
	case *tg.ChannelParticipantAdmin:
		rights := AdministratorRightsFromAdminRights(AdminRightsFromNative(typed.AdminRights))
		return botapi.ChatMember{
			Status:      botapi.ChatMemberStatusAdministrator,
			User:        *UserByID(collector, typed.UserID),
			CustomTitle: typed.Rank,
			CanBeEdited: typed.CanEdit,
			Rights:      &rights,
		}
	case *tg.ChannelParticipantBanned:
		return bannedMember(typed, collector)
	case *tg.ChannelParticipantLeft:
		return botapi.ChatMember{Status: botapi.ChatMemberStatusLeft, User: peerMember(typed.Peer, collector)}
	case *tg.ChannelParticipant:
		return botapi.ChatMember{Status: botapi.ChatMemberStatusMember, User: *UserByID(collector, typed.UserID)}
	case *tg.ChannelParticipantSelf:
		return botapi.ChatMember{Status: botapi.ChatMemberStatusMember, User: *UserByID(collector, typed.UserID)}
	default:
		return botapi.ChatMember{Status: botapi.ChatMemberStatusLeft}
	}
}

func bannedMember(participant *tg.ChannelParticipantBanned, collector *Collector) botapi.ChatMember {
	member := botapi.ChatMember{
		User:      peerMember(participant.Peer, collector),
		UntilDate: untilDate(participant.BannedRights.UntilDate),
	}
	if participant.BannedRights.ViewMessages {
		member.Status = botapi.ChatMemberStatusKicked
		return member
	}

	permissions := PermissionsFromBannedRights(BannedRightsFromNative(participant.BannedRights))
	member.Status = botapi.ChatMemberStatusRestricted
	member.IsMember = !participant.Left
	member.Permissions = &permissions

	return member
}

func untilDate(date int) int64 {
	if date <= 0 || date >= foreverDate {
		return 0
	}

	return int64(date)
}

func peerMember(peer tg.PeerClass, collector *Collector) botapi.User {
	native, ok := codec.PeerFromTL(peer)
	if !ok {
		return botapi.User{}
	}
	if native.Kind == codec.PeerUser {
		return *UserByID(collector, native.ID)
	}

	chat := ChatFromPeer(peer, collector)
	return botapi.User{ID: chat.ID, FirstName: chat.Title}
}

// GroupMember projects a basic group participant.
func GroupMember(participant tg.ChatParticipantClass, collector *Collector) botapi.ChatMember {
	switch typed := participant.(type) {
	case *tg.ChatParticipantCreator:
		rights := basicGroupAdminRights
		rights.CanPromoteMembers = true
		return botapi.ChatMember{
			Status: botapi.ChatMemberStatusCreator,
			User:   *UserByID(collector, typed.UserID),
			Rights: &rights,
		}
	case *tg.ChatParticipantAdmin:
		rights := basicGroupAdminRights
		return botapi.ChatMember{
			Status:      botapi.ChatMemberStatusAdministrator,
			User:        *UserByID(collector, typed.UserID),
			CanBeEdited: typed.InviterID == collector.Self(),
			Rights:      &rights,
		}
	case *tg.ChatParticipant:
		return botapi.ChatMember{Status: botapi.ChatMemberStatusMember, User: *UserByID(collector, typed.UserID)}
	default:
		return botapi.ChatMember{Status: botapi.ChatMemberStatusLeft}
	}
}

// LeftMember is the member value used when a participant record is absent.
func LeftMember(collector *Collector, userID int64) botapi.ChatMember {
	return botapi.ChatMember{Status: botapi.ChatMemberStatusLeft, User: *UserByID(collector, userID)}
}

// InviteLink projects an exported invite. Non exported variants yield nil.
func InviteLink(invite tg.ExportedChatInviteClass, collector *Collector) *botapi.ChatInviteLink {
	exported, ok := invite.(*tg.ChatInviteExported)
	if !ok {
		return nil
	}

	link := &botapi.ChatInviteLink{
		InviteLink:         exported.Link,
		Creator:            *UserByID(collector, exported.AdminID),
		CreatesJoinRequest: exported.RequestNeeded,
		IsPrimary:          exported.Permanent,
		IsRevoked:          exported.Revoked,
		Name:               exported.Title,
	}
	if expire, ok := exported.GetExpireDate(); ok {
		link.ExpireDate = int64(expire)
	}
	if limit, ok := exported.GetUsageLimit(); ok {
		link.MemberLimit = limit
	}
	if requested, ok := exported.GetRequested(); ok {
		link.PendingJoinRequestCount = requested
	}

	return link
}

// ChannelMemberUpdated projects a supergroup or channel participant change.
func ChannelMemberUpdated(update *tg.UpdateChannelParticipant, collector *Collector) *botapi.ChatMemberUpdated {
	chat := ChatFromPeer(&tg.PeerChannel{ChannelID: update.ChannelID}, collector)
	result := &botapi.ChatMemberUpdated{
		Chat:                    chat,
		From:                    *UserByID(collector, update.ActorID),
		Date:                    int64(update.Date),
		OldChatMember:           LeftMember(collector, update.UserID),
		NewChatMember:           LeftMember(collector, update.UserID),
		InviteLink:              InviteLink(update.Invite, collector),
		ViaChatFolderInviteLink: update.ViaChatlist,
	}
	if previous, ok := update.GetPrevParticipant(); ok {
		result.OldChatMember = ChannelMember(previous, collector)
	}
	if current, ok := update.GetNewParticipant(); ok {
		result.NewChatMember = ChannelMember(current, collector)
	}

	return result
}

// GroupMemberUpdated projects a basic group participant change.
func GroupMemberUpdated(update *tg.UpdateChatParticipant, collector *Collector) *botapi.ChatMemberUpdated {
	chat := ChatFromPeer(&tg.PeerChat{ChatID: update.ChatID}, collector)
	result := &botapi.ChatMemberUpdated{
		Chat:          chat,
		From:          *UserByID(collector, update.ActorID),
		Date:          int64(update.Date),
		OldChatMember: LeftMember(collector, update.UserID),
		NewChatMember: LeftMember(collector, update.UserID),
		InviteLink:    InviteLink(update.Invite, collector),
	}
	if previous, ok := update.GetPrevParticipant(); ok {
		result.OldChatMember = GroupMember(previous, collector)
	}
	if current, ok := update.GetNewParticipant(); ok {
		result.NewChatMember = GroupMember(current, collector)
	}

	return result
}

// PrivateMemberUpdated projects a user blocking or unblocking the bot.
func PrivateMemberUpdated(update *tg.UpdateBotStopped, collector *Collector) *botapi.ChatMemberUpdated {
	user := *UserByID(collector, update.UserID)
	self := *UserByID(collector, collector.Self())
	blocked := botapi.ChatMember{Status: botapi.ChatMemberStatusKicked, User: self}
	active := botapi.ChatMember{Status: botapi.ChatMemberStatusMember, User: self}

	result := &botapi.ChatMemberUpdated{
		Chat:          ChatFromPeer(&tg.PeerUser{UserID: update.UserID}, collector),
		From:          user,
		Date:          int64(update.Date),
		OldChatMember: blocked,
		NewChatMember: active,
	}
	if update.Stopped {
		result.OldChatMember, result.NewChatMember = active, blocked
	}

	return result
}

// JoinRequest projects a pending join request.
func JoinRequest(update *tg.UpdateBotChatInviteRequester, collector *Collector) *botapi.ChatJoinRequest {
	return &botapi.ChatJoinRequest{
		Chat:       ChatFromPeer(update.Peer, collector),
		From:       *UserByID(collector, update.UserID),
		UserChatID: update.UserID,
		Date:       int64(update.Date),
		Bio:        update.About,
		InviteLink: InviteLink(update.Invite, collector),
	}
}
