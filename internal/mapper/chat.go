package mapper

import (
	"strconv"
	"strings"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// User projects a native user.
func User(user *tg.User) botapi.User {
	if user == nil {
		return botapi.User{}
	}

	hash, _ := user.GetAccessHash()
	result := botapi.User{
		ID:                    user.ID,
		IsBot:                 user.Bot,
		FirstName:             user.FirstName,
		LastName:              user.LastName,
		LanguageCode:          user.LangCode,
		IsPremium:             user.Premium,
		AddedToAttachmentMenu: user.AttachMenuEnabled,
		AccessHash:            hash,
	}
	if names := userUsernames(user); len(names) > 0 {
		result.Username = primaryUsername(user.Username, names)
	}
	if user.Deleted && result.FirstName == "" {
		result.FirstName = "Deleted Account"
	}
	if user.Bot {
		result.CanJoinGroups = !user.BotNochats
		result.CanReadAllGroupMessages = user.BotChatHistory
		result.SupportsInlineQueries = user.BotInlinePlaceholder != ""
	}

	return result
}

// UserByID projects an indexed user, falling back to a bare identifier.
func UserByID(collector *Collector, id int64) *botapi.User {
	if user, ok := collector.User(id); ok {
		projected := User(user)
		return &projected
	}

	return &botapi.User{ID: id}
}

// PrivateChat projects a user as a private chat.
func PrivateChat(user *tg.User) botapi.Chat {
	projected := User(user)

	return botapi.Chat{
		ID:         projected.ID,
		Type:       botapi.ChatTypePrivate,
		Username:   projected.Username,
		FirstName:  projected.FirstName,
		LastName:   projected.LastName,
		AccessHash: projected.AccessHash,
	}
}

// Chat projects a native group, supergroup or channel.
func Chat(chat tg.ChatClass) botapi.Chat {
	switch typed := chat.(type) {
	case *tg.Chat:
		return botapi.Chat{
			ID:    codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerChat, ID: typed.ID}),
			Type:  botapi.ChatTypeGroup,
			Title: typed.Title,
		}
	case *tg.ChatForbidden:
		return botapi.Chat{
			ID:    codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerChat, ID: typed.ID}),
			Type:  botapi.ChatTypeGroup,
			Title: typed.Title,
		}
	case *tg.Channel:
		hash, _ := typed.GetAccessHash()
		result := botapi.Chat{
			ID:         codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerChannel, ID: typed.ID}),
			Type:       channelType(typed.Megagroup || typed.Gigagroup),
			Title:      typed.Title,
			IsForum:    typed.Forum,
			AccessHash: hash,
		}
		if names := channelUsernames(typed); len(names) > 0 {
			result.Username = primaryUsername(typed.Username, names)
		}
		return result
	case *tg.ChannelForbidden:
		return botapi.Chat{
			ID:         codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerChannel, ID: typed.ID}),
			Type:       channelType(typed.Megagroup),
			Title:      typed.Title,
			AccessHash: typed.AccessHash,
		}
	default:
		return botapi.Chat{}
	}
}

// ChatFromPeer projects a peer using the collector, falling back to a chat
// that carries only its identifier and type.
func ChatFromPeer(peer tg.PeerClass, collector *Collector) botapi.Chat {
	native, ok := codec.PeerFromTL(peer)
	if !ok {
		return botapi.Chat{}
	}

	chatID := native.ChatID()
	switch native.Kind {
	case codec.PeerUser:
		if user, found := collector.User(native.ID); found {
			return PrivateChat(user)
		}
		return botapi.Chat{ID: chatID, Type: botapi.ChatTypePrivate}
	case codec.PeerChat:
		if chat, found := collector.Chat(chatID); found {
			return Chat(chat)
		}
		return botapi.Chat{ID: chatID, Type: botapi.ChatTypeGroup}
	default:
		if chat, found := collector.Chat(chatID); found {
			return Chat(chat)
		}
		return botapi.Chat{ID: chatID, Type: botapi.ChatTypeSupergroup}
	}
}

// ChatPointerFromPeer is ChatFromPeer for optional fields.
func ChatPointerFromPeer(peer tg.PeerClass, collector *Collector) *botapi.Chat {
	if peer == nil {
		return nil
	}
	chat := ChatFromPeer(peer, collector)

	return &chat
}

// FullChat is the result of a getChat projection.
type FullChat struct {
	Chat            botapi.Chat
	PinnedMessageID int
}

// ChatFromUserFull projects users.getFullUser.
func ChatFromUserFull(full *tg.UserFull, user *tg.User) FullChat {
	chat := PrivateChat(user)
	chat.ActiveUsernames = userUsernames(user)
	chat.Bio = full.About
	chat.HasPrivateForwards = full.PrivateForwardName != ""
	chat.HasRestrictedVoiceAndVideoMessages = full.VoiceMessagesForbidden
	chat.MessageAutoDeleteTime = full.TTLPeriod
	if status, ok := user.EmojiStatus.(*tg.EmojiStatus); ok {
		chat.EmojiStatusCustomEmojiID = formatID(status.DocumentID)
		chat.EmojiStatusExpirationDate = int64(status.Until)
	}
	if photo, ok := user.Photo.(*tg.UserProfilePhoto); ok {
		chat.Photo = chatPhoto(codec.Peer{Kind: codec.PeerUser, ID: user.ID, AccessHash: chat.AccessHash}, photo.PhotoID, photo.DCID)
	}

	return FullChat{Chat: chat, PinnedMessageID: full.PinnedMsgID}
}

// ChatFromChatFull projects messages.getFullChat for basic groups.
func ChatFromChatFull(full *tg.ChatFull, chat *tg.Chat) FullChat {
	result := Chat(chat)
	result.Description = full.About
	result.MessageAutoDeleteTime = full.TTLPeriod
	result.HasProtectedContent = chat.Noforwards
	result.InviteLink = exportedLink(full.ExportedInvite)
	if rights, ok := chat.GetDefaultBannedRights(); ok {
		permissions := PermissionsFromBannedRights(BannedRightsFromNative(rights))
		result.Permissions = &permissions
	}
	if photo, ok := chat.Photo.(*tg.ChatPhoto); ok {
		result.Photo = chatPhoto(codec.Peer{Kind: codec.PeerChat, ID: chat.ID}, photo.PhotoID, photo.DCID)
	}

	return FullChat{Chat: result, PinnedMessageID: full.PinnedMsgID}
}

// ChatFromChannelFull projects messages.getFullChat for channels.
func ChatFromChannelFull(full *tg.ChannelFull, channel *tg.Channel) FullChat {
	result := Chat(channel)
	result.ActiveUsernames = channelUsernames(channel)
	result.Description = full.About
	result.MessageAutoDeleteTime = full.TTLPeriod
	result.SlowModeDelay = full.SlowmodeSeconds
	result.HasProtectedContent = channel.Noforwards
	result.JoinToSendMessages = channel.JoinToSend
	result.JoinByRequest = channel.JoinRequest
	result.HasAggressiveAntiSpamEnabled = full.Antispam
	result.HasHiddenMembers = full.ParticipantsHidden
	result.CanSetStickerSet = full.CanSetStickers
	result.InviteLink = exportedLink(full.ExportedInvite)
	if set, ok := full.GetStickerset(); ok {
		result.StickerSetName = set.ShortName
	}
	if full.LinkedChatID != 0 {
		linked := codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerChannel, ID: full.LinkedChatID})
		result.LinkedChatID = &linked
	}
	if location, ok := full.Location.(*tg.ChannelLocation); ok {
		if point, isPoint := location.GeoPoint.(*tg.GeoPoint); isPoint {
			result.Location = &botapi.ChatLocation{Location: geoLocation(point), Address: location.Address}
		}
	}
	if rights, ok := channel.GetDefaultBannedRights(); ok {
		permissions := PermissionsFromBannedRights(BannedRightsFromNative(rights))
		result.Permissions = &permissions
	}
	if photo, ok := channel.Photo.(*tg.ChatPhoto); ok {
		peer := codec.Peer{Kind: codec.PeerChannel, ID: channel.ID, AccessHash: result.AccessHash}
		result.Photo = chatPhoto(peer, photo.PhotoID, photo.DCID)
	}

	return FullChat{Chat: result, PinnedMessageID: full.PinnedMsgID}
}

func chatPhoto(peer codec.Peer, photoID int64, dc int) *botapi.ChatPhoto {
	small := codec.FileIDFromChatPhoto(peer, photoID, dc, false)
	big := codec.FileIDFromChatPhoto(peer, photoID, dc, true)

	return &botapi.ChatPhoto{
		SmallFileID:       small.String(),
		SmallFileUniqueID: small.UniqueID(),
		BigFileID:         big.String(),
		BigFileUniqueID:   big.UniqueID(),
	}
}

func exportedLink(invite tg.ExportedChatInviteClass) string {
	if exported, ok := invite.(*tg.ChatInviteExported); ok {
		return exported.Link
	}

	return ""
}

func channelType(megagroup bool) botapi.ChatType {
	if megagroup {
		return botapi.ChatTypeSupergroup
	}

	return botapi.ChatTypeChannel
}

// userUsernames lists active usernames, primary first.
func userUsernames(user *tg.User) []string {
	return activeUsernames(user.Username, user.Usernames)
}

func channelUsernames(channel *tg.Channel) []string {
	return activeUsernames(channel.Username, channel.Usernames)
}

func activeUsernames(primary string, all []tg.Username) []string {
	if primary == "" {
		for _, name := range all {
			if name.Active && name.Editable {
				primary = name.Username
				break
			}
		}
	}

	names := make([]string, 0, len(all)+1)
	if primary != "" {
		names = append(names, primary)
	}
	for _, name := range all {
		if !name.Active || strings.EqualFold(name.Username, primary) {
			continue
		}
		names = append(names, name.Username)
	}

	return names
}

func primaryUsername(primary string, names []string) string {
	if primary != "" {
		return primary
	}

	return names[0]
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
