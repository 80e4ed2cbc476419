package mtbot

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"

	"ex-mtbot/internal/codec"
	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

const adminsPageLimit = 200

func privateChatError(method string) error {
	return botapi.BadRequest(method, "method is not available for private chats")
}

// BanChatMember removes a user from a group. In supergroups and channels the
// user cannot return until UntilDate.
func (c *Client) BanChatMember(ctx context.Context, params botapi.BanChatMemberParams) error {
	const method = "banChatMember"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("ban chat member validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}

		switch peer.Kind {
		case codec.PeerChat:
			if _, err := c.api.MessagesDeleteChatUser(ctx, &tg.MessagesDeleteChatUserRequest{
				RevokeHistory: params.RevokeMessages,
				ChatID:        peer.ID,
				UserID:        user,
			}); err != nil {
				return fmt.Errorf("delete chat user: %w", err)
			}
			return nil
		case codec.PeerChannel:
			channel, _ := peer.InputChannel()
			if err := c.editBanned(ctx, channel, userPeer(user), bannedView(params.UntilDate)); err != nil {
				return err
			}
			if !params.RevokeMessages {
				return nil
			}
			if _, err := c.api.ChannelsDeleteParticipantHistory(ctx, &tg.ChannelsDeleteParticipantHistoryRequest{
				Channel:     channel,
				Participant: userPeer(user),
			}); err != nil {
				return fmt.Errorf("delete participant history: %w", err)
			}
			return nil
		default:
			return privateChatError(method)
		}
	})
}

// UnbanChatMember lifts a ban. Without OnlyIfBanned a current member is
// removed as well, leaving them free to rejoin.
func (c *Client) UnbanChatMember(ctx context.Context, params botapi.UnbanChatMemberParams) error {
	const method = "unbanChatMember"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("unban chat member validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		switch peer.Kind {
		case codec.PeerChat:
			return nil
		case codec.PeerUser:
			return privateChatError(method)
		}

		channel, _ := peer.InputChannel()
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		participant := userPeer(user)

		if params.OnlyIfBanned {
			result, err := c.api.ChannelsGetParticipant(ctx, &tg.ChannelsGetParticipantRequest{
				Channel:     channel,
				Participant: participant,
			})
			if err != nil {
				if tgerr.Is(err, "USER_NOT_PARTICIPANT") {
					return nil
				}
				return fmt.Errorf("get participant: %w", err)
			}
			if !mapper.IsBanned(result.Participant) {
				return nil
			}
			return c.editBanned(ctx, channel, participant, tg.ChatBannedRights{})
		}

		if err := c.editBanned(ctx, channel, participant, bannedView(0)); err != nil {
			return err
		}

		return c.editBanned(ctx, channel, participant, tg.ChatBannedRights{})
	})
}

func (c *Client) editBanned(
	ctx context.Context,
	channel *tg.InputChannel,
	participant tg.InputPeerClass,
	rights tg.ChatBannedRights,
) error {
	if _, err := c.api.ChannelsEditBanned(ctx, &tg.ChannelsEditBannedRequest{
		Channel:      channel,
		Participant:  participant,
		BannedRights: rights,
	}); err != nil {
		return fmt.Errorf("edit banned: %w", err)
	}

	return nil
}

func bannedView(untilDate int64) tg.ChatBannedRights {
	return tg.ChatBannedRights{ViewMessages: true, UntilDate: int(untilDate)}
}

func userPeer(user *tg.InputUser) *tg.InputPeerUser {
	return &tg.InputPeerUser{UserID: user.UserID, AccessHash: user.AccessHash}
}

// RestrictChatMember changes the permissions of a supergroup member.
func (c *Client) RestrictChatMember(ctx context.Context, params botapi.RestrictChatMemberParams) error {
	const method = "restrictChatMember"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("restrict chat member validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		channel, err := c.resolveChannel(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}

		rights := mapper.ToBannedRights(params.Permissions, params.UseIndependentChatPermissions)
		return c.editBanned(ctx, channel, userPeer(user), rights.Native(params.UntilDate))
	})
}

// PromoteChatMember grants administrator rights. Basic groups only know a
// single administrator flag.
func (c *Client) PromoteChatMember(ctx context.Context, params botapi.PromoteChatMemberParams) error {
	const method = "promoteChatMember"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("promote chat member validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		rights := mapper.ToAdminRights(params.ChatAdministratorRights)

		switch peer.Kind {
		case codec.PeerChat:
			if _, err := c.api.MessagesEditChatAdmin(ctx, &tg.MessagesEditChatAdminRequest{
				ChatID:  peer.ID,
				UserID:  user,
				IsAdmin: rights != 0,
			}); err != nil {
				return fmt.Errorf("edit chat admin: %w", err)
			}
			return nil
		case codec.PeerChannel:
			channel, _ := peer.InputChannel()
			if _, err := c.api.ChannelsEditAdmin(ctx, &tg.ChannelsEditAdminRequest{
				Channel:     channel,
				UserID:      user,
				AdminRights: rights.Native(),
			}); err != nil {
				return fmt.Errorf("edit admin: %w", err)
			}
			return nil
		default:
			return privateChatError(method)
		}
	})
}

// SetChatAdministratorCustomTitle sets the title of an administrator the bot
// promoted, keeping their rights.
func (c *Client) SetChatAdministratorCustomTitle(
	ctx context.Context,
	params botapi.SetChatAdministratorCustomTitleParams,
) error {
	const method = "setChatAdministratorCustomTitle"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set chat administrator custom title validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		channel, err := c.resolveChannel(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}

		result, err := c.api.ChannelsGetParticipant(ctx, &tg.ChannelsGetParticipantRequest{
			Channel:     channel,
			Participant: userPeer(user),
		})
		if err != nil {
			return fmt.Errorf("get participant: %w", err)
		}
		admin, ok := result.Participant.(*tg.ChannelParticipantAdmin)
		if !ok {
			return botapi.BadRequest(method, "user is not an administrator")
		}

		if _, err := c.api.ChannelsEditAdmin(ctx, &tg.ChannelsEditAdminRequest{
			Channel:     channel,
			UserID:      user,
			AdminRights: admin.AdminRights,
			Rank:        params.CustomTitle,
		}); err != nil {
			return fmt.Errorf("edit admin: %w", err)
		}
		return nil
	})
}

// BanChatSenderChat bans a channel from posting on behalf of itself.
func (c *Client) BanChatSenderChat(ctx context.Context, params botapi.SenderChatParams) error {
	return c.editSenderChat(ctx, "banChatSenderChat", params, bannedView(0))
}

// UnbanChatSenderChat lifts a sender chat ban.
func (c *Client) UnbanChatSenderChat(ctx context.Context, params botapi.SenderChatParams) error {
	return c.editSenderChat(ctx, "unbanChatSenderChat", params, tg.ChatBannedRights{})
}

func (c *Client) editSenderChat(
	ctx context.Context,
	method string,
	params botapi.SenderChatParams,
	rights tg.ChatBannedRights,
) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%s validate: %w", method, err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		channel, err := c.resolveChannel(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		sender, err := c.resolveInputPeer(ctx, method, botapi.ID(params.SenderChatID))
		if err != nil {
			return err
		}

		return c.editBanned(ctx, channel, sender, rights)
	})
}

// SetChatPermissions sets the default permissions of all members.
func (c *Client) SetChatPermissions(ctx context.Context, params botapi.SetChatPermissionsParams) error {
	const method = "setChatPermissions"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set chat permissions validate: %w", err)
	}

	return c.invokeIdempotent(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		if peer.Kind == codec.PeerUser {
			return privateChatError(method)
		}

		rights := mapper.ToBannedRights(params.Permissions, params.UseIndependentChatPermissions)
		if _, err := c.api.MessagesEditChatDefaultBannedRights(ctx, &tg.MessagesEditChatDefaultBannedRightsRequest{
			Peer:         peer.InputPeer(),
			BannedRights: rights.Native(0),
		}); err != nil {
			return fmt.Errorf("edit default banned rights: %w", err)
		}
		return nil
	})
}

// ExportChatInviteLink replaces the primary invite link and returns it.
func (c *Client) ExportChatInviteLink(ctx context.Context, params botapi.ChatParams) (string, error) {
	const method = "exportChatInviteLink"
	if err := params.Validate(); err != nil {
		return "", fmt.Errorf("export chat invite link validate: %w", err)
	}

	var link string
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveInputPeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		invite, err := c.api.MessagesExportChatInvite(ctx, &tg.MessagesExportChatInviteRequest{
			LegacyRevokePermanent: true,
			Peer:                  peer,
		})
		if err != nil {
			return fmt.Errorf("export chat invite: %w", err)
		}
		exported, ok := invite.(*tg.ChatInviteExported)
		if !ok {
			return fmt.Errorf("export chat invite: unexpected %s", invite.TypeName())
		}
		link = exported.Link
		return nil
	})
	if err != nil {
		return "", err
	}

	return link, nil
}

// CreateChatInviteLink creates an additional invite link.
func (c *Client) CreateChatInviteLink(ctx context.Context, params botapi.ChatInviteLinkParams) (*botapi.ChatInviteLink, error) {
	const method = "createChatInviteLink"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("create chat invite link validate: %w", err)
	}

	var result *botapi.ChatInviteLink
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveInputPeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		request := &tg.MessagesExportChatInviteRequest{
			Peer:          peer,
			RequestNeeded: params.CreatesJoinRequest,
		}
		if params.ExpireDate > 0 {
			request.SetExpireDate(int(params.ExpireDate))
		}
		if params.MemberLimit > 0 {
			request.SetUsageLimit(params.MemberLimit)
		}
		if params.Name != "" {
			request.SetTitle(params.Name)
		}

		invite, err := c.api.MessagesExportChatInvite(ctx, request)
		if err != nil {
			return fmt.Errorf("export chat invite: %w", err)
		}
		result = mapper.InviteLink(invite, c.newCollector())
		if result == nil {
			return fmt.Errorf("export chat invite: unexpected %s", invite.TypeName())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// EditChatInviteLink changes a non-primary invite link.
func (c *Client) EditChatInviteLink(ctx context.Context, params botapi.ChatInviteLinkParams) (*botapi.ChatInviteLink, error) {
	const method = "editChatInviteLink"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("edit chat invite link validate: %w", err)
	}
	if params.InviteLink == "" {
		return nil, fmt.Errorf("edit chat invite link validate: %w: invite_link is required", botapi.ErrInvalidParams)
	}

	var result *botapi.ChatInviteLink
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveInputPeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		request := &tg.MessagesEditExportedChatInviteRequest{Peer: peer, Link: params.InviteLink}
		request.SetExpireDate(int(params.ExpireDate))
		request.SetUsageLimit(params.MemberLimit)
		request.SetRequestNeeded(params.CreatesJoinRequest)
		request.SetTitle(params.Name)

		edited, err := c.api.MessagesEditExportedChatInvite(ctx, request)
		if err != nil {
			return fmt.Errorf("edit exported chat invite: %w", err)
		}
		result, err = c.editedInvite(ctx, edited)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RevokeChatInviteLink revokes an invite link. Revoking the primary link
// creates a new one.
func (c *Client) RevokeChatInviteLink(ctx context.Context, params botapi.RevokeChatInviteLinkParams) (*botapi.ChatInviteLink, error) {
	const method = "revokeChatInviteLink"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("revoke chat invite link validate: %w", err)
	}

	var result *botapi.ChatInviteLink
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveInputPeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		edited, err := c.api.MessagesEditExportedChatInvite(ctx, &tg.MessagesEditExportedChatInviteRequest{
			Revoked: true,
			Peer:    peer,
			Link:    params.InviteLink,
		})
		if err != nil {
			return fmt.Errorf("revoke exported chat invite: %w", err)
		}
		result, err = c.editedInvite(ctx, edited)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) editedInvite(ctx context.Context, edited tg.MessagesExportedChatInviteClass) (*botapi.ChatInviteLink, error) {
	var (
		invite tg.ExportedChatInviteClass
		users  []tg.UserClass
	)
	switch typed := edited.(type) {
	case *tg.MessagesExportedChatInvite:
		invite, users = typed.Invite, typed.Users
	case *tg.MessagesExportedChatInviteReplaced:
		invite, users = typed.Invite, typed.Users
	default:
		return nil, fmt.Errorf("edit exported chat invite: unexpected %s", edited.TypeName())
	}

	link := mapper.InviteLink(invite, c.collect(ctx, users, nil))
	if link == nil {
		return nil, fmt.Errorf("edit exported chat invite: unexpected %s", invite.TypeName())
	}

	return link, nil
}

// ApproveChatJoinRequest admits a user who asked to join.
func (c *Client) ApproveChatJoinRequest(ctx context.Context, params botapi.ChatMemberParams) error {
	return c.hideJoinRequest(ctx, "approveChatJoinRequest", params, true)
}

// DeclineChatJoinRequest rejects a user who asked to join.
func (c *Client) DeclineChatJoinRequest(ctx context.Context, params botapi.ChatMemberParams) error {
	return c.hideJoinRequest(ctx, "declineChatJoinRequest", params, false)
}

func (c *Client) hideJoinRequest(ctx context.Context, method string, params botapi.ChatMemberParams, approved bool) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("%s validate: %w", method, err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveInputPeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		user, err := c.resolveUser(ctx, method, params.UserID)
		if err != nil {
			return err
		}
		if _, err := c.api.MessagesHideChatJoinRequest(ctx, &tg.MessagesHideChatJoinRequestRequest{
			Approved: approved,
			Peer:     peer,
			UserID:   user,
		}); err != nil {
			return fmt.Errorf("hide chat join request: %w", err)
		}
		return nil
	})
}

// SetChatPhoto uploads and sets a new chat photo.
func (c *Client) SetChatPhoto(ctx context.Context, params botapi.SetChatPhotoParams) error {
	const method = "setChatPhoto"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set chat photo validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		uploaded, err := c.upload(ctx, params.Photo)
		if err != nil {
			return err
		}
		photo := &tg.InputChatUploadedPhoto{}
		photo.SetFile(uploaded)

		return c.editChatPhoto(ctx, method, peer, photo)
	})
}

// DeleteChatPhoto removes the chat photo.
func (c *Client) DeleteChatPhoto(ctx context.Context, params botapi.ChatParams) error {
	const method = "deleteChatPhoto"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("delete chat photo validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}

		return c.editChatPhoto(ctx, method, peer, &tg.InputChatPhotoEmpty{})
	})
}

func (c *Client) editChatPhoto(ctx context.Context, method string, peer codec.Peer, photo tg.InputChatPhotoClass) error {
	switch peer.Kind {
	case codec.PeerChat:
		if _, err := c.api.MessagesEditChatPhoto(ctx, &tg.MessagesEditChatPhotoRequest{ChatID: peer.ID, Photo: photo}); err != nil {
			return fmt.Errorf("edit chat photo: %w", err)
		}
	case codec.PeerChannel:
		channel, _ := peer.InputChannel()
		if _, err := c.api.ChannelsEditPhoto(ctx, &tg.ChannelsEditPhotoRequest{Channel: channel, Photo: photo}); err != nil {
			return fmt.Errorf("edit channel photo: %w", err)
		}
	default:
		return privateChatError(method)
	}

	return nil
}

// SetChatTitle renames a group or channel.
func (c *Client) SetChatTitle(ctx context.Context, params botapi.SetChatTitleParams) error {
	const method = "setChatTitle"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set chat title validate: %w", err)
	}

	return c.invokeIdempotent(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}

		switch peer.Kind {
		case codec.PeerChat:
			if _, err := c.api.MessagesEditChatTitle(ctx, &tg.MessagesEditChatTitleRequest{
				ChatID: peer.ID,
				Title:  params.Title,
			}); err != nil {
				return fmt.Errorf("edit chat title: %w", err)
			}
		case codec.PeerChannel:
			channel, _ := peer.InputChannel()
			if _, err := c.api.ChannelsEditTitle(ctx, &tg.ChannelsEditTitleRequest{
				Channel: channel,
				Title:   params.Title,
			}); err != nil {
				return fmt.Errorf("edit channel title: %w", err)
			}
		default:
			return privateChatError(method)
		}
		return nil
	})
}

// SetChatDescription changes the description of a group or channel.
func (c *Client) SetChatDescription(ctx context.Context, params botapi.SetChatDescriptionParams) error {
	const method = "setChatDescription"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set chat description validate: %w", err)
	}

	return c.invokeIdempotent(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		if peer.Kind == codec.PeerUser {
			return privateChatError(method)
		}
		if _, err := c.api.MessagesEditChatAbout(ctx, &tg.MessagesEditChatAboutRequest{
			Peer:  peer.InputPeer(),
			About: params.Description,
		}); err != nil {
			return fmt.Errorf("edit chat about: %w", err)
		}
		return nil
	})
}

// PinChatMessage pins a message.
func (c *Client) PinChatMessage(ctx context.Context, params botapi.PinChatMessageParams) error {
	const method = "pinChatMessage"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("pin chat message validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveInputPeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		if _, err := c.api.MessagesUpdatePinnedMessage(ctx, &tg.MessagesUpdatePinnedMessageRequest{
			Silent: params.DisableNotification,
			Peer:   peer,
			ID:     params.MessageID,
		}); err != nil {
			return fmt.Errorf("update pinned message: %w", err)
		}
		return nil
	})
}

// UnpinChatMessage unpins a message, or the most recent pinned message when
// MessageID is zero.
func (c *Client) UnpinChatMessage(ctx context.Context, params botapi.UnpinChatMessageParams) error {
	const method = "unpinChatMessage"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("unpin chat message validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		messageID := params.MessageID
		if messageID == 0 {
			full, err := c.fullChat(ctx, method, peer)
			if err != nil {
				return err
			}
			if full.PinnedMessageID == 0 {
				return botapi.BadRequest(method, "message to unpin not found")
			}
			messageID = full.PinnedMessageID
		}

		if _, err := c.api.MessagesUpdatePinnedMessage(ctx, &tg.MessagesUpdatePinnedMessageRequest{
			Unpin: true,
			Peer:  peer.InputPeer(),
			ID:    messageID,
		}); err != nil {
			return fmt.Errorf("update pinned message: %w", err)
		}
		return nil
	})
}

// UnpinAllChatMessages clears the pinned message list.
func (c *Client) UnpinAllChatMessages(ctx context.Context, params botapi.ChatParams) error {
	const method = "unpinAllChatMessages"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("unpin all chat messages validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolveInputPeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}

		return c.unpinAll(ctx, &tg.MessagesUnpinAllMessagesRequest{Peer: peer})
	})
}

// unpinAll repeats the request until the server reports no remaining
// messages.
func (c *Client) unpinAll(ctx context.Context, request *tg.MessagesUnpinAllMessagesRequest) error {
	for {
		affected, err := c.api.MessagesUnpinAllMessages(ctx, request)
		if err != nil {
			return fmt.Errorf("unpin all messages: %w", err)
		}
		if affected.Offset <= 0 {
			return nil
		}
	}
}

// LeaveChat makes the bot leave a group or channel.
func (c *Client) LeaveChat(ctx context.Context, params botapi.ChatParams) error {
	const method = "leaveChat"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("leave chat validate: %w", err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}

		switch peer.Kind {
		case codec.PeerChat:
			if _, err := c.api.MessagesDeleteChatUser(ctx, &tg.MessagesDeleteChatUserRequest{
				ChatID: peer.ID,
				UserID: c.bot(),
			}); err != nil {
				return fmt.Errorf("delete chat user: %w", err)
			}
		case codec.PeerChannel:
			channel, _ := peer.InputChannel()
			if _, err := c.api.ChannelsLeaveChannel(ctx, channel); err != nil {
				return fmt.Errorf("leave channel: %w", err)
			}
		default:
			return privateChatError(method)
		}
		return nil
	})
}

// GetChat returns up-to-date information about a chat, including its pinned
// message when it can be loaded.
func (c *Client) GetChat(ctx context.Context, params botapi.ChatParams) (botapi.Chat, error) {
	const method = "getChat"
	if err := params.Validate(); err != nil {
		return botapi.Chat{}, fmt.Errorf("get chat validate: %w", err)
	}

	var result botapi.Chat
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		full, err := c.fullChat(ctx, method, peer)
		if err != nil {
			return err
		}
		result = full.Chat

		if full.PinnedMessageID == 0 {
			return nil
		}
		pinned, err := c.fetchMessages(ctx, peer, []int{full.PinnedMessageID})
		if err != nil {
			c.cfg.logger.DebugContext(ctx, "load pinned message", "error", err, "chat_id", peer.ChatID())
			return nil
		}
		if len(pinned) > 0 {
			result.PinnedMessage = pinned[0]
		}
		return nil
	})
	if err != nil {
		return botapi.Chat{}, err
	}

	return result, nil
}

// fullChat loads the full description of any peer kind.
func (c *Client) fullChat(ctx context.Context, method string, peer codec.Peer) (mapper.FullChat, error) {
	switch peer.Kind {
	case codec.PeerUser:
		user, _ := peer.InputUser()
		full, err := c.api.UsersGetFullUser(ctx, user)
		if err != nil {
			return mapper.FullChat{}, fmt.Errorf("get full user: %w", err)
		}
		collector := c.collect(ctx, full.Users, full.Chats)
		native, ok := collector.User(peer.ID)
		if !ok {
			return mapper.FullChat{}, chatNotFound(method)
		}
		return mapper.ChatFromUserFull(&full.FullUser, native), nil
	case codec.PeerChat:
		full, err := c.groupFull(ctx, peer.ID)
		if err != nil {
			return mapper.FullChat{}, err
		}
		collector := c.collect(ctx, full.Users, full.Chats)
		chatFull, isChat := full.FullChat.(*tg.ChatFull)
		native, found := collector.Chat(peer.ChatID())
		group, isGroup := native.(*tg.Chat)
		if !isChat || !found || !isGroup {
			return mapper.FullChat{}, chatNotFound(method)
		}
		return mapper.ChatFromChatFull(chatFull, group), nil
	case codec.PeerChannel:
		channel, _ := peer.InputChannel()
		full, err := c.api.ChannelsGetFullChannel(ctx, channel)
		if err != nil {
			return mapper.FullChat{}, fmt.Errorf("get full channel: %w", err)
		}
		collector := c.collect(ctx, full.Users, full.Chats)
		channelFull, isChannel := full.FullChat.(*tg.ChannelFull)
		native, found := collector.Chat(peer.ChatID())
		typed, isTyped := native.(*tg.Channel)
		if !isChannel || !found || !isTyped {
			return mapper.FullChat{}, chatNotFound(method)
		}
		return mapper.ChatFromChannelFull(channelFull, typed), nil
	default:
		return mapper.FullChat{}, chatNotFound(method)
	}
}

func (c *Client) groupFull(ctx context.Context, chatID int64) (*tg.MessagesChatFull, error) {
	full, err := c.api.MessagesGetFullChat(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("get full chat: %w", err)
	}

	return full, nil
}

// groupParticipants lists the members of a basic group.
func (c *Client) groupParticipants(ctx context.Context, method string, chatID int64) ([]tg.ChatParticipantClass, *mapper.Collector, error) {
	full, err := c.groupFull(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}
	collector := c.collect(ctx, full.Users, full.Chats)
	chatFull, ok := full.FullChat.(*tg.ChatFull)
	if !ok {
		return nil, nil, chatNotFound(method)
	}
	participants, ok := chatFull.Participants.(*tg.ChatParticipants)
	if !ok {
		return nil, nil, botapi.BadRequest(method, "member list is inaccessible")
	}

	return participants.Participants, collector, nil
}

// GetChatAdministrators lists the administrators of a group or channel.
func (c *Client) GetChatAdministrators(ctx context.Context, params botapi.ChatParams) ([]botapi.ChatMember, error) {
	const method = "getChatAdministrators"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("get chat administrators validate: %w", err)
	}

	var result []botapi.ChatMember
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}

		switch peer.Kind {
		case codec.PeerChat:
			participants, collector, err := c.groupParticipants(ctx, method, peer.ID)
			if err != nil {
				return err
			}
			for _, participant := range participants {
				switch participant.(type) {
				case *tg.ChatParticipantCreator, *tg.ChatParticipantAdmin:
					result = append(result, mapper.GroupMember(participant, collector))
				}
			}
		case codec.PeerChannel:
			channel, _ := peer.InputChannel()
			list, err := c.api.ChannelsGetParticipants(ctx, &tg.ChannelsGetParticipantsRequest{
				Channel: channel,
				Filter:  &tg.ChannelParticipantsAdmins{},
				Limit:   adminsPageLimit,
			})
			if err != nil {
				return fmt.Errorf("get participants: %w", err)
			}
			page, ok := list.(*tg.ChannelsChannelParticipants)
			if !ok {
				return fmt.Errorf("get participants: unexpected %s", list.TypeName())
			}
			collector := c.collect(ctx, page.Users, page.Chats)
			for _, participant := range page.Participants {
				result = append(result, mapper.ChannelMember(participant, collector))
			}
		default:
			return privateChatError(method)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetChatMemberCount returns the number of members of a group or channel.
func (c *Client) GetChatMemberCount(ctx context.Context, params botapi.ChatParams) (int, error) {
	const method = "getChatMemberCount"
	if err := params.Validate(); err != nil {
		return 0, fmt.Errorf("get chat member count validate: %w", err)
	}

	var count int
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}

		switch peer.Kind {
		case codec.PeerChat:
			participants, _, err := c.groupParticipants(ctx, method, peer.ID)
			if err != nil {
				return err
			}
			count = len(participants)
		case codec.PeerChannel:
			channel, _ := peer.InputChannel()
			full, err := c.api.ChannelsGetFullChannel(ctx, channel)
			if err != nil {
				return fmt.Errorf("get full channel: %w", err)
			}
			c.collect(ctx, full.Users, full.Chats)
			channelFull, ok := full.FullChat.(*tg.ChannelFull)
			if !ok {
				return chatNotFound(method)
			}
			count = channelFull.ParticipantsCount
		default:
			return privateChatError(method)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return count, nil
}

// GetChatMember returns one member of a chat. Users outside the chat are
// reported with status left.
func (c *Client) GetChatMember(ctx context.Context, params botapi.ChatMemberParams) (botapi.ChatMember, error) {
	const method = "getChatMember"
	if err := params.Validate(); err != nil {
		return botapi.ChatMember{}, fmt.Errorf("get chat member validate: %w", err)
	}

	var result botapi.ChatMember
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		peer, err := c.resolvePeer(ctx, method, params.ChatID)
		if err != nil {
			return err
		}

		switch peer.Kind {
		case codec.PeerChat:
			participants, collector, err := c.groupParticipants(ctx, method, peer.ID)
			if err != nil {
				return err
			}
			result = mapper.LeftMember(collector, params.UserID)
			for _, participant := range participants {
				if participant.GetUserID() == params.UserID {
					result = mapper.GroupMember(participant, collector)
				}
			}
		case codec.PeerChannel:
			channel, _ := peer.InputChannel()
			user, err := c.resolveUser(ctx, method, params.UserID)
			if err != nil {
				return err
			}
			member, err := c.api.ChannelsGetParticipant(ctx, &tg.ChannelsGetParticipantRequest{
				Channel:     channel,
				Participant: userPeer(user),
			})
			if tgerr.Is(err, "USER_NOT_PARTICIPANT") {
				result = mapper.LeftMember(c.newCollector(), params.UserID)
				return nil
			}
			if err != nil {
				return fmt.Errorf("get participant: %w", err)
			}
			collector := c.collect(ctx, member.Users, member.Chats)
			result = mapper.ChannelMember(member.Participant, collector)
		default:
			return privateChatError(method)
		}
		return nil
	})
	if err != nil {
		return botapi.ChatMember{}, err
	}

	return result, nil
}

// SetChatStickerSet sets the group sticker set of a supergroup.
func (c *Client) SetChatStickerSet(ctx context.Context, params botapi.SetChatStickerSetParams) error {
	const method = "setChatStickerSet"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set chat sticker set validate: %w", err)
	}

	return c.setChatStickers(ctx, method, params.ChatID, mapper.InputStickerName(params.StickerSetName))
}

// DeleteChatStickerSet removes the group sticker set of a supergroup.
func (c *Client) DeleteChatStickerSet(ctx context.Context, params botapi.ChatParams) error {
	const method = "deleteChatStickerSet"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("delete chat sticker set validate: %w", err)
	}

	return c.setChatStickers(ctx, method, params.ChatID, &tg.InputStickerSetEmpty{})
}

func (c *Client) setChatStickers(ctx context.Context, method string, chatID botapi.ChatID, set tg.InputStickerSetClass) error {
	return c.invokeIdempotent(ctx, method, func(ctx context.Context) error {
		channel, err := c.resolveChannel(ctx, method, chatID)
		if err != nil {
			return err
		}
		if _, err := c.api.ChannelsSetStickers(ctx, &tg.ChannelsSetStickersRequest{
			Channel:    channel,
			Stickerset: set,
		}); err != nil {
			return fmt.Errorf("set stickers: %w", err)
		}
		return nil
	})
}
