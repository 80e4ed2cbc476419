package mapper

import (
	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// Message projects a native message. Empty messages yield nil.
func Message(message tg.MessageClass, collector *Collector) *botapi.Message {
	switch typed := message.(type) {
	case *tg.Message:
		return regularMessage(typed, collector)
	case *tg.MessageService:
		return serviceMessage(typed, collector)
	default:
		return nil
	}
}

func messageBase(id int, peer tg.PeerClass, from tg.PeerClass, date int, post bool, collector *Collector) *botapi.Message {
	chat := ChatFromPeer(peer, collector)
	result := &botapi.Message{MessageID: id, Date: int64(date), Chat: chat}

	switch sender := from.(type) {
	case *tg.PeerUser:
		result.From = UserByID(collector, sender.UserID)
	case *tg.PeerChat, *tg.PeerChannel:
		result.SenderChat = ChatPointerFromPeer(sender, collector)
	case nil:
		switch {
		case post || chat.Type == botapi.ChatTypeChannel:
			senderChat := chat
			result.SenderChat = &senderChat
		case chat.Type == botapi.ChatTypePrivate:
			result.From = UserByID(collector, chat.ID)
		}
	}

	return result
}

func applyReply(result *botapi.Message, reply tg.MessageReplyHeaderClass) {
	header, ok := reply.(*tg.MessageReplyHeader)
	if !ok {
		return
	}
	if id, ok := header.GetReplyToMsgID(); ok {
		result.ReplyToMessageID = id
	}
	if header.ForumTopic {
		result.IsTopicMessage = true
		if top, ok := header.GetReplyToTopID(); ok {
			result.MessageThreadID = top
		} else {
			result.MessageThreadID = result.ReplyToMessageID
		}
	}
}

func regularMessage(message *tg.Message, collector *Collector) *botapi.Message {
	result := messageBase(message.ID, message.PeerID, message.FromID, message.Date, message.Post, collector)
	applyReply(result, message.ReplyTo)

	if header, ok := message.GetFwdFrom(); ok {
		result.ForwardOrigin = ForwardOrigin(header, collector)
		result.IsAutomaticForward = header.SavedFromPeer != nil && result.Chat.Type == botapi.ChatTypeSupergroup &&
			result.SenderChat != nil && result.SenderChat.Type == botapi.ChatTypeChannel
	}
	if botID, ok := message.GetViaBotID(); ok {
		result.ViaBot = UserByID(collector, botID)
	}
	if editDate, ok := message.GetEditDate(); ok && !message.EditHide {
		result.EditDate = int64(editDate)
	}
	if groupedID, ok := message.GetGroupedID(); ok {
		result.MediaGroupID = formatID(groupedID)
	}
	result.AuthorSignature = message.PostAuthor
	result.HasProtectedContent = message.Noforwards
	result.ReplyMarkup = InlineKeyboard(message.ReplyMarkup)

	entities := Entities(message.Entities, collector)
	if message.Media == nil || isTextMedia(message.Media) {
		result.Text = message.Message
		result.Entities = entities
		if preview, ok := message.Media.(*tg.MessageMediaWebPage); ok {
			result.LinkPreviewOptions = &botapi.LinkPreviewOptions{
				PreferSmallMedia: preview.ForceSmallMedia,
				PreferLargeMedia: preview.ForceLargeMedia,
				ShowAboveText:    message.InvertMedia,
			}
		}
		return result
	}

	applyMedia(result, message.Media, collector)
	result.Caption = message.Message
	result.CaptionEntities = entities

	return result
}

func isTextMedia(media tg.MessageMediaClass) bool {
	switch media.(type) {
	case *tg.MessageMediaEmpty, *tg.MessageMediaWebPage, *tg.MessageMediaUnsupported:
		return true
	default:
		return false
	}
}

// ForwardOrigin projects a forward header into the origin union.
func ForwardOrigin(header tg.MessageFwdHeader, collector *Collector) *botapi.MessageOrigin {
	origin := &botapi.MessageOrigin{Date: int64(header.Date)}

	switch from := header.FromID.(type) {
	case *tg.PeerUser:
		origin.Type = botapi.OriginTypeUser
		origin.SenderUser = UserByID(collector, from.UserID)
	case *tg.PeerChannel:
		chat := ChatFromPeer(from, collector)
		if postID, ok := header.GetChannelPost(); ok {
			// Only broadcast channels carry channel_post.
			chat.Type = botapi.ChatTypeChannel
			origin.Type = botapi.OriginTypeChannel
			origin.Chat = &chat
			origin.MessageID = postID
		} else {
			origin.Type = botapi.OriginTypeChat
			origin.SenderChat = &chat
		}
		origin.AuthorSignature = header.PostAuthor
	case *tg.PeerChat:
		chat := ChatFromPeer(from, collector)
		origin.Type = botapi.OriginTypeChat
		origin.SenderChat = &chat
		origin.AuthorSignature = header.PostAuthor
	default:
		origin.Type = botapi.OriginTypeHiddenUser
		origin.SenderUserName = header.FromName
	}

	return origin
}

func serviceMessage(message *tg.MessageService, collector *Collector) *botapi.Message {
	result := messageBase(message.ID, message.PeerID, message.FromID, message.Date, message.Post, collector)
	applyReply(result, message.ReplyTo)

	switch action := message.Action.(type) {
	case *tg.MessageActionChatCreate:
		result.GroupChatCreated = true
	case *tg.MessageActionChannelCreate:
		if result.Chat.Type == botapi.ChatTypeChannel {
			result.ChannelChatCreated = true
		} else {
			result.SupergroupChatCreated = true
		}
	case *tg.MessageActionChatEditTitle:
		result.NewChatTitle = action.Title
	case *tg.MessageActionChatEditPhoto:
		if photo, ok := action.Photo.(*tg.Photo); ok {
			result.NewChatPhoto = PhotoSizes(photo)
		}
	case *tg.MessageActionChatDeletePhoto:
		result.DeleteChatPhoto = true
	case *tg.MessageActionChatAddUser:
		for _, id := range action.Users {
			result.NewChatMembers = append(result.NewChatMembers, *UserByID(collector, id))
		}
	case *tg.MessageActionChatJoinedByLink, *tg.MessageActionChatJoinedByRequest:
		if result.From != nil {
			result.NewChatMembers = []botapi.User{*result.From}
		}
	case *tg.MessageActionChatDeleteUser:
		result.LeftChatMember = UserByID(collector, action.UserID)
	case *tg.MessageActionChatMigrateTo:
		result.MigrateToChatID = codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerChannel, ID: action.ChannelID})
	case *tg.MessageActionChannelMigrateFrom:
		result.MigrateFromChatID = codec.ChatIDFromPeer(codec.Peer{Kind: codec.PeerChat, ID: action.ChatID})
	case *tg.MessageActionPinMessage:
		if result.ReplyToMessageID != 0 {
			result.PinnedMessage = &botapi.Message{MessageID: result.ReplyToMessageID, Chat: result.Chat}
			result.ReplyToMessageID = 0
		}
	case *tg.MessageActionSetMessagesTTL:
		result.MessageAutoDeleteTimerChanged = &botapi.MessageAutoDeleteTimerChanged{MessageAutoDeleteTime: action.Period}
	case *tg.MessageActionPaymentSentMe:
		result.SuccessfulPayment = successfulPayment(action)
	case *tg.MessageActionRequestedPeer:
		applyRequestedPeers(result, action.ButtonID, action.Peers)
	case *tg.MessageActionBotAllowed:
		allowed := &botapi.WriteAccessAllowed{FromRequest: action.FromRequest, FromAttachmentMenu: action.AttachMenu}
		if app, ok := action.App.(*tg.BotApp); ok {
			allowed.WebAppName = app.ShortName
		}
		if domain, ok := action.GetDomain(); ok {
			result.ConnectedWebsite = domain
		} else {
			result.WriteAccessAllowed = allowed
		}
	case *tg.MessageActionGeoProximityReached:
		traveler := peerUser(action.FromID, collector)
		watcher := peerUser(action.ToID, collector)
		result.ProximityAlertTriggered = &botapi.ProximityAlertTriggered{Traveler: traveler, Watcher: watcher, Distance: action.Distance}
	case *tg.MessageActionTopicCreate:
		created := &botapi.ForumTopicCreated{Name: action.Title, IconColor: action.IconColor}
		if emoji, ok := action.GetIconEmojiID(); ok {
			created.IconCustomEmojiID = formatID(emoji)
		}
		result.ForumTopicCreated = created
	case *tg.MessageActionTopicEdit:
		applyTopicEdit(result, action)
	case *tg.MessageActionGroupCall:
		if duration, ok := action.GetDuration(); ok {
			result.VideoChatEnded = &botapi.VideoChatEnded{Duration: duration}
		} else {
			result.VideoChatStarted = &struct{}{}
		}
	case *tg.MessageActionGroupCallScheduled:
		result.VideoChatScheduled = &botapi.VideoChatScheduled{StartDate: int64(action.ScheduleDate)}
	case *tg.MessageActionInviteToGroupCall:
		invited := &botapi.VideoChatParticipantsInvited{}
		for _, id := range action.Users {
			invited.Users = append(invited.Users, *UserByID(collector, id))
		}
		result.VideoChatParticipantsInvited = invited
	case *tg.MessageActionWebViewDataSentMe:
		result.WebAppData = &botapi.WebAppData{Data: action.Data, ButtonText: action.Text}
	}

	return result
}

func peerUser(peer tg.PeerClass, collector *Collector) botapi.User {
	if user, ok := peer.(*tg.PeerUser); ok {
		return *UserByID(collector, user.UserID)
	}

	return botapi.User{}
}

func applyTopicEdit(result *botapi.Message, action *tg.MessageActionTopicEdit) {
	if closed, ok := action.GetClosed(); ok {
		if closed {
			result.ForumTopicClosed = &struct{}{}
		} else {
			result.ForumTopicReopened = &struct{}{}
		}
		return
	}
	if hidden, ok := action.GetHidden(); ok {
		if hidden {
			result.GeneralForumTopicHidden = &struct{}{}
		} else {
			result.GeneralForumTopicUnhidden = &struct{}{}
		}
		return
	}

	edited := &botapi.ForumTopicEdited{}
	if title, ok := action.GetTitle(); ok {
		edited.Name = title
	}
	if emoji, ok := action.GetIconEmojiID(); ok {
		id := ""
		if emoji != 0 {
			id = formatID(emoji)
		}
		edited.IconCustomEmojiID = &id
	}
	result.ForumTopicEdited = edited
}

func applyRequestedPeers(result *botapi.Message, buttonID int, peers []tg.PeerClass) {
	var users []int64
	for _, peer := range peers {
		native, ok := codec.PeerFromTL(peer)
		if !ok {
			continue
		}
		if native.Kind == codec.PeerUser {
			users = append(users, native.ID)
			continue
		}
		result.ChatShared = &botapi.ChatShared{RequestID: buttonID, ChatID: native.ChatID()}
		return
	}
	result.UsersShared = &botapi.UsersShared{RequestID: buttonID, UserIDs: users}
}

func successfulPayment(action *tg.MessageActionPaymentSentMe) *botapi.SuccessfulPayment {
	payment := &botapi.SuccessfulPayment{
		Currency:                action.Currency,
		TotalAmount:             action.TotalAmount,
		InvoicePayload:          string(action.Payload),
		TelegramPaymentChargeID: action.Charge.ID,
		ProviderPaymentChargeID: action.Charge.ProviderChargeID,
	}
	if optionID, ok := action.GetShippingOptionID(); ok {
		payment.ShippingOptionID = optionID
	}
	if info, ok := action.GetInfo(); ok {
		payment.OrderInfo = OrderInfo(info)
	}

	return payment
}

// OrderInfo projects payment requested info.
func OrderInfo(info tg.PaymentRequestedInfo) *botapi.OrderInfo {
	order := &botapi.OrderInfo{Name: info.Name, PhoneNumber: info.Phone, Email: info.Email}
	if address, ok := info.GetShippingAddress(); ok {
		projected := ShippingAddress(address)
		order.ShippingAddress = &projected
	}

	return order
}

// ShippingAddress projects a postal address.
func ShippingAddress(address tg.PostAddress) botapi.ShippingAddress {
	return botapi.ShippingAddress{
		CountryCode: address.CountryISO2,
		State:       address.State,
		City:        address.City,
		StreetLine1: address.StreetLine1,
		StreetLine2: address.StreetLine2,
		PostCode:    address.PostCode,
	}
}
