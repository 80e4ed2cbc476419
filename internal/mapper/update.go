package mapper

import (
	"strconv"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// Update projects one native update. Updates without a Bot API counterpart
// report false. UpdateID is left for the caller to assign.
func Update(update tg.UpdateClass, collector *Collector) (botapi.Update, bool) {
	var result botapi.Update

	switch typed := update.(type) {
	case *tg.UpdateNewMessage:
		return newMessage(typed.Message, collector, false)
	case *tg.UpdateNewChannelMessage:
		return newMessage(typed.Message, collector, false)
	case *tg.UpdateEditMessage:
		return newMessage(typed.Message, collector, true)
	case *tg.UpdateEditChannelMessage:
		return newMessage(typed.Message, collector, true)
	case *tg.UpdateBotInlineQuery:
		result.InlineQuery = InlineQuery(typed, collector)
	case *tg.UpdateBotInlineSend:
		result.ChosenInlineResult = ChosenInlineResult(typed, collector)
	case *tg.UpdateBotCallbackQuery:
		result.CallbackQuery = CallbackQuery(typed, collector)
	case *tg.UpdateInlineBotCallbackQuery:
		result.CallbackQuery = InlineCallbackQuery(typed, collector)
	case *tg.UpdateBotShippingQuery:
		result.ShippingQuery = &botapi.ShippingQuery{
			ID:              formatID(typed.QueryID),
			From:            *UserByID(collector, typed.UserID),
			InvoicePayload:  string(typed.Payload),
			ShippingAddress: ShippingAddress(typed.ShippingAddress),
		}
	case *tg.UpdateBotPrecheckoutQuery:
		result.PreCheckoutQuery = PreCheckoutQuery(typed, collector)
	case *tg.UpdateMessagePoll:
		poll, ok := typed.GetPoll()
		if !ok {
			return result, false
		}
		projected := Poll(poll, typed.Results)
		result.Poll = &projected
	case *tg.UpdateMessagePollVote:
		result.PollAnswer = PollAnswer(typed, collector)
	case *tg.UpdateChannelParticipant:
		updated := ChannelMemberUpdated(typed, collector)
		if typed.UserID == collector.Self() {
			result.MyChatMember = updated
		} else {
			result.ChatMember = updated
		}
	case *tg.UpdateChatParticipant:
		updated := GroupMemberUpdated(typed, collector)
		if typed.UserID == collector.Self() {
			result.MyChatMember = updated
		} else {
			result.ChatMember = updated
		}
	case *tg.UpdateBotStopped:
		result.MyChatMember = PrivateMemberUpdated(typed, collector)
	case *tg.UpdateBotChatInviteRequester:
		result.ChatJoinRequest = JoinRequest(typed, collector)
	case *tg.UpdateBotMessageReaction:
		result.MessageReaction = MessageReaction(typed, collector)
	case *tg.UpdateBotMessageReactions:
		result.MessageReactionCount = MessageReactionCount(typed, collector)
	default:
		return result, false
	}

	return result, true
}

func newMessage(message tg.MessageClass, collector *Collector, edited bool) (botapi.Update, bool) {
	var result botapi.Update

	projected := Message(message, collector)
	if projected == nil {
		return result, false
	}

	channel := projected.Chat.Type == botapi.ChatTypeChannel
	switch {
	case channel && edited:
		result.EditedChannelPost = projected
	case channel:
		result.ChannelPost = projected
	case edited:
		result.EditedMessage = projected
	default:
		result.Message = projected
	}

	return result, true
}

// InlineQuery projects an incoming inline query.
func InlineQuery(update *tg.UpdateBotInlineQuery, collector *Collector) *botapi.InlineQuery {
	query := &botapi.InlineQuery{
		ID:     formatID(update.QueryID),
		From:   *UserByID(collector, update.UserID),
		Query:  update.Query,
		Offset: update.Offset,
	}
	if geo, ok := update.GetGeo(); ok {
		query.Location = LocationFromGeo(geo)
	}
	if peerType, ok := update.GetPeerType(); ok {
		query.ChatType = inlinePeerType(peerType)
	}

	return query
}

func inlinePeerType(peerType tg.InlineQueryPeerTypeClass) string {
	switch peerType.(type) {
	case *tg.InlineQueryPeerTypeSameBotPM:
		return "sender"
	case *tg.InlineQueryPeerTypePM, *tg.InlineQueryPeerTypeBotPM:
		return "private"
	case *tg.InlineQueryPeerTypeChat:
		return "group"
	case *tg.InlineQueryPeerTypeMegagroup:
		return "supergroup"
	case *tg.InlineQueryPeerTypeBroadcast:
		return "channel"
	default:
		return ""
	}
}

// ChosenInlineResult projects an inline result picked by a user.
func ChosenInlineResult(update *tg.UpdateBotInlineSend, collector *Collector) *botapi.ChosenInlineResult {
	chosen := &botapi.ChosenInlineResult{
		ResultID: update.ID,
		From:     *UserByID(collector, update.UserID),
		Query:    update.Query,
	}
	if geo, ok := update.GetGeo(); ok {
		chosen.Location = LocationFromGeo(geo)
	}
	if id, ok := update.GetMsgID(); ok {
		chosen.InlineMessageID, _ = codec.EncodeInlineMessageID(id)
	}

	return chosen
}

// CallbackQuery projects a button press on a chat message. The message only
// carries its id and chat until the caller loads it.
func CallbackQuery(update *tg.UpdateBotCallbackQuery, collector *Collector) *botapi.CallbackQuery {
	query := &botapi.CallbackQuery{
		ID:           formatID(update.QueryID),
		From:         *UserByID(collector, update.UserID),
		Message:      &botapi.Message{MessageID: update.MsgID, Chat: ChatFromPeer(update.Peer, collector)},
		ChatInstance: formatID(update.ChatInstance),
	}
	if data, ok := update.GetData(); ok {
		query.Data = string(data)
	}
	if game, ok := update.GetGameShortName(); ok {
		query.GameShortName = game
	}

	return query
}

// InlineCallbackQuery projects a button press on an inline message.
func InlineCallbackQuery(update *tg.UpdateInlineBotCallbackQuery, collector *Collector) *botapi.CallbackQuery {
	query := &botapi.CallbackQuery{
		ID:           formatID(update.QueryID),
		From:         *UserByID(collector, update.UserID),
		ChatInstance: formatID(update.ChatInstance),
	}
	query.InlineMessageID, _ = codec.EncodeInlineMessageID(update.MsgID)
	if data, ok := update.GetData(); ok {
		query.Data = string(data)
	}
	if game, ok := update.GetGameShortName(); ok {
		query.GameShortName = game
	}

	return query
}

// PreCheckoutQuery projects a pre-checkout query.
func PreCheckoutQuery(update *tg.UpdateBotPrecheckoutQuery, collector *Collector) *botapi.PreCheckoutQuery {
	query := &botapi.PreCheckoutQuery{
		ID:             formatID(update.QueryID),
		From:           *UserByID(collector, update.UserID),
		Currency:       update.Currency,
		TotalAmount:    update.TotalAmount,
		InvoicePayload: string(update.Payload),
	}
	if option, ok := update.GetShippingOptionID(); ok {
		query.ShippingOptionID = option
	}
	if info, ok := update.GetInfo(); ok {
		query.OrderInfo = OrderInfo(info)
	}

	return query
}

// PollAnswer projects a vote in a non-anonymous poll sent by the bot. Option
// keys are decimal positions.
func PollAnswer(update *tg.UpdateMessagePollVote, collector *Collector) *botapi.PollAnswer {
	answer := &botapi.PollAnswer{PollID: formatID(update.PollID), OptionIDs: []int{}}
	for _, option := range update.Options {
		if index, err := strconv.Atoi(string(option)); err == nil {
			answer.OptionIDs = append(answer.OptionIDs, index)
		}
	}

	switch peer := update.Peer.(type) {
	case *tg.PeerUser:
		answer.User = UserByID(collector, peer.UserID)
	default:
		answer.VoterChat = ChatPointerFromPeer(peer, collector)
	}

	return answer
}

// MessageReaction projects a reaction change by one actor.
func MessageReaction(update *tg.UpdateBotMessageReaction, collector *Collector) *botapi.MessageReactionUpdated {
	result := &botapi.MessageReactionUpdated{
		Chat:        ChatFromPeer(update.Peer, collector),
		MessageID:   update.MsgID,
		Date:        int64(update.Date),
		OldReaction: reactions(update.OldReactions),
		NewReaction: reactions(update.NewReactions),
	}
	switch actor := update.Actor.(type) {
	case *tg.PeerUser:
		result.User = UserByID(collector, actor.UserID)
	default:
		result.ActorChat = ChatPointerFromPeer(actor, collector)
	}

	return result
}

// MessageReactionCount projects anonymous reaction counters.
func MessageReactionCount(update *tg.UpdateBotMessageReactions, collector *Collector) *botapi.MessageReactionCountUpdated {
	result := &botapi.MessageReactionCountUpdated{
		Chat:      ChatFromPeer(update.Peer, collector),
		MessageID: update.MsgID,
		Date:      int64(update.Date),
		Reactions: []botapi.ReactionCount{},
	}
	for _, count := range update.Reactions {
		if reaction, ok := Reaction(count.Reaction); ok {
			result.Reactions = append(result.Reactions, botapi.ReactionCount{Type: reaction, TotalCount: count.Count})
		}
	}

	return result
}

func reactions(native []tg.ReactionClass) []botapi.ReactionType {
	projected := make([]botapi.ReactionType, 0, len(native))
	for _, reaction := range native {
		if typed, ok := Reaction(reaction); ok {
			projected = append(projected, typed)
		}
	}

	return projected
}
