package botapi

// UpdateKind names the payload carried by an Update.
type UpdateKind string

// Update kinds, matching the allowed_updates names of getUpdates.
const (
	UpdateKindMessage              UpdateKind = "message"
	UpdateKindEditedMessage        UpdateKind = "edited_message"
	UpdateKindChannelPost          UpdateKind = "channel_post"
	UpdateKindEditedChannelPost    UpdateKind = "edited_channel_post"
	UpdateKindMessageReaction      UpdateKind = "message_reaction"
	UpdateKindMessageReactionCount UpdateKind = "message_reaction_count"
	UpdateKindInlineQuery          UpdateKind = "inline_query"
	UpdateKindChosenInlineResult   UpdateKind = "chosen_inline_result"
	UpdateKindCallbackQuery        UpdateKind = "callback_query"
	UpdateKindShippingQuery        UpdateKind = "shipping_query"
	UpdateKindPreCheckoutQuery     UpdateKind = "pre_checkout_query"
	UpdateKindPoll                 UpdateKind = "poll"
	UpdateKindPollAnswer           UpdateKind = "poll_answer"
	UpdateKindMyChatMember         UpdateKind = "my_chat_member"
	UpdateKindChatMember           UpdateKind = "chat_member"
	UpdateKindChatJoinRequest      UpdateKind = "chat_join_request"
	UpdateKindUnknown              UpdateKind = "unknown"
)

// DefaultAllowedUpdates lists the kinds delivered when a caller does not
// specify allowed updates.
var DefaultAllowedUpdates = []UpdateKind{
	UpdateKindMessage,
	UpdateKindEditedMessage,
	UpdateKindChannelPost,
	UpdateKindEditedChannelPost,
	UpdateKindInlineQuery,
	UpdateKindChosenInlineResult,
	UpdateKindCallbackQuery,
	UpdateKindShippingQuery,
	UpdateKindPreCheckoutQuery,
	UpdateKindPoll,
	UpdateKindPollAnswer,
	UpdateKindMyChatMember,
	UpdateKindChatJoinRequest,
}

// Update is one incoming update. At most one optional field is set.
type Update struct {
	UpdateID             int                          `json:"update_id"`
	Message              *Message                     `json:"message,omitempty"`
	EditedMessage        *Message                     `json:"edited_message,omitempty"`
	ChannelPost          *Message                     `json:"channel_post,omitempty"`
	EditedChannelPost    *Message                     `json:"edited_channel_post,omitempty"`
	MessageReaction      *MessageReactionUpdated      `json:"message_reaction,omitempty"`
	MessageReactionCount *MessageReactionCountUpdated `json:"message_reaction_count,omitempty"`
	InlineQuery          *InlineQuery                 `json:"inline_query,omitempty"`
	ChosenInlineResult   *ChosenInlineResult          `json:"chosen_inline_result,omitempty"`
	CallbackQuery        *CallbackQuery               `json:"callback_query,omitempty"`
	ShippingQuery        *ShippingQuery               `json:"shipping_query,omitempty"`
	PreCheckoutQuery     *PreCheckoutQuery            `json:"pre_checkout_query,omitempty"`
	Poll                 *Poll                        `json:"poll,omitempty"`
	PollAnswer           *PollAnswer                  `json:"poll_answer,omitempty"`
	MyChatMember         *ChatMemberUpdated           `json:"my_chat_member,omitempty"`
	ChatMember           *ChatMemberUpdated           `json:"chat_member,omitempty"`
	ChatJoinRequest      *ChatJoinRequest             `json:"chat_join_request,omitempty"`
}

// Kind reports which payload the update carries.
func (u Update) Kind() UpdateKind {
	switch {
	case u.Message != nil:
		return UpdateKindMessage
	case u.EditedMessage != nil:
		return UpdateKindEditedMessage
	case u.ChannelPost != nil:
		return UpdateKindChannelPost
	case u.EditedChannelPost != nil:
		return UpdateKindEditedChannelPost
	case u.MessageReaction != nil:
		return UpdateKindMessageReaction
	case u.MessageReactionCount != nil:
		return UpdateKindMessageReactionCount
	case u.InlineQuery != nil:
		return UpdateKindInlineQuery
	case u.ChosenInlineResult != nil:
		return UpdateKindChosenInlineResult
	case u.CallbackQuery != nil:
		return UpdateKindCallbackQuery
	case u.ShippingQuery != nil:
		return UpdateKindShippingQuery
	case u.PreCheckoutQuery != nil:
		return UpdateKindPreCheckoutQuery
	case u.Poll != nil:
		return UpdateKindPoll
	case u.PollAnswer != nil:
		return UpdateKindPollAnswer
	case u.MyChatMember != nil:
		return UpdateKindMyChatMember
	case u.ChatMember != nil:
		return UpdateKindChatMember
	case u.ChatJoinRequest != nil:
		return UpdateKindChatJoinRequest
	default:
		return UpdateKindUnknown
	}
}

// EffectiveChat returns the chat an update belongs to when one exists.
func (u Update) EffectiveChat() *Chat {
	switch {
	case u.Message != nil:
		return &u.Message.Chat
	case u.EditedMessage != nil:
		return &u.EditedMessage.Chat
	case u.ChannelPost != nil:
		return &u.ChannelPost.Chat
	case u.EditedChannelPost != nil:
		return &u.EditedChannelPost.Chat
	case u.MessageReaction != nil:
		return &u.MessageReaction.Chat
	case u.MessageReactionCount != nil:
		return &u.MessageReactionCount.Chat
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return &u.CallbackQuery.Message.Chat
	case u.MyChatMember != nil:
		return &u.MyChatMember.Chat
	case u.ChatMember != nil:
		return &u.ChatMember.Chat
	case u.ChatJoinRequest != nil:
		return &u.ChatJoinRequest.Chat
	default:
		return nil
	}
}

// CallbackQuery is a press of an inline keyboard button.
//
// Message is set for buttons of chat messages; InlineMessageID for buttons
// of inline messages.
type CallbackQuery struct {
	ID              string   `json:"id"`
	From            User     `json:"from"`
	Message         *Message `json:"message,omitempty"`
	InlineMessageID string   `json:"inline_message_id,omitempty"`
	ChatInstance    string   `json:"chat_instance"`
	Data            string   `json:"data,omitempty"`
	GameShortName   string   `json:"game_short_name,omitempty"`
}

// MessageReactionUpdated is a change of reactions set by one user.
type MessageReactionUpdated struct {
	Chat        Chat           `json:"chat"`
	MessageID   int            `json:"message_id"`
	User        *User          `json:"user,omitempty"`
	ActorChat   *Chat          `json:"actor_chat,omitempty"`
	Date        int64          `json:"date"`
	OldReaction []ReactionType `json:"old_reaction"`
	NewReaction []ReactionType `json:"new_reaction"`
}

// ReactionCount is the number of times one reaction was added.
type ReactionCount struct {
	Type       ReactionType `json:"type"`
	TotalCount int          `json:"total_count"`
}

// MessageReactionCountUpdated is a change of anonymous reaction counters.
type MessageReactionCountUpdated struct {
	Chat      Chat            `json:"chat"`
	MessageID int             `json:"message_id"`
	Date      int64           `json:"date"`
	Reactions []ReactionCount `json:"reactions"`
}

// WebhookInfo describes the webhook state. Webhooks are never configured by
// this adapter.
type WebhookInfo struct {
	URL                  string `json:"url"`
	HasCustomCertificate bool   `json:"has_custom_certificate"`
	PendingUpdateCount   int    `json:"pending_update_count"`
}
