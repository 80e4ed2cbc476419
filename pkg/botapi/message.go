package botapi

// MessageType is the derived kind of a message.
type MessageType string

// Message kinds reported by Message.Type.
const (
	MessageTypeText                         MessageType = "text"
	MessageTypeAnimation                    MessageType = "animation"
	MessageTypeAudio                        MessageType = "audio"
	MessageTypeDocument                     MessageType = "document"
	MessageTypePhoto                        MessageType = "photo"
	MessageTypeSticker                      MessageType = "sticker"
	MessageTypeStory                        MessageType = "story"
	MessageTypeVideo                        MessageType = "video"
	MessageTypeVideoNote                    MessageType = "video_note"
	MessageTypeVoice                        MessageType = "voice"
	MessageTypeContact                      MessageType = "contact"
	MessageTypeDice                         MessageType = "dice"
	MessageTypeGame                         MessageType = "game"
	MessageTypePoll                         MessageType = "poll"
	MessageTypeVenue                        MessageType = "venue"
	MessageTypeLocation                     MessageType = "location"
	MessageTypeNewChatMembers               MessageType = "new_chat_members"
	MessageTypeLeftChatMember               MessageType = "left_chat_member"
	MessageTypeNewChatTitle                 MessageType = "new_chat_title"
	MessageTypeNewChatPhoto                 MessageType = "new_chat_photo"
	MessageTypeDeleteChatPhoto              MessageType = "delete_chat_photo"
	MessageTypeGroupChatCreated             MessageType = "group_chat_created"
	MessageTypeSupergroupChatCreated        MessageType = "supergroup_chat_created"
	MessageTypeChannelChatCreated           MessageType = "channel_chat_created"
	MessageTypeMessageAutoDeleteTimer       MessageType = "message_auto_delete_timer_changed"
	MessageTypeMigrateToChatID              MessageType = "migrate_to_chat_id"
	MessageTypeMigrateFromChatID            MessageType = "migrate_from_chat_id"
	MessageTypePinnedMessage                MessageType = "pinned_message"
	MessageTypeInvoice                      MessageType = "invoice"
	MessageTypeSuccessfulPayment            MessageType = "successful_payment"
	MessageTypeUsersShared                  MessageType = "users_shared"
	MessageTypeChatShared                   MessageType = "chat_shared"
	MessageTypeConnectedWebsite             MessageType = "connected_website"
	MessageTypeWriteAccessAllowed           MessageType = "write_access_allowed"
	MessageTypePassportData                 MessageType = "passport_data"
	MessageTypeProximityAlertTriggered      MessageType = "proximity_alert_triggered"
	MessageTypeForumTopicCreated            MessageType = "forum_topic_created"
	MessageTypeForumTopicEdited             MessageType = "forum_topic_edited"
	MessageTypeForumTopicClosed             MessageType = "forum_topic_closed"
	MessageTypeForumTopicReopened           MessageType = "forum_topic_reopened"
	MessageTypeGeneralForumTopicHidden      MessageType = "general_forum_topic_hidden"
	MessageTypeGeneralForumTopicUnhidden    MessageType = "general_forum_topic_unhidden"
	MessageTypeVideoChatScheduled           MessageType = "video_chat_scheduled"
	MessageTypeVideoChatStarted             MessageType = "video_chat_started"
	MessageTypeVideoChatEnded               MessageType = "video_chat_ended"
	MessageTypeVideoChatParticipantsInvited MessageType = "video_chat_participants_invited"
	MessageTypeWebAppData                   MessageType = "web_app_data"
	MessageTypeUnknown                      MessageType = "unknown"
)

// Message mirrors a Telegram message.
//
// Animation messages also carry Document and venue messages also carry
// Location, so Type tests fields in a fixed order.
type Message struct {
	MessageID             int                 `json:"message_id"`
	MessageThreadID       int                 `json:"message_thread_id,omitempty"`
	From                  *User               `json:"from,omitempty"`
	SenderChat            *Chat               `json:"sender_chat,omitempty"`
	Date                  int64               `json:"date"`
	Chat                  Chat                `json:"chat"`
	ForwardOrigin         *MessageOrigin      `json:"forward_origin,omitempty"`
	IsTopicMessage        bool                `json:"is_topic_message,omitempty"`
	IsAutomaticForward    bool                `json:"is_automatic_forward,omitempty"`
	ReplyToMessage        *Message            `json:"reply_to_message,omitempty"`
	ReplyToMessageID      int                 `json:"-"`
	ViaBot                *User               `json:"via_bot,omitempty"`
	EditDate              int64               `json:"edit_date,omitempty"`
	HasProtectedContent   bool                `json:"has_protected_content,omitempty"`
	MediaGroupID          string              `json:"media_group_id,omitempty"`
	AuthorSignature       string              `json:"author_signature,omitempty"`
	Text                  string              `json:"text,omitempty"`
	Entities              []MessageEntity     `json:"entities,omitempty"`
	LinkPreviewOptions    *LinkPreviewOptions `json:"link_preview_options,omitempty"`
	Animation             *Animation          `json:"animation,omitempty"`
	Audio                 *Audio              `json:"audio,omitempty"`
	Document              *Document           `json:"document,omitempty"`
	Photo                 []PhotoSize         `json:"photo,omitempty"`
	Sticker               *Sticker            `json:"sticker,omitempty"`
	Story                 *Story              `json:"story,omitempty"`
	Video                 *Video              `json:"video,omitempty"`
	VideoNote             *VideoNote          `json:"video_note,omitempty"`
	Voice                 *Voice              `json:"voice,omitempty"`
	Caption               string              `json:"caption,omitempty"`
	CaptionEntities       []MessageEntity     `json:"caption_entities,omitempty"`
	HasMediaSpoiler       bool                `json:"has_media_spoiler,omitempty"`
	Contact               *Contact            `json:"contact,omitempty"`
	Dice                  *Dice               `json:"dice,omitempty"`
	Game                  *Game               `json:"game,omitempty"`
	Poll                  *Poll               `json:"poll,omitempty"`
	Venue                 *Venue              `json:"venue,omitempty"`
	Location              *Location           `json:"location,omitempty"`
	NewChatMembers        []User              `json:"new_chat_members,omitempty"`
	LeftChatMember        *User               `json:"left_chat_member,omitempty"`
	NewChatTitle          string              `json:"new_chat_title,omitempty"`
	NewChatPhoto          []PhotoSize         `json:"new_chat_photo,omitempty"`
	DeleteChatPhoto       bool                `json:"delete_chat_photo,omitempty"`
	GroupChatCreated      bool                `json:"group_chat_created,omitempty"`
	SupergroupChatCreated bool                `json:"supergroup_chat_created,omitempty"`
	ChannelChatCreated    bool                `json:"channel_chat_created,omitempty"`

	MessageAutoDeleteTimerChanged *MessageAutoDeleteTimerChanged `json:"message_auto_delete_timer_changed,omitempty"`

	MigrateToChatID              int64                         `json:"migrate_to_chat_id,omitempty"`
	MigrateFromChatID            int64                         `json:"migrate_from_chat_id,omitempty"`
	PinnedMessage                *Message                      `json:"pinned_message,omitempty"`
	Invoice                      *Invoice                      `json:"invoice,omitempty"`
	SuccessfulPayment            *SuccessfulPayment            `json:"successful_payment,omitempty"`
	UsersShared                  *UsersShared                  `json:"users_shared,omitempty"`
	ChatShared                   *ChatShared                   `json:"chat_shared,omitempty"`
	ConnectedWebsite             string                        `json:"connected_website,omitempty"`
	WriteAccessAllowed           *WriteAccessAllowed           `json:"write_access_allowed,omitempty"`
	PassportData                 *struct{}                     `json:"passport_data,omitempty"`
	ProximityAlertTriggered      *ProximityAlertTriggered      `json:"proximity_alert_triggered,omitempty"`
	ForumTopicCreated            *ForumTopicCreated            `json:"forum_topic_created,omitempty"`
	ForumTopicEdited             *ForumTopicEdited             `json:"forum_topic_edited,omitempty"`
	ForumTopicClosed             *struct{}                     `json:"forum_topic_closed,omitempty"`
	ForumTopicReopened           *struct{}                     `json:"forum_topic_reopened,omitempty"`
	GeneralForumTopicHidden      *struct{}                     `json:"general_forum_topic_hidden,omitempty"`
	GeneralForumTopicUnhidden    *struct{}                     `json:"general_forum_topic_unhidden,omitempty"`
	VideoChatScheduled           *VideoChatScheduled           `json:"video_chat_scheduled,omitempty"`
	VideoChatStarted             *struct{}                     `json:"video_chat_started,omitempty"`
	VideoChatEnded               *VideoChatEnded               `json:"video_chat_ended,omitempty"`
	VideoChatParticipantsInvited *VideoChatParticipantsInvited `json:"video_chat_participants_invited,omitempty"`
	WebAppData                   *WebAppData                   `json:"web_app_data,omitempty"`
	ReplyMarkup                  *InlineKeyboardMarkup         `json:"reply_markup,omitempty"`
}

// Type derives the message kind from the populated payload fields.
func (m *Message) Type() MessageType {
	if m == nil {
		return MessageTypeUnknown
	}

	switch {
	case m.Text != "":
		return MessageTypeText
	case m.Animation != nil:
		return MessageTypeAnimation
	case m.Audio != nil:
		return MessageTypeAudio
	case m.Document != nil:
		return MessageTypeDocument
	case len(m.Photo) > 0:
		return MessageTypePhoto
	case m.Sticker != nil:
		return MessageTypeSticker
	case m.Story != nil:
		return MessageTypeStory
	case m.Video != nil:
		return MessageTypeVideo
	case m.VideoNote != nil:
		return MessageTypeVideoNote
	case m.Voice != nil:
		return MessageTypeVoice
	case m.Contact != nil:
		return MessageTypeContact
	case m.Dice != nil:
		return MessageTypeDice
	case m.Game != nil:
		return MessageTypeGame
	case m.Poll != nil:
		return MessageTypePoll
	case m.Venue != nil:
		return MessageTypeVenue
	case m.Location != nil && m.Venue == nil:
		return MessageTypeLocation
	case len(m.NewChatMembers) > 0:
		return MessageTypeNewChatMembers
	case m.LeftChatMember != nil:
		return MessageTypeLeftChatMember
	case m.NewChatTitle != "":
		return MessageTypeNewChatTitle
	case len(m.NewChatPhoto) > 0:
		return MessageTypeNewChatPhoto
	case m.DeleteChatPhoto:
		return MessageTypeDeleteChatPhoto
	case m.GroupChatCreated:
		return MessageTypeGroupChatCreated
	case m.SupergroupChatCreated:
		return MessageTypeSupergroupChatCreated
	case m.ChannelChatCreated:
		return MessageTypeChannelChatCreated
	case m.MessageAutoDeleteTimerChanged != nil:
		return MessageTypeMessageAutoDeleteTimer
	case m.MigrateToChatID != 0:
		return MessageTypeMigrateToChatID
	case m.MigrateFromChatID != 0:
		return MessageTypeMigrateFromChatID
	case m.PinnedMessage != nil:
		return MessageTypePinnedMessage
	case m.Invoice != nil:
		return MessageTypeInvoice
	case m.SuccessfulPayment != nil:
		return MessageTypeSuccessfulPayment
	case m.UsersShared != nil:
		return MessageTypeUsersShared
	case m.ChatShared != nil:
		return MessageTypeChatShared
	case m.ConnectedWebsite != "":
		return MessageTypeConnectedWebsite
	case m.WriteAccessAllowed != nil:
		return MessageTypeWriteAccessAllowed
	case m.PassportData != nil:
		return MessageTypePassportData
	case m.ProximityAlertTriggered != nil:
		return MessageTypeProximityAlertTriggered
	case m.ForumTopicCreated != nil:
		return MessageTypeForumTopicCreated
	case m.ForumTopicEdited != nil:
		return MessageTypeForumTopicEdited
	case m.ForumTopicClosed != nil:
		return MessageTypeForumTopicClosed
	case m.ForumTopicReopened != nil:
		return MessageTypeForumTopicReopened
	case m.GeneralForumTopicHidden != nil:
		return MessageTypeGeneralForumTopicHidden
	case m.GeneralForumTopicUnhidden != nil:
		return MessageTypeGeneralForumTopicUnhidden
	case m.VideoChatScheduled != nil:
		return MessageTypeVideoChatScheduled
	case m.VideoChatStarted != nil:
		return MessageTypeVideoChatStarted
	case m.VideoChatEnded != nil:
		return MessageTypeVideoChatEnded
	case m.VideoChatParticipantsInvited != nil:
		return MessageTypeVideoChatParticipantsInvited
	case m.WebAppData != nil:
		return MessageTypeWebAppData
	default:
		return MessageTypeUnknown
	}
}

// IsCommand reports whether the message starts with a bot command entity.
func (m *Message) IsCommand() bool {
	if m == nil || len(m.Entities) == 0 {
		return false
	}

	first := m.Entities[0]
	return first.Offset == 0 && first.Type == EntityTypeBotCommand
}

// ForwardFrom returns the original sender of a message forwarded from a user.
func (m *Message) ForwardFrom() *User {
	if m == nil || m.ForwardOrigin == nil || m.ForwardOrigin.Type != OriginTypeUser {
		return nil
	}

	return m.ForwardOrigin.SenderUser
}

// ForwardFromChat returns the source chat of a message forwarded from a channel
// or sent on behalf of a chat.
func (m *Message) ForwardFromChat() *Chat {
	if m == nil || m.ForwardOrigin == nil {
		return nil
	}

	switch m.ForwardOrigin.Type {
	case OriginTypeChannel:
		return m.ForwardOrigin.Chat
	case OriginTypeChat:
		return m.ForwardOrigin.SenderChat
	default:
		return nil
	}
}

// ForwardFromMessageID returns the source message id for channel forwards.
func (m *Message) ForwardFromMessageID() int {
	if m == nil || m.ForwardOrigin == nil || m.ForwardOrigin.Type != OriginTypeChannel {
		return 0
	}

	return m.ForwardOrigin.MessageID
}

// ForwardSignature returns the author signature of the forwarded message.
func (m *Message) ForwardSignature() string {
	if m == nil || m.ForwardOrigin == nil {
		return ""
	}

	return m.ForwardOrigin.AuthorSignature
}

// ForwardSenderName returns the display name of a sender that hides their account.
func (m *Message) ForwardSenderName() string {
	if m == nil || m.ForwardOrigin == nil || m.ForwardOrigin.Type != OriginTypeHiddenUser {
		return ""
	}

	return m.ForwardOrigin.SenderUserName
}

// ForwardDate returns the original send date of a forwarded message.
func (m *Message) ForwardDate() int64 {
	if m == nil || m.ForwardOrigin == nil {
		return 0
	}

	return m.ForwardOrigin.Date
}

// OriginType discriminates MessageOrigin variants.
type OriginType string

const (
	// OriginTypeUser is a message originally sent by a known user.
	OriginTypeUser OriginType = "user"
	// OriginTypeHiddenUser is a message sent by a user who hides their account.
	OriginTypeHiddenUser OriginType = "hidden_user"
	// OriginTypeChat is a message sent on behalf of a chat.
	OriginTypeChat OriginType = "chat"
	// OriginTypeChannel is a message originally posted in a channel.
	OriginTypeChannel OriginType = "channel"
)

// MessageOrigin is the tagged origin of a forwarded message.
type MessageOrigin struct {
	Type            OriginType `json:"type"`
	Date            int64      `json:"date"`
	SenderUser      *User      `json:"sender_user,omitempty"`
	SenderUserName  string     `json:"sender_user_name,omitempty"`
	SenderChat      *Chat      `json:"sender_chat,omitempty"`
	Chat            *Chat      `json:"chat,omitempty"`
	MessageID       int        `json:"message_id,omitempty"`
	AuthorSignature string     `json:"author_signature,omitempty"`
}

// EntityType is the kind of a text entity.
type EntityType string

// Text entity kinds.
const (
	EntityTypeMention              EntityType = "mention"
	EntityTypeHashtag              EntityType = "hashtag"
	EntityTypeCashtag              EntityType = "cashtag"
	EntityTypeBotCommand           EntityType = "bot_command"
	EntityTypeURL                  EntityType = "url"
	EntityTypeEmail                EntityType = "email"
	EntityTypePhoneNumber          EntityType = "phone_number"
	EntityTypeBold                 EntityType = "bold"
	EntityTypeItalic               EntityType = "italic"
	EntityTypeUnderline            EntityType = "underline"
	EntityTypeStrikethrough        EntityType = "strikethrough"
	EntityTypeSpoiler              EntityType = "spoiler"
	EntityTypeBlockquote           EntityType = "blockquote"
	EntityTypeExpandableBlockquote EntityType = "expandable_blockquote"
	EntityTypeCode                 EntityType = "code"
	EntityTypePre                  EntityType = "pre"
	EntityTypeTextLink             EntityType = "text_link"
	EntityTypeTextMention          EntityType = "text_mention"
	EntityTypeCustomEmoji          EntityType = "custom_emoji"
)

// MessageEntity is one formatted range of a text, measured in UTF-16 code units.
type MessageEntity struct {
	Type          EntityType `json:"type"`
	Offset        int        `json:"offset"`
	Length        int        `json:"length"`
	URL           string     `json:"url,omitempty"`
	User          *User      `json:"user,omitempty"`
	Language      string     `json:"language,omitempty"`
	CustomEmojiID string     `json:"custom_emoji_id,omitempty"`
}

// LinkPreviewOptions controls link preview generation.
type LinkPreviewOptions struct {
	IsDisabled       bool   `json:"is_disabled,omitempty"`
	URL              string `json:"url,omitempty"`
	PreferSmallMedia bool   `json:"prefer_small_media,omitempty"`
	PreferLargeMedia bool   `json:"prefer_large_media,omitempty"`
	ShowAboveText    bool   `json:"show_above_text,omitempty"`
}

// MessageID identifies a message produced by copy operations.
type MessageID struct {
	MessageID int `json:"message_id"`
}

// MessageAutoDeleteTimerChanged is a service payload.
type MessageAutoDeleteTimerChanged struct {
	MessageAutoDeleteTime int `json:"message_auto_delete_time"`
}

// UsersShared is a service payload for users picked with a request button.
type UsersShared struct {
	RequestID int     `json:"request_id"`
	UserIDs   []int64 `json:"user_ids"`
}

// ChatShared is a service payload for a chat picked with a request button.
type ChatShared struct {
	RequestID int   `json:"request_id"`
	ChatID    int64 `json:"chat_id"`
}

// WriteAccessAllowed is a service payload.
type WriteAccessAllowed struct {
	FromRequest        bool   `json:"from_request,omitempty"`
	WebAppName         string `json:"web_app_name,omitempty"`
	FromAttachmentMenu bool   `json:"from_attachment_menu,omitempty"`
}

// ProximityAlertTriggered is a service payload.
type ProximityAlertTriggered struct {
	Traveler User `json:"traveler"`
	Watcher  User `json:"watcher"`
	Distance int  `json:"distance"`
}

// ForumTopicCreated is a service payload.
type ForumTopicCreated struct {
	Name              string `json:"name"`
	IconColor         int    `json:"icon_color"`
	IconCustomEmojiID string `json:"icon_custom_emoji_id,omitempty"`
}

// ForumTopicEdited is a service payload.
type ForumTopicEdited struct {
	Name              string  `json:"name,omitempty"`
	IconCustomEmojiID *string `json:"icon_custom_emoji_id,omitempty"`
}

// VideoChatScheduled is a service payload.
type VideoChatScheduled struct {
	StartDate int64 `json:"start_date"`
}

// VideoChatEnded is a service payload.
type VideoChatEnded struct {
	Duration int `json:"duration"`
}

// VideoChatParticipantsInvited is a service payload.
type VideoChatParticipantsInvited struct {
	Users []User `json:"users"`
}

// WebAppData is data sent from a Web App keyboard button.
type WebAppData struct {
	Data       string `json:"data"`
	ButtonText string `json:"button_text"`
}
