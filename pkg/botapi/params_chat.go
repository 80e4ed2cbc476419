package botapi

// ChatMemberParams addresses one member of one chat.
type ChatMemberParams struct {
	ChatID ChatID
	UserID int64
}

// Validate checks chat and user identifiers.
func (p ChatMemberParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateUserID(p.UserID)
}

// BanChatMemberParams configures banChatMember.
type BanChatMemberParams struct {
	ChatID         ChatID
	UserID         int64
	UntilDate      int64
	RevokeMessages bool
}

// Validate checks chat and user identifiers.
func (p BanChatMemberParams) Validate() error {
	return ChatMemberParams{ChatID: p.ChatID, UserID: p.UserID}.Validate()
}

// UnbanChatMemberParams configures unbanChatMember.
//
// With OnlyIfBanned set, a user who is not banned is left untouched.
type UnbanChatMemberParams struct {
	ChatID       ChatID
	UserID       int64
	OnlyIfBanned bool
}

// Validate checks chat and user identifiers.
func (p UnbanChatMemberParams) Validate() error {
	return ChatMemberParams{ChatID: p.ChatID, UserID: p.UserID}.Validate()
}

// RestrictChatMemberParams configures restrictChatMember.
//
// Without UseIndependentChatPermissions the legacy implications between
// can_send_messages and the media permissions apply.
type RestrictChatMemberParams struct {
	ChatID                        ChatID
	UserID                        int64
	Permissions                   ChatPermissions
	UseIndependentChatPermissions bool
	UntilDate                     int64
}

// Validate checks chat and user identifiers.
func (p RestrictChatMemberParams) Validate() error {
	return ChatMemberParams{ChatID: p.ChatID, UserID: p.UserID}.Validate()
}

// PromoteChatMemberParams configures promoteChatMember.
//
// Passing no rights demotes the user.
type PromoteChatMemberParams struct {
	ChatID ChatID
	UserID int64
	ChatAdministratorRights
}

// Validate checks chat and user identifiers.
func (p PromoteChatMemberParams) Validate() error {
	return ChatMemberParams{ChatID: p.ChatID, UserID: p.UserID}.Validate()
}

// SetChatAdministratorCustomTitleParams configures setChatAdministratorCustomTitle.
type SetChatAdministratorCustomTitleParams struct {
	ChatID      ChatID
	UserID      int64
	CustomTitle string
}

// Validate checks identifiers and title length.
func (p SetChatAdministratorCustomTitleParams) Validate() error {
	if err := (ChatMemberParams{ChatID: p.ChatID, UserID: p.UserID}).Validate(); err != nil {
		return err
	}
	if len([]rune(p.CustomTitle)) > 16 {
		return invalidParam("custom_title must be at most 16 characters")
	}

	return nil
}

// SenderChatParams configures banChatSenderChat and unbanChatSenderChat.
type SenderChatParams struct {
	ChatID       ChatID
	SenderChatID int64
}

// Validate checks both chat identifiers.
func (p SenderChatParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if p.SenderChatID >= 0 {
		return invalidParam("sender_chat_id must identify a chat")
	}

	return nil
}

// SetChatPermissionsParams configures setChatPermissions.
type SetChatPermissionsParams struct {
	ChatID                        ChatID
	Permissions                   ChatPermissions
	UseIndependentChatPermissions bool
}

// Validate checks the chat.
func (p SetChatPermissionsParams) Validate() error {
	return p.ChatID.Validate()
}

// ChatInviteLinkParams configures createChatInviteLink and editChatInviteLink.
//
// InviteLink is required only when editing.
type ChatInviteLinkParams struct {
	ChatID             ChatID
	InviteLink         string
	Name               string
	ExpireDate         int64
	MemberLimit        int
	CreatesJoinRequest bool
}

// Validate checks the chat and mutually exclusive options.
func (p ChatInviteLinkParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if len([]rune(p.Name)) > 32 {
		return invalidParam("name must be at most 32 characters")
	}
	if p.MemberLimit < 0 || p.MemberLimit > 99999 {
		return invalidParam("member_limit must be between 1 and 99999")
	}
	if p.CreatesJoinRequest && p.MemberLimit > 0 {
		return invalidParam("member_limit cannot be combined with creates_join_request")
	}

	return nil
}

// RevokeChatInviteLinkParams configures revokeChatInviteLink.
type RevokeChatInviteLinkParams struct {
	ChatID     ChatID
	InviteLink string
}

// Validate checks required fields.
func (p RevokeChatInviteLinkParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateRequired("invite_link", p.InviteLink)
}

// SetChatPhotoParams configures setChatPhoto.
type SetChatPhotoParams struct {
	ChatID ChatID
	Photo  InputFile
}

// Validate requires an uploaded photo.
func (p SetChatPhotoParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if !p.Photo.IsUpload() {
		return invalidParam("photo must be uploaded")
	}

	return nil
}

// SetChatTitleParams configures setChatTitle.
type SetChatTitleParams struct {
	ChatID ChatID
	Title  string
}

// Validate checks title length.
func (p SetChatTitleParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := validateRequired("title", p.Title); err != nil {
		return err
	}
	if len([]rune(p.Title)) > 128 {
		return invalidParam("title must be at most 128 characters")
	}

	return nil
}

// SetChatDescriptionParams configures setChatDescription.
type SetChatDescriptionParams struct {
	ChatID      ChatID
	Description string
}

// Validate checks description length.
func (p SetChatDescriptionParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if len([]rune(p.Description)) > 255 {
		return invalidParam("description must be at most 255 characters")
	}

	return nil
}

// PinChatMessageParams configures pinChatMessage.
type PinChatMessageParams struct {
	ChatID              ChatID
	MessageID           int
	DisableNotification bool
}

// Validate checks required fields.
func (p PinChatMessageParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateMessageID(p.MessageID)
}

// UnpinChatMessageParams configures unpinChatMessage.
//
// A zero MessageID unpins the most recent pinned message.
type UnpinChatMessageParams struct {
	ChatID    ChatID
	MessageID int
}

// Validate checks the chat.
func (p UnpinChatMessageParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if p.MessageID < 0 {
		return invalidParam("message_id must not be negative")
	}

	return nil
}

// SetChatStickerSetParams configures setChatStickerSet.
type SetChatStickerSetParams struct {
	ChatID         ChatID
	StickerSetName string
}

// Validate checks required fields.
func (p SetChatStickerSetParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateRequired("sticker_set_name", p.StickerSetName)
}

// CreateForumTopicParams configures createForumTopic.
type CreateForumTopicParams struct {
	ChatID            ChatID
	Name              string
	IconColor         int
	IconCustomEmojiID string
}

// Validate checks name length and icon color.
func (p CreateForumTopicParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := validateTopicName(p.Name); err != nil {
		return err
	}
	switch p.IconColor {
	case 0, 0x6FB9F0, 0xFFD67E, 0xCB86DB, 0x8EEE98, 0xFF93B2, 0xFB6F5F:
		return nil
	default:
		return invalidParam("unsupported icon_color %d", p.IconColor)
	}
}

// EditForumTopicParams configures editForumTopic.
//
// A nil IconCustomEmojiID keeps the current icon; an empty one removes it.
type EditForumTopicParams struct {
	ChatID            ChatID
	MessageThreadID   int
	Name              string
	IconCustomEmojiID *string
}

// Validate checks the topic and name.
func (p EditForumTopicParams) Validate() error {
	if err := (ForumTopicParams{ChatID: p.ChatID, MessageThreadID: p.MessageThreadID}).Validate(); err != nil {
		return err
	}
	if p.Name != "" {
		return validateTopicName(p.Name)
	}

	return nil
}

// ForumTopicParams addresses one forum topic.
type ForumTopicParams struct {
	ChatID          ChatID
	MessageThreadID int
}

// Validate checks the chat and thread identifier.
func (p ForumTopicParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if p.MessageThreadID <= 0 {
		return invalidParam("message_thread_id must be positive")
	}

	return nil
}

// EditGeneralForumTopicParams configures editGeneralForumTopic.
type EditGeneralForumTopicParams struct {
	ChatID ChatID
	Name   string
}

// Validate checks the chat and name.
func (p EditGeneralForumTopicParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateTopicName(p.Name)
}

func validateTopicName(name string) error {
	length := len([]rune(name))
	if length == 0 || length > 128 {
		return invalidParam("name must be 1-128 characters")
	}

	return nil
}
