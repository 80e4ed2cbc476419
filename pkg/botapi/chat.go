package botapi

import (
	"encoding/json"
	"fmt"
)

// ChatType is the Bot API chat kind.
type ChatType string

const (
	// ChatTypePrivate is a one-to-one chat with a user.
	ChatTypePrivate ChatType = "private"
	// ChatTypeGroup is a basic group.
	ChatTypeGroup ChatType = "group"
	// ChatTypeSupergroup is a megagroup channel.
	ChatTypeSupergroup ChatType = "supergroup"
	// ChatTypeChannel is a broadcast channel.
	ChatTypeChannel ChatType = "channel"
)

// User mirrors a Telegram user or bot.
type User struct {
	ID                      int64  `json:"id"`
	IsBot                   bool   `json:"is_bot"`
	FirstName               string `json:"first_name"`
	LastName                string `json:"last_name,omitempty"`
	Username                string `json:"username,omitempty"`
	LanguageCode            string `json:"language_code,omitempty"`
	IsPremium               bool   `json:"is_premium,omitempty"`
	AddedToAttachmentMenu   bool   `json:"added_to_attachment_menu,omitempty"`
	CanJoinGroups           bool   `json:"can_join_groups,omitempty"`
	CanReadAllGroupMessages bool   `json:"can_read_all_group_messages,omitempty"`
	SupportsInlineQueries   bool   `json:"supports_inline_queries,omitempty"`

	// AccessHash is the MTProto access hash seen with this user.
	AccessHash int64 `json:"-"`
}

// Chat mirrors a Telegram chat.
//
// Fields after IsForum are only populated by GetChat.
type Chat struct {
	ID        int64    `json:"id"`
	Type      ChatType `json:"type"`
	Title     string   `json:"title,omitempty"`
	Username  string   `json:"username,omitempty"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	IsForum   bool     `json:"is_forum,omitempty"`

	Photo                              *ChatPhoto       `json:"photo,omitempty"`
	ActiveUsernames                    []string         `json:"active_usernames,omitempty"`
	EmojiStatusCustomEmojiID           string           `json:"emoji_status_custom_emoji_id,omitempty"`
	EmojiStatusExpirationDate          int64            `json:"emoji_status_expiration_date,omitempty"`
	Bio                                string           `json:"bio,omitempty"`
	HasPrivateForwards                 bool             `json:"has_private_forwards,omitempty"`
	HasRestrictedVoiceAndVideoMessages bool             `json:"has_restricted_voice_and_video_messages,omitempty"`
	JoinToSendMessages                 bool             `json:"join_to_send_messages,omitempty"`
	JoinByRequest                      bool             `json:"join_by_request,omitempty"`
	Description                        string           `json:"description,omitempty"`
	InviteLink                         string           `json:"invite_link,omitempty"`
	PinnedMessage                      *Message         `json:"pinned_message,omitempty"`
	Permissions                        *ChatPermissions `json:"permissions,omitempty"`
	SlowModeDelay                      int              `json:"slow_mode_delay,omitempty"`
	MessageAutoDeleteTime              int              `json:"message_auto_delete_time,omitempty"`
	HasAggressiveAntiSpamEnabled       bool             `json:"has_aggressive_anti_spam_enabled,omitempty"`
	HasHiddenMembers                   bool             `json:"has_hidden_members,omitempty"`
	HasProtectedContent                bool             `json:"has_protected_content,omitempty"`
	StickerSetName                     string           `json:"sticker_set_name,omitempty"`
	CanSetStickerSet                   bool             `json:"can_set_sticker_set,omitempty"`
	LinkedChatID                       *int64           `json:"linked_chat_id,omitempty"`
	Location                           *ChatLocation    `json:"location,omitempty"`

	// AccessHash is the MTProto access hash seen with this chat.
	AccessHash int64 `json:"-"`
}

// ChatPhoto carries file identifiers of a chat avatar.
type ChatPhoto struct {
	SmallFileID       string `json:"small_file_id"`
	SmallFileUniqueID string `json:"small_file_unique_id"`
	BigFileID         string `json:"big_file_id"`
	BigFileUniqueID   string `json:"big_file_unique_id"`
}

// ChatLocation is the location a supergroup is attached to.
type ChatLocation struct {
	Location Location `json:"location"`
	Address  string   `json:"address"`
}

// ChatPermissions describes what non-administrator members may do.
type ChatPermissions struct {
	CanSendMessages       bool `json:"can_send_messages"`
	CanSendAudios         bool `json:"can_send_audios"`
	CanSendDocuments      bool `json:"can_send_documents"`
	CanSendPhotos         bool `json:"can_send_photos"`
	CanSendVideos         bool `json:"can_send_videos"`
	CanSendVideoNotes     bool `json:"can_send_video_notes"`
	CanSendVoiceNotes     bool `json:"can_send_voice_notes"`
	CanSendPolls          bool `json:"can_send_polls"`
	CanSendOtherMessages  bool `json:"can_send_other_messages"`
	CanAddWebPagePreviews bool `json:"can_add_web_page_previews"`
	CanChangeInfo         bool `json:"can_change_info"`
	CanInviteUsers        bool `json:"can_invite_users"`
	CanPinMessages        bool `json:"can_pin_messages"`
	CanManageTopics       bool `json:"can_manage_topics"`
}

// AllPermissions returns a permission set with every right granted.
func AllPermissions() ChatPermissions {
	return ChatPermissions{
		CanSendMessages:       true,
		CanSendAudios:         true,
		CanSendDocuments:      true,
		CanSendPhotos:         true,
		CanSendVideos:         true,
		CanSendVideoNotes:     true,
		CanSendVoiceNotes:     true,
		CanSendPolls:          true,
		CanSendOtherMessages:  true,
		CanAddWebPagePreviews: true,
		CanChangeInfo:         true,
		CanInviteUsers:        true,
		CanPinMessages:        true,
		CanManageTopics:       true,
	}
}

// ChatAdministratorRights describes administrator privileges.
type ChatAdministratorRights struct {
	IsAnonymous         bool `json:"is_anonymous"`
	CanManageChat       bool `json:"can_manage_chat"`
	CanDeleteMessages   bool `json:"can_delete_messages"`
	CanManageVideoChats bool `json:"can_manage_video_chats"`
	CanRestrictMembers  bool `json:"can_restrict_members"`
	CanPromoteMembers   bool `json:"can_promote_members"`
	CanChangeInfo       bool `json:"can_change_info"`
	CanInviteUsers      bool `json:"can_invite_users"`
	CanPostMessages     bool `json:"can_post_messages,omitempty"`
	CanEditMessages     bool `json:"can_edit_messages,omitempty"`
	CanPinMessages      bool `json:"can_pin_messages,omitempty"`
	CanPostStories      bool `json:"can_post_stories,omitempty"`
	CanEditStories      bool `json:"can_edit_stories,omitempty"`
	CanDeleteStories    bool `json:"can_delete_stories,omitempty"`
	CanManageTopics     bool `json:"can_manage_topics,omitempty"`
}

// ChatMemberStatus is the membership state of a chat member.
type ChatMemberStatus string

const (
	// ChatMemberStatusCreator is the chat owner.
	ChatMemberStatusCreator ChatMemberStatus = "creator"
	// ChatMemberStatusAdministrator is a promoted member.
	ChatMemberStatusAdministrator ChatMemberStatus = "administrator"
	// ChatMemberStatusMember is a regular member.
	ChatMemberStatusMember ChatMemberStatus = "member"
	// ChatMemberStatusRestricted is a member with reduced permissions.
	ChatMemberStatusRestricted ChatMemberStatus = "restricted"
	// ChatMemberStatusLeft is a user who is not in the chat.
	ChatMemberStatusLeft ChatMemberStatus = "left"
	// ChatMemberStatusKicked is a banned user.
	ChatMemberStatusKicked ChatMemberStatus = "kicked"
)

// ChatMember is a flattened view over all Bot API chat member variants.
//
// Rights is set for creator and administrator statuses.
// Permissions and IsMember are set for the restricted status.
type ChatMember struct {
	Status      ChatMemberStatus
	User        User
	CustomTitle string
	UntilDate   int64
	CanBeEdited bool
	IsMember    bool
	Rights      *ChatAdministratorRights
	Permissions *ChatPermissions
}

type chatMemberHeader struct {
	Status      ChatMemberStatus `json:"status"`
	User        User             `json:"user"`
	CustomTitle string           `json:"custom_title,omitempty"`
	UntilDate   int64            `json:"until_date,omitempty"`
	CanBeEdited bool             `json:"can_be_edited,omitempty"`
	IsMember    bool             `json:"is_member,omitempty"`
}

// MarshalJSON encodes the member in the flat Bot API layout.
func (m ChatMember) MarshalJSON() ([]byte, error) {
	fields := make(map[string]json.RawMessage)
	parts := []any{chatMemberHeader{
		Status:      m.Status,
		User:        m.User,
		CustomTitle: m.CustomTitle,
		UntilDate:   m.UntilDate,
		CanBeEdited: m.CanBeEdited,
		IsMember:    m.IsMember,
	}}
	if m.Permissions != nil {
		parts = append(parts, m.Permissions)
	}
	if m.Rights != nil {
		parts = append(parts, m.Rights)
	}
	for _, part := range parts {
		raw, err := json.Marshal(part)
		if err != nil {
			return nil, fmt.Errorf("marshal chat member: %w", err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("merge chat member fields: %w", err)
		}
	}

	return json.Marshal(fields)
}

// IsAdministrator reports whether the member holds administrator privileges.
func (m ChatMember) IsAdministrator() bool {
	return m.Status == ChatMemberStatusCreator || m.Status == ChatMemberStatusAdministrator
}

// HasLeft reports whether the user is no longer in the chat.
func (m ChatMember) HasLeft() bool {
	return m.Status == ChatMemberStatusLeft || m.Status == ChatMemberStatusKicked
}

// ChatMemberUpdated describes a change of one member's status.
type ChatMemberUpdated struct {
	Chat                    Chat            `json:"chat"`
	From                    User            `json:"from"`
	Date                    int64           `json:"date"`
	OldChatMember           ChatMember      `json:"old_chat_member"`
	NewChatMember           ChatMember      `json:"new_chat_member"`
	InviteLink              *ChatInviteLink `json:"invite_link,omitempty"`
	ViaChatFolderInviteLink bool            `json:"via_chat_folder_invite_link,omitempty"`
}

// ChatInviteLink describes an exported invite link.
type ChatInviteLink struct {
	InviteLink              string `json:"invite_link"`
	Creator                 User   `json:"creator"`
	CreatesJoinRequest      bool   `json:"creates_join_request"`
	IsPrimary               bool   `json:"is_primary"`
	IsRevoked               bool   `json:"is_revoked"`
	Name                    string `json:"name,omitempty"`
	ExpireDate              int64  `json:"expire_date,omitempty"`
	MemberLimit             int    `json:"member_limit,omitempty"`
	PendingJoinRequestCount int    `json:"pending_join_request_count,omitempty"`
}

// ChatJoinRequest is a request to join a chat that needs approval.
type ChatJoinRequest struct {
	Chat       Chat            `json:"chat"`
	From       User            `json:"from"`
	UserChatID int64           `json:"user_chat_id"`
	Date       int64           `json:"date"`
	Bio        string          `json:"bio,omitempty"`
	InviteLink *ChatInviteLink `json:"invite_link,omitempty"`
}

// ForumTopic describes a topic of a forum supergroup.
type ForumTopic struct {
	MessageThreadID   int    `json:"message_thread_id"`
	Name              string `json:"name"`
	IconColor         int    `json:"icon_color"`
	IconCustomEmojiID string `json:"icon_custom_emoji_id,omitempty"`
}

// UserProfilePhotos is one page of a user's profile pictures.
type UserProfilePhotos struct {
	TotalCount int           `json:"total_count"`
	Photos     [][]PhotoSize `json:"photos"`
}
