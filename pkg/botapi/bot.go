package botapi

// BotCommand is one command shown in the bot menu.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// BotCommandScopeType discriminates BotCommandScope variants.
type BotCommandScopeType string

// Command scope kinds.
const (
	ScopeTypeDefault               BotCommandScopeType = "default"
	ScopeTypeAllPrivateChats       BotCommandScopeType = "all_private_chats"
	ScopeTypeAllGroupChats         BotCommandScopeType = "all_group_chats"
	ScopeTypeAllChatAdministrators BotCommandScopeType = "all_chat_administrators"
	ScopeTypeChat                  BotCommandScopeType = "chat"
	ScopeTypeChatAdministrators    BotCommandScopeType = "chat_administrators"
	ScopeTypeChatMember            BotCommandScopeType = "chat_member"
)

// BotCommandScope selects the users a command list applies to.
//
// ChatID is used by the chat scopes and UserID by the chat member scope.
type BotCommandScope struct {
	Type   BotCommandScopeType `json:"type"`
	ChatID ChatID              `json:"chat_id,omitempty"`
	UserID int64               `json:"user_id,omitempty"`
}

// ScopeDefault covers every chat without a narrower scope.
func ScopeDefault() BotCommandScope {
	return BotCommandScope{Type: ScopeTypeDefault}
}

// ScopeAllPrivateChats covers all private chats.
func ScopeAllPrivateChats() BotCommandScope {
	return BotCommandScope{Type: ScopeTypeAllPrivateChats}
}

// ScopeAllGroupChats covers all group and supergroup chats.
func ScopeAllGroupChats() BotCommandScope {
	return BotCommandScope{Type: ScopeTypeAllGroupChats}
}

// ScopeAllChatAdministrators covers administrators of all groups.
func ScopeAllChatAdministrators() BotCommandScope {
	return BotCommandScope{Type: ScopeTypeAllChatAdministrators}
}

// ScopeChat covers one chat.
func ScopeChat(chatID ChatID) BotCommandScope {
	return BotCommandScope{Type: ScopeTypeChat, ChatID: chatID}
}

// ScopeChatAdministrators covers administrators of one chat.
func ScopeChatAdministrators(chatID ChatID) BotCommandScope {
	return BotCommandScope{Type: ScopeTypeChatAdministrators, ChatID: chatID}
}

// ScopeChatMember covers one member of one chat.
func ScopeChatMember(chatID ChatID, userID int64) BotCommandScope {
	return BotCommandScope{Type: ScopeTypeChatMember, ChatID: chatID, UserID: userID}
}

// Validate checks that chat scoped variants carry their targets.
func (s BotCommandScope) Validate() error {
	switch s.Type {
	case "", ScopeTypeDefault, ScopeTypeAllPrivateChats, ScopeTypeAllGroupChats, ScopeTypeAllChatAdministrators:
		return nil
	case ScopeTypeChat, ScopeTypeChatAdministrators:
		return s.ChatID.Validate()
	case ScopeTypeChatMember:
		if s.UserID <= 0 {
			return invalidParam("scope user_id is required")
		}
		return s.ChatID.Validate()
	default:
		return invalidParam("unsupported command scope %q", s.Type)
	}
}

// MenuButtonType discriminates MenuButton variants.
type MenuButtonType string

// Menu button kinds.
const (
	MenuButtonTypeCommands MenuButtonType = "commands"
	MenuButtonTypeWebApp   MenuButtonType = "web_app"
	MenuButtonTypeDefault  MenuButtonType = "default"
)

// MenuButton is the bot menu button of a private chat.
type MenuButton struct {
	Type   MenuButtonType `json:"type"`
	Text   string         `json:"text,omitempty"`
	WebApp *WebAppInfo    `json:"web_app,omitempty"`
}

// BotName is the localized bot name.
type BotName struct {
	Name string `json:"name"`
}

// BotDescription is the localized bot description.
type BotDescription struct {
	Description string `json:"description"`
}

// BotShortDescription is the localized short bot description.
type BotShortDescription struct {
	ShortDescription string `json:"short_description"`
}
