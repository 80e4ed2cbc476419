package mapper

import (
	"github.com/gotd/td/tg"

	"ex-mtbot/pkg/botapi"
)

// CommandScope converts a command scope. Chat scopes use peer and the chat
// member scope also uses user.
func CommandScope(scope botapi.BotCommandScope, peer tg.InputPeerClass, user tg.InputUserClass) (tg.BotCommandScopeClass, error) {
	switch scope.Type {
	case "", botapi.ScopeTypeDefault:
		return &tg.BotCommandScopeDefault{}, nil
	case botapi.ScopeTypeAllPrivateChats:
		return &tg.BotCommandScopeUsers{}, nil
	case botapi.ScopeTypeAllGroupChats:
		return &tg.BotCommandScopeChats{}, nil
	case botapi.ScopeTypeAllChatAdministrators:
		return &tg.BotCommandScopeChatAdmins{}, nil
	case botapi.ScopeTypeChat:
		return &tg.BotCommandScopePeer{Peer: peer}, nil
	case botapi.ScopeTypeChatAdministrators:
		return &tg.BotCommandScopePeerAdmins{Peer: peer}, nil
	case botapi.ScopeTypeChatMember:
		return &tg.BotCommandScopePeerUser{Peer: peer, UserID: user}, nil
	default:
		return nil, botapi.BadRequest("", "unsupported bot command scope")
	}
}

// Commands converts a command list.
func Commands(commands []botapi.BotCommand) []tg.BotCommand {
	native := make([]tg.BotCommand, 0, len(commands))
	for _, command := range commands {
		native = append(native, tg.BotCommand{Command: command.Command, Description: command.Description})
	}

	return native
}

// BotCommands projects a native command list.
func BotCommands(commands []tg.BotCommand) []botapi.BotCommand {
	projected := make([]botapi.BotCommand, 0, len(commands))
	for _, command := range commands {
		projected = append(projected, botapi.BotCommand{Command: command.Command, Description: command.Description})
	}

	return projected
}

// MenuButton converts a menu button. A nil button resets to default.
func MenuButton(button *botapi.MenuButton) (tg.BotMenuButtonClass, error) {
	if button == nil {
		return &tg.BotMenuButtonDefault{}, nil
	}

	switch button.Type {
	case botapi.MenuButtonTypeDefault:
		return &tg.BotMenuButtonDefault{}, nil
	case botapi.MenuButtonTypeCommands:
		return &tg.BotMenuButtonCommands{}, nil
	case botapi.MenuButtonTypeWebApp:
		if button.WebApp == nil || button.Text == "" {
			return nil, botapi.BadRequest("", "web_app menu button requires text and web_app")
		}
		return &tg.BotMenuButton{Text: button.Text, URL: button.WebApp.URL}, nil
	default:
		return nil, botapi.BadRequest("", "unsupported menu button type")
	}
}

// BotMenuButton projects a native menu button.
func BotMenuButton(button tg.BotMenuButtonClass) botapi.MenuButton {
	switch typed := button.(type) {
	case *tg.BotMenuButtonCommands:
		return botapi.MenuButton{Type: botapi.MenuButtonTypeCommands}
	case *tg.BotMenuButton:
		return botapi.MenuButton{
			Type:   botapi.MenuButtonTypeWebApp,
			Text:   typed.Text,
			WebApp: &botapi.WebAppInfo{URL: typed.URL},
		}
	default:
		return botapi.MenuButton{Type: botapi.MenuButtonTypeDefault}
	}
}
