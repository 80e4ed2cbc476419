package mapper

import (
	"github.com/gotd/td/tg"

	"ex-mtbot/pkg/botapi"
)

// InlineKeyboard projects an inline keyboard; other markups yield nil.
func InlineKeyboard(markup tg.ReplyMarkupClass) *botapi.InlineKeyboardMarkup {
	inline, ok := markup.(*tg.ReplyInlineMarkup)
	if !ok {
		return nil
	}

	keyboard := &botapi.InlineKeyboardMarkup{InlineKeyboard: make([][]botapi.InlineKeyboardButton, 0, len(inline.Rows))}
	for _, row := range inline.Rows {
		buttons := make([]botapi.InlineKeyboardButton, 0, len(row.Buttons))
		for _, button := range row.Buttons {
			projected := botapi.InlineKeyboardButton{Text: button.GetText()}
			switch typed := button.(type) {
			case *tg.KeyboardButtonURL:
				projected.URL = typed.URL
			case *tg.KeyboardButtonCallback:
				projected.CallbackData = string(typed.Data)
			case *tg.KeyboardButtonSwitchInline:
				query := typed.Query
				if typed.SamePeer {
					projected.SwitchInlineQueryCurrentChat = &query
				} else {
					projected.SwitchInlineQuery = &query
				}
			case *tg.KeyboardButtonGame:
				projected.CallbackGame = &botapi.CallbackGame{}
			case *tg.KeyboardButtonBuy:
				projected.Pay = true
			case *tg.KeyboardButtonURLAuth:
				projected.LoginURL = &botapi.LoginURL{URL: typed.URL, ForwardText: typed.FwdText}
			case *tg.KeyboardButtonWebView:
				projected.WebApp = &botapi.WebAppInfo{URL: typed.URL}
			case *tg.KeyboardButtonSimpleWebView:
				projected.WebApp = &botapi.WebAppInfo{URL: typed.URL}
			}
			buttons = append(buttons, projected)
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard, buttons)
	}

	return keyboard
}

// ReplyMarkup encodes any Bot API reply markup. The bot input user is
// needed for login URL buttons.
func ReplyMarkup(markup botapi.ReplyMarkup, bot tg.InputUserClass) (tg.ReplyMarkupClass, error) {
	switch typed := markup.(type) {
	case nil:
		return nil, nil
	case *botapi.InlineKeyboardMarkup:
		if typed == nil {
			return nil, nil
		}
		return InputInlineKeyboard(typed, bot)
	case *botapi.ReplyKeyboardMarkup:
		return replyKeyboard(typed)
	case *botapi.ReplyKeyboardRemove:
		return &tg.ReplyKeyboardHide{Selective: typed.Selective}, nil
	case *botapi.ForceReply:
		native := &tg.ReplyKeyboardForceReply{Selective: typed.Selective}
		if typed.InputFieldPlaceholder != "" {
			native.SetPlaceholder(typed.InputFieldPlaceholder)
		}
		return native, nil
	default:
		return nil, botapi.BadRequest("", "unsupported reply_markup")
	}
}

// InputInlineKeyboard encodes an inline keyboard.
func InputInlineKeyboard(markup *botapi.InlineKeyboardMarkup, bot tg.InputUserClass) (*tg.ReplyInlineMarkup, error) {
	native := &tg.ReplyInlineMarkup{Rows: make([]tg.KeyboardButtonRow, 0, len(markup.InlineKeyboard))}
	for _, row := range markup.InlineKeyboard {
		buttons := make([]tg.KeyboardButtonClass, 0, len(row))
		for _, button := range row {
			encoded, err := inlineButton(button, bot)
			if err != nil {
				return nil, err
			}
			buttons = append(buttons, encoded)
		}
		native.Rows = append(native.Rows, tg.KeyboardButtonRow{Buttons: buttons})
	}

	return native, nil
}

func inlineButton(button botapi.InlineKeyboardButton, bot tg.InputUserClass) (tg.KeyboardButtonClass, error) {
	switch {
	case button.URL != "":
		return &tg.KeyboardButtonURL{Text: button.Text, URL: button.URL}, nil
	case button.CallbackData != "":
		if len(button.CallbackData) > 64 {
			return nil, botapi.BadRequest("", "BUTTON_DATA_INVALID")
		}
		return &tg.KeyboardButtonCallback{Text: button.Text, Data: []byte(button.CallbackData)}, nil
	case button.WebApp != nil:
		return &tg.KeyboardButtonWebView{Text: button.Text, URL: button.WebApp.URL}, nil
	case button.LoginURL != nil:
		native := &tg.InputKeyboardButtonURLAuth{
			RequestWriteAccess: button.LoginURL.RequestWriteAccess,
			Text:               button.Text,
			URL:                button.LoginURL.URL,
			Bot:                bot,
		}
		if button.LoginURL.ForwardText != "" {
			native.SetFwdText(button.LoginURL.ForwardText)
		}
		return native, nil
	case button.SwitchInlineQuery != nil:
		return &tg.KeyboardButtonSwitchInline{Text: button.Text, Query: *button.SwitchInlineQuery}, nil
	case button.SwitchInlineQueryCurrentChat != nil:
		return &tg.KeyboardButtonSwitchInline{SamePeer: true, Text: button.Text, Query: *button.SwitchInlineQueryCurrentChat}, nil
	case button.SwitchInlineQueryChosenChat != nil:
		chosen := button.SwitchInlineQueryChosenChat
		native := &tg.KeyboardButtonSwitchInline{Text: button.Text, Query: chosen.Query}
		var peerTypes []tg.InlineQueryPeerTypeClass
		if chosen.AllowUserChats {
			peerTypes = append(peerTypes, &tg.InlineQueryPeerTypePM{})
		}
		if chosen.AllowBotChats {
			peerTypes = append(peerTypes, &tg.InlineQueryPeerTypeBotPM{})
		}
		if chosen.AllowGroupChats {
			peerTypes = append(peerTypes, &tg.InlineQueryPeerTypeChat{}, &tg.InlineQueryPeerTypeMegagroup{})
		}
		if chosen.AllowChannelChats {
			peerTypes = append(peerTypes, &tg.InlineQueryPeerTypeBroadcast{})
		}
		if len(peerTypes) > 0 {
			native.SetPeerTypes(peerTypes)
		}
		return native, nil
	case button.CallbackGame != nil:
		return &tg.KeyboardButtonGame{Text: button.Text}, nil
	case button.Pay:
		return &tg.KeyboardButtonBuy{Text: button.Text}, nil
	default:
		return nil, botapi.BadRequest("", "inline keyboard button must have exactly one action")
	}
}

func replyKeyboard(markup *botapi.ReplyKeyboardMarkup) (*tg.ReplyKeyboardMarkup, error) {
	native := &tg.ReplyKeyboardMarkup{
		Resize:     markup.ResizeKeyboard,
		SingleUse:  markup.OneTimeKeyboard,
		Selective:  markup.Selective,
		Persistent: markup.IsPersistent,
		Rows:       make([]tg.KeyboardButtonRow, 0, len(markup.Keyboard)),
	}
	if markup.InputFieldPlaceholder != "" {
		native.SetPlaceholder(markup.InputFieldPlaceholder)
	}
	for _, row := range markup.Keyboard {
		buttons := make([]tg.KeyboardButtonClass, 0, len(row))
		for _, button := range row {
			buttons = append(buttons, keyboardButton(button))
		}
		native.Rows = append(native.Rows, tg.KeyboardButtonRow{Buttons: buttons})
	}

	return native, nil
}

func keyboardButton(button botapi.KeyboardButton) tg.KeyboardButtonClass {
	switch {
	case button.RequestContact:
		return &tg.KeyboardButtonRequestPhone{Text: button.Text}
	case button.RequestLocation:
		return &tg.KeyboardButtonRequestGeoLocation{Text: button.Text}
	case button.RequestPoll != nil:
		native := &tg.KeyboardButtonRequestPoll{Text: button.Text}
		if button.RequestPoll.Type != "" {
			native.SetQuiz(button.RequestPoll.Type == botapi.PollTypeQuiz)
		}
		return native
	case button.WebApp != nil:
		return &tg.KeyboardButtonSimpleWebView{Text: button.Text, URL: button.WebApp.URL}
	case button.RequestUsers != nil:
		request := button.RequestUsers
		peerType := &tg.RequestPeerTypeUser{}
		if request.UserIsBot != nil {
			peerType.SetBot(*request.UserIsBot)
		}
		if request.UserIsPremium != nil {
			peerType.SetPremium(*request.UserIsPremium)
		}
		quantity := request.MaxQuantity
		if quantity == 0 {
			quantity = 1
		}
		return &tg.KeyboardButtonRequestPeer{Text: button.Text, ButtonID: request.RequestID, PeerType: peerType, MaxQuantity: quantity}
	case button.RequestChat != nil:
		return &tg.KeyboardButtonRequestPeer{
			Text:        button.Text,
			ButtonID:    button.RequestChat.RequestID,
			PeerType:    requestChatPeerType(button.RequestChat),
			MaxQuantity: 1,
		}
	default:
		return &tg.KeyboardButton{Text: button.Text}
	}
}

func requestChatPeerType(request *botapi.KeyboardButtonRequestChat) tg.RequestPeerTypeClass {
	if request.ChatIsChannel {
		native := &tg.RequestPeerTypeBroadcast{Creator: request.ChatIsCreated}
		if request.ChatHasUsername != nil {
			native.SetHasUsername(*request.ChatHasUsername)
		}
		if request.UserRights != nil {
			native.SetUserAdminRights(ToAdminRights(*request.UserRights).Native())
		}
		if request.BotRights != nil {
			native.SetBotAdminRights(ToAdminRights(*request.BotRights).Native())
		}
		return native
	}

	native := &tg.RequestPeerTypeChat{Creator: request.ChatIsCreated, BotParticipant: request.BotIsMember}
	if request.ChatHasUsername != nil {
		native.SetHasUsername(*request.ChatHasUsername)
	}
	if request.ChatIsForum != nil {
		native.SetForum(*request.ChatIsForum)
	}
	if request.UserRights != nil {
		native.SetUserAdminRights(ToAdminRights(*request.UserRights).Native())
	}
	if request.BotRights != nil {
		native.SetBotAdminRights(ToAdminRights(*request.BotRights).Native())
	}

	return native
}
