package mtbot

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gotd/td/tg"

	"ex-mtbot/internal/mapper"
	"ex-mtbot/pkg/botapi"
)

// AnswerCallbackQuery answers a callback button press.
func (c *Client) AnswerCallbackQuery(ctx context.Context, params botapi.AnswerCallbackQueryParams) error {
	const method = "answerCallbackQuery"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("answer callback query validate: %w", err)
	}
	queryID, err := parseQueryID("callback_query_id", params.CallbackQueryID)
	if err != nil {
		return err
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		request := &tg.MessagesSetBotCallbackAnswerRequest{
			Alert:     params.ShowAlert,
			QueryID:   queryID,
			CacheTime: params.CacheTime,
		}
		if params.Text != "" {
			request.SetMessage(params.Text)
		}
		if params.URL != "" {
			request.SetURL(params.URL)
		}
		if _, err := c.api.MessagesSetBotCallbackAnswer(ctx, request); err != nil {
			return fmt.Errorf("set bot callback answer: %w", err)
		}
		return nil
	})
}

func parseQueryID(field string, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", botapi.ErrInvalidParams, field, raw)
	}

	return id, nil
}

// commandScope resolves the chats addressed by a command scope.
func (c *Client) commandScope(ctx context.Context, method string, scope botapi.BotCommandScope) (tg.BotCommandScopeClass, error) {
	var (
		peer tg.InputPeerClass
		user tg.InputUserClass
	)
	switch scope.Type {
	case botapi.ScopeTypeChat, botapi.ScopeTypeChatAdministrators, botapi.ScopeTypeChatMember:
		resolved, err := c.resolveInputPeer(ctx, method, scope.ChatID)
		if err != nil {
			return nil, err
		}
		peer = resolved
	}
	if scope.Type == botapi.ScopeTypeChatMember {
		resolved, err := c.resolveUser(ctx, method, scope.UserID)
		if err != nil {
			return nil, err
		}
		user = resolved
	}

	native, err := mapper.CommandScope(scope, peer, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	return native, nil
}

// SetMyCommands replaces the command list of one scope and language.
func (c *Client) SetMyCommands(ctx context.Context, params botapi.SetMyCommandsParams) error {
	const method = "setMyCommands"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set my commands validate: %w", err)
	}

	return c.invokeIdempotent(ctx, method, func(ctx context.Context) error {
		scope, err := c.commandScope(ctx, method, params.Scope)
		if err != nil {
			return err
		}
		if _, err := c.api.BotsSetBotCommands(ctx, &tg.BotsSetBotCommandsRequest{
			Scope:    scope,
			LangCode: params.LanguageCode,
			Commands: mapper.Commands(params.Commands),
		}); err != nil {
			return fmt.Errorf("set bot commands: %w", err)
		}
		return nil
	})
}

// DeleteMyCommands drops the command list of one scope and language.
func (c *Client) DeleteMyCommands(ctx context.Context, params botapi.CommandsParams) error {
	const method = "deleteMyCommands"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("delete my commands validate: %w", err)
	}

	return c.invokeIdempotent(ctx, method, func(ctx context.Context) error {
		scope, err := c.commandScope(ctx, method, params.Scope)
		if err != nil {
			return err
		}
		if _, err := c.api.BotsResetBotCommands(ctx, &tg.BotsResetBotCommandsRequest{
			Scope:    scope,
			LangCode: params.LanguageCode,
		}); err != nil {
			return fmt.Errorf("reset bot commands: %w", err)
		}
		return nil
	})
}

// GetMyCommands returns the command list of one scope and language.
func (c *Client) GetMyCommands(ctx context.Context, params botapi.CommandsParams) ([]botapi.BotCommand, error) {
	const method = "getMyCommands"
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("get my commands validate: %w", err)
	}

	var result []botapi.BotCommand
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		scope, err := c.commandScope(ctx, method, params.Scope)
		if err != nil {
			return err
		}
		commands, err := c.api.BotsGetBotCommands(ctx, &tg.BotsGetBotCommandsRequest{
			Scope:    scope,
			LangCode: params.LanguageCode,
		})
		if err != nil {
			return fmt.Errorf("get bot commands: %w", err)
		}
		result = mapper.BotCommands(commands)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SetMyName changes the bot name for one language.
func (c *Client) SetMyName(ctx context.Context, params botapi.SetMyNameParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set my name validate: %w", err)
	}

	return c.setBotInfo(ctx, "setMyName", params.LanguageCode, func(request *tg.BotsSetBotInfoRequest) {
		request.SetName(params.Name)
	})
}

// SetMyDescription changes the text shown in empty chats with the bot.
func (c *Client) SetMyDescription(ctx context.Context, params botapi.SetMyDescriptionParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set my description validate: %w", err)
	}

	return c.setBotInfo(ctx, "setMyDescription", params.LanguageCode, func(request *tg.BotsSetBotInfoRequest) {
		request.SetDescription(params.Description)
	})
}

// SetMyShortDescription changes the profile text of the bot.
func (c *Client) SetMyShortDescription(ctx context.Context, params botapi.SetMyShortDescriptionParams) error {
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set my short description validate: %w", err)
	}

	return c.setBotInfo(ctx, "setMyShortDescription", params.LanguageCode, func(request *tg.BotsSetBotInfoRequest) {
		request.SetAbout(params.ShortDescription)
	})
}

func (c *Client) setBotInfo(
	ctx context.Context,
	method string,
	languageCode string,
	apply func(request *tg.BotsSetBotInfoRequest),
) error {
	return c.invoke(ctx, method, func(ctx context.Context) error {
		request := &tg.BotsSetBotInfoRequest{LangCode: languageCode}
		apply(request)
		if _, err := c.api.BotsSetBotInfo(ctx, request); err != nil {
			return fmt.Errorf("set bot info: %w", err)
		}
		return nil
	})
}

// GetMyName returns the bot name for one language.
func (c *Client) GetMyName(ctx context.Context, params botapi.LanguageParams) (botapi.BotName, error) {
	info, err := c.botInfo(ctx, "getMyName", params)
	if err != nil {
		return botapi.BotName{}, err
	}

	return botapi.BotName{Name: info.Name}, nil
}

// GetMyDescription returns the bot description for one language.
func (c *Client) GetMyDescription(ctx context.Context, params botapi.LanguageParams) (botapi.BotDescription, error) {
	info, err := c.botInfo(ctx, "getMyDescription", params)
	if err != nil {
		return botapi.BotDescription{}, err
	}

	return botapi.BotDescription{Description: info.Description}, nil
}

// GetMyShortDescription returns the short bot description for one language.
func (c *Client) GetMyShortDescription(ctx context.Context, params botapi.LanguageParams) (botapi.BotShortDescription, error) {
	info, err := c.botInfo(ctx, "getMyShortDescription", params)
	if err != nil {
		return botapi.BotShortDescription{}, err
	}

	return botapi.BotShortDescription{ShortDescription: info.About}, nil
}

func (c *Client) botInfo(ctx context.Context, method string, params botapi.LanguageParams) (*tg.BotsBotInfo, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%s validate: %w", method, err)
	}

	var result *tg.BotsBotInfo
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		info, err := c.api.BotsGetBotInfo(ctx, &tg.BotsGetBotInfoRequest{LangCode: params.LanguageCode})
		if err != nil {
			return fmt.Errorf("get bot info: %w", err)
		}
		result = info
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// menuButtonUser returns the private chat addressed by a menu button call;
// zero selects the default button.
func (c *Client) menuButtonUser(ctx context.Context, method string, chatID int64) (tg.InputUserClass, error) {
	if chatID == 0 {
		return &tg.InputUserEmpty{}, nil
	}

	return c.resolveUser(ctx, method, chatID)
}

// SetChatMenuButton changes the menu button of a private chat or the
// default one.
func (c *Client) SetChatMenuButton(ctx context.Context, params botapi.ChatMenuButtonParams) error {
	const method = "setChatMenuButton"
	if err := params.Validate(); err != nil {
		return fmt.Errorf("set chat menu button validate: %w", err)
	}
	button, err := mapper.MenuButton(params.MenuButton)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		user, err := c.menuButtonUser(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		if _, err := c.api.BotsSetBotMenuButton(ctx, &tg.BotsSetBotMenuButtonRequest{
			UserID: user,
			Button: button,
		}); err != nil {
			return fmt.Errorf("set bot menu button: %w", err)
		}
		return nil
	})
}

// GetChatMenuButton returns the menu button of a private chat or the
// default one.
func (c *Client) GetChatMenuButton(ctx context.Context, params botapi.ChatMenuButtonParams) (botapi.MenuButton, error) {
	const method = "getChatMenuButton"
	if err := params.Validate(); err != nil {
		return botapi.MenuButton{}, fmt.Errorf("get chat menu button validate: %w", err)
	}

	var result botapi.MenuButton
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		user, err := c.menuButtonUser(ctx, method, params.ChatID)
		if err != nil {
			return err
		}
		button, err := c.api.BotsGetBotMenuButton(ctx, user)
		if err != nil {
			return fmt.Errorf("get bot menu button: %w", err)
		}
		result = mapper.BotMenuButton(button)
		return nil
	})
	if err != nil {
		return botapi.MenuButton{}, err
	}

	return result, nil
}

// SetMyDefaultAdministratorRights changes the rights suggested when the bot
// is added as an administrator. Nil rights clear the suggestion.
func (c *Client) SetMyDefaultAdministratorRights(ctx context.Context, params botapi.DefaultAdministratorRightsParams) error {
	const method = "setMyDefaultAdministratorRights"

	var rights tg.ChatAdminRights
	if params.Rights != nil {
		rights = mapper.ToAdminRights(*params.Rights).Native()
	}

	return c.invoke(ctx, method, func(ctx context.Context) error {
		var err error
		if params.ForChannels {
			_, err = c.api.BotsSetBotBroadcastDefaultAdminRights(ctx, rights)
		} else {
			_, err = c.api.BotsSetBotGroupDefaultAdminRights(ctx, rights)
		}
		if err != nil {
			return fmt.Errorf("set default admin rights: %w", err)
		}
		return nil
	})
}

// GetMyDefaultAdministratorRights returns the suggested administrator
// rights for groups or channels.
func (c *Client) GetMyDefaultAdministratorRights(
	ctx context.Context,
	params botapi.DefaultAdministratorRightsParams,
) (botapi.ChatAdministratorRights, error) {
	const method = "getMyDefaultAdministratorRights"

	var result botapi.ChatAdministratorRights
	err := c.invoke(ctx, method, func(ctx context.Context) error {
		full, err := c.api.UsersGetFullUser(ctx, c.bot())
		if err != nil {
			return fmt.Errorf("get full user: %w", err)
		}
		c.collect(ctx, full.Users, full.Chats)

		rights, ok := full.FullUser.GetBotGroupAdminRights()
		if params.ForChannels {
			rights, ok = full.FullUser.GetBotBroadcastAdminRights()
		}
		if ok {
			result = mapper.AdministratorRightsFromAdminRights(mapper.AdminRightsFromNative(rights))
		}
		return nil
	})
	if err != nil {
		return botapi.ChatAdministratorRights{}, err
	}

	return result, nil
}
