package botapi

// AnswerCallbackQueryParams configures answerCallbackQuery.
type AnswerCallbackQueryParams struct {
	CallbackQueryID string
	Text            string
	ShowAlert       bool
	URL             string
	CacheTime       int
}

// Validate checks the query identifier.
func (p AnswerCallbackQueryParams) Validate() error {
	if err := validateRequired("callback_query_id", p.CallbackQueryID); err != nil {
		return err
	}
	if len([]rune(p.Text)) > 200 {
		return invalidParam("text must be at most 200 characters")
	}

	return nil
}

// CommandsParams selects the command list of one scope and language.
type CommandsParams struct {
	Scope        BotCommandScope
	LanguageCode string
}

// Validate checks scope and language.
func (p CommandsParams) Validate() error {
	if err := p.Scope.Validate(); err != nil {
		return err
	}

	return LanguageParams{LanguageCode: p.LanguageCode}.Validate()
}

// SetMyCommandsParams configures setMyCommands.
type SetMyCommandsParams struct {
	Commands []BotCommand
	CommandsParams
}

// Validate checks every command.
func (p SetMyCommandsParams) Validate() error {
	if len(p.Commands) > 100 {
		return invalidParam("at most 100 commands are allowed")
	}
	for index, command := range p.Commands {
		length := len(command.Command)
		if length == 0 || length > 32 {
			return invalidParam("commands[%d].command must be 1-32 characters", index)
		}
		if command.Description == "" {
			return invalidParam("commands[%d].description is required", index)
		}
	}

	return p.CommandsParams.Validate()
}

// SetMyNameParams configures setMyName.
type SetMyNameParams struct {
	Name         string
	LanguageCode string
}

// Validate checks name length.
func (p SetMyNameParams) Validate() error {
	if len([]rune(p.Name)) > 64 {
		return invalidParam("name must be at most 64 characters")
	}

	return LanguageParams{LanguageCode: p.LanguageCode}.Validate()
}

// SetMyDescriptionParams configures setMyDescription.
type SetMyDescriptionParams struct {
	Description  string
	LanguageCode string
}

// Validate checks description length.
func (p SetMyDescriptionParams) Validate() error {
	if len([]rune(p.Description)) > 512 {
		return invalidParam("description must be at most 512 characters")
	}

	return LanguageParams{LanguageCode: p.LanguageCode}.Validate()
}

// SetMyShortDescriptionParams configures setMyShortDescription.
type SetMyShortDescriptionParams struct {
	ShortDescription string
	LanguageCode     string
}

// Validate checks description length.
func (p SetMyShortDescriptionParams) Validate() error {
	if len([]rune(p.ShortDescription)) > 120 {
		return invalidParam("short_description must be at most 120 characters")
	}

	return LanguageParams{LanguageCode: p.LanguageCode}.Validate()
}

// ChatMenuButtonParams configures setChatMenuButton and getChatMenuButton.
//
// A zero ChatID addresses the default menu button.
type ChatMenuButtonParams struct {
	ChatID     int64
	MenuButton *MenuButton
}

// Validate checks the chat and button shape.
func (p ChatMenuButtonParams) Validate() error {
	if p.ChatID < 0 {
		return invalidParam("menu buttons exist only in private chats")
	}
	if p.MenuButton == nil {
		return nil
	}
	switch p.MenuButton.Type {
	case MenuButtonTypeDefault, MenuButtonTypeCommands:
		return nil
	case MenuButtonTypeWebApp:
		if p.MenuButton.WebApp == nil || p.MenuButton.WebApp.URL == "" {
			return invalidParam("web_app menu button requires a url")
		}
		return validateRequired("menu_button.text", p.MenuButton.Text)
	default:
		return invalidParam("unsupported menu button type %q", p.MenuButton.Type)
	}
}

// DefaultAdministratorRightsParams configures the default administrator
// rights requested when the bot is added to groups or channels.
type DefaultAdministratorRightsParams struct {
	Rights      *ChatAdministratorRights
	ForChannels bool
}
