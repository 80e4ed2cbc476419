package botapi

import "strings"

// ParseMode values accepted by text and caption parameters.
const (
	ParseModeHTML       = "HTML"
	ParseModeMarkdown   = "Markdown"
	ParseModeMarkdownV2 = "MarkdownV2"
)

// SendOptions carries the delivery options shared by every send method.
type SendOptions struct {
	MessageThreadID     int
	DisableNotification bool
	ProtectContent      bool
	ReplyParameters     *ReplyParameters
	ReplyMarkup         ReplyMarkup
}

// ReplyToMessageID returns the target of the reply when one is requested.
func (o SendOptions) ReplyToMessageID() int {
	if o.ReplyParameters == nil {
		return 0
	}

	return o.ReplyParameters.MessageID
}

func (o SendOptions) validate() error {
	if o.MessageThreadID < 0 {
		return invalidParam("message_thread_id must not be negative")
	}
	if o.ReplyParameters != nil && o.ReplyParameters.MessageID <= 0 {
		return invalidParam("reply_parameters.message_id must be positive")
	}

	return nil
}

// Caption carries caption text of media messages.
type Caption struct {
	Caption         string
	ParseMode       string
	CaptionEntities []MessageEntity
}

func (c Caption) validate() error {
	if len([]rune(c.Caption)) > 4096 {
		return invalidParam("caption is too long")
	}

	return validateParseMode(c.ParseMode, c.CaptionEntities)
}

func validateParseMode(mode string, entities []MessageEntity) error {
	if mode == "" {
		return nil
	}
	if len(entities) > 0 {
		return invalidParam("parse_mode and entities are mutually exclusive")
	}
	switch mode {
	case ParseModeHTML, ParseModeMarkdown, ParseModeMarkdownV2:
		return nil
	default:
		return invalidParam("unsupported parse_mode %q", mode)
	}
}

func validateUserID(userID int64) error {
	if userID <= 0 {
		return invalidParam("user_id must be positive")
	}

	return nil
}

func validateMessageID(messageID int) error {
	if messageID <= 0 {
		return invalidParam("message_id must be positive")
	}

	return nil
}

func validateMessageIDs(messageIDs []int) error {
	if len(messageIDs) == 0 || len(messageIDs) > 100 {
		return invalidParam("message_ids must contain 1-100 identifiers")
	}
	for _, id := range messageIDs {
		if err := validateMessageID(id); err != nil {
			return err
		}
	}

	return nil
}

func validateRequired(field string, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalidParam("%s is required", field)
	}

	return nil
}

// ChatParams addresses one chat.
type ChatParams struct {
	ChatID ChatID
}

// Validate checks the chat identifier.
func (p ChatParams) Validate() error {
	return p.ChatID.Validate()
}

// LanguageParams selects a localized bot property.
type LanguageParams struct {
	LanguageCode string
}

// Validate accepts empty or two-letter codes.
func (p LanguageParams) Validate() error {
	if p.LanguageCode != "" && len(p.LanguageCode) != 2 {
		return invalidParam("language_code must be a two-letter ISO 639-1 code")
	}

	return nil
}

// GetUpdatesParams configures long polling.
type GetUpdatesParams struct {
	Offset         int
	Limit          int
	Timeout        int
	AllowedUpdates []UpdateKind
}

// Validate checks limit and timeout bounds.
func (p GetUpdatesParams) Validate() error {
	if p.Limit < 0 || p.Limit > 100 {
		return invalidParam("limit must be between 1 and 100")
	}
	if p.Timeout < 0 {
		return invalidParam("timeout must not be negative")
	}

	return nil
}

// SetWebhookParams is accepted for signature compatibility only.
type SetWebhookParams struct {
	URL                string
	MaxConnections     int
	AllowedUpdates     []UpdateKind
	DropPendingUpdates bool
	SecretToken        string
}

// DeleteWebhookParams is accepted for signature compatibility only.
type DeleteWebhookParams struct {
	DropPendingUpdates bool
}
