package botapi

// EditTarget addresses the message an edit applies to.
//
// Chat messages use ChatID and MessageID; inline messages use InlineMessageID.
type EditTarget struct {
	ChatID          ChatID
	MessageID       int
	InlineMessageID string
}

// IsInline reports whether the target is an inline message.
func (t EditTarget) IsInline() bool {
	return t.InlineMessageID != ""
}

// Validate checks that exactly one addressing form is used.
func (t EditTarget) Validate() error {
	if t.IsInline() {
		if !t.ChatID.IsZero() || t.MessageID != 0 {
			return invalidParam("inline_message_id cannot be combined with chat_id and message_id")
		}
		return nil
	}
	if err := t.ChatID.Validate(); err != nil {
		return err
	}

	return validateMessageID(t.MessageID)
}

// EditMessageTextParams configures editMessageText.
type EditMessageTextParams struct {
	EditTarget
	Text               string
	ParseMode          string
	Entities           []MessageEntity
	LinkPreviewOptions *LinkPreviewOptions
	ReplyMarkup        *InlineKeyboardMarkup
}

// Validate checks the target and text.
func (p EditMessageTextParams) Validate() error {
	if err := p.EditTarget.Validate(); err != nil {
		return err
	}
	if err := validateRequired("text", p.Text); err != nil {
		return err
	}

	return validateParseMode(p.ParseMode, p.Entities)
}

// EditMessageCaptionParams configures editMessageCaption.
type EditMessageCaptionParams struct {
	EditTarget
	Caption
	ReplyMarkup *InlineKeyboardMarkup
}

// Validate checks the target and caption.
func (p EditMessageCaptionParams) Validate() error {
	if err := p.EditTarget.Validate(); err != nil {
		return err
	}

	return p.Caption.validate()
}

// EditMessageMediaParams configures editMessageMedia.
type EditMessageMediaParams struct {
	EditTarget
	Media       InputMedia
	ReplyMarkup *InlineKeyboardMarkup
}

// Validate checks the target and media.
func (p EditMessageMediaParams) Validate() error {
	if err := p.EditTarget.Validate(); err != nil {
		return err
	}
	if p.IsInline() && p.Media.Media.IsUpload() {
		return invalidParam("inline messages cannot receive uploaded media")
	}

	return p.Media.Validate()
}

// EditMessageLiveLocationParams configures editMessageLiveLocation.
type EditMessageLiveLocationParams struct {
	EditTarget
	Latitude             float64
	Longitude            float64
	HorizontalAccuracy   float64
	Heading              int
	ProximityAlertRadius int
	ReplyMarkup          *InlineKeyboardMarkup
}

// Validate checks the target and coordinates.
func (p EditMessageLiveLocationParams) Validate() error {
	if err := p.EditTarget.Validate(); err != nil {
		return err
	}

	return validateCoordinates(p.Latitude, p.Longitude)
}

// StopMessageLiveLocationParams configures stopMessageLiveLocation.
type StopMessageLiveLocationParams struct {
	EditTarget
	ReplyMarkup *InlineKeyboardMarkup
}

// Validate checks the target.
func (p StopMessageLiveLocationParams) Validate() error {
	return p.EditTarget.Validate()
}

// EditMessageReplyMarkupParams configures editMessageReplyMarkup.
type EditMessageReplyMarkupParams struct {
	EditTarget
	ReplyMarkup *InlineKeyboardMarkup
}

// Validate checks the target.
func (p EditMessageReplyMarkupParams) Validate() error {
	return p.EditTarget.Validate()
}

// StopPollParams configures stopPoll.
type StopPollParams struct {
	ChatID      ChatID
	MessageID   int
	ReplyMarkup *InlineKeyboardMarkup
}

// Validate checks the target message.
func (p StopPollParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateMessageID(p.MessageID)
}

// DeleteMessageParams configures deleteMessage.
type DeleteMessageParams struct {
	ChatID    ChatID
	MessageID int
}

// Validate checks the target message.
func (p DeleteMessageParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateMessageID(p.MessageID)
}

// DeleteMessagesParams configures deleteMessages.
type DeleteMessagesParams struct {
	ChatID     ChatID
	MessageIDs []int
}

// Validate checks the target messages.
func (p DeleteMessagesParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateMessageIDs(p.MessageIDs)
}

// SetGameScoreParams configures setGameScore.
type SetGameScoreParams struct {
	EditTarget
	UserID             int64
	Score              int
	Force              bool
	DisableEditMessage bool
}

// Validate checks the target, user and score.
func (p SetGameScoreParams) Validate() error {
	if err := p.EditTarget.Validate(); err != nil {
		return err
	}
	if p.Score < 0 {
		return invalidParam("score must not be negative")
	}

	return validateUserID(p.UserID)
}

// GetGameHighScoresParams configures getGameHighScores.
type GetGameHighScoresParams struct {
	EditTarget
	UserID int64
}

// Validate checks the target and user.
func (p GetGameHighScoresParams) Validate() error {
	if err := p.EditTarget.Validate(); err != nil {
		return err
	}

	return validateUserID(p.UserID)
}
