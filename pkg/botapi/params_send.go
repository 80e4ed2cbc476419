package botapi

// SendMessageParams configures sendMessage.
type SendMessageParams struct {
	ChatID             ChatID
	Text               string
	ParseMode          string
	Entities           []MessageEntity
	LinkPreviewOptions *LinkPreviewOptions
	SendOptions
}

// Validate checks required fields.
func (p SendMessageParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := validateRequired("text", p.Text); err != nil {
		return err
	}
	if len([]rune(p.Text)) > 4096 {
		return invalidParam("text is too long")
	}
	if err := validateParseMode(p.ParseMode, p.Entities); err != nil {
		return err
	}

	return p.SendOptions.validate()
}

// ForwardMessageParams configures forwardMessage.
type ForwardMessageParams struct {
	ChatID              ChatID
	FromChatID          ChatID
	MessageID           int
	MessageThreadID     int
	DisableNotification bool
	ProtectContent      bool
}

// Validate checks required fields.
func (p ForwardMessageParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := p.FromChatID.Validate(); err != nil {
		return err
	}

	return validateMessageID(p.MessageID)
}

// ForwardMessagesParams configures forwardMessages.
type ForwardMessagesParams struct {
	ChatID              ChatID
	FromChatID          ChatID
	MessageIDs          []int
	MessageThreadID     int
	DisableNotification bool
	ProtectContent      bool
}

// Validate checks required fields.
func (p ForwardMessagesParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := p.FromChatID.Validate(); err != nil {
		return err
	}

	return validateMessageIDs(p.MessageIDs)
}

// CopyMessageParams configures copyMessage.
//
// A nil Caption keeps the original caption.
type CopyMessageParams struct {
	ChatID          ChatID
	FromChatID      ChatID
	MessageID       int
	Caption         *string
	ParseMode       string
	CaptionEntities []MessageEntity
	SendOptions
}

// Validate checks required fields.
func (p CopyMessageParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := p.FromChatID.Validate(); err != nil {
		return err
	}
	if err := validateMessageID(p.MessageID); err != nil {
		return err
	}
	if err := validateParseMode(p.ParseMode, p.CaptionEntities); err != nil {
		return err
	}

	return p.SendOptions.validate()
}

// CopyMessagesParams configures copyMessages.
type CopyMessagesParams struct {
	ChatID              ChatID
	FromChatID          ChatID
	MessageIDs          []int
	MessageThreadID     int
	DisableNotification bool
	ProtectContent      bool
	RemoveCaption       bool
}

// Validate checks required fields.
func (p CopyMessagesParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := p.FromChatID.Validate(); err != nil {
		return err
	}

	return validateMessageIDs(p.MessageIDs)
}

// SendPhotoParams configures sendPhoto.
type SendPhotoParams struct {
	ChatID     ChatID
	Photo      InputFile
	HasSpoiler bool
	Caption
	SendOptions
}

// Validate checks required fields.
func (p SendPhotoParams) Validate() error {
	return validateMediaSend(p.ChatID, p.Photo, "photo", p.Caption, p.SendOptions)
}

// SendAudioParams configures sendAudio.
type SendAudioParams struct {
	ChatID    ChatID
	Audio     InputFile
	Duration  int
	Performer string
	Title     string
	Thumbnail *InputFile
	Caption
	SendOptions
}

// Validate checks required fields.
func (p SendAudioParams) Validate() error {
	return validateMediaSend(p.ChatID, p.Audio, "audio", p.Caption, p.SendOptions)
}

// SendDocumentParams configures sendDocument.
type SendDocumentParams struct {
	ChatID                      ChatID
	Document                    InputFile
	Thumbnail                   *InputFile
	DisableContentTypeDetection bool
	Caption
	SendOptions
}

// Validate checks required fields.
func (p SendDocumentParams) Validate() error {
	return validateMediaSend(p.ChatID, p.Document, "document", p.Caption, p.SendOptions)
}

// SendVideoParams configures sendVideo.
type SendVideoParams struct {
	ChatID            ChatID
	Video             InputFile
	Duration          int
	Width             int
	Height            int
	Thumbnail         *InputFile
	HasSpoiler        bool
	SupportsStreaming bool
	Caption
	SendOptions
}

// Validate checks required fields.
func (p SendVideoParams) Validate() error {
	return validateMediaSend(p.ChatID, p.Video, "video", p.Caption, p.SendOptions)
}

// SendAnimationParams configures sendAnimation.
type SendAnimationParams struct {
	ChatID     ChatID
	Animation  InputFile
	Duration   int
	Width      int
	Height     int
	Thumbnail  *InputFile
	HasSpoiler bool
	Caption
	SendOptions
}

// Validate checks required fields.
func (p SendAnimationParams) Validate() error {
	return validateMediaSend(p.ChatID, p.Animation, "animation", p.Caption, p.SendOptions)
}

// SendVoiceParams configures sendVoice.
type SendVoiceParams struct {
	ChatID   ChatID
	Voice    InputFile
	Duration int
	Caption
	SendOptions
}

// Validate checks required fields.
func (p SendVoiceParams) Validate() error {
	return validateMediaSend(p.ChatID, p.Voice, "voice", p.Caption, p.SendOptions)
}

// SendVideoNoteParams configures sendVideoNote.
type SendVideoNoteParams struct {
	ChatID    ChatID
	VideoNote InputFile
	Duration  int
	Length    int
	Thumbnail *InputFile
	SendOptions
}

// Validate checks required fields.
func (p SendVideoNoteParams) Validate() error {
	if p.VideoNote.URL != "" {
		return invalidParam("video_note cannot be sent by URL")
	}

	return validateMediaSend(p.ChatID, p.VideoNote, "video_note", Caption{}, p.SendOptions)
}

func validateMediaSend(chatID ChatID, file InputFile, field string, caption Caption, options SendOptions) error {
	if err := chatID.Validate(); err != nil {
		return err
	}
	if err := file.Validate(field); err != nil {
		return err
	}
	if err := caption.validate(); err != nil {
		return err
	}

	return options.validate()
}

// SendMediaGroupParams configures sendMediaGroup.
type SendMediaGroupParams struct {
	ChatID ChatID
	Media  []InputMedia
	SendOptions
}

// Validate checks album size and composition.
func (p SendMediaGroupParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if len(p.Media) < 2 || len(p.Media) > 10 {
		return invalidParam("media must contain 2-10 items")
	}
	for index, media := range p.Media {
		if err := media.Validate(); err != nil {
			return invalidParam("media[%d]: %v", index, err)
		}
		if media.Type == InputMediaAnimation {
			return invalidParam("media[%d]: animations cannot be grouped", index)
		}
	}
	if p.ReplyMarkup != nil {
		return invalidParam("media groups do not support reply_markup")
	}

	return p.SendOptions.validate()
}

// SendLocationParams configures sendLocation.
type SendLocationParams struct {
	ChatID               ChatID
	Latitude             float64
	Longitude            float64
	HorizontalAccuracy   float64
	LivePeriod           int
	Heading              int
	ProximityAlertRadius int
	SendOptions
}

// Validate checks coordinates and live period bounds.
func (p SendLocationParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := validateCoordinates(p.Latitude, p.Longitude); err != nil {
		return err
	}
	if p.LivePeriod != 0 && (p.LivePeriod < 60 || (p.LivePeriod > 86400 && p.LivePeriod != 0x7FFFFFFF)) {
		return invalidParam("live_period must be between 60 and 86400 seconds")
	}

	return p.SendOptions.validate()
}

func validateCoordinates(latitude float64, longitude float64) error {
	if latitude < -90 || latitude > 90 {
		return invalidParam("latitude out of range")
	}
	if longitude < -180 || longitude > 180 {
		return invalidParam("longitude out of range")
	}

	return nil
}

// SendVenueParams configures sendVenue.
type SendVenueParams struct {
	ChatID          ChatID
	Latitude        float64
	Longitude       float64
	Title           string
	Address         string
	FoursquareID    string
	FoursquareType  string
	GooglePlaceID   string
	GooglePlaceType string
	SendOptions
}

// Validate checks required fields.
func (p SendVenueParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := validateCoordinates(p.Latitude, p.Longitude); err != nil {
		return err
	}
	if err := validateRequired("title", p.Title); err != nil {
		return err
	}
	if err := validateRequired("address", p.Address); err != nil {
		return err
	}

	return p.SendOptions.validate()
}

// SendContactParams configures sendContact.
type SendContactParams struct {
	ChatID      ChatID
	PhoneNumber string
	FirstName   string
	LastName    string
	VCard       string
	SendOptions
}

// Validate checks required fields.
func (p SendContactParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := validateRequired("phone_number", p.PhoneNumber); err != nil {
		return err
	}
	if err := validateRequired("first_name", p.FirstName); err != nil {
		return err
	}

	return p.SendOptions.validate()
}

// SendPollParams configures sendPoll.
//
// A nil IsAnonymous defaults to an anonymous poll.
type SendPollParams struct {
	ChatID                ChatID
	Question              string
	QuestionEntities      []MessageEntity
	Options               []InputPollOption
	IsAnonymous           *bool
	Type                  PollType
	AllowsMultipleAnswers bool
	CorrectOptionID       *int
	Explanation           string
	ExplanationParseMode  string
	ExplanationEntities   []MessageEntity
	OpenPeriod            int
	CloseDate             int64
	IsClosed              bool
	SendOptions
}

// Validate checks poll shape and quiz answer.
func (p SendPollParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := validateRequired("question", p.Question); err != nil {
		return err
	}
	if len(p.Options) < 2 || len(p.Options) > 10 {
		return invalidParam("options must contain 2-10 items")
	}
	if p.Type == PollTypeQuiz {
		if p.CorrectOptionID == nil {
			return invalidParam("correct_option_id is required for quizzes")
		}
		if *p.CorrectOptionID < 0 || *p.CorrectOptionID >= len(p.Options) {
			return invalidParam("correct_option_id out of range")
		}
	}
	if p.OpenPeriod != 0 && p.CloseDate != 0 {
		return invalidParam("open_period and close_date are mutually exclusive")
	}

	return p.SendOptions.validate()
}

// SendDiceParams configures sendDice.
type SendDiceParams struct {
	ChatID ChatID
	Emoji  string
	SendOptions
}

// Validate checks the chat.
func (p SendDiceParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return p.SendOptions.validate()
}

// ChatAction is a status shown while the bot prepares a message.
type ChatAction string

// Chat actions accepted by sendChatAction.
const (
	ChatActionTyping          ChatAction = "typing"
	ChatActionUploadPhoto     ChatAction = "upload_photo"
	ChatActionRecordVideo     ChatAction = "record_video"
	ChatActionUploadVideo     ChatAction = "upload_video"
	ChatActionRecordVoice     ChatAction = "record_voice"
	ChatActionUploadVoice     ChatAction = "upload_voice"
	ChatActionUploadDocument  ChatAction = "upload_document"
	ChatActionChooseSticker   ChatAction = "choose_sticker"
	ChatActionFindLocation    ChatAction = "find_location"
	ChatActionRecordVideoNote ChatAction = "record_video_note"
	ChatActionUploadVideoNote ChatAction = "upload_video_note"
)

// SendChatActionParams configures sendChatAction.
type SendChatActionParams struct {
	ChatID          ChatID
	MessageThreadID int
	Action          ChatAction
}

// Validate checks the chat and action.
func (p SendChatActionParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateRequired("action", string(p.Action))
}

// SetMessageReactionParams configures setMessageReaction.
type SetMessageReactionParams struct {
	ChatID    ChatID
	MessageID int
	Reaction  []ReactionType
	IsBig     bool
}

// Validate checks the target message.
func (p SetMessageReactionParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}

	return validateMessageID(p.MessageID)
}

// SendStickerParams configures sendSticker.
type SendStickerParams struct {
	ChatID  ChatID
	Sticker InputFile
	Emoji   string
	SendOptions
}

// Validate checks required fields.
func (p SendStickerParams) Validate() error {
	return validateMediaSend(p.ChatID, p.Sticker, "sticker", Caption{}, p.SendOptions)
}

// SendGameParams configures sendGame.
type SendGameParams struct {
	ChatID        int64
	GameShortName string
	SendOptions
}

// Validate checks required fields.
func (p SendGameParams) Validate() error {
	if p.ChatID == 0 {
		return invalidParam("chat_id is required")
	}
	if err := validateRequired("game_short_name", p.GameShortName); err != nil {
		return err
	}

	return p.SendOptions.validate()
}

// SendInvoiceParams configures sendInvoice.
type SendInvoiceParams struct {
	ChatID ChatID
	InvoiceParams
	SendOptions
}

// Validate checks required fields.
func (p SendInvoiceParams) Validate() error {
	if err := p.ChatID.Validate(); err != nil {
		return err
	}
	if err := p.InvoiceParams.Validate(); err != nil {
		return err
	}

	return p.SendOptions.validate()
}

// GetUserProfilePhotosParams configures getUserProfilePhotos.
type GetUserProfilePhotosParams struct {
	UserID int64
	Offset int
	Limit  int
}

// Validate checks user and paging bounds.
func (p GetUserProfilePhotosParams) Validate() error {
	if err := validateUserID(p.UserID); err != nil {
		return err
	}
	if p.Offset < 0 || p.Limit < 0 || p.Limit > 100 {
		return invalidParam("offset and limit out of range")
	}

	return nil
}

// GetFileParams configures getFile.
type GetFileParams struct {
	FileID string
}

// Validate checks the file identifier.
func (p GetFileParams) Validate() error {
	return validateRequired("file_id", p.FileID)
}
