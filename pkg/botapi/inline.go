package botapi

// InlineQuery is an incoming inline query.
type InlineQuery struct {
	ID       string    `json:"id"`
	From     User      `json:"from"`
	Query    string    `json:"query"`
	Offset   string    `json:"offset"`
	ChatType string    `json:"chat_type,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// ChosenInlineResult is an inline result picked by a user.
type ChosenInlineResult struct {
	ResultID        string    `json:"result_id"`
	From            User      `json:"from"`
	Location        *Location `json:"location,omitempty"`
	InlineMessageID string    `json:"inline_message_id,omitempty"`
	Query           string    `json:"query"`
}

// InlineQueryResultsButton is shown above inline query results.
type InlineQueryResultsButton struct {
	Text           string      `json:"text"`
	WebApp         *WebAppInfo `json:"web_app,omitempty"`
	StartParameter string      `json:"start_parameter,omitempty"`
}

// SentWebAppMessage describes an inline message sent by a Web App.
type SentWebAppMessage struct {
	InlineMessageID string `json:"inline_message_id,omitempty"`
}

// InlineQueryResult is one result of an inline query answer.
type InlineQueryResult interface {
	// ResultID returns the unique result identifier.
	ResultID() string
	// ResultType returns the Bot API result type name.
	ResultType() string
}

// InlineResultBase carries fields shared by every result kind.
type InlineResultBase struct {
	ID                  string
	ReplyMarkup         *InlineKeyboardMarkup
	InputMessageContent InputMessageContent
}

// ResultID returns the unique result identifier.
func (b InlineResultBase) ResultID() string {
	return b.ID
}

// InlineCaption carries caption fields of media results.
type InlineCaption struct {
	Caption         string
	ParseMode       string
	CaptionEntities []MessageEntity
}

// InlineThumbnail describes a result thumbnail loaded by URL.
type InlineThumbnail struct {
	ThumbnailURL      string
	ThumbnailMimeType string
	ThumbnailWidth    int
	ThumbnailHeight   int
}

// InlineQueryResultArticle links to an article or web page.
type InlineQueryResultArticle struct {
	InlineResultBase
	InlineThumbnail
	Title       string
	URL         string
	HideURL     bool
	Description string
}

// ResultType returns "article".
func (InlineQueryResultArticle) ResultType() string { return "article" }

// InlineQueryResultPhoto is a photo loaded by URL.
type InlineQueryResultPhoto struct {
	InlineResultBase
	InlineCaption
	InlineThumbnail
	PhotoURL    string
	PhotoWidth  int
	PhotoHeight int
	Title       string
	Description string
}

// ResultType returns "photo".
func (InlineQueryResultPhoto) ResultType() string { return "photo" }

// InlineQueryResultGif is an animated GIF loaded by URL.
type InlineQueryResultGif struct {
	InlineResultBase
	InlineCaption
	InlineThumbnail
	GifURL      string
	GifWidth    int
	GifHeight   int
	GifDuration int
	Title       string
}

// ResultType returns "gif".
func (InlineQueryResultGif) ResultType() string { return "gif" }

// InlineQueryResultMpeg4Gif is a soundless MP4 animation loaded by URL.
type InlineQueryResultMpeg4Gif struct {
	InlineResultBase
	InlineCaption
	InlineThumbnail
	Mpeg4URL      string
	Mpeg4Width    int
	Mpeg4Height   int
	Mpeg4Duration int
	Title         string
}

// ResultType returns "mpeg4_gif".
func (InlineQueryResultMpeg4Gif) ResultType() string { return "mpeg4_gif" }

// InlineQueryResultVideo is a video or a page with an embedded player.
type InlineQueryResultVideo struct {
	InlineResultBase
	InlineCaption
	InlineThumbnail
	VideoURL      string
	MimeType      string
	Title         string
	VideoWidth    int
	VideoHeight   int
	VideoDuration int
	Description   string
}

// ResultType returns "video".
func (InlineQueryResultVideo) ResultType() string { return "video" }

// InlineQueryResultAudio is an MP3 file loaded by URL.
type InlineQueryResultAudio struct {
	InlineResultBase
	InlineCaption
	AudioURL      string
	Title         string
	Performer     string
	AudioDuration int
}

// ResultType returns "audio".
func (InlineQueryResultAudio) ResultType() string { return "audio" }

// InlineQueryResultVoice is an OGG/OPUS voice note loaded by URL.
type InlineQueryResultVoice struct {
	InlineResultBase
	InlineCaption
	VoiceURL      string
	Title         string
	VoiceDuration int
}

// ResultType returns "voice".
func (InlineQueryResultVoice) ResultType() string { return "voice" }

// InlineQueryResultDocument is a PDF or ZIP file loaded by URL.
type InlineQueryResultDocument struct {
	InlineResultBase
	InlineCaption
	InlineThumbnail
	Title       string
	DocumentURL string
	MimeType    string
	Description string
}

// ResultType returns "document".
func (InlineQueryResultDocument) ResultType() string { return "document" }

// InlineQueryResultLocation is a point on the map.
type InlineQueryResultLocation struct {
	InlineResultBase
	InlineThumbnail
	Location
	Title string
}

// ResultType returns "location".
func (InlineQueryResultLocation) ResultType() string { return "location" }

// InlineQueryResultVenue is a named place.
type InlineQueryResultVenue struct {
	InlineResultBase
	InlineThumbnail
	Venue
}

// ResultType returns "venue".
func (InlineQueryResultVenue) ResultType() string { return "venue" }

// InlineQueryResultContact is a phone contact.
type InlineQueryResultContact struct {
	InlineResultBase
	InlineThumbnail
	Contact
}

// ResultType returns "contact".
func (InlineQueryResultContact) ResultType() string { return "contact" }

// InlineQueryResultGame is a game.
type InlineQueryResultGame struct {
	InlineResultBase
	GameShortName string
}

// ResultType returns "game".
func (InlineQueryResultGame) ResultType() string { return "game" }

// InlineQueryResultCachedPhoto is a photo stored on Telegram servers.
type InlineQueryResultCachedPhoto struct {
	InlineResultBase
	InlineCaption
	PhotoFileID string
	Title       string
	Description string
}

// ResultType returns "photo".
func (InlineQueryResultCachedPhoto) ResultType() string { return "photo" }

// InlineQueryResultCachedGif is a GIF stored on Telegram servers.
type InlineQueryResultCachedGif struct {
	InlineResultBase
	InlineCaption
	GifFileID string
	Title     string
}

// ResultType returns "gif".
func (InlineQueryResultCachedGif) ResultType() string { return "gif" }

// InlineQueryResultCachedMpeg4Gif is an MP4 animation stored on Telegram servers.
type InlineQueryResultCachedMpeg4Gif struct {
	InlineResultBase
	InlineCaption
	Mpeg4FileID string
	Title       string
}

// ResultType returns "mpeg4_gif".
func (InlineQueryResultCachedMpeg4Gif) ResultType() string { return "mpeg4_gif" }

// InlineQueryResultCachedSticker is a sticker stored on Telegram servers.
type InlineQueryResultCachedSticker struct {
	InlineResultBase
	StickerFileID string
}

// ResultType returns "sticker".
func (InlineQueryResultCachedSticker) ResultType() string { return "sticker" }

// InlineQueryResultCachedDocument is a file stored on Telegram servers.
type InlineQueryResultCachedDocument struct {
	InlineResultBase
	InlineCaption
	Title          string
	DocumentFileID string
	Description    string
}

// ResultType returns "document".
func (InlineQueryResultCachedDocument) ResultType() string { return "document" }

// InlineQueryResultCachedVideo is a video stored on Telegram servers.
type InlineQueryResultCachedVideo struct {
	InlineResultBase
	InlineCaption
	VideoFileID string
	Title       string
	Description string
}

// ResultType returns "video".
func (InlineQueryResultCachedVideo) ResultType() string { return "video" }

// InlineQueryResultCachedVoice is a voice note stored on Telegram servers.
type InlineQueryResultCachedVoice struct {
	InlineResultBase
	InlineCaption
	VoiceFileID string
	Title       string
}

// ResultType returns "voice".
func (InlineQueryResultCachedVoice) ResultType() string { return "voice" }

// InlineQueryResultCachedAudio is an MP3 file stored on Telegram servers.
type InlineQueryResultCachedAudio struct {
	InlineResultBase
	InlineCaption
	AudioFileID string
}

// ResultType returns "audio".
func (InlineQueryResultCachedAudio) ResultType() string { return "audio" }

// InputMessageContent is the content sent when an inline result is chosen.
type InputMessageContent interface {
	inputMessageContent()
}

// InputTextMessageContent sends a text message.
type InputTextMessageContent struct {
	MessageText        string
	ParseMode          string
	Entities           []MessageEntity
	LinkPreviewOptions *LinkPreviewOptions
}

func (InputTextMessageContent) inputMessageContent() {}

// InputLocationMessageContent sends a location.
type InputLocationMessageContent struct {
	Location
}

func (InputLocationMessageContent) inputMessageContent() {}

// InputVenueMessageContent sends a venue.
type InputVenueMessageContent struct {
	Venue
}

func (InputVenueMessageContent) inputMessageContent() {}

// InputContactMessageContent sends a contact.
type InputContactMessageContent struct {
	Contact
}

func (InputContactMessageContent) inputMessageContent() {}

// InputInvoiceMessageContent sends an invoice.
type InputInvoiceMessageContent struct {
	InvoiceParams
}

func (InputInvoiceMessageContent) inputMessageContent() {}
