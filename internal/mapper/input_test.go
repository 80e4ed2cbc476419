package mapper

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

func testDocumentID() codec.FileID {
	return codec.FileIDFromDocument(&tg.Document{ID: 11, AccessHash: 12, FileReference: []byte{9}, DCID: 2}, codec.FileKindDocument)
}

func TestInputMedia(t *testing.T) {
	t.Parallel()

	documentID := testDocumentID()

	t.Run("photo by url", func(t *testing.T) {
		t.Parallel()

		media, err := InputMedia(MediaSource{URL: "https://example.com/a.jpg"}, MediaAttributes{Kind: codec.FileKindPhoto, Spoiler: true})
		require.NoError(t, err)
		external, ok := media.(*tg.InputMediaPhotoExternal)
		require.True(t, ok, "got %T", media)
		assert.True(t, external.Spoiler)
	})

	t.Run("document id as photo", func(t *testing.T) {
		t.Parallel()

		_, err := InputMedia(MediaSource{FileID: &documentID}, MediaAttributes{Kind: codec.FileKindPhoto})
		require.ErrorIs(t, err, codec.ErrInvalidFileID)
	})

	t.Run("document by id", func(t *testing.T) {
		t.Parallel()

		media, err := InputMedia(MediaSource{FileID: &documentID}, MediaAttributes{Kind: codec.FileKindVideo})
		require.NoError(t, err)
		document, ok := media.(*tg.InputMediaDocument)
		require.True(t, ok, "got %T", media)
		input, ok := document.ID.(*tg.InputDocument)
		require.True(t, ok)
		assert.Equal(t, int64(11), input.ID)
		assert.Equal(t, []byte{9}, input.FileReference)
	})

	t.Run("uploaded video note", func(t *testing.T) {
		t.Parallel()

		media, err := InputMedia(
			MediaSource{Uploaded: &tg.InputFile{ID: 1, Parts: 1, Name: "round.mp4"}, FileName: "round.mp4"},
			MediaAttributes{Kind: codec.FileKindVideoNote, Duration: 5, Width: 240},
		)
		require.NoError(t, err)
		uploaded, ok := media.(*tg.InputMediaUploadedDocument)
		require.True(t, ok, "got %T", media)
		assert.Equal(t, "video/mp4", uploaded.MimeType)

		var video *tg.DocumentAttributeVideo
		for _, attribute := range uploaded.Attributes {
			if typed, isVideo := attribute.(*tg.DocumentAttributeVideo); isVideo {
				video = typed
			}
		}
		require.NotNil(t, video)
		assert.True(t, video.RoundMessage)
		assert.Equal(t, 240, video.H)
		assert.InDelta(t, 5, video.Duration, 0.001)
	})

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()

		_, err := InputMedia(MediaSource{}, MediaAttributes{Kind: codec.FileKindAudio})
		require.ErrorIs(t, err, codec.ErrInvalidFileID)
	})
}

func TestInputPoll(t *testing.T) {
	t.Parallel()

	correct := 1
	anonymous := false
	params := botapi.SendPollParams{
		Question:        "2+2?",
		Type:            botapi.PollTypeQuiz,
		IsAnonymous:     &anonymous,
		CorrectOptionID: &correct,
		OpenPeriod:      30,
	}
	text := PollText{
		Question:    FormattedText{Text: "2+2?"},
		Options:     []FormattedText{{Text: "3"}, {Text: "4"}},
		Explanation: FormattedText{Text: "basic math"},
	}

	media := InputPoll(params, text)
	require.Len(t, media.Poll.Answers, 2)
	assert.Equal(t, []byte("0"), media.Poll.Answers[0].Option)
	assert.True(t, media.Poll.Quiz)
	assert.True(t, media.Poll.PublicVoters)

	answers, ok := media.GetCorrectAnswers()
	require.True(t, ok)
	assert.Equal(t, [][]byte{[]byte("1")}, answers)

	solution, ok := media.GetSolution()
	require.True(t, ok)
	assert.Equal(t, "basic math", solution)

	period, ok := media.Poll.GetClosePeriod()
	require.True(t, ok)
	assert.Equal(t, 30, period)
}

func TestInputVenuePrefersFoursquare(t *testing.T) {
	t.Parallel()

	venue := InputVenue(botapi.Venue{
		Location:      botapi.Location{Latitude: 1, Longitude: 2},
		Title:         "Cafe",
		FoursquareID:  "fsq",
		GooglePlaceID: "gp",
	})

	assert.Equal(t, "foursquare", venue.Provider)
	assert.Equal(t, "fsq", venue.VenueID)
}

func TestInputInvoice(t *testing.T) {
	t.Parallel()

	media := InputInvoice(botapi.InvoiceParams{
		Title:         "Coffee",
		Description:   "Large",
		Payload:       "order-1",
		ProviderToken: "token",
		Currency:      "EUR",
		Prices:        []botapi.LabeledPrice{{Label: "Coffee", Amount: 350}},
		NeedEmail:     true,
	})

	assert.Equal(t, []byte("order-1"), media.Payload)
	assert.Equal(t, "{}", media.ProviderData.Data)
	assert.Equal(t, "token", media.Provider)
	assert.True(t, media.Invoice.EmailRequested)
	require.Len(t, media.Invoice.Prices, 1)
	assert.Equal(t, int64(350), media.Invoice.Prices[0].Amount)
}

func TestInputReactions(t *testing.T) {
	t.Parallel()

	native, err := InputReactions([]botapi.ReactionType{
		{Type: botapi.ReactionTypeEmoji, Emoji: "👍"},
		{Type: botapi.ReactionTypeCustomEmoji, CustomEmojiID: "5368324170671202286"},
	})
	require.NoError(t, err)
	require.Len(t, native, 2)

	for _, reaction := range native {
		projected, ok := Reaction(reaction)
		require.True(t, ok)
		assert.NotEmpty(t, projected.Type)
	}

	_, err = InputReactions([]botapi.ReactionType{{Type: botapi.ReactionTypeCustomEmoji, CustomEmojiID: "x"}})
	requestErr, ok := botapi.AsRequestError(err)
	require.True(t, ok)
	assert.Equal(t, 400, requestErr.Code)
}

func TestChatAction(t *testing.T) {
	t.Parallel()

	action, err := ChatAction(botapi.ChatActionRecordVideoNote)
	require.NoError(t, err)
	assert.IsType(t, &tg.SendMessageRecordRoundAction{}, action)

	_, err = ChatAction("dance")
	require.Error(t, err)
}

func TestCommandScope(t *testing.T) {
	t.Parallel()

	peer := &tg.InputPeerChat{ChatID: 123}
	user := &tg.InputUser{UserID: 7, AccessHash: 77}

	scope, err := CommandScope(botapi.ScopeChatMember(botapi.ID(-123), 7), peer, user)
	require.NoError(t, err)
	member, ok := scope.(*tg.BotCommandScopePeerUser)
	require.True(t, ok)
	assert.Equal(t, user, member.UserID)

	scope, err = CommandScope(botapi.ScopeAllPrivateChats(), nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &tg.BotCommandScopeUsers{}, scope)
}

func TestMenuButton(t *testing.T) {
	t.Parallel()

	native, err := MenuButton(&botapi.MenuButton{Type: botapi.MenuButtonTypeWebApp, Text: "Open", WebApp: &botapi.WebAppInfo{URL: "https://example.com"}})
	require.NoError(t, err)
	assert.Equal(t, botapi.MenuButton{Type: botapi.MenuButtonTypeWebApp, Text: "Open", WebApp: &botapi.WebAppInfo{URL: "https://example.com"}}, BotMenuButton(native))

	reset, err := MenuButton(nil)
	require.NoError(t, err)
	assert.IsType(t, &tg.BotMenuButtonDefault{}, reset)
}
