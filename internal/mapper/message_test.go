package mapper

import (
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ex-mtbot/pkg/botapi"
)

func TestMessageText(t *testing.T) {
	t.Parallel()

	native := &tg.Message{
		ID:      10,
		PeerID:  &tg.PeerUser{UserID: 7},
		Date:    1_700_000_000,
		Message: "/start now",
		Entities: []tg.MessageEntityClass{
			&tg.MessageEntityBotCommand{Offset: 0, Length: 6},
		},
	}

	message := Message(native, testCollector())
	require.NotNil(t, message)
	assert.Equal(t, botapi.MessageTypeText, message.Type())
	assert.True(t, message.IsCommand())
	require.NotNil(t, message.From)
	assert.Equal(t, int64(7), message.From.ID)
	assert.Equal(t, int64(7), message.Chat.ID)
	assert.Equal(t, botapi.ChatTypePrivate, message.Chat.Type)
}

func TestMessageChannelPostSender(t *testing.T) {
	t.Parallel()

	native := &tg.Message{ID: 3, PeerID: &tg.PeerChannel{ChannelID: 555}, Post: true, Message: "hello", PostAuthor: "Ada"}

	message := Message(native, testCollector())
	require.NotNil(t, message)
	assert.Nil(t, message.From)
	require.NotNil(t, message.SenderChat)
	assert.Equal(t, int64(-1000000000555), message.SenderChat.ID)
	assert.Equal(t, botapi.ChatTypeChannel, message.Chat.Type)
	assert.Equal(t, "Ada", message.AuthorSignature)
}

func TestMessageVenueWinsOverLocation(t *testing.T) {
	t.Parallel()

	native := &tg.Message{
		ID:     4,
		PeerID: &tg.PeerChat{ChatID: 123},
		FromID: &tg.PeerUser{UserID: 7},
		Media: &tg.MessageMediaVenue{
			Geo:       &tg.GeoPoint{Lat: 51.5, Long: -0.12},
			Title:     "Museum",
			Address:   "Exhibition Road",
			Provider:  "foursquare",
			VenueID:   "4ac518",
			VenueType: "arts_entertainment/museum",
		},
	}

	message := Message(native, testCollector())
	require.NotNil(t, message)
	require.NotNil(t, message.Venue)
	require.NotNil(t, message.Location)
	assert.Equal(t, botapi.MessageTypeVenue, message.Type())
	assert.Equal(t, "4ac518", message.Venue.FoursquareID)
	assert.Equal(t, int64(-123), message.Chat.ID)
}

func TestMessageAnimationAlsoSetsDocument(t *testing.T) {
	t.Parallel()

	document := &tg.Document{
		ID:            900,
		AccessHash:    901,
		FileReference: []byte{1, 2, 3},
		DCID:          2,
		MimeType:      "video/mp4",
		Size:          2048,
		Attributes: []tg.DocumentAttributeClass{
			&tg.DocumentAttributeVideo{W: 320, H: 240, Duration: 3},
			&tg.DocumentAttributeAnimated{},
			&tg.DocumentAttributeFilename{FileName: "cat.mp4"},
		},
	}
	native := &tg.Message{
		ID:      5,
		PeerID:  &tg.PeerUser{UserID: 7},
		Message: "look",
		Media:   &tg.MessageMediaDocument{Document: document},
	}

	message := Message(native, testCollector())
	require.NotNil(t, message)
	require.NotNil(t, message.Animation)
	require.NotNil(t, message.Document)
	assert.Equal(t, botapi.MessageTypeAnimation, message.Type())
	assert.Equal(t, "look", message.Caption)
	assert.Empty(t, message.Text)
	assert.Equal(t, message.Animation.FileID, message.Document.FileID)
	assert.Equal(t, 3, message.Animation.Duration)
	assert.Equal(t, "cat.mp4", message.Animation.FileName)
}

func TestDocumentKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		attributes []tg.DocumentAttributeClass
		want       botapi.MessageType
	}{
		{name: "plain document", want: botapi.MessageTypeDocument},
		{name: "voice", attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeAudio{Voice: true, Duration: 2}}, want: botapi.MessageTypeVoice},
		{name: "audio", attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeAudio{Title: "song"}}, want: botapi.MessageTypeAudio},
		{name: "video note", attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeVideo{RoundMessage: true, W: 240, H: 240}}, want: botapi.MessageTypeVideoNote},
		{name: "video", attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeVideo{W: 640, H: 480}}, want: botapi.MessageTypeVideo},
		{
			name:       "sticker",
			attributes: []tg.DocumentAttributeClass{&tg.DocumentAttributeSticker{Alt: "x", Stickerset: &tg.InputStickerSetShortName{ShortName: "pack_by_relay_bot"}}},
			want:       botapi.MessageTypeSticker,
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			native := &tg.Message{
				ID:     6,
				PeerID: &tg.PeerUser{UserID: 7},
				Media: &tg.MessageMediaDocument{Document: &tg.Document{
					ID:         1,
					AccessHash: 2,
					DCID:       4,
					MimeType:   "application/octet-stream",
					Attributes: testCase.attributes,
				}},
			}

			message := Message(native, testCollector())
			require.NotNil(t, message)
			assert.Equal(t, testCase.want, message.Type())
		})
	}
}

func TestForwardOrigin(t *testing.T) {
	t.Parallel()

	collector := testCollector()

	tests := []struct {
		name   string
		header tg.MessageFwdHeader
		check  func(t *testing.T, message *botapi.Message)
	}{
		{
			name:   "user",
			header: tg.MessageFwdHeader{FromID: &tg.PeerUser{UserID: 7}, Date: 100},
			check: func(t *testing.T, message *botapi.Message) {
				require.NotNil(t, message.ForwardFrom())
				assert.Equal(t, "ada", message.ForwardFrom().Username)
				assert.Nil(t, message.ForwardFromChat())
				assert.EqualValues(t, 100, message.ForwardDate())
			},
		},
		{
			name:   "hidden user",
			header: tg.MessageFwdHeader{FromName: "Anonymous", Date: 100},
			check: func(t *testing.T, message *botapi.Message) {
				assert.Equal(t, botapi.OriginTypeHiddenUser, message.ForwardOrigin.Type)
				assert.Equal(t, "Anonymous", message.ForwardSenderName())
				assert.Nil(t, message.ForwardFrom())
			},
		},
		{
			name: "channel post",
			header: func() tg.MessageFwdHeader {
				header := tg.MessageFwdHeader{FromID: &tg.PeerChannel{ChannelID: 555}, Date: 100, PostAuthor: "Ada"}
				header.SetChannelPost(77)
				return header
			}(),
			check: func(t *testing.T, message *botapi.Message) {
				assert.Equal(t, botapi.OriginTypeChannel, message.ForwardOrigin.Type)
				require.NotNil(t, message.ForwardFromChat())
				assert.Equal(t, int64(-1000000000555), message.ForwardFromChat().ID)
				assert.Equal(t, 77, message.ForwardFromMessageID())
				assert.Equal(t, "Ada", message.ForwardSignature())
			},
		},
		{
			name:   "supergroup on behalf of chat",
			header: tg.MessageFwdHeader{FromID: &tg.PeerChannel{ChannelID: 666}, Date: 100},
			check: func(t *testing.T, message *botapi.Message) {
				assert.Equal(t, botapi.OriginTypeChat, message.ForwardOrigin.Type)
				require.NotNil(t, message.ForwardFromChat())
				assert.Equal(t, "Forum", message.ForwardFromChat().Title)
				assert.Zero(t, message.ForwardFromMessageID())
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			native := &tg.Message{ID: 8, PeerID: &tg.PeerUser{UserID: 7}, Message: "fwd"}
			native.SetFwdFrom(testCase.header)

			message := Message(native, collector)
			require.NotNil(t, message)
			require.NotNil(t, message.ForwardOrigin)
			testCase.check(t, message)
		})
	}
}

func TestServiceMessages(t *testing.T) {
	t.Parallel()

	collector := testCollector()

	tests := []struct {
		name   string
		peer   tg.PeerClass
		action tg.MessageActionClass
		reply  int
		want   botapi.MessageType
	}{
		{name: "members joined", peer: &tg.PeerChat{ChatID: 123}, action: &tg.MessageActionChatAddUser{Users: []int64{7}}, want: botapi.MessageTypeNewChatMembers},
		{name: "member left", peer: &tg.PeerChat{ChatID: 123}, action: &tg.MessageActionChatDeleteUser{UserID: 7}, want: botapi.MessageTypeLeftChatMember},
		{name: "title", peer: &tg.PeerChat{ChatID: 123}, action: &tg.MessageActionChatEditTitle{Title: "New"}, want: botapi.MessageTypeNewChatTitle},
		{name: "migrate", peer: &tg.PeerChat{ChatID: 123}, action: &tg.MessageActionChatMigrateTo{ChannelID: 666}, want: botapi.MessageTypeMigrateToChatID},
		{name: "pinned", peer: &tg.PeerChannel{ChannelID: 666}, action: &tg.MessageActionPinMessage{}, reply: 5, want: botapi.MessageTypePinnedMessage},
		{name: "supergroup created", peer: &tg.PeerChannel{ChannelID: 666}, action: &tg.MessageActionChannelCreate{Title: "Forum"}, want: botapi.MessageTypeSupergroupChatCreated},
		{name: "topic closed", peer: &tg.PeerChannel{ChannelID: 666}, action: closedTopic(), want: botapi.MessageTypeForumTopicClosed},
		{name: "unknown", peer: &tg.PeerChat{ChatID: 123}, action: &tg.MessageActionHistoryClear{}, want: botapi.MessageTypeUnknown},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			native := &tg.MessageService{ID: 9, PeerID: testCase.peer, FromID: &tg.PeerUser{UserID: 7}, Action: testCase.action}
			if testCase.reply != 0 {
				header := &tg.MessageReplyHeader{}
				header.SetReplyToMsgID(testCase.reply)
				native.ReplyTo = header
			}

			message := Message(native, collector)
			require.NotNil(t, message)
			assert.Equal(t, testCase.want, message.Type())
		})
	}
}

func closedTopic() *tg.MessageActionTopicEdit {
	action := &tg.MessageActionTopicEdit{}
	action.SetClosed(true)

	return action
}

func TestMessageMigrateToChatID(t *testing.T) {
	t.Parallel()

	native := &tg.MessageService{ID: 1, PeerID: &tg.PeerChat{ChatID: 123}, Action: &tg.MessageActionChatMigrateTo{ChannelID: 666}}

	message := Message(native, testCollector())
	require.NotNil(t, message)
	assert.Equal(t, int64(-1000000000666), message.MigrateToChatID)
}

func TestMessageEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Message(&tg.MessageEmpty{ID: 1}, testCollector()))
}

func TestForwardOriginUnknownChannelPost(t *testing.T) {
	t.Parallel()

	header := tg.MessageFwdHeader{FromID: &tg.PeerChannel{ChannelID: 999}, Date: 100}
	header.SetChannelPost(99)

	origin := ForwardOrigin(header, NewCollector(1))
	require.NotNil(t, origin)
	assert.Equal(t, botapi.OriginTypeChannel, origin.Type)
	assert.Equal(t, 99, origin.MessageID)
	assert.Nil(t, origin.SenderChat)
	require.NotNil(t, origin.Chat)
	assert.Equal(t, int64(-1000000000999), origin.Chat.ID)
	assert.Equal(t, botapi.ChatTypeChannel, origin.Chat.Type)
}

func TestOrderInfoShippingAddress(t *testing.T) {
	t.Parallel()

	info := tg.PaymentRequestedInfo{Name: "Ada", Email: "ada@example.org"}
	info.SetShippingAddress(tg.PostAddress{
		StreetLine1: "12 Analytical Way",
		City:        "London",
		State:       "Greater London",
		CountryISO2: "GB",
		PostCode:    "SW7",
	})

	order := OrderInfo(info)
	require.NotNil(t, order.ShippingAddress)
	assert.Equal(t, "Ada", order.Name)
	assert.Equal(t, botapi.ShippingAddress{
		CountryCode: "GB",
		State:       "Greater London",
		City:        "London",
		StreetLine1: "12 Analytical Way",
		PostCode:    "SW7",
	}, *order.ShippingAddress)
}
