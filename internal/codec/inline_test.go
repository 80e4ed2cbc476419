package codec

import (
	"encoding/base64"
	"testing"

	"github.com/gotd/td/tg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlineMessageIDRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		id     tg.InputBotInlineMessageIDClass
		wantDC int
	}{
		{name: "legacy", id: &tg.InputBotInlineMessageID{DCID: 2, ID: 1234, AccessHash: -5}, wantDC: 2},
		{name: "64 bit", id: &tg.InputBotInlineMessageID64{DCID: 4, OwnerID: 1 << 40, ID: 17, AccessHash: 99}, wantDC: 4},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			encoded, err := EncodeInlineMessageID(testCase.id)
			require.NoError(t, err)

			decoded, err := DecodeInlineMessageID(encoded)
			require.NoError(t, err)
			assert.Equal(t, testCase.id, decoded)
			assert.Equal(t, testCase.wantDC, InlineMessageDC(decoded))
		})
	}
}

func TestDecodeInlineMessageIDRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "%%%", "AAAAAAAA"} {
		_, err := DecodeInlineMessageID(raw)
		require.ErrorIs(t, err, ErrInvalidInlineMessageID, "raw %q", raw)
	}

	_, err := EncodeInlineMessageID(nil)
	require.ErrorIs(t, err, ErrInvalidInlineMessageID)
}

func TestDecodeInlineMessageIDRejectsUnknownVersion(t *testing.T) {
	t.Parallel()

	encoded, err := EncodeInlineMessageID(&tg.InputBotInlineMessageID{DCID: 2, ID: 1234, AccessHash: -5})
	require.NoError(t, err)
	data, err := base64.RawURLEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, inlineMessageIDVersion, data[0])

	data[0] = inlineMessageIDVersion + 1
	_, err = DecodeInlineMessageID(base64.RawURLEncoding.EncodeToString(data))
	require.ErrorIs(t, err, ErrInvalidInlineMessageID)

	_, err = DecodeInlineMessageID(base64.RawURLEncoding.EncodeToString(data[1:]))
	require.ErrorIs(t, err, ErrInvalidInlineMessageID)
}
