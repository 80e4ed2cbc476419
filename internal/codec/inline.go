package codec

import (
	"encoding/base64"
	"fmt"

	"github.com/gotd/td/bin"
	"github.com/gotd/td/tg"
)

// inlineMessageIDVersion leads every encoded inline message identifier.
const inlineMessageIDVersion byte = 1

// EncodeInlineMessageID packs a native inline message reference.
func EncodeInlineMessageID(id tg.InputBotInlineMessageIDClass) (string, error) {
	if id == nil {
		return "", fmt.Errorf("%w: missing value", ErrInvalidInlineMessageID)
	}

	b := bin.Buffer{Buf: []byte{inlineMessageIDVersion}}
	if err := id.Encode(&b); err != nil {
		return "", fmt.Errorf("encode inline message id: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b.Raw()), nil
}

// DecodeInlineMessageID unpacks a string produced by EncodeInlineMessageID.
func DecodeInlineMessageID(raw string) (tg.InputBotInlineMessageIDClass, error) {
	data, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInlineMessageID, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidInlineMessageID)
	}
	if data[0] != inlineMessageIDVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidInlineMessageID, data[0])
	}

	b := bin.Buffer{Buf: data[1:]}
	id, err := tg.DecodeInputBotInlineMessageID(&b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInlineMessageID, err)
	}
	if b.Len() != 0 {
		return nil, fmt.Errorf("%w: trailing bytes", ErrInvalidInlineMessageID)
	}

	return id, nil
}

// InlineMessageDC returns the data center that owns an inline message.
func InlineMessageDC(id tg.InputBotInlineMessageIDClass) int {
	switch typed := id.(type) {
	case *tg.InputBotInlineMessageID:
		return typed.DCID
	case *tg.InputBotInlineMessageID64:
		return typed.DCID
	default:
		return 0
	}
}
