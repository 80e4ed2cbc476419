package codec

import "errors"

var (
	// ErrInvalidChatID indicates a Bot API chat identifier outside every peer range.
	ErrInvalidChatID = errors.New("codec: invalid chat id")
	// ErrInvalidFileID indicates a file identifier that cannot be decoded.
	ErrInvalidFileID = errors.New("codec: invalid file id")
	// ErrInvalidInlineMessageID indicates an inline message identifier that cannot be decoded.
	ErrInvalidInlineMessageID = errors.New("codec: invalid inline message id")
)
