package mtbot

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gotd/td/tgerr"

	"ex-mtbot/internal/codec"
	"ex-mtbot/pkg/botapi"
)

// ErrNotStarted indicates a Runtime used before Run finished login.
var ErrNotStarted = errors.New("mtbot: client is not started")

var errNoMessage = errors.New("response carries no message")

// unchangedErrors are faults reporting that the requested state is already
// in place.
var unchangedErrors = []string{
	"CHAT_NOT_MODIFIED",
	"CHAT_ABOUT_NOT_MODIFIED",
	"CHAT_TITLE_NOT_MODIFIED",
	"STICKERSET_NOT_MODIFIED",
	"BOT_COMMANDS_NOT_MODIFIED",
}

func isUnchanged(err error) bool {
	return tgerr.Is(err, unchangedErrors...)
}

// mapRPCError translates a failure of method into the adapter error model.
//
// Adapter-level errors pass through unwrapped; native faults become
// *botapi.RequestError.
func mapRPCError(method string, err error) error {
	if err == nil {
		return nil
	}
	if requestErr, ok := botapi.AsRequestError(err); ok {
		if requestErr.Method == "" {
			requestErr.Method = method
		}
		return requestErr
	}
	if isAdapterError(err) {
		return err
	}

	requestErr := &botapi.RequestError{
		Method: method,
		Kind:   botapi.ErrorKindUnknown,
		Cause:  err,
	}

	if retryAfter, ok := tgerr.AsFloodWait(err); ok {
		requestErr.Code = http.StatusTooManyRequests
		requestErr.Kind = botapi.ErrorKindRateLimited
		requestErr.RetryAfter = retryAfter
		requestErr.Description = "Too Many Requests: retry after " + strconv.Itoa(int(retryAfter.Seconds()))
		if rpcErr, hasRPC := tgerr.As(err); hasRPC {
			requestErr.Type = rpcErr.Type
		}

		return requestErr
	}

	if errors.Is(err, errNoMessage) {
		requestErr.Code = http.StatusInternalServerError
		requestErr.Description = "Internal Server Error: " + errNoMessage.Error()
		return requestErr
	}

	rpcErr, ok := tgerr.As(err)
	if !ok {
		requestErr.Description = err.Error()
		return requestErr
	}

	requestErr.Code = rpcErr.Code
	requestErr.Type = rpcErr.Type
	requestErr.Kind = classifyRPCError(rpcErr)
	requestErr.Description = describeRPCError(rpcErr)

	return requestErr
}

func isAdapterError(err error) bool {
	return errors.Is(err, botapi.ErrNotSupported) ||
		errors.Is(err, botapi.ErrInvalidParams) ||
		errors.Is(err, codec.ErrInvalidFileID) ||
		errors.Is(err, codec.ErrInvalidInlineMessageID) ||
		errors.Is(err, codec.ErrInvalidChatID) ||
		errors.Is(err, ErrNotStarted) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func classifyRPCError(rpcErr *tgerr.Error) botapi.ErrorKind {
	if rpcErr == nil {
		return botapi.ErrorKindUnknown
	}

	errorType := strings.ToUpper(strings.TrimSpace(rpcErr.Type))
	if rpcErr.Code == 420 || rpcErr.Code == 429 || strings.Contains(errorType, "FLOOD") {
		return botapi.ErrorKindRateLimited
	}

	switch rpcErr.Code {
	case 303:
		return botapi.ErrorKindTemporary
	case 400, 401, 403, 404, 405, 406:
		return botapi.ErrorKindPermanent
	}
	if rpcErr.Code >= 500 {
		return botapi.ErrorKindTemporary
	}

	return botapi.ErrorKindUnknown
}

func describeRPCError(rpcErr *tgerr.Error) string {
	prefix := http.StatusText(rpcErr.Code)
	switch rpcErr.Code {
	case 400:
		prefix = "Bad Request"
	case 401:
		prefix = "Unauthorized"
	case 403:
		prefix = "Forbidden"
	case 406:
		prefix = "Not Acceptable"
	}
	if prefix == "" {
		prefix = "Error"
	}

	return prefix + ": " + rpcErr.Type
}

func chatNotFound(method string) error {
	return botapi.BadRequest(method, "chat not found")
}

func userNotFound(method string) error {
	return botapi.BadRequest(method, "user not found")
}

func messageNotFound(method string) error {
	return botapi.BadRequest(method, "message to edit not found")
}
