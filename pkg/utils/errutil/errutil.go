package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/swasthya-lab/swasthya/pkg/domain/types"
	"github.com/swasthya-lab/swasthya/pkg/utils/logging"
)

// Handle logs the error with a message and returns it unchanged. It
// ensures that no error is silently swallowed on its way to the caller.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"kind", types.ErrorKind(err),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

// errorPayload is the JSON body of every failed operation. The kind field
// is the stable discriminator; the message is human-readable only.
type errorPayload struct {
	Error     string `json:"error"`
	ErrorKind string `json:"error_kind"`
}

// HandleHTTP logs the error and writes the JSON error payload with the
// given status code.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)
	kind := types.ErrorKind(err)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"kind", kind,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"kind", kind,
			"error", err.Error(),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if encodeErr := json.NewEncoder(w).Encode(errorPayload{
		Error:     err.Error(),
		ErrorKind: kind,
	}); encodeErr != nil {
		logger.Error("failed to encode error payload", "error", encodeErr.Error())
	}
}

// StatusCode maps an error to the HTTP status of its kind. Input problems
// are 400s; persistence and unknown failures are 500s.
func StatusCode(err error) int {
	switch types.ErrorKind(err) {
	case types.KindUnsupportedFormat,
		types.KindCorruptDocument,
		types.KindEmptyExtraction,
		types.KindValidationFailure:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
