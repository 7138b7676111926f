// Copyright 2025 coldtrack
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/coldtrack/coldtrack/engine/lifecycle"
	"github.com/coldtrack/coldtrack/engine/persistence"
	"github.com/coldtrack/coldtrack/engine/shared"
	"github.com/coldtrack/coldtrack/logging"
)

// httpError is a handler error that already knows its status code, used for request
// parse/decode failures that never reach the engine.
type httpError struct {
	status  int
	code    string
	message string
}

func (e *httpError) Error() string { return e.message }

func badRequest(message string) error {
	return &httpError{status: http.StatusBadRequest, code: "InvalidRequest", message: message}
}

// wrapFetch converts a storage miss on a read endpoint into a 404.
func wrapFetch(err error, entityID string) error {
	if errors.Is(err, persistence.ErrNotFound) {
		return &httpError{status: http.StatusNotFound, code: "NotFound", message: entityID + ": no such entity"}
	}
	return err
}

// encodeList writes a JSON array body. EncodeValid only handles structs, list endpoints
// validate their elements at store time.
func encodeList[T any](w http.ResponseWriter, v []T) error {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WrapHandlerWithError wraps a http handler that returns an error into a more generic
// http.Handler. Engine rejections map to their HTTP status, any other error becomes a
// generic 500.
func WrapHandlerWithError(h func(w http.ResponseWriter, r *http.Request) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err != nil {
			logger := logging.Extract(r.Context())
			logger.Error("HTTP handler returned error", "err", err.Error())

			var hErr *httpError
			if errors.As(err, &hErr) {
				encodeError(w, r, hErr.status, hErr.code, hErr.message)
				return
			}
			var lErr *lifecycle.Error
			if errors.As(err, &lErr) {
				encodeError(w, r, statusFor(lErr.Kind), lErr.Kind.String(), lErr.Error())
				return
			}

			encodeError(w, r, http.StatusInternalServerError, "Internal", "internal server error")
		}
	})
}

// statusFor maps an engine rejection to its HTTP status. Wrong-state rejections are
// conflicts, bad payloads are bad requests.
func statusFor(kind lifecycle.ErrorKind) int {
	switch kind {
	case lifecycle.KindInvalidState, lifecycle.KindProductNotSold:
		return http.StatusConflict
	case lifecycle.KindInvalidBid, lifecycle.KindInvalidRange:
		return http.StatusBadRequest
	case lifecycle.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func encodeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	if err := shared.EncodeValid(w, r, status, shared.APIError{
		Code:    code,
		Message: message,
	}); err != nil {
		logging.Extract(r.Context()).Error("Error while encoding HTTP error", "err", err)
	}
}
