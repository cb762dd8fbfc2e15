// Package response writes JSON bodies. Errors always use the Message shape.
package response

import (
	"careops/shared/constant"
	"careops/shared/failure"
	"careops/shared/logger"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

type Message struct {
	Message string `json:"message"`
}

func WithMessage(writer http.ResponseWriter, code int, message string) {
	write(writer, code, Message{Message: message})
}

// WithJSON sends the payload as the bare response body, without an envelope.
func WithJSON(writer http.ResponseWriter, code int, payload any) {
	write(writer, code, payload)
}

func WithNoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// WithError reports client failures with their own message. Everything else
// is logged with its stack and answered with a generic 500 body.
func WithError(writer http.ResponseWriter, err error) {
	if failure.IsClientError(err) {
		WithMessage(writer, failure.GetCode(err), err.Error())

		return
	}

	logger.ErrorWithStack(err)
	WithMessage(writer, http.StatusInternalServerError, constant.ResponseErrorInternal)
}

func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown is served once the server stops taking new work.
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

// write encodes before touching the header so an unencodable payload still
// yields a clean 500.
func write(writer http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		code = http.StatusInternalServerError
		body, _ = json.Marshal(Message{Message: constant.ResponseErrorInternal})
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(body); err != nil {
		log.Debug().Err(err).Msg("client went away before the response was written")
	}
}
