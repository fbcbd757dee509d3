package handler

import (
	"net/http"

	"dashboard/config"
	"dashboard/events"
	"dashboard/store"
)

type Handler struct {
	Store       store.ComponentStore
	Events      events.Publisher
	Environment string
}

type messageResponse struct {
	Message string `json:"message"`
}

// internalError is the {message} for a failure on our side. In production
// the underlying error only reaches the log.
func (h *Handler) internalError(err error) messageResponse {
	if h.Environment == config.ProEnv {
		return messageResponse{Message: http.StatusText(http.StatusInternalServerError)}
	}
	return messageResponse{Message: err.Error()}
}
