package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dashboard/events"
	"dashboard/store"

	"github.com/labstack/echo/v4"
)

type upsertComponentRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ListComponents handles GET /api/components.
func (h *Handler) ListComponents(c echo.Context) error {
	components, err := h.Store.ListComponents(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, h.internalError(err))
	}
	return c.JSON(http.StatusOK, components)
}

// UpsertComponent handles POST /api/components. The body's type selects the
// record; its data replaces whatever was stored for that type.
func (h *Handler) UpsertComponent(c echo.Context) error {
	var req upsertComponentRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid JSON body"})
	}
	req.Type = strings.TrimSpace(req.Type)
	if req.Type == "" {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: store.ErrMissingType.Error()})
	}

	ctx := c.Request().Context()
	component, err := h.Store.UpsertComponent(ctx, req.Type, req.Data)
	if errors.Is(err, store.ErrMissingType) {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	}
	if err != nil {
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, h.internalError(err))
	}

	if h.Events != nil {
		if err := h.Events.Publish(ctx, events.TopicComponentUpserted, events.ComponentUpserted{Component: component}); err != nil {
			c.Logger().Warnf("publishing %s: %v", events.TopicComponentUpserted, err)
		}
	}
	return c.JSON(http.StatusCreated, component)
}
