package handler

import (
	"fmt"
	"net/http"

	"dashboard/domain"
	"dashboard/render"

	"github.com/labstack/echo/v4"
)

// GetDashboard renders the stored sections on top of the defaults.
func (h *Handler) GetDashboard(c echo.Context) error {
	components, err := h.Store.ListComponents(c.Request().Context())
	if err != nil {
		return fmt.Errorf("loading components: %w", err)
	}
	p, err := domain.PatchFromComponents(components)
	if err != nil {
		c.Logger().Warnf("ignoring stored sections: %v", err)
		p = domain.Patch{}
	}
	cfg := domain.Merge(domain.Default(), p)
	return c.Render(http.StatusOK, "dashboard.html", render.NewPage(cfg))
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
