package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type HomeHandlers struct{}

func NewHomeHandlers() *HomeHandlers {
	return &HomeHandlers{}
}

// Index handles GET /.
func (h *HomeHandlers) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "home", newPageData(c, "Dashboard"))
}
