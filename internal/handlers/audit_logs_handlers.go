package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pharmamart/internal/models"
	"pharmamart/internal/services"
	"pharmamart/internal/views"
)

type AuditLogsHandlers struct {
	auditService services.AuditLogsService
	renderer     *views.Renderer
}

func NewAuditLogsHandlers(auditService services.AuditLogsService, renderer *views.Renderer) *AuditLogsHandlers {
	return &AuditLogsHandlers{auditService: auditService, renderer: renderer}
}

type auditPageData struct {
	pageData
	Entries []*models.AuditLog
}

// Index handles GET /Audit.
func (h *AuditLogsHandlers) Index(c echo.Context) error {
	result := h.auditService.ListRecent(c.Request().Context(), 100)
	if !result.Success {
		return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
	}

	data := auditPageData{
		pageData: newPageData(c, "Activity Log"),
		Entries:  result.Data,
	}
	return c.Render(http.StatusOK, "audit/index", data)
}

// GetAuditLogs handles POST /Audit/GetAuditLogs and returns the table fragment.
func (h *AuditLogsHandlers) GetAuditLogs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result := h.auditService.ListRecent(c.Request().Context(), limit)
	if !result.Success {
		return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
	}

	html, err := renderFragment(c, h.renderer, "audit/table", result.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering audit logs")
	}
	return c.HTML(http.StatusOK, html)
}
