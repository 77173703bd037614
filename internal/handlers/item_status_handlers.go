package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmamart/internal/models"
	"pharmamart/internal/services"
	"pharmamart/internal/views"
)

type ItemStatusHandlers struct {
	itemStatusService services.ItemStatusService
	auditService      services.AuditLogsService
	renderer          *views.Renderer
}

func NewItemStatusHandlers(itemStatusService services.ItemStatusService, auditService services.AuditLogsService,
	renderer *views.Renderer) *ItemStatusHandlers {
	return &ItemStatusHandlers{itemStatusService: itemStatusService, auditService: auditService, renderer: renderer}
}

// Index handles GET /ItemStatuses.
func (h *ItemStatusHandlers) Index(c echo.Context) error {
	data := newIndexPageData(c, "Item Statuses", "/ItemStatuses/GetItemStatuses", "/ItemStatuses/AddOrEdit?id=0")
	return c.Render(http.StatusOK, "entity_index", data)
}

// GetItemStatuses handles POST /ItemStatuses/GetItemStatuses.
func (h *ItemStatusHandlers) GetItemStatuses(c echo.Context) error {
	result := h.itemStatusService.GetAll(c.Request().Context())
	if !result.Success {
		return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
	}

	html, err := renderFragment(c, h.renderer, "itemstatuses/table", result.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering item statuses")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEditForm handles GET /ItemStatuses/AddOrEdit.
func (h *ItemStatusHandlers) AddOrEditForm(c echo.Context) error {
	id := effectiveID(c, 0)

	status := &models.ItemStatus{}
	if id != 0 {
		result := h.itemStatusService.GetByID(c.Request().Context(), id)
		if !result.Success {
			return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
		}
		status = result.Data
	}

	html, err := renderFragment(c, h.renderer, "itemstatuses/form", status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering form")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEdit handles POST /ItemStatuses/AddOrEdit.
func (h *ItemStatusHandlers) AddOrEdit(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID     int    `json:"id" form:"id"`
		Status string `json:"status" form:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	id := effectiveID(c, req.ID)
	status := &models.ItemStatus{ID: id, Status: req.Status}

	var result services.Result[*models.ItemStatus]
	var action string
	if id == 0 {
		result = h.itemStatusService.Create(ctx, status)
		action = services.ActionCreate
	} else {
		result = h.itemStatusService.Update(ctx, id, status)
		action = services.ActionUpdate
	}
	if !result.Success {
		return c.JSON(http.StatusOK, validResponse{IsValid: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, action, "item_status", &result.Data.ID, result.Data); err != nil {
		c.Logger().Errorf("recording item status audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, validResponse{
		IsValid: true,
		Message: "Item status saved successfully",
		HTML:    h.tableHTML(c),
	})
}

// Delete handles POST /ItemStatuses/Delete.
func (h *ItemStatusHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID int `json:"id" form:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	id := effectiveID(c, req.ID)

	result := h.itemStatusService.Delete(ctx, id)
	if !result.Success {
		return c.JSON(http.StatusOK, successResponse{Success: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, services.ActionDelete, "item_status", &id, nil); err != nil {
		c.Logger().Errorf("recording item status audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Item status deleted successfully",
		HTML:    h.tableHTML(c),
	})
}

func (h *ItemStatusHandlers) tableHTML(c echo.Context) string {
	result := h.itemStatusService.GetAll(c.Request().Context())
	if !result.Success {
		return ""
	}
	html, err := renderFragment(c, h.renderer, "itemstatuses/table", result.Data)
	if err != nil {
		return ""
	}
	return html
}
