package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmamart/internal/models"
	"pharmamart/internal/services"
	"pharmamart/internal/views"
)

type CountryHandlers struct {
	countryService services.CountryService
	auditService   services.AuditLogsService
	renderer       *views.Renderer
}

func NewCountryHandlers(countryService services.CountryService, auditService services.AuditLogsService,
	renderer *views.Renderer) *CountryHandlers {
	return &CountryHandlers{countryService: countryService, auditService: auditService, renderer: renderer}
}

// Index handles GET /Countries.
func (h *CountryHandlers) Index(c echo.Context) error {
	data := newIndexPageData(c, "Countries", "/Countries/GetCountries", "/Countries/AddOrEdit?id=0")
	return c.Render(http.StatusOK, "entity_index", data)
}

// GetCountries handles POST /Countries/GetCountries and returns the table fragment.
func (h *CountryHandlers) GetCountries(c echo.Context) error {
	var result services.Result[[]*models.Country]
	if term := c.QueryParam("searchTerm"); term != "" {
		result = h.countryService.SearchByName(c.Request().Context(), term)
	} else {
		result = h.countryService.GetAll(c.Request().Context())
	}
	if !result.Success {
		return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
	}

	html, err := renderFragment(c, h.renderer, "countries/table", result.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering countries")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEditForm handles GET /Countries/AddOrEdit and returns the form fragment.
func (h *CountryHandlers) AddOrEditForm(c echo.Context) error {
	id := effectiveID(c, 0)

	country := &models.Country{}
	if id != 0 {
		result := h.countryService.GetByID(c.Request().Context(), id)
		if !result.Success {
			return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
		}
		country = result.Data
	}

	html, err := renderFragment(c, h.renderer, "countries/form", country)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering form")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEdit handles POST /Countries/AddOrEdit.
func (h *CountryHandlers) AddOrEdit(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID   int    `json:"id" form:"id"`
		Name string `json:"name" form:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	id := effectiveID(c, req.ID)
	country := &models.Country{ID: id, Name: req.Name}

	var result services.Result[*models.Country]
	var action string
	if id == 0 {
		result = h.countryService.Create(ctx, country)
		action = services.ActionCreate
	} else {
		result = h.countryService.Update(ctx, id, country)
		action = services.ActionUpdate
	}
	if !result.Success {
		return c.JSON(http.StatusOK, validResponse{IsValid: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, action, "country", &result.Data.ID, result.Data); err != nil {
		c.Logger().Errorf("recording country audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, validResponse{
		IsValid: true,
		Message: "Country saved successfully",
		HTML:    h.tableHTML(c),
	})
}

// Delete handles POST /Countries/Delete.
func (h *CountryHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID int `json:"id" form:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	id := effectiveID(c, req.ID)

	result := h.countryService.Delete(ctx, id)
	if !result.Success {
		return c.JSON(http.StatusOK, successResponse{Success: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, services.ActionDelete, "country", &id, nil); err != nil {
		c.Logger().Errorf("recording country audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Country deleted successfully",
		HTML:    h.tableHTML(c),
	})
}

// tableHTML re-renders the countries table after a successful write.
func (h *CountryHandlers) tableHTML(c echo.Context) string {
	result := h.countryService.GetAll(c.Request().Context())
	if !result.Success {
		return ""
	}
	html, err := renderFragment(c, h.renderer, "countries/table", result.Data)
	if err != nil {
		return ""
	}
	return html
}
