package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pharmamart/internal/models"
	"pharmamart/internal/services"
	"pharmamart/internal/views"
)

type LocationHandlers struct {
	locationService services.LocationService
	countryService  services.CountryService
	auditService    services.AuditLogsService
	renderer        *views.Renderer
}

func NewLocationHandlers(locationService services.LocationService, countryService services.CountryService,
	auditService services.AuditLogsService, renderer *views.Renderer) *LocationHandlers {
	return &LocationHandlers{
		locationService: locationService,
		countryService:  countryService,
		auditService:    auditService,
		renderer:        renderer,
	}
}

type locationForm struct {
	Location  *models.Location
	Countries []*models.Country
}

// Index handles GET /Location.
func (h *LocationHandlers) Index(c echo.Context) error {
	data := newIndexPageData(c, "Locations", "/Location/GetLocations", "/Location/AddOrEdit?id=0")
	return c.Render(http.StatusOK, "entity_index", data)
}

// GetLocations handles POST /Location/GetLocations with an optional
// searchTerm or countryId filter.
func (h *LocationHandlers) GetLocations(c echo.Context) error {
	var result services.Result[[]*models.Location]
	if term := c.QueryParam("searchTerm"); term != "" {
		result = h.locationService.Search(c.Request().Context(), term)
	} else if countryID, err := strconv.Atoi(c.QueryParam("countryId")); err == nil && countryID > 0 {
		result = h.locationService.GetByCountry(c.Request().Context(), countryID)
	} else {
		result = h.locationService.GetAll(c.Request().Context())
	}
	if !result.Success {
		return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
	}

	html, err := renderFragment(c, h.renderer, "locations/table", result.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering locations")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEditForm handles GET /Location/AddOrEdit.
func (h *LocationHandlers) AddOrEditForm(c echo.Context) error {
	ctx := c.Request().Context()
	id := effectiveID(c, 0)

	location := &models.Location{}
	if id != 0 {
		result := h.locationService.GetByID(ctx, id)
		if !result.Success {
			return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
		}
		location = result.Data
	}

	countries := h.countryService.GetAll(ctx)
	if !countries.Success {
		return echo.NewHTTPError(countries.StatusCode, countries.ErrorMessage)
	}

	html, err := renderFragment(c, h.renderer, "locations/form", locationForm{Location: location, Countries: countries.Data})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering form")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEdit handles POST /Location/AddOrEdit.
func (h *LocationHandlers) AddOrEdit(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID          int     `json:"id" form:"id"`
		Street      string  `json:"street" form:"street"`
		City        string  `json:"city" form:"city"`
		State       *string `json:"state" form:"state"`
		CountriesID int     `json:"countriesId" form:"countriesId"`
		TimeZone    *string `json:"timeZone" form:"timeZone"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	id := effectiveID(c, req.ID)
	location := &models.Location{
		ID:          id,
		Street:      req.Street,
		City:        req.City,
		State:       req.State,
		CountriesID: req.CountriesID,
		TimeZone:    req.TimeZone,
	}

	var result services.Result[*models.Location]
	var action string
	if id == 0 {
		result = h.locationService.Create(ctx, location)
		action = services.ActionCreate
	} else {
		result = h.locationService.Update(ctx, id, location)
		action = services.ActionUpdate
	}
	if !result.Success {
		return c.JSON(http.StatusOK, validResponse{IsValid: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, action, "location", &result.Data.ID, result.Data); err != nil {
		c.Logger().Errorf("recording location audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, validResponse{
		IsValid: true,
		Message: "Location saved successfully",
		HTML:    h.tableHTML(c),
	})
}

// Delete handles POST /Location/Delete.
func (h *LocationHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID int `json:"id" form:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	id := effectiveID(c, req.ID)

	result := h.locationService.Delete(ctx, id)
	if !result.Success {
		return c.JSON(http.StatusOK, successResponse{Success: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, services.ActionDelete, "location", &id, nil); err != nil {
		c.Logger().Errorf("recording location audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Location deleted successfully",
		HTML:    h.tableHTML(c),
	})
}

func (h *LocationHandlers) tableHTML(c echo.Context) string {
	result := h.locationService.GetAll(c.Request().Context())
	if !result.Success {
		return ""
	}
	html, err := renderFragment(c, h.renderer, "locations/table", result.Data)
	if err != nil {
		return ""
	}
	return html
}
