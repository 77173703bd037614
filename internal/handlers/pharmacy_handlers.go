package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmamart/internal/models"
	"pharmamart/internal/services"
	"pharmamart/internal/views"
)

type PharmacyHandlers struct {
	pharmacyService services.PharmacyService
	locationService services.LocationService
	auditService    services.AuditLogsService
	renderer        *views.Renderer
}

func NewPharmacyHandlers(pharmacyService services.PharmacyService, locationService services.LocationService,
	auditService services.AuditLogsService, renderer *views.Renderer) *PharmacyHandlers {
	return &PharmacyHandlers{
		pharmacyService: pharmacyService,
		locationService: locationService,
		auditService:    auditService,
		renderer:        renderer,
	}
}

type pharmacyForm struct {
	Pharmacy  *models.Pharmacy
	Locations []*models.Location
}

// Index handles GET /Pharmacies.
func (h *PharmacyHandlers) Index(c echo.Context) error {
	data := newIndexPageData(c, "Pharmacies", "/Pharmacies/GetPharmacies", "/Pharmacies/AddOrEdit?id=0")
	return c.Render(http.StatusOK, "entity_index", data)
}

// GetPharmacies handles POST /Pharmacies/GetPharmacies.
func (h *PharmacyHandlers) GetPharmacies(c echo.Context) error {
	result := h.pharmacyService.GetAll(c.Request().Context())
	if !result.Success {
		return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
	}

	html, err := renderFragment(c, h.renderer, "pharmacies/table", result.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering pharmacies")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEditForm handles GET /Pharmacies/AddOrEdit.
func (h *PharmacyHandlers) AddOrEditForm(c echo.Context) error {
	ctx := c.Request().Context()
	id := effectiveID(c, 0)

	pharmacy := &models.Pharmacy{}
	if id != 0 {
		result := h.pharmacyService.GetByID(ctx, id)
		if !result.Success {
			return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
		}
		pharmacy = result.Data
	}

	locations := h.locationService.GetAll(ctx)
	if !locations.Success {
		return echo.NewHTTPError(locations.StatusCode, locations.ErrorMessage)
	}

	html, err := renderFragment(c, h.renderer, "pharmacies/form", pharmacyForm{Pharmacy: pharmacy, Locations: locations.Data})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering form")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEdit handles POST /Pharmacies/AddOrEdit. Creating a pharmacy whose
// username has no identity user provisions an Admin account for it.
func (h *PharmacyHandlers) AddOrEdit(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID            int     `json:"id" form:"id"`
		PharmacyName  string  `json:"pharmacyName" form:"pharmacyName"`
		UserName      string  `json:"userName" form:"userName"`
		Latitude      *string `json:"latitude" form:"latitude"`
		Longitude     *string `json:"longitude" form:"longitude"`
		IsActive      bool    `json:"isActive" form:"isActive"`
		AccountNumber *string `json:"accountNumber" form:"accountNumber"`
		LocationsID   *int    `json:"locationsId" form:"locationsId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	id := effectiveID(c, req.ID)
	pharmacy := &models.Pharmacy{
		ID:            id,
		PharmacyName:  req.PharmacyName,
		UserName:      req.UserName,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		IsActive:      req.IsActive,
		AccountNumber: req.AccountNumber,
		LocationsID:   req.LocationsID,
	}

	var result services.Result[*models.Pharmacy]
	var action string
	if id == 0 {
		result = h.pharmacyService.Create(ctx, pharmacy)
		action = services.ActionCreate
	} else {
		result = h.pharmacyService.Update(ctx, id, pharmacy)
		action = services.ActionUpdate
	}
	if !result.Success {
		return c.JSON(http.StatusOK, validResponse{IsValid: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, action, "pharmacy", &result.Data.ID, result.Data); err != nil {
		c.Logger().Errorf("recording pharmacy audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, validResponse{
		IsValid: true,
		Message: "Pharmacy saved successfully",
		HTML:    h.tableHTML(c),
	})
}

// Delete handles POST /Pharmacies/Delete.
func (h *PharmacyHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID int `json:"id" form:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	id := effectiveID(c, req.ID)

	result := h.pharmacyService.Delete(ctx, id)
	if !result.Success {
		return c.JSON(http.StatusOK, successResponse{Success: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, services.ActionDelete, "pharmacy", &id, nil); err != nil {
		c.Logger().Errorf("recording pharmacy audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Pharmacy deleted successfully",
		HTML:    h.tableHTML(c),
	})
}

func (h *PharmacyHandlers) tableHTML(c echo.Context) string {
	result := h.pharmacyService.GetAll(c.Request().Context())
	if !result.Success {
		return ""
	}
	html, err := renderFragment(c, h.renderer, "pharmacies/table", result.Data)
	if err != nil {
		return ""
	}
	return html
}
