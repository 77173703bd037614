package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"pharmamart/internal/common"
	"pharmamart/internal/models"
	"pharmamart/internal/services"
	"pharmamart/internal/views"
)

type ItemHandlers struct {
	itemService       services.ItemService
	itemStatusService services.ItemStatusService
	pharmacyService   services.PharmacyService
	auditService      services.AuditLogsService
	renderer          *views.Renderer
}

func NewItemHandlers(itemService services.ItemService, itemStatusService services.ItemStatusService,
	pharmacyService services.PharmacyService, auditService services.AuditLogsService,
	renderer *views.Renderer) *ItemHandlers {
	return &ItemHandlers{
		itemService:       itemService,
		itemStatusService: itemStatusService,
		pharmacyService:   pharmacyService,
		auditService:      auditService,
		renderer:          renderer,
	}
}

type itemForm struct {
	Item       *models.Item
	Statuses   []*models.ItemStatus
	Pharmacies []*models.Pharmacy
}

// Index handles GET /Items.
func (h *ItemHandlers) Index(c echo.Context) error {
	data := newIndexPageData(c, "Items", "/Items/GetAllItems", "/Items/AddOrEdit?id=0")
	return c.Render(http.StatusOK, "entity_index", data)
}

// GetAllItems handles POST /Items/GetAllItems. Admins who are not
// SuperAdmins only see items of their own pharmacy, searched or not.
func (h *ItemHandlers) GetAllItems(c echo.Context) error {
	ctx := c.Request().Context()
	term := c.QueryParam("searchTerm")

	var result services.Result[[]*models.Item]
	if common.HasRole(ctx, models.RoleAdmin) && !common.HasRole(ctx, models.RoleSuperAdmin) {
		userID, ok := common.GetUserIDFromContext(ctx)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
		}
		pharmacy := h.pharmacyService.GetByUserID(ctx, userID)
		switch {
		case pharmacy.Success:
			result = h.itemService.GetAllByPharmacy(ctx, pharmacy.Data.ID)
			if result.Success && term != "" {
				result = services.OK(filterItemsByName(result.Data, term))
			}
		case pharmacy.IsNotFound():
			result = services.OK([]*models.Item{})
		default:
			return echo.NewHTTPError(pharmacy.StatusCode, pharmacy.ErrorMessage)
		}
	} else if term != "" {
		result = h.itemService.SearchByName(ctx, term)
	} else {
		result = h.itemService.GetAll(ctx)
	}
	if !result.Success {
		return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
	}

	html, err := renderFragment(c, h.renderer, "items/table", result.Data)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering items")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEditForm handles GET /Items/AddOrEdit.
func (h *ItemHandlers) AddOrEditForm(c echo.Context) error {
	ctx := c.Request().Context()
	id := effectiveID(c, 0)

	item := &models.Item{IsActive: true}
	if id != 0 {
		result := h.itemService.GetByID(ctx, id)
		if !result.Success {
			return echo.NewHTTPError(result.StatusCode, result.ErrorMessage)
		}
		item = result.Data
	}

	statuses := h.itemStatusService.GetAll(ctx)
	if !statuses.Success {
		return echo.NewHTTPError(statuses.StatusCode, statuses.ErrorMessage)
	}
	pharmacies := h.pharmacyService.GetAll(ctx)
	if !pharmacies.Success {
		return echo.NewHTTPError(pharmacies.StatusCode, pharmacies.ErrorMessage)
	}

	html, err := renderFragment(c, h.renderer, "items/form", itemForm{
		Item:       item,
		Statuses:   statuses.Data,
		Pharmacies: pharmacies.Data,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Error rendering form")
	}
	return c.HTML(http.StatusOK, html)
}

// AddOrEdit handles POST /Items/AddOrEdit.
func (h *ItemHandlers) AddOrEdit(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID              int     `json:"id" form:"id"`
		ItemName        string  `json:"itemName" form:"itemName"`
		ItemDescription *string `json:"itemDescription" form:"itemDescription"`
		Price           float64 `json:"price" form:"price"`
		ItemStatusesID  int     `json:"itemStatusesId" form:"itemStatusesId"`
		ItemCode        *string `json:"itemCode" form:"itemCode"`
		ExpiryDate      *string `json:"expiryDate" form:"expiryDate"`
		IsActive        bool    `json:"isActive" form:"isActive"`
		Stock           *int    `json:"stock" form:"stock"`
		PharmaciesID    int     `json:"pharmaciesId" form:"pharmaciesId"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	id := effectiveID(c, req.ID)
	item := &models.Item{
		ID:              id,
		ItemName:        req.ItemName,
		ItemDescription: req.ItemDescription,
		Price:           req.Price,
		ItemStatusesID:  req.ItemStatusesID,
		ItemCode:        req.ItemCode,
		IsActive:        req.IsActive,
		Stock:           req.Stock,
		PharmaciesID:    req.PharmaciesID,
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			return c.JSON(http.StatusOK, successResponse{Success: false, Message: "Invalid expiry date format"})
		}
		item.ExpiryDate = &expiry
	}

	userName, _ := common.GetUserEmailFromContext(ctx)

	var result services.Result[*models.Item]
	var action string
	if id == 0 {
		result = h.itemService.Create(ctx, item, userName)
		action = services.ActionCreate
	} else {
		result = h.itemService.Update(ctx, item, userName)
		action = services.ActionUpdate
	}
	if !result.Success {
		return c.JSON(http.StatusOK, successResponse{Success: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, action, "item", &result.Data.ID, result.Data); err != nil {
		c.Logger().Errorf("recording item audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Item saved successfully"})
}

// Delete handles POST /Items/Delete.
func (h *ItemHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		ID int `json:"id" form:"id"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	id := effectiveID(c, req.ID)

	result := h.itemService.Delete(ctx, id)
	if !result.Success {
		return c.JSON(http.StatusOK, successResponse{Success: false, Message: result.ErrorMessage})
	}

	if err := h.auditService.LogActivity(ctx, services.ActionDelete, "item", &id, nil); err != nil {
		c.Logger().Errorf("recording item audit entry: %v", err)
	}

	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Item deleted successfully"})
}

// filterItemsByName narrows a pharmacy's item list to names containing term,
// matching case-insensitively like the unscoped search does.
func filterItemsByName(items []*models.Item, term string) []*models.Item {
	term = strings.ToLower(term)
	filtered := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.ItemName), term) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
