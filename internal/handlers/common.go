package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"pharmamart/internal/common"
	"pharmamart/internal/views"
)

// effectiveID resolves the id an AddOrEdit/Delete request operates on: the
// posted body id wins when non-zero, otherwise the route (or query) id.
func effectiveID(c echo.Context, bodyID int) int {
	if bodyID != 0 {
		return bodyID
	}
	idStr := c.Param("id")
	if idStr == "" {
		idStr = c.QueryParam("id")
	}
	routeID, err := strconv.Atoi(idStr)
	if err != nil {
		return 0
	}
	return routeID
}

// pageData is the payload every full-page template receives.
type pageData struct {
	Title     string
	UserName  string
	FullName  string
	CSRFToken string
}

func newPageData(c echo.Context, title string) pageData {
	data := pageData{Title: title}
	if token, ok := c.Get("csrf").(string); ok {
		data.CSRFToken = token
	}
	ctx := c.Request().Context()
	if email, ok := common.GetUserEmailFromContext(ctx); ok {
		data.UserName = email
	}
	if name, ok := common.GetUserNameFromContext(ctx); ok {
		data.FullName = name
	}
	return data
}

// indexPageData drives the shared entity index template.
type indexPageData struct {
	pageData
	ListURL string
	AddURL  string
}

func newIndexPageData(c echo.Context, title, listURL, addURL string) indexPageData {
	return indexPageData{
		pageData: newPageData(c, title),
		ListURL:  listURL,
		AddURL:   addURL,
	}
}

// validResponse is the envelope Countries, Location, ItemStatuses and
// Pharmacies use for AddOrEdit; Items uses successResponse instead.
type validResponse struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
	HTML    string `json:"html,omitempty"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	HTML    string `json:"html,omitempty"`
}

// renderFragment executes a fragment template, logging through echo on
// failure so list endpoints degrade to an empty response body.
func renderFragment(c echo.Context, renderer *views.Renderer, name string, data interface{}) (string, error) {
	html, err := renderer.RenderString(name, data)
	if err != nil {
		c.Logger().Errorf("rendering %s: %v", name, err)
		return "", err
	}
	return html, nil
}
