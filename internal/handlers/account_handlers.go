package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"pharmamart/internal/common"
	"pharmamart/internal/middleware"
	"pharmamart/internal/models"
	"pharmamart/internal/services"
	"pharmamart/internal/views"
)

const profilePictureMaxSize = 5 << 20 // 5 MiB

type AccountHandlers struct {
	identityService services.IdentityService
	storageService  services.StorageService
	auditService    services.AuditLogsService
	renderer        *views.Renderer
}

func NewAccountHandlers(identityService services.IdentityService, storageService services.StorageService,
	auditService services.AuditLogsService, renderer *views.Renderer) *AccountHandlers {
	return &AccountHandlers{
		identityService: identityService,
		storageService:  storageService,
		auditService:    auditService,
		renderer:        renderer,
	}
}

type loginPageData struct {
	pageData
	Email     string
	ReturnURL string
	Error     string
	Message   string
}

// LoginPage handles GET /Account/Login.
func (h *AccountHandlers) LoginPage(c echo.Context) error {
	data := loginPageData{
		pageData:  newPageData(c, "Sign In"),
		ReturnURL: c.QueryParam("returnUrl"),
		Message:   c.QueryParam("message"),
	}
	return c.Render(http.StatusOK, "account/login", data)
}

// Login handles POST /Account/Login.
func (h *AccountHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email     string `json:"email" form:"email"`
		Password  string `json:"password" form:"password"`
		ReturnURL string `json:"returnUrl" form:"returnUrl"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.identityService.PasswordSignIn(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) || errors.Is(err, services.ErrInvalidCredentials) {
			data := loginPageData{
				pageData:  newPageData(c, "Sign In"),
				Email:     req.Email,
				ReturnURL: req.ReturnURL,
				Error:     "Invalid email or password",
			}
			return c.Render(http.StatusOK, "account/login", data)
		}
		log.Printf("ERROR: signing in %q: %v", req.Email, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error signing in")
	}

	token, err := h.identityService.IssueSessionToken(user)
	if err != nil {
		log.Printf("ERROR: issuing session token for %q: %v", req.Email, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error signing in")
	}
	h.setSessionCookie(c, token, 12*time.Hour)

	if logErr := h.auditService.LogActivity(ctx, services.ActionLogin, "user", nil, map[string]string{"email": user.Email}); logErr != nil {
		c.Logger().Errorf("recording login audit entry: %v", logErr)
	}

	if user.MustChangePassword {
		return c.Redirect(http.StatusFound, "/Account/ChangePassword?mustChange=1")
	}
	return c.Redirect(http.StatusFound, safeReturnURL(req.ReturnURL))
}

type registerPageData struct {
	pageData
	FullName string
	Email    string
	Error    string
}

// RegisterPage handles GET /Account/Register.
func (h *AccountHandlers) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "account/register", registerPageData{pageData: newPageData(c, "Register")})
}

// Register handles POST /Account/Register. New accounts get the User role.
func (h *AccountHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		FullName        string `json:"fullName" form:"fullName"`
		Email           string `json:"email" form:"email"`
		Password        string `json:"password" form:"password"`
		ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	renderError := func(message string) error {
		data := registerPageData{
			pageData: newPageData(c, "Register"),
			FullName: req.FullName,
			Email:    req.Email,
			Error:    message,
		}
		return c.Render(http.StatusOK, "account/register", data)
	}

	if strings.TrimSpace(req.FullName) == "" {
		return renderError("Full name is required")
	}
	if req.Password != req.ConfirmPassword {
		return renderError("Passwords do not match")
	}

	user, err := h.identityService.CreateUser(ctx, req.Email, req.FullName, req.Password, models.RoleUser)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return renderError("A user with this email already exists")
		}
		log.Printf("ERROR: registering %q: %v", req.Email, err)
		return renderError(err.Error())
	}

	token, err := h.identityService.IssueSessionToken(user)
	if err != nil {
		log.Printf("ERROR: issuing session token for %q: %v", req.Email, err)
		return c.Redirect(http.StatusFound, "/Account/Login")
	}
	h.setSessionCookie(c, token, 12*time.Hour)
	return c.Redirect(http.StatusFound, "/")
}

// Logout handles POST /Account/Logout.
func (h *AccountHandlers) Logout(c echo.Context) error {
	h.setSessionCookie(c, "", -time.Hour)
	return c.Redirect(http.StatusFound, "/Account/Login")
}

type verifyEmailPageData struct {
	pageData
	Email   string
	Error   string
	Message string
}

// VerifyEmailPage handles GET /Account/VerifyEmail.
func (h *AccountHandlers) VerifyEmailPage(c echo.Context) error {
	return c.Render(http.StatusOK, "account/forgot_password", verifyEmailPageData{pageData: newPageData(c, "Forgot Password")})
}

// VerifyEmail handles POST /Account/VerifyEmail. A matching email gets a
// short-lived one-time reset token; the response is the same either way so
// account existence is not disclosed.
func (h *AccountHandlers) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Email string `json:"email" form:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	token, err := h.identityService.IssueResetToken(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, services.ErrUserNotFound) {
			log.Printf("ERROR: issuing reset token for %q: %v", req.Email, err)
		}
		data := verifyEmailPageData{
			pageData: newPageData(c, "Forgot Password"),
			Email:    req.Email,
			Message:  "If the email matches an account, a reset link has been issued",
		}
		return c.Render(http.StatusOK, "account/forgot_password", data)
	}

	// No mail transport is configured, so the reset link continues in the
	// same browser session.
	return c.Redirect(http.StatusFound, "/Account/ChangePassword?token="+token)
}

type changePasswordPageData struct {
	pageData
	Token      string
	MustChange bool
	Error      string
}

// ChangePasswordPage handles GET /Account/ChangePassword. With a reset token
// it renders the token flow, otherwise the authenticated flow.
func (h *AccountHandlers) ChangePasswordPage(c echo.Context) error {
	data := changePasswordPageData{
		pageData:   newPageData(c, "Change Password"),
		Token:      c.QueryParam("token"),
		MustChange: c.QueryParam("mustChange") != "",
	}
	if data.Token != "" {
		return c.Render(http.StatusOK, "account/reset_password", data)
	}
	return c.Render(http.StatusOK, "account/change_password", data)
}

// ChangePassword handles POST /Account/ChangePassword. A posted reset token
// drives the one-time-token flow; without one the caller must be signed in
// and prove the current password.
func (h *AccountHandlers) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Token           string `json:"token" form:"token"`
		CurrentPassword string `json:"currentPassword" form:"currentPassword"`
		NewPassword     string `json:"newPassword" form:"newPassword"`
		ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	renderError := func(template, message string) error {
		data := changePasswordPageData{
			pageData: newPageData(c, "Change Password"),
			Token:    req.Token,
			Error:    message,
		}
		return c.Render(http.StatusOK, template, data)
	}

	if req.NewPassword != req.ConfirmPassword {
		template := "account/change_password"
		if req.Token != "" {
			template = "account/reset_password"
		}
		return renderError(template, "Passwords do not match")
	}

	if req.Token != "" {
		if err := h.identityService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
			if errors.Is(err, services.ErrResetTokenInvalid) {
				return renderError("account/reset_password", "The reset link is invalid or has expired")
			}
			return renderError("account/reset_password", err.Error())
		}
		return c.Redirect(http.StatusFound, "/Account/Login?message=Password+updated,+please+sign+in")
	}

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return c.Redirect(http.StatusFound, "/Account/Login")
	}
	if err := h.identityService.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return renderError("account/change_password", "Current password is incorrect")
		}
		return renderError("account/change_password", err.Error())
	}
	return c.Redirect(http.StatusFound, "/")
}

type profilePageData struct {
	pageData
	User       *models.User
	PictureURL string
	Error      string
	Message    string
}

// ProfilePage handles GET /Account/Profile.
func (h *AccountHandlers) ProfilePage(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return c.Redirect(http.StatusFound, "/Account/Login")
	}

	user, err := h.identityService.GetUserByID(ctx, userID)
	if err != nil {
		log.Printf("ERROR: loading profile for %s: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error loading profile")
	}

	data := profilePageData{
		pageData: newPageData(c, "Profile"),
		User:     user,
		Message:  c.QueryParam("message"),
	}
	if user.ProfilePicture != nil {
		url, urlErr := h.storageService.PresignedURL(ctx, services.ProfilePictureBucket, *user.ProfilePicture, time.Hour)
		if urlErr != nil {
			log.Printf("WARN: presigning profile picture for %s: %v", userID, urlErr)
		} else {
			data.PictureURL = url
		}
	}
	return c.Render(http.StatusOK, "account/profile", data)
}

// ProfilePicture handles POST /Account/ProfilePicture: a multipart image
// stored in MinIO, with the object name recorded on the user row.
func (h *AccountHandlers) ProfilePicture(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Picture file is required")
	}
	if fileHeader.Size > profilePictureMaxSize {
		return echo.NewHTTPError(http.StatusBadRequest, "Picture must be smaller than 5 MB")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only image uploads are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Error reading picture file")
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s/%s%s", userID, uuid.NewString(), path.Ext(fileHeader.Filename))
	if err := h.storageService.Upload(ctx, services.ProfilePictureBucket, objectName, contentType, file, fileHeader.Size); err != nil {
		log.Printf("ERROR: uploading profile picture for %s: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error storing picture")
	}

	if err := h.identityService.UpdateProfilePicture(ctx, userID, objectName); err != nil {
		log.Printf("ERROR: saving profile picture reference for %s: %v", userID, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Error saving picture")
	}

	return c.Redirect(http.StatusFound, "/Account/Profile?message=Profile+picture+updated")
}

func (h *AccountHandlers) setSessionCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeReturnURL keeps redirects on-site.
func safeReturnURL(returnURL string) string {
	if returnURL == "" || !strings.HasPrefix(returnURL, "/") || strings.HasPrefix(returnURL, "//") {
		return "/"
	}
	return returnURL
}
