package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"pharmamart/internal/services"
)

// AuditMiddleware records mutating requests against the activity log.
type AuditMiddleware struct {
	auditSvc services.AuditLogsService
}

func NewAuditMiddleware(auditSvc services.AuditLogsService) *AuditMiddleware {
	return &AuditMiddleware{auditSvc: auditSvc}
}

// AuditRequest logs POST/PUT/DELETE requests after the handler ran. Reads
// are not recorded. Audit failures never fail the request.
func (m *AuditMiddleware) AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)

			method := c.Request().Method
			if method != http.MethodPost && method != http.MethodPut && method != http.MethodDelete {
				return err
			}

			details := map[string]interface{}{
				"method": method,
				"path":   c.Path(),
				"ip":     c.RealIP(),
				"status": c.Response().Status,
			}
			if err != nil {
				details["error"] = err.Error()
			}

			ctx := c.Request().Context()
			if logErr := m.auditSvc.LogActivity(ctx, method+" "+c.Path(), "http_request", nil, details); logErr != nil {
				c.Logger().Errorf("failed to record audit entry: %v", logErr)
			}

			return err
		}
	}
}
