package audit

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/spec-kit/campus-community/internal/auth"
	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/observability"
	"github.com/spec-kit/campus-community/internal/repository"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

const writeTimeout = 5 * time.Second

// redactedFields never reach the audit trail in clear text.
var redactedFields = map[string]struct{}{
	"password":        {},
	"currentPassword": {},
	"newPassword":     {},
	"token":           {},
}

// Middleware records every state-changing request into the audit trail. The
// write happens after the response, off the request goroutine; a failed write
// is counted and logged but never affects the response.
type Middleware struct {
	audits  repository.AuditRepository
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewMiddleware constructs the audit middleware.
func NewMiddleware(audits repository.AuditRepository, metrics *observability.Metrics, logger *zap.Logger) *Middleware {
	return &Middleware{audits: audits, metrics: metrics, logger: logger}
}

// Handle wraps the request. GET and HEAD traffic is not audited.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead {
		return c.Next()
	}

	// The entry outlives the request: fiber recycles its buffers once the
	// handler returns, so every context-backed string must be copied here.
	entry := &domain.AuditLog{
		Method:      utils.CopyString(c.Method()),
		Endpoint:    utils.CopyString(c.OriginalURL()),
		IPAddress:   clientIP(c),
		RequestBody: redactBody(c.Body()),
	}
	if ua := c.Get("User-Agent"); ua != "" {
		ua = utils.CopyString(ua)
		entry.UserAgent = &ua
	}

	handlerErr := c.Next()

	if user, ok := auth.UserFromContext(c); ok {
		entry.UserID = &user.ID
	}
	entry.Action = actionFor(c.Method(), c.Path())
	entry.Resource, entry.ResourceID = resourceFor(c)
	entry.ResponseStatus = c.Response().StatusCode()
	if handlerErr != nil {
		// the error middleware upstream has not written the response yet
		domainErr := apperrors.ToDomainError(handlerErr)
		entry.ResponseStatus = domainErr.HTTPStatus
		msg := domainErr.Message
		entry.ErrorMessage = &msg
	}

	go m.write(entry)
	return handlerErr
}

func (m *Middleware) write(entry *domain.AuditLog) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := m.audits.Create(ctx, entry); err != nil {
		m.metrics.RecordAuditDrop()
		m.logger.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("endpoint", entry.Endpoint),
			zap.Error(err))
	}
}

// redactBody parses a JSON object body and masks sensitive fields. Non-object
// or non-JSON bodies are dropped rather than stored raw.
func redactBody(raw []byte) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	for key := range body {
		if _, sensitive := redactedFields[key]; sensitive {
			body[key] = "[REDACTED]"
		}
	}
	return body
}

// actionFor derives a stable action name like "POST /api/listings/:id/interest"
// with numeric path segments collapsed.
func actionFor(method, path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil && segment != "" {
			segments[i] = ":id"
		}
	}
	return method + " " + strings.Join(segments, "/")
}

// resourceFor extracts the primary resource name and the :id route param.
func resourceFor(c *fiber.Ctx) (*string, *int64) {
	var resource *string
	segments := strings.Split(strings.Trim(c.Path(), "/"), "/")
	for _, segment := range segments {
		if segment == "" || segment == "api" || segment == "v1" {
			continue
		}
		if _, err := strconv.ParseInt(segment, 10, 64); err == nil {
			continue
		}
		name := utils.CopyString(segment)
		resource = &name
		break
	}

	var resourceID *int64
	if raw := c.Params("id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			resourceID = &id
		}
	}
	return resource, resourceID
}
