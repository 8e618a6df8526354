package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction describes one audited action on a resource.
type AuditAction struct {
	Action       string                 `json:"action"`        // Action name (e.g. "crud_create")
	ResourceID   string                 `json:"resource_id"`   // Affected resource id (e.g. kundennummer)
	ResourceType string                 `json:"resource_type"` // Resource type (e.g. "customer", "tariff")
	IP           string                 `json:"ip"`            // Client IP address
	UserAgent    string                 `json:"user_agent"`    // Client user agent
	Details      map[string]interface{} `json:"details"`       // Additional context
	Timestamp    time.Time              `json:"timestamp"`
}

// LogAction writes one audit entry for the given request.
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	auditLogger := GetAuditLogger()

	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Details:   details,
		Timestamp: time.Now(),
	}

	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	auditLogger.WithFields(logrus.Fields{
		"action":        audit.Action,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogCRUD audits a CRUD operation on a resource.
func LogCRUD(operation string, resourceType string, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}
	details["operation"] = operation
	details["resource_type"] = resourceType
	details["resource_id"] = resourceID

	LogAction("crud_"+operation, c, details)
}
