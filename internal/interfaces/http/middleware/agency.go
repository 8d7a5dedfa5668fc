package middleware

import (
	"net/http"
	"strings"

	"github.com/dinukasrimal/APPARELAGENCY-sub005/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AgencyIDKey is the key used to store the agency scope in gin.Context
const (
	AgencyIDKey     = "agency_id"
	AgencyHeaderKey = "X-Agency-ID"
)

// AgencyMiddlewareConfig holds configuration for agency scope middleware
type AgencyMiddlewareConfig struct {
	// HeaderName is the header carrying the agency identifier
	HeaderName string
	// SkipPaths are paths that don't require agency scope (e.g., health check)
	SkipPaths []string
	// Required determines if agency scope is mandatory
	Required bool
	// DefaultAgencyID is used when the header is absent. Meant for local
	// development with a single seeded agency; leave empty in production.
	DefaultAgencyID string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultAgencyConfig returns default agency middleware configuration
func DefaultAgencyConfig() AgencyMiddlewareConfig {
	return AgencyMiddlewareConfig{
		HeaderName: AgencyHeaderKey,
		SkipPaths:  []string{"/health", "/healthz", "/ready", "/metrics", "/swagger"},
		Required:   true,
	}
}

// AgencyMiddleware extracts the agency scope from the X-Agency-ID header.
// Every receivables route operates on exactly one agency's ledger, so the
// scope is resolved once here and handlers read it from the context.
func AgencyMiddleware() gin.HandlerFunc {
	return AgencyMiddlewareWithConfig(DefaultAgencyConfig())
}

// AgencyMiddlewareWithConfig returns agency middleware with custom configuration
func AgencyMiddlewareWithConfig(cfg AgencyMiddlewareConfig) gin.HandlerFunc {
	headerName := cfg.HeaderName
	if headerName == "" {
		headerName = AgencyHeaderKey
	}

	return func(c *gin.Context) {
		// Check if path should be skipped
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		agencyID := c.GetHeader(headerName)
		if agencyID == "" && cfg.DefaultAgencyID != "" {
			agencyID = cfg.DefaultAgencyID
		}

		// Validate agency ID format if present
		if agencyID != "" {
			if _, err := uuid.Parse(agencyID); err != nil {
				respondUnauthorized(c, "Invalid agency ID format")
				return
			}
		}

		// Check if agency scope is required
		if agencyID == "" && cfg.Required {
			respondUnauthorized(c, "Agency identification required")
			return
		}

		// Set agency information in context
		if agencyID != "" {
			// Set in gin context for easy access in handlers
			c.Set(AgencyIDKey, agencyID)

			// Set in request context for service layer access
			ctx := c.Request.Context()
			log := logger.FromContext(ctx)
			ctx, _ = logger.WithAgencyID(ctx, log, agencyID)
			c.Request = c.Request.WithContext(ctx)

			if cfg.Logger != nil {
				cfg.Logger.Debug("Agency scope resolved",
					zap.String("agency_id", agencyID),
				)
			}
		}

		c.Next()
	}
}

// respondUnauthorized sends an unauthorized response
func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetAgencyID retrieves the agency ID from gin.Context
func GetAgencyID(c *gin.Context) string {
	if agencyID, exists := c.Get(AgencyIDKey); exists {
		if aid, ok := agencyID.(string); ok {
			return aid
		}
	}
	return ""
}

// GetAgencyUUID retrieves the agency ID as UUID from gin.Context
func GetAgencyUUID(c *gin.Context) (uuid.UUID, error) {
	agencyID := GetAgencyID(c)
	if agencyID == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(agencyID)
}

// MustGetAgencyUUID retrieves the agency ID as UUID or panics if not found.
// Use this only in handlers behind a required agency middleware.
func MustGetAgencyUUID(c *gin.Context) uuid.UUID {
	agencyUUID, err := GetAgencyUUID(c)
	if err != nil || agencyUUID == uuid.Nil {
		panic("valid agency_id not found in context")
	}
	return agencyUUID
}

// OptionalAgencyMiddleware creates middleware that doesn't require agency scope
func OptionalAgencyMiddleware() gin.HandlerFunc {
	cfg := DefaultAgencyConfig()
	cfg.Required = false
	return AgencyMiddlewareWithConfig(cfg)
}
