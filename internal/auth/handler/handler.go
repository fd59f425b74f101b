package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kirito514/unilib/internal/auth/credentials"
	"github.com/Kirito514/unilib/internal/auth/resolver"
	"github.com/Kirito514/unilib/internal/hemis"
	"github.com/Kirito514/unilib/internal/hemis/provider"
	hemissync "github.com/Kirito514/unilib/internal/hemis/sync"
	"github.com/Kirito514/unilib/internal/logger"
	"github.com/Kirito514/unilib/internal/middleware"
	"github.com/Kirito514/unilib/internal/permissions"
	"github.com/Kirito514/unilib/internal/profile"
	"github.com/Kirito514/unilib/internal/session"
	"github.com/Kirito514/unilib/internal/token"
)

type Handler struct {
	provider     provider.IdentityProvider
	resolver     resolver.Resolver
	profiles     profile.Store
	credentials  *credentials.Service
	synchronizer *hemissync.Synchronizer
	tokens       *token.Manager
	sessions     session.Store
	sessionTTL   time.Duration
}

func NewHandler(
	p provider.IdentityProvider,
	res resolver.Resolver,
	profiles profile.Store,
	creds *credentials.Service,
	synchronizer *hemissync.Synchronizer,
	tokens *token.Manager,
	sessions session.Store,
	sessionTTL time.Duration,
) *Handler {
	return &Handler{
		provider:     p,
		resolver:     res,
		profiles:     profiles,
		credentials:  creds,
		synchronizer: synchronizer,
		tokens:       tokens,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	r.POST("/api/hemis/verify", h.Verify)
	r.POST("/api/hemis/sync", h.Sync)
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/db-login", h.DBLogin)
	r.POST("/api/auth/logout", h.Logout)

	protected := r.Group("/api", auth.RequireAuth())
	protected.POST("/auth/refresh", h.Refresh)
	protected.GET("/me", h.Me)

	admin := protected.Group("", middleware.RequireAny(permissions.UsersChangeRole))
	admin.POST("/admin/users", h.CreateUser)
}

type verifyRequest struct {
	StudentID string `json:"studentId"`
}

// Verify checks an identifier against the student roster and returns
// the filtered identity. Validation failures never reach the network.
func (h *Handler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StudentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Student ID is required",
		})
		return
	}

	if !hemis.ValidateStudentID(req.StudentID) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid student ID format. Must be 11-12 digits.",
		})
		return
	}

	record, err := h.provider.VerifyStudent(c.Request.Context(), hemis.SanitizeStudentID(req.StudentID))
	if err != nil {
		if errors.Is(err, hemis.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "Student not found in HEMIS system",
			})
			return
		}
		logger.Error("verify student failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error while verifying student",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    hemis.Filter(record),
		"source":  h.provider.Name(),
	})
}

type syncRequest struct {
	UserID string `json:"userId"`
}

// Sync overwrites the profile's HEMIS fields with fresh remote data.
func (h *Handler) Sync(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "User ID is required",
		})
		return
	}

	err := h.synchronizer.Sync(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, hemissync.ErrPreconditionMissing) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error":   "No HEMIS federation on record. Log in through HEMIS first.",
			})
			return
		}
		logger.Error("sync failed", map[string]any{
			"user_id": req.UserID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to sync data from HEMIS",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me reports the authenticated identity attached by the middleware.
func (h *Handler) Me(c *gin.Context) {
	role := middleware.CurrentRole(c)
	c.JSON(http.StatusOK, gin.H{
		"user_id":      middleware.CurrentUserID(c),
		"role":         role,
		"role_display": permissions.DisplayName(role),
	})
}
