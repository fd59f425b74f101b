package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kirito514/unilib/internal/auth/credentials"
	"github.com/Kirito514/unilib/internal/logger"
	"github.com/Kirito514/unilib/internal/middleware"
	"github.com/Kirito514/unilib/internal/permissions"
)

type createUserRequest struct {
	StudentNumber  string `json:"studentNumber"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Password       string `json:"password"`
	OrganizationID string `json:"organizationId"`
	Role           string `json:"role"`
}

// CreateUser provisions a staff account with an explicit role. Routed
// behind the users:change_role permission.
func (h *Handler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}
	if req.StudentNumber == "" || req.Email == "" || req.Name == "" || req.Password == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing required fields"})
		return
	}

	userID, err := h.credentials.Register(
		c.Request.Context(),
		req.StudentNumber,
		req.Email,
		req.Name,
		req.OrganizationID,
		permissions.Role(req.Role),
		req.Password,
	)
	if err != nil {
		switch {
		case errors.Is(err, credentials.ErrAlreadyRegistered):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "account already exists"})
		case errors.Is(err, credentials.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown role"})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		}
		return
	}

	logger.Info("user provisioned", map[string]any{
		"user_id": userID,
		"role":    req.Role,
		"by":      middleware.CurrentUserID(c),
	})

	c.JSON(http.StatusCreated, gin.H{"success": true, "user_id": userID})
}
