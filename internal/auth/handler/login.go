package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kirito514/unilib/internal/auth/credentials"
	"github.com/Kirito514/unilib/internal/hemis"
	"github.com/Kirito514/unilib/internal/logger"
	"github.com/Kirito514/unilib/internal/middleware"
	"github.com/Kirito514/unilib/internal/profile"
	"github.com/Kirito514/unilib/internal/session"
	"github.com/Kirito514/unilib/internal/token"
)

type loginRequest struct {
	StudentID string `json:"studentId"`
	Password  string `json:"password"`
}

// Login federates against HEMIS: two-step credential exchange,
// filter, profile reconciliation, token persistence, session.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StudentID == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	if !hemis.ValidateStudentID(req.StudentID) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid student ID format. Must be 11-12 digits.",
		})
		return
	}

	result, err := h.provider.Login(
		c.Request.Context(),
		hemis.SanitizeStudentID(req.StudentID),
		req.Password,
	)
	if err != nil {
		if errors.Is(err, hemis.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
			return
		}
		logger.Error("hemis login failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "HEMIS is unavailable, try again later"})
		return
	}

	student := hemis.Filter(result.Record)

	p, err := h.resolver.Resolve(c.Request.Context(), student)
	if err != nil {
		logger.Error("resolve profile failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to resolve user"})
		return
	}

	// A new login unconditionally supersedes any prior token.
	if err := h.profiles.UpdateToken(c.Request.Context(), p.ID, result.Token); err != nil {
		logger.Error("persist token failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to persist token"})
		return
	}

	if !h.createSession(c, p) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    student,
		"source":  h.provider.Name(),
	})
}

// DBLogin authenticates an already provisioned account against local
// credentials, bypassing HEMIS entirely.
func (h *Handler) DBLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StudentID == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request"})
		return
	}

	userID, err := h.credentials.Authenticate(
		c.Request.Context(),
		hemis.SanitizeStudentID(req.StudentID),
		req.Password,
	)
	if err != nil {
		if errors.Is(err, credentials.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
			return
		}
		logger.Error("db login failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
		return
	}

	p, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		logger.Error("load profile failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
		return
	}

	if !h.createSession(c, p) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user_id": p.ID})
}

// Refresh exchanges the stored HEMIS token for a fresh one. A failed
// refresh leaves the stored token untouched; 401 tells the client the
// next protected call needs a full login.
func (h *Handler) Refresh(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	p, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
		return
	}

	fresh, err := h.tokens.EnsureActive(c.Request.Context(), p.HemisToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "HEMIS token expired, log in again",
		})
		return
	}

	if fresh != p.HemisToken {
		if err := h.profiles.UpdateToken(c.Request.Context(), userID, fresh); err != nil {
			logger.Error("persist refreshed token failed", map[string]any{"error": err.Error()})
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to persist token"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"expires_at": fresh.ExpiresAt().Unix(),
	})
}

// Logout deletes the session, drops the stored federation token and
// clears the cookie. Idempotent.
func (h *Handler) Logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if sess, err := h.sessions.Get(c.Request.Context(), cookie.Value); err == nil && sess != nil {
			// Explicit logout moves the token lifecycle to Absent.
			_ = h.profiles.UpdateToken(c.Request.Context(), sess.UserID, token.Token{})
		}
		_ = h.sessions.Delete(c.Request.Context(), cookie.Value)
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Path:     "/",
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	c.Status(http.StatusNoContent)
}

// createSession persists a session and issues the cookie. Writes its
// own error response and returns false on failure.
func (h *Handler) createSession(c *gin.Context, p *profile.Profile) bool {
	sessionID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create session"})
		return false
	}

	now := time.Now()
	expiresAt := now.Add(h.sessionTTL)

	err = h.sessions.Create(c.Request.Context(), session.Session{
		SessionID: sessionID,
		UserID:    p.ID,
		Role:      p.Role,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to persist session"})
		return false
	}

	session.SetCookie(c.Writer, sessionID, expiresAt, session.CookieOptions{
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})

	logger.Info("login success", map[string]any{
		"user_id": p.ID,
		"ip":      c.ClientIP(),
	})
	return true
}
