package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"session-service/internal/logger"
	"session-service/internal/session"
)

type Handler struct {
	service *session.Service
}

func NewHandler(service *session.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/welcome", h.Welcome)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
	r.PUT("/update", h.Update)
	r.POST("/update", h.Update)
	r.GET("/status", h.Status)
	r.GET("/allSessions", h.AllSessions)
	r.GET("/allCurrentSessions", h.AllCurrentSessions)
	r.DELETE("/deleteAllSessions", h.DeleteAllSessions)

	for _, route := range r.Routes() {
		log.Printf("[ROUTE] %s %s", route.Method, route.Path)
	}
}

func (h *Handler) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the HTTP Sessions API",
		"author":  "Session Tracker Team",
	})
}

type loginRequest struct {
	Email      string `json:"email"`
	Nickname   string `json:"nickname"`
	MACAddress string `json:"macAddress"`
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Required fields are expected"})
		return
	}

	s, err := h.service.Login(c.Request.Context(), session.LoginInput{
		Email:      req.Email,
		Nickname:   req.Nickname,
		MACAddress: req.MACAddress,
		RemoteAddr: c.ClientIP(),
	})
	if err != nil {
		var verr *session.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Required fields are expected"})
			return
		}
		h.serverError(c, "Error creating session", err)
		return
	}

	session.SetCookie(c.Writer, s.SessionID, session.CookieOptions{
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(http.StatusOK, gin.H{
		"message":   "You have successfully logged in",
		"sessionId": s.SessionID,
	})
}

type logoutRequest struct {
	SessionID string `json:"sessionId"`
}

func (h *Handler) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A sessionId is required"})
		return
	}

	err := h.service.Logout(c.Request.Context(), req.SessionID)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No active session found"})
			return
		}
		h.serverError(c, "Error logging out", err)
		return
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

type updateRequest struct {
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	Nickname  string `json:"nickname"`
}

func (h *Handler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "A sessionId is required"})
		return
	}

	s, err := h.service.Update(c.Request.Context(), session.UpdateInput{
		SessionID:  req.SessionID,
		Email:      req.Email,
		Nickname:   req.Nickname,
		RemoteAddr: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "There is no active session"})
			return
		}
		h.serverError(c, "Error updating session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session updated successfully",
		"session": s,
	})
}

type statusRequest struct {
	SessionID string `json:"sessionId"`
}

func (h *Handler) Status(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		// GET bodies are unconventional but kept for compatibility
		// with clients of the original surface.
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			sessionID = req.SessionID
		}
	}

	view, err := h.service.Status(c.Request.Context(), sessionID, c.ClientIP())
	if err != nil {
		var verr *session.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"message": "A sessionId is required"})
		case errors.Is(err, session.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Session not found"})
		default:
			h.serverError(c, "Error getting session state", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session found",
		"session": view,
	})
}

func (h *Handler) AllSessions(c *gin.Context) {
	views, err := h.service.ListAll(c.Request.Context(), c.ClientIP())
	if err != nil {
		h.serverError(c, "Error listing sessions", err)
		return
	}

	message := "Sessions found"
	if len(views) == 0 {
		message = "There are no sessions recorded"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"count":    len(views),
		"sessions": views,
	})
}

func (h *Handler) AllCurrentSessions(c *gin.Context) {
	views, err := h.service.ListActive(c.Request.Context(), c.ClientIP())
	if err != nil {
		h.serverError(c, "Error listing active sessions", err)
		return
	}

	message := "Active sessions found"
	if len(views) == 0 {
		message = "There are no active sessions"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"count":    len(views),
		"sessions": views,
	})
}

func (h *Handler) DeleteAllSessions(c *gin.Context) {
	count, err := h.service.PurgeAll(c.Request.Context())
	if err != nil {
		h.serverError(c, "Error deleting sessions", err)
		return
	}

	logger.Info("all sessions deleted", map[string]any{"count": count})

	c.JSON(http.StatusOK, gin.H{"message": "All sessions have been deleted successfully"})
}

func (h *Handler) serverError(c *gin.Context, message string, err error) {
	logger.Error(message, map[string]any{
		"path":  c.Request.URL.Path,
		"error": err.Error(),
	})
	c.JSON(http.StatusInternalServerError, gin.H{
		"message": message,
		"error":   err.Error(),
	})
}
