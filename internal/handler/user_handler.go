package handler

import (
	"errors"
	"net/http"

	"edu_portal/internal/middleware"
	"edu_portal/internal/model"
	"edu_portal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves the user directory
type UserHandler struct {
	service service.UserService
	logger  *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(s service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{service: s, logger: logger}
}

// Helper to get the authenticated caller from context
func getActor(c *gin.Context) (service.Actor, error) {
	userID, ok := c.Get(middleware.AuthUserKey)
	if !ok {
		return service.Actor{}, errors.New("user ID not found in context")
	}
	id, ok := userID.(string)
	if !ok {
		return service.Actor{}, errors.New("invalid user ID type in context")
	}
	roleVal, ok := c.Get(middleware.AuthRoleKey)
	if !ok {
		return service.Actor{}, errors.New("user role not found in context")
	}
	raw, _ := roleVal.(string)
	role, err := model.ParseRole(raw)
	if err != nil {
		return service.Actor{}, err
	}
	return service.Actor{UserID: id, Role: role}, nil
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req model.UserUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *UserHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnknownActor):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidUpdate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error(fallback, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// RegisterUserRoutes registers the directory routes; all require auth
func (h *UserHandler) RegisterUserRoutes(r gin.IRouter, authMW gin.HandlerFunc, memberMW gin.HandlerFunc) {
	users := r.Group("/users")
	users.Use(authMW, memberMW)
	{
		users.GET("", h.ListUsers)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser) // service layer enforces self-or-teacher
		users.DELETE("/:id", h.DeleteUser)
	}
}
