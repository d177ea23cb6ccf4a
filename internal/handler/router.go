package handler

import (
	"context"
	"net/http"

	"edu_portal/internal/middleware"
	"edu_portal/internal/service"
	"edu_portal/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	AuthService service.AuthService
	UserService service.UserService
	JWT         *utils.JWTUtil
	Logger      *zap.Logger
	// Ping reports database health; nil means always healthy
	Ping func(ctx context.Context) error
}

// NewRouter wires middlewares and routes:
//
//	POST   /api/auth/signup
//	POST   /api/auth/login
//	GET    /api/landing
//	GET    /api/dashboard   (auth)
//	GET    /users           (auth)
//	GET    /users/:id       (auth)
//	PUT    /users/:id       (auth)
//	DELETE /users/:id       (auth)
//	GET    /health
func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.LoggerMiddleware(d.Logger), middleware.CORSMiddleware())

	jwtAuthMW := middleware.JWTAuthMiddleware(d.JWT)
	memberMW := middleware.MemberMiddleware()

	api := router.Group("/api")
	NewAuthHandler(d.AuthService, d.Logger).RegisterAuthRoutes(api)
	NewDashboardHandler().RegisterDashboardRoutes(api, jwtAuthMW)
	NewUserHandler(d.UserService, d.Logger).RegisterUserRoutes(router, jwtAuthMW, memberMW)

	router.GET("/health", func(c *gin.Context) {
		if d.Ping != nil {
			if err := d.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	return router
}
