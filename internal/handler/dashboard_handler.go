package handler

import (
	"net/http"

	"edu_portal/internal/dashboard"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the static landing and dashboard content
type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

func (h *DashboardHandler) Landing(c *gin.Context) {
	c.JSON(http.StatusOK, dashboard.LandingPage())
}

// Dashboard returns the dashboard of the caller's role
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	d, err := dashboard.ForRole(actor.Role)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DashboardHandler) RegisterDashboardRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/landing", h.Landing)
	rg.GET("/dashboard", authMW, h.Dashboard)
}
