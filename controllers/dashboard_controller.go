package controllers

import (
	"context"
	"net/http"
	"time"

	"wholesale/logger"
	"wholesale/middleware"
	"wholesale/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OverviewService interface {
	WholesalerOverview(ctx context.Context, wholesalerID primitive.ObjectID) (models.WholesalerOverview, error)
	RetailerOverview(ctx context.Context, retailerID primitive.ObjectID) (models.RetailerOverview, error)
}

type DashboardController struct {
	service OverviewService
	log     *logger.Logger
	timeout time.Duration
}

func NewDashboardController(service OverviewService, log *logger.Logger, timeout time.Duration) *DashboardController {
	return &DashboardController{
		service: service,
		log:     log.With("controller", "DashboardController"),
		timeout: timeout,
	}
}

// GetWholesalerOverview serves GET /api/dashboard/overview.
func (dc *DashboardController) GetWholesalerOverview(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dc.timeout)
	defer cancel()

	overview, err := dc.service.WholesalerOverview(ctx, principal.ID)
	if err != nil {
		dc.log.Error("Error fetching dashboard overview", "error", err, "wholesalerId", principal.ID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetRetailerOverview serves GET /api/retailerDashboard/overview.
func (dc *DashboardController) GetRetailerOverview(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), dc.timeout)
	defer cancel()

	overview, err := dc.service.RetailerOverview(ctx, principal.ID)
	if err != nil {
		dc.log.Error("Dashboard error", "error", err, "retailerId", principal.ID.Hex())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dashboard data"})
		return
	}

	c.JSON(http.StatusOK, overview)
}
