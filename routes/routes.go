package routes

import (
	"context"
	"net/http"
	"time"

	"wholesale/controllers"
	"wholesale/metrics"
	"wholesale/middleware"
	"wholesale/models"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Dashboard *controllers.DashboardController
	Auth      gin.HandlerFunc
	Metrics   *metrics.Registry
	DB        Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "B2B Wholesale Portal API"})
	})
	r.GET("/healthz", health(d.DB))
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	api := r.Group("/api")
	{
		protected := api.Group("/")
		protected.Use(d.Auth)
		{
			wholesaler := protected.Group("/dashboard")
			wholesaler.Use(middleware.Authorize(models.RoleWholesaler))
			{
				wholesaler.GET("/overview", d.Dashboard.GetWholesalerOverview)
			}

			retailer := protected.Group("/retailerDashboard")
			retailer.Use(middleware.Authorize(models.RoleRetailer))
			{
				retailer.GET("/overview", d.Dashboard.GetRetailerOverview)
			}
		}
	}
}

func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
