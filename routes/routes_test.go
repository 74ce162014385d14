package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wholesale/controllers"
	"wholesale/logger"
	"wholesale/metrics"
	"wholesale/middleware"
	"wholesale/models"
	"wholesale/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var secret = []byte("routes-secret")

type stubStore struct {
	err error
}

func (s stubStore) Count(context.Context, models.OrderFilter) (int64, error) { return 2, s.err }
func (s stubStore) Totals(context.Context, models.OrderFilter) (models.OrderTotals, error) {
	return models.OrderTotals{Count: 2, Sum: 30}, nil
}
func (s stubStore) CountDistinctRetailers(context.Context, models.OrderFilter) (int64, error) {
	return 1, nil
}
func (s stubStore) Recent(context.Context, models.OrderFilter, int64) ([]models.Order, error) {
	return nil, nil
}
func (s stubStore) LowStock(context.Context, primitive.ObjectID, int) ([]models.LowStockProduct, error) {
	return nil, nil
}

type noBlacklist struct{}

func (noBlacklist) IsBlacklisted(context.Context, string) (bool, error) { return false, nil }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func newEngine(store stubStore, db pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	m := metrics.NewRegistry()
	svc := services.NewDashboardService(store, store, m)

	r := gin.New()
	RegisterRoutes(r, Deps{
		Dashboard: controllers.NewDashboardController(svc, log, time.Second),
		Auth:      middleware.AuthMiddleware(secret, noBlacklist{}, log),
		Metrics:   m,
		DB:        db,
	})
	return r
}

func bearer(t *testing.T, role models.Role) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.Claims{
		UserID:           primitive.NewObjectID().Hex(),
		Role:             string(role),
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	s, err := token.SignedString(secret)
	require.NoError(t, err)
	return "Bearer " + s
}

func get(r http.Handler, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestWholesalerDashboardRoute(t *testing.T) {
	r := newEngine(stubStore{}, pinger{})

	rec := get(r, "/api/dashboard/overview", bearer(t, models.RoleWholesaler))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalOrders":2,"pendingOrders":2,"totalRevenue":30,"totalCustomers":1,"lowStockProducts":[]}`, rec.Body.String())

	assert.Equal(t, http.StatusForbidden, get(r, "/api/dashboard/overview", bearer(t, models.RoleRetailer)).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/dashboard/overview", "").Code)
}

func TestRetailerDashboardRoute(t *testing.T) {
	r := newEngine(stubStore{}, pinger{})

	rec := get(r, "/api/retailerDashboard/overview", bearer(t, models.RoleRetailer))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalOrders":2,"totalSpent":30,"pendingPayments":2,"recentOrders":[]}`, rec.Body.String())

	assert.Equal(t, http.StatusForbidden, get(r, "/api/retailerDashboard/overview", bearer(t, models.RoleWholesaler)).Code)
}

func TestDashboardStoreFailure(t *testing.T) {
	r := newEngine(stubStore{err: errors.New("socket closed")}, pinger{})

	rec := get(r, "/api/dashboard/overview", bearer(t, models.RoleWholesaler))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Server error"}`, rec.Body.String())

	rec = get(r, "/api/retailerDashboard/overview", bearer(t, models.RoleRetailer))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch dashboard data"}`, rec.Body.String())
}

func TestRootHealthAndMetrics(t *testing.T) {
	r := newEngine(stubStore{}, pinger{})
	rec := get(r, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"msg":"B2B Wholesale Portal API"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, get(r, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, get(r, "/metrics", "").Code)

	down := newEngine(stubStore{}, pinger{err: errors.New("no primary")})
	assert.Equal(t, http.StatusServiceUnavailable, get(down, "/healthz", "").Code)
}
