package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/auth"
	"github.com/Rakhulsr/ace-genuine-parts/app/configs"
	"github.com/Rakhulsr/ace-genuine-parts/app/models"
	"github.com/Rakhulsr/ace-genuine-parts/app/models/migrations"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "route-test-secret"

type testServer struct {
	t        *testing.T
	db       *gorm.DB
	handler  http.Handler
	verifier *auth.JWTVerifier
}

func getTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTestServer(t *testing.T, env configs.ENV) *testServer {
	t.Helper()

	if env.RateLimitRPS == 0 {
		env.RateLimitRPS = 1000
		env.RateLimitBurst = 1000
	}
	env.CurrencySymbol = "₹"
	env.AppEnv = "production"

	verifier, err := auth.NewJWTVerifier(testSecret)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	db := getTestDB(t)
	return &testServer{
		t:        t,
		db:       db,
		handler:  NewRouter(ctx, db, verifier, services.NoopPublisher{}, env),
		verifier: verifier,
	}
}

func (s *testServer) token(userID string) string {
	token, err := s.verifier.Issue(auth.Identity{UserID: userID, Email: "buyer@example.com", Role: "customer"}, time.Hour)
	require.NoError(s.t, err)
	return token
}

func (s *testServer) do(method, path, userID string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(userID))
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var out map[string]interface{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &out)
	}
	return rec, out
}

func (s *testServer) product(name, price, category string) *models.Product {
	p := &models.Product{
		Name:          name,
		PartNumber:    "ACE-" + uuid.New().String()[:8],
		Category:      category,
		Price:         decimal.RequireFromString(price),
		StockQuantity: 4,
		IsActive:      true,
	}
	require.NoError(s.t, s.db.Create(p).Error)
	return p
}

func orderBody(p *models.Product, qty int) map[string]interface{} {
	return map[string]interface{}{
		"items": []map[string]interface{}{{
			"product_id":   p.ID,
			"product_name": p.Name,
			"part_number":  p.PartNumber,
			"price":        p.Price,
			"quantity":     qty,
		}},
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, configs.ENV{})

	rec, body := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthRequired(t *testing.T) {
	s := newTestServer(t, configs.ENV{})

	for _, path := range []string{"/orders", "/wishlist", "/cart", "/session", "/dealer/dashboard"} {
		rec, body := s.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, false, body["success"], path)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, configs.ENV{})

	req := httptest.NewRequest(http.MethodOptions, "/orders/create", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, configs.ENV{})

	rec, body := s.do(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found", body["error"])
}

func TestCreateOrder_Endpoint(t *testing.T) {
	s := newTestServer(t, configs.ENV{})
	userID := uuid.New().String()
	p := s.product("Hydraulic Filter", "1000", "Filters")

	rec, body := s.do(http.MethodPost, "/orders/create", userID, orderBody(p, 2))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "₹2,459.00", body["formatted_total"])

	order := body["order"].(map[string]interface{})
	assert.Equal(t, 2459.0, order["total_amount"])
	assert.Equal(t, 360.0, order["tax_amount"])
	assert.Equal(t, 99.0, order["delivery_fee"])
	assert.Equal(t, "confirmed", order["status"])
	assert.Equal(t, "cod", order["payment_method"])
	assert.Equal(t, "standard", order["delivery_option"])

	rec, body = s.do(http.MethodGet, "/orders", userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, 1.0, data[0].(map[string]interface{})["item_count"])
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, 1.0, pagination["total"])
}

func TestCreateOrder_Validation(t *testing.T) {
	s := newTestServer(t, configs.ENV{})
	userID := uuid.New().String()
	p := s.product("Hydraulic Filter", "1000", "Filters")

	rec, body := s.do(http.MethodPost, "/orders/create", userID, map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])

	rec, _ = s.do(http.MethodPost, "/orders/create", userID, orderBody(p, 0))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	bad := orderBody(p, 1)
	bad["delivery_option"] = "drone"
	rec, _ = s.do(http.MethodPost, "/orders/create", userID, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderOwnership(t *testing.T) {
	s := newTestServer(t, configs.ENV{})
	owner := uuid.New().String()
	p := s.product("Hydraulic Filter", "1000", "Filters")

	rec, body := s.do(http.MethodPost, "/orders/create", owner, orderBody(p, 1))
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID := body["order"].(map[string]interface{})["id"].(string)

	stranger := uuid.New().String()
	rec, _ = s.do(http.MethodGet, "/orders/"+orderID, stranger, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodGet, "/tracking/"+orderID, stranger, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodPut, "/orders/"+orderID+"/cancel", stranger, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = s.do(http.MethodGet, "/tracking/"+orderID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tracking := body["data"].(map[string]interface{})
	assert.Equal(t, 20.0, tracking["progress"])
	assert.Len(t, tracking["timeline"], 5)
}

func TestCancelOrder_Endpoint(t *testing.T) {
	s := newTestServer(t, configs.ENV{})
	userID := uuid.New().String()
	p := s.product("Hydraulic Filter", "1000", "Filters")

	_, body := s.do(http.MethodPost, "/orders/create", userID, orderBody(p, 2))
	orderID := body["order"].(map[string]interface{})["id"].(string)

	rec, body := s.do(http.MethodPut, "/orders/"+orderID+"/cancel", userID, map[string]string{"reason": "Ordered by mistake"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2459.0, body["refund_amount"])

	rec, body = s.do(http.MethodPut, "/orders/"+orderID+"/cancel", userID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestCancelOrder_ShippedIsRejected(t *testing.T) {
	s := newTestServer(t, configs.ENV{})
	userID := uuid.New().String()
	p := s.product("Hydraulic Filter", "1000", "Filters")

	_, body := s.do(http.MethodPost, "/orders/create", userID, orderBody(p, 1))
	orderID := body["order"].(map[string]interface{})["id"].(string)
	require.NoError(t, s.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", models.OrderStatusShipped).Error)

	rec, _ := s.do(http.MethodPut, "/orders/"+orderID+"/cancel", userID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var stored models.Order
	require.NoError(t, s.db.First(&stored, "id = ?", orderID).Error)
	assert.Equal(t, models.OrderStatusShipped, stored.Status)
}

func TestWishlistFlow(t *testing.T) {
	s := newTestServer(t, configs.ENV{})
	userID := uuid.New().String()
	p := s.product("Bucket Tooth", "450", "Undercarriage")

	rec, body := s.do(http.MethodPost, "/wishlist/toggle", userID, map[string]string{"product_id": p.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "added", body["action"])
	assert.Equal(t, 1.0, body["wishlist_count"])

	rec, body = s.do(http.MethodPost, "/wishlist/add", userID, map[string]string{"product_id": p.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["already_exists"])

	_, body = s.do(http.MethodGet, "/wishlist/check/"+p.ID, userID, nil)
	assert.Equal(t, true, body["in_wishlist"])

	rec, body = s.do(http.MethodPost, "/wishlist/move-to-cart", userID, map[string]interface{}{"product_id": p.ID, "quantity": 3})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 0.0, body["wishlist_count"])
	assert.Equal(t, 1.0, body["cart_count"])

	rec, _ = s.do(http.MethodDelete, "/wishlist/"+p.ID, userID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = s.do(http.MethodGet, "/cart", userID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := body["data"].(map[string]interface{})["summary"].(map[string]interface{})
	assert.Equal(t, 1350.0, summary["subtotal"])
}

func TestProductsArePublic(t *testing.T) {
	s := newTestServer(t, configs.ENV{})
	p := s.product("Hydraulic Filter", "1000", "Filters")
	s.product("Track Roller", "3200", "Undercarriage")

	rec, body := s.do(http.MethodGet, "/products?category=Filters", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"], 1)

	rec, body = s.do(http.MethodGet, "/products/"+p.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "₹1,000.00", body["formatted_price"])

	rec, _ = s.do(http.MethodGet, "/products/"+uuid.New().String(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = s.do(http.MethodGet, "/categories", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["data"], 2)
}

func TestDealerGate(t *testing.T) {
	s := newTestServer(t, configs.ENV{})
	customer := uuid.New().String()
	dealerUser := uuid.New().String()
	p := s.product("Swing Motor", "2000", "Hydraulics")

	dealer := &models.Dealer{UserID: dealerUser, BusinessName: "Faridabad Earthmovers Spares"}
	require.NoError(t, s.db.Create(dealer).Error)
	require.NoError(t, s.db.Create(&models.DealerInventory{
		DealerID: dealer.ID, ProductID: p.ID, Quantity: 10, DealerPrice: p.Price, ReorderLevel: 2,
	}).Error)

	rec, body := s.do(http.MethodGet, "/dealer/dashboard", customer, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Dealer access required", body["error"])

	_, body = s.do(http.MethodPost, "/orders/create", customer, orderBody(p, 1))
	orderID := body["order"].(map[string]interface{})["id"].(string)

	rec, body = s.do(http.MethodPut, "/dealer/orders/"+orderID+"/status", dealerUser, map[string]string{"status": "shipped", "courier_name": "Suresh"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "shipped", body["order"].(map[string]interface{})["status"])

	rec, _ = s.do(http.MethodPut, "/dealer/orders/"+orderID+"/status", dealerUser, map[string]string{"status": "preparing"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPut, "/dealer/orders/"+orderID+"/status", dealerUser, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(http.MethodGet, "/session", dealerUser, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["data"].(map[string]interface{})["is_dealer"])

	rec, body = s.do(http.MethodGet, "/session", customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["data"].(map[string]interface{})["is_dealer"])
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, configs.ENV{RateLimitRPS: 1, RateLimitBurst: 2})
	userID := uuid.New().String()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec, _ := s.do(http.MethodGet, "/orders", userID, nil)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
