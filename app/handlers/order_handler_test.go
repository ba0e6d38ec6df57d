package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Rakhulsr/ace-genuine-parts/app/auth"
	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/Rakhulsr/ace-genuine-parts/app/utils/renderer"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testUserID = "0b6f2c1e-58c4-4f7e-9d0a-2a7c4b9e1f33"

func newMockedOrderHandler(t *testing.T) (*OrderHandler, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: mockDB}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	svc := services.NewOrderService(
		db,
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
		repositories.NewOrderStatusHistoryRepository(db),
		repositories.NewCartItemRepository(db),
		repositories.NewGormAddressRepository(db),
		nil,
	)
	return NewOrderHandler(svc, renderer.New(false), helpers.NewValidator(), "₹"), mock
}

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(helpers.WithIdentity(req.Context(), &auth.Identity{UserID: testUserID}))
}

func TestListOrders_DatabaseFailure(t *testing.T) {
	h, mock := newMockedOrderHandler(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).WillReturnError(assert.AnError)

	rec := httptest.NewRecorder()
	h.ListOrders(rec, authedRequest(http.MethodGet, "/orders", ""))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrders_Empty(t *testing.T) {
	h, mock := newMockedOrderHandler(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WithArgs(testUserID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rec := httptest.NewRecorder()
	h.ListOrders(rec, authedRequest(http.MethodGet, "/orders?page=1&limit=5", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
	assert.Contains(t, rec.Body.String(), `"limit":5`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrder_NotFound(t *testing.T) {
	h, mock := newMockedOrderHandler(t)
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := mux.SetURLVars(authedRequest(http.MethodGet, "/orders/missing", ""), map[string]string{"id": "missing"})
	rec := httptest.NewRecorder()
	h.GetOrder(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Order not found")
}

func TestCreateOrder_RejectedBeforeDatabase(t *testing.T) {
	h, mock := newMockedOrderHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"items":`},
		{"no items", `{"items":[]}`},
		{"zero quantity", `{"items":[{"product_id":"p1","product_name":"Filter","price":10,"quantity":0}]}`},
		{"missing price", `{"items":[{"product_id":"p1","product_name":"Filter","quantity":1}]}`},
		{"null price", `{"items":[{"product_id":"p1","product_name":"Filter","price":null,"quantity":1}]}`},
		{"negative price", `{"items":[{"product_id":"p1","product_name":"Filter","price":-10,"quantity":1}]}`},
		{"unknown payment", `{"items":[{"product_id":"p1","product_name":"Filter","price":10,"quantity":1}],"payment_method":"cheque"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.CreateOrder(rec, authedRequest(http.MethodPost, "/orders/create", tt.body))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), `"success":false`)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
