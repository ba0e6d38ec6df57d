package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordEvent(t *testing.T) {
	before := testutil.ToFloat64(eventsPublished.WithLabelValues("order.created", "ok"))
	beforeErr := testutil.ToFloat64(eventsPublished.WithLabelValues("order.created", "error"))

	RecordEvent("order.created", nil)
	RecordEvent("order.created", errors.New("nack"))

	assert.Equal(t, before+1, testutil.ToFloat64(eventsPublished.WithLabelValues("order.created", "ok")))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(eventsPublished.WithLabelValues("order.created", "error")))
}

func TestInstrumentHandler_UsesRouteTemplate(t *testing.T) {
	router := mux.NewRouter()
	router.Use(InstrumentHandler)
	router.HandleFunc("/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods("GET")

	counter := httpRequests.WithLabelValues("GET", "/orders/{id}", "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/8f14e45f", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	OrdersCancelled.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "ace_parts_orders_cancelled_total"))
}
