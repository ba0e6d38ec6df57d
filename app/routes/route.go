package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/Rakhulsr/ace-genuine-parts/app/auth"
	"github.com/Rakhulsr/ace-genuine-parts/app/configs"
	"github.com/Rakhulsr/ace-genuine-parts/app/handlers"
	"github.com/Rakhulsr/ace-genuine-parts/app/helpers"
	"github.com/Rakhulsr/ace-genuine-parts/app/metrics"
	"github.com/Rakhulsr/ace-genuine-parts/app/middlewares"
	"github.com/Rakhulsr/ace-genuine-parts/app/repositories"
	"github.com/Rakhulsr/ace-genuine-parts/app/services"
	"github.com/Rakhulsr/ace-genuine-parts/app/utils/renderer"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const (
	limiterCleanupInterval = 10 * time.Minute
	limiterMaxEntries      = 10000
)

// NewRouter wires repositories, services and handlers onto one router. The
// limiter cleanup goroutine stops when ctx is done.
func NewRouter(ctx context.Context, db *gorm.DB, verifier auth.Verifier, publisher services.EventPublisher, env configs.ENV) http.Handler {
	rnd := renderer.New(!env.IsProduction())
	validate := helpers.NewValidator()

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	historyRepo := repositories.NewOrderStatusHistoryRepository(db)
	cartRepo := repositories.NewCartItemRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	addressRepo := repositories.NewGormAddressRepository(db)
	equipmentRepo := repositories.NewEquipmentRepository(db)
	dealerRepo := repositories.NewDealerRepository(db)
	loyaltyRepo := repositories.NewLoyaltyRepository(db)

	orderSvc := services.NewOrderService(db, orderRepo, orderItemRepo, historyRepo, cartRepo, addressRepo, publisher)
	trackingSvc := services.NewTrackingService(orderRepo)
	wishlistSvc := services.NewWishlistService(db, wishlistRepo, cartRepo, productRepo)
	cartSvc := services.NewCartService(cartRepo, productRepo, env.CurrencySymbol)
	addressSvc := services.NewAddressService(db, addressRepo)
	equipmentSvc := services.NewEquipmentService(equipmentRepo)
	loyaltySvc := services.NewLoyaltyService(db, loyaltyRepo)
	dealerSvc := services.NewDealerService(db, dealerRepo, orderRepo, historyRepo, productRepo, loyaltySvc, publisher, env.CurrencySymbol)

	productHandler := handlers.NewProductHandler(productRepo, categoryRepo, rnd, env.CurrencySymbol)
	orderHandler := handlers.NewOrderHandler(orderSvc, rnd, validate, env.CurrencySymbol)
	trackingHandler := handlers.NewTrackingHandler(trackingSvc, rnd)
	wishlistHandler := handlers.NewWishlistHandler(wishlistSvc, rnd, validate)
	cartHandler := handlers.NewCartHandler(cartSvc, rnd, validate)
	addressHandler := handlers.NewAddressHandler(addressSvc, rnd, validate)
	equipmentHandler := handlers.NewEquipmentHandler(equipmentSvc, rnd, validate)
	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltySvc, rnd, validate)
	dealerHandler := handlers.NewDealerHandler(dealerSvc, rnd, validate)
	sessionHandler := handlers.NewSessionHandler(dealerSvc, rnd)
	healthHandler := handlers.NewHealthHandler(db, rnd)

	limiter := middlewares.NewRateLimiter(env.RateLimitRPS, env.RateLimitBurst, rnd)
	limiter.StartCleanup(limiterCleanupInterval, limiterMaxEntries, ctx.Done())

	router := mux.NewRouter()
	router.Use(metrics.InstrumentHandler)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rnd.JSON(w, http.StatusNotFound, map[string]interface{}{"success": false, "error": "Not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rnd.JSON(w, http.StatusMethodNotAllowed, map[string]interface{}{"success": false, "error": "Method not allowed"})
	})

	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	public := router.NewRoute().Subrouter()
	public.Use(limiter.Handler)
	public.HandleFunc("/categories", productHandler.Categories).Methods("GET")
	public.HandleFunc("/products", productHandler.Products).Methods("GET")
	public.HandleFunc("/products/{id}", productHandler.ProductDetail).Methods("GET")

	api := router.NewRoute().Subrouter()
	api.Use(middlewares.AuthMiddleware(verifier, rnd), limiter.Handler)

	api.HandleFunc("/session", sessionHandler.Session).Methods("GET")

	api.HandleFunc("/orders", orderHandler.ListOrders).Methods("GET")
	api.HandleFunc("/orders/create", orderHandler.CreateOrder).Methods("POST")
	api.HandleFunc("/orders/{id}", orderHandler.GetOrder).Methods("GET")
	api.HandleFunc("/orders/{id}/cancel", orderHandler.CancelOrder).Methods("PUT")

	api.HandleFunc("/tracking/live/{trackingNumber}", trackingHandler.Live).Methods("GET")
	api.HandleFunc("/tracking/{orderId}", trackingHandler.Track).Methods("GET")

	api.HandleFunc("/wishlist", wishlistHandler.List).Methods("GET")
	api.HandleFunc("/wishlist/add", wishlistHandler.Add).Methods("POST")
	api.HandleFunc("/wishlist/toggle", wishlistHandler.Toggle).Methods("POST")
	api.HandleFunc("/wishlist/move-to-cart", wishlistHandler.MoveToCart).Methods("POST")
	api.HandleFunc("/wishlist/check/{productId}", wishlistHandler.Check).Methods("GET")
	api.HandleFunc("/wishlist/{productId}", wishlistHandler.Remove).Methods("DELETE")

	api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	api.HandleFunc("/cart/add", cartHandler.AddItem).Methods("POST")
	api.HandleFunc("/cart/{productId}", cartHandler.UpdateItem).Methods("PUT")
	api.HandleFunc("/cart/{productId}", cartHandler.RemoveItem).Methods("DELETE")

	api.HandleFunc("/addresses", addressHandler.List).Methods("GET")
	api.HandleFunc("/addresses", addressHandler.Create).Methods("POST")
	api.HandleFunc("/addresses/{id}/default", addressHandler.SetDefault).Methods("PUT")
	api.HandleFunc("/addresses/{id}", addressHandler.Delete).Methods("DELETE")

	api.HandleFunc("/equipment", equipmentHandler.List).Methods("GET")
	api.HandleFunc("/equipment", equipmentHandler.Create).Methods("POST")
	api.HandleFunc("/equipment/maintenance", equipmentHandler.Maintenance).Methods("GET")
	api.HandleFunc("/equipment/{id}", equipmentHandler.Update).Methods("PUT")
	api.HandleFunc("/equipment/{id}/service", equipmentHandler.LogService).Methods("POST")

	api.HandleFunc("/loyalty", loyaltyHandler.Overview).Methods("GET")
	api.HandleFunc("/loyalty/redeem", loyaltyHandler.Redeem).Methods("POST")

	dealer := api.PathPrefix("/dealer").Subrouter()
	dealer.Use(middlewares.DealerMiddleware(dealerSvc, rnd))
	dealer.HandleFunc("/dashboard", dealerHandler.Dashboard).Methods("GET")
	dealer.HandleFunc("/inventory", dealerHandler.Inventory).Methods("GET")
	dealer.HandleFunc("/inventory/{productId}", dealerHandler.UpsertInventory).Methods("PUT")
	dealer.HandleFunc("/orders", dealerHandler.Orders).Methods("GET")
	dealer.HandleFunc("/orders/{id}/status", dealerHandler.UpdateOrderStatus).Methods("PUT")
	dealer.HandleFunc("/offers", dealerHandler.Offers).Methods("GET")
	dealer.HandleFunc("/offers", dealerHandler.CreateOffer).Methods("POST")
	dealer.HandleFunc("/offers/{id}", dealerHandler.DeactivateOffer).Methods("DELETE")

	return middlewares.CORS(middlewares.RequestLogger(router))
}
