package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/quickbite/oms/internal/service/services/accountsvc"
	"github.com/quickbite/oms/internal/service/services/assignsvc"
	"github.com/quickbite/oms/internal/service/services/cartsvc"
	"github.com/quickbite/oms/internal/service/services/catalogsvc"
	"github.com/quickbite/oms/internal/service/services/ordersvc"
	"github.com/quickbite/oms/internal/service/services/paymentsvc"
	"github.com/quickbite/oms/internal/service/services/vendorsvc"
	adminvendors "github.com/quickbite/oms/internal/transport/http/admin_vendors"
	assigndelivery "github.com/quickbite/oms/internal/transport/http/assign_delivery"
	"github.com/quickbite/oms/internal/transport/http/cart"
	createorder "github.com/quickbite/oms/internal/transport/http/create_order"
	createpayment "github.com/quickbite/oms/internal/transport/http/create_payment"
	customerlogin "github.com/quickbite/oms/internal/transport/http/customer_login"
	customersignup "github.com/quickbite/oms/internal/transport/http/customer_signup"
	deliverylogin "github.com/quickbite/oms/internal/transport/http/delivery_login"
	deliverysignup "github.com/quickbite/oms/internal/transport/http/delivery_signup"
	deliverystatus "github.com/quickbite/oms/internal/transport/http/delivery_status"
	getorder "github.com/quickbite/oms/internal/transport/http/get_order"
	listorders "github.com/quickbite/oms/internal/transport/http/list_orders"
	processorder "github.com/quickbite/oms/internal/transport/http/process_order"
	"github.com/quickbite/oms/internal/transport/http/profile"
	requestotp "github.com/quickbite/oms/internal/transport/http/request_otp"
	"github.com/quickbite/oms/internal/transport/http/shopping"
	vendorlogin "github.com/quickbite/oms/internal/transport/http/vendor_login"
	vendormenu "github.com/quickbite/oms/internal/transport/http/vendor_menu"
	vendoroffers "github.com/quickbite/oms/internal/transport/http/vendor_offers"
	verifyaccount "github.com/quickbite/oms/internal/transport/http/verify_account"
	verifydelivery "github.com/quickbite/oms/internal/transport/http/verify_delivery"
	verifyoffer "github.com/quickbite/oms/internal/transport/http/verify_offer"
	"github.com/quickbite/oms/pkg/auth"
	authmiddleware "github.com/quickbite/oms/pkg/http/middleware/auth"
	"github.com/quickbite/oms/pkg/http/middleware/trace"
	"github.com/quickbite/oms/pkg/logger"
	"github.com/spf13/viper"
)

// Services bundles the service layer consumed by the HTTP transport.
type Services struct {
	Accounts *accountsvc.AccountService
	Carts    *cartsvc.CartService
	Catalog  *catalogsvc.CatalogService
	Orders   *ordersvc.OrderService
	Payments *paymentsvc.PaymentService
	Assigns  *assignsvc.AssignService
	Vendors  *vendorsvc.VendorService
}

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	services Services
}

func NewHTTPTransport(services Services) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:   server,
		router:   router,
		services: services,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Route("/shopping", func(r chi.Router) {
			r.Get("/{pincode}", h.foodAvailability)
			r.Get("/top/{pincode}", h.topRestaurants)
			r.Get("/in-30-min/{pincode}", h.foodsIn30Min)
			r.Get("/search/{pincode}", h.searchFoods)
			r.Get("/restaurant/{id}", h.restaurantByID)
		})

		r.Route("/customer", func(r chi.Router) {
			r.Post("/signup", h.customerSignup)
			r.Post("/login", h.customerLogin)

			r.Group(func(r chi.Router) {
				r.Use(authmiddleware.NewAuthMiddleware)

				r.Patch("/verify", h.verifyAccount)
				r.Get("/otp", h.requestOTP)

				r.Get("/profile", h.getProfile)
				r.Patch("/profile", h.updateProfile)

				r.Get("/cart", h.getCart)
				r.Post("/cart", h.addToCart)
				r.Delete("/cart", h.clearCart)

				r.Get("/offer/verify/{id}", h.verifyOffer)
				r.Post("/create-payment", h.createPayment)

				r.Post("/create-order", h.createOrder)
				r.Get("/orders", h.listOrders)
				r.Get("/order/{id}", h.getOrder)
			})
		})

		r.Route("/vendor", func(r chi.Router) {
			r.Post("/login", h.vendorLogin)

			r.Group(func(r chi.Router) {
				r.Use(authmiddleware.NewAuthMiddleware)
				r.Use(authmiddleware.RequireRole(auth.RoleVendor))

				r.Put("/order/{id}/process", h.processOrder)
				r.Patch("/service", h.updateVendorService)
				r.Post("/food", h.addFood)
				r.Post("/offer", h.addOffer)
				r.Put("/offer/{id}", h.editOffer)
			})
		})

		r.Route("/delivery", func(r chi.Router) {
			r.Post("/signup", h.deliverySignup)
			r.Post("/login", h.deliveryLogin)

			r.Group(func(r chi.Router) {
				r.Use(authmiddleware.NewAuthMiddleware)

				r.With(authmiddleware.RequireRole(auth.RoleDelivery)).
					Put("/status", h.deliveryStatus)
				r.With(authmiddleware.RequireRole(auth.RoleAdmin)).
					Put("/verify/{id}", h.verifyDelivery)
				r.Post("/assign/{orderId}", h.assignDelivery)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authmiddleware.NewAuthMiddleware)
			r.Use(authmiddleware.RequireRole(auth.RoleAdmin))

			r.Post("/vendor", h.createVendor)
			r.Get("/vendors", h.listVendors)
		})
	})
}

func (h *HTTPTransport) foodAvailability(w http.ResponseWriter, r *http.Request) {
	shopping.FoodAvailability(w, r, h.services.Catalog)
}

func (h *HTTPTransport) topRestaurants(w http.ResponseWriter, r *http.Request) {
	shopping.TopRestaurants(w, r, h.services.Catalog)
}

func (h *HTTPTransport) foodsIn30Min(w http.ResponseWriter, r *http.Request) {
	shopping.FoodsIn30Min(w, r, h.services.Catalog)
}

func (h *HTTPTransport) restaurantByID(w http.ResponseWriter, r *http.Request) {
	shopping.RestaurantByID(w, r, h.services.Catalog)
}

func (h *HTTPTransport) customerSignup(w http.ResponseWriter, r *http.Request) {
	customersignup.Signup(w, r, h.services.Accounts)
}

func (h *HTTPTransport) customerLogin(w http.ResponseWriter, r *http.Request) {
	customerlogin.Login(w, r, h.services.Accounts)
}

func (h *HTTPTransport) verifyAccount(w http.ResponseWriter, r *http.Request) {
	verifyaccount.VerifyAccount(w, r, h.services.Accounts)
}

func (h *HTTPTransport) requestOTP(w http.ResponseWriter, r *http.Request) {
	requestotp.RequestOTP(w, r, h.services.Accounts)
}

func (h *HTTPTransport) getProfile(w http.ResponseWriter, r *http.Request) {
	profile.GetProfile(w, r, h.services.Accounts)
}

func (h *HTTPTransport) updateProfile(w http.ResponseWriter, r *http.Request) {
	profile.UpdateProfile(w, r, h.services.Accounts)
}

func (h *HTTPTransport) getCart(w http.ResponseWriter, r *http.Request) {
	cart.GetCart(w, r, h.services.Carts)
}

func (h *HTTPTransport) addToCart(w http.ResponseWriter, r *http.Request) {
	cart.AddToCart(w, r, h.services.Carts)
}

func (h *HTTPTransport) clearCart(w http.ResponseWriter, r *http.Request) {
	cart.ClearCart(w, r, h.services.Carts)
}

func (h *HTTPTransport) verifyOffer(w http.ResponseWriter, r *http.Request) {
	verifyoffer.VerifyOffer(w, r, h.services.Payments)
}

func (h *HTTPTransport) createPayment(w http.ResponseWriter, r *http.Request) {
	createpayment.CreatePayment(w, r, h.services.Payments)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.services.Orders)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.services.Orders)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.services.Orders)
}

func (h *HTTPTransport) processOrder(w http.ResponseWriter, r *http.Request) {
	processorder.ProcessOrder(w, r, h.services.Orders)
}

func (h *HTTPTransport) deliveryStatus(w http.ResponseWriter, r *http.Request) {
	deliverystatus.UpdateStatus(w, r, h.services.Accounts)
}

func (h *HTTPTransport) verifyDelivery(w http.ResponseWriter, r *http.Request) {
	verifydelivery.VerifyDelivery(w, r, h.services.Accounts)
}

func (h *HTTPTransport) assignDelivery(w http.ResponseWriter, r *http.Request) {
	assigndelivery.AssignDelivery(w, r, h.services.Orders, h.services.Assigns)
}

func (h *HTTPTransport) searchFoods(w http.ResponseWriter, r *http.Request) {
	shopping.SearchFoods(w, r, h.services.Catalog)
}

func (h *HTTPTransport) vendorLogin(w http.ResponseWriter, r *http.Request) {
	vendorlogin.Login(w, r, h.services.Accounts)
}

func (h *HTTPTransport) deliverySignup(w http.ResponseWriter, r *http.Request) {
	deliverysignup.Signup(w, r, h.services.Accounts)
}

func (h *HTTPTransport) deliveryLogin(w http.ResponseWriter, r *http.Request) {
	deliverylogin.Login(w, r, h.services.Accounts)
}

func (h *HTTPTransport) updateVendorService(w http.ResponseWriter, r *http.Request) {
	vendormenu.UpdateService(w, r, h.services.Vendors)
}

func (h *HTTPTransport) addFood(w http.ResponseWriter, r *http.Request) {
	vendormenu.AddFood(w, r, h.services.Vendors)
}

func (h *HTTPTransport) addOffer(w http.ResponseWriter, r *http.Request) {
	vendoroffers.AddOffer(w, r, h.services.Vendors)
}

func (h *HTTPTransport) editOffer(w http.ResponseWriter, r *http.Request) {
	vendoroffers.EditOffer(w, r, h.services.Vendors)
}

func (h *HTTPTransport) createVendor(w http.ResponseWriter, r *http.Request) {
	adminvendors.CreateVendor(w, r, h.services.Vendors)
}

func (h *HTTPTransport) listVendors(w http.ResponseWriter, r *http.Request) {
	adminvendors.ListVendors(w, r, h.services.Vendors)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
