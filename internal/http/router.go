package http

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/WhiteNexus47/LiquiDator/internal/http/cartcookie"
	"github.com/WhiteNexus47/LiquiDator/internal/http/handlers"
	"github.com/WhiteNexus47/LiquiDator/internal/http/middleware"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/cart"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/catalog"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/checkout"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/delivery"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/orders"
	"github.com/WhiteNexus47/LiquiDator/internal/modules/reviews"
)

// NewRouter wires the full request pipeline: request id, access log,
// panic recovery, error rendering, then the API routes.
func NewRouter(logger *slog.Logger, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	secret := []byte(os.Getenv("CART_COOKIE_SECRET"))
	if len(secret) == 0 {
		secret = []byte("dev-only-secret")
	}
	cookieName := os.Getenv("CART_COOKIE_NAME")
	if cookieName == "" {
		cookieName = "liq_cart"
	}
	secure := os.Getenv("COOKIE_SECURE") == "1"

	ck := cartcookie.New(secret, cookieName, secure)
	store := cart.NewStore(cart.NewRedisStorage(rdb), cart.NewRedisNotifier(rdb), logger)

	catalogSvc := catalog.NewService(catalog.NewGormRepo(db))
	reviewRepo := reviews.NewRepo(db)
	orderRepo := orders.NewRepo(db)
	assembler := checkout.NewAssembler(store)
	deliverySvc := delivery.NewService(logger,
		delivery.NewEmailChannel(),
		delivery.NewWhatsAppChannel(),
	)

	productsH := handlers.NewProductsHandler(catalogSvc, reviewRepo)
	cartH := handlers.NewCartHandler(store, catalogSvc, ck)
	checkoutH := handlers.NewCheckoutHandler(assembler, store, orderRepo, deliverySvc, ck, logger)
	ordersH := handlers.NewOrdersHandler(orderRepo)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.ErrorHandler(logger))
	r.Use(middleware.CartCount(ck, store, logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/products", productsH.List)
		api.GET("/products/:id", productsH.Detail)
		api.GET("/products/:id/reviews", productsH.ProductReviews)

		api.GET("/cart", cartH.Get)
		api.DELETE("/cart", cartH.Clear)
		api.POST("/cart/items", cartH.Add)
		api.POST("/cart/items/:id/quantity", cartH.Quantity)
		api.DELETE("/cart/items/:id", cartH.Remove)
		api.GET("/cart/badge", cartH.Badge)

		api.GET("/checkout", checkoutH.Summary)
		api.POST("/checkout", checkoutH.Submit)

		api.GET("/orders", ordersH.List)
		api.GET("/orders/:id", ordersH.Get)
	}

	return r
}
