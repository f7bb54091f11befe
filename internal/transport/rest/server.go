package rest

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/account"
	"github.com/vladislavdragonenkov/storefront/internal/service/auth"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/order"
)

// Server собирает HTTP-API магазина поверх доменных сервисов.
type Server struct {
	auth     *auth.Service
	accounts *account.Service
	catalog  *catalog.Service
	orders   *order.Service
	idem     domain.IdempotencyRepository
	metrics  *metrics.HTTPMetrics
	cors     []string
	logger   *log.Entry
}

// Config — зависимости и настройки HTTP-сервера.
type Config struct {
	Auth        *auth.Service
	Accounts    *account.Service
	Catalog     *catalog.Service
	Orders      *order.Service
	Idempotency domain.IdempotencyRepository
	Metrics     *metrics.HTTPMetrics
	CORSOrigins []string
	Logger      *log.Entry
}

// NewServer конструирует сервер. Metrics и Idempotency опциональны.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}

	return &Server{
		auth:     cfg.Auth,
		accounts: cfg.Accounts,
		catalog:  cfg.Catalog,
		orders:   cfg.Orders,
		idem:     cfg.Idempotency,
		metrics:  cfg.Metrics,
		cors:     cfg.CORSOrigins,
		logger:   logger.WithField("component", "rest"),
	}
}

// Router строит gin-движок со всеми маршрутами API.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if s.metrics != nil {
		router.Use(s.metrics.Middleware())
	}
	router.Use(s.corsMiddleware())

	api := router.Group("/api")

	api.POST("/auth/login", s.login)
	api.GET("/products", s.listProducts)
	api.GET("/products/:id", s.getProduct)

	authed := api.Group("")
	authed.Use(authMiddleware(s.auth))

	admin := authed.Group("")
	admin.Use(requireAdmin())

	admin.POST("/products", s.createProduct)
	admin.PUT("/products/:id", s.updateProduct)
	admin.DELETE("/products/:id", s.deleteProduct)
	admin.POST("/products/:id/photo", s.uploadProductPhoto)

	authed.GET("/orders", s.listOrders)
	authed.POST("/orders", idempotencyMiddleware(s.idem, s.logger), s.createOrder)
	authed.GET("/orders/:id", s.getOrder)
	authed.PUT("/orders/:id", s.updateOrderStatus)
	authed.DELETE("/orders/:id", s.deleteOrder)
	authed.GET("/orders/:id/timeline", s.getOrderTimeline)

	authed.GET("/orderitems", s.listOrderItems)
	authed.GET("/orderitems/:id", s.getOrderItem)
	authed.PUT("/orderitems/:id", s.updateOrderItem)
	authed.DELETE("/orderitems/:id", s.deleteOrderItem)

	admin.GET("/users", s.listUsers)
	admin.POST("/users", s.createUser)
	admin.GET("/users/:id", s.getUser)
	admin.PUT("/users/:id", s.updateUser)
	admin.DELETE("/users/:id", s.deleteUser)

	authed.GET("/profile", s.getProfile)
	authed.PUT("/profile", s.updateProfile)
	authed.POST("/profile/photo", s.uploadProfilePhoto)

	return router
}

func (s *Server) corsMiddleware() gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", idempotencyKeyHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(s.cors) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = s.cors
	}
	return cors.New(cfg)
}
