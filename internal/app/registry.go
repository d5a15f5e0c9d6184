package app

import (
	"net/http"

	"swarachna-api/internal/auth"
	"swarachna-api/internal/cart"
	"swarachna-api/internal/catalog"
	"swarachna-api/internal/contact"
	"swarachna-api/internal/design"
	"swarachna-api/internal/order"
	"swarachna-api/internal/outbox"
	"swarachna-api/internal/session"
	"swarachna-api/internal/shared/database/dbgen"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(router *gin.Engine, cfg Config, infra *Infra, svcs Services, logger *zap.Logger) {
	sessions := session.NewManager(infra.Store)

	queries := dbgen.New(infra.DB)

	// --- Repositories ---
	orderRepo := order.NewRepository(queries)
	outboxRepo := outbox.NewRepository(queries)

	// --- Services ---
	cartService := cart.NewService(sessions, svcs.Catalog, logger.Named("cart"))
	authService := auth.NewService(auth.Deps{
		Sessions:           sessions,
		Cart:               cartService,
		Provider:           svcs.Identity,
		JWTSecret:          []byte(cfg.JWTSecret),
		TokenTTL:           accessTokenTTL,
		DefaultCountryCode: cfg.DefaultCountryCode,
		Logger:             logger.Named("auth"),
	})
	contactService := contact.NewService(svcs.Email, logger.Named("contact"))
	orderService := order.NewService(order.Deps{
		DB:          infra.DB,
		Repo:        orderRepo,
		OutboxRepo:  outboxRepo,
		CartSvc:     cartService,
		MidtransSvc: svcs.Midtrans,
		EmailSvc:    svcs.Email,
		Logger:      logger.Named("order"),
	})
	designService := design.NewService(design.Deps{
		Sessions: sessions,
		Catalog:  svcs.Catalog,
		Uploader: svcs.Uploader,
		EmailSvc: svcs.Email,
		Logger:   logger.Named("design"),
	})

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger)
	catalogHandler := catalog.NewHandler(svcs.Catalog)
	cartHandler := cart.NewHandler(cartService, logger)
	contactHandler := contact.NewHandler(contactService, logger)
	designHandler := design.NewHandler(designService, logger)
	orderHandler := order.NewHandler(orderService, infra.Redis, logger)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		catalog.RegisterRoutes(api, catalogHandler)
		contact.RegisterRoutes(api, contactHandler)

		visitor := api.Group("", session.Middleware(sessions, cfg.IsProduction()))
		auth.RegisterRoutes(visitor, authHandler)
		cart.RegisterRoutes(visitor, cartHandler)
		design.RegisterRoutes(visitor, designHandler)
		order.RegisterRoutes(visitor, orderHandler, infra.Redis)
	}
}
