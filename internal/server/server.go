package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/brennosantos/eventos/config"
	"github.com/brennosantos/eventos/internal/handlers"
	"github.com/brennosantos/eventos/internal/middleware"
	"github.com/brennosantos/eventos/internal/repository"
	"github.com/brennosantos/eventos/internal/services"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	store := repository.NewGormStore(db)

	authHandler := handlers.NewAuthHandler(services.NewUserService(store))
	eventHandler := handlers.NewEventHandler(services.NewEventService(store))
	orderHandler := handlers.NewOrderHandler(services.NewOrderService(store))

	r := gin.Default()

	setupRoutes(r, authHandler, eventHandler, orderHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, auth *handlers.AuthHandler, events *handlers.EventHandler, orders *handlers.OrderHandler) {
	public := r.Group("/v1")
	{
		public.POST("/register", auth.Register)
		public.POST("/login", auth.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", events.List)
			eventPublic.GET("/:id", events.Get)
			eventPublic.GET("/:id/quote", orders.Preview)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile", auth.Profile)
		protected.GET("/my-events", events.MyEvents)

		eventProtected := protected.Group("/events")
		{
			eventProtected.POST("", events.Create)
			eventProtected.POST("/:id/cancel", events.Cancel)
		}

		orderProtected := protected.Group("/orders")
		{
			orderProtected.POST("", orders.Create)
			orderProtected.GET("", orders.ListMine)
			orderProtected.POST("/:id/cancel", orders.Cancel)
		}

		ticketProtected := protected.Group("/tickets")
		{
			ticketProtected.GET("/:id/qr", orders.TicketQR)
			ticketProtected.POST("/validate", orders.ValidateTicket)
		}
	}
}
