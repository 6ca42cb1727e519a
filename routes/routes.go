package routes

import (
	"storefront/config"
	"storefront/controllers"
	"storefront/middleware"
	"storefront/repositories"
	"storefront/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(router *gin.Engine) {
	userRepo := repositories.NewUserRepository()
	cartRepo := repositories.NewCartRepository()
	orderRepo := repositories.NewOrderRepository()
	checkoutRepo := repositories.NewCheckoutRepository()

	var mailer services.Mailer
	mailer, err := services.NewNotificationService()
	if err != nil {
		log.Warn().Err(err).Msg("order notifications disabled")
		mailer = services.NoopMailer{}
	}

	cartSvc := services.NewCartService(cartRepo)
	checkoutSvc := services.NewCheckoutService(checkoutRepo, mailer)

	authCtrl := controllers.NewAuthController(userRepo)
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(orderRepo)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	authLimit := middleware.RateLimitMiddleware(config.AppConfig.AuthRateLimit, config.AppConfig.AuthRateWindow)
	router.POST("/auth/register", authLimit, authCtrl.Register)
	router.POST("/auth/login", authLimit, authCtrl.Login)

	auth := router.Group("/")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.GET("/auth/profile", authCtrl.GetProfile)
		auth.PATCH("/auth/settings", authCtrl.UpdateSettings)
		auth.DELETE("/auth/account", authCtrl.DeleteAccount)

		auth.POST("/cart", cartCtrl.AddToCart)
		auth.GET("/cart", cartCtrl.GetCart)
		auth.DELETE("/cart/:id", cartCtrl.DeleteItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)

		auth.POST("/checkout", checkoutCtrl.Checkout)
		auth.POST("/checkout/validate", checkoutCtrl.ValidateSection)

		auth.GET("/orders", orderCtrl.GetOrders)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByToken)
	}
}
