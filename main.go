package main

import (
	"os"
	"storefront/config"
	_ "storefront/docs"
	"storefront/middleware"
	"storefront/routes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// @title Storefront API
// @version 1.0
// @description Shopping cart and checkout backend
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	config.ConnectDB()
	defer config.CloseDB()

	config.InitRedis()
	defer config.CloseRedis()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router)

	port := ":" + config.AppConfig.Port
	log.Info().Str("port", config.AppConfig.Port).Str("env", config.AppConfig.AppEnv).Msg("server starting")

	if err := router.Run(port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
