package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ayomidekayo/OgwInventorybackend/internal/database"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/middleware"
	"github.com/Ayomidekayo/OgwInventorybackend/internal/notifier"
	routerpkg "github.com/Ayomidekayo/OgwInventorybackend/internal/router"
	"github.com/Ayomidekayo/OgwInventorybackend/pkg/utils"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()

	dbCfg := database.Config{
		Host:       utils.Getenv("DB_HOST", "localhost"),
		Port:       utils.Getenv("DB_PORT", "5432"),
		User:       utils.Getenv("DB_USER", "ogw_inventory"),
		Password:   utils.Getenv("DB_PASSWORD", "ogw_inventory"),
		Name:       utils.Getenv("DB_NAME", "ogw_inventory_db"),
		SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
		SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
	}
	db, err := database.Connect(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	utils.LogInfo("Database initialized", map[string]interface{}{"host": dbCfg.Host, "name": dbCfg.Name})

	mailer := notifier.NewSendGridMailer()
	dispatcher := notifier.NewDispatcher(mailer, 64)
	defer dispatcher.Close()

	router := gin.Default()
	router.Use(utils.GinLogger())
	router.Use(middleware.MetricsMiddleware())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	router.Use(cors.New(config))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	lowStockThreshold, err := strconv.Atoi(utils.Getenv("LOW_STOCK_THRESHOLD", "5"))
	if err != nil || lowStockThreshold < 0 {
		lowStockThreshold = 5
	}
	routerpkg.Setup(router, db, dispatcher, routerpkg.Config{
		AdminEmail:        utils.Getenv("ADMIN_EMAIL", ""),
		LowStockThreshold: lowStockThreshold,
	})

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := router.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
