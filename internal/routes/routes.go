package routes

import (
	"net/http"

	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/config"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/handlers"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/middleware"
	"github.com/gabrielsaDRC/calculadora-banco-imobiliario/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// New wires services, handlers and middleware into a gin engine. Used by both
// the server binary and the handler tests.
func New(db *gorm.DB, cfg *config.Config) *gin.Engine {
	sessionService := services.NewSessionService(db)
	bankService := services.NewBankService(db, cfg.HistoryLimit)
	analyticsService := services.NewAnalyticsService()

	sessionHandler := handlers.NewSessionHandler(sessionService)
	bankHandler := handlers.NewBankHandler(bankService)
	statsHandler := handlers.NewStatsHandler(sessionService, bankService, analyticsService)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.PlayerIDHeader},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// Serves the swag output; run `swag init -g cmd/server/main.go` and blank-
	// import the generated docs package from main before shipping, otherwise
	// this endpoint reports missing docs.
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.PlayerIdentity())
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.Create)
			sessions.POST("/join", sessionHandler.Join)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.DELETE("/:id", sessionHandler.End)
			sessions.GET("/:id/config", sessionHandler.GetConfig)
			sessions.PUT("/:id/buttons", sessionHandler.UpdateButtons)
			sessions.GET("/:id/players", sessionHandler.ListPlayers)
			sessions.POST("/:id/players", sessionHandler.AddPlayer)
			sessions.POST("/:id/transfer", bankHandler.Transfer)
			sessions.POST("/:id/reset", bankHandler.Reset)
			sessions.GET("/:id/transactions", bankHandler.ListTransactions)
			sessions.GET("/:id/ranking", statsHandler.Ranking)
			sessions.GET("/:id/stats", statsHandler.Stats)
		}

		players := api.Group("/players")
		{
			players.DELETE("/:id", sessionHandler.RemovePlayer)
			players.POST("/:id/credit", bankHandler.Credit)
			players.POST("/:id/pay", bankHandler.Pay)
			players.PUT("/:id/balance", bankHandler.SetBalance)
		}
	}

	return r
}
