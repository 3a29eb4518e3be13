// Package server assembles the HTTP router: middleware, docs, metrics and
// the /api/v1 routes.
package server

import (
	"net/http"
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "investwise/internal/docs" // Register swagger docs
	"investwise/internal/handlers"
	"investwise/internal/metrics"
	"investwise/internal/middleware"
)

// Handlers are the request handlers mounted under /api/v1.
type Handlers struct {
	Portfolio *handlers.PortfolioHandler
	Wealth    *handlers.WealthHandler
	Market    *handlers.MarketHandler
	Profile   *handlers.UserProfileHandler
}

// Options controls the router's security middleware.
type Options struct {
	AuthEnabled     bool
	JWTSecret       string
	PipelineAPIKeys []string
	CORSOrigins     []string
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key", "X-Request-ID"}
	config.ExposeHeaders = []string{"Content-Length", "X-Request-ID"}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
		return config
	}
	config.AllowOrigins = origins
	config.AllowCredentials = true
	return config
}

// NewRouter builds the gin engine.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(metrics.Middleware("/metrics", "/api/health"))
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(corsConfig(opts.CORSOrigins)))
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", metrics.Handler())
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Batch pipeline routes, API key only
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(opts.PipelineAPIKeys...))
	pipeline.POST("/total-wealth/backfill", h.Wealth.Backfill)

	api := v1.Group("")
	if opts.AuthEnabled {
		api.Use(middleware.AuthMiddleware(opts.JWTSecret))
	}

	// Portfolio routes
	portfolio := api.Group("/portfolio")
	portfolio.POST("/addDetails", h.Portfolio.AddDetails)
	portfolio.POST("/sell", h.Portfolio.Sell)
	portfolio.GET("/aggregate/:userId", h.Portfolio.GetAggregate)
	portfolio.GET("/:userId", h.Portfolio.GetPortfolio)
	portfolio.GET("/:userId/purchases", h.Portfolio.ListPurchases)
	portfolio.GET("/:userId/sales", h.Portfolio.ListSales)

	// Wealth routes
	wealth := api.Group("/total-wealth")
	wealth.POST("/update", h.Wealth.Update)
	wealth.POST("/create", h.Wealth.Create)
	wealth.GET("/history/:userId", h.Wealth.GetHistory)
	wealth.GET("/:userId", h.Wealth.GetLatest)

	// User profile routes
	profile := api.Group("/user-profile")
	profile.POST("/create", h.Profile.CreateProfile)
	profile.GET("/:userId", h.Profile.GetProfile)

	// Market data routes
	api.GET("/search/:query", h.Market.Search)
	stock := api.Group("/stock")
	stock.GET("/latest/:ticker", h.Market.GetLatestOpenClose)
	stock.POST("/latest/:ticker", h.Market.GetLatestDaily)
	stock.POST("/intraday/:ticker", h.Market.GetIntraday)
	stock.POST("/sentiment/:ticker", h.Market.GetSentiment)
	api.POST("/fetch-price-data", h.Market.FetchPriceData)
	api.POST("/news-sentiment", h.Market.NewsSentiment)
	api.POST("/predict", h.Market.Predict)

	return router
}
