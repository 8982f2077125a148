package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tornado-product/fusion-media-provider/api/handlers"
	"github.com/tornado-product/fusion-media-provider/api/middleware"
	"github.com/tornado-product/fusion-media-provider/internal/app"
)

// SetupRouter sets up the HTTP router
func SetupRouter(aggregator *app.Aggregator, downloader *app.Downloader, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(aggregator)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		searchHandler := handlers.NewSearchHandler(aggregator, log)
		v1.GET("/search", searchHandler.Search)
		v1.GET("/search/:provider", searchHandler.SearchProvider)

		mediaHandler := handlers.NewMediaHandler(aggregator, log)
		v1.GET("/media/:provider/:id", mediaHandler.GetMedia)

		downloadHandler := handlers.NewDownloadHandler(downloader, log)
		v1.POST("/downloads", downloadHandler.AddDownloads)
	}

	return router
}
