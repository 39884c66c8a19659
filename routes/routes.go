package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"silverback/handlers"
)

// SetupRouter wires the tweet routes, CORS, static upload serving, and the
// metrics endpoint onto a gin engine with the default logger and recovery
// middleware.
func SetupRouter(h *handlers.Handler, uploadDir string, corsOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the API!")
	})

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded images are addressable at the same path recorded on the tweet.
	router.Static("/uploads", uploadDir)

	tweets := router.Group("/tweets")
	tweets.POST("", h.CreateTweet)
	tweets.GET("", h.ListTweets)
	tweets.PUT("/:id", h.UpdateTweet)
	tweets.DELETE("/:id", h.DeleteTweet)
	tweets.PATCH("/:id/like", h.LikeTweet)
	tweets.PATCH("/:id/retweet", h.RetweetTweet)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Endpoint not found",
			"path":  c.Request.URL.Path,
		})
	})

	return router
}
