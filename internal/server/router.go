package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRouter creates and configures the Gin router. metricsHandler may be
// nil when metrics are disabled.
func SetupRouter(api *API, metricsHandler http.Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// Playback control endpoints
	pb := r.Group("/playback")
	{
		pb.POST("/live", api.PlayLive)
		pb.POST("/play", api.Play)
		pb.POST("/pause", api.Pause)
		pb.POST("/resume", api.Resume)
		pb.POST("/stop", api.Stop)
		pb.POST("/toggle", api.Toggle)
		pb.POST("/seek", api.Seek)
		pb.GET("/status", api.Status)
		pb.GET("/playing", api.Playing)
	}

	// Now-playing metadata
	r.POST("/nowplaying", api.NowPlaying)

	// Host lifecycle signals
	lc := r.Group("/lifecycle")
	{
		lc.POST("/background", api.Background)
		lc.POST("/foreground", api.Foreground)
	}

	// Audio session signals
	audio := r.Group("/audio")
	{
		audio.POST("/interruption", api.Interruption)
		audio.POST("/route-lost", api.RouteLost)
	}

	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

// corsMiddleware handles CORS for browser requests.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
