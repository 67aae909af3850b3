// Package router wires middleware and module routes onto the Gin engine.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apphttp "intake_gateway/internal/http"
	"intake_gateway/platform/httpkit"
)

// New builds the HTTP engine: recovery, request identification and logging,
// security headers, CORS, per-IP rate limiting, the health endpoint, and
// every module's routes under /api/v1.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	limiter := httpkit.NewIPRateLimiter(
		rate.Limit(app.Config.GetRateLimitRPS()),
		app.Config.GetRateLimitBurst(),
		app.Logger,
	)

	engine.GET("/api/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := app.Health.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := engine.Group("/api/v1")
	v1.Use(limiter.RateLimit())

	ctx := &apphttp.RouterContext{
		Engine: engine,
		V1:     v1,
	}
	for _, m := range app.Modules {
		m.RegisterRoutes(ctx)
		app.Logger.Info("registered module routes", "module", m.Name())
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	corsCfg.AllowCredentials = cfg.GetCORSAllowCreds()
	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
		return corsCfg
	}
	corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	return corsCfg
}
