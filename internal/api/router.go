package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"factory-status-backend/internal/ingest"
	"factory-status-backend/internal/mw"
	"factory-status-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, svc *ingest.Service, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, svc, webpushOptions)

	// Initialize middleware
	// Rate limit: 10 requests per second with a burst of 5
	rateLimiter := mw.RateLimiter(rate.Limit(10), 5)

	// Cache: 30 second default expiration, cleaned up every minute. Status
	// records change constantly, so reads are kept short-lived.
	cacheStore := cache.New(30*time.Second, time.Minute)
	caching := mw.Cache(cacheStore, 30*time.Second)

	// API group
	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		// POST /api/updates and /api/updates/batch
		api.POST("/updates", handler.PostUpdate)
		api.POST("/updates/batch", handler.PostBatch)

		// GET /api/machines
		api.GET("/machines", caching, GetMachines(s))
		api.GET("/machines/:code", caching, GetMachine(s))

		// GET /api/safety/areas and the per-area incident log
		api.GET("/safety/areas", caching, GetSafetyAreas(s))
		api.GET("/safety/areas/:name/logs", caching, GetSafetyLogs(s))
		api.POST("/safety/logs", handler.PostSafetyLog)

		// GET /api/orders
		api.GET("/orders", caching, GetOrders(s))
		api.GET("/orders/:code", caching, GetOrder(s))

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
