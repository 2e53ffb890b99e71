package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tripmarket/internal/config"
	h "tripmarket/internal/http/handlers"
	"tripmarket/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authRequired := middleware.RequireUser([]byte(env.JWTSecret))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Trip requests
		api.GET("/trip-requests", authRequired, h.GetTripRequests)

		// Offers
		offers := api.Group("/offers")
		offers.POST("/filter", h.FilterOffers)
		offers.POST("/compare", h.CompareOffers)
		offers.GET("/compare/pdf", h.ComparisonPDF)
		offers.GET("/:id", h.GetOffer)
		offers.GET("/:id/counters", h.ListCounterOffers)
		offers.POST("/:id/accept", authRequired, h.AcceptOffer)
		offers.POST("/:id/reject", authRequired, h.RejectOffer)
		offers.POST("/:id/counter", authRequired, h.SubmitCounteroffer)
		offers.POST("/:id/save", authRequired, h.SaveOffer)
		offers.POST("/:id/share", authRequired, h.ShareOffer)

		// Saved offers
		api.GET("/saved-offers", authRequired, h.GetSavedOffers)
	}

	return r
}
