package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/brokerz/brokerz-auth/internal/config"
	"github.com/brokerz/brokerz-auth/internal/http/handler"
	httpmiddleware "github.com/brokerz/brokerz-auth/internal/http/middleware"
	"github.com/brokerz/brokerz-auth/internal/middleware"
)

// NewRouter wires Gin routes and middleware.
func NewRouter(cfg config.Config, accountHandler *handler.AccountHandler, authMiddleware *httpmiddleware.Auth) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(nil))
	r.Use(middleware.CORS(cfg))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	api := r.Group("/api")
	{
		api.POST("/signup", accountHandler.Signup)
		api.POST("/login", accountHandler.Login)
		api.GET("/me", authMiddleware.OptionalAuth, accountHandler.Me)
	}

	return r
}
