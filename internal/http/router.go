package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/mthstanley/stockpot/internal/http/handlers"
	httpMW "github.com/mthstanley/stockpot/internal/http/middleware"
	"github.com/mthstanley/stockpot/internal/observability"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
	RecipeHandler  *httpH.RecipeHandler
	HealthHandler  *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(observability.ServiceName(observability.OtelConfig{ServiceName: cfg.ServiceName})))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	requireAuth := func(c *gin.Context) { c.Next() }
	requireBasic := requireAuth
	if cfg.AuthMiddleware != nil {
		requireAuth = cfg.AuthMiddleware.RequireAuth()
		requireBasic = cfg.AuthMiddleware.RequireBasic()
	}

	// Users
	if cfg.UserHandler != nil {
		r.POST("/user", cfg.UserHandler.CreateUser)
		r.GET("/user/auth", requireAuth, cfg.UserHandler.GetAuthUser)
		r.POST("/user/token", requireBasic, cfg.UserHandler.CreateToken)
		r.GET("/user/:id", cfg.UserHandler.GetUser)
	}

	// Recipes
	if cfg.RecipeHandler != nil {
		r.GET("/recipe", cfg.RecipeHandler.ListRecipes)
		r.GET("/recipe/:id", cfg.RecipeHandler.GetRecipe)
		r.POST("/recipe", requireAuth, cfg.RecipeHandler.CreateRecipe)
		r.POST("/recipe/:id", requireAuth, cfg.RecipeHandler.UpdateRecipe)
		r.DELETE("/recipe/:id", requireAuth, cfg.RecipeHandler.DeleteRecipe)
	}

	return r
}
