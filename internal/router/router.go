package router

import (
	"net/http"
	"time"

	"hootline/internal/config"
	"hootline/internal/detail"
	"hootline/internal/handlers"
	"hootline/internal/middleware"
	"hootline/internal/services"
	"hootline/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// New builds the engine with sessions, templates and every route.
func New(cfg *config.Config, svc services.HootService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Browser clients of the JSON API live on other origins
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "HX-Request"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 7 * 24 * 3600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("hootline_session", store))

	r.HTMLRender = web.Renderer()

	r.Use(middleware.Visitor())
	r.Use(middleware.LoadUser([]byte(cfg.JWTSecret)))

	RegisterRoutes(r, cfg, svc)
	return r
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, svc services.HootService) {
	views := detail.NewRegistry(cfg.ViewCacheSize, cfg.ViewTTL)
	hootHandler := handlers.NewHootHandler(svc, views)
	sessionHandler := handlers.NewSessionHandler([]byte(cfg.JWTSecret))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/hoots")
	})

	// Public Routes
	r.GET("/hoots", hootHandler.List)         // hoot list
	r.GET("/hoots/:id", hootHandler.Detail)   // hoot detail, fetches on every visit
	r.POST("/session", sessionHandler.Create) // store an API-issued token
	r.GET("/logout", sessionHandler.Logout)   // drop the token

	// Protected Routes
	authorized := r.Group("/hoots")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/:id/comments", hootHandler.CreateComment)
		authorized.POST("/:id/comments/:commentId/delete", hootHandler.DeleteComment)
		authorized.DELETE("/:id/comments/:commentId", hootHandler.DeleteComment)
		authorized.POST("/:id/delete", hootHandler.Delete)
		authorized.DELETE("/:id", hootHandler.Delete)
	}

	// JSON API
	api := r.Group("/api")
	{
		api.GET("/hoots", hootHandler.ListJSON)
		api.GET("/hoots/:id", hootHandler.DetailJSON)

		protected := api.Group("/hoots")
		protected.Use(middleware.AuthRequired())
		protected.POST("/:id/comments", hootHandler.CreateCommentJSON)
		protected.DELETE("/:id/comments/:commentId", hootHandler.DeleteCommentJSON)
		protected.DELETE("/:id", hootHandler.DeleteJSON)
	}
}
