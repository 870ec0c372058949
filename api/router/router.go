package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"blog-api/api/handlers"
	"blog-api/api/middleware"
	_ "blog-api/docs"
	"blog-api/services"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Posts  *services.PostService
	Health handlers.Pinger
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestTrace())

	// Health check
	if deps.Health != nil {
		r.GET("/health", handlers.HealthHandler(deps.Health))
	}

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	posts := r.Group("/posts")
	{
		posts.GET("", handlers.ListPostsHandler(deps.Posts))
		posts.GET("/:id", handlers.GetPostHandler(deps.Posts))
		posts.POST("", handlers.CreatePostHandler(deps.Posts))
		posts.PUT("/:id", handlers.UpdatePostHandler(deps.Posts))
		posts.DELETE("/:id", handlers.DeletePostHandler(deps.Posts))
	}

	return r
}

// WithCORS wraps h with a CORS policy allowing the given origins.
// An empty list or "*" allows any origin.
func WithCORS(h http.Handler, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", middleware.HeaderRequestID},
		ExposedHeaders: []string{middleware.HeaderRequestID},
	})
	return c.Handler(h)
}
