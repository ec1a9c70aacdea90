package http

import (
	"context"
	"time"

	"github.com/dkrasnove/bloghub/internal/auth"
	"github.com/dkrasnove/bloghub/internal/blogs"
	"github.com/dkrasnove/bloghub/internal/config"
	"github.com/dkrasnove/bloghub/internal/http/handlers"
	"github.com/dkrasnove/bloghub/internal/http/middlewares"
	"github.com/dkrasnove/bloghub/internal/observability"
	"github.com/dkrasnove/bloghub/internal/posts"
	"github.com/dkrasnove/bloghub/internal/repo/postgres"
	"github.com/dkrasnove/bloghub/internal/security"
	"github.com/dkrasnove/bloghub/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func NewRouter(cfg config.Config, pool *pgxpool.Pool, reg *prometheus.Registry, prom *observability.Prom) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("bloghub"))

	if prom != nil {
		r.Use(prom.GinHandleMiddleware())
	}

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if reg != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	blogsRepo := postgres.NewBlogsRepo(pool, prom)
	postsRepo := postgres.NewPostsRepo(pool, prom)

	// core services, assembled once with explicit collaborators
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	usersService := users.NewService(usersRepo, hasher, tokens)
	blogsService := blogs.NewService(blogsRepo)
	postsService := posts.NewService(postsRepo, blogsService)

	// handlers
	authHandler := handlers.NewAuthHandler(usersService, usersService)
	usersHandler := handlers.NewUsersHandler(usersService)
	blogsHandler := handlers.NewBlogsHandler(blogsService)
	postsHandler := handlers.NewPostsHandler(postsService)

	authMW := middlewares.NewAuthMiddleware(tokens)

	// public routes
	r.POST("/auth/signup", authHandler.SignUp)
	r.POST("/auth/login", authHandler.Login)

	r.GET("/users/:username", usersHandler.FindByUsername)

	r.GET("/blogs", blogsHandler.ListBlogs)
	r.GET("/blogs/:id", blogsHandler.GetBlogByID)
	r.GET("/blogs/:id/posts", postsHandler.ListPostsByBlog)
	r.GET("/owners/:id/blog", blogsHandler.GetBlogByOwner)
	r.GET("/posts/:id", postsHandler.GetPostByID)

	// protected routes
	protected := r.Group("/", authMW.RequireAuth())

	protected.POST("/blogs", blogsHandler.CreateBlog)
	protected.PUT("/blogs/:id", blogsHandler.UpdateBlog)
	protected.DELETE("/blogs/:id", blogsHandler.RemoveBlog)

	protected.POST("/posts", postsHandler.CreatePost)
	protected.PUT("/posts/:id", postsHandler.UpdatePost)
	protected.DELETE("/posts/:id", postsHandler.RemovePost)

	protected.PUT("/users/:id", usersHandler.UpdateUser)
	protected.DELETE("/users/:id", usersHandler.RemoveUser)

	return r
}
