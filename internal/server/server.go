package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/config"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/entity"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/jobs"
	"github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/middleware"

	adminHttp "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/admin/delivery/http"

	commentHttp "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/comment/delivery/http"
	commentRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/comment/repository"
	commentService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/comment/service"

	jokeHttp "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/delivery/http"
	jokeRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/repository"
	jokeService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/joke/service"

	likeHttp "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/like/delivery/http"
	likeRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/like/repository"
	likeService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/like/service"

	searchService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/search/service"

	sessionRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/session/repository"
	sessionService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/session/service"

	userHttp "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/delivery/http"
	userRepo "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/repository"
	userService "github.com/ZIT-Software-Development-Org/alvin-joke-dairy/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	scheduler   *jobs.Scheduler
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
	log         zerolog.Logger
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log zerolog.Logger) (*Server, error) {
	if cfg.Session.Store == "redis" && redisClient == nil {
		return nil, errors.New("redis session store selected but redis is not connected")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepository := userRepo.NewUserRepository(db)
	userSvc := userService.NewUserService(userRepository, cfg.Auth.BcryptCost)

	var sessionRepository sessionRepo.SessionRepository
	if cfg.Session.Store == "redis" {
		sessionRepository = sessionRepo.NewRedisSessionRepository(redisClient)
	} else {
		sessionRepository = sessionRepo.NewSessionRepository(db)
	}

	sessionSvc, err := sessionService.NewSessionService(sessionRepository, userRepository, sessionService.Options{
		Secret:     cfg.Session.Secret,
		TTL:        cfg.Session.TTL,
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		return nil, err
	}

	authHandler := userHttp.NewAuthHandler(userSvc, sessionSvc, userHttp.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.IsProduction(),
		TTL:    cfg.Session.TTL,
	})
	adminHandler := adminHttp.NewAdminHandler(userSvc)

	meiliSvc := searchService.NewMeiliSearchService(cfg.MeiliSearch.Host, cfg.MeiliSearch.APIKey, log)

	jokeRepository := jokeRepo.NewJokeRepository(db)
	jokeSvc := jokeService.NewJokeService(jokeRepository, meiliSvc, log)
	jokeHandler := jokeHttp.NewJokeHandler(jokeSvc)

	commentRepository := commentRepo.NewCommentRepository(db)
	commentSvc := commentService.NewCommentService(commentRepository, jokeRepository)
	commentHandler := commentHttp.NewCommentHandler(commentSvc)

	likeRepository := likeRepo.NewLikeRepository(db)
	likeSvc := likeService.NewLikeService(likeRepository, jokeRepository, log)
	likeHandler := likeHttp.NewLikeHandler(likeSvc)

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log, "/health"))
	router.Use(middleware.Recovery(log))
	setupCORS(router, cfg.AllowedOrigins)

	s := &Server{
		engine:      router,
		scheduler:   jobs.NewScheduler(sessionSvc, cfg.Session.PurgeSchedule, log),
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
		log:         log,
	}

	router.GET("/health", s.health)

	authMiddleware := middleware.NewAuthMiddleware(sessionSvc, cfg.Session.CookieName)

	api := router.Group("/api")
	api.Use(middleware.StoreDeadline(cfg.DB.AcquireTimeout))

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/session", authMiddleware.RequireAuth(), authHandler.Session)
	}

	// Public routes
	api.GET("/jokes", jokeHandler.ListJokes)
	api.GET("/jokes/search", jokeHandler.SearchJokes)
	api.GET("/jokes/:id", jokeHandler.GetJoke)
	api.GET("/jokes/:id/comments", commentHandler.ListComments)
	api.POST("/jokes/:id/share", likeHandler.Share)

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireRole(entity.RoleAdmin))
		{
			adminGroup.GET("/users", adminHandler.GetAllUsers)
		}

		protected.POST("/new-joke", jokeHandler.CreateJoke)
		protected.PUT("/jokes/:id", jokeHandler.UpdateJoke)
		protected.DELETE("/jokes/:id", jokeHandler.DeleteJoke)

		protected.POST("/jokes/:id/comments", commentHandler.CreateComment)
		protected.DELETE("/comments/:id", commentHandler.DeleteComment)

		protected.POST("/jokes/:id/like", likeHandler.Like)
		protected.DELETE("/jokes/:id/like", likeHandler.Unlike)
		protected.GET("/jokes/:id/like", likeHandler.CheckLiked)
	}

	return s, nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts background jobs and blocks serving HTTP until Shutdown is called.
func (s *Server) Run(addr string) error {
	if err := s.scheduler.Start(); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.log.Info().Str("addr", addr).Str("env", s.cfg.AppEnv).Msg("http server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	select {
	case <-s.scheduler.Stop().Done():
	case <-ctx.Done():
	}

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func setupCORS(router *gin.Engine, origins []string) {
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
