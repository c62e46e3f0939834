package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/devister/devister/docs"
	"github.com/devister/devister/internal/cleanup"
	"github.com/devister/devister/internal/events"
	"github.com/devister/devister/internal/handlers"
	"github.com/devister/devister/internal/images"
	"github.com/devister/devister/internal/jwt"
	"github.com/devister/devister/internal/logger"
	"github.com/devister/devister/internal/mailer"
	"github.com/devister/devister/internal/middlewares"
	"github.com/devister/devister/internal/migrations"
	"github.com/devister/devister/internal/repositories"
	"github.com/devister/devister/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title Devister API
// @version 1.0.0
// @description Social posting backend: accounts with email verification, posts, comments, categories
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// config holds all application, database, redis, SMTP, S3, Kafka, JWT and
// policy configuration.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PgHost         string
	PgPort         int
	PgUser         string
	PgPassword     string
	PgDB           string
	PgMaxOpenConns int
	PgMaxIdleConns int

	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string

	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3BaseURL   string

	KafkaBrokers string
	KafkaTopic   string

	JWTSecretKey string
	JWTExpSecond int

	ClientDomain         string
	ResetImpliesVerified bool

	RateLimit             int64
	RateLimitWindowSecond int
	CleanupIntervalSecond int
}

// parseConfig loads environment variables from a file and returns the
// application configuration, falling back to defaults for unset keys.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PgUser = getEnv("POSTGRES_USER", "user")
	cfg.PgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PgDB = getEnv("POSTGRES_DB", "database")
	if cfg.PgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if cfg.PgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if cfg.PgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	if cfg.RedisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")

	// SMTP config
	cfg.SMTPHost = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.SMTPPort = getEnv("SMTP_PORT", "465")
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPassword = getEnv("SMTP_PASSWORD", "")

	// S3 image host config
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	cfg.S3SecretKey = getEnv("S3_SECRET_KEY", "")
	cfg.S3Bucket = getEnv("S3_BUCKET", "devister")
	cfg.S3BaseURL = getEnv("S3_BASE_URL", "http://localhost:9000/devister")

	// Kafka config
	cfg.KafkaBrokers = getEnv("KAFKA_BROKERS", "localhost:9092")
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "devister.events")

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "259200")); err != nil {
		return
	}

	// Verification policy config
	cfg.ClientDomain = getEnv("CLIENT_DOMAIN", "localhost:3000")
	if cfg.ResetImpliesVerified, err = strconv.ParseBool(getEnv("RESET_IMPLIES_VERIFIED", "true")); err != nil {
		return
	}

	// Rate limiting and cleanup config
	if cfg.RateLimit, err = strconv.ParseInt(getEnv("RATE_LIMIT", "100"), 10, 64); err != nil {
		return
	}
	if cfg.RateLimitWindowSecond, err = strconv.Atoi(getEnv("RATE_LIMIT_WINDOW_SECOND", "60")); err != nil {
		return
	}
	if cfg.CleanupIntervalSecond, err = strconv.Atoi(getEnv("CLEANUP_INTERVAL_SECOND", "300")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, redis, image host, mailer, Kafka
// publisher and HTTP server. It applies migrations, sets up routes and
// middleware, starts the cleanup worker and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PgUser, cfg.PgPassword, cfg.PgHost, cfg.PgPort, cfg.PgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", cfg.PgHost, cfg.PgPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PgMaxOpenConns)
	db.SetMaxIdleConns(cfg.PgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	// Apply migrations
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		logger.Log.Errorw("migrations failed", "error", err)
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "error", err)
		return err
	}
	defer rdb.Close()

	// Connect to the image host
	imageStore, err := images.New(ctx,
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3BaseURL,
	)
	if err != nil {
		logger.Log.Errorw("image host setup failed", "error", err)
		return err
	}

	// Initialize mailer and event publisher
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	publisher := events.New(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic)
	defer publisher.Close()

	// Initialize JWT service
	tokener := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	tokenReadRepo := repositories.NewTokenReadRepository(db)
	tokenWriteRepo := repositories.NewTokenWriteRepository(db)
	postReadRepo := repositories.NewPostReadRepository(db)
	postWriteRepo := repositories.NewPostWriteRepository(db)
	commentReadRepo := repositories.NewCommentReadRepository(db)
	commentWriteRepo := repositories.NewCommentWriteRepository(db)
	categoryReadRepo := repositories.NewCategoryReadRepository(db)
	categoryWriteRepo := repositories.NewCategoryWriteRepository(db)

	// Start the image cleanup worker
	queue := cleanup.NewQueue(rdb, imageStore)
	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go queue.Run(cleanupCtx, time.Duration(cfg.CleanupIntervalSecond)*time.Second)

	// Initialize services
	verificationService := services.NewVerificationService(
		tokenReadRepo, tokenWriteRepo, userReadRepo, userWriteRepo, mail,
		cfg.ClientDomain, cfg.ResetImpliesVerified,
	)
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokener, verificationService, publisher)
	userService := services.NewUserService(userReadRepo, userWriteRepo, postReadRepo, imageStore, queue, publisher)
	postService := services.NewPostService(postReadRepo, postWriteRepo, commentReadRepo, imageStore, queue, publisher)
	commentService := services.NewCommentService(commentReadRepo, commentWriteRepo, userReadRepo, postReadRepo)
	categoryService := services.NewCategoryService(categoryReadRepo, categoryWriteRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.RateLimitMiddleware(rdb, cfg.RateLimit, time.Duration(cfg.RateLimitWindowSecond)*time.Second))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", handlers.NewRegisterHandler(authService))
		r.Post("/auth/login", handlers.NewLoginHandler(authService))

		r.Get("/users/{userId}/verify/{token}", handlers.NewVerifyEmailHandler(verificationService))

		r.Post("/password/reset-password-link", handlers.NewResetPasswordLinkHandler(verificationService))
		r.Get("/password/reset-password/{userId}/{token}", handlers.NewCheckResetLinkHandler(verificationService))
		r.Post("/password/reset-password/{userId}/{token}", handlers.NewResetPasswordHandler(verificationService))

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokener))

			r.With(middlewares.AdminOnlyMiddleware()).Get("/users/profile", handlers.NewListUsersHandler(userService))
			r.Get("/users/profile/{id}", handlers.NewGetUserHandler(userService))
			r.With(middlewares.SelfOnlyMiddleware()).Put("/users/profile/{id}", handlers.NewUpdateUserHandler(userService))
			r.With(middlewares.SelfOrAdminMiddleware()).Delete("/users/profile/{id}", handlers.NewDeleteUserHandler(userService))
			r.With(middlewares.AdminOnlyMiddleware()).Get("/users/count", handlers.NewUserCountHandler(userService))
			r.Get("/users/random", handlers.NewRandomUsersHandler(userService))
			r.Post("/users/profile-photo-upload", handlers.NewProfilePhotoUploadHandler(userService))
			r.Put("/users/follow/{id}", handlers.NewToggleFollowHandler(userService))

			r.Post("/posts", handlers.NewCreatePostHandler(postService))
			r.Get("/posts", handlers.NewListPostsHandler(postService))
			r.Get("/posts/count", handlers.NewPostCountHandler(postService))
			r.Get("/posts/{id}", handlers.NewGetPostHandler(postService))
			r.Put("/posts/{id}", handlers.NewUpdatePostHandler(postService))
			r.Delete("/posts/{id}", handlers.NewDeletePostHandler(postService))
			r.Put("/posts/upload-image/{id}", handlers.NewPostImageUploadHandler(postService))
			r.Put("/posts/like/{id}", handlers.NewToggleLikeHandler(postService))

			r.Post("/comments", handlers.NewCreateCommentHandler(commentService))
			r.With(middlewares.AdminOnlyMiddleware()).Get("/comments", handlers.NewListCommentsHandler(commentService))
			r.Put("/comments/{id}", handlers.NewUpdateCommentHandler(commentService))
			r.Delete("/comments/{id}", handlers.NewDeleteCommentHandler(commentService))

			r.With(middlewares.AdminOnlyMiddleware()).Post("/categories", handlers.NewCreateCategoryHandler(categoryService))
			r.Get("/categories", handlers.NewListCategoriesHandler(categoryService))
			r.With(middlewares.AdminOnlyMiddleware()).Delete("/categories/{id}", handlers.NewDeleteCategoryHandler(categoryService))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
