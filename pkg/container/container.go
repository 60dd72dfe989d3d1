package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"bookstore-web/internal/config"
	infraCache "bookstore-web/internal/infrastructure/cache"
	"bookstore-web/internal/infrastructure/database"
	"bookstore-web/internal/infrastructure/storage"
	"bookstore-web/pkg/cache"
	"bookstore-web/pkg/jwt"
	"bookstore-web/pkg/logger"

	bookHandler "bookstore-web/internal/domains/book/handler"
	bookRepo "bookstore-web/internal/domains/book/repository"
	bookService "bookstore-web/internal/domains/book/service"
	userHandler "bookstore-web/internal/domains/user/handler"
	userRepo "bookstore-web/internal/domains/user/repository"
	userService "bookstore-web/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application. It is the root
// of the dependency graph; everything inside is a singleton built once
// at startup.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	JWTManager *jwt.Manager

	// Repositories
	BookRepo bookRepo.RepositoryInterface
	UserRepo userRepo.RepositoryInterface

	// Services
	CatalogService bookService.CatalogServiceInterface
	AdminService   bookService.AdminServiceInterface
	AuthService    userService.AuthServiceInterface

	// Handlers
	CatalogHandler *bookHandler.CatalogHandler
	AdminHandler   *bookHandler.AdminHandler
	AuthHandler    *userHandler.AuthHandler
}

// NewContainer builds the full dependency graph, in order:
// config → infrastructure → repositories → services → handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Ping(context.Background()); err != nil {
		// Sessions live in Redis, so a dead cache means nobody can
		// sign in. Fail fast instead of limping along.
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache
	log.Println("✅ Redis connected")

	// ========================================
	// STEP 4: INITIALIZE OBJECT STORAGE
	// ========================================
	log.Println("🪣 Connecting to MinIO...")

	covers, err := storage.NewMinIOStorage(cfg.MinIO, cfg.Admin.CoverPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	c.Storage = covers
	log.Println("✅ Storage ready")

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	// ========================================
	// STEP 5: REPOSITORIES → SERVICES → HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.BookRepo = bookRepo.NewPostgresRepository(pool)
	c.UserRepo = userRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.CatalogService = bookService.NewCatalogService(c.BookRepo)
	c.AdminService = bookService.NewAdminService(
		c.BookRepo,
		c.Storage,
		c.Config.Admin.SupportsImageUpload,
	)
	c.AuthService = userService.NewAuthService(
		c.UserRepo,
		c.JWTManager,
		c.Cache,
		time.Duration(c.Config.JWT.SessionExpiry)*time.Hour,
	)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = bookHandler.NewCatalogHandler(c.BookRepo, c.CatalogService)
	c.AdminHandler = bookHandler.NewAdminHandler(c.AdminService)
	c.AuthHandler = userHandler.NewAuthHandler(c.AuthService)
}

// Cleanup releases infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container...")

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close redis: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("✅ Container cleaned up")
}
