package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photoshare-backend/internal/cache"
	"photoshare-backend/internal/db"
	"photoshare-backend/internal/filters"
	"photoshare-backend/internal/handlers"
	"photoshare-backend/internal/repository"
	"photoshare-backend/internal/services"
	"photoshare-backend/internal/storage"
	"photoshare-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// cacheAdapter narrows *cache.Cache to the connection-factory interface
// the photo service consumes.
type cacheAdapter struct {
	*cache.Cache
}

func (a cacheAdapter) Acquire() services.CacheConn {
	return a.Cache.Acquire()
}

// New builds the fiber app with all routes wired to the given services.
// Split out from Run so tests can exercise the full HTTP surface.
func New(userService *services.UserService, photoService *services.PhotoService) *fiber.App {
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// Routes
	api := app.Group("/api")

	// Public Routes
	api.Post("/users", handlers.RegisterHandler(userService))
	api.Post("/users/signIn", handlers.LoginHandler(userService))

	// Protected Routes
	photos := api.Group("/photos")
	photos.Use(handlers.AuthMiddleware)
	photos.Get("/", handlers.ListPhotosHandler(photoService))
	photos.Post("/", handlers.CreatePhotoHandler(photoService))
	photos.Delete("/:id", handlers.DeletePhotoHandler(photoService))
	photos.Post("/:id/filter", handlers.ApplyFilterHandler(photoService))

	// Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return app
}

func Run() {
	// Load Env
	if err := utils.LoadEnv(); err != nil {
		log.Println("Warning: .env file not found")
	}

	ctx := context.Background()

	// Init DB
	connString := utils.GetEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + utils.GetEnv("POSTGRES_USER", "postgres") + ":" +
			utils.GetEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			utils.GetEnv("POSTGRES_HOST", "localhost") + ":" +
			utils.GetEnv("POSTGRES_PORT", "5432") + "/" +
			utils.GetEnv("POSTGRES_DB", "photosdb") + "?sslmode=disable"
	}

	pool, err := db.Connect(ctx, connString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Init object storage
	store, err := storage.NewMinioStorage(storage.Config{
		Endpoint:  utils.GetEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: utils.GetEnv("MINIO_ROOT_USER", "minioadmin"),
		SecretKey: utils.GetEnv("MINIO_ROOT_PASSWORD", "minioadmin"),
		UseSSL:    utils.GetEnvBool("MINIO_USE_SSL", false),
		Bucket:    utils.GetEnv("MINIO_BUCKET", "photos"),
	})
	if err != nil {
		log.Fatalf("Failed to create storage client: %v", err)
	}
	if err := store.Init(ctx); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	log.Println("Object storage ready")

	// Init filter cache
	cacheTTL := time.Duration(utils.GetEnvInt("REDIS_DEFAULT_EXPIRATION", 3600)) * time.Second
	filterCache := cache.NewCache(
		utils.GetEnv("REDIS_HOST", "localhost")+":"+utils.GetEnv("REDIS_PORT", "6379"),
		utils.GetEnv("REDIS_PASSWORD", ""),
		utils.GetEnvInt("REDIS_DB", 0),
		cacheTTL,
	)
	defer filterCache.Close()
	if _, err := filterCache.Ping(); err != nil {
		log.Printf("Warning: redis not reachable: %v", err)
	} else {
		log.Println("Connected to Redis")
	}

	// Repositories and services
	userRepo := repository.NewPostgresUserRepository(pool)
	photoRepo := repository.NewPostgresPhotoRepository(pool)
	userService := services.NewUserService(userRepo)
	photoService := services.NewPhotoService(photoRepo, store, cacheAdapter{filterCache}, filters.Apply)

	app := New(userService, photoService)

	// Start Server
	port := utils.GetEnv("PORT", "3001")
	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Graceful Shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Block until signal
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}
