package main

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/idealmente/idealmente/internal/config"
	"github.com/idealmente/idealmente/internal/domain/fiber/handler"
	"github.com/idealmente/idealmente/internal/middleware"
	"github.com/idealmente/idealmente/internal/prefs"
	"github.com/idealmente/idealmente/internal/repository"
	"github.com/idealmente/idealmente/internal/service"
	"github.com/idealmente/idealmente/internal/usecase"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}
			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env != "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	hub := repository.NewHub()

	// Preferences always live in the local SQLite file, whichever
	// variant holds the collections.
	kv, err := repository.OpenKV(config.LoadStorageConfig().SQLitePath, hub)
	if err != nil {
		log.Fatal(err)
	}
	defer kv.Close()
	prefStore := prefs.NewStore(kv)

	store := selectStore(kv, hub)

	analysis := service.NewAnalysisService()
	ideaUC := usecase.NewIdeaUsecase(store, analysis)
	meetingUC := usecase.NewMeetingUsecase(store)
	reportUC := usecase.NewReportUsecase(store)

	handler.NewIdeaHandler(ideaUC, prefStore, config.LoadAnthropicConfig().APIKey).RegisterRoutes(app)
	handler.NewMeetingHandler(meetingUC).RegisterRoutes(app)
	handler.NewReportHandler(reportUC, prefStore).RegisterRoutes(app)
	handler.NewPrefsHandler(prefStore).RegisterRoutes(app)
	handler.NewLiveHandler(store).RegisterRoutes(app)

	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			log.Printf("Active goroutines: %d", runtime.NumGoroutine())
		}
	}()

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

// selectStore picks the persistence variant at composition time. The
// domain and handler layers never learn which one is active.
func selectStore(kv *repository.KVStore, hub *repository.Hub) repository.Store {
	cfg := config.LoadStorageConfig()
	switch cfg.Driver {
	case "postgres":
		store, err := repository.NewDocStore(connectDB(), hub)
		if err != nil {
			log.Fatal("document store init failed: ", err)
		}
		return store
	case "sqlite":
		return kv
	default:
		log.Fatalf("unknown STORAGE_DRIVER %q", cfg.Driver)
		return nil
	}
}

func connectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}
	return db
}
