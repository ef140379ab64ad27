package entrypoint

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marhild/booksmanager/internal/config"
	"github.com/marhild/booksmanager/internal/database"
	"github.com/marhild/booksmanager/internal/database/authors"
	"github.com/marhild/booksmanager/internal/database/books"
	"github.com/marhild/booksmanager/internal/database/categories"
	http_controllers "github.com/marhild/booksmanager/internal/http"
	"github.com/marhild/booksmanager/internal/scheduler"
	"github.com/marhild/booksmanager/internal/services"
	"github.com/marhild/booksmanager/internal/session"
	"github.com/marhild/booksmanager/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down with
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting booksmanager v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to access underlying database: %v", err)
	}

	sessions, err := session.NewManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	csrfSecret := []byte(cfg.Session.CSRFSecret)
	if len(csrfSecret) == 0 {
		csrfSecret = make([]byte, 32)
		if _, err := rand.Read(csrfSecret); err != nil {
			log.Fatalf("Failed to generate CSRF secret: %v", err)
		}
		log.Printf("CSRF_SECRET not set, generated an ephemeral one (forms break across restarts)")
	}

	authorService := services.NewAuthorService(authors.NewRepository(db.DB))
	bookService := services.NewBookService(books.NewRepository(db.DB))
	categoryService := services.NewCategoryService(categories.NewRepository(db.DB))

	// Background maintenance: the orphan-association sweep
	taskClient, err := tasks.NewClient(cfg.Database.Path, cfg.Tasks)
	if err != nil {
		log.Fatalf("Failed to initialize task queue: %v", err)
	}
	taskClient.Register(tasks.NewSweepOrphanAssociationsQueue(db))

	taskCtx, cancelTasks := context.WithCancel(context.Background())
	defer cancelTasks()
	go taskClient.Start(taskCtx)

	cleanupScheduler := scheduler.NewCleanupScheduler(taskClient, cfg.Cleanup)
	if err := cleanupScheduler.Start(); err != nil {
		log.Fatalf("Failed to start cleanup scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:      db,
		Authors:       authorService,
		Books:         bookService,
		Categories:    categoryService,
		Sessions:      sessions,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Session.SecureCookies,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		Version:       version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		cleanupScheduler.Stop()
		taskClient.Stop(ctx)
		if err := taskClient.Close(); err != nil {
			log.Printf("Error closing task queue: %v", err)
		}
	})
}
