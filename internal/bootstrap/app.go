package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"docrepo-backend/internal/auth"
	"docrepo-backend/internal/documents"
	"docrepo-backend/internal/shared/config"
	"docrepo-backend/internal/shared/server"
	"docrepo-backend/internal/shared/storage/db"
	"docrepo-backend/internal/shared/storage/object"
	localstore "docrepo-backend/internal/shared/storage/object/local"
	"docrepo-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	DocumentsRepo    documents.Repo
	UsersRepo        users.Repo
	DocumentsService *documents.Service
	UsersService     *users.Service
	DocumentsHandler *documents.Handler
	UsersHandler     *users.Handler
	AuthHandler      *auth.Handler
}

// Build prepares shared dependencies and wires the router. The schema migration
// runs to completion here, before any request can reach a handler.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := localstore.New(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}

	if sqlDB != nil {
		app.DocumentsRepo = &documents.SQLiteRepo{DB: sqlDB}
		app.UsersRepo = &users.SQLiteRepo{DB: sqlDB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.DocumentsService = documents.NewService(store, app.DocumentsRepo)
	app.UsersService = users.NewService(app.UsersRepo)

	if err := app.UsersService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, err
	}

	app.DocumentsHandler = documents.NewHandler(app.DocumentsService, cfg.MaxUploadBytes)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.AuthHandler = auth.NewHandler(app.UsersService, cfg.JWTSecret)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		AuthHandler:  app.AuthHandler,
		DocHandler:   app.DocumentsHandler,
		UsersHandler: app.UsersHandler,
	})

	return app, nil
}

// Close releases shared resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabasePath) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_PATH empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_PATH is required")
	}

	sqlDB, err := db.Open(ctx, cfg.DatabasePath, db.DefaultOptions())
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database open failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.Migrate(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
