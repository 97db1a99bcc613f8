package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-insight/internal/analyses"
	"resume-insight/internal/documents"
	"resume-insight/internal/knowledge"
	"resume-insight/internal/services/health"
	"resume-insight/internal/shared/config"
	"resume-insight/internal/shared/server"
	"resume-insight/internal/shared/storage/db"
	"resume-insight/internal/shared/storage/object"
	localstore "resume-insight/internal/shared/storage/object/local"
	s3store "resume-insight/internal/shared/storage/object/s3"
	"resume-insight/internal/skills"
)

// App holds shared dependencies wired for serving.
type App struct {
	Config           config.Config
	Router           *gin.Engine
	DB               *sql.DB
	Store            object.ObjectStore
	Catalog          *knowledge.Catalog
	Extractor        *skills.Extractor
	DocumentsRepo    documents.DocumentsRepo
	AnalysesRepo     analyses.Repo
	DocumentsService *documents.Service
	AnalysesService  *analyses.Service
	HealthService    *health.Service
	KnowledgeHandler *knowledge.Handler
	DocumentsHandler *documents.Handler
	AnalysesHandler  *analyses.Handler
}

// Build prepares every dependency and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	catalog, err := knowledge.Load()
	if err != nil {
		return nil, fmt.Errorf("load knowledge catalog: %w", err)
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Store:     store,
		Catalog:   catalog,
		Extractor: skills.NewExtractor(catalog),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           app.Config,
		Health:           app.HealthService,
		KnowledgeHandler: app.KnowledgeHandler,
		DocumentsHandler: app.DocumentsHandler,
		AnalysesHandler:  app.AnalysesHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	var docRepo documents.DocumentsRepo
	var analysisRepo analyses.Repo
	if app.DB != nil {
		docRepo = &documents.PGRepo{DB: app.DB}
		analysisRepo = &analyses.PGRepo{DB: app.DB}
	} else {
		docRepo = documents.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
	}

	docSvc := documents.NewService(app.Store, docRepo)

	analysisSvc := analyses.NewService(analysisRepo, app.Catalog, app.Extractor, docSvc)
	if app.Config.MinResumeChars > 0 {
		analysisSvc.MinResumeChars = app.Config.MinResumeChars
	}
	if app.Config.TopRoleMatches > 0 {
		analysisSvc.TopRoleMatches = app.Config.TopRoleMatches
	}

	var dbCheck func() error
	if app.DB != nil {
		database := app.DB
		dbCheck = func() error { return database.Ping() }
	}

	app.DocumentsRepo = docRepo
	app.AnalysesRepo = analysisRepo
	app.DocumentsService = docSvc
	app.AnalysesService = analysisSvc
	app.HealthService = health.NewService(app.Catalog, dbCheck)
	app.KnowledgeHandler = knowledge.NewHandler(app.Catalog)
	app.DocumentsHandler = documents.NewHandler(docSvc)
	app.AnalysesHandler = analyses.NewHandler(analysisSvc)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
