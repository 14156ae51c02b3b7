package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"nurture-backend/internal/assessments"
	googleauth "nurture-backend/internal/auth"
	"nurture-backend/internal/chatbot"
	"nurture-backend/internal/dashboard"
	"nurture-backend/internal/forum"
	"nurture-backend/internal/games"
	"nurture-backend/internal/progress"
	"nurture-backend/internal/services/health"
	"nurture-backend/internal/shared/config"
	"nurture-backend/internal/shared/server"
	"nurture-backend/internal/shared/storage/db"
	"nurture-backend/internal/shared/storage/object"
	localstore "nurture-backend/internal/shared/storage/object/local"
	s3store "nurture-backend/internal/shared/storage/object/s3"
	"nurture-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Cron   *cron.Cron

	UsersService       *users.Service
	AssessmentsService *assessments.Service
	ChatbotService     *chatbot.Service
	GamesService       *games.Service
	ForumService       *forum.Service
	ProgressService    *progress.Service
	DashboardService   *dashboard.Service
	Rollup             *progress.Rollup
	GoogleAuth         *googleauth.GoogleService
}

type repos struct {
	users       users.Repo
	assessments assessments.Repo
	chatbot     chatbot.Repo
	games       games.Repo
	forum       forum.Repo
	progress    progress.Repo
}

// Build prepares shared dependencies and the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	bank, err := loadBank(cfg)
	if err != nil {
		return nil, err
	}
	kb, err := loadKnowledgeBase(cfg)
	if err != nil {
		return nil, err
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
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Cron:   cron.New(cron.WithLocation(time.UTC)),
	}
	if err := buildServices(app, bank, kb); err != nil {
		return nil, err
	}
	return app, nil
}

// Close stops scheduled jobs and releases the database pool.
func (a *App) Close() {
	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

func loadBank(cfg config.Config) (assessments.Bank, error) {
	if path := strings.TrimSpace(cfg.QuestionBankFile); path != "" {
		return assessments.LoadBank(path)
	}
	return assessments.DefaultBank()
}

func loadKnowledgeBase(cfg config.Config) (chatbot.KnowledgeBase, error) {
	if path := strings.TrimSpace(cfg.KnowledgeBaseFile); path != "" {
		return chatbot.LoadKnowledgeBase(path)
	}
	return chatbot.DefaultKnowledgeBase()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if cfg.IsDevLike() {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
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

func buildRepos(sqlDB *sql.DB) repos {
	if sqlDB != nil {
		return repos{
			users:       &users.PGRepo{DB: sqlDB},
			assessments: &assessments.PGRepo{DB: sqlDB},
			chatbot:     &chatbot.PGRepo{DB: sqlDB},
			games:       &games.PGRepo{DB: sqlDB},
			forum:       &forum.PGRepo{DB: sqlDB},
			progress:    &progress.PGRepo{DB: sqlDB},
		}
	}
	return repos{
		users:       users.NewMemoryRepo(),
		assessments: assessments.NewMemoryRepo(),
		chatbot:     chatbot.NewMemoryRepo(),
		games:       games.NewMemoryRepo(),
		forum:       forum.NewMemoryRepo(),
		progress:    progress.NewMemoryRepo(),
	}
}

func buildServices(app *App, bank assessments.Bank, kb chatbot.KnowledgeBase) error {
	r := buildRepos(app.DB)

	app.UsersService = users.NewService(r.users, app.Store, app.Config.JWTTTL)
	app.AssessmentsService = assessments.NewService(r.assessments, bank)
	app.ChatbotService = chatbot.NewService(r.chatbot, kb)
	app.GamesService = games.NewService(r.games)
	app.ForumService = forum.NewService(r.forum)
	app.ProgressService = progress.NewService(r.progress)
	app.DashboardService = dashboard.NewService(app.AssessmentsService, app.GamesService, app.ProgressService)
	app.Rollup = progress.NewRollup(r.games, r.progress)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)

	if _, err := app.Rollup.Schedule(app.Cron, app.Config.ProgressRollupSpec); err != nil {
		return fmt.Errorf("schedule progress rollup %q: %w", app.Config.ProgressRollupSpec, err)
	}

	var pinger health.Pinger
	if app.DB != nil {
		pinger = app.DB
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		Health:            health.NewService(pinger),
		UserHandler:       users.NewHandler(app.UsersService),
		GoogleAuth:        app.GoogleAuth,
		AssessmentHandler: assessments.NewHandler(app.AssessmentsService),
		ChatbotHandler:    chatbot.NewHandler(app.ChatbotService),
		GameHandler:       games.NewHandler(app.GamesService),
		ForumHandler:      forum.NewHandler(app.ForumService),
		ProgressHandler:   progress.NewHandler(app.ProgressService),
		DashboardHandler:  dashboard.NewHandler(app.DashboardService),
	})
	if app.Router == nil {
		return errors.New("failed to initialize router")
	}
	return nil
}
