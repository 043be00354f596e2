package app

import (
	"context"
	"learning_center_backend/internal/config"
	"learning_center_backend/internal/controller"
	"learning_center_backend/internal/middleware"
	"learning_center_backend/internal/repository"
	"learning_center_backend/internal/service"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/configwatcher"
	"learning_center_backend/pkg/database"
	"learning_center_backend/pkg/hashid"
	"learning_center_backend/pkg/logger"
	"learning_center_backend/pkg/monitoring"
	"learning_center_backend/pkg/security"
	"learning_center_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	configDir         = "configs"
	retentionInterval = time.Hour
	shutdownTimeout   = 5 * time.Second
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	Codec    *hashid.Codec
	services *services
	tracer   *sdktrace.TracerProvider

	// ctx lives as long as the app; background goroutines end with it.
	ctx  context.Context
	stop context.CancelFunc
}

type repositories struct {
	user    *repository.UserRepository
	group   *repository.GroupRepository
	lesson  *repository.LessonRepository
	exam    *repository.ExamRepository
	course  *repository.CourseRepository
	news    *repository.NewsRepository
	contact *repository.ContactRepository
	content *repository.SiteContentRepository
	stats   *repository.StatsLogRepository
}

type services struct {
	auth    *service.AuthService
	user    *service.UserService
	group   *service.GroupService
	lesson  *service.LessonService
	exam    *service.ExamService
	course  *service.CourseService
	news    *service.NewsService
	contact *service.ContactService
	content *service.ContentService
	stats   *service.StatsService
	client  *service.ClientService
	upload  *service.UploadService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	group      *controller.GroupController
	lesson     *controller.LessonController
	exam       *controller.ExamController
	course     *controller.CourseController
	news       *controller.NewsController
	contact    *controller.ContactController
	content    *controller.ContentController
	dictionary *controller.DictionaryController
	stats      *controller.StatsController
	client     *controller.ClientController
	upload     *controller.UploadController
	health     *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		group:   repository.NewGroupRepository(db),
		lesson:  repository.NewLessonRepository(db),
		exam:    repository.NewExamRepository(db),
		course:  repository.NewCourseRepository(db),
		news:    repository.NewNewsRepository(db),
		contact: repository.NewContactRepository(db),
		content: repository.NewSiteContentRepository(db),
		stats:   repository.NewStatsLogRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, codec *hashid.Codec, rdb *redis.Client) *services {
	mailer := service.NewMailer(&cfg.Mail)
	reports := service.NewReportService(cfg.Mail.ClientURL)
	cache := service.NewCache(rdb, time.Duration(cfg.Redis.TTL)*time.Minute)

	return &services{
		auth:    service.NewAuthService(repos.user, repos.stats, mailer, codec, cfg),
		user:    service.NewUserService(repos.user, repos.group, mailer, reports, codec, &cfg.Mail),
		group:   service.NewGroupService(repos.group, repos.user, repos.lesson, repos.exam, codec),
		lesson:  service.NewLessonService(repos.lesson, repos.user, repos.group, repos.exam, codec),
		exam:    service.NewExamService(repos.exam, repos.user, repos.group, repos.lesson, codec),
		course:  service.NewCourseService(repos.course, codec),
		news:    service.NewNewsService(repos.news, cache, codec),
		contact: service.NewContactService(repos.contact, mailer, codec),
		content: service.NewContentService(repos.content, cache),
		stats:   service.NewStatsService(repos.stats, reports, codec, cfg.Stats.RetentionDays),
		client:  service.NewClientService(repos.user, repos.lesson, repos.exam, codec),
		upload:  service.NewUploadService(service.NewStorageProvider(&cfg.Storage)),
	}
}

func initControllers(s *services, cfg *config.Config, codec *hashid.Codec, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth, codec, cfg.IsRelease()),
		user:       controller.NewUserController(s.user, codec),
		group:      controller.NewGroupController(s.group, codec),
		lesson:     controller.NewLessonController(s.lesson, codec),
		exam:       controller.NewExamController(s.exam, codec),
		course:     controller.NewCourseController(s.course, codec),
		news:       controller.NewNewsController(s.news, codec),
		contact:    controller.NewContactController(s.contact),
		content:    controller.NewContentController(s.content),
		dictionary: controller.NewDictionaryController(s.news, s.exam, s.lesson, s.user, s.group),
		stats:      controller.NewStatsController(s.stats),
		client:     controller.NewClientController(s.client, s.user),
		upload:     controller.NewUploadController(s.upload),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(gin.Recovery())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(
		a.ctx,
		cfg.RateLimit.MaxRequests,
		time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute,
		"Too many requests from this IP, please try again later",
	))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// Build wires repositories, services and routes on top of already opened
// connections. rdb may be nil.
func Build(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	codec, err := hashid.New(cfg.HashID.Secret)
	if err != nil {
		return nil, err
	}

	monitoring.Init()
	util.InitValidator()
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
		Codec:  codec,
		ctx:    ctx,
		stop:   stop,
	}

	repos := initRepositories(db)
	app.services = initServices(repos, cfg, codec, rdb)
	ctrls := initControllers(app.services, cfg, codec, db, rdb)

	router := gin.New()
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, repos, cfg)

	return app, nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	migrate := cfg.ForceMigrate || !cfg.IsRelease()
	db, err := database.InitDB(&cfg.Database, migrate, cfg.Seed.File)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app, err := Build(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to build application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.Init(&cfg.Tracing)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	a.services.stats.StartRetention(ctx, retentionInterval)

	go func() {
		configPath := filepath.Join(configDir, "config.yaml")
		if err := configwatcher.Watch(ctx, configPath, configwatcher.ApplyLogLevel); err != nil {
			logger.Log.Warn("Config watcher not running", zap.Error(err))
		}
	}()
}

// Close stops the goroutines started by Build and Run. Connections are left
// to their owner.
func (a *App) Close() {
	a.stop()
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	defer a.Close()
	a.startBackgroundTasks(a.ctx)

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// Wait for an interrupt, then give in-flight requests a few seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	a.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
