package app

import (
	"net/http"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"investimon-go/internal/config"
	"investimon-go/internal/db"
	challengedomain "investimon-go/internal/domain/challenge"
	characterdomain "investimon-go/internal/domain/character"
	classroomdomain "investimon-go/internal/domain/classroom"
	linkingdomain "investimon-go/internal/domain/linking"
	newsdomain "investimon-go/internal/domain/news"
	userdomain "investimon-go/internal/domain/user"
	"investimon-go/internal/repository/inmemory"
	challengerepo "investimon-go/internal/repository/postgres/challenge"
	characterrepo "investimon-go/internal/repository/postgres/character"
	classroomrepo "investimon-go/internal/repository/postgres/classroom"
	linkingrepo "investimon-go/internal/repository/postgres/linking"
	newsrepo "investimon-go/internal/repository/postgres/news"
	userrepo "investimon-go/internal/repository/postgres/user"
	redisrepo "investimon-go/internal/repository/redis"
	"investimon-go/internal/transport/httpserver"
	"investimon-go/internal/transport/httpserver/handler"
	"investimon-go/pkg/logger"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	redis      *goredis.Client
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	var redisClient *goredis.Client
	var newsCache newsdomain.Cache
	if cfg.Redis.Addr != "" {
		log.Info("app: using redis news cache", "addr", cfg.Redis.Addr)
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		newsCache = redisrepo.NewRedisNewsCache(redisClient)
	} else {
		newsCache = inmemory.NewInMemoryNewsCache()
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	linking := linkingdomain.NewService(linkingrepo.NewPostgres(dbConn), users, cfg.Invites.TTL)
	classrooms := classroomdomain.NewService(classroomrepo.NewPostgres(dbConn), users)
	challenges := challengedomain.NewService(challengerepo.NewPostgres(dbConn), users)
	characters := characterdomain.NewService(characterrepo.NewPostgres(dbConn))
	news := newsdomain.NewService(newsrepo.NewPostgres(dbConn), newsCache, cfg.News.CacheTTL, cfg.News.FeedLimit)

	handlers := handler.New(cfg.Auth, users, linking, classrooms, challenges, characters, news, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, log)

	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
		redis:      redisClient,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return err
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
