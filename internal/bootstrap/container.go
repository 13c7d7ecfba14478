package bootstrap

import (
	"log"

	"place-journal-be/internal/config"
	"place-journal-be/internal/controller"
	"place-journal-be/internal/pkg/logger"
	"place-journal-be/internal/pkg/serverutils"
	redisrepo "place-journal-be/internal/repository/redis"
	"place-journal-be/internal/repository/unitofwork"
	"place-journal-be/internal/service"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const visitScoredTopic = "visit.scored"

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	RankingController controller.IRankingController
	VisitController   controller.IVisitController
	StatsController   controller.IStatsController

	// Background services (exposed for main.go to run)
	StatsService   service.IStatsService
	RankingService service.IRankingService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// Session store
	redisOpts, err := goredis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Fatalf("[FATAL] Invalid REDIS_URL: %v", err)
	}
	sessionRepo := redisrepo.NewSessionRepository(goredis.NewClient(redisOpts))

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Services
	publisherService := service.NewPublisherService(visitScoredTopic, pubSub)
	geographyService := service.NewGeographyService(uowFactory)
	rankingService := service.NewRankingService(uowFactory, sessionRepo, geographyService, sysLogger, cfg.Ranking.SessionTTL)
	visitService := service.NewVisitService(uowFactory, sessionRepo, geographyService, publisherService, sysLogger)
	statsService := service.NewStatsService(pubSub, visitScoredTopic, uowFactory, logger.NewIsolatedLogger(cfg.App.StatsLogFilePath))
	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)

	// Controllers
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		RankingController: controller.NewRankingController(rankingService, jwtMiddleware),
		VisitController:   controller.NewVisitController(visitService, jwtMiddleware),
		StatsController:   controller.NewStatsController(statsService, jwtMiddleware),
		StatsService:      statsService,
		RankingService:    rankingService,
		Logger:            sysLogger,
	}
}
