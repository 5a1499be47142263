package wire

import (
	"github.com/KOVY310/chaos-canvas/internal/api"
	"github.com/KOVY310/chaos-canvas/internal/api/config"
	"github.com/KOVY310/chaos-canvas/internal/api/handler"
	"github.com/KOVY310/chaos-canvas/internal/job"
	"github.com/KOVY310/chaos-canvas/internal/pkg/cron"
	"github.com/KOVY310/chaos-canvas/internal/pkg/notifier"
	"github.com/KOVY310/chaos-canvas/internal/pkg/ratelimit"
	"github.com/KOVY310/chaos-canvas/internal/repository"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Hub     *notifier.Hub
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	layerRepo := repository.NewLayerRepo(db)
	contributionRepo := repository.NewContributionRepo(db)
	investmentRepo := repository.NewInvestmentRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)
	bubbleRepo := repository.NewBubbleRepo(db)

	hub := notifier.NewHub()
	limiter := ratelimit.New()

	userService := service.NewUserService(userRepo, contributionRepo, ledgerRepo)
	layerService := service.NewLayerService(layerRepo)
	contributionService := service.NewContributionService(contributionRepo, userRepo, layerRepo, limiter, hub)
	economyService := service.NewEconomyService(ledgerRepo, userRepo, contributionRepo, investmentRepo, hub)
	bubbleService := service.NewBubbleService(bubbleRepo, userRepo, layerRepo)
	viralService := service.NewViralService(contributionRepo)
	aiService := service.NewAIService(&cfg.AI)
	checkoutService := service.NewCheckoutService(&cfg.Payment, userRepo)

	handlers := &api.HandlersGroup{
		UserHandler:         handler.NewUserHandler(userService),
		LayerHandler:        handler.NewLayerHandler(layerService, contributionService),
		ContributionHandler: handler.NewContributionHandler(contributionService),
		EconomyHandler:      handler.NewEconomyHandler(economyService),
		BubbleHandler:       handler.NewBubbleHandler(bubbleService),
		ViralHandler:        handler.NewViralHandler(viralService),
		AIHandler:           handler.NewAIHandler(aiService),
		CheckoutHandler:     handler.NewCheckoutHandler(checkoutService),
		WsHandler:           handler.NewWsHandler(hub, layerService),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(
		job.NewCleanupJob(contributionRepo, limiter),
		job.NewViewFlushJob(contributionRepo),
		job.NewLeagueJob(viralService),
		job.NewInvestmentRepriceJob(investmentRepo),
	)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		Hub:     hub,
		CronMgr: cronMgr,
	}, nil
}
