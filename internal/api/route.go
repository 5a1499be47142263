package api

import (
	"net/http"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/api/middleware"
	"github.com/KOVY310/chaos-canvas/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	dto.RegisterValidations()

	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	r.GET("/ws", group.WsHandler.Connect)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		userGroup := apiGroup.Group("/users")
		{
			userGroup.POST("/anonymous", group.UserHandler.CreateAnonymous)
			userGroup.POST("/merge", group.UserHandler.Merge)

			authGroup := userGroup.Group("")
			authGroup.Use(middleware.IdentityMiddleware())
			{
				authGroup.GET("/me", group.UserHandler.GetMe)
				authGroup.POST("/register", group.UserHandler.Register)
			}

			userGroup.GET("/:user_id", group.UserHandler.GetUser)
			userGroup.GET("/:user_id/contributions", group.ContributionHandler.GetUserContributions)
			userGroup.GET("/:user_id/bubbles", group.BubbleHandler.GetUserBubbles)
		}

		layerGroup := apiGroup.Group("/layers")
		{
			layerGroup.GET("", group.LayerHandler.GetLayers)
			layerGroup.POST("", group.LayerHandler.CreateLayer)
			layerGroup.GET("/:layer_id", group.LayerHandler.GetLayer)
			layerGroup.GET("/:layer_id/contributions", group.LayerHandler.GetLayerContributions)
		}

		contributionGroup := apiGroup.Group("/contributions")
		{
			contributionGroup.GET("/:contribution_id", group.ContributionHandler.GetContribution)
			contributionGroup.POST("/:contribution_id/view", group.ContributionHandler.TrackView)

			authGroup := contributionGroup.Group("")
			authGroup.Use(middleware.IdentityMiddleware())
			{
				authGroup.POST("", group.ContributionHandler.CreateContribution)
				authGroup.POST("/:contribution_id/boost", group.EconomyHandler.Boost)
				authGroup.POST("/:contribution_id/invest", group.EconomyHandler.Invest)
			}
		}

		bubbleGroup := apiGroup.Group("/bubbles")
		{
			bubbleGroup.GET("/:bubble_id", group.BubbleHandler.GetBubble)

			authGroup := bubbleGroup.Group("")
			authGroup.Use(middleware.IdentityMiddleware())
			{
				authGroup.POST("", group.BubbleHandler.Create)
			}
		}

		economyGroup := apiGroup.Group("/economy")
		economyGroup.Use(middleware.IdentityMiddleware())
		{
			economyGroup.GET("/balance", group.EconomyHandler.GetBalance)
			economyGroup.GET("/transactions", group.EconomyHandler.GetTransactions)
			economyGroup.GET("/investments", group.EconomyHandler.GetInvestments)
			economyGroup.POST("/purchase", group.EconomyHandler.Purchase)
		}

		checkoutGroup := apiGroup.Group("/checkout")
		checkoutGroup.Use(middleware.IdentityMiddleware())
		{
			checkoutGroup.POST("/session", group.CheckoutHandler.CreateSession)
		}

		aiGroup := apiGroup.Group("/ai")
		aiGroup.Use(middleware.IdentityOptionalMiddleware())
		{
			aiGroup.POST("/generate", group.AIHandler.Generate)
		}

		viralGroup := apiGroup.Group("/viral")
		{
			viralGroup.GET("/league", group.ViralHandler.GetLeague)
			viralGroup.GET("/seeds/daily", group.ViralHandler.GetDailySeeds)
		}
	}

	return r
}
