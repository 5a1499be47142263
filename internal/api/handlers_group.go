package api

import "github.com/KOVY310/chaos-canvas/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler         *handler.UserHandler
	LayerHandler        *handler.LayerHandler
	ContributionHandler *handler.ContributionHandler
	EconomyHandler      *handler.EconomyHandler
	BubbleHandler       *handler.BubbleHandler
	ViralHandler        *handler.ViralHandler
	AIHandler           *handler.AIHandler
	CheckoutHandler     *handler.CheckoutHandler
	WsHandler           *handler.WsHandler
}
