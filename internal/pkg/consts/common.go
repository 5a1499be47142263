package consts

import "time"

// 经济模型常量
const (
	StartingChaosCoins = 100  // 新用户初始金币
	DefaultMarketPrice = 10.0 // 新贡献的基准市场价
	AuthorShareRatio   = 0.5  // 助推金额分成给作者的比例，向下取整
	BoostPriceGrowth   = 1.1  // 每次助推价格上浮 10%，复利且无上限
)

// 创作频率限制
const (
	DailyContributionLimit = 15               // 每人每自然日上限
	CreateWindowMax        = 20               // 滑动窗口内上限
	CreateWindow           = 5 * time.Minute  // 滑动窗口长度
	ContributionRetention  = 7 * 24 * time.Hour
)

// 金币充值套餐
var CoinPackages = map[string]int64{
	"100":  100,
	"500":  500,
	"1000": 1000,
	"2000": 2000,
}

const DefaultTransactionLimit = 50
