package consts

const (
	ContributionViewKey      = "contribution:view:"
	ContributionViewDirtyKey = "contribution:view:dirty"
	LeagueScoreKey           = "league:score"
	LeagueContributionsKey   = "league:contributions"
	LeagueBoostsKey          = "league:boosts"
)
