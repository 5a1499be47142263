package dto

// LeagueEntryDTO 国家排行榜条目，score = contributions*10 + boosts*5
type LeagueEntryDTO struct {
	Rank          int    `json:"rank"`
	CountryCode   string `json:"countryCode"`
	Score         int64  `json:"score"`
	Contributions int64  `json:"contributions"`
	Boosts        int64  `json:"boosts"`
}

type DailySeedDTO struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
}
