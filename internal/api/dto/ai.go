package dto

type GenerateImageReq struct {
	Prompt string `json:"prompt" binding:"required"`
	Style  string `json:"style"`
}

type GeneratedImageDTO struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
	Style  string `json:"style"`
	Source string `json:"source"` // unsplash / pexels / placeholder
}
