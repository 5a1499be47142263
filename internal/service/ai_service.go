package service

import (
	"context"
	"fmt"
	log "log/slog"
	"net/url"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/config"
	"github.com/KOVY310/chaos-canvas/internal/api/dto"

	"github.com/go-resty/resty/v2"
)

// AIService 把"生成"落到真实图库检索上：Unsplash 为主，Pexels 兜底，
// 两者都不可用时返回占位图。调用方永远能拿到一个可用的 URL。
type AIService interface {
	GenerateImage(ctx context.Context, req *dto.GenerateImageReq) (*dto.GeneratedImageDTO, error)
}

type aiServiceImpl struct {
	client *resty.Client
	cfg    *config.AIConfig
}

type unsplashPhoto struct {
	URLs struct {
		Regular string `json:"regular"`
	} `json:"urls"`
}

type pexelsSearchResult struct {
	Photos []struct {
		Src struct {
			Large string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

func NewAIService(cfg *config.AIConfig) AIService {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &aiServiceImpl{
		client: resty.New().SetTimeout(timeout),
		cfg:    cfg,
	}
}

func (s *aiServiceImpl) GenerateImage(ctx context.Context, req *dto.GenerateImageReq) (*dto.GeneratedImageDTO, error) {
	query := req.Prompt
	if req.Style != "" {
		query = req.Prompt + " " + req.Style
	}

	if s.cfg.UnsplashAccessKey != "" {
		if imageURL, err := s.fetchUnsplash(ctx, query); err == nil {
			return s.result(req, imageURL, "unsplash"), nil
		} else {
			log.WarnContext(ctx, "unsplash lookup failed, trying pexels", "err", err)
		}
	}

	if s.cfg.PexelsAPIKey != "" {
		if imageURL, err := s.fetchPexels(ctx, query); err == nil {
			return s.result(req, imageURL, "pexels"), nil
		} else {
			log.WarnContext(ctx, "pexels lookup failed, using placeholder", "err", err)
		}
	}

	placeholder := "https://placehold.co/512x512?text=" + url.QueryEscape(req.Prompt)
	return s.result(req, placeholder, "placeholder"), nil
}

func (s *aiServiceImpl) fetchUnsplash(ctx context.Context, query string) (string, error) {
	var photo unsplashPhoto
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Client-ID "+s.cfg.UnsplashAccessKey).
		SetQueryParam("query", query).
		SetResult(&photo).
		Get("https://api.unsplash.com/photos/random")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("unsplash status %d", resp.StatusCode())
	}
	if photo.URLs.Regular == "" {
		return "", fmt.Errorf("unsplash returned no image")
	}
	return photo.URLs.Regular, nil
}

func (s *aiServiceImpl) fetchPexels(ctx context.Context, query string) (string, error) {
	var result pexelsSearchResult
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", s.cfg.PexelsAPIKey).
		SetQueryParams(map[string]string{
			"query":    query,
			"per_page": "1",
		}).
		SetResult(&result).
		Get("https://api.pexels.com/v1/search")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("pexels status %d", resp.StatusCode())
	}
	if len(result.Photos) == 0 || result.Photos[0].Src.Large == "" {
		return "", fmt.Errorf("pexels returned no image")
	}
	return result.Photos[0].Src.Large, nil
}

func (s *aiServiceImpl) result(req *dto.GenerateImageReq, imageURL, source string) *dto.GeneratedImageDTO {
	return &dto.GeneratedImageDTO{
		URL:    imageURL,
		Prompt: req.Prompt,
		Style:  req.Style,
		Source: source,
	}
}
