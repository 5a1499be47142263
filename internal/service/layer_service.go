package service

import (
	"context"
	log "log/slog"
	"time"

	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/model"
	"github.com/KOVY310/chaos-canvas/internal/repository"

	"github.com/google/uuid"
)

// 层级类型对应的缩放级别
var layerZoomLevels = map[string]int{
	model.LayerTypeGlobal:    0,
	model.LayerTypeContinent: 1,
	model.LayerTypeCountry:   2,
	model.LayerTypeCity:      3,
	model.LayerTypePersonal:  4,
}

type LayerService interface {
	GetLayer(ctx context.Context, id string) (*model.CanvasLayer, error)
	GetLayers(ctx context.Context, layerType, regionCode string) ([]*model.CanvasLayer, error)
	CreateLayer(ctx context.Context, req *dto.LayerCreateReq) (*model.CanvasLayer, error)
}

type layerServiceImpl struct {
	layerRepo repository.LayerRepo
}

func NewLayerService(layerRepo repository.LayerRepo) LayerService {
	return &layerServiceImpl{layerRepo: layerRepo}
}

func (s *layerServiceImpl) GetLayer(ctx context.Context, id string) (*model.CanvasLayer, error) {
	layer, err := s.layerRepo.GetLayer(ctx, id)
	if err != nil {
		return nil, err
	}
	if layer == nil {
		return nil, ErrLayerNotFound
	}
	return layer, nil
}

func (s *layerServiceImpl) GetLayers(ctx context.Context, layerType, regionCode string) ([]*model.CanvasLayer, error) {
	if layerType != "" {
		if _, ok := layerZoomLevels[layerType]; !ok {
			return nil, ErrLayerTypeInvalid
		}
		return s.layerRepo.GetLayersByType(ctx, layerType, regionCode)
	}
	return s.layerRepo.GetLayersByType(ctx, model.LayerTypeGlobal, "")
}

func (s *layerServiceImpl) CreateLayer(ctx context.Context, req *dto.LayerCreateReq) (*model.CanvasLayer, error) {
	zoom, ok := layerZoomLevels[req.LayerType]
	if !ok {
		return nil, ErrLayerTypeInvalid
	}

	layer := &model.CanvasLayer{
		ID:         uuid.NewString(),
		LayerType:  req.LayerType,
		RegionCode: req.RegionCode,
		Name:       req.Name,
		ZoomLevel:  zoom,
		CreatedAt:  time.Now(),
	}
	if req.SeedPrompt != "" {
		layer.SeedPrompt = &req.SeedPrompt
	}

	if err := s.layerRepo.CreateLayer(ctx, layer); err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "canvas layer created", "layer_id", layer.ID, "type", layer.LayerType, "region", layer.RegionCode)
	return layer, nil
}
