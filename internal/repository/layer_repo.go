package repository

import (
	"context"
	"errors"

	"github.com/KOVY310/chaos-canvas/internal/model"

	"gorm.io/gorm"
)

type LayerRepo interface {
	GetLayer(ctx context.Context, id string) (*model.CanvasLayer, error)
	GetLayersByType(ctx context.Context, layerType, regionCode string) ([]*model.CanvasLayer, error)
	CreateLayer(ctx context.Context, layer *model.CanvasLayer) error
}

type layerRepoImpl struct {
	db *gorm.DB
}

func NewLayerRepo(db *gorm.DB) LayerRepo {
	return &layerRepoImpl{db: db}
}

func (s *layerRepoImpl) GetLayer(ctx context.Context, id string) (*model.CanvasLayer, error) {
	layer := &model.CanvasLayer{}
	result := s.db.WithContext(ctx).First(layer, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return layer, nil
}

func (s *layerRepoImpl) GetLayersByType(ctx context.Context, layerType, regionCode string) ([]*model.CanvasLayer, error) {
	layers := make([]*model.CanvasLayer, 0)
	query := s.db.WithContext(ctx).Where("layer_type = ?", layerType)
	if regionCode != "" {
		query = query.Where("region_code = ?", regionCode)
	}
	result := query.Find(&layers)
	if result.Error != nil {
		return nil, result.Error
	}
	return layers, nil
}

func (s *layerRepoImpl) CreateLayer(ctx context.Context, layer *model.CanvasLayer) error {
	if result := s.db.WithContext(ctx).Create(layer); result.Error != nil {
		return result.Error
	}
	return nil
}
