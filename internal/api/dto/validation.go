package dto

import (
	"github.com/KOVY310/chaos-canvas/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations 注册自定义校验规则，路由装配时调用一次
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("contenttype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case model.ContentTypeImage, model.ContentTypeText, model.ContentTypeVideo, model.ContentTypeAudio:
			return true
		}
		return false
	})

	_ = v.RegisterValidation("layertype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case model.LayerTypeGlobal, model.LayerTypeContinent, model.LayerTypeCountry,
			model.LayerTypeCity, model.LayerTypePersonal:
			return true
		}
		return false
	})
}
