package handler

import (
	"github.com/KOVY310/chaos-canvas/internal/api/dto"
	"github.com/KOVY310/chaos-canvas/internal/model"
	"github.com/KOVY310/chaos-canvas/internal/pkg/response"
	"github.com/KOVY310/chaos-canvas/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// CreateAnonymous 创建匿名访客档案，响应里携带客户端后续要回传的 ID
func (s *UserHandler) CreateAnonymous(c *gin.Context) {
	var req dto.AnonymousCreateReq
	// 匿名建档允许空 body
	_ = c.ShouldBindJSON(&req)

	user, err := s.userSvc.CreateAnonymous(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user))
}

// GetMe 返回当前访客自己的档案
func (s *UserHandler) GetMe(c *gin.Context) {
	user, err := s.userSvc.GetUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user))
}

// GetUser 按 ID 查询用户档案
func (s *UserHandler) GetUser(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	user, err := s.userSvc.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user))
}

// Register 匿名档案升级为正式账号
func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	user, err := s.userSvc.Register(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, toUserDTO(user))
}

// Merge 匿名档案并入注册账号
func (s *UserHandler) Merge(c *gin.Context) {
	var req dto.MergeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.userSvc.MergeProfiles(c.Request.Context(), req.AnonymousID, req.TargetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func toUserDTO(user *model.User) *dto.UserDTO {
	item := &dto.UserDTO{}
	_ = copier.Copy(item, user)
	item.CreatedAt = user.CreatedAt.Format("2006-01-02 15:04:05")
	return item
}
