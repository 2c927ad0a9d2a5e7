package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appuser "github.com/xuelin/bookshelf/internal/application/user"
	"github.com/xuelin/bookshelf/internal/interface/http/dto"
	apperrors "github.com/xuelin/bookshelf/pkg/errors"
	"github.com/xuelin/bookshelf/pkg/response"
)

// UserHandler 读者HTTP处理器
type UserHandler struct {
	userUseCase *appuser.UseCase
}

// NewUserHandler 创建读者处理器
func NewUserHandler(userUseCase *appuser.UseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
	}
}

// CreateUser 创建读者
// @Summary      创建读者
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUserRequest true "读者信息"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Router       /api/v1/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.userUseCase.CreateUser(c.Request.Context(), &appuser.UserDto{
		FullName: req.FullName,
		Title:    req.Title,
		Age:      req.Age,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, toUserResponse(result))
}

// UpdateUser 更新读者
// @Summary      更新读者
// @Param        id path int true "读者ID"
// @Param        request body dto.UpdateUserRequest true "读者信息"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Router       /api/v1/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.userUseCase.UpdateUser(c.Request.Context(), &appuser.UserDto{
		ID:       id,
		FullName: req.FullName,
		Title:    req.Title,
		Age:      req.Age,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// GetUser 获取读者
// @Summary      获取读者详情
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.userUseCase.GetUserByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toUserResponse(result))
}

// DeleteUser 删除读者（级联删除其全部图书）
// @Summary      删除读者
// @Param        id path int true "读者ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.userUseCase.DeleteUserByID(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// toUserResponse 应用层DTO → HTTP响应
func toUserResponse(d *appuser.UserDto) *dto.UserResponse {
	return &dto.UserResponse{
		ID:       d.ID,
		FullName: d.FullName,
		Title:    d.Title,
		Age:      d.Age,
	}
}

// parseID 解析路径参数中的ID
// 解析失败时直接写入参数错误响应，调用方只需return
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, "无效的ID: "+c.Param("id"))
		return 0, false
	}
	return uint(id), true
}
