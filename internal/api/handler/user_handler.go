package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"yuksekolah/backend/internal/dto"
	"yuksekolah/backend/internal/service"
	"yuksekolah/backend/pkg/response"
)

// UserHandler 用户模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// List 用户列表，支持 ?role= 过滤
// GET /api/v1/users
func (h *UserHandler) List(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	users, err := h.userSvc.List(c.Request.Context(), c.Query("role"), role, GetSchoolID(c))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.List(c, users)
}

// Create 创建用户
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Nama, email, dan role harus diisi dengan benar")
		return
	}

	result, err := h.userSvc.Create(c.Request.Context(), &req, role, GetSchoolID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, service.ErrEmailExists.Error())
		case errors.Is(err, service.ErrSchoolIDRequired):
			response.BadRequest(c, service.ErrSchoolIDRequired.Error())
		case errors.Is(err, service.ErrOnlyStudents):
			response.Forbidden(c, service.ErrOnlyStudents.Error())
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, service.ErrNoPermission.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// GetByID 用户详情
// GET /api/v1/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	user, err := h.userSvc.GetByID(c.Request.Context(), c.Param("id"), role, GetSchoolID(c))
	if err != nil {
		h.writeUserError(c, err)
		return
	}

	response.OK(c, user)
}

// Update 更新用户资料
// PATCH /api/v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Data tidak valid")
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), c.Param("id"), &req, role, GetSchoolID(c))
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.Conflict(c, service.ErrEmailExists.Error())
			return
		}
		h.writeUserError(c, err)
		return
	}

	response.OK(c, user)
}

// Delete 删除用户
// DELETE /api/v1/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	err := h.userSvc.Delete(c.Request.Context(), c.Param("id"), userID, role, GetSchoolID(c))
	if err != nil {
		if errors.Is(err, service.ErrSelfDelete) {
			response.BadRequest(c, service.ErrSelfDelete.Error())
			return
		}
		h.writeUserError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "User berhasil dihapus"})
}

// ResetPassword 重置用户密码，新密码仅在响应中返回一次
// POST /api/v1/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.userSvc.ResetPassword(c.Request.Context(), c.Param("id"), role, GetSchoolID(c))
	if err != nil {
		h.writeUserError(c, err)
		return
	}

	response.OK(c, result)
}

// writeUserError 将用户模块的哨兵错误映射为 HTTP 响应
func (h *UserHandler) writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, service.ErrUserNotFound.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, service.ErrNoPermission.Error())
	case errors.Is(err, service.ErrOnlyStudents):
		response.Forbidden(c, service.ErrOnlyStudents.Error())
	case errors.Is(err, service.ErrNotYourSchool):
		response.Forbidden(c, service.ErrNotYourSchool.Error())
	default:
		response.InternalError(c)
	}
}
