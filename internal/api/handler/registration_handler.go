package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"yuksekolah/backend/internal/dto"
	"yuksekolah/backend/internal/service"
	"yuksekolah/backend/pkg/response"
)

// RegistrationHandler 报名模块 HTTP 处理器
type RegistrationHandler struct {
	regSvc service.RegistrationService
}

// NewRegistrationHandler 创建 RegistrationHandler
func NewRegistrationHandler(regSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

// Submit 学生自助报名（公开端点）
// POST /api/v1/submit-registration
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var req dto.SubmitRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "school_link dan form_data harus diisi")
		return
	}

	result, err := h.regSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFormIncomplete):
			response.BadRequest(c, service.ErrFormIncomplete.Error())
		case errors.Is(err, service.ErrLinkInvalid):
			response.NotFound(c, service.ErrLinkInvalid.Error())
		case errors.Is(err, service.ErrSchoolNotActive):
			response.Forbidden(c, service.ErrSchoolNotActive.Error())
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, service.ErrEmailExists.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// List 报名列表（school_admin 仅本校，super_admin 全部）
// GET /api/v1/registrations
func (h *RegistrationHandler) List(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	regs, err := h.regSvc.List(c.Request.Context(), role, GetSchoolID(c))
	if err != nil {
		response.InternalError(c)
		return
	}

	response.List(c, regs)
}

// GetByID 报名详情
// GET /api/v1/registrations/:id
func (h *RegistrationHandler) GetByID(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	reg, err := h.regSvc.GetByID(c.Request.Context(), c.Param("id"), role, GetSchoolID(c))
	if err != nil {
		h.writeStatusError(c, err)
		return
	}

	response.OK(c, reg)
}

// Verify 审核通过报名
// POST /api/v1/registrations/:id/verify
func (h *RegistrationHandler) Verify(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.regSvc.Verify(c.Request.Context(), c.Param("id"), role, GetSchoolID(c))
	if err != nil {
		h.writeStatusError(c, err)
		return
	}

	response.OK(c, result)
}

// Reject 驳回报名
// POST /api/v1/registrations/:id/reject
func (h *RegistrationHandler) Reject(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.regSvc.Reject(c.Request.Context(), c.Param("id"), role, GetSchoolID(c))
	if err != nil {
		h.writeStatusError(c, err)
		return
	}

	response.OK(c, result)
}

// Export 导出报名表 Excel
// GET /api/v1/registrations/export
func (h *RegistrationHandler) Export(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	data, err := h.regSvc.ExportXLSX(c.Request.Context(), role, GetSchoolID(c))
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := fmt.Sprintf("pendaftaran_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// writeStatusError 将报名模块的哨兵错误映射为 HTTP 响应
func (h *RegistrationHandler) writeStatusError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRegistrationNotFound):
		response.NotFound(c, service.ErrRegistrationNotFound.Error())
	case errors.Is(err, service.ErrNoPermission):
		response.Forbidden(c, service.ErrNoPermission.Error())
	default:
		response.InternalError(c)
	}
}
