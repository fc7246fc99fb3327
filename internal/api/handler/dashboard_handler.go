package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"yuksekolah/backend/internal/service"
	"yuksekolah/backend/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	dashSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashSvc: dashSvc}
}

// SuperAdmin 平台级统计
// GET /api/v1/dashboard/super-admin
func (h *DashboardHandler) SuperAdmin(c *gin.Context) {
	result, err := h.dashSvc.SuperAdmin(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// SchoolStats 校级统计
// GET /api/v1/dashboard/school-stats
func (h *DashboardHandler) SchoolStats(c *gin.Context) {
	result, err := h.dashSvc.SchoolStats(c.Request.Context(), GetSchoolID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserHasNoSchool):
			response.BadRequest(c, service.ErrUserHasNoSchool.Error())
		case errors.Is(err, service.ErrSchoolNotFound):
			response.NotFound(c, service.ErrSchoolNotFound.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Student 学生视角仪表盘
// GET /api/v1/dashboard/student
func (h *DashboardHandler) Student(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.dashSvc.Student(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, service.ErrUserNotFound.Error())
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
