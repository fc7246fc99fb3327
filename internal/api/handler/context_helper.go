package handler

import (
	"github.com/gin-gonic/gin"

	"yuksekolah/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	return s, true
}

// GetSchoolID 从 Gin 上下文中提取 school_id。
// super_admin 没有所属学校，返回 nil 是合法情形，因此不写入错误响应。
func GetSchoolID(c *gin.Context) *string {
	v, exists := c.Get("school_id")
	if !exists {
		return nil
	}
	p, ok := v.(*string)
	if !ok {
		return nil
	}
	return p
}
