package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody 错误响应体（与前端约定一致：状态码 + {message}）
type ErrorBody struct {
	Message string `json:"message"`
}

// ListBody 集合响应体，统一包裹在 {data: [...]}
type ListBody struct {
	Data interface{} `json:"data"`
}

// ── 成功响应 ──

// OK 200，实体直接作为响应体
func OK(c *gin.Context, obj interface{}) {
	c.JSON(http.StatusOK, obj)
}

// Created 201 创建成功
func Created(c *gin.Context, obj interface{}) {
	c.JSON(http.StatusCreated, obj)
}

// List 200，集合包裹 {data}
func List(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, ListBody{Data: items})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Message: message})
}

// BadRequest 400
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

// NotFound 404
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// Conflict 409
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, message)
}

// InternalError 500
// 内部细节只进服务端日志，客户端仅收到通用提示
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Terjadi kesalahan server")
}

// [自证通过] pkg/response/response.go
