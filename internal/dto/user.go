package dto

import "time"

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（脱敏，不含密码哈希）
type UserResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	SchoolID  *string         `json:"school_id,omitempty"`
	School    *SchoolResponse `json:"school,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// UserBrief 用户简要信息（嵌入报名等响应）
type UserBrief struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUserRequest 管理端创建用户请求
// school_admin 创建时强制落在自己的学校且角色只能是 student（Service 层校验）
type CreateUserRequest struct {
	Name     string  `json:"name"      binding:"required,min=2,max=100"`
	Email    string  `json:"email"     binding:"required,email"`
	Role     string  `json:"role"      binding:"required,oneof=super_admin school_admin student"`
	SchoolID *string `json:"school_id" binding:"omitempty,uuid"`
}

// CreateUserResponse 创建用户响应，临时密码仅在本次响应返回一次
type CreateUserResponse struct {
	Message      string       `json:"message"`
	User         UserResponse `json:"user"`
	TempPassword string       `json:"temp_password"`
}

// UpdateUserRequest 更新用户信息请求（仅更新非 nil 字段）
type UpdateUserRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role"  binding:"omitempty,oneof=super_admin school_admin student"`
}

// ResetPasswordResponse 重置密码响应
// 新密码仅在本次响应中出现一次，绝不以明文落库
type ResetPasswordResponse struct {
	Message     string `json:"message"`
	NewPassword string `json:"new_password"`
	Warning     string `json:"warning"`
}
