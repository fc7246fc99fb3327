package dto

import "time"

// ── 报名模块 DTO ──

// SubmitRegistrationRequest 学生自助报名请求（公开接口，凭注册链接）
// form_data 为报名表单的完整载荷，其中 name/email 为必填（Service 层校验）
type SubmitRegistrationRequest struct {
	SchoolLink string                 `json:"school_link" binding:"required"`
	FormData   map[string]interface{} `json:"form_data"   binding:"required"`
}

// StudentAccount 报名生成的学生账号，密码仅在本次响应返回一次
type StudentAccount struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationBrief 报名简要信息
type RegistrationBrief struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// SubmitRegistrationResponse 报名成功响应
type SubmitRegistrationResponse struct {
	Message        string            `json:"message"`
	StudentAccount StudentAccount    `json:"student_account"`
	User           UserBrief         `json:"user"`
	Registration   RegistrationBrief `json:"registration"`
}

// RegistrationResponse 报名完整信息（管理端列表/详情）
type RegistrationResponse struct {
	ID           string         `json:"id"`
	StudentID    string         `json:"student_id"`
	SchoolID     string         `json:"school_id"`
	Program      string         `json:"program"`
	AcademicYear string         `json:"academic_year"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	Student      *UserBrief     `json:"student,omitempty"`
	School       *SchoolSummary `json:"school,omitempty"`
}

// RegistrationStatusResponse 状态流转响应
type RegistrationStatusResponse struct {
	Message      string               `json:"message"`
	Registration RegistrationResponse `json:"registration"`
}
